package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"pennywise/internal/middleware"
	"pennywise/internal/service"
)

// BudgetHandler handles budget endpoints.
type BudgetHandler struct {
	svc service.BudgetService
}

// NewBudgetHandler creates a new budget handler.
func NewBudgetHandler(svc service.BudgetService) *BudgetHandler {
	return &BudgetHandler{svc: svc}
}

// CategoryBudgetRequest is one per-category limit line.
type CategoryBudgetRequest struct {
	CategoryID uuid.UUID       `json:"category_id" validate:"required"`
	Amount     decimal.Decimal `json:"amount"`
}

// BudgetRequest represents a budget upsert request.
type BudgetRequest struct {
	Month           string                  `json:"month" validate:"required"`
	TotalBudget     decimal.Decimal         `json:"total_budget"`
	CategoryBudgets []CategoryBudgetRequest `json:"category_budgets,omitempty" validate:"dive"`
}

// Upsert godoc
// @Summary Create or replace the budget for a month
// @Tags budgets
// @Accept json
// @Produce json
// @Param request body BudgetRequest true "Budget data"
// @Success 200 {object} Envelope
// @Failure 400 {object} errors.ErrorResponse
// @Router /budgets [post]
func (h *BudgetHandler) Upsert(c echo.Context) error {
	var req BudgetRequest
	if err := c.Bind(&req); err != nil {
		return BadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return BadRequest(c, err.Error())
	}

	input := service.BudgetInput{
		Month:       req.Month,
		TotalBudget: req.TotalBudget,
	}
	for _, cb := range req.CategoryBudgets {
		input.CategoryBudgets = append(input.CategoryBudgets, service.CategoryBudgetInput{
			CategoryID: cb.CategoryID,
			Amount:     cb.Amount,
		})
	}

	user := middleware.CurrentUser(c)
	budget, err := h.svc.Upsert(c.Request().Context(), user.ID, input)
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, http.StatusOK, "budget saved", budget)
}

// Get godoc
// @Summary Get the budget for a month
// @Tags budgets
// @Produce json
// @Param month query string true "Month (YYYY-MM)"
// @Success 200 {object} Envelope
// @Failure 404 {object} errors.ErrorResponse
// @Router /budgets [get]
func (h *BudgetHandler) Get(c echo.Context) error {
	user := middleware.CurrentUser(c)
	budget, err := h.svc.Get(c.Request().Context(), user.ID, c.QueryParam("month"))
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, http.StatusOK, "budget", budget)
}

// Summary godoc
// @Summary Spent-vs-limit summary for a month
// @Tags budgets
// @Produce json
// @Param month query string false "Month (YYYY-MM), defaults to current"
// @Success 200 {object} Envelope
// @Failure 404 {object} errors.ErrorResponse
// @Router /budgets/summary [get]
func (h *BudgetHandler) Summary(c echo.Context) error {
	user := middleware.CurrentUser(c)
	summary, err := h.svc.Summary(c.Request().Context(), user.ID, c.QueryParam("month"))
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, http.StatusOK, "budget summary", summary)
}
