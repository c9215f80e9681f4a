package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"pennywise/internal/middleware"
	"pennywise/internal/service"
)

// GoalHandler handles savings goal endpoints.
type GoalHandler struct {
	svc service.GoalService
}

// NewGoalHandler creates a new goal handler.
func NewGoalHandler(svc service.GoalService) *GoalHandler {
	return &GoalHandler{svc: svc}
}

// GoalRequest represents a goal create/update request.
type GoalRequest struct {
	Name         string          `json:"name" validate:"required,max=255"`
	TargetAmount decimal.Decimal `json:"target_amount" validate:"required"`
	Deadline     *time.Time      `json:"deadline,omitempty"`
}

// ContributeRequest represents a goal contribution.
type ContributeRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
}

// List godoc
// @Summary List goals
// @Tags goals
// @Produce json
// @Success 200 {object} Envelope
// @Router /goals [get]
func (h *GoalHandler) List(c echo.Context) error {
	user := middleware.CurrentUser(c)
	goals, err := h.svc.List(c.Request().Context(), user.ID)
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, http.StatusOK, "goals", goals)
}

// Create godoc
// @Summary Create a goal
// @Tags goals
// @Accept json
// @Produce json
// @Param request body GoalRequest true "Goal data"
// @Success 201 {object} Envelope
// @Router /goals [post]
func (h *GoalHandler) Create(c echo.Context) error {
	var req GoalRequest
	if err := c.Bind(&req); err != nil {
		return BadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return BadRequest(c, err.Error())
	}

	user := middleware.CurrentUser(c)
	goal, err := h.svc.Create(c.Request().Context(), user.ID, service.GoalInput{
		Name:         req.Name,
		TargetAmount: req.TargetAmount,
		Deadline:     req.Deadline,
	})
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, http.StatusCreated, "goal created", goal)
}

// Update godoc
// @Summary Update a goal
// @Tags goals
// @Accept json
// @Produce json
// @Param id path string true "Goal ID"
// @Param request body GoalRequest true "Goal data"
// @Success 200 {object} Envelope
// @Failure 404 {object} errors.ErrorResponse
// @Router /goals/{id} [put]
func (h *GoalHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return BadRequest(c, "invalid id")
	}

	var req GoalRequest
	if err := c.Bind(&req); err != nil {
		return BadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return BadRequest(c, err.Error())
	}

	user := middleware.CurrentUser(c)
	goal, err := h.svc.Update(c.Request().Context(), user.ID, id, service.GoalInput{
		Name:         req.Name,
		TargetAmount: req.TargetAmount,
		Deadline:     req.Deadline,
	})
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, http.StatusOK, "goal updated", goal)
}

// Delete godoc
// @Summary Delete a goal
// @Tags goals
// @Produce json
// @Param id path string true "Goal ID"
// @Success 200 {object} Envelope
// @Failure 404 {object} errors.ErrorResponse
// @Router /goals/{id} [delete]
func (h *GoalHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return BadRequest(c, "invalid id")
	}

	user := middleware.CurrentUser(c)
	if err := h.svc.Delete(c.Request().Context(), user.ID, id); err != nil {
		return Fail(c, err)
	}
	return OK(c, http.StatusOK, "goal deleted", nil)
}

// Contribute godoc
// @Summary Contribute to a goal
// @Tags goals
// @Accept json
// @Produce json
// @Param id path string true "Goal ID"
// @Param request body ContributeRequest true "Contribution amount"
// @Success 200 {object} Envelope
// @Failure 404 {object} errors.ErrorResponse
// @Router /goals/{id}/contribute [post]
func (h *GoalHandler) Contribute(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return BadRequest(c, "invalid id")
	}

	var req ContributeRequest
	if err := c.Bind(&req); err != nil {
		return BadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return BadRequest(c, err.Error())
	}

	user := middleware.CurrentUser(c)
	goal, err := h.svc.Contribute(c.Request().Context(), user.ID, id, req.Amount)
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, http.StatusOK, "contribution recorded", goal)
}
