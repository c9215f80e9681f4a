package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"pennywise/internal/middleware"
	"pennywise/internal/model"
	"pennywise/internal/repository"
	"pennywise/internal/service"
)

// TransactionHandler handles transaction endpoints.
type TransactionHandler struct {
	svc service.TransactionService
}

// NewTransactionHandler creates a new transaction handler.
func NewTransactionHandler(svc service.TransactionService) *TransactionHandler {
	return &TransactionHandler{svc: svc}
}

// TransactionRequest represents a transaction create/update request.
type TransactionRequest struct {
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Type        string          `json:"type" validate:"required,oneof=income expense"`
	CategoryID  *uuid.UUID      `json:"category_id,omitempty"`
	Date        *time.Time      `json:"date,omitempty"`
	Description string          `json:"description,omitempty" validate:"max=500"`
}

func (r *TransactionRequest) toInput() (service.TransactionInput, bool) {
	if r.Amount.LessThanOrEqual(decimal.Zero) {
		return service.TransactionInput{}, false
	}
	return service.TransactionInput{
		Amount:      r.Amount,
		Type:        model.TransactionType(r.Type),
		CategoryID:  r.CategoryID,
		Date:        r.Date,
		Description: r.Description,
	}, true
}

// Create godoc
// @Summary Create a transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body TransactionRequest true "Transaction data"
// @Success 201 {object} Envelope
// @Failure 400 {object} errors.ErrorResponse
// @Router /transactions [post]
func (h *TransactionHandler) Create(c echo.Context) error {
	var req TransactionRequest
	if err := c.Bind(&req); err != nil {
		return BadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return BadRequest(c, err.Error())
	}
	input, ok := req.toInput()
	if !ok {
		return BadRequest(c, "amount must be positive")
	}

	user := middleware.CurrentUser(c)
	tx, err := h.svc.Create(c.Request().Context(), user.ID, input)
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, http.StatusCreated, "transaction created", tx)
}

// List godoc
// @Summary List transactions
// @Tags transactions
// @Produce json
// @Param month query string false "Month filter (YYYY-MM)"
// @Param type query string false "income or expense"
// @Param category query string false "Category ID"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} Envelope
// @Router /transactions [get]
func (h *TransactionHandler) List(c echo.Context) error {
	user := middleware.CurrentUser(c)

	filter := repository.TransactionFilter{
		Type:  model.TransactionType(c.QueryParam("type")),
		Page:  queryInt(c, "page", 1),
		Limit: queryInt(c, "limit", 20),
	}
	if raw := c.QueryParam("category"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return BadRequest(c, "invalid category id")
		}
		filter.CategoryID = &id
	}

	txs, total, err := h.svc.List(c.Request().Context(), user.ID, c.QueryParam("month"), filter)
	if err != nil {
		return Fail(c, err)
	}
	return OKMeta(c, http.StatusOK, "transactions", txs, Meta{
		Page:  filter.Page,
		Limit: filter.Limit,
		Total: total,
	})
}

// Get godoc
// @Summary Get a transaction
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} Envelope
// @Failure 404 {object} errors.ErrorResponse
// @Router /transactions/{id} [get]
func (h *TransactionHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return BadRequest(c, "invalid id")
	}

	user := middleware.CurrentUser(c)
	tx, err := h.svc.Get(c.Request().Context(), user.ID, id)
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, http.StatusOK, "transaction", tx)
}

// Update godoc
// @Summary Update a transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param request body TransactionRequest true "Transaction data"
// @Success 200 {object} Envelope
// @Failure 404 {object} errors.ErrorResponse
// @Router /transactions/{id} [put]
func (h *TransactionHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return BadRequest(c, "invalid id")
	}

	var req TransactionRequest
	if err := c.Bind(&req); err != nil {
		return BadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return BadRequest(c, err.Error())
	}
	input, ok := req.toInput()
	if !ok {
		return BadRequest(c, "amount must be positive")
	}

	user := middleware.CurrentUser(c)
	tx, err := h.svc.Update(c.Request().Context(), user.ID, id, input)
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, http.StatusOK, "transaction updated", tx)
}

// Delete godoc
// @Summary Delete a transaction
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} Envelope
// @Failure 404 {object} errors.ErrorResponse
// @Router /transactions/{id} [delete]
func (h *TransactionHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return BadRequest(c, "invalid id")
	}

	user := middleware.CurrentUser(c)
	if err := h.svc.Delete(c.Request().Context(), user.ID, id); err != nil {
		return Fail(c, err)
	}
	return OK(c, http.StatusOK, "transaction deleted", nil)
}

// Stats godoc
// @Summary Monthly income and expense totals per category
// @Tags stats
// @Produce json
// @Param month query string false "Month (YYYY-MM), defaults to current"
// @Success 200 {object} Envelope
// @Router /stats/monthly [get]
func (h *TransactionHandler) Stats(c echo.Context) error {
	user := middleware.CurrentUser(c)
	stats, err := h.svc.Stats(c.Request().Context(), user.ID, c.QueryParam("month"))
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, http.StatusOK, "monthly stats", stats)
}

func queryInt(c echo.Context, name string, def int) int {
	if raw := c.QueryParam(name); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	}
	return def
}
