package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"pennywise/internal/middleware"
	"pennywise/internal/service"
)

// CategoryHandler handles category endpoints.
type CategoryHandler struct {
	svc service.CategoryService
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(svc service.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

// CategoryRequest represents a category create/update request.
type CategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// List godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {object} Envelope
// @Router /categories [get]
func (h *CategoryHandler) List(c echo.Context) error {
	user := middleware.CurrentUser(c)
	categories, err := h.svc.List(c.Request().Context(), user.ID)
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, http.StatusOK, "categories", categories)
}

// Create godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Param request body CategoryRequest true "Category data"
// @Success 201 {object} Envelope
// @Failure 409 {object} errors.ErrorResponse
// @Router /categories [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return BadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return BadRequest(c, err.Error())
	}

	user := middleware.CurrentUser(c)
	category, err := h.svc.Create(c.Request().Context(), user.ID, req.Name)
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, http.StatusCreated, "category created", category)
}

// Update godoc
// @Summary Rename a category
// @Tags categories
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param request body CategoryRequest true "Category data"
// @Success 200 {object} Envelope
// @Failure 404 {object} errors.ErrorResponse
// @Router /categories/{id} [put]
func (h *CategoryHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return BadRequest(c, "invalid id")
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return BadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return BadRequest(c, err.Error())
	}

	user := middleware.CurrentUser(c)
	category, err := h.svc.Rename(c.Request().Context(), user.ID, id, req.Name)
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, http.StatusOK, "category updated", category)
}

// Delete godoc
// @Summary Delete a category
// @Tags categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} Envelope
// @Failure 404 {object} errors.ErrorResponse
// @Router /categories/{id} [delete]
func (h *CategoryHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return BadRequest(c, "invalid id")
	}

	user := middleware.CurrentUser(c)
	if err := h.svc.Delete(c.Request().Context(), user.ID, id); err != nil {
		return Fail(c, err)
	}
	return OK(c, http.StatusOK, "category deleted", nil)
}
