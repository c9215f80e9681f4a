package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"pennywise/internal/model"
	"pennywise/internal/service"
)

// UserHandler bundles the admin user-management endpoints.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// UserUpdateRequest represents an admin user update.
type UserUpdateRequest struct {
	Name string `json:"name,omitempty" validate:"omitempty,max=255"`
	Role string `json:"role,omitempty" validate:"omitempty,oneof=user admin"`
}

func sanitize(user *model.User) *model.User {
	user.PasswordHash = ""
	user.RefreshToken = nil
	return user
}

// List godoc
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {object} Envelope
// @Router /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.svc.List(c.Request().Context())
	if err != nil {
		return Fail(c, err)
	}
	for i := range users {
		sanitize(&users[i])
	}
	return OK(c, http.StatusOK, "users", users)
}

// Get godoc
// @Summary Get a user
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} Envelope
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return BadRequest(c, "invalid id")
	}
	user, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, http.StatusOK, "user", sanitize(user))
}

// Update godoc
// @Summary Update a user
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body UserUpdateRequest true "User data"
// @Success 200 {object} Envelope
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return BadRequest(c, "invalid id")
	}

	var req UserUpdateRequest
	if err := c.Bind(&req); err != nil {
		return BadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return BadRequest(c, err.Error())
	}

	user, err := h.svc.Update(c.Request().Context(), id, service.UserUpdateInput{
		Name: req.Name,
		Role: req.Role,
	})
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, http.StatusOK, "user updated", sanitize(user))
}

// Delete godoc
// @Summary Delete a user
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} Envelope
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return BadRequest(c, "invalid id")
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return Fail(c, err)
	}
	return OK(c, http.StatusOK, "user deleted", nil)
}

// Activate godoc
// @Summary Activate a user subscription for 30 days
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} Envelope
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id}/activate [post]
func (h *UserHandler) Activate(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return BadRequest(c, "invalid id")
	}
	user, err := h.svc.Activate(c.Request().Context(), id)
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, http.StatusOK, "user activated", sanitize(user))
}

// Deactivate godoc
// @Summary Deactivate a user subscription
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} Envelope
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id}/deactivate [post]
func (h *UserHandler) Deactivate(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return BadRequest(c, "invalid id")
	}
	user, err := h.svc.Deactivate(c.Request().Context(), id)
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, http.StatusOK, "user deactivated", sanitize(user))
}
