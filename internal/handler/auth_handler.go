package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"pennywise/internal/auth"
	"pennywise/internal/errors"
	"pennywise/internal/middleware"
	"pennywise/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
	cookies     *auth.CookieWriter
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, cookies *auth.CookieWriter) *AuthHandler {
	return &AuthHandler{authService: authService, cookies: cookies}
}

// SignupRequest represents a user signup request.
type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Signup godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Signup data"
// @Success 201 {object} Envelope
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return BadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return BadRequest(c, err.Error())
	}

	user, err := h.authService.Signup(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return Fail(c, err)
	}
	user.PasswordHash = ""
	user.RefreshToken = nil

	return OK(c, http.StatusCreated, "user registered successfully", user)
}

// Login godoc
// @Summary Login with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} Envelope
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return BadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return BadRequest(c, err.Error())
	}

	accessToken, refreshToken, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return Fail(c, err)
	}

	h.cookies.Set(c, accessToken, refreshToken)
	user.PasswordHash = ""
	user.RefreshToken = nil

	return OK(c, http.StatusOK, "logged in successfully", user)
}

// Refresh godoc
// @Summary Rotate the token pair from the refresh cookie
// @Tags auth
// @Produce json
// @Success 200 {object} Envelope
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	cookie, err := c.Cookie(auth.RefreshTokenCookie)
	if err != nil || cookie.Value == "" {
		return Fail(c, errors.ErrMissingToken)
	}

	accessToken, refreshToken, user, err := h.authService.Refresh(c.Request().Context(), cookie.Value)
	if err != nil {
		return Fail(c, err)
	}

	h.cookies.Set(c, accessToken, refreshToken)
	user.PasswordHash = ""
	user.RefreshToken = nil

	return OK(c, http.StatusOK, "token refreshed", user)
}

// Logout godoc
// @Summary Clear the session
// @Tags auth
// @Produce json
// @Success 200 {object} Envelope
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	// best effort: cookies are cleared even when the token no longer decodes
	if cookie, err := c.Cookie(auth.RefreshTokenCookie); err == nil && cookie.Value != "" {
		_ = h.authService.Logout(c.Request().Context(), cookie.Value)
	}
	h.cookies.Clear(c)

	return OK(c, http.StatusOK, "logged out successfully", nil)
}

// Me godoc
// @Summary Current user profile
// @Tags auth
// @Produce json
// @Success 200 {object} Envelope
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	// only the authentication gate applies here, so an inactive user can
	// still read their own subscription state
	return OK(c, http.StatusOK, "current user", middleware.CurrentUser(c))
}
