package middleware

import (
	stderrors "errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"pennywise/internal/errors"
	"pennywise/internal/model"
	"pennywise/internal/repository"
)

const userContextKey = "currentUser"

// LoadUser resolves the user referenced by the JWT claims the route-level JWT
// middleware already validated, strips credentials and attaches the record to
// the request context. It runs after echo-jwt on every protected route.
func LoadUser(userRepo repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return unauthorized(c, "access token required", "ACCESS_TOKEN_REQUIRED")
			}
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return unauthorized(c, errors.ErrInvalidToken.Error(), "INVALID_TOKEN")
			}

			sub, _ := claims["user_id"].(string)
			id, err := uuid.Parse(sub)
			if err != nil {
				return unauthorized(c, errors.ErrInvalidToken.Error(), "INVALID_TOKEN")
			}

			user, err := userRepo.FindByID(c.Request().Context(), id)
			if err != nil {
				if stderrors.Is(err, gorm.ErrRecordNotFound) {
					// token refers to a deleted account
					return unauthorized(c, errors.ErrAccountInactive.Error(), "ACCOUNT_INACTIVE")
				}
				he := errors.MapErrorToHTTP(err)
				return c.JSON(he.StatusCode, he.ToErrorResponse())
			}

			user.PasswordHash = ""
			user.RefreshToken = nil
			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the user attached by LoadUser, or nil outside the
// protected chain.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(userContextKey).(*model.User)
	return user
}

// RequireAdmin rejects non-admin users.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil || user.Role != model.RoleAdmin {
				he := errors.MapErrorToHTTP(errors.ErrForbidden)
				return c.JSON(he.StatusCode, he.ToErrorResponse())
			}
			return next(c)
		}
	}
}

// RequireSubscription gates routes on subscription state, checked lazily on
// each request rather than by a background sweep. Admins always pass. This is
// deliberately independent from authentication: routes like /auth/me carry
// only the first gate so a blocked user can still see their own status.
func RequireSubscription() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				return unauthorized(c, "access token required", "ACCESS_TOKEN_REQUIRED")
			}
			if user.Role == model.RoleAdmin {
				return next(c)
			}
			if !user.IsActive || user.SubscriptionExpired(time.Now()) {
				he := errors.MapErrorToHTTP(errors.ErrSubscriptionRequired)
				return c.JSON(he.StatusCode, he.ToErrorResponse())
			}
			return next(c)
		}
	}
}

func unauthorized(c echo.Context, message, code string) error {
	he := errors.NewHTTPError(http.StatusUnauthorized, message, code)
	return c.JSON(he.StatusCode, he.ToErrorResponse())
}
