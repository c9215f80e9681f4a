package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned for both unknown email and wrong
	// password, so login never leaks whether a user exists.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailTaken is returned when signing up with an existing email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrMissingToken is returned when a token cookie is absent.
	ErrMissingToken = errors.New("refresh token required")
	// ErrInvalidToken is returned when token signature or expiry checks fail.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrTokenMismatch is returned when a refresh token does not match the one
	// currently stored on the user, i.e. a superseded token was replayed.
	ErrTokenMismatch = errors.New("refresh token superseded")
	// ErrAccountInactive is returned when the authenticated account is not active.
	ErrAccountInactive = errors.New("account is not active")
	// ErrSubscriptionRequired is returned when the subscription window is
	// missing or lapsed on a subscription-gated route.
	ErrSubscriptionRequired = errors.New("active subscription required")
	// ErrForbidden is returned when the user role does not permit the operation.
	ErrForbidden = errors.New("insufficient permissions")
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidMonth is returned for month parameters not shaped YYYY-MM.
	ErrInvalidMonth = errors.New("month must be formatted YYYY-MM")
	// ErrCategoryExists is returned when a category name is already taken for the user.
	ErrCategoryExists = errors.New("category already exists")
	// ErrValidation is returned for semantically invalid input values.
	ErrValidation = errors.New("invalid input")
)

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	ErrorType string `json:"errorType,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Success:   false,
		Message:   e.Message,
		ErrorType: e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrMissingToken):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "MISSING_TOKEN")
	case errors.Is(err, ErrInvalidToken):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_TOKEN")
	case errors.Is(err, ErrTokenMismatch):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_TOKEN")
	case errors.Is(err, ErrAccountInactive):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "ACCOUNT_INACTIVE")
	case errors.Is(err, ErrSubscriptionRequired):
		return NewHTTPError(http.StatusForbidden, err.Error(), "SUBSCRIPTION_REQUIRED")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOT_FOUND")
	case errors.Is(err, ErrCategoryExists):
		return NewHTTPError(http.StatusConflict, err.Error(), "CATEGORY_EXISTS")
	case errors.Is(err, ErrInvalidMonth), errors.Is(err, ErrValidation):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
