package handler

import (
	"github.com/labstack/echo/v4"

	"pennywise/internal/errors"
)

// Meta carries pagination info in list responses.
type Meta struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// Envelope is the uniform success response shape.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

// OK writes a success envelope.
func OK(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, Envelope{Success: true, Message: message, Data: data})
}

// OKMeta writes a success envelope with pagination meta.
func OKMeta(c echo.Context, status int, message string, data interface{}, meta Meta) error {
	return c.JSON(status, Envelope{Success: true, Message: message, Data: data, Meta: &meta})
}

// Fail maps a domain error onto the error envelope.
func Fail(c echo.Context, err error) error {
	he := errors.MapErrorToHTTP(err)
	return c.JSON(he.StatusCode, he.ToErrorResponse())
}

// BadRequest writes a validation failure envelope.
func BadRequest(c echo.Context, message string) error {
	he := errors.NewHTTPError(400, message, "VALIDATION_ERROR")
	return c.JSON(he.StatusCode, he.ToErrorResponse())
}
