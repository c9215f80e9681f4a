package handler

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"pennywise/internal/middleware"
	"pennywise/internal/service"
)

// ExportHandler streams user and transaction exports.
type ExportHandler struct {
	svc service.ExportService
}

// NewExportHandler creates a new export handler.
func NewExportHandler(svc service.ExportService) *ExportHandler {
	return &ExportHandler{svc: svc}
}

// Users godoc
// @Summary Export all users (admin)
// @Tags export
// @Produce json
// @Param format query string false "csv, json or xlsx" default(csv)
// @Success 200 {file} file
// @Router /export/users [get]
func (h *ExportHandler) Users(c echo.Context) error {
	file, err := h.svc.ExportUsers(c.Request().Context(), c.QueryParam("format"))
	if err != nil {
		return Fail(c, err)
	}
	return stream(c, file)
}

// Transactions godoc
// @Summary Export own transactions
// @Tags export
// @Produce json
// @Param format query string false "csv, json or xlsx" default(csv)
// @Success 200 {file} file
// @Router /export/transactions [get]
func (h *ExportHandler) Transactions(c echo.Context) error {
	user := middleware.CurrentUser(c)
	file, err := h.svc.ExportTransactions(c.Request().Context(), user.ID, c.QueryParam("format"))
	if err != nil {
		return Fail(c, err)
	}
	return stream(c, file)
}

func stream(c echo.Context, file *service.ExportFile) error {
	c.Response().Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", file.Filename))
	return c.Blob(200, file.ContentType, file.Data)
}
