package router

import (
	stderrors "errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"pennywise/internal/auth"
	"pennywise/internal/config"
	"pennywise/internal/errors"
	"pennywise/internal/handler"
	appmw "pennywise/internal/middleware"
	"pennywise/internal/repository"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	userRepo repository.UserRepository,
	authHandler *handler.AuthHandler,
	transactionHandler *handler.TransactionHandler,
	categoryHandler *handler.CategoryHandler,
	budgetHandler *handler.BudgetHandler,
	goalHandler *handler.GoalHandler,
	userHandler *handler.UserHandler,
	exportHandler *handler.ExportHandler,
) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.BodyLimit("1M"))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowCredentials: true,
	}))

	e.Validator = &CustomValidator{validator: validator.New()}
	e.HTTPErrorHandler = errorHandler(cfg.IsProduction())

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1")

	// Public routes
	api.POST("/auth/signup", authHandler.Signup)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	// Authenticated routes: JWT cookie plus resolved user record
	authed := api.Group("",
		echojwt.WithConfig(echojwt.Config{
			SigningKey:   jwtService.AccessSecret(),
			TokenLookup:  "cookie:" + auth.AccessTokenCookie,
			ErrorHandler: jwtErrorHandler,
		}),
		appmw.LoadUser(userRepo),
	)

	// Only the authentication gate: an inactive user still sees their profile
	authed.GET("/auth/me", authHandler.Me)

	// Subscription-gated routes
	gated := authed.Group("", appmw.RequireSubscription())

	gated.GET("/transactions", transactionHandler.List)
	gated.POST("/transactions", transactionHandler.Create)
	gated.GET("/transactions/:id", transactionHandler.Get)
	gated.PUT("/transactions/:id", transactionHandler.Update)
	gated.DELETE("/transactions/:id", transactionHandler.Delete)

	gated.GET("/categories", categoryHandler.List)
	gated.POST("/categories", categoryHandler.Create)
	gated.PUT("/categories/:id", categoryHandler.Update)
	gated.DELETE("/categories/:id", categoryHandler.Delete)

	gated.GET("/budgets", budgetHandler.Get)
	gated.POST("/budgets", budgetHandler.Upsert)
	gated.GET("/budgets/summary", budgetHandler.Summary)

	gated.GET("/goals", goalHandler.List)
	gated.POST("/goals", goalHandler.Create)
	gated.PUT("/goals/:id", goalHandler.Update)
	gated.DELETE("/goals/:id", goalHandler.Delete)
	gated.POST("/goals/:id/contribute", goalHandler.Contribute)

	gated.GET("/stats/monthly", transactionHandler.Stats)
	gated.GET("/export/transactions", exportHandler.Transactions)

	// Admin routes
	admin := authed.Group("", appmw.RequireAdmin())
	admin.GET("/users", userHandler.List)
	admin.GET("/users/:id", userHandler.Get)
	admin.PUT("/users/:id", userHandler.Update)
	admin.DELETE("/users/:id", userHandler.Delete)
	admin.POST("/users/:id/activate", userHandler.Activate)
	admin.POST("/users/:id/deactivate", userHandler.Deactivate)
	admin.GET("/export/users", exportHandler.Users)
}

// jwtErrorHandler maps token extraction and validation failures onto the
// error envelope before the request reaches any handler.
func jwtErrorHandler(c echo.Context, err error) error {
	var extractionErr *echojwt.TokenExtractionError
	if stderrors.As(err, &extractionErr) || stderrors.Is(err, echojwt.ErrJWTMissing) {
		he := errors.NewHTTPError(http.StatusUnauthorized, "access token required", "ACCESS_TOKEN_REQUIRED")
		return c.JSON(he.StatusCode, he.ToErrorResponse())
	}
	he := errors.NewHTTPError(http.StatusUnauthorized, errors.ErrInvalidToken.Error(), "INVALID_TOKEN")
	return c.JSON(he.StatusCode, he.ToErrorResponse())
}

// errorHandler renders uncaught errors in the envelope, hiding internals
// outside development.
func errorHandler(production bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := "internal server error"
		code := "INTERNAL_ERROR"

		var httpErr *echo.HTTPError
		if stderrors.As(err, &httpErr) {
			status = httpErr.Code
			if msg, ok := httpErr.Message.(string); ok {
				message = msg
			}
			if status != http.StatusInternalServerError {
				code = ""
			}
		} else if !production {
			message = err.Error()
		}

		_ = c.JSON(status, errors.ErrorResponse{
			Success:   false,
			Message:   message,
			ErrorType: code,
		})
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
