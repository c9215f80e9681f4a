package main

import (
	"log"
	"net/http"

	_ "pennywise/docs" // swagger docs

	"github.com/labstack/echo/v4"

	"pennywise/internal/auth"
	"pennywise/internal/cache"
	"pennywise/internal/config"
	"pennywise/internal/db"
	"pennywise/internal/handler"
	"pennywise/internal/model"
	"pennywise/internal/repository"
	"pennywise/internal/router"
	"pennywise/internal/service"
)

// @title Pennywise API
// @version 1.0
// @description Personal finance API with transactions, budgets, savings goals, and cookie-based JWT authentication.
// @host localhost:5000
// @BasePath /api/v1
// @schemes http
func main() {
	cfg := config.Load()

	e := echo.New()
	e.HideBanner = true

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Transaction{},
		&model.Budget{},
		&model.CategoryBudget{},
		&model.Goal{},
		&model.RecurringTransaction{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)
	transactionRepo := repository.NewTransactionRepository(gormDB)
	budgetRepo := repository.NewBudgetRepository(gormDB)
	goalRepo := repository.NewGoalRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.AccessSecret, cfg.RefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	cookieWriter := auth.NewCookieWriter(cfg.IsProduction(), cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService)
	alertService := service.NewBudgetAlertService(budgetRepo, transactionRepo)
	transactionService := service.NewTransactionService(transactionRepo, categoryRepo, alertService, cacheClient)
	categoryService := service.NewCategoryService(categoryRepo)
	budgetService := service.NewBudgetService(budgetRepo, transactionRepo, categoryRepo, cacheClient)
	goalService := service.NewGoalService(goalRepo, transactionRepo)
	userService := service.NewUserService(userRepo, cacheClient)
	exportService := service.NewExportService(userRepo, transactionRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, cookieWriter)
	transactionHandler := handler.NewTransactionHandler(transactionService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	budgetHandler := handler.NewBudgetHandler(budgetService)
	goalHandler := handler.NewGoalHandler(goalService)
	userHandler := handler.NewUserHandler(userService)
	exportHandler := handler.NewExportHandler(exportService)

	// Register routes
	router.Register(
		e,
		cfg,
		jwtService,
		userRepo,
		authHandler,
		transactionHandler,
		categoryHandler,
		budgetHandler,
		goalHandler,
		userHandler,
		exportHandler,
	)

	if cfg.SwaggerHost != "" {
		log.Printf("Swagger documentation available at: http://%s/swagger/index.html", cfg.SwaggerHost)
	}

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
