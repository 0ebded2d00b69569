package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"pouparia/internal/config"
	"pouparia/internal/database"
	"pouparia/internal/handlers"
	"pouparia/internal/middleware"
	"pouparia/internal/repositories"
	"pouparia/internal/services"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// .env is optional, the environment wins
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file loaded", slog.String("error", err.Error()))
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Initialize(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logger.Error("failed to close database", slog.String("error", cerr.Error()))
		}
	}()

	metrics := services.NewPrometheusMetrics()

	txRunner := repositories.NewTxRunner(db.DB)
	transactionRepo := repositories.NewTransactionRepository(db.DB)
	aggregateRepo := repositories.NewAggregateRepository(db.DB)
	categoryRepo := repositories.NewCategoryRepository(db.DB)
	settingsRepo := repositories.NewSettingsRepository(db.DB)

	tokenService := services.NewTokenService(&cfg.JWT)
	transactionService := services.NewTransactionService(txRunner, transactionRepo, aggregateRepo, categoryRepo,
		metrics, services.NewAuditLogger(logger))
	statsService := services.NewStatsService(transactionRepo, &cfg.Reporting)
	historyService := services.NewHistoryService(aggregateRepo)
	statementService := services.NewStatementService(transactionRepo, settingsRepo, &cfg.Reporting)
	categoryService := services.NewCategoryService(categoryRepo)
	settingsService := services.NewSettingsService(settingsRepo, &cfg.Reporting)
	onboardingService := services.NewOnboardingService(txRunner, categoryRepo, settingsRepo)

	cache := handlers.NewResponseCache(cfg.Cache.Size, cfg.Cache.TTL, metrics)

	router := handlers.Router{
		Health:       handlers.NewHealthCheckHandler(db.DB),
		Transactions: handlers.NewTransactionHandler(transactionService, statementService, cache, metrics),
		Reports:      handlers.NewReportHandler(statsService, historyService, cache, metrics),
		Categories:   handlers.NewCategoryHandler(categoryService, cache),
		Settings:     handlers.NewSettingsHandler(settingsService, onboardingService, cache),
	}
	if cfg.IsDevelopment() {
		router.Dev = handlers.NewDevHandler(tokenService, transactionService, categoryService,
			services.NewDemoDataGenerator(), cache, metrics)
		logger.Warn("development endpoints enabled", slog.String("token_endpoint", "/api/v1/dev/token"))
	}

	rateLimiter := middleware.NewRateLimiter(&cfg.Security)
	go rateLimiter.Run(ctx)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler

	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger())
	e.Use(middleware.PanicRecovery())
	e.Use(middleware.SecurityHeaders(middleware.SecurityOptions{HSTS: cfg.IsProduction()}))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.Server.CORSAllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType, middleware.TraceIDHeader},
	}))
	e.Use(echomw.BodyLimit("1M"))

	handlers.RegisterRoutes(e, router, middleware.RequireAuth(tokenService, metrics), rateLimiter.Middleware())

	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      e,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			slog.String("addr", server.Addr),
			slog.String("environment", cfg.Server.Environment))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
