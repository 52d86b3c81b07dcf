package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/recycletrack/recycletrack-backend/internal/config"
	"github.com/recycletrack/recycletrack-backend/internal/database"
	"github.com/recycletrack/recycletrack-backend/internal/handlers"
	"github.com/recycletrack/recycletrack-backend/internal/jobs"
	"github.com/recycletrack/recycletrack-backend/internal/logging"
	"github.com/recycletrack/recycletrack-backend/internal/metrics"
	"github.com/recycletrack/recycletrack-backend/internal/middleware"
	"github.com/recycletrack/recycletrack-backend/internal/pricing"
	"github.com/recycletrack/recycletrack-backend/internal/routes"
	"github.com/recycletrack/recycletrack-backend/internal/services"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		pgLogHandler,
	)))

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cleanupDone)

	// Pricing registry
	rates := pricing.NewRegistry()
	if cfg.PricingConfigPath != "" {
		if err := rates.LoadFromFile(cfg.PricingConfigPath); err != nil {
			slog.Error("failed to load pricing config", "path", cfg.PricingConfigPath, "error", err)
			os.Exit(1)
		}
	}

	// Services
	authService := services.NewAuthService(database.DB, cfg)
	notificationService := services.NewNotificationService(database.DB)
	walletService := services.NewWalletService(database.DB)
	gamificationService := services.NewGamificationService(database.DB, rates)
	pickupService := services.NewPickupService(database.DB, rates, walletService, gamificationService, notificationService)
	withdrawalService := services.NewWithdrawalService(database.DB, notificationService)
	centerService := services.NewCenterService(database.DB)
	educationService := services.NewEducationService(database.DB)
	paymentService := services.NewPaymentService(database.DB, pickupService)
	adminService := services.NewAdminService(database.DB, pickupService)
	settingsService := services.NewSettingsService(database.DB)

	slog.Info("seeding platform settings")
	if err := settingsService.SeedDefaults(); err != nil {
		slog.Error("settings seed failed", "error", err)
		os.Exit(1)
	}
	if err := gamificationService.SeedBadges(); err != nil {
		slog.Error("badge seed failed", "error", err)
		os.Exit(1)
	}

	// Scheduled maintenance
	scheduler := jobs.NewScheduler(authService, gamificationService)
	if err := scheduler.Start(); err != nil {
		slog.Error("failed to start scheduler", "error", err)
		os.Exit(1)
	}

	h := &routes.Handlers{
		Auth:         handlers.NewAuthHandler(authService),
		Health:       handlers.NewHealthHandler(),
		Pickup:       handlers.NewPickupHandler(pickupService),
		Wallet:       handlers.NewWalletHandler(walletService),
		Withdrawal:   handlers.NewWithdrawalHandler(withdrawalService),
		Center:       handlers.NewCenterHandler(centerService),
		Education:    handlers.NewEducationHandler(educationService),
		Gamification: handlers.NewGamificationHandler(gamificationService),
		Payment:      handlers.NewPaymentHandler(paymentService, cfg.PaymentCallbackToken),
		Notification: handlers.NewNotificationHandler(notificationService),
		Admin:        handlers.NewAdminHandler(adminService),
		Settings:     handlers.NewSettingsHandler(settingsService),
	}

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(metrics.Middleware())
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	// Routes
	routes.Setup(app, cfg, h)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	scheduler.Stop()
	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	// Close database connections
	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
