package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/onurcolak/smscountry-call-gateway/environments"
	"github.com/onurcolak/smscountry-call-gateway/handlers"
	"github.com/onurcolak/smscountry-call-gateway/internal/middlewares"
	"github.com/onurcolak/smscountry-call-gateway/internal/repository"
	"github.com/onurcolak/smscountry-call-gateway/internal/scheduler"
	"github.com/onurcolak/smscountry-call-gateway/internal/service"
	"github.com/onurcolak/smscountry-call-gateway/pkg/database"
	"github.com/onurcolak/smscountry-call-gateway/pkg/logger"
	"github.com/onurcolak/smscountry-call-gateway/pkg/redis"
	"github.com/onurcolak/smscountry-call-gateway/pkg/smscountry"
	"github.com/onurcolak/smscountry-call-gateway/pkg/validator"
	"github.com/onurcolak/smscountry-call-gateway/pkg/webhook"
	"github.com/onurcolak/smscountry-call-gateway/routes"

	_ "github.com/onurcolak/smscountry-call-gateway/docs" // swagger docs
)

// @title SMSCountry Call Gateway API
// @version 1.0
// @description Places, tracks and records voice calls through the SMSCountry REST API
// @termsOfService http://swagger.io/terms/

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

// @schemes http https
func main() {
	cfg, err := environments.Load()
	if err != nil {
		panic(err)
	}

	if err := logger.Init(cfg.Log.Env, cfg.Log.Level); err != nil {
		panic(err)
	}
	defer logger.Sync()

	// Hard-fail if required secrets are missing
	if cfg.Provider.AuthKey == "" || cfg.Provider.AuthToken == "" {
		logger.Fatalf("SMSCOUNTRY_AUTH_KEY and SMSCOUNTRY_AUTH_TOKEN are required")
	}
	if cfg.Auth.CallsAPIKey == "" {
		logger.Fatalf("CALLS_API_KEY is required but not set")
	}
	if cfg.Auth.SchedulerAPIKey == "" {
		logger.Fatalf("SCHEDULER_API_KEY is required but not set")
	}

	logger.Infof("Starting SMSCountry call gateway...")

	endpoint, err := smscountry.NewEndpoint(
		cfg.Provider.AuthKey,
		cfg.Provider.AuthToken,
		smscountry.WithBaseURL(cfg.Provider.BaseURL),
		smscountry.WithTimeout(cfg.Provider.Timeout),
	)
	if err != nil {
		logger.Fatalf("Failed to configure SMSCountry endpoint: %v", err)
	}

	provider, err := smscountry.NewClient(endpoint)
	if err != nil {
		logger.Fatalf("Failed to create SMSCountry client: %v", err)
	}

	db, err := database.NewMySQLDB(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.RunMigrations(db); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	if environments.GetEnvAsBool("SEED_DATA", false) {
		if err := database.SeedTestData(db); err != nil {
			logger.Warnf("Failed to seed test data: %v", err)
		}
	}

	callRepo := repository.NewCallRepository(db)

	// Without Redis the gateway still places calls; tracking and sync are off.
	var callService *service.CallService
	redisClient, err := redis.NewRedisClient(cfg.Redis)
	if err != nil {
		logger.Warnf("Redis not available, call tracking disabled: %v", err)
		redisClient = nil
		callService = service.NewCallService(provider.Call, callRepo, nil)
	} else {
		callService = service.NewCallService(provider.Call, callRepo, redisClient)
	}

	var alerts *webhook.Client
	if cfg.Alert.WebhookURL != "" {
		alerts = webhook.NewAlertClient(cfg.Alert)
		logger.Infof("Alert webhook configured: %s", alerts.GetURL())
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var sched *scheduler.Scheduler
	if alerts != nil {
		sched = scheduler.NewScheduler(callService, alerts, cfg.Sync.Interval, cfg.Alert.IterationCount)
	} else {
		sched = scheduler.NewScheduler(callService, nil, cfg.Sync.Interval, cfg.Alert.IterationCount)
	}

	var healthHandler *handlers.HealthHandler
	if redisClient != nil {
		healthHandler = handlers.NewHealthHandler(db, redisClient, sched)
	} else {
		healthHandler = handlers.NewHealthHandler(db, nil, sched)
	}
	callHandler := handlers.NewCallHandler(callService)
	schedulerHandler := handlers.NewSchedulerHandler(sched, ctx, cfg)

	if cfg.Sync.AutoStart && callService.TrackingEnabled() {
		logger.Infof("Auto-starting call sync scheduler...")
		if err := sched.Start(ctx); err != nil {
			logger.Warnf("Failed to auto-start scheduler: %v", err)
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.New()

	e.Use(middleware.RequestID())
	e.Use(middlewares.RequestLogger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			middlewares.APIKeyHeader,
		},
	}))

	routes.RegisterRoutes(e, healthHandler, callHandler, schedulerHandler, cfg)

	go func() {
		addr := ":" + cfg.Server.Port
		logger.Infof("Server starting on http://localhost%s", addr)
		logger.Infof("Swagger docs available at http://localhost%s/swagger/index.html", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Infof("Shutting down gracefully...")

	if sched.IsRunning() {
		logger.Infof("Stopping scheduler...")
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer stopCancel()

		done := make(chan error, 1)
		go func() {
			done <- sched.Stop()
		}()

		select {
		case err := <-done:
			if err != nil {
				logger.Errorf("Error stopping scheduler: %v", err)
			}
		case <-stopCtx.Done():
			logger.Warnf("Scheduler stop timeout, forcing shutdown")
		}
	}

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	logger.Infof("Shutting down HTTP server...")
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	if err := db.Close(); err != nil {
		logger.Errorf("Error closing database: %v", err)
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Errorf("Error closing Redis: %v", err)
		}
	}

	logger.Infof("Graceful shutdown completed")
}
