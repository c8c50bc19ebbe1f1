package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/axo-networks/marketplace-api/docs"
	"github.com/axo-networks/marketplace-api/internal/auth"
	"github.com/axo-networks/marketplace-api/internal/config"
	"github.com/axo-networks/marketplace-api/internal/database"
	"github.com/axo-networks/marketplace-api/internal/http/handler"
	"github.com/axo-networks/marketplace-api/internal/http/middleware"
	"github.com/axo-networks/marketplace-api/internal/http/router"
	"github.com/axo-networks/marketplace-api/internal/jobs"
	"github.com/axo-networks/marketplace-api/internal/logger"
	"github.com/axo-networks/marketplace-api/internal/repository"
	"github.com/axo-networks/marketplace-api/internal/service"
	"github.com/axo-networks/marketplace-api/internal/storage"
	"go.uber.org/zap"
)

// @title AXO Marketplace API
// @version 1.0
// @description B2B manufacturing marketplace: programs, sourcing requests, demand listings and role dashboards

// @contact.name AXO Networks
// @contact.email support@axo.example

// @host localhost:5000
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token
// @Security BearerAuth

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	if basicCfg.App.Environment == "development" {
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)
	} else {
		// served from whatever host the request came in on
		docs.SwaggerInfo.Host = ""
	}

	// In staging/production the JWT secret and database password come from Key Vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	db, err := database.NewDatabase(&cfg.Database, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	// Uploads answer 503 until storage is reachable; the rest of the API keeps working
	fileStorage, err := storage.NewStorage(&cfg.Storage, log)
	if err != nil {
		log.Warn("Storage unavailable, design file uploads disabled", zap.Error(err))
		fileStorage = nil
	} else {
		log.Info("Storage initialized", zap.String("mode", cfg.Storage.Mode))
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	programRepo := repository.NewProgramRepository(db)
	sourcingRepo := repository.NewSourcingRequestRepository(db)
	demandRepo := repository.NewDemandListingRepository(db)
	metricsRepo := repository.NewMetricsRepository(db)

	// Services
	tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
	metricsService := service.NewMetricsService(programRepo, metricsRepo, &cfg.Metrics, log)
	metricsService.Start(ctx)
	// drains queued recomputes before the pool closes
	defer metricsService.Stop()

	authService := service.NewAuthService(userRepo, auth.NewBcryptHasher(cfg.Auth.BcryptCost), tokens, &cfg.Auth, log)
	profileService := service.NewProfileService(userRepo, log)
	programService := service.NewProgramService(programRepo, userRepo, metricsService, log)
	sourcingService := service.NewSourcingService(sourcingRepo, userRepo, log)
	demandService := service.NewDemandService(demandRepo, log)
	dashboardService := service.NewDashboardService(userRepo, programRepo, sourcingRepo, demandRepo, metricsService, log)
	fileService := service.NewFileService(fileStorage, log)

	// Middleware
	authMiddleware := auth.NewMiddleware(tokens, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	rt := router.NewRouter(cfg, log, authMiddleware, rateLimiter, router.Handlers{
		Auth:         handler.NewAuthHandler(authService, log),
		Dashboard:    handler.NewDashboardHandler(dashboardService, profileService, sourcingService, demandService, log),
		Manufacturer: handler.NewManufacturerHandler(programService, sourcingService, demandService, metricsService, log),
		Supplier:     handler.NewSupplierHandler(programService, demandService, profileService, log),
		File:         handler.NewFileHandler(fileService, cfg.Storage.MaxUploadSizeMB, log),
		Health:       handler.NewHealthHandler(db, log),
	})

	var scheduler *jobs.Scheduler
	if cfg.Metrics.SweepEnabled {
		scheduler = jobs.NewScheduler(log)
		if err := jobs.RegisterMetricsSweepJob(
			scheduler,
			metricsService,
			log,
			cfg.Metrics.SweepCron,
			cfg.Metrics.SweepTimeoutDuration(),
			true, // sweep once at startup
		); err != nil {
			log.Error("Failed to register metrics sweep job", zap.Error(err))
			scheduler = nil
		} else {
			scheduler.Start()
			defer func() {
				<-scheduler.Stop().Done()
				log.Info("Scheduler stopped")
			}()
			log.Info("Scheduler started with metrics sweep job",
				zap.String("cron_expr", cfg.Metrics.SweepCron),
				zap.Duration("timeout", cfg.Metrics.SweepTimeoutDuration()),
			)
		}
	} else {
		log.Info("Metrics sweep disabled")
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
