package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/applyflow/applyflow/internal/api"
	"github.com/applyflow/applyflow/internal/capture"
	"github.com/applyflow/applyflow/internal/config"
	"github.com/applyflow/applyflow/internal/logger"
	"github.com/applyflow/applyflow/internal/notify"
	"github.com/applyflow/applyflow/internal/processor"
	"github.com/applyflow/applyflow/internal/repository"
	"github.com/applyflow/applyflow/internal/search"
	"github.com/applyflow/applyflow/internal/search/scheduler"
	"github.com/applyflow/applyflow/internal/storage"
)

func main() {
	// Load configuration
	// Support CONFIG_PATH environment variable for production deployments
	configPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(&logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		ServiceName: "applyflow-api",
		LogFile:     cfg.Log.File,
	})
	logger.SetDefault(log)

	// Initialize database
	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize database")
	}
	repo := repository.NewJobRepository(db)

	// Initialize screenshot storage
	shots, err := storage.NewStore(&cfg.Storage)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize storage")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if s3, ok := shots.(*storage.S3Store); ok {
		if err := s3.EnsureBucket(ctx); err != nil {
			log.WithError(err).Fatal("Failed to ensure storage bucket")
		}
	}

	// Settings document, seeded from the static configuration
	settings := config.NewSettingsStore(cfg.SettingsPath, cfg.Settings)

	// Processing pipeline
	proc := processor.New(repo, shots, capture.NewChromeCapturer(&cfg.Render), log)
	mailer := notify.NewMailer(repo, shots, log)

	// Auto-scrape scheduler
	sched := scheduler.New(
		search.NewService(repo, search.DefaultSources(cfg.Settings.Search.SerpAPIKey, log), log),
		settings,
		log,
	)
	if err := sched.Start(ctx, cfg.Settings.Search.ScrapeIntervalHours); err != nil {
		log.WithError(err).Fatal("Failed to start scheduler")
	}
	defer sched.Stop()

	// Local captures are served statically; S3 captures resolve to their
	// own public URLs.
	screenshotDir := ""
	if local, ok := shots.(*storage.LocalStore); ok {
		screenshotDir = local.Dir()
	}

	// Setup router
	router := api.SetupRouter(api.Deps{
		Repo:          repo,
		Proc:          proc,
		Mailer:        mailer,
		Settings:      settings,
		Log:           log,
		ScreenshotDir: screenshotDir,
	}, cfg.Server)

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.WithFields(logger.Fields{
			"port": cfg.Server.Port,
			"mode": cfg.Server.Mode,
		}).Info("Starting API server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Fatal("Server forced to shutdown")
	}

	log.Info("Server exited")
}
