package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/applyflow/applyflow/internal/capture"
	"github.com/applyflow/applyflow/internal/config"
	"github.com/applyflow/applyflow/internal/logger"
	"github.com/applyflow/applyflow/internal/processor"
	"github.com/applyflow/applyflow/internal/repository"
	"github.com/applyflow/applyflow/internal/storage"
)

func main() {
	// Initialize logger first (with defaults)
	appLogger := logger.New(&logger.Config{
		Level:       "info",
		Format:      "json",
		ServiceName: "applyflow-process",
	})
	logger.SetDefault(appLogger)

	// Parse command line flags
	jobID := flag.String("job", "", "Process a single pending job by id instead of the whole batch")
	configPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load config")
	}

	// Initialize database
	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize database")
	}
	repo := repository.NewJobRepository(db)

	// Initialize screenshot storage
	shots, err := storage.NewStore(&cfg.Storage)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize storage")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if s3, ok := shots.(*storage.S3Store); ok {
		if err := s3.EnsureBucket(ctx); err != nil {
			appLogger.WithError(err).Fatal("Failed to ensure storage bucket")
		}
	}

	// The saved settings document overrides the static defaults when it
	// exists, matching what the API serves.
	settingsStore := config.NewSettingsStore(cfg.SettingsPath, cfg.Settings)
	settings, err := settingsStore.Read()
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to read settings")
	}

	proc := processor.New(repo, shots, capture.NewChromeCapturer(&cfg.Render), appLogger)

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		appLogger.Info("Received shutdown signal, canceling...")
		cancel()
	}()

	if *jobID != "" {
		job, err := proc.ProcessByID(ctx, *jobID, &settings)
		if err != nil {
			appLogger.WithError(err).Fatal("Failed to process job")
		}
		appLogger.WithFields(logger.Fields{
			logger.FieldJobID:  job.ID,
			logger.FieldStatus: job.Status,
		}).Info("Job processed")
		return
	}

	if err := proc.ProcessAll(ctx, &settings); err != nil {
		appLogger.WithError(err).Fatal("Failed to process jobs")
	}
}
