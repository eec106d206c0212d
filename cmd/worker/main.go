package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"inventorysync/internal/app"
	"inventorysync/internal/config"
	"inventorysync/internal/logger"
	"inventorysync/internal/worker"
	"inventorysync/internal/worker/processors"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize logger
	logger := logger.New(cfg.LogLevel, cfg.LogFormat)

	a, err := app.New(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize application:", err)
	}
	defer a.Close()

	processor := processors.NewEventProcessor(a.Sync, a.Refresher, a.Registry, a.IndexerIDs, logger.With("component", "processor"))

	// Initialize worker
	w := worker.New(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.SyncInterval, processor, logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Start worker
	logger.Info("Starting worker...")
	w.Start(ctx)

	logger.Info("Shutting down worker...")
	w.Stop()
}
