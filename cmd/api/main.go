package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inventorysync/internal/api"
	"inventorysync/internal/api/handlers"
	"inventorysync/internal/app"
	"inventorysync/internal/config"
	"inventorysync/internal/events"
	"inventorysync/internal/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize logger
	logger := logger.New(cfg.LogLevel, cfg.LogFormat)

	// Initialize database, stores and cache
	a, err := app.New(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize application:", err)
	}
	defer a.Close()

	producer := events.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
	defer producer.Close()

	var cache handlers.ResponseCache
	if a.Cache != nil {
		cache = a.Cache
	}

	// Initialize API server
	server := api.New(api.Options{
		Env:     cfg.Env,
		Host:    cfg.APIHost,
		Port:    cfg.APIPort,
		StoreID: cfg.StoreID,
	}, logger, a.Products, a.Categories, a.SourceItems, cache, producer)

	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Stop(ctx); err != nil {
		logger.Error("Server shutdown failed: %v", err)
	}
}
