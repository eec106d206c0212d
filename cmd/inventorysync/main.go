package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"inventorysync/internal/app"
	"inventorysync/internal/cli"
	"inventorysync/internal/config"
	"inventorysync/internal/logger"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	load := func() (*app.App, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		return app.New(cfg, logger.New(cfg.LogLevel, cfg.LogFormat))
	}

	if err := cli.NewRootCommand(load).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
