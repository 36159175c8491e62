// Package main implements the entry point for the eventhub server, which
// exposes an in-process event registry over a small JSON API.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
)

func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.Run(context.Background()); err != nil {
		slog.Error("Application exited with error", "error", err)
		log.Fatalf("Application error: %v", err)
	}
}

// initializeApp loads configuration, sets up logging and builds the
// application.
func initializeApp() (*application, error) {
	cfg, err := loadAppConfig()
	if err != nil {
		return nil, err
	}

	logger, err := setupAppLogger(cfg)
	if err != nil {
		return nil, err
	}

	logger.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"max_listeners", cfg.Events.MaxListeners,
		"channels", cfg.Events.Channels)

	app, err := newApplication(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	return app, nil
}
