package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/eventhub/internal/config"
	"github.com/phrazzld/eventhub/internal/events"
	"github.com/phrazzld/eventhub/internal/platform/logger"
)

// application holds the shared application dependencies.
type application struct {
	config   *config.Config
	logger   *slog.Logger
	registry *events.Registry
}

// newApplication creates the event registry and registers a logging listener
// on every configured channel.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}

	app := &application{
		config: cfg,
		logger: logger,
		registry: events.NewRegistry(logger,
			events.WithMaxListeners(cfg.Events.MaxListeners)),
	}

	for _, channel := range cfg.Events.Channels {
		app.registry.On(channel, newLoggingListener(channel, logger))
	}

	logger.Info("Application initialized successfully",
		"channel_count", len(app.registry.ChannelNames()))
	return app, nil
}

// newLoggingListener returns a listener that records each event it receives,
// preferring the request-scoped logger carried by ctx.
func newLoggingListener(channel string, base *slog.Logger) events.Listener {
	fallback := base.With("component", "logging_listener", "channel", channel)
	return func(ctx context.Context, args ...any) error {
		logger.FromContextOrDefault(ctx, fallback).Info("event triggered",
			"channel", channel,
			"args", args)
		return nil
	}
}

// Run starts the HTTP server and blocks until it shuts down.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	app.logger.Info("Application shutdown completed",
		"channel_count", len(app.registry.ChannelNames()))
}
