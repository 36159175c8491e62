// Package main walks through the event registry: two listeners on one
// channel, an emit, and a listener count.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/phrazzld/eventhub/internal/events"
)

const demoChannel = "myevent1"

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	if err := run(context.Background(), os.Stdout, logger); err != nil {
		log.Fatalf("demo failed: %v", err)
	}
}

// run registers the demo listeners, emits once and prints the listener count.
func run(ctx context.Context, out io.Writer, logger *slog.Logger) error {
	registry := events.NewRegistry(logger)

	registry.On(demoChannel, func(ctx context.Context, args ...any) error {
		_, err := fmt.Fprintln(out, "event triggered")
		return err
	})
	registry.AddListener(demoChannel, func(ctx context.Context, args ...any) error {
		_, err := fmt.Fprintln(out, "Another event listener added")
		return err
	})

	if _, err := registry.Emit(ctx, demoChannel); err != nil {
		return fmt.Errorf("emit %s: %w", demoChannel, err)
	}

	_, err := fmt.Fprintln(out, registry.ListenerCount(demoChannel))
	return err
}
