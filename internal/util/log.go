// Package util provides shared helpers for logging, retries, and rate
// limiting of external API calls.
package util

import (
	"log/slog"
	"os"
	"strings"
)

// NewLogger creates a structured log/slog logger at the given level.
// Supported levels: "debug", "info", "warn", "error" (default "info").
// Supported formats: "json" (default) and "text".
func NewLogger(level, format string) *slog.Logger {
	var slevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		slevel = slog.LevelDebug
	case "info":
		slevel = slog.LevelInfo
	case "warn":
		slevel = slog.LevelWarn
	case "error":
		slevel = slog.LevelError
	default:
		slevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: slevel}

	var handler slog.Handler
	if strings.ToLower(format) == "text" {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}
