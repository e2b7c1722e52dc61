// Package logging provides the shared structured logger for infiniscroll.
//
// It wraps [log/slog] with a single initialization point so every component
// writes through the same handler and level. The level is read once from the
// INFINISCROLL_LOG_LEVEL environment variable (debug, info, warn, error) and
// defaults to INFO.
//
// A terminal UI owns stdout and the alternate screen, and stray writes to
// stderr tear the rendered frame. Set INFINISCROLL_LOG_FILE to send log
// output to a file instead; without it, output goes to stderr.
//
// Usage:
//
//	log := logging.New("carousel")
//	log.Debug("layout pass", "items", n)
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	initLogger sync.Once
	baseLogger *slog.Logger
)

// New returns a logger tagged with component. An empty component returns the
// base logger.
func New(component string) *slog.Logger {
	initLogger.Do(func() {
		baseLogger = slog.New(slog.NewTextHandler(openOutput(os.Getenv("INFINISCROLL_LOG_FILE")), &slog.HandlerOptions{
			Level: parseLevel(os.Getenv("INFINISCROLL_LOG_LEVEL")),
		}))
	})
	if component == "" {
		return baseLogger
	}
	return baseLogger.With("component", component)
}

// openOutput opens the log file at path for appending. It falls back to
// stderr when path is empty or cannot be opened.
func openOutput(path string) io.Writer {
	path = strings.TrimSpace(path)
	if path == "" {
		return os.Stderr
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return os.Stderr
	}
	return f
}

// parseLevel converts a level name to a [slog.Level]; unknown values map to
// INFO.
func parseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
