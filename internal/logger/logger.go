package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"petsim/internal/config"
)

// Setup configures the global slog logger based on environment. The
// terminal belongs to the UI, so callers pass the writer logs go to.
func Setup(cfg *config.Config, w io.Writer) *slog.Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	if cfg.Environment == "production" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger
}

// OpenFile opens path for appending, creating its directory. An empty path
// means stderr.
func OpenFile(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stderr}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

// WithPet adds the pet id to logger context
func WithPet(logger *slog.Logger, petID string) *slog.Logger {
	return logger.With("pet_id", petID)
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
