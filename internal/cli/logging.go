package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// setupLogger builds the diagnostics logger. Reports never go through it.
func setupLogger(level string, w io.Writer) (*slog.Logger, error) {
	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn", "warning":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		return nil, fmt.Errorf("invalid log level %q (use debug, info, warn or error)", level)
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: logLevel})
	return slog.New(handler), nil
}
