package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Setup creates and configures the application logger. When logDir is
// non-empty a copy of the log stream is written to icon-render-driver.log in
// that directory alongside stdout
func Setup(logLevel, logFormat, logDir string) *slog.Logger {
	// Parse log level
	logLevel = strings.ToLower(logLevel)
	var level slog.Level
	switch logLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var out io.Writer = os.Stdout
	if logDir != "" {
		logPath := filepath.Join(logDir, "icon-render-driver.log")
		if f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err == nil {
			out = io.MultiWriter(os.Stdout, f)
		}
		// A failure to open the log file falls back to stdout only; the
		// tool is a one-shot build step and must not die over its own log
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if strings.ToLower(logFormat) == "json" {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	return slog.New(handler)
}
