package logging

import (
	"io"
	"loan-schedule/internal/config"
	"log/slog"
	"os"
	"strings"

	"github.com/go-chi/traceid"
)

func NewLogger(cfg config.LoggerConfig) *slog.Logger {
	logger := newLogger(cfg, os.Stdout)
	slog.SetDefault(logger)
	return logger
}

func newLogger(cfg config.LoggerConfig, w io.Writer) *slog.Logger {
	level := ParseLevel(cfg.Level)
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Encoding, "text") {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(traceid.LogHandler(handler))
}

// ParseLevel maps a config level name to a slog level, defaulting to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
