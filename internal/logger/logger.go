package logger

import (
	"log/slog"
	"os"
	"strings"

	"github.com/gdugdh24/matches-backend/internal/config"
)

// New builds the process-wide JSON logger from config.
func New(cfg *config.LoggingConfig) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
	}))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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
