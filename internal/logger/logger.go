// Package logger builds the slog loggers used across fizzcheck.
package logger

import (
	"io"
	"log/slog"

	"github.com/zeropsio/fizzcheck/internal/config"
)

// New returns a logger for env: colored text for local runs, JSON otherwise.
func New(env string, w io.Writer) *slog.Logger {
	switch env {
	case config.EnvDev:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case config.EnvProd:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(NewPrettyHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// Err wraps an error as a log attribute.
func Err(err error) slog.Attr {
	return slog.String("error", err.Error())
}
