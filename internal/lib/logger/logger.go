// Package logger настраивает slog-логгер в зависимости от окружения.
package logger

import (
	"io"
	"log/slog"
	"os"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

// Setup возвращает логгер для окружения env: текстовый для local,
// JSON для dev и prod. В prod отладочные сообщения отключены.
func Setup(env string) *slog.Logger {
	return New(env, os.Stdout)
}

// New как Setup, но пишет в w.
func New(env string, w io.Writer) *slog.Logger {
	switch env {
	case envDev:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
