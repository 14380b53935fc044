package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	botapp "github.com/magabrotheeeer/studio-orders/internal/app/bot"
	"github.com/magabrotheeeer/studio-orders/internal/config"
	"github.com/magabrotheeeer/studio-orders/internal/lib/logger"
	"github.com/magabrotheeeer/studio-orders/internal/lib/sl"
)

func main() {
	cfg := config.MustLoad()
	log := logger.Setup(cfg.Env)

	log.Info("starting studio-bot", slog.String("env", cfg.Env))
	log.Debug("debug messages are enabled")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := botapp.New(ctx, cfg, log)
	if err != nil {
		log.Error("failed to initialize app", sl.Err(err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		log.Error("app stopped with error", sl.Err(err))
		os.Exit(1)
	}

	log.Info("studio-bot stopped gracefully")
}
