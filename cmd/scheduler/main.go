package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/magabrotheeeer/studio-orders/internal/app/scheduler"
	"github.com/magabrotheeeer/studio-orders/internal/config"
	"github.com/magabrotheeeer/studio-orders/internal/lib/logger"
	"github.com/magabrotheeeer/studio-orders/internal/lib/sl"
)

func main() {
	cfg := config.MustLoad()
	log := logger.Setup(cfg.Env)

	log.Info("starting reminder scheduler", slog.String("env", cfg.Env))
	log.Debug("debug messages are enabled")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := scheduler.New(ctx, cfg, log)
	if err != nil {
		log.Error("failed to initialize app", sl.Err(err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		log.Error("app stopped with error", sl.Err(err))
		os.Exit(1)
	}

	log.Info("reminder scheduler stopped gracefully")
}
