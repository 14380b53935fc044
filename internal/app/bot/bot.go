// Package bot собирает процесс чат-бота: хранилище заказов, кеш, сессии
// мастера и клиент Telegram.
package bot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/studio-orders/internal/bot"
	"github.com/magabrotheeeer/studio-orders/internal/cache"
	"github.com/magabrotheeeer/studio-orders/internal/config"
	"github.com/magabrotheeeer/studio-orders/internal/lib/sl"
	"github.com/magabrotheeeer/studio-orders/internal/metrics"
	"github.com/magabrotheeeer/studio-orders/internal/migrations"
	"github.com/magabrotheeeer/studio-orders/internal/services/order"
	"github.com/magabrotheeeer/studio-orders/internal/storage/repository"
	"github.com/magabrotheeeer/studio-orders/internal/telegram"
)

type App struct {
	bot            *bot.Bot
	client         *telegram.Client
	db             *repository.Storage
	cache          *cache.Cache
	metricsAddress string
	logger         *slog.Logger
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect storage: %w", err)
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		_ = db.Close()
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("cache not initialized: %w", err)
	}

	client, err := telegram.New(cfg.Telegram, logger)
	if err != nil {
		_ = cacheRedis.Close()
		_ = db.Close()
		return nil, fmt.Errorf("failed to init telegram client: %w", err)
	}

	orderService := order.NewService(db, cacheRedis, logger)
	sessions := bot.NewSessionStore(cacheRedis)

	return &App{
		bot:            bot.New(orderService, sessions, client, cfg.ExportFilename, logger),
		client:         client,
		db:             db,
		cache:          cacheRedis,
		metricsAddress: cfg.MetricsAddress,
		logger:         logger,
	}, nil
}

// Run обрабатывает входящие сообщения до отмены ctx.
func (a *App) Run(ctx context.Context) error {
	go func() {
		if err := metrics.Serve(ctx, a.metricsAddress, a.logger); err != nil {
			a.logger.Error("metrics server stopped", sl.Err(err))
		}
	}()

	a.logger.Info("bot is polling for updates")
	a.bot.Run(ctx, a.client.Updates(ctx))

	a.logger.Info("shutting down bot")
	if err := a.cache.Close(); err != nil {
		a.logger.Error("failed to close cache", sl.Err(err))
	}
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close storage", sl.Err(err))
	}
	return nil
}
