// Package scheduler собирает процесс планировщика напоминаний: хранилище,
// брокер и периодический сканер.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/studio-orders/internal/config"
	"github.com/magabrotheeeer/studio-orders/internal/lib/sl"
	"github.com/magabrotheeeer/studio-orders/internal/metrics"
	"github.com/magabrotheeeer/studio-orders/internal/rabbitmq"
	"github.com/magabrotheeeer/studio-orders/internal/services/reminder"
	"github.com/magabrotheeeer/studio-orders/internal/storage/repository"
)

const (
	dbAttempts = 10
	dbDelay    = 3 * time.Second
)

// App представляет приложение планировщика.
type App struct {
	scheduler      *reminder.Scheduler
	interval       time.Duration
	metricsAddress string
	db             *repository.Storage
	conn           *amqp.Connection
	ch             *amqp.Channel
	logger         *slog.Logger
}

// New подключается к брокеру и базе и создаёт сканер.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("failed to connect RabbitMQ: %w", err)
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.ReminderQueues())
	if err != nil {
		closeResources(nil, conn, logger)
		return nil, fmt.Errorf("failed to setup RabbitMQ channel: %w", err)
	}

	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		closeResources(ch, conn, logger)
		return nil, fmt.Errorf("failed to connect storage: %w", err)
	}

	if err := repository.WaitForDB(db, dbAttempts, dbDelay); err != nil {
		_ = db.Close()
		closeResources(ch, conn, logger)
		return nil, err
	}

	publisher := rabbitmq.NewPublisher(ch, rabbitmq.ExchangeReminders, rabbitmq.RoutingKeyDue)
	scanner := reminder.NewScanner(db, publisher, logger)

	return &App{
		scheduler:      reminder.NewScheduler(scanner, cfg.Location(), nil, logger),
		interval:       cfg.ScanInterval,
		metricsAddress: cfg.MetricsAddress,
		db:             db,
		conn:           conn,
		ch:             ch,
		logger:         logger,
	}, nil
}

func closeResources(ch *amqp.Channel, conn *amqp.Connection, logger *slog.Logger) {
	if ch != nil {
		if err := ch.Close(); err != nil {
			logger.Error("failed to close channel", sl.Err(err))
		}
	}
	if conn != nil {
		if err := conn.Close(); err != nil {
			logger.Error("failed to close connection", sl.Err(err))
		}
	}
}

// Run запускает периодическое сканирование до отмены ctx.
func (a *App) Run(ctx context.Context) error {
	go a.scheduler.Run(ctx, a.interval)
	go func() {
		if err := metrics.Serve(ctx, a.metricsAddress, a.logger); err != nil {
			a.logger.Error("metrics server stopped", sl.Err(err))
		}
	}()

	<-ctx.Done()

	a.logger.Info("shutting down scheduler service")

	closeResources(a.ch, a.conn, a.logger)
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close storage", sl.Err(err))
	}
	return nil
}
