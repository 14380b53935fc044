// Package sender собирает процесс отправителя: читает напоминания из очереди
// и доставляет их в Telegram.
package sender

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/studio-orders/internal/config"
	"github.com/magabrotheeeer/studio-orders/internal/lib/sl"
	"github.com/magabrotheeeer/studio-orders/internal/metrics"
	"github.com/magabrotheeeer/studio-orders/internal/rabbitmq"
	senderservice "github.com/magabrotheeeer/studio-orders/internal/services/sender"
	"github.com/magabrotheeeer/studio-orders/internal/telegram"
)

type App struct {
	conn           *amqp.Connection
	ch             *amqp.Channel
	senderService  *senderservice.SenderService
	metricsAddress string
	logger         *slog.Logger
}

func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	client, err := telegram.New(cfg.Telegram, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram client: %w", err)
	}

	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("failed to connect RabbitMQ: %w", err)
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.ReminderQueues())
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to setup RabbitMQ channel: %w", err)
	}

	return &App{
		conn:           conn,
		ch:             ch,
		senderService:  senderservice.NewSenderService(client, cfg.SendRPS, logger),
		metricsAddress: cfg.MetricsAddress,
		logger:         logger,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumerMessage(ctx, a.ch, rabbitmq.QueueRemindersDue, a.logger, a.senderService.Handler(ctx))
	if err != nil {
		a.logger.Error("failed to start consumer", slog.String("queue", rabbitmq.QueueRemindersDue), sl.Err(err))
		return err
	}
	go func() {
		if err := metrics.Serve(ctx, a.metricsAddress, a.logger); err != nil {
			a.logger.Error("metrics server stopped", sl.Err(err))
		}
	}()

	<-ctx.Done()
	a.logger.Info("sender service shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", sl.Err(err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", sl.Err(err))
	}
	return nil
}
