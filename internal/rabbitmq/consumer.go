package rabbitmq

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/studio-orders/internal/lib/sl"
)

const maxInFlight = 10

// ConsumerMessage запускает потребителя очереди. Успешно обработанные сообщения
// подтверждаются, при ошибке обработчика сообщение возвращается в очередь.
func ConsumerMessage(ctx context.Context, ch *amqp.Channel, queueName string, log *slog.Logger, handler func([]byte) error) error {
	const op = "rabbitmq.ConsumerMessage"
	delivery, err := ch.Consume(
		queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	go dispatch(ctx, delivery, log, handler)
	return nil
}

// dispatch раздаёт сообщения не более чем maxInFlight обработчикам и
// завершается при закрытии канала доставки или отмене ctx.
func dispatch(ctx context.Context, deliveries <-chan amqp.Delivery, log *slog.Logger, handler func([]byte) error) {
	sem := make(chan struct{}, maxInFlight)
	for {
		var d amqp.Delivery
		select {
		case msg, ok := <-deliveries:
			if !ok {
				return
			}
			d = msg
		case <-ctx.Done():
			return
		}

		// неподтверждённое сообщение вернётся в очередь при закрытии канала
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			return
		}

		go func(delivery amqp.Delivery) {
			defer func() { <-sem }()
			if err := handler(delivery.Body); err != nil {
				log.Warn("handler failed, requeueing", slog.String("message_id", delivery.MessageId), sl.Err(err))
				if nackErr := delivery.Nack(false, true); nackErr != nil {
					log.Error("failed to nack message", sl.Err(nackErr))
				}
				return
			}
			if ackErr := delivery.Ack(false); ackErr != nil {
				log.Error("failed to ack message", sl.Err(ackErr))
			}
		}(d)
	}
}
