// Package rabbitmq содержит подключение к брокеру, объявление топологии
// напоминаний, публикацию и потребление сообщений.
package rabbitmq

import (
	"fmt"
	"time"

	"github.com/streadway/amqp"
)

const prefetchCount = 10

// Connect подключается к брокеру, делая до retries попыток с паузой delay.
func Connect(connection string, retries int, delay time.Duration) (*amqp.Connection, error) {
	const op = "rabbitmq.Connect"
	if retries <= 0 {
		return nil, fmt.Errorf("%s: retries must be positive, got %d", op, retries)
	}

	var lastErr error
	for attempt := 1; attempt <= retries; attempt++ {
		conn, err := amqp.Dial(connection)
		if err == nil {
			return conn, nil
		}
		lastErr = err
		if attempt < retries {
			time.Sleep(delay)
		}
	}
	return nil, fmt.Errorf("%s: gave up after %d attempts: %w", op, retries, lastErr)
}

// SetupChannel открывает канал, объявляет обменник напоминаний и привязывает к нему очереди.
// При любой ошибке канал закрывается.
func SetupChannel(conn *amqp.Connection, queues []QueueConfig) (*amqp.Channel, error) {
	const op = "rabbitmq.SetupChannel"

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := declareTopology(ch, queues); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ch, nil
}

func declareTopology(ch *amqp.Channel, queues []QueueConfig) error {
	if err := ch.Qos(prefetchCount, 0, false); err != nil {
		return fmt.Errorf("qos: %w", err)
	}

	// durable, не удаляется автоматически
	if err := ch.ExchangeDeclare(ExchangeReminders, amqp.ExchangeDirect, true, false, false, false, nil); err != nil {
		return fmt.Errorf("exchange %s: %w", ExchangeReminders, err)
	}

	for _, q := range queues {
		if _, err := ch.QueueDeclare(q.QueueName, true, false, false, false, nil); err != nil {
			return fmt.Errorf("queue %s: %w", q.QueueName, err)
		}
		if err := ch.QueueBind(q.QueueName, q.RoutingKey, ExchangeReminders, false, nil); err != nil {
			return fmt.Errorf("bind %s -> %s (%s): %w", q.QueueName, ExchangeReminders, q.RoutingKey, err)
		}
	}
	return nil
}
