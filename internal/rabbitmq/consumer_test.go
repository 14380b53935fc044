package rabbitmq

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestChannel(t *testing.T, uri string) *amqp.Channel {
	t.Helper()
	conn, err := Connect(uri, 3, time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ch, err := conn.Channel()
	require.NoError(t, err)
	return ch
}

func TestConsumerMessage_HandleMessages(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	ch := openTestChannel(t, brokerURI(ctx, t))

	queueName := "consumer-test"
	_, err := ch.QueueDeclare(queueName, false, false, false, false, nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(2)
	var mu sync.Mutex
	received := make([]string, 0)

	handler := func(body []byte) error {
		mu.Lock()
		defer mu.Unlock()
		received = append(received, string(body))
		wg.Done()
		return nil
	}
	require.NoError(t, ConsumerMessage(ctx, ch, queueName, newNoopLogger(), handler))

	for _, msg := range []string{"hello", "world"} {
		err := ch.Publish("", queueName, false, false, amqp.Publishing{
			ContentType: "text/plain",
			Body:        []byte(msg),
		})
		require.NoError(t, err)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("timeout waiting for messages to be processed")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.ElementsMatch(t, []string{"hello", "world"}, received)
}

func TestConsumerMessage_HandlerErrorRequeues(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	ch := openTestChannel(t, brokerURI(ctx, t))

	queueName := "nack-test"
	_, err := ch.QueueDeclare(queueName, false, false, false, false, nil)
	require.NoError(t, err)

	var (
		mu       sync.Mutex
		attempts int
	)
	redelivered := make(chan struct{})
	handler := func(_ []byte) error {
		mu.Lock()
		defer mu.Unlock()
		attempts++
		if attempts == 2 {
			close(redelivered)
			return nil
		}
		return errors.New("fail")
	}
	require.NoError(t, ConsumerMessage(ctx, ch, queueName, newNoopLogger(), handler))

	err = ch.Publish("", queueName, false, false, amqp.Publishing{Body: []byte("bad")})
	require.NoError(t, err)

	select {
	case <-redelivered:
	case <-time.After(10 * time.Second):
		t.Fatal("message was not redelivered after nack")
	}
}
