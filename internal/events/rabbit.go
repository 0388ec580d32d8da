package events

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Dial connects to RabbitMQ, retrying with exponential backoff until
// connectTimeout elapses.
func Dial(ctx context.Context, url string, connectTimeout time.Duration) (*amqp.Connection, error) {
	operation := func() (*amqp.Connection, error) {
		return amqp.Dial(url)
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxInterval = 5 * time.Second
	conn, err := backoff.Retry(ctx, operation, backoff.WithBackOff(bo), backoff.WithMaxElapsedTime(connectTimeout))
	if err != nil {
		return nil, fmt.Errorf("connect to RabbitMQ: %w", err)
	}
	return conn, nil
}
