package messaging

import (
	"fmt"
	"time"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

const (
	dialAttempts = 3
	dialDelay    = 2 * time.Second
)

// Connection owns the broker connection and the publishing channel.
type Connection struct {
	conn    *amqp.Connection
	Channel *amqp.Channel
}

// Dial connects and declares the durable notification queue.
func Dial(url, queue string, logger *zap.Logger) (*Connection, error) {
	var conn *amqp.Connection
	var err error
	for i := 0; i < dialAttempts; i++ {
		conn, err = amqp.Dial(url)
		if err == nil {
			break
		}
		logger.Warn("rabbitmq connection failed", zap.Int("attempt", i+1), zap.Error(err))
		if i < dialAttempts-1 {
			time.Sleep(dialDelay)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	if _, err := ch.QueueDeclare(
		queue, // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue %s: %w", queue, err)
	}
	logger.Info("rabbitmq connected", zap.String("queue", queue))
	return &Connection{conn: conn, Channel: ch}, nil
}

func (c *Connection) Close() error {
	if c == nil {
		return nil
	}
	if c.Channel != nil {
		_ = c.Channel.Close()
	}
	return c.conn.Close()
}
