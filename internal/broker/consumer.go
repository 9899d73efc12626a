package broker

import (
	"errors"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Consumer lê a fila de eventos (auto-ack). Usado pelo relay de WebSocket.
type Consumer struct {
	conn       *amqp.Connection
	ch         *amqp.Channel
	deliveries <-chan amqp.Delivery
}

func NewConsumer(uri, queue, tag string, prefetch int, log *slog.Logger) (*Consumer, error) {
	if log == nil {
		log = slog.Default()
	}
	conn, err := amqp.Dial(uri)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	fail := func(err error) (*Consumer, error) {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	if err := declareQueue(ch, queue); err != nil {
		return fail(fmt.Errorf("rabbitmq queue %s: %w", queue, err))
	}
	if prefetch > 0 {
		if err := ch.Qos(prefetch, 0, false); err != nil {
			return fail(fmt.Errorf("rabbitmq qos: %w", err))
		}
	}

	deliveries, err := ch.Consume(
		queue,
		tag,
		true,  // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fail(fmt.Errorf("rabbitmq consume: %w", err))
	}

	log.Info("rabbit_consumer_started", "queue", queue, "prefetch", prefetch)
	return &Consumer{conn: conn, ch: ch, deliveries: deliveries}, nil
}

// Deliveries fecha quando o canal ou a conexão caem.
func (c *Consumer) Deliveries() <-chan amqp.Delivery {
	return c.deliveries
}

func (c *Consumer) Close() error {
	var errCh, errConn error
	if c.ch != nil {
		errCh = c.ch.Close()
	}
	if c.conn != nil {
		errConn = c.conn.Close()
	}
	return errors.Join(errCh, errConn)
}
