// Package rabbit publishes and consumes change notifications over
// RabbitMQ. The exchange is a fanout: every connected client process
// gets every change, and the payload never carries state, only the
// instruction to re-fetch.
package rabbit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"dispatch/internal/changes"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// ChangesExchange is the fanout exchange carrying change events.
const ChangesExchange = "dispatch.changes"

// Notifier is the RabbitMQ-backed change channel. It implements the
// command side's ChangePublisher and exposes the consuming side as a
// Change stream for the watcher.
type Notifier struct {
	conn   *amqp.Connection
	ch     *amqp.Channel
	logger *slog.Logger
}

// Dial connects to the broker and declares the fanout exchange.
func Dial(url string, logger *slog.Logger) (*Notifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	if err = ch.ExchangeDeclare(ChangesExchange, "fanout", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	return &Notifier{
		conn:   conn,
		ch:     ch,
		logger: logger.With("component", "rabbit_notifier"),
	}, nil
}

// Close releases the channel and connection.
func (n *Notifier) Close() {
	if n == nil {
		return
	}
	if n.ch != nil {
		_ = n.ch.Close()
	}
	if n.conn != nil {
		_ = n.conn.Close()
	}
}

// PublishChange emits a change event for the resource. Callers treat
// this as best effort; an error here only delays freshness until the
// next poll.
func (n *Notifier) PublishChange(ctx context.Context, resource, key string) error {
	change := changes.Change{
		EventID:  uuid.New(),
		Resource: resource,
		Key:      key,
		At:       time.Now().UTC(),
	}

	body, err := json.Marshal(change)
	if err != nil {
		return err
	}

	err = n.ch.PublishWithContext(ctx, ChangesExchange, "", false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		Timestamp:    change.At,
		ContentType:  "application/json",
		Body:         body,
	})
	if err != nil {
		n.logger.WarnContext(ctx, "Change publish failed, polling will cover it",
			"resource", resource, "error", err)
		return err
	}

	return nil
}

// Notifications binds an exclusive queue to the changes exchange and
// returns the decoded event stream. The channel closes when the broker
// connection drops; the consumer is expected to fall back to polling.
func (n *Notifier) Notifications(ctx context.Context) (<-chan changes.Change, error) {
	queue, err := n.ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		return nil, fmt.Errorf("declare notification queue: %w", err)
	}

	if err = n.ch.QueueBind(queue.Name, "", ChangesExchange, false, nil); err != nil {
		return nil, fmt.Errorf("bind notification queue: %w", err)
	}

	deliveries, err := n.ch.Consume(queue.Name, "", true, true, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("consume notification queue: %w", err)
	}

	out := make(chan changes.Change)
	go func() {
		defer close(out)
		for delivery := range deliveries {
			var change changes.Change
			if err := json.Unmarshal(delivery.Body, &change); err != nil {
				n.logger.WarnContext(ctx, "Dropping malformed change event", "error", err)
				continue
			}

			select {
			case out <- change:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

// NopPublisher is the stand-in used when the broker is unreachable at
// startup. Mutations proceed; clients stay current through polling
// alone.
type NopPublisher struct{}

// PublishChange does nothing.
func (NopPublisher) PublishChange(context.Context, string, string) error {
	return nil
}
