// Package messaging publishes domain events to RabbitMQ.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
)

const publishTimeout = 5 * time.Second

// Publisher implements adapter.EventPublisher over a direct exchange.
// The event type is used as routing key.
type Publisher struct {
	mu           sync.Mutex // amqp091 channels are not safe for concurrent publishing
	conn         *amqp091.Connection
	channel      *amqp091.Channel
	exchangeName string
}

// NewPublisher dials the broker and declares the exchange.
func NewPublisher(url, exchangeName string) (*Publisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchangeName, // name
		"direct",     // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &Publisher{
		conn:         conn,
		channel:      channel,
		exchangeName: exchangeName,
	}, nil
}

// Publish sends the event as a persistent JSON message.
func (p *Publisher) Publish(ctx context.Context, event entity.DomainEvent) error {
	msg, err := newPublishing(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(
		ctx,
		p.exchangeName,     // exchange
		string(event.Type), // routing key
		false,              // mandatory
		false,              // immediate
		msg,
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	slog.DebugContext(ctx, "Published domain event",
		"event_id", event.ID,
		"type", event.Type,
		"exchange", p.exchangeName)

	return nil
}

// Close releases the channel and the connection.
func (p *Publisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

func newPublishing(event entity.DomainEvent) (amqp091.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp091.Publishing{}, fmt.Errorf("marshal event: %w", err)
	}

	return amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		MessageId:    event.ID.String(),
		Type:         string(event.Type),
		Timestamp:    event.OccurredAt,
		Body:         body,
	}, nil
}

// LogPublisher implements adapter.EventPublisher by logging events.
// It is used when no broker URL is configured.
type LogPublisher struct{}

// NewLogPublisher creates a new LogPublisher.
func NewLogPublisher() *LogPublisher {
	return &LogPublisher{}
}

// Publish logs the event.
func (LogPublisher) Publish(ctx context.Context, event entity.DomainEvent) error {
	slog.InfoContext(ctx, "Domain event",
		"event_id", event.ID,
		"type", event.Type,
		"user_id", event.UserID,
		"aggregate_id", event.AggregateID)
	return nil
}

// Close is a no-op.
func (LogPublisher) Close() error {
	return nil
}

var (
	_ adapter.EventPublisher = (*Publisher)(nil)
	_ adapter.EventPublisher = (*LogPublisher)(nil)
)
