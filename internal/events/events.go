package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/segyhp/growvest-engine/internal/config"
	"github.com/segyhp/growvest-engine/internal/domain"
	"github.com/sirupsen/logrus"
)

const publishTimeout = 5 * time.Second

// Publisher announces domain events that already committed
type Publisher interface {
	Publish(ctx context.Context, event domain.Event) error
	Close() error
}

// New returns an AMQP publisher when events are enabled, otherwise a no-op one
func New(cfg config.EventsConfig, log logrus.FieldLogger) (Publisher, error) {
	if !cfg.Enabled {
		return NoopPublisher{}, nil
	}

	p, err := NewAMQPPublisher(cfg, log)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// NoopPublisher drops every event
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, event domain.Event) error { return nil }

func (NoopPublisher) Close() error { return nil }

type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPPublisher publishes events to a topic exchange, routed by event type
type AMQPPublisher struct {
	exchange string
	log      logrus.FieldLogger

	conn    *amqp.Connection
	channel amqpChannel
	mu      sync.Mutex
}

func NewAMQPPublisher(cfg config.EventsConfig, log logrus.FieldLogger) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(cfg.AMQPURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(
		cfg.Exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,   // arguments
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	log.WithField("exchange", cfg.Exchange).Info("connected to RabbitMQ")

	return &AMQPPublisher{
		exchange: cfg.Exchange,
		log:      log,
		conn:     conn,
		channel:  ch,
	}, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, event domain.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(ctx, p.exchange, event.Type, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.OccurredAt,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}

	p.log.WithField("event", event.Type).Debug("event published")
	return nil
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel != nil {
		p.channel.Close()
		p.channel = nil
	}
	if p.conn != nil {
		err := p.conn.Close()
		p.conn = nil
		return err
	}
	return nil
}
