package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/JaimeStill/catalog-admin/internal/config"
	"github.com/JaimeStill/catalog-admin/internal/lifecycle"
	amqp "github.com/rabbitmq/amqp091-go"
)

type amqpPublisher struct {
	cfg    *config.EventsConfig
	logger *slog.Logger

	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
}

// NewAMQP creates a publisher backed by an AMQP topic exchange.
func NewAMQP(cfg *config.EventsConfig, logger *slog.Logger) Publisher {
	return &amqpPublisher{
		cfg:    cfg,
		logger: logger.With("system", "events"),
	}
}

func (p *amqpPublisher) Start(lc *lifecycle.Coordinator) error {
	if err := p.connect(); err != nil {
		return fmt.Errorf("connect broker: %w", err)
	}

	p.logger.Info("events ready", "exchange", p.cfg.Exchange)

	lc.OnShutdown(func() {
		<-lc.Context().Done()

		p.mu.Lock()
		defer p.mu.Unlock()

		if p.channel != nil {
			p.channel.Close()
		}
		if p.conn != nil {
			if err := p.conn.Close(); err != nil {
				p.logger.Error("broker close error", "error", err)
			}
		}
	})

	return nil
}

func (p *amqpPublisher) Publish(ctx context.Context, event Event) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	body, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("event marshal failed", "entity", event.Entity, "action", event.Action, "error", err)
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel == nil || p.channel.IsClosed() {
		if err := p.connect(); err != nil {
			p.logger.Warn("event dropped, broker unavailable", "routing_key", event.RoutingKey(), "error", err)
			return
		}
	}

	err = p.channel.PublishWithContext(ctx,
		p.cfg.Exchange,
		event.RoutingKey(),
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Timestamp:   event.OccurredAt,
			Body:        body,
		},
	)
	if err != nil {
		p.logger.Warn("event publish failed", "routing_key", event.RoutingKey(), "error", err)
		return
	}

	p.logger.Debug("event published", "routing_key", event.RoutingKey(), "id", event.ID)
}

// connect dials the broker and declares the topic exchange. Callers hold
// the mutex or run before any Publish.
func (p *amqpPublisher) connect() error {
	conn, err := amqp.Dial(p.cfg.URL)
	if err != nil {
		return err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return err
	}

	err = channel.ExchangeDeclare(
		p.cfg.Exchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return err
	}

	p.conn = conn
	p.channel = channel
	return nil
}
