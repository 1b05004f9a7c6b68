package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/securedevx/Bitecraft-footweb/internal/order"
)

// channel is the subset of *amqp.Channel the publisher needs.
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type RabbitPublisher struct {
	ch     channel
	logger *zap.Logger
	now    func() time.Time
}

func NewRabbitPublisher(conn *amqp.Connection, logger *zap.Logger) (*RabbitPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}
	p, err := newRabbitPublisher(ch, logger)
	if err != nil {
		_ = ch.Close()
		return nil, err
	}
	return p, nil
}

func newRabbitPublisher(ch channel, logger *zap.Logger) (*RabbitPublisher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := declareEventsExchange(ch); err != nil {
		return nil, fmt.Errorf("declare exchange %s: %w", EventsExchange, err)
	}
	return &RabbitPublisher{ch: ch, logger: logger, now: time.Now}, nil
}

func (p *RabbitPublisher) Close() error {
	return p.ch.Close()
}

func (p *RabbitPublisher) PublishOrderPlaced(ctx context.Context, o order.Order) error {
	env := NewOrderPlacedEnvelope(o, MetadataFromContext(ctx), p.now())
	if err := env.Validate(OrderPlacedEventName, OrderPlacedEventVersion); err != nil {
		return fmt.Errorf("order %q: %w", o.ID, err)
	}

	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", OrderPlacedEventName, err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := p.ch.PublishWithContext(
		pubCtx,
		EventsExchange,
		OrderPlacedRoutingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:   "application/json",
			DeliveryMode:  amqp.Persistent,
			MessageId:     env.EventID,
			CorrelationId: env.CorrelationID,
			Timestamp:     env.OccurredAt,
			Type:          OrderPlacedEventName,
			Body:          body,
		},
	); err != nil {
		return fmt.Errorf("publish %s: %w", OrderPlacedRoutingKey, err)
	}

	p.logger.Debug("event published",
		zap.String("routing_key", OrderPlacedRoutingKey),
		zap.String("event_id", env.EventID),
		zap.String("order_id", o.ID))
	return nil
}

// LogPublisher records placed orders in the log when no broker is configured.
type LogPublisher struct {
	logger *zap.Logger
}

func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) PublishOrderPlaced(ctx context.Context, o order.Order) error {
	env := NewOrderPlacedEnvelope(o, MetadataFromContext(ctx), time.Now())
	if err := env.Validate(OrderPlacedEventName, OrderPlacedEventVersion); err != nil {
		return fmt.Errorf("order %q: %w", o.ID, err)
	}
	p.logger.Info("new order received",
		zap.String("event_id", env.EventID),
		zap.String("correlation_id", env.CorrelationID),
		zap.String("order_id", o.ID),
		zap.Time("timestamp", o.CreatedAt),
		zap.String("customer", o.Customer.Name),
		zap.String("email", o.Customer.Email),
		zap.Int("items", o.ItemCount()),
		zap.String("total", "$"+o.Total.StringFixed(2)),
		zap.String("payment_method", o.PaymentMethod))
	return nil
}

func (p *LogPublisher) Close() error { return nil }
