package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	RoutingKeyScheduleComputed = "schedule.computed"
	publisherAppID             = "loan-schedule"
)

// amqpChannel is the part of *amqp.Channel the publisher uses.
type amqpChannel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type channelOpener func() (amqpChannel, error)

type RabbitMQPublisher struct {
	openChannel  channelOpener
	exchangeName string
	logger       *slog.Logger
}

func NewRabbitMQPublisher(conn *amqp.Connection, exchangeName string, logger *slog.Logger) (Publisher, error) {
	if conn == nil {
		return nil, fmt.Errorf("RabbitMQ connection cannot be nil")
	}
	return newRabbitMQPublisher(func() (amqpChannel, error) {
		return conn.Channel()
	}, exchangeName, logger)
}

func newRabbitMQPublisher(open channelOpener, exchangeName string, logger *slog.Logger) (*RabbitMQPublisher, error) {
	if exchangeName == "" {
		return nil, fmt.Errorf("RabbitMQ exchange name cannot be empty")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	tempCh, err := open()
	if err != nil {
		return nil, fmt.Errorf("failed to open temporary channel for exchange declaration: %w", err)
	}
	defer tempCh.Close()

	err = tempCh.ExchangeDeclare(
		exchangeName,
		amqp.ExchangeTopic,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to declare exchange '%s': %w", exchangeName, err)
	}
	logger.Info("Ensured RabbitMQ exchange exists", "exchange", exchangeName, "type", amqp.ExchangeTopic)

	return &RabbitMQPublisher{
		openChannel:  open,
		exchangeName: exchangeName,
		logger:       logger.With("component", "RabbitMQPublisher", "exchange", exchangeName),
	}, nil
}

func (p *RabbitMQPublisher) PublishScheduleComputed(ctx context.Context, event ScheduleComputedEvent) error {
	return p.publish(ctx, RoutingKeyScheduleComputed, event)
}

func (p *RabbitMQPublisher) publish(ctx context.Context, routingKey string, payload any) error {
	logCtx := p.logger.With(slog.String("routingKey", routingKey))

	channel, err := p.openChannel()
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to open RabbitMQ channel", slog.Any("error", err))
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer channel.Close()

	body, err := json.Marshal(payload)
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to marshal event payload to JSON", slog.Any("error", err))
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	logCtx.DebugContext(ctx, "Publishing message", "bodySize", len(body))

	err = channel.PublishWithContext(
		ctx,
		p.exchangeName,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Transient,
			Timestamp:    time.Now(),
			Body:         body,
			AppId:        publisherAppID,
		},
	)
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to publish message to RabbitMQ", slog.Any("error", err))
		return fmt.Errorf("failed to publish message: %w", err)
	}

	logCtx.DebugContext(ctx, "Successfully published message")
	return nil
}
