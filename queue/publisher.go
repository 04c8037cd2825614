package queue

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/octabyte/quizmaster-client/otel"
)

type Publisher interface {
	Publish(ctx context.Context, body []byte) error
	Close() error
}

// Channel is the part of *amqp.Channel a publisher needs.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type publisher struct {
	ch     Channel
	config PublishConfig
}

func NewPublisher(ch Channel, config PublishConfig) Publisher {
	if config.ContentType == "" {
		config.ContentType = "application/json"
	}
	if config.DeliveryMode == 0 {
		config.DeliveryMode = DeliveryTransient
	}
	return &publisher{ch, config}
}

// Publish publishes a message to the configured exchange and routing key. The trace context of
// ctx travels in the message headers.
func (p *publisher) Publish(ctx context.Context, body []byte) error {
	message := amqp.Publishing{
		ContentType:  p.config.ContentType,
		Body:         body,
		DeliveryMode: p.config.DeliveryMode,
	}
	if headers := otel.InjectTraceHeaders(ctx, nil); len(headers) > 0 {
		message.Headers = make(amqp.Table, len(headers))
		for k, v := range headers {
			message.Headers[k] = v
		}
	}

	return p.ch.PublishWithContext(
		ctx,
		p.config.Exchange,
		p.config.RoutingKey,
		false, // mandatory
		false, // immediate
		message,
	)
}

// Close closes the publisher, releasing any resources it holds.
func (p *publisher) Close() error {
	return p.ch.Close()
}
