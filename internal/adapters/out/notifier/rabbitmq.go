package notifier

import (
	"context"
	"fmt"
	"time"

	"fooddelivery/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

const (
	Exchange        = "notifications"
	EmailRoutingKey = "notification.email"
	WebRoutingKey   = "notification.web"
)

type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// RabbitMQNotifier publishes persistent JSON messages to the topic exchange
// "notifications".
type RabbitMQNotifier struct {
	channel publisher
}

var _ ports.Notifier = (*RabbitMQNotifier)(nil)

// DeclareExchange makes sure the exchange exists before the first publish.
func DeclareExchange(ch *amqp.Channel) error {
	return ch.ExchangeDeclare(
		Exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
}

func NewRabbitMQNotifier(channel publisher) *RabbitMQNotifier {
	return &RabbitMQNotifier{channel: channel}
}

func (n *RabbitMQNotifier) SendEmail(ctx context.Context, email ports.Email) error {
	body, err := encodeEmail(email)
	if err != nil {
		return err
	}
	return n.publish(ctx, EmailRoutingKey, KindEmail, body)
}

func (n *RabbitMQNotifier) SendWeb(ctx context.Context, notification ports.WebNotification) error {
	body, err := encodeWeb(notification)
	if err != nil {
		return err
	}
	return n.publish(ctx, WebRoutingKey, KindWeb, body)
}

func (n *RabbitMQNotifier) publish(ctx context.Context, routingKey, kind string, body []byte) error {
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	headers := amqp.Table{kindHeader: kind}
	for k, v := range carrier {
		headers[k] = v
	}

	err := n.channel.PublishWithContext(ctx,
		Exchange,   // exchange
		routingKey, // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Headers:      headers,
			Body:         body,
			Timestamp:    time.Now().UTC(),
		})
	if err != nil {
		return fmt.Errorf("publish %s notification: %w", kind, err)
	}
	return nil
}
