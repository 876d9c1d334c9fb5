package notifier

import (
	"context"
	"fmt"

	"fooddelivery/internal/core/ports"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

const kindHeader = "notification-kind"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// KafkaNotifier writes one record per notification to a single topic. The
// record carries its kind and the trace context in headers.
type KafkaNotifier struct {
	writer messageWriter
	topic  string
}

var _ ports.Notifier = (*KafkaNotifier)(nil)

// NewKafkaWriter builds the writer used in production.
func NewKafkaWriter(brokers []string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
}

func NewKafkaNotifier(writer messageWriter, topic string) *KafkaNotifier {
	return &KafkaNotifier{writer: writer, topic: topic}
}

func (n *KafkaNotifier) SendEmail(ctx context.Context, email ports.Email) error {
	value, err := encodeEmail(email)
	if err != nil {
		return err
	}
	return n.write(ctx, KindEmail, "email:"+email.To, value)
}

func (n *KafkaNotifier) SendWeb(ctx context.Context, notification ports.WebNotification) error {
	value, err := encodeWeb(notification)
	if err != nil {
		return err
	}
	return n.write(ctx, KindWeb, webKey(notification.Target), value)
}

func (n *KafkaNotifier) write(ctx context.Context, kind, key string, value []byte) error {
	msg := kafka.Message{
		Topic:   n.topic,
		Key:     []byte(key),
		Value:   value,
		Headers: injectHeaders(ctx, []kafka.Header{{Key: kindHeader, Value: []byte(kind)}}),
	}
	if err := n.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish %s notification: %w", kind, err)
	}
	return nil
}

func injectHeaders(ctx context.Context, headers []kafka.Header) []kafka.Header {
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	for k, v := range carrier {
		headers = append(headers, kafka.Header{Key: k, Value: []byte(v)})
	}
	return headers
}
