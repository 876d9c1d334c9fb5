package notifier_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"fooddelivery/internal/adapters/out/notifier"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const testTraceparent = "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01"

var errBroker = errors.New("broker down")

func tracedContext(t *testing.T) context.Context {
	t.Helper()
	prev := otel.GetTextMapPropagator()
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() { otel.SetTextMapPropagator(prev) })

	ctx := propagation.TraceContext{}.Extract(t.Context(), propagation.MapCarrier{"traceparent": testTraceparent})
	require.True(t, trace.SpanContextFromContext(ctx).IsValid())
	return ctx
}

func webNotification() ports.WebNotification {
	return ports.WebNotification{
		Target: ports.Target{RestaurantID: "r-1"},
		Title:  "New order",
		Body:   "Order 42 is waiting",
		Data:   map[string]string{"orderId": "42"},
	}
}

type fakeWriter struct {
	messages []kafka.Message
	err      error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func header(msg kafka.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestKafkaNotifier_SendEmail(t *testing.T) {
	ctx := tracedContext(t)
	writer := &fakeWriter{}
	n := notifier.NewKafkaNotifier(writer, "notifications")

	err := n.SendEmail(ctx, ports.Email{To: "ada@example.com", Subject: "Delivered", Text: "Enjoy"})
	require.NoError(t, err)

	require.Len(t, writer.messages, 1)
	msg := writer.messages[0]
	assert.Equal(t, "notifications", msg.Topic)
	assert.Equal(t, "email:ada@example.com", string(msg.Key))
	assert.Equal(t, notifier.KindEmail, header(msg, "notification-kind"))
	assert.Equal(t, testTraceparent, header(msg, "traceparent"))

	var body notifier.EmailMessage
	require.NoError(t, json.Unmarshal(msg.Value, &body))
	assert.Equal(t, notifier.EmailMessage{To: "ada@example.com", Subject: "Delivered", Text: "Enjoy"}, body)
}

func TestKafkaNotifier_SendWeb(t *testing.T) {
	writer := &fakeWriter{}
	n := notifier.NewKafkaNotifier(writer, "notifications")

	require.NoError(t, n.SendWeb(t.Context(), webNotification()))

	require.Len(t, writer.messages, 1)
	msg := writer.messages[0]
	assert.Equal(t, "restaurant:r-1", string(msg.Key))
	assert.Equal(t, notifier.KindWeb, header(msg, "notification-kind"))

	var body notifier.WebMessage
	require.NoError(t, json.Unmarshal(msg.Value, &body))
	assert.Equal(t, "r-1", body.Target.RestaurantID)
	assert.Empty(t, body.Target.UserID)
	assert.Equal(t, "New order", body.Title)
	assert.Equal(t, map[string]string{"orderId": "42"}, body.Data)
}

func TestKafkaNotifier_WriteError(t *testing.T) {
	n := notifier.NewKafkaNotifier(&fakeWriter{err: errBroker}, "notifications")

	err := n.SendWeb(t.Context(), webNotification())
	require.ErrorIs(t, err, errBroker)
}

type published struct {
	exchange, key string
	msg           amqp.Publishing
}

type fakeChannel struct {
	published []published
	err       error
}

func (c *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if c.err != nil {
		return c.err
	}
	c.published = append(c.published, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func TestRabbitMQNotifier_SendEmail(t *testing.T) {
	ctx := tracedContext(t)
	ch := &fakeChannel{}
	n := notifier.NewRabbitMQNotifier(ch)

	require.NoError(t, n.SendEmail(ctx, ports.Email{To: "ada@example.com", Subject: "Accepted", Text: "Cooking"}))

	require.Len(t, ch.published, 1)
	p := ch.published[0]
	assert.Equal(t, notifier.Exchange, p.exchange)
	assert.Equal(t, notifier.EmailRoutingKey, p.key)
	assert.Equal(t, amqp.Persistent, p.msg.DeliveryMode)
	assert.Equal(t, "application/json", p.msg.ContentType)
	assert.Equal(t, notifier.KindEmail, p.msg.Headers["notification-kind"])
	assert.Equal(t, testTraceparent, p.msg.Headers["traceparent"])
	assert.JSONEq(t, `{"to":"ada@example.com","subject":"Accepted","text":"Cooking"}`, string(p.msg.Body))
}

func TestRabbitMQNotifier_SendWeb(t *testing.T) {
	ch := &fakeChannel{}
	n := notifier.NewRabbitMQNotifier(ch)

	notification := ports.WebNotification{Target: ports.Target{Role: kernel.RoleDriver}, Title: "New delivery", Body: "Pickup waiting"}
	require.NoError(t, n.SendWeb(t.Context(), notification))

	require.Len(t, ch.published, 1)
	assert.Equal(t, notifier.WebRoutingKey, ch.published[0].key)
	assert.JSONEq(t, `{"target":{"role":"driver"},"title":"New delivery","body":"Pickup waiting"}`, string(ch.published[0].msg.Body))
}

func TestRabbitMQNotifier_PublishError(t *testing.T) {
	n := notifier.NewRabbitMQNotifier(&fakeChannel{err: errBroker})

	err := n.SendEmail(t.Context(), ports.Email{To: "ada@example.com"})
	require.ErrorIs(t, err, errBroker)
}

func TestLogNotifier(t *testing.T) {
	n := notifier.NewLogNotifier(slog.New(slog.NewTextHandler(io.Discard, nil)))

	assert.NoError(t, n.SendEmail(t.Context(), ports.Email{To: "ada@example.com"}))
	assert.NoError(t, n.SendWeb(t.Context(), webNotification()))
}
