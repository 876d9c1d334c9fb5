package outbox

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrMessageIsNotConstructed = errs.NewValueIsRequiredError("outbox message must be created via NewMessage or RestoreMessage")

type Status string

const (
	StatusPending Status = "pending"
	StatusSent    Status = "sent"
	StatusFailed  Status = "failed"
)

// maxErrorLength bounds the stored lastError.
const maxErrorLength = 1024

type Message struct {
	id          kernel.UUID
	aggregateID kernel.UUID
	eventType   string
	payload     []byte
	traceparent string
	status      Status
	attempts    int
	lastError   string
	createdAt   time.Time
	processedAt *time.Time
	guard       guard.ConstructorGuard
}

// NewMessage builds a pending message. traceparent is the W3C trace context
// of the request that raised the event and may be empty.
func NewMessage(
	id kernel.UUID,
	aggregateID kernel.UUID,
	eventType string,
	payload []byte,
	traceparent string,
	now time.Time,
) (*Message, error) {
	var typeErr, payloadErr error
	if strings.TrimSpace(eventType) == "" {
		typeErr = errs.NewValueIsRequiredError("event type")
	}
	if len(payload) == 0 {
		payloadErr = errs.NewValueIsRequiredError("payload")
	}
	if err := errors.Join(id.Validate(), aggregateID.Validate(), typeErr, payloadErr); err != nil {
		return nil, err
	}

	return &Message{
		id:          id,
		aggregateID: aggregateID,
		eventType:   eventType,
		payload:     append([]byte(nil), payload...),
		traceparent: traceparent,
		status:      StatusPending,
		createdAt:   now,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func RestoreMessage(
	id kernel.UUID,
	aggregateID kernel.UUID,
	eventType string,
	payload []byte,
	traceparent string,
	status Status,
	attempts int,
	lastError string,
	createdAt time.Time,
	processedAt *time.Time,
) *Message {
	return &Message{
		id:          id,
		aggregateID: aggregateID,
		eventType:   eventType,
		payload:     payload,
		traceparent: traceparent,
		status:      status,
		attempts:    attempts,
		lastError:   lastError,
		createdAt:   createdAt,
		processedAt: processedAt,
		guard:       guard.NewConstructorGuard(),
	}
}

func (m *Message) Validate() error {
	if m == nil {
		return ErrMessageIsNotConstructed
	}
	return m.guard.Validate(ErrMessageIsNotConstructed)
}

func (m *Message) ID() kernel.UUID {
	return m.id
}

func (m *Message) AggregateID() kernel.UUID {
	return m.aggregateID
}

func (m *Message) EventType() string {
	return m.eventType
}

func (m *Message) Payload() []byte {
	return append([]byte(nil), m.payload...)
}

func (m *Message) Traceparent() string {
	return m.traceparent
}

func (m *Message) Status() Status {
	return m.status
}

func (m *Message) Attempts() int {
	return m.attempts
}

func (m *Message) LastError() string {
	return m.lastError
}

func (m *Message) CreatedAt() time.Time {
	return m.createdAt
}

func (m *Message) ProcessedAt() *time.Time {
	if m.processedAt == nil {
		return nil
	}
	at := *m.processedAt
	return &at
}

// MarkSent finishes a pending message.
func (m *Message) MarkSent(now time.Time) error {
	if m.status != StatusPending {
		return errs.NewInvalidStateError("outbox message "+m.id.String(), string(m.status))
	}
	m.attempts++
	m.status = StatusSent
	m.processedAt = &now
	return nil
}

// RecordFailure counts a failed attempt. The message gives up and moves to
// failed once maxAttempts is reached.
func (m *Message) RecordFailure(cause error, maxAttempts int, now time.Time) error {
	if m.status != StatusPending {
		return errs.NewInvalidStateError("outbox message "+m.id.String(), string(m.status))
	}
	if maxAttempts < 1 {
		return errs.NewValueIsOutOfRangeError("max attempts", maxAttempts, 1, "unbounded")
	}

	m.attempts++
	m.lastError = truncate(fmt.Sprint(cause), maxErrorLength)
	if m.attempts >= maxAttempts {
		m.status = StatusFailed
		m.processedAt = &now
	}
	return nil
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
