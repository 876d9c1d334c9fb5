package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fooddelivery/internal/core/domain/model/outbox"
	"fooddelivery/internal/core/ports"

	"go.opentelemetry.io/otel/propagation"
)

// DispatchResult summarises one relay batch.
type DispatchResult struct {
	Sent    int
	Retried int
	Failed  int
}

// DispatchNotificationsCommandHandler sends pending outbox messages through
// the notifier. The batch is claimed up front; each message is then updated
// on its own, outside any transaction, so a slow notifier never holds
// database locks.
//
// A message is marked sent only when every planned notification went out;
// otherwise the whole plan is retried on the next batch. Undecodable
// messages fail immediately.
type DispatchNotificationsCommandHandler struct {
	uowFactory OutboxUoWFactory
	notifier   ports.Notifier
	timeout    time.Duration
	logger     *slog.Logger
}

func NewDispatchNotificationsCommandHandler(
	uowFactory OutboxUoWFactory,
	notifier ports.Notifier,
	timeout time.Duration,
	logger *slog.Logger,
) DispatchNotificationsCommandHandler {
	return DispatchNotificationsCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		timeout:    timeout,
		logger:     logger.With("component", "DispatchNotificationsCommandHandler"),
	}
}

func (h *DispatchNotificationsCommandHandler) Handle(
	ctx context.Context,
	cmd DispatchNotificationsCommand,
) (DispatchResult, error) {
	var result DispatchResult
	if err := cmd.Validate(); err != nil {
		return result, err
	}

	repo := h.uowFactory.Create().OutboxRepository()
	messages, err := repo.GetPending(ctx, cmd.BatchSize())
	if err != nil {
		return result, err
	}

	for _, m := range messages {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}

		permanent, sendErr := h.send(ctx, m)
		now := time.Now().UTC()

		switch {
		case sendErr == nil:
			err = m.MarkSent(now)
		case permanent:
			err = m.RecordFailure(sendErr, 1, now)
		default:
			err = m.RecordFailure(sendErr, cmd.MaxAttempts(), now)
		}
		if err != nil {
			return result, err
		}

		switch m.Status() {
		case outbox.StatusSent:
			result.Sent++
		case outbox.StatusFailed:
			result.Failed++
			h.logger.ErrorContext(ctx, "notification gave up",
				"message_id", m.ID().String(), "event_type", m.EventType(),
				"attempts", m.Attempts(), "error", sendErr)
		default:
			result.Retried++
			h.logger.WarnContext(ctx, "notification will be retried",
				"message_id", m.ID().String(), "event_type", m.EventType(),
				"attempts", m.Attempts(), "error", sendErr)
		}

		if err = repo.Update(ctx, m); err != nil {
			return result, err
		}
	}

	return result, nil
}

// send delivers every notification planned for m. permanent reports that
// a retry can never succeed.
func (h *DispatchNotificationsCommandHandler) send(
	ctx context.Context,
	m *outbox.Message,
) (permanent bool, err error) {
	event, err := m.OrderEvent()
	if err != nil {
		return true, err
	}
	plan, err := PlanNotifications(event)
	if err != nil {
		return true, err
	}

	if tp := m.Traceparent(); tp != "" {
		ctx = propagation.TraceContext{}.Extract(ctx, propagation.MapCarrier{"traceparent": tp})
	}

	var problems []error
	for _, email := range plan.Emails {
		problems = append(problems, h.attempt(ctx, func(ctx context.Context) error {
			return h.notifier.SendEmail(ctx, email)
		}, "email to "+email.To))
	}
	for _, web := range plan.Web {
		problems = append(problems, h.attempt(ctx, func(ctx context.Context) error {
			return h.notifier.SendWeb(ctx, web)
		}, "web notification "+web.Title))
	}
	return false, errors.Join(problems...)
}

func (h *DispatchNotificationsCommandHandler) attempt(
	ctx context.Context,
	send func(context.Context) error,
	what string,
) error {
	ctx, cancel := withTimeout(ctx, h.timeout)
	defer cancel()

	if err := send(ctx); err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	return nil
}
