package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/outbox"
)

// OutboxRepository stores notification outbox messages.
type OutboxRepository interface {
	Add(ctx context.Context, messages ...*outbox.Message) error

	// GetPending claims up to limit pending messages, oldest first. A claimed
	// message is not returned again until Update releases it or its claim
	// expires.
	GetPending(ctx context.Context, limit int) ([]*outbox.Message, error)

	// Update persists the status, attempts and error of a message.
	Update(ctx context.Context, message *outbox.Message) error
}
