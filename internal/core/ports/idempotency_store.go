package ports

import (
	"context"
	"time"
)

// IdempotencyStore remembers request keys for a limited time.
type IdempotencyStore interface {
	// Reserve claims key for ttl. It returns false when the key is taken.
	Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release frees a key whose request did not complete.
	Release(ctx context.Context, key string) error
}
