package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/splitconfig"
)

// SplitConfigRepository stores the versioned split config history.
type SplitConfigRepository interface {
	// GetActive returns the active config of the restaurant scope, falling
	// back to the global scope. It returns nil and no error when neither
	// scope has an active config. A nil restaurantID reads the global scope.
	GetActive(ctx context.Context, restaurantID *kernel.UUID) (*splitconfig.SplitConfig, error)

	// LatestVersion returns the highest version ever stored for the scope,
	// or 0 for an empty scope.
	LatestVersion(ctx context.Context, restaurantID *kernel.UUID) (int, error)

	// Activate inserts cfg and deactivates the previously active config of
	// the same scope. Callers run it inside a transaction.
	Activate(ctx context.Context, cfg *splitconfig.SplitConfig) error
}
