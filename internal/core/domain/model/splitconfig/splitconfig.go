package splitconfig

import (
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrSplitConfigIsNotConstructed = errs.NewValueIsRequiredError("split config must be created via New or Restore")

type Scope string

const (
	ScopeGlobal     Scope = "global"
	ScopeRestaurant Scope = "restaurant"
)

// ScopeOf derives the scope from an optional restaurant id.
func ScopeOf(restaurantID *kernel.UUID) Scope {
	if restaurantID == nil {
		return ScopeGlobal
	}
	return ScopeRestaurant
}

// SplitConfig is one version of the split rules of a scope.
type SplitConfig struct {
	id           kernel.UUID
	restaurantID *kernel.UUID
	version      int
	terms        Terms
	active       bool
	createdBy    kernel.UUID
	createdAt    time.Time
	guard        guard.ConstructorGuard
}

// New builds an active config. version is assigned by the caller from the
// scope's history and starts at 1.
func New(
	id kernel.UUID,
	restaurantID *kernel.UUID,
	version int,
	terms Terms,
	createdBy kernel.UUID,
	createdAt time.Time,
) (*SplitConfig, error) {
	var scopeErr error
	if restaurantID != nil {
		scopeErr = restaurantID.Validate()
	}
	var versionErr error
	if version < 1 {
		versionErr = errs.NewValueIsOutOfRangeError("version", version, 1, "unbounded")
	}

	if err := errors.Join(id.Validate(), scopeErr, versionErr, terms.Validate(), createdBy.Validate()); err != nil {
		return nil, err
	}

	return &SplitConfig{
		id:           id,
		restaurantID: copyUUID(restaurantID),
		version:      version,
		terms:        terms,
		active:       true,
		createdBy:    createdBy,
		createdAt:    createdAt,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Restore rebuilds a stored config. Terms are taken as stored.
func Restore(
	id kernel.UUID,
	restaurantID *kernel.UUID,
	version int,
	terms Terms,
	active bool,
	createdBy kernel.UUID,
	createdAt time.Time,
) *SplitConfig {
	return &SplitConfig{
		id:           id,
		restaurantID: copyUUID(restaurantID),
		version:      version,
		terms:        terms,
		active:       active,
		createdBy:    createdBy,
		createdAt:    createdAt,
		guard:        guard.NewConstructorGuard(),
	}
}

func (c *SplitConfig) Validate() error {
	if c == nil {
		return ErrSplitConfigIsNotConstructed
	}
	return c.guard.Validate(ErrSplitConfigIsNotConstructed)
}

func (c *SplitConfig) ID() kernel.UUID {
	return c.id
}

func (c *SplitConfig) Scope() Scope {
	return ScopeOf(c.restaurantID)
}

// RestaurantID is nil for the global scope.
func (c *SplitConfig) RestaurantID() *kernel.UUID {
	return copyUUID(c.restaurantID)
}

func (c *SplitConfig) Version() int {
	return c.version
}

func (c *SplitConfig) Terms() Terms {
	return c.terms
}

func (c *SplitConfig) Method() Method {
	return c.terms.method
}

func (c *SplitConfig) Currency() string {
	return c.terms.currency
}

func (c *SplitConfig) IsActive() bool {
	return c.active
}

func (c *SplitConfig) CreatedBy() kernel.UUID {
	return c.createdBy
}

func (c *SplitConfig) CreatedAt() time.Time {
	return c.createdAt
}

func (c *SplitConfig) String() string {
	if c.restaurantID == nil {
		return fmt.Sprintf("split config %s v%d (global, %s)", c.id, c.version, c.terms.method)
	}
	return fmt.Sprintf("split config %s v%d (restaurant %s, %s)", c.id, c.version, c.restaurantID, c.terms.method)
}

func copyUUID(id *kernel.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	copied := *id
	return &copied
}
