package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
)

// Restaurant is the registry's view of a restaurant.
type Restaurant struct {
	ID        kernel.UUID
	Name      string
	IsActive  bool
	IsDeleted bool
	Location  *kernel.Coordinates
}

// IsAvailable reports whether the restaurant can take orders.
func (r Restaurant) IsAvailable() bool {
	return r.IsActive && !r.IsDeleted
}

// DriverProfile is the contact data of a driver.
type DriverProfile struct {
	ID       kernel.UUID
	FullName string
	Phone    string
	Email    string
}

// PartyRegistry resolves restaurants and drivers owned by other services.
// Unknown ids are reported as errs.ObjectNotFoundError.
type PartyRegistry interface {
	GetRestaurant(ctx context.Context, id kernel.UUID) (Restaurant, error)

	// GetDriverProfile forwards the caller's bearer token to the auth
	// service, which only returns profiles to their owner or an admin.
	GetDriverProfile(ctx context.Context, driverID kernel.UUID, authToken string) (DriverProfile, error)
}
