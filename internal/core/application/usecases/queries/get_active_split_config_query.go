package queries

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrGetActiveSplitConfigQueryIsNotConstructed = errors.New(
	"GetActiveSplitConfigQuery must be created via NewGetActiveSplitConfigQuery constructor",
)

// GetActiveSplitConfigQuery reads the config a restaurant's orders would be
// settled with right now.
type GetActiveSplitConfigQuery struct {
	restaurantID *kernel.UUID
	guard        guard.ConstructorGuard
}

// NewGetActiveSplitConfigQuery lets admins read any scope. Restaurant staff
// always read their own restaurant, whatever restaurantID says, and may
// not name another one.
func NewGetActiveSplitConfigQuery(actor kernel.Actor, restaurantID *kernel.UUID) (GetActiveSplitConfigQuery, error) {
	if err := actor.Validate(); err != nil {
		return GetActiveSplitConfigQuery{}, err
	}
	if restaurantID != nil {
		if err := restaurantID.Validate(); err != nil {
			return GetActiveSplitConfigQuery{}, err
		}
	}

	switch {
	case actor.Is(kernel.RoleAdmin):
	case actor.Is(kernel.RoleRestaurant):
		own := actor.RestaurantID()
		if restaurantID != nil && !restaurantID.IsEqual(*own) {
			return GetActiveSplitConfigQuery{}, errs.NewForbiddenError(
				actor.String(), "read split config of restaurant "+restaurantID.String())
		}
		restaurantID = own
	default:
		return GetActiveSplitConfigQuery{}, errs.NewForbiddenError(actor.String(), "read split config")
	}

	q := GetActiveSplitConfigQuery{guard: guard.NewConstructorGuard()}
	if restaurantID != nil {
		rid := *restaurantID
		q.restaurantID = &rid
	}
	return q, nil
}

func (q GetActiveSplitConfigQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveSplitConfigQueryIsNotConstructed)
}

// RestaurantID is nil for the global scope.
func (q GetActiveSplitConfigQuery) RestaurantID() *kernel.UUID {
	return q.restaurantID
}
