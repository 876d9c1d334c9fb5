package queries

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrListSplitConfigsQueryIsNotConstructed = errors.New(
	"ListSplitConfigsQuery must be created via NewListSplitConfigsQuery constructor",
)

// ListSplitConfigsQuery reads the version history of one scope. Admin only.
type ListSplitConfigsQuery struct {
	restaurantID *kernel.UUID
	guard        guard.ConstructorGuard
}

func NewListSplitConfigsQuery(actor kernel.Actor, restaurantID *kernel.UUID) (ListSplitConfigsQuery, error) {
	if err := actor.Validate(); err != nil {
		return ListSplitConfigsQuery{}, err
	}
	if !actor.Is(kernel.RoleAdmin) {
		return ListSplitConfigsQuery{}, errs.NewForbiddenError(actor.String(), "list split configs")
	}

	q := ListSplitConfigsQuery{guard: guard.NewConstructorGuard()}
	if restaurantID != nil {
		if err := restaurantID.Validate(); err != nil {
			return ListSplitConfigsQuery{}, err
		}
		rid := *restaurantID
		q.restaurantID = &rid
	}
	return q, nil
}

func (q ListSplitConfigsQuery) Validate() error {
	return q.guard.Validate(ErrListSplitConfigsQueryIsNotConstructed)
}

func (q ListSplitConfigsQuery) RestaurantID() *kernel.UUID {
	return q.restaurantID
}
