package queries

import (
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// OrderFilter narrows an order listing. Unset fields do not filter.
// From is inclusive and To exclusive, both on the creation time.
type OrderFilter struct {
	CustomerID     *kernel.UUID
	RestaurantID   *kernel.UUID
	DriverID       *kernel.UUID
	Statuses       []order.Status
	TransportMode  *order.TransportMode
	From           *time.Time
	To             *time.Time
	IncludeDeleted bool
}

func (f OrderFilter) validate() error {
	var problems []error
	for _, s := range f.Statuses {
		if err := s.Validate(); err != nil {
			problems = append(problems, err)
		}
	}
	if f.TransportMode != nil {
		problems = append(problems, f.TransportMode.Validate())
	}
	if f.From != nil && f.To != nil && !f.From.Before(*f.To) {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"period", fmt.Errorf("from %s is not before to %s", f.From, f.To)))
	}
	return errors.Join(problems...)
}

// ListOrdersQuery lists orders visible to the actor, newest first.
type ListOrdersQuery struct {
	actor  kernel.Actor
	filter OrderFilter
	page   Page
	guard  guard.ConstructorGuard
}

// NewListOrdersQuery forces the actor's own scope into the filter: a
// customer only sees their orders, restaurant staff their restaurant's,
// a driver the orders assigned to them and the drone pipeline drone orders.
// Only admins may include deleted orders.
func NewListOrdersQuery(actor kernel.Actor, filter OrderFilter, page Page) (ListOrdersQuery, error) {
	if err := errors.Join(actor.Validate(), page.Validate(), filter.validate()); err != nil {
		return ListOrdersQuery{}, err
	}

	scoped, err := scopeFilter(actor, filter)
	if err != nil {
		return ListOrdersQuery{}, err
	}

	return ListOrdersQuery{
		actor:  actor,
		filter: scoped,
		page:   page,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Actor() kernel.Actor {
	return q.actor
}

func (q ListOrdersQuery) Filter() OrderFilter {
	return q.filter
}

func (q ListOrdersQuery) Page() Page {
	return q.page
}
