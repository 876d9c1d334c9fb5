package queries

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrGetAvailableOrdersQueryIsNotConstructed = errors.New(
	"GetAvailableOrdersQuery must be created via NewGetAvailableOrdersQuery constructor",
)

// GetAvailableOrdersQuery lists the pool of human-mode orders a driver can
// still claim.
type GetAvailableOrdersQuery struct {
	page  Page
	guard guard.ConstructorGuard
}

// NewGetAvailableOrdersQuery is open to drivers and admins.
func NewGetAvailableOrdersQuery(actor kernel.Actor, page Page) (GetAvailableOrdersQuery, error) {
	if err := errors.Join(actor.Validate(), page.Validate()); err != nil {
		return GetAvailableOrdersQuery{}, err
	}
	if !actor.Is(kernel.RoleDriver, kernel.RoleAdmin) {
		return GetAvailableOrdersQuery{}, errs.NewForbiddenError(actor.String(), "list available orders")
	}
	return GetAvailableOrdersQuery{page: page, guard: guard.NewConstructorGuard()}, nil
}

func (q GetAvailableOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableOrdersQueryIsNotConstructed)
}

func (q GetAvailableOrdersQuery) Page() Page {
	return q.page
}
