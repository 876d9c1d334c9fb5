package queries

import (
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
)

// authorizeView decides whether actor may read the order. A deleted order
// does not exist for anyone but an admin.
func authorizeView(actor kernel.Actor, r orderRow) error {
	if actor.Is(kernel.RoleAdmin) {
		return nil
	}
	if r.IsDeleted {
		return errs.NewObjectNotFoundError("order", r.ID.String())
	}

	allowed := false
	switch actor.Role() {
	case kernel.RoleCustomer:
		allowed = r.CustomerID == actor.ID().Bytes()
	case kernel.RoleRestaurant:
		rid := actor.RestaurantID()
		allowed = rid != nil && r.RestaurantID == rid.Bytes()
	case kernel.RoleDriver:
		driverID := actor.ID().Bytes()
		allowed = r.inPool() || (r.AssignmentDriverID != nil && *r.AssignmentDriverID == driverID)
	case kernel.RoleDrone:
		allowed = r.TransportMode == order.Drone.String()
	}
	if !allowed {
		return errs.NewForbiddenError(actor.String(), "view order "+r.ID.String())
	}
	return nil
}

// scopeFilter narrows a listing to what the actor may see. Admins keep
// their filter as given.
func scopeFilter(actor kernel.Actor, f OrderFilter) (OrderFilter, error) {
	if f.IncludeDeleted && !actor.Is(kernel.RoleAdmin) {
		return OrderFilter{}, errs.NewForbiddenError(actor.String(), "list deleted orders")
	}

	id := actor.ID()
	switch actor.Role() {
	case kernel.RoleAdmin:
	case kernel.RoleCustomer:
		f.CustomerID = &id
	case kernel.RoleRestaurant:
		f.RestaurantID = actor.RestaurantID()
	case kernel.RoleDriver:
		f.DriverID = &id
	case kernel.RoleDrone:
		mode := order.Drone
		f.TransportMode = &mode
	default:
		return OrderFilter{}, errs.NewForbiddenError(actor.String(), "list orders")
	}
	return f, nil
}
