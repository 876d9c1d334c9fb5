package commands

import (
	"context"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
)

// withTimeout bounds a collaborator call. A non-positive timeout leaves
// the parent deadline in charge.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// actsForRestaurant reports whether the actor is staff of the order's
// restaurant.
func actsForRestaurant(actor kernel.Actor, o *order.Order) bool {
	rid := actor.RestaurantID()
	return actor.Is(kernel.RoleRestaurant) && rid != nil && o.IsFromRestaurant(*rid)
}

func forbidden(actor kernel.Actor, action string, o *order.Order) error {
	return errs.NewForbiddenError(actor.String(), fmt.Sprintf("%s order %s", action, o.ID()))
}

// orderCommand holds the fields shared by commands addressing one order
// on behalf of an actor.
type orderCommand struct {
	orderID kernel.UUID
	actor   kernel.Actor
}

func newOrderCommand(orderID kernel.UUID, actor kernel.Actor) (orderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return orderCommand{}, err
	}
	if err := actor.Validate(); err != nil {
		return orderCommand{}, err
	}
	return orderCommand{orderID: orderID, actor: actor}, nil
}

func (c orderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c orderCommand) Actor() kernel.Actor {
	return c.actor
}
