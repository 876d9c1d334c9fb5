package commands

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
)

// AcceptOrderCommandHandler moves a pending order to accepted.
//
// Example:
//
//	handler := NewAcceptOrderCommandHandler(uowFactory)
//	cmd, _ := NewAcceptOrderCommand(orderID, restaurantStaff)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("accept failed: %w", err)
//	}
type AcceptOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewAcceptOrderCommandHandler(uowFactory OrderUoWFactory) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{uowFactory: uowFactory}
}

// Handle re-reads the order, checks the actor owns its restaurant and
// writes the transition conditioned on the pending status it read.
func (h *AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	actor := cmd.Actor()
	if !actor.Is(kernel.RoleAdmin) && !actsForRestaurant(actor, o) {
		return forbidden(actor, "accept", o)
	}

	expected := o.Status()
	if err = o.Accept(time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o, expected); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
