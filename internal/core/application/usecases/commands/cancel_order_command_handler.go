package commands

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
)

// CancelOrderCommandHandler cancels pending or accepted orders. Orders in
// transit or in a terminal state fail with order.ErrIllegalTransition and
// stay untouched.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{uowFactory: uowFactory}
}

func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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
	if !actor.Is(kernel.RoleAdmin) && !(actor.Is(kernel.RoleCustomer) && o.IsPlacedBy(actor.ID())) {
		return forbidden(actor, "cancel", o)
	}

	expected := o.Status()
	if err = o.Cancel(cmd.Reason(), time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o, expected); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
