package commands

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
)

type SoftDeleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewSoftDeleteOrderCommandHandler(uowFactory OrderUoWFactory) SoftDeleteOrderCommandHandler {
	return SoftDeleteOrderCommandHandler{uowFactory: uowFactory}
}

// Handle marks a delivered or cancelled order as deleted. Active orders and
// orders that are already deleted fail with errs.ErrInvalidState.
func (h *SoftDeleteOrderCommandHandler) Handle(ctx context.Context, cmd SoftDeleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	actor := cmd.Actor()
	if !actor.Is(kernel.RoleAdmin) {
		return errs.NewForbiddenError(actor.String(), "delete orders")
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

	if err = o.SoftDelete(actor.ID(), time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o, o.Status()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
