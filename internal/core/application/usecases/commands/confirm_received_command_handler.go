package commands

import (
	"context"
	"time"

	"fooddelivery/internal/pkg/errs"
)

// ConfirmReceivedCommandHandler stamps the customer's receipt. It does not
// touch the split and sends no notification.
type ConfirmReceivedCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewConfirmReceivedCommandHandler(uowFactory OrderUoWFactory) ConfirmReceivedCommandHandler {
	return ConfirmReceivedCommandHandler{uowFactory: uowFactory}
}

func (h *ConfirmReceivedCommandHandler) Handle(ctx context.Context, cmd ConfirmReceivedCommand) error {
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
	if o.IsDeleted() {
		return errs.NewObjectNotFoundError("order", cmd.OrderID().String())
	}

	if err = o.ConfirmReceived(cmd.CustomerID(), time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o, o.Status()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
