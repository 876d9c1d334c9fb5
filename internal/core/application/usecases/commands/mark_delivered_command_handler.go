package commands

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
)

// MarkDeliveredCommandHandler settles and completes an in-transit order.
//
// The active split config is read inside the same transaction as the
// write. services.ErrNoActiveConfig and splitconfig.ErrInvalidConfig abort
// the transition and leave the order in transit. A second call fails with
// order.ErrIllegalTransition and never re-stamps the split.
type MarkDeliveredCommandHandler struct {
	uowFactory SettlementUoWFactory
	engine     services.SettlementEngine
}

func NewMarkDeliveredCommandHandler(
	uowFactory SettlementUoWFactory,
	engine services.SettlementEngine,
) MarkDeliveredCommandHandler {
	return MarkDeliveredCommandHandler{uowFactory: uowFactory, engine: engine}
}

func (h *MarkDeliveredCommandHandler) Handle(ctx context.Context, cmd MarkDeliveredCommand) error {
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

	if err = authorizeDelivery(cmd.Actor(), o); err != nil {
		return err
	}

	if err = o.CanDeliver(); err != nil {
		return err
	}

	now := time.Now().UTC()
	if !o.IsSettled() {
		restaurantID := o.RestaurantID()
		cfg, cfgErr := uow.SplitConfigRepository().GetActive(ctx, &restaurantID)
		if cfgErr != nil {
			return cfgErr
		}

		split, splitErr := h.engine.ComputeSplit(o.Total(), cfg)
		if splitErr != nil {
			return splitErr
		}

		if err = o.Settle(split, now); err != nil {
			return err
		}
	}

	expected := o.Status()
	if err = o.MarkDelivered(now); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o, expected); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func authorizeDelivery(actor kernel.Actor, o *order.Order) error {
	if actor.Is(kernel.RoleAdmin) {
		return nil
	}

	switch o.TransportMode() {
	case order.Human:
		if actor.Is(kernel.RoleDriver) && o.IsDeliveredBy(actor.ID()) {
			return nil
		}
	case order.Drone:
		if actor.Is(kernel.RoleDrone) {
			return nil
		}
	}
	return forbidden(actor, "deliver", o)
}
