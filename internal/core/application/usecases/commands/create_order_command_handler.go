package commands

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

// CreateOrderCommandHandler places pending orders. The restaurant is
// checked against the party registry before anything is written, and a
// repeated Idempotency-Key is rejected with ErrDuplicateRequest.
type CreateOrderCommandHandler struct {
	uowFactory      OrderUoWFactory
	registry        ports.PartyRegistry
	idempotency     ports.IdempotencyStore
	idempotencyTTL  time.Duration
	registryTimeout time.Duration
}

// NewCreateOrderCommandHandler creates the handler. idempotency may be nil,
// in which case keys are ignored.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	registry ports.PartyRegistry,
	idempotency ports.IdempotencyStore,
	idempotencyTTL time.Duration,
	registryTimeout time.Duration,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:      uowFactory,
		registry:        registry,
		idempotency:     idempotency,
		idempotencyTTL:  idempotencyTTL,
		registryTimeout: registryTimeout,
	}
}

func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (err error) {
	if err = cmd.Validate(); err != nil {
		return err
	}

	actor := cmd.Actor()
	if !actor.Is(kernel.RoleCustomer) {
		return errs.NewForbiddenError(actor.String(), "place orders")
	}

	if key := h.idempotencyKey(cmd); key != "" {
		reserved, reserveErr := h.idempotency.Reserve(ctx, key, h.idempotencyTTL)
		if reserveErr != nil {
			return reserveErr
		}
		if !reserved {
			return ErrDuplicateRequest
		}
		defer func() {
			if err != nil {
				_ = h.idempotency.Release(context.WithoutCancel(ctx), key)
			}
		}()
	}

	if err = h.checkRestaurant(ctx, cmd.RestaurantID()); err != nil {
		return err
	}

	o, err := order.NewOrder(
		cmd.OrderID(),
		actor.ID(),
		cmd.RestaurantID(),
		cmd.Items(),
		cmd.ShippingFee(),
		cmd.Location(),
		cmd.TransportMode(),
		cmd.CustomerContact(),
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// idempotencyKey scopes the client key to the customer so two customers
// can never collide.
func (h *CreateOrderCommandHandler) idempotencyKey(cmd CreateOrderCommand) string {
	if h.idempotency == nil || cmd.IdempotencyKey() == "" {
		return ""
	}
	return "create-order:" + cmd.Actor().ID().String() + ":" + cmd.IdempotencyKey()
}

func (h *CreateOrderCommandHandler) checkRestaurant(ctx context.Context, id kernel.UUID) error {
	ctx, cancel := withTimeout(ctx, h.registryTimeout)
	defer cancel()

	restaurant, err := h.registry.GetRestaurant(ctx, id)
	if err != nil {
		return newRestaurantUnavailableError(id, "unreachable or unknown", err)
	}
	if !restaurant.IsAvailable() {
		return newRestaurantUnavailableError(id, "inactive or deleted", nil)
	}
	return nil
}
