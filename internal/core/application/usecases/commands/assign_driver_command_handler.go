package commands

import (
	"context"
	"log/slog"
	"time"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
)

// AssignDriverCommandHandler binds a driver to an accepted human-mode order.
//
// The driver contact is best effort: when the auth service cannot return a
// profile the assignment still goes through with an empty contact. The
// write is a compare-and-set on "accepted and unassigned", so of two
// drivers racing for the same order exactly one wins and the other gets
// order.ErrAlreadyAssigned.
type AssignDriverCommandHandler struct {
	uowFactory      OrderUoWFactory
	registry        ports.PartyRegistry
	registryTimeout time.Duration
	logger          *slog.Logger
}

func NewAssignDriverCommandHandler(
	uowFactory OrderUoWFactory,
	registry ports.PartyRegistry,
	registryTimeout time.Duration,
	logger *slog.Logger,
) AssignDriverCommandHandler {
	return AssignDriverCommandHandler{
		uowFactory:      uowFactory,
		registry:        registry,
		registryTimeout: registryTimeout,
		logger:          logger.With("component", "AssignDriverCommandHandler"),
	}
}

func (h *AssignDriverCommandHandler) Handle(ctx context.Context, cmd AssignDriverCommand) error {
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

	if err = o.CanAssignDriver(); err != nil {
		return err
	}

	expected := o.Status()
	if err = o.AssignDriver(cmd.DriverID(), h.driverContact(ctx, cmd), time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Assign(ctx, o, expected); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *AssignDriverCommandHandler) driverContact(ctx context.Context, cmd AssignDriverCommand) order.Contact {
	ctx, cancel := withTimeout(ctx, h.registryTimeout)
	defer cancel()

	profile, err := h.registry.GetDriverProfile(ctx, cmd.DriverID(), cmd.AuthToken())
	if err != nil {
		h.logger.WarnContext(ctx, "driver profile unavailable, assigning without contact",
			"driver_id", cmd.DriverID().String(), "error", err)
		return order.Contact{}
	}

	contact, err := order.NewContact(profile.FullName, profile.Email, profile.Phone)
	if err != nil {
		h.logger.WarnContext(ctx, "driver profile has an invalid contact",
			"driver_id", cmd.DriverID().String(), "error", err)
		return order.Contact{}
	}
	return contact
}
