package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
)

// AssignDroneCommandHandler schedules a drone mission and binds it to the
// order.
//
// Checks run in this order: existing assignment, transport mode, status,
// delivery coordinates, restaurant location, drone range. The drone service
// is called only when all of them pass, and nothing is written when it
// fails. A mission created for a write that then loses its race is logged
// for reconciliation at the drone service.
type AssignDroneCommandHandler struct {
	uowFactory      OrderUoWFactory
	registry        ports.PartyRegistry
	drones          ports.DroneAssigner
	dispatcher      services.OrderDispatcher
	registryTimeout time.Duration
	droneTimeout    time.Duration
	logger          *slog.Logger
}

func NewAssignDroneCommandHandler(
	uowFactory OrderUoWFactory,
	registry ports.PartyRegistry,
	drones ports.DroneAssigner,
	dispatcher services.OrderDispatcher,
	registryTimeout time.Duration,
	droneTimeout time.Duration,
	logger *slog.Logger,
) AssignDroneCommandHandler {
	return AssignDroneCommandHandler{
		uowFactory:      uowFactory,
		registry:        registry,
		drones:          drones,
		dispatcher:      dispatcher,
		registryTimeout: registryTimeout,
		droneTimeout:    droneTimeout,
		logger:          logger.With("component", "AssignDroneCommandHandler"),
	}
}

func (h *AssignDroneCommandHandler) Handle(ctx context.Context, cmd AssignDroneCommand) error {
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
		return forbidden(actor, "assign a drone to", o)
	}

	if err = o.CanAssignDrone(); err != nil {
		return err
	}

	from, err := h.restaurantLocation(ctx, o.RestaurantID())
	if err != nil {
		return err
	}

	route, err := h.dispatcher.Dispatch(o, from)
	if err != nil {
		return err
	}

	mission, err := h.requestMission(ctx, o.ID(), route)
	if err != nil {
		return err
	}

	expected := o.Status()
	if err = o.AssignDrone(mission, time.Now().UTC()); err != nil {
		return ports.NewAssignmentFailedError("drone service returned an unusable mission", err)
	}

	if err = orderRepo.Assign(ctx, o, expected); err != nil {
		h.warnOrphanedMission(ctx, o.ID(), mission, err)
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		h.warnOrphanedMission(ctx, o.ID(), mission, err)
		return err
	}
	return nil
}

func (h *AssignDroneCommandHandler) warnOrphanedMission(
	ctx context.Context,
	orderID kernel.UUID,
	mission order.DroneMission,
	cause error,
) {
	h.logger.WarnContext(ctx, "drone mission not stored on the order",
		"order_id", orderID.String(),
		"mission_id", mission.MissionID,
		"error", cause,
	)
}

func (h *AssignDroneCommandHandler) restaurantLocation(ctx context.Context, id kernel.UUID) (*kernel.Coordinates, error) {
	ctx, cancel := withTimeout(ctx, h.registryTimeout)
	defer cancel()

	restaurant, err := h.registry.GetRestaurant(ctx, id)
	if err != nil {
		return nil, newRestaurantUnavailableError(id, "unreachable or unknown", err)
	}
	if !restaurant.IsAvailable() {
		return nil, newRestaurantUnavailableError(id, "inactive or deleted", nil)
	}
	if restaurant.Location == nil {
		return nil, newRestaurantUnavailableError(id, "without a location", nil)
	}
	return restaurant.Location, nil
}

func (h *AssignDroneCommandHandler) requestMission(
	ctx context.Context,
	orderID kernel.UUID,
	route services.DroneRoute,
) (mission order.DroneMission, err error) {
	ctx, cancel := withTimeout(ctx, h.droneTimeout)
	defer cancel()

	mission, err = h.drones.Assign(ctx, ports.DroneAssignmentRequest{
		OrderID: orderID,
		From:    route.From,
		To:      route.To,
	})
	if err != nil {
		if !errors.Is(err, ports.ErrAssignmentFailed) {
			err = ports.NewAssignmentFailedError("", err)
		}
		return mission, err
	}
	return mission, nil
}
