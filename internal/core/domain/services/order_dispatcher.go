package services

import (
	"errors"
	"fmt"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
)

// ErrOutOfDroneRange is returned when the great-circle distance between the
// restaurant and the delivery point exceeds the fleet's range.
var ErrOutOfDroneRange = errors.New("delivery point is out of drone range")

// DroneRoute is a validated flight plan handed to the drone service.
type DroneRoute struct {
	From       kernel.Coordinates
	To         kernel.Coordinates
	DistanceKm float64
}

// OrderDispatcher checks that a drone order can be flown before the drone
// service is asked for a mission.
//
// Business rules:
//   - the order must pass order.CanAssignDrone
//   - the restaurant must have coordinates
//   - the flight distance must not exceed maxRangeKm (zero disables the check)
//
// Example usage:
//
//	dispatcher := NewOrderDispatcher(15)
//	route, err := dispatcher.Dispatch(o, restaurantCoordinates)
//	if errors.Is(err, ErrOutOfDroneRange) {
//	    // Fall back to a human driver
//	}
type OrderDispatcher struct {
	maxRangeKm float64
}

func NewOrderDispatcher(maxRangeKm float64) OrderDispatcher {
	return OrderDispatcher{maxRangeKm: maxRangeKm}
}

func (d OrderDispatcher) MaxRangeKm() float64 {
	return d.maxRangeKm
}

// Dispatch plans the route from the restaurant to the order's delivery
// point. The order is not modified.
func (d OrderDispatcher) Dispatch(o *order.Order, from *kernel.Coordinates) (DroneRoute, error) {
	if err := o.Validate(); err != nil {
		return DroneRoute{}, err
	}
	if err := o.CanAssignDrone(); err != nil {
		return DroneRoute{}, err
	}
	if from == nil {
		return DroneRoute{}, errs.NewValueIsRequiredError("restaurant coordinates")
	}

	to := o.DeliveryLocation().Coordinates()
	if to == nil {
		return DroneRoute{}, order.ErrMissingLocation
	}

	distance, err := from.DistanceKm(*to)
	if err != nil {
		return DroneRoute{}, err
	}
	if d.maxRangeKm > 0 && distance > d.maxRangeKm {
		return DroneRoute{}, fmt.Errorf("%w: %.2f km, max %.2f km", ErrOutOfDroneRange, distance, d.maxRangeKm)
	}

	return DroneRoute{From: *from, To: *to, DistanceKm: distance}, nil
}
