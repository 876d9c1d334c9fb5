package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrAssignDroneCommandIsNotConstructed = errors.New(
	"AssignDroneCommand must be created via NewAssignDroneCommand constructor",
)

// AssignDroneCommand requests a drone mission for an accepted drone-mode
// order. Issued by the order's restaurant or an admin.
type AssignDroneCommand struct { //nolint:recvcheck //using for validation
	orderCommand

	guard guard.ConstructorGuard
}

func NewAssignDroneCommand(orderID kernel.UUID, actor kernel.Actor) (AssignDroneCommand, error) {
	base, err := newOrderCommand(orderID, actor)
	if err != nil {
		return AssignDroneCommand{}, err
	}
	return AssignDroneCommand{orderCommand: base, guard: guard.NewConstructorGuard()}, nil
}

func (c AssignDroneCommand) Validate() error {
	return c.guard.Validate(ErrAssignDroneCommandIsNotConstructed)
}
