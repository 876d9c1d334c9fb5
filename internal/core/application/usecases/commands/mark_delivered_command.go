package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrMarkDeliveredCommandIsNotConstructed = errors.New(
	"MarkDeliveredCommand must be created via NewMarkDeliveredCommand constructor",
)

// MarkDeliveredCommand completes an in-transit order. Human-mode orders are
// completed by their driver, drone-mode orders by the drone pipeline;
// admins may complete either.
type MarkDeliveredCommand struct { //nolint:recvcheck //using for validation
	orderCommand

	guard guard.ConstructorGuard
}

func NewMarkDeliveredCommand(orderID kernel.UUID, actor kernel.Actor) (MarkDeliveredCommand, error) {
	base, err := newOrderCommand(orderID, actor)
	if err != nil {
		return MarkDeliveredCommand{}, err
	}
	return MarkDeliveredCommand{orderCommand: base, guard: guard.NewConstructorGuard()}, nil
}

func (c MarkDeliveredCommand) Validate() error {
	return c.guard.Validate(ErrMarkDeliveredCommandIsNotConstructed)
}
