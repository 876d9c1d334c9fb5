package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrSoftDeleteOrderCommandIsNotConstructed = errors.New(
	"SoftDeleteOrderCommand must be created via NewSoftDeleteOrderCommand constructor",
)

// SoftDeleteOrderCommand hides a terminal order. Admin only.
type SoftDeleteOrderCommand struct { //nolint:recvcheck //using for validation
	orderCommand

	guard guard.ConstructorGuard
}

func NewSoftDeleteOrderCommand(orderID kernel.UUID, actor kernel.Actor) (SoftDeleteOrderCommand, error) {
	base, err := newOrderCommand(orderID, actor)
	if err != nil {
		return SoftDeleteOrderCommand{}, err
	}
	return SoftDeleteOrderCommand{orderCommand: base, guard: guard.NewConstructorGuard()}, nil
}

func (c SoftDeleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrSoftDeleteOrderCommandIsNotConstructed)
}
