package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrAcceptOrderCommandIsNotConstructed = errors.New(
	"AcceptOrderCommand must be created via NewAcceptOrderCommand constructor",
)

// AcceptOrderCommand is issued by restaurant staff (or an admin) to take a
// pending order.
type AcceptOrderCommand struct { //nolint:recvcheck //using for validation
	orderCommand

	guard guard.ConstructorGuard
}

func NewAcceptOrderCommand(orderID kernel.UUID, actor kernel.Actor) (AcceptOrderCommand, error) {
	base, err := newOrderCommand(orderID, actor)
	if err != nil {
		return AcceptOrderCommand{}, err
	}
	return AcceptOrderCommand{orderCommand: base, guard: guard.NewConstructorGuard()}, nil
}

func (c AcceptOrderCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOrderCommandIsNotConstructed)
}
