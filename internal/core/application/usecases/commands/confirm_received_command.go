package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrConfirmReceivedCommandIsNotConstructed = errors.New(
	"ConfirmReceivedCommand must be created via NewConfirmReceivedCommand constructor",
)

// ConfirmReceivedCommand records that the customer got a delivered order.
type ConfirmReceivedCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

func NewConfirmReceivedCommand(orderID, customerID kernel.UUID) (ConfirmReceivedCommand, error) {
	if err := errors.Join(orderID.Validate(), customerID.Validate()); err != nil {
		return ConfirmReceivedCommand{}, err
	}
	return ConfirmReceivedCommand{orderID: orderID, customerID: customerID, guard: guard.NewConstructorGuard()}, nil
}

func (c ConfirmReceivedCommand) Validate() error {
	return c.guard.Validate(ErrConfirmReceivedCommandIsNotConstructed)
}

func (c ConfirmReceivedCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ConfirmReceivedCommand) CustomerID() kernel.UUID {
	return c.customerID
}
