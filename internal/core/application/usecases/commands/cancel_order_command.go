package commands

import (
	"errors"
	"strings"
	"unicode/utf8"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

const maxCancelReasonLength = 500

// CancelOrderCommand is issued by the ordering customer or an admin.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderCommand
	reason string

	guard guard.ConstructorGuard
}

func NewCancelOrderCommand(orderID kernel.UUID, actor kernel.Actor, reason string) (CancelOrderCommand, error) {
	base, err := newOrderCommand(orderID, actor)
	if err != nil {
		return CancelOrderCommand{}, err
	}

	reason = strings.TrimSpace(reason)
	if n := utf8.RuneCountInString(reason); n > maxCancelReasonLength {
		return CancelOrderCommand{}, errs.NewValueIsOutOfRangeError("reason length", n, 0, maxCancelReasonLength)
	}

	return CancelOrderCommand{orderCommand: base, reason: reason, guard: guard.NewConstructorGuard()}, nil
}

func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

func (c CancelOrderCommand) Reason() string {
	return c.reason
}
