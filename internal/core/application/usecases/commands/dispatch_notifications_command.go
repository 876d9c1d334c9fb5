package commands

import (
	"errors"

	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrDispatchNotificationsCommandIsNotConstructed = errors.New(
	"DispatchNotificationsCommand must be created via NewDispatchNotificationsCommand constructor",
)

// DispatchNotificationsCommand drains one batch of the notification outbox.
type DispatchNotificationsCommand struct { //nolint:recvcheck //using for validation
	batchSize   int
	maxAttempts int

	guard guard.ConstructorGuard
}

func NewDispatchNotificationsCommand(batchSize, maxAttempts int) (DispatchNotificationsCommand, error) {
	var batchErr, attemptsErr error
	if batchSize < 1 || batchSize > 1000 {
		batchErr = errs.NewValueIsOutOfRangeError("batch size", batchSize, 1, 1000)
	}
	if maxAttempts < 1 {
		attemptsErr = errs.NewValueIsOutOfRangeError("max attempts", maxAttempts, 1, "unbounded")
	}
	if err := errors.Join(batchErr, attemptsErr); err != nil {
		return DispatchNotificationsCommand{}, err
	}

	return DispatchNotificationsCommand{
		batchSize:   batchSize,
		maxAttempts: maxAttempts,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c DispatchNotificationsCommand) Validate() error {
	return c.guard.Validate(ErrDispatchNotificationsCommandIsNotConstructed)
}

func (c DispatchNotificationsCommand) BatchSize() int {
	return c.batchSize
}

func (c DispatchNotificationsCommand) MaxAttempts() int {
	return c.maxAttempts
}
