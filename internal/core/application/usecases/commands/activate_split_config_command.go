package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/splitconfig"
	"fooddelivery/internal/pkg/guard"
)

var ErrActivateSplitConfigCommandIsNotConstructed = errors.New(
	"ActivateSplitConfigCommand must be created via NewActivateSplitConfigCommand constructor",
)

// ActivateSplitConfigCommand publishes a new version of the split rules of
// a scope. A nil restaurantID targets the global default.
type ActivateSplitConfigCommand struct { //nolint:recvcheck //using for validation
	configID     kernel.UUID
	restaurantID *kernel.UUID
	terms        splitconfig.Terms
	actor        kernel.Actor

	guard guard.ConstructorGuard
}

func NewActivateSplitConfigCommand(
	configID kernel.UUID,
	restaurantID *kernel.UUID,
	terms splitconfig.Terms,
	actor kernel.Actor,
) (ActivateSplitConfigCommand, error) {
	var scopeErr error
	if restaurantID != nil {
		scopeErr = restaurantID.Validate()
	}
	if err := errors.Join(configID.Validate(), scopeErr, terms.Validate(), actor.Validate()); err != nil {
		return ActivateSplitConfigCommand{}, err
	}

	cmd := ActivateSplitConfigCommand{
		configID: configID,
		terms:    terms,
		actor:    actor,
		guard:    guard.NewConstructorGuard(),
	}
	if restaurantID != nil {
		rid := *restaurantID
		cmd.restaurantID = &rid
	}
	return cmd, nil
}

func (c ActivateSplitConfigCommand) Validate() error {
	return c.guard.Validate(ErrActivateSplitConfigCommandIsNotConstructed)
}

func (c ActivateSplitConfigCommand) ConfigID() kernel.UUID {
	return c.configID
}

func (c ActivateSplitConfigCommand) RestaurantID() *kernel.UUID {
	if c.restaurantID == nil {
		return nil
	}
	rid := *c.restaurantID
	return &rid
}

func (c ActivateSplitConfigCommand) Terms() splitconfig.Terms {
	return c.terms
}

func (c ActivateSplitConfigCommand) Actor() kernel.Actor {
	return c.actor
}
