package commands

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/splitconfig"
	"fooddelivery/internal/pkg/errs"
)

// ActivateSplitConfigCommandHandler inserts the next version of a scope's
// split config and retires the previous active one in one transaction.
type ActivateSplitConfigCommandHandler struct {
	uowFactory SplitConfigUoWFactory
}

func NewActivateSplitConfigCommandHandler(uowFactory SplitConfigUoWFactory) ActivateSplitConfigCommandHandler {
	return ActivateSplitConfigCommandHandler{uowFactory: uowFactory}
}

func (h *ActivateSplitConfigCommandHandler) Handle(ctx context.Context, cmd ActivateSplitConfigCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	actor := cmd.Actor()
	if !actor.Is(kernel.RoleAdmin) {
		return errs.NewForbiddenError(actor.String(), "activate split configs")
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.SplitConfigRepository()
	latest, err := repo.LatestVersion(ctx, cmd.RestaurantID())
	if err != nil {
		return err
	}

	cfg, err := splitconfig.New(
		cmd.ConfigID(),
		cmd.RestaurantID(),
		latest+1,
		cmd.Terms(),
		actor.ID(),
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	if err = repo.Activate(ctx, cfg); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
