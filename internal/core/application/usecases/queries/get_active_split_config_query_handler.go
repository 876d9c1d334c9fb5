package queries

import (
	"context"
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/splitconfig"
	"fooddelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetActiveSplitConfigQueryHandler struct {
	db *gorm.DB
}

func NewGetActiveSplitConfigQueryHandler(db *gorm.DB) GetActiveSplitConfigQueryHandler {
	return GetActiveSplitConfigQueryHandler{db: db}
}

// Handle falls back from the restaurant scope to the global scope, the same
// way settlement picks a config. It returns errs.ObjectNotFoundError when
// neither scope has an active config.
func (h GetActiveSplitConfigQueryHandler) Handle(
	ctx context.Context,
	query GetActiveSplitConfigQuery,
) (SplitConfigView, error) {
	if err := query.Validate(); err != nil {
		return SplitConfigView{}, err
	}

	if rid := query.RestaurantID(); rid != nil {
		view, found, err := h.active(ctx, splitconfig.ScopeRestaurant, rid)
		if err != nil || found {
			return view, err
		}
	}

	view, found, err := h.active(ctx, splitconfig.ScopeGlobal, nil)
	if err != nil {
		return SplitConfigView{}, err
	}
	if !found {
		return SplitConfigView{}, errs.NewObjectNotFoundError("active split config", scopeName(query.RestaurantID()))
	}
	return view, nil
}

func (h GetActiveSplitConfigQueryHandler) active(
	ctx context.Context,
	scope splitconfig.Scope,
	restaurantID *kernel.UUID,
) (SplitConfigView, bool, error) {
	tx := h.db.WithContext(ctx).
		Table(splitConfigsTable).
		Where("scope = ? AND active = ?", string(scope), true)
	if restaurantID != nil {
		tx = tx.Where("restaurant_id = ?", restaurantID.Bytes())
	}

	var row splitConfigRow
	if err := tx.Order("version DESC").Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SplitConfigView{}, false, nil
		}
		return SplitConfigView{}, false, err
	}
	return row.toView(), true, nil
}

func scopeName(restaurantID *kernel.UUID) string {
	if restaurantID == nil {
		return string(splitconfig.ScopeGlobal)
	}
	return string(splitconfig.ScopeRestaurant) + " " + restaurantID.String()
}
