package queries

import (
	"context"

	"fooddelivery/internal/core/domain/model/splitconfig"

	"gorm.io/gorm"
)

type ListSplitConfigsQueryHandler struct {
	db *gorm.DB
}

func NewListSplitConfigsQueryHandler(db *gorm.DB) ListSplitConfigsQueryHandler {
	return ListSplitConfigsQueryHandler{db: db}
}

// Handle returns every version of the scope, newest first.
func (h ListSplitConfigsQueryHandler) Handle(
	ctx context.Context,
	query ListSplitConfigsQuery,
) ([]SplitConfigView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tx := h.db.WithContext(ctx).Table(splitConfigsTable)
	if rid := query.RestaurantID(); rid != nil {
		tx = tx.Where("scope = ? AND restaurant_id = ?", string(splitconfig.ScopeRestaurant), rid.Bytes())
	} else {
		tx = tx.Where("scope = ?", string(splitconfig.ScopeGlobal))
	}

	var rows []splitConfigRow
	if err := tx.Order("version DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	views := make([]SplitConfigView, 0, len(rows))
	for _, r := range rows {
		views = append(views, r.toView())
	}
	return views, nil
}
