package queries

import (
	"context"

	"gorm.io/gorm"
)

// ListOrdersQueryHandler pages through orders matching a filter.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle orders by creation time descending with the id as tie breaker.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) (PageResult[OrderView], error) {
	if err := query.Validate(); err != nil {
		return PageResult[OrderView]{}, err
	}

	filter := query.Filter()
	page := query.Page()

	var total int64
	if err := applyFilter(h.db.WithContext(ctx).Table(ordersTable), filter).Count(&total).Error; err != nil {
		return PageResult[OrderView]{}, err
	}

	var rows []orderRow
	err := applyFilter(h.db.WithContext(ctx).Table(ordersTable), filter).
		Order("created_at DESC").
		Order("id").
		Limit(page.Size()).
		Offset(page.Offset()).
		Find(&rows).Error
	if err != nil {
		return PageResult[OrderView]{}, err
	}

	views, err := loadViews(ctx, h.db, rows)
	if err != nil {
		return PageResult[OrderView]{}, err
	}

	return PageResult[OrderView]{
		Items:  views,
		Total:  total,
		Number: page.Number(),
		Size:   page.Size(),
	}, nil
}

func applyFilter(tx *gorm.DB, f OrderFilter) *gorm.DB {
	if !f.IncludeDeleted {
		tx = tx.Where("is_deleted = ?", false)
	}
	if f.CustomerID != nil {
		tx = tx.Where("customer_id = ?", f.CustomerID.Bytes())
	}
	if f.RestaurantID != nil {
		tx = tx.Where("restaurant_id = ?", f.RestaurantID.Bytes())
	}
	if f.DriverID != nil {
		tx = tx.Where("assignment_driver_id = ?", f.DriverID.Bytes())
	}
	if f.TransportMode != nil {
		tx = tx.Where("transport_mode = ?", f.TransportMode.String())
	}
	if len(f.Statuses) > 0 {
		statuses := make([]string, 0, len(f.Statuses))
		for _, s := range f.Statuses {
			statuses = append(statuses, s.String())
		}
		tx = tx.Where("status IN ?", statuses)
	}
	if f.From != nil {
		tx = tx.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		tx = tx.Where("created_at < ?", *f.To)
	}
	return tx
}
