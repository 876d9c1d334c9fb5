package queries

import (
	"context"

	"fooddelivery/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetAvailableOrdersQueryHandler reads the driver pool: pending or accepted
// human-mode orders without an assignment, oldest first.
//
// Example:
//
//	page, _ := NewPage(1, 20)
//	query, _ := NewGetAvailableOrdersQuery(driver, page)
//
//	result, err := NewGetAvailableOrdersQueryHandler(db).Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%d orders waiting for a driver\n", result.Total)
type GetAvailableOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetAvailableOrdersQueryHandler(db *gorm.DB) GetAvailableOrdersQueryHandler {
	return GetAvailableOrdersQueryHandler{db: db}
}

func (h GetAvailableOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableOrdersQuery,
) (PageResult[OrderView], error) {
	if err := query.Validate(); err != nil {
		return PageResult[OrderView]{}, err
	}
	page := query.Page()

	pool := func() *gorm.DB {
		return h.db.WithContext(ctx).
			Table(ordersTable).
			Where("status IN ?", []string{order.Pending.String(), order.Accepted.String()}).
			Where("transport_mode = ?", order.Human.String()).
			Where("assignment_mode IS NULL").
			Where("is_deleted = ?", false)
	}

	var total int64
	if err := pool().Count(&total).Error; err != nil {
		return PageResult[OrderView]{}, err
	}

	var rows []orderRow
	err := pool().
		Order("created_at").
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
