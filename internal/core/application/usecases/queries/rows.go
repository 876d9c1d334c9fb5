package queries

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	ordersTable       = "orders"
	orderItemsTable   = "order_items"
	splitConfigsTable = "split_configs"
)

// orderRow mirrors the columns of the orders table.
type orderRow struct {
	ID           uuid.UUID
	CustomerID   uuid.UUID
	RestaurantID uuid.UUID

	Currency    string
	ItemsTotal  int64
	ShippingFee int64
	Total       int64

	Status        string
	TransportMode string

	AssignmentMode       *string
	AssignmentDriverID   *uuid.UUID
	AssignmentMissionID  *string
	AssignmentDistanceKm *float64
	AssignmentETASeconds *int `gorm:"column:assignment_eta_seconds"`
	AssignmentAssignedAt *time.Time

	DeliveryAddress string
	DeliveryLat     *float64
	DeliveryLng     *float64

	CustomerName         string
	CustomerEmail        string
	CustomerPhone        string
	DeliveryContactName  string
	DeliveryContactEmail string
	DeliveryContactPhone string

	SplitMethod         *string
	SplitAdminRate      decimal.NullDecimal
	SplitRestaurantRate decimal.NullDecimal
	SplitDeliveryRate   decimal.NullDecimal
	SplitAdmin          *int64
	SplitRestaurant     *int64
	SplitDelivery       *int64
	SplitConfigID       *uuid.UUID
	SplitConfigVersion  *int
	SplitSettledAt      *time.Time

	CustomerConfirmed bool
	ReceivedAt        *time.Time

	IsDeleted bool
	DeletedAt *time.Time
	DeletedBy *uuid.UUID

	CancelReason string

	CreatedAt   time.Time
	UpdatedAt   time.Time
	AcceptedAt  *time.Time
	DeliveredAt *time.Time
	CancelledAt *time.Time
}

type orderItemRow struct {
	OrderID   uuid.UUID
	Position  int
	Name      string
	UnitPrice int64
	Quantity  int
}

type splitConfigRow struct {
	ID           uuid.UUID
	Scope        string
	RestaurantID *uuid.UUID
	Version      int
	Active       bool

	Method         string
	AdminRate      decimal.Decimal
	RestaurantRate decimal.Decimal
	DeliveryRate   decimal.Decimal

	DeliveryFee             int64
	RemainderPolicy         string
	RemainderAdminRate      decimal.Decimal
	RemainderRestaurantRate decimal.Decimal

	Currency  string
	CreatedBy uuid.UUID
	CreatedAt time.Time
}

// inPool reports whether a driver may pick the order up.
func (r orderRow) inPool() bool {
	return (r.Status == order.Pending.String() || r.Status == order.Accepted.String()) &&
		r.TransportMode == order.Human.String() &&
		r.AssignmentMode == nil &&
		!r.IsDeleted
}

func (r orderRow) toView(items []orderItemRow) OrderView {
	v := OrderView{
		ID:              r.ID,
		CustomerID:      r.CustomerID,
		RestaurantID:    r.RestaurantID,
		Status:          r.Status,
		TransportMode:   r.TransportMode,
		Items:           make([]OrderItemView, 0, len(items)),
		Currency:        r.Currency,
		ItemsTotal:      r.ItemsTotal,
		ShippingFee:     r.ShippingFee,
		Total:           r.Total,
		DeliveryAddress: r.DeliveryAddress,
		DeliveryLat:     r.DeliveryLat,
		DeliveryLng:     r.DeliveryLng,
		CustomerContact: ContactView{
			Name:  r.CustomerName,
			Email: r.CustomerEmail,
			Phone: r.CustomerPhone,
		},
		DeliveryContact: ContactView{
			Name:  r.DeliveryContactName,
			Email: r.DeliveryContactEmail,
			Phone: r.DeliveryContactPhone,
		},
		CustomerConfirmed: r.CustomerConfirmed,
		ReceivedAt:        r.ReceivedAt,
		IsDeleted:         r.IsDeleted,
		DeletedAt:         r.DeletedAt,
		DeletedBy:         r.DeletedBy,
		CancelReason:      r.CancelReason,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
		AcceptedAt:        r.AcceptedAt,
		DeliveredAt:       r.DeliveredAt,
		CancelledAt:       r.CancelledAt,
	}

	for _, item := range items {
		v.Items = append(v.Items, OrderItemView{
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			LineTotal: item.UnitPrice * int64(item.Quantity),
		})
	}

	if r.AssignmentMode != nil {
		a := &AssignmentView{Mode: *r.AssignmentMode, DriverID: r.AssignmentDriverID}
		if r.AssignmentMissionID != nil {
			a.MissionID = *r.AssignmentMissionID
		}
		if r.AssignmentDistanceKm != nil {
			a.DistanceKm = *r.AssignmentDistanceKm
		}
		if r.AssignmentETASeconds != nil {
			a.ETASeconds = *r.AssignmentETASeconds
		}
		if r.AssignmentAssignedAt != nil {
			a.AssignedAt = *r.AssignmentAssignedAt
		}
		v.Assignment = a
	}

	if r.SplitMethod != nil {
		s := &SplitView{
			Method:         *r.SplitMethod,
			AdminRate:      r.SplitAdminRate.Decimal,
			RestaurantRate: r.SplitRestaurantRate.Decimal,
			DeliveryRate:   r.SplitDeliveryRate.Decimal,
			SettledAt:      r.SplitSettledAt,
		}
		s.Admin = deref(r.SplitAdmin)
		s.Restaurant = deref(r.SplitRestaurant)
		s.Delivery = deref(r.SplitDelivery)
		s.ConfigVersion = deref(r.SplitConfigVersion)
		if r.SplitConfigID != nil {
			s.ConfigID = *r.SplitConfigID
		}
		v.Split = s
	}

	return v
}

func (r splitConfigRow) toView() SplitConfigView {
	return SplitConfigView(r)
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

// loadViews attaches items to rows in a single extra query.
func loadViews(ctx context.Context, db *gorm.DB, rows []orderRow) ([]OrderView, error) {
	views := make([]OrderView, 0, len(rows))
	if len(rows) == 0 {
		return views, nil
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}

	var items []orderItemRow
	err := db.WithContext(ctx).
		Table(orderItemsTable).
		Where("order_id IN ?", ids).
		Order("position").
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	byOrder := make(map[uuid.UUID][]orderItemRow, len(rows))
	for _, item := range items {
		byOrder[item.OrderID] = append(byOrder[item.OrderID], item)
	}

	for _, r := range rows {
		views = append(views, r.toView(byOrder[r.ID]))
	}
	return views, nil
}
