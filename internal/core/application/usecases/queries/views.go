// Package queries contains read-only operations of the order service.
// Queries read the tables directly through GORM into view structs and never
// load aggregates, so they cannot change state.
package queries

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderView is the read model of an order. Amounts are in minor units of
// Currency.
type OrderView struct {
	ID           uuid.UUID
	CustomerID   uuid.UUID
	RestaurantID uuid.UUID

	Status        string
	TransportMode string

	Items       []OrderItemView
	Currency    string
	ItemsTotal  int64
	ShippingFee int64
	Total       int64

	DeliveryAddress string
	DeliveryLat     *float64
	DeliveryLng     *float64

	CustomerContact ContactView
	DeliveryContact ContactView

	Assignment *AssignmentView
	Split      *SplitView

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

type OrderItemView struct {
	Name      string
	UnitPrice int64
	Quantity  int
	LineTotal int64
}

type ContactView struct {
	Name  string
	Email string
	Phone string
}

// AssignmentView describes who carries the order. DriverID is set for
// human mode, the mission fields for drone mode.
type AssignmentView struct {
	Mode       string
	DriverID   *uuid.UUID
	MissionID  string
	DistanceKm float64
	ETASeconds int
	AssignedAt time.Time
}

type SplitView struct {
	Method         string
	AdminRate      decimal.Decimal
	RestaurantRate decimal.Decimal
	DeliveryRate   decimal.Decimal
	Admin          int64
	Restaurant     int64
	Delivery       int64
	ConfigID       uuid.UUID
	ConfigVersion  int
	SettledAt      *time.Time
}

type SplitConfigView struct {
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

// PageResult is one page of a listing together with the size of the whole
// result set.
type PageResult[T any] struct {
	Items  []T
	Total  int64
	Number int
	Size   int
}
