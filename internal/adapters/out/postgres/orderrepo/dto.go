// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// Orders live in the "orders" table with their items in "order_items"; the
// assignment and the settled split are embedded column groups that stay
// NULL until the order reaches that point of its lifecycle.
package orderrepo

import (
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/splitconfig"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey"`
	CustomerID   uuid.UUID      `gorm:"type:uuid;not null;index"`
	RestaurantID uuid.UUID      `gorm:"type:uuid;not null;index"`
	Items        []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	Currency    string `gorm:"size:3;not null"`
	ItemsTotal  int64  `gorm:"not null"`
	ShippingFee int64  `gorm:"not null"`
	Total       int64  `gorm:"not null"`

	Status        string `gorm:"size:16;not null;index:idx_orders_status_deleted,priority:1"`
	TransportMode string `gorm:"size:8;not null"`

	Assignment AssignmentDTO `gorm:"embedded;embeddedPrefix:assignment_"`

	DeliveryAddress string   `gorm:"not null"`
	DeliveryLat     *float64
	DeliveryLng     *float64

	CustomerContact ContactDTO `gorm:"embedded;embeddedPrefix:customer_"`
	DeliveryContact ContactDTO `gorm:"embedded;embeddedPrefix:delivery_contact_"`

	Split SplitDTO `gorm:"embedded;embeddedPrefix:split_"`

	CustomerConfirmed bool `gorm:"not null;default:false"`
	ReceivedAt        *time.Time

	IsDeleted bool `gorm:"not null;default:false;index:idx_orders_status_deleted,priority:2"`
	DeletedAt *time.Time
	DeletedBy *uuid.UUID `gorm:"type:uuid"`

	CancelReason string

	CreatedAt   time.Time `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime:false"`
	AcceptedAt  *time.Time
	DeliveredAt *time.Time
	CancelledAt *time.Time

	// Version is bumped by every conditional write after the insert.
	Version int `gorm:"not null;default:0"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is one line of an order. Position keeps the customer's order.
type OrderItemDTO struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position  int       `gorm:"primaryKey;autoIncrement:false"`
	Name      string    `gorm:"not null"`
	UnitPrice int64     `gorm:"not null"`
	Quantity  int       `gorm:"not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

// AssignmentDTO is NULL in every column until the order is assigned.
// Mode doubles as the "is assigned" marker used by compare-and-set writes.
type AssignmentDTO struct {
	Mode       *string    `gorm:"size:8"`
	DriverID   *uuid.UUID `gorm:"type:uuid;index"`
	MissionID  *string
	DistanceKm *float64
	ETASeconds *int
	AssignedAt *time.Time
}

type ContactDTO struct {
	Name  string
	Email string
	Phone string
}

// SplitDTO holds the settlement stamped at delivery.
type SplitDTO struct {
	Method         *string             `gorm:"size:8"`
	AdminRate      decimal.NullDecimal `gorm:"type:numeric(5,2)"`
	RestaurantRate decimal.NullDecimal `gorm:"type:numeric(5,2)"`
	DeliveryRate   decimal.NullDecimal `gorm:"type:numeric(5,2)"`
	Admin          *int64
	Restaurant     *int64
	Delivery       *int64
	ConfigID       *uuid.UUID `gorm:"type:uuid"`
	ConfigVersion  *int
	SettledAt      *time.Time
}

func fromDomain(o *order.Order) OrderDTO {
	s := o.Snapshot()

	dto := OrderDTO{
		ID:                s.ID.Bytes(),
		CustomerID:        s.CustomerID.Bytes(),
		RestaurantID:      s.RestaurantID.Bytes(),
		Currency:          s.Total.Currency(),
		ItemsTotal:        s.ItemsTotal.Amount(),
		ShippingFee:       s.ShippingFee.Amount(),
		Total:             s.Total.Amount(),
		Status:            s.Status.String(),
		TransportMode:     s.TransportMode.String(),
		DeliveryAddress:   s.DeliveryLocation.Address(),
		CustomerContact:   contactFromDomain(s.CustomerContact),
		DeliveryContact:   contactFromDomain(s.DeliveryContact),
		CustomerConfirmed: s.CustomerConfirmed,
		ReceivedAt:        s.ReceivedAt,
		IsDeleted:         s.IsDeleted,
		DeletedAt:         s.DeletedAt,
		CancelReason:      s.CancelReason,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
		AcceptedAt:        s.AcceptedAt,
		DeliveredAt:       s.DeliveredAt,
		CancelledAt:       s.CancelledAt,
		Version:           s.Version,
	}

	if c := s.DeliveryLocation.Coordinates(); c != nil {
		lat, lng := c.Lat(), c.Lng()
		dto.DeliveryLat = &lat
		dto.DeliveryLng = &lng
	}
	if s.DeletedBy != nil {
		by := s.DeletedBy.Bytes()
		dto.DeletedBy = &by
	}

	dto.Items = make([]OrderItemDTO, 0, len(s.Items))
	for i, item := range s.Items {
		dto.Items = append(dto.Items, OrderItemDTO{
			OrderID:   dto.ID,
			Position:  i,
			Name:      item.Name(),
			UnitPrice: item.UnitPrice().Amount(),
			Quantity:  item.Quantity(),
		})
	}

	if a := s.Assignment; a != nil {
		mode := a.Mode().String()
		at := a.AssignedAt()
		dto.Assignment = AssignmentDTO{Mode: &mode, AssignedAt: &at}
		if id := a.DriverID(); id != nil {
			driverID := id.Bytes()
			dto.Assignment.DriverID = &driverID
		} else {
			missionID, distance, eta := a.MissionID(), a.DistanceKm(), a.ETASeconds()
			dto.Assignment.MissionID = &missionID
			dto.Assignment.DistanceKm = &distance
			dto.Assignment.ETASeconds = &eta
		}
	}

	if sp := s.Split; sp != nil {
		method := string(sp.Method())
		rates := sp.Rates()
		shares := sp.Shares()
		admin, restaurant, delivery := shares.Admin.Amount(), shares.Restaurant.Amount(), shares.Delivery.Amount()
		configID := sp.ConfigID().Bytes()
		version := sp.ConfigVersion()
		dto.Split = SplitDTO{
			Method:         &method,
			AdminRate:      decimal.NewNullDecimal(rates.Admin),
			RestaurantRate: decimal.NewNullDecimal(rates.Restaurant),
			DeliveryRate:   decimal.NewNullDecimal(rates.Delivery),
			Admin:          &admin,
			Restaurant:     &restaurant,
			Delivery:       &delivery,
			ConfigID:       &configID,
			ConfigVersion:  &version,
			SettledAt:      sp.SettledAt(),
		}
	}

	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	money := func(amount int64) (kernel.Money, error) {
		return kernel.NewMoney(amount, dto.Currency)
	}

	id, idErr := kernel.UUIDFromGoogle(dto.ID)
	customerID, customerErr := kernel.UUIDFromGoogle(dto.CustomerID)
	restaurantID, restaurantErr := kernel.UUIDFromGoogle(dto.RestaurantID)
	itemsTotal, itemsTotalErr := money(dto.ItemsTotal)
	shippingFee, feeErr := money(dto.ShippingFee)
	total, totalErr := money(dto.Total)
	status, statusErr := order.ParseStatus(dto.Status)
	if err := errors.Join(idErr, customerErr, restaurantErr, itemsTotalErr, feeErr, totalErr, statusErr); err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		price, err := money(itemDTO.UnitPrice)
		if err != nil {
			return nil, err
		}
		item, err := order.NewItem(itemDTO.Name, price, itemDTO.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	var coordinates *kernel.Coordinates
	if dto.DeliveryLat != nil && dto.DeliveryLng != nil {
		c, err := kernel.NewCoordinates(*dto.DeliveryLat, *dto.DeliveryLng)
		if err != nil {
			return nil, err
		}
		coordinates = &c
	}
	location, err := kernel.NewLocation(dto.DeliveryAddress, coordinates)
	if err != nil {
		return nil, err
	}

	customerContact, err := contactToDomain(dto.CustomerContact)
	if err != nil {
		return nil, err
	}
	deliveryContact, err := contactToDomain(dto.DeliveryContact)
	if err != nil {
		return nil, err
	}

	snapshot := order.Snapshot{
		ID:                id,
		CustomerID:        customerID,
		RestaurantID:      restaurantID,
		Items:             items,
		ItemsTotal:        itemsTotal,
		ShippingFee:       shippingFee,
		Total:             total,
		Status:            status,
		TransportMode:     order.TransportMode(dto.TransportMode),
		DeliveryLocation:  location,
		CustomerContact:   customerContact,
		DeliveryContact:   deliveryContact,
		CustomerConfirmed: dto.CustomerConfirmed,
		ReceivedAt:        dto.ReceivedAt,
		IsDeleted:         dto.IsDeleted,
		DeletedAt:         dto.DeletedAt,
		CancelReason:      dto.CancelReason,
		CreatedAt:         dto.CreatedAt,
		UpdatedAt:         dto.UpdatedAt,
		AcceptedAt:        dto.AcceptedAt,
		DeliveredAt:       dto.DeliveredAt,
		CancelledAt:       dto.CancelledAt,
		Version:           dto.Version,
	}

	if dto.DeletedBy != nil {
		by, byErr := kernel.UUIDFromGoogle(*dto.DeletedBy)
		if byErr != nil {
			return nil, byErr
		}
		snapshot.DeletedBy = &by
	}

	if snapshot.Assignment, err = assignmentToDomain(dto.Assignment, deliveryContact); err != nil {
		return nil, err
	}
	if snapshot.Split, err = splitToDomain(dto.Split, money); err != nil {
		return nil, err
	}

	return order.RestoreOrder(snapshot)
}

func contactFromDomain(c order.Contact) ContactDTO {
	return ContactDTO{Name: c.Name(), Email: c.Email(), Phone: c.Phone()}
}

func contactToDomain(dto ContactDTO) (order.Contact, error) {
	return order.NewContact(dto.Name, dto.Email, dto.Phone)
}

func assignmentToDomain(dto AssignmentDTO, contact order.Contact) (*order.Assignment, error) {
	if dto.Mode == nil {
		return nil, nil
	}

	var assignedAt time.Time
	if dto.AssignedAt != nil {
		assignedAt = *dto.AssignedAt
	}

	var (
		a   order.Assignment
		err error
	)
	switch order.TransportMode(*dto.Mode) {
	case order.Human:
		if dto.DriverID == nil {
			return nil, errors.New("stored driver assignment has no driver id")
		}
		driverID, idErr := kernel.UUIDFromGoogle(*dto.DriverID)
		if idErr != nil {
			return nil, idErr
		}
		a, err = order.RestoreDriverAssignment(driverID, contact, assignedAt)
	case order.Drone:
		mission := order.DroneMission{}
		if dto.MissionID != nil {
			mission.MissionID = *dto.MissionID
		}
		if dto.DistanceKm != nil {
			mission.DistanceKm = *dto.DistanceKm
		}
		if dto.ETASeconds != nil {
			mission.ETASeconds = *dto.ETASeconds
		}
		a, err = order.RestoreDroneAssignment(mission, assignedAt)
	default:
		return nil, order.TransportMode(*dto.Mode).Validate()
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func splitToDomain(dto SplitDTO, money func(int64) (kernel.Money, error)) (*order.Split, error) {
	if dto.Method == nil {
		return nil, nil
	}
	if dto.Admin == nil || dto.Restaurant == nil || dto.Delivery == nil || dto.ConfigID == nil || dto.ConfigVersion == nil {
		return nil, errors.New("stored split is incomplete")
	}

	admin, adminErr := money(*dto.Admin)
	restaurant, restaurantErr := money(*dto.Restaurant)
	delivery, deliveryErr := money(*dto.Delivery)
	configID, idErr := kernel.UUIDFromGoogle(*dto.ConfigID)
	if err := errors.Join(adminErr, restaurantErr, deliveryErr, idErr); err != nil {
		return nil, err
	}

	split, err := order.RestoreSplit(
		splitconfig.Method(*dto.Method),
		splitconfig.Rates{
			Admin:      dto.AdminRate.Decimal,
			Restaurant: dto.RestaurantRate.Decimal,
			Delivery:   dto.DeliveryRate.Decimal,
		},
		order.Shares{Admin: admin, Restaurant: restaurant, Delivery: delivery},
		configID,
		*dto.ConfigVersion,
		dto.SettledAt,
	)
	if err != nil {
		return nil, err
	}
	return &split, nil
}
