package http

import (
	"time"

	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/splitconfig"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ContactBody struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type NewOrderItemBody struct {
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
}

// NewOrderBody amounts are decimals in major units of Currency, so 18.50
// is 1850 minor units.
type NewOrderBody struct {
	RestaurantID    uuid.UUID          `json:"restaurantId"`
	Items           []NewOrderItemBody `json:"items"`
	ShippingFee     decimal.Decimal    `json:"shippingFee"`
	Currency        string             `json:"currency"`
	DeliveryAddress string             `json:"deliveryAddress"`
	DeliveryLat     *float64           `json:"deliveryLat"`
	DeliveryLng     *float64           `json:"deliveryLng"`
	TransportMode   string             `json:"transportMode"`
	Contact         ContactBody        `json:"contact"`
}

type CancelOrderBody struct {
	Reason string `json:"reason"`
}

type RatesBody struct {
	Admin      decimal.Decimal `json:"admin"`
	Restaurant decimal.Decimal `json:"restaurant"`
	Delivery   decimal.Decimal `json:"delivery"`
}

type RemainderRatesBody struct {
	Admin      decimal.Decimal `json:"admin"`
	Restaurant decimal.Decimal `json:"restaurant"`
}

type NewSplitConfigBody struct {
	RestaurantID    *uuid.UUID         `json:"restaurantId"`
	Method          string             `json:"method"`
	Currency        string             `json:"currency"`
	Rates           RatesBody          `json:"rates"`
	DeliveryFee     decimal.Decimal    `json:"deliveryFee"`
	RemainderPolicy string             `json:"remainderPolicy"`
	RemainderRates  RemainderRatesBody `json:"remainderRates"`
}

type OrderItemResponse struct {
	Name      string `json:"name"`
	UnitPrice string `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"lineTotal"`
}

type AssignmentResponse struct {
	Mode       string     `json:"mode"`
	DriverID   *uuid.UUID `json:"driverId,omitempty"`
	MissionID  string     `json:"missionId,omitempty"`
	DistanceKm float64    `json:"distanceKm,omitempty"`
	ETASeconds int        `json:"etaSeconds,omitempty"`
	AssignedAt time.Time  `json:"assignedAt"`
}

type SplitResponse struct {
	Method        string                     `json:"method"`
	Rates         map[string]decimal.Decimal `json:"rates"`
	Amounts       map[string]string          `json:"amounts"`
	ConfigID      uuid.UUID                  `json:"configId"`
	ConfigVersion int                        `json:"configVersion"`
	SettledAt     *time.Time                 `json:"settledAt,omitempty"`
}

type OrderResponse struct {
	ID                uuid.UUID           `json:"id"`
	CustomerID        uuid.UUID           `json:"customerId"`
	RestaurantID      uuid.UUID           `json:"restaurantId"`
	Status            string              `json:"status"`
	TransportMode     string              `json:"transportMode"`
	Items             []OrderItemResponse `json:"items"`
	Currency          string              `json:"currency"`
	ItemsTotal        string              `json:"itemsTotal"`
	ShippingFee       string              `json:"shippingFee"`
	Total             string              `json:"total"`
	DeliveryAddress   string              `json:"deliveryAddress"`
	DeliveryLat       *float64            `json:"deliveryLat,omitempty"`
	DeliveryLng       *float64            `json:"deliveryLng,omitempty"`
	CustomerContact   ContactBody         `json:"customerContact"`
	DeliveryContact   *ContactBody        `json:"deliveryContact,omitempty"`
	Assignment        *AssignmentResponse `json:"assignment,omitempty"`
	Split             *SplitResponse      `json:"split,omitempty"`
	CustomerConfirmed bool                `json:"customerConfirmed"`
	ReceivedAt        *time.Time          `json:"receivedAt,omitempty"`
	IsDeleted         bool                `json:"isDeleted"`
	DeletedAt         *time.Time          `json:"deletedAt,omitempty"`
	DeletedBy         *uuid.UUID          `json:"deletedBy,omitempty"`
	CancelReason      string              `json:"cancelReason,omitempty"`
	CreatedAt         time.Time           `json:"createdAt"`
	UpdatedAt         time.Time           `json:"updatedAt"`
}

type OrderPageResponse struct {
	Items    []OrderResponse `json:"items"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"pageSize"`
}

type SplitConfigResponse struct {
	ID              uuid.UUID                  `json:"id"`
	Scope           string                     `json:"scope"`
	RestaurantID    *uuid.UUID                 `json:"restaurantId,omitempty"`
	Version         int                        `json:"version"`
	Active          bool                       `json:"active"`
	Method          string                     `json:"method"`
	Currency        string                     `json:"currency"`
	Rates           map[string]decimal.Decimal `json:"rates,omitempty"`
	DeliveryFee     *string                    `json:"deliveryFee,omitempty"`
	RemainderPolicy string                     `json:"remainderPolicy,omitempty"`
	RemainderRates  map[string]decimal.Decimal `json:"remainderRates,omitempty"`
	CreatedBy       uuid.UUID                  `json:"createdBy"`
	CreatedAt       time.Time                  `json:"createdAt"`
}

// major formats minor units as a decimal amount with all minor digits.
func major(minor int64) string {
	return decimal.New(minor, -kernel.MinorUnitExponent).StringFixed(kernel.MinorUnitExponent)
}

func toOrderResponse(v queries.OrderView) OrderResponse {
	items := make([]OrderItemResponse, len(v.Items))
	for i, item := range v.Items {
		items[i] = OrderItemResponse{
			Name:      item.Name,
			UnitPrice: major(item.UnitPrice),
			Quantity:  item.Quantity,
			LineTotal: major(item.LineTotal),
		}
	}

	resp := OrderResponse{
		ID:                v.ID,
		CustomerID:        v.CustomerID,
		RestaurantID:      v.RestaurantID,
		Status:            v.Status,
		TransportMode:     v.TransportMode,
		Items:             items,
		Currency:          v.Currency,
		ItemsTotal:        major(v.ItemsTotal),
		ShippingFee:       major(v.ShippingFee),
		Total:             major(v.Total),
		DeliveryAddress:   v.DeliveryAddress,
		DeliveryLat:       v.DeliveryLat,
		DeliveryLng:       v.DeliveryLng,
		CustomerContact:   ContactBody(v.CustomerContact),
		CustomerConfirmed: v.CustomerConfirmed,
		ReceivedAt:        v.ReceivedAt,
		IsDeleted:         v.IsDeleted,
		DeletedAt:         v.DeletedAt,
		DeletedBy:         v.DeletedBy,
		CancelReason:      v.CancelReason,
		CreatedAt:         v.CreatedAt,
		UpdatedAt:         v.UpdatedAt,
	}

	if v.DeliveryContact != (queries.ContactView{}) {
		contact := ContactBody(v.DeliveryContact)
		resp.DeliveryContact = &contact
	}
	if a := v.Assignment; a != nil {
		resp.Assignment = &AssignmentResponse{
			Mode:       a.Mode,
			DriverID:   a.DriverID,
			MissionID:  a.MissionID,
			DistanceKm: a.DistanceKm,
			ETASeconds: a.ETASeconds,
			AssignedAt: a.AssignedAt,
		}
	}
	if s := v.Split; s != nil {
		resp.Split = &SplitResponse{
			Method: s.Method,
			Rates: map[string]decimal.Decimal{
				"admin":      s.AdminRate,
				"restaurant": s.RestaurantRate,
				"delivery":   s.DeliveryRate,
			},
			Amounts: map[string]string{
				"admin":      major(s.Admin),
				"restaurant": major(s.Restaurant),
				"delivery":   major(s.Delivery),
			},
			ConfigID:      s.ConfigID,
			ConfigVersion: s.ConfigVersion,
			SettledAt:     s.SettledAt,
		}
	}
	return resp
}

func toOrderPageResponse(p queries.PageResult[queries.OrderView]) OrderPageResponse {
	items := make([]OrderResponse, len(p.Items))
	for i, v := range p.Items {
		items[i] = toOrderResponse(v)
	}
	return OrderPageResponse{Items: items, Total: p.Total, Page: p.Number, PageSize: p.Size}
}

func toSplitConfigResponse(v queries.SplitConfigView) SplitConfigResponse {
	resp := SplitConfigResponse{
		ID:           v.ID,
		Scope:        v.Scope,
		RestaurantID: v.RestaurantID,
		Version:      v.Version,
		Active:       v.Active,
		Method:       v.Method,
		Currency:     v.Currency,
		CreatedBy:    v.CreatedBy,
		CreatedAt:    v.CreatedAt,
	}

	if v.Method == string(splitconfig.MethodFixed) {
		fee := major(v.DeliveryFee)
		resp.DeliveryFee = &fee
		resp.RemainderPolicy = v.RemainderPolicy
		if v.RemainderPolicy == string(splitconfig.RemainderByPercent) {
			resp.RemainderRates = map[string]decimal.Decimal{
				"admin":      v.RemainderAdminRate,
				"restaurant": v.RemainderRestaurantRate,
			}
		}
		return resp
	}

	resp.Rates = map[string]decimal.Decimal{
		"admin":      v.AdminRate,
		"restaurant": v.RestaurantRate,
		"delivery":   v.DeliveryRate,
	}
	return resp
}

func toSplitConfigResponses(views []queries.SplitConfigView) []SplitConfigResponse {
	resp := make([]SplitConfigResponse, len(views))
	for i, v := range views {
		resp[i] = toSplitConfigResponse(v)
	}
	return resp
}
