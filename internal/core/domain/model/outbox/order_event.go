package outbox

import (
	"encoding/json"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// OrderEvent is the JSON payload of an order outbox message. It carries
// everything the notification planner needs so the relay never reads the
// orders table.
type OrderEvent struct {
	EventID       string          `json:"eventId"`
	Type          string          `json:"type"`
	OrderID       string          `json:"orderId"`
	CustomerID    string          `json:"customerId"`
	RestaurantID  string          `json:"restaurantId"`
	Status        string          `json:"status"`
	TransportMode string          `json:"transportMode"`
	Total         decimal.Decimal `json:"total"`
	Currency      string          `json:"currency"`
	CustomerName  string          `json:"customerName,omitempty"`
	CustomerEmail string          `json:"customerEmail,omitempty"`
	DriverID      string          `json:"driverId,omitempty"`
	DriverName    string          `json:"driverName,omitempty"`
	MissionID     string          `json:"missionId,omitempty"`
	ETASeconds    int             `json:"etaSeconds,omitempty"`
	CancelReason  string          `json:"cancelReason,omitempty"`
	Split         *SplitAmounts   `json:"split,omitempty"`
	OccurredAt    time.Time       `json:"occurredAt"`
}

type SplitAmounts struct {
	Method     string          `json:"method"`
	Admin      decimal.Decimal `json:"admin"`
	Restaurant decimal.Decimal `json:"restaurant"`
	Delivery   decimal.Decimal `json:"delivery"`
}

// FromDomainEvent flattens an order event into its payload form.
func FromDomainEvent(e order.DomainEvent) OrderEvent {
	payload := OrderEvent{
		EventID:       e.ID.String(),
		Type:          string(e.Type),
		OrderID:       e.OrderID.String(),
		CustomerID:    e.CustomerID.String(),
		RestaurantID:  e.RestaurantID.String(),
		Status:        e.Status.String(),
		TransportMode: e.TransportMode.String(),
		Total:         e.Total.Decimal(),
		Currency:      e.Total.Currency(),
		CustomerName:  e.CustomerContact.Name(),
		CustomerEmail: e.CustomerContact.Email(),
		CancelReason:  e.CancelReason,
		OccurredAt:    e.OccurredAt,
	}

	if a := e.Assignment; a != nil {
		if id := a.DriverID(); id != nil {
			payload.DriverID = id.String()
		}
		payload.DriverName = a.DriverContact().Name()
		payload.MissionID = a.MissionID()
		payload.ETASeconds = a.ETASeconds()
	}

	if s := e.Split; s != nil {
		shares := s.Shares()
		payload.Split = &SplitAmounts{
			Method:     string(s.Method()),
			Admin:      shares.Admin.Decimal(),
			Restaurant: shares.Restaurant.Decimal(),
			Delivery:   shares.Delivery.Decimal(),
		}
	}

	return payload
}

// NewOrderEventMessage encodes a domain event as a pending outbox message.
func NewOrderEventMessage(e order.DomainEvent, traceparent string) (*Message, error) {
	payload, err := json.Marshal(FromDomainEvent(e))
	if err != nil {
		return nil, fmt.Errorf("encode %s event: %w", e.Type, err)
	}
	return NewMessage(e.ID, e.OrderID, string(e.Type), payload, traceparent, e.OccurredAt)
}

// OrderEvent decodes the payload of an order message.
func (m *Message) OrderEvent() (OrderEvent, error) {
	var e OrderEvent
	if err := json.Unmarshal(m.payload, &e); err != nil {
		return OrderEvent{}, errs.NewValueIsInvalidErrorWithCause("outbox payload", err)
	}
	return e, nil
}
