package order

import (
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
)

type EventType string

const (
	EventCreated   EventType = "order.created"
	EventAccepted  EventType = "order.accepted"
	EventAssigned  EventType = "order.assigned"
	EventDelivered EventType = "order.delivered"
	EventCancelled EventType = "order.cancelled"
)

// DomainEvent is a snapshot of the order taken when a transition happened.
// Events are collected on the aggregate and drained by the unit of work
// into the notification outbox in the same transaction as the write.
type DomainEvent struct {
	ID              kernel.UUID
	Type            EventType
	OrderID         kernel.UUID
	CustomerID      kernel.UUID
	RestaurantID    kernel.UUID
	Status          Status
	TransportMode   TransportMode
	Total           kernel.Money
	CustomerContact Contact
	Assignment      *Assignment
	Split           *Split
	CancelReason    string
	OccurredAt      time.Time
}

func (o *Order) raise(eventType EventType, at time.Time) {
	o.events = append(o.events, DomainEvent{
		ID:              kernel.NewUUID(),
		Type:            eventType,
		OrderID:         o.id,
		CustomerID:      o.customerID,
		RestaurantID:    o.restaurantID,
		Status:          o.status,
		TransportMode:   o.transportMode,
		Total:           o.total,
		CustomerContact: o.customerContact,
		Assignment:      o.Assignment(),
		Split:           o.Split(),
		CancelReason:    o.cancelReason,
		OccurredAt:      at,
	})
}

// DomainEvents returns the events raised since the last ClearDomainEvents.
func (o *Order) DomainEvents() []DomainEvent {
	events := make([]DomainEvent, len(o.events))
	copy(events, o.events)
	return events
}

func (o *Order) ClearDomainEvents() {
	o.events = nil
}
