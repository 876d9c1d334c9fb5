package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
)

// Order is the aggregate root of the order ledger. It owns the lifecycle of
// a single customer order from placement to a terminal state, the one-time
// assignment to a driver or drone and the settlement split.
//
// Order follows these invariants:
//   - total = itemsTotal + shippingFee, fixed at creation
//   - status only moves along the edges of the Status graph
//   - assignment is set at most once and matches the transport mode
//   - a delivered order carries a settled split whose shares sum to total
//   - only terminal orders can be soft deleted
type Order struct {
	id           kernel.UUID
	customerID   kernel.UUID
	restaurantID kernel.UUID

	items       []Item
	itemsTotal  kernel.Money
	shippingFee kernel.Money
	total       kernel.Money

	status        Status
	transportMode TransportMode
	assignment    *Assignment

	deliveryLocation kernel.Location
	customerContact  Contact
	deliveryContact  Contact

	split *Split

	customerConfirmed bool
	receivedAt        *time.Time

	isDeleted bool
	deletedAt *time.Time
	deletedBy *kernel.UUID

	cancelReason string

	createdAt   time.Time
	updatedAt   time.Time
	acceptedAt  *time.Time
	deliveredAt *time.Time
	cancelledAt *time.Time

	version int

	events []DomainEvent

	isConstructed bool
}

// NewOrder places a pending order. The items total is computed from the
// lines and the order total from items and shipping fee; neither is ever
// recomputed afterwards.
//
// Example:
//
//	price, _ := kernel.MoneyFromDecimal(decimal.RequireFromString("9.25"), "USD")
//	fee, _ := kernel.NewMoney(200, "USD")
//	item, _ := order.NewItem("Margherita", price, 2)
//	loc, _ := kernel.NewLocation("1 Main St", nil)
//	o, err := order.NewOrder(kernel.NewUUID(), customerID, restaurantID,
//	    []order.Item{item}, fee, loc, order.Human, order.Contact{}, time.Now())
//	// o.Total() is 20.50 USD
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	items []Item,
	shippingFee kernel.Money,
	deliveryLocation kernel.Location,
	transportMode TransportMode,
	customerContact Contact,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:          Pending,
		customerContact: customerContact,
		createdAt:       now,
		updatedAt:       now,
		isConstructed:   true,
	}

	if err := errors.Join(
		o.setIDs(id, customerID, restaurantID),
		o.setLocation(deliveryLocation),
		transportMode.Validate(),
		o.setAmounts(items, shippingFee),
	); err != nil {
		return nil, err
	}
	o.transportMode = transportMode

	o.raise(EventCreated, now)
	return o, nil
}

// Snapshot carries every persisted field of an order. It is the exchange
// format between the aggregate and storage.
type Snapshot struct {
	ID           kernel.UUID
	CustomerID   kernel.UUID
	RestaurantID kernel.UUID

	Items       []Item
	ItemsTotal  kernel.Money
	ShippingFee kernel.Money
	Total       kernel.Money

	Status        Status
	TransportMode TransportMode
	Assignment    *Assignment

	DeliveryLocation kernel.Location
	CustomerContact  Contact
	DeliveryContact  Contact

	Split *Split

	CustomerConfirmed bool
	ReceivedAt        *time.Time

	IsDeleted bool
	DeletedAt *time.Time
	DeletedBy *kernel.UUID

	CancelReason string

	CreatedAt   time.Time
	UpdatedAt   time.Time
	AcceptedAt  *time.Time
	DeliveredAt *time.Time
	CancelledAt *time.Time

	// Version counts the writes stored so far. Conditional writes match on it.
	Version int
}

// RestoreOrder rebuilds an order from storage and re-checks the invariants
// that tie status, assignment, split and deletion together. Stored totals
// are taken as they are; they must still add up.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		items:             append([]Item(nil), s.Items...),
		itemsTotal:        s.ItemsTotal,
		shippingFee:       s.ShippingFee,
		total:             s.Total,
		status:            s.Status,
		transportMode:     s.TransportMode,
		customerContact:   s.CustomerContact,
		deliveryContact:   s.DeliveryContact,
		customerConfirmed: s.CustomerConfirmed,
		receivedAt:        copyTime(s.ReceivedAt),
		isDeleted:         s.IsDeleted,
		deletedAt:         copyTime(s.DeletedAt),
		cancelReason:      s.CancelReason,
		createdAt:         s.CreatedAt,
		updatedAt:         s.UpdatedAt,
		acceptedAt:        copyTime(s.AcceptedAt),
		deliveredAt:       copyTime(s.DeliveredAt),
		cancelledAt:       copyTime(s.CancelledAt),
		version:           s.Version,
		isConstructed:     true,
	}
	if s.Assignment != nil {
		a := *s.Assignment
		o.assignment = &a
	}
	if s.Split != nil {
		sp := *s.Split
		o.split = &sp
	}
	if s.DeletedBy != nil {
		by := *s.DeletedBy
		o.deletedBy = &by
	}

	if err := errors.Join(
		o.setIDs(s.ID, s.CustomerID, s.RestaurantID),
		o.setLocation(s.DeliveryLocation),
		s.TransportMode.Validate(),
		s.Status.Validate(),
		o.validateRestoredAmounts(),
	); err != nil {
		return nil, err
	}

	if err := o.validateConsistency(); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order was created through NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

func (o *Order) RestaurantID() kernel.UUID {
	return o.restaurantID
}

func (o *Order) Items() []Item {
	return append([]Item(nil), o.items...)
}

func (o *Order) ItemsTotal() kernel.Money {
	return o.itemsTotal
}

func (o *Order) ShippingFee() kernel.Money {
	return o.shippingFee
}

func (o *Order) Total() kernel.Money {
	return o.total
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) TransportMode() TransportMode {
	return o.transportMode
}

// Assignment returns a copy of the assignment, or nil while unassigned.
func (o *Order) Assignment() *Assignment {
	if o.assignment == nil {
		return nil
	}
	a := *o.assignment
	return &a
}

func (o *Order) IsAssigned() bool {
	return o.assignment != nil
}

func (o *Order) DeliveryLocation() kernel.Location {
	return o.deliveryLocation
}

func (o *Order) CustomerContact() Contact {
	return o.customerContact
}

// DeliveryContact is the driver contact captured at assignment.
func (o *Order) DeliveryContact() Contact {
	return o.deliveryContact
}

// Split returns a copy of the split, or nil before settlement.
func (o *Order) Split() *Split {
	if o.split == nil {
		return nil
	}
	s := *o.split
	return &s
}

func (o *Order) IsSettled() bool {
	return o.split != nil && o.split.IsSettled()
}

func (o *Order) CustomerConfirmed() bool {
	return o.customerConfirmed
}

func (o *Order) ReceivedAt() *time.Time {
	return copyTime(o.receivedAt)
}

func (o *Order) IsDeleted() bool {
	return o.isDeleted
}

func (o *Order) DeletedAt() *time.Time {
	return copyTime(o.deletedAt)
}

func (o *Order) DeletedBy() *kernel.UUID {
	if o.deletedBy == nil {
		return nil
	}
	by := *o.deletedBy
	return &by
}

func (o *Order) CancelReason() string {
	return o.cancelReason
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

func (o *Order) AcceptedAt() *time.Time {
	return copyTime(o.acceptedAt)
}

func (o *Order) DeliveredAt() *time.Time {
	return copyTime(o.deliveredAt)
}

func (o *Order) CancelledAt() *time.Time {
	return copyTime(o.cancelledAt)
}

// Snapshot exports the persisted state. Domain events are not part of it.
func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		ID:                o.id,
		CustomerID:        o.customerID,
		RestaurantID:      o.restaurantID,
		Items:             o.Items(),
		ItemsTotal:        o.itemsTotal,
		ShippingFee:       o.shippingFee,
		Total:             o.total,
		Status:            o.status,
		TransportMode:     o.transportMode,
		Assignment:        o.Assignment(),
		DeliveryLocation:  o.deliveryLocation,
		CustomerContact:   o.customerContact,
		DeliveryContact:   o.deliveryContact,
		Split:             o.Split(),
		CustomerConfirmed: o.customerConfirmed,
		ReceivedAt:        o.ReceivedAt(),
		IsDeleted:         o.isDeleted,
		DeletedAt:         o.DeletedAt(),
		DeletedBy:         o.DeletedBy(),
		CancelReason:      o.cancelReason,
		CreatedAt:         o.createdAt,
		UpdatedAt:         o.updatedAt,
		AcceptedAt:        o.AcceptedAt(),
		DeliveredAt:       o.DeliveredAt(),
		CancelledAt:       o.CancelledAt(),
		Version:           o.version,
	}
}

// Version returns the stored version the order was read at. A new order
// has version 0.
func (o *Order) Version() int {
	return o.version
}

// IncrementVersion records that a write conditioned on the current version
// was stored. Repositories call it after every successful update.
func (o *Order) IncrementVersion() {
	o.version++
}

// IsPlacedBy reports whether customerID owns the order.
func (o *Order) IsPlacedBy(customerID kernel.UUID) bool {
	return o.customerID.IsEqual(customerID)
}

// IsFromRestaurant reports whether restaurantID prepares the order.
func (o *Order) IsFromRestaurant(restaurantID kernel.UUID) bool {
	return o.restaurantID.IsEqual(restaurantID)
}

// IsDeliveredBy reports whether driverID is the assigned human driver.
func (o *Order) IsDeliveredBy(driverID kernel.UUID) bool {
	return o.assignment != nil && o.assignment.IsDriver(driverID)
}

// Accept moves a pending order to accepted.
func (o *Order) Accept(now time.Time) error {
	next, err := o.status.Accept()
	if err != nil {
		return err
	}

	o.status = next
	o.acceptedAt = &now
	o.updatedAt = now
	o.raise(EventAccepted, now)
	return nil
}

// CanAssignDriver checks every precondition of AssignDriver without
// changing the order. An existing assignment outranks every other failure.
func (o *Order) CanAssignDriver() error {
	if o.assignment != nil {
		return ErrAlreadyAssigned
	}
	if o.transportMode != Human {
		return errs.NewValueIsInvalidErrorWithCause(
			"transport mode",
			fmt.Errorf("order %s is delivered by %s, not by a driver", o.id, o.transportMode),
		)
	}
	if !o.status.CanTransitionTo(InTransit) {
		return &TransitionError{From: o.status, To: InTransit}
	}
	return nil
}

// AssignDriver binds a human driver and starts delivery. contact may be
// empty when the driver profile could not be fetched.
func (o *Order) AssignDriver(driverID kernel.UUID, contact Contact, now time.Time) error {
	if err := o.CanAssignDriver(); err != nil {
		return err
	}

	assignment, err := newDriverAssignment(driverID, contact, now)
	if err != nil {
		return err
	}

	next, err := o.status.StartDelivery()
	if err != nil {
		return err
	}

	o.status = next
	o.assignment = &assignment
	o.deliveryContact = contact
	o.updatedAt = now
	o.raise(EventAssigned, now)
	return nil
}

// CanAssignDrone checks every precondition of AssignDrone without changing
// the order, so the drone service is only called for assignable orders.
func (o *Order) CanAssignDrone() error {
	if o.assignment != nil {
		return ErrAlreadyAssigned
	}
	if o.transportMode != Drone {
		return errs.NewValueIsInvalidErrorWithCause(
			"transport mode",
			fmt.Errorf("order %s is delivered by %s, not by a drone", o.id, o.transportMode),
		)
	}
	if !o.status.CanTransitionTo(InTransit) {
		return &TransitionError{From: o.status, To: InTransit}
	}
	if !o.deliveryLocation.HasCoordinates() {
		return ErrMissingLocation
	}
	return nil
}

// AssignDrone binds a scheduled drone mission and starts delivery.
func (o *Order) AssignDrone(mission DroneMission, now time.Time) error {
	if err := o.CanAssignDrone(); err != nil {
		return err
	}

	assignment, err := newDroneAssignment(mission, now)
	if err != nil {
		return err
	}

	next, err := o.status.StartDelivery()
	if err != nil {
		return err
	}

	o.status = next
	o.assignment = &assignment
	o.updatedAt = now
	o.raise(EventAssigned, now)
	return nil
}

// CanDeliver reports whether the order may move to delivered.
func (o *Order) CanDeliver() error {
	if !o.status.CanTransitionTo(Delivered) {
		return &TransitionError{From: o.status, To: Delivered}
	}
	return nil
}

// Settle stamps the split computed by the settlement engine. It fails with
// ErrAlreadySettled when a split was stamped before and rejects splits whose
// shares do not add up to the order total. Settling changes no status and
// raises no event.
//
// Parameters:
//   - split: An unsettled split, usually from SettlementEngine.ComputeSplit
//   - now: The settlement time, recorded as the split's SettledAt
//
// Returns:
//   - error: ErrAlreadySettled on a second call, a validation error for an
//     unconstructed split or shares that do not sum to the total, nil otherwise
//
// Example:
//
//	split, err := engine.ComputeSplit(o.Total(), cfg)
//	if err != nil {
//	    return err
//	}
//	if err := o.Settle(split, time.Now()); err != nil {
//	    return err
//	}
//	// o.IsSettled() == true
func (o *Order) Settle(split Split, now time.Time) error {
	if err := split.Validate(); err != nil {
		return err
	}
	if o.IsSettled() {
		return ErrAlreadySettled
	}

	sum, err := split.Shares().Total()
	if err != nil {
		return err
	}
	if !sum.IsEqual(o.total) {
		return errs.NewValueIsInvalidErrorWithCause(
			"split",
			fmt.Errorf("shares sum to %s, order total is %s", sum, o.total),
		)
	}

	split.settledAt = &now
	o.split = &split
	o.updatedAt = now
	return nil
}

// MarkDelivered moves an in-transit order to delivered. The order must
// have been settled first. On success it raises EventDelivered.
//
// Parameters:
//   - now: The delivery time, recorded as DeliveredAt
//
// Returns:
//   - error: A *TransitionError when the order is not in transit,
//     ErrNotSettled when no split was stamped, nil otherwise
//
// Example:
//
//	if err := o.Settle(split, now); err != nil {
//	    return err
//	}
//	if err := o.MarkDelivered(now); err != nil {
//	    return err
//	}
//	// o.Status() == Delivered
func (o *Order) MarkDelivered(now time.Time) error {
	next, err := o.status.Deliver()
	if err != nil {
		return err
	}
	if !o.IsSettled() {
		return ErrNotSettled
	}

	o.status = next
	o.deliveredAt = &now
	o.updatedAt = now
	o.raise(EventDelivered, now)
	return nil
}

// Cancel moves a pending or accepted order to cancelled.
func (o *Order) Cancel(reason string, now time.Time) error {
	next, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = next
	o.cancelReason = strings.TrimSpace(reason)
	o.cancelledAt = &now
	o.updatedAt = now
	o.raise(EventCancelled, now)
	return nil
}

// ConfirmReceived records the customer's acknowledgment of a delivered
// order. It has no effect on settlement.
func (o *Order) ConfirmReceived(customerID kernel.UUID, now time.Time) error {
	if !o.IsPlacedBy(customerID) {
		return errs.NewForbiddenError("customer "+customerID.String(), "confirm order "+o.id.String())
	}
	if o.status != Delivered {
		return fmt.Errorf("%w: order is %s, receipt needs %s", ErrIllegalTransition, o.status, Delivered)
	}
	if o.customerConfirmed {
		return errs.NewInvalidStateError("order "+o.id.String(), "already confirmed")
	}

	o.customerConfirmed = true
	o.receivedAt = &now
	o.updatedAt = now
	return nil
}

// SoftDelete hides a terminal order from regular listings.
func (o *Order) SoftDelete(adminID kernel.UUID, now time.Time) error {
	if err := adminID.Validate(); err != nil {
		return err
	}
	if !o.status.IsTerminal() {
		return errs.NewInvalidStateError("order "+o.id.String(), o.status.String())
	}
	if o.isDeleted {
		return errs.NewInvalidStateError("order "+o.id.String(), "already deleted")
	}

	o.isDeleted = true
	o.deletedAt = &now
	o.deletedBy = &adminID
	o.updatedAt = now
	return nil
}

func (o *Order) setIDs(id, customerID, restaurantID kernel.UUID) error {
	if err := errors.Join(id.Validate(), customerID.Validate(), restaurantID.Validate()); err != nil {
		return err
	}
	o.id = id
	o.customerID = customerID
	o.restaurantID = restaurantID
	return nil
}

func (o *Order) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	o.deliveryLocation = location
	return nil
}

func (o *Order) setAmounts(items []Item, shippingFee kernel.Money) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	if err := shippingFee.Validate(); err != nil {
		return err
	}

	itemsTotal, err := sumItems(items, shippingFee.Currency())
	if err != nil {
		return err
	}

	total, err := itemsTotal.Add(shippingFee)
	if err != nil {
		return err
	}

	o.items = append([]Item(nil), items...)
	o.itemsTotal = itemsTotal
	o.shippingFee = shippingFee
	o.total = total
	return nil
}

func (o *Order) validateRestoredAmounts() error {
	if len(o.items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	sum, err := o.itemsTotal.Add(o.shippingFee)
	if err != nil {
		return err
	}
	if !sum.IsEqual(o.total) {
		return errs.NewValueIsInvalidErrorWithCause(
			"total",
			fmt.Errorf("%s is not items total %s plus shipping fee %s", o.total, o.itemsTotal, o.shippingFee),
		)
	}
	return nil
}

func (o *Order) validateConsistency() error {
	if err := o.status.ValidateCanHaveAssignment(o.assignment != nil); err != nil {
		return err
	}
	if o.assignment != nil && o.assignment.Mode() != o.transportMode {
		return errs.NewValueIsInvalidErrorWithCause(
			"assignment",
			fmt.Errorf("%s assignment on a %s order", o.assignment.Mode(), o.transportMode),
		)
	}
	if o.status == Delivered && !o.IsSettled() {
		return errs.NewInvalidStateErrorWithCause("order "+o.id.String(), o.status.String(), ErrNotSettled)
	}
	if o.isDeleted && !o.status.IsTerminal() {
		return errs.NewInvalidStateError("order "+o.id.String(), "deleted while "+o.status.String())
	}
	return nil
}

func sumItems(items []Item, currency string) (kernel.Money, error) {
	total, err := kernel.ZeroMoney(currency)
	if err != nil {
		return kernel.Money{}, err
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return kernel.Money{}, err
		}
		line, err := item.LineTotal()
		if err != nil {
			return kernel.Money{}, err
		}
		if total, err = total.Add(line); err != nil {
			return kernel.Money{}, err
		}
	}
	return total, nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
