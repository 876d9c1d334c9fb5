package commands

import (
	"errors"
	"strings"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// maxIdempotencyKeyLength bounds client supplied Idempotency-Key values.
const maxIdempotencyKeyLength = 128

// CreateOrderCommand places a new order on behalf of a customer.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), customer, restaurantID,
//	    items, shippingFee, location, order.Human, contact, r.Header.Get("Idempotency-Key"))
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	err = handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	actor           kernel.Actor
	restaurantID    kernel.UUID
	items           []order.Item
	shippingFee     kernel.Money
	location        kernel.Location
	transportMode   order.TransportMode
	customerContact order.Contact
	idempotencyKey  string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the request shape. Item and amount rules
// are checked again by order.NewOrder.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	actor kernel.Actor,
	restaurantID kernel.UUID,
	items []order.Item,
	shippingFee kernel.Money,
	location kernel.Location,
	transportMode order.TransportMode,
	customerContact order.Contact,
	idempotencyKey string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		items:           append([]order.Item(nil), items...),
		customerContact: customerContact,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		actor.Validate(),
		restaurantID.Validate(),
		cmd.validateItems(),
		shippingFee.Validate(),
		location.Validate(),
		transportMode.Validate(),
		cmd.setIdempotencyKey(idempotencyKey),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	cmd.orderID = orderID
	cmd.actor = actor
	cmd.restaurantID = restaurantID
	cmd.shippingFee = shippingFee
	cmd.location = location
	cmd.transportMode = transportMode
	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) Actor() kernel.Actor {
	return c.actor
}

func (c CreateOrderCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}

func (c CreateOrderCommand) Items() []order.Item {
	return append([]order.Item(nil), c.items...)
}

func (c CreateOrderCommand) ShippingFee() kernel.Money {
	return c.shippingFee
}

func (c CreateOrderCommand) Location() kernel.Location {
	return c.location
}

func (c CreateOrderCommand) TransportMode() order.TransportMode {
	return c.transportMode
}

func (c CreateOrderCommand) CustomerContact() order.Contact {
	return c.customerContact
}

// IdempotencyKey is empty when the client did not send one.
func (c CreateOrderCommand) IdempotencyKey() string {
	return c.idempotencyKey
}

func (c *CreateOrderCommand) validateItems() error {
	if len(c.items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	var problems []error
	for _, item := range c.items {
		problems = append(problems, item.Validate())
	}
	return errors.Join(problems...)
}

func (c *CreateOrderCommand) setIdempotencyKey(key string) error {
	key = strings.TrimSpace(key)
	if len(key) > maxIdempotencyKeyLength {
		return errs.NewValueIsOutOfRangeError("idempotency key length", len(key), 1, maxIdempotencyKeyLength)
	}
	c.idempotencyKey = key
	return nil
}
