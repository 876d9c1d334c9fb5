package commands_test

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/splitconfig"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var (
	errBoom  = errors.New("boom")
	testTime = time.Date(2026, 5, 4, 18, 30, 0, 0, time.UTC)
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func usd(t *testing.T, cents int64) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(cents, "USD")
	require.NoError(t, err)
	return m
}

func newActor(t *testing.T, role kernel.Role, restaurantID *kernel.UUID) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(kernel.NewUUID(), role, restaurantID)
	require.NoError(t, err)
	return a
}

func actorWithID(t *testing.T, id kernel.UUID, role kernel.Role) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(id, role, nil)
	require.NoError(t, err)
	return a
}

func staffOf(t *testing.T, o *order.Order) kernel.Actor {
	t.Helper()
	rid := o.RestaurantID()
	return newActor(t, kernel.RoleRestaurant, &rid)
}

func newItems(t *testing.T) []order.Item {
	t.Helper()
	item, err := order.NewItem("Pizza", usd(t, 925), 2)
	require.NoError(t, err)
	return []order.Item{item}
}

func newLocation(t *testing.T) kernel.Location {
	t.Helper()
	c, err := kernel.NewCoordinates(52.52, 13.405)
	require.NoError(t, err)
	loc, err := kernel.NewLocation("Unter den Linden 1, Berlin", &c)
	require.NoError(t, err)
	return loc
}

func customerContact(t *testing.T) order.Contact {
	t.Helper()
	c, err := order.NewContact("Ada", "ada@example.com", "+49 30 1234")
	require.NoError(t, err)
	return c
}

// newPendingOrder builds an order of 2 x 9.25 plus 2.00 shipping.
func newPendingOrder(t *testing.T, mode order.TransportMode) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		newItems(t), usd(t, 200), newLocation(t), mode, customerContact(t), testTime,
	)
	require.NoError(t, err)
	o.ClearDomainEvents()
	return o
}

func newAcceptedOrder(t *testing.T, mode order.TransportMode) *order.Order {
	t.Helper()
	o := newPendingOrder(t, mode)
	require.NoError(t, o.Accept(testTime.Add(time.Minute)))
	o.ClearDomainEvents()
	return o
}

func newInTransitOrder(t *testing.T) (*order.Order, kernel.UUID) {
	t.Helper()
	o := newAcceptedOrder(t, order.Human)
	driverID := kernel.NewUUID()
	require.NoError(t, o.AssignDriver(driverID, order.Contact{}, testTime.Add(2*time.Minute)))
	o.ClearDomainEvents()
	return o, driverID
}

func restaurantAt(id kernel.UUID, lat, lng float64) ports.Restaurant {
	c, _ := kernel.NewCoordinates(lat, lng)
	return ports.Restaurant{ID: id, Name: "Pizzeria", IsActive: true, Location: &c}
}

// percentConfig is the 10/85/5 global config.
func percentConfig(t *testing.T) *splitconfig.SplitConfig {
	t.Helper()
	terms, err := splitconfig.NewPercentTerms(splitconfig.Rates{
		Admin:      decimal.NewFromInt(10),
		Restaurant: decimal.NewFromInt(85),
		Delivery:   decimal.NewFromInt(5),
	}, "USD")
	require.NoError(t, err)
	cfg, err := splitconfig.New(kernel.NewUUID(), nil, 1, terms, kernel.NewUUID(), testTime)
	require.NoError(t, err)
	return cfg
}

func newDeliveredOrder(t *testing.T) (*order.Order, kernel.UUID) {
	t.Helper()
	o, driverID := newInTransitOrder(t)
	split, err := services.NewSettlementEngine().ComputeSplit(o.Total(), percentConfig(t))
	require.NoError(t, err)
	require.NoError(t, o.Settle(split, testTime.Add(time.Hour)))
	require.NoError(t, o.MarkDelivered(testTime.Add(time.Hour)))
	o.ClearDomainEvents()
	return o, driverID
}

// orderTx expects a handler to open one transaction and read o through it.
// Callers add the write and Commit expectations.
func orderTx(t *testing.T, o *order.Order) (*MockOrderUoWFactory, *MockUoW, *MockOrderRepository) {
	t.Helper()
	ctx := t.Context()

	orderRepo := new(MockOrderRepository)
	orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	return factory, uow, orderRepo
}
