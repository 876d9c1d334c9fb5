package order_test

import (
	"testing"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/splitconfig"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 5, 4, 18, 30, 0, 0, time.UTC)

func usd(t *testing.T, cents int64) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(cents, "USD")
	require.NoError(t, err)
	return m
}

func newItem(t *testing.T, name string, cents int64, qty int) order.Item {
	t.Helper()
	item, err := order.NewItem(name, usd(t, cents), qty)
	require.NoError(t, err)
	return item
}

func newLocation(t *testing.T, withCoordinates bool) kernel.Location {
	t.Helper()
	var coords *kernel.Coordinates
	if withCoordinates {
		c, err := kernel.NewCoordinates(52.52, 13.405)
		require.NoError(t, err)
		coords = &c
	}
	loc, err := kernel.NewLocation("Unter den Linden 1, Berlin", coords)
	require.NoError(t, err)
	return loc
}

// newPendingOrder builds the 18.50 + 2.00 order used across tests.
func newPendingOrder(t *testing.T, mode order.TransportMode) *order.Order {
	t.Helper()
	contact, err := order.NewContact("Ada", "ada@example.com", "+49 30 1234")
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		[]order.Item{newItem(t, "Pizza", 925, 2)},
		usd(t, 200),
		newLocation(t, true),
		mode,
		contact,
		testNow,
	)
	require.NoError(t, err)
	return o
}

func newAcceptedOrder(t *testing.T, mode order.TransportMode) *order.Order {
	t.Helper()
	o := newPendingOrder(t, mode)
	require.NoError(t, o.Accept(testNow.Add(time.Minute)))
	return o
}

func newInTransitOrder(t *testing.T) (*order.Order, kernel.UUID) {
	t.Helper()
	o := newAcceptedOrder(t, order.Human)
	driverID := kernel.NewUUID()
	require.NoError(t, o.AssignDriver(driverID, order.Contact{}, testNow.Add(2*time.Minute)))
	return o, driverID
}

// splitFor splits 2050 cents as 10/85/5.
func splitFor(t *testing.T) order.Split {
	t.Helper()
	split, err := order.NewSplit(
		splitconfig.MethodPercent,
		splitconfig.Rates{
			Admin:      decimal.NewFromInt(10),
			Restaurant: decimal.NewFromInt(85),
			Delivery:   decimal.NewFromInt(5),
		},
		order.Shares{Admin: usd(t, 206), Restaurant: usd(t, 1742), Delivery: usd(t, 102)},
		kernel.NewUUID(),
		1,
	)
	require.NoError(t, err)
	return split
}

func newDeliveredOrder(t *testing.T) *order.Order {
	t.Helper()
	o, _ := newInTransitOrder(t)
	require.NoError(t, o.Settle(splitFor(t), testNow.Add(time.Hour)))
	require.NoError(t, o.MarkDelivered(testNow.Add(time.Hour)))
	return o
}
