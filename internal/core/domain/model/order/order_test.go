package order_test

import (
	"testing"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrder(t *testing.T) {
	validID := kernel.NewUUID()
	customerID := kernel.NewUUID()
	restaurantID := kernel.NewUUID()
	location := newLocation(t, false)

	t.Run("should compute totals and start pending", func(t *testing.T) {
		items := []order.Item{newItem(t, "Pizza", 925, 2)}

		o, err := order.NewOrder(validID, customerID, restaurantID, items, usd(t, 200), location, order.Human, order.Contact{}, testNow)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(validID))
		assert.Equal(t, int64(1850), o.ItemsTotal().Amount())
		assert.Equal(t, int64(2050), o.Total().Amount())
		assert.Equal(t, "USD", o.Total().Currency())
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, order.Human, o.TransportMode())
		assert.Nil(t, o.Assignment())
		assert.Nil(t, o.Split())
		assert.False(t, o.IsDeleted())
		assert.Equal(t, testNow, o.CreatedAt())
	})

	t.Run("should sum multiple lines", func(t *testing.T) {
		items := []order.Item{newItem(t, "Pizza", 925, 1), newItem(t, "Cola", 250, 3)}

		o, err := order.NewOrder(validID, customerID, restaurantID, items, usd(t, 0), location, order.Human, order.Contact{}, testNow)

		require.NoError(t, err)
		assert.Equal(t, int64(1675), o.Total().Amount())
		assert.Len(t, o.Items(), 2)
	})

	t.Run("should raise order.created", func(t *testing.T) {
		o := newPendingOrder(t, order.Human)

		events := o.DomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, order.EventCreated, events[0].Type)
		assert.True(t, events[0].OrderID.IsEqual(o.ID()))
		assert.Equal(t, o.Total(), events[0].Total)

		o.ClearDomainEvents()
		assert.Empty(t, o.DomainEvents())
	})

	t.Run("should fail without items", func(t *testing.T) {
		o, err := order.NewOrder(validID, customerID, restaurantID, nil, usd(t, 200), location, order.Human, order.Contact{}, testNow)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "items")
	})

	t.Run("should fail with unconstructed item", func(t *testing.T) {
		o, err := order.NewOrder(validID, customerID, restaurantID, []order.Item{{}}, usd(t, 200), location, order.Human, order.Contact{}, testNow)

		require.ErrorIs(t, err, order.ErrItemIsNotConstructed)
		assert.Nil(t, o)
	})

	t.Run("should fail on currency mismatch", func(t *testing.T) {
		eur, err := kernel.NewMoney(200, "EUR")
		require.NoError(t, err)

		o, err := order.NewOrder(validID, customerID, restaurantID, []order.Item{newItem(t, "Pizza", 925, 1)}, eur, location, order.Human, order.Contact{}, testNow)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Nil(t, o)
	})

	t.Run("should report every invalid field", func(t *testing.T) {
		var invalidID kernel.UUID
		var invalidLocation kernel.Location

		o, err := order.NewOrder(invalidID, customerID, restaurantID, nil, usd(t, 200), invalidLocation, order.TransportMode("ship"), order.Contact{}, testNow)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "location must be created")
		assert.Contains(t, err.Error(), "transport mode")
		assert.Contains(t, err.Error(), "items")
	})
}

func TestNewItem(t *testing.T) {
	_, err := order.NewItem("  ", usd(t, 100), 1)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = order.NewItem("Soup", usd(t, 100), 0)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	item, err := order.NewItem(" Soup ", usd(t, 0), 2)
	require.NoError(t, err)
	assert.Equal(t, "Soup", item.Name())
	line, err := item.LineTotal()
	require.NoError(t, err)
	assert.Equal(t, int64(0), line.Amount())
}

func TestNewContact(t *testing.T) {
	c, err := order.NewContact(" Ada ", "ada@example.com", "")
	require.NoError(t, err)
	assert.Equal(t, "Ada", c.Name())
	assert.False(t, c.IsEmpty())

	_, err = order.NewContact("Ada", "not-an-email", "")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	empty, err := order.NewContact("", "", "")
	require.NoError(t, err)
	assert.True(t, empty.IsEmpty())
}

func TestOrder_Accept(t *testing.T) {
	t.Run("pending_to_accepted", func(t *testing.T) {
		o := newPendingOrder(t, order.Human)
		at := testNow.Add(time.Minute)

		require.NoError(t, o.Accept(at))

		assert.Equal(t, order.Accepted, o.Status())
		require.NotNil(t, o.AcceptedAt())
		assert.Equal(t, at, *o.AcceptedAt())
		events := o.DomainEvents()
		assert.Equal(t, order.EventAccepted, events[len(events)-1].Type)
	})

	t.Run("twice_is_illegal", func(t *testing.T) {
		o := newAcceptedOrder(t, order.Human)

		err := o.Accept(testNow)

		require.ErrorIs(t, err, order.ErrIllegalTransition)
		assert.Equal(t, order.Accepted, o.Status())
	})
}

func TestOrder_AssignDriver(t *testing.T) {
	t.Run("binds_driver_and_captures_contact", func(t *testing.T) {
		o := newAcceptedOrder(t, order.Human)
		driverID := kernel.NewUUID()
		contact, _ := order.NewContact("Bob Driver", "", "+1 555 0100")

		require.NoError(t, o.AssignDriver(driverID, contact, testNow))

		assert.Equal(t, order.InTransit, o.Status())
		require.NotNil(t, o.Assignment())
		assert.Equal(t, order.Human, o.Assignment().Mode())
		assert.True(t, o.Assignment().DriverID().IsEqual(driverID))
		assert.Equal(t, contact, o.DeliveryContact())
		assert.True(t, o.IsDeliveredBy(driverID))
		assert.False(t, o.IsDeliveredBy(kernel.NewUUID()))
	})

	t.Run("empty_contact_is_allowed", func(t *testing.T) {
		o := newAcceptedOrder(t, order.Human)

		require.NoError(t, o.AssignDriver(kernel.NewUUID(), order.Contact{}, testNow))
		assert.True(t, o.DeliveryContact().IsEmpty())
	})

	t.Run("second_assignment_is_already_assigned", func(t *testing.T) {
		o, first := newInTransitOrder(t)

		err := o.AssignDriver(kernel.NewUUID(), order.Contact{}, testNow)

		require.ErrorIs(t, err, order.ErrAlreadyAssigned)
		assert.True(t, o.IsDeliveredBy(first))
	})

	t.Run("pending_order_is_illegal", func(t *testing.T) {
		o := newPendingOrder(t, order.Human)

		err := o.AssignDriver(kernel.NewUUID(), order.Contact{}, testNow)

		require.ErrorIs(t, err, order.ErrIllegalTransition)
		assert.Nil(t, o.Assignment())
	})

	t.Run("drone_order_is_rejected", func(t *testing.T) {
		o := newAcceptedOrder(t, order.Drone)

		err := o.AssignDriver(kernel.NewUUID(), order.Contact{}, testNow)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, order.Accepted, o.Status())
	})

	t.Run("invalid_driver_id", func(t *testing.T) {
		o := newAcceptedOrder(t, order.Human)

		err := o.AssignDriver(kernel.UUID{}, order.Contact{}, testNow)

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		assert.Equal(t, order.Accepted, o.Status())
	})
}

func TestOrder_AssignDrone(t *testing.T) {
	mission := order.DroneMission{MissionID: "m-1", DistanceKm: 3.2, ETASeconds: 420}

	t.Run("binds_mission", func(t *testing.T) {
		o := newAcceptedOrder(t, order.Drone)

		require.NoError(t, o.AssignDrone(mission, testNow))

		assert.Equal(t, order.InTransit, o.Status())
		a := o.Assignment()
		require.NotNil(t, a)
		assert.Equal(t, order.Drone, a.Mode())
		assert.Equal(t, "m-1", a.MissionID())
		assert.InDelta(t, 3.2, a.DistanceKm(), 1e-9)
		assert.Equal(t, 420, a.ETASeconds())
		assert.Nil(t, a.DriverID())
	})

	t.Run("second_call_keeps_first_mission", func(t *testing.T) {
		o := newAcceptedOrder(t, order.Drone)
		require.NoError(t, o.AssignDrone(mission, testNow))

		err := o.AssignDrone(order.DroneMission{MissionID: "m-2"}, testNow)

		require.ErrorIs(t, err, order.ErrAlreadyAssigned)
		assert.Equal(t, "m-1", o.Assignment().MissionID())
	})

	t.Run("missing_coordinates", func(t *testing.T) {
		o, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			[]order.Item{newItem(t, "Pizza", 925, 1)}, usd(t, 0),
			newLocation(t, false), order.Drone, order.Contact{}, testNow,
		)
		require.NoError(t, err)
		require.NoError(t, o.Accept(testNow))

		require.ErrorIs(t, o.CanAssignDrone(), order.ErrMissingLocation)
		require.ErrorIs(t, o.AssignDrone(mission, testNow), order.ErrMissingLocation)
		assert.Equal(t, order.Accepted, o.Status())
	})

	t.Run("human_order_is_rejected", func(t *testing.T) {
		o := newAcceptedOrder(t, order.Human)

		require.ErrorIs(t, o.AssignDrone(mission, testNow), errs.ErrValueIsInvalid)
	})

	t.Run("blank_mission_id", func(t *testing.T) {
		o := newAcceptedOrder(t, order.Drone)

		require.ErrorIs(t, o.AssignDrone(order.DroneMission{MissionID: " "}, testNow), errs.ErrValueIsRequired)
		assert.Nil(t, o.Assignment())
	})
}

func TestOrder_SettleAndDeliver(t *testing.T) {
	t.Run("delivers_with_split", func(t *testing.T) {
		o, _ := newInTransitOrder(t)
		at := testNow.Add(time.Hour)

		require.NoError(t, o.CanDeliver())
		require.NoError(t, o.Settle(splitFor(t), at))
		require.NoError(t, o.MarkDelivered(at))

		assert.Equal(t, order.Delivered, o.Status())
		require.NotNil(t, o.Split())
		assert.Equal(t, at, *o.Split().SettledAt())
		assert.Equal(t, int64(206), o.Split().Shares().Admin.Amount())
		events := o.DomainEvents()
		last := events[len(events)-1]
		assert.Equal(t, order.EventDelivered, last.Type)
		require.NotNil(t, last.Split)
	})

	t.Run("second_settle_is_already_settled", func(t *testing.T) {
		o := newDeliveredOrder(t)
		settledAt := *o.Split().SettledAt()

		err := o.Settle(splitFor(t), testNow.Add(48*time.Hour))

		require.ErrorIs(t, err, order.ErrAlreadySettled)
		assert.Equal(t, settledAt, *o.Split().SettledAt())
	})

	t.Run("second_delivery_is_illegal", func(t *testing.T) {
		o := newDeliveredOrder(t)

		require.ErrorIs(t, o.CanDeliver(), order.ErrIllegalTransition)
		require.ErrorIs(t, o.MarkDelivered(testNow), order.ErrIllegalTransition)
	})

	t.Run("delivery_needs_settlement", func(t *testing.T) {
		o, _ := newInTransitOrder(t)

		require.ErrorIs(t, o.MarkDelivered(testNow), order.ErrNotSettled)
		assert.Equal(t, order.InTransit, o.Status())
	})

	t.Run("shares_must_match_total", func(t *testing.T) {
		o, _ := newInTransitOrder(t)
		split, err := order.NewSplit("percent", splitFor(t).Rates(),
			order.Shares{Admin: usd(t, 1), Restaurant: usd(t, 1), Delivery: usd(t, 1)}, kernel.NewUUID(), 1)
		require.NoError(t, err)

		require.ErrorIs(t, o.Settle(split, testNow), errs.ErrValueIsInvalid)
		assert.False(t, o.IsSettled())
	})

	t.Run("unconstructed_split", func(t *testing.T) {
		o, _ := newInTransitOrder(t)

		require.ErrorIs(t, o.Settle(order.Split{}, testNow), order.ErrSplitIsNotConstructed)
	})

	t.Run("settle_keeps_status_and_events", func(t *testing.T) {
		o, _ := newInTransitOrder(t)
		before := len(o.DomainEvents())

		require.NoError(t, o.Settle(splitFor(t), testNow))

		assert.Equal(t, order.InTransit, o.Status())
		assert.Len(t, o.DomainEvents(), before)
	})

	t.Run("pending_delivery_reports_transition", func(t *testing.T) {
		o := newPendingOrder(t, order.Human)

		var transitionErr *order.TransitionError
		require.ErrorAs(t, o.MarkDelivered(testNow), &transitionErr)
		assert.Equal(t, order.Pending, transitionErr.From)
		assert.Equal(t, order.Delivered, transitionErr.To)
	})
}

func TestOrder_Cancel(t *testing.T) {
	t.Run("pending_and_accepted_can_be_cancelled", func(t *testing.T) {
		for _, o := range []*order.Order{newPendingOrder(t, order.Human), newAcceptedOrder(t, order.Drone)} {
			require.NoError(t, o.Cancel("  changed my mind ", testNow))
			assert.Equal(t, order.Cancelled, o.Status())
			assert.Equal(t, "changed my mind", o.CancelReason())
			assert.NotNil(t, o.CancelledAt())
		}
	})

	t.Run("in_transit_is_illegal_and_unchanged", func(t *testing.T) {
		o, driverID := newInTransitOrder(t)
		before := o.Snapshot()

		err := o.Cancel("late", testNow)

		require.ErrorIs(t, err, order.ErrIllegalTransition)
		assert.Equal(t, order.InTransit, o.Status())
		assert.True(t, o.IsDeliveredBy(driverID))
		assert.Equal(t, before, o.Snapshot())
	})

	t.Run("terminal_is_illegal", func(t *testing.T) {
		require.ErrorIs(t, newDeliveredOrder(t).Cancel("", testNow), order.ErrIllegalTransition)
	})
}

func TestOrder_ConfirmReceived(t *testing.T) {
	t.Run("owner_confirms_delivered", func(t *testing.T) {
		o := newDeliveredOrder(t)
		splitBefore := o.Split()

		require.NoError(t, o.ConfirmReceived(o.CustomerID(), testNow))

		assert.True(t, o.CustomerConfirmed())
		assert.NotNil(t, o.ReceivedAt())
		assert.Equal(t, splitBefore, o.Split())
	})

	t.Run("other_customer_is_forbidden", func(t *testing.T) {
		o := newDeliveredOrder(t)

		require.ErrorIs(t, o.ConfirmReceived(kernel.NewUUID(), testNow), errs.ErrForbidden)
		assert.False(t, o.CustomerConfirmed())
	})

	t.Run("not_delivered_is_illegal", func(t *testing.T) {
		o, _ := newInTransitOrder(t)

		require.ErrorIs(t, o.ConfirmReceived(o.CustomerID(), testNow), order.ErrIllegalTransition)
	})

	t.Run("twice_is_invalid_state", func(t *testing.T) {
		o := newDeliveredOrder(t)
		require.NoError(t, o.ConfirmReceived(o.CustomerID(), testNow))

		require.ErrorIs(t, o.ConfirmReceived(o.CustomerID(), testNow), errs.ErrInvalidState)
	})
}

func TestOrder_SoftDelete(t *testing.T) {
	adminID := kernel.NewUUID()

	t.Run("accepted_is_invalid_state", func(t *testing.T) {
		o := newAcceptedOrder(t, order.Human)

		require.ErrorIs(t, o.SoftDelete(adminID, testNow), errs.ErrInvalidState)
		assert.False(t, o.IsDeleted())
	})

	t.Run("delivered_is_deleted", func(t *testing.T) {
		o := newDeliveredOrder(t)

		require.NoError(t, o.SoftDelete(adminID, testNow))

		assert.True(t, o.IsDeleted())
		assert.Equal(t, testNow, *o.DeletedAt())
		assert.True(t, o.DeletedBy().IsEqual(adminID))
		assert.Equal(t, order.Delivered, o.Status())
	})

	t.Run("cancelled_is_deleted", func(t *testing.T) {
		o := newPendingOrder(t, order.Human)
		require.NoError(t, o.Cancel("", testNow))

		require.NoError(t, o.SoftDelete(adminID, testNow))
	})

	t.Run("twice_is_invalid_state", func(t *testing.T) {
		o := newDeliveredOrder(t)
		require.NoError(t, o.SoftDelete(adminID, testNow))

		require.ErrorIs(t, o.SoftDelete(adminID, testNow), errs.ErrInvalidState)
	})
}

func TestOrder_StatusHistoryFollowsGraph(t *testing.T) {
	o := newPendingOrder(t, order.Human)
	history := []order.Status{o.Status()}
	record := func(err error) {
		require.NoError(t, err)
		history = append(history, o.Status())
	}

	record(o.Accept(testNow))
	record(o.AssignDriver(kernel.NewUUID(), order.Contact{}, testNow))
	require.Error(t, o.Cancel("", testNow))
	require.Error(t, o.Accept(testNow))
	require.NoError(t, o.Settle(splitFor(t), testNow))
	record(o.MarkDelivered(testNow))

	for i := 1; i < len(history); i++ {
		assert.True(t, history[i-1].CanTransitionTo(history[i]), "%s -> %s", history[i-1], history[i])
	}
	assert.Equal(t, []order.Status{order.Pending, order.Accepted, order.InTransit, order.Delivered}, history)

	var types []order.EventType
	for _, e := range o.DomainEvents() {
		types = append(types, e.Type)
	}
	assert.Equal(t, []order.EventType{order.EventCreated, order.EventAccepted, order.EventAssigned, order.EventDelivered}, types)
}

func TestRestoreOrder(t *testing.T) {
	t.Run("round_trips_snapshot", func(t *testing.T) {
		o := newDeliveredOrder(t)
		require.NoError(t, o.SoftDelete(kernel.NewUUID(), testNow))

		restored, err := order.RestoreOrder(o.Snapshot())

		require.NoError(t, err)
		require.NoError(t, restored.Validate())
		assert.True(t, restored.IsEqual(o))
		assert.Equal(t, o.Snapshot(), restored.Snapshot())
		assert.Empty(t, restored.DomainEvents())
	})

	t.Run("keeps_version", func(t *testing.T) {
		s := newPendingOrder(t, order.Human).Snapshot()
		s.Version = 4

		restored, err := order.RestoreOrder(s)

		require.NoError(t, err)
		assert.Equal(t, 4, restored.Version())
		restored.IncrementVersion()
		assert.Equal(t, 5, restored.Snapshot().Version)
	})

	t.Run("in_transit_without_assignment", func(t *testing.T) {
		s := newAcceptedOrder(t, order.Human).Snapshot()
		s.Status = order.InTransit

		_, err := order.RestoreOrder(s)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("pending_with_assignment", func(t *testing.T) {
		o, _ := newInTransitOrder(t)
		s := o.Snapshot()
		s.Status = order.Pending

		_, err := order.RestoreOrder(s)

		require.Error(t, err)
	})

	t.Run("delivered_without_split", func(t *testing.T) {
		o, _ := newInTransitOrder(t)
		s := o.Snapshot()
		s.Status = order.Delivered

		_, err := order.RestoreOrder(s)

		require.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("mode_mismatch", func(t *testing.T) {
		o, _ := newInTransitOrder(t)
		s := o.Snapshot()
		s.TransportMode = order.Drone

		_, err := order.RestoreOrder(s)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("totals_must_add_up", func(t *testing.T) {
		s := newPendingOrder(t, order.Human).Snapshot()
		s.Total = usd(t, 9999)

		_, err := order.RestoreOrder(s)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("deleted_while_active", func(t *testing.T) {
		s := newPendingOrder(t, order.Human).Snapshot()
		s.IsDeleted = true

		_, err := order.RestoreOrder(s)

		require.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("unknown_status", func(t *testing.T) {
		s := newPendingOrder(t, order.Human).Snapshot()
		s.Status = order.Unknown

		_, err := order.RestoreOrder(s)

		require.Error(t, err)
	})
}

func TestOrder_ZeroValue(t *testing.T) {
	var o *order.Order
	require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	require.ErrorIs(t, (&order.Order{}).Validate(), order.ErrOrderIsNotConstructed)
}
