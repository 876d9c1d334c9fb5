package queries_test

import (
	"testing"
	"time"

	postgres_adapter "fooddelivery/internal/adapters/out/postgres"
	"fooddelivery/internal/adapters/out/postgres/orderrepo"
	"fooddelivery/internal/adapters/out/postgres/splitconfigrepo"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/splitconfig"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/pkg/testdb"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testNow = time.Date(2026, 5, 4, 18, 30, 0, 0, time.UTC)

type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

// store seeds the tables the queries read.
type store struct {
	t       *testing.T
	db      *gorm.DB
	orders  *orderrepo.GormOrderRepository
	configs *splitconfigrepo.GormSplitConfigRepository
}

func newStore(t *testing.T) *store {
	t.Helper()
	db := testdb.Open(t)
	require.NoError(t, postgres_adapter.Migrate(db))
	return &store{
		t:       t,
		db:      db,
		orders:  orderrepo.NewGormOrderRepository(db, noopTracker{}),
		configs: splitconfigrepo.NewGormSplitConfigRepository(db),
	}
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

func staffOf(t *testing.T, restaurantID kernel.UUID) kernel.Actor {
	t.Helper()
	return newActor(t, kernel.RoleRestaurant, &restaurantID)
}

func page(t *testing.T, number, size int) queries.Page {
	t.Helper()
	p, err := queries.NewPage(number, size)
	require.NoError(t, err)
	return p
}

type orderShape struct {
	customerID   kernel.UUID
	restaurantID kernel.UUID
	mode         order.TransportMode
	createdAt    time.Time
}

func (s *store) shape() orderShape {
	return orderShape{
		customerID:   kernel.NewUUID(),
		restaurantID: kernel.NewUUID(),
		mode:         order.Human,
		createdAt:    testNow,
	}
}

// pending stores a 2 x 9.25 + 2.00 order.
func (s *store) pending(shape orderShape) *order.Order {
	t := s.t
	t.Helper()

	item, err := order.NewItem("Pizza", usd(t, 925), 2)
	require.NoError(t, err)
	coords, err := kernel.NewCoordinates(52.52, 13.405)
	require.NoError(t, err)
	location, err := kernel.NewLocation("Unter den Linden 1, Berlin", &coords)
	require.NoError(t, err)
	contact, err := order.NewContact("Ada", "ada@example.com", "+49 30 1234")
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), shape.customerID, shape.restaurantID,
		[]order.Item{item}, usd(t, 200), location, shape.mode, contact, shape.createdAt)
	require.NoError(t, err)
	require.NoError(t, s.orders.Add(t.Context(), o))
	return o
}

func (s *store) accepted(shape orderShape) *order.Order {
	t := s.t
	t.Helper()
	o := s.pending(shape)
	require.NoError(t, o.Accept(shape.createdAt.Add(time.Minute)))
	require.NoError(t, s.orders.Update(t.Context(), o, order.Pending))
	return o
}

func (s *store) inTransit(shape orderShape, driverID kernel.UUID) *order.Order {
	t := s.t
	t.Helper()
	o := s.accepted(shape)
	require.NoError(t, o.AssignDriver(driverID, order.Contact{}, shape.createdAt.Add(2*time.Minute)))
	require.NoError(t, s.orders.Assign(t.Context(), o, order.Accepted))
	return o
}

func (s *store) delivered(shape orderShape, driverID kernel.UUID) *order.Order {
	t := s.t
	t.Helper()
	o := s.inTransit(shape, driverID)
	split, err := services.NewSettlementEngine().ComputeSplit(o.Total(), s.percentConfig(nil, 1))
	require.NoError(t, err)
	require.NoError(t, o.Settle(split, shape.createdAt.Add(time.Hour)))
	require.NoError(t, o.MarkDelivered(shape.createdAt.Add(time.Hour)))
	require.NoError(t, s.orders.Update(t.Context(), o, order.InTransit))
	return o
}

func (s *store) deleted(shape orderShape) *order.Order {
	t := s.t
	t.Helper()
	o := s.pending(shape)
	require.NoError(t, o.Cancel("", shape.createdAt.Add(time.Minute)))
	require.NoError(t, s.orders.Update(t.Context(), o, order.Pending))
	require.NoError(t, o.SoftDelete(kernel.NewUUID(), shape.createdAt.Add(2*time.Minute)))
	require.NoError(t, s.orders.Update(t.Context(), o, order.Cancelled))
	return o
}

// percentConfig builds a 10/85/5 config without storing it.
func (s *store) percentConfig(restaurantID *kernel.UUID, version int) *splitconfig.SplitConfig {
	t := s.t
	t.Helper()
	terms, err := splitconfig.NewPercentTerms(splitconfig.Rates{
		Admin:      decimal.NewFromInt(10),
		Restaurant: decimal.NewFromInt(85),
		Delivery:   decimal.NewFromInt(5),
	}, "USD")
	require.NoError(t, err)
	cfg, err := splitconfig.New(kernel.NewUUID(), restaurantID, version, terms, kernel.NewUUID(), testNow)
	require.NoError(t, err)
	return cfg
}

func (s *store) activate(restaurantID *kernel.UUID, version int) *splitconfig.SplitConfig {
	s.t.Helper()
	cfg := s.percentConfig(restaurantID, version)
	require.NoError(s.t, s.configs.Activate(s.t.Context(), cfg))
	return cfg
}
