package orderrepo_test

import (
	"sync"
	"testing"
	"time"

	"fooddelivery/internal/adapters/out/postgres/orderrepo"
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

// recordingTracker stands in for the unit of work.
type recordingTracker struct {
	mu      sync.Mutex
	tracked []kernel.UUID
}

func (r *recordingTracker) TrackAggregate(id kernel.UUID, _ any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tracked = append(r.tracked, id)
}

func (r *recordingTracker) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tracked)
}

func openRepo(t *testing.T) (*orderrepo.GormOrderRepository, *recordingTracker, *gorm.DB) {
	t.Helper()
	db := testdb.Open(t, &orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{})
	tracker := &recordingTracker{}
	return orderrepo.NewGormOrderRepository(db, tracker), tracker, db
}

func usd(t *testing.T, cents int64) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(cents, "USD")
	require.NoError(t, err)
	return m
}

func newPendingOrder(t *testing.T, mode order.TransportMode) *order.Order {
	t.Helper()
	pizza, err := order.NewItem("Pizza", usd(t, 925), 2)
	require.NoError(t, err)
	cola, err := order.NewItem("Cola", usd(t, 250), 1)
	require.NoError(t, err)

	coords, err := kernel.NewCoordinates(52.52, 13.405)
	require.NoError(t, err)
	location, err := kernel.NewLocation("Unter den Linden 1, Berlin", &coords)
	require.NoError(t, err)

	contact, err := order.NewContact("Ada", "ada@example.com", "+49 30 1234")
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		[]order.Item{pizza, cola},
		usd(t, 200),
		location,
		mode,
		contact,
		testNow,
	)
	require.NoError(t, err)
	o.ClearDomainEvents()
	return o
}

func percentConfig(t *testing.T) *splitconfig.SplitConfig {
	t.Helper()
	terms, err := splitconfig.NewPercentTerms(splitconfig.Rates{
		Admin:      decimal.RequireFromString("10.5"),
		Restaurant: decimal.NewFromInt(85),
		Delivery:   decimal.RequireFromString("4.5"),
	}, "USD")
	require.NoError(t, err)
	cfg, err := splitconfig.New(kernel.NewUUID(), nil, 3, terms, kernel.NewUUID(), testNow)
	require.NoError(t, err)
	return cfg
}

func settle(t *testing.T, o *order.Order) {
	t.Helper()
	split, err := services.NewSettlementEngine().ComputeSplit(o.Total(), percentConfig(t))
	require.NoError(t, err)
	require.NoError(t, o.Settle(split, testNow.Add(time.Hour)))
}
