package commands_test

import (
	"context"
	"time"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/outbox"
	"fooddelivery/internal/core/domain/model/splitconfig"
	"fooddelivery/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order, expected order.Status) error {
	args := m.Called(ctx, o, expected)
	return args.Error(0)
}

func (m *MockOrderRepository) Assign(ctx context.Context, o *order.Order, expected order.Status) error {
	args := m.Called(ctx, o, expected)
	return args.Error(0)
}

type MockSplitConfigRepository struct{ mock.Mock }

func (m *MockSplitConfigRepository) GetActive(
	ctx context.Context,
	restaurantID *kernel.UUID,
) (*splitconfig.SplitConfig, error) {
	args := m.Called(ctx, restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*splitconfig.SplitConfig), args.Error(1)
}

func (m *MockSplitConfigRepository) LatestVersion(ctx context.Context, restaurantID *kernel.UUID) (int, error) {
	args := m.Called(ctx, restaurantID)
	return args.Int(0), args.Error(1)
}

func (m *MockSplitConfigRepository) Activate(ctx context.Context, cfg *splitconfig.SplitConfig) error {
	args := m.Called(ctx, cfg)
	return args.Error(0)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) Add(ctx context.Context, messages ...*outbox.Message) error {
	args := m.Called(ctx, messages)
	return args.Error(0)
}

func (m *MockOutboxRepository) GetPending(ctx context.Context, limit int) ([]*outbox.Message, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*outbox.Message), args.Error(1)
}

func (m *MockOutboxRepository) Update(ctx context.Context, message *outbox.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

// MockUoW satisfies every unit of work flavour the handlers ask for.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) SplitConfigRepository() ports.SplitConfigRepository {
	args := m.Called()
	return args.Get(0).(ports.SplitConfigRepository)
}

func (m *MockUoW) OutboxRepository() ports.OutboxRepository {
	args := m.Called()
	return args.Get(0).(ports.OutboxRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockSettlementUoWFactory struct{ mock.Mock }

func (m *MockSettlementUoWFactory) Create() commands.SettlementUoW {
	args := m.Called()
	return args.Get(0).(commands.SettlementUoW)
}

type MockSplitConfigUoWFactory struct{ mock.Mock }

func (m *MockSplitConfigUoWFactory) Create() commands.SplitConfigUoW {
	args := m.Called()
	return args.Get(0).(commands.SplitConfigUoW)
}

type MockOutboxUoWFactory struct{ mock.Mock }

func (m *MockOutboxUoWFactory) Create() commands.OutboxUoW {
	args := m.Called()
	return args.Get(0).(commands.OutboxUoW)
}

type MockPartyRegistry struct{ mock.Mock }

func (m *MockPartyRegistry) GetRestaurant(ctx context.Context, id kernel.UUID) (ports.Restaurant, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ports.Restaurant), args.Error(1)
}

func (m *MockPartyRegistry) GetDriverProfile(
	ctx context.Context,
	driverID kernel.UUID,
	authToken string,
) (ports.DriverProfile, error) {
	args := m.Called(ctx, driverID, authToken)
	return args.Get(0).(ports.DriverProfile), args.Error(1)
}

type MockDroneAssigner struct{ mock.Mock }

func (m *MockDroneAssigner) Assign(ctx context.Context, req ports.DroneAssignmentRequest) (order.DroneMission, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(order.DroneMission), args.Error(1)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) SendEmail(ctx context.Context, email ports.Email) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockNotifier) SendWeb(ctx context.Context, notification ports.WebNotification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

type MockIdempotencyStore struct{ mock.Mock }

func (m *MockIdempotencyStore) Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) Release(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
