package cmd

import (
	"log/slog"

	"fooddelivery/internal/adapters/in/http"
	"fooddelivery/internal/adapters/out/postgres"
	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/jobs"

	"gorm.io/gorm"
)

// Adapters are the outbound dependencies built by main.
type Adapters struct {
	Registry    ports.PartyRegistry
	Drones      ports.DroneAssigner
	Notifier    ports.Notifier
	Idempotency ports.IdempotencyStore
}

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory ports.UnitOfWorkFactory
	adapters   Adapters
	logger     *slog.Logger
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, adapters Adapters, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		adapters:   adapters,
		logger:     logger,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) SplitConfigUoWFactory() commands.SplitConfigUoWFactory {
	return FuncSplitConfigUoWFactory(func() commands.SplitConfigUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(
		c.orderUoWFactory(),
		c.adapters.Registry,
		c.adapters.Idempotency,
		c.configs.IdempotencyTTL,
		c.configs.RegistryTimeout,
	)
}

func (c *CompositionRoot) CreateAcceptOrderCommandHandler() commands.AcceptOrderCommandHandler {
	return commands.NewAcceptOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateAssignDriverCommandHandler() commands.AssignDriverCommandHandler {
	return commands.NewAssignDriverCommandHandler(
		c.orderUoWFactory(),
		c.adapters.Registry,
		c.configs.RegistryTimeout,
		c.logger,
	)
}

func (c *CompositionRoot) CreateAssignDroneCommandHandler() commands.AssignDroneCommandHandler {
	return commands.NewAssignDroneCommandHandler(
		c.orderUoWFactory(),
		c.adapters.Registry,
		c.adapters.Drones,
		services.NewOrderDispatcher(c.configs.DroneMaxRangeKm),
		c.configs.RegistryTimeout,
		c.configs.DroneTimeout,
		c.logger,
	)
}

func (c *CompositionRoot) CreateMarkDeliveredCommandHandler() commands.MarkDeliveredCommandHandler {
	var f commands.SettlementUoWFactory = FuncSettlementUoWFactory(func() commands.SettlementUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkDeliveredCommandHandler(f, services.NewSettlementEngine())
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateConfirmReceivedCommandHandler() commands.ConfirmReceivedCommandHandler {
	return commands.NewConfirmReceivedCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateSoftDeleteOrderCommandHandler() commands.SoftDeleteOrderCommandHandler {
	return commands.NewSoftDeleteOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateActivateSplitConfigCommandHandler() commands.ActivateSplitConfigCommandHandler {
	return commands.NewActivateSplitConfigCommandHandler(c.SplitConfigUoWFactory())
}

func (c *CompositionRoot) CreateDispatchNotificationsCommandHandler() commands.DispatchNotificationsCommandHandler {
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDispatchNotificationsCommandHandler(
		f,
		c.adapters.Notifier,
		c.configs.NotifierTimeout,
		c.logger,
	)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAvailableOrdersQueryHandler() queries.GetAvailableOrdersQueryHandler {
	return queries.NewGetAvailableOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveSplitConfigQueryHandler() queries.GetActiveSplitConfigQueryHandler {
	return queries.NewGetActiveSplitConfigQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListSplitConfigsQueryHandler() queries.ListSplitConfigsQueryHandler {
	return queries.NewListSplitConfigsQueryHandler(c.gormDB)
}

// HTTPHandlers wires every use case served by the HTTP adapter.
func (c *CompositionRoot) HTTPHandlers() http.Handlers {
	createOrder := c.CreateCreateOrderCommandHandler()
	acceptOrder := c.CreateAcceptOrderCommandHandler()
	assignDriver := c.CreateAssignDriverCommandHandler()
	assignDrone := c.CreateAssignDroneCommandHandler()
	markDelivered := c.CreateMarkDeliveredCommandHandler()
	cancelOrder := c.CreateCancelOrderCommandHandler()
	confirmReceived := c.CreateConfirmReceivedCommandHandler()
	softDelete := c.CreateSoftDeleteOrderCommandHandler()
	activateSplitConfig := c.CreateActivateSplitConfigCommandHandler()

	return http.Handlers{
		CreateOrder:         &createOrder,
		AcceptOrder:         &acceptOrder,
		AssignDriver:        &assignDriver,
		AssignDrone:         &assignDrone,
		MarkDelivered:       &markDelivered,
		CancelOrder:         &cancelOrder,
		ConfirmReceived:     &confirmReceived,
		SoftDeleteOrder:     &softDelete,
		ActivateSplitConfig: &activateSplitConfig,

		GetOrder:             c.CreateGetOrderQueryHandler(),
		ListOrders:           c.CreateListOrdersQueryHandler(),
		GetAvailableOrders:   c.CreateGetAvailableOrdersQueryHandler(),
		GetActiveSplitConfig: c.CreateGetActiveSplitConfigQueryHandler(),
		ListSplitConfigs:     c.CreateListSplitConfigsQueryHandler(),
	}
}

func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	dispatch := c.CreateDispatchNotificationsCommandHandler()
	relayJob, err := jobs.NewNotificationRelayJob(
		&dispatch,
		c.configs.NotifyBatchSize,
		c.configs.NotifyMaxAttempts,
		c.logger,
	)
	if err != nil {
		return nil, err
	}
	return jobs.NewJobManager(relayJob), nil
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncSettlementUoWFactory func() commands.SettlementUoW

func (f FuncSettlementUoWFactory) Create() commands.SettlementUoW {
	return f()
}

type FuncSplitConfigUoWFactory func() commands.SplitConfigUoW

func (f FuncSplitConfigUoWFactory) Create() commands.SplitConfigUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
