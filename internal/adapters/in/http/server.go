package http

import (
	"context"
	"net/http"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const idempotencyKeyHeader = "Idempotency-Key"

type CommandHandler[C any] interface {
	Handle(ctx context.Context, cmd C) error
}

type QueryHandler[Q, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}

// Handlers are the use cases served over HTTP.
type Handlers struct {
	CreateOrder         CommandHandler[commands.CreateOrderCommand]
	AcceptOrder         CommandHandler[commands.AcceptOrderCommand]
	AssignDriver        CommandHandler[commands.AssignDriverCommand]
	AssignDrone         CommandHandler[commands.AssignDroneCommand]
	MarkDelivered       CommandHandler[commands.MarkDeliveredCommand]
	CancelOrder         CommandHandler[commands.CancelOrderCommand]
	ConfirmReceived     CommandHandler[commands.ConfirmReceivedCommand]
	SoftDeleteOrder     CommandHandler[commands.SoftDeleteOrderCommand]
	ActivateSplitConfig CommandHandler[commands.ActivateSplitConfigCommand]

	GetOrder             QueryHandler[queries.GetOrderQuery, queries.OrderView]
	ListOrders           QueryHandler[queries.ListOrdersQuery, queries.PageResult[queries.OrderView]]
	GetAvailableOrders   QueryHandler[queries.GetAvailableOrdersQuery, queries.PageResult[queries.OrderView]]
	GetActiveSplitConfig QueryHandler[queries.GetActiveSplitConfigQuery, queries.SplitConfigView]
	ListSplitConfigs     QueryHandler[queries.ListSplitConfigsQuery, []queries.SplitConfigView]
}

// Server maps HTTP requests to commands and queries. Every endpoint that
// changes an order answers with the order as the caller sees it afterwards.
type Server struct {
	handlers Handlers
}

func NewServer(handlers Handlers) *Server {
	return &Server{handlers: handlers}
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.String(http.StatusOK, "Healthy")
}

// CreateOrder handles POST /api/v1/orders - places an order for the caller.
func (s *Server) CreateOrder(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var body NewOrderBody
	if err = c.Bind(&body); err != nil {
		return newRequestError(kindValidation, "invalid request body")
	}

	cmd, err := newCreateOrderCommand(actor, body, c.Request().Header.Get(idempotencyKeyHeader))
	if err != nil {
		return err
	}

	if err = s.handlers.CreateOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondOrder(c, http.StatusCreated, cmd.OrderID(), actor)
}

// GetOrder handles GET /api/v1/orders/{id}.
func (s *Server) GetOrder(c echo.Context) error {
	actor, orderID, err := orderRequest(c)
	if err != nil {
		return err
	}
	return s.respondOrder(c, http.StatusOK, orderID, actor)
}

// ListOrders handles GET /api/v1/orders - lists the orders visible to the
// caller.
func (s *Server) ListOrders(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	filter, page, err := bindListOrdersParams(c)
	if err != nil {
		return err
	}

	query, err := queries.NewListOrdersQuery(actor, filter, page)
	if err != nil {
		return err
	}

	result, err := s.handlers.ListOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderPageResponse(result))
}

// GetAvailableOrders handles GET /api/v1/orders/available - the pool of
// human-mode orders drivers can claim.
func (s *Server) GetAvailableOrders(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	page, err := bindPage(c)
	if err != nil {
		return err
	}

	query, err := queries.NewGetAvailableOrdersQuery(actor, page)
	if err != nil {
		return err
	}

	result, err := s.handlers.GetAvailableOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderPageResponse(result))
}

// AcceptOrder handles POST /api/v1/orders/{id}/accept.
func (s *Server) AcceptOrder(c echo.Context) error {
	actor, orderID, err := orderRequest(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAcceptOrderCommand(orderID, actor)
	if err != nil {
		return err
	}
	if err = s.handlers.AcceptOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondOrder(c, http.StatusOK, orderID, actor)
}

// AssignDriver handles POST /api/v1/orders/{id}/assign-driver - the calling
// driver claims the order.
func (s *Server) AssignDriver(c echo.Context) error {
	actor, orderID, err := orderRequest(c)
	if err != nil {
		return err
	}
	if !actor.Is(kernel.RoleDriver) {
		return errs.NewForbiddenError(actor.String(), "claim orders")
	}

	cmd, err := commands.NewAssignDriverCommand(orderID, actor.ID(), tokenFrom(c))
	if err != nil {
		return err
	}
	if err = s.handlers.AssignDriver.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondOrder(c, http.StatusOK, orderID, actor)
}

// AssignDrone handles POST /api/v1/orders/{id}/assign-drone.
func (s *Server) AssignDrone(c echo.Context) error {
	actor, orderID, err := orderRequest(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAssignDroneCommand(orderID, actor)
	if err != nil {
		return err
	}
	if err = s.handlers.AssignDrone.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondOrder(c, http.StatusOK, orderID, actor)
}

// MarkDelivered handles POST /api/v1/orders/{id}/deliver.
func (s *Server) MarkDelivered(c echo.Context) error {
	actor, orderID, err := orderRequest(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewMarkDeliveredCommand(orderID, actor)
	if err != nil {
		return err
	}
	if err = s.handlers.MarkDelivered.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondOrder(c, http.StatusOK, orderID, actor)
}

// CancelOrder handles POST /api/v1/orders/{id}/cancel. The body is optional.
func (s *Server) CancelOrder(c echo.Context) error {
	actor, orderID, err := orderRequest(c)
	if err != nil {
		return err
	}

	var body CancelOrderBody
	if err = c.Bind(&body); err != nil {
		return newRequestError(kindValidation, "invalid request body")
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, actor, body.Reason)
	if err != nil {
		return err
	}
	if err = s.handlers.CancelOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondOrder(c, http.StatusOK, orderID, actor)
}

// ConfirmReceived handles POST /api/v1/orders/{id}/confirm.
func (s *Server) ConfirmReceived(c echo.Context) error {
	actor, orderID, err := orderRequest(c)
	if err != nil {
		return err
	}
	if !actor.Is(kernel.RoleCustomer) {
		return errs.NewForbiddenError(actor.String(), "confirm receipt")
	}

	cmd, err := commands.NewConfirmReceivedCommand(orderID, actor.ID())
	if err != nil {
		return err
	}
	if err = s.handlers.ConfirmReceived.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondOrder(c, http.StatusOK, orderID, actor)
}

// SoftDeleteOrder handles DELETE /api/v1/orders/{id}.
func (s *Server) SoftDeleteOrder(c echo.Context) error {
	actor, orderID, err := orderRequest(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewSoftDeleteOrderCommand(orderID, actor)
	if err != nil {
		return err
	}
	if err = s.handlers.SoftDeleteOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondOrder(c, http.StatusOK, orderID, actor)
}

// GetActiveSplitConfig handles GET /api/v1/split-configs/active.
func (s *Server) GetActiveSplitConfig(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	restaurantID, err := bindRestaurantID(c)
	if err != nil {
		return err
	}

	query, err := queries.NewGetActiveSplitConfigQuery(actor, restaurantID)
	if err != nil {
		return err
	}

	view, err := s.handlers.GetActiveSplitConfig.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSplitConfigResponse(view))
}

// ListSplitConfigs handles GET /api/v1/split-configs - the version history
// of one scope.
func (s *Server) ListSplitConfigs(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	restaurantID, err := bindRestaurantID(c)
	if err != nil {
		return err
	}

	query, err := queries.NewListSplitConfigsQuery(actor, restaurantID)
	if err != nil {
		return err
	}

	views, err := s.handlers.ListSplitConfigs.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSplitConfigResponses(views))
}

// ActivateSplitConfig handles POST /api/v1/split-configs - publishes the next
// version of a scope.
func (s *Server) ActivateSplitConfig(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var body NewSplitConfigBody
	if err = c.Bind(&body); err != nil {
		return newRequestError(kindValidation, "invalid request body")
	}

	cmd, err := newActivateSplitConfigCommand(actor, body)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	if err = s.handlers.ActivateSplitConfig.Handle(ctx, cmd); err != nil {
		return err
	}

	query, err := queries.NewGetActiveSplitConfigQuery(actor, cmd.RestaurantID())
	if err != nil {
		return err
	}
	view, err := s.handlers.GetActiveSplitConfig.Handle(ctx, query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toSplitConfigResponse(view))
}

func (s *Server) respondOrder(c echo.Context, status int, orderID kernel.UUID, actor kernel.Actor) error {
	query, err := queries.NewGetOrderQuery(orderID, actor)
	if err != nil {
		return err
	}

	view, err := s.handlers.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(status, toOrderResponse(view))
}
