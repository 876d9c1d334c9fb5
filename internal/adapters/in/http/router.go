package http

import (
	"log/slog"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// NewRouter builds the echo instance serving s. Everything under /api/v1
// needs a bearer token and must match doc.
func NewRouter(s *Server, auth *Authenticator, doc *openapi3.T, logger *slog.Logger) (*echo.Echo, error) {
	validator, err := requestValidator(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewErrorHandler(logger)

	e.Use(
		middleware.RequestID(),
		requestLogger(logger),
		middleware.Recover(),
		tracing,
	)

	e.GET("/health", s.Health)
	e.GET("/openapi.yaml", serveOpenAPI)
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.URL("/openapi.yaml")))

	api := e.Group("/api/v1", auth.Middleware, validator)

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.ListOrders)
	api.GET("/orders/available", s.GetAvailableOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.DELETE("/orders/:id", s.SoftDeleteOrder)
	api.POST("/orders/:id/accept", s.AcceptOrder)
	api.POST("/orders/:id/assign-driver", s.AssignDriver)
	api.POST("/orders/:id/assign-drone", s.AssignDrone)
	api.POST("/orders/:id/deliver", s.MarkDelivered)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.POST("/orders/:id/confirm", s.ConfirmReceived)

	api.GET("/split-configs", s.ListSplitConfigs)
	api.POST("/split-configs", s.ActivateSplitConfig)
	api.GET("/split-configs/active", s.GetActiveSplitConfig)

	return e, nil
}
