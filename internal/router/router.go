// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers
package router

import (
	"net/http"

	"github.com/deppfellow/car-doctor/internal/handler"
	"github.com/deppfellow/car-doctor/internal/middleware"
	"github.com/deppfellow/car-doctor/internal/model"
	"github.com/deppfellow/car-doctor/internal/server"
	"github.com/deppfellow/car-doctor/internal/service"
	"github.com/deppfellow/car-doctor/internal/validation"
	"github.com/labstack/echo/v4"
)

func NewRouter(s *server.Server, h *handler.Handlers, services *service.Services) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s, services)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.JSONSerializer = validation.StrictJSONSerializer{}
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	// Order matters: the request id and the New Relic transaction must
	// exist before the request logger is built from them.
	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middlewares.Global.BodyLimit(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, s, h)

	router.GET("/", handler.Root)

	router.POST("/jwt", handler.Handle(
		h.Auth.Handler,
		h.Auth.IssueToken,
		http.StatusOK,
		func() *model.IssueTokenPayload { return &model.IssueTokenPayload{} },
	), middlewares.RateLimit.TokenIssuance())

	registerCatalogRoutes(router, h)
	registerOrderRoutes(router, h, middlewares)

	return router
}

func registerCatalogRoutes(r *echo.Echo, h *handler.Handlers) {
	services := r.Group("/services")

	services.GET("", handler.Handle(
		h.Catalog.Handler,
		h.Catalog.ListServices,
		http.StatusOK,
		func() *model.ListServicesPayload { return &model.ListServicesPayload{} },
	))

	services.GET("/:id", handler.Handle(
		h.Catalog.Handler,
		h.Catalog.GetService,
		http.StatusOK,
		func() *model.GetServicePayload { return &model.GetServicePayload{} },
	))
}

func registerOrderRoutes(r *echo.Echo, h *handler.Handlers, m *middleware.Middlewares) {
	orders := r.Group("/orders")

	orders.GET("", handler.Handle(
		h.Orders.Handler,
		h.Orders.ListOrders,
		http.StatusOK,
		func() *model.ListOrdersPayload { return &model.ListOrdersPayload{} },
	), m.Auth.OrderGuard())

	orders.POST("", handler.Handle(
		h.Orders.Handler,
		h.Orders.CreateOrder,
		http.StatusOK,
		func() *model.CreateOrderPayload { return &model.CreateOrderPayload{} },
	))

	orders.PATCH("/:id", handler.Handle(
		h.Orders.Handler,
		h.Orders.UpdateOrderStatus,
		http.StatusOK,
		func() *model.UpdateOrderStatusPayload { return &model.UpdateOrderStatusPayload{} },
	))

	orders.DELETE("/:id", handler.Handle(
		h.Orders.Handler,
		h.Orders.DeleteOrder,
		http.StatusOK,
		func() *model.DeleteOrderPayload { return &model.DeleteOrderPayload{} },
	))
}
