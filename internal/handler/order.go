package handler

import (
	"github.com/deppfellow/car-doctor/internal/middleware"
	"github.com/deppfellow/car-doctor/internal/model"
	"github.com/deppfellow/car-doctor/internal/server"
	"github.com/deppfellow/car-doctor/internal/service"
	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	Handler
	orders *service.OrderService
}

func NewOrderHandler(s *server.Server, orders *service.OrderService) *OrderHandler {
	return &OrderHandler{
		Handler: NewHandler(s),
		orders:  orders,
	}
}

// ListOrders uses the identity set by the order guard, if any.
func (h *OrderHandler) ListOrders(c echo.Context, req *model.ListOrdersPayload) ([]model.Order, error) {
	return h.orders.ListOrders(c.Request().Context(), middleware.GetClaims(c), model.OrderQuery{Email: req.Email})
}

func (h *OrderHandler) CreateOrder(c echo.Context, req *model.CreateOrderPayload) (*model.InsertResult, error) {
	return h.orders.CreateOrder(c.Request().Context(), req)
}

func (h *OrderHandler) UpdateOrderStatus(c echo.Context, req *model.UpdateOrderStatusPayload) (*model.UpdateResult, error) {
	return h.orders.UpdateOrderStatus(c.Request().Context(), req.ID, req.Status)
}

func (h *OrderHandler) DeleteOrder(c echo.Context, req *model.DeleteOrderPayload) (*model.DeleteResult, error) {
	return h.orders.DeleteOrder(c.Request().Context(), req.ID)
}
