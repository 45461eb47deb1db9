package handler

import (
	"github.com/deppfellow/car-doctor/internal/model"
	"github.com/deppfellow/car-doctor/internal/server"
	"github.com/deppfellow/car-doctor/internal/service"
	"github.com/labstack/echo/v4"
)

type CatalogHandler struct {
	Handler
	catalog *service.CatalogService
}

func NewCatalogHandler(s *server.Server, catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		Handler: NewHandler(s),
		catalog: catalog,
	}
}

func (h *CatalogHandler) ListServices(c echo.Context, req *model.ListServicesPayload) ([]model.Service, error) {
	return h.catalog.ListServices(c.Request().Context(), req.Query())
}

// GetService answers an unknown id with an empty 200.
func (h *CatalogHandler) GetService(c echo.Context, req *model.GetServicePayload) (*model.Service, error) {
	return h.catalog.GetService(c.Request().Context(), req.ID)
}
