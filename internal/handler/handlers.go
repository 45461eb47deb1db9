package handler

import (
	"github.com/deppfellow/car-doctor/internal/server"
	"github.com/deppfellow/car-doctor/internal/service"
)

// Handlers groups every HTTP handler so the router receives one value.
type Handlers struct {
	Auth         *AuthHandler
	Catalog      *CatalogHandler
	Orders       *OrderHandler
	Health       *HealthHandler
	OpenAPI      *OpenAPIHandler
	EmailPreview *EmailPreviewHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(s, services.Auth),
		Catalog:      NewCatalogHandler(s, services.Catalog),
		Orders:       NewOrderHandler(s, services.Orders),
		Health:       NewHealthHandler(s),
		OpenAPI:      NewOpenAPIHandler(s),
		EmailPreview: NewEmailPreviewHandler(s),
	}
}
