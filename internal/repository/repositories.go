package repository

import (
	"github.com/deppfellow/car-doctor/internal/server"
)

type Repositories struct {
	Services *ServiceRepository
	Orders   *OrderRepository
}

func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Services: NewServiceRepository(s.DB, s.Redis, s.Config.Redis.CatalogTTL, s.Logger),
		Orders:   NewOrderRepository(s.DB),
	}
}
