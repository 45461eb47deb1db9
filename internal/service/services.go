package service

import (
	"github.com/deppfellow/car-doctor/internal/lib/job"
	"github.com/deppfellow/car-doctor/internal/repository"
	"github.com/deppfellow/car-doctor/internal/server"
)

type Services struct {
	Auth    *AuthService
	Catalog *CatalogService
	Orders  *OrderService
	Job     *job.JobService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	var tasks TaskEnqueuer
	if s.Job != nil {
		tasks = s.Job.Client
	}

	return &Services{
		Auth:    NewAuthService(s.Config.Auth),
		Catalog: NewCatalogService(repos.Services),
		Orders:  NewOrderService(repos.Orders, tasks, s.Logger),
		Job:     s.Job,
	}, nil
}
