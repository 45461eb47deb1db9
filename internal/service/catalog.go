package service

import (
	"context"

	"github.com/deppfellow/car-doctor/internal/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServiceRepository is the catalog storage.
type ServiceRepository interface {
	ListServices(ctx context.Context, q model.ServiceQuery) ([]model.Service, error)
	GetService(ctx context.Context, id primitive.ObjectID) (*model.Service, error)
}

type CatalogService struct {
	repo ServiceRepository
}

func NewCatalogService(repo ServiceRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

func (s *CatalogService) ListServices(ctx context.Context, q model.ServiceQuery) ([]model.Service, error) {
	return s.repo.ListServices(ctx, q)
}

// GetService returns nil, nil when no service has id.
func (s *CatalogService) GetService(ctx context.Context, rawID string) (*model.Service, error) {
	id, err := model.ParseRecordID(rawID)
	if err != nil {
		return nil, err
	}

	return s.repo.GetService(ctx, id)
}
