// Package memory holds in-memory test doubles for the MongoDB
// repositories. They apply the same matching, sorting and projection
// rules so handler and router tests run without a database.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/deppfellow/car-doctor/internal/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ServiceRepository struct {
	mu    sync.RWMutex
	items []model.Service
}

// NewServiceRepository seeds the catalog with services. Services without
// an id get a fresh one.
func NewServiceRepository(services ...model.Service) *ServiceRepository {
	items := make([]model.Service, 0, len(services))
	for _, s := range services {
		if s.ID.IsZero() {
			s.ID = primitive.NewObjectID()
		}
		items = append(items, s)
	}
	return &ServiceRepository{items: items}
}

func (r *ServiceRepository) ListServices(_ context.Context, q model.ServiceQuery) ([]model.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(q.Search)

	result := make([]model.Service, 0, len(r.items))
	for _, s := range r.items {
		if needle != "" && !strings.Contains(strings.ToLower(s.Title), needle) {
			continue
		}
		result = append(result, s)
	}

	sort.SliceStable(result, func(i, j int) bool {
		if q.Sort == model.SortAscending {
			return result[i].Price < result[j].Price
		}
		return result[i].Price > result[j].Price
	})

	return result, nil
}

// GetService returns the projected service, or nil when no record has id.
func (r *ServiceRepository) GetService(_ context.Context, id primitive.ObjectID) (*model.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.items {
		if s.ID != id {
			continue
		}
		return &model.Service{
			ID:        s.ID,
			ServiceID: s.ServiceID,
			Title:     s.Title,
			Price:     s.Price,
			Img:       s.Img,
		}, nil
	}

	return nil, nil
}
