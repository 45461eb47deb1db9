package memory

import (
	"context"
	"sync"

	"github.com/deppfellow/car-doctor/internal/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderRepository keeps orders in insertion order.
type OrderRepository struct {
	mu    sync.RWMutex
	items []model.Order
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

func (r *OrderRepository) ListOrders(_ context.Context, q model.OrderQuery) ([]model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]model.Order, 0, len(r.items))
	for _, o := range r.items {
		if q.Email != "" && o.Email != q.Email {
			continue
		}
		result = append(result, o)
	}
	return result, nil
}

func (r *OrderRepository) CreateOrder(_ context.Context, order *model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	r.items = append(r.items, *order)
	return nil
}

// UpdateOrderStatus never upserts: an unknown id matches nothing.
func (r *OrderRepository) UpdateOrderStatus(_ context.Context, id primitive.ObjectID, status string) (*model.UpdateResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := &model.UpdateResult{Acknowledged: true}
	for i := range r.items {
		if r.items[i].ID != id {
			continue
		}
		result.MatchedCount = 1
		if r.items[i].Status != status {
			r.items[i].Status = status
			result.ModifiedCount = 1
		}
		break
	}
	return result, nil
}

func (r *OrderRepository) DeleteOrder(_ context.Context, id primitive.ObjectID) (*model.DeleteResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := &model.DeleteResult{Acknowledged: true}
	for i := range r.items {
		if r.items[i].ID != id {
			continue
		}
		r.items = append(r.items[:i], r.items[i+1:]...)
		result.DeletedCount = 1
		break
	}
	return result, nil
}
