package repository

import (
	"context"
	"errors"

	"github.com/deppfellow/car-doctor/internal/database"
	"github.com/deppfellow/car-doctor/internal/dberr"
	"github.com/deppfellow/car-doctor/internal/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type OrderRepository struct {
	db *database.Database
}

func NewOrderRepository(db *database.Database) *OrderRepository {
	return &OrderRepository{db: db}
}

// ListOrders returns matching orders in natural (insertion) order.
func (r *OrderRepository) ListOrders(ctx context.Context, q model.OrderQuery) ([]model.Order, error) {
	cursor, err := r.db.Orders().Find(ctx, OrderFilter(q.Email))
	if err != nil {
		return nil, dberr.Wrap(err, database.OrdersCollection, "find")
	}

	orders := []model.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, dberr.Wrap(err, database.OrdersCollection, "decode")
	}
	if orders == nil {
		orders = []model.Order{}
	}

	return orders, nil
}

// CreateOrder inserts order and sets its generated id.
func (r *OrderRepository) CreateOrder(ctx context.Context, order *model.Order) error {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}

	if _, err := r.db.Orders().InsertOne(ctx, order); err != nil {
		return dberr.Wrap(err, database.OrdersCollection, "insert")
	}

	return nil
}

// UpdateOrderStatus and DeleteOrder report acknowledged=false only for
// writes sent with an unacknowledged (w:0) write concern; the driver then
// returns no counts.
func (r *OrderRepository) UpdateOrderStatus(ctx context.Context, id primitive.ObjectID, status string) (*model.UpdateResult, error) {
	res, err := r.db.Orders().UpdateOne(ctx, RecordIDFilter(id), StatusUpdate(status))
	return updateResult(res, err)
}

func (r *OrderRepository) DeleteOrder(ctx context.Context, id primitive.ObjectID) (*model.DeleteResult, error) {
	res, err := r.db.Orders().DeleteOne(ctx, RecordIDFilter(id))
	return deleteResult(res, err)
}

func updateResult(res *mongo.UpdateResult, err error) (*model.UpdateResult, error) {
	if errors.Is(err, mongo.ErrUnacknowledgedWrite) {
		return &model.UpdateResult{}, nil
	}
	if err != nil {
		return nil, dberr.Wrap(err, database.OrdersCollection, "update")
	}

	result := &model.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
	}
	if upserted, ok := res.UpsertedID.(primitive.ObjectID); ok {
		hex := upserted.Hex()
		result.UpsertedID = &hex
	}

	return result, nil
}

func deleteResult(res *mongo.DeleteResult, err error) (*model.DeleteResult, error) {
	if errors.Is(err, mongo.ErrUnacknowledgedWrite) {
		return &model.DeleteResult{}, nil
	}
	if err != nil {
		return nil, dberr.Wrap(err, database.OrdersCollection, "delete")
	}

	return &model.DeleteResult{
		Acknowledged: true,
		DeletedCount: res.DeletedCount,
	}, nil
}
