package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/deppfellow/car-doctor/internal/errs"
	"github.com/deppfellow/car-doctor/internal/lib/job"
	"github.com/deppfellow/car-doctor/internal/model"
	"github.com/deppfellow/car-doctor/internal/repository/memory"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type recordingEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (r *recordingEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.tasks = append(r.tasks, task)
	return &asynq.TaskInfo{ID: "task-1", Queue: "default"}, nil
}

// countingRepo fails the test if the guard lets a forbidden request through.
type countingRepo struct {
	*memory.OrderRepository
	listCalls int
}

func (c *countingRepo) ListOrders(ctx context.Context, q model.OrderQuery) ([]model.Order, error) {
	c.listCalls++
	return c.OrderRepository.ListOrders(ctx, q)
}

func newOrderService(tasks TaskEnqueuer) (*OrderService, *countingRepo) {
	logger := zerolog.Nop()
	repo := &countingRepo{OrderRepository: memory.NewOrderRepository()}
	return NewOrderService(repo, tasks, &logger), repo
}

func seedOrders(t *testing.T, s *OrderService) {
	t.Helper()

	for _, email := range []string{"a@x.com", "b@x.com", "a@x.com"} {
		_, err := s.CreateOrder(context.Background(), &model.CreateOrderPayload{Email: email, Status: "pending"})
		require.NoError(t, err)
	}
}

func TestListOrders_ForbiddenSkipsRepository(t *testing.T) {
	s, repo := newOrderService(nil)
	seedOrders(t, s)

	_, err := s.ListOrders(context.Background(), &TokenClaims{Email: "a@x.com"}, model.OrderQuery{Email: "b@x.com"})

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusForbidden, httpErr.Status)
	assert.Equal(t, "forbidden access", httpErr.Message)
	assert.Zero(t, repo.listCalls)
}

func TestListOrders_OwnEmail(t *testing.T) {
	s, _ := newOrderService(nil)
	seedOrders(t, s)

	orders, err := s.ListOrders(context.Background(), &TokenClaims{Email: "a@x.com"}, model.OrderQuery{Email: "a@x.com"})
	require.NoError(t, err)
	assert.Len(t, orders, 2)
}

func TestListOrders_WithoutEmailListsAll(t *testing.T) {
	s, _ := newOrderService(nil)
	seedOrders(t, s)

	withClaims, err := s.ListOrders(context.Background(), &TokenClaims{Email: "a@x.com"}, model.OrderQuery{})
	require.NoError(t, err)
	assert.Len(t, withClaims, 3)

	anonymous, err := s.ListOrders(context.Background(), nil, model.OrderQuery{Email: "b@x.com"})
	require.NoError(t, err)
	assert.Len(t, anonymous, 1)
}

func TestCreateOrder_EnqueuesConfirmation(t *testing.T) {
	tasks := &recordingEnqueuer{}
	s, _ := newOrderService(tasks)

	res, err := s.CreateOrder(context.Background(), &model.CreateOrderPayload{
		CustomerName: "Ann",
		Email:        "a@x.com",
		Service:      "Engine Oil Change",
		Price:        20,
	})
	require.NoError(t, err)
	assert.True(t, res.Acknowledged)
	assert.True(t, primitive.IsValidObjectID(res.InsertedID))

	require.Len(t, tasks.tasks, 1)
	assert.Equal(t, job.TaskOrderConfirmation, tasks.tasks[0].Type())

	var p job.OrderConfirmationPayload
	require.NoError(t, json.Unmarshal(tasks.tasks[0].Payload(), &p))
	assert.Equal(t, res.InsertedID, p.OrderID)
	assert.Equal(t, "a@x.com", p.To)
	assert.Equal(t, "Engine Oil Change", p.ServiceTitle)
}

func TestCreateOrder_EnqueueFailureIsNotFatal(t *testing.T) {
	s, repo := newOrderService(&recordingEnqueuer{err: errors.New("redis down")})

	_, err := s.CreateOrder(context.Background(), &model.CreateOrderPayload{Email: "a@x.com"})
	require.NoError(t, err)

	orders, err := repo.ListOrders(context.Background(), model.OrderQuery{})
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestUpdateAndDeleteOrder(t *testing.T) {
	s, _ := newOrderService(nil)

	created, err := s.CreateOrder(context.Background(), &model.CreateOrderPayload{Email: "a@x.com", Status: "pending"})
	require.NoError(t, err)

	upd, err := s.UpdateOrderStatus(context.Background(), created.InsertedID, "confirm")
	require.NoError(t, err)
	assert.Equal(t, int64(1), upd.ModifiedCount)

	del, err := s.DeleteOrder(context.Background(), created.InsertedID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), del.DeletedCount)

	missing, err := s.UpdateOrderStatus(context.Background(), primitive.NewObjectID().Hex(), "confirm")
	require.NoError(t, err)
	assert.Zero(t, missing.MatchedCount)
}

func TestUpdateOrderStatus_MalformedID(t *testing.T) {
	s, _ := newOrderService(nil)

	_, err := s.UpdateOrderStatus(context.Background(), "123", "confirm")

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, "INVALID_RECORD_ID", httpErr.Code)

	_, err = s.DeleteOrder(context.Background(), "nope")
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
}
