package service

import (
	"context"

	"github.com/deppfellow/car-doctor/internal/errs"
	"github.com/deppfellow/car-doctor/internal/lib/job"
	"github.com/deppfellow/car-doctor/internal/model"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const forbiddenMessage = "forbidden access"

// OrderRepository is the order storage.
type OrderRepository interface {
	ListOrders(ctx context.Context, q model.OrderQuery) ([]model.Order, error)
	CreateOrder(ctx context.Context, order *model.Order) error
	UpdateOrderStatus(ctx context.Context, id primitive.ObjectID, status string) (*model.UpdateResult, error)
	DeleteOrder(ctx context.Context, id primitive.ObjectID) (*model.DeleteResult, error)
}

// TaskEnqueuer is satisfied by *asynq.Client.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type OrderService struct {
	repo   OrderRepository
	tasks  TaskEnqueuer
	logger *zerolog.Logger
}

// NewOrderService builds the service. tasks may be nil, in which case no
// confirmation e-mail is scheduled.
func NewOrderService(repo OrderRepository, tasks TaskEnqueuer, logger *zerolog.Logger) *OrderService {
	return &OrderService{repo: repo, tasks: tasks, logger: logger}
}

// ListOrders lists orders, optionally narrowed to one email.
//
// claims is nil for anonymous callers. A caller with claims may only
// name their own email; without an email in the query every order is
// returned.
func (s *OrderService) ListOrders(ctx context.Context, claims *TokenClaims, q model.OrderQuery) ([]model.Order, error) {
	if claims != nil && q.Email != "" && claims.Email != q.Email {
		s.logger.Warn().
			Str("claim_email", claims.Email).
			Str("query_email", q.Email).
			Msg("order listing for another email rejected")
		return nil, errs.NewForbiddenError(forbiddenMessage, false)
	}

	return s.repo.ListOrders(ctx, q)
}

func (s *OrderService) CreateOrder(ctx context.Context, payload *model.CreateOrderPayload) (*model.InsertResult, error) {
	order := payload.Order()

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	s.enqueueConfirmation(ctx, order)

	return &model.InsertResult{
		Acknowledged: true,
		InsertedID:   order.ID.Hex(),
	}, nil
}

func (s *OrderService) UpdateOrderStatus(ctx context.Context, rawID, status string) (*model.UpdateResult, error) {
	id, err := model.ParseRecordID(rawID)
	if err != nil {
		return nil, err
	}

	return s.repo.UpdateOrderStatus(ctx, id, status)
}

func (s *OrderService) DeleteOrder(ctx context.Context, rawID string) (*model.DeleteResult, error) {
	id, err := model.ParseRecordID(rawID)
	if err != nil {
		return nil, err
	}

	return s.repo.DeleteOrder(ctx, id)
}

// enqueueConfirmation schedules the confirmation e-mail. Failures only
// get logged; the order is already stored.
func (s *OrderService) enqueueConfirmation(ctx context.Context, order *model.Order) {
	if s.tasks == nil {
		return
	}

	task, err := job.NewOrderConfirmationTask(job.OrderConfirmationPayload{
		To:           order.Email,
		CustomerName: order.CustomerName,
		ServiceTitle: order.Service,
		OrderID:      order.ID.Hex(),
		Date:         order.Date,
		Price:        order.Price,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.Hex()).Msg("failed to build order confirmation task")
		return
	}

	info, err := s.tasks.EnqueueContext(ctx, task)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.Hex()).Msg("failed to enqueue order confirmation")
		return
	}

	s.logger.Info().
		Str("task_id", info.ID).
		Str("order_id", order.ID.Hex()).
		Msg("order confirmation enqueued")
}
