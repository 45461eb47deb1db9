package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	TaskOrderConfirmation = "email:order_confirmation"
)

type OrderConfirmationPayload struct {
	To           string  `json:"to"`
	CustomerName string  `json:"customer_name"`
	ServiceTitle string  `json:"service_title"`
	OrderID      string  `json:"order_id"`
	Date         string  `json:"date"`
	Price        float64 `json:"price"`
}

func NewOrderConfirmationTask(p OrderConfirmationPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskOrderConfirmation,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}
