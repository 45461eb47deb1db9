package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

func (j *JobService) handleOrderConfirmationTask(ctx context.Context, t *asynq.Task) error {
	var p OrderConfirmationPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		// Not retryable: the payload will never decode.
		return fmt.Errorf("failed to unmarshal order confirmation payload: %v: %w", err, asynq.SkipRetry)
	}

	log := j.logger.With().
		Str("type", "order_confirmation").
		Str("to", p.To).
		Str("order_id", p.OrderID).
		Logger()

	log.Info().Msg("processing order confirmation task")

	err := j.email.SendOrderConfirmationEmail(ctx, p.To, p.CustomerName, p.ServiceTitle, p.OrderID, p.Date, p.Price)
	if err != nil {
		log.Error().Err(err).Msg("failed to send order confirmation email")
		return err // asynq marks the task failed and schedules a retry
	}

	log.Info().Msg("sent order confirmation email")

	return nil
}
