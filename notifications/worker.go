package notifications

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

// Consume handles deliveries until ctx is done or the channel closes.
// Failed tasks are requeued, so a task may run more than once.
func Consume(ctx context.Context, deliveries <-chan amqp.Delivery, h Handler) {
	for {
		select {
		case <-ctx.Done():
			return
		case d, ok := <-deliveries:
			if !ok {
				return
			}
			handleDelivery(ctx, d, h)
		}
	}
}

func handleDelivery(ctx context.Context, d amqp.Delivery, h Handler) {
	var task Task
	if err := json.Unmarshal(d.Body, &task); err != nil {
		log.Error().Err(err).Str("routing_key", d.RoutingKey).Msg("undecodable task, dropping")
		_ = d.Nack(false, false)
		return
	}

	if err := h.Handle(ctx, task); err != nil {
		log.Error().Err(err).Str("task", task.Name).Msg("task failed, requeueing")
		_ = d.Nack(false, true)
		return
	}
	_ = d.Ack(false)
}
