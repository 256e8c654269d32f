package notifications

import (
	"context"
	"fmt"
)

type JSONPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// AMQPDispatcher publishes tasks to the broker, routed by task name.
type AMQPDispatcher struct {
	pub JSONPublisher
}

func NewAMQPDispatcher(pub JSONPublisher) *AMQPDispatcher {
	return &AMQPDispatcher{pub: pub}
}

func (d *AMQPDispatcher) Dispatch(ctx context.Context, task Task) error {
	if err := d.pub.PublishJSON(ctx, task.Name, task); err != nil {
		return fmt.Errorf("publish %s: %w", task.Name, err)
	}
	return nil
}
