package notifications_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/anjiri1684/alx_travel/notifications"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
)

type ackRecorder struct {
	mu      sync.Mutex
	acked   []uint64
	nacked  []uint64
	requeue []bool
}

func (a *ackRecorder) Ack(tag uint64, _ bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.acked = append(a.acked, tag)
	return nil
}

func (a *ackRecorder) Nack(tag uint64, _ bool, requeue bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.nacked = append(a.nacked, tag)
	a.requeue = append(a.requeue, requeue)
	return nil
}

func (a *ackRecorder) Reject(tag uint64, requeue bool) error {
	return a.Nack(tag, false, requeue)
}

func delivery(ack amqp.Acknowledger, tag uint64, body []byte) amqp.Delivery {
	return amqp.Delivery{Acknowledger: ack, DeliveryTag: tag, Body: body}
}

func TestConsume(t *testing.T) {
	ack := &ackRecorder{}
	h := &countingHandler{}

	good, _ := json.Marshal(notifications.NewBookingConfirmationTask(uuid.New()))

	deliveries := make(chan amqp.Delivery, 2)
	deliveries <- delivery(ack, 1, good)
	deliveries <- delivery(ack, 2, []byte("not json"))
	close(deliveries)

	notifications.Consume(context.Background(), deliveries, h)

	assert.Equal(t, 1, h.count())
	assert.Equal(t, []uint64{1}, ack.acked)
	assert.Equal(t, []uint64{2}, ack.nacked)
	assert.Equal(t, []bool{false}, ack.requeue)
}

func TestConsume_RequeuesFailedTask(t *testing.T) {
	ack := &ackRecorder{}
	h := &countingHandler{failures: 1}

	body, _ := json.Marshal(notifications.NewPaymentConfirmationTask("guest@example.com", uuid.New()))
	deliveries := make(chan amqp.Delivery, 1)
	deliveries <- delivery(ack, 7, body)
	close(deliveries)

	notifications.Consume(context.Background(), deliveries, h)

	assert.Empty(t, ack.acked)
	assert.Equal(t, []uint64{7}, ack.nacked)
	assert.Equal(t, []bool{true}, ack.requeue)
}
