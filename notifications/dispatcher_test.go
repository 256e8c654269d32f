package notifications_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/anjiri1684/alx_travel/notifications"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingHandler struct {
	mu       sync.Mutex
	handled  []notifications.Task
	failures int
	block    chan struct{}
}

func (h *countingHandler) Handle(_ context.Context, task notifications.Task) error {
	if h.block != nil {
		<-h.block
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.failures > 0 {
		h.failures--
		return errors.New("smtp down")
	}
	h.handled = append(h.handled, task)
	return nil
}

func (h *countingHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.handled)
}

func TestLocalDispatcher_RunsTasks(t *testing.T) {
	h := &countingHandler{}
	d := notifications.NewLocalDispatcher(h, 10, 2)
	d.Start(context.Background())

	for i := 0; i < 5; i++ {
		require.NoError(t, d.Dispatch(context.Background(), notifications.NewBookingConfirmationTask(uuid.New())))
	}
	d.Close()

	assert.Equal(t, 5, h.count())
}

func TestLocalDispatcher_RetriesFailedTask(t *testing.T) {
	h := &countingHandler{failures: 1}
	d := notifications.NewLocalDispatcher(h, 1, 1)
	d.Start(context.Background())

	require.NoError(t, d.Dispatch(context.Background(), notifications.NewPaymentConfirmationTask("a@b.c", uuid.New())))
	d.Close()

	assert.Equal(t, 1, h.count())
}

func TestLocalDispatcher_NonBlockingWhenFull(t *testing.T) {
	h := &countingHandler{block: make(chan struct{})}
	d := notifications.NewLocalDispatcher(h, 1, 1)
	d.Start(context.Background())

	// The first task occupies the worker, the second fills the buffer.
	require.NoError(t, d.Dispatch(context.Background(), notifications.NewBookingConfirmationTask(uuid.New())))
	require.Eventually(t, func() bool {
		return d.Dispatch(context.Background(), notifications.NewBookingConfirmationTask(uuid.New())) == nil
	}, time.Second, 10*time.Millisecond)

	start := time.Now()
	err := d.Dispatch(context.Background(), notifications.NewBookingConfirmationTask(uuid.New()))
	assert.ErrorIs(t, err, notifications.ErrQueueFull)
	assert.Less(t, time.Since(start), 100*time.Millisecond)

	close(h.block)
	d.Close()
	assert.ErrorIs(t, d.Dispatch(context.Background(), notifications.Task{}), notifications.ErrDispatcherClosed)
}

type fakePublisher struct {
	keys   []string
	values []any
	err    error
}

func (p *fakePublisher) PublishJSON(_ context.Context, key string, v any) error {
	if p.err != nil {
		return p.err
	}
	p.keys = append(p.keys, key)
	p.values = append(p.values, v)
	return nil
}

func TestAMQPDispatcher(t *testing.T) {
	pub := &fakePublisher{}
	d := notifications.NewAMQPDispatcher(pub)
	task := notifications.NewBookingConfirmationTask(uuid.New())

	require.NoError(t, d.Dispatch(context.Background(), task))
	assert.Equal(t, []string{notifications.TaskBookingConfirmation}, pub.keys)
	assert.Equal(t, task, pub.values[0])

	pub.err = errors.New("channel closed")
	assert.Error(t, d.Dispatch(context.Background(), task))
}
