package notifications

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Dispatcher submits tasks for background execution. Dispatch returns once
// the task is handed over; it never waits for the task to run.
type Dispatcher interface {
	Dispatch(ctx context.Context, task Task) error
}

type Handler interface {
	Handle(ctx context.Context, task Task) error
}

var (
	ErrQueueFull        = errors.New("notification queue is full")
	ErrDispatcherClosed = errors.New("notification dispatcher is closed")
)

const localMaxAttempts = 3

// LocalDispatcher runs tasks on in-process workers fed by a buffered channel.
// It stands in for the broker when none is configured.
type LocalDispatcher struct {
	tasks   chan Task
	handler Handler
	workers int
	backoff time.Duration
	wg      sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

func NewLocalDispatcher(h Handler, queueSize, workers int) *LocalDispatcher {
	if queueSize <= 0 {
		queueSize = 100
	}
	if workers <= 0 {
		workers = 1
	}
	return &LocalDispatcher{
		tasks:   make(chan Task, queueSize),
		handler: h,
		workers: workers,
		backoff: 500 * time.Millisecond,
	}
}

func (d *LocalDispatcher) Start(ctx context.Context) {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			for task := range d.tasks {
				d.run(ctx, task)
			}
		}()
	}
}

func (d *LocalDispatcher) run(ctx context.Context, task Task) {
	for attempt := 1; attempt <= localMaxAttempts; attempt++ {
		err := d.handler.Handle(ctx, task)
		if err == nil {
			return
		}
		log.Warn().Err(err).Str("task", task.Name).Int("attempt", attempt).Msg("notification task failed")
		if attempt == localMaxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(d.backoff * time.Duration(attempt)):
		}
	}
	log.Error().Str("task", task.Name).Msg("notification task dropped after retries")
}

func (d *LocalDispatcher) Dispatch(_ context.Context, task Task) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrDispatcherClosed
	}
	select {
	case d.tasks <- task:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops accepting tasks and waits for queued ones to finish.
func (d *LocalDispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.tasks)
	}
	d.mu.Unlock()
	d.wg.Wait()
}
