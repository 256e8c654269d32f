package testutil

import (
	"context"
	"sync"

	"github.com/anjiri1684/alx_travel/notifications"
)

// RecordingDispatcher keeps every dispatched task in order.
type RecordingDispatcher struct {
	mu    sync.Mutex
	tasks []notifications.Task
	Err   error
	// OnDispatch, when set, runs before the task is recorded.
	OnDispatch func(notifications.Task)
}

func (d *RecordingDispatcher) Dispatch(_ context.Context, task notifications.Task) error {
	if d.OnDispatch != nil {
		d.OnDispatch(task)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.Err != nil {
		return d.Err
	}
	d.tasks = append(d.tasks, task)
	return nil
}

func (d *RecordingDispatcher) Tasks() []notifications.Task {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]notifications.Task(nil), d.tasks...)
}

func (d *RecordingDispatcher) Named(name string) []notifications.Task {
	var out []notifications.Task
	for _, t := range d.Tasks() {
		if t.Name == name {
			out = append(out, t)
		}
	}
	return out
}

// RecordingMailer keeps every message instead of sending it.
type RecordingMailer struct {
	mu       sync.Mutex
	messages []notifications.Message
	Err      error
}

func (m *RecordingMailer) Send(_ context.Context, msg notifications.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.messages = append(m.messages, msg)
	return nil
}

func (m *RecordingMailer) Messages() []notifications.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]notifications.Message(nil), m.messages...)
}
