package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReconciler struct {
	calls []time.Duration
	err   error
}

func (f *fakeReconciler) ReconcilePending(_ context.Context, olderThan time.Duration) (int, error) {
	f.calls = append(f.calls, olderThan)
	return 2, f.err
}

type fakePurger struct{ calls int }

func (f *fakePurger) PurgeExpired(context.Context, time.Time) (int64, error) {
	f.calls++
	return 1, nil
}

func TestReconcilePendingPayments(t *testing.T) {
	r := &fakeReconciler{}
	ReconcilePendingPayments(context.Background(), r, 15*time.Minute)
	assert.Equal(t, []time.Duration{15 * time.Minute}, r.calls)

	r.err = errors.New("db down")
	ReconcilePendingPayments(context.Background(), r, time.Minute)
	assert.Len(t, r.calls, 2)
}

func TestPurgeExpiredTokens(t *testing.T) {
	p := &fakePurger{}
	PurgeExpiredTokens(context.Background(), p)
	assert.Equal(t, 1, p.calls)
}

func TestNewScheduler(t *testing.T) {
	c, err := NewScheduler(context.Background(), Schedule{Reconcile: "*/10 * * * *", PendingAge: time.Minute}, &fakeReconciler{}, &fakePurger{})
	require.NoError(t, err)
	assert.Len(t, c.Entries(), 2)

	c, err = NewScheduler(context.Background(), Schedule{Reconcile: "*/10 * * * *"}, &fakeReconciler{}, nil)
	require.NoError(t, err)
	assert.Len(t, c.Entries(), 1)

	_, err = NewScheduler(context.Background(), Schedule{Reconcile: "not a schedule"}, &fakeReconciler{}, nil)
	assert.Error(t, err)
}
