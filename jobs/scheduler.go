package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

type Schedule struct {
	Reconcile  string
	PendingAge time.Duration
}

// NewScheduler registers the periodic jobs. purger may be nil when the
// blacklist lives in Redis, which expires entries itself.
func NewScheduler(ctx context.Context, s Schedule, reconciler PendingReconciler, purger ExpiredTokenPurger) (*cron.Cron, error) {
	c := cron.New()

	if _, err := c.AddFunc(s.Reconcile, func() {
		ReconcilePendingPayments(ctx, reconciler, s.PendingAge)
	}); err != nil {
		return nil, fmt.Errorf("schedule payment reconciliation %q: %w", s.Reconcile, err)
	}

	if purger != nil {
		if _, err := c.AddFunc("@hourly", func() {
			PurgeExpiredTokens(ctx, purger)
		}); err != nil {
			return nil, fmt.Errorf("schedule token purge: %w", err)
		}
	}
	return c, nil
}
