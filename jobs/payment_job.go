package jobs

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// PendingReconciler re-verifies payments that stayed pending too long.
type PendingReconciler interface {
	ReconcilePending(ctx context.Context, olderThan time.Duration) (int, error)
}

// ReconcilePendingPayments catches payments whose guest never came back
// through the return URL.
func ReconcilePendingPayments(ctx context.Context, r PendingReconciler, olderThan time.Duration) {
	log.Debug().Msg("Running job: ReconcilePendingPayments")

	checked, err := r.ReconcilePending(ctx, olderThan)
	if err != nil {
		log.Error().Err(err).Msg("reconcile pending payments failed")
		return
	}
	if checked > 0 {
		log.Info().Int("checked", checked).Msg("reconciled pending payments")
	}
}
