package jobs

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

type ExpiredTokenPurger interface {
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

func PurgeExpiredTokens(ctx context.Context, p ExpiredTokenPurger) {
	removed, err := p.PurgeExpired(ctx, time.Now())
	if err != nil {
		log.Error().Err(err).Msg("purge expired tokens failed")
		return
	}
	if removed > 0 {
		log.Info().Int64("removed", removed).Msg("purged expired blacklisted tokens")
	}
}
