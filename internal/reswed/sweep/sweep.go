// Package sweep periodically drops expired entries from the KV store.
package sweep

import (
	"context"
	"time"

	"github.com/colonyops/reswed/internal/core/kv"
	"github.com/rs/zerolog/log"
)

// Start sweeps s every interval until ctx is cancelled. An initial sweep runs
// immediately so stale suggestions from earlier runs are dropped at startup.
func Start(ctx context.Context, s kv.Sweeper, interval time.Duration) {
	run := func() {
		n, err := s.SweepExpired(ctx)
		if err != nil {
			log.Debug().Err(err).Msg("kv sweep failed")
			return
		}
		if n > 0 {
			log.Debug().Int64("removed", n).Msg("kv sweep")
		}
	}

	run()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			run()
		}
	}
}
