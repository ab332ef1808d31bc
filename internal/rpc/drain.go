package rpc

import (
	"context"
	"log/slog"
	"time"
)

const drainInterval = 500 * time.Millisecond

// RunDrainWorker persists countdown-completed entries the timer manager
// accumulates in the background (SPEC_FULL.md §4.7) and runs the same
// sync glue as an explicit timer.stop. It never returns except on ctx
// cancellation, matching the daemon's other long-lived goroutines.
func RunDrainWorker(ctx context.Context, deps *Deps) {
	ticker := time.NewTicker(drainInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			drainOnce(deps)
		}
	}
}

func drainOnce(deps *Deps) {
	for _, c := range deps.Timers.TakeCompletedEntries() {
		if err := deps.Entries.Add(c.ProfileID, c.Entry); err != nil {
			slog.Error("drain: failed to persist completed entry", "profile_id", c.ProfileID, "error", err)
			continue
		}
		applySyncGlue(deps, c.ProfileID, c.Entry)
	}
}
