package rpc

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/mootimer/daemon/internal/domain"
)

// applySyncGlue runs the auto-commit/auto-push side effect shared by
// timer.stop and the drain worker (SPEC_FULL.md §4.6/§4.7). Failures here
// are warnings: the entry is already persisted, so the caller's primary
// operation has already succeeded.
func applySyncGlue(d *Deps, profileID string, e *domain.Entry) {
	if d.Syncer == nil {
		return
	}
	cfg := d.Config.Get().Sync

	if cfg.AutoCommit {
		if !d.Syncer.IsInitialized() {
			if err := d.Syncer.Init(); err != nil {
				slog.Warn("sync: init failed", "profile_id", profileID, "error", err)
				return
			}
		}
		msg := commitMessage(e)
		if _, err := d.Syncer.AutoCommit(msg); err != nil {
			slog.Warn("sync: auto-commit failed", "profile_id", profileID, "error", err)
		}
	}

	if cfg.AutoPush && cfg.RemoteURL != nil {
		if _, err := d.Syncer.Sync(cfg); err != nil {
			slog.Warn("sync: auto-push failed", "profile_id", profileID, "error", err)
		}
	}
}

func commitMessage(e *domain.Entry) string {
	task := "no task"
	if e.TaskID != nil {
		task = *e.TaskID
	}
	minutes := e.DurationMinutes()
	return fmt.Sprintf("mootimer: %s (%dm) at %s", task, minutes, time.Now().Local().Format("15:04"))
}
