// Package timer implements the per-profile timer engine and the manager
// that owns its registry — grounded on
// original_source/crates/mootimer-daemon/src/timer/{engine,manager}.rs.
package timer

import (
	"context"
	"sync"
	"time"

	"github.com/mootimer/daemon/internal/domain"
	"github.com/mootimer/daemon/internal/eventbus"
)

const tickInterval = time.Second

// Engine owns one ActiveTimer and the goroutine that ticks it forward.
type Engine struct {
	mu       sync.RWMutex
	timer    *domain.ActiveTimer
	bus      *eventbus.Bus
	ctx      context.Context
	cancelFn context.CancelFunc
}

func newEngine(t *domain.ActiveTimer, bus *eventbus.Bus) *Engine {
	ctx, cancel := context.WithCancel(context.Background())
	return &Engine{timer: t, bus: bus, ctx: ctx, cancelFn: cancel}
}

func NewManualEngine(bus *eventbus.Bus, id, profileID string, taskID, taskTitle *string) *Engine {
	t := domain.NewManualTimer(id, profileID, taskID, taskTitle, time.Now().UTC())
	return newEngine(t, bus)
}

func NewPomodoroEngine(bus *eventbus.Bus, id, profileID string, taskID, taskTitle *string, cfg domain.PomodoroConfig) *Engine {
	t := domain.NewPomodoroTimer(id, profileID, taskID, taskTitle, cfg, time.Now().UTC())
	return newEngine(t, bus)
}

func NewCountdownEngine(bus *eventbus.Bus, id, profileID string, taskID, taskTitle *string, targetSeconds int64) *Engine {
	t := domain.NewCountdownTimer(id, profileID, taskID, taskTitle, targetSeconds, time.Now().UTC())
	return newEngine(t, bus)
}

func (e *Engine) ID() string        { return e.timer.ID }
func (e *Engine) ProfileID() string { return e.timer.ProfileID }

// Snapshot returns a detached copy of the timer with ElapsedSeconds filled
// from CurrentElapsed, safe to hand to a caller outside the engine's lock.
func (e *Engine) Snapshot() *domain.ActiveTimer {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.copyLocked(time.Now().UTC())
}

func (e *Engine) copyLocked(now time.Time) *domain.ActiveTimer {
	cp := *e.timer
	cp.ElapsedSeconds = e.timer.CurrentElapsed(now)
	if e.timer.PauseTime != nil {
		pt := *e.timer.PauseTime
		cp.PauseTime = &pt
	}
	if e.timer.PomodoroState != nil {
		ps := *e.timer.PomodoroState
		cp.PomodoroState = &ps
	}
	if e.timer.TargetDuration != nil {
		td := *e.timer.TargetDuration
		cp.TargetDuration = &td
	}
	return &cp
}

func (e *Engine) Pause() error {
	e.mu.Lock()
	now := time.Now().UTC()
	if err := e.timer.Pause(now); err != nil {
		e.mu.Unlock()
		return err
	}
	elapsed := e.timer.CurrentElapsed(now)
	profileID, timerID := e.timer.ProfileID, e.timer.ID
	e.mu.Unlock()

	e.bus.EmitTimer(eventbus.TimerEvent{
		Type: eventbus.TimerPaused, ProfileID: profileID, TimerID: timerID,
		ElapsedSeconds: &elapsed, Timestamp: now,
	})
	return nil
}

func (e *Engine) Resume() error {
	e.mu.Lock()
	now := time.Now().UTC()
	if err := e.timer.Resume(now); err != nil {
		e.mu.Unlock()
		return err
	}
	profileID, timerID := e.timer.ProfileID, e.timer.ID
	e.mu.Unlock()

	e.bus.EmitTimer(eventbus.TimerEvent{
		Type: eventbus.TimerResumed, ProfileID: profileID, TimerID: timerID, Timestamp: now,
	})
	return nil
}

// Stop freezes the timer and synthesizes the completed Entry for it.
// Stopping the tick goroutine is best-effort: the entry is returned
// regardless of whether the goroutine has noticed yet.
func (e *Engine) Stop() (*domain.Entry, error) {
	e.mu.Lock()
	if e.timer.State == domain.StateStopped {
		e.mu.Unlock()
		return nil, domain.InvalidState("cannot stop a timer that is already stopped")
	}
	now := time.Now().UTC()
	start, taskID, taskTitle, mode := e.timer.StartTime, e.timer.TaskID, e.timer.TaskTitle, e.timer.Mode
	e.timer.Stop(now)
	duration := e.timer.ElapsedSeconds
	profileID, timerID := e.timer.ProfileID, e.timer.ID
	e.mu.Unlock()
	e.cancelFn()

	entry, err := domain.CreateCompletedEntry(taskID, taskTitle, mode, start, now, nil, nil)
	if err != nil {
		return nil, err
	}

	e.bus.EmitTimer(eventbus.TimerEvent{
		Type: eventbus.TimerStopped, ProfileID: profileID, TimerID: timerID,
		DurationSeconds: &duration, Timestamp: now,
	})
	return entry, nil
}

// Cancel discards the timer without producing an entry.
func (e *Engine) Cancel() error {
	e.mu.Lock()
	if e.timer.State == domain.StateStopped {
		e.mu.Unlock()
		return domain.InvalidState("cannot cancel a timer that is already stopped")
	}
	now := time.Now().UTC()
	e.timer.Stop(now)
	profileID, timerID := e.timer.ProfileID, e.timer.ID
	e.mu.Unlock()
	e.cancelFn()

	e.bus.EmitTimer(eventbus.TimerEvent{
		Type: eventbus.TimerCancelled, ProfileID: profileID, TimerID: timerID, Timestamp: now,
	})
	return nil
}

// RunTicks is the engine's tick loop; the caller spawns it as a goroutine.
// onCountdownComplete is invoked (without the engine's lock held) after the
// loop has frozen the timer into the stopped state following countdown
// auto-completion — it is the manager's hook to drain a completed entry.
func (e *Engine) RunTicks(onCountdownComplete func()) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-e.ctx.Done():
			return
		case <-ticker.C:
			if done := e.tick(onCountdownComplete); done {
				return
			}
		}
	}
}

// tick runs one iteration; it returns true when the loop should exit.
func (e *Engine) tick(onCountdownComplete func()) bool {
	e.mu.Lock()

	if e.timer.State != domain.StateRunning {
		e.mu.Unlock()
		return false
	}

	now := time.Now().UTC()
	elapsed := e.timer.CurrentElapsed(now)
	profileID, timerID := e.timer.ProfileID, e.timer.ID

	var remaining *int64
	switch {
	case e.timer.Mode == domain.ModeCountdown:
		remaining = e.timer.RemainingSeconds(now)
	case e.timer.PomodoroState != nil:
		r := e.timer.PomodoroState.RemainingSeconds(now)
		remaining = &r
	}

	e.mu.Unlock()
	e.bus.EmitTimer(eventbus.TimerEvent{
		Type: eventbus.TimerTick, ProfileID: profileID, TimerID: timerID,
		ElapsedSeconds: &elapsed, RemainingSeconds: remaining, Timestamp: now,
	})
	e.mu.Lock()

	if e.timer.Mode == domain.ModePomodoro && e.timer.PomodoroState != nil && e.timer.PomodoroState.IsPhaseComplete(now) {
		completedPhase := e.timer.PomodoroState.Phase
		session := e.timer.PomodoroState.CurrentSession
		e.mu.Unlock()
		e.bus.EmitTimer(eventbus.TimerEvent{
			Type: eventbus.TimerPhaseCompleted, ProfileID: profileID, TimerID: timerID,
			Phase: &completedPhase, Session: &session, Timestamp: now,
		})
		e.mu.Lock()
		e.timer.PomodoroState.NextPhase(&e.timer.AccumulatedWorkTime, now)
		newPhase := e.timer.PomodoroState.Phase
		newSession := e.timer.PomodoroState.CurrentSession
		e.mu.Unlock()
		e.bus.EmitTimer(eventbus.TimerEvent{
			Type: eventbus.TimerPhaseChanged, ProfileID: profileID, TimerID: timerID,
			Phase: &newPhase, Session: &newSession, Timestamp: now,
		})
		e.mu.Lock()
	}

	if e.timer.Mode == domain.ModeCountdown && e.timer.TargetDuration != nil && e.timer.CurrentElapsed(now) >= *e.timer.TargetDuration {
		e.timer.Stop(now)
		duration := e.timer.ElapsedSeconds
		e.mu.Unlock()

		e.bus.EmitTimer(eventbus.TimerEvent{
			Type: eventbus.TimerCountdownCompleted, ProfileID: profileID, TimerID: timerID, Timestamp: now,
		})
		e.bus.EmitTimer(eventbus.TimerEvent{
			Type: eventbus.TimerStopped, ProfileID: profileID, TimerID: timerID,
			DurationSeconds: &duration, Timestamp: now,
		})
		if onCountdownComplete != nil {
			onCountdownComplete()
		}
		return true
	}

	e.mu.Unlock()
	return false
}
