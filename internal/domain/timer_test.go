package domain

import (
	"testing"
	"time"
)

func TestNextPhaseCycle(t *testing.T) {
	cfg := PomodoroConfig{
		WorkDuration:           1,
		ShortBreak:             1,
		LongBreak:              1,
		SessionsUntilLongBreak: 2,
	}
	now := time.Now().UTC()
	state := NewPomodoroState(cfg, now)
	var accumulated int64

	type step struct {
		phase   PomodoroPhase
		session int32
	}
	want := []step{
		{PhaseShortBreak, 1},
		{PhaseWork, 2},
		{PhaseLongBreak, 2},
		{PhaseWork, 1},
	}

	for i, w := range want {
		state.NextPhase(&accumulated, now.Add(time.Duration(i+1)*time.Second))
		if state.Phase != w.phase {
			t.Fatalf("step %d: phase = %v, want %v", i, state.Phase, w.phase)
		}
		if state.CurrentSession != w.session {
			t.Fatalf("step %d: session = %d, want %d", i, state.CurrentSession, w.session)
		}
	}
}

func TestCurrentElapsedManualRunning(t *testing.T) {
	start := time.Now().UTC().Add(-5 * time.Second)
	timer := NewManualTimer("t1", "p1", nil, nil, start)
	elapsed := timer.CurrentElapsed(start.Add(5 * time.Second))
	if elapsed != 5 {
		t.Fatalf("elapsed = %d, want 5", elapsed)
	}
}

func TestPauseResumeShiftsStart(t *testing.T) {
	start := time.Now().UTC()
	timer := NewManualTimer("t1", "p1", nil, nil, start)

	pauseAt := start.Add(3 * time.Second)
	if err := timer.Pause(pauseAt); err != nil {
		t.Fatalf("pause: %v", err)
	}
	if timer.State != StatePaused {
		t.Fatalf("state = %v, want paused", timer.State)
	}
	if timer.PauseTime == nil {
		t.Fatal("pause_time must be set while paused")
	}

	resumeAt := pauseAt.Add(10 * time.Second)
	if err := timer.Resume(resumeAt); err != nil {
		t.Fatalf("resume: %v", err)
	}
	if timer.State != StateRunning {
		t.Fatalf("state = %v, want running", timer.State)
	}
	if timer.PauseTime != nil {
		t.Fatal("pause_time must be nil while running")
	}

	// 3s elapsed before pause, 10s paused (should not count), then 2s after resume.
	elapsed := timer.CurrentElapsed(resumeAt.Add(2 * time.Second))
	if elapsed != 5 {
		t.Fatalf("elapsed = %d, want 5 (pause delay must not count)", elapsed)
	}
}

func TestPauseWhileNotRunningFails(t *testing.T) {
	timer := NewManualTimer("t1", "p1", nil, nil, time.Now().UTC())
	timer.State = StateStopped
	if err := timer.Pause(time.Now().UTC()); err == nil {
		t.Fatal("expected error pausing a stopped timer")
	}
}

func TestStopFreezesElapsed(t *testing.T) {
	start := time.Now().UTC()
	timer := NewManualTimer("t1", "p1", nil, nil, start)
	stopAt := start.Add(7 * time.Second)
	timer.Stop(stopAt)
	if timer.State != StateStopped {
		t.Fatalf("state = %v, want stopped", timer.State)
	}
	if timer.ElapsedSeconds != 7 {
		t.Fatalf("elapsed_seconds = %d, want 7", timer.ElapsedSeconds)
	}
	// Elapsed must stay frozen regardless of "now" moving on.
	if got := timer.CurrentElapsed(stopAt.Add(time.Hour)); got != 7 {
		t.Fatalf("elapsed after stop = %d, want 7", got)
	}
}

func TestCountdownRemaining(t *testing.T) {
	start := time.Now().UTC()
	timer := NewCountdownTimer("t1", "p1", nil, nil, 60, start)
	remaining := timer.RemainingSeconds(start.Add(45 * time.Second))
	if remaining == nil || *remaining != 15 {
		t.Fatalf("remaining = %v, want 15", remaining)
	}
}

func TestPomodoroElapsedSumsAccumulatedAndPhase(t *testing.T) {
	start := time.Now().UTC()
	cfg := PomodoroConfig{WorkDuration: 25 * 60, ShortBreak: 5 * 60, LongBreak: 15 * 60, SessionsUntilLongBreak: 4}
	timer := NewPomodoroTimer("t1", "p1", nil, nil, cfg, start)
	timer.AccumulatedWorkTime = 100

	elapsed := timer.CurrentElapsed(start.Add(10 * time.Second))
	if elapsed != 110 {
		t.Fatalf("elapsed = %d, want 110", elapsed)
	}
}
