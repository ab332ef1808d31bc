package domain

import "time"

// TimerState is the run state of an ActiveTimer.
type TimerState string

const (
	StateRunning TimerState = "running"
	StatePaused  TimerState = "paused"
	StateStopped TimerState = "stopped"
)

// PomodoroPhase is a pomodoro sub-state.
type PomodoroPhase string

const (
	PhaseWork       PomodoroPhase = "work"
	PhaseShortBreak PomodoroPhase = "short_break"
	PhaseLongBreak  PomodoroPhase = "long_break"
)

func (p PomodoroPhase) IsWork() bool  { return p == PhaseWork }
func (p PomodoroPhase) IsBreak() bool { return p == PhaseShortBreak || p == PhaseLongBreak }

// PomodoroConfig holds the durations (in seconds) governing phase length
// and how many work sessions precede a long break.
type PomodoroConfig struct {
	WorkDuration           int64 `json:"work_duration"`
	ShortBreak             int64 `json:"short_break"`
	LongBreak              int64 `json:"long_break"`
	SessionsUntilLongBreak int32 `json:"sessions_until_long_break"`
}

func DefaultPomodoroConfig() PomodoroConfig {
	return PomodoroConfig{
		WorkDuration:           25 * 60,
		ShortBreak:             5 * 60,
		LongBreak:              15 * 60,
		SessionsUntilLongBreak: 4,
	}
}

func (c PomodoroConfig) Validate() error {
	if c.WorkDuration <= 0 {
		return Validation("work duration must be greater than 0")
	}
	if c.ShortBreak <= 0 {
		return Validation("short break duration must be greater than 0")
	}
	if c.LongBreak <= 0 {
		return Validation("long break duration must be greater than 0")
	}
	if c.SessionsUntilLongBreak <= 0 {
		return Validation("sessions until long break must be greater than 0")
	}
	const maxDuration = 7200
	if c.WorkDuration > maxDuration || c.ShortBreak > maxDuration || c.LongBreak > maxDuration {
		return Validation("pomodoro durations must not exceed 7200 seconds")
	}
	return nil
}

// Duration returns the configured length of the given phase.
func (c PomodoroConfig) Duration(phase PomodoroPhase) int64 {
	switch phase {
	case PhaseWork:
		return c.WorkDuration
	case PhaseShortBreak:
		return c.ShortBreak
	case PhaseLongBreak:
		return c.LongBreak
	default:
		return 0
	}
}

// PomodoroState tracks the phase machine for a pomodoro timer.
type PomodoroState struct {
	Config          PomodoroConfig `json:"config"`
	CurrentSession  int32          `json:"current_session"`
	Phase           PomodoroPhase  `json:"phase"`
	PhaseStartTime  time.Time      `json:"phase_start_time"`
}

func NewPomodoroState(cfg PomodoroConfig, now time.Time) *PomodoroState {
	return &PomodoroState{
		Config:         cfg,
		CurrentSession: 1,
		Phase:          PhaseWork,
		PhaseStartTime: now,
	}
}

// currentPhaseElapsed returns the elapsed time in the current phase, using
// end as "now" (the caller passes pauseTime while paused).
func (s *PomodoroState) currentPhaseElapsed(end time.Time) int64 {
	d := end.Sub(s.PhaseStartTime)
	secs := int64(d / time.Second)
	if secs < 0 {
		return 0
	}
	return secs
}

// RemainingSeconds returns the time left in the current phase, or -1 if
// not applicable (never, since PomodoroState always has a current phase).
func (s *PomodoroState) RemainingSeconds(now time.Time) int64 {
	remaining := s.Config.Duration(s.Phase) - s.currentPhaseElapsed(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (s *PomodoroState) IsPhaseComplete(now time.Time) bool {
	return s.RemainingSeconds(now) == 0
}

// NextPhase advances the phase machine by exactly one transition. On
// leaving a work phase it adds the *configured* (not actual elapsed) work
// duration to accumulatedWorkTime — this is deliberate: see SPEC_FULL.md
// §9, the pomodoro totals are idealized against the configured duration.
func (s *PomodoroState) NextPhase(accumulatedWorkTime *int64, now time.Time) {
	if s.Phase.IsWork() {
		*accumulatedWorkTime += s.Config.WorkDuration
	}

	switch s.Phase {
	case PhaseWork:
		if s.CurrentSession < s.Config.SessionsUntilLongBreak {
			s.Phase = PhaseShortBreak
		} else {
			s.Phase = PhaseLongBreak
		}
	case PhaseShortBreak:
		s.Phase = PhaseWork
		s.CurrentSession++
	case PhaseLongBreak:
		s.Phase = PhaseWork
		s.CurrentSession = 1
	}
	s.PhaseStartTime = now
}

// ActiveTimer is the runtime state of one timer, owned exclusively by the
// timer manager's registry.
type ActiveTimer struct {
	ID                  string         `json:"id"`
	ProfileID           string         `json:"profile_id"`
	TaskID              *string        `json:"task_id,omitempty"`
	TaskTitle           *string        `json:"task_title,omitempty"`
	Mode                TimerMode      `json:"mode"`
	State               TimerState     `json:"state"`
	StartTime           time.Time      `json:"start_time"`
	PauseTime           *time.Time     `json:"pause_time,omitempty"`
	ElapsedSeconds      int64          `json:"elapsed_seconds"`
	AccumulatedWorkTime int64          `json:"accumulated_work_time"`
	PomodoroState       *PomodoroState `json:"pomodoro_state,omitempty"`
	TargetDuration      *int64         `json:"target_duration,omitempty"`
}

func newActiveTimer(id string, profileID string, taskID, taskTitle *string, mode TimerMode, now time.Time) *ActiveTimer {
	return &ActiveTimer{
		ID:        id,
		ProfileID: profileID,
		TaskID:    taskID,
		TaskTitle: taskTitle,
		Mode:      mode,
		State:     StateRunning,
		StartTime: now,
	}
}

func NewManualTimer(id, profileID string, taskID, taskTitle *string, now time.Time) *ActiveTimer {
	return newActiveTimer(id, profileID, taskID, taskTitle, ModeManual, now)
}

func NewPomodoroTimer(id, profileID string, taskID, taskTitle *string, cfg PomodoroConfig, now time.Time) *ActiveTimer {
	t := newActiveTimer(id, profileID, taskID, taskTitle, ModePomodoro, now)
	t.PomodoroState = NewPomodoroState(cfg, now)
	return t
}

func NewCountdownTimer(id, profileID string, taskID, taskTitle *string, targetSeconds int64, now time.Time) *ActiveTimer {
	t := newActiveTimer(id, profileID, taskID, taskTitle, ModeCountdown, now)
	t.TargetDuration = &targetSeconds
	return t
}

// CurrentElapsed derives the authoritative elapsed time as of now.
func (t *ActiveTimer) CurrentElapsed(now time.Time) int64 {
	if t.Mode == ModePomodoro {
		if t.PomodoroState != nil && t.PomodoroState.Phase.IsWork() && t.State != StateStopped {
			end := now
			if t.State == StatePaused && t.PauseTime != nil {
				end = *t.PauseTime
			}
			return t.AccumulatedWorkTime + t.PomodoroState.currentPhaseElapsed(end)
		}
		return t.AccumulatedWorkTime
	}

	switch t.State {
	case StateRunning:
		return clampNonNegative(now.Sub(t.StartTime))
	case StatePaused:
		if t.PauseTime == nil {
			return t.ElapsedSeconds
		}
		return clampNonNegative(t.PauseTime.Sub(t.StartTime))
	default: // stopped
		return t.ElapsedSeconds
	}
}

func clampNonNegative(d time.Duration) int64 {
	secs := int64(d / time.Second)
	if secs < 0 {
		return 0
	}
	return secs
}

// RemainingSeconds returns the countdown's remaining seconds, or nil if
// this timer is not a countdown.
func (t *ActiveTimer) RemainingSeconds(now time.Time) *int64 {
	if t.Mode != ModeCountdown || t.TargetDuration == nil {
		return nil
	}
	remaining := *t.TargetDuration - t.CurrentElapsed(now)
	if remaining < 0 {
		remaining = 0
	}
	return &remaining
}

func (t *ActiveTimer) Pause(now time.Time) error {
	if t.State != StateRunning {
		return InvalidState("cannot pause a timer that is not running")
	}
	t.PauseTime = &now
	t.State = StatePaused
	return nil
}

func (t *ActiveTimer) Resume(now time.Time) error {
	if t.State != StatePaused {
		return InvalidState("cannot resume a timer that is not paused")
	}
	if t.PauseTime == nil {
		return InvalidState("paused timer is missing a pause time")
	}
	delta := now.Sub(*t.PauseTime)
	t.StartTime = t.StartTime.Add(delta)
	if t.PomodoroState != nil {
		t.PomodoroState.PhaseStartTime = t.PomodoroState.PhaseStartTime.Add(delta)
	}
	t.PauseTime = nil
	t.State = StateRunning
	return nil
}

func (t *ActiveTimer) Stop(now time.Time) {
	t.ElapsedSeconds = t.CurrentElapsed(now)
	t.State = StateStopped
}
