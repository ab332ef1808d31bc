package rpc

import (
	"encoding/json"

	"github.com/mootimer/daemon/internal/domain"
)

type timerProfileParams struct {
	ProfileID string  `json:"profile_id"`
	TaskID    *string `json:"task_id,omitempty"`
}

func handleTimerStartManual(d *Deps, params json.RawMessage) (interface{}, error) {
	var p timerProfileParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	id, err := d.Timers.StartManual(p.ProfileID, p.TaskID)
	if err != nil {
		return nil, err
	}
	return map[string]string{"timer_id": id, "status": "started"}, nil
}

func handleTimerStartPomodoro(d *Deps, params json.RawMessage) (interface{}, error) {
	var p struct {
		timerProfileParams
		Config *domain.PomodoroConfig `json:"config,omitempty"`
	}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	cfg := d.Config.Get().Pomodoro
	if p.Config != nil {
		cfg = *p.Config
	}
	id, err := d.Timers.StartPomodoro(p.ProfileID, p.TaskID, cfg)
	if err != nil {
		return nil, err
	}
	return map[string]string{"timer_id": id, "status": "started"}, nil
}

func handleTimerStartCountdown(d *Deps, params json.RawMessage) (interface{}, error) {
	var p struct {
		timerProfileParams
		TargetSeconds   int64  `json:"target_seconds"`
		DurationMinutes *int64 `json:"duration_minutes,omitempty"`
	}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	target := p.TargetSeconds
	if p.DurationMinutes != nil {
		target = *p.DurationMinutes * 60
	}
	id, err := d.Timers.StartCountdown(p.ProfileID, p.TaskID, target)
	if err != nil {
		return nil, err
	}
	return map[string]string{"timer_id": id, "status": "started"}, nil
}

type profileIDParams struct {
	ProfileID string `json:"profile_id"`
}

func handleTimerPause(d *Deps, params json.RawMessage) (interface{}, error) {
	var p profileIDParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	return nil, d.Timers.Pause(p.ProfileID)
}

func handleTimerResume(d *Deps, params json.RawMessage) (interface{}, error) {
	var p profileIDParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	return nil, d.Timers.Resume(p.ProfileID)
}

// handleTimerStop runs the stop-time external-effect glue (SPEC_FULL.md
// §4.6): persist the entry, then best-effort auto-commit/push. Sync
// failures are logged by applySyncGlue and never fail the stop itself.
func handleTimerStop(d *Deps, params json.RawMessage) (interface{}, error) {
	var p profileIDParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	e, err := d.Timers.Stop(p.ProfileID)
	if err != nil {
		return nil, err
	}
	if err := d.Entries.Add(p.ProfileID, e); err != nil {
		return nil, err
	}
	applySyncGlue(d, p.ProfileID, e)
	return e, nil
}

func handleTimerCancel(d *Deps, params json.RawMessage) (interface{}, error) {
	var p profileIDParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	return nil, d.Timers.Cancel(p.ProfileID)
}

func handleTimerGet(d *Deps, params json.RawMessage) (interface{}, error) {
	var p struct {
		TimerID string `json:"timer_id"`
	}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	return d.Timers.Get(p.TimerID)
}

// handleTimerGetByProfile returns the profile's active timer, or a null
// result if it has none — not a domain error (SPEC_FULL.md §8 scenario 1;
// matches the backward-compatibility null return of the original
// get_by_profile implementation).
func handleTimerGetByProfile(d *Deps, params json.RawMessage) (interface{}, error) {
	var p profileIDParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	t := d.Timers.GetByProfile(p.ProfileID)
	if t == nil {
		return nil, nil
	}
	return t, nil
}

func handleTimerList(d *Deps, params json.RawMessage) (interface{}, error) {
	return d.Timers.List(), nil
}

func handleTimerListByProfile(d *Deps, params json.RawMessage) (interface{}, error) {
	var p profileIDParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	return d.Timers.ListByProfile(p.ProfileID), nil
}
