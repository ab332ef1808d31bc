package domain

import (
	"fmt"
	"time"
)

// TimerMode selects the timing discipline an engine runs under.
type TimerMode string

const (
	ModeManual    TimerMode = "manual"
	ModePomodoro  TimerMode = "pomodoro"
	ModeCountdown TimerMode = "countdown"
)

// Entry is a completed or in-progress time record. EndTime is nil while
// the entry is still active (only engines produce entries with a nil
// EndTime transiently, in memory, before Stop fills it in).
type Entry struct {
	ID              string    `json:"id"`
	TaskID          *string   `json:"task_id,omitempty"`
	TaskTitle       *string   `json:"task_title,omitempty"`
	StartTime       time.Time `json:"start_time"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	DurationSeconds int64     `json:"duration_seconds"`
	Mode            TimerMode `json:"mode"`
	Description     *string   `json:"description,omitempty"`
	Tags            []string  `json:"tags"`
}

// NewEntry starts an active (unfinished) entry.
func NewEntry(taskID, taskTitle *string, mode TimerMode, start time.Time) *Entry {
	return &Entry{
		ID:        NewID(),
		TaskID:    taskID,
		TaskTitle: taskTitle,
		StartTime: start,
		Mode:      mode,
		Tags:      []string{},
	}
}

// CreateCompletedEntry builds an already-finished entry, validating that
// end strictly follows start and deriving DurationSeconds.
func CreateCompletedEntry(taskID, taskTitle *string, mode TimerMode, start, end time.Time, description *string, tags []string) (*Entry, error) {
	if !end.After(start) {
		return nil, Validation("entry end_time must be after start_time")
	}
	if tags == nil {
		tags = []string{}
	}
	e := &Entry{
		ID:              NewID(),
		TaskID:          taskID,
		TaskTitle:       taskTitle,
		StartTime:       start,
		EndTime:         &end,
		DurationSeconds: durationSeconds(start, end),
		Mode:            mode,
		Description:     description,
		Tags:            tags,
	}
	return e, nil
}

func durationSeconds(start, end time.Time) int64 {
	d := end.Sub(start)
	secs := int64(d / time.Second)
	if secs < 0 {
		return 0
	}
	return secs
}

// Finish completes an active entry at the given time.
func (e *Entry) Finish(at time.Time) error {
	if !at.After(e.StartTime) {
		return Validation("entry end_time must be after start_time")
	}
	e.EndTime = &at
	e.DurationSeconds = durationSeconds(e.StartTime, at)
	return nil
}

func (e *Entry) IsActive() bool { return e.EndTime == nil }
func (e *Entry) IsCompleted() bool { return e.EndTime != nil }

func (e *Entry) Validate() error {
	if e.EndTime != nil && !e.EndTime.After(e.StartTime) {
		return Validation("entry end_time must be after start_time")
	}
	return nil
}

// DurationFormatted renders DurationSeconds as HH:MM:SS.
func (e *Entry) DurationFormatted() string {
	total := e.DurationSeconds
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// DurationMinutes rounds DurationSeconds to the nearest minute.
func (e *Entry) DurationMinutes() int64 {
	return (e.DurationSeconds + 30) / 60
}

// DurationHours rounds DurationSeconds to hours, two decimal places.
func (e *Entry) DurationHours() float64 {
	hours := float64(e.DurationSeconds) / 3600.0
	return float64(int(hours*100+0.5)) / 100.0
}

func (e *Entry) AddTag(tag string) {
	for _, existing := range e.Tags {
		if existing == tag {
			return
		}
	}
	e.Tags = append(e.Tags, tag)
}

func (e *Entry) RemoveTag(tag string) {
	for i, existing := range e.Tags {
		if existing == tag {
			e.Tags = append(e.Tags[:i], e.Tags[i+1:]...)
			return
		}
	}
}

func (e *Entry) HasTag(tag string) bool {
	for _, existing := range e.Tags {
		if existing == tag {
			return true
		}
	}
	return false
}
