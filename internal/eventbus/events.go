// Package eventbus implements the daemon's process-wide broadcast of
// timer, task, entry, and profile events to every connected client.
package eventbus

import (
	"time"

	"github.com/mootimer/daemon/internal/domain"
)

// Event is implemented by every concrete event family. Category names the
// JSON-RPC notification method this event is forwarded as.
type Event interface {
	Category() string
}

// TimerEventType discriminates the timer event family.
type TimerEventType string

const (
	TimerStarted            TimerEventType = "started"
	TimerStopped             TimerEventType = "stopped"
	TimerPaused              TimerEventType = "paused"
	TimerResumed             TimerEventType = "resumed"
	TimerCancelled           TimerEventType = "cancelled"
	TimerTick                TimerEventType = "tick"
	TimerPhaseChanged        TimerEventType = "phase_changed"
	TimerPhaseCompleted      TimerEventType = "phase_completed"
	TimerCountdownCompleted  TimerEventType = "countdown_completed"
)

// TimerEvent is emitted throughout an ActiveTimer's lifecycle.
type TimerEvent struct {
	Type            TimerEventType    `json:"type"`
	ProfileID       string            `json:"profile_id"`
	TimerID         string            `json:"timer_id"`
	ElapsedSeconds  *int64            `json:"elapsed_seconds,omitempty"`
	RemainingSeconds *int64           `json:"remaining_seconds,omitempty"`
	Phase           *domain.PomodoroPhase `json:"phase,omitempty"`
	Session         *int32            `json:"session,omitempty"`
	DurationSeconds *int64            `json:"duration_seconds,omitempty"`
	Timestamp       time.Time         `json:"timestamp"`
}

func (TimerEvent) Category() string { return "timer.event" }

type TaskEventType string

const (
	TaskCreated TaskEventType = "created"
	TaskUpdated TaskEventType = "updated"
	TaskDeleted TaskEventType = "deleted"
)

type TaskEvent struct {
	Type      TaskEventType `json:"type"`
	ProfileID string        `json:"profile_id"`
	Task      *domain.Task  `json:"task,omitempty"`
	TaskID    *string       `json:"task_id,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

func (TaskEvent) Category() string { return "task.event" }

func TaskCreatedEvent(profileID string, task *domain.Task) TaskEvent {
	return TaskEvent{Type: TaskCreated, ProfileID: profileID, Task: task, Timestamp: time.Now().UTC()}
}

func TaskUpdatedEvent(profileID string, task *domain.Task) TaskEvent {
	return TaskEvent{Type: TaskUpdated, ProfileID: profileID, Task: task, Timestamp: time.Now().UTC()}
}

func TaskDeletedEvent(profileID, taskID string) TaskEvent {
	return TaskEvent{Type: TaskDeleted, ProfileID: profileID, TaskID: &taskID, Timestamp: time.Now().UTC()}
}

type EntryEventType string

const (
	EntryAdded   EntryEventType = "added"
	EntryUpdated EntryEventType = "updated"
	EntryDeleted EntryEventType = "deleted"
)

type EntryEvent struct {
	Type      EntryEventType `json:"type"`
	ProfileID string         `json:"profile_id"`
	Entry     *domain.Entry  `json:"entry,omitempty"`
	EntryID   *string        `json:"entry_id,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

func (EntryEvent) Category() string { return "entry.event" }

func EntryAddedEvent(profileID string, entry *domain.Entry) EntryEvent {
	return EntryEvent{Type: EntryAdded, ProfileID: profileID, Entry: entry, Timestamp: time.Now().UTC()}
}

func EntryUpdatedEvent(profileID string, entry *domain.Entry) EntryEvent {
	return EntryEvent{Type: EntryUpdated, ProfileID: profileID, Entry: entry, Timestamp: time.Now().UTC()}
}

func EntryDeletedEvent(profileID, entryID string) EntryEvent {
	return EntryEvent{Type: EntryDeleted, ProfileID: profileID, EntryID: &entryID, Timestamp: time.Now().UTC()}
}

type ProfileEventType string

const (
	ProfileCreated ProfileEventType = "created"
	ProfileUpdated ProfileEventType = "updated"
	ProfileDeleted ProfileEventType = "deleted"
)

type ProfileEvent struct {
	Type      ProfileEventType `json:"type"`
	Profile   *domain.Profile  `json:"profile,omitempty"`
	ProfileID *string          `json:"profile_id,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
}

func (ProfileEvent) Category() string { return "profile.event" }

func ProfileCreatedEvent(profile *domain.Profile) ProfileEvent {
	return ProfileEvent{Type: ProfileCreated, Profile: profile, Timestamp: time.Now().UTC()}
}

func ProfileUpdatedEvent(profile *domain.Profile) ProfileEvent {
	return ProfileEvent{Type: ProfileUpdated, Profile: profile, Timestamp: time.Now().UTC()}
}

func ProfileDeletedEvent(profileID string) ProfileEvent {
	return ProfileEvent{Type: ProfileDeleted, ProfileID: &profileID, Timestamp: time.Now().UTC()}
}
