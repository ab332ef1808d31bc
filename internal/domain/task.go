package domain

import (
	"strings"
	"time"
)

// TaskStatus is the lifecycle status of a Task. Transitions between
// statuses are unrestricted; archiving is a status, not a deletion.
type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskDone       TaskStatus = "done"
	TaskArchived   TaskStatus = "archived"
)

// TaskSource records where a task came from. Manual is the only source
// this daemon creates directly; jira-imported tasks (see internal/jira)
// reuse the same struct with Source set accordingly.
type TaskSource string

const (
	TaskSourceManual TaskSource = "manual"
	TaskSourceJira   TaskSource = "jira"
)

// Task is a unit of work within a profile.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Source      TaskSource `json:"source"`
	SourceID    *string    `json:"source_id,omitempty"`
	URL         *string    `json:"url,omitempty"`
	Status      TaskStatus `json:"status"`
	Tags        []string   `json:"tags"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func NewTask(title string) (*Task, error) {
	now := time.Now().UTC()
	t := &Task{
		ID:        NewID(),
		Title:     title,
		Source:    TaskSourceManual,
		Status:    TaskTodo,
		Tags:      []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return Validation("task title cannot be empty")
	}
	if strings.TrimSpace(t.ID) == "" {
		return Validation("task id cannot be empty")
	}
	if t.URL != nil && !isHTTPURL(*t.URL) {
		return Validation("task url must start with http:// or https://")
	}
	return nil
}

func isHTTPURL(u string) bool {
	return strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://")
}

func (t *Task) UpdateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return Validation("task title cannot be empty")
	}
	t.Title = title
	t.touch()
	return nil
}

func (t *Task) UpdateDescription(description *string) {
	t.Description = description
	t.touch()
}

func (t *Task) UpdateStatus(status TaskStatus) {
	t.Status = status
	t.touch()
}

func (t *Task) UpdateURL(url *string) error {
	if url != nil && !isHTTPURL(*url) {
		return Validation("task url must start with http:// or https://")
	}
	t.URL = url
	t.touch()
	return nil
}

func (t *Task) AddTag(tag string) {
	if !t.HasTag(tag) {
		t.Tags = append(t.Tags, tag)
		t.touch()
	}
}

func (t *Task) RemoveTag(tag string) {
	for i, existing := range t.Tags {
		if existing == tag {
			t.Tags = append(t.Tags[:i], t.Tags[i+1:]...)
			t.touch()
			return
		}
	}
}

func (t *Task) HasTag(tag string) bool {
	for _, existing := range t.Tags {
		if existing == tag {
			return true
		}
	}
	return false
}

func (t *Task) Start() {
	t.Status = TaskInProgress
	t.touch()
}

func (t *Task) Complete() {
	t.Status = TaskDone
	t.touch()
}

func (t *Task) IsCompleted() bool {
	return t.Status == TaskDone
}

func (t *Task) touch() {
	t.UpdatedAt = time.Now().UTC()
}

func (s TaskStatus) Label() string {
	switch s {
	case TaskTodo:
		return "To Do"
	case TaskInProgress:
		return "In Progress"
	case TaskDone:
		return "Done"
	case TaskArchived:
		return "Archived"
	default:
		return string(s)
	}
}
