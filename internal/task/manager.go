// Package task implements the task resource manager, grounded on
// original_source/crates/mootimer-core/src/task/manager.rs. Tasks are
// cached per profile and persisted as a single tasks.json document.
package task

import (
	"sort"
	"strings"
	"sync"

	"github.com/mootimer/daemon/internal/domain"
	"github.com/mootimer/daemon/internal/eventbus"
	"github.com/mootimer/daemon/internal/storage"
	"github.com/sahilm/fuzzy"
)

// fuzzySearchThreshold is the candidate count above which Search switches
// from a plain substring scan to ranked fuzzy matching.
const fuzzySearchThreshold = 25

// Manager owns the profile_id -> (task_id -> Task) cache.
type Manager struct {
	mu      sync.RWMutex
	cache   map[string]map[string]*domain.Task
	storage *storage.TaskStorage
	bus     *eventbus.Bus
}

func NewManager(store *storage.TaskStorage, bus *eventbus.Bus) *Manager {
	return &Manager{cache: make(map[string]map[string]*domain.Task), storage: store, bus: bus}
}

// ensureLoadedLocked lazily loads a profile's tasks.json into the cache the
// first time that profile is touched. The caller holds m.mu.
func (m *Manager) ensureLoadedLocked(profileID string) error {
	if _, ok := m.cache[profileID]; ok {
		return nil
	}
	tasks, err := m.storage.Load(profileID)
	if err != nil {
		return err
	}
	byID := make(map[string]*domain.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}
	m.cache[profileID] = byID
	return nil
}

func (m *Manager) persistLocked(profileID string) error {
	byID := m.cache[profileID]
	tasks := make([]*domain.Task, 0, len(byID))
	for _, t := range byID {
		tasks = append(tasks, t)
	}
	return m.storage.Save(profileID, tasks)
}

func (m *Manager) Create(profileID, title string) (*domain.Task, error) {
	t, err := domain.NewTask(title)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	if err := m.ensureLoadedLocked(profileID); err != nil {
		m.mu.Unlock()
		return nil, err
	}
	m.cache[profileID][t.ID] = t
	if err := m.persistLocked(profileID); err != nil {
		delete(m.cache[profileID], t.ID)
		m.mu.Unlock()
		return nil, err
	}
	m.mu.Unlock()

	m.bus.EmitTask(eventbus.TaskCreatedEvent(profileID, t))
	return t, nil
}

func (m *Manager) Get(profileID, taskID string) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.ensureLoadedLocked(profileID); err != nil {
		return nil, err
	}
	t, ok := m.cache[profileID][taskID]
	if !ok {
		return nil, domain.NotFound("task")
	}
	return t, nil
}

// TaskTitle implements timer.TaskTitleResolver.
func (m *Manager) TaskTitle(profileID, taskID string) (string, bool) {
	t, err := m.Get(profileID, taskID)
	if err != nil {
		return "", false
	}
	return t.Title, true
}

func (m *Manager) List(profileID string) ([]*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.ensureLoadedLocked(profileID); err != nil {
		return nil, err
	}
	out := make([]*domain.Task, 0, len(m.cache[profileID]))
	for _, t := range m.cache[profileID] {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *Manager) Update(profileID, taskID string, mutate func(*domain.Task) error) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensureLoadedLocked(profileID); err != nil {
		return nil, err
	}
	existing, ok := m.cache[profileID][taskID]
	if !ok {
		return nil, domain.NotFound("task")
	}
	updated := *existing
	updated.Tags = append([]string(nil), existing.Tags...)
	if err := mutate(&updated); err != nil {
		return nil, err
	}
	m.cache[profileID][taskID] = &updated
	if err := m.persistLocked(profileID); err != nil {
		m.cache[profileID][taskID] = existing
		return nil, err
	}

	m.bus.EmitTask(eventbus.TaskUpdatedEvent(profileID, &updated))
	return &updated, nil
}

func (m *Manager) UpdateTitle(profileID, taskID, title string) (*domain.Task, error) {
	return m.Update(profileID, taskID, func(t *domain.Task) error { return t.UpdateTitle(title) })
}

func (m *Manager) UpdateStatus(profileID, taskID string, status domain.TaskStatus) (*domain.Task, error) {
	return m.Update(profileID, taskID, func(t *domain.Task) error {
		t.UpdateStatus(status)
		return nil
	})
}

func (m *Manager) Delete(profileID, taskID string) error {
	m.mu.Lock()
	if err := m.ensureLoadedLocked(profileID); err != nil {
		m.mu.Unlock()
		return err
	}
	removed, ok := m.cache[profileID][taskID]
	if !ok {
		m.mu.Unlock()
		return domain.NotFound("task")
	}
	delete(m.cache[profileID], taskID)
	if err := m.persistLocked(profileID); err != nil {
		m.cache[profileID][taskID] = removed
		m.mu.Unlock()
		return err
	}
	m.mu.Unlock()

	m.bus.EmitTask(eventbus.TaskDeletedEvent(profileID, taskID))
	return nil
}

// Move relocates a task from one profile to another, preserving its id and
// history; it is a supplemented operation (see SPEC_FULL.md S1) absent from
// the original single-profile-at-a-time task manager.
func (m *Manager) Move(fromProfileID, taskID, toProfileID string) (*domain.Task, error) {
	m.mu.Lock()
	if err := m.ensureLoadedLocked(fromProfileID); err != nil {
		m.mu.Unlock()
		return nil, err
	}
	if err := m.ensureLoadedLocked(toProfileID); err != nil {
		m.mu.Unlock()
		return nil, err
	}
	t, ok := m.cache[fromProfileID][taskID]
	if !ok {
		m.mu.Unlock()
		return nil, domain.NotFound("task")
	}
	if _, exists := m.cache[toProfileID][taskID]; exists {
		m.mu.Unlock()
		return nil, domain.AlreadyExists("task")
	}

	delete(m.cache[fromProfileID], taskID)
	m.cache[toProfileID][taskID] = t
	if err := m.persistLocked(fromProfileID); err != nil {
		delete(m.cache[toProfileID], taskID)
		m.cache[fromProfileID][taskID] = t
		m.mu.Unlock()
		return nil, err
	}
	if err := m.persistLocked(toProfileID); err != nil {
		delete(m.cache[toProfileID], taskID)
		m.cache[fromProfileID][taskID] = t
		_ = m.persistLocked(fromProfileID)
		m.mu.Unlock()
		return nil, err
	}
	m.mu.Unlock()

	m.bus.EmitTask(eventbus.TaskDeletedEvent(fromProfileID, taskID))
	m.bus.EmitTask(eventbus.TaskCreatedEvent(toProfileID, t))
	return t, nil
}

// Search ranks a profile's tasks against query. Small candidate sets use a
// plain case-insensitive substring scan over title, description, and tags;
// larger ones use fuzzy ranking over the same combined text so typos and
// out-of-order fragments still surface relevant tasks.
func (m *Manager) Search(profileID, query string) ([]*domain.Task, error) {
	tasks, err := m.List(profileID)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return tasks, nil
	}

	if len(tasks) <= fuzzySearchThreshold {
		q := strings.ToLower(query)
		var out []*domain.Task
		for _, t := range tasks {
			if strings.Contains(searchableText(t), q) {
				out = append(out, t)
			}
		}
		return out, nil
	}

	matches := fuzzy.FindFrom(query, taskSearchFields(tasks))
	out := make([]*domain.Task, 0, len(matches))
	for _, match := range matches {
		out = append(out, tasks[match.Index])
	}
	return out, nil
}

// searchableText lowercases and concatenates the fields Search scans:
// title, description, and tags.
func searchableText(t *domain.Task) string {
	var b strings.Builder
	b.WriteString(t.Title)
	if t.Description != nil {
		b.WriteByte(' ')
		b.WriteString(*t.Description)
	}
	for _, tag := range t.Tags {
		b.WriteByte(' ')
		b.WriteString(tag)
	}
	return strings.ToLower(b.String())
}

type taskSearchFields []*domain.Task

func (t taskSearchFields) String(i int) string { return searchableText(t[i]) }
func (t taskSearchFields) Len() int            { return len(t) }
