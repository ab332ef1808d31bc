// Package entry implements the entry resource manager, grounded on
// original_source/crates/mootimer-core/src/entry/manager.rs. Entries are
// cached per profile as a slice (ordering is append order), backed by the
// append-only entries.csv log.
package entry

import (
	"sort"
	"sync"
	"time"

	"github.com/mootimer/daemon/internal/domain"
	"github.com/mootimer/daemon/internal/eventbus"
	"github.com/mootimer/daemon/internal/storage"
)

// Manager owns the profile_id -> []Entry cache.
type Manager struct {
	mu      sync.RWMutex
	cache   map[string][]*domain.Entry
	storage *storage.EntryStorage
	bus     *eventbus.Bus
}

func NewManager(store *storage.EntryStorage, bus *eventbus.Bus) *Manager {
	return &Manager{cache: make(map[string][]*domain.Entry), storage: store, bus: bus}
}

func (m *Manager) ensureLoadedLocked(profileID string) error {
	if _, ok := m.cache[profileID]; ok {
		return nil
	}
	entries, err := m.storage.Load(profileID)
	if err != nil {
		return err
	}
	m.cache[profileID] = entries
	return nil
}

// Add appends an already-completed entry (the normal path: an engine's
// Stop produced it) to profileID's log.
func (m *Manager) Add(profileID string, e *domain.Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	if err := m.ensureLoadedLocked(profileID); err != nil {
		m.mu.Unlock()
		return err
	}
	if err := m.storage.Append(profileID, e); err != nil {
		m.mu.Unlock()
		return err
	}
	m.cache[profileID] = append(m.cache[profileID], e)
	m.mu.Unlock()

	m.bus.EmitEntry(eventbus.EntryAddedEvent(profileID, e))
	return nil
}

// Create back-fills a manual entry for a time range that was never tracked
// live; a supplemented operation (SPEC_FULL.md S1) absent from the engine-
// driven entry path.
func (m *Manager) Create(profileID string, taskID, taskTitle *string, mode domain.TimerMode, start, end time.Time, description *string, tags []string) (*domain.Entry, error) {
	e, err := domain.CreateCompletedEntry(taskID, taskTitle, mode, start, end, description, tags)
	if err != nil {
		return nil, err
	}
	if err := m.Add(profileID, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (m *Manager) List(profileID string) ([]*domain.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.ensureLoadedLocked(profileID); err != nil {
		return nil, err
	}
	out := make([]*domain.Entry, len(m.cache[profileID]))
	copy(out, m.cache[profileID])
	return out, nil
}

// Filter narrows a profile's entries by the given criteria. Any zero-value
// field in the filter is ignored.
type Filter struct {
	StartDate *time.Time
	EndDate   *time.Time
	TaskID    *string
	Tags      []string
}

func (m *Manager) Filtered(profileID string, f Filter) ([]*domain.Entry, error) {
	all, err := m.List(profileID)
	if err != nil {
		return nil, err
	}
	return applyFilter(all, f), nil
}

func applyFilter(entries []*domain.Entry, f Filter) []*domain.Entry {
	var out []*domain.Entry
	for _, e := range entries {
		if f.StartDate != nil && e.StartTime.Before(*f.StartDate) {
			continue
		}
		if f.EndDate != nil && e.StartTime.After(*f.EndDate) {
			continue
		}
		if f.TaskID != nil {
			if e.TaskID == nil || *e.TaskID != *f.TaskID {
				continue
			}
		}
		if len(f.Tags) > 0 {
			matched := false
			for _, tag := range f.Tags {
				if e.HasTag(tag) {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
		}
		out = append(out, e)
	}
	return out
}

// Today returns profileID's entries whose start falls within the current
// UTC calendar day.
func (m *Manager) Today(profileID string) ([]*domain.Entry, error) {
	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)
	return m.Filtered(profileID, Filter{StartDate: &start, EndDate: &end})
}

// Week returns profileID's entries within the current ISO week (Monday
// through Sunday, UTC).
func (m *Manager) Week(profileID string) ([]*domain.Entry, error) {
	now := time.Now().UTC()
	weekday := int(now.Weekday())
	if weekday == 0 {
		weekday = 7 // ISO: Sunday is day 7
	}
	monday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -(weekday - 1))
	end := monday.AddDate(0, 0, 7)
	return m.Filtered(profileID, Filter{StartDate: &monday, EndDate: &end})
}

// Month returns profileID's entries within the current UTC calendar month.
func (m *Manager) Month(profileID string) ([]*domain.Entry, error) {
	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	return m.Filtered(profileID, Filter{StartDate: &start, EndDate: &end})
}

// Stats summarizes a set of entries.
type Stats struct {
	TotalEntries          int     `json:"total_entries"`
	TotalDurationSeconds  int64   `json:"total_duration_seconds"`
	TotalDurationHours    float64 `json:"total_duration_hours"`
	PomodoroCount         int     `json:"pomodoro_count"`
	ManualCount           int     `json:"manual_count"`
	AvgDurationSeconds    float64 `json:"avg_duration_seconds"`
}

func computeStats(entries []*domain.Entry) Stats {
	var s Stats
	s.TotalEntries = len(entries)
	for _, e := range entries {
		s.TotalDurationSeconds += e.DurationSeconds
		switch e.Mode {
		case domain.ModePomodoro:
			s.PomodoroCount++
		case domain.ModeManual:
			s.ManualCount++
		}
	}
	s.TotalDurationHours = float64(int(float64(s.TotalDurationSeconds)/36.0+0.5)) / 100.0
	if s.TotalEntries > 0 {
		s.AvgDurationSeconds = float64(s.TotalDurationSeconds) / float64(s.TotalEntries)
	}
	return s
}

func (m *Manager) StatsToday(profileID string) (Stats, error) {
	entries, err := m.Today(profileID)
	if err != nil {
		return Stats{}, err
	}
	return computeStats(entries), nil
}

func (m *Manager) StatsWeek(profileID string) (Stats, error) {
	entries, err := m.Week(profileID)
	if err != nil {
		return Stats{}, err
	}
	return computeStats(entries), nil
}

func (m *Manager) StatsMonth(profileID string) (Stats, error) {
	entries, err := m.Month(profileID)
	if err != nil {
		return Stats{}, err
	}
	return computeStats(entries), nil
}

func (m *Manager) StatsFiltered(profileID string, f Filter) (Stats, error) {
	entries, err := m.Filtered(profileID, f)
	if err != nil {
		return Stats{}, err
	}
	return computeStats(entries), nil
}

func (m *Manager) Update(profileID, entryID string, mutate func(*domain.Entry) error) (*domain.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensureLoadedLocked(profileID); err != nil {
		return nil, err
	}
	entries := m.cache[profileID]
	idx := -1
	for i, e := range entries {
		if e.ID == entryID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, domain.NotFound("entry")
	}

	updated := *entries[idx]
	if err := mutate(&updated); err != nil {
		return nil, err
	}
	if err := updated.Validate(); err != nil {
		return nil, err
	}

	rewritten := make([]*domain.Entry, len(entries))
	copy(rewritten, entries)
	rewritten[idx] = &updated
	if err := m.storage.SaveAll(profileID, rewritten); err != nil {
		return nil, err
	}
	m.cache[profileID] = rewritten

	m.bus.EmitEntry(eventbus.EntryUpdatedEvent(profileID, &updated))
	return &updated, nil
}

func (m *Manager) Delete(profileID, entryID string) error {
	m.mu.Lock()
	if err := m.ensureLoadedLocked(profileID); err != nil {
		m.mu.Unlock()
		return err
	}
	entries := m.cache[profileID]
	idx := -1
	for i, e := range entries {
		if e.ID == entryID {
			idx = i
			break
		}
	}
	if idx == -1 {
		m.mu.Unlock()
		return domain.NotFound("entry")
	}

	rewritten := make([]*domain.Entry, 0, len(entries)-1)
	rewritten = append(rewritten, entries[:idx]...)
	rewritten = append(rewritten, entries[idx+1:]...)
	if err := m.storage.SaveAll(profileID, rewritten); err != nil {
		m.mu.Unlock()
		return err
	}
	m.cache[profileID] = rewritten
	m.mu.Unlock()

	m.bus.EmitEntry(eventbus.EntryDeletedEvent(profileID, entryID))
	return nil
}

// AllProfileEntries loads entries across every known profile directory and
// tags each with its profile id — a supplemented aggregation operation
// (SPEC_FULL.md S1) used by entry.*_all_profiles.
func (m *Manager) AllProfileEntries(profileIDs []string) (map[string][]*domain.Entry, error) {
	out := make(map[string][]*domain.Entry, len(profileIDs))
	for _, id := range profileIDs {
		entries, err := m.List(id)
		if err != nil {
			return nil, err
		}
		out[id] = entries
	}
	return out, nil
}

// StatsAllProfiles aggregates Stats across every given profile.
func (m *Manager) StatsAllProfiles(profileIDs []string) (Stats, error) {
	var all []*domain.Entry
	for _, id := range profileIDs {
		entries, err := m.List(id)
		if err != nil {
			return Stats{}, err
		}
		all = append(all, entries...)
	}
	return computeStats(all), nil
}

// sortByStartTime is used by callers that need a deterministic display
// order; the cache itself preserves append order.
func sortByStartTime(entries []*domain.Entry) {
	sort.Slice(entries, func(i, j int) bool { return entries[i].StartTime.Before(entries[j].StartTime) })
}
