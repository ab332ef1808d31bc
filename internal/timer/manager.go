package timer

import (
	"sync"
	"time"

	"github.com/mootimer/daemon/internal/domain"
	"github.com/mootimer/daemon/internal/eventbus"
)

// TaskTitleResolver is the one-way dependency the manager uses to denormalize
// a task's title onto a timer at start time (SPEC_FULL.md §9: "no cycles").
type TaskTitleResolver interface {
	TaskTitle(profileID, taskID string) (string, bool)
}

// CompletedEntry is one item drained from the manager's completed-entries
// queue by the background drain worker (SPEC_FULL.md §4.7).
type CompletedEntry struct {
	ProfileID string
	Entry     *domain.Entry
}

// Manager is the registry of active engines, keyed by profile id: at most
// one engine per profile at any moment (SPEC_FULL.md §4.2).
type Manager struct {
	mu      sync.RWMutex
	engines map[string]*Engine

	bus        *eventbus.Bus
	taskTitles TaskTitleResolver

	completedMu sync.Mutex
	completed   []CompletedEntry
}

func NewManager(bus *eventbus.Bus) *Manager {
	return &Manager{engines: make(map[string]*Engine), bus: bus}
}

func (m *Manager) SetTaskTitleResolver(r TaskTitleResolver) {
	m.taskTitles = r
}

func (m *Manager) resolveTaskTitle(profileID string, taskID *string) *string {
	if taskID == nil || m.taskTitles == nil {
		return nil
	}
	if title, ok := m.taskTitles.TaskTitle(profileID, *taskID); ok {
		return &title
	}
	return nil
}

func (m *Manager) start(profileID string, taskID *string, build func(id string, taskTitle *string) *Engine) (string, error) {
	m.mu.Lock()
	if _, exists := m.engines[profileID]; exists {
		m.mu.Unlock()
		return "", domain.ProfileHasActiveTimer(profileID)
	}

	taskTitle := m.resolveTaskTitle(profileID, taskID)
	id := domain.NewID()
	engine := build(id, taskTitle)
	m.engines[profileID] = engine
	m.mu.Unlock()

	m.bus.EmitTimer(eventbus.TimerEvent{
		Type: eventbus.TimerStarted, ProfileID: profileID, TimerID: id, Timestamp: time.Now().UTC(),
	})

	go engine.RunTicks(func() { m.handleCountdownCompletion(profileID) })

	return id, nil
}

func (m *Manager) StartManual(profileID string, taskID *string) (string, error) {
	return m.start(profileID, taskID, func(id string, taskTitle *string) *Engine {
		return NewManualEngine(m.bus, id, profileID, taskID, taskTitle)
	})
}

func (m *Manager) StartPomodoro(profileID string, taskID *string, cfg domain.PomodoroConfig) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	return m.start(profileID, taskID, func(id string, taskTitle *string) *Engine {
		return NewPomodoroEngine(m.bus, id, profileID, taskID, taskTitle, cfg)
	})
}

func (m *Manager) StartCountdown(profileID string, taskID *string, targetSeconds int64) (string, error) {
	if targetSeconds <= 0 {
		return "", domain.Validation("countdown duration must be greater than 0")
	}
	return m.start(profileID, taskID, func(id string, taskTitle *string) *Engine {
		return NewCountdownEngine(m.bus, id, profileID, taskID, taskTitle, targetSeconds)
	})
}

// lookup returns the engine for profileID without removing it from the
// registry, following the deadlock discipline: the registry lock is held
// only long enough to clone the reference.
func (m *Manager) lookup(profileID string) (*Engine, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.engines[profileID]
	if !ok {
		return nil, domain.NotFound("timer")
	}
	return e, nil
}

func (m *Manager) Pause(profileID string) error {
	engine, err := m.lookup(profileID)
	if err != nil {
		return err
	}
	return engine.Pause()
}

func (m *Manager) Resume(profileID string) error {
	engine, err := m.lookup(profileID)
	if err != nil {
		return err
	}
	return engine.Resume()
}

// Stop atomically removes profileID's engine from the registry, then calls
// into it outside the lock (SPEC_FULL.md §4.2).
func (m *Manager) Stop(profileID string) (*domain.Entry, error) {
	m.mu.Lock()
	engine, ok := m.engines[profileID]
	if ok {
		delete(m.engines, profileID)
	}
	m.mu.Unlock()
	if !ok {
		return nil, domain.NotFound("timer")
	}
	return engine.Stop()
}

func (m *Manager) Cancel(profileID string) error {
	m.mu.Lock()
	engine, ok := m.engines[profileID]
	if ok {
		delete(m.engines, profileID)
	}
	m.mu.Unlock()
	if !ok {
		return domain.NotFound("timer")
	}
	return engine.Cancel()
}

// handleCountdownCompletion is the engine's callback when its tick loop
// exits due to countdown auto-completion. The ordering — remove from the
// registry, then push to the completed-entries queue — guarantees that a
// concurrent Get either still sees the timer or cleanly sees "not found",
// never both (SPEC_FULL.md §4.2).
func (m *Manager) handleCountdownCompletion(profileID string) {
	m.mu.Lock()
	engine, ok := m.engines[profileID]
	if ok {
		delete(m.engines, profileID)
	}
	m.mu.Unlock()
	if !ok {
		return
	}

	snapshot := engine.Snapshot()
	entry, err := domain.CreateCompletedEntry(snapshot.TaskID, snapshot.TaskTitle, snapshot.Mode, snapshot.StartTime, time.Now().UTC(), nil, nil)
	if err != nil {
		return
	}

	m.completedMu.Lock()
	m.completed = append(m.completed, CompletedEntry{ProfileID: profileID, Entry: entry})
	m.completedMu.Unlock()
}

// TakeCompletedEntries atomically drains the completed-entries queue.
func (m *Manager) TakeCompletedEntries() []CompletedEntry {
	m.completedMu.Lock()
	defer m.completedMu.Unlock()
	if len(m.completed) == 0 {
		return nil
	}
	out := m.completed
	m.completed = nil
	return out
}

// GetByProfile returns a snapshot of profileID's timer, or nil if none.
func (m *Manager) GetByProfile(profileID string) *domain.ActiveTimer {
	m.mu.RLock()
	engine, ok := m.engines[profileID]
	m.mu.RUnlock()
	if !ok {
		return nil
	}
	return engine.Snapshot()
}

// Get looks a timer up by its own id across every active profile.
func (m *Manager) Get(timerID string) (*domain.ActiveTimer, error) {
	m.mu.RLock()
	var found *Engine
	for _, engine := range m.engines {
		if engine.ID() == timerID {
			found = engine
			break
		}
	}
	m.mu.RUnlock()
	if found == nil {
		return nil, domain.NotFound("timer")
	}
	return found.Snapshot(), nil
}

func (m *Manager) List() []*domain.ActiveTimer {
	m.mu.RLock()
	engines := make([]*Engine, 0, len(m.engines))
	for _, engine := range m.engines {
		engines = append(engines, engine)
	}
	m.mu.RUnlock()
	out := make([]*domain.ActiveTimer, 0, len(engines))
	for _, engine := range engines {
		out = append(out, engine.Snapshot())
	}
	return out
}

func (m *Manager) ListByProfile(profileID string) []*domain.ActiveTimer {
	if t := m.GetByProfile(profileID); t != nil {
		return []*domain.ActiveTimer{t}
	}
	return nil
}

// ActiveCount reports how many engines are currently registered — used by
// tests asserting the at-most-one-per-profile invariant.
func (m *Manager) ActiveCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.engines)
}
