// Package profile implements the profile resource manager: an in-memory
// cache backed by one profile.json document per profile, grounded on
// original_source/crates/mootimer-core/src/profile/manager.rs.
package profile

import (
	"sync"

	"github.com/mootimer/daemon/internal/domain"
	"github.com/mootimer/daemon/internal/eventbus"
	"github.com/mootimer/daemon/internal/storage"
)

// Manager owns the canonical validate -> persist -> cache -> emit pipeline
// for profiles.
type Manager struct {
	mu      sync.RWMutex
	cache   map[string]*domain.Profile
	storage *storage.ProfileStorage
	bus     *eventbus.Bus
}

func NewManager(store *storage.ProfileStorage, bus *eventbus.Bus) (*Manager, error) {
	m := &Manager{cache: make(map[string]*domain.Profile), storage: store, bus: bus}
	existing, err := store.List()
	if err != nil {
		return nil, err
	}
	for _, p := range existing {
		m.cache[p.ID] = p
	}
	return m, nil
}

func (m *Manager) Create(id, name string) (*domain.Profile, error) {
	p, err := domain.NewProfile(id, name)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	if _, exists := m.cache[id]; exists {
		m.mu.Unlock()
		return nil, domain.AlreadyExists("profile")
	}
	if err := m.storage.Save(p); err != nil {
		m.mu.Unlock()
		return nil, err
	}
	m.cache[id] = p
	m.mu.Unlock()

	m.bus.EmitProfile(eventbus.ProfileCreatedEvent(p))
	return p, nil
}

func (m *Manager) Get(id string) (*domain.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.cache[id]
	if !ok {
		return nil, domain.NotFound("profile")
	}
	return p, nil
}

func (m *Manager) List() []*domain.Profile {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.Profile, 0, len(m.cache))
	for _, p := range m.cache {
		out = append(out, p)
	}
	return out
}

// Update applies mutate to a copy of the cached profile, persists it, and
// only then swaps the cache entry — a failed write never corrupts the cache.
func (m *Manager) Update(id string, mutate func(*domain.Profile) error) (*domain.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.cache[id]
	if !ok {
		return nil, domain.NotFound("profile")
	}
	updated := *existing
	if err := mutate(&updated); err != nil {
		return nil, err
	}
	if err := m.storage.Save(&updated); err != nil {
		return nil, err
	}
	m.cache[id] = &updated

	m.bus.EmitProfile(eventbus.ProfileUpdatedEvent(&updated))
	return &updated, nil
}

func (m *Manager) UpdateName(id, name string) (*domain.Profile, error) {
	return m.Update(id, func(p *domain.Profile) error { return p.UpdateName(name) })
}

func (m *Manager) UpdateDescription(id string, description *string) (*domain.Profile, error) {
	return m.Update(id, func(p *domain.Profile) error {
		p.UpdateDescription(description)
		return nil
	})
}

func (m *Manager) UpdateColor(id string, color *string) (*domain.Profile, error) {
	return m.Update(id, func(p *domain.Profile) error { return p.UpdateColor(color) })
}

func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	if _, ok := m.cache[id]; !ok {
		m.mu.Unlock()
		return domain.NotFound("profile")
	}
	if err := m.storage.Delete(id); err != nil {
		m.mu.Unlock()
		return err
	}
	delete(m.cache, id)
	m.mu.Unlock()

	m.bus.EmitProfile(eventbus.ProfileDeletedEvent(id))
	return nil
}
