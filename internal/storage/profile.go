// Package storage implements the on-disk adapters the resource managers
// persist through: one JSON document per profile, one JSON document for
// that profile's tasks, an append-only CSV log of entries, and a single
// config document — grounded on original_source/crates/mootimer-core/src/storage.
package storage

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/mootimer/daemon/internal/domain"
	"github.com/mootimer/daemon/internal/paths"
)

// ProfileStorage loads and saves one profile.json document per profile.
type ProfileStorage struct {
	dataDir string
}

func NewProfileStorage(dataDir string) *ProfileStorage {
	return &ProfileStorage{dataDir: dataDir}
}

func (s *ProfileStorage) profilePath(profileID string) string {
	return filepath.Join(paths.ProfileDir(s.dataDir, profileID), "profile.json")
}

func (s *ProfileStorage) Load(profileID string) (*domain.Profile, error) {
	content, err := os.ReadFile(s.profilePath(profileID))
	if err != nil {
		return nil, domain.Storage("failed to read profile", err)
	}
	var p domain.Profile
	if err := json.Unmarshal(content, &p); err != nil {
		return nil, domain.Storage("failed to decode profile", err)
	}
	return &p, nil
}

func (s *ProfileStorage) Save(p *domain.Profile) error {
	dir := paths.ProfileDir(s.dataDir, p.ID)
	if err := paths.EnsureDir(dir); err != nil {
		return domain.Storage("failed to create profile directory", err)
	}
	content, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return domain.Storage("failed to encode profile", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "profile.json"), content, 0o644); err != nil {
		return domain.Storage("failed to write profile", err)
	}
	return nil
}

func (s *ProfileStorage) List() ([]*domain.Profile, error) {
	root := paths.ProfilesRoot(s.dataDir)
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, domain.Storage("failed to list profiles", err)
	}

	var profiles []*domain.Profile
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		p, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

func (s *ProfileStorage) Delete(profileID string) error {
	dir := paths.ProfileDir(s.dataDir, profileID)
	if err := os.RemoveAll(dir); err != nil {
		return domain.Storage("failed to delete profile directory", err)
	}
	return nil
}
