package storage

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/mootimer/daemon/internal/domain"
	"github.com/mootimer/daemon/internal/paths"
)

// tasksFile is the on-disk shape of tasks.json: { "tasks": [ Task, ... ] }.
type tasksFile struct {
	Tasks []*domain.Task `json:"tasks"`
}

// TaskStorage loads and saves the single tasks.json document per profile.
type TaskStorage struct {
	dataDir string
}

func NewTaskStorage(dataDir string) *TaskStorage {
	return &TaskStorage{dataDir: dataDir}
}

func (s *TaskStorage) tasksPath(profileID string) string {
	return filepath.Join(paths.ProfileDir(s.dataDir, profileID), "tasks.json")
}

func (s *TaskStorage) Load(profileID string) ([]*domain.Task, error) {
	content, err := os.ReadFile(s.tasksPath(profileID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, domain.Storage("failed to read tasks", err)
	}
	var tf tasksFile
	if err := json.Unmarshal(content, &tf); err != nil {
		return nil, domain.Storage("failed to decode tasks", err)
	}
	return tf.Tasks, nil
}

func (s *TaskStorage) Save(profileID string, tasks []*domain.Task) error {
	dir := paths.ProfileDir(s.dataDir, profileID)
	if err := paths.EnsureDir(dir); err != nil {
		return domain.Storage("failed to create profile directory", err)
	}
	content, err := json.MarshalIndent(tasksFile{Tasks: tasks}, "", "  ")
	if err != nil {
		return domain.Storage("failed to encode tasks", err)
	}
	if err := os.WriteFile(s.tasksPath(profileID), content, 0o644); err != nil {
		return domain.Storage("failed to write tasks", err)
	}
	return nil
}
