package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/mootimer/daemon/internal/domain"
	"github.com/mootimer/daemon/internal/paths"
)

// ConfigStorage loads and saves the single config.json document.
type ConfigStorage struct {
	configDir string
}

func NewConfigStorage(configDir string) *ConfigStorage {
	return &ConfigStorage{configDir: configDir}
}

func (s *ConfigStorage) configPath() string {
	return filepath.Join(s.configDir, "config.json")
}

// Load returns the on-disk config, writing out the default document if
// the file is missing or empty.
func (s *ConfigStorage) Load() (domain.Config, error) {
	content, err := os.ReadFile(s.configPath())
	if err != nil {
		if os.IsNotExist(err) {
			cfg := domain.DefaultConfig()
			return cfg, s.Save(cfg)
		}
		return domain.Config{}, domain.Storage("failed to read config", err)
	}

	if strings.TrimSpace(string(content)) == "" {
		cfg := domain.DefaultConfig()
		return cfg, s.Save(cfg)
	}

	var cfg domain.Config
	if err := json.Unmarshal(content, &cfg); err != nil {
		return domain.Config{}, domain.Storage("failed to decode config", err)
	}
	return cfg, nil
}

func (s *ConfigStorage) Save(cfg domain.Config) error {
	if err := paths.EnsureDir(s.configDir); err != nil {
		return domain.Storage("failed to create config directory", err)
	}
	content, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return domain.Storage("failed to encode config", err)
	}
	if err := os.WriteFile(s.configPath(), content, 0o644); err != nil {
		return domain.Storage("failed to write config", err)
	}
	return nil
}
