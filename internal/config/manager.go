// Package config implements the daemon's single configuration document,
// grounded on _examples/xvierd-flow-cli's internal/config package. Unlike
// the teacher, which treats TOML-via-viper as the source of truth, this
// daemon's source of truth is the JSON document persisted through
// internal/storage.ConfigStorage; viper is layered on top purely to let
// MOOTIMER_-prefixed environment variables override individual fields,
// the way a long-running daemon is typically tuned in production.
package config

import (
	"strings"
	"sync"

	"github.com/mootimer/daemon/internal/domain"
	"github.com/mootimer/daemon/internal/storage"
	"github.com/spf13/viper"
)

// Manager owns the cached Config document.
type Manager struct {
	mu      sync.RWMutex
	cfg     domain.Config
	storage *storage.ConfigStorage
	env     *viper.Viper
}

// NewManager loads the on-disk config (writing defaults if absent) and
// applies any MOOTIMER_-prefixed environment overrides on top.
func NewManager(store *storage.ConfigStorage) (*Manager, error) {
	cfg, err := store.Load()
	if err != nil {
		return nil, err
	}

	env := viper.New()
	env.SetEnvPrefix("MOOTIMER")
	env.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	env.AutomaticEnv()
	applyEnvOverrides(env, &cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Manager{cfg: cfg, storage: store, env: env}, nil
}

func applyEnvOverrides(env *viper.Viper, cfg *domain.Config) {
	if v := env.GetString("daemon.socket_path"); v != "" {
		cfg.Daemon.SocketPath = v
	}
	if v := env.GetString("daemon.log_level"); v != "" {
		cfg.Daemon.LogLevel = v
	}
	if env.IsSet("sync.auto_commit") {
		cfg.Sync.AutoCommit = env.GetBool("sync.auto_commit")
	}
	if env.IsSet("sync.auto_push") {
		cfg.Sync.AutoPush = env.GetBool("sync.auto_push")
	}
	if v := env.GetString("sync.remote_url"); v != "" {
		cfg.Sync.RemoteURL = &v
	}
}

func (m *Manager) Get() domain.Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg
}

// Update applies mutate to a copy of the cached config, validates and
// persists it, and only then swaps the cache — whole-document replacement,
// matching the other resource managers' canonical pipeline.
func (m *Manager) Update(mutate func(*domain.Config) error) (domain.Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	updated := m.cfg
	if err := mutate(&updated); err != nil {
		return domain.Config{}, err
	}
	if err := updated.Validate(); err != nil {
		return domain.Config{}, err
	}
	if err := m.storage.Save(updated); err != nil {
		return domain.Config{}, err
	}
	m.cfg = updated
	return updated, nil
}

func (m *Manager) SetDefaultProfile(profileID string) (domain.Config, error) {
	return m.Update(func(c *domain.Config) error {
		c.DefaultProfile = &profileID
		return nil
	})
}

func (m *Manager) SetLogLevel(level string) (domain.Config, error) {
	return m.Update(func(c *domain.Config) error {
		c.Daemon.LogLevel = level
		return nil
	})
}

func (m *Manager) SetPomodoroDefaults(p domain.PomodoroConfig) (domain.Config, error) {
	return m.Update(func(c *domain.Config) error {
		c.Pomodoro = p
		return nil
	})
}

func (m *Manager) SetSync(s domain.SyncConfig) (domain.Config, error) {
	return m.Update(func(c *domain.Config) error {
		c.Sync = s
		return nil
	})
}
