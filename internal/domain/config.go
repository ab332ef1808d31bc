package domain

import "fmt"

// Config is the single daemon-wide configuration document.
type Config struct {
	Version        string         `json:"version"`
	DefaultProfile *string        `json:"default_profile,omitempty"`
	Daemon         DaemonConfig   `json:"daemon"`
	Pomodoro       PomodoroConfig `json:"pomodoro"`
	Sync           SyncConfig     `json:"sync"`
}

type DaemonConfig struct {
	SocketPath string `json:"socket_path"`
	LogLevel   string `json:"log_level"`
}

type SyncConfig struct {
	AutoCommit bool    `json:"auto_commit"`
	AutoPush   bool    `json:"auto_push"`
	RemoteURL  *string `json:"remote_url,omitempty"`
}

func DefaultConfig() Config {
	return Config{
		Version:  "1.0.0",
		Daemon:   DefaultDaemonConfig(),
		Pomodoro: DefaultPomodoroConfig(),
		Sync:     SyncConfig{},
	}
}

func DefaultDaemonConfig() DaemonConfig {
	return DaemonConfig{
		SocketPath: "/tmp/mootimer.sock",
		LogLevel:   "info",
	}
}

func (c Config) Validate() error {
	if err := c.Daemon.Validate(); err != nil {
		return err
	}
	if err := c.Pomodoro.Validate(); err != nil {
		return err
	}
	if err := c.Sync.Validate(); err != nil {
		return err
	}
	return nil
}

var validLogLevels = map[string]bool{
	"error": true, "warn": true, "info": true, "debug": true, "trace": true,
}

func (d DaemonConfig) Validate() error {
	if d.SocketPath == "" {
		return Validation("socket path cannot be empty")
	}
	if !validLogLevels[d.LogLevel] {
		return Validation(fmt.Sprintf("invalid log level %q", d.LogLevel))
	}
	return nil
}

func (s SyncConfig) Validate() error {
	if s.AutoPush && s.RemoteURL == nil {
		return Validation("auto_push requires a remote_url")
	}
	return nil
}
