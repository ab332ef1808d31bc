package config

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mootimer/daemon/internal/domain"
	"github.com/mootimer/daemon/internal/storage"
)

func TestNewManagerWritesDefaultsAndLoads(t *testing.T) {
	dir := t.TempDir()
	store := storage.NewConfigStorage(dir)

	m, err := NewManager(store)
	require.NoError(t, err)
	require.Equal(t, "info", m.Get().Daemon.LogLevel)
}

func TestEnvOverrideAppliesSocketPath(t *testing.T) {
	dir := t.TempDir()
	store := storage.NewConfigStorage(dir)

	t.Setenv("MOOTIMER_DAEMON_SOCKET_PATH", "/tmp/override.sock")
	m, err := NewManager(store)
	require.NoError(t, err)
	require.Equal(t, "/tmp/override.sock", m.Get().Daemon.SocketPath)
}

func TestUpdatePersistsAndValidates(t *testing.T) {
	dir := t.TempDir()
	store := storage.NewConfigStorage(dir)
	m, err := NewManager(store)
	require.NoError(t, err)

	_, err = m.SetDefaultProfile("work")
	require.NoError(t, err)

	reloaded, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, reloaded.DefaultProfile)
	require.Equal(t, "work", *reloaded.DefaultProfile)
}

func TestUpdateRejectsInvalidSyncConfig(t *testing.T) {
	dir := t.TempDir()
	store := storage.NewConfigStorage(dir)
	m, err := NewManager(store)
	require.NoError(t, err)

	_, err = m.SetSync(domain.SyncConfig{AutoPush: true})
	require.Error(t, err, "expected validation error: auto_push without remote_url")
}
