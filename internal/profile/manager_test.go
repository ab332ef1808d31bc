package profile

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mootimer/daemon/internal/eventbus"
	"github.com/mootimer/daemon/internal/storage"
)

func newTestManager(t *testing.T) (*Manager, *storage.ProfileStorage) {
	t.Helper()
	dir := t.TempDir()
	store := storage.NewProfileStorage(dir)
	bus := eventbus.New()
	m, err := NewManager(store, bus)
	require.NoError(t, err)
	return m, store
}

func TestCreateGetList(t *testing.T) {
	m, _ := newTestManager(t)

	p, err := m.Create("work", "Work")
	require.NoError(t, err)
	require.Equal(t, "work", p.ID)

	got, err := m.Get("work")
	require.NoError(t, err)
	require.Equal(t, "Work", got.Name)

	require.Len(t, m.List(), 1)
}

func TestCreateRejectsDuplicateID(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.Create("work", "Work")
	require.NoError(t, err)

	_, err = m.Create("work", "Other")
	require.Error(t, err, "expected AlreadyExists on duplicate id")
}

func TestUpdateNamePersists(t *testing.T) {
	m, store := newTestManager(t)

	_, err := m.Create("work", "Work")
	require.NoError(t, err)

	updated, err := m.UpdateName("work", "Deep Work")
	require.NoError(t, err)
	require.Equal(t, "Deep Work", updated.Name)

	reloaded, err := store.Load("work")
	require.NoError(t, err)
	require.Equal(t, "Deep Work", reloaded.Name)
}

func TestDeleteRemovesFromCache(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.Create("work", "Work")
	require.NoError(t, err)
	require.NoError(t, m.Delete("work"))

	_, err = m.Get("work")
	require.Error(t, err, "expected NotFound after delete")
}

func TestUpdateUnknownProfileFails(t *testing.T) {
	m, _ := newTestManager(t)
	_, err := m.UpdateName("ghost", "X")
	require.Error(t, err, "expected NotFound for unknown profile")
}
