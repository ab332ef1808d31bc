package task

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mootimer/daemon/internal/domain"
	"github.com/mootimer/daemon/internal/eventbus"
	"github.com/mootimer/daemon/internal/storage"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	dir := t.TempDir()
	return NewManager(storage.NewTaskStorage(dir), eventbus.New())
}

func TestCreateGetListTask(t *testing.T) {
	m := newTestManager(t)

	created, err := m.Create("work", "Write report")
	require.NoError(t, err)

	got, err := m.Get("work", created.ID)
	require.NoError(t, err)
	require.Equal(t, "Write report", got.Title)

	list, err := m.List("work")
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestUpdateStatusPersists(t *testing.T) {
	m := newTestManager(t)
	created, err := m.Create("work", "Write report")
	require.NoError(t, err)

	updated, err := m.UpdateStatus("work", created.ID, domain.TaskDone)
	require.NoError(t, err)
	require.Equal(t, domain.TaskDone, updated.Status)
}

func TestDeleteTask(t *testing.T) {
	m := newTestManager(t)
	created, err := m.Create("work", "Write report")
	require.NoError(t, err)
	require.NoError(t, m.Delete("work", created.ID))

	_, err = m.Get("work", created.ID)
	require.Error(t, err, "expected NotFound after delete")
}

func TestMoveRelocatesBetweenProfiles(t *testing.T) {
	m := newTestManager(t)
	created, err := m.Create("work", "Write report")
	require.NoError(t, err)

	moved, err := m.Move("work", created.ID, "personal")
	require.NoError(t, err)
	require.Equal(t, created.ID, moved.ID)

	_, err = m.Get("work", created.ID)
	require.Error(t, err, "expected task gone from source profile")

	_, err = m.Get("personal", created.ID)
	require.NoError(t, err, "expected task present in destination profile")
}

func TestSearchSubstringScan(t *testing.T) {
	m := newTestManager(t)
	_, err := m.Create("work", "Write quarterly report")
	require.NoError(t, err)
	_, err = m.Create("work", "Fix login bug")
	require.NoError(t, err)

	results, err := m.Search("work", "report")
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "Write quarterly report", results[0].Title)
}

func TestSearchFuzzyRankingAboveThreshold(t *testing.T) {
	m := newTestManager(t)
	for i := 0; i < fuzzySearchThreshold+5; i++ {
		_, err := m.Create("work", fmt.Sprintf("Task number %d", i))
		require.NoError(t, err)
	}
	_, err := m.Create("work", "Deploy release")
	require.NoError(t, err)

	results, err := m.Search("work", "Deploy")
	require.NoError(t, err)
	require.NotEmpty(t, results, "expected at least one fuzzy match")
	require.Equal(t, "Deploy release", results[0].Title)
}
