package entry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mootimer/daemon/internal/domain"
	"github.com/mootimer/daemon/internal/eventbus"
	"github.com/mootimer/daemon/internal/storage"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	dir := t.TempDir()
	return NewManager(storage.NewEntryStorage(dir), eventbus.New())
}

func TestAddAndList(t *testing.T) {
	m := newTestManager(t)
	start := time.Now().UTC().Add(-time.Hour)
	end := start.Add(30 * time.Minute)

	e, err := domain.CreateCompletedEntry(nil, nil, domain.ModeManual, start, end, nil, nil)
	require.NoError(t, err)
	require.NoError(t, m.Add("work", e))

	list, err := m.List("work")
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestCreateBackfillsManualEntry(t *testing.T) {
	m := newTestManager(t)
	start := time.Now().UTC().Add(-2 * time.Hour)
	end := start.Add(time.Hour)

	e, err := m.Create("work", nil, nil, domain.ModeManual, start, end, nil, nil)
	require.NoError(t, err)
	require.EqualValues(t, 3600, e.DurationSeconds)
}

func TestTodayFilterExcludesYesterday(t *testing.T) {
	m := newTestManager(t)
	now := time.Now().UTC()

	todayStart := now.Add(-time.Minute)
	_, err := m.Create("work", nil, nil, domain.ModeManual, todayStart, now, nil, nil)
	require.NoError(t, err)

	yesterdayStart := now.AddDate(0, 0, -1).Add(-time.Hour)
	_, err = m.Create("work", nil, nil, domain.ModeManual, yesterdayStart, yesterdayStart.Add(30*time.Minute), nil, nil)
	require.NoError(t, err)

	today, err := m.Today("work")
	require.NoError(t, err)
	require.Len(t, today, 1)
}

func TestStatsTodayCountsModesAndDuration(t *testing.T) {
	m := newTestManager(t)
	now := time.Now().UTC()

	s1 := now.Add(-2 * time.Hour)
	_, err := m.Create("work", nil, nil, domain.ModeManual, s1, s1.Add(time.Hour), nil, nil)
	require.NoError(t, err)

	s2 := now.Add(-30 * time.Minute)
	_, err = m.Create("work", nil, nil, domain.ModePomodoro, s2, s2.Add(25*time.Minute), nil, nil)
	require.NoError(t, err)

	stats, err := m.StatsToday("work")
	require.NoError(t, err)
	require.Equal(t, 2, stats.TotalEntries)
	require.Equal(t, 1, stats.ManualCount)
	require.Equal(t, 1, stats.PomodoroCount)
	require.EqualValues(t, 3600+25*60, stats.TotalDurationSeconds)
}

func TestUpdateAndDeleteRewriteLog(t *testing.T) {
	m := newTestManager(t)
	start := time.Now().UTC().Add(-time.Hour)
	e, err := m.Create("work", nil, nil, domain.ModeManual, start, start.Add(time.Hour), nil, nil)
	require.NoError(t, err)

	desc := "retro notes"
	updated, err := m.Update("work", e.ID, func(entry *domain.Entry) error {
		entry.Description = &desc
		return nil
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Description)
	require.Equal(t, desc, *updated.Description)

	require.NoError(t, m.Delete("work", e.ID))

	list, err := m.List("work")
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestStatsAllProfilesAggregates(t *testing.T) {
	m := newTestManager(t)
	start := time.Now().UTC().Add(-time.Hour)

	_, err := m.Create("work", nil, nil, domain.ModeManual, start, start.Add(30*time.Minute), nil, nil)
	require.NoError(t, err)
	_, err = m.Create("personal", nil, nil, domain.ModeManual, start, start.Add(15*time.Minute), nil, nil)
	require.NoError(t, err)

	stats, err := m.StatsAllProfiles([]string{"work", "personal"})
	require.NoError(t, err)
	require.Equal(t, 2, stats.TotalEntries)
	require.EqualValues(t, 45*60, stats.TotalDurationSeconds)
}
