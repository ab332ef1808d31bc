package storage

import (
	"testing"
	"time"

	"github.com/mootimer/daemon/internal/domain"
)

func TestEntryCSVRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := NewEntryStorage(dir)

	base := time.Now().UTC().Truncate(time.Second)
	taskID := "task-1"
	desc := "wrote tests"
	entries := []*domain.Entry{
		mustCompletedEntry(t, &taskID, nil, domain.ModeManual, base, base.Add(5*time.Minute), &desc, []string{"focus", "backend"}),
		mustCompletedEntry(t, nil, nil, domain.ModePomodoro, base.Add(time.Hour), base.Add(time.Hour+25*time.Minute), nil, nil),
	}

	for _, e := range entries {
		if err := s.Append("p1", e); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	// Append a third entry in a "second session" to force append-to-existing-file.
	third := mustCompletedEntry(t, nil, nil, domain.ModeCountdown, base.Add(2*time.Hour), base.Add(2*time.Hour+time.Minute), nil, nil)
	if err := s.Append("p1", third); err != nil {
		t.Fatalf("Append third: %v", err)
	}
	entries = append(entries, third)

	loaded, err := s.Load("p1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded) != 3 {
		t.Fatalf("loaded %d entries, want 3", len(loaded))
	}
	for i, want := range entries {
		got := loaded[i]
		if got.ID != want.ID {
			t.Fatalf("entry %d id = %s, want %s", i, got.ID, want.ID)
		}
		if got.DurationSeconds != want.DurationSeconds {
			t.Fatalf("entry %d duration = %d, want %d", i, got.DurationSeconds, want.DurationSeconds)
		}
		if got.Mode != want.Mode {
			t.Fatalf("entry %d mode = %s, want %s", i, got.Mode, want.Mode)
		}
	}
}

func TestEntrySaveAllPreservesOthers(t *testing.T) {
	dir := t.TempDir()
	s := NewEntryStorage(dir)

	base := time.Now().UTC().Truncate(time.Second)
	e1 := mustCompletedEntry(t, nil, nil, domain.ModeManual, base, base.Add(time.Minute), nil, nil)
	e2 := mustCompletedEntry(t, nil, nil, domain.ModeManual, base.Add(time.Hour), base.Add(time.Hour+time.Minute), nil, nil)
	e3 := mustCompletedEntry(t, nil, nil, domain.ModeManual, base.Add(2*time.Hour), base.Add(2*time.Hour+time.Minute), nil, nil)

	for _, e := range []*domain.Entry{e1, e2, e3} {
		if err := s.Append("p1", e); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	updatedDesc := "updated"
	e2.Description = &updatedDesc

	if err := s.SaveAll("p1", []*domain.Entry{e1, e2, e3}); err != nil {
		t.Fatalf("SaveAll: %v", err)
	}

	loaded, err := s.Load("p1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded) != 3 {
		t.Fatalf("loaded %d entries, want 3", len(loaded))
	}
	if loaded[1].Description == nil || *loaded[1].Description != "updated" {
		t.Fatalf("entry 1 description = %v, want updated", loaded[1].Description)
	}
	if loaded[0].ID != e1.ID || loaded[2].ID != e3.ID {
		t.Fatal("unrelated entries were not preserved unchanged")
	}
}

func mustCompletedEntry(t *testing.T, taskID, taskTitle *string, mode domain.TimerMode, start, end time.Time, description *string, tags []string) *domain.Entry {
	t.Helper()
	e, err := domain.CreateCompletedEntry(taskID, taskTitle, mode, start, end, description, tags)
	if err != nil {
		t.Fatalf("CreateCompletedEntry: %v", err)
	}
	return e
}
