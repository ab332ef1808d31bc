package domain

import (
	"testing"
	"time"
)

func TestCreateCompletedEntryDuration(t *testing.T) {
	start := time.Now().UTC()
	end := start.Add(3665 * time.Second)
	e, err := CreateCompletedEntry(nil, nil, ModeManual, start, end, nil, nil)
	if err != nil {
		t.Fatalf("CreateCompletedEntry: %v", err)
	}
	if e.DurationSeconds != 3665 {
		t.Fatalf("duration_seconds = %d, want 3665", e.DurationSeconds)
	}
	if got := e.DurationFormatted(); got != "01:01:05" {
		t.Fatalf("duration formatted = %q, want 01:01:05", got)
	}
	if got := e.DurationMinutes(); got != 61 {
		t.Fatalf("duration minutes = %d, want 61", got)
	}
	if got := e.DurationHours(); got != 1.02 {
		t.Fatalf("duration hours = %v, want 1.02", got)
	}
}

func TestCreateCompletedEntryRejectsInvalidTimes(t *testing.T) {
	start := time.Now().UTC()
	end := start.Add(-time.Second)
	if _, err := CreateCompletedEntry(nil, nil, ModeManual, start, end, nil, nil); err == nil {
		t.Fatal("expected validation error for end before start")
	}
	if _, err := CreateCompletedEntry(nil, nil, ModeManual, start, start, nil, nil); err == nil {
		t.Fatal("expected validation error for end == start")
	}
}

func TestEntryTagHelpers(t *testing.T) {
	e := NewEntry(nil, nil, ModeManual, time.Now().UTC())
	e.AddTag("focus")
	e.AddTag("focus")
	if len(e.Tags) != 1 {
		t.Fatalf("tags = %v, want one deduplicated tag", e.Tags)
	}
	if !e.HasTag("focus") {
		t.Fatal("expected HasTag to find focus")
	}
	e.RemoveTag("focus")
	if e.HasTag("focus") {
		t.Fatal("expected focus to be removed")
	}
}
