package storage

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mootimer/daemon/internal/domain"
	"github.com/mootimer/daemon/internal/paths"
)

// entryCSVHeader is the stable, bit-exact header row for entries.csv
// (SPEC_FULL.md §6). Column order and names are part of the wire contract.
var entryCSVHeader = []string{
	"id", "task_id", "start_time", "end_time", "duration_seconds", "mode", "description", "tags",
}

// EntryStorage loads and appends to the per-profile entries.csv log.
type EntryStorage struct {
	dataDir string
}

func NewEntryStorage(dataDir string) *EntryStorage {
	return &EntryStorage{dataDir: dataDir}
}

func (s *EntryStorage) entriesPath(profileID string) string {
	return filepath.Join(paths.ProfileDir(s.dataDir, profileID), "entries.csv")
}

func (s *EntryStorage) Load(profileID string) ([]*domain.Entry, error) {
	path := s.entriesPath(profileID)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, domain.Storage("failed to open entries log", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // tolerate unknown extra columns

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, domain.Storage("failed to parse entries log", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	colIndex := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		colIndex[name] = i
	}

	entries := make([]*domain.Entry, 0, len(rows)-1)
	for _, row := range rows[1:] {
		entry, err := entryFromCSVRow(row, colIndex)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func entryFromCSVRow(row []string, colIndex map[string]int) (*domain.Entry, error) {
	col := func(name string) string {
		if i, ok := colIndex[name]; ok && i < len(row) {
			return row[i]
		}
		return ""
	}

	e := &domain.Entry{ID: col("id"), Tags: []string{}}

	if taskID := col("task_id"); taskID != "" {
		e.TaskID = &taskID
	}

	start, err := time.Parse(time.RFC3339, col("start_time"))
	if err != nil {
		return nil, domain.Storage("invalid start_time in entries log", err)
	}
	e.StartTime = start

	if endStr := col("end_time"); endStr != "" {
		end, err := time.Parse(time.RFC3339, endStr)
		if err != nil {
			return nil, domain.Storage("invalid end_time in entries log", err)
		}
		e.EndTime = &end
	}

	if durStr := col("duration_seconds"); durStr != "" {
		dur, err := strconv.ParseInt(durStr, 10, 64)
		if err != nil {
			return nil, domain.Storage("invalid duration_seconds in entries log", err)
		}
		e.DurationSeconds = dur
	}

	switch col("mode") {
	case string(domain.ModePomodoro):
		e.Mode = domain.ModePomodoro
	case string(domain.ModeCountdown):
		e.Mode = domain.ModeCountdown
	default:
		e.Mode = domain.ModeManual
	}

	if desc := col("description"); desc != "" {
		e.Description = &desc
	}

	if tags := col("tags"); tags != "" {
		for _, tag := range strings.Split(tags, ",") {
			e.Tags = append(e.Tags, strings.TrimSpace(tag))
		}
	}

	return e, nil
}

func entryToCSVRow(e *domain.Entry) []string {
	taskID := ""
	if e.TaskID != nil {
		taskID = *e.TaskID
	}
	endTime := ""
	if e.EndTime != nil {
		endTime = e.EndTime.UTC().Format(time.RFC3339)
	}
	description := ""
	if e.Description != nil {
		description = *e.Description
	}
	return []string{
		e.ID,
		taskID,
		e.StartTime.UTC().Format(time.RFC3339),
		endTime,
		strconv.FormatInt(e.DurationSeconds, 10),
		string(e.Mode),
		description,
		strings.Join(e.Tags, ","),
	}
}

// Append writes entry to profileID's entries.csv, writing the header row
// first if the file is being created.
func (s *EntryStorage) Append(profileID string, entry *domain.Entry) error {
	dir := paths.ProfileDir(s.dataDir, profileID)
	if err := paths.EnsureDir(dir); err != nil {
		return domain.Storage("failed to create profile directory", err)
	}

	path := s.entriesPath(profileID)
	_, statErr := os.Stat(path)
	fileExists := statErr == nil

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return domain.Storage("failed to open entries log for append", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if !fileExists {
		if err := writer.Write(entryCSVHeader); err != nil {
			return domain.Storage("failed to write entries log header", err)
		}
	}
	if err := writer.Write(entryToCSVRow(entry)); err != nil {
		return domain.Storage("failed to append entry", err)
	}
	writer.Flush()
	return writer.Error()
}

// SaveAll rewrites the entire entries.csv for profileID (used by update
// and delete, which cannot be expressed as a pure append).
func (s *EntryStorage) SaveAll(profileID string, entries []*domain.Entry) error {
	dir := paths.ProfileDir(s.dataDir, profileID)
	if err := paths.EnsureDir(dir); err != nil {
		return domain.Storage("failed to create profile directory", err)
	}

	f, err := os.Create(s.entriesPath(profileID))
	if err != nil {
		return domain.Storage("failed to rewrite entries log", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(entryCSVHeader); err != nil {
		return domain.Storage("failed to write entries log header", err)
	}
	for _, e := range entries {
		if err := writer.Write(entryToCSVRow(e)); err != nil {
			return domain.Storage("failed to write entry", err)
		}
	}
	writer.Flush()
	return writer.Error()
}
