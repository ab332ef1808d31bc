package rpc

import (
	"encoding/json"
	"time"

	"github.com/mootimer/daemon/internal/domain"
	"github.com/mootimer/daemon/internal/entry"
)

func handleEntryList(d *Deps, params json.RawMessage) (interface{}, error) {
	var p profileIDParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	return d.Entries.List(p.ProfileID)
}

type filterParams struct {
	ProfileID string     `json:"profile_id"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	TaskID    *string    `json:"task_id,omitempty"`
	Tags      []string   `json:"tags,omitempty"`
}

func (p filterParams) toFilter() entry.Filter {
	return entry.Filter{StartDate: p.StartDate, EndDate: p.EndDate, TaskID: p.TaskID, Tags: p.Tags}
}

func handleEntryFilter(d *Deps, params json.RawMessage) (interface{}, error) {
	var p filterParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	return d.Entries.Filtered(p.ProfileID, p.toFilter())
}

func handleEntryToday(d *Deps, params json.RawMessage) (interface{}, error) {
	var p profileIDParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	return d.Entries.Today(p.ProfileID)
}

func handleEntryWeek(d *Deps, params json.RawMessage) (interface{}, error) {
	var p profileIDParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	return d.Entries.Week(p.ProfileID)
}

func handleEntryMonth(d *Deps, params json.RawMessage) (interface{}, error) {
	var p profileIDParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	return d.Entries.Month(p.ProfileID)
}

func handleEntryStatsToday(d *Deps, params json.RawMessage) (interface{}, error) {
	var p profileIDParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	return d.Entries.StatsToday(p.ProfileID)
}

func handleEntryStatsWeek(d *Deps, params json.RawMessage) (interface{}, error) {
	var p profileIDParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	return d.Entries.StatsWeek(p.ProfileID)
}

func handleEntryStatsMonth(d *Deps, params json.RawMessage) (interface{}, error) {
	var p profileIDParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	return d.Entries.StatsMonth(p.ProfileID)
}

func handleEntryDelete(d *Deps, params json.RawMessage) (interface{}, error) {
	var p struct {
		ProfileID string `json:"profile_id"`
		EntryID   string `json:"entry_id"`
	}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	return nil, d.Entries.Delete(p.ProfileID, p.EntryID)
}

func handleEntryUpdate(d *Deps, params json.RawMessage) (interface{}, error) {
	var p struct {
		ProfileID   string   `json:"profile_id"`
		EntryID     string   `json:"entry_id"`
		Description *string  `json:"description,omitempty"`
		ClearDescription bool `json:"clear_description,omitempty"`
		DurationSeconds *int64 `json:"duration_seconds,omitempty"`
		AddTags     []string `json:"add_tags,omitempty"`
		RemoveTags  []string `json:"remove_tags,omitempty"`
	}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	return d.Entries.Update(p.ProfileID, p.EntryID, func(e *domain.Entry) error {
		if p.DurationSeconds != nil {
			if *p.DurationSeconds < 0 {
				return domain.Validation("duration_seconds must not be negative")
			}
			e.DurationSeconds = *p.DurationSeconds
		}
		if p.ClearDescription {
			e.Description = nil
		} else if p.Description != nil {
			e.Description = p.Description
		}
		for _, tag := range p.AddTags {
			e.AddTag(tag)
		}
		for _, tag := range p.RemoveTags {
			e.RemoveTag(tag)
		}
		return nil
	})
}

func handleEntryCreate(d *Deps, params json.RawMessage) (interface{}, error) {
	var p struct {
		ProfileID   string          `json:"profile_id"`
		TaskID      *string         `json:"task_id,omitempty"`
		TaskTitle   *string         `json:"task_title,omitempty"`
		Mode        domain.TimerMode `json:"mode"`
		StartTime   time.Time       `json:"start_time"`
		EndTime     time.Time       `json:"end_time"`
		Description *string         `json:"description,omitempty"`
		Tags        []string        `json:"tags,omitempty"`
	}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	return d.Entries.Create(p.ProfileID, p.TaskID, p.TaskTitle, p.Mode, p.StartTime, p.EndTime, p.Description, p.Tags)
}

type profileIDsParams struct {
	ProfileIDs []string `json:"profile_ids"`
}

// resolveProfileIDs defaults to every known profile when the caller omits
// profile_ids, so *_all_profiles methods work with zero configuration.
func resolveProfileIDs(d *Deps, ids []string) []string {
	if len(ids) > 0 {
		return ids
	}
	profiles := d.Profiles.List()
	out := make([]string, len(profiles))
	for i, p := range profiles {
		out[i] = p.ID
	}
	return out
}

func handleEntryTodayAllProfiles(d *Deps, params json.RawMessage) (interface{}, error) {
	var p profileIDsParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	ids := resolveProfileIDs(d, p.ProfileIDs)
	out := make(map[string][]*domain.Entry, len(ids))
	for _, id := range ids {
		entries, err := d.Entries.Today(id)
		if err != nil {
			return nil, err
		}
		out[id] = entries
	}
	return out, nil
}

func handleEntryWeekAllProfiles(d *Deps, params json.RawMessage) (interface{}, error) {
	var p profileIDsParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	ids := resolveProfileIDs(d, p.ProfileIDs)
	out := make(map[string][]*domain.Entry, len(ids))
	for _, id := range ids {
		entries, err := d.Entries.Week(id)
		if err != nil {
			return nil, err
		}
		out[id] = entries
	}
	return out, nil
}

func handleEntryMonthAllProfiles(d *Deps, params json.RawMessage) (interface{}, error) {
	var p profileIDsParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	ids := resolveProfileIDs(d, p.ProfileIDs)
	out := make(map[string][]*domain.Entry, len(ids))
	for _, id := range ids {
		entries, err := d.Entries.Month(id)
		if err != nil {
			return nil, err
		}
		out[id] = entries
	}
	return out, nil
}
