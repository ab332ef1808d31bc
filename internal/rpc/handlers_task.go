package rpc

import (
	"encoding/json"

	"github.com/mootimer/daemon/internal/domain"
)

func handleTaskCreate(d *Deps, params json.RawMessage) (interface{}, error) {
	var p struct {
		ProfileID string `json:"profile_id"`
		Title     string `json:"title"`
	}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	return d.Tasks.Create(p.ProfileID, p.Title)
}

func handleTaskGet(d *Deps, params json.RawMessage) (interface{}, error) {
	var p struct {
		ProfileID string `json:"profile_id"`
		TaskID    string `json:"task_id"`
	}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	return d.Tasks.Get(p.ProfileID, p.TaskID)
}

func handleTaskList(d *Deps, params json.RawMessage) (interface{}, error) {
	var p profileIDParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	return d.Tasks.List(p.ProfileID)
}

func handleTaskUpdate(d *Deps, params json.RawMessage) (interface{}, error) {
	var p struct {
		ProfileID   string             `json:"profile_id"`
		TaskID      string             `json:"task_id"`
		Title       *string            `json:"title,omitempty"`
		Description *string            `json:"description,omitempty"`
		ClearDescription bool          `json:"clear_description,omitempty"`
		Status      *domain.TaskStatus `json:"status,omitempty"`
		URL         *string            `json:"url,omitempty"`
		AddTags     []string           `json:"add_tags,omitempty"`
		RemoveTags  []string           `json:"remove_tags,omitempty"`
	}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	return d.Tasks.Update(p.ProfileID, p.TaskID, func(t *domain.Task) error {
		if p.Title != nil {
			if err := t.UpdateTitle(*p.Title); err != nil {
				return err
			}
		}
		if p.ClearDescription {
			t.UpdateDescription(nil)
		} else if p.Description != nil {
			t.UpdateDescription(p.Description)
		}
		if p.Status != nil {
			t.UpdateStatus(*p.Status)
		}
		if p.URL != nil {
			if err := t.UpdateURL(p.URL); err != nil {
				return err
			}
		}
		for _, tag := range p.AddTags {
			t.AddTag(tag)
		}
		for _, tag := range p.RemoveTags {
			t.RemoveTag(tag)
		}
		return nil
	})
}

func handleTaskDelete(d *Deps, params json.RawMessage) (interface{}, error) {
	var p struct {
		ProfileID string `json:"profile_id"`
		TaskID    string `json:"task_id"`
	}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	return nil, d.Tasks.Delete(p.ProfileID, p.TaskID)
}

func handleTaskSearch(d *Deps, params json.RawMessage) (interface{}, error) {
	var p struct {
		ProfileID string `json:"profile_id"`
		Query     string `json:"query"`
	}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	return d.Tasks.Search(p.ProfileID, p.Query)
}

func handleTaskMove(d *Deps, params json.RawMessage) (interface{}, error) {
	var p struct {
		FromProfileID string `json:"from_profile_id"`
		TaskID        string `json:"task_id"`
		ToProfileID   string `json:"to_profile_id"`
	}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	return d.Tasks.Move(p.FromProfileID, p.TaskID, p.ToProfileID)
}
