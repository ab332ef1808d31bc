package rpc

import (
	"encoding/json"

	"github.com/mootimer/daemon/internal/domain"
)

func handleProfileCreate(d *Deps, params json.RawMessage) (interface{}, error) {
	var p struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	return d.Profiles.Create(p.ID, p.Name)
}

func handleProfileGet(d *Deps, params json.RawMessage) (interface{}, error) {
	var p struct {
		ID string `json:"id"`
	}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	return d.Profiles.Get(p.ID)
}

func handleProfileList(d *Deps, params json.RawMessage) (interface{}, error) {
	return d.Profiles.List(), nil
}

func handleProfileUpdate(d *Deps, params json.RawMessage) (interface{}, error) {
	var p struct {
		ID          string  `json:"id"`
		Name        *string `json:"name,omitempty"`
		Description *string `json:"description,omitempty"`
		ClearDescription bool `json:"clear_description,omitempty"`
		Color       *string `json:"color,omitempty"`
		ClearColor  bool    `json:"clear_color,omitempty"`
	}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	return d.Profiles.Update(p.ID, func(prof *domain.Profile) error {
		if p.Name != nil {
			if err := prof.UpdateName(*p.Name); err != nil {
				return err
			}
		}
		if p.ClearDescription {
			prof.UpdateDescription(nil)
		} else if p.Description != nil {
			prof.UpdateDescription(p.Description)
		}
		if p.ClearColor {
			if err := prof.UpdateColor(nil); err != nil {
				return err
			}
		} else if p.Color != nil {
			if err := prof.UpdateColor(p.Color); err != nil {
				return err
			}
		}
		return nil
	})
}

func handleProfileDelete(d *Deps, params json.RawMessage) (interface{}, error) {
	var p struct {
		ID string `json:"id"`
	}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	return nil, d.Profiles.Delete(p.ID)
}
