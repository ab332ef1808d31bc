package rpc

import (
	"encoding/json"

	"github.com/mootimer/daemon/internal/domain"
)

func handleConfigGet(d *Deps, params json.RawMessage) (interface{}, error) {
	return d.Config.Get(), nil
}

func handleConfigSetDefaultProfile(d *Deps, params json.RawMessage) (interface{}, error) {
	var p struct {
		ProfileID string `json:"profile_id"`
	}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	return d.Config.SetDefaultProfile(p.ProfileID)
}

func handleConfigUpdatePomodoro(d *Deps, params json.RawMessage) (interface{}, error) {
	var p domain.PomodoroConfig
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	return d.Config.SetPomodoroDefaults(p)
}

func handleConfigUpdateSync(d *Deps, params json.RawMessage) (interface{}, error) {
	var p domain.SyncConfig
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	return d.Config.SetSync(p)
}

func handleConfigReset(d *Deps, params json.RawMessage) (interface{}, error) {
	return d.Config.Update(func(cfg *domain.Config) error {
		*cfg = domain.DefaultConfig()
		return nil
	})
}
