package rpc

import (
	"encoding/json"

	"github.com/mootimer/daemon/internal/domain"
)

func handleSyncInit(d *Deps, params json.RawMessage) (interface{}, error) {
	if err := d.Syncer.Init(); err != nil {
		return nil, domain.Storage("sync init failed", err)
	}
	return d.Syncer.Status()
}

func handleSyncStatus(d *Deps, params json.RawMessage) (interface{}, error) {
	return d.Syncer.Status()
}

func handleSyncSync(d *Deps, params json.RawMessage) (interface{}, error) {
	cfg := d.Config.Get().Sync
	return d.Syncer.Sync(cfg)
}

func handleSyncCommit(d *Deps, params json.RawMessage) (interface{}, error) {
	var p struct {
		Message string `json:"message"`
	}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	if p.Message == "" {
		p.Message = "mootimer: manual commit"
	}
	hash, err := d.Syncer.AutoCommit(p.Message)
	if err != nil {
		return nil, domain.Storage("commit failed", err)
	}
	return map[string]string{"commit_hash": hash}, nil
}

func handleSyncSetRemote(d *Deps, params json.RawMessage) (interface{}, error) {
	var p struct {
		RemoteURL string `json:"remote_url"`
	}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	url := p.RemoteURL
	return d.Config.SetSync(domain.SyncConfig{
		AutoCommit: d.Config.Get().Sync.AutoCommit,
		AutoPush:   d.Config.Get().Sync.AutoPush,
		RemoteURL:  &url,
	})
}
