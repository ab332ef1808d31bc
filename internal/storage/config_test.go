package storage

import "testing"

func TestConfigStorageWritesDefaultsWhenMissing(t *testing.T) {
	dir := t.TempDir()
	s := NewConfigStorage(dir)

	cfg, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Daemon.SocketPath == "" {
		t.Fatal("expected default socket path to be populated")
	}

	reloaded, err := s.Load()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Version != cfg.Version {
		t.Fatalf("version mismatch after reload: %q vs %q", reloaded.Version, cfg.Version)
	}
}

func TestConfigStorageSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := NewConfigStorage(dir)

	cfg, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	profile := "work"
	cfg.DefaultProfile = &profile
	if err := s.Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded, err := s.Load()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.DefaultProfile == nil || *reloaded.DefaultProfile != "work" {
		t.Fatalf("default_profile = %v, want work", reloaded.DefaultProfile)
	}
}
