package storage

import "testing"

func TestProfileStorageSaveLoadList(t *testing.T) {
	dir := t.TempDir()
	s := NewProfileStorage(dir)

	p, err := newTestProfile("work", "Work")
	if err != nil {
		t.Fatalf("newTestProfile: %v", err)
	}
	if err := s.Save(p); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := s.Load("work")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Name != "Work" {
		t.Fatalf("name = %q, want Work", loaded.Name)
	}

	list, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("list = %d profiles, want 1", len(list))
	}

	if err := s.Delete("work"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Load("work"); err == nil {
		t.Fatal("expected error loading deleted profile")
	}
}
