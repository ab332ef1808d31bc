package domain

import "testing"

func TestNewProfileValidation(t *testing.T) {
	if _, err := NewProfile("", "Test"); err == nil {
		t.Fatal("expected error for empty id")
	}
	if _, err := NewProfile("test", ""); err == nil {
		t.Fatal("expected error for empty name")
	}
	if _, err := NewProfile("has space", "Test"); err == nil {
		t.Fatal("expected error for invalid id charset")
	}
	p, err := NewProfile("work", "Work")
	if err != nil {
		t.Fatalf("NewProfile: %v", err)
	}
	if p.ID != "work" || p.Name != "Work" {
		t.Fatalf("unexpected profile %+v", p)
	}
}

func TestProfileUpdateColor(t *testing.T) {
	p, err := NewProfile("work", "Work")
	if err != nil {
		t.Fatalf("NewProfile: %v", err)
	}
	good := "#FF5733"
	if err := p.UpdateColor(&good); err != nil {
		t.Fatalf("UpdateColor valid: %v", err)
	}
	bad := "FF5733"
	if err := p.UpdateColor(&bad); err == nil {
		t.Fatal("expected error for color missing #")
	}
}
