package domain

import "testing"

func TestNewTaskDefaults(t *testing.T) {
	task, err := NewTask("Write tests")
	if err != nil {
		t.Fatalf("NewTask: %v", err)
	}
	if task.Status != TaskTodo {
		t.Fatalf("status = %v, want todo", task.Status)
	}
	if task.Source != TaskSourceManual {
		t.Fatalf("source = %v, want manual", task.Source)
	}
	if len(task.Tags) != 0 {
		t.Fatalf("tags = %v, want empty", task.Tags)
	}
}

func TestNewTaskEmptyTitle(t *testing.T) {
	if _, err := NewTask(""); err == nil {
		t.Fatal("expected error for empty title")
	}
}

func TestTaskStatusTransitions(t *testing.T) {
	task, _ := NewTask("Test")
	task.Start()
	if task.Status != TaskInProgress {
		t.Fatalf("status = %v, want in_progress", task.Status)
	}
	task.Complete()
	if !task.IsCompleted() {
		t.Fatal("expected task to be completed")
	}
}

func TestTaskURLValidation(t *testing.T) {
	task, _ := NewTask("Test")
	bad := "not-a-url"
	if err := task.UpdateURL(&bad); err == nil {
		t.Fatal("expected error for invalid url")
	}
	good := "https://example.com"
	if err := task.UpdateURL(&good); err != nil {
		t.Fatalf("UpdateURL valid: %v", err)
	}
}
