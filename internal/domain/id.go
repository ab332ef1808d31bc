package domain

import "github.com/google/uuid"

// NewID generates an opaque unique identifier for tasks, entries, and timers.
func NewID() string {
	return uuid.New().String()
}
