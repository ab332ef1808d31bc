package domain

import (
	"strings"
	"time"
)

// Profile is an id-addressed namespace owning tasks, entries, and at most
// one active timer.
type Profile struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Color       *string   `json:"color,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewProfile constructs a Profile and validates it before returning.
func NewProfile(id, name string) (*Profile, error) {
	now := time.Now().UTC()
	p := &Profile{
		ID:        id,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Profile) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return Validation("profile id cannot be empty")
	}
	if strings.TrimSpace(p.Name) == "" {
		return Validation("profile name cannot be empty")
	}
	for _, c := range p.ID {
		if !(isAlphaNumeric(c) || c == '_' || c == '-') {
			return Validation("profile id must contain only alphanumeric characters, underscores, and hyphens")
		}
	}
	if p.Color != nil && !isValidHexColor(*p.Color) {
		return Validation("color must be a valid hex color (e.g., #FF5733 or #F73)")
	}
	return nil
}

func (p *Profile) UpdateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return Validation("profile name cannot be empty")
	}
	p.Name = name
	p.Touch()
	return nil
}

func (p *Profile) UpdateDescription(description *string) {
	p.Description = description
	p.Touch()
}

func (p *Profile) UpdateColor(color *string) error {
	if color != nil && !isValidHexColor(*color) {
		return Validation("color must be a valid hex color (e.g., #FF5733 or #F73)")
	}
	p.Color = color
	p.Touch()
	return nil
}

func (p *Profile) Touch() {
	p.UpdatedAt = time.Now().UTC()
}

func isAlphaNumeric(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func isValidHexColor(c string) bool {
	if !strings.HasPrefix(c, "#") {
		return false
	}
	hex := c[1:]
	if len(hex) != 3 && len(hex) != 6 {
		return false
	}
	for _, r := range hex {
		if !((r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')) {
			return false
		}
	}
	return true
}
