package model

import (
	"time"

	"github.com/google/uuid"
)

// Preset is a reusable, named machining configuration. It captures the full
// CamConfig but no input geometry or results.
type Preset struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   string    `json:"created_at"`
	UpdatedAt   string    `json:"updated_at"`
	Config      CamConfig `json:"config"`
}

// NewPreset creates a preset from the given configuration.
func NewPreset(name, description string, config CamConfig) Preset {
	now := time.Now().UTC().Format(time.RFC3339)
	return Preset{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Config:      config,
	}
}

// PresetStore holds a collection of machining presets.
type PresetStore struct {
	Presets []Preset `json:"presets"`
}

// NewPresetStore creates an empty preset store.
func NewPresetStore() PresetStore {
	return PresetStore{Presets: []Preset{}}
}

// Add adds a preset to the store.
func (ps *PresetStore) Add(p Preset) {
	ps.Presets = append(ps.Presets, p)
}

// Remove removes a preset by ID. Returns true if found and removed.
func (ps *PresetStore) Remove(id string) bool {
	for i, p := range ps.Presets {
		if p.ID == id {
			ps.Presets = append(ps.Presets[:i], ps.Presets[i+1:]...)
			return true
		}
	}
	return false
}

// Get returns the preset with the given ID, or false if absent.
func (ps *PresetStore) Get(id string) (Preset, bool) {
	for _, p := range ps.Presets {
		if p.ID == id {
			return p, true
		}
	}
	return Preset{}, false
}

// FindByName returns the first preset with the given name, or false.
func (ps *PresetStore) FindByName(name string) (Preset, bool) {
	for _, p := range ps.Presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

// Update replaces the preset with the same ID and bumps its UpdatedAt.
// Returns true if a preset was replaced.
func (ps *PresetStore) Update(p Preset) bool {
	for i, existing := range ps.Presets {
		if existing.ID == p.ID {
			p.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
			ps.Presets[i] = p
			return true
		}
	}
	return false
}
