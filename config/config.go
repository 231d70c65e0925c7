// Package config persists editor preferences across sessions. Settings
// serialize as YAML and live in the platform data directory through
// gdata; without a storage manager the settings still work in memory.
package config

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	settingsObject   = "settings"
	settingsProperty = "editor"

	maxRecentFiles = 8
)

// Settings are the user-tunable editor preferences.
type Settings struct {
	// Sensitivity scales mouse travel for move, scale, and rotate gestures.
	Sensitivity float32 `yaml:"sensitivity"`

	// TextureDir is where emitter textures are resolved when a model
	// file does not sit next to its textures.
	TextureDir string `yaml:"textureDir"`

	// ReferenceModel is an optional glTF file drawn as a wireframe
	// backdrop for sizing effects against.
	ReferenceModel string `yaml:"referenceModel"`

	// MaxParticles caps the particle pool per emitter.
	MaxParticles int `yaml:"maxParticles"`

	RecentFiles []string `yaml:"recentFiles"`
}

func DefaultSettings() *Settings {
	return &Settings{
		Sensitivity:  0.01,
		MaxParticles: 500000,
	}
}

// Manager loads and saves Settings through a gdata storage manager.
// A nil storage manager degrades to in-memory settings without error.
type Manager struct {
	storage  *gdata.Manager
	settings *Settings
}

func NewManager(storage *gdata.Manager) *Manager {
	m := &Manager{
		storage:  storage,
		settings: DefaultSettings(),
	}
	if err := m.Load(); err != nil {
		log.Printf("settings: load failed, using defaults: %v", err)
	}
	return m
}

// Load reads persisted settings, falling back to defaults when nothing
// has been saved yet or the stored data does not parse.
func (m *Manager) Load() error {
	if m.storage == nil {
		m.settings = DefaultSettings()
		return nil
	}
	if !m.storage.ObjectPropExists(settingsObject, settingsProperty) {
		m.settings = DefaultSettings()
		return nil
	}
	data, err := m.storage.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		m.settings = DefaultSettings()
		return fmt.Errorf("load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		m.settings = DefaultSettings()
		return fmt.Errorf("unmarshal settings: %w", err)
	}
	sanitize(loaded)
	m.settings = loaded
	return nil
}

// Save writes the current settings. Without a storage manager it is a
// no-op.
func (m *Manager) Save() error {
	if m.storage == nil {
		return nil
	}
	data, err := yaml.Marshal(m.settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := m.storage.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

func (m *Manager) Settings() *Settings {
	return m.settings
}

// AddRecentFile promotes path to the front of the recent-files list,
// dropping duplicates and trimming the list to its cap. Call Save to
// persist.
func (m *Manager) AddRecentFile(path string) {
	if path == "" {
		return
	}
	recent := []string{path}
	for _, p := range m.settings.RecentFiles {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > maxRecentFiles {
		recent = recent[:maxRecentFiles]
	}
	m.settings.RecentFiles = recent
}

// sanitize repairs out-of-range values from a hand-edited or stale
// settings file.
func sanitize(s *Settings) {
	if s.Sensitivity <= 0 {
		s.Sensitivity = 0.01
	}
	if s.MaxParticles <= 0 {
		s.MaxParticles = 500000
	}
	if len(s.RecentFiles) > maxRecentFiles {
		s.RecentFiles = s.RecentFiles[:maxRecentFiles]
	}
}
