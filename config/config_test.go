package config

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func TestDefaults(t *testing.T) {
	s := DefaultSettings()
	if s.Sensitivity != 0.01 {
		t.Errorf("default sensitivity = %v, want 0.01", s.Sensitivity)
	}
	if s.MaxParticles != 500000 {
		t.Errorf("default max particles = %d, want 500000", s.MaxParticles)
	}
	if len(s.RecentFiles) != 0 {
		t.Errorf("default recent files = %v, want empty", s.RecentFiles)
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	s := &Settings{
		Sensitivity:    0.02,
		TextureDir:     "/assets/textures",
		ReferenceModel: "scene.gltf",
		MaxParticles:   1000,
		RecentFiles:    []string{"a.mdl", "b.mdl"},
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got Settings
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Sensitivity != s.Sensitivity || got.TextureDir != s.TextureDir ||
		got.ReferenceModel != s.ReferenceModel || got.MaxParticles != s.MaxParticles {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if len(got.RecentFiles) != 2 || got.RecentFiles[0] != "a.mdl" {
		t.Errorf("recent files round trip = %v", got.RecentFiles)
	}
}

func TestNilStorageDegradesGracefully(t *testing.T) {
	m := NewManager(nil)
	if m.Settings().Sensitivity != 0.01 {
		t.Errorf("nil-storage manager sensitivity = %v, want default", m.Settings().Sensitivity)
	}
	m.Settings().Sensitivity = 0.05
	if err := m.Save(); err != nil {
		t.Errorf("save without storage should be a no-op, got %v", err)
	}
	if m.Settings().Sensitivity != 0.05 {
		t.Error("in-memory settings lost after Save")
	}
}

func TestAddRecentFile(t *testing.T) {
	m := NewManager(nil)
	for _, p := range []string{"a.mdl", "b.mdl", "a.mdl"} {
		m.AddRecentFile(p)
	}
	got := m.Settings().RecentFiles
	if len(got) != 2 || got[0] != "a.mdl" || got[1] != "b.mdl" {
		t.Errorf("recent files = %v, want [a.mdl b.mdl]", got)
	}

	for i := 0; i < 12; i++ {
		m.AddRecentFile(string(rune('a'+i)) + "_extra.mdl")
	}
	if len(m.Settings().RecentFiles) != maxRecentFiles {
		t.Errorf("recent files length = %d, want cap %d",
			len(m.Settings().RecentFiles), maxRecentFiles)
	}

	m.AddRecentFile("")
	if len(m.Settings().RecentFiles) != maxRecentFiles {
		t.Error("empty path should be ignored")
	}
}

func TestSanitizeRepairsBadValues(t *testing.T) {
	s := &Settings{Sensitivity: -1, MaxParticles: 0}
	sanitize(s)
	if s.Sensitivity != 0.01 {
		t.Errorf("sanitized sensitivity = %v, want 0.01", s.Sensitivity)
	}
	if s.MaxParticles != 500000 {
		t.Errorf("sanitized max particles = %d, want 500000", s.MaxParticles)
	}
}
