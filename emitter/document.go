package emitter

import (
	"fmt"
	"os"
	"strings"
)

// Document is the editable model: a named set of emitters plus the
// model-level metadata that round-trips through the file format.
type Document struct {
	ModelName  string
	SuperModel string
	Animations []string
	Emitters   []Emitter
	TextureDir string
	SourcePath string // last loaded/saved file, empty for a fresh document
	Dirty      bool
}

// NewDocument returns a document holding a single default emitter. The
// texture directory starts at the user's home and follows the loaded
// file's directory after a Load.
func NewDocument() *Document {
	d := &Document{
		ModelName:  "emitter_model",
		SuperModel: "NULL",
	}
	if home, err := os.UserHomeDir(); err == nil {
		d.TextureDir = home
	}
	d.Emitters = append(d.Emitters, NewDefault("emitter_1"))
	return d
}

// Add appends a default emitter with a unique name and returns its index.
func (d *Document) Add() int {
	e := NewDefault(d.uniqueName("emitter_1"))
	d.Emitters = append(d.Emitters, e)
	d.Dirty = true
	return len(d.Emitters) - 1
}

// Remove deletes the emitter at i. Out-of-range indices are ignored.
func (d *Document) Remove(i int) {
	if i < 0 || i >= len(d.Emitters) {
		return
	}
	d.Emitters = append(d.Emitters[:i], d.Emitters[i+1:]...)
	d.Dirty = true
}

// Duplicate copies the emitter at i under a fresh name and returns the new
// index, or -1 when i is out of range.
func (d *Document) Duplicate(i int) int {
	if i < 0 || i >= len(d.Emitters) {
		return -1
	}
	dup := d.Emitters[i]
	dup.PositionKeys = d.Emitters[i].PositionKeys.Clone()
	dup.OrientationKeys = d.Emitters[i].OrientationKeys.Clone()
	dup.Name = d.uniqueName(dup.Name)
	d.Emitters = append(d.Emitters, dup)
	d.Dirty = true
	return len(d.Emitters) - 1
}

// Reset discards all emitters and metadata, leaving one default emitter.
func (d *Document) Reset() {
	*d = *NewDocument()
}

func (d *Document) SetModelName(name string) {
	if name == "" {
		name = "emitter_model"
	}
	d.ModelName = name
	d.Dirty = true
}

// uniqueName returns base if unused, otherwise base with its numeric suffix
// replaced by the next free one: "flame" -> "flame_2", "flame_2" -> "flame_3".
func (d *Document) uniqueName(base string) string {
	if !d.nameTaken(base) {
		return base
	}
	stem := base
	n := 1
	if idx := strings.LastIndex(base, "_"); idx >= 0 {
		if v, err := parseSuffix(base[idx+1:]); err == nil {
			stem = base[:idx]
			n = v
		}
	}
	for {
		n++
		candidate := fmt.Sprintf("%s_%d", stem, n)
		if !d.nameTaken(candidate) {
			return candidate
		}
	}
}

func (d *Document) nameTaken(name string) bool {
	for i := range d.Emitters {
		if d.Emitters[i].Name == name {
			return true
		}
	}
	return false
}

func parseSuffix(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("empty suffix")
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("non-numeric suffix %q", s)
		}
		n = n*10 + int(r-'0')
	}
	return n, nil
}
