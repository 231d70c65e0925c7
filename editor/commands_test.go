package editor

import (
	"testing"

	"emitter-editor/emitter"
	"emitter-editor/math"
)

func TestHistoryUndoRedo(t *testing.T) {
	doc := emitter.NewDocument()
	h := NewHistory(100)

	if err := h.Do(NewAddEmitterCommand(doc)); err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(doc.Emitters) != 2 {
		t.Fatalf("emitters after add = %d, want 2", len(doc.Emitters))
	}
	if !h.CanUndo() || h.CanRedo() {
		t.Error("expected undo available, redo empty")
	}

	if err := h.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if len(doc.Emitters) != 1 {
		t.Errorf("emitters after undo = %d, want 1", len(doc.Emitters))
	}
	if !h.CanRedo() {
		t.Error("redo should be available after undo")
	}

	if err := h.Redo(); err != nil {
		t.Fatalf("redo: %v", err)
	}
	if len(doc.Emitters) != 2 {
		t.Errorf("emitters after redo = %d, want 2", len(doc.Emitters))
	}
}

func TestHistoryNewCommandClearsRedo(t *testing.T) {
	doc := emitter.NewDocument()
	h := NewHistory(100)

	h.Do(NewAddEmitterCommand(doc))
	h.Undo()
	h.Do(NewAddEmitterCommand(doc))
	if h.CanRedo() {
		t.Error("redo stack should clear when a new command executes")
	}
}

func TestHistoryMaxDepth(t *testing.T) {
	doc := emitter.NewDocument()
	h := NewHistory(3)

	for i := 0; i < 5; i++ {
		h.Do(NewAddEmitterCommand(doc))
	}
	undone := 0
	for h.CanUndo() {
		h.Undo()
		undone++
	}
	if undone != 3 {
		t.Errorf("undid %d commands, want depth limit 3", undone)
	}
}

func TestRemoveEmitterRestoresAtPosition(t *testing.T) {
	doc := emitter.NewDocument()
	doc.Add()
	doc.Add()
	doc.Emitters[1].Name = "middle"
	doc.Emitters[1].Position = math.Vec3{X: 7}

	h := NewHistory(100)
	if err := h.Do(NewRemoveEmitterCommand(doc, 1)); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(doc.Emitters) != 2 {
		t.Fatalf("emitters after remove = %d, want 2", len(doc.Emitters))
	}

	if err := h.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if len(doc.Emitters) != 3 {
		t.Fatalf("emitters after undo = %d, want 3", len(doc.Emitters))
	}
	if doc.Emitters[1].Name != "middle" {
		t.Errorf("restored emitter at index 1 named %q, want \"middle\"", doc.Emitters[1].Name)
	}
	if doc.Emitters[1].Position.X != 7 {
		t.Errorf("restored emitter lost its position: %v", doc.Emitters[1].Position)
	}
}

func TestRemoveEmitterOutOfRange(t *testing.T) {
	doc := emitter.NewDocument()
	h := NewHistory(100)
	if err := h.Do(NewRemoveEmitterCommand(doc, 5)); err == nil {
		t.Error("removing an out-of-range index should fail")
	}
	if h.CanUndo() {
		t.Error("failed command must not land on the undo stack")
	}
}

func TestDuplicateEmitterUndo(t *testing.T) {
	doc := emitter.NewDocument()
	doc.Emitters[0].Name = "flame"

	h := NewHistory(100)
	cmd := NewDuplicateEmitterCommand(doc, 0)
	if err := h.Do(cmd); err != nil {
		t.Fatalf("duplicate: %v", err)
	}
	if cmd.Index() < 0 || doc.Emitters[cmd.Index()].Name != "flame_2" {
		t.Errorf("duplicate named %q, want flame_2", doc.Emitters[cmd.Index()].Name)
	}

	h.Undo()
	if len(doc.Emitters) != 1 {
		t.Errorf("emitters after undo = %d, want 1", len(doc.Emitters))
	}
}

func TestTransformCommandRedoReplays(t *testing.T) {
	doc := emitter.NewDocument()
	before := cloneEmitter(doc.Emitters[0])
	doc.Emitters[0].Position = math.Vec3{X: 2, Z: 1}
	after := cloneEmitter(doc.Emitters[0])

	h := NewHistory(100)
	h.Record(NewTransformCommand(doc, 0, before, after, "move"))

	h.Undo()
	if doc.Emitters[0].Position != before.Position {
		t.Errorf("undo position = %v, want %v", doc.Emitters[0].Position, before.Position)
	}
	h.Redo()
	if doc.Emitters[0].Position != after.Position {
		t.Errorf("redo position = %v, want %v", doc.Emitters[0].Position, after.Position)
	}
}

func TestTransformCommandDeepCopiesTracks(t *testing.T) {
	doc := emitter.NewDocument()
	doc.Emitters[0].PositionKeys.Add(0, math.Vec3Zero)
	before := cloneEmitter(doc.Emitters[0])
	after := cloneEmitter(doc.Emitters[0])
	after.Position = math.Vec3{Y: 1}

	cmd := NewTransformCommand(doc, 0, before, after, "move")
	h := NewHistory(100)
	h.Record(cmd)

	// Mutating the document's track after the fact must not leak into
	// the recorded snapshots.
	doc.Emitters[0].PositionKeys.Add(5, math.Vec3{X: 9})
	h.Undo()
	if len(doc.Emitters[0].PositionKeys.Keys) != 1 {
		t.Errorf("undo restored %d keys, want the original 1",
			len(doc.Emitters[0].PositionKeys.Keys))
	}
}
