package editor

import (
	"fmt"

	"emitter-editor/emitter"
)

// Command is an undoable document edit.
type Command interface {
	Execute() error
	Undo() error
	Description() string
}

// History holds the undo and redo stacks. Executing a new command clears
// the redo stack.
type History struct {
	undoStack []Command
	redoStack []Command
	maxDepth  int
}

func NewHistory(maxDepth int) *History {
	return &History{maxDepth: maxDepth}
}

// Do executes the command and pushes it onto the undo stack.
func (h *History) Do(cmd Command) error {
	if err := cmd.Execute(); err != nil {
		return err
	}
	h.undoStack = append(h.undoStack, cmd)
	if len(h.undoStack) > h.maxDepth {
		h.undoStack = h.undoStack[1:]
	}
	h.redoStack = h.redoStack[:0]
	return nil
}

// Record pushes a command that has already taken effect, without calling
// Execute. Used for gestures that mutate the document live and only need
// the undo step on confirm.
func (h *History) Record(cmd Command) {
	h.undoStack = append(h.undoStack, cmd)
	if len(h.undoStack) > h.maxDepth {
		h.undoStack = h.undoStack[1:]
	}
	h.redoStack = h.redoStack[:0]
}

func (h *History) Undo() error {
	if len(h.undoStack) == 0 {
		return nil
	}
	cmd := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	if err := cmd.Undo(); err != nil {
		return err
	}
	h.redoStack = append(h.redoStack, cmd)
	return nil
}

func (h *History) Redo() error {
	if len(h.redoStack) == 0 {
		return nil
	}
	cmd := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	if err := cmd.Execute(); err != nil {
		return err
	}
	h.undoStack = append(h.undoStack, cmd)
	return nil
}

func (h *History) CanUndo() bool { return len(h.undoStack) > 0 }
func (h *History) CanRedo() bool { return len(h.redoStack) > 0 }

func (h *History) Clear() {
	h.undoStack = h.undoStack[:0]
	h.redoStack = h.redoStack[:0]
}

func cloneEmitter(e emitter.Emitter) emitter.Emitter {
	c := e
	c.PositionKeys = e.PositionKeys.Clone()
	c.OrientationKeys = e.OrientationKeys.Clone()
	return c
}

// TransformCommand swaps an emitter between two full snapshots. The
// gesture writes the new state directly, so Execute is a no-op on first
// run but replays the change on redo.
type TransformCommand struct {
	doc    *emitter.Document
	index  int
	before emitter.Emitter
	after  emitter.Emitter
	label  string
}

func NewTransformCommand(doc *emitter.Document, index int, before, after emitter.Emitter, label string) *TransformCommand {
	return &TransformCommand{
		doc:    doc,
		index:  index,
		before: cloneEmitter(before),
		after:  cloneEmitter(after),
		label:  label,
	}
}

func (c *TransformCommand) Execute() error {
	if c.index < 0 || c.index >= len(c.doc.Emitters) {
		return fmt.Errorf("transform: emitter index %d out of range", c.index)
	}
	c.doc.Emitters[c.index] = cloneEmitter(c.after)
	c.doc.Dirty = true
	return nil
}

func (c *TransformCommand) Undo() error {
	if c.index < 0 || c.index >= len(c.doc.Emitters) {
		return fmt.Errorf("transform: emitter index %d out of range", c.index)
	}
	c.doc.Emitters[c.index] = cloneEmitter(c.before)
	c.doc.Dirty = true
	return nil
}

func (c *TransformCommand) Description() string {
	return fmt.Sprintf("%s %q", c.label, c.before.Name)
}

// AddEmitterCommand appends a fresh default emitter.
type AddEmitterCommand struct {
	doc   *emitter.Document
	index int
}

func NewAddEmitterCommand(doc *emitter.Document) *AddEmitterCommand {
	return &AddEmitterCommand{doc: doc, index: -1}
}

func (c *AddEmitterCommand) Execute() error {
	c.index = c.doc.Add()
	return nil
}

func (c *AddEmitterCommand) Undo() error {
	c.doc.Remove(c.index)
	return nil
}

func (c *AddEmitterCommand) Description() string { return "add emitter" }

// Index returns the position of the added emitter, or -1 before Execute.
func (c *AddEmitterCommand) Index() int { return c.index }

// RemoveEmitterCommand deletes an emitter and restores it at the same
// position on undo.
type RemoveEmitterCommand struct {
	doc     *emitter.Document
	index   int
	removed emitter.Emitter
}

func NewRemoveEmitterCommand(doc *emitter.Document, index int) *RemoveEmitterCommand {
	return &RemoveEmitterCommand{doc: doc, index: index}
}

func (c *RemoveEmitterCommand) Execute() error {
	if c.index < 0 || c.index >= len(c.doc.Emitters) {
		return fmt.Errorf("remove: emitter index %d out of range", c.index)
	}
	c.removed = cloneEmitter(c.doc.Emitters[c.index])
	c.doc.Remove(c.index)
	return nil
}

func (c *RemoveEmitterCommand) Undo() error {
	if c.index < 0 || c.index > len(c.doc.Emitters) {
		return fmt.Errorf("remove: emitter index %d out of range", c.index)
	}
	c.doc.Emitters = append(c.doc.Emitters, emitter.Emitter{})
	copy(c.doc.Emitters[c.index+1:], c.doc.Emitters[c.index:])
	c.doc.Emitters[c.index] = cloneEmitter(c.removed)
	c.doc.Dirty = true
	return nil
}

func (c *RemoveEmitterCommand) Description() string {
	return fmt.Sprintf("remove emitter %q", c.removed.Name)
}

// DuplicateEmitterCommand copies an emitter under a fresh name.
type DuplicateEmitterCommand struct {
	doc      *emitter.Document
	source   int
	newIndex int
}

func NewDuplicateEmitterCommand(doc *emitter.Document, source int) *DuplicateEmitterCommand {
	return &DuplicateEmitterCommand{doc: doc, source: source, newIndex: -1}
}

func (c *DuplicateEmitterCommand) Execute() error {
	c.newIndex = c.doc.Duplicate(c.source)
	if c.newIndex < 0 {
		return fmt.Errorf("duplicate: emitter index %d out of range", c.source)
	}
	return nil
}

func (c *DuplicateEmitterCommand) Undo() error {
	c.doc.Remove(c.newIndex)
	return nil
}

func (c *DuplicateEmitterCommand) Description() string { return "duplicate emitter" }

// Index returns the position of the duplicate, or -1 before Execute.
func (c *DuplicateEmitterCommand) Index() int { return c.newIndex }
