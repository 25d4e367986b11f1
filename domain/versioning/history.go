package versioning

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"opencut-backend/domain/core/aggregates"
	pkgerrors "opencut-backend/pkg/errors"
)

// History holds the undo/redo stacks for one timeline. Every entry is a
// structurally independent TimelineSnapshot captured before a mutating
// operation; restoring one can never be affected by edits made after it
// was taken.
//
// History is not safe for concurrent use. The editing model is a single
// synchronous writer per session; the owning session serializes access.
type History struct {
	maxDepth int
	undo     []aggregates.TimelineSnapshot
	redo     []aggregates.TimelineSnapshot
}

// NewHistory creates a history with a bounded undo depth. A non-positive
// depth falls back to a sane default.
func NewHistory(maxDepth int) *History {
	if maxDepth <= 0 {
		maxDepth = 100
	}
	return &History{
		maxDepth: maxDepth,
		undo:     []aggregates.TimelineSnapshot{},
		redo:     []aggregates.TimelineSnapshot{},
	}
}

// Push records the pre-mutation state. Any redoable future is discarded:
// a new edit after an undo starts a new branch of history.
func (h *History) Push(snap aggregates.TimelineSnapshot) {
	h.undo = append(h.undo, snap)
	if len(h.undo) > h.maxDepth {
		h.undo = h.undo[len(h.undo)-h.maxDepth:]
	}
	h.redo = h.redo[:0]
}

// Undo exchanges the current state for the most recent entry: current is
// pushed onto the redo stack, the popped entry is returned for restore.
func (h *History) Undo(current aggregates.TimelineSnapshot) (aggregates.TimelineSnapshot, error) {
	if len(h.undo) == 0 {
		return aggregates.TimelineSnapshot{}, pkgerrors.NewNotFound("nothing to undo")
	}
	top := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, current)
	return top, nil
}

// Redo is the mirror of Undo
func (h *History) Redo(current aggregates.TimelineSnapshot) (aggregates.TimelineSnapshot, error) {
	if len(h.redo) == 0 {
		return aggregates.TimelineSnapshot{}, pkgerrors.NewNotFound("nothing to redo")
	}
	top := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, current)
	return top, nil
}

// RevertUndo rolls back the stack exchange of a failed Undo: the popped
// entry returns to the undo stack and the current state parked on the
// redo stack is dropped. Unlike Push, the redoable future survives.
func (h *History) RevertUndo(snap aggregates.TimelineSnapshot) {
	h.undo = append(h.undo, snap)
	if len(h.redo) > 0 {
		h.redo = h.redo[:len(h.redo)-1]
	}
}

// RevertRedo is the mirror of RevertUndo
func (h *History) RevertRedo(snap aggregates.TimelineSnapshot) {
	h.redo = append(h.redo, snap)
	if len(h.undo) > 0 {
		h.undo = h.undo[:len(h.undo)-1]
	}
}

// CanUndo reports whether an undo entry exists
func (h *History) CanUndo() bool {
	return len(h.undo) > 0
}

// CanRedo reports whether a redo entry exists
func (h *History) CanRedo() bool {
	return len(h.redo) > 0
}

// UndoDepth returns the number of undoable entries
func (h *History) UndoDepth() int {
	return len(h.undo)
}

// RedoDepth returns the number of redoable entries
func (h *History) RedoDepth() int {
	return len(h.redo)
}

// Clear drops both stacks
func (h *History) Clear() {
	h.undo = h.undo[:0]
	h.redo = h.redo[:0]
}

// Checksum returns a content hash of a snapshot, useful for detecting
// whether two snapshots describe identical track state.
func Checksum(snap aggregates.TimelineSnapshot) (string, error) {
	data, err := json.Marshal(snap.Tracks)
	if err != nil {
		return "", fmt.Errorf("failed to serialize snapshot for checksum: %w", err)
	}
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:]), nil
}
