package editor

import (
	"bytes"

	"github.com/OhtaniSchoolEngineering/organic-simulator/pkg/errors"
)

// DefaultHistoryLimit bounds the undo stack when no limit is configured.
const DefaultHistoryLimit = 30

// History is a bounded undo/redo store of serialized canvas states.  Push
// records the state before an edit; the oldest entry is evicted once the
// limit is reached.
type History struct {
	limit int
	undo  [][]byte
	redo  [][]byte
}

// NewHistory creates a History holding at most limit undo entries.
func NewHistory(limit int) *History {
	if limit < 1 {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit}
}

// Push records snap and clears the redo stack.  A snapshot equal to the
// current top is not recorded twice; Push reports whether it was stored.
func (h *History) Push(snap []byte) bool {
	h.redo = nil
	if n := len(h.undo); n > 0 && bytes.Equal(h.undo[n-1], snap) {
		return false
	}
	h.undo = append(h.undo, snap)
	if len(h.undo) > h.limit {
		copy(h.undo, h.undo[1:])
		h.undo[len(h.undo)-1] = nil
		h.undo = h.undo[:len(h.undo)-1]
	}
	return true
}

// Undo pops the most recent snapshot and stores current for Redo.
func (h *History) Undo(current []byte) ([]byte, error) {
	n := len(h.undo)
	if n == 0 {
		return nil, errors.New(errors.ErrCodeNothingToUndo, "nothing to undo")
	}
	snap := h.undo[n-1]
	h.undo = h.undo[:n-1]
	h.redo = append(h.redo, current)
	return snap, nil
}

// Redo pops the most recently undone state and stores current for Undo.
func (h *History) Redo(current []byte) ([]byte, error) {
	n := len(h.redo)
	if n == 0 {
		return nil, errors.New(errors.ErrCodeNothingToRedo, "nothing to redo")
	}
	snap := h.redo[n-1]
	h.redo = h.redo[:n-1]
	h.undo = append(h.undo, current)
	return snap, nil
}

// Depth returns the sizes of the undo and redo stacks.
func (h *History) Depth() (undo, redo int) { return len(h.undo), len(h.redo) }

// CanUndo reports whether Undo would succeed.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether Redo would succeed.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Reset drops both stacks.
func (h *History) Reset() {
	h.undo = nil
	h.redo = nil
}
