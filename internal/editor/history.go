package editor

import "github.com/ironsheep/image-editor/internal/imaging"

// MaxHistory is the number of snapshots kept for undo/redo.
const MaxHistory = 20

// History is a bounded linear undo stack of image snapshots.
//
// The entries are immutable RasterImage values, so History can hand out the
// stored pointer as "current" without copying. index always addresses the
// current entry, or is -1 when the history is empty.
type History struct {
	entries []*imaging.RasterImage
	index   int
	limit   int
}

// NewHistory creates an empty history holding at most limit snapshots.
// A limit below one means MaxHistory.
func NewHistory(limit int) *History {
	if limit < 1 {
		limit = MaxHistory
	}
	return &History{index: -1, limit: limit}
}

// Reset discards everything and starts over with img as the only entry.
func (h *History) Reset(img *imaging.RasterImage) {
	h.entries = append(h.entries[:0:0], img)
	h.index = 0
}

// Push drops every entry after the current one, appends img, and evicts the
// oldest entry if the limit is exceeded.
func (h *History) Push(img *imaging.RasterImage) {
	h.entries = append(h.entries[:h.index+1], img)
	h.index++
	if len(h.entries) > h.limit {
		h.entries[0] = nil
		h.entries = h.entries[1:]
		h.index--
	}
}

// Undo steps back one entry. It reports false at the oldest entry.
func (h *History) Undo() bool {
	if h.index <= 0 {
		return false
	}
	h.index--
	return true
}

// Redo steps forward one entry. It reports false at the newest entry.
func (h *History) Redo() bool {
	if h.index >= len(h.entries)-1 {
		return false
	}
	h.index++
	return true
}

// Current returns the entry at the index, or nil when empty.
func (h *History) Current() *imaging.RasterImage {
	if h.index < 0 {
		return nil
	}
	return h.entries[h.index]
}

// Len returns the number of stored snapshots.
func (h *History) Len() int { return len(h.entries) }

// Index returns the position of the current snapshot, -1 when empty.
func (h *History) Index() int { return h.index }

// CanUndo reports whether Undo would move.
func (h *History) CanUndo() bool { return h.index > 0 }

// CanRedo reports whether Redo would move.
func (h *History) CanRedo() bool { return h.index >= 0 && h.index < len(h.entries)-1 }
