// Package history keeps the linear undo/redo list of full-canvas bitmap
// snapshots.
package history

import (
	"image"
)

// Snapshot is an immutable capture of a canvas's full pixel buffer.
type Snapshot struct {
	img *image.RGBA
}

// Capture deep-copies img into a new snapshot. A nil image yields nil.
func Capture(img *image.RGBA) *Snapshot {
	if img == nil {
		return nil
	}
	cp := image.NewRGBA(img.Bounds())
	if img.Stride == cp.Stride {
		copy(cp.Pix, img.Pix)
	} else {
		for y := img.Rect.Min.Y; y < img.Rect.Max.Y; y++ {
			src := img.Pix[img.PixOffset(img.Rect.Min.X, y):img.PixOffset(img.Rect.Max.X, y)]
			copy(cp.Pix[cp.PixOffset(cp.Rect.Min.X, y):], src)
		}
	}
	return &Snapshot{img: cp}
}

// Image returns a copy of the captured pixels that the caller may mutate.
func (s *Snapshot) Image() *image.RGBA {
	if s == nil {
		return nil
	}
	out := image.NewRGBA(s.img.Bounds())
	copy(out.Pix, s.img.Pix)
	return out
}

// History is an ordered list of snapshots plus a cursor at the current
// entry. The cursor is -1 only while the list is empty.
//
// Committing while the cursor is not at the tail drops every entry after
// the cursor first, so history never branches.
type History struct {
	snapshots []*Snapshot
	cursor    int
}

// New returns an empty history.
func New() *History {
	return &History{cursor: -1}
}

// Reset empties the history.
func (h *History) Reset() {
	h.snapshots = nil
	h.cursor = -1
}

// Commit appends s after the cursor, discarding any redo tail, and moves
// the cursor to it. Nil snapshots are ignored.
func (h *History) Commit(s *Snapshot) {
	if s == nil {
		return
	}
	if h.cursor < len(h.snapshots)-1 {
		// Clear the dropped entries so their buffers can be collected.
		for i := h.cursor + 1; i < len(h.snapshots); i++ {
			h.snapshots[i] = nil
		}
		h.snapshots = h.snapshots[:h.cursor+1]
	}
	h.snapshots = append(h.snapshots, s)
	h.cursor = len(h.snapshots) - 1
}

// Undo steps the cursor back and returns the snapshot now current. It
// reports false, leaving the cursor alone, when already at the oldest
// entry.
func (h *History) Undo() (*Snapshot, bool) {
	if !h.CanUndo() {
		return nil, false
	}
	h.cursor--
	return h.snapshots[h.cursor], true
}

// Redo steps the cursor forward and returns the snapshot now current. It
// reports false when the cursor is already at the newest entry.
func (h *History) Redo() (*Snapshot, bool) {
	if !h.CanRedo() {
		return nil, false
	}
	h.cursor++
	return h.snapshots[h.cursor], true
}

// CanUndo is true when there is an entry before the cursor.
func (h *History) CanUndo() bool {
	return h.cursor > 0
}

// CanRedo is true when there is an entry after the cursor.
func (h *History) CanRedo() bool {
	return h.cursor >= 0 && h.cursor < len(h.snapshots)-1
}

// Cursor returns the index of the current entry, -1 when empty.
func (h *History) Cursor() int { return h.cursor }

// Len returns the number of stored snapshots.
func (h *History) Len() int { return len(h.snapshots) }
