// Package history implements linear undo/redo over document snapshots.
//
// The stack always holds the opening state as its first entry; the cursor
// points at the entry currently displayed. Committing after an undo
// discards the redo branch.
package history

// Stack is a linear undo/redo history.
type Stack struct {
	entries []*Snapshot
	cursor  int
	limit   int
}

// New creates a stack seeded with the opening state. A limit of zero or
// less keeps every entry; otherwise the oldest entries are dropped once
// more than limit entries exist.
func New(initial *Snapshot, limit int) *Stack {
	return &Stack{
		entries: []*Snapshot{initial},
		limit:   limit,
	}
}

// Commit appends s after the cursor, discarding any redo entries.
func (h *Stack) Commit(s *Snapshot) {
	if h.cursor < len(h.entries)-1 {
		for i := h.cursor + 1; i < len(h.entries); i++ {
			h.entries[i] = nil
		}
		h.entries = h.entries[:h.cursor+1]
	}
	h.entries = append(h.entries, s)
	h.cursor = len(h.entries) - 1

	if h.limit > 0 && len(h.entries) > h.limit {
		drop := len(h.entries) - h.limit
		h.entries = append(h.entries[:0], h.entries[drop:]...)
		h.cursor -= drop
	}
}

// Undo steps back one entry. It reports false when already at the oldest
// entry.
func (h *Stack) Undo() (*Snapshot, bool) {
	if h.cursor <= 0 {
		return nil, false
	}
	h.cursor--
	return h.entries[h.cursor], true
}

// Redo steps forward one entry. It reports false when at the newest entry.
func (h *Stack) Redo() (*Snapshot, bool) {
	if h.cursor >= len(h.entries)-1 {
		return nil, false
	}
	h.cursor++
	return h.entries[h.cursor], true
}

// Current returns the entry at the cursor.
func (h *Stack) Current() *Snapshot { return h.entries[h.cursor] }

// Reset drops every entry and seeds the stack with s.
func (h *Stack) Reset(s *Snapshot) {
	h.entries = []*Snapshot{s}
	h.cursor = 0
}

func (h *Stack) Len() int      { return len(h.entries) }
func (h *Stack) Cursor() int   { return h.cursor }
func (h *Stack) CanUndo() bool { return h.cursor > 0 }
func (h *Stack) CanRedo() bool { return h.cursor < len(h.entries)-1 }
