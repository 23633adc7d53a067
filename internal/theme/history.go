package theme

// History is an undo/redo stack of token snapshots. The index always points
// at a valid entry.
type History struct {
	entries []Tokens
	index   int
	limit   int
}

// NewHistory starts a history with initial as its only entry. A positive
// limit caps the number of retained snapshots, dropping the oldest.
func NewHistory(initial Tokens, limit int) *History {
	return &History{
		entries: []Tokens{initial.Clone()},
		limit:   limit,
	}
}

// Push discards any redo entries beyond the index and appends a copy of t.
func (h *History) Push(t Tokens) {
	h.entries = append(h.entries[:h.index+1], t.Clone())
	if h.limit > 0 && len(h.entries) > h.limit {
		drop := len(h.entries) - h.limit
		h.entries = append([]Tokens(nil), h.entries[drop:]...)
	}
	h.index = len(h.entries) - 1
}

// Undo moves back one entry. It reports false at the first entry.
func (h *History) Undo() (Tokens, bool) {
	if h.index == 0 {
		return nil, false
	}
	h.index--
	return h.entries[h.index].Clone(), true
}

// Redo moves forward one entry. It reports false at the last entry.
func (h *History) Redo() (Tokens, bool) {
	if h.index >= len(h.entries)-1 {
		return nil, false
	}
	h.index++
	return h.entries[h.index].Clone(), true
}

// Rebase rewrites key to value in every entry that still holds from, so
// stepping through history never restores a value replaced underneath it.
func (h *History) Rebase(key, from, value string) {
	for _, e := range h.entries {
		if e[key] == from {
			e[key] = value
		}
	}
}

// Current returns a copy of the entry at the index.
func (h *History) Current() Tokens {
	return h.entries[h.index].Clone()
}

// Len returns the number of entries.
func (h *History) Len() int { return len(h.entries) }

// Index returns the current position.
func (h *History) Index() int { return h.index }

// CanUndo reports whether Undo would move.
func (h *History) CanUndo() bool { return h.index > 0 }

// CanRedo reports whether Redo would move.
func (h *History) CanRedo() bool { return h.index < len(h.entries)-1 }
