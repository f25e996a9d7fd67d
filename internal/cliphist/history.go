// Package cliphist implements the bounded clipboard history ring.
//
// Entries are kept most-recent-first. A read cursor selects the entry that
// paste operations return; it is reset to the front on every Push and only
// moves when Advance is called.
package cliphist

import "sync"

// DefaultCapacity is the number of fragments kept when no capacity is given.
const DefaultCapacity = 10

// History is a bounded, most-recent-first list of copied or cut fragments.
// It is safe for concurrent use.
type History struct {
	mu       sync.Mutex
	entries  []string
	index    int
	capacity int
}

// New creates a history holding at most capacity fragments.
// A capacity below 1 selects DefaultCapacity.
func New(capacity int) *History {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &History{
		entries:  make([]string, 0, capacity),
		capacity: capacity,
	}
}

// Push prepends text, evicting the oldest fragment past capacity, and
// resets the read cursor to the front. Empty text is ignored and reported
// as false.
func (h *History) Push(text string) bool {
	if text == "" {
		return false
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.entries) == h.capacity {
		h.entries = h.entries[:len(h.entries)-1]
	}
	h.entries = append(h.entries, "")
	copy(h.entries[1:], h.entries)
	h.entries[0] = text
	h.index = 0
	return true
}

// Current returns the fragment under the read cursor without moving it.
func (h *History) Current() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.entries) == 0 {
		return "", false
	}
	return h.entries[h.index], true
}

// Advance returns the fragment under the read cursor and then moves the
// cursor to the next older fragment, wrapping to the front.
func (h *History) Advance() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.entries) == 0 {
		return "", false
	}
	text := h.entries[h.index]
	h.index = (h.index + 1) % len(h.entries)
	return text, true
}

// Index returns the read cursor position.
func (h *History) Index() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.index
}

// Len returns the number of fragments held.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Capacity returns the maximum number of fragments held.
func (h *History) Capacity() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.capacity
}

// Entries returns a copy of the fragments, most recent first.
func (h *History) Entries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

// Front returns the most recently pushed fragment.
func (h *History) Front() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.entries) == 0 {
		return "", false
	}
	return h.entries[0], true
}

// Reset discards every fragment.
func (h *History) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = h.entries[:0]
	h.index = 0
}
