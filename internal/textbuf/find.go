package textbuf

import "unicode"

// Find searches for text from the cursor and selects the next match. A
// forward search starts at the end of the current selection so repeated
// calls advance; a backward search starts before the selection. The
// search does not wrap.
func (b *Buffer) Find(text string, flags FindFlags) bool {
	needle := []rune(text)
	if len(needle) == 0 {
		return false
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	from := b.cursor
	if b.hasSelection() {
		start, end := b.selectionRange()
		from = end
		if flags.Has(FindBackward) {
			from = start
		}
	}

	fold := flags.Has(FindIgnoreCase)
	pos := -1
	if flags.Has(FindBackward) {
		for i := min(from-1, len(b.text)-len(needle)); i >= 0; i-- {
			if b.matchAt(i, needle, fold, flags.Has(FindWholeWord)) {
				pos = i
				break
			}
		}
	} else {
		for i := from; i+len(needle) <= len(b.text); i++ {
			if b.matchAt(i, needle, fold, flags.Has(FindWholeWord)) {
				pos = i
				break
			}
		}
	}
	if pos < 0 {
		return false
	}

	b.anchor = pos
	b.selecting = true
	b.setCursor(pos + len(needle))
	return true
}

func (b *Buffer) matchAt(i int, needle []rune, fold, whole bool) bool {
	for j, r := range needle {
		c := b.text[i+j]
		if c == r {
			continue
		}
		if !fold || unicode.ToLower(c) != unicode.ToLower(r) {
			return false
		}
	}
	return !whole || b.isWordAt(i, i+len(needle))
}
