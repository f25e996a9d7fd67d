package textbuf

import (
	"unicode"

	"github.com/rivo/uniseg"
)

// segment is a run of runes between two Unicode word boundaries.
type segment struct {
	start, end int
	word       bool
}

// segments splits the document into word-boundary segments. Offsets are
// rune offsets.
func (b *Buffer) segments() []segment {
	var segs []segment
	rest := string(b.text)
	state := -1
	pos := 0
	for len(rest) > 0 {
		var w string
		w, rest, state = uniseg.FirstWordInString(rest, state)
		n := 0
		word := false
		for _, r := range w {
			n++
			if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
				word = true
			}
		}
		segs = append(segs, segment{start: pos, end: pos + n, word: word})
		pos += n
	}
	return segs
}

// nextWordStart returns the start of the first word segment after pos,
// or the document end.
func (b *Buffer) nextWordStart(pos int) int {
	for _, s := range b.segments() {
		if s.word && s.start > pos {
			return s.start
		}
	}
	return len(b.text)
}

// prevWordStart returns the start of the last word segment before pos,
// or 0.
func (b *Buffer) prevWordStart(pos int) int {
	prev := 0
	for _, s := range b.segments() {
		if s.start >= pos {
			break
		}
		if s.word {
			prev = s.start
		}
	}
	return prev
}

// segmentEnd returns the end of the segment containing pos. A run of
// blanks is treated as one segment.
func (b *Buffer) segmentEnd(pos int) int {
	if pos >= len(b.text) {
		return pos
	}
	if isBlank(b.text[pos]) {
		for pos < len(b.text) && isBlank(b.text[pos]) {
			pos++
		}
		return pos
	}
	for _, s := range b.segments() {
		if pos >= s.start && pos < s.end {
			return s.end
		}
	}
	return pos + 1
}

// isWordAt reports whether [start, end) is bounded by non-word runes.
func (b *Buffer) isWordAt(start, end int) bool {
	if start > 0 && isWordRune(b.text[start-1]) {
		return false
	}
	if end < len(b.text) && isWordRune(b.text[end]) {
		return false
	}
	return true
}

func isBlank(r rune) bool {
	return r == ' ' || r == '\t'
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
