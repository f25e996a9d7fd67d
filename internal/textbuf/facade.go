package textbuf

import "github.com/dshills/wledit/internal/input/key"

// Direction is a cursor movement direction.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Target is an absolute cursor destination.
type Target int

const (
	Start Target = iota
	End
	LineStart
	LineEnd
	ScreenTop
	ScreenBottom
)

// String returns the target name.
func (t Target) String() string {
	switch t {
	case Start:
		return "start"
	case End:
		return "end"
	case LineStart:
		return "line-start"
	case LineEnd:
		return "line-end"
	case ScreenTop:
		return "screen-top"
	case ScreenBottom:
		return "screen-bottom"
	default:
		return "unknown"
	}
}

// FindFlags modify Find.
type FindFlags uint8

const (
	// FindIgnoreCase matches letters regardless of case.
	FindIgnoreCase FindFlags = 1 << iota
	// FindWholeWord only matches text not adjacent to word characters.
	FindWholeWord
	// FindBackward searches towards the document start.
	FindBackward
)

// Has reports whether f contains flag.
func (f FindFlags) Has(flag FindFlags) bool {
	return f&flag != 0
}

// Facade is the buffer contract consumed by the chord engine.
type Facade interface {
	// MoveCursor moves one character or line. It reports false when the
	// cursor is already at the boundary in that direction.
	MoveCursor(dir Direction) bool
	// MoveCursorWord moves to the start of the previous (Left) or next
	// (Right) word.
	MoveCursorWord(dir Direction) bool
	MoveCursorTo(target Target)
	CursorPosition() int
	SetCursor(pos int)
	Len() int

	SetSelection(start, end int)
	ClearSelection()
	HasSelection() bool
	// Selection returns the ordered selection bounds.
	Selection() (start, end int, ok bool)
	SelectedText() string
	// DeleteSelection removes the selected text and returns it.
	DeleteSelection() string

	// InsertText inserts at the cursor, replacing any selection.
	InsertText(s string)
	DeleteForward()
	DeleteBackward()
	DeleteToLineEnd() string
	// DeleteLine removes the current line including its terminator.
	DeleteLine() string
	DeleteWordForward() string

	// Find searches from the cursor and selects the match.
	Find(text string, flags FindFlags) bool
	// VisibleLines is the number of lines in the viewport.
	VisibleLines() int

	// HandleKey applies the default handling for keys the chord engine
	// did not claim. It reports whether the key was used.
	HandleKey(ev key.Event) bool
}
