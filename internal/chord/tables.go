package chord

import "unicode"

// Table maps an uppercase letter to a command.
type Table map[rune]Command

// Lookup returns the command bound to letter, case-insensitively.
func (t Table) Lookup(letter rune) (Command, bool) {
	cmd, ok := t[unicode.ToUpper(letter)]
	return cmd, ok
}

// Tables holds the three lookup tables of the chord engine.
type Tables struct {
	// Primary resolves single control keystrokes.
	Primary Table
	// Q resolves the key after ^Q.
	Q Table
	// K resolves the key after ^K.
	K Table
}

// DefaultTables returns the WordStar bindings.
func DefaultTables() Tables {
	return Tables{
		Primary: Table{
			'E': CmdCursorUp,
			'S': CmdCursorLeft,
			'D': CmdCursorRight,
			'X': CmdCursorDown,
			'R': CmdPageUp,
			'C': CmdPageDown,
			'G': CmdDeleteForward,
			'H': CmdDeleteBackward,
			'T': CmdDeleteWordRight,
			'Y': CmdDeleteLine,
			'A': CmdWordLeft,
			'F': CmdWordRight,
			'L': CmdRepeatSearch,
			'Q': CmdLeadQ,
			'K': CmdLeadK,
		},
		Q: Table{
			'F': CmdOpenFind,
			'A': CmdOpenReplace,
			'R': CmdDocStart,
			'C': CmdDocEnd,
			'S': CmdLineStart,
			'D': CmdLineEnd,
			'E': CmdScreenTop,
			'X': CmdScreenBottom,
		},
		K: Table{
			'B': CmdBlockBegin,
			'K': CmdBlockCopy,
			'Y': CmdBlockCut,
			'C': CmdPasteCurrent,
			'V': CmdPasteAdvance,
		},
	}
}

// table returns the second-key table for a pending state.
func (t Tables) table(s State) Table {
	switch s {
	case AwaitQ:
		return t.Q
	case AwaitK:
		return t.K
	default:
		return t.Primary
	}
}
