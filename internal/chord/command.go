package chord

// Command is a resolved editor command.
type Command uint8

const (
	CmdNone Command = iota

	// Primary table.
	CmdCursorUp
	CmdCursorLeft
	CmdCursorRight
	CmdCursorDown
	CmdPageUp
	CmdPageDown
	CmdDeleteForward
	CmdDeleteBackward
	CmdDeleteWordRight
	CmdDeleteLine
	CmdWordLeft
	CmdWordRight
	CmdRepeatSearch
	CmdLeadQ
	CmdLeadK

	// Q table.
	CmdOpenFind
	CmdOpenReplace
	CmdDocStart
	CmdDocEnd
	CmdLineStart
	CmdLineEnd
	CmdScreenTop
	CmdScreenBottom

	// K table.
	CmdBlockBegin
	CmdBlockCopy
	CmdBlockCut
	CmdPasteCurrent
	CmdPasteAdvance

	cmdCount
)

var commandNames = [cmdCount]string{
	CmdNone:            "none",
	CmdCursorUp:        "cursor-up",
	CmdCursorLeft:      "cursor-left",
	CmdCursorRight:     "cursor-right",
	CmdCursorDown:      "cursor-down",
	CmdPageUp:          "page-up",
	CmdPageDown:        "page-down",
	CmdDeleteForward:   "delete-forward",
	CmdDeleteBackward:  "delete-backward",
	CmdDeleteWordRight: "delete-word-right",
	CmdDeleteLine:      "delete-line",
	CmdWordLeft:        "word-left",
	CmdWordRight:       "word-right",
	CmdRepeatSearch:    "repeat-search",
	CmdLeadQ:           "lead-q",
	CmdLeadK:           "lead-k",
	CmdOpenFind:        "open-find",
	CmdOpenReplace:     "open-replace",
	CmdDocStart:        "doc-start",
	CmdDocEnd:          "doc-end",
	CmdLineStart:       "line-start",
	CmdLineEnd:         "line-end",
	CmdScreenTop:       "screen-top",
	CmdScreenBottom:    "screen-bottom",
	CmdBlockBegin:      "block-begin",
	CmdBlockCopy:       "block-copy",
	CmdBlockCut:        "block-cut",
	CmdPasteCurrent:    "paste-current",
	CmdPasteAdvance:    "paste-advance",
}

// String returns the command name, e.g. "block-copy".
func (c Command) String() string {
	if int(c) < len(commandNames) {
		return commandNames[c]
	}
	return "unknown"
}

// Category groups commands by their effect.
type Category uint8

const (
	// Navigation commands move the cursor and never touch history.
	Navigation Category = iota
	// Editing commands mutate the buffer without touching history.
	Editing
	// History commands read or write the clipboard history.
	History
	// Prompt commands open a prompt or repeat a search.
	Prompt
	// Chord commands are chord leads.
	Chord
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case Navigation:
		return "navigation"
	case Editing:
		return "editing"
	case History:
		return "history"
	case Prompt:
		return "prompt"
	case Chord:
		return "chord"
	default:
		return "unknown"
	}
}

// Category returns the category of c.
func (c Command) Category() Category {
	switch c {
	case CmdDeleteForward, CmdDeleteBackward, CmdDeleteWordRight, CmdDeleteLine:
		return Editing
	case CmdBlockBegin, CmdBlockCopy, CmdBlockCut, CmdPasteCurrent, CmdPasteAdvance:
		return History
	case CmdRepeatSearch, CmdOpenFind, CmdOpenReplace:
		return Prompt
	case CmdLeadQ, CmdLeadK:
		return Chord
	default:
		return Navigation
	}
}
