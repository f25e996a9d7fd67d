// Package statusline provides the status row and the prompt minibuffer.
package statusline

import (
	"fmt"
	"strings"
	"sync"

	"github.com/mattn/go-runewidth"

	"github.com/dshills/wledit/internal/renderer/backend"
)

// Height is the number of rows the status line uses.
const Height = 1

// MessageType indicates the type of status message.
type MessageType int

const (
	MessageNone MessageType = iota
	MessageInfo
	MessageWarning
	MessageError
)

// StatusLine renders the bottom row: file info, the pending chord, the
// BLOCK flag and the current message, or the prompt while one is open.
type StatusLine struct {
	mu sync.Mutex

	filename string
	modified bool
	readOnly bool
	line     int // 1-indexed for display
	col      int // 1-indexed for display

	chord string // "^K", "^Q" or ""
	block bool

	message     string
	messageType MessageType

	promptActive bool
	promptLabel  string
	promptInput  []rune
	promptCursor int
}

// New creates a new status line.
func New() *StatusLine {
	return &StatusLine{line: 1, col: 1}
}

// SetFilename updates the displayed filename.
func (s *StatusLine) SetFilename(filename string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filename = filename
}

// SetModified updates the modified indicator.
func (s *StatusLine) SetModified(modified bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modified = modified
}

// SetReadOnly updates the read-only indicator.
func (s *StatusLine) SetReadOnly(ro bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readOnly = ro
}

// SetPosition updates the cursor position (1-indexed).
func (s *StatusLine) SetPosition(line, col int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.line, s.col = line, col
}

// SetChord sets the pending chord indicator.
func (s *StatusLine) SetChord(lead string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chord = lead
}

// SetBlock sets the BLOCK flag.
func (s *StatusLine) SetBlock(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.block = active
}

// SetMessage displays a status message.
func (s *StatusLine) SetMessage(msg string, msgType MessageType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = msg
	s.messageType = msgType
}

// ClearMessage clears the status message.
func (s *StatusLine) ClearMessage() {
	s.SetMessage("", MessageNone)
}

// SetPrompt shows the prompt label followed by the input, with the
// cursor at rune index cursor of the input.
func (s *StatusLine) SetPrompt(label string, input []rune, cursor int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.promptActive = true
	s.promptLabel = label
	s.promptInput = append(s.promptInput[:0], input...)
	s.promptCursor = max(0, min(cursor, len(input)))
}

// ClearPrompt closes the prompt.
func (s *StatusLine) ClearPrompt() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.promptActive = false
	s.promptLabel = ""
	s.promptInput = s.promptInput[:0]
	s.promptCursor = 0
}

// PromptActive reports whether the prompt is shown.
func (s *StatusLine) PromptActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.promptActive
}

// Render draws the status line to the backend at the given row.
func (s *StatusLine) Render(b backend.Backend, row, width int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.promptActive {
		s.renderPrompt(b, row, width)
		return
	}
	s.renderStatusBar(b, row, width)
}

func (s *StatusLine) renderStatusBar(b backend.Backend, row, width int) {
	fill(b, row, width, backend.StyleStatus)

	col := put(b, 0, row, width, " "+s.fileLabel()+" ", backend.StyleStatus)

	right := s.formatRight()
	rightStart := width - runewidth.StringWidth(right)

	if s.message != "" {
		room := rightStart - col - 1
		if room > 0 {
			msg := runewidth.Truncate(s.message, room, "…")
			put(b, col+1, row, width, msg, messageStyle(s.messageType))
		}
	}
	if rightStart > col {
		put(b, rightStart, row, width, right, backend.StyleStatus)
	}
}

func (s *StatusLine) renderPrompt(b backend.Backend, row, width int) {
	fill(b, row, width, backend.StylePrompt)

	col := put(b, 0, row, width, s.promptLabel, backend.StylePrompt)
	put(b, col, row, width, string(s.promptInput), backend.StylePrompt)

	cx := col + runewidth.StringWidth(string(s.promptInput[:s.promptCursor]))
	b.ShowCursor(min(cx, width-1), row)
}

func (s *StatusLine) fileLabel() string {
	name := s.filename
	if name == "" {
		name = "[No Name]"
	}
	if s.modified {
		name += " [+]"
	}
	if s.readOnly {
		name += " [RO]"
	}
	return name
}

// formatRight formats the right side: "^K BLOCK  Ln 3, Col 7 ".
func (s *StatusLine) formatRight() string {
	var flags []string
	if s.chord != "" {
		flags = append(flags, s.chord)
	}
	if s.block {
		flags = append(flags, "BLOCK")
	}
	pos := fmt.Sprintf("Ln %d, Col %d ", max(s.line, 1), max(s.col, 1))
	if len(flags) == 0 {
		return pos
	}
	return strings.Join(flags, " ") + "  " + pos
}

func messageStyle(t MessageType) backend.Style {
	switch t {
	case MessageError:
		return backend.StyleStatusError
	case MessageWarning:
		return backend.StyleStatusWarn
	default:
		return backend.StyleStatus
	}
}

func fill(b backend.Backend, row, width int, style backend.Style) {
	for x := 0; x < width; x++ {
		b.SetCell(x, row, ' ', style)
	}
}

// put draws text from column x and returns the column after it.
func put(b backend.Backend, x, row, width int, text string, style backend.Style) int {
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > width {
			break
		}
		b.SetCell(x, row, r, style)
		x += w
	}
	return x
}
