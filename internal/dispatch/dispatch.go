// Package dispatch executes resolved chord commands against the text
// buffer, block controller, clipboard history, search engine and status
// surface.
package dispatch

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/dshills/wledit/internal/block"
	"github.com/dshills/wledit/internal/chord"
	"github.com/dshills/wledit/internal/clipboard"
	"github.com/dshills/wledit/internal/cliphist"
	"github.com/dshills/wledit/internal/input/key"
	"github.com/dshills/wledit/internal/logging"
	"github.com/dshills/wledit/internal/search"
	"github.com/dshills/wledit/internal/status"
	"github.com/dshills/wledit/internal/textbuf"
)

// ErrInvalidDeleteLine is returned by ParseDeleteLine for unknown names.
var ErrInvalidDeleteLine = errors.New("invalid delete-line mode")

// DeleteLineMode selects what ^Y deletes.
type DeleteLineMode uint8

const (
	// DeleteToEnd deletes from the cursor to the end of the line.
	DeleteToEnd DeleteLineMode = iota
	// DeleteWholeLine deletes the current line and its terminator.
	DeleteWholeLine
)

// String returns the configuration name of the mode.
func (m DeleteLineMode) String() string {
	if m == DeleteWholeLine {
		return "whole_line"
	}
	return "to_end"
}

// ParseDeleteLine parses "to_end" or "whole_line".
func ParseDeleteLine(s string) (DeleteLineMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "to_end":
		return DeleteToEnd, nil
	case "whole_line":
		return DeleteWholeLine, nil
	default:
		return DeleteToEnd, fmt.Errorf("%w: %q", ErrInvalidDeleteLine, s)
	}
}

// PromptKind identifies an interactive prompt.
type PromptKind uint8

const (
	PromptFind PromptKind = iota
	PromptReplace
)

// String returns the prompt name.
func (k PromptKind) String() string {
	if k == PromptReplace {
		return "replace"
	}
	return "find"
}

// Prompter opens interactive prompts. Prompt must not block; the host
// reports the answer through Dispatcher.Find or Dispatcher.Replace.
type Prompter interface {
	Prompt(kind PromptKind)
}

// Deps are the collaborators of a Dispatcher. Prompter may be nil.
type Deps struct {
	Buffer    textbuf.Facade
	Block     *block.Controller
	History   *cliphist.History
	Clipboard clipboard.Clipboard
	Search    *search.Engine
	Status    status.Surface
	Prompter  Prompter
	Logger    *logging.Logger
}

// Dispatcher implements chord.Executor.
type Dispatcher struct {
	buf      textbuf.Facade
	block    *block.Controller
	history  *cliphist.History
	clip     clipboard.Clipboard
	search   *search.Engine
	status   status.Surface
	prompter Prompter
	logger   *logging.Logger

	mu         sync.Mutex
	deleteLine DeleteLineMode
}

// New creates a dispatcher.
func New(d Deps, mode DeleteLineMode) *Dispatcher {
	if d.Logger == nil {
		d.Logger = logging.Null()
	}
	return &Dispatcher{
		buf:        d.Buffer,
		block:      d.Block,
		history:    d.History,
		clip:       d.Clipboard,
		search:     d.Search,
		status:     d.Status,
		prompter:   d.Prompter,
		logger:     d.Logger.WithComponent("dispatch"),
		deleteLine: mode,
	}
}

// SetPrompter sets the prompter. Hosts that create their prompt UI after
// the dispatcher use it.
func (d *Dispatcher) SetPrompter(p Prompter) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.prompter = p
}

// SetDeleteLine changes the ^Y behavior.
func (d *Dispatcher) SetDeleteLine(m DeleteLineMode) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.deleteLine = m
}

// DeleteLine returns the ^Y behavior.
func (d *Dispatcher) DeleteLine() DeleteLineMode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.deleteLine
}

// Execute runs cmd.
func (d *Dispatcher) Execute(cmd chord.Command) {
	switch cmd.Category() {
	case chord.Navigation:
		d.navigate(cmd)
		d.block.Extend()
	case chord.Editing:
		d.edit(cmd)
	case chord.History:
		d.runHistory(cmd)
	case chord.Prompt:
		d.prompt(cmd)
	case chord.Chord:
		lead := chord.AwaitQ
		if cmd == chord.CmdLeadK {
			lead = chord.AwaitK
		}
		d.show("%s awaiting second key", lead)
	}
}

// Cancel cancels block mode, or else clears the buffer selection.
func (d *Dispatcher) Cancel() bool {
	if d.block.Cancel() {
		d.show("block cancelled")
		return true
	}
	if d.buf.HasSelection() {
		d.buf.ClearSelection()
		return true
	}
	return false
}

// Absorb reports an unmatched second key.
func (d *Dispatcher) Absorb(lead chord.State, ev key.Event) {
	d.show("unknown %s command: %s", lead, ev)
}

func (d *Dispatcher) navigate(cmd chord.Command) {
	switch cmd {
	case chord.CmdCursorUp:
		d.buf.MoveCursor(textbuf.Up)
	case chord.CmdCursorDown:
		d.buf.MoveCursor(textbuf.Down)
	case chord.CmdCursorLeft:
		d.buf.MoveCursor(textbuf.Left)
	case chord.CmdCursorRight:
		d.buf.MoveCursor(textbuf.Right)
	case chord.CmdPageUp:
		d.page(textbuf.Up)
	case chord.CmdPageDown:
		d.page(textbuf.Down)
	case chord.CmdWordLeft:
		d.buf.MoveCursorWord(textbuf.Left)
	case chord.CmdWordRight:
		d.buf.MoveCursorWord(textbuf.Right)
	case chord.CmdDocStart:
		d.buf.MoveCursorTo(textbuf.Start)
	case chord.CmdDocEnd:
		d.buf.MoveCursorTo(textbuf.End)
	case chord.CmdLineStart:
		d.buf.MoveCursorTo(textbuf.LineStart)
	case chord.CmdLineEnd:
		d.buf.MoveCursorTo(textbuf.LineEnd)
	case chord.CmdScreenTop:
		d.buf.MoveCursorTo(textbuf.ScreenTop)
	case chord.CmdScreenBottom:
		d.buf.MoveCursorTo(textbuf.ScreenBottom)
	}
}

// page moves by one screen less a line, stopping at the document edge.
func (d *Dispatcher) page(dir textbuf.Direction) {
	n := max(d.buf.VisibleLines()-1, 1)
	for i := 0; i < n; i++ {
		if !d.buf.MoveCursor(dir) {
			break
		}
	}
}

func (d *Dispatcher) edit(cmd chord.Command) {
	// Edits act at the cursor, not on the mirrored block selection.
	if d.block.Active() {
		d.buf.ClearSelection()
	}

	switch cmd {
	case chord.CmdDeleteForward:
		d.buf.DeleteForward()
	case chord.CmdDeleteBackward:
		d.buf.DeleteBackward()
	case chord.CmdDeleteWordRight:
		d.buf.DeleteWordForward()
	case chord.CmdDeleteLine:
		if d.DeleteLine() == DeleteWholeLine {
			d.buf.DeleteLine()
		} else {
			d.buf.DeleteToLineEnd()
		}
	}
	d.block.Extend()
}

// runHistory runs block and paste commands.
func (d *Dispatcher) runHistory(cmd chord.Command) {
	switch cmd {
	case chord.CmdBlockBegin:
		d.block.Enter()
		d.show("block begins")
	case chord.CmdBlockCopy:
		d.reportCommit("copy", "copied", d.block.Copy())
	case chord.CmdBlockCut:
		d.reportCommit("cut", "cut", d.block.Cut())
	case chord.CmdPasteCurrent:
		text, ok := d.history.Current()
		d.paste(text, ok)
	case chord.CmdPasteAdvance:
		text, ok := d.history.Advance()
		d.paste(text, ok)
	}
}

func (d *Dispatcher) reportCommit(op, verb string, c block.Commit) {
	switch {
	case c.Origin == block.OriginNone, c.Origin == block.OriginLine && c.Text == "":
		d.show("nothing to %s", op)
		return
	case c.Text == "":
		d.show("empty block")
		return
	}

	n := utf8.RuneCountInString(c.Text)
	var msg string
	switch c.Origin {
	case block.OriginLine:
		msg = fmt.Sprintf("line %s", verb)
	case block.OriginSelection:
		msg = fmt.Sprintf("%s %d characters to clipboard", verb, n)
	default:
		msg = fmt.Sprintf("%s %d characters (history %d/%d)", verb, n, d.history.Len(), d.history.Capacity())
	}
	if c.ClipboardErr != nil {
		d.logger.Warn("clipboard: %v", c.ClipboardErr)
		msg += " (system clipboard unavailable, kept in register)"
	}
	d.show("%s", msg)
}

// sourceReporter is implemented by clipboards that can answer from a
// fallback register.
type sourceReporter interface {
	LastSource() clipboard.Source
}

// paste inserts at the cursor. Block mode stays on and its span follows
// the cursor.
func (d *Dispatcher) paste(text string, fromHistory bool) {
	if !fromHistory {
		var ok bool
		if text, ok = d.clipboardText(); !ok {
			return
		}
	}

	blockOn := d.block.Active()
	if blockOn {
		d.buf.ClearSelection()
	}
	d.buf.InsertText(text)
	if blockOn {
		d.block.Extend()
	}
}

func (d *Dispatcher) clipboardText() (string, bool) {
	if d.clip == nil {
		d.show("clipboard empty")
		return "", false
	}
	text, err := d.clip.Text()
	if err != nil {
		d.logger.Warn("paste: %v", err)
	}
	if text == "" {
		if err != nil {
			d.show("clipboard unavailable")
		} else {
			d.show("clipboard empty")
		}
		return "", false
	}
	if sr, ok := d.clip.(sourceReporter); ok && sr.LastSource() == clipboard.SourceRegister {
		d.show("pasted from editor register")
	}
	return text, true
}

func (d *Dispatcher) prompt(cmd chord.Command) {
	switch cmd {
	case chord.CmdRepeatSearch:
		found, err := d.search.Repeat()
		switch {
		case errors.Is(err, search.ErrNoSearch):
			d.show("no previous search")
		case !found:
			d.notFound()
		}
		d.block.Extend()
	case chord.CmdOpenFind:
		d.open(PromptFind)
	case chord.CmdOpenReplace:
		d.open(PromptReplace)
	}
}

func (d *Dispatcher) open(kind PromptKind) {
	d.mu.Lock()
	p := d.prompter
	d.mu.Unlock()

	if p == nil {
		d.show("%s prompt unavailable", kind)
		return
	}
	p.Prompt(kind)
}

// Find runs a search entered at the find prompt.
func (d *Dispatcher) Find(q search.Query) {
	found, err := d.search.Find(q)
	switch {
	case err != nil:
		d.show("find: %v", err)
	case !found:
		d.notFound()
	}
}

// Replace runs a replace entered at the replace prompt.
func (d *Dispatcher) Replace(q search.Query) {
	if q.Options.Global {
		n, err := d.search.ReplaceAll(q)
		if err != nil {
			d.show("replace: %v", err)
			return
		}
		d.show("replaced %d occurrences", n)
		return
	}

	_, more, err := d.search.Replace(q)
	switch {
	case err != nil:
		d.show("replace: %v", err)
	case !more:
		d.notFound()
	}
}

func (d *Dispatcher) notFound() {
	q, _ := d.search.Last()
	d.show("%q not found", q.Text)
}

func (d *Dispatcher) show(format string, args ...any) {
	if d.status == nil {
		return
	}
	d.status.Show(fmt.Sprintf(format, args...), 0)
}
