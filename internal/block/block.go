// Package block implements WordStar block mode: a selection defined by a
// fixed anchor and the live cursor, committed by copy or cut into the
// clipboard history.
package block

import (
	"sync"

	"github.com/dshills/wledit/internal/clipboard"
	"github.com/dshills/wledit/internal/cliphist"
	"github.com/dshills/wledit/internal/logging"
	"github.com/dshills/wledit/internal/textbuf"
)

// Origin tells where committed text came from.
type Origin uint8

const (
	// OriginNone means nothing was copied or cut.
	OriginNone Origin = iota
	// OriginBlock is the block span.
	OriginBlock
	// OriginSelection is the buffer's own selection, used when block mode
	// is off.
	OriginSelection
	// OriginLine is the current line, cut when there is neither a block
	// nor a selection.
	OriginLine
)

// String returns the origin name.
func (o Origin) String() string {
	switch o {
	case OriginBlock:
		return "block"
	case OriginSelection:
		return "selection"
	case OriginLine:
		return "line"
	default:
		return "none"
	}
}

// Commit describes the result of Copy or Cut.
type Commit struct {
	Text   string
	Origin Origin
	// Pushed is set when Text was added to the clipboard history.
	Pushed bool
	// ClipboardErr is the error from mirroring to the system clipboard.
	ClipboardErr error
}

// Controller owns the block state of one editor.
type Controller struct {
	mu sync.Mutex

	buf     textbuf.Facade
	history *cliphist.History
	clip    clipboard.Clipboard
	logger  *logging.Logger

	anchor int
	active bool

	listeners []func(active bool, anchor int)
}

// New creates an inactive controller. clip may be nil, in which case
// nothing is mirrored.
func New(buf textbuf.Facade, history *cliphist.History, clip clipboard.Clipboard, logger *logging.Logger) *Controller {
	if logger == nil {
		logger = logging.Null()
	}
	return &Controller{
		buf:     buf,
		history: history,
		clip:    clip,
		logger:  logger.WithComponent("block"),
	}
}

// OnChange registers fn to be called when block mode starts or ends.
func (c *Controller) OnChange(fn func(active bool, anchor int)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// Enter starts block mode anchored at the cursor. Entering while active
// re-anchors.
func (c *Controller) Enter() {
	c.mu.Lock()
	c.anchor = c.buf.CursorPosition()
	c.active = true
	c.buf.ClearSelection()
	anchor := c.anchor
	listeners := c.snapshotListeners()
	c.mu.Unlock()

	c.logger.Debug("block anchored at %d", anchor)
	for _, fn := range listeners {
		fn(true, anchor)
	}
}

// Active reports whether block mode is on.
func (c *Controller) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Anchor returns the anchor while block mode is on.
func (c *Controller) Anchor() (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.anchor, c.active
}

// Span returns [min(anchor, cursor), max(anchor, cursor)). It is computed
// from the live cursor on every call.
func (c *Controller) Span() (start, end int, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.active {
		return 0, 0, false
	}
	start, end = c.span()
	return start, end, true
}

// Extend mirrors the span into the buffer selection after the cursor
// moved. It is a no-op when block mode is off.
func (c *Controller) Extend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.active {
		return
	}
	c.buf.SetSelection(c.anchor, c.buf.CursorPosition())
}

// Cancel leaves block mode and clears the buffer selection. It reports
// false when block mode was off.
func (c *Controller) Cancel() bool {
	c.mu.Lock()
	if !c.active {
		c.mu.Unlock()
		return false
	}
	c.buf.ClearSelection()
	listeners := c.deactivate()
	c.mu.Unlock()

	notify(listeners)
	return true
}

// Copy commits the block as a copy. The text goes to the front of the
// history and to the system clipboard; the buffer selection is cleared
// and the cursor stays where it was. With block mode off, an existing
// buffer selection is copied to the system clipboard only.
func (c *Controller) Copy() Commit {
	c.mu.Lock()

	if !c.active {
		defer c.mu.Unlock()
		if !c.buf.HasSelection() {
			return Commit{}
		}
		text := c.buf.SelectedText()
		return Commit{Text: text, Origin: OriginSelection, ClipboardErr: c.mirror(text)}
	}

	cursor := c.buf.CursorPosition()
	start, end := c.span()
	c.buf.SetSelection(start, end)
	text := c.buf.SelectedText()
	c.buf.ClearSelection()
	c.buf.SetCursor(cursor)

	commit := c.commit(text, OriginBlock)
	listeners := c.deactivate()
	c.mu.Unlock()

	notify(listeners)
	return commit
}

// Cut commits the block as a cut. With block mode off, an existing buffer
// selection is cut to the system clipboard only; with no selection
// either, the whole current line is cut into the history.
func (c *Controller) Cut() Commit {
	c.mu.Lock()

	if !c.active {
		defer c.mu.Unlock()
		if c.buf.HasSelection() {
			text := c.buf.DeleteSelection()
			return Commit{Text: text, Origin: OriginSelection, ClipboardErr: c.mirror(text)}
		}
		return c.commit(c.buf.DeleteLine(), OriginLine)
	}

	start, end := c.span()
	var text string
	if start < end {
		c.buf.SetSelection(start, end)
		text = c.buf.DeleteSelection()
	} else {
		c.buf.ClearSelection()
	}

	commit := c.commit(text, OriginBlock)
	listeners := c.deactivate()
	c.mu.Unlock()

	notify(listeners)
	return commit
}

// span returns the ordered span. Callers hold c.mu.
func (c *Controller) span() (int, int) {
	cursor := c.buf.CursorPosition()
	if c.anchor < cursor {
		return c.anchor, cursor
	}
	return cursor, c.anchor
}

// commit pushes text to the history and mirrors it. Callers hold c.mu.
func (c *Controller) commit(text string, origin Origin) Commit {
	if text == "" {
		return Commit{Origin: origin}
	}
	out := Commit{Text: text, Origin: origin}
	out.Pushed = c.history.Push(text)
	out.ClipboardErr = c.mirror(text)
	return out
}

func (c *Controller) mirror(text string) error {
	if c.clip == nil || text == "" {
		return nil
	}
	if err := c.clip.SetText(text); err != nil {
		c.logger.Warn("mirror to clipboard: %v", err)
		return err
	}
	return nil
}

// deactivate turns block mode off and returns the listeners to notify.
// Callers hold c.mu.
func (c *Controller) deactivate() []func(bool, int) {
	c.active = false
	return c.snapshotListeners()
}

func (c *Controller) snapshotListeners() []func(bool, int) {
	if len(c.listeners) == 0 {
		return nil
	}
	out := make([]func(bool, int), len(c.listeners))
	copy(out, c.listeners)
	return out
}

func notify(listeners []func(bool, int)) {
	for _, fn := range listeners {
		fn(false, 0)
	}
}
