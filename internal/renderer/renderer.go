package renderer

import (
	"sync"

	"github.com/dshills/wledit/internal/renderer/backend"
	"github.com/dshills/wledit/internal/renderer/statusline"
)

// DefaultTabWidth is used when Options.TabWidth is not positive.
const DefaultTabWidth = 4

// Document is the part of the text buffer the renderer reads.
type Document interface {
	TopLine() int
	LineCount() int
	Line(i int) string
	LineStartOffset(i int) int
	CursorLineCol() (line, col int)
	Selection() (start, end int, ok bool)
}

// Block reports the block span and anchor while block mode is active.
type Block interface {
	Span() (start, end int, ok bool)
	Anchor() (int, bool)
}

// Options configures the renderer.
type Options struct {
	TabWidth int
}

// DefaultOptions returns the default renderer options.
func DefaultOptions() Options {
	return Options{TabWidth: DefaultTabWidth}
}

// Renderer draws documents on a backend.
type Renderer struct {
	backend backend.Backend
	status  *statusline.StatusLine

	mu       sync.Mutex
	tabWidth int
	leftCol  int
}

// New creates a renderer.
func New(b backend.Backend, opts Options) *Renderer {
	r := &Renderer{
		backend: b,
		status:  statusline.New(),
	}
	r.SetTabWidth(opts.TabWidth)
	return r
}

// Status returns the status line drawn on the last row.
func (r *Renderer) Status() *statusline.StatusLine {
	return r.status
}

// SetTabWidth changes the tab width.
func (r *Renderer) SetTabWidth(n int) {
	if n <= 0 {
		n = DefaultTabWidth
	}
	r.mu.Lock()
	r.tabWidth = n
	r.mu.Unlock()
}

// TabWidth returns the tab width.
func (r *Renderer) TabWidth() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tabWidth
}

// TextHeight returns the number of rows available for document text.
func (r *Renderer) TextHeight() int {
	_, h := r.backend.Size()
	return max(h-statusline.Height, 1)
}

// frame holds the styling ranges of one render.
type frame struct {
	selStart, selEnd     int
	hasSel               bool
	blockStart, blockEnd int
	hasBlock             bool
	anchor               int
}

func (f *frame) styleAt(off int) backend.Style {
	switch {
	case f.hasBlock && off == f.anchor:
		return backend.StyleAnchor
	case f.hasBlock && off >= f.blockStart && off < f.blockEnd:
		return backend.StyleBlock
	case f.hasSel && off >= f.selStart && off < f.selEnd:
		return backend.StyleSelection
	default:
		return backend.StyleDefault
	}
}

// Render draws doc and the status line. blk may be nil.
func (r *Renderer) Render(doc Document, blk Block) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, h := r.backend.Size()
	if w <= 0 || h <= 0 {
		return
	}
	r.backend.Clear()

	var f frame
	f.anchor = -1
	f.selStart, f.selEnd, f.hasSel = doc.Selection()
	if blk != nil {
		f.blockStart, f.blockEnd, f.hasBlock = blk.Span()
		if a, ok := blk.Anchor(); ok {
			f.anchor = a
		}
	}

	curLine, curCol := doc.CursorLineCol()
	cursorX := DisplayColumn([]rune(doc.Line(curLine)), curCol, r.tabWidth)
	r.scrollTo(cursorX, w)

	top := doc.TopLine()
	rows := max(h-statusline.Height, 0)
	for row := 0; row < rows; row++ {
		line := top + row
		if line >= doc.LineCount() {
			break
		}
		r.drawLine(row, w, doc.Line(line), doc.LineStartOffset(line), &f)
	}

	r.status.Render(r.backend, h-statusline.Height, w)
	if !r.status.PromptActive() {
		cy := curLine - top
		if cy >= 0 && cy < rows {
			r.backend.ShowCursor(cursorX-r.leftCol, cy)
		} else {
			r.backend.HideCursor()
		}
	}
	r.backend.Show()
}

func (r *Renderer) drawLine(row, width int, text string, base int, f *frame) {
	rs := []rune(text)
	col := 0
	for i, ch := range rs {
		style := f.styleAt(base + i)
		cw := cellWidth(ch, col, r.tabWidth)
		if ch == '\t' {
			for k := 0; k < cw; k++ {
				r.put(col+k, row, width, ' ', style)
			}
		} else if cw > 0 {
			r.put(col, row, width, ch, style)
		}
		col += cw
	}
	// An anchor on the line terminator still needs a visible mark.
	if f.hasBlock && f.anchor == base+len(rs) {
		r.put(col, row, width, ' ', backend.StyleAnchor)
	}
}

func (r *Renderer) put(col, row, width int, ch rune, style backend.Style) {
	x := col - r.leftCol
	if x < 0 || x >= width {
		return
	}
	r.backend.SetCell(x, row, ch, style)
}

// scrollTo adjusts the horizontal offset so display column x is visible.
func (r *Renderer) scrollTo(x, width int) {
	if x < r.leftCol {
		r.leftCol = x
	}
	if x >= r.leftCol+width {
		r.leftCol = x - width + 1
	}
}
