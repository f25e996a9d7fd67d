package textbuf

import "sync"

// DefaultViewHeight is the viewport height used before the host reports one.
const DefaultViewHeight = 24

// Buffer is an in-memory Facade implementation.
type Buffer struct {
	mu sync.RWMutex

	text   []rune
	cursor int

	// anchor is the fixed end of the native selection while selecting.
	anchor    int
	selecting bool

	// goalCol is the column vertical moves try to keep; -1 when unset.
	goalCol int

	top    int
	height int

	modified bool
	history  undoStack
}

// New creates an empty buffer.
func New() *Buffer {
	return &Buffer{goalCol: -1, height: DefaultViewHeight}
}

// NewFromString creates a buffer holding s with the cursor at the start.
func NewFromString(s string) *Buffer {
	b := New()
	b.text = []rune(s)
	return b
}

// Text returns the whole document.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return string(b.text)
}

// SetText replaces the document, resetting cursor, selection and undo.
func (b *Buffer) SetText(s string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.text = []rune(s)
	b.cursor = 0
	b.selecting = false
	b.goalCol = -1
	b.top = 0
	b.modified = false
	b.history.clear()
}

// Len returns the document length in runes.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.text)
}

// Modified reports whether the document changed since the last
// SetText or SetModified(false).
func (b *Buffer) Modified() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.modified
}

// SetModified sets the modified flag.
func (b *Buffer) SetModified(m bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.modified = m
}

// CursorPosition returns the cursor offset.
func (b *Buffer) CursorPosition() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.cursor
}

// SetCursor moves the cursor to pos, clamped to the document, and clears
// the selection.
func (b *Buffer) SetCursor(pos int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.selecting = false
	b.setCursor(pos)
}

// CursorLineCol returns the zero-based line and column of the cursor.
func (b *Buffer) CursorLineCol() (line, col int) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineOf(b.cursor), b.cursor - b.lineStart(b.cursor)
}

// LineCount returns the number of lines; an empty document has one.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineCount()
}

// Line returns the text of line i without its terminator.
func (b *Buffer) Line(i int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if i < 0 || i >= b.lineCount() {
		return ""
	}
	start := b.lineStartOffset(i)
	return string(b.text[start:b.lineEnd(start)])
}

// LineStartOffset returns the offset of the first rune of line i.
func (b *Buffer) LineStartOffset(i int) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineStartOffset(i)
}

// SetViewHeight sets the number of visible lines.
func (b *Buffer) SetViewHeight(h int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if h < 1 {
		h = 1
	}
	b.height = h
	b.scrollToCursor()
}

// VisibleLines returns the viewport height.
func (b *Buffer) VisibleLines() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.height
}

// TopLine returns the first visible line.
func (b *Buffer) TopLine() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.top
}

// MoveCursor moves the cursor one step and clears the selection.
func (b *Buffer) MoveCursor(dir Direction) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.selecting = false
	return b.move(dir)
}

// MoveCursorWord moves to the previous or next word start.
func (b *Buffer) MoveCursorWord(dir Direction) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.selecting = false
	var pos int
	switch dir {
	case Left:
		pos = b.prevWordStart(b.cursor)
	case Right:
		pos = b.nextWordStart(b.cursor)
	default:
		return b.move(dir)
	}
	if pos == b.cursor {
		return false
	}
	b.setCursor(pos)
	return true
}

// MoveCursorTo moves the cursor to an absolute target.
func (b *Buffer) MoveCursorTo(target Target) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.selecting = false
	b.moveTo(target)
}

// MoveLines moves the cursor up (negative n) or down by up to |n| lines,
// stopping at the document boundary. It returns the number of lines moved.
func (b *Buffer) MoveLines(n int) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.selecting = false
	return b.moveLines(n)
}

func (b *Buffer) moveLines(n int) int {
	dir := Down
	if n < 0 {
		dir, n = Up, -n
	}
	moved := 0
	for ; moved < n; moved++ {
		if !b.move(dir) {
			break
		}
	}
	return moved
}

// SetSelection selects [start, end) leaving the cursor at end. Passing
// start > end selects backwards.
func (b *Buffer) SetSelection(start, end int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.anchor = b.clamp(start)
	b.selecting = true
	b.setCursor(end)
}

// ClearSelection drops the selection, leaving the cursor in place.
func (b *Buffer) ClearSelection() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.selecting = false
}

// HasSelection reports whether a non-empty selection exists.
func (b *Buffer) HasSelection() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.hasSelection()
}

// Selection returns the ordered selection bounds.
func (b *Buffer) Selection() (start, end int, ok bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.hasSelection() {
		return 0, 0, false
	}
	start, end = b.selectionRange()
	return start, end, true
}

// SelectedText returns the selected text.
func (b *Buffer) SelectedText() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.hasSelection() {
		return ""
	}
	start, end := b.selectionRange()
	return string(b.text[start:end])
}

// DeleteSelection removes the selection and returns it.
func (b *Buffer) DeleteSelection() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.hasSelection() {
		return ""
	}
	b.history.push(b.snapshot(), editDelete)
	return b.deleteSelection()
}

// InsertText inserts s at the cursor, replacing the selection.
func (b *Buffer) InsertText(s string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if s == "" && !b.hasSelection() {
		return
	}
	kind := editInsert
	if len([]rune(s)) == 1 && !b.hasSelection() && s != "\n" {
		kind = editType
	}
	b.history.push(b.snapshot(), kind)

	if b.hasSelection() {
		b.deleteSelection()
	}
	b.insert(b.cursor, []rune(s))
}

// DeleteForward deletes the rune at the cursor, or the selection.
func (b *Buffer) DeleteForward() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.hasSelection() {
		b.history.push(b.snapshot(), editDelete)
		b.deleteSelection()
		return
	}
	if b.cursor >= len(b.text) {
		return
	}
	b.history.push(b.snapshot(), editDelete)
	b.remove(b.cursor, b.cursor+1)
}

// DeleteBackward deletes the rune before the cursor, or the selection.
func (b *Buffer) DeleteBackward() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.hasSelection() {
		b.history.push(b.snapshot(), editDelete)
		b.deleteSelection()
		return
	}
	if b.cursor == 0 {
		return
	}
	b.history.push(b.snapshot(), editDelete)
	b.remove(b.cursor-1, b.cursor)
}

// DeleteToLineEnd deletes from the cursor to the end of its line, leaving
// the terminator.
func (b *Buffer) DeleteToLineEnd() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.selecting = false
	end := b.lineEnd(b.cursor)
	if end == b.cursor {
		return ""
	}
	b.history.push(b.snapshot(), editDelete)
	return b.remove(b.cursor, end)
}

// DeleteLine deletes the whole current line and its terminator. The
// cursor lands at the start of the following line.
func (b *Buffer) DeleteLine() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.selecting = false
	start := b.lineStart(b.cursor)
	end := b.lineEnd(b.cursor)
	if end < len(b.text) {
		end++
	}
	if start == end {
		return ""
	}
	b.history.push(b.snapshot(), editDelete)
	return b.remove(start, end)
}

// DeleteWordForward deletes from the cursor to the end of the word or
// blank run under it. At a line end it joins the next line.
func (b *Buffer) DeleteWordForward() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.selecting = false
	end := b.segmentEnd(b.cursor)
	if end <= b.cursor {
		return ""
	}
	b.history.push(b.snapshot(), editDelete)
	return b.remove(b.cursor, end)
}

// Undo reverts the last edit group.
func (b *Buffer) Undo() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	snap, ok := b.history.undo(b.snapshot())
	if !ok {
		return false
	}
	b.restore(snap)
	return true
}

// Redo reapplies the last undone edit group.
func (b *Buffer) Redo() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	snap, ok := b.history.redo(b.snapshot())
	if !ok {
		return false
	}
	b.restore(snap)
	return true
}

// ---- internals; callers hold b.mu ----

func (b *Buffer) clamp(pos int) int {
	if pos < 0 {
		return 0
	}
	if pos > len(b.text) {
		return len(b.text)
	}
	return pos
}

func (b *Buffer) setCursor(pos int) {
	b.cursor = b.clamp(pos)
	b.goalCol = -1
	b.scrollToCursor()
}

func (b *Buffer) hasSelection() bool {
	return b.selecting && b.anchor != b.cursor
}

func (b *Buffer) selectionRange() (int, int) {
	if b.anchor < b.cursor {
		return b.anchor, b.cursor
	}
	return b.cursor, b.anchor
}

func (b *Buffer) deleteSelection() string {
	start, end := b.selectionRange()
	b.selecting = false
	return b.remove(start, end)
}

func (b *Buffer) insert(pos int, rs []rune) {
	if len(rs) == 0 {
		return
	}
	b.text = append(b.text[:pos], append(rs, b.text[pos:]...)...)
	b.modified = true
	b.setCursor(pos + len(rs))
}

func (b *Buffer) remove(start, end int) string {
	removed := string(b.text[start:end])
	b.text = append(b.text[:start], b.text[end:]...)
	b.modified = true
	b.setCursor(start)
	return removed
}

func (b *Buffer) lineStart(pos int) int {
	for pos > 0 && b.text[pos-1] != '\n' {
		pos--
	}
	return pos
}

func (b *Buffer) lineEnd(pos int) int {
	for pos < len(b.text) && b.text[pos] != '\n' {
		pos++
	}
	return pos
}

func (b *Buffer) lineOf(pos int) int {
	line := 0
	for i := 0; i < pos && i < len(b.text); i++ {
		if b.text[i] == '\n' {
			line++
		}
	}
	return line
}

func (b *Buffer) lineCount() int {
	return b.lineOf(len(b.text)) + 1
}

func (b *Buffer) lineStartOffset(line int) int {
	if line <= 0 {
		return 0
	}
	for i, r := range b.text {
		if r == '\n' {
			line--
			if line == 0 {
				return i + 1
			}
		}
	}
	return len(b.text)
}

func (b *Buffer) move(dir Direction) bool {
	switch dir {
	case Left:
		if b.cursor == 0 {
			return false
		}
		b.setCursor(b.cursor - 1)
	case Right:
		if b.cursor >= len(b.text) {
			return false
		}
		b.setCursor(b.cursor + 1)
	case Up, Down:
		line := b.lineOf(b.cursor)
		target := line - 1
		if dir == Down {
			target = line + 1
		}
		if target < 0 || target >= b.lineCount() {
			return false
		}
		col := b.goalCol
		if col < 0 {
			col = b.cursor - b.lineStart(b.cursor)
		}
		start := b.lineStartOffset(target)
		end := b.lineEnd(start)
		b.cursor = min(start+col, end)
		b.goalCol = col
		b.scrollToCursor()
	default:
		return false
	}
	return true
}

func (b *Buffer) moveTo(target Target) {
	switch target {
	case Start:
		b.setCursor(0)
	case End:
		b.setCursor(len(b.text))
	case LineStart:
		b.setCursor(b.lineStart(b.cursor))
	case LineEnd:
		b.setCursor(b.lineEnd(b.cursor))
	case ScreenTop:
		b.setCursor(b.lineStartOffset(b.top))
	case ScreenBottom:
		last := min(b.top+b.height, b.lineCount()) - 1
		b.setCursor(b.lineStartOffset(last))
	}
}

func (b *Buffer) scrollToCursor() {
	line := b.lineOf(b.cursor)
	if line < b.top {
		b.top = line
	}
	if line >= b.top+b.height {
		b.top = line - b.height + 1
	}
}

// String returns the document.
func (b *Buffer) String() string {
	return b.Text()
}
