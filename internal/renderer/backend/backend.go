// Package backend provides the terminal abstraction the editor draws on.
package backend

import (
	"strings"
	"sync"

	"github.com/dshills/wledit/internal/input/key"
)

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
	// EventWake is posted by Wake to make the event loop redraw.
	EventWake
)

// Event represents a terminal event.
type Event struct {
	Type EventType

	// Key is set for EventKey.
	Key key.Event

	// Width and Height are set for EventResize.
	Width, Height int
}

// Style is a semantic cell style; backends choose the colors.
type Style int

const (
	StyleDefault Style = iota
	// StyleSelection marks the buffer's own selection.
	StyleSelection
	// StyleBlock marks the block span.
	StyleBlock
	// StyleAnchor marks the block anchor cell.
	StyleAnchor
	StyleStatus
	StyleStatusWarn
	StyleStatusError
	StylePrompt
)

// Backend defines the interface for terminal backends.
type Backend interface {
	// Init initializes the backend for use.
	// Must be called before any other methods.
	Init() error

	// Shutdown releases backend resources and restores terminal state.
	Shutdown()

	// Size returns the current terminal dimensions.
	Size() (width, height int)

	// SetCell sets a single cell. Positions outside the terminal are
	// silently ignored.
	SetCell(x, y int, r rune, style Style)

	// Clear clears the entire screen.
	Clear()

	// Show flushes changes to the display.
	Show()

	// ShowCursor positions and displays the cursor.
	ShowCursor(x, y int)

	// HideCursor hides the cursor.
	HideCursor()

	// PollEvent waits for and returns the next event. It returns an
	// EventNone event once the backend is shut down.
	PollEvent() Event

	// Wake makes a blocked PollEvent return an EventWake. It is safe to
	// call from any goroutine.
	Wake()
}

// NullBackend is an in-memory backend for testing.
type NullBackend struct {
	mu            sync.Mutex
	width, height int
	cells         [][]nullCell
	cursorX       int
	cursorY       int
	cursorVisible bool
	events        chan Event
	closed        bool
}

type nullCell struct {
	r     rune
	style Style
}

// NewNullBackend creates a null backend with the given dimensions.
func NewNullBackend(width, height int) *NullBackend {
	b := &NullBackend{
		width:  width,
		height: height,
		events: make(chan Event, 100),
	}
	b.alloc()
	return b
}

func (b *NullBackend) alloc() {
	b.cells = make([][]nullCell, b.height)
	for i := range b.cells {
		b.cells[i] = make([]nullCell, b.width)
		for j := range b.cells[i] {
			b.cells[i][j] = nullCell{r: ' '}
		}
	}
}

func (b *NullBackend) Init() error { return nil }

// Shutdown makes PollEvent return EventNone.
func (b *NullBackend) Shutdown() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.closed {
		b.closed = true
		close(b.events)
	}
}

func (b *NullBackend) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

func (b *NullBackend) SetCell(x, y int, r rune, style Style) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		b.cells[y][x] = nullCell{r: r, style: style}
	}
}

func (b *NullBackend) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.alloc()
}

func (b *NullBackend) Show() {}

func (b *NullBackend) ShowCursor(x, y int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursorX, b.cursorY, b.cursorVisible = x, y, true
}

func (b *NullBackend) HideCursor() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursorVisible = false
}

func (b *NullBackend) PollEvent() Event {
	ev, ok := <-b.events
	if !ok {
		return Event{Type: EventNone}
	}
	return ev
}

// Wake posts an EventWake.
func (b *NullBackend) Wake() {
	b.Post(Event{Type: EventWake})
}

// Post queues an event. Events are dropped when the queue is full or the
// backend is shut down.
func (b *NullBackend) Post(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	select {
	case b.events <- ev:
	default:
	}
}

// PostKey queues a key event.
func (b *NullBackend) PostKey(ev key.Event) {
	b.Post(Event{Type: EventKey, Key: ev})
}

// Resize changes the size and queues an EventResize.
func (b *NullBackend) Resize(width, height int) {
	b.mu.Lock()
	b.width, b.height = width, height
	b.alloc()
	b.mu.Unlock()
	b.Post(Event{Type: EventResize, Width: width, Height: height})
}

// Row returns the text of row y with trailing blanks removed.
func (b *NullBackend) Row(y int) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if y < 0 || y >= b.height {
		return ""
	}
	var sb strings.Builder
	for _, c := range b.cells[y] {
		sb.WriteRune(c.r)
	}
	return strings.TrimRight(sb.String(), " ")
}

// StyleAt returns the style of a cell.
func (b *NullBackend) StyleAt(x, y int) Style {
	b.mu.Lock()
	defer b.mu.Unlock()
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		return b.cells[y][x].style
	}
	return StyleDefault
}

// CursorPosition returns the cursor position for testing.
func (b *NullBackend) CursorPosition() (x, y int, visible bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cursorX, b.cursorY, b.cursorVisible
}
