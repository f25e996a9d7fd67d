package chord

import (
	"sync"
	"time"

	"github.com/dshills/wledit/internal/input/key"
	"github.com/dshills/wledit/internal/logging"
)

// DefaultTimeout is how long a chord lead waits for its second key.
const DefaultTimeout = 3000 * time.Millisecond

// Result reports whether Handle consumed an event.
type Result uint8

const (
	// Unhandled events go to the buffer's default key handling.
	Unhandled Result = iota
	// Handled events were consumed by the chord engine.
	Handled
)

// String returns "handled" or "unhandled".
func (r Result) String() string {
	if r == Handled {
		return "handled"
	}
	return "unhandled"
}

// Executor carries out resolved commands. Its methods are called with the
// handler lock held and must not call back into the Handler.
type Executor interface {
	// Execute runs a resolved command, including chord leads.
	Execute(cmd Command)
	// Cancel cancels block mode or clears the buffer selection. It
	// reports false when there was nothing to cancel.
	Cancel() bool
	// Absorb is told about a second key that matched no entry.
	Absorb(lead State, ev key.Event)
}

// Config configures a Handler.
type Config struct {
	// Timeout resets a pending chord. Zero means DefaultTimeout.
	Timeout time.Duration

	// Tables holds the bindings. A zero value means DefaultTables.
	Tables Tables

	// Logger receives debug traces. Nil means the null logger.
	Logger *logging.Logger
}

// DefaultConfig returns a configuration with the WordStar tables and the
// default timeout.
func DefaultConfig() Config {
	return Config{
		Timeout: DefaultTimeout,
		Tables:  DefaultTables(),
	}
}

// Handler is the per-editor chord state machine.
type Handler struct {
	mu sync.Mutex

	state   State
	tables  Tables
	timeout time.Duration
	exec    Executor
	logger  *logging.Logger

	// timer is the pending idle reset; gen invalidates fires from timers
	// that were stopped too late.
	timer *time.Timer
	gen   uint64

	listeners []func(State)
	closed    bool
}

// NewHandler creates a handler in the Idle state.
func NewHandler(exec Executor, cfg Config) *Handler {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Tables.Primary == nil {
		cfg.Tables = DefaultTables()
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Null()
	}
	return &Handler{
		tables:  cfg.Tables,
		timeout: cfg.Timeout,
		exec:    exec,
		logger:  cfg.Logger.WithComponent("chord"),
	}
}

// Handle processes one key event.
func (h *Handler) Handle(ev key.Event) Result {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return Unhandled
	}
	prev := h.state

	if ev.IsEscape() && h.exec.Cancel() {
		h.disarm()
		h.state = Idle
		listeners := h.changed(prev)
		h.mu.Unlock()
		notify(listeners, Idle)
		return Handled
	}

	out := Step(h.state, ev, h.tables)
	h.state = out.Next
	if out.Next.Pending() {
		h.arm()
	} else if prev.Pending() {
		h.disarm()
	}

	switch {
	case out.Absorbed:
		h.logger.Debug("unmatched second key %s after %s", ev, prev)
		h.exec.Absorb(prev, ev)
	case out.Command != CmdNone:
		h.logger.Debug("%s -> %s", ev, out.Command)
		h.exec.Execute(out.Command)
	}

	listeners := h.changed(prev)
	h.mu.Unlock()
	notify(listeners, out.Next)

	if out.Handled {
		return Handled
	}
	return Unhandled
}

// State returns the current chord state.
func (h *Handler) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Timeout returns the idle-reset timeout.
func (h *Handler) Timeout() time.Duration {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.timeout
}

// SetTimeout changes the idle-reset timeout for chords started later.
func (h *Handler) SetTimeout(d time.Duration) {
	if d <= 0 {
		d = DefaultTimeout
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.timeout = d
}

// OnStateChange registers fn to be called after every state change,
// including idle resets by the timer. fn runs without the handler lock,
// possibly on the timer goroutine.
func (h *Handler) OnStateChange(fn func(State)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.listeners = append(h.listeners, fn)
}

// Reset returns to Idle and disarms the timer.
func (h *Handler) Reset() {
	h.mu.Lock()
	prev := h.state
	h.disarm()
	h.state = Idle
	listeners := h.changed(prev)
	h.mu.Unlock()
	notify(listeners, Idle)
}

// Close stops the timer. A closed handler leaves every event unhandled.
func (h *Handler) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.disarm()
	h.state = Idle
	h.closed = true
}

// arm (re)starts the idle timer. Callers hold h.mu.
func (h *Handler) arm() {
	h.disarm()
	gen := h.gen
	h.timer = time.AfterFunc(h.timeout, func() {
		h.expire(gen)
	})
}

// disarm stops the idle timer. Callers hold h.mu.
func (h *Handler) disarm() {
	if h.timer != nil {
		h.timer.Stop()
		h.timer = nil
	}
	h.gen++
}

func (h *Handler) expire(gen uint64) {
	h.mu.Lock()
	if h.closed || gen != h.gen || !h.state.Pending() {
		h.mu.Unlock()
		return
	}
	prev := h.state
	h.state = Idle
	h.timer = nil
	h.logger.Debug("%s timed out after %s", prev, h.timeout)
	listeners := h.changed(prev)
	h.mu.Unlock()
	notify(listeners, Idle)
}

// changed returns the listeners to notify when the state differs from
// prev. Callers hold h.mu.
func (h *Handler) changed(prev State) []func(State) {
	if h.state == prev || len(h.listeners) == 0 {
		return nil
	}
	out := make([]func(State), len(h.listeners))
	copy(out, h.listeners)
	return out
}

func notify(listeners []func(State), s State) {
	for _, fn := range listeners {
		fn(s)
	}
}
