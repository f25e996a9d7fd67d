// Package status provides the transient status message surface.
package status

import (
	"fmt"
	"sync"
	"time"
)

// DefaultDuration is how long a message stays when no duration is given.
const DefaultDuration = 2500 * time.Millisecond

// Surface shows transient messages.
type Surface interface {
	// Show displays msg for d. A non-positive d means the surface default.
	Show(msg string, d time.Duration)
}

// Level is the severity of a message.
type Level uint8

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

// String returns the level name.
func (l Level) String() string {
	switch l {
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Message is a posted status message.
type Message struct {
	Text    string
	Level   Level
	Expires time.Time
}

// Line is a single-message Surface for a status row. Posting replaces the
// previous message.
type Line struct {
	mu sync.Mutex

	msg      Message
	set      bool
	duration time.Duration
	now      func() time.Time

	timer    *time.Timer
	onChange func()
}

// NewLine creates a status line. A non-positive duration means
// DefaultDuration.
func NewLine(duration time.Duration) *Line {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &Line{duration: duration, now: time.Now}
}

// OnChange sets fn to be called when a message appears or expires. fn may
// run on a timer goroutine.
func (l *Line) OnChange(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onChange = fn
}

// SetDuration changes the default display duration.
func (l *Line) SetDuration(d time.Duration) {
	if d <= 0 {
		d = DefaultDuration
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.duration = d
}

// Duration returns the default display duration.
func (l *Line) Duration() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.duration
}

// Show posts an info message.
func (l *Line) Show(msg string, d time.Duration) {
	l.post(LevelInfo, msg, d)
}

// Showf posts a formatted info message for the default duration.
func (l *Line) Showf(format string, args ...any) {
	l.post(LevelInfo, fmt.Sprintf(format, args...), 0)
}

// Warn posts a warning for the default duration.
func (l *Line) Warn(msg string) {
	l.post(LevelWarn, msg, 0)
}

// Error posts an error for the default duration.
func (l *Line) Error(msg string) {
	l.post(LevelError, msg, 0)
}

// Current returns the message being shown, if it has not expired.
func (l *Line) Current() (Message, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.set || !l.now().Before(l.msg.Expires) {
		return Message{}, false
	}
	return l.msg, true
}

// Clear removes the current message.
func (l *Line) Clear() {
	l.mu.Lock()
	l.set = false
	l.stopTimer()
	fn := l.onChange
	l.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (l *Line) post(level Level, msg string, d time.Duration) {
	l.mu.Lock()
	if d <= 0 {
		d = l.duration
	}
	l.msg = Message{Text: msg, Level: level, Expires: l.now().Add(d)}
	l.set = true

	l.stopTimer()
	l.timer = time.AfterFunc(d, l.expire)
	fn := l.onChange
	l.mu.Unlock()

	if fn != nil {
		fn()
	}
}

func (l *Line) expire() {
	l.mu.Lock()
	fn := l.onChange
	l.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// stopTimer stops the expiry timer. Callers hold l.mu.
func (l *Line) stopTimer() {
	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
}
