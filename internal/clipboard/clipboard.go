// Package clipboard adapts the host system clipboard.
//
// The system clipboard is a shared resource with no transactional
// guarantee: writes are last-writer-wins. System falls back to an
// in-process register whenever the platform clipboard is unavailable so
// copy and paste keep working in headless sessions.
package clipboard

import (
	"errors"
	"sync"

	"github.com/atotto/clipboard"
)

// ErrUnavailable indicates the platform clipboard cannot be used.
var ErrUnavailable = errors.New("system clipboard unavailable")

// Clipboard is a single-slot text clipboard.
type Clipboard interface {
	SetText(text string) error
	Text() (string, error)
}

// Memory is an in-process clipboard.
type Memory struct {
	mu   sync.Mutex
	text string
}

// NewMemory creates an empty in-process clipboard.
func NewMemory() *Memory {
	return &Memory{}
}

// SetText replaces the clipboard contents.
func (m *Memory) SetText(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	return nil
}

// Text returns the clipboard contents.
func (m *Memory) Text() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, nil
}

// Source reports where the last read was served from.
type Source int

const (
	// SourceSystem means the platform clipboard answered.
	SourceSystem Source = iota
	// SourceRegister means the in-process register answered.
	SourceRegister
)

// System mirrors text into the platform clipboard, keeping an in-process
// register as fallback.
type System struct {
	register *Memory

	// write and read are swapped out in tests.
	write func(string) error
	read  func() (string, error)

	mu         sync.Mutex
	lastSource Source
}

// NewSystem creates a clipboard backed by the platform clipboard.
func NewSystem() *System {
	return &System{
		register: NewMemory(),
		write:    clipboard.WriteAll,
		read:     clipboard.ReadAll,
	}
}

// Available reports whether the platform clipboard is supported.
func Available() bool {
	return !clipboard.Unsupported
}

// SetText writes text to the register and the platform clipboard. The
// register is always updated; the returned error only describes the
// platform write.
func (s *System) SetText(text string) error {
	_ = s.register.SetText(text)
	if !Available() {
		return ErrUnavailable
	}
	if err := s.write(text); err != nil {
		return errors.Join(ErrUnavailable, err)
	}
	return nil
}

// Text reads the platform clipboard, falling back to the register when the
// platform read fails or returns nothing.
func (s *System) Text() (string, error) {
	if Available() {
		if text, err := s.read(); err == nil && text != "" {
			s.setSource(SourceSystem)
			return text, nil
		}
	}
	s.setSource(SourceRegister)
	return s.register.Text()
}

// LastSource reports which store answered the most recent Text call.
func (s *System) LastSource() Source {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSource
}

func (s *System) setSource(src Source) {
	s.mu.Lock()
	s.lastSource = src
	s.mu.Unlock()
}
