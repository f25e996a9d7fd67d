package app

import (
	"github.com/dshills/wledit/internal/dispatch"
	"github.com/dshills/wledit/internal/input/key"
)

// promptLabels lists the questions asked for each prompt, in order.
var promptLabels = map[dispatch.PromptKind][]string{
	dispatch.PromptFind:    {"Find: ", "Options (U W B G): "},
	dispatch.PromptReplace: {"Replace: ", "With: ", "Options (U W B G): "},
}

// Minibuffer is the single-line prompt drawn on the status row. It asks
// the questions of a prompt one after another and hands the answers to
// the submit function. The previous answers of a prompt are offered as
// defaults.
//
// Minibuffer is driven by the event loop and is not safe for concurrent
// use.
type Minibuffer struct {
	kind    dispatch.PromptKind
	labels  []string
	answers []string
	input   []rune
	cursor  int
	active  bool

	previous map[dispatch.PromptKind][]string
	submit   func(kind dispatch.PromptKind, answers []string)
}

// NewMinibuffer creates an inactive minibuffer.
func NewMinibuffer(submit func(kind dispatch.PromptKind, answers []string)) *Minibuffer {
	return &Minibuffer{
		previous: make(map[dispatch.PromptKind][]string),
		submit:   submit,
	}
}

// Prompt opens the prompt for kind. It implements dispatch.Prompter.
func (m *Minibuffer) Prompt(kind dispatch.PromptKind) {
	m.kind = kind
	m.labels = promptLabels[kind]
	m.answers = m.answers[:0]
	m.active = true
	m.load()
}

// Active reports whether a prompt is open.
func (m *Minibuffer) Active() bool {
	return m.active
}

// Kind returns the open prompt's kind.
func (m *Minibuffer) Kind() dispatch.PromptKind {
	return m.kind
}

// Label returns the current question.
func (m *Minibuffer) Label() string {
	if !m.active {
		return ""
	}
	return m.labels[len(m.answers)]
}

// Input returns the text typed so far and the cursor index within it.
func (m *Minibuffer) Input() ([]rune, int) {
	return m.input, m.cursor
}

// Cancel closes the prompt without submitting.
func (m *Minibuffer) Cancel() {
	m.active = false
	m.input = m.input[:0]
	m.cursor = 0
}

// HandleKey edits the input. It reports false when no prompt is open.
func (m *Minibuffer) HandleKey(ev key.Event) bool {
	if !m.active {
		return false
	}

	switch {
	case ev.IsEscape():
		m.Cancel()
	case ev.Key == key.KeyEnter:
		m.accept()
	case ev.Key == key.KeyBackspace || ev.Equals(key.Ctrl('h')):
		if m.cursor > 0 {
			m.input = append(m.input[:m.cursor-1], m.input[m.cursor:]...)
			m.cursor--
		}
	case ev.Key == key.KeyDelete:
		if m.cursor < len(m.input) {
			m.input = append(m.input[:m.cursor], m.input[m.cursor+1:]...)
		}
	case ev.Key == key.KeyLeft:
		m.cursor = max(m.cursor-1, 0)
	case ev.Key == key.KeyRight:
		m.cursor = min(m.cursor+1, len(m.input))
	case ev.Key == key.KeyHome:
		m.cursor = 0
	case ev.Key == key.KeyEnd:
		m.cursor = len(m.input)
	case ev.Equals(key.Ctrl('y')):
		m.input = m.input[:0]
		m.cursor = 0
	case ev.IsChar() && !ev.Modifiers.HasCtrl() && !ev.Modifiers.HasAlt():
		m.input = append(m.input, 0)
		copy(m.input[m.cursor+1:], m.input[m.cursor:])
		m.input[m.cursor] = ev.Rune
		m.cursor++
	}
	return true
}

func (m *Minibuffer) accept() {
	m.answers = append(m.answers, string(m.input))
	if len(m.answers) < len(m.labels) {
		m.load()
		return
	}

	answers := append([]string(nil), m.answers...)
	m.previous[m.kind] = answers
	m.Cancel()
	if m.submit != nil {
		m.submit(m.kind, answers)
	}
}

// load fills the input with the previous answer to the current question.
func (m *Minibuffer) load() {
	m.input = m.input[:0]
	if prev := m.previous[m.kind]; len(m.answers) < len(prev) {
		m.input = append(m.input, []rune(prev[len(m.answers)])...)
	}
	m.cursor = len(m.input)
}
