package app

import (
	"slices"
	"testing"

	"github.com/dshills/wledit/internal/dispatch"
	"github.com/dshills/wledit/internal/input/key"
)

type submission struct {
	kind    dispatch.PromptKind
	answers []string
}

func newRecordingMinibuffer() (*Minibuffer, *[]submission) {
	var got []submission
	m := NewMinibuffer(func(kind dispatch.PromptKind, answers []string) {
		got = append(got, submission{kind, answers})
	})
	return m, &got
}

func typeInto(m *Minibuffer, s string) {
	for _, r := range s {
		m.HandleKey(key.NewRuneEvent(r, key.ModNone))
	}
}

func enter(m *Minibuffer) {
	m.HandleKey(key.NewSpecialEvent(key.KeyEnter, key.ModNone))
}

func TestMinibufferFind(t *testing.T) {
	m, got := newRecordingMinibuffer()

	m.Prompt(dispatch.PromptFind)
	if !m.Active() || m.Label() != "Find: " {
		t.Fatalf("Active=%v Label=%q", m.Active(), m.Label())
	}
	typeInto(m, "needle")
	enter(m)
	if m.Label() != "Options (U W B G): " {
		t.Fatalf("Label = %q, want options question", m.Label())
	}
	typeInto(m, "u")
	enter(m)

	if m.Active() {
		t.Error("prompt still active after last answer")
	}
	want := []submission{{dispatch.PromptFind, []string{"needle", "u"}}}
	if len(*got) != 1 || (*got)[0].kind != want[0].kind || !slices.Equal((*got)[0].answers, want[0].answers) {
		t.Errorf("submissions = %+v, want %+v", *got, want)
	}
}

func TestMinibufferReplaceAsksThreeQuestions(t *testing.T) {
	m, got := newRecordingMinibuffer()

	m.Prompt(dispatch.PromptReplace)
	typeInto(m, "a")
	enter(m)
	if m.Label() != "With: " {
		t.Fatalf("Label = %q, want %q", m.Label(), "With: ")
	}
	typeInto(m, "b")
	enter(m)
	enter(m)

	if len(*got) != 1 || !slices.Equal((*got)[0].answers, []string{"a", "b", ""}) {
		t.Errorf("submissions = %+v", *got)
	}
}

func TestMinibufferEditing(t *testing.T) {
	tests := []struct {
		name       string
		keys       []key.Event
		wantInput  string
		wantCursor int
	}{
		{
			name:       "backspace",
			keys:       []key.Event{key.NewSpecialEvent(key.KeyBackspace, key.ModNone)},
			wantInput:  "ab",
			wantCursor: 2,
		},
		{
			name:       "ctrl h",
			keys:       []key.Event{key.Ctrl('h')},
			wantInput:  "ab",
			wantCursor: 2,
		},
		{
			name: "insert in middle",
			keys: []key.Event{
				key.NewSpecialEvent(key.KeyLeft, key.ModNone),
				key.NewRuneEvent('x', key.ModNone),
			},
			wantInput:  "abxc",
			wantCursor: 3,
		},
		{
			name: "home delete",
			keys: []key.Event{
				key.NewSpecialEvent(key.KeyHome, key.ModNone),
				key.NewSpecialEvent(key.KeyDelete, key.ModNone),
			},
			wantInput:  "bc",
			wantCursor: 0,
		},
		{
			name:       "ctrl y clears",
			keys:       []key.Event{key.Ctrl('y')},
			wantInput:  "",
			wantCursor: 0,
		},
		{
			name:       "control keys ignored",
			keys:       []key.Event{key.Ctrl('k'), key.NewRuneEvent('z', key.ModAlt)},
			wantInput:  "abc",
			wantCursor: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newRecordingMinibuffer()
			m.Prompt(dispatch.PromptFind)
			typeInto(m, "abc")
			for _, ev := range tt.keys {
				if !m.HandleKey(ev) {
					t.Fatalf("HandleKey(%v) = false", ev)
				}
			}
			input, cursor := m.Input()
			if string(input) != tt.wantInput || cursor != tt.wantCursor {
				t.Errorf("input=%q cursor=%d, want %q %d", string(input), cursor, tt.wantInput, tt.wantCursor)
			}
		})
	}
}

func TestMinibufferEscapeCancels(t *testing.T) {
	m, got := newRecordingMinibuffer()

	m.Prompt(dispatch.PromptFind)
	typeInto(m, "abc")
	m.HandleKey(key.NewSpecialEvent(key.KeyEscape, key.ModNone))

	if m.Active() {
		t.Error("prompt active after Escape")
	}
	if len(*got) != 0 {
		t.Errorf("submitted %+v after Escape", *got)
	}
	if m.HandleKey(key.NewRuneEvent('x', key.ModNone)) {
		t.Error("inactive minibuffer handled a key")
	}
}

func TestMinibufferOffersPreviousAnswers(t *testing.T) {
	m, got := newRecordingMinibuffer()

	m.Prompt(dispatch.PromptFind)
	typeInto(m, "foo")
	enter(m)
	typeInto(m, "w")
	enter(m)

	m.Prompt(dispatch.PromptFind)
	if input, cursor := m.Input(); string(input) != "foo" || cursor != 3 {
		t.Errorf("default = %q at %d, want %q at 3", string(input), cursor, "foo")
	}
	enter(m)
	enter(m)

	if len(*got) != 2 || !slices.Equal((*got)[1].answers, []string{"foo", "w"}) {
		t.Errorf("submissions = %+v", *got)
	}

	m.Prompt(dispatch.PromptReplace)
	if input, _ := m.Input(); len(input) != 0 {
		t.Errorf("replace default = %q, want empty", string(input))
	}
}
