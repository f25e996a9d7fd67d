package statusline

import (
	"strings"
	"testing"

	"github.com/dshills/wledit/internal/renderer/backend"
)

func TestStatusBar(t *testing.T) {
	tests := []struct {
		name  string
		setup func(s *StatusLine)
		want  []string
	}{
		{
			name:  "no name",
			setup: func(s *StatusLine) {},
			want:  []string{"[No Name]", "Ln 1, Col 1"},
		},
		{
			name: "modified file",
			setup: func(s *StatusLine) {
				s.SetFilename("notes.txt")
				s.SetModified(true)
				s.SetPosition(3, 7)
			},
			want: []string{"notes.txt [+]", "Ln 3, Col 7"},
		},
		{
			name: "pending chord and block",
			setup: func(s *StatusLine) {
				s.SetChord("^K")
				s.SetBlock(true)
			},
			want: []string{"^K BLOCK"},
		},
		{
			name: "message",
			setup: func(s *StatusLine) {
				s.SetMessage("copied 5 characters", MessageInfo)
			},
			want: []string{"copied 5 characters"},
		},
		{
			name: "read only",
			setup: func(s *StatusLine) {
				s.SetFilename("a.txt")
				s.SetReadOnly(true)
			},
			want: []string{"a.txt [RO]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := backend.NewNullBackend(80, 2)
			s := New()
			tt.setup(s)
			s.Render(b, 1, 80)

			row := b.Row(1)
			for _, w := range tt.want {
				if !strings.Contains(row, w) {
					t.Errorf("row %q does not contain %q", row, w)
				}
			}
		})
	}
}

func TestMessageStyle(t *testing.T) {
	b := backend.NewNullBackend(60, 1)
	s := New()
	s.SetMessage("boom", MessageError)
	s.Render(b, 0, 60)

	x := strings.Index(b.Row(0), "boom")
	if x < 0 {
		t.Fatalf("message not drawn: %q", b.Row(0))
	}
	if got := b.StyleAt(x, 0); got != backend.StyleStatusError {
		t.Errorf("message style = %v, want StyleStatusError", got)
	}
}

func TestPrompt(t *testing.T) {
	b := backend.NewNullBackend(40, 1)
	s := New()
	s.SetMessage("hidden while prompting", MessageInfo)
	s.SetPrompt("Find: ", []rune("abc"), 2)

	if !s.PromptActive() {
		t.Fatal("PromptActive = false")
	}
	s.Render(b, 0, 40)

	if got := b.Row(0); got != "Find: abc" {
		t.Errorf("row = %q, want %q", got, "Find: abc")
	}
	x, y, visible := b.CursorPosition()
	if !visible || x != 8 || y != 0 {
		t.Errorf("cursor = (%d,%d,%v), want (8,0,true)", x, y, visible)
	}

	s.ClearPrompt()
	if s.PromptActive() {
		t.Error("PromptActive after ClearPrompt")
	}
}

func TestTruncatesNarrowWidth(t *testing.T) {
	b := backend.NewNullBackend(12, 1)
	s := New()
	s.SetFilename("a-very-long-file-name.txt")
	s.Render(b, 0, 12)

	if got := len([]rune(b.Row(0))); got > 12 {
		t.Errorf("row width = %d, want <= 12", got)
	}
}
