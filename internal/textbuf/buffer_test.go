package textbuf

import (
	"strings"
	"testing"

	"github.com/dshills/wledit/internal/input/key"
)

func TestBufferMoveCursor(t *testing.T) {
	b := NewFromString("hello\nworld")

	if !b.MoveCursor(Down) {
		t.Fatal("MoveCursor(Down) = false")
	}
	if got := b.CursorPosition(); got != 6 {
		t.Errorf("after Down cursor = %d, want 6", got)
	}
	if b.MoveCursor(Down) {
		t.Error("MoveCursor(Down) on last line should fail")
	}

	b.MoveCursorTo(LineEnd)
	if got := b.CursorPosition(); got != 11 {
		t.Errorf("LineEnd cursor = %d, want 11", got)
	}
	if b.MoveCursor(Right) {
		t.Error("MoveCursor(Right) at end should fail")
	}

	b.MoveCursorTo(Start)
	if b.MoveCursor(Left) {
		t.Error("MoveCursor(Left) at start should fail")
	}
}

func TestBufferGoalColumn(t *testing.T) {
	b := NewFromString("abcdef\nab\nabcdef")
	b.SetCursor(5)

	b.MoveCursor(Down)
	if got := b.CursorPosition(); got != 9 {
		t.Fatalf("cursor on short line = %d, want 9", got)
	}
	b.MoveCursor(Down)
	if got := b.CursorPosition(); got != 15 {
		t.Errorf("cursor after returning to long line = %d, want 15", got)
	}
}

func TestBufferWordMoves(t *testing.T) {
	b := NewFromString("foo bar, baz")

	steps := []int{4, 9, 12}
	for _, want := range steps {
		b.MoveCursorWord(Right)
		if got := b.CursorPosition(); got != want {
			t.Fatalf("word right cursor = %d, want %d", got, want)
		}
	}

	back := []int{9, 4, 0}
	for _, want := range back {
		b.MoveCursorWord(Left)
		if got := b.CursorPosition(); got != want {
			t.Fatalf("word left cursor = %d, want %d", got, want)
		}
	}
	if b.MoveCursorWord(Left) {
		t.Error("word left at start should report no movement")
	}
}

func TestBufferDeleteWordForward(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		cursor  int
		removed string
		want    string
	}{
		{"word", "foo bar", 0, "foo", " bar"},
		{"mid word", "foo bar", 5, "ar", "foo b"},
		{"blanks", "foo   bar", 3, "   ", "foobar"},
		{"newline joins", "foo\nbar", 3, "\n", "foobar"},
		{"at end", "foo", 3, "", "foo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewFromString(tt.text)
			b.SetCursor(tt.cursor)
			if got := b.DeleteWordForward(); got != tt.removed {
				t.Errorf("removed = %q, want %q", got, tt.removed)
			}
			if got := b.Text(); got != tt.want {
				t.Errorf("text = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBufferDeleteLine(t *testing.T) {
	b := NewFromString("one\ntwo\nthree")
	b.SetCursor(5)

	if got := b.DeleteLine(); got != "two\n" {
		t.Errorf("DeleteLine() = %q, want %q", got, "two\n")
	}
	if got := b.Text(); got != "one\nthree" {
		t.Errorf("text = %q", got)
	}
	if got := b.CursorPosition(); got != 4 {
		t.Errorf("cursor = %d, want 4", got)
	}

	if got := b.DeleteLine(); got != "three" {
		t.Errorf("DeleteLine() on last line = %q, want %q", got, "three")
	}
	if got := b.Text(); got != "one\n" {
		t.Errorf("text = %q, want %q", got, "one\n")
	}
}

func TestBufferDeleteToLineEnd(t *testing.T) {
	b := NewFromString("hello world\nx")
	b.SetCursor(6)

	if got := b.DeleteToLineEnd(); got != "world" {
		t.Errorf("DeleteToLineEnd() = %q", got)
	}
	if got := b.Text(); got != "hello \nx" {
		t.Errorf("text = %q", got)
	}
	if got := b.DeleteToLineEnd(); got != "" {
		t.Errorf("second DeleteToLineEnd() = %q, want empty", got)
	}
}

func TestBufferSelection(t *testing.T) {
	b := NewFromString("hello world")

	b.SetSelection(5, 0)
	start, end, ok := b.Selection()
	if !ok || start != 0 || end != 5 {
		t.Fatalf("Selection() = %d, %d, %v; want 0, 5, true", start, end, ok)
	}
	if got := b.CursorPosition(); got != 0 {
		t.Errorf("cursor = %d, want 0", got)
	}
	if got := b.SelectedText(); got != "hello" {
		t.Errorf("SelectedText() = %q", got)
	}

	b.InsertText("bye")
	if got := b.Text(); got != "bye world" {
		t.Errorf("text after replace = %q", got)
	}
	if b.HasSelection() {
		t.Error("insert should consume the selection")
	}

	b.SetSelection(3, 3)
	if b.HasSelection() {
		t.Error("empty range should not count as a selection")
	}

	b.SetSelection(0, 4)
	b.MoveCursor(Right)
	if b.HasSelection() {
		t.Error("plain move should clear the selection")
	}
}

func TestBufferDeleteSelection(t *testing.T) {
	b := NewFromString("abcdef")
	b.SetSelection(1, 4)

	if got := b.DeleteSelection(); got != "bcd" {
		t.Errorf("DeleteSelection() = %q", got)
	}
	if got := b.Text(); got != "aef" {
		t.Errorf("text = %q", got)
	}
	if got := b.DeleteSelection(); got != "" {
		t.Errorf("DeleteSelection() without selection = %q", got)
	}
}

func TestBufferFind(t *testing.T) {
	b := NewFromString("Foo foo food")

	if !b.Find("foo", 0) {
		t.Fatal("Find(foo) = false")
	}
	if start, end, _ := b.Selection(); start != 4 || end != 7 {
		t.Errorf("first match = [%d,%d), want [4,7)", start, end)
	}
	if !b.Find("foo", 0) {
		t.Fatal("second Find(foo) = false")
	}
	if start, _, _ := b.Selection(); start != 8 {
		t.Errorf("second match start = %d, want 8", start)
	}
	if b.Find("foo", 0) {
		t.Error("search should not wrap")
	}

	b.SetCursor(0)
	if !b.Find("foo", FindIgnoreCase) {
		t.Fatal("Find ignore case = false")
	}
	if start, _, _ := b.Selection(); start != 0 {
		t.Errorf("ignore-case match start = %d, want 0", start)
	}

	b.SetCursor(0)
	b.Find("foo", FindWholeWord)
	if start, _, _ := b.Selection(); start != 4 {
		t.Errorf("whole-word match start = %d, want 4", start)
	}
	if b.Find("foo", FindWholeWord) {
		t.Error("whole-word search matched inside food")
	}

	b.SetCursor(b.Len())
	b.Find("foo", FindBackward)
	if start, _, _ := b.Selection(); start != 8 {
		t.Errorf("backward match start = %d, want 8", start)
	}
	b.Find("foo", FindBackward)
	if start, _, _ := b.Selection(); start != 4 {
		t.Errorf("second backward match start = %d, want 4", start)
	}

	if b.Find("", 0) {
		t.Error("empty needle should not match")
	}
}

func TestBufferUndoRedo(t *testing.T) {
	b := New()
	for _, r := range "abc" {
		b.HandleKey(key.NewRuneEvent(r, key.ModNone))
	}
	if got := b.Text(); got != "abc" {
		t.Fatalf("text = %q", got)
	}

	if !b.Undo() {
		t.Fatal("Undo() = false")
	}
	if got := b.Text(); got != "" {
		t.Errorf("typed run should undo as one group, text = %q", got)
	}
	if !b.Redo() {
		t.Fatal("Redo() = false")
	}
	if got := b.Text(); got != "abc" {
		t.Errorf("text after redo = %q", got)
	}
	if b.Redo() {
		t.Error("Redo() with nothing undone should fail")
	}
}

func TestBufferUndoGroupsBreakOnMove(t *testing.T) {
	b := New()
	b.HandleKey(key.NewRuneEvent('a', key.ModNone))
	b.SetCursor(0)
	b.HandleKey(key.NewRuneEvent('b', key.ModNone))

	if got := b.Text(); got != "ba" {
		t.Fatalf("text = %q", got)
	}
	b.Undo()
	if got := b.Text(); got != "a" {
		t.Errorf("text after undo = %q, want %q", got, "a")
	}
}

func TestBufferViewport(t *testing.T) {
	b := NewFromString(strings.Repeat("x\n", 29) + "x")
	b.SetViewHeight(10)

	if got := b.LineCount(); got != 30 {
		t.Fatalf("LineCount() = %d", got)
	}

	b.MoveCursorTo(End)
	if got := b.TopLine(); got != 20 {
		t.Errorf("TopLine() = %d, want 20", got)
	}

	b.MoveCursorTo(ScreenTop)
	if line, _ := b.CursorLineCol(); line != 20 {
		t.Errorf("ScreenTop line = %d, want 20", line)
	}
	b.MoveCursorTo(ScreenBottom)
	if line, _ := b.CursorLineCol(); line != 29 {
		t.Errorf("ScreenBottom line = %d, want 29", line)
	}

	b.MoveCursorTo(Start)
	if got := b.MoveLines(50); got != 29 {
		t.Errorf("MoveLines(50) = %d, want 29", got)
	}
	if got := b.MoveLines(-5); got != 5 {
		t.Errorf("MoveLines(-5) = %d, want 5", got)
	}
}

func TestBufferHandleKey(t *testing.T) {
	b := NewFromString("abc")

	b.HandleKey(key.NewSpecialEvent(key.KeyRight, key.ModShift))
	b.HandleKey(key.NewSpecialEvent(key.KeyRight, key.ModShift))
	if got := b.SelectedText(); got != "ab" {
		t.Errorf("shift selection = %q, want %q", got, "ab")
	}

	b.HandleKey(key.NewSpecialEvent(key.KeyEnd, key.ModNone))
	b.HandleKey(key.NewSpecialEvent(key.KeyEnter, key.ModNone))
	b.HandleKey(key.NewRuneEvent('D', key.ModShift))
	if got := b.Text(); got != "abc\nD" {
		t.Errorf("text = %q", got)
	}

	b.HandleKey(key.NewSpecialEvent(key.KeyBackspace, key.ModNone))
	if got := b.Text(); got != "abc\n" {
		t.Errorf("text after backspace = %q", got)
	}

	if b.HandleKey(key.Ctrl('k')) {
		t.Error("HandleKey(^K) should be ignored")
	}
	if b.HandleKey(key.NewSpecialEvent(key.KeyF5, key.ModNone)) {
		t.Error("HandleKey(F5) should be ignored")
	}
}

func TestBufferModified(t *testing.T) {
	b := NewFromString("x")
	if b.Modified() {
		t.Fatal("fresh buffer reports modified")
	}
	b.InsertText("y")
	if !b.Modified() {
		t.Error("insert should mark modified")
	}
	b.SetModified(false)
	b.SetText("z")
	if b.Modified() {
		t.Error("SetText should reset modified")
	}
	if b.Undo() {
		t.Error("SetText should clear undo history")
	}
}

func TestBufferLines(t *testing.T) {
	b := NewFromString("a\nbb\n")

	if got := b.LineCount(); got != 3 {
		t.Errorf("LineCount() = %d, want 3", got)
	}
	if got := b.Line(1); got != "bb" {
		t.Errorf("Line(1) = %q", got)
	}
	if got := b.Line(2); got != "" {
		t.Errorf("Line(2) = %q", got)
	}
	if got := b.LineStartOffset(2); got != 5 {
		t.Errorf("LineStartOffset(2) = %d, want 5", got)
	}
	if got := b.Line(9); got != "" {
		t.Errorf("Line(9) = %q", got)
	}
}

var _ Facade = (*Buffer)(nil)
