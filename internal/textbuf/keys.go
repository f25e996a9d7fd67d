package textbuf

import "github.com/dshills/wledit/internal/input/key"

// HandleKey applies the widget's native handling for keys the chord layer
// left unhandled. It returns false for keys it ignores.
func (b *Buffer) HandleKey(ev key.Event) bool {
	shift := ev.Modifiers.Has(key.ModShift)
	ctrl := ev.Modifiers.HasCtrl()

	switch ev.Key {
	case key.KeyRune:
		switch {
		case ev.IsCtrlOnly() && ev.Rune == 'u':
			b.Undo()
			return true
		case ev.Modifiers == key.ModAlt && (ev.Rune == 'u' || ev.Rune == 'U'):
			b.Redo()
			return true
		case ctrl || ev.Modifiers.HasAlt() || !ev.IsChar():
			return false
		}
		b.InsertText(string(ev.Rune))
	case key.KeyEnter:
		b.InsertText("\n")
	case key.KeyTab:
		b.InsertText("\t")
	case key.KeyBackspace:
		b.DeleteBackward()
	case key.KeyDelete:
		b.DeleteForward()
	case key.KeyUp:
		b.moveKey(Up, shift)
	case key.KeyDown:
		b.moveKey(Down, shift)
	case key.KeyLeft:
		if ctrl {
			b.MoveCursorWord(Left)
			return true
		}
		b.moveKey(Left, shift)
	case key.KeyRight:
		if ctrl {
			b.MoveCursorWord(Right)
			return true
		}
		b.moveKey(Right, shift)
	case key.KeyHome:
		if ctrl {
			b.MoveCursorTo(Start)
		} else {
			b.MoveCursorTo(LineStart)
		}
	case key.KeyEnd:
		if ctrl {
			b.MoveCursorTo(End)
		} else {
			b.MoveCursorTo(LineEnd)
		}
	case key.KeyPageUp:
		b.MoveLines(-b.VisibleLines())
	case key.KeyPageDown:
		b.MoveLines(b.VisibleLines())
	default:
		return false
	}
	return true
}

// moveKey moves one step; with extend the native selection grows from
// the position the cursor had when extension began.
func (b *Buffer) moveKey(dir Direction, extend bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !extend {
		b.selecting = false
		b.move(dir)
		return
	}
	if !b.selecting {
		b.anchor = b.cursor
		b.selecting = true
	}
	b.move(dir)
}
