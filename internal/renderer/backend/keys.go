package backend

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/wledit/internal/input/key"
)

// specialKeys maps tcell keys that have no control-letter alias.
var specialKeys = map[tcell.Key]key.Key{
	tcell.KeyDelete: key.KeyDelete,
	tcell.KeyInsert: key.KeyInsert,
	tcell.KeyHome:   key.KeyHome,
	tcell.KeyEnd:    key.KeyEnd,
	tcell.KeyPgUp:   key.KeyPageUp,
	tcell.KeyPgDn:   key.KeyPageDown,
	tcell.KeyUp:     key.KeyUp,
	tcell.KeyDown:   key.KeyDown,
	tcell.KeyLeft:   key.KeyLeft,
	tcell.KeyRight:  key.KeyRight,
	tcell.KeyF1:     key.KeyF1,
	tcell.KeyF2:     key.KeyF2,
	tcell.KeyF3:     key.KeyF3,
	tcell.KeyF4:     key.KeyF4,
	tcell.KeyF5:     key.KeyF5,
	tcell.KeyF6:     key.KeyF6,
	tcell.KeyF7:     key.KeyF7,
	tcell.KeyF8:     key.KeyF8,
	tcell.KeyF9:     key.KeyF9,
	tcell.KeyF10:    key.KeyF10,
	tcell.KeyF11:    key.KeyF11,
	tcell.KeyF12:    key.KeyF12,
}

// ConvertKey converts a tcell key event. Control letters become rune
// events with ModCtrl, e.g. ^K is Rune 'k' with ModCtrl. Tab, Enter and
// Backspace share codes with ^I, ^M and ^H; they are reported as the named
// keys unless tcell saw the Control modifier.
func ConvertKey(ev *tcell.EventKey) (key.Event, bool) {
	mods := convertMod(ev.Modifiers())
	k := ev.Key()

	switch {
	case k == tcell.KeyRune:
		r := ev.Rune()
		if mods.HasCtrl() {
			r = unicode.ToLower(r)
		}
		return key.NewRuneEvent(r, mods), true
	case k == tcell.KeyEscape:
		return key.NewSpecialEvent(key.KeyEscape, mods), true
	case k == tcell.KeyBackspace || k == tcell.KeyBackspace2:
		if mods.HasCtrl() {
			return key.NewRuneEvent('h', mods), true
		}
		return key.NewSpecialEvent(key.KeyBackspace, mods), true
	case k == tcell.KeyTab:
		return key.NewSpecialEvent(key.KeyTab, mods.Without(key.ModCtrl)), true
	case k == tcell.KeyEnter:
		return key.NewSpecialEvent(key.KeyEnter, mods.Without(key.ModCtrl)), true
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		r := 'a' + rune(k-tcell.KeyCtrlA)
		return key.NewRuneEvent(r, mods.With(key.ModCtrl)), true
	case k == tcell.KeyCtrlSpace:
		return key.NewRuneEvent(' ', mods.With(key.ModCtrl)), true
	}

	if sk, ok := specialKeys[k]; ok {
		return key.NewSpecialEvent(sk, mods), true
	}
	return key.Event{}, false
}

// convertMod converts a tcell modifier mask.
func convertMod(m tcell.ModMask) key.Modifier {
	var result key.Modifier
	if m&tcell.ModShift != 0 {
		result |= key.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		result |= key.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		result |= key.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		result |= key.ModMeta
	}
	return result
}
