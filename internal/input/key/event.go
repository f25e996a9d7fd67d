package key

import (
	"fmt"
	"time"
	"unicode"
)

// Event represents a single key press event.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// NewEvent creates a key event with the current timestamp.
func NewEvent(key Key, r rune, mods Modifier) Event {
	return Event{
		Key:       key,
		Rune:      r,
		Modifiers: mods,
		Timestamp: time.Now(),
	}
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	return NewEvent(KeyRune, r, mods)
}

// NewSpecialEvent creates a key event for a special key.
func NewSpecialEvent(key Key, mods Modifier) Event {
	return NewEvent(key, 0, mods)
}

// Ctrl creates the control chord for a letter, e.g. Ctrl('k') is ^K.
// The rune is stored lowercase.
func Ctrl(r rune) Event {
	return NewRuneEvent(unicode.ToLower(r), ModCtrl)
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsChar returns true if this is a printable character.
func (e Event) IsChar() bool {
	return e.IsRune() && unicode.IsPrint(e.Rune)
}

// IsEscape returns true if this is the Escape key (with no modifiers).
func (e Event) IsEscape() bool {
	return e.Key == KeyEscape && e.Modifiers == ModNone
}

// IsCtrlOnly reports whether Control is held and no other modifier is.
func (e Event) IsCtrlOnly() bool {
	return e.Modifiers == ModCtrl
}

// Letter returns the uppercase letter of a character key, or 0 when the
// event is not a letter. Modifiers are ignored.
func (e Event) Letter() rune {
	if !e.IsRune() || !unicode.IsLetter(e.Rune) {
		return 0
	}
	return unicode.ToUpper(e.Rune)
}

// String returns the canonical form: "^K" for control letters,
// otherwise modifiers joined with the key name ("Alt+U", "Escape", "a").
func (e Event) String() string {
	if e.IsCtrlOnly() && e.Letter() != 0 {
		return "^" + string(e.Letter())
	}

	var name string
	switch {
	case e.Key == KeyRune && e.Rune == ' ':
		name = "Space"
	case e.Key == KeyRune:
		name = string(e.Rune)
	default:
		name = e.Key.String()
	}

	mods := e.Modifiers
	if e.IsRune() {
		// Shift is part of the character itself.
		mods = mods.Without(ModShift)
	}
	if mods == ModNone {
		return name
	}
	return mods.String() + "+" + name
}

// Matches reports whether e and other are the same key press, treating
// Shift as part of the character for rune events. Bindings use it since
// terminals differ in whether they report Shift with a shifted character.
func (e Event) Matches(other Event) bool {
	if e.Key != other.Key || e.Rune != other.Rune {
		return false
	}
	m1, m2 := e.Modifiers, other.Modifiers
	if e.Key == KeyRune {
		m1, m2 = m1.Without(ModShift), m2.Without(ModShift)
	}
	return m1 == m2
}

// Equals returns true if two events represent the same key press.
// Timestamps are not compared.
func (e Event) Equals(other Event) bool {
	return e.Key == other.Key &&
		e.Rune == other.Rune &&
		e.Modifiers == other.Modifiers
}

// GoString implements fmt.GoStringer for debugging.
func (e Event) GoString() string {
	return fmt.Sprintf("Event{Key: %s, Rune: %q, Modifiers: %s}",
		e.Key.String(), e.Rune, e.Modifiers.String())
}
