// Package key provides the key event types consumed by the chord engine.
//
// Events arrive from the host terminal already reduced to a small symbolic
// alphabet: named special keys (Escape, Enter, arrows, function keys) or a
// character key carried in Event.Rune, plus a modifier set.
//
// Control chords are represented as a character key with ModCtrl set, so
// ^K is Event{Key: KeyRune, Rune: 'k', Modifiers: ModCtrl} regardless of
// how the terminal encoded it.
//
// # Key Specifications
//
// Specifications are accepted in two notations:
//
//   - Named: "a", "Enter", "Escape", "Ctrl+K", "Alt+U"
//   - Caret: "^K", "^Q" (control + letter, the classic WordStar notation)
package key
