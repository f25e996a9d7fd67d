// Package chord implements the WordStar-style control-key chord engine.
//
// A keystroke is either a single control command from the primary table,
// the lead of a two-stage chord (^Q or ^K), the second key of a pending
// chord, or a cancel. Step is the pure transition function over
// (State, key.Event); Handler wraps it with the mutable per-editor state,
// the idle-reset timer and an Executor that carries out resolved
// commands.
//
// Second keys are matched on their letter alone, so "^Q F" and "^Q ^F"
// resolve identically. A second key with no table entry is absorbed.
package chord
