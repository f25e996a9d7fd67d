// Package renderer draws the editor on a terminal backend.
//
// A frame is the visible lines of the document plus one status row:
//
//	┌──────────────────────────────┐
//	│ text rows (block highlight)  │
//	│ ...                          │
//	├──────────────────────────────┤
//	│ status line / prompt         │
//	└──────────────────────────────┘
//
// Tabs expand to the configured width and wide runes take two cells
// (go-runewidth). The block span is drawn with StyleBlock and the anchor
// cell with StyleAnchor; the buffer's own selection uses StyleSelection.
//
// Usage:
//
//	term, _ := backend.NewTerminal()
//	r := renderer.New(term, renderer.DefaultOptions())
//	r.Render(buf, blockController)
package renderer
