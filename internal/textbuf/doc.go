// Package textbuf defines the text buffer facade the chord engine drives,
// and provides Buffer, an in-memory implementation of it.
//
// The facade owns document content, the cursor, the native selection,
// undo/redo and the viewport. Positions are rune offsets into the
// document; lines are separated by '\n' only (line endings are normalized
// by the document loader).
//
// Buffer keeps whole-document operations simple: every call takes the
// buffer lock, so a Buffer may be shared between the event loop and
// background readers such as the renderer.
package textbuf
