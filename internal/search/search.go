// Package search implements find, repeat-find and replace on top of the
// text buffer facade, with WordStar option letters.
package search

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/dshills/wledit/internal/textbuf"
)

var (
	// ErrNoSearch is returned by Repeat before any search ran.
	ErrNoSearch = errors.New("no previous search")
	// ErrEmptyQuery is returned for an empty search text.
	ErrEmptyQuery = errors.New("empty search text")
	// ErrInvalidOption is returned by ParseOptions for unknown letters.
	ErrInvalidOption = errors.New("invalid search option")
)

// Options modify a search.
type Options struct {
	IgnoreCase bool
	WholeWord  bool
	Backward   bool
	// Global searches from the document boundary and makes Replace
	// replace every occurrence.
	Global bool
}

// ParseOptions parses a WordStar option string: U ignore case, W whole
// words, B backwards, G whole document. Letters are case-insensitive;
// blanks are ignored.
func ParseOptions(s string) (Options, error) {
	var o Options
	for _, r := range s {
		switch unicode.ToUpper(r) {
		case 'U':
			o.IgnoreCase = true
		case 'W':
			o.WholeWord = true
		case 'B':
			o.Backward = true
		case 'G':
			o.Global = true
		case ' ', '\t':
		default:
			return Options{}, fmt.Errorf("%w: %q", ErrInvalidOption, r)
		}
	}
	return o, nil
}

// String returns the option letters in canonical order.
func (o Options) String() string {
	var sb strings.Builder
	if o.IgnoreCase {
		sb.WriteByte('U')
	}
	if o.WholeWord {
		sb.WriteByte('W')
	}
	if o.Backward {
		sb.WriteByte('B')
	}
	if o.Global {
		sb.WriteByte('G')
	}
	return sb.String()
}

// Flags converts the options to facade find flags.
func (o Options) Flags() textbuf.FindFlags {
	var f textbuf.FindFlags
	if o.IgnoreCase {
		f |= textbuf.FindIgnoreCase
	}
	if o.WholeWord {
		f |= textbuf.FindWholeWord
	}
	if o.Backward {
		f |= textbuf.FindBackward
	}
	return f
}

// Query is one search or replace request.
type Query struct {
	Text        string
	Replacement string
	Options     Options
}

// Engine runs searches against a buffer and remembers the last query.
type Engine struct {
	mu   sync.Mutex
	buf  textbuf.Facade
	last *Query
	// replacing is set when the last query was a replace; Repeat then
	// replaces too.
	replacing bool
}

// New creates an engine for buf.
func New(buf textbuf.Facade) *Engine {
	return &Engine{buf: buf}
}

// Last returns the last query.
func (e *Engine) Last() (Query, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.last == nil {
		return Query{}, false
	}
	return *e.last, true
}

// Find selects the next match of q and records q for Repeat. A global
// search starts at the document start, or the end when searching
// backwards.
func (e *Engine) Find(q Query) (bool, error) {
	if q.Text == "" {
		return false, ErrEmptyQuery
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	e.remember(q)
	if q.Options.Global {
		if q.Options.Backward {
			e.buf.SetCursor(e.buf.Len())
		} else {
			e.buf.SetCursor(0)
		}
	}
	return e.buf.Find(q.Text, q.Options.Flags()), nil
}

// Repeat runs the last query again from the cursor. After a replace it
// replaces the current match and moves to the next one.
func (e *Engine) Repeat() (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.last == nil {
		return false, ErrNoSearch
	}
	if e.replacing {
		return e.replaceOne(*e.last), nil
	}
	return e.buf.Find(e.last.Text, e.last.Options.Flags()), nil
}

// Replace replaces the current match of q, if the selection is one, and
// selects the next match. It reports whether a replacement was made and
// whether another match follows. With the Global option it behaves as
// ReplaceAll.
func (e *Engine) Replace(q Query) (replaced int, more bool, err error) {
	if q.Text == "" {
		return 0, false, ErrEmptyQuery
	}
	if q.Options.Global {
		n, err := e.ReplaceAll(q)
		return n, false, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.rememberReplace(q)
	if e.selectionMatches(q) {
		e.buf.InsertText(q.Replacement)
		replaced = 1
	}
	more = e.buf.Find(q.Text, q.Options.Flags())
	return replaced, more, nil
}

// ReplaceAll replaces every occurrence of q from the document start and
// returns the count.
func (e *Engine) ReplaceAll(q Query) (int, error) {
	if q.Text == "" {
		return 0, ErrEmptyQuery
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	e.rememberReplace(q)
	flags := q.Options.Flags() &^ textbuf.FindBackward
	e.buf.SetCursor(0)

	n := 0
	for e.buf.Find(q.Text, flags) {
		e.buf.InsertText(q.Replacement)
		n++
	}
	return n, nil
}

func (e *Engine) replaceOne(q Query) bool {
	if e.selectionMatches(q) {
		e.buf.InsertText(q.Replacement)
	}
	return e.buf.Find(q.Text, q.Options.Flags())
}

func (e *Engine) selectionMatches(q Query) bool {
	if !e.buf.HasSelection() {
		return false
	}
	sel := e.buf.SelectedText()
	if q.Options.IgnoreCase {
		return strings.EqualFold(sel, q.Text)
	}
	return sel == q.Text
}

// remember stores a find query. Callers hold e.mu.
func (e *Engine) remember(q Query) {
	q.Replacement = ""
	q.Options.Global = false
	e.last = &q
	e.replacing = false
}

func (e *Engine) rememberReplace(q Query) {
	q.Options.Global = false
	e.last = &q
	e.replacing = true
}
