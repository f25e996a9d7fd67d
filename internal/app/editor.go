package app

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/wledit/internal/block"
	"github.com/dshills/wledit/internal/chord"
	"github.com/dshills/wledit/internal/clipboard"
	"github.com/dshills/wledit/internal/cliphist"
	"github.com/dshills/wledit/internal/config"
	"github.com/dshills/wledit/internal/dispatch"
	"github.com/dshills/wledit/internal/input/key"
	"github.com/dshills/wledit/internal/logging"
	"github.com/dshills/wledit/internal/renderer"
	"github.com/dshills/wledit/internal/renderer/statusline"
	"github.com/dshills/wledit/internal/search"
	"github.com/dshills/wledit/internal/status"
	"github.com/dshills/wledit/internal/textbuf"
)

// Editor is one editing session: a document, its buffer and the chord
// pipeline that drives them. Each editor has its own chord state, block
// and clipboard history.
type Editor struct {
	id     string
	logger *logging.Logger
	doc    *Document

	buf      *textbuf.Buffer
	history  *cliphist.History
	clip     clipboard.Clipboard
	block    *block.Controller
	search   *search.Engine
	status   *status.Line
	dispatch *dispatch.Dispatcher
	chord    *chord.Handler
	prompt   *Minibuffer

	mu        sync.Mutex
	keys      hostKeys
	wake      func()
	quitArmed bool
}

// hostKeys are handled before the chord engine sees a key.
type hostKeys struct {
	save, quit, find key.Event
}

func parseHostKeys(kc config.KeysConfig) (hostKeys, error) {
	var hk hostKeys
	for _, b := range []struct {
		name string
		spec string
		dst  *key.Event
	}{
		{"save", kc.Save, &hk.save},
		{"quit", kc.Quit, &hk.quit},
		{"find", kc.Find, &hk.find},
	} {
		ev, err := key.Parse(b.spec)
		if err != nil {
			return hostKeys{}, fmt.Errorf("keys.%s: %w", b.name, err)
		}
		*b.dst = ev
	}
	return hk, nil
}

// NewEditor creates an editor for doc holding text. A nil cfg means the
// default configuration.
func NewEditor(doc *Document, text string, cfg *config.Config, logger *logging.Logger) (*Editor, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = logging.Null()
	}
	mode, err := dispatch.ParseDeleteLine(cfg.Editor.DeleteLine)
	if err != nil {
		return nil, err
	}
	keys, err := parseHostKeys(cfg.Keys)
	if err != nil {
		return nil, err
	}

	id := uuid.New().String()
	e := &Editor{
		id:      id,
		logger:  logger.WithField("editor", id),
		doc:     doc,
		buf:     textbuf.NewFromString(text),
		history: cliphist.New(cfg.Clipboard.HistorySize),
		status:  status.NewLine(cfg.StatusDuration()),
		keys:    keys,
	}
	if cfg.Clipboard.UseSystem {
		e.clip = clipboard.NewSystem()
	} else {
		e.clip = clipboard.NewMemory()
	}

	e.block = block.New(e.buf, e.history, e.clip, e.logger)
	e.search = search.New(e.buf)
	e.prompt = NewMinibuffer(e.submitPrompt)
	e.dispatch = dispatch.New(dispatch.Deps{
		Buffer:    e.buf,
		Block:     e.block,
		History:   e.history,
		Clipboard: e.clip,
		Search:    e.search,
		Status:    e.status,
		Prompter:  e.prompt,
		Logger:    e.logger,
	}, mode)
	e.chord = chord.NewHandler(e.dispatch, chord.Config{
		Timeout: cfg.ChordTimeout(),
		Logger:  e.logger,
	})

	e.chord.OnStateChange(func(chord.State) { e.redraw() })
	e.block.OnChange(func(bool, int) { e.redraw() })
	e.status.OnChange(e.redraw)

	e.logger.Info("editing %s", doc.Name)
	return e, nil
}

// ID returns the editor's unique identifier.
func (e *Editor) ID() string { return e.id }

// Document returns the document being edited.
func (e *Editor) Document() *Document { return e.doc }

// Buffer returns the text buffer.
func (e *Editor) Buffer() *textbuf.Buffer { return e.buf }

// Block returns the block controller.
func (e *Editor) Block() *block.Controller { return e.block }

// History returns the clipboard history.
func (e *Editor) History() *cliphist.History { return e.history }

// Chord returns the chord handler.
func (e *Editor) Chord() *chord.Handler { return e.chord }

// Status returns the status line.
func (e *Editor) Status() *status.Line { return e.status }

// Prompt returns the minibuffer.
func (e *Editor) Prompt() *Minibuffer { return e.prompt }

// SetWake sets fn to be called when a timer changes what is displayed.
// fn may run on any goroutine.
func (e *Editor) SetWake(fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.wake = fn
}

func (e *Editor) redraw() {
	e.mu.Lock()
	fn := e.wake
	e.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// HandleKey runs one key through the prompt, the host keys (F2 save, F3
// find and F10 quit by default), the chord handler and finally the
// buffer's own key handling. It returns ErrQuit when the editor should
// close.
func (e *Editor) HandleKey(ev key.Event) error {
	if e.prompt.HandleKey(ev) {
		return nil
	}

	e.mu.Lock()
	keys := e.keys
	armed := e.quitArmed
	e.quitArmed = false
	e.mu.Unlock()

	isSave, isFind, isQuit := ev.Matches(keys.save), ev.Matches(keys.find), ev.Matches(keys.quit)
	if isSave || isFind || isQuit {
		// Host keys abandon a pending chord.
		e.chord.Reset()
	}

	switch {
	case isSave:
		_ = e.Save() // reported on the status line
		return nil
	case isFind:
		e.prompt.Prompt(dispatch.PromptFind)
		return nil
	case isQuit:
		err := e.Quit(armed)
		if errors.Is(err, ErrUnsavedChanges) {
			e.mu.Lock()
			e.quitArmed = true
			e.mu.Unlock()
			e.status.Warn(fmt.Sprintf("unsaved changes: %s saves, %s again quits", keys.save, keys.quit))
			return nil
		}
		return err
	}

	if e.chord.Handle(ev) == chord.Handled {
		return nil
	}

	// The block span is mirrored into the selection; plain typing must not
	// replace it, so the selection is dropped and mirrored again after.
	blockOn := e.block.Active()
	if blockOn {
		e.buf.ClearSelection()
	}
	if !e.buf.HandleKey(ev) {
		e.logger.Debug("unbound key %s", ev)
	}
	if blockOn {
		e.block.Extend()
	}
	return nil
}

// Save writes the buffer to the document's file.
func (e *Editor) Save() error {
	if err := e.doc.Save(e.buf.Text()); err != nil {
		e.logger.Warn("save failed: %v", err)
		e.status.Error(err.Error())
		return err
	}
	e.buf.SetModified(false)
	e.logger.Info("saved %s", e.doc.Path)
	e.status.Showf("saved %s", e.doc.Name)
	return nil
}

// Quit returns ErrQuit, or ErrUnsavedChanges when the buffer is modified
// and force is false.
func (e *Editor) Quit(force bool) error {
	if e.buf.Modified() && !force {
		return ErrUnsavedChanges
	}
	return ErrQuit
}

// ApplyConfig applies the settings that can change while running. The
// clipboard settings only take effect in a new editor.
func (e *Editor) ApplyConfig(cfg *config.Config) {
	e.chord.SetTimeout(cfg.ChordTimeout())
	e.status.SetDuration(cfg.StatusDuration())

	mode, err := dispatch.ParseDeleteLine(cfg.Editor.DeleteLine)
	if err != nil {
		e.logger.Warn("config: %v", err)
		return
	}
	e.dispatch.SetDeleteLine(mode)

	keys, err := parseHostKeys(cfg.Keys)
	if err != nil {
		e.logger.Warn("config: %v", err)
		return
	}
	e.mu.Lock()
	e.keys = keys
	e.mu.Unlock()
	e.logger.Debug("applied config: timeout=%s delete_line=%s", cfg.ChordTimeout(), mode)
}

// Draw renders the editor.
func (e *Editor) Draw(r *renderer.Renderer) {
	e.buf.SetViewHeight(r.TextHeight())

	st := r.Status()
	st.SetFilename(e.doc.Name)
	st.SetModified(e.buf.Modified())
	st.SetReadOnly(e.doc.ReadOnly)
	line, col := e.buf.CursorLineCol()
	st.SetPosition(line+1, col+1)
	st.SetChord(e.chord.State().String())
	st.SetBlock(e.block.Active())

	if msg, ok := e.status.Current(); ok {
		st.SetMessage(msg.Text, messageType(msg.Level))
	} else {
		st.ClearMessage()
	}
	if e.prompt.Active() {
		input, cursor := e.prompt.Input()
		st.SetPrompt(e.prompt.Label(), input, cursor)
	} else {
		st.ClearPrompt()
	}

	r.Render(e.buf, e.block)
}

// Close stops the editor's timers.
func (e *Editor) Close() {
	e.chord.Close()
	e.status.Clear()
	e.logger.Debug("closed")
}

func (e *Editor) submitPrompt(kind dispatch.PromptKind, answers []string) {
	opts, err := search.ParseOptions(answers[len(answers)-1])
	if err != nil {
		e.status.Error(err.Error())
		return
	}

	q := search.Query{Text: answers[0], Options: opts}
	if kind == dispatch.PromptReplace {
		q.Replacement = answers[1]
		e.dispatch.Replace(q)
	} else {
		e.dispatch.Find(q)
	}
	e.block.Extend()
}

func messageType(l status.Level) statusline.MessageType {
	switch l {
	case status.LevelWarn:
		return statusline.MessageWarning
	case status.LevelError:
		return statusline.MessageError
	default:
		return statusline.MessageInfo
	}
}
