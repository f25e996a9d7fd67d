package app

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/dshills/wledit/internal/config"
	"github.com/dshills/wledit/internal/logging"
	"github.com/dshills/wledit/internal/renderer"
	"github.com/dshills/wledit/internal/renderer/backend"
)

// Application runs one Editor on a terminal backend.
type Application struct {
	mu sync.RWMutex

	opts   Options
	cfg    *config.Config
	logger *logging.Logger

	backend  backend.Backend
	renderer *renderer.Renderer
	editor   *Editor
	watcher  *config.Watcher

	reloads chan *config.Config

	running  atomic.Bool
	done     chan struct{}
	stopOnce sync.Once
}

// Options configures the application.
type Options struct {
	// ConfigPath is watched for changes while running. Empty disables
	// live reload.
	ConfigPath string

	// Config is the loaded configuration. Nil means the defaults.
	Config *config.Config

	// File is the file to edit. Empty opens a scratch buffer.
	File string

	// ReadOnly opens the file in read-only mode.
	ReadOnly bool

	// Logger receives the application log. Nil means the null logger.
	Logger *logging.Logger
}

// New creates a new Application with the given options.
func New(opts Options) (*Application, error) {
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Logger == nil {
		opts.Logger = logging.Null()
	}

	app := &Application{
		opts:    opts,
		cfg:     opts.Config,
		logger:  opts.Logger,
		reloads: make(chan *config.Config, 4),
		done:    make(chan struct{}),
	}

	doc, text := NewScratchDocument(), ""
	if opts.File != "" {
		var err error
		doc, text, err = OpenDocument(opts.File, opts.ReadOnly)
		if err != nil {
			return nil, err
		}
	}

	editor, err := NewEditor(doc, text, app.cfg, app.logger)
	if err != nil {
		return nil, &InitError{Component: "editor", Err: err}
	}
	app.editor = editor
	return app, nil
}

// SetBackend sets the terminal backend.
// Must be called before Run().
func (app *Application) SetBackend(b backend.Backend) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.running.Load() {
		return ErrAlreadyRunning
	}

	app.backend = b
	return nil
}

// Editor returns the editor.
func (app *Application) Editor() *Editor {
	return app.editor
}

// Run starts the application main loop. It blocks until the editor quits,
// ctx is cancelled or Shutdown is called.
func (app *Application) Run(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	app.mu.RLock()
	b := app.backend
	app.mu.RUnlock()
	if b == nil {
		return &InitError{Component: "backend", Err: errors.New("no backend set")}
	}

	if err := b.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer b.Shutdown()

	app.mu.Lock()
	app.renderer = renderer.New(b, renderer.Options{TabWidth: app.cfg.Editor.TabWidth})
	app.mu.Unlock()

	app.editor.SetWake(b.Wake)
	defer app.editor.Close()

	if app.opts.ConfigPath != "" {
		app.startWatcher()
		defer app.stopWatcher()
	}

	events := app.startInputPolling(b)
	app.draw()

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-app.done:
			return nil

		case cfg := <-app.reloads:
			app.applyConfig(cfg)

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := app.handleBackendEvent(ev); err != nil {
				if errors.Is(err, ErrQuit) {
					return nil
				}
				return err
			}
		}
		app.draw()
	}
}

// Shutdown stops a running application.
func (app *Application) Shutdown() {
	app.stopOnce.Do(func() { close(app.done) })
}

// IsRunning returns true if the application is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// handleBackendEvent processes a backend event and routes it appropriately.
// Returns ErrQuit if the application should exit.
func (app *Application) handleBackendEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventKey:
		return app.editor.HandleKey(ev.Key)
	case backend.EventResize, backend.EventWake:
		// Redrawn by the caller.
		return nil
	default:
		return nil
	}
}

func (app *Application) draw() {
	app.mu.RLock()
	r := app.renderer
	app.mu.RUnlock()
	if r != nil {
		app.editor.Draw(r)
	}
}

// startInputPolling starts a goroutine that forwards backend events. The
// channel is closed once the backend stops delivering events.
func (app *Application) startInputPolling(b backend.Backend) <-chan backend.Event {
	events := make(chan backend.Event, 100)

	go func() {
		defer close(events)

		for {
			// PollEvent is blocking. The backend.Shutdown() call in Run()
			// unblocks it with an EventNone.
			ev := b.PollEvent()
			if ev.Type == backend.EventNone {
				return
			}

			select {
			case events <- ev:
			case <-app.done:
				return
			}
		}
	}()

	return events
}

func (app *Application) startWatcher() {
	w, err := config.Watch(app.opts.ConfigPath, app.queueReload,
		config.WithLogger(app.logger),
		config.WithErrorHandler(func(err error) {
			app.editor.Status().Error("config: " + err.Error())
		}),
	)
	if err != nil {
		app.logger.Warn("config watch disabled: %v", err)
		return
	}

	app.mu.Lock()
	app.watcher = w
	app.mu.Unlock()
}

func (app *Application) stopWatcher() {
	app.mu.Lock()
	w := app.watcher
	app.watcher = nil
	app.mu.Unlock()

	if w != nil {
		_ = w.Close()
	}
}

// queueReload hands a reloaded configuration to the event loop. It runs on
// the watcher goroutine.
func (app *Application) queueReload(cfg *config.Config) {
	select {
	case app.reloads <- cfg:
	default:
		app.logger.Warn("config reload dropped: queue full")
	}
}

func (app *Application) applyConfig(cfg *config.Config) {
	app.mu.Lock()
	app.cfg = cfg
	r := app.renderer
	app.mu.Unlock()

	app.editor.ApplyConfig(cfg)
	if r != nil {
		r.SetTabWidth(cfg.Editor.TabWidth)
	}
	app.logger.SetLevel(logging.ParseLevel(cfg.Log.Level))
	app.editor.Status().Showf("configuration reloaded")
}
