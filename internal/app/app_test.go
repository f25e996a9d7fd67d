package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dshills/wledit/internal/config"
	"github.com/dshills/wledit/internal/input/key"
	"github.com/dshills/wledit/internal/renderer/backend"
)

func startApp(t *testing.T, opts Options) (*Application, *backend.NullBackend, <-chan error) {
	t.Helper()
	if opts.Config == nil {
		opts.Config = testConfig()
	}
	app, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	b := backend.NewNullBackend(40, 5)
	if err := app.SetBackend(b); err != nil {
		t.Fatalf("SetBackend: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- app.Run(context.Background()) }()
	t.Cleanup(app.Shutdown)
	return app, b, done
}

func waitRun(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
		return nil
	}
}

func TestApplicationRunQuit(t *testing.T) {
	app, b, done := startApp(t, Options{})

	for _, r := range "hi" {
		b.PostKey(key.NewRuneEvent(r, key.ModNone))
	}
	b.PostKey(key.NewSpecialEvent(key.KeyF10, key.ModNone))
	b.PostKey(key.NewSpecialEvent(key.KeyF10, key.ModNone))

	if err := waitRun(t, done); err != nil {
		t.Fatalf("Run = %v, want nil", err)
	}
	if got := app.Editor().Buffer().Text(); got != "hi" {
		t.Errorf("Text = %q, want %q", got, "hi")
	}
	if got := b.Row(0); got != "hi" {
		t.Errorf("Row(0) = %q, want %q", got, "hi")
	}
	if app.IsRunning() {
		t.Error("IsRunning after Run returned")
	}
}

func TestApplicationShutdown(t *testing.T) {
	app, _, done := startApp(t, Options{})

	app.Shutdown()
	if err := waitRun(t, done); err != nil {
		t.Errorf("Run = %v, want nil", err)
	}
	app.Shutdown()
}

func TestApplicationContextCancel(t *testing.T) {
	app, err := New(Options{Config: testConfig()})
	if err != nil {
		t.Fatal(err)
	}
	if err := app.SetBackend(backend.NewNullBackend(20, 5)); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()
	cancel()

	if err := waitRun(t, done); err != nil {
		t.Errorf("Run = %v, want nil", err)
	}
}

func TestApplicationRunWithoutBackend(t *testing.T) {
	app, err := New(Options{Config: testConfig()})
	if err != nil {
		t.Fatal(err)
	}

	var initErr *InitError
	if err := app.Run(context.Background()); !errors.As(err, &initErr) {
		t.Errorf("Run = %v, want InitError", err)
	}
}

func TestApplicationRejectsSecondRun(t *testing.T) {
	app, _, done := startApp(t, Options{})

	deadline := time.Now().Add(2 * time.Second)
	for !app.IsRunning() && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if err := app.Run(context.Background()); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second Run = %v, want ErrAlreadyRunning", err)
	}
	if err := app.SetBackend(backend.NewNullBackend(1, 1)); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("SetBackend while running = %v, want ErrAlreadyRunning", err)
	}

	app.Shutdown()
	waitRun(t, done)
}

func TestApplicationOpensFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	if err := os.WriteFile(path, []byte("line one\r\nline two\r\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	app, err := New(Options{Config: testConfig(), File: path, ReadOnly: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ed := app.Editor()
	if got := ed.Buffer().Text(); got != "line one\nline two\n" {
		t.Errorf("Text = %q", got)
	}
	if !ed.Document().ReadOnly || ed.Document().LineEnding != LineEndingCRLF {
		t.Errorf("document = %+v", ed.Document())
	}
	if err := ed.Save(); !errors.Is(err, ErrReadOnly) {
		t.Errorf("Save = %v, want ErrReadOnly", err)
	}
}

func TestApplicationReloadsConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	write := func(body string) {
		t.Helper()
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("[clipboard]\nuse_system = false\n")

	cfg, err := config.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	app, _, done := startApp(t, Options{Config: cfg, ConfigPath: path})

	// Give the watcher time to start before changing the file.
	time.Sleep(200 * time.Millisecond)
	write("[clipboard]\nuse_system = false\n[chord]\ntimeout_ms = 700\n")

	deadline := time.Now().Add(5 * time.Second)
	for app.Editor().Chord().Timeout() != 700*time.Millisecond {
		if time.Now().After(deadline) {
			t.Fatalf("timeout = %v, want 700ms after reload", app.Editor().Chord().Timeout())
		}
		time.Sleep(20 * time.Millisecond)
	}

	app.Shutdown()
	if err := waitRun(t, done); err != nil {
		t.Errorf("Run = %v", err)
	}
}
