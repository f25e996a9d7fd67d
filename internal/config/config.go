package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/dshills/wledit/internal/input/key"
	"github.com/dshills/wledit/internal/logging"
)

// Delete-line modes accepted by editor.delete_line.
const (
	DeleteLineToEnd = "to_end"
	DeleteLineWhole = "whole_line"
)

// Config is the complete wledit configuration.
type Config struct {
	Chord     ChordConfig     `toml:"chord" yaml:"chord"`
	Clipboard ClipboardConfig `toml:"clipboard" yaml:"clipboard"`
	Editor    EditorConfig    `toml:"editor" yaml:"editor"`
	Status    StatusConfig    `toml:"status" yaml:"status"`
	Keys      KeysConfig      `toml:"keys" yaml:"keys"`
	Log       LogConfig       `toml:"log" yaml:"log"`
}

// ChordConfig configures the chord engine.
type ChordConfig struct {
	// TimeoutMS resets a pending ^Q or ^K after this many milliseconds.
	TimeoutMS int `toml:"timeout_ms" yaml:"timeout_ms"`
}

// ClipboardConfig configures the clipboard history and system clipboard.
type ClipboardConfig struct {
	HistorySize int `toml:"history_size" yaml:"history_size"`
	// UseSystem mirrors copies to the system clipboard and pastes from it
	// when the history is empty.
	UseSystem bool `toml:"use_system" yaml:"use_system"`
}

// EditorConfig configures editing behavior.
type EditorConfig struct {
	// DeleteLine is DeleteLineToEnd or DeleteLineWhole.
	DeleteLine string `toml:"delete_line" yaml:"delete_line"`
	TabWidth   int    `toml:"tab_width" yaml:"tab_width"`
}

// StatusConfig configures the status line.
type StatusConfig struct {
	DurationMS int `toml:"duration_ms" yaml:"duration_ms"`
}

// KeysConfig binds the host keys that are handled before the chord
// engine. Values use key notation such as "F2" or "Alt+S".
type KeysConfig struct {
	Save string `toml:"save" yaml:"save"`
	Quit string `toml:"quit" yaml:"quit"`
	Find string `toml:"find" yaml:"find"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
	// File receives the log. Empty disables logging in the terminal.
	File string `toml:"file" yaml:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Chord:     ChordConfig{TimeoutMS: 3000},
		Clipboard: ClipboardConfig{HistorySize: 10, UseSystem: true},
		Editor:    EditorConfig{DeleteLine: DeleteLineToEnd, TabWidth: 4},
		Status:    StatusConfig{DurationMS: 2500},
		Keys:      KeysConfig{Save: "F2", Quit: "F10", Find: "F3"},
		Log:       LogConfig{Level: "info"},
	}
}

// ChordTimeout returns the chord timeout as a duration.
func (c *Config) ChordTimeout() time.Duration {
	return time.Duration(c.Chord.TimeoutMS) * time.Millisecond
}

// StatusDuration returns the status message duration.
func (c *Config) StatusDuration() time.Duration {
	return time.Duration(c.Status.DurationMS) * time.Millisecond
}

// Validate checks every setting and returns all failures joined.
func (c *Config) Validate() error {
	var errs []error

	checkRange := func(path string, v, lo, hi int) {
		if v < lo || v > hi {
			errs = append(errs, &ValidationError{
				Path:    path,
				Message: fmt.Sprintf("must be between %d and %d", lo, hi),
				Value:   v,
				Code:    ErrCodeOutOfRange,
			})
		}
	}

	checkRange("chord.timeout_ms", c.Chord.TimeoutMS, 100, 60000)
	checkRange("clipboard.history_size", c.Clipboard.HistorySize, 1, 100)
	checkRange("editor.tab_width", c.Editor.TabWidth, 1, 16)
	checkRange("status.duration_ms", c.Status.DurationMS, 100, 60000)

	switch c.Editor.DeleteLine {
	case DeleteLineToEnd, DeleteLineWhole:
	default:
		errs = append(errs, &ValidationError{
			Path:    "editor.delete_line",
			Message: `must be "to_end" or "whole_line"`,
			Value:   c.Editor.DeleteLine,
			Code:    ErrCodeInvalidEnum,
		})
	}

	for _, hk := range []struct{ path, spec string }{
		{"keys.save", c.Keys.Save},
		{"keys.quit", c.Keys.Quit},
		{"keys.find", c.Keys.Find},
	} {
		if err := checkHostKey(hk.spec); err != nil {
			errs = append(errs, &ValidationError{
				Path:    hk.path,
				Message: err.Error(),
				Value:   hk.spec,
				Code:    ErrCodeInvalidKey,
			})
		}
	}

	if !logging.ValidLevel(c.Log.Level) {
		errs = append(errs, &ValidationError{
			Path:    "log.level",
			Message: "must be debug, info, warn or error",
			Value:   c.Log.Level,
			Code:    ErrCodeInvalidEnum,
		})
	}

	return errors.Join(errs...)
}

// checkHostKey rejects keys the chord engine or typing already owns.
func checkHostKey(spec string) error {
	ev, err := key.Parse(spec)
	switch {
	case err != nil:
		return err
	case ev.IsCtrlOnly() && ev.Letter() != 0, ev.Key == key.KeyEscape:
		return errors.New("control letters and Escape are reserved for chords")
	case ev.IsChar() && ev.Modifiers.Without(key.ModShift) == key.ModNone:
		return errors.New("plain characters are reserved for typing")
	}
	return nil
}
