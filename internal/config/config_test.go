package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if got := cfg.ChordTimeout(); got != 3*time.Second {
		t.Errorf("ChordTimeout() = %v, want 3s", got)
	}
	if got := cfg.StatusDuration(); got != 2500*time.Millisecond {
		t.Errorf("StatusDuration() = %v", got)
	}
	if cfg.Clipboard.HistorySize != 10 {
		t.Errorf("HistorySize = %d, want 10", cfg.Clipboard.HistorySize)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
		code   ValidationErrorCode
	}{
		{"timeout too small", func(c *Config) { c.Chord.TimeoutMS = 10 }, "chord.timeout_ms", ErrCodeOutOfRange},
		{"zero history", func(c *Config) { c.Clipboard.HistorySize = 0 }, "clipboard.history_size", ErrCodeOutOfRange},
		{"tab width", func(c *Config) { c.Editor.TabWidth = 40 }, "editor.tab_width", ErrCodeOutOfRange},
		{"delete line", func(c *Config) { c.Editor.DeleteLine = "sideways" }, "editor.delete_line", ErrCodeInvalidEnum},
		{"log level", func(c *Config) { c.Log.Level = "loud" }, "log.level", ErrCodeInvalidEnum},
		{"status duration", func(c *Config) { c.Status.DurationMS = 0 }, "status.duration_ms", ErrCodeOutOfRange},
		{"unparsable key", func(c *Config) { c.Keys.Save = "Hyper+Q" }, "keys.save", ErrCodeInvalidKey},
		{"chord key", func(c *Config) { c.Keys.Quit = "^K" }, "keys.quit", ErrCodeInvalidKey},
		{"typing key", func(c *Config) { c.Keys.Find = "f" }, "keys.find", ErrCodeInvalidKey},
		{"escape key", func(c *Config) { c.Keys.Find = "Escape" }, "keys.find", ErrCodeInvalidKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrValidationFailed) {
				t.Fatalf("Validate() = %v, want ErrValidationFailed", err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() = %v, want *ValidationError", err)
			}
			if verr.Path != tt.path || verr.Code != tt.code {
				t.Errorf("error path = %s code = %s, want %s %s", verr.Path, verr.Code, tt.path, tt.code)
			}
		})
	}
}

func TestParse(t *testing.T) {
	data := []byte(`
[chord]
timeout_ms = 1500

[clipboard]
use_system = false

[editor]
delete_line = "whole_line"
`)
	cfg, err := Parse("test.toml", data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Chord.TimeoutMS != 1500 {
		t.Errorf("TimeoutMS = %d", cfg.Chord.TimeoutMS)
	}
	if cfg.Clipboard.UseSystem {
		t.Error("UseSystem = true, want false")
	}
	if cfg.Editor.DeleteLine != DeleteLineWhole {
		t.Errorf("DeleteLine = %q", cfg.Editor.DeleteLine)
	}
	// Unset keys keep their defaults.
	if cfg.Clipboard.HistorySize != 10 || cfg.Editor.TabWidth != 4 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", "[chord\ntimeout_ms = 1"},
		{"type", "[chord]\ntimeout_ms = \"soon\""},
		{"unknown key", "[chord]\nbogus = 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("bad.toml", []byte(tt.data))
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("Parse() error = %v, want *ParseError", err)
			}
			if perr.Path != "bad.toml" {
				t.Errorf("Path = %q", perr.Path)
			}
		})
	}
}

func TestParseRejectsInvalidValues(t *testing.T) {
	_, err := Parse("x.toml", []byte("[clipboard]\nhistory_size = 0"))
	if !errors.Is(err, ErrValidationFailed) {
		t.Errorf("Parse() error = %v, want ErrValidationFailed", err)
	}
}

func TestParseYAML(t *testing.T) {
	data := []byte(`
chord:
  timeout_ms: 1200
editor:
  delete_line: whole_line
keys:
  quit: Ctrl+F10
`)
	cfg, err := Parse("config.yaml", data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Chord.TimeoutMS != 1200 {
		t.Errorf("TimeoutMS = %d", cfg.Chord.TimeoutMS)
	}
	if cfg.Editor.DeleteLine != DeleteLineWhole {
		t.Errorf("DeleteLine = %q", cfg.Editor.DeleteLine)
	}
	if cfg.Keys.Quit != "Ctrl+F10" || cfg.Keys.Save != "F2" {
		t.Errorf("Keys = %+v", cfg.Keys)
	}
}

func TestParseYAMLEmpty(t *testing.T) {
	cfg, err := Parse("config.yml", nil)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Chord.TimeoutMS != 3000 {
		t.Errorf("TimeoutMS = %d, want default", cfg.Chord.TimeoutMS)
	}
}

func TestParseYAMLErrors(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		wantLine int
	}{
		{"unknown key", "chord:\n  bogus: 1\n", 2},
		{"type", "chord:\n  timeout_ms: soon\n", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("bad.yaml", []byte(tt.data))
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("Parse() error = %v, want *ParseError", err)
			}
			if perr.Line != tt.wantLine {
				t.Errorf("Line = %d, want %d (%v)", perr.Line, tt.wantLine, perr)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"WLEDIT_CHORD_TIMEOUT_MS":     "500",
		"WLEDIT_CLIPBOARD_USE_SYSTEM": "false",
		"WLEDIT_EDITOR_DELETE_LINE":   "WHOLE_LINE",
		"WLEDIT_LOG_LEVEL":            "Debug",
		"WLEDIT_LOG_FILE":             "/tmp/wledit.log",
		"WLEDIT_KEYS_SAVE":            "Alt+S",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	if err := ApplyEnv(cfg, lookup); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}
	if cfg.Chord.TimeoutMS != 500 || cfg.Clipboard.UseSystem || cfg.Editor.DeleteLine != DeleteLineWhole {
		t.Errorf("env not applied: %+v", cfg)
	}
	if cfg.Log.Level != "debug" || cfg.Log.File != "/tmp/wledit.log" {
		t.Errorf("log = %+v", cfg.Log)
	}
	if cfg.Keys.Save != "Alt+S" {
		t.Errorf("keys.save = %q, want Alt+S", cfg.Keys.Save)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() after env = %v", err)
	}
}

func TestHostKeysAcceptModifiedAndSpecialKeys(t *testing.T) {
	for _, spec := range []string{"F5", "Alt+S", "Ctrl+Left", "Insert"} {
		cfg := Default()
		cfg.Keys.Save = spec
		if err := cfg.Validate(); err != nil {
			t.Errorf("keys.save = %q: Validate() = %v", spec, err)
		}
	}
}

func TestApplyEnvTypeMismatch(t *testing.T) {
	lookup := func(k string) (string, bool) {
		if k == "WLEDIT_EDITOR_TAB_WIDTH" {
			return "wide", true
		}
		return "", false
	}
	err := ApplyEnv(Default(), lookup)
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Code != ErrCodeTypeMismatch || verr.Path != "editor.tab_width" {
		t.Errorf("ApplyEnv() error = %v", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[status]\nduration_ms = 1000\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("WLEDIT_STATUS_DURATION_MS", "2000")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Status.DurationMS != 2000 {
		t.Errorf("DurationMS = %d, environment should override the file", cfg.Status.DurationMS)
	}
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.toml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Chord.TimeoutMS != 3000 {
		t.Errorf("TimeoutMS = %d, want default", cfg.Chord.TimeoutMS)
	}

	if _, err := LoadFile(path); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("LoadFile() error = %v, want ErrFileNotFound", err)
	}
}

func TestParseErrorMessage(t *testing.T) {
	tests := []struct {
		err  *ParseError
		want string
	}{
		{&ParseError{Path: "a.toml", Line: 2, Column: 5, Message: "bad"}, "parse error in a.toml at line 2, column 5: bad"},
		{&ParseError{Path: "a.toml", Line: 2, Message: "bad"}, "parse error in a.toml at line 2: bad"},
		{&ParseError{Path: "a.toml", Message: "bad"}, "parse error in a.toml: bad"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}
