package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "WLEDIT_"

// DefaultPath returns the default config file location, or "" when the
// user config directory is unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "wledit", "config.toml")
}

// Load builds a configuration from defaults, the file at path and the
// environment, then validates it. Files ending in .yaml or .yml are read as
// YAML, anything else as TOML. A missing file is not an error; an
// empty path skips the file layer.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		default:
			if err := decode(path, data, cfg); err != nil {
				return nil, err
			}
		}
	}

	if err := ApplyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile is like Load but fails with ErrFileNotFound when path does not
// exist.
func LoadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	return Load(path)
}

// Parse decodes data over the defaults without consulting the
// environment. source names the data in errors and its extension selects
// the format the same way Load does.
func Parse(source string, data []byte) (*Config, error) {
	cfg := Default()
	if err := decode(source, data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// isYAML reports whether name should be decoded as YAML.
func isYAML(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// decode unmarshals data into cfg, rejecting unknown keys.
func decode(source string, data []byte, cfg *Config) error {
	if isYAML(source) {
		return decodeYAML(source, data, cfg)
	}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		var serr *toml.StrictMissingError
		if errors.As(err, &serr) {
			perr.Message = "unknown setting: " + strings.TrimSpace(serr.String())
		}
		return perr
	}
	return nil
}

func decodeYAML(source string, data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	err := dec.Decode(cfg)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	perr := &ParseError{Path: source, Message: strings.TrimPrefix(err.Error(), "yaml: "), Err: err}
	var terr *yaml.TypeError
	if errors.As(err, &terr) && len(terr.Errors) > 0 {
		perr.Message = strings.Join(terr.Errors, "; ")
	}
	var line int
	if _, scanErr := fmt.Sscanf(perr.Message, "line %d:", &line); scanErr == nil {
		perr.Line = line
	}
	return perr
}

// envSetting applies one environment value.
type envSetting struct {
	path string
	set  func(c *Config, v string) error
}

var envSettings = map[string]envSetting{
	EnvPrefix + "CHORD_TIMEOUT_MS": {"chord.timeout_ms", func(c *Config, v string) error {
		return setInt(&c.Chord.TimeoutMS, v)
	}},
	EnvPrefix + "CLIPBOARD_HISTORY_SIZE": {"clipboard.history_size", func(c *Config, v string) error {
		return setInt(&c.Clipboard.HistorySize, v)
	}},
	EnvPrefix + "CLIPBOARD_USE_SYSTEM": {"clipboard.use_system", func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		c.Clipboard.UseSystem = b
		return nil
	}},
	EnvPrefix + "EDITOR_DELETE_LINE": {"editor.delete_line", func(c *Config, v string) error {
		c.Editor.DeleteLine = strings.ToLower(strings.TrimSpace(v))
		return nil
	}},
	EnvPrefix + "EDITOR_TAB_WIDTH": {"editor.tab_width", func(c *Config, v string) error {
		return setInt(&c.Editor.TabWidth, v)
	}},
	EnvPrefix + "STATUS_DURATION_MS": {"status.duration_ms", func(c *Config, v string) error {
		return setInt(&c.Status.DurationMS, v)
	}},
	EnvPrefix + "KEYS_SAVE": {"keys.save", func(c *Config, v string) error {
		c.Keys.Save = v
		return nil
	}},
	EnvPrefix + "KEYS_QUIT": {"keys.quit", func(c *Config, v string) error {
		c.Keys.Quit = v
		return nil
	}},
	EnvPrefix + "KEYS_FIND": {"keys.find", func(c *Config, v string) error {
		c.Keys.Find = v
		return nil
	}},
	EnvPrefix + "LOG_LEVEL": {"log.level", func(c *Config, v string) error {
		c.Log.Level = strings.ToLower(strings.TrimSpace(v))
		return nil
	}},
	EnvPrefix + "LOG_FILE": {"log.file", func(c *Config, v string) error {
		c.Log.File = v
		return nil
	}},
}

// ApplyEnv overrides cfg from environment variables found by lookup.
// Values that do not parse are reported as type mismatches.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	var errs []error
	for name, s := range envSettings {
		v, ok := lookup(name)
		if !ok {
			continue
		}
		if err := s.set(cfg, v); err != nil {
			errs = append(errs, &ValidationError{
				Path:    s.path,
				Message: fmt.Sprintf("invalid value in %s", name),
				Value:   v,
				Code:    ErrCodeTypeMismatch,
			})
		}
	}
	return errors.Join(errs...)
}

func setInt(dst *int, v string) error {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return err
	}
	*dst = n
	return nil
}
