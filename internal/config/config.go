// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// EnvAPIURL names the environment variable that overrides backend.base_url.
const EnvAPIURL = "PAPERCHAT_API_URL"

// DefaultBaseURL is the backend used when nothing else is configured.
const DefaultBaseURL = "http://localhost:8000"

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete paperchat configuration.
type Config struct {
	Backend BackendConfig `toml:"backend"`
	UI      UIConfig      `toml:"ui"`
	Log     LogConfig     `toml:"log"`
}

// BackendConfig describes how to reach the research assistant backend.
type BackendConfig struct {
	// BaseURL is prefixed to /chat and /health. A trailing slash is trimmed.
	BaseURL string `toml:"base_url"`
	// HealthTimeout bounds the start-up health check. /chat has no timeout.
	HealthTimeout Duration `toml:"health_timeout"`
}

// UIConfig contains presentation settings.
type UIConfig struct {
	// Language selects the fixed UI strings: "en" or "ko".
	Language string `toml:"language"`
	// Markdown renders assistant answers with glamour.
	Markdown bool `toml:"markdown"`
	// ShowHelp shows the key help footer in the TUI.
	ShowHelp bool `toml:"show_help"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of trace, debug, info, warn, error, disabled.
	// Empty means the command's default.
	Level string `toml:"level"`
	// File enables JSON logging to a rotated file.
	File string `toml:"file"`
	// MaxSizeMB is the size at which the log file is rotated.
	MaxSizeMB int `toml:"max_size_mb"`
	// MaxBackups is the number of rotated files kept.
	MaxBackups int `toml:"max_backups"`
}

// Duration wraps time.Duration so it reads and writes as "5s" in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns a configuration with built-in defaults.
func Default() *Config {
	return &Config{
		Backend: BackendConfig{
			BaseURL:       DefaultBaseURL,
			HealthTimeout: Duration{5 * time.Second},
		},
		UI: UIConfig{
			Language: "en",
			Markdown: false,
			ShowHelp: true,
		},
		Log: LogConfig{
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// SetDefaults fills zero values left by a partial config file.
func (c *Config) SetDefaults() {
	if c.Backend.BaseURL == "" {
		c.Backend.BaseURL = DefaultBaseURL
	}
	c.Backend.BaseURL = strings.TrimRight(c.Backend.BaseURL, "/")
	if c.Backend.HealthTimeout.Duration == 0 {
		c.Backend.HealthTimeout = Duration{5 * time.Second}
	}
	if c.UI.Language == "" {
		c.UI.Language = "en"
	}
	c.UI.Language = strings.ToLower(c.UI.Language)
	c.Log.Level = strings.ToLower(c.Log.Level)
}

// =============================================================================
// LOADING
// =============================================================================

// Load returns the defaults with environment overrides applied.
// No file is read; use LoadFromPath for an explicit config file.
func Load() (*Config, error) {
	return Resolve("", nil)
}

// LoadFromPath loads a TOML file on top of the defaults, then applies
// environment overrides. Keys missing from the file keep their defaults.
func LoadFromPath(path string) (*Config, error) {
	return Resolve(path, nil)
}

// Resolve layers the defaults, the file at path (skipped when empty),
// environment overrides and finally override, which callers use for
// command-line flags. Validation runs once, on the merged result, so a
// later layer can replace a bad value from an earlier one.
func Resolve(path string, override func(*Config)) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.decodeFile(path); err != nil {
			return nil, err
		}
	}

	cfg.ApplyEnvOverrides()
	if override != nil {
		override(cfg)
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) decodeFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return fmt.Errorf("failed to load config from %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// ApplyEnvOverrides applies environment variable overrides.
// PAPERCHAT_API_URL overrides backend.base_url.
func (c *Config) ApplyEnvOverrides() {
	if u := os.Getenv(EnvAPIURL); u != "" {
		c.Backend.BaseURL = u
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

var validLevels = map[string]bool{
	"":         true,
	"trace":    true,
	"debug":    true,
	"info":     true,
	"warn":     true,
	"error":    true,
	"disabled": true,
}

var validLanguages = map[string]bool{"en": true, "ko": true}

// Validate checks the configuration and returns every problem found.
func (c *Config) Validate() error {
	var errs ValidateErrors

	u, err := url.Parse(c.Backend.BaseURL)
	switch {
	case err != nil:
		errs = append(errs, ValidationError{Field: "backend.base_url", Message: err.Error()})
	case u.Scheme != "http" && u.Scheme != "https":
		errs = append(errs, ValidationError{
			Field:   "backend.base_url",
			Message: fmt.Sprintf("scheme must be http or https, got '%s'", u.Scheme),
		})
	case u.Host == "":
		errs = append(errs, ValidationError{Field: "backend.base_url", Message: "missing host"})
	}

	if c.Backend.HealthTimeout.Duration < 0 {
		errs = append(errs, ValidationError{Field: "backend.health_timeout", Message: "cannot be negative"})
	}

	if !validLanguages[strings.ToLower(c.UI.Language)] {
		errs = append(errs, ValidationError{
			Field:   "ui.language",
			Message: fmt.Sprintf("unsupported language '%s', must be one of: en, ko", c.UI.Language),
		})
	}

	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: trace, debug, info, warn, error, disabled", c.Log.Level),
		})
	}
	if c.Log.MaxSizeMB < 0 {
		errs = append(errs, ValidationError{Field: "log.max_size_mb", Message: "cannot be negative"})
	}
	if c.Log.MaxBackups < 0 {
		errs = append(errs, ValidationError{Field: "log.max_backups", Message: "cannot be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// DOT NOTATION ACCESS
// =============================================================================

// Get retrieves a configuration value by its TOML path, e.g. "backend.base_url".
func (c *Config) Get(key string) (interface{}, error) {
	parts := strings.Split(key, ".")
	v := reflect.ValueOf(c).Elem()

	for _, part := range parts {
		if v.Kind() != reflect.Struct || v.Type() == reflect.TypeOf(Duration{}) {
			return nil, fmt.Errorf("unknown config key: %s", key)
		}
		field, ok := fieldByTag(v, part)
		if !ok {
			return nil, fmt.Errorf("unknown config key: %s", key)
		}
		v = field
	}

	if v.Kind() == reflect.Struct && v.Type() != reflect.TypeOf(Duration{}) {
		return nil, fmt.Errorf("%s is a section, not a value", key)
	}
	if d, ok := v.Interface().(Duration); ok {
		return d.Duration.String(), nil
	}
	return v.Interface(), nil
}

// GetAllKeys returns every settable key in file order.
func GetAllKeys() []string {
	var keys []string
	t := reflect.TypeOf(Config{})
	for i := 0; i < t.NumField(); i++ {
		section := t.Field(i)
		for j := 0; j < section.Type.NumField(); j++ {
			keys = append(keys, section.Tag.Get("toml")+"."+section.Type.Field(j).Tag.Get("toml"))
		}
	}
	return keys
}

func fieldByTag(v reflect.Value, tag string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).Tag.Get("toml") == tag {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

// =============================================================================
// OUTPUT
// =============================================================================

// TOML encodes the configuration in the file format LoadFromPath reads.
func (c *Config) TOML() (string, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.String(), nil
}

// String returns the TOML form of the config for debugging.
func (c *Config) String() string {
	s, err := c.TOML()
	if err != nil {
		return err.Error()
	}
	return s
}
