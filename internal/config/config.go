// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for n1k4.
//
// Configuration file location:
//   - ~/.n1k4/config.toml
//   - Built-in defaults
//
// A .env file in the working directory and N1K4_* environment variables
// are applied on top of the file.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/jeranaias/n1k4/internal/gemini"
	"github.com/jeranaias/n1k4/internal/session"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete n1k4 configuration.
type Config struct {
	// Gemini chat client settings
	Gemini GeminiConfig `toml:"gemini"`

	// Login sequence settings
	Login LoginConfig `toml:"login"`

	// UI settings
	UI UIConfig `toml:"ui"`

	// Log file settings
	Log LogConfig `toml:"log"`
}

// GeminiConfig contains the chat client configuration.
type GeminiConfig struct {
	// APIKey is the Gemini API key. Normally supplied through the
	// environment rather than the file.
	APIKey string `toml:"api_key" env:"GEMINI_API_KEY"`
	// Model is the Gemini model name
	Model string `toml:"model" env:"N1K4_MODEL"`
	// Temperature is the sampling temperature (0.0-2.0)
	Temperature float32 `toml:"temperature" env:"N1K4_TEMPERATURE"`
	// Persona overrides the built-in N1K4 system instruction when set
	Persona string `toml:"persona"`
	// FallbackDelay is the simulated latency of canned replies
	FallbackDelay time.Duration `toml:"fallback_delay" env:"N1K4_FALLBACK_DELAY"`
	// Fallbacks overrides the canned replies when non-empty
	Fallbacks []string `toml:"fallbacks"`
}

// LoginConfig contains the connection sequence configuration.
type LoginConfig struct {
	// StageDelay is the time spent in each connection stage
	StageDelay time.Duration `toml:"stage_delay" env:"N1K4_STAGE_DELAY"`
	// MinUsernameLength is the shortest accepted alias, in characters
	MinUsernameLength int `toml:"min_username_length"`
	// DefaultAlias is used by one-shot commands when no alias is given
	DefaultAlias string `toml:"default_alias" env:"N1K4_ALIAS"`
}

// UIConfig contains terminal UI configuration.
type UIConfig struct {
	// AltScreen runs the TUI in the terminal's alternate screen
	AltScreen bool `toml:"alt_screen" env:"N1K4_ALT_SCREEN"`
	// Markdown renders model replies through glamour
	Markdown bool `toml:"markdown" env:"N1K4_MARKDOWN"`
	// MarkdownStyle is the glamour style: "dark", "light", "notty", "ascii"
	MarkdownStyle string `toml:"markdown_style"`
}

// LogConfig contains log file configuration.
type LogConfig struct {
	// Level is one of: debug, info, warn, error
	Level string `toml:"level" env:"N1K4_LOG_LEVEL"`
	// File is the log file path (empty = ~/.n1k4/n1k4.log)
	File string `toml:"file" env:"N1K4_LOG_FILE"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Gemini: GeminiConfig{
			Model:         gemini.DefaultModel,
			Temperature:   gemini.DefaultTemperature,
			FallbackDelay: gemini.DefaultFallbackDelay,
		},
		Login: LoginConfig{
			StageDelay:        session.DefaultStageDelay,
			MinUsernameLength: session.MinUsernameLength,
			DefaultAlias:      "GHOST",
		},
		UI: UIConfig{
			AltScreen:     true,
			Markdown:      true,
			MarkdownStyle: "dark",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the n1k4 configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".n1k4"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// DefaultLogPath returns the default log file path.
func DefaultLogPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "n1k4.log"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0700)
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from ~/.n1k4/config.toml, falling back to
// defaults when the file does not exist. The .env file and environment
// overrides are applied last.
func Load() (*Config, error) {
	path, err := ConfigPathTOML()
	if err != nil {
		cfg := Default()
		return finish(cfg)
	}
	return LoadFromPath(path)
}

// LoadFromPath loads configuration from a specific TOML file. A missing
// file is not an error.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if err := LoadTOML(cfg, path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}
	return finish(cfg)
}

// LoadTOML decodes a TOML file over cfg. Keys absent from the file keep
// their current values.
func LoadTOML(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return DecodeTOML(cfg, f)
}

// DecodeTOML decodes TOML from r over cfg.
func DecodeTOML(cfg *Config, r io.Reader) error {
	md, err := toml.NewDecoder(r).Decode(cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

func finish(cfg *Config) (*Config, error) {
	LoadDotEnv()
	if err := cfg.ApplyEnvOverrides(); err != nil {
		return nil, err
	}
	fillDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadDotEnv loads ./.env into the process environment when present.
// Variables already set are not overridden.
func LoadDotEnv() {
	if _, err := os.Stat(".env"); err != nil {
		return
	}
	if err := godotenv.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load .env: %v\n", err)
	}
}

// fillDefaults fills in any missing values with defaults.
func fillDefaults(cfg *Config) {
	defaults := Default()

	if cfg.Gemini.Model == "" {
		cfg.Gemini.Model = defaults.Gemini.Model
	}
	if cfg.Login.StageDelay == 0 {
		cfg.Login.StageDelay = defaults.Login.StageDelay
	}
	if cfg.Login.MinUsernameLength == 0 {
		cfg.Login.MinUsernameLength = defaults.Login.MinUsernameLength
	}
	if strings.TrimSpace(cfg.Login.DefaultAlias) == "" {
		cfg.Login.DefaultAlias = defaults.Login.DefaultAlias
	}
	if cfg.UI.MarkdownStyle == "" {
		cfg.UI.MarkdownStyle = defaults.UI.MarkdownStyle
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - GEMINI_API_KEY: gemini.api_key (API_KEY is accepted as a fallback)
//   - N1K4_MODEL: gemini.model
//   - N1K4_TEMPERATURE: gemini.temperature
//   - N1K4_FALLBACK_DELAY: gemini.fallback_delay (e.g. "1s")
//   - N1K4_STAGE_DELAY: login.stage_delay (e.g. "800ms")
//   - N1K4_ALIAS: login.default_alias
//   - N1K4_ALT_SCREEN, N1K4_MARKDOWN: ui toggles
//   - N1K4_LOG_LEVEL, N1K4_LOG_FILE: log settings
func (c *Config) ApplyEnvOverrides() error {
	return c.applyEnv(env.ToMap(os.Environ()))
}

func (c *Config) applyEnv(environ map[string]string) error {
	if err := env.ParseWithOptions(c, env.Options{Environment: environ}); err != nil {
		return fmt.Errorf("invalid environment override: %w", err)
	}
	if c.Gemini.APIKey == "" {
		c.Gemini.APIKey = strings.TrimSpace(environ["API_KEY"])
	}
	return nil
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
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if strings.TrimSpace(c.Gemini.Model) == "" {
		errs = append(errs, ValidationError{
			Field:   "gemini.model",
			Message: "must not be empty",
		})
	}
	if c.Gemini.Temperature < 0 || c.Gemini.Temperature > 2 {
		errs = append(errs, ValidationError{
			Field:   "gemini.temperature",
			Message: fmt.Sprintf("must be between 0.0 and 2.0, got %g", c.Gemini.Temperature),
		})
	}
	if c.Gemini.FallbackDelay < 0 {
		errs = append(errs, ValidationError{
			Field:   "gemini.fallback_delay",
			Message: "must be non-negative",
		})
	}
	for i, line := range c.Gemini.Fallbacks {
		if strings.TrimSpace(line) == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("gemini.fallbacks[%d]", i),
				Message: "must not be blank",
			})
		}
	}

	if c.Login.StageDelay < 0 {
		errs = append(errs, ValidationError{
			Field:   "login.stage_delay",
			Message: "must be non-negative",
		})
	}
	if c.Login.MinUsernameLength < 1 {
		errs = append(errs, ValidationError{
			Field:   "login.min_username_length",
			Message: fmt.Sprintf("must be at least 1, got %d", c.Login.MinUsernameLength),
		})
	}
	if !session.ValidUsername(c.Login.DefaultAlias, c.Login.MinUsernameLength) {
		errs = append(errs, ValidationError{
			Field:   "login.default_alias",
			Message: fmt.Sprintf("must be at least %d characters", c.Login.MinUsernameLength),
		})
	}

	validStyles := map[string]bool{"dark": true, "light": true, "notty": true, "ascii": true}
	if !validStyles[strings.ToLower(c.UI.MarkdownStyle)] {
		errs = append(errs, ValidationError{
			Field:   "ui.markdown_style",
			Message: fmt.Sprintf("invalid style '%s', must be one of: dark, light, notty, ascii", c.UI.MarkdownStyle),
		})
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Log.Level),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// COMPONENT CONFIGS
// =============================================================================

// SessionConfig returns the login controller settings.
func (c *Config) SessionConfig() session.Config {
	return session.Config{
		StageDelay:        c.Login.StageDelay,
		MinUsernameLength: c.Login.MinUsernameLength,
	}
}

// GeminiConfig returns the chat client settings.
func (c *Config) GeminiConfig() gemini.Config {
	cfg := gemini.DefaultConfig()
	cfg.APIKey = c.Gemini.APIKey
	cfg.Model = c.Gemini.Model
	cfg.Temperature = c.Gemini.Temperature
	cfg.FallbackDelay = c.Gemini.FallbackDelay
	if c.Gemini.Persona != "" {
		cfg.Persona = c.Gemini.Persona
	}
	if len(c.Gemini.Fallbacks) > 0 {
		cfg.Fallbacks = append([]string(nil), c.Gemini.Fallbacks...)
	}
	return cfg
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Gemini.Fallbacks != nil {
		clone.Gemini.Fallbacks = append([]string(nil), c.Gemini.Fallbacks...)
	}
	return &clone
}

// Redacted returns a copy with the API key masked, suitable for display.
func (c *Config) Redacted() *Config {
	safe := c.Clone()
	if safe.Gemini.APIKey != "" {
		safe.Gemini.APIKey = "[REDACTED]"
	}
	return safe
}

// WriteTOML encodes the redacted configuration to w.
func (c *Config) WriteTOML(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c.Redacted()); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// String returns the redacted configuration as TOML.
func (c *Config) String() string {
	var b strings.Builder
	if err := c.WriteTOML(&b); err != nil {
		return err.Error()
	}
	return b.String()
}
