// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/keyspace/internal/strength"
	"github.com/jeranaias/keyspace/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete keyspace configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	// Input controls how the password is read
	Input InputConfig `toml:"input" json:"input"`

	// Output controls how the result is printed
	Output OutputConfig `toml:"output" json:"output"`

	// Rating holds the bit thresholds for strength labels
	Rating strength.Thresholds `toml:"rating" json:"rating"`

	// Logging controls diagnostics on stderr
	Logging LoggingConfig `toml:"logging" json:"logging"`
}

// InputConfig contains password acquisition settings.
type InputConfig struct {
	// HideEcho suppresses local echo while typing. The default shows input.
	HideEcho bool `toml:"hide_echo" json:"hide_echo"`
	// MaxAttempts bounds re-prompts after invalid entries (0 = unbounded)
	MaxAttempts int `toml:"max_attempts" json:"max_attempts"`
	// MaxLineBytes is the longest accepted password line
	MaxLineBytes int `toml:"max_line_bytes" json:"max_line_bytes"`
	// DiscardLimit is how many pending bytes are dropped after an invalid entry
	DiscardLimit int `toml:"discard_limit" json:"discard_limit"`
}

// OutputConfig contains presentation settings.
type OutputConfig struct {
	// Format is "text" or "json"
	Format string `toml:"format" json:"format"`
	// Verbose appends the category breakdown to the report
	Verbose bool `toml:"verbose" json:"verbose"`
}

// LoggingConfig contains diagnostic logging settings.
type LoggingConfig struct {
	Debug bool   `toml:"debug" json:"debug"`
	File  string `toml:"file" json:"file"`
}

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",
		Input: InputConfig{
			HideEcho:     false,
			MaxAttempts:  5,
			MaxLineBytes: 4096,
			DiscardLimit: 80,
		},
		Output: OutputConfig{
			Format:  FormatText,
			Verbose: false,
		},
		Rating: strength.DefaultThresholds(),
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the keyspace configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".keyspace"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// ensureSecurePermissions tightens a config file to 0600.
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if mode := info.Mode().Perm(); mode != 0600 {
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
	}
	return nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the default config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	for _, pathFn := range []func() (string, error){ConfigPathTOML, ConfigPathJSON} {
		path, err := pathFn()
		if err != nil {
			continue
		}
		if _, statErr := os.Stat(path); statErr != nil {
			continue
		}
		return LoadFromPath(path)
	}

	cfg := Default()
	return finish(cfg)
}

// LoadFromPath loads configuration from a specific file path with full
// validation. Keys missing from the file keep their defaults.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	return finish(cfg)
}

func finish(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file into cfg.
func LoadTOML(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
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

// LoadJSON decodes a JSON file into cfg.
func LoadJSON(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// SetDefaults fills values that must never be empty or non-positive.
// MaxAttempts is left alone because 0 is meaningful.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Version == "" {
		c.Version = defaults.Version
	}
	if c.Input.MaxLineBytes <= 0 {
		c.Input.MaxLineBytes = defaults.Input.MaxLineBytes
	}
	if c.Output.Format == "" {
		c.Output.Format = defaults.Output.Format
	}
	if c.Rating == (strength.Thresholds{}) {
		c.Rating = defaults.Rating
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies KEYSPACE_* environment variables.
// Malformed numeric values are ignored.
func (c *Config) ApplyEnvOverrides() {
	// KEYSPACE_HIDE_INPUT
	if v := os.Getenv("KEYSPACE_HIDE_INPUT"); v != "" {
		c.Input.HideEcho = isTrue(v)
	}

	// KEYSPACE_MAX_ATTEMPTS
	if v := os.Getenv("KEYSPACE_MAX_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Input.MaxAttempts = n
		}
	}

	// KEYSPACE_FORMAT
	if v := os.Getenv("KEYSPACE_FORMAT"); v != "" {
		c.Output.Format = strings.ToLower(v)
	}

	// KEYSPACE_DEBUG
	if v := os.Getenv("KEYSPACE_DEBUG"); v != "" {
		c.Logging.Debug = isTrue(v)
	}

	// KEYSPACE_LOG_FILE
	if v := os.Getenv("KEYSPACE_LOG_FILE"); v != "" {
		c.Logging.File = v
	}
}

func isTrue(v string) bool {
	return v == "1" || strings.ToLower(v) == "true" || strings.ToLower(v) == "yes"
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

	if c.Input.MaxAttempts < 0 {
		errs = append(errs, ValidationError{
			Field:   "input.max_attempts",
			Message: fmt.Sprintf("cannot be negative, got %d (use 0 for unbounded)", c.Input.MaxAttempts),
		})
	}
	if c.Input.MaxLineBytes <= 0 {
		errs = append(errs, ValidationError{
			Field:   "input.max_line_bytes",
			Message: fmt.Sprintf("must be positive, got %d", c.Input.MaxLineBytes),
		})
	}
	if c.Input.DiscardLimit < 0 {
		errs = append(errs, ValidationError{
			Field:   "input.discard_limit",
			Message: fmt.Sprintf("cannot be negative, got %d", c.Input.DiscardLimit),
		})
	}

	switch c.Output.Format {
	case FormatText, FormatJSON:
	default:
		errs = append(errs, ValidationError{
			Field:   "output.format",
			Message: fmt.Sprintf("invalid format '%s', must be one of: text, json", c.Output.Format),
		})
	}

	if err := c.Rating.Validate(); err != nil {
		errs = append(errs, ValidationError{
			Field:   "rating",
			Message: err.Error(),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save writes cfg to the default TOML path.
func Save(cfg *Config) (string, error) {
	path, err := ConfigPathTOML()
	if err != nil {
		return "", err
	}
	return path, SaveTOML(cfg, path)
}

// SaveTOML writes cfg as TOML with 0600 permissions. The write is atomic.
func SaveTOML(cfg *Config, path string) error {
	data, err := cfg.TOML()
	if err != nil {
		return err
	}
	if err := util.AtomicWriteFileWithDir(path, data, 0600, 0700); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// TOML renders cfg with a short header comment.
func (c *Config) TOML() ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "# keyspace configuration file")
	fmt.Fprintln(&buf, "#")
	fmt.Fprintln(&buf, "# Environment overrides: KEYSPACE_HIDE_INPUT, KEYSPACE_MAX_ATTEMPTS,")
	fmt.Fprintln(&buf, "# KEYSPACE_FORMAT, KEYSPACE_DEBUG, KEYSPACE_LOG_FILE")
	fmt.Fprintln(&buf, "")

	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.Bytes(), nil
}
