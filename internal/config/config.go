// Package config loads the optional user configuration for the CLI.
//
// Configuration lives at $XDG_CONFIG_HOME/ipybible/config.yaml. A missing
// file is not an error: every field has a default, and the two settings
// that matter in automation (API endpoint and data directory) can also be
// set through IPYBIBLE_BASE_URL and IPYBIBLE_DATA_DIR environment
// variables, which take precedence over the file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML values like "45s" parse with
// time.ParseDuration instead of failing as integers.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Config holds the user-tunable settings.
type Config struct {
	// APIBaseURL is the getbible.net JSON endpoint.
	APIBaseURL string `yaml:"apiBaseUrl"`

	// RequestTimeout bounds a single API request.
	RequestTimeout Duration `yaml:"requestTimeout"`

	// DataDir overrides the XDG data directory for the SQLite store.
	DataDir string `yaml:"dataDir"`

	// SearchParallelism caps concurrent book scoring in phrase search.
	// Zero means one worker per CPU.
	SearchParallelism int `yaml:"searchParallelism"`

	// CondaPrefix overrides the kernel install prefix for provisioning.
	CondaPrefix string `yaml:"condaPrefix"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		APIBaseURL:     "https://getbible.net/json",
		RequestTimeout: Duration(30 * time.Second),
	}
}

// DefaultPath returns the standard config file location.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "ipybible", "config.yaml")
}

// Load reads the config file at path (empty means DefaultPath), merges it
// over the defaults, and applies environment overrides. A missing file
// yields the defaults; a malformed file is an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if path == "" {
		path = DefaultPath()
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// No config file is the common case.
	case err != nil:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// applyEnvOverrides lets environment variables win over the file, which
// is what scripted callers (CI, Heroku) want.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("IPYBIBLE_BASE_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("IPYBIBLE_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
}

// DatabasePath resolves the SQLite database location: the configured
// data directory if set, otherwise the XDG data directory.
func (c *Config) DatabasePath() (string, error) {
	if c.DataDir != "" {
		return filepath.Join(c.DataDir, "ipybible.db"), nil
	}
	return xdg.DataFile(filepath.Join("ipybible", "ipybible.db"))
}
