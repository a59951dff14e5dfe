package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfig writes a config file into a temp directory and returns its
// path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// clearEnvOverrides unsets the override variables so tests see only the
// file under test.
func clearEnvOverrides(t *testing.T) {
	t.Helper()
	t.Setenv("IPYBIBLE_BASE_URL", "")
	t.Setenv("IPYBIBLE_DATA_DIR", "")
}

// TestLoadMissingFileYieldsDefaults verifies an absent config file is not
// an error when the path was not explicitly given.
func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	clearEnvOverrides(t)

	// Point XDG at an empty directory so no real user config interferes.
	// The xdg package caches paths at init, so reload after changing the
	// environment. The cleanup is registered before t.Setenv so it runs
	// after the environment is restored.
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdg.Reload()

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://getbible.net/json", cfg.APIBaseURL)
	assert.Equal(t, Duration(30*time.Second), cfg.RequestTimeout)
	assert.Zero(t, cfg.SearchParallelism)
}

// TestLoadExplicitMissingFileErrors verifies an explicitly named but
// absent file is an error rather than a silent fallback.
func TestLoadExplicitMissingFileErrors(t *testing.T) {
	clearEnvOverrides(t)

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

// TestLoadParsesYAML verifies file values override the defaults.
func TestLoadParsesYAML(t *testing.T) {
	clearEnvOverrides(t)

	path := writeConfig(t, `
apiBaseUrl: http://localhost:8080/json
requestTimeout: 5s
dataDir: /var/lib/ipybible
searchParallelism: 4
condaPrefix: /opt/miniconda
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/json", cfg.APIBaseURL)
	assert.Equal(t, Duration(5*time.Second), cfg.RequestTimeout)
	assert.Equal(t, "/var/lib/ipybible", cfg.DataDir)
	assert.Equal(t, 4, cfg.SearchParallelism)
	assert.Equal(t, "/opt/miniconda", cfg.CondaPrefix)
}

// TestLoadPartialFileKeepsDefaults verifies unset fields keep their
// default values.
func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	clearEnvOverrides(t)

	path := writeConfig(t, "searchParallelism: 8\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.SearchParallelism)
	assert.Equal(t, "https://getbible.net/json", cfg.APIBaseURL)
	assert.Equal(t, Duration(30*time.Second), cfg.RequestTimeout)
}

// TestLoadMalformedFileErrors verifies a broken file is reported instead
// of ignored.
func TestLoadMalformedFileErrors(t *testing.T) {
	clearEnvOverrides(t)

	_, err := Load(writeConfig(t, "apiBaseUrl: [not: a: scalar"))
	assert.Error(t, err)
}

// TestLoadBadDurationErrors verifies durations must parse with
// time.ParseDuration.
func TestLoadBadDurationErrors(t *testing.T) {
	clearEnvOverrides(t)

	_, err := Load(writeConfig(t, "requestTimeout: thirty\n"))
	assert.Error(t, err)
}

// TestEnvOverridesWinOverFile verifies IPYBIBLE_* variables take
// precedence over file values.
func TestEnvOverridesWinOverFile(t *testing.T) {
	path := writeConfig(t, `
apiBaseUrl: http://from-file/json
dataDir: /from/file
`)

	t.Setenv("IPYBIBLE_BASE_URL", "http://from-env/json")
	t.Setenv("IPYBIBLE_DATA_DIR", "/from/env")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://from-env/json", cfg.APIBaseURL)
	assert.Equal(t, "/from/env", cfg.DataDir)
}

// TestDatabasePathWithDataDir verifies an explicit data directory places
// the database inside it.
func TestDatabasePathWithDataDir(t *testing.T) {
	cfg := Default()
	cfg.DataDir = "/custom/dir"

	path, err := cfg.DatabasePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/custom/dir", "ipybible.db"), path)
}
