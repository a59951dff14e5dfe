package provision

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ricky-lim/ipybible/internal/model"
)

// writeManifest writes a manifest file into a temp directory and returns
// its path.
func writeManifest(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "provision.jsonc")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestDefaultManifest verifies the built-in extension set and its order:
// the widgets manager must come before the widget libraries.
func TestDefaultManifest(t *testing.T) {
	m := DefaultManifest()

	assert.Equal(t, "voila", m.ServerExtension)
	require.Equal(t, []string{
		"@jupyter-widgets/jupyterlab-manager",
		"bqplot",
		"jupyter-vuetify",
		"ipyfetch",
	}, m.LabExtensions)
	assert.NoError(t, m.Validate())
}

// TestLegacyManifest verifies the legacy set is the default minus
// ipyfetch, and that deriving it does not mutate the default.
func TestLegacyManifest(t *testing.T) {
	legacy := LegacyManifest()

	assert.NotContains(t, legacy.LabExtensions, "ipyfetch")
	assert.Len(t, legacy.LabExtensions, 3)
	assert.Contains(t, DefaultManifest().LabExtensions, "ipyfetch")
}

// TestLoadManifest verifies JSONC parsing, comments and trailing commas
// included.
func TestLoadManifest(t *testing.T) {
	path := writeManifest(t, `{
		// server extension enabled before any lab extension
		"serverExtension": "voila",
		"labExtensions": [
			"@jupyter-widgets/jupyterlab-manager",
			"bqplot", // trailing comma below is fine in JSONC
		],
		"kernelPrefix": "/opt/conda",
	}`)

	m, err := LoadManifest(path)
	require.NoError(t, err)

	assert.Equal(t, "voila", m.ServerExtension)
	assert.Equal(t, []string{"@jupyter-widgets/jupyterlab-manager", "bqplot"}, m.LabExtensions)
	assert.Equal(t, "/opt/conda", m.KernelPrefix)
}

// TestLoadManifestErrors verifies unreadable, malformed and invalid
// manifests all surface general CLI errors.
func TestLoadManifestErrors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{
			name: "missing file",
			path: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "absent.jsonc")
			},
		},
		{
			name: "malformed json",
			path: func(t *testing.T) string {
				return writeManifest(t, "{not json at all")
			},
		},
		{
			name: "missing server extension",
			path: func(t *testing.T) string {
				return writeManifest(t, `{"labExtensions": ["bqplot"]}`)
			},
		},
		{
			name: "empty lab extensions",
			path: func(t *testing.T) string {
				return writeManifest(t, `{"serverExtension": "voila", "labExtensions": []}`)
			},
		},
		{
			name: "blank lab extension entry",
			path: func(t *testing.T) string {
				return writeManifest(t, `{"serverExtension": "voila", "labExtensions": [""]}`)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadManifest(tt.path(t))
			require.Error(t, err)

			cliErr, ok := err.(*model.CLIError)
			require.True(t, ok)
			assert.Equal(t, model.ExitGeneralError, cliErr.Code)
		})
	}
}
