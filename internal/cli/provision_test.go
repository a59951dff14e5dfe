package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestResolveManifestDefault verifies no flags select the built-in
// extension set.
func TestResolveManifestDefault(t *testing.T) {
	m, err := resolveManifest(&provisionFlags{})
	require.NoError(t, err)
	assert.Contains(t, m.LabExtensions, "ipyfetch")
}

// TestResolveManifestLegacy verifies --legacy drops ipyfetch.
func TestResolveManifestLegacy(t *testing.T) {
	m, err := resolveManifest(&provisionFlags{legacy: true})
	require.NoError(t, err)
	assert.NotContains(t, m.LabExtensions, "ipyfetch")
}

// TestResolveManifestFromFile verifies --manifest loads a JSONC file.
func TestResolveManifestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "provision.jsonc")
	content := `{
		// custom setup
		"serverExtension": "voila",
		"labExtensions": ["bqplot"],
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	m, err := resolveManifest(&provisionFlags{manifest: path})
	require.NoError(t, err)
	assert.Equal(t, "voila", m.ServerExtension)
	assert.Equal(t, []string{"bqplot"}, m.LabExtensions)
}

// TestResolveManifestMissingFile verifies a bad --manifest path errors.
func TestResolveManifestMissingFile(t *testing.T) {
	_, err := resolveManifest(&provisionFlags{manifest: filepath.Join(t.TempDir(), "absent.jsonc")})
	assert.Error(t, err)
}
