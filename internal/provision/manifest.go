package provision

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/ricky-lim/ipybible/internal/model"
)

// Manifest describes what gets installed into each environment.
//
// Manifests are stored as JSONC (JSON with comments and trailing commas)
// so they can be annotated in-repo the way devcontainer.json files are.
type Manifest struct {
	// ServerExtension is the notebook server extension enabled before
	// any lab extension is installed.
	ServerExtension string `json:"serverExtension"`

	// LabExtensions are installed in order, each with --no-build; a
	// single `jupyter lab build` then follows. Order matters: the
	// widgets manager must precede the widget libraries that depend
	// on it.
	LabExtensions []string `json:"labExtensions"`

	// KernelPrefix overrides the install prefix for kernel
	// registration. Empty means: $CONDA_PREFIX, or /opt/conda when
	// unset.
	KernelPrefix string `json:"kernelPrefix,omitempty"`
}

// DefaultManifest returns the standard extension set: the widgets
// manager plus the plotting and UI extensions the notebooks use, and the
// ipyfetch extension.
func DefaultManifest() *Manifest {
	return &Manifest{
		ServerExtension: "voila",
		LabExtensions: []string{
			"@jupyter-widgets/jupyterlab-manager",
			"bqplot",
			"jupyter-vuetify",
			"ipyfetch",
		},
	}
}

// LegacyManifest returns the variant without ipyfetch, for environments
// still running the old ipykernel stack that ipyfetch does not support.
func LegacyManifest() *Manifest {
	m := DefaultManifest()
	m.LabExtensions = m.LabExtensions[:len(m.LabExtensions)-1]
	return m
}

// LoadManifest reads a JSONC manifest from path.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("manifest not readable: %s", path), err)
	}

	// Strip JSONC comments and trailing commas before handing the bytes
	// to encoding/json.
	clean := jsonc.ToJSON(data)

	var m Manifest
	if err := json.Unmarshal(clean, &m); err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("manifest not valid JSONC: %s", path), err)
	}

	if err := m.Validate(); err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("manifest invalid: %s", path), err)
	}
	return &m, nil
}

// Validate checks the manifest names something to install.
func (m *Manifest) Validate() error {
	if m.ServerExtension == "" {
		return fmt.Errorf("serverExtension must not be empty")
	}
	if len(m.LabExtensions) == 0 {
		return fmt.Errorf("labExtensions must list at least one extension")
	}
	for i, ext := range m.LabExtensions {
		if ext == "" {
			return fmt.Errorf("labExtensions[%d] is empty", i)
		}
	}
	return nil
}
