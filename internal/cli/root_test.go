package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewRootCommandRegistersSubcommands verifies every subcommand is
// wired into the root.
func TestNewRootCommandRegistersSubcommands(t *testing.T) {
	root := NewRootCommand()

	want := []string{"fetch", "show", "search", "export", "books", "versions", "provision"}
	got := make(map[string]bool)
	for _, cmd := range root.Commands() {
		got[cmd.Name()] = true
	}

	for _, name := range want {
		assert.True(t, got[name], "subcommand %q not registered", name)
	}
}

// TestRootCommandGlobalFlags verifies the persistent flags exist with
// their defaults.
func TestRootCommandGlobalFlags(t *testing.T) {
	root := NewRootCommand()

	jsonFlag := root.PersistentFlags().Lookup("json")
	require.NotNil(t, jsonFlag)
	assert.Equal(t, "false", jsonFlag.DefValue)

	verboseFlag := root.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)

	configFlag := root.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "", configFlag.DefValue)
}

// TestYesNo verifies the table cell rendering helper.
func TestYesNo(t *testing.T) {
	assert.Equal(t, "yes", yesNo(true))
	assert.Equal(t, "-", yesNo(false))
}
