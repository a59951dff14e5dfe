// Package cli implements the cobra-based CLI commands for ipybible.
//
// Each subcommand (fetch, show, search, export, books, versions,
// provision) is defined in its own file within this package. This file
// defines the root command that serves as the parent for all subcommands
// and handles global flags.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ricky-lim/ipybible/internal/config"
	"github.com/ricky-lim/ipybible/internal/getbible"
	"github.com/ricky-lim/ipybible/internal/library"
	"github.com/ricky-lim/ipybible/internal/logging"
	"github.com/ricky-lim/ipybible/internal/model"
	"github.com/ricky-lim/ipybible/internal/store"
)

// Global flag variables shared across all subcommands. These are bound to
// cobra persistent flags on the root command, which makes them available
// to every subcommand automatically.
var (
	// jsonOutput controls whether command output is formatted as JSON.
	// When false (default), output uses human-readable text format.
	jsonOutput bool

	// verbosity is the count of -v flags: 0 warn, 1 info, 2 debug, 3+ trace.
	verbosity int

	// configPath overrides the default config file location.
	configPath string
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
// This is the entry point for the entire CLI application.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ipybible",
		Short: "Bible text search and Jupyter environment provisioning",
		Long: `ipybible downloads Bible translations from getbible.net into a local
cache, ranks books and chapters against short search phrases, and
provisions Jupyter Lab environments for interactive exploration.

Downloaded versions are stored in a local SQLite database, so every
command after the first fetch works offline.`,

		// SilenceUsage prevents cobra from printing usage on every error.
		SilenceUsage: true,

		// SilenceErrors prevents cobra from printing errors automatically.
		// We format errors ourselves (text or JSON based on --json flag).
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		// Logging is configured before any subcommand runs, so even flag
		// handling in RunE happens under the requested verbosity.
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(verbosity)
		},
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase logging verbosity (repeatable)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/ipybible/config.yaml)")

	// Register subcommands. Each subcommand is defined in its own file
	// (fetch.go, search.go, etc.) and returns a *cobra.Command.
	rootCmd.AddCommand(NewFetchCommand())
	rootCmd.AddCommand(NewShowCommand())
	rootCmd.AddCommand(NewSearchCommand())
	rootCmd.AddCommand(NewExportCommand())
	rootCmd.AddCommand(NewBooksCommand())
	rootCmd.AddCommand(NewVersionsCommand())
	rootCmd.AddCommand(NewProvisionCommand())

	return rootCmd
}

// Execute runs the root command and handles exit codes.
// This is the main entry point called from main.go.
//
// It inspects errors returned by cobra commands and translates them into
// appropriate OS exit codes. CLIError types carry their own exit codes;
// other errors default to exit code 1.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		if cliErr, ok := err.(*model.CLIError); ok {
			printError(cliErr.Message, cliErr.Err)
			os.Exit(int(cliErr.Code))
		}

		printError(err.Error(), nil)
		os.Exit(int(model.ExitGeneralError))
	}
}

// printError outputs an error message in the appropriate format
// (JSON or text) based on the --json global flag.
func printError(message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		// Errors go to stderr even in JSON mode; stdout is reserved for
		// successful command output.
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		if underlying != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", message, underlying)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %s\n", message)
		}
	}
}

// IsJSONOutput returns whether the --json flag is set.
// Subcommands use this to decide their output format.
func IsJSONOutput() bool {
	return jsonOutput
}

// loadConfig reads the effective configuration for this invocation.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError, "failed to load config", err)
	}
	return cfg, nil
}

// openLibrary wires config, store and API client into a Library. The
// caller must Close the returned store.
func openLibrary(cfg *config.Config) (*library.Library, *store.Store, error) {
	dbPath, err := cfg.DatabasePath()
	if err != nil {
		return nil, nil, model.WrapCLIError(model.ExitCacheError, "failed to resolve data directory", err)
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, err
	}

	client := getbible.NewClient(getbible.Options{
		BaseURL: cfg.APIBaseURL,
		Timeout: time.Duration(cfg.RequestTimeout),
	})

	return library.New(st, client), st, nil
}
