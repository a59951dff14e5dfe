// Package cli — fetch.go implements the "ipybible fetch" command.
//
// The fetch command downloads a Bible version from getbible.net into the
// local SQLite cache, book by book, and pre-warms the clean-text memo so
// the first search does not pay the normalization cost. Fetching an
// already-cached version is a no-op unless --force is given.
package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ricky-lim/ipybible/internal/model"
)

// fetchFlags holds the flag values for the fetch command.
type fetchFlags struct {
	// force re-downloads the version even when it is already cached.
	force bool
}

// NewFetchCommand creates the "fetch" cobra command.
func NewFetchCommand() *cobra.Command {
	flags := &fetchFlags{}

	cmd := &cobra.Command{
		Use:   "fetch <version>",
		Short: "Download a Bible version into the local cache",
		Long: `Download every book of a Bible version from getbible.net and store
it locally. Subsequent show, search and export commands for the version
work offline.

Examples:
  ipybible fetch kjv
  ipybible fetch statenvertaling --force`,

		Args: cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd.Context(), args[0], flags)
		},
	}

	cmd.Flags().BoolVar(&flags.force, "force", false, "Re-download even if the version is already cached")

	return cmd
}

// runFetch downloads the version unless it is already cached.
func runFetch(ctx context.Context, version string, flags *fetchFlags) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	lib, st, err := openLibrary(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	cached, err := st.HasVersion(version)
	if err != nil {
		return model.WrapCLIError(model.ExitCacheError, "failed to check local cache", err)
	}

	if cached && !flags.force {
		printFetchResult(version, false)
		return nil
	}

	if cached {
		if err := st.DeleteVersion(version); err != nil {
			return model.WrapCLIError(model.ExitCacheError,
				fmt.Sprintf("failed to evict cached version %s", version), err)
		}
	}

	if err := lib.Download(ctx, version); err != nil {
		return err
	}

	printFetchResult(version, true)
	return nil
}

// printFetchResult reports whether a download happened, in text or JSON.
func printFetchResult(version string, downloaded bool) {
	if IsJSONOutput() {
		result := struct {
			Version    string `json:"version"`
			Downloaded bool   `json:"downloaded"`
		}{Version: version, Downloaded: downloaded}

		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return
	}

	if downloaded {
		fmt.Printf("Fetched %s into the local cache.\n", version)
	} else {
		fmt.Printf("%s is already cached; use --force to re-download.\n", version)
	}
}
