// Package cli — export.go implements the "ipybible export" command.
//
// The export command writes a cached version to disk as one JSON file per
// book (genesis.json, exodus.json, ...), each holding the chapters and
// verses of that book. The files feed the notebooks, which read them
// instead of talking to the API.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ricky-lim/ipybible/internal/model"
)

// exportFlags holds the flag values for the export command.
type exportFlags struct {
	// out is the target directory, created if absent.
	out string
}

// NewExportCommand creates the "export" cobra command.
func NewExportCommand() *cobra.Command {
	flags := &exportFlags{}

	cmd := &cobra.Command{
		Use:   "export <version>",
		Short: "Export a cached version as one JSON file per book",
		Long: `Write every book of a version to <out>/<book>.json. The version is
downloaded first if it is not cached.

Examples:
  ipybible export kjv --out ./data/kjv
  ipybible export statenvertaling --out /tmp/sv`,

		Args: cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.Context(), args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.out, "out", "", "Output directory (required)")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

// bookExport is the on-disk JSON structure for one book.
type bookExport struct {
	Version  string                       `json:"version"`
	Language string                       `json:"language"`
	Book     string                       `json:"book"`
	Chapters map[string]map[string]string `json:"chapters"`
}

// runExport loads the corpus and writes each book to its own file.
func runExport(ctx context.Context, version string, flags *exportFlags) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	lib, st, err := openLibrary(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	bible, err := lib.Open(ctx, version)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(flags.out, 0o755); err != nil {
		return model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to create output directory %s", flags.out), err)
	}

	var written []string
	for _, book := range bible.Books() {
		export := bookExport{
			Version:  bible.Version,
			Language: bible.Language.String(),
			Book:     book.Name,
			Chapters: make(map[string]map[string]string, book.NumChapters()),
		}
		for _, ch := range book.Chapters() {
			verses := make(map[string]string, ch.NumVerses())
			for _, v := range ch.Verses() {
				verses[strconv.Itoa(v.Number)] = v.Text
			}
			export.Chapters[strconv.Itoa(ch.Number)] = verses
		}

		path := filepath.Join(flags.out, book.Name+".json")
		data, err := json.MarshalIndent(export, "", "  ")
		if err != nil {
			return model.WrapCLIError(model.ExitGeneralError,
				fmt.Sprintf("failed to encode %s", book.Name), err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return model.WrapCLIError(model.ExitGeneralError,
				fmt.Sprintf("failed to write %s", path), err)
		}
		written = append(written, path)
	}

	printExportResult(version, flags.out, written)
	return nil
}

// printExportResult reports the exported file count in text or JSON.
func printExportResult(version, out string, written []string) {
	if IsJSONOutput() {
		result := struct {
			Version string   `json:"version"`
			Dir     string   `json:"dir"`
			Files   []string `json:"files"`
		}{Version: version, Dir: out, Files: written}
		if result.Files == nil {
			result.Files = []string{}
		}
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Printf("Exported %d books of %s to %s\n", len(written), version, out)
}
