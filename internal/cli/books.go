// Package cli — books.go implements the "ipybible books" command.
//
// The books command lists the 66 canonical book names with their expected
// chapter counts. Given a version argument it also shows the chapter count
// actually present in the local cache for that version, which makes
// incomplete downloads visible.
package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ricky-lim/ipybible/internal/books"
	"github.com/ricky-lim/ipybible/internal/model"
)

// NewBooksCommand creates the "books" cobra command.
func NewBooksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "books [version]",
		Short: "List the canonical book names",
		Long: `List the canonical book names accepted by show, search and export,
with the expected chapter count of each. With a version argument the
cached chapter count for that version is shown alongside.

Examples:
  ipybible books
  ipybible books kjv --json`,

		Args: cobra.MaximumNArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			version := ""
			if len(args) == 1 {
				version = args[0]
			}
			return runBooks(cmd.Context(), version)
		},
	}

	return cmd
}

// bookRow is one row of the books listing. CachedChapters is nil when no
// version was given.
type bookRow struct {
	Name           string `json:"name"`
	Chapters       int    `json:"chapters"`
	CachedChapters *int   `json:"cachedChapters,omitempty"`
}

// runBooks builds the listing, loading the cached corpus when a version
// is named.
func runBooks(ctx context.Context, version string) error {
	var bible *model.Bible
	if version != "" {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		lib, st, err := openLibrary(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		bible, err = lib.Open(ctx, version)
		if err != nil {
			return err
		}
	}

	rows := make([]bookRow, 0, len(books.Names))
	for _, name := range books.Names {
		row := bookRow{Name: name, Chapters: books.ChapterCounts[name]}
		if bible != nil {
			cached := 0
			if bible.HasBook(name) {
				cached = bible.Book(name).NumChapters()
			}
			row.CachedChapters = &cached
		}
		rows = append(rows, row)
	}

	printBooks(rows)
	return nil
}

// printBooks renders the listing in text or JSON format.
func printBooks(rows []bookRow) {
	if IsJSONOutput() {
		type resultJSON struct {
			Books []bookRow `json:"books"`
		}
		data, _ := json.MarshalIndent(resultJSON{Books: rows}, "", "  ")
		fmt.Println(string(data))
		return
	}

	withCache := len(rows) > 0 && rows[0].CachedChapters != nil
	if withCache {
		fmt.Printf("%-20s %-10s %s\n", "BOOK", "CHAPTERS", "CACHED")
	} else {
		fmt.Printf("%-20s %s\n", "BOOK", "CHAPTERS")
	}

	for _, row := range rows {
		if withCache {
			fmt.Printf("%-20s %-10d %d\n", row.Name, row.Chapters, *row.CachedChapters)
		} else {
			fmt.Printf("%-20s %d\n", row.Name, row.Chapters)
		}
	}
	fmt.Printf("\n%d books, %d chapters\n", len(rows), books.TotalChapters())
}
