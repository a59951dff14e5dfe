// Package cli — show.go implements the "ipybible show" command.
//
// The show command prints Bible text at book, chapter or verse
// granularity. The version is downloaded on demand if it is not cached.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ricky-lim/ipybible/internal/model"
)

// NewShowCommand creates the "show" cobra command.
func NewShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <version> <book> [chapter [verse]]",
		Short: "Print a book, chapter or verse",
		Long: `Print Bible text from the local cache. With only a book name, the
whole book is printed; adding a chapter number narrows to that chapter,
and adding a verse number to a single verse.

Book names are lowercase without spaces (e.g., psalms, 1samuel,
songofsolomon). Run "ipybible books" for the full list.

Examples:
  ipybible show kjv psalms 23
  ipybible show kjv john 3 16
  ipybible show statenvertaling genesis`,

		Args: cobra.RangeArgs(2, 4),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd.Context(), args)
		},
	}

	return cmd
}

// showResult is the JSON output structure for the show command.
type showResult struct {
	Version string `json:"version"`
	Book    string `json:"book"`
	Chapter int    `json:"chapter,omitempty"`
	Verse   int    `json:"verse,omitempty"`
	Text    string `json:"text"`
}

// runShow resolves the reference against the cached corpus and prints it.
func runShow(ctx context.Context, args []string) error {
	version, bookName := args[0], args[1]

	ref := showResult{Version: version, Book: bookName}
	if len(args) >= 3 {
		n, err := strconv.Atoi(args[2])
		if err != nil || n < 1 {
			return model.NewCLIError(model.ExitInvalidQuery,
				fmt.Sprintf("invalid chapter number %q", args[2]))
		}
		ref.Chapter = n
	}
	if len(args) == 4 {
		n, err := strconv.Atoi(args[3])
		if err != nil || n < 1 {
			return model.NewCLIError(model.ExitInvalidQuery,
				fmt.Sprintf("invalid verse number %q", args[3]))
		}
		ref.Verse = n
	}

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

	if !bible.HasBook(bookName) {
		return model.NewCLIError(model.ExitBibleNotFound,
			fmt.Sprintf("book %q is not in version %s", bookName, version))
	}
	book := bible.Book(bookName)

	switch {
	case ref.Verse != 0:
		if !book.HasChapter(ref.Chapter) {
			return model.NewCLIError(model.ExitBibleNotFound,
				fmt.Sprintf("%s has no chapter %d", bookName, ref.Chapter))
		}
		verse := book.Chapter(ref.Chapter).Verse(ref.Verse)
		if verse == nil {
			return model.NewCLIError(model.ExitBibleNotFound,
				fmt.Sprintf("%s %d has no verse %d", bookName, ref.Chapter, ref.Verse))
		}
		ref.Text = verse.Text

	case ref.Chapter != 0:
		if !book.HasChapter(ref.Chapter) {
			return model.NewCLIError(model.ExitBibleNotFound,
				fmt.Sprintf("%s has no chapter %d", bookName, ref.Chapter))
		}
		ref.Text = book.Chapter(ref.Chapter).Text()

	default:
		ref.Text = book.Text()
	}

	printShowResult(ref)
	return nil
}

// printShowResult prints the resolved text in text or JSON format.
func printShowResult(ref showResult) {
	if IsJSONOutput() {
		data, _ := json.MarshalIndent(ref, "", "  ")
		fmt.Println(string(data))
		return
	}
	fmt.Println(ref.Text)
}
