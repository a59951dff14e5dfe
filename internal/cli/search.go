// Package cli — search.go implements the "ipybible search" command.
//
// The search command ranks the corpus against a short phrase. Without
// --book it scores every book (each book's score is the cosine similarity
// of its best-matching chapter); with --book it scores the chapters of
// that one book. Results are memoized in the local store, so repeating a
// query is instant.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ricky-lim/ipybible/internal/model"
	"github.com/ricky-lim/ipybible/internal/search"
)

// searchFlags holds the flag values for the search command.
type searchFlags struct {
	// book narrows the search to the chapters of one book.
	book string

	// top truncates the ranking to the N best entries; 0 keeps all.
	top int
}

// NewSearchCommand creates the "search" cobra command.
func NewSearchCommand() *cobra.Command {
	flags := &searchFlags{}

	cmd := &cobra.Command{
		Use:   "search <version> <phrase>...",
		Short: "Rank books or chapters against a search phrase",
		Long: `Rank the corpus against a phrase of 3 to 5 words. Phrases outside
those bounds are rejected: shorter ones match too broadly, longer ones
defeat the 2-3 word n-gram scoring.

Examples:
  ipybible search kjv heal the land
  ipybible search kjv --book psalms the valley of death
  ipybible search kjv --json --top 5 love thy neighbour`,

		Args: cobra.MinimumNArgs(2),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd.Context(), args[0], strings.Join(args[1:], " "), flags)
		},
	}

	cmd.Flags().StringVar(&flags.book, "book", "", "Search within one book's chapters")
	cmd.Flags().IntVar(&flags.top, "top", 0, "Keep only the N best results (0 = all)")

	return cmd
}

// runSearch validates the phrase, loads the corpus and prints the ranking.
func runSearch(ctx context.Context, version, phrase string, flags *searchFlags) error {
	if err := model.ValidateQuery(phrase); err != nil {
		return model.WrapCLIError(model.ExitInvalidQuery, "invalid search phrase", err)
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

	engine := search.NewEngine(bible, lib.Normalizer(), st, cfg.SearchParallelism)

	if flags.book != "" {
		scores, err := engine.ChapterScores(ctx, flags.book, phrase)
		if err != nil {
			return err
		}
		if flags.top > 0 && flags.top < len(scores) {
			scores = scores[:flags.top]
		}
		printChapterScores(flags.book, scores)
		return nil
	}

	scores, err := engine.BookScores(ctx, phrase)
	if err != nil {
		return err
	}
	if flags.top > 0 && flags.top < len(scores) {
		scores = scores[:flags.top]
	}
	printBookScores(scores)
	return nil
}

// printBookScores renders the whole-corpus ranking in text or JSON.
func printBookScores(scores []search.BookScore) {
	if IsJSONOutput() {
		type resultJSON struct {
			Books []search.BookScore `json:"books"`
		}
		result := resultJSON{Books: scores}
		if result.Books == nil {
			result.Books = []search.BookScore{}
		}
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return
	}

	if len(scores) == 0 {
		fmt.Println("No matching books found.")
		return
	}

	fmt.Printf("%-20s %s\n", "BOOK", "RATIO")
	for _, s := range scores {
		fmt.Printf("%-20s %.3f\n", s.Book, s.Ratio)
	}
}

// printChapterScores renders a single book's chapter ranking.
func printChapterScores(book string, scores []search.ChapterScore) {
	if IsJSONOutput() {
		type resultJSON struct {
			Book     string                `json:"book"`
			Chapters []search.ChapterScore `json:"chapters"`
		}
		result := resultJSON{Book: book, Chapters: scores}
		if result.Chapters == nil {
			result.Chapters = []search.ChapterScore{}
		}
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return
	}

	if len(scores) == 0 {
		fmt.Printf("No chapters scored in %s.\n", book)
		return
	}

	fmt.Printf("%-10s %s\n", "CHAPTER", "RATIO")
	for _, s := range scores {
		fmt.Printf("%-10d %.3f\n", s.Chapter, s.Ratio)
	}
}
