package library

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ricky-lim/ipybible/internal/books"
	"github.com/ricky-lim/ipybible/internal/getbible"
	"github.com/ricky-lim/ipybible/internal/logging"
	"github.com/ricky-lim/ipybible/internal/model"
	"github.com/ricky-lim/ipybible/internal/store"
	"github.com/ricky-lim/ipybible/internal/textnorm"
)

// Library coordinates the API client, the store and the normalizer to
// provide loaded corpora to the CLI.
type Library struct {
	store      *store.Store
	client     *getbible.Client
	normalizer *textnorm.Normalizer
	log        zerolog.Logger
}

// New creates a Library over an open store and an API client.
func New(st *store.Store, client *getbible.Client) *Library {
	return &Library{
		store:      st,
		client:     client,
		normalizer: textnorm.NewNormalizer(st),
		log:        logging.GetLogger("library"),
	}
}

// Normalizer exposes the memoizing normalizer bound to the library's store.
func (l *Library) Normalizer() *textnorm.Normalizer {
	return l.normalizer
}

// Open returns the corpus for a version, downloading it first if it is
// not in the local cache.
func (l *Library) Open(ctx context.Context, version string) (*model.Bible, error) {
	if err := validateVersion(version); err != nil {
		return nil, err
	}

	cached, err := l.store.HasVersion(version)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitCacheError,
			fmt.Sprintf("failed to check local cache for %s", version), err)
	}
	if !cached {
		if err := l.Download(ctx, version); err != nil {
			return nil, err
		}
	}

	return l.store.LoadBible(version)
}

// Download fetches every canonical book of a version from the API,
// persists it, and pre-warms the clean-text memo. The version is marked
// as downloaded only after the last book has been stored, so an
// interrupted download is retried from scratch on the next run.
func (l *Library) Download(ctx context.Context, version string) error {
	if err := validateVersion(version); err != nil {
		return err
	}
	lang := model.VersionLanguage[version]

	l.log.Info().Str("version", version).Msg("downloading bible version")

	for i, bookName := range books.Names {
		text, err := l.client.FetchBook(ctx, version, bookName)
		if err != nil {
			return err
		}
		if err := l.store.SaveBook(version, bookName, text); err != nil {
			return model.WrapCLIError(model.ExitCacheError,
				fmt.Sprintf("failed to store %s/%s", version, bookName), err)
		}
		l.log.Debug().
			Str("book", bookName).
			Int("chapters", len(text)).
			Int("progress", i+1).
			Int("total", len(books.Names)).
			Msg("book stored")
	}

	if err := l.store.MarkVersion(version, lang, len(books.Names)); err != nil {
		return model.WrapCLIError(model.ExitCacheError,
			fmt.Sprintf("failed to mark %s as downloaded", version), err)
	}

	l.log.Info().Str("version", version).Msg("cleaning text")
	bible, err := l.store.LoadBible(version)
	if err != nil {
		return err
	}
	l.prewarm(bible)

	return nil
}

// prewarm runs every book and chapter through the memoizing normalizer
// so later searches hit the clean_text memo instead of recomputing.
func (l *Library) prewarm(bible *model.Bible) {
	for _, book := range bible.Books() {
		l.normalizer.CleanText(book.Text(), bible.Language)
		for _, ch := range book.Chapters() {
			l.normalizer.CleanText(ch.Text(), bible.Language)
		}
	}
}

// validateVersion rejects version names outside the supported registry
// before any network or disk work happens.
func validateVersion(version string) error {
	if model.ValidVersion(version) {
		return nil
	}
	known := make([]string, 0, len(model.VersionLanguage))
	for v := range model.VersionLanguage {
		known = append(known, v)
	}
	sort.Strings(known)
	return model.NewCLIError(model.ExitBibleNotFound,
		fmt.Sprintf("unknown bible version %q (supported: %s)", version, strings.Join(known, ", ")))
}
