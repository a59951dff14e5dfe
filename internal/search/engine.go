package search

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ricky-lim/ipybible/internal/logging"
	"github.com/ricky-lim/ipybible/internal/model"
	"github.com/ricky-lim/ipybible/internal/similarity"
	"github.com/ricky-lim/ipybible/internal/textnorm"
)

// ChapterScore is one chapter's similarity against the query.
type ChapterScore struct {
	Chapter int     `json:"chapter"`
	Ratio   float64 `json:"ratio"`
}

// BookScore is one book's similarity against the query: the ratio of its
// best-matching chapter.
type BookScore struct {
	Book  string  `json:"book"`
	Ratio float64 `json:"ratio"`
}

// Cache is the persistence surface for memoized search results,
// satisfied by *store.Store.
type Cache interface {
	GetSearch(key string) (string, bool, error)
	PutSearch(key, result string) error
}

// Engine scores a loaded corpus against search phrases.
type Engine struct {
	bible      *model.Bible
	normalizer *textnorm.Normalizer
	cache      Cache
	parallel   int
	log        zerolog.Logger
}

// NewEngine creates an Engine over a loaded Bible. A nil cache disables
// result memoization; parallel <= 0 selects GOMAXPROCS.
func NewEngine(bible *model.Bible, normalizer *textnorm.Normalizer, cache Cache, parallel int) *Engine {
	if parallel <= 0 {
		parallel = runtime.GOMAXPROCS(0)
	}
	return &Engine{
		bible:      bible,
		normalizer: normalizer,
		cache:      cache,
		parallel:   parallel,
		log:        logging.GetLogger("search"),
	}
}

// ChapterScores ranks every chapter of one book against the query,
// sorted by descending ratio (ties broken by chapter number).
func (e *Engine) ChapterScores(ctx context.Context, bookName, query string) ([]ChapterScore, error) {
	if !e.bible.HasBook(bookName) {
		return nil, model.NewCLIError(model.ExitBibleNotFound,
			fmt.Sprintf("book %q is not in version %s", bookName, e.bible.Version))
	}

	cleanQuery := e.normalizer.CleanText(query, e.bible.Language)
	key := e.cacheKey("chapters:"+bookName, cleanQuery)

	var cached []ChapterScore
	if ok := e.cacheGet(key, &cached); ok {
		return cached, nil
	}

	book := e.bible.Book(bookName)
	scores := make([]ChapterScore, 0, book.NumChapters())
	for _, ch := range book.Chapters() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cleanChapter := e.normalizer.CleanText(ch.Text(), e.bible.Language)
		scores = append(scores, ChapterScore{
			Chapter: ch.Number,
			Ratio:   similarity.Cosine(cleanQuery, cleanChapter),
		})
	}

	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Ratio != scores[j].Ratio {
			return scores[i].Ratio > scores[j].Ratio
		}
		return scores[i].Chapter < scores[j].Chapter
	})

	e.cachePut(key, scores)
	return scores, nil
}

// BookScores ranks every book of the corpus against the query. Books are
// scored concurrently; each book contributes its top chapter ratio.
// Scores are normalized to sum to 1 (for result sets of ten or more) and
// zero-score books are dropped.
func (e *Engine) BookScores(ctx context.Context, query string) ([]BookScore, error) {
	cleanQuery := e.normalizer.CleanText(query, e.bible.Language)
	key := e.cacheKey("books", cleanQuery)

	var cached []BookScore
	if ok := e.cacheGet(key, &cached); ok {
		return cached, nil
	}

	books := e.bible.Books()
	ratios := make(map[string]float64, len(books))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.parallel)
	for _, book := range books {
		book := book
		g.Go(func() error {
			top, err := e.topChapterRatio(gctx, book, cleanQuery)
			if err != nil {
				return err
			}
			mu.Lock()
			ratios[book.Name] = top
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	normalized := similarity.NormalizeScores(ratios)

	results := make([]BookScore, 0, len(normalized))
	for name, ratio := range normalized {
		if ratio <= 0 {
			continue
		}
		results = append(results, BookScore{Book: name, Ratio: ratio})
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Ratio != results[j].Ratio {
			return results[i].Ratio > results[j].Ratio
		}
		return results[i].Book < results[j].Book
	})

	e.cachePut(key, results)
	e.log.Debug().Str("query", query).Int("matches", len(results)).Msg("book search complete")
	return results, nil
}

// topChapterRatio returns the best chapter similarity within one book.
func (e *Engine) topChapterRatio(ctx context.Context, book *model.Book, cleanQuery string) (float64, error) {
	var top float64
	for _, ch := range book.Chapters() {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		cleanChapter := e.normalizer.CleanText(ch.Text(), e.bible.Language)
		if ratio := similarity.Cosine(cleanQuery, cleanChapter); ratio > top {
			top = ratio
		}
	}
	return top, nil
}

// cacheKey hashes version, scope and normalized query into the
// search_cache table key.
func (e *Engine) cacheKey(scope, cleanQuery string) string {
	h := sha256.New()
	h.Write([]byte(e.bible.Version))
	h.Write([]byte{0})
	h.Write([]byte(scope))
	h.Write([]byte{0})
	h.Write([]byte(cleanQuery))
	return hex.EncodeToString(h.Sum(nil))
}

// cacheGet loads a memoized result into out. Cache errors are logged and
// treated as misses.
func (e *Engine) cacheGet(key string, out any) bool {
	if e.cache == nil {
		return false
	}
	raw, ok, err := e.cache.GetSearch(key)
	if err != nil {
		e.log.Warn().Err(err).Msg("search-cache lookup failed")
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		e.log.Warn().Err(err).Msg("search-cache entry corrupt, recomputing")
		return false
	}
	return true
}

// cachePut stores a result. Failures are logged, never fatal.
func (e *Engine) cachePut(key string, result any) {
	if e.cache == nil {
		return
	}
	raw, err := json.Marshal(result)
	if err != nil {
		e.log.Warn().Err(err).Msg("search result marshal failed")
		return
	}
	if err := e.cache.PutSearch(key, string(raw)); err != nil {
		e.log.Warn().Err(err).Msg("search-cache store failed")
	}
}
