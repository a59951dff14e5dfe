package getbible

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/ricky-lim/ipybible/internal/logging"
	"github.com/ricky-lim/ipybible/internal/model"
)

// DefaultBaseURL is the getbible.net JSON endpoint. All requests go to
// this single URL with the version and book passed as query parameters.
const DefaultBaseURL = "https://getbible.net/json"

// defaultTimeout bounds a single HTTP request. Whole books are at most a
// few hundred kilobytes, so 30 seconds is generous even on slow links.
const defaultTimeout = 30 * time.Second

// defaultMaxRetries is the number of times a failed request is retried
// before the book fetch is reported as an API failure.
const defaultMaxRetries = 4

// userAgent identifies this client to the API.
const userAgent = "ipybible"

// ErrBookNotFound is returned when the API answers with its NULL sentinel,
// meaning the version or book named in the request does not exist.
var ErrBookNotFound = errors.New("version or book not found")

// Client fetches Bible books from the getbible.net API.
//
// Usage:
//
//	c := getbible.NewClient(getbible.Options{})
//	verses, err := c.FetchBook(ctx, "kjv", "psalms")
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxRetries uint64
	retryWait  time.Duration
	log        zerolog.Logger
}

// Options configures a Client. The zero value selects production defaults;
// tests override BaseURL and RetryWait to hit a local server quickly.
type Options struct {
	// BaseURL overrides the API endpoint. Empty means DefaultBaseURL.
	BaseURL string

	// Timeout bounds a single HTTP request. Zero means the default.
	Timeout time.Duration

	// MaxRetries is the retry budget per book fetch. Zero means the default.
	MaxRetries uint64

	// RetryWait is the initial backoff interval. Zero means the backoff
	// package default (500ms).
	RetryWait time.Duration
}

// NewClient creates a Client with the given options.
func NewClient(opts Options) *Client {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	maxRetries := opts.MaxRetries
	if maxRetries == 0 {
		maxRetries = defaultMaxRetries
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		maxRetries: maxRetries,
		retryWait:  opts.RetryWait,
		log:        logging.GetLogger("getbible"),
	}
}

// BookText is the decoded content of one book: chapter number to verse
// number to verse text.
type BookText map[int]map[int]string

// Payload structures matching the API's JSON shape. Chapter and verse
// numbers arrive as string keys ("1", "2", ...) and are converted to ints
// during decoding.
type bookPayload struct {
	Book map[string]chapterEntry `json:"book"`
}

type chapterEntry struct {
	ChapterNr string                `json:"chapter_nr"`
	Chapter   map[string]verseEntry `json:"chapter"`
}

type verseEntry struct {
	VerseNr string `json:"verse_nr"`
	Verse   string `json:"verse"`
}

// FetchBook downloads one book of one version and returns its text keyed
// by chapter and verse number.
//
// Returns ErrBookNotFound (wrapped in a model.CLIError with
// ExitBibleNotFound) when the API signals NULL for the version/book pair,
// and a model.CLIError with ExitAPIUnavailable when the API keeps failing
// after the retry budget is exhausted.
func (c *Client) FetchBook(ctx context.Context, version, book string) (BookText, error) {
	reqURL := fmt.Sprintf("%s?%s", c.baseURL, url.Values{
		"v": []string{version},
		"p": []string{book},
	}.Encode())

	c.log.Debug().Str("version", version).Str("book", book).Msg("fetching book")

	var body []byte
	operation := func() error {
		data, err := c.get(ctx, reqURL)
		if err != nil {
			return err
		}
		body = data
		return nil
	}

	// Retry transient failures with exponential backoff. Permanent errors
	// (4xx, context cancellation) short-circuit via backoff.Permanent.
	expo := backoff.NewExponentialBackOff()
	if c.retryWait > 0 {
		expo.InitialInterval = c.retryWait
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(expo, c.maxRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, model.WrapCLIError(model.ExitAPIUnavailable,
			fmt.Sprintf("failed to fetch %s/%s from getbible API", version, book), err)
	}

	text, err := decodeBook(body)
	if err != nil {
		if errors.Is(err, ErrBookNotFound) {
			return nil, model.WrapCLIError(model.ExitBibleNotFound,
				fmt.Sprintf("no such version or book: %s/%s", version, book), err)
		}
		return nil, model.WrapCLIError(model.ExitAPIUnavailable,
			fmt.Sprintf("malformed API response for %s/%s", version, book), err)
	}

	c.log.Debug().Str("book", book).Int("chapters", len(text)).Msg("book fetched")
	return text, nil
}

// get performs a single HTTP GET and returns the raw body. Server errors
// (5xx) are returned as retryable errors; client errors (4xx) are marked
// permanent so the backoff loop stops immediately.
func (c *Client) get(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Transport errors (DNS, connection refused, timeout) are retryable.
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 500 {
		return nil, fmt.Errorf("server error: %s", resp.Status)
	}
	if resp.StatusCode >= 400 {
		return nil, backoff.Permanent(fmt.Errorf("request rejected: %s", resp.Status))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return body, nil
}

// decodeBook strips the JSON-P wrapper, detects the NULL sentinel, and
// decodes the chapter/verse maps.
func decodeBook(body []byte) (BookText, error) {
	payload := strings.TrimSpace(string(body))

	// The API answers "NULL" (no wrapper) for unknown versions or books.
	if payload == "NULL" || payload == "(NULL);" {
		return nil, ErrBookNotFound
	}

	// Strip the JSON-P wrapper: a leading "(" and a trailing ");".
	payload = strings.TrimPrefix(payload, "(")
	payload = strings.TrimSuffix(payload, ";")
	payload = strings.TrimSuffix(payload, ")")

	var raw bookPayload
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, fmt.Errorf("decoding book payload: %w", err)
	}
	if raw.Book == nil {
		return nil, ErrBookNotFound
	}

	text := make(BookText, len(raw.Book))
	for chapterKey, entry := range raw.Book {
		chapterNum, err := strconv.Atoi(chapterKey)
		if err != nil {
			return nil, fmt.Errorf("non-numeric chapter key %q: %w", chapterKey, err)
		}
		verses := make(map[int]string, len(entry.Chapter))
		for verseKey, ve := range entry.Chapter {
			verseNum, err := strconv.Atoi(verseKey)
			if err != nil {
				return nil, fmt.Errorf("non-numeric verse key %q in chapter %d: %w", verseKey, chapterNum, err)
			}
			verses[verseNum] = strings.TrimSpace(ve.Verse)
		}
		text[chapterNum] = verses
	}
	return text, nil
}
