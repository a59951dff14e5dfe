package library

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ricky-lim/ipybible/internal/books"
	"github.com/ricky-lim/ipybible/internal/getbible"
	"github.com/ricky-lim/ipybible/internal/model"
	"github.com/ricky-lim/ipybible/internal/store"
)

// bookResponse is a minimal one-chapter book in the API's JSON-P format,
// served for every requested book.
const bookResponse = `({"book":{
	"1":{"chapter_nr":"1","chapter":{
		"1":{"verse_nr":"1","verse":"In the beginning God created"},
		"2":{"verse_nr":"2","verse":"And the earth was without form"}}}
}});`

// newTestLibrary wires a Library against a fake API server and a fresh
// store, returning the library, the store and the request counter.
func newTestLibrary(t *testing.T, handler http.HandlerFunc) (*Library, *store.Store, *atomic.Int32) {
	t.Helper()

	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	st, err := store.Open(filepath.Join(t.TempDir(), "ipybible.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	client := getbible.NewClient(getbible.Options{
		BaseURL:   srv.URL,
		Timeout:   2 * time.Second,
		RetryWait: time.Millisecond,
	})

	return New(st, client), st, &requests
}

// TestOpenDownloadsOnFirstUse verifies a cold cache triggers a full
// download (one request per canonical book) and loads the corpus.
func TestOpenDownloadsOnFirstUse(t *testing.T) {
	lib, _, requests := newTestLibrary(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(bookResponse))
	})

	bible, err := lib.Open(context.Background(), "kjv")
	require.NoError(t, err)

	assert.Equal(t, int32(len(books.Names)), requests.Load())
	assert.Equal(t, "kjv", bible.Version)
	assert.Equal(t, model.LanguageEN, bible.Language)
	assert.Equal(t, len(books.Names), bible.NumBooks())
	assert.Equal(t, "In the beginning God created", bible.Book("psalms").Chapter(1).Verse(1).Text)
}

// TestOpenServesFromCache verifies the second Open makes no API requests.
func TestOpenServesFromCache(t *testing.T) {
	lib, _, requests := newTestLibrary(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(bookResponse))
	})

	_, err := lib.Open(context.Background(), "kjv")
	require.NoError(t, err)
	afterFirst := requests.Load()

	bible, err := lib.Open(context.Background(), "kjv")
	require.NoError(t, err)

	assert.Equal(t, afterFirst, requests.Load(), "cached version must not hit the API")
	assert.Equal(t, len(books.Names), bible.NumBooks())
}

// TestOpenRejectsUnknownVersion verifies unsupported versions fail before
// any network traffic.
func TestOpenRejectsUnknownVersion(t *testing.T) {
	lib, _, requests := newTestLibrary(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(bookResponse))
	})

	_, err := lib.Open(context.Background(), "vulgate")
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitBibleNotFound, cliErr.Code)
	assert.Contains(t, cliErr.Message, "kjv")
	assert.Zero(t, requests.Load())
}

// TestDownloadFailureLeavesVersionUnmarked verifies an interrupted
// download is not marked complete, so the next run retries.
func TestDownloadFailureLeavesVersionUnmarked(t *testing.T) {
	var served atomic.Int32
	lib, st, _ := newTestLibrary(t, func(w http.ResponseWriter, r *http.Request) {
		// Fail partway through the canon with the API's own sentinel,
		// which is a permanent error.
		if served.Add(1) > 3 {
			_, _ = w.Write([]byte("NULL"))
			return
		}
		_, _ = w.Write([]byte(bookResponse))
	})

	err := lib.Download(context.Background(), "kjv")
	require.Error(t, err)

	cached, err := st.HasVersion("kjv")
	require.NoError(t, err)
	assert.False(t, cached, "partial downloads must not be marked complete")
}

// TestDownloadPrewarmsCleanText verifies the memo table is populated as
// part of the download, so the first search skips normalization.
func TestDownloadPrewarmsCleanText(t *testing.T) {
	lib, st, _ := newTestLibrary(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(bookResponse))
	})

	require.NoError(t, lib.Download(context.Background(), "kjv"))

	// Every book shares the same fixture text, so one memo entry covers
	// all of them; probe it through the library's own normalizer.
	bible, err := st.LoadBible("kjv")
	require.NoError(t, err)

	text := bible.Book("genesis").Chapter(1).Text()
	clean := lib.Normalizer().CleanText(text, model.LanguageEN)
	assert.NotEmpty(t, clean)
}
