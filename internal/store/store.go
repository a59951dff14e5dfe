package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver

	"github.com/ricky-lim/ipybible/internal/books"
	"github.com/ricky-lim/ipybible/internal/logging"
	"github.com/ricky-lim/ipybible/internal/model"
)

// Store wraps the SQLite database holding corpora, the clean-text memo
// and the search cache. A Store is safe for use from a single process;
// SQLite's busy timeout handles the occasional concurrent CLI invocation.
type Store struct {
	db   *sql.DB
	path string
	log  zerolog.Logger
}

// DefaultPath returns the database location under the XDG data directory,
// creating parent directories as needed.
func DefaultPath() (string, error) {
	return xdg.DataFile(filepath.Join("ipybible", "ipybible.db"))
}

// Open opens (creating if necessary) the database at path and applies
// schema migrations. Returns a model.CLIError with ExitCacheError on any
// failure so callers can surface a consistent exit code.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, model.WrapCLIError(model.ExitCacheError,
			fmt.Sprintf("failed to create data directory for %s", path), err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitCacheError,
			fmt.Sprintf("failed to open database at %s", path), err)
	}

	// A single connection avoids SQLITE_BUSY between statements; the CLI
	// workload is sequential anyway.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, model.WrapCLIError(model.ExitCacheError,
				fmt.Sprintf("failed to apply %q", pragma), err)
		}
	}

	s := &Store{db: db, path: path, log: logging.GetLogger("store")}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, model.WrapCLIError(model.ExitCacheError, "failed to migrate schema", err)
	}

	s.log.Debug().Str("path", path).Msg("store opened")
	return s, nil
}

// Close releases the underlying database handle. Safe to call once.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the filesystem location of the database.
func (s *Store) Path() string {
	return s.path
}

// SaveBook upserts the full text of one book under the given version.
// Re-saving the same book is idempotent: the primary key on
// (version, book, chapter, verse) makes the insert a replace.
func (s *Store) SaveBook(version string, book string, text map[int]map[int]string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save of %s/%s: %w", version, book, err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
		INSERT INTO verses (version, book, chapter, verse, text)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (version, book, chapter, verse) DO UPDATE SET text = excluded.text`)
	if err != nil {
		return fmt.Errorf("prepare verse insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for chapter, verses := range text {
		for verse, verseText := range verses {
			if _, err := stmt.Exec(version, book, chapter, verse, verseText); err != nil {
				return fmt.Errorf("save %s/%s %d:%d: %w", version, book, chapter, verse, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save of %s/%s: %w", version, book, err)
	}
	return nil
}

// MarkVersion records that a version has been fully downloaded. The
// entry is what HasVersion checks, so it must only be written after
// every book has been saved.
func (s *Store) MarkVersion(version string, lang model.Language, bookCount int) error {
	_, err := s.db.Exec(`
		INSERT INTO versions (version, language, book_count)
		VALUES (?, ?, ?)
		ON CONFLICT (version) DO UPDATE SET
			language = excluded.language,
			book_count = excluded.book_count,
			downloaded_at = CURRENT_TIMESTAMP`,
		version, lang.String(), bookCount)
	if err != nil {
		return fmt.Errorf("mark version %s: %w", version, err)
	}
	return nil
}

// HasVersion reports whether a version has been fully downloaded.
func (s *Store) HasVersion(version string) (bool, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM versions WHERE version = ?`, version).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check version %s: %w", version, err)
	}
	return count > 0, nil
}

// DeleteVersion removes a downloaded version and its verses. The
// clean-text memo is keyed by content hash and intentionally survives,
// since identical text may appear in other versions.
func (s *Store) DeleteVersion(version string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin delete of %s: %w", version, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM verses WHERE version = ?`, version); err != nil {
		return fmt.Errorf("delete verses of %s: %w", version, err)
	}
	if _, err := tx.Exec(`DELETE FROM versions WHERE version = ?`, version); err != nil {
		return fmt.Errorf("delete version %s: %w", version, err)
	}
	return tx.Commit()
}

// LoadBible reconstructs the full corpus of a downloaded version. Books
// are inserted in canonical order so that Bible.Books() iterates the
// corpus the way readers expect.
func (s *Store) LoadBible(version string) (*model.Bible, error) {
	var langStr string
	err := s.db.QueryRow(
		`SELECT language FROM versions WHERE version = ?`, version).Scan(&langStr)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.NewCLIError(model.ExitBibleNotFound,
			fmt.Sprintf("version %q is not in the local cache (run: ipybible fetch %s)", version, version))
	}
	if err != nil {
		return nil, fmt.Errorf("load version row for %s: %w", version, err)
	}

	lang, err := model.ParseLanguage(langStr)
	if err != nil {
		return nil, fmt.Errorf("corrupt language %q for version %s: %w", langStr, version, err)
	}

	bible := model.NewBible(version, lang)
	for _, bookName := range books.Names {
		if err := s.loadBook(bible, version, bookName); err != nil {
			return nil, err
		}
	}
	return bible, nil
}

// loadBook streams one book's verses out of the database into the Bible.
func (s *Store) loadBook(bible *model.Bible, version, bookName string) error {
	rows, err := s.db.Query(`
		SELECT chapter, verse, text FROM verses
		WHERE version = ? AND book = ?
		ORDER BY chapter, verse`, version, bookName)
	if err != nil {
		return fmt.Errorf("load %s/%s: %w", version, bookName, err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var chapter, verse int
		var text string
		if err := rows.Scan(&chapter, &verse, &text); err != nil {
			return fmt.Errorf("scan %s/%s: %w", version, bookName, err)
		}
		// Book creation is lazy, so a version missing this book simply
		// contributes no entry to the corpus.
		bible.Book(bookName).Chapter(chapter).AddVerse(model.Verse{Number: verse, Text: text})
	}
	return rows.Err()
}

// GetCleanText looks up a normalization memo entry by content hash.
func (s *Store) GetCleanText(key string) (string, bool, error) {
	var text string
	err := s.db.QueryRow(`SELECT text FROM clean_text WHERE key = ?`, key).Scan(&text)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("clean-text lookup: %w", err)
	}
	return text, true, nil
}

// PutCleanText stores a normalization memo entry. Existing entries are
// left untouched: normalization is deterministic, so the first write is
// as good as any later one.
func (s *Store) PutCleanText(key, text string) error {
	_, err := s.db.Exec(`
		INSERT INTO clean_text (key, text) VALUES (?, ?)
		ON CONFLICT (key) DO NOTHING`, key, text)
	if err != nil {
		return fmt.Errorf("clean-text store: %w", err)
	}
	return nil
}

// GetSearch looks up a cached search result (JSON) by query hash.
func (s *Store) GetSearch(key string) (string, bool, error) {
	var result string
	err := s.db.QueryRow(`SELECT result FROM search_cache WHERE key = ?`, key).Scan(&result)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("search-cache lookup: %w", err)
	}
	return result, true, nil
}

// PutSearch stores a search result (JSON) under its query hash.
func (s *Store) PutSearch(key, result string) error {
	_, err := s.db.Exec(`
		INSERT INTO search_cache (key, result) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET result = excluded.result,
			created_at = CURRENT_TIMESTAMP`, key, result)
	if err != nil {
		return fmt.Errorf("search-cache store: %w", err)
	}
	return nil
}
