package store

import "fmt"

// currentSchemaVersion is bumped whenever a migration is appended.
//
// Schema history:
//
//	v1: versions, verses, clean_text, search_cache tables
const currentSchemaVersion = 1

// migrations holds the DDL for each schema version, indexed by version-1.
// Each entry is applied in a single transaction together with the
// schema_info bump, so a partially applied migration cannot be observed.
var migrations = []string{
	// v1
	`
	CREATE TABLE IF NOT EXISTS versions (
		version       TEXT PRIMARY KEY,
		language      TEXT NOT NULL,
		book_count    INTEGER NOT NULL DEFAULT 0,
		downloaded_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	CREATE TABLE IF NOT EXISTS verses (
		version TEXT NOT NULL,
		book    TEXT NOT NULL,
		chapter INTEGER NOT NULL,
		verse   INTEGER NOT NULL,
		text    TEXT NOT NULL,
		PRIMARY KEY (version, book, chapter, verse)
	);
	CREATE INDEX IF NOT EXISTS idx_verses_version_book ON verses (version, book);
	CREATE TABLE IF NOT EXISTS clean_text (
		key  TEXT PRIMARY KEY,
		text TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS search_cache (
		key        TEXT PRIMARY KEY,
		result     TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	`,
}

// migrate brings the database schema up to currentSchemaVersion.
func (s *Store) migrate() error {
	if _, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_info (
			version INTEGER NOT NULL
		)`); err != nil {
		return fmt.Errorf("create schema_info: %w", err)
	}

	version, err := s.schemaVersion()
	if err != nil {
		return err
	}
	if version > currentSchemaVersion {
		return fmt.Errorf("database schema v%d is newer than this binary supports (v%d)",
			version, currentSchemaVersion)
	}

	for next := version + 1; next <= currentSchemaVersion; next++ {
		if err := s.applyMigration(next); err != nil {
			return err
		}
		s.log.Debug().Int("schema", next).Msg("migration applied")
	}
	return nil
}

// schemaVersion reads the recorded schema version; 0 means a fresh database.
func (s *Store) schemaVersion() (int, error) {
	var version int
	row := s.db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_info`)
	if err := row.Scan(&version); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return version, nil
}

// applyMigration runs one migration and records the new version atomically.
func (s *Store) applyMigration(version int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin migration v%d: %w", version, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(migrations[version-1]); err != nil {
		return fmt.Errorf("apply migration v%d: %w", version, err)
	}
	if _, err := tx.Exec(`DELETE FROM schema_info`); err != nil {
		return fmt.Errorf("reset schema version: %w", err)
	}
	if _, err := tx.Exec(`INSERT INTO schema_info (version) VALUES (?)`, version); err != nil {
		return fmt.Errorf("record schema version v%d: %w", version, err)
	}
	return tx.Commit()
}
