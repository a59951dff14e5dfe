// Package store persists downloaded Bible corpora and derived data in a
// local SQLite database.
//
// Three kinds of state live here:
//   - the verse text of every downloaded version (the corpus itself)
//   - the clean-text memo: normalized text keyed by a sha256 of its input,
//     so normalization runs once per distinct text
//   - the search cache: ranked similarity results keyed by a sha256 of
//     version, scope and normalized query
//
// The database lives under the XDG data directory by default
// ($XDG_DATA_HOME/ipybible/ipybible.db) and uses the pure-Go
// modernc.org/sqlite driver, so no cgo toolchain is required.
package store
