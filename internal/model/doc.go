// Package model defines the domain types for the ipybible CLI.
//
// All entities here are transient in-memory representations of a Bible
// corpus: a Bible holds Books, a Book holds Chapters, a Chapter holds
// Verses. Durable state lives in the SQLite store (internal/store); these
// types are reconstructed from it, or from the getbible.net API, at runtime.
//
// The package also carries the CLI error taxonomy (ExitCode, CLIError)
// shared by every subcommand, and the validation helpers for search
// queries and provisioning environment names.
package model
