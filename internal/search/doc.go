// Package search ranks Bible books and chapters against a search phrase.
//
// A chapter's score is the cosine similarity of the normalized phrase
// against the chapter's normalized text. A book is represented by its
// best-scoring chapter. Book scoring fans out across the corpus with a
// bounded errgroup, and ranked results are memoized in the store's
// search_cache table keyed by version, scope and normalized query.
package search
