// Package textnorm normalizes Bible text before similarity scoring.
//
// Normalization lowercases the input, folds diacritics to their base
// letters, strips punctuation, removes language-specific stop words and
// applies a light suffix stem. Both the indexed chapters and the incoming
// search phrase pass through the same pipeline, so the exact linguistic
// depth matters less than applying it consistently on both sides.
//
// Normalization of a whole corpus is expensive, so results are memoized
// in the store's clean_text table keyed by a sha256 of language and input.
package textnorm
