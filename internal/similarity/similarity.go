// Package similarity scores text pairs with cosine similarity over word
// n-gram count vectors.
//
// Texts are vectorized as counts of contiguous word bigrams and trigrams.
// Using n >= 2 means a single shared word never produces a match by
// itself; a phrase has to overlap, which is the behavior a phrase
// search wants. Inputs are expected to be normalized already
// (internal/textnorm); this package only lowercases as a fallback.
package similarity

import (
	"math"
	"sort"
	"strings"
)

// n-gram window used for vectorization.
const (
	minNGram = 2
	maxNGram = 3
)

// NGrams returns all contiguous word n-grams of text for n in [minN, maxN],
// each n-gram joined with single spaces. Returns nil when the text has
// fewer than minN words.
func NGrams(text string, minN, maxN int) []string {
	words := strings.Fields(text)
	if len(words) < minN {
		return nil
	}

	var grams []string
	for n := minN; n <= maxN; n++ {
		if n > len(words) {
			break
		}
		for i := 0; i+n <= len(words); i++ {
			grams = append(grams, strings.Join(words[i:i+n], " "))
		}
	}
	return grams
}

// Vectorize counts the bigrams and trigrams of a text.
func Vectorize(text string) map[string]int {
	grams := NGrams(strings.ToLower(text), minNGram, maxNGram)
	if len(grams) == 0 {
		return nil
	}
	counts := make(map[string]int, len(grams))
	for _, g := range grams {
		counts[g]++
	}
	return counts
}

// Cosine computes the cosine similarity of two texts over their n-gram
// count vectors. The result is in [0, 1]; it is 0 when either text has
// no n-grams (fewer than two words).
func Cosine(a, b string) float64 {
	va := Vectorize(a)
	vb := Vectorize(b)
	if len(va) == 0 || len(vb) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for gram, countA := range va {
		normA += float64(countA * countA)
		if countB, ok := vb[gram]; ok {
			dot += float64(countA * countB)
		}
	}
	for _, countB := range vb {
		normB += float64(countB * countB)
	}
	if dot == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// NormalizeScores scales a score map so the values sum to 1, rounding to
// three decimals. Maps with fewer than ten entries or a zero total are
// returned unchanged: tiny result sets read better as raw ratios, and a
// zero total cannot be scaled.
func NormalizeScores(scores map[string]float64) map[string]float64 {
	if len(scores) < 10 {
		return scores
	}

	var total float64
	for _, v := range scores {
		total += v
	}
	if total == 0 {
		return scores
	}

	normalized := make(map[string]float64, len(scores))
	for k, v := range scores {
		normalized[k] = math.Round(v/total*1000) / 1000
	}
	return normalized
}

// Score pairs a ranked entry name (book or chapter label) with its
// similarity ratio.
type Score struct {
	Name  string  `json:"name"`
	Ratio float64 `json:"ratio"`
}

// RankScores converts a score map into a slice sorted by descending
// ratio, breaking ties by name for deterministic output.
func RankScores(scores map[string]float64) []Score {
	ranked := make([]Score, 0, len(scores))
	for name, ratio := range scores {
		ranked = append(ranked, Score{Name: name, Ratio: ratio})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Ratio != ranked[j].Ratio {
			return ranked[i].Ratio > ranked[j].Ratio
		}
		return ranked[i].Name < ranked[j].Name
	})
	return ranked
}
