package textnorm

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"

	"github.com/rs/zerolog"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/ricky-lim/ipybible/internal/logging"
	"github.com/ricky-lim/ipybible/internal/model"
)

// foldDiacritics decomposes characters (NFD), drops the combining marks,
// and recomposes (NFC), mapping e.g. "é" to "e". Dutch texts in
// particular carry diacritics that would otherwise split identical words
// into distinct n-gram terms.
var foldDiacritics = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Normalize cleans a text for similarity scoring: lowercase, fold
// diacritics, strip punctuation, drop stop words, stem.
func Normalize(text string, lang model.Language) string {
	lowered := strings.ToLower(text)

	folded, _, err := transform.String(foldDiacritics, lowered)
	if err != nil {
		// Folding failure only costs diacritic normalization; the rest
		// of the pipeline still applies.
		folded = lowered
	}

	// Split on anything that is not a letter or digit. This both
	// tokenizes and strips punctuation in one pass.
	words := strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	kept := make([]string, 0, len(words))
	for _, w := range words {
		if IsStopWord(w, lang) {
			continue
		}
		w = Stem(w, lang)
		if w == "" || IsStopWord(w, lang) {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}

// Stem applies a conservative suffix stem to a lowercased word. It only
// removes high-confidence inflection suffixes; anything ambiguous is
// left alone, since over-stemming hurts n-gram matching more than
// under-stemming does.
func Stem(word string, lang model.Language) string {
	switch lang {
	case model.LanguageEN:
		return stemEN(word)
	case model.LanguageNL:
		return stemNL(word)
	default:
		return word
	}
}

// stemEN strips common English inflection suffixes.
func stemEN(word string) string {
	if strings.HasSuffix(word, "ies") && len(word) > 4 {
		return word[:len(word)-3] + "y"
	}
	if strings.HasSuffix(word, "eth") && len(word) > 5 {
		// Archaic third-person forms (giveth, loveth) are everywhere in
		// the kjv text; folding them keeps query terms matching.
		return word[:len(word)-3] + "e"
	}
	if strings.HasSuffix(word, "s") && len(word) > 3 &&
		!strings.HasSuffix(word, "ss") && !strings.HasSuffix(word, "us") &&
		!strings.HasSuffix(word, "is") {
		return word[:len(word)-1]
	}
	return word
}

// stemNL strips common Dutch plural and verb suffixes.
func stemNL(word string) string {
	if strings.HasSuffix(word, "en") && len(word) > 5 {
		return word[:len(word)-2]
	}
	if strings.HasSuffix(word, "s") && len(word) > 4 {
		return word[:len(word)-1]
	}
	return word
}

// Memo is the persistence surface the Normalizer caches through,
// satisfied by *store.Store.
type Memo interface {
	GetCleanText(key string) (string, bool, error)
	PutCleanText(key, text string) error
}

// Normalizer memoizes Normalize through a Memo. Memo errors degrade to
// recomputation rather than failing the caller: the memo is an
// optimization, not a source of truth.
type Normalizer struct {
	memo Memo
	log  zerolog.Logger
}

// NewNormalizer creates a Normalizer. A nil memo disables memoization.
func NewNormalizer(memo Memo) *Normalizer {
	return &Normalizer{
		memo: memo,
		log:  logging.GetLogger("textnorm"),
	}
}

// CleanText returns the normalized form of text, serving repeated inputs
// from the memo.
func (n *Normalizer) CleanText(text string, lang model.Language) string {
	if n.memo == nil {
		return Normalize(text, lang)
	}

	key := memoKey(text, lang)
	if cached, ok, err := n.memo.GetCleanText(key); err == nil && ok {
		return cached
	} else if err != nil {
		n.log.Warn().Err(err).Msg("clean-text lookup failed, recomputing")
	}

	clean := Normalize(text, lang)
	if err := n.memo.PutCleanText(key, clean); err != nil {
		n.log.Warn().Err(err).Msg("clean-text store failed")
	}
	return clean
}

// memoKey hashes language and input into the clean_text table key. The
// language participates because the same text normalizes differently
// under different stop-word lists.
func memoKey(text string, lang model.Language) string {
	h := sha256.New()
	h.Write([]byte(lang.String()))
	h.Write([]byte{0})
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}
