package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ricky-lim/ipybible/internal/model"
)

// TestNormalizeEnglish verifies the full pipeline on kjv-flavored text:
// lowercasing, punctuation stripping, stop-word removal and stemming.
func TestNormalizeEnglish(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "psalm opening",
			text: "The LORD is my shepherd; I shall not want.",
			want: "lord shepherd want",
		},
		{
			name: "archaic verb folds",
			text: "he giveth and he taketh",
			want: "give take",
		},
		{
			name: "plural folds",
			text: "the cities and the trees",
			want: "city tree",
		},
		{
			name: "only stop words",
			text: "and the of to",
			want: "",
		},
		{
			name: "empty",
			text: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.text, model.LanguageEN))
		})
	}
}

// TestNormalizeDutch verifies Dutch stop words and diacritic folding.
func TestNormalizeDutch(t *testing.T) {
	assert.Equal(t, "geerfd huis", Normalize("Geërfd één huis", model.LanguageNL))
	assert.Equal(t, "", Normalize("de het een en van", model.LanguageNL))
}

// TestNormalizeFoldsDiacritics verifies accented characters map to their
// base letters before tokenization.
func TestNormalizeFoldsDiacritics(t *testing.T) {
	assert.Equal(t, Normalize("cafe blessed morning", model.LanguageEN),
		Normalize("café blessed morning", model.LanguageEN))
}

// TestIsStopWord verifies membership per language, including the archaic
// English forms.
func TestIsStopWord(t *testing.T) {
	assert.True(t, IsStopWord("the", model.LanguageEN))
	assert.True(t, IsStopWord("thou", model.LanguageEN))
	assert.True(t, IsStopWord("hath", model.LanguageEN))
	assert.False(t, IsStopWord("lord", model.LanguageEN))

	assert.True(t, IsStopWord("het", model.LanguageNL))
	assert.False(t, IsStopWord("het", model.LanguageEN))
}

// TestStem verifies the conservative suffix rules and their guards.
func TestStem(t *testing.T) {
	tests := []struct {
		name string
		word string
		lang model.Language
		want string
	}{
		{name: "en plural", word: "trees", lang: model.LanguageEN, want: "tree"},
		{name: "en ies", word: "cities", lang: model.LanguageEN, want: "city"},
		{name: "en archaic eth", word: "giveth", lang: model.LanguageEN, want: "give"},
		{name: "en ss guarded", word: "glass", lang: model.LanguageEN, want: "glass"},
		{name: "en us guarded", word: "jesus", lang: model.LanguageEN, want: "jesus"},
		{name: "en short word guarded", word: "was", lang: model.LanguageEN, want: "was"},
		{name: "nl en suffix", word: "koningen", lang: model.LanguageNL, want: "koning"},
		{name: "nl short en guarded", word: "eten", lang: model.LanguageNL, want: "eten"},
		{name: "nl plural s", word: "appels", lang: model.LanguageNL, want: "appel"},
		{name: "unknown language untouched", word: "trees", lang: model.Language("DE"), want: "trees"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Stem(tt.word, tt.lang))
		})
	}
}

// fakeMemo is an in-memory Memo with injectable failures.
type fakeMemo struct {
	entries map[string]string
	getErr  error
	putErr  error
	gets    int
	puts    int
}

func newFakeMemo() *fakeMemo {
	return &fakeMemo{entries: make(map[string]string)}
}

func (m *fakeMemo) GetCleanText(key string) (string, bool, error) {
	m.gets++
	if m.getErr != nil {
		return "", false, m.getErr
	}
	text, ok := m.entries[key]
	return text, ok, nil
}

func (m *fakeMemo) PutCleanText(key, text string) error {
	m.puts++
	if m.putErr != nil {
		return m.putErr
	}
	m.entries[key] = text
	return nil
}

// TestNormalizerMemoizes verifies the second call is served from the memo
// rather than recomputed.
func TestNormalizerMemoizes(t *testing.T) {
	memo := newFakeMemo()
	n := NewNormalizer(memo)

	first := n.CleanText("The LORD is my shepherd", model.LanguageEN)
	assert.Equal(t, "lord shepherd", first)
	require.Equal(t, 1, memo.puts)

	// Poison the stored entry; a memo hit must return the poisoned value,
	// proving the second call did not recompute.
	for k := range memo.entries {
		memo.entries[k] = "poisoned"
	}
	assert.Equal(t, "poisoned", n.CleanText("The LORD is my shepherd", model.LanguageEN))
}

// TestNormalizerLanguageKeysDiffer verifies the same text memoizes
// separately per language.
func TestNormalizerLanguageKeysDiffer(t *testing.T) {
	memo := newFakeMemo()
	n := NewNormalizer(memo)

	n.CleanText("van de koningen", model.LanguageEN)
	n.CleanText("van de koningen", model.LanguageNL)

	assert.Len(t, memo.entries, 2)
}

// TestNormalizerDegradesOnMemoErrors verifies memo failures fall back to
// recomputation instead of propagating.
func TestNormalizerDegradesOnMemoErrors(t *testing.T) {
	memo := newFakeMemo()
	memo.getErr = assert.AnError
	memo.putErr = assert.AnError
	n := NewNormalizer(memo)

	assert.Equal(t, "lord shepherd", n.CleanText("The LORD is my shepherd", model.LanguageEN))
}

// TestNormalizerNilMemo verifies a nil memo disables memoization without
// changing results.
func TestNormalizerNilMemo(t *testing.T) {
	n := NewNormalizer(nil)
	assert.Equal(t, "lord shepherd", n.CleanText("The LORD is my shepherd", model.LanguageEN))
}
