package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseLanguage verifies case-insensitive parsing and rejection of
// unsupported languages.
func TestParseLanguage(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Language
		wantErr bool
	}{
		{name: "uppercase english", input: "EN", want: LanguageEN},
		{name: "lowercase english", input: "en", want: LanguageEN},
		{name: "mixed case dutch", input: "Nl", want: LanguageNL},
		{name: "unsupported", input: "DE", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLanguage(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestDefaultVersion verifies each language resolves to its preferred
// translation.
func TestDefaultVersion(t *testing.T) {
	assert.Equal(t, "kjv", DefaultVersion(LanguageEN))
	assert.Equal(t, "statenvertaling", DefaultVersion(LanguageNL))
	assert.Equal(t, "", DefaultVersion(Language("DE")))
}

// TestVersionRegistry verifies LanguageVersions and VersionLanguage agree
// with each other.
func TestVersionRegistry(t *testing.T) {
	for lang, versions := range LanguageVersions {
		for _, v := range versions {
			assert.Equal(t, lang, VersionLanguage[v], "version %s should map back to %s", v, lang)
			assert.True(t, ValidVersion(v))
		}
	}
	assert.False(t, ValidVersion("vulgate"))
}

// TestChapterAddVerse verifies first-write-wins semantics, text trimming
// and language stamping.
func TestChapterAddVerse(t *testing.T) {
	ch := NewChapter(1, LanguageEN)

	ch.AddVerse(Verse{Number: 1, Text: "  In the beginning  "})
	ch.AddVerse(Verse{Number: 1, Text: "duplicate, must be ignored"})
	ch.AddVerse(Verse{Number: 2, Text: "and the earth"})

	require.Equal(t, 2, ch.NumVerses())
	assert.Equal(t, "In the beginning", ch.Verse(1).Text)
	assert.Equal(t, LanguageEN, ch.Verse(1).Language)
	assert.Nil(t, ch.Verse(3))
}

// TestChapterText verifies verses join in verse order regardless of
// insertion order.
func TestChapterText(t *testing.T) {
	ch := NewChapter(1, LanguageEN)
	ch.AddVerse(Verse{Number: 2, Text: "second"})
	ch.AddVerse(Verse{Number: 1, Text: "first"})
	ch.AddVerse(Verse{Number: 3, Text: "third"})

	assert.Equal(t, "first second third", ch.Text())
}

// TestBookChapterAccess verifies the create-on-access chapter accessor
// and HasChapter probing without creation.
func TestBookChapterAccess(t *testing.T) {
	book := NewBook("psalms", LanguageEN)

	assert.False(t, book.HasChapter(23))
	ch := book.Chapter(23)
	require.NotNil(t, ch)
	assert.Equal(t, 23, ch.Number)
	assert.True(t, book.HasChapter(23))
	assert.Equal(t, 1, book.NumChapters())

	// Repeated access returns the same chapter.
	ch.AddVerse(Verse{Number: 1, Text: "The Lord is my shepherd"})
	assert.Equal(t, 1, book.Chapter(23).NumVerses())
}

// TestBibleBookOrder verifies books iterate in insertion order, which
// callers keep canonical.
func TestBibleBookOrder(t *testing.T) {
	bible := NewBible("kjv", LanguageEN)
	bible.Book("genesis")
	bible.Book("exodus")
	bible.Book("genesis") // repeated access must not duplicate

	books := bible.Books()
	require.Len(t, books, 2)
	assert.Equal(t, "genesis", books[0].Name)
	assert.Equal(t, "exodus", books[1].Name)
	assert.Equal(t, 2, bible.NumBooks())
	assert.True(t, bible.HasBook("exodus"))
	assert.False(t, bible.HasBook("leviticus"))
}

// TestBibleTotalChapters verifies the chapter sum across books.
func TestBibleTotalChapters(t *testing.T) {
	bible := NewBible("kjv", LanguageEN)
	bible.Book("genesis").Chapter(1)
	bible.Book("genesis").Chapter(2)
	bible.Book("exodus").Chapter(1)

	assert.Equal(t, 3, bible.TotalChapters())
}

// TestValidateQuery verifies the 3-5 word phrase bounds.
func TestValidateQuery(t *testing.T) {
	tests := []struct {
		name    string
		phrase  string
		wantErr bool
	}{
		{name: "three words", phrase: "heal the land"},
		{name: "five words", phrase: "the valley of the shadow"},
		{name: "two words", phrase: "the land", wantErr: true},
		{name: "six words", phrase: "one two three four five six", wantErr: true},
		{name: "empty", phrase: "", wantErr: true},
		{name: "extra whitespace still three words", phrase: "  heal   the   land  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateQuery(tt.phrase)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestValidateEnvName verifies conda environment name validation.
func TestValidateEnvName(t *testing.T) {
	assert.NoError(t, ValidateEnvName("base"))
	assert.NoError(t, ValidateEnvName("py3.11_dev-2"))
	assert.Error(t, ValidateEnvName(""))
	assert.Error(t, ValidateEnvName("-leading-dash"))
	assert.Error(t, ValidateEnvName("has space"))
	assert.Error(t, ValidateEnvName("has/slash"))
}

// TestCLIError verifies message formatting and unwrapping.
func TestCLIError(t *testing.T) {
	plain := NewCLIError(ExitBibleNotFound, "no such book")
	assert.Equal(t, "no such book", plain.Error())
	assert.Equal(t, ExitBibleNotFound, plain.Code)
	assert.Nil(t, plain.Unwrap())

	wrapped := WrapCLIError(ExitCacheError, "store failed", assert.AnError)
	assert.Contains(t, wrapped.Error(), "store failed")
	assert.Contains(t, wrapped.Error(), assert.AnError.Error())
	assert.Equal(t, assert.AnError, wrapped.Unwrap())
}
