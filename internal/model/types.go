package model

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Language identifies the natural language of a Bible version. It selects
// the stop-word list and normalization rules used when cleaning text.
type Language string

const (
	// LanguageEN is English (versions: kjv, basicenglish).
	LanguageEN Language = "EN"

	// LanguageNL is Dutch (versions: statenvertaling).
	LanguageNL Language = "NL"
)

// String returns the string representation of the Language.
func (l Language) String() string {
	return string(l)
}

// IsValid checks whether the Language is one of the supported languages.
func (l Language) IsValid() bool {
	switch l {
	case LanguageEN, LanguageNL:
		return true
	default:
		return false
	}
}

// ParseLanguage converts a string to a Language. The match is
// case-insensitive. Returns an error for unsupported languages.
func ParseLanguage(s string) (Language, error) {
	lang := Language(strings.ToUpper(s))
	if !lang.IsValid() {
		return "", fmt.Errorf("unsupported language: %q (valid: EN, NL)", s)
	}
	return lang, nil
}

// LanguageVersions maps each supported language to its Bible versions,
// ordered by preference. The first entry is the language's default version.
var LanguageVersions = map[Language][]string{
	LanguageEN: {"kjv", "basicenglish"},
	LanguageNL: {"statenvertaling"},
}

// VersionLanguage is the reverse of LanguageVersions: version name to the
// language its text is written in.
var VersionLanguage = map[string]Language{
	"kjv":             LanguageEN,
	"basicenglish":    LanguageEN,
	"statenvertaling": LanguageNL,
}

// DefaultVersion returns the preferred Bible version for a language.
func DefaultVersion(lang Language) string {
	versions := LanguageVersions[lang]
	if len(versions) == 0 {
		return ""
	}
	return versions[0]
}

// ValidVersion reports whether the version name is one of the known
// getbible.net translations supported by this tool.
func ValidVersion(version string) bool {
	_, ok := VersionLanguage[version]
	return ok
}

// Verse is a single numbered verse within a chapter.
type Verse struct {
	// Number is the 1-based verse number within its chapter.
	Number int `json:"number"`

	// Text is the verse text as served by the API, trimmed of
	// surrounding whitespace.
	Text string `json:"text"`

	// Language is the language of the text, inherited from the Bible
	// version the verse belongs to.
	Language Language `json:"language"`
}

// Chapter is a numbered chapter holding its verses keyed by verse number.
type Chapter struct {
	// Number is the 1-based chapter number within its book.
	Number int `json:"number"`

	// Language is inherited from the owning Bible.
	Language Language `json:"language"`

	verses map[int]*Verse
}

// NewChapter creates an empty chapter.
func NewChapter(number int, lang Language) *Chapter {
	return &Chapter{
		Number:   number,
		Language: lang,
		verses:   make(map[int]*Verse),
	}
}

// AddVerse records a verse under its number. The first write for a given
// verse number wins; later duplicates are ignored. The verse text is
// trimmed and the chapter's language is stamped onto the stored verse.
func (c *Chapter) AddVerse(v Verse) {
	if _, exists := c.verses[v.Number]; exists {
		return
	}
	c.verses[v.Number] = &Verse{
		Number:   v.Number,
		Text:     strings.TrimSpace(v.Text),
		Language: c.Language,
	}
}

// Verse returns the verse with the given number, or nil if absent.
func (c *Chapter) Verse(number int) *Verse {
	return c.verses[number]
}

// NumVerses returns the number of verses recorded in the chapter.
func (c *Chapter) NumVerses() int {
	return len(c.verses)
}

// Verses returns the chapter's verses ordered by verse number.
func (c *Chapter) Verses() []*Verse {
	nums := make([]int, 0, len(c.verses))
	for n := range c.verses {
		nums = append(nums, n)
	}
	sort.Ints(nums)

	verses := make([]*Verse, 0, len(nums))
	for _, n := range nums {
		verses = append(verses, c.verses[n])
	}
	return verses
}

// Text concatenates all verse texts in verse order, separated by single
// spaces. This is the unit of text that similarity search scores against.
func (c *Chapter) Text() string {
	verses := c.Verses()
	parts := make([]string, 0, len(verses))
	for _, v := range verses {
		parts = append(parts, strings.TrimSpace(v.Text))
	}
	return strings.Join(parts, " ")
}

// Book is a named book holding its chapters keyed by chapter number.
type Book struct {
	// Name is the canonical lowercase book name (e.g., "psalms").
	Name string `json:"name"`

	// Language is inherited from the owning Bible.
	Language Language `json:"language"`

	chapters map[int]*Chapter
}

// NewBook creates an empty book.
func NewBook(name string, lang Language) *Book {
	return &Book{
		Name:     name,
		Language: lang,
		chapters: make(map[int]*Chapter),
	}
}

// Chapter returns the chapter with the given number, creating an empty
// chapter on first access. This fluent accessor mirrors the library's
// usage surface: bible.Book("psalms").Chapter(23).Text().
func (b *Book) Chapter(number int) *Chapter {
	ch, ok := b.chapters[number]
	if !ok {
		ch = NewChapter(number, b.Language)
		b.chapters[number] = ch
	}
	return ch
}

// HasChapter reports whether the chapter exists without creating it.
func (b *Book) HasChapter(number int) bool {
	_, ok := b.chapters[number]
	return ok
}

// NumChapters returns the number of chapters recorded in the book.
func (b *Book) NumChapters() int {
	return len(b.chapters)
}

// Chapters returns the book's chapters ordered by chapter number.
func (b *Book) Chapters() []*Chapter {
	nums := make([]int, 0, len(b.chapters))
	for n := range b.chapters {
		nums = append(nums, n)
	}
	sort.Ints(nums)

	chapters := make([]*Chapter, 0, len(nums))
	for _, n := range nums {
		chapters = append(chapters, b.chapters[n])
	}
	return chapters
}

// Text concatenates all chapter texts in chapter order.
func (b *Book) Text() string {
	chapters := b.Chapters()
	parts := make([]string, 0, len(chapters))
	for _, ch := range chapters {
		parts = append(parts, strings.TrimSpace(ch.Text()))
	}
	return strings.Join(parts, " ")
}

// Bible is the aggregate root: one downloaded translation of the corpus.
type Bible struct {
	// Version is the getbible.net translation name (e.g., "kjv").
	Version string `json:"version"`

	// Language is the natural language of the translation.
	Language Language `json:"language"`

	books     map[string]*Book
	bookOrder []string
}

// NewBible creates an empty Bible for the given version and language.
func NewBible(version string, lang Language) *Bible {
	return &Bible{
		Version:  version,
		Language: lang,
		books:    make(map[string]*Book),
	}
}

// Book returns the book with the given name, creating an empty book on
// first access. Book order is preserved in insertion order, which callers
// keep canonical by inserting books in books.Names order.
func (b *Bible) Book(name string) *Book {
	book, ok := b.books[name]
	if !ok {
		book = NewBook(name, b.Language)
		b.books[name] = book
		b.bookOrder = append(b.bookOrder, name)
	}
	return book
}

// HasBook reports whether the book exists without creating it.
func (b *Bible) HasBook(name string) bool {
	_, ok := b.books[name]
	return ok
}

// Books returns all books in insertion (canonical) order.
func (b *Bible) Books() []*Book {
	books := make([]*Book, 0, len(b.bookOrder))
	for _, name := range b.bookOrder {
		books = append(books, b.books[name])
	}
	return books
}

// NumBooks returns the number of books in the corpus.
func (b *Bible) NumBooks() int {
	return len(b.books)
}

// TotalChapters returns the chapter count summed over all books.
func (b *Bible) TotalChapters() int {
	total := 0
	for _, book := range b.books {
		total += book.NumChapters()
	}
	return total
}

// Phrase search bounds. Queries shorter than MinQueryWords match too many
// chapters to rank meaningfully; longer ones defeat the 2-3 word n-gram
// vectorizer.
const (
	// MinQueryWords is the minimum number of words in a search phrase.
	MinQueryWords = 3

	// MaxQueryWords is the maximum number of words in a search phrase.
	MaxQueryWords = 5
)

// CountWords returns the number of whitespace-separated words in a phrase.
func CountWords(phrase string) int {
	return len(strings.Fields(phrase))
}

// ValidateQuery checks a search phrase against the word-count bounds.
func ValidateQuery(phrase string) error {
	n := CountWords(phrase)
	if n < MinQueryWords {
		return fmt.Errorf("at least %d words are required (got %d)", MinQueryWords, n)
	}
	if n > MaxQueryWords {
		return fmt.Errorf("at most %d words are allowed (got %d)", MaxQueryWords, n)
	}
	return nil
}

// envNameRegex validates provisioning environment names: letters, digits,
// dot, hyphen and underscore, starting with a letter or digit. This matches
// the names conda itself accepts for environments.
var envNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

// ValidateEnvName checks if the given name is usable as a conda environment
// name and Jupyter kernel name.
func ValidateEnvName(name string) error {
	if name == "" {
		return fmt.Errorf("environment name must not be empty")
	}
	if !envNameRegex.MatchString(name) {
		return fmt.Errorf("invalid environment name %q: must contain only letters, digits, '.', '-' or '_', and start with a letter or digit", name)
	}
	return nil
}
