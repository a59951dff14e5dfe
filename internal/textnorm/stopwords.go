package textnorm

import "github.com/ricky-lim/ipybible/internal/model"

// stopWords maps each supported language to its stop-word set. The lists
// cover articles, pronouns, prepositions, conjunctions and auxiliary
// verbs: words that carry no weight in phrase similarity.
var stopWords = map[model.Language]map[string]bool{
	model.LanguageEN: wordSet([]string{
		"a", "about", "above", "after", "again", "against", "all", "am",
		"an", "and", "any", "are", "as", "at", "be", "because", "been",
		"before", "being", "below", "between", "both", "but", "by", "can",
		"could", "did", "do", "does", "doing", "down", "during", "each",
		"few", "for", "from", "further", "had", "has", "hast", "hath",
		"have", "having", "he", "her", "here", "hers", "herself", "him",
		"himself", "his", "how", "i", "if", "in", "into", "is", "it",
		"its", "itself", "just", "may", "me", "might", "more", "most",
		"must", "my", "myself", "no", "nor", "not", "now", "o", "of",
		"off", "on", "once", "only", "or", "other", "our", "ours",
		"ourselves", "out", "over", "own", "same", "shall", "shalt",
		"she", "should", "so", "some", "such", "than", "that", "the",
		"thee", "their", "theirs", "them", "themselves", "then", "there",
		"these", "they", "thine", "this", "those", "thou", "through",
		"thy", "to", "too", "under", "until", "unto", "up", "upon", "us",
		"very", "was", "we", "were", "what", "when", "where", "which",
		"while", "who", "whom", "why", "will", "with", "would", "ye",
		"you", "your", "yours", "yourself", "yourselves",
	}),
	model.LanguageNL: wordSet([]string{
		"aan", "al", "alles", "als", "altijd", "andere", "ben", "bij",
		"daar", "dan", "dat", "de", "der", "deze", "die", "dit", "doch",
		"doen", "door", "dus", "een", "eens", "en", "er", "ge", "geen",
		"geweest", "gij", "haar", "had", "heb", "hebben", "heeft", "hem",
		"het", "hier", "hij", "hoe", "hun", "iemand", "iets", "ik", "in",
		"is", "ja", "je", "kan", "kon", "kunnen", "maar", "me", "meer",
		"men", "met", "mij", "mijn", "moet", "na", "naar", "niet",
		"niets", "nog", "nu", "of", "om", "omdat", "ons", "onder", "ook",
		"op", "over", "reeds", "te", "tegen", "toch", "toen", "tot", "u",
		"uit", "uw", "van", "veel", "voor", "want", "waren", "was",
		"wat", "we", "werd", "wezen", "wie", "wil", "worden", "wordt",
		"zal", "ze", "zelf", "zich", "zij", "zijn", "zo", "zonder",
		"zou",
	}),
}

// wordSet builds a membership set from a word list.
func wordSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

// IsStopWord reports whether the (already lowercased) word is a stop word
// in the given language. Unknown languages have no stop words.
func IsStopWord(word string, lang model.Language) bool {
	return stopWords[lang][word]
}
