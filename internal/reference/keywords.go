package reference

import (
	"sort"
	"strings"
	"unicode"
)

const (
	maxKeywords     = 30
	maxKeywordRepet = 3
)

// English and French function words, plus the news boilerplate that shows
// up in nearly every article
var stopWords = toSet(
	// English
	"a", "about", "after", "against", "all", "also", "an", "and", "any", "are", "as", "at",
	"be", "been", "before", "being", "between", "both", "but", "by", "can", "could", "did",
	"do", "does", "during", "each", "for", "from", "further", "had", "has", "have", "having",
	"he", "her", "here", "hers", "him", "his", "how", "i", "if", "in", "into", "is", "it",
	"its", "just", "last", "many", "more", "most", "much", "my", "new", "no", "nor", "not",
	"now", "of", "off", "on", "once", "one", "only", "or", "other", "our", "out", "over",
	"said", "says", "she", "should", "since", "so", "some", "such", "than", "that", "the",
	"their", "them", "then", "there", "these", "they", "this", "those", "through", "to",
	"too", "two", "under", "until", "up", "very", "was", "we", "were", "what", "when",
	"where", "which", "while", "who", "whom", "why", "will", "with", "would", "year",
	"years", "you", "your", "told", "according", "report", "reported", "news",
	// French
	"au", "aux", "avec", "ce", "ces", "cette", "dans", "de", "des", "du", "elle", "elles",
	"en", "est", "et", "été", "être", "il", "ils", "je", "la", "le", "les", "leur", "leurs",
	"lui", "mais", "même", "ne", "nous", "on", "ont", "ou", "où", "par", "pas", "plus",
	"pour", "qu", "que", "qui", "sa", "sans", "se", "selon", "ses", "son", "sont", "sur",
	"un", "une", "vous", "y", "à", "après", "avant", "aussi", "comme", "contre",
	"depuis", "entre", "fait", "lors", "était", "sera", "ainsi", "dont", "tout",
	"tous", "très", "deux", "année", "ans",
)

// French elisions stripped from the front of a token, so "l'armée" counts
// as "armée"
var elisions = []string{"l'", "d'", "j'", "qu'", "n'", "s'", "c'", "m'", "t'", "jusqu'", "lorsqu'"}

func toSet(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

// Tokenize lowercases text, drops punctuation except hyphens and
// apostrophes, and splits on whitespace. Stop words and numeric tokens
// such as "12" or "2024-05" are removed.
func Tokenize(text string) []string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		switch {
		case r == '’' || r == '‘':
			b.WriteRune('\'')
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '\'':
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}

	var out []string
	for _, tok := range strings.Fields(b.String()) {
		for _, e := range elisions {
			if strings.HasPrefix(tok, e) && len(tok) > len(e) {
				tok = tok[len(e):]
				break
			}
		}
		tok = strings.Trim(tok, "-'")
		if tok == "" || stopWords[tok] || isNumeric(tok) {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// isNumeric reports whether s is digits joined by hyphens or apostrophes.
// Those are the only other runes a token can hold.
func isNumeric(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

type keywordCount struct {
	word  string
	count int
	first int
}

func rankKeywords(text string) []keywordCount {
	counts := make(map[string]*keywordCount)
	var order []*keywordCount
	for i, tok := range Tokenize(text) {
		if kc, ok := counts[tok]; ok {
			kc.count++
			continue
		}
		kc := &keywordCount{word: tok, count: 1, first: i}
		counts[tok] = kc
		order = append(order, kc)
	}

	sort.SliceStable(order, func(i, j int) bool {
		if order[i].count != order[j].count {
			return order[i].count > order[j].count
		}
		return order[i].first < order[j].first
	})
	if len(order) > maxKeywords {
		order = order[:maxKeywords]
	}

	out := make([]keywordCount, len(order))
	for i, kc := range order {
		out[i] = *kc
	}
	return out
}

// Keywords returns up to 30 distinct keywords, most frequent first, ties
// in order of first appearance
func Keywords(text string) []string {
	ranked := rankKeywords(text)
	out := make([]string, len(ranked))
	for i, kc := range ranked {
		out[i] = kc.word
	}
	return out
}

// WeightedKeywords is Keywords with each word repeated by its frequency,
// capped at 3. This is the form stored on a record.
func WeightedKeywords(text string) []string {
	var out []string
	for _, kc := range rankKeywords(text) {
		for i := 0; i < min(kc.count, maxKeywordRepet); i++ {
			out = append(out, kc.word)
		}
	}
	return out
}
