package reference

import (
	"strings"
	"time"

	"github.com/ppiankov/geolens/internal/model"
	"github.com/ppiankov/geolens/internal/synonym"
)

const (
	entityWeight  = 0.65
	keywordWeight = 0.25
	recencyWeight = 0.10

	recencyWindow = 180 * 24 * time.Hour

	// RelevanceFloor is the score a record must exceed to count as a match
	RelevanceFloor = 0.3
)

// Entity match strengths, strongest first
const (
	scoreCode      = 1.0
	scoreFullName  = 0.8
	scorePartial   = 0.5
	scoreLooseWord = 0.3
)

// maxNGram is the longest word run checked against the synonym table
const (
	maxNGram     = 4
	maxScanWords = 1500
)

// query is the new text prepared once and scored against every record
type query struct {
	folded   string
	tokens   map[string]bool
	keywords []string
	codes    map[string]bool
}

func newQuery(text string, syn *synonym.Table) *query {
	q := &query{
		folded: " " + synonym.Fold(text) + " ",
		tokens: make(map[string]bool),
		codes:  make(map[string]bool),
	}
	for _, tok := range strings.Fields(q.folded) {
		q.tokens[tok] = true
	}
	q.keywords = Keywords(text)

	words := strings.Fields(q.folded)
	if len(words) > maxScanWords {
		words = words[:maxScanWords]
	}
	for i := range words {
		for n := 1; n <= maxNGram && i+n <= len(words); n++ {
			phrase := strings.Join(words[i:i+n], " ")
			if len(phrase) < 3 {
				// Skips "us" and similar two-letter words
				continue
			}
			if syn != nil {
				if entry, _, ok := syn.Lookup(phrase); ok {
					for _, c := range entry.Entities {
						q.codes[c] = true
					}
					continue
				}
			}
			if code, ok := synonym.CountryCode(phrase); ok {
				q.codes[code] = true
			}
		}
	}
	return q
}

// entityScore is the harmonic mean of two coverages: the best match
// strength of every stored entity, averaged, and the share of codes found
// in the new text that the record also carries. An article that names one
// stored country among many others scores low. Records without codes are
// scored on the first coverage alone.
func (q *query) entityScore(rec *model.ReferenceRecord) float64 {
	n := len(rec.Regions) + len(rec.Places)
	if n == 0 {
		return 0
	}

	total := 0.0
	stored := make(map[string]bool)
	for _, group := range [][]model.GeoTarget{rec.Regions, rec.Places} {
		for _, t := range group {
			total += q.matchEntity(t)
			for _, c := range entityCodes(t) {
				stored[c] = true
			}
		}
	}
	covered := total / float64(n)
	if covered == 0 || len(q.codes) == 0 || len(stored) == 0 {
		return covered
	}

	found := 0
	for c := range q.codes {
		if stored[c] {
			found++
		}
	}
	if found == 0 {
		return 0
	}
	share := float64(found) / float64(len(q.codes))
	return 2 * covered * share / (covered + share)
}

func (q *query) matchEntity(t model.GeoTarget) float64 {
	for _, c := range entityCodes(t) {
		if q.codes[c] {
			return scoreCode
		}
	}

	name := synonym.Fold(t.Name)
	if name == "" {
		return 0
	}
	if strings.Contains(q.folded, " "+name+" ") {
		return scoreFullName
	}

	parts := nameTokens(name)
	for _, p := range parts {
		if q.tokens[p] {
			return scorePartial
		}
	}
	for _, p := range parts {
		if len(p) < 4 {
			continue
		}
		for _, kw := range q.keywords {
			if looseMatch(p, synonym.Fold(kw)) {
				return scoreLooseWord
			}
		}
	}
	return 0
}

func entityCodes(t model.GeoTarget) []string {
	if t.Resolved == nil {
		return nil
	}
	if len(t.Resolved.Entities) > 0 {
		return t.Resolved.Entities
	}
	if t.Resolved.Code != nil {
		return []string{*t.Resolved.Code}
	}
	return nil
}

// nameTokens drops short words and stop words from a folded name
func nameTokens(folded string) []string {
	var out []string
	for _, w := range strings.Fields(folded) {
		if len(w) >= 3 && !stopWords[w] {
			out = append(out, w)
		}
	}
	return out
}

// looseMatch reports whether a and b share a stem: "ukraine" and
// "ukrainian" share "ukrai"
func looseMatch(a, b string) bool {
	if len(b) < 4 {
		return false
	}
	n := min(5, len(a), len(b))
	return a[:n] == b[:n]
}

// keywordScore is the overlap of the distinct keyword sets divided by the
// smaller set
func keywordScore(a, b []string) float64 {
	sa, sb := toSet(a...), toSet(b...)
	if len(sa) == 0 || len(sb) == 0 {
		return 0
	}
	overlap := 0
	for w := range sa {
		if sb[w] {
			overlap++
		}
	}
	return float64(overlap) / float64(min(len(sa), len(sb)))
}

// recencyScore decays linearly from 1 to 0 over 180 days
func recencyScore(created, now time.Time) float64 {
	age := now.Sub(created)
	if age < 0 {
		return 1
	}
	return max(0, 1-float64(age)/float64(recencyWindow))
}

func (q *query) score(rec *model.ReferenceRecord, now time.Time) float64 {
	return entityWeight*q.entityScore(rec) +
		keywordWeight*keywordScore(q.keywords, rec.Keywords) +
		recencyWeight*recencyScore(rec.CreatedAt, now)
}
