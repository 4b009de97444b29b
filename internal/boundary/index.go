package boundary

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/ppiankov/geolens/internal/synonym"
)

const (
	maxSuggestions = 3
	maxDistance    = 2
)

// Verdict is the outcome of validating one code
type Verdict struct {
	Code        string   `json:"code"`
	Valid       bool     `json:"valid"`
	Suggestions []string `json:"suggestions,omitempty"`
	Members     []string `json:"members,omitempty"` // Set for supranational codes
	Message     string   `json:"message,omitempty"`
}

// Index is a lazily built set of codes read from a Provider
type Index struct {
	provider Provider

	once  sync.Once
	codes map[string]bool
	list  []string
}

// NewIndex creates an index over p. A nil provider means nothing is loaded.
func NewIndex(p Provider) *Index {
	if p == nil {
		p = NopProvider{}
	}
	return &Index{provider: p}
}

func (ix *Index) build() {
	ix.once.Do(func() {
		raw := ix.provider.Codes()
		ix.codes = make(map[string]bool, len(raw))
		for _, c := range raw {
			c = strings.ToUpper(strings.TrimSpace(c))
			if c != "" && !ix.codes[c] {
				ix.codes[c] = true
				ix.list = append(ix.list, c)
			}
		}
		sort.Strings(ix.list)
	})
}

// Len returns the number of indexed codes
func (ix *Index) Len() int {
	ix.build()
	return len(ix.list)
}

// Has reports whether code is renderable
func (ix *Index) Has(code string) bool {
	ix.build()
	code = strings.ToUpper(strings.TrimSpace(code))
	return ix.codes[code] || ix.provider.Has(code)
}

// Validate checks code against the index. Two-letter bloc codes are always
// rejected in favor of their member states.
func (ix *Index) Validate(code string) Verdict {
	code = strings.ToUpper(strings.TrimSpace(code))
	v := Verdict{Code: code}

	if len(code) == 2 {
		v.Members = synonym.Supranational[code]
		if len(v.Members) > 0 {
			v.Message = fmt.Sprintf("%s is a bloc, not a boundary; decompose into its %d member codes", code, len(v.Members))
		} else {
			v.Message = fmt.Sprintf("%s is a two-letter code; decompose into member country codes", code)
		}
		return v
	}

	if ix.Has(code) {
		v.Valid = true
		return v
	}

	v.Suggestions = ix.nearest(code)
	if len(v.Suggestions) > 0 {
		v.Message = fmt.Sprintf("code %s is not in the loaded boundaries; did you mean %s?", code, strings.Join(v.Suggestions, ", "))
	} else {
		v.Message = fmt.Sprintf("code %s is not in the loaded boundaries", code)
	}
	return v
}

func (ix *Index) nearest(code string) []string {
	ix.build()

	type candidate struct {
		code   string
		dist   int
		prefix int
	}
	var found []candidate
	for _, c := range ix.list {
		if d := editDistance(code, c); d <= maxDistance {
			found = append(found, candidate{c, d, sharedPrefix(code, c)})
		}
	}
	// Closest first; ties go to the longer shared prefix, then code order
	sort.SliceStable(found, func(i, j int) bool {
		if found[i].dist != found[j].dist {
			return found[i].dist < found[j].dist
		}
		return found[i].prefix > found[j].prefix
	})

	if len(found) > maxSuggestions {
		found = found[:maxSuggestions]
	}
	out := make([]string, len(found))
	for i, f := range found {
		out[i] = f.code
	}
	return out
}

func sharedPrefix(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}

// editDistance is the Levenshtein distance between a and b
func editDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
