package extract

import (
	"regexp"
	"strings"

	"github.com/ppiankov/geolens/internal/synonym"
)

// Decision is the outcome of one noise rule
type Decision int

const (
	Undecided Decision = iota
	Keep
	Drop
)

func (d Decision) String() string {
	switch d {
	case Keep:
		return "keep"
	case Drop:
		return "drop"
	default:
		return "undecided"
	}
}

// Candidate is what the noise rules look at
type Candidate struct {
	Name       string
	Evidence   string
	Confidence float64
}

// NoiseRule decides whether a candidate is noise. Rules run in table order
// and the first Keep or Drop wins.
type NoiseRule struct {
	Name   string
	Decide func(c Candidate, ctx *NoiseContext) Decision
}

// minNoEvidenceConfidence is required of candidates that quote no evidence
const minNoEvidenceConfidence = 0.85

// placeSpan captures a run of capitalized words such as "Washington" or
// "Democratic Republic of the Congo". Keywords around it are matched
// case-insensitively, the span itself is not.
const placeSpan = `(\p{Lu}[\p{L}.'’-]*(?:\s+(?:(?:of|the|de|du|des|del|la|le)\s+)*\p{Lu}[\p{L}.'’-]*){0,5})`

const (
	hostedEvent   = `(?i:(?:[\p{L}-]+\s+){0,3}?(?:talks|negotiations?|signing|ceremony|summit|peace\s+conference|mediation)\b)`
	agreementNoun = `(?i:agreement|accord|deal|treaty|pact|ceasefire|truce|memorandum|protocol|declaration|communiqu[eé])`
	agreementVerb = `(?i:sign(?:s|ed|ing)?|reach(?:es|ed)?|conclude[sd]?|seal(?:s|ed)?|agree[sd]?|ink(?:s|ed)?|finali[sz]e[sd]?)`
)

var (
	// "A and B sign agreement". Each party is the capitalized run next to
	// "and", so a host named earlier in the clause is not a party.
	jointSignatory = regexp.MustCompile(placeSpan + `\s+(?i:and|with)\s+` + placeSpan + `\s+(?i:(?:have|has|had|will|to)\s+)?` +
		agreementVerb + `\b[^.;]{0,40}?\b` + agreementNoun)
	// "A signed a deal with B"
	withSignatory = regexp.MustCompile(placeSpan + `\s+(?i:(?:has|have|had)\s+)?` + agreementVerb + `\b[^.;]{0,40}?\b` + agreementNoun + `\s+(?i:with)\s+` + placeSpan)

	datelinePatterns = []*regexp.Regexp{
		// "Agency reported from Washington"
		regexp.MustCompile(`(?i:\b(?:agency|agence|reuters|afp|associated press|xinhua|tass|ria novosti|dpa|efe|kyodo|yonhap|anadolu|upi|bloomberg|correspondents?|reporters?|journalists?)\b[^.;]{0,80}?\breport(?:ed|s|ing)?\s+from)\s+` + placeSpan),
		regexp.MustCompile(`(?i:\b(?:reporting|reported|reports)\s+from)\s+` + placeSpan),
		// "WASHINGTON (Reuters) -" and "PARIS, May 3 (AFP) -"
		regexp.MustCompile(`(?m)^\s*([A-Z][A-Z .'-]{1,40}?)(?:,\s*[A-Z][a-z]+\.?\s+\d{1,2})?\s*\((?:Reuters|AP|AFP|Xinhua|TASS|dpa|EFE|Kyodo|Yonhap|UPI|Anadolu|Bloomberg)\)`),
		// "our correspondent in Moscow", "the agency's Beijing bureau"
		regexp.MustCompile(`(?i:\b(?:correspondent|bureau|reporter)\s+in)\s+` + placeSpan),
		regexp.MustCompile(placeSpan + `\s+(?i:bureau)\b`),
	}

	mediatorPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i:\b(?:mediated|brokered|hosted|witnessed|facilitated|overseen|sponsored|chaired)\s+by\s+(?:the\s+)?)` + placeSpan),
		regexp.MustCompile(`(?i:\b(?:in\s+the\s+presence\s+of|under\s+the\s+auspices\s+of|with\s+the\s+mediation\s+of|through\s+the\s+good\s+offices\s+of|mediation\s+(?:by|of|from))\s+(?:the\s+)?)` + placeSpan),
		regexp.MustCompile(placeSpan + `\s*,?\s*(?i:(?:which|who)\s+)?(?i:(?:has|had)\s+)?(?i:mediated|brokered|witnessed|facilitated)\b`),
		// hosting counts only for talks and signings, not for any event
		regexp.MustCompile(placeSpan + `\s*,?\s*(?i:(?:which|who)\s+)?(?i:(?:has|had|will|is)\s+)?(?i:host(?:ed|s|ing)?)\s+` + hostedEvent),
		regexp.MustCompile(placeSpan + `\s+(?i:(?:acted|acting|served|serving)\s+as\s+(?:a\s+|the\s+)?(?:mediator|broker|host|witness|facilitator))`),
	}

	genericNoisePatterns = []*regexp.Regexp{
		// quoted-source attribution
		regexp.MustCompile(`(?i:\b(?:according\s+to|citing|cited\s+by|quoted\s+by|as\s+reported\s+by|sources\s+in)\s+(?:the\s+)?)` + placeSpan),
		regexp.MustCompile(placeSpan + `(?:-|\s+)(?i:based)\b`),
		// background and comparison
		regexp.MustCompile(`(?i:\b(?:similar\s+to|compared\s+(?:with|to)|unlike|like\s+in|as\s+in|reminiscent\s+of|echoing|in\s+contrast\s+to|recalling)\s+(?:the\s+)?)` + placeSpan),
		regexp.MustCompile(`(?i:\b(?:last|previous|earlier)\s+(?:year|month|decade)\s+in)\s+` + placeSpan),
		// indirect citation
		regexp.MustCompile(`(?i:\b(?:reported|published|broadcast|wrote|said)\s+(?:by|in)\s+(?:the\s+)?)` + placeSpan + `\s+(?i:post|times|journal|herald|tribune|daily|newspaper|gazette|news)\b`),
	}
)

// NoiseContext carries facts shared by all candidates of one extraction
type NoiseContext struct {
	signatories []string // folded party spans from agreement sentences
}

// NewNoiseContext collects the agreement parties found in the source text
// and in every candidate's evidence
func NewNoiseContext(source string, candidates []Candidate) *NoiseContext {
	ctx := &NoiseContext{}
	ctx.addSignatories(source)
	for _, c := range candidates {
		ctx.addSignatories(c.Evidence)
	}
	return ctx
}

func (ctx *NoiseContext) addSignatories(text string) {
	for _, parties := range signatoryParties(text) {
		ctx.signatories = append(ctx.signatories, synonym.Fold(parties))
	}
}

// IsSignatory reports whether name was seen as a party to an agreement
func (ctx *NoiseContext) IsSignatory(name string) bool {
	if ctx == nil {
		return false
	}
	for _, span := range ctx.signatories {
		if containsName(span, name) {
			return true
		}
	}
	return false
}

// DefaultNoiseRules returns the rule table in evaluation order
func DefaultNoiseRules() []NoiseRule {
	return []NoiseRule{
		{Name: "signatory", Decide: decideSignatory},
		{Name: "dateline", Decide: decideDateline},
		{Name: "mediator", Decide: decideMediator},
		{Name: "generic-noise", Decide: decideGenericNoise},
	}
}

func decideSignatory(c Candidate, _ *NoiseContext) Decision {
	for _, parties := range signatoryParties(c.Evidence) {
		if containsName(synonym.Fold(parties), c.Name) {
			return Keep
		}
	}
	return Undecided
}

func decideDateline(c Candidate, _ *NoiseContext) Decision {
	if matchesNamed(datelinePatterns, c.Evidence, c.Name) {
		return Drop
	}
	return Undecided
}

func decideMediator(c Candidate, ctx *NoiseContext) Decision {
	if matchesNamed(mediatorPatterns, c.Evidence, c.Name) && !ctx.IsSignatory(c.Name) {
		return Drop
	}
	return Undecided
}

func decideGenericNoise(c Candidate, _ *NoiseContext) Decision {
	if matchesNamed(genericNoisePatterns, c.Evidence, c.Name) {
		return Drop
	}
	return Undecided
}

// FilterNoise applies rules to c. Candidates without evidence skip the
// rules and survive only with high confidence.
func FilterNoise(rules []NoiseRule, c Candidate, ctx *NoiseContext) (Decision, string) {
	if strings.TrimSpace(c.Evidence) == "" {
		if c.Confidence >= minNoEvidenceConfidence {
			return Keep, "no-evidence"
		}
		return Drop, "no-evidence"
	}
	for _, rule := range rules {
		if d := rule.Decide(c, ctx); d != Undecided {
			return d, rule.Name
		}
	}
	return Keep, "default"
}

// signatoryParties returns the party spans of every agreement clause in text
func signatoryParties(text string) []string {
	if text == "" {
		return nil
	}
	var out []string
	for _, re := range []*regexp.Regexp{jointSignatory, withSignatory} {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			out = append(out, m[1], m[2])
		}
	}
	return out
}

// matchesNamed reports whether any pattern matches text with name inside
// the captured entity span
func matchesNamed(patterns []*regexp.Regexp, text, name string) bool {
	for _, re := range patterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if len(m) > 1 && containsName(synonym.Fold(m[1]), name) {
				return true
			}
		}
	}
	return false
}

// containsName reports whether the folded span mentions name as whole words.
// A span that is itself a prefix of the name also counts, so "Washington"
// matches the candidate "Washington, D.C.".
func containsName(span, name string) bool {
	key := synonym.Fold(name)
	if key == "" || span == "" {
		return false
	}
	padded := " " + span + " "
	if strings.Contains(padded, " "+key+" ") {
		return true
	}
	return strings.HasPrefix(key+" ", span+" ")
}
