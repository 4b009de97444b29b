package validate

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/ppiankov/geolens/internal/model"
)

var (
	fenceLine      = regexp.MustCompile("(?m)^\\s*```[a-zA-Z]*\\s*$")
	trailingCommas = regexp.MustCompile(`,(\s*[}\]])`)
)

// RepairAndParseJSON parses text as JSON. Only when the first parse fails,
// it strips code fences, trims surrounding prose, removes trailing commas
// and converts single-quoted strings, then parses once more.
func (v *Validator) RepairAndParseJSON(text string) (any, error) {
	var value any
	if err := v.RepairAndDecode(text, &value); err != nil {
		return nil, err
	}
	return value, nil
}

// RepairAndDecode is RepairAndParseJSON decoding into dst
func (v *Validator) RepairAndDecode(text string, dst any) error {
	origErr := json.Unmarshal([]byte(text), dst)
	if origErr == nil {
		return nil
	}

	repaired := Repair(text)
	if repairErr := json.Unmarshal([]byte(repaired), dst); repairErr != nil {
		v.parseFailures.Add(1)
		v.observer.ParseFailure()
		return fmt.Errorf("%w: %v; after repair: %v", model.ErrMalformedResponse, origErr, repairErr)
	}

	v.repairs.Add(1)
	v.observer.Repair()
	return nil
}

// Repair applies the repair steps to text without parsing it
func Repair(text string) string {
	s := fenceLine.ReplaceAllString(text, "")
	s = trimToOutermost(s)
	s = trailingCommas.ReplaceAllString(s, "$1")
	s = normalizeQuotes(s)
	return strings.TrimSpace(s)
}

// trimToOutermost drops prose before the first '{' or '[' and after the
// last matching closer
func trimToOutermost(s string) string {
	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return s
	}
	closer := byte('}')
	if s[start] == '[' {
		closer = ']'
	}
	end := strings.LastIndexByte(s, closer)
	if end < start {
		return s[start:]
	}
	return s[start : end+1]
}

// normalizeQuotes rewrites single-quoted strings as double-quoted ones.
// Apostrophes inside double-quoted strings are left alone.
func normalizeQuotes(s string) string {
	if !strings.Contains(s, "'") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	inDouble, inSingle, escaped := false, false, false

	for _, r := range s {
		switch {
		case escaped:
			escaped = false
			if inSingle && r == '\'' {
				// \' inside a single-quoted string is a plain apostrophe
				b.WriteRune('\'')
				continue
			}
			b.WriteRune('\\')
			b.WriteRune(r)
		case r == '\\' && (inDouble || inSingle):
			escaped = true
		case inDouble:
			if r == '"' {
				inDouble = false
			}
			b.WriteRune(r)
		case inSingle:
			switch r {
			case '\'':
				inSingle = false
				b.WriteRune('"')
			case '"':
				b.WriteString(`\"`)
			default:
				b.WriteRune(r)
			}
		case r == '"':
			inDouble = true
			b.WriteRune(r)
		case r == '\'':
			inSingle = true
			b.WriteRune('"')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
