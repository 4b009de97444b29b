package pipeline

import (
	"strings"

	"github.com/ppiankov/geolens/internal/model"
	"github.com/ppiankov/geolens/internal/synonym"
)

const minCodeLength = 3

// FilterByConfidence keeps targets at or above floor. The floor applies to
// every target; a failed resolution neither lowers nor waives it.
func FilterByConfidence(targets []model.GeoTarget, floor float64) []model.GeoTarget {
	out := make([]model.GeoTarget, 0, len(targets))
	for _, t := range targets {
		if t.Confidence >= floor {
			out = append(out, t)
		}
	}
	return out
}

// DedupeByCode keeps one target per code, the one with the highest
// confidence, in the position the code first appeared. Codes shorter than
// three characters are dropped. Places, which carry no code, are keyed by
// name, and targets without a code or name key are kept as they are.
func DedupeByCode(targets []model.GeoTarget) []model.GeoTarget {
	out := make([]model.GeoTarget, 0, len(targets))
	pos := make(map[string]int, len(targets))

	for _, t := range targets {
		key, ok := dedupeKey(t)
		if !ok {
			continue
		}
		if key == "" {
			out = append(out, t)
			continue
		}
		if i, seen := pos[key]; seen {
			if t.Confidence > out[i].Confidence {
				out[i] = t
			}
			continue
		}
		pos[key] = len(out)
		out = append(out, t)
	}
	return out
}

// dedupeKey returns "" for targets that are never merged and false for
// targets that must be dropped
func dedupeKey(t model.GeoTarget) (string, bool) {
	if t.Kind == model.KindPlace {
		name := synonym.Fold(t.Name)
		if name == "" {
			return "", true
		}
		return "place:" + name, true
	}

	code := t.Code()
	if code == "" {
		return "", true
	}
	if len(code) < minCodeLength {
		return "", false
	}
	if t.Resolved.IsDecomposition() {
		return "region:" + strings.Join(t.Resolved.Entities, "+"), true
	}
	return "region:" + code, true
}
