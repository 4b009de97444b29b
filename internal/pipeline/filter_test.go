package pipeline

import (
	"testing"

	"github.com/ppiankov/geolens/internal/model"
)

func resolvedRegion(id, code string, confidence float64, entities ...string) model.GeoTarget {
	t := target(id, model.KindRegion, id, confidence)
	t.Resolved = &model.Resolution{Validated: true, Entities: entities}
	if code != "" {
		t.Resolved.Code = model.StringPtr(code)
	}
	return t
}

func reviewRegion(id string, confidence float64) model.GeoTarget {
	t := target(id, model.KindRegion, id, confidence)
	t.Resolved = &model.Resolution{}
	t.Resolved.MarkReview("Could not auto-resolve")
	return t
}

func TestFilterByConfidence(t *testing.T) {
	in := []model.GeoTarget{
		resolvedRegion("high", "FRA", 0.9),
		resolvedRegion("edge", "DEU", 0.75),
		resolvedRegion("low", "ESP", 0.74),
		reviewRegion("review-high", 0.8),
		reviewRegion("review-low", 0.05),
	}
	if got := ids(FilterByConfidence(in, 0.75)); got != "high,edge,review-high" {
		t.Errorf("unexpected filter result %s", got)
	}
}

func TestFilterByConfidence_UnresolvedPlaceNeedsFloor(t *testing.T) {
	low := target("spr", model.KindPlace, "Springfield", 0.10)
	low.Resolved = &model.Resolution{}
	low.Resolved.MarkReview("Could not find coordinates")
	high := target("now", model.KindPlace, "Nowheresville", 0.9)
	high.Resolved = &model.Resolution{}
	high.Resolved.MarkReview("Could not find coordinates")

	if got := ids(FilterByConfidence([]model.GeoTarget{low, high}, 0.75)); got != "now" {
		t.Errorf("expected only the confident unresolved place kept, got %s", got)
	}
}

func TestFilterByConfidence_ReviewWithCodeNeedsFloor(t *testing.T) {
	t1 := resolvedRegion("unknown-code", "FRB", 0.5)
	t1.Resolved.MarkReview("code FRB is not in the loaded boundaries")
	if got := FilterByConfidence([]model.GeoTarget{t1}, 0.75); len(got) != 0 {
		t.Errorf("expected low-confidence target with a code dropped, got %s", ids(got))
	}
}

func TestDedupeByCode(t *testing.T) {
	tests := []struct {
		name string
		in   []model.GeoTarget
		want string
	}{
		{
			name: "higher confidence wins in first position",
			in: []model.GeoTarget{
				resolvedRegion("gbr-low", "GBR", 0.8),
				resolvedRegion("fra", "FRA", 0.9),
				resolvedRegion("gbr-high", "GBR", 0.95),
			},
			want: "gbr-high,fra",
		},
		{
			name: "equal confidence keeps the first",
			in: []model.GeoTarget{
				resolvedRegion("a", "USA", 0.9),
				resolvedRegion("b", "USA", 0.9),
			},
			want: "a",
		},
		{
			name: "short codes dropped",
			in: []model.GeoTarget{
				resolvedRegion("eu", "EU", 0.9),
				resolvedRegion("fra", "FRA", 0.9),
			},
			want: "fra",
		},
		{
			name: "uncoded review targets kept",
			in: []model.GeoTarget{
				reviewRegion("x", 0.9),
				reviewRegion("y", 0.9),
			},
			want: "x,y",
		},
		{
			name: "decompositions keyed by all codes",
			in: []model.GeoTarget{
				resolvedRegion("kashmir", "IND", 0.9, "IND", "PAK"),
				resolvedRegion("india", "IND", 0.8),
			},
			want: "kashmir,india",
		},
		{
			name: "places keyed by folded name",
			in: []model.GeoTarget{
				target("p1", model.KindPlace, "Zürich", 0.7),
				target("p2", model.KindPlace, "zurich", 0.9),
				target("p3", model.KindPlace, "Geneva", 0.8),
			},
			want: "p2,p3",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ids(DedupeByCode(tt.in)); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}
