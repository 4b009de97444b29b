package model

import "time"

// Kind distinguishes areas that get colored from points that get a marker
type Kind string

const (
	KindRegion Kind = "region" // Country or administrative subdivision
	KindPlace  Kind = "place"  // City, landmark or other point location
)

// Valid reports whether k is one of the known kinds
func (k Kind) Valid() bool {
	return k == KindRegion || k == KindPlace
}

// Role is the semantic tag the extractor assigns to a candidate
type Role string

const (
	RoleEventLocation Role = "event_location"           // Where the event happened
	RoleParticipant   Role = "direct_participant"       // A party acting in the event
	RoleStakeholder   Role = "geopolitical_stakeholder" // Affected or commenting party
	RoleUnknown       Role = ""
)

// ParseRole maps a raw role string onto a known Role
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleEventLocation, RoleParticipant, RoleStakeholder:
		return Role(s)
	default:
		return RoleUnknown
	}
}

// GeoTarget is one candidate geographic entity extracted from a text
type GeoTarget struct {
	ID            string      `json:"id" validate:"required"`
	Kind          Kind        `json:"kind" validate:"required,oneof=region place"`
	Name          string      `json:"name" validate:"required"`
	Confidence    float64     `json:"confidence" validate:"gte=0,lte=1"`
	Role          Role        `json:"role,omitempty"`
	Evidence      string      `json:"evidence,omitempty"`
	EvidenceStart int         `json:"evidence_start"` // Byte offset in source text, -1 if not located
	EvidenceEnd   int         `json:"evidence_end"`   // Exclusive byte offset, -1 if not located
	CountryHint   string      `json:"country_hint,omitempty"`
	AdminLevel    int         `json:"admin_level,omitempty"` // Extractor's guess, refined by the resolver
	Resolved      *Resolution `json:"resolved,omitempty"`
}

// NeedsReview reports whether the resolver flagged the target for a human
func (t GeoTarget) NeedsReview() bool {
	return t.Resolved != nil && t.Resolved.NeedsReview
}

// Code returns the resolved standardized code or "" when unresolved
func (t GeoTarget) Code() string {
	if t.Resolved == nil || t.Resolved.Code == nil {
		return ""
	}
	return *t.Resolved.Code
}

// Resolution holds what the resolver learned about a target.
// Region fields and place fields share the validation verdict.
type Resolution struct {
	// Region
	AdminLevel         int      `json:"admin_level"`
	Code               *string  `json:"code"`
	Entities           []string `json:"entities,omitempty"`
	NeedsDecomposition bool     `json:"needs_decomposition,omitempty"`

	// Place
	Coordinates *[2]float64 `json:"coordinates,omitempty"` // [lon, lat]
	CountryCode string      `json:"country_code,omitempty"`
	Source      string      `json:"source,omitempty"` // Collaborator that produced the coordinates

	Validated   bool     `json:"validated"`
	NeedsReview bool     `json:"needs_review"`
	Suggestion  string   `json:"suggestion,omitempty"`
	Alternates  []string `json:"alternates,omitempty"` // Near-miss codes offered to the reviewer
}

// MarkReview flags the resolution for review. A review flag without a
// suggestion is never produced.
func (r *Resolution) MarkReview(suggestion string) {
	if suggestion == "" {
		suggestion = "Verify this entity manually."
	}
	r.NeedsReview = true
	r.Validated = false
	r.Suggestion = suggestion
}

// IsDecomposition reports whether the region stands for several units
func (r *Resolution) IsDecomposition() bool {
	return r != nil && len(r.Entities) > 1
}

// StringPtr returns a pointer to s
func StringPtr(s string) *string {
	return &s
}

// GeoTargetSet is the output of one extraction run
type GeoTargetSet struct {
	SourceText    string      `json:"source_text"`
	SourceURL     string      `json:"source_url,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	Targets       []GeoTarget `json:"targets" validate:"dive"`
	SelectedIDs   []string    `json:"selected_ids"`
	FromReference string      `json:"from_reference,omitempty"` // Id of the reused reference record
}

// Regions returns the region targets in order
func (s *GeoTargetSet) Regions() []GeoTarget {
	return s.byKind(KindRegion)
}

// Places returns the place targets in order
func (s *GeoTargetSet) Places() []GeoTarget {
	return s.byKind(KindPlace)
}

func (s *GeoTargetSet) byKind(kind Kind) []GeoTarget {
	var out []GeoTarget
	for _, t := range s.Targets {
		if t.Kind == kind {
			out = append(out, t)
		}
	}
	return out
}

// Find returns the target with the given id
func (s *GeoTargetSet) Find(id string) (GeoTarget, bool) {
	for _, t := range s.Targets {
		if t.ID == id {
			return t, true
		}
	}
	return GeoTarget{}, false
}
