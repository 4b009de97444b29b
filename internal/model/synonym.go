package model

// SynonymClass classifies a synonym entry
type SynonymClass string

const (
	ClassCountry SynonymClass = "country"
	ClassRegion  SynonymClass = "region"
)

// SynonymEntry is immutable reference data mapping a name to codes
type SynonymEntry struct {
	Canonical string       `json:"canonical" yaml:"canonical"`
	Entities  []string     `json:"entities" yaml:"entities"`
	Class     SynonymClass `json:"class" yaml:"class"`
	Aliases   []string     `json:"aliases,omitempty" yaml:"aliases,omitempty"`
}
