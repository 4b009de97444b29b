package model

import "time"

// MapSpecVersion is bumped whenever the exported layout changes
const MapSpecVersion = 1

// MapSpec is the exportable description of a finished map
type MapSpec struct {
	Version   int           `json:"version"`
	CreatedAt time.Time     `json:"created_at"`
	SourceURL string        `json:"source_url,omitempty"`
	Regions   []RegionStyle `json:"regions"`
	Markers   []Marker      `json:"markers"`
	Design    *DesignHints  `json:"design,omitempty"`
}

// RegionStyle colors one or more boundary units. Codes holds every code
// of a decomposed region so the renderer can paint all of them.
type RegionStyle struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Codes      []string `json:"codes"`
	AdminLevel int      `json:"admin_level"`
	Color      string   `json:"color"`
}

// Customization overrides presentation for a single target id
type Customization struct {
	Color string `json:"color,omitempty"`
	Name  string `json:"name,omitempty"`
}
