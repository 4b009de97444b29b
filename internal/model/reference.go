package model

import "time"

// ReferenceRecord is a persisted past analysis reused for similar articles
type ReferenceRecord struct {
	ID        string       `json:"id"`
	Text      string       `json:"text"`     // Truncated source text
	Keywords  []string     `json:"keywords"` // Repetition encodes weight
	Regions   []GeoTarget  `json:"regions"`
	Places    []GeoTarget  `json:"places"`
	Markers   []Marker     `json:"markers,omitempty"`
	Design    *DesignHints `json:"design,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

// Marker is a point the user placed on the map
type Marker struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Coord [2]float64 `json:"coordinates"` // [lon, lat]
	Color string     `json:"color,omitempty"`
}

// DesignHints are optional presentation choices remembered with a record
type DesignHints struct {
	Title   string   `json:"title,omitempty"`
	Palette []string `json:"palette,omitempty"`
}
