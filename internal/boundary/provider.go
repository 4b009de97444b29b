// Package boundary tracks which administrative codes the loaded boundary
// dataset can render.
package boundary

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ppiankov/geolens/internal/synonym"
	"github.com/ppiankov/geolens/internal/validate"
)

// Provider is the boundary dataset currently loaded by the renderer
type Provider interface {
	Has(code string) bool
	Codes() []string
}

// NopProvider has no dataset loaded
type NopProvider struct{}

func (NopProvider) Has(string) bool { return false }
func (NopProvider) Codes() []string { return nil }

// StaticProvider serves a fixed code list
type StaticProvider struct {
	codes map[string]bool
}

// NewStaticProvider creates a provider over codes
func NewStaticProvider(codes []string) *StaticProvider {
	p := &StaticProvider{codes: make(map[string]bool, len(codes))}
	for _, c := range codes {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c != "" {
			p.codes[c] = true
		}
	}
	return p
}

// DefaultProvider covers every country in the built-in name table
func DefaultProvider() *StaticProvider {
	return NewStaticProvider(synonym.KnownCodes())
}

func (p *StaticProvider) Has(code string) bool {
	return p.codes[strings.ToUpper(code)]
}

func (p *StaticProvider) Codes() []string {
	out := make([]string, 0, len(p.codes))
	for c := range p.codes {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// codeProperties are the feature properties that carry the country code,
// in the order GADM, Natural Earth admin-0 and its fallback use them.
var codeProperties = []string{"GID_0", "ISO_A3", "ADM0_A3"}

// LoadGeoJSON reads a FeatureCollection and returns a provider over the
// country codes its features declare.
func LoadGeoJSON(path string, v *validate.Validator) (*StaticProvider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read boundary file: %w", err)
	}
	return ParseGeoJSON(data, v)
}

// ParseGeoJSON is LoadGeoJSON for in-memory data
func ParseGeoJSON(data []byte, v *validate.Validator) (*StaticProvider, error) {
	if v == nil {
		v = validate.New()
	}
	res := v.CheckGeoJSON(data)
	if !res.Valid {
		return nil, fmt.Errorf("invalid boundary file: %s", res.Error)
	}
	if typ, _ := res.Value["type"].(string); typ != "FeatureCollection" {
		return nil, fmt.Errorf("boundary file must be a FeatureCollection, got %s", typ)
	}

	features, _ := res.Value["features"].([]any)
	var codes []string
	for _, f := range features {
		feature, ok := f.(map[string]any)
		if !ok {
			continue
		}
		props, _ := feature["properties"].(map[string]any)
		if code := featureCode(props); code != "" {
			codes = append(codes, code)
		}
	}
	if len(codes) == 0 {
		return nil, fmt.Errorf("boundary file has no features with %s", strings.Join(codeProperties, "/"))
	}
	return NewStaticProvider(codes), nil
}

func featureCode(props map[string]any) string {
	for _, key := range codeProperties {
		if s, ok := props[key].(string); ok {
			s = strings.TrimSpace(s)
			// Natural Earth marks missing codes as -99
			if s != "" && s != "-99" {
				return s
			}
		}
	}
	return ""
}
