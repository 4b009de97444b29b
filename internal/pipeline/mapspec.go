package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"github.com/ppiankov/geolens/internal/model"
	"github.com/ppiankov/geolens/internal/resolve"
)

// DefaultPalette colors regions in order when no customization is given
var DefaultPalette = []string{
	"#e6194b", "#3cb44b", "#4363d8", "#f58231", "#911eb4",
	"#42d4f4", "#f032e6", "#bfef45", "#469990", "#9a6324",
}

// DefaultMarkerColor is used for markers without a color
const DefaultMarkerColor = "#d62728"

// ErrSourceNotLoaded means the renderer has no boundary layer to color
var ErrSourceNotLoaded = errors.New("boundary source not loaded")

// MapRenderer is everything the pipeline needs from a map front-end
type MapRenderer interface {
	ColorRegion(code, color string) error
	AddMarker(lon, lat float64, label, color string) error
	IsSourceLoaded() bool
}

// GenerateMapSpec builds the map for the given target ids. With no ids the
// reviewer's selection is used, and with no selection every target.
// Regions without a code and places without coordinates are left out.
func (o *Orchestrator) GenerateMapSpec(selectedIDs []string, customizations map[string]model.Customization) (*model.MapSpec, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.session == nil {
		return nil, model.ErrNoActiveSession
	}

	ids := selectedIDs
	if len(ids) == 0 {
		ids = o.session.SelectedIDs
	}
	selected := make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, ok := o.session.Find(id); !ok {
			return nil, fmt.Errorf("unknown target id %q", id)
		}
		selected[id] = true
	}

	palette := DefaultPalette
	if o.design != nil && len(o.design.Palette) > 0 {
		palette = o.design.Palette
	}

	spec := &model.MapSpec{
		Version:   model.MapSpecVersion,
		CreatedAt: o.now().UTC(),
		SourceURL: o.session.SourceURL,
		Design:    o.design,
	}

	for _, t := range o.session.Targets {
		if len(selected) > 0 && !selected[t.ID] {
			continue
		}
		custom := customizations[t.ID]
		name := t.Name
		if custom.Name != "" {
			name = custom.Name
		}

		switch t.Kind {
		case model.KindRegion:
			codes := regionCodes(t)
			if len(codes) == 0 {
				o.logger.Debug("skipping region without code", zap.String("name", t.Name))
				continue
			}
			color := custom.Color
			if color == "" {
				color = palette[len(spec.Regions)%len(palette)]
			}
			spec.Regions = append(spec.Regions, model.RegionStyle{
				ID:         t.ID,
				Name:       name,
				Codes:      codes,
				AdminLevel: t.Resolved.AdminLevel,
				Color:      color,
			})
		case model.KindPlace:
			if t.Resolved == nil || t.Resolved.Coordinates == nil {
				o.logger.Debug("skipping place without coordinates", zap.String("name", t.Name))
				continue
			}
			color := custom.Color
			if color == "" {
				color = DefaultMarkerColor
			}
			spec.Markers = append(spec.Markers, model.Marker{
				ID:    t.ID,
				Name:  name,
				Coord: *t.Resolved.Coordinates,
				Color: color,
			})
		}
	}
	for _, m := range o.markers {
		if c, ok := customizations[m.ID]; ok && c.Color != "" {
			m.Color = c.Color
		}
		spec.Markers = append(spec.Markers, m)
	}

	o.spec = spec
	return cloneSpec(spec), nil
}

// regionCodes returns every code a region paints: all units of a
// decomposition, otherwise the single code
func regionCodes(t model.GeoTarget) []string {
	if t.Resolved == nil {
		return nil
	}
	if t.Resolved.IsDecomposition() {
		return append([]string(nil), t.Resolved.Entities...)
	}
	if t.Resolved.Code != nil {
		return []string{*t.Resolved.Code}
	}
	return nil
}

// Spec returns the current map specification
func (o *Orchestrator) Spec() (*model.MapSpec, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.spec == nil {
		return nil, model.ErrNoActiveSession
	}
	return cloneSpec(o.spec), nil
}

// ExportSpec serializes the current map specification, generating it from
// the session first if needed
func (o *Orchestrator) ExportSpec() ([]byte, error) {
	o.mu.RLock()
	spec := o.spec
	o.mu.RUnlock()

	if spec == nil {
		var err error
		if spec, err = o.GenerateMapSpec(nil, nil); err != nil {
			return nil, err
		}
	}
	data, err := json.MarshalIndent(spec, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal map spec: %w", err)
	}
	return data, nil
}

// ImportSpec replaces the current map specification with data. The spec
// is checked before anything changes.
func (o *Orchestrator) ImportSpec(data []byte) error {
	var spec model.MapSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return fmt.Errorf("%w: map spec: %v", model.ErrSchemaInvalid, err)
	}
	if err := checkSpec(&spec); err != nil {
		return err
	}

	o.mu.Lock()
	o.spec = &spec
	o.mu.Unlock()
	return nil
}

func checkSpec(spec *model.MapSpec) error {
	var problems []error
	if spec.Version < 1 || spec.Version > model.MapSpecVersion {
		problems = append(problems, fmt.Errorf("unsupported version %d", spec.Version))
	}
	for i, r := range spec.Regions {
		if len(r.Codes) == 0 {
			problems = append(problems, fmt.Errorf("regions[%d]: no codes", i))
		}
	}
	for i, m := range spec.Markers {
		if err := resolve.CheckCoordinates(m.Coord[0], m.Coord[1]); err != nil {
			problems = append(problems, fmt.Errorf("markers[%d]: %w", i, err))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: map spec: %w", model.ErrSchemaInvalid, errors.Join(problems...))
	}
	return nil
}

// SpecEqual reports whether two specs describe the same map
func SpecEqual(a, b *model.MapSpec) bool {
	if a == nil || b == nil {
		return a == b
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return false
	}
	ac := *a
	ac.CreatedAt = b.CreatedAt
	return reflect.DeepEqual(&ac, b)
}

// ApplySpec paints spec onto r, or the current spec when spec is nil.
// Every region and marker is attempted; failures are joined.
func (o *Orchestrator) ApplySpec(ctx context.Context, r MapRenderer, spec *model.MapSpec) error {
	if spec == nil {
		current, err := o.Spec()
		if err != nil {
			return err
		}
		spec = current
	}
	if !r.IsSourceLoaded() {
		return ErrSourceNotLoaded
	}

	var errs []error
	for _, region := range spec.Regions {
		for _, code := range region.Codes {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := r.ColorRegion(code, region.Color); err != nil {
				errs = append(errs, fmt.Errorf("color %s: %w", code, err))
			}
		}
	}
	for _, m := range spec.Markers {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.AddMarker(m.Coord[0], m.Coord[1], m.Name, m.Color); err != nil {
			errs = append(errs, fmt.Errorf("marker %s: %w", m.Name, err))
		}
	}
	return errors.Join(errs...)
}

func cloneSpec(s *model.MapSpec) *model.MapSpec {
	c := *s
	if s.Regions != nil {
		c.Regions = make([]model.RegionStyle, len(s.Regions))
		for i, r := range s.Regions {
			r.Codes = append([]string(nil), r.Codes...)
			c.Regions[i] = r
		}
	}
	c.Markers = append([]model.Marker(nil), s.Markers...)
	return &c
}
