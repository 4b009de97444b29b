package pipeline

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ppiankov/geolens/internal/model"
)

type fakeRenderer struct {
	loaded   bool
	failCode string
	colored  map[string]string
	markers  []string
}

func (r *fakeRenderer) ColorRegion(code, color string) error {
	if code == r.failCode {
		return errors.New("no such feature")
	}
	if r.colored == nil {
		r.colored = make(map[string]string)
	}
	r.colored[code] = color
	return nil
}

func (r *fakeRenderer) AddMarker(_, _ float64, label, _ string) error {
	r.markers = append(r.markers, label)
	return nil
}

func (r *fakeRenderer) IsSourceLoaded() bool { return r.loaded }

func mapExtractor() *stubExtractor {
	return &stubExtractor{targets: []model.GeoTarget{
		target("kas", model.KindRegion, "Kashmir", 0.9),
		target("fra", model.KindRegion, "France", 0.85),
		target("fre", model.KindRegion, "Freedonia", 0.8),
		target("par", model.KindPlace, "Paris", 0.8),
		target("now", model.KindPlace, "Nowheresville", 0.8),
	}}
}

func readyOrchestrator(t *testing.T) *Orchestrator {
	t.Helper()
	o := newTestOrchestrator(mapExtractor())
	if _, err := o.ProcessText(context.Background(), "Kashmir, France, Paris", "https://news.example.org/a"); err != nil {
		t.Fatal(err)
	}
	return o
}

func TestGenerateMapSpec_NoSession(t *testing.T) {
	o := newTestOrchestrator(mapExtractor())
	if _, err := o.GenerateMapSpec(nil, nil); !errors.Is(err, model.ErrNoActiveSession) {
		t.Errorf("expected no session, got %v", err)
	}
	if _, err := o.ExportSpec(); !errors.Is(err, model.ErrNoActiveSession) {
		t.Errorf("expected no session on export, got %v", err)
	}
}

func TestGenerateMapSpec(t *testing.T) {
	o := readyOrchestrator(t)

	spec, err := o.GenerateMapSpec(nil, map[string]model.Customization{
		"kas": {Color: "#000000", Name: "Kashmir valley"},
	})
	if err != nil {
		t.Fatal(err)
	}

	if spec.Version != model.MapSpecVersion || !spec.CreatedAt.Equal(fixedNow) || spec.SourceURL != "https://news.example.org/a" {
		t.Errorf("unexpected header %+v", spec)
	}
	// Freedonia has no code and Nowheresville no coordinates
	if len(spec.Regions) != 2 || len(spec.Markers) != 1 {
		t.Fatalf("expected 2 regions and 1 marker, got %d and %d", len(spec.Regions), len(spec.Markers))
	}

	kas := spec.Regions[0]
	if strings.Join(kas.Codes, ",") != "IND,PAK" || kas.Color != "#000000" || kas.Name != "Kashmir valley" {
		t.Errorf("expected decomposed custom region, got %+v", kas)
	}
	fra := spec.Regions[1]
	if strings.Join(fra.Codes, ",") != "FRA" || fra.Color != DefaultPalette[1] {
		t.Errorf("expected palette color for France, got %+v", fra)
	}
	if m := spec.Markers[0]; m.Name != "Paris" || m.Color != DefaultMarkerColor {
		t.Errorf("unexpected marker %+v", m)
	}
}

func TestGenerateMapSpec_Selection(t *testing.T) {
	o := readyOrchestrator(t)

	spec, err := o.GenerateMapSpec([]string{"fra"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(spec.Regions) != 1 || spec.Regions[0].ID != "fra" || len(spec.Markers) != 0 {
		t.Errorf("expected only France, got %+v", spec)
	}

	if err := o.Select([]string{"par"}); err != nil {
		t.Fatal(err)
	}
	spec, err = o.GenerateMapSpec(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(spec.Regions) != 0 || len(spec.Markers) != 1 {
		t.Errorf("expected the stored selection, got %+v", spec)
	}

	if _, err := o.GenerateMapSpec([]string{"missing"}, nil); err == nil {
		t.Error("expected unknown id error")
	}
}

func TestExportImport_RoundTrip(t *testing.T) {
	o := readyOrchestrator(t)
	spec, err := o.GenerateMapSpec(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	data, err := o.ExportSpec()
	if err != nil {
		t.Fatal(err)
	}

	other := newTestOrchestrator(mapExtractor())
	if err := other.ImportSpec(data); err != nil {
		t.Fatalf("import failed: %v", err)
	}
	imported, err := other.Spec()
	if err != nil {
		t.Fatal(err)
	}
	if !SpecEqual(spec, imported) {
		t.Errorf("round trip changed the spec:\n%+v\n%+v", spec, imported)
	}

	again, err := other.ExportSpec()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, again) {
		t.Errorf("re-export differs:\n%s\n%s", data, again)
	}
}

func TestImportSpec_Rejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{"version":`},
		{"no version", `{"regions":[],"markers":[]}`},
		{"future version", `{"version":99,"regions":[],"markers":[]}`},
		{"region without codes", `{"version":1,"regions":[{"id":"a","codes":[]}],"markers":[]}`},
		{"marker out of range", `{"version":1,"regions":[],"markers":[{"id":"m","name":"x","coordinates":[40,95]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newTestOrchestrator(mapExtractor())
			err := o.ImportSpec([]byte(tt.data))
			if !errors.Is(err, model.ErrSchemaInvalid) {
				t.Fatalf("expected schema error, got %v", err)
			}
			if _, err := o.Spec(); err == nil {
				t.Error("expected nothing imported")
			}
		})
	}
}

func TestApplySpec(t *testing.T) {
	o := readyOrchestrator(t)
	if _, err := o.GenerateMapSpec(nil, nil); err != nil {
		t.Fatal(err)
	}

	if err := o.ApplySpec(context.Background(), &fakeRenderer{}, nil); !errors.Is(err, ErrSourceNotLoaded) {
		t.Fatalf("expected source not loaded, got %v", err)
	}

	r := &fakeRenderer{loaded: true, failCode: "PAK"}
	err := o.ApplySpec(context.Background(), r, nil)
	if err == nil || !strings.Contains(err.Error(), "PAK") {
		t.Fatalf("expected PAK failure reported, got %v", err)
	}
	if r.colored["IND"] == "" || r.colored["FRA"] == "" {
		t.Errorf("expected other regions colored, got %v", r.colored)
	}
	if len(r.markers) != 1 || r.markers[0] != "Paris" {
		t.Errorf("expected Paris marker, got %v", r.markers)
	}
}

func TestApplySpec_NoSpec(t *testing.T) {
	o := newTestOrchestrator(mapExtractor())
	if err := o.ApplySpec(context.Background(), &fakeRenderer{loaded: true}, nil); !errors.Is(err, model.ErrNoActiveSession) {
		t.Errorf("expected no session, got %v", err)
	}
}
