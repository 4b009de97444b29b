package pipeline

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ppiankov/geolens/internal/boundary"
	"github.com/ppiankov/geolens/internal/model"
	"github.com/ppiankov/geolens/internal/reference"
	"github.com/ppiankov/geolens/internal/resolve"
	"github.com/ppiankov/geolens/internal/validate"
)

var fixedNow = time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

type stubExtractor struct {
	mu      sync.Mutex
	calls   int
	targets []model.GeoTarget
	err     error
	entered chan struct{}
	release chan struct{}
}

func (s *stubExtractor) Extract(_ context.Context, text, sourceURL string) (*model.GeoTargetSet, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	if s.entered != nil {
		s.entered <- struct{}{}
	}
	if s.release != nil {
		<-s.release
	}
	if s.err != nil {
		return nil, s.err
	}
	return &model.GeoTargetSet{
		SourceText: text,
		SourceURL:  sourceURL,
		CreatedAt:  fixedNow,
		Targets:    append([]model.GeoTarget(nil), s.targets...),
	}, nil
}

func (s *stubExtractor) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type recordingObserver struct {
	mu     sync.Mutex
	reused int
	ready  []int
}

func (r *recordingObserver) ReferenceReused() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reused++
}

func (r *recordingObserver) CandidatesReady(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ready = append(r.ready, n)
}

func target(id string, kind model.Kind, name string, confidence float64) model.GeoTarget {
	return model.GeoTarget{ID: id, Kind: kind, Name: name, Confidence: confidence, EvidenceStart: -1, EvidenceEnd: -1}
}

func newTestOrchestrator(ext Extractor, opts ...Option) *Orchestrator {
	resolver := resolve.New(resolve.WithIndex(boundary.NewIndex(boundary.DefaultProvider())))
	return New(ext, resolver, append([]Option{WithClock(fixedClock)}, opts...)...)
}

const summitText = "France hosted talks in Paris as officials from Britain and the United Kingdom delegation met. " +
	"Germany was mentioned in passing. Freedonia sent observers."

func summitExtractor() *stubExtractor {
	return &stubExtractor{targets: []model.GeoTarget{
		target("fra", model.KindRegion, "France", 0.9),
		target("gbr-1", model.KindRegion, "Britain", 0.8),
		target("fre", model.KindRegion, "Freedonia", 0.8),
		target("deu", model.KindRegion, "Germany", 0.6),
		target("gbr-2", model.KindRegion, "United Kingdom", 0.95),
		target("par", model.KindPlace, "Paris", 0.85),
	}}
}

func ids(targets []model.GeoTarget) string {
	var out []string
	for _, t := range targets {
		out = append(out, t.ID)
	}
	return strings.Join(out, ",")
}

func TestProcessText_FullPipeline(t *testing.T) {
	obs := &recordingObserver{}
	o := newTestOrchestrator(summitExtractor(), WithObserver(obs))

	set, err := o.ProcessText(context.Background(), summitText, "https://news.example.org/summit")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Germany is below the floor, Freedonia is kept for review, the two
	// GBR entries collapse into the more confident one
	if got := ids(set.Targets); got != "fra,gbr-2,fre,par" {
		t.Fatalf("unexpected targets %s", got)
	}
	if o.State() != StateReady {
		t.Errorf("expected ready state, got %s", o.State())
	}

	fre, _ := set.Find("fre")
	if !fre.NeedsReview() || fre.Code() != "" || fre.Resolved.Suggestion == "" {
		t.Errorf("expected Freedonia flagged with suggestion, got %+v", fre.Resolved)
	}
	par, _ := set.Find("par")
	if par.Resolved == nil || par.Resolved.Coordinates == nil {
		t.Errorf("expected Paris to have coordinates, got %+v", par.Resolved)
	}

	if res := validate.New().CheckGeoTargetSet(set); !res.Valid {
		t.Errorf("expected final set to pass checks: %v", res.Err())
	}
	if len(obs.ready) != 1 || obs.ready[0] != 4 {
		t.Errorf("expected one ready event with 4 targets, got %v", obs.ready)
	}
}

func TestProcessText_DropsInvalidCandidates(t *testing.T) {
	ext := &stubExtractor{targets: []model.GeoTarget{
		target("fra", model.KindRegion, "France", 0.9),
		target("", model.KindRegion, "Spain", 0.9),
		target("x", model.Kind("ocean"), "Atlantic", 0.9),
	}}
	set, err := newTestOrchestrator(ext).ProcessText(context.Background(), "France and Spain", "")
	if err != nil {
		t.Fatal(err)
	}
	if got := ids(set.Targets); got != "fra" {
		t.Errorf("expected only the valid target, got %s", got)
	}
}

func TestProcessText_ExtractionError(t *testing.T) {
	ext := &stubExtractor{err: model.ErrTimeout}
	o := newTestOrchestrator(ext)

	_, err := o.ProcessText(context.Background(), summitText, "")
	if !errors.Is(err, model.ErrTimeout) {
		t.Fatalf("expected timeout, got %v", err)
	}
	if o.State() != StateIdle {
		t.Errorf("expected idle after failure, got %s", o.State())
	}
	if _, err := o.Session(); !errors.Is(err, model.ErrNoActiveSession) {
		t.Errorf("expected no session, got %v", err)
	}
}

func TestProcessText_DuplicateRequest(t *testing.T) {
	ext := summitExtractor()
	ext.entered = make(chan struct{}, 4)
	ext.release = make(chan struct{})
	o := newTestOrchestrator(ext)

	done := make(chan error, 1)
	go func() {
		_, err := o.ProcessText(context.Background(), summitText, "")
		done <- err
	}()
	<-ext.entered

	_, err := o.ProcessText(context.Background(), "another article", "")
	if !errors.Is(err, model.ErrDuplicateRequest) {
		t.Fatalf("expected duplicate request, got %v", err)
	}
	if !strings.Contains(err.Error(), Fingerprint(summitText)) {
		t.Errorf("expected the in-flight fingerprint in %q", err)
	}

	close(ext.release)
	if err := <-done; err != nil {
		t.Fatalf("first call failed: %v", err)
	}

	// Once the first call finishes a retry goes through
	if _, err := o.ProcessText(context.Background(), "another article", ""); err != nil {
		t.Errorf("expected retry to succeed, got %v", err)
	}
}

func TestProcessText_ReusesReference(t *testing.T) {
	store := reference.NewMemoryStore(reference.WithClock(fixedClock))

	first := newTestOrchestrator(summitExtractor(), WithReferences(store))
	if _, err := first.ProcessText(context.Background(), summitText, ""); err != nil {
		t.Fatal(err)
	}
	marker := model.Marker{ID: "m1", Name: "Venue", Coord: [2]float64{2.29, 48.86}}
	rec, err := first.Accept([]model.Marker{marker}, &model.DesignHints{Title: "Summit"})
	if err != nil {
		t.Fatal(err)
	}

	ext := summitExtractor()
	obs := &recordingObserver{}
	second := newTestOrchestrator(ext, WithReferences(store), WithObserver(obs))
	set, err := second.ProcessText(context.Background(), summitText, "")
	if err != nil {
		t.Fatal(err)
	}

	if ext.Calls() != 0 {
		t.Errorf("expected extraction skipped, got %d calls", ext.Calls())
	}
	if set.FromReference != rec.ID || obs.reused != 1 {
		t.Errorf("expected reuse of %s, got %q (%d)", rec.ID, set.FromReference, obs.reused)
	}
	for _, tg := range set.Targets {
		if tg.Resolved == nil {
			t.Errorf("expected %s resolved again", tg.ID)
		}
	}

	spec, err := second.GenerateMapSpec(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if spec.Design == nil || spec.Design.Title != "Summit" {
		t.Errorf("expected stored design, got %+v", spec.Design)
	}
	found := false
	for _, m := range spec.Markers {
		found = found || m.ID == "m1"
	}
	if !found {
		t.Error("expected stored marker in the map spec")
	}
}

func TestProcessText_UnrelatedReferenceIgnored(t *testing.T) {
	store := reference.NewMemoryStore(reference.WithClock(fixedClock))
	if _, err := store.Save("A village bakery won a pastry award.", &model.GeoTargetSet{}, nil, nil); err != nil {
		t.Fatal(err)
	}

	ext := summitExtractor()
	if _, err := newTestOrchestrator(ext, WithReferences(store)).ProcessText(context.Background(), summitText, ""); err != nil {
		t.Fatal(err)
	}
	if ext.Calls() != 1 {
		t.Errorf("expected extraction, got %d calls", ext.Calls())
	}
}

type failingResolver struct{}

func (failingResolver) Resolve(_ context.Context, targets []model.GeoTarget) ([]model.GeoTarget, error) {
	out := append([]model.GeoTarget(nil), targets...)
	out[0].Resolved = &model.Resolution{Code: model.StringPtr("FRA"), Validated: true}
	return out, errors.New("resolve failed: lookup panicked")
}

func TestProcessText_ResolverFailureFlagsTargets(t *testing.T) {
	ext := &stubExtractor{targets: []model.GeoTarget{
		target("fra", model.KindRegion, "France", 0.9),
		target("par", model.KindPlace, "Paris", 0.9),
	}}
	o := New(ext, failingResolver{}, WithClock(fixedClock))

	set, err := o.ProcessText(context.Background(), "France and Paris", "")
	if err != nil {
		t.Fatalf("expected resolver failure to be absorbed, got %v", err)
	}
	par, ok := set.Find("par")
	if !ok || !par.NeedsReview() || par.Resolved.Suggestion == "" {
		t.Errorf("expected unresolved target flagged, got %+v", par)
	}
}

func TestSelect(t *testing.T) {
	o := newTestOrchestrator(summitExtractor())
	if err := o.Select([]string{"fra"}); !errors.Is(err, model.ErrNoActiveSession) {
		t.Fatalf("expected no session, got %v", err)
	}

	if _, err := o.ProcessText(context.Background(), summitText, ""); err != nil {
		t.Fatal(err)
	}
	if err := o.Select([]string{"nope"}); err == nil {
		t.Error("expected unknown id error")
	}
	if err := o.Select([]string{"par", "fra"}); err != nil {
		t.Fatal(err)
	}

	set, _ := o.Session()
	if strings.Join(set.SelectedIDs, ",") != "par,fra" {
		t.Errorf("unexpected selection %v", set.SelectedIDs)
	}
}

func TestAccept(t *testing.T) {
	o := newTestOrchestrator(summitExtractor())
	if _, err := o.Accept(nil, nil); err == nil {
		t.Error("expected error without a reference store")
	}

	store := reference.NewMemoryStore()
	o = newTestOrchestrator(summitExtractor(), WithReferences(store))
	if _, err := o.Accept(nil, nil); !errors.Is(err, model.ErrNoActiveSession) {
		t.Fatalf("expected no session, got %v", err)
	}

	if _, err := o.ProcessText(context.Background(), summitText, ""); err != nil {
		t.Fatal(err)
	}
	rec, err := o.Accept(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	// France, the merged GBR entry and the unresolved Freedonia
	if len(rec.Regions) != 3 || len(rec.Places) != 1 || store.Len() != 1 {
		t.Errorf("unexpected record %d regions %d places", len(rec.Regions), len(rec.Places))
	}
}

func TestReset(t *testing.T) {
	o := newTestOrchestrator(summitExtractor())
	if _, err := o.ProcessText(context.Background(), summitText, ""); err != nil {
		t.Fatal(err)
	}
	o.Reset()

	if o.State() != StateIdle {
		t.Errorf("expected idle, got %s", o.State())
	}
	if _, err := o.GenerateMapSpec(nil, nil); !errors.Is(err, model.ErrNoActiveSession) {
		t.Errorf("expected no session after reset, got %v", err)
	}
}

func TestState_String(t *testing.T) {
	if StateReuseCandidate.String() != "reuse_candidate" || State(99).String() != "unknown" {
		t.Error("unexpected state names")
	}
}
