// Package pipeline sequences extraction, resolution and filtering for one
// analysis session and turns the result into a map specification.
package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/ppiankov/geolens/internal/model"
	"github.com/ppiankov/geolens/internal/reference"
	"github.com/ppiankov/geolens/internal/validate"
)

const (
	DefaultConfidenceFloor = 0.75
	DefaultReuseThreshold  = 0.7
)

// Extractor turns text into candidate targets
type Extractor interface {
	Extract(ctx context.Context, text, sourceURL string) (*model.GeoTargetSet, error)
}

// Resolver attaches codes and coordinates to candidates
type Resolver interface {
	Resolve(ctx context.Context, targets []model.GeoTarget) ([]model.GeoTarget, error)
}

// ReferenceStore finds and records past analyses
type ReferenceStore interface {
	FindSimilar(text string) (*reference.Match, bool)
	Save(text string, set *model.GeoTargetSet, markers []model.Marker, design *model.DesignHints) (*model.ReferenceRecord, error)
}

// Observer receives pipeline events
type Observer interface {
	ReferenceReused()
	CandidatesReady(n int)
}

type nopObserver struct{}

func (nopObserver) ReferenceReused()    {}
func (nopObserver) CandidatesReady(int) {}

// Orchestrator runs one analysis at a time and keeps the latest result as
// the active session
type Orchestrator struct {
	extractor       Extractor
	resolver        Resolver
	references      ReferenceStore
	validator       *validate.Validator
	confidenceFloor float64
	reuseThreshold  float64
	logger          *zap.Logger
	observer        Observer
	now             func() time.Time

	inFlight atomic.Pointer[string] // Fingerprint of the running text
	state    atomic.Int32

	mu      sync.RWMutex
	session *model.GeoTargetSet
	markers []model.Marker
	design  *model.DesignHints
	spec    *model.MapSpec
}

// Option configures an Orchestrator
type Option func(*Orchestrator)

// WithReferences enables reuse of past analyses and Accept
func WithReferences(s ReferenceStore) Option {
	return func(o *Orchestrator) {
		o.references = s
	}
}

func WithValidator(v *validate.Validator) Option {
	return func(o *Orchestrator) {
		if v != nil {
			o.validator = v
		}
	}
}

// WithConfidenceFloor sets the minimum confidence a resolved target needs
func WithConfidenceFloor(f float64) Option {
	return func(o *Orchestrator) {
		if f > 0 {
			o.confidenceFloor = f
		}
	}
}

// WithReuseThreshold sets the similarity above which a stored analysis
// replaces extraction
func WithReuseThreshold(f float64) Option {
	return func(o *Orchestrator) {
		if f > 0 {
			o.reuseThreshold = f
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(o *Orchestrator) {
		if l != nil {
			o.logger = l
		}
	}
}

func WithObserver(obs Observer) Option {
	return func(o *Orchestrator) {
		if obs != nil {
			o.observer = obs
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		if now != nil {
			o.now = now
		}
	}
}

// New creates an orchestrator. References are off unless WithReferences
// is given.
func New(extractor Extractor, resolver Resolver, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		extractor:       extractor,
		resolver:        resolver,
		validator:       validate.New(),
		confidenceFloor: DefaultConfidenceFloor,
		reuseThreshold:  DefaultReuseThreshold,
		logger:          zap.NewNop(),
		observer:        nopObserver{},
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// fork returns an orchestrator sharing o's collaborators with a fresh session
func (o *Orchestrator) fork() *Orchestrator {
	return &Orchestrator{
		extractor:       o.extractor,
		resolver:        o.resolver,
		references:      o.references,
		validator:       o.validator,
		confidenceFloor: o.confidenceFloor,
		reuseThreshold:  o.reuseThreshold,
		logger:          o.logger,
		observer:        o.observer,
		now:             o.now,
	}
}

// State returns the current pipeline state
func (o *Orchestrator) State() State {
	return State(o.state.Load())
}

func (o *Orchestrator) setState(s State) {
	o.state.Store(int32(s))
	o.logger.Debug("pipeline state", zap.Stringer("state", s))
}

// Fingerprint identifies a text in logs and duplicate-request errors
func Fingerprint(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:6])
}

// ProcessText analyzes text and makes the result the active session. A
// call made while another is running fails with model.ErrDuplicateRequest
// and may be retried once the first completes.
func (o *Orchestrator) ProcessText(ctx context.Context, text, sourceURL string) (*model.GeoTargetSet, error) {
	fp := Fingerprint(text)
	if !o.inFlight.CompareAndSwap(nil, &fp) {
		running := "unknown"
		if p := o.inFlight.Load(); p != nil {
			running = *p
		}
		return nil, fmt.Errorf("%w (in flight: %s)", model.ErrDuplicateRequest, running)
	}
	defer o.inFlight.Store(nil)

	start := o.now()
	set, err := o.run(ctx, text, sourceURL)
	if err != nil {
		o.setState(StateIdle)
		return nil, err
	}

	o.mu.Lock()
	o.session = set
	o.spec = nil
	o.mu.Unlock()

	o.setState(StateReady)
	o.observer.CandidatesReady(len(set.Targets))
	o.logger.Info("analysis ready",
		zap.String("fingerprint", fp),
		zap.Int("targets", len(set.Targets)),
		zap.Bool("reused", set.FromReference != ""),
		zap.Duration("elapsed", o.now().Sub(start)))
	return cloneSet(set), nil
}

func (o *Orchestrator) run(ctx context.Context, text, sourceURL string) (*model.GeoTargetSet, error) {
	var set *model.GeoTargetSet
	var markers []model.Marker
	var design *model.DesignHints

	if o.references != nil {
		o.setState(StateRetrieving)
		if match, ok := o.references.FindSimilar(text); ok && match.Score > o.reuseThreshold {
			o.setState(StateReuseCandidate)
			o.observer.ReferenceReused()
			o.logger.Info("reusing stored analysis",
				zap.String("record", match.Record.ID),
				zap.Float64("score", match.Score))
			set = setFromRecord(match.Record, text, sourceURL, o.now())
			markers = match.Record.Markers
			design = match.Record.Design
		}
	}

	if set == nil {
		o.setState(StateExtracting)
		extracted, err := o.extractor.Extract(ctx, text, sourceURL)
		if err != nil {
			return nil, fmt.Errorf("extract: %w", err)
		}
		set = extracted
	}

	o.setState(StateValidating)
	set.Targets = o.keepValid(set, "extracted")

	o.setState(StateResolving)
	resolved, err := o.resolver.Resolve(ctx, set.Targets)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("resolve: %w", ctxErr)
		}
		o.logger.Warn("resolution incomplete", zap.Error(err))
	}
	if len(resolved) != len(set.Targets) {
		resolved = append([]model.GeoTarget(nil), set.Targets...)
	}
	for i := range resolved {
		if resolved[i].Resolved == nil {
			res := &model.Resolution{}
			res.MarkReview("Resolution failed for this entity; place it manually.")
			resolved[i].Resolved = res
		}
	}
	set.Targets = resolved

	o.setState(StateValidating)
	set.Targets = o.keepValid(set, "resolved")

	o.setState(StateFiltering)
	set.Targets = FilterByConfidence(set.Targets, o.confidenceFloor)

	o.setState(StateDeduplicating)
	set.Targets = DedupeByCode(set.Targets)

	o.mu.Lock()
	o.markers = append([]model.Marker(nil), markers...)
	o.design = design
	o.mu.Unlock()
	return set, nil
}

// keepValid drops targets that fail structural checks. Failures are logged
// and counted, never fatal.
func (o *Orchestrator) keepValid(set *model.GeoTargetSet, stage string) []model.GeoTarget {
	result := o.validator.CheckGeoTargetSet(set)
	if result.Valid {
		return set.Targets
	}

	bad := result.ByIndex()
	o.logger.Warn("dropping invalid targets",
		zap.String("stage", stage),
		zap.Int("count", len(bad)),
		zap.Error(result.Err()))

	out := make([]model.GeoTarget, 0, len(set.Targets))
	for i, t := range set.Targets {
		if _, isBad := bad[i]; !isBad {
			out = append(out, t)
		}
	}
	return out
}

// setFromRecord rebuilds a target set from a stored analysis. Resolutions
// are cleared so the resolver runs again.
func setFromRecord(rec model.ReferenceRecord, text, sourceURL string, now time.Time) *model.GeoTargetSet {
	set := &model.GeoTargetSet{
		SourceText:    text,
		SourceURL:     sourceURL,
		CreatedAt:     now.UTC(),
		FromReference: rec.ID,
	}
	for _, group := range [][]model.GeoTarget{rec.Regions, rec.Places} {
		for _, t := range group {
			t.Resolved = nil
			set.Targets = append(set.Targets, t)
		}
	}
	return set
}

// Session returns a copy of the active session
func (o *Orchestrator) Session() (*model.GeoTargetSet, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.session == nil {
		return nil, model.ErrNoActiveSession
	}
	return cloneSet(o.session), nil
}

// Select records which targets the reviewer kept
func (o *Orchestrator) Select(ids []string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.session == nil {
		return model.ErrNoActiveSession
	}
	for _, id := range ids {
		if _, ok := o.session.Find(id); !ok {
			return fmt.Errorf("unknown target id %q", id)
		}
	}
	o.session.SelectedIDs = append([]string(nil), ids...)
	o.spec = nil
	return nil
}

// Accept stores the active session as a reference for future articles
func (o *Orchestrator) Accept(markers []model.Marker, design *model.DesignHints) (*model.ReferenceRecord, error) {
	if o.references == nil {
		return nil, errors.New("reference store is disabled")
	}

	o.mu.RLock()
	if o.session == nil {
		o.mu.RUnlock()
		return nil, model.ErrNoActiveSession
	}
	set := cloneSet(o.session)
	if markers == nil {
		markers = o.markers
	}
	if design == nil {
		design = o.design
	}
	o.mu.RUnlock()

	rec, err := o.references.Save(set.SourceText, set, markers, design)
	if err != nil {
		return nil, fmt.Errorf("save reference: %w", err)
	}
	o.logger.Info("analysis accepted", zap.String("record", rec.ID))
	return rec, nil
}

// Reset drops the active session
func (o *Orchestrator) Reset() {
	o.mu.Lock()
	o.session = nil
	o.markers = nil
	o.design = nil
	o.spec = nil
	o.mu.Unlock()
	o.setState(StateIdle)
}

func cloneSet(s *model.GeoTargetSet) *model.GeoTargetSet {
	if s == nil {
		return nil
	}
	c := *s
	c.Targets = make([]model.GeoTarget, len(s.Targets))
	for i, t := range s.Targets {
		if t.Resolved != nil {
			r := *t.Resolved
			t.Resolved = &r
		}
		c.Targets[i] = t
	}
	c.SelectedIDs = append([]string(nil), s.SelectedIDs...)
	return &c
}
