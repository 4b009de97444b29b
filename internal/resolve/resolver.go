// Package resolve maps candidate names to boundary codes and coordinates.
package resolve

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ppiankov/geolens/internal/boundary"
	"github.com/ppiankov/geolens/internal/cache"
	"github.com/ppiankov/geolens/internal/model"
	"github.com/ppiankov/geolens/internal/synonym"
	"github.com/ppiankov/geolens/internal/worker"
)

// Source names recorded on place resolutions
const (
	SourceLookup    = "lookup"
	SourceGazetteer = "gazetteer"
	SourceGeocoder  = "geocoder"
)

const memoTTL = 30 * time.Minute

// Observer receives one event per resolved target
type Observer interface {
	TargetResolved(kind, verdict string)
}

type nopObserver struct{}

func (nopObserver) TargetResolved(string, string) {}

type placeSource struct {
	name   string
	lookup CoordinateLookup
}

// Resolver turns candidates into codes and coordinates. Unresolvable
// candidates come back flagged for review, never as errors.
type Resolver struct {
	synonyms  *synonym.Table
	index     *boundary.Index
	lookup    CoordinateLookup
	gazetteer CoordinateLookup
	geocoder  CoordinateLookup
	workers   int
	memo      cache.Cache
	logger    *zap.Logger
	observer  Observer
}

// Option configures a Resolver
type Option func(*Resolver)

// WithSynonyms replaces the built-in synonym table
func WithSynonyms(t *synonym.Table) Option {
	return func(r *Resolver) {
		if t != nil {
			r.synonyms = t
		}
	}
}

// WithIndex sets the boundary codes regions are checked against
func WithIndex(ix *boundary.Index) Option {
	return func(r *Resolver) {
		if ix != nil {
			r.index = ix
		}
	}
}

// WithLookup injects the first coordinate source
func WithLookup(l CoordinateLookup) Option {
	return func(r *Resolver) {
		if l != nil {
			r.lookup = l
		}
	}
}

// WithGazetteer replaces the built-in city list
func WithGazetteer(g CoordinateLookup) Option {
	return func(r *Resolver) {
		if g != nil {
			r.gazetteer = g
		}
	}
}

// WithGeocoder enables an external geocoder as the last coordinate source
func WithGeocoder(g CoordinateLookup) Option {
	return func(r *Resolver) {
		if g != nil {
			r.geocoder = g
		}
	}
}

// WithWorkers bounds how many candidates resolve at once
func WithWorkers(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithMemo replaces the per-name memo. cache.NopCache disables it.
func WithMemo(c cache.Cache) Option {
	return func(r *Resolver) {
		if c != nil {
			r.memo = c
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

func WithObserver(o Observer) Option {
	return func(r *Resolver) {
		if o != nil {
			r.observer = o
		}
	}
}

// New creates a resolver with the built-in synonyms and gazetteer, no
// boundary data, no injected lookup and the geocoder switched off
func New(opts ...Option) *Resolver {
	r := &Resolver{
		synonyms:  synonym.Default(),
		index:     boundary.NewIndex(nil),
		lookup:    NopLookup{},
		gazetteer: DefaultGazetteer(),
		geocoder:  DisabledGeocoder{},
		workers:   8,
		memo:      cache.NewMemoryCache(memoTTL, 10*time.Minute),
		logger:    zap.NewNop(),
		observer:  nopObserver{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type resolveJob struct {
	r      *Resolver
	index  int
	target model.GeoTarget
}

type resolveResult struct {
	index  int
	target model.GeoTarget
	err    error
}

func (r *resolveResult) GetError() error {
	return r.err
}

func (j *resolveJob) Execute(ctx context.Context) worker.Result {
	t, err := j.r.ResolveOne(ctx, j.target)
	return &resolveResult{index: j.index, target: t, err: err}
}

// Resolve resolves every target concurrently and returns them in input
// order once all have settled. An error means a source crashed or ctx
// ended; the returned slice still holds every target.
func (r *Resolver) Resolve(ctx context.Context, targets []model.GeoTarget) ([]model.GeoTarget, error) {
	out := make([]model.GeoTarget, len(targets))
	copy(out, targets)
	if len(targets) == 0 {
		return out, nil
	}

	pool := worker.NewPool(r.workers, worker.WithQueueSize(len(targets)), worker.WithContext(ctx))
	pool.Start()
	for i, t := range targets {
		pool.Submit(&resolveJob{r: r, index: i, target: t})
	}
	results := pool.Wait()

	var errs []error
	done := 0
	for _, res := range results {
		switch v := res.(type) {
		case *resolveResult:
			if v.err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", targets[v.index].Name, v.err))
				continue
			}
			out[v.index] = v.target
			done++
		case *worker.PanicResult:
			r.logger.Error("resolver task panicked", zap.Any("value", v.Value), zap.ByteString("stack", v.Stack))
			errs = append(errs, v.GetError())
		}
	}
	if done+len(errs) < len(targets) {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
		} else {
			errs = append(errs, fmt.Errorf("%d of %d targets did not resolve", len(targets)-done, len(targets)))
		}
	}

	if len(errs) > 0 {
		return out, fmt.Errorf("resolve failed: %w", errors.Join(errs...))
	}
	return out, nil
}

// ResolveOne resolves a single target. The only errors are a cancelled
// ctx and failures to reach a coordinate source that ctx caused.
func (r *Resolver) ResolveOne(ctx context.Context, t model.GeoTarget) (model.GeoTarget, error) {
	key := cache.Key("resolve", string(t.Kind), t.Name, t.CountryHint, strconv.Itoa(t.AdminLevel))
	if raw, ok := r.memo.Get(key); ok {
		var res model.Resolution
		if err := json.Unmarshal(raw, &res); err == nil {
			t.Resolved = &res
			r.observer.TargetResolved(string(t.Kind), verdict(&res))
			return t, nil
		}
	}

	var res model.Resolution
	switch t.Kind {
	case model.KindRegion:
		res = r.resolveRegion(t)
	case model.KindPlace:
		var err error
		if res, err = r.resolvePlace(ctx, t); err != nil {
			return t, err
		}
	default:
		res.MarkReview(fmt.Sprintf("Unknown kind %q; mark it as a region or a place.", t.Kind))
	}

	t.Resolved = &res
	r.observer.TargetResolved(string(t.Kind), verdict(&res))
	if raw, err := json.Marshal(res); err == nil {
		if err := r.memo.Set(key, raw, 0); err != nil {
			r.logger.Debug("failed to memoize resolution", zap.Error(err))
		}
	}
	return t, nil
}

func verdict(res *model.Resolution) string {
	switch {
	case res.NeedsReview:
		return "review"
	case res.IsDecomposition():
		return "decomposed"
	case res.Validated:
		return "validated"
	default:
		return "unverified"
	}
}

func (r *Resolver) resolveRegion(t model.GeoTarget) model.Resolution {
	res := model.Resolution{AdminLevel: t.AdminLevel}

	codes := r.regionCodes(t.Name)
	if len(codes) == 0 {
		res.MarkReview(fmt.Sprintf("Could not auto-resolve %q to a boundary code; select the region on the map or add a synonym.", t.Name))
		return res
	}

	res.Code = model.StringPtr(codes[0])
	res.AdminLevel = adminLevelOf(codes[0])
	if len(codes) > 1 {
		res.Entities = append([]string(nil), codes...)
		res.NeedsDecomposition = true
	}

	if r.index.Len() == 0 {
		res.Suggestion = "No boundary data is loaded, so the code was not verified."
		return res
	}

	var problems, alternates []string
	bloc := false
	for _, code := range codes {
		v := r.index.Validate(code)
		if v.Valid {
			continue
		}
		problems = append(problems, v.Message)
		alternates = append(alternates, v.Suggestions...)
		if len(v.Members) > 0 {
			alternates = append(alternates, v.Members...)
			bloc = true
		}
	}

	if len(problems) == 0 {
		res.Validated = true
		if res.NeedsDecomposition {
			res.Suggestion = fmt.Sprintf("%s covers %d boundary units (%s); all of them are colored.", t.Name, len(codes), strings.Join(codes, ", "))
		}
		return res
	}

	if bloc && len(codes) == 1 {
		res.Code = nil
	}
	res.Alternates = alternates
	res.MarkReview(strings.Join(problems, "; "))
	return res
}

// regionCodes tries the synonym table, then the static country table, then
// the name itself as a code
func (r *Resolver) regionCodes(name string) []string {
	if entry, kind, ok := r.synonyms.Lookup(name); ok {
		r.logger.Debug("synonym match", zap.String("name", name), zap.Stringer("match", kind))
		return entry.Entities
	}
	if code, ok := synonym.CountryCode(name); ok {
		return []string{code}
	}
	trimmed := strings.TrimSpace(name)
	if trimmed != "" && trimmed == strings.ToUpper(trimmed) && r.index.Has(trimmed) {
		return []string{trimmed}
	}
	return nil
}

// adminLevelOf derives the level from a GADM-style code: "FRA" is 0,
// "FRA.11_1" is 1, "FRA.11.3_1" is 2
func adminLevelOf(code string) int {
	return min(strings.Count(code, "."), 2)
}

func (r *Resolver) resolvePlace(ctx context.Context, t model.GeoTarget) (model.Resolution, error) {
	var res model.Resolution
	var rejected []string

	sources := []placeSource{
		{SourceLookup, r.lookup},
		{SourceGazetteer, r.gazetteer},
		{SourceGeocoder, r.geocoder},
	}
	for _, src := range sources {
		loc, err := src.lookup.ResolveName(ctx, t.Name, t.CountryHint)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return res, ctxErr
			}
			r.logger.Warn("coordinate source failed",
				zap.String("source", src.name),
				zap.String("name", t.Name),
				zap.Error(err))
			continue
		}
		if loc == nil {
			continue
		}
		if err := CheckCoordinates(loc.Lon, loc.Lat); err != nil {
			rejected = append(rejected, fmt.Sprintf("%s returned %v", src.name, err))
			continue
		}

		res.Coordinates = &[2]float64{loc.Lon, loc.Lat}
		res.CountryCode = loc.CountryCode
		if res.CountryCode == "" {
			res.CountryCode = countryCodeOf(t.CountryHint)
		}
		res.Source = src.name
		res.Validated = true
		return res, nil
	}

	res.CountryCode = countryCodeOf(t.CountryHint)
	msg := fmt.Sprintf("Could not find coordinates for %q; place the marker manually.", t.Name)
	if len(rejected) > 0 {
		msg = fmt.Sprintf("Rejected coordinates for %q (%s); place the marker manually.", t.Name, strings.Join(rejected, "; "))
	}
	res.MarkReview(msg)
	return res, nil
}
