package pipeline

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ppiankov/geolens/internal/boundary"
	"github.com/ppiankov/geolens/internal/cache"
	"github.com/ppiankov/geolens/internal/extract"
	"github.com/ppiankov/geolens/internal/llm"
	"github.com/ppiankov/geolens/internal/metrics"
	"github.com/ppiankov/geolens/internal/model"
	"github.com/ppiankov/geolens/internal/reference"
	"github.com/ppiankov/geolens/internal/resolve"
	"github.com/ppiankov/geolens/internal/synonym"
	"github.com/ppiankov/geolens/internal/validate"
	"github.com/ppiankov/geolens/internal/worker"
)

// Components is a pipeline wired from configuration
type Components struct {
	Orchestrator *Orchestrator
	Fetcher      *Fetcher
	References   *reference.Store // nil when the reference store is disabled
	Metrics      *metrics.Metrics
}

// NewFromConfig builds every collaborator described by cfg
func NewFromConfig(cfg *model.Config, logger *zap.Logger, m *metrics.Metrics) (*Components, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if m == nil {
		m = metrics.New()
	}

	validator := validate.New(validate.WithObserver(m))

	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM, cfg.HTTP))
	if err != nil {
		return nil, fmt.Errorf("initialize LLM provider: %w", err)
	}
	guarded := llm.WithBreaker(provider, llm.DefaultBreakerConfig(), logger.Named("llm"))

	extractor := extract.New(guarded,
		extract.WithCache(cache.New(cfg.Cache)),
		extract.WithLimiter(worker.NewLimiter(cfg.LLM.RequestsPerSecond, 1)),
		extract.WithValidator(validator),
		extract.WithModel(cfg.LLM.Model),
		extract.WithMaxRetries(cfg.LLM.MaxRetries),
		extract.WithLogger(logger.Named("extract")),
		extract.WithObserver(m),
	)

	resolver, err := newResolver(cfg.Resolve, cfg.HTTP, validator, logger.Named("resolve"), m)
	if err != nil {
		return nil, err
	}

	opts := []Option{
		WithValidator(validator),
		WithConfidenceFloor(cfg.Pipeline.ConfidenceFloor),
		WithReuseThreshold(cfg.Pipeline.ReuseThreshold),
		WithLogger(logger.Named("pipeline")),
		WithObserver(m),
	}

	var store *reference.Store
	if cfg.Reference.Enabled {
		store, err = reference.Open(cfg.Reference.Path,
			reference.WithMaxRecords(cfg.Reference.MaxRecords),
			reference.WithLogger(logger.Named("reference")))
		if err != nil {
			return nil, fmt.Errorf("open reference store: %w", err)
		}
		opts = append(opts, WithReferences(store))
	}

	return &Components{
		Orchestrator: New(extractor, resolver, opts...),
		Fetcher: NewFetcher(cfg.HTTP.Timeout, cfg.HTTP.UserAgent, cfg.HTTP.MaxBodyBytes,
			cfg.HTTP.RespectRobots, cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, cfg.HTTP.NoProxy),
		References: store,
		Metrics:    m,
	}, nil
}

func newResolver(cfg model.ResolveConfig, httpCfg model.HTTPConfig, v *validate.Validator, logger *zap.Logger, m *metrics.Metrics) (*resolve.Resolver, error) {
	opts := []resolve.Option{
		resolve.WithWorkers(cfg.Workers),
		resolve.WithLogger(logger),
		resolve.WithObserver(m),
	}

	if cfg.SynonymFile != "" {
		table, err := synonym.LoadFile(cfg.SynonymFile)
		if err != nil {
			return nil, fmt.Errorf("load synonyms: %w", err)
		}
		opts = append(opts, resolve.WithSynonyms(table))
	}

	provider := boundary.DefaultProvider()
	if cfg.BoundaryFile != "" {
		loaded, err := boundary.LoadGeoJSON(cfg.BoundaryFile, v)
		if err != nil {
			return nil, fmt.Errorf("load boundaries: %w", err)
		}
		provider = loaded
	}
	opts = append(opts, resolve.WithIndex(boundary.NewIndex(provider)))

	if cfg.GazetteerFile != "" {
		g, err := resolve.LoadGazetteer(cfg.GazetteerFile)
		if err != nil {
			return nil, fmt.Errorf("load gazetteer: %w", err)
		}
		opts = append(opts, resolve.WithGazetteer(g))
	}

	if cfg.GeocoderEnabled {
		opts = append(opts, resolve.WithGeocoder(
			resolve.NewNominatimGeocoder(cfg.GeocoderURL, httpCfg.UserAgent, httpCfg.Timeout, nil)))
	}

	return resolve.New(opts...), nil
}
