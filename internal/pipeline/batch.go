package pipeline

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ppiankov/geolens/internal/extract"
	"github.com/ppiankov/geolens/internal/model"
	"github.com/ppiankov/geolens/internal/worker"
)

// Analyzer adapts the orchestrator to worker.BatchProcessor. Each input
// runs in its own session, so inputs never collide on the in-flight guard.
type Analyzer struct {
	parent  *Orchestrator
	fetcher *Fetcher
}

// NewAnalyzer returns an analyzer that fetches URL-only inputs with fetcher
func NewAnalyzer(o *Orchestrator, fetcher *Fetcher) *Analyzer {
	return &Analyzer{parent: o, fetcher: fetcher}
}

// Analyze processes one input
func (a *Analyzer) Analyze(ctx context.Context, in worker.Input) (*model.GeoTargetSet, error) {
	text := in.Text
	sourceURL := in.SourceURL
	if text == "" {
		if a.fetcher == nil || sourceURL == "" {
			return nil, errors.New("input has neither text nor a fetchable URL")
		}
		result, err := a.fetcher.FetchWithRetry(ctx, sourceURL)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", sourceURL, err)
		}
		text = result.HTML
		sourceURL = result.FinalURL
	}
	return a.parent.fork().ProcessText(ctx, text, sourceURL)
}

// ProcessURL fetches rawURL and analyzes it in o's own session
func (o *Orchestrator) ProcessURL(ctx context.Context, fetcher *Fetcher, rawURL string) (*model.GeoTargetSet, error) {
	result, err := fetcher.FetchWithRetry(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	if !extract.LooksLikeHTML(result.HTML) {
		o.logger.Debug("fetched body is not HTML", zap.String("content_type", result.ContentType))
	}
	return o.ProcessText(ctx, result.HTML, result.FinalURL)
}
