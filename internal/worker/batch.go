package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ppiankov/geolens/internal/model"
)

// Input is one article to analyze. When Text is empty the analyzer is
// expected to fetch SourceURL.
type Input struct {
	Text      string
	SourceURL string
}

// Analyzer turns one article into a target set
type Analyzer interface {
	Analyze(ctx context.Context, in Input) (*model.GeoTargetSet, error)
}

// AnalysisJob analyzes one input
type AnalysisJob struct {
	Index    int
	Input    Input
	Analyzer Analyzer
}

// Execute executes the analysis job
func (j *AnalysisJob) Execute(ctx context.Context) Result {
	set, err := j.Analyzer.Analyze(ctx, j.Input)
	return &AnalysisResult{
		Index: j.Index,
		Input: j.Input,
		Set:   set,
		Error: err,
	}
}

// AnalysisResult represents the result of an analysis job
type AnalysisResult struct {
	Index int
	Input Input
	Set   *model.GeoTargetSet
	Error error
}

// GetError returns the error from the analysis
func (r *AnalysisResult) GetError() error {
	return r.Error
}

// BatchProcessor analyzes many inputs concurrently
type BatchProcessor struct {
	analyzer    Analyzer
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(analyzer Analyzer, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		analyzer:    analyzer,
		concurrency: concurrency,
	}
}

// Process analyzes inputs and returns one result per input, in input order
func (b *BatchProcessor) Process(ctx context.Context, inputs []Input) []*AnalysisResult {
	if len(inputs) == 0 {
		return []*AnalysisResult{}
	}

	pool := NewPool(b.concurrency, WithQueueSize(len(inputs)), WithContext(ctx))
	pool.Start()

	for i, in := range inputs {
		pool.Submit(&AnalysisJob{Index: i, Input: in, Analyzer: b.analyzer})
	}

	results := pool.Wait()

	out := make([]*AnalysisResult, 0, len(inputs))
	done := make(map[int]bool, len(inputs))
	for _, r := range results {
		switch res := r.(type) {
		case *AnalysisResult:
			out = append(out, res)
			done[res.Index] = true
		case *PanicResult:
			// Index is lost with the panic; the gap is filled below
		}
	}
	// Inputs never run (cancelled) or lost to a panic still get a result
	for i, in := range inputs {
		if !done[i] {
			err := ctx.Err()
			if err == nil {
				err = fmt.Errorf("analysis did not complete")
			}
			out = append(out, &AnalysisResult{Index: i, Input: in, Error: err})
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// ProcessURLs analyzes each URL
func (b *BatchProcessor) ProcessURLs(ctx context.Context, urls []string) []*AnalysisResult {
	inputs := make([]Input, len(urls))
	for i, u := range urls {
		inputs[i] = Input{SourceURL: u}
	}
	return b.Process(ctx, inputs)
}

// ProcessFile reads URLs from a file and processes them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*AnalysisResult, error) {
	urls, err := ReadURLsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read URLs: %w", err)
	}

	return b.ProcessURLs(ctx, urls), nil
}

// ReadURLsFromFile reads URLs from a file (one per line)
func ReadURLsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var urls []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			urls = append(urls, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return urls, nil
}
