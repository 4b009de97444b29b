package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/geolens/internal/pipeline"
	"github.com/ppiankov/geolens/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Analyze many article URLs from a file in parallel",
	Long: `Batch analyzes article URLs concurrently:
- Read URLs from input file (one per line, # comments allowed)
- Fetch and analyze each article in its own session
- Write one target set per article

Example:
  geolens batch urls.txt
  geolens batch urls.txt --concurrency 4 --output-dir ./targets`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./geolens-targets", "output directory for target sets")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
}

func runBatch(cmd *cobra.Command, args []string) error {
	urls, err := worker.ReadURLsFromFile(args[0])
	if err != nil {
		return fmt.Errorf("read urls: %w", err)
	}
	inputs := make([]worker.Input, 0, len(urls))
	for _, u := range urls {
		inputs = append(inputs, worker.Input{SourceURL: u})
	}

	opts := batchOptions{workers: concurrency, outputDir: outputDir, timeout: batchTimeout}
	printBatchHeader("Batch Processing", args[0], len(inputs), opts)
	return runInputs(inputs, opts)
}

type batchOptions struct {
	workers   int
	outputDir string
	timeout   time.Duration
}

func printBatchHeader(title, source string, n int, opts batchOptions) {
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  geolens %s\n", title)
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Source:       %s\n", source)
	fmt.Fprintf(os.Stderr, "  Articles:     %d\n", n)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", opts.workers)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", opts.outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", opts.timeout)
	fmt.Fprintf(os.Stderr, "\n")
}

// runInputs analyzes inputs with the batch processor and writes results
func runInputs(inputs []worker.Input, opts batchOptions) error {
	_, logger, components, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if err := os.MkdirAll(opts.outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	ctx, stop := signalContext()
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()

	processor := worker.NewBatchProcessor(pipeline.NewAnalyzer(components.Orchestrator, components.Fetcher), opts.workers)
	results := processor.Process(ctx, inputs)

	successCount := 0
	failureCount := 0

	for _, result := range results {
		label := result.Input.SourceURL
		if label == "" {
			label = fmt.Sprintf("input #%d", result.Index+1)
		}
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %s\n", label, pipeline.UserMessage(result.Error))
			continue
		}

		name := sanitizeFilename(label)
		if name == "" {
			name = fmt.Sprintf("article-%d", result.Index+1)
		}
		path := filepath.Join(opts.outputDir, fmt.Sprintf("%03d-%s.json", result.Index+1, name))
		if err := writeJSON(path, result.Set); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", label, err)
			continue
		}

		successCount++
		review := 0
		for _, t := range result.Set.Targets {
			if t.NeedsReview() {
				review++
			}
		}
		fmt.Fprintf(os.Stderr, "✓ %s (%d targets, %d to review)\n", label, len(result.Set.Targets), review)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d articles\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", opts.outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}

// sanitizeFilename turns a URL or title into a short file name
func sanitizeFilename(s string) string {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "https://"), "http://")
	s = strings.TrimSuffix(s, "/")

	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	s = strings.Trim(b.String(), "_.")

	if len(s) > 100 {
		s = s[:100]
	}
	return s
}
