package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/geolens/internal/model"
	"github.com/ppiankov/geolens/internal/pipeline"
)

var (
	analyzeURL     string
	analyzeOut     string
	analyzeSpec    string
	analyzeSelect  []string
	analyzeAccept  bool
	analyzeTimeout time.Duration
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Find the places one article is about",
	Long: `Analyze reads an article from a file, stdin ("-") or a URL and lists the
countries, regions and places it is about.

Example:
  geolens analyze article.txt
  geolens analyze --url https://news.example.org/story --json targets.json
  cat article.txt | geolens analyze - --spec map.json --accept`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeURL, "url", "", "fetch the article from this URL")
	analyzeCmd.Flags().StringVar(&analyzeOut, "json", "", "write the target set to this path (default: stdout)")
	analyzeCmd.Flags().StringVar(&analyzeSpec, "spec", "", "also write the map specification to this path")
	analyzeCmd.Flags().StringSliceVar(&analyzeSelect, "select", nil, "target ids to keep on the map")
	analyzeCmd.Flags().BoolVar(&analyzeAccept, "accept", false, "store the result as a reference for similar articles")
	analyzeCmd.Flags().DurationVar(&analyzeTimeout, "timeout", 2*time.Minute, "overall analysis timeout")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	_, logger, components, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signalContext()
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, analyzeTimeout)
	defer cancel()

	set, err := analyzeInput(ctx, components, args)
	if err != nil {
		return fmt.Errorf("%s (%w)", pipeline.UserMessage(err), err)
	}
	printTargets(set)

	o := components.Orchestrator
	if len(analyzeSelect) > 0 {
		if err := o.Select(analyzeSelect); err != nil {
			return err
		}
	}

	if err := writeJSON(analyzeOut, set); err != nil {
		return err
	}

	if analyzeSpec != "" {
		data, err := o.ExportSpec()
		if err != nil {
			return fmt.Errorf("export map spec: %w", err)
		}
		if err := writeFile(analyzeSpec, data); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "✓ Map specification written to %s\n", analyzeSpec)
	}

	if analyzeAccept {
		rec, err := o.Accept(nil, nil)
		if err != nil {
			return fmt.Errorf("accept: %w", err)
		}
		fmt.Fprintf(os.Stderr, "✓ Stored reference %s\n", rec.ID)
	}
	return nil
}

// analyzeInput runs the orchestrator on a file, stdin or --url
func analyzeInput(ctx context.Context, c *pipeline.Components, args []string) (*model.GeoTargetSet, error) {
	if analyzeURL != "" {
		if verbose {
			fmt.Fprintf(os.Stderr, "⚙️  Fetching %s...\n", analyzeURL)
		}
		return c.Orchestrator.ProcessURL(ctx, c.Fetcher, analyzeURL)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: pass a file, \"-\" for stdin, or --url", model.ErrSchemaInvalid)
	}

	text, err := readText(args[0])
	if err != nil {
		return nil, err
	}
	return c.Orchestrator.ProcessText(ctx, text, "")
}

func readText(path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(filepath.Clean(path))
	}
	if err != nil {
		return "", fmt.Errorf("read article: %w", err)
	}
	return string(data), nil
}

// writeJSON writes v to path, or to stdout when path is empty
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if path == "" {
		_, err := fmt.Println(string(data))
		return err
	}
	return writeFile(path, data)
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
