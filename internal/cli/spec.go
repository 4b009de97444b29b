package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ppiankov/geolens/internal/pipeline"
)

var specOut string

var specCmd = &cobra.Command{
	Use:   "spec",
	Short: "Export and check map specifications",
}

var specExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Analyze an article and write its map specification",
	Long: `Export analyzes an article (a file, "-" for stdin, or --url) and writes the
map specification a renderer can apply.

Example:
  geolens spec export article.txt -o map.json
  geolens spec export --url https://news.example.org/story`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
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
		if verbose {
			printTargets(set)
		}

		data, err := components.Orchestrator.ExportSpec()
		if err != nil {
			return err
		}
		if specOut == "" {
			fmt.Println(string(data))
			return nil
		}
		if err := writeFile(specOut, data); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "✓ Map specification written to %s\n", specOut)
		return nil
	},
}

var specImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Check a map specification file",
	Long:  `Import loads a map specification and reports whether it is well formed.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(filepath.Clean(args[0]))
		if err != nil {
			return fmt.Errorf("read spec: %w", err)
		}

		o := pipeline.New(nil, nil)
		if err := o.ImportSpec(data); err != nil {
			return err
		}
		spec, err := o.Spec()
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "✓ %s: version %d, %d regions, %d markers\n", args[0], spec.Version, len(spec.Regions), len(spec.Markers))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(specCmd)
	specCmd.AddCommand(specExportCmd)
	specCmd.AddCommand(specImportCmd)

	specExportCmd.Flags().StringVarP(&specOut, "output", "o", "", "output path (default: stdout)")
	specExportCmd.Flags().StringVar(&analyzeURL, "url", "", "fetch the article from this URL")
}
