package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/geolens/internal/feed"
)

var (
	feedSince    time.Duration
	feedKeywords []string
	feedLimit    int
	feedWorkers  int
	feedOutput   string
	feedTimeout  time.Duration
)

// feedCmd represents the feed command
var feedCmd = &cobra.Command{
	Use:   "feed <feed-url>...",
	Short: "Analyze recent articles from RSS or Atom feeds",
	Long: `Feed reads one or more RSS or Atom feeds and analyzes their newest items.
Items with a full body are analyzed inline; the others are fetched.

Example:
  geolens feed https://news.example.org/world.rss --since 24h --limit 20
  geolens feed https://news.example.org/world.rss --keyword summit,border`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFeed,
}

func init() {
	rootCmd.AddCommand(feedCmd)

	feedCmd.Flags().DurationVar(&feedSince, "since", 0, "only items published within this window (0 keeps all)")
	feedCmd.Flags().StringSliceVar(&feedKeywords, "keyword", nil, "only items whose title contains one of these words")
	feedCmd.Flags().IntVar(&feedLimit, "limit", 25, "maximum number of items to analyze")
	feedCmd.Flags().IntVar(&feedWorkers, "concurrency", 4, "number of concurrent workers")
	feedCmd.Flags().StringVar(&feedOutput, "output-dir", "./geolens-targets", "output directory for target sets")
	feedCmd.Flags().DurationVar(&feedTimeout, "timeout", 10*time.Minute, "total timeout")
}

func runFeed(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.Timeout*time.Duration(len(args)))
	defer cancel()

	var since time.Time
	if feedSince > 0 {
		since = time.Now().Add(-feedSince)
	}

	reader := feed.NewReader(nil, cfg.HTTP.UserAgent)
	var items []feed.Item
	for _, u := range args {
		got, err := reader.Read(ctx, u)
		if err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", u, err)
			continue
		}
		items = append(items, feed.Filter(got, since, feedKeywords)...)
	}

	inputs := feed.Inputs(items, feedLimit)
	if len(inputs) == 0 {
		fmt.Fprintf(os.Stderr, "No matching feed items\n")
		return nil
	}

	opts := batchOptions{workers: feedWorkers, outputDir: feedOutput, timeout: feedTimeout}
	printBatchHeader("Feed Processing", fmt.Sprintf("%d feeds", len(args)), len(inputs), opts)
	return runInputs(inputs, opts)
}
