package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ppiankov/geolens/internal/server"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analysis API over HTTP",
	Long: `Serve exposes analysis, selection, map specifications and references over
HTTP, with Prometheus metrics on /metrics.

Example:
  geolens serve --addr :8088`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, components, err := setup()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		addr := cfg.Server.Addr
		if serveAddr != "" {
			addr = serveAddr
		}

		ctx, stop := signalContext()
		defer stop()

		srv := server.New(components.Orchestrator,
			server.WithFetcher(components.Fetcher),
			server.WithMetrics(components.Metrics),
			server.WithLogger(logger.Named("server")),
		)
		logger.Info("starting geolens", zap.String("version", Version))
		return srv.ListenAndServe(ctx, addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default: server.addr from config)")
}
