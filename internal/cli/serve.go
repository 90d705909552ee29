package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/timelane/pkg/observability"
	"github.com/matzehuels/timelane/pkg/server"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		noCache   bool
		noMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout API over HTTP",
		Long: `Run the HTTP API until interrupted.

POST an item document to /v1/layout to receive a layout document.
Prometheus metrics are served on /metrics unless --no-metrics is set.`,
		Example: `  timelane serve --addr :9090
  curl -s localhost:9090/v1/layout -d @items.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			runner, err := c.newRunner(ctx, cfg, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			scfg := server.Config{
				Addr:        cfg.Server.Addr,
				ReadTimeout: cfg.Server.ReadTimeout.Duration,
				Params:      cfg.Layout,
			}
			if !noMetrics {
				prom := observability.NewPrometheus(appName)
				observability.SetLayoutHooks(prom)
				observability.SetCacheHooks(prom)
				observability.SetHTTPHooks(prom)
				defer observability.Reset()
				scfg.Metrics = prom.Handler()
			}

			printInfo("Serving on %s", cfg.Server.Addr)
			return server.New(runner, c.Logger, scfg).ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the layout cache")
	cmd.Flags().BoolVar(&noMetrics, "no-metrics", false, "do not serve /metrics")
	return cmd
}
