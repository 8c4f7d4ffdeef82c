package cli

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/matzehuels/vehiclelookup/internal/server"
	"github.com/matzehuels/vehiclelookup/pkg/observability"
	"github.com/matzehuels/vehiclelookup/pkg/observability/prommetrics"
)

// serveCommand creates the "serve" command running the JSON API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the lookups and saved selections as a JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := c.settings()
			if addr == "" {
				addr = cfg.Server.Addr
			}

			store, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			opts := server.Options{AllowedOrigins: cfg.Server.AllowedOrigins}
			if cfg.Server.Metrics {
				opts.Metrics = metricsHandler()
				defer observability.Reset()
			}

			c.Logger.Info("Using selection store", "backend", cfg.Store.Backend)
			srv := server.New(c.newLookup(), store, c.Logger, opts)
			return server.Run(ctx, addr, srv.Handler(), cfg.Server.ShutdownTimeout, c.Logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}

// metricsHandler registers Prometheus-backed observability hooks and returns
// the handler exposing them.
func metricsHandler() http.Handler {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	hooks := prommetrics.New(reg)
	observability.SetHTTPHooks(hooks)
	observability.SetLookupHooks(hooks)

	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}
