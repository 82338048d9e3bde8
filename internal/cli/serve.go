package cli

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/folio/pkg/api"
)

// serveCommand starts the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout, compose and gesture API over HTTP",
		Long: `Serve the layout, compose and gesture API over HTTP.

The listen address, timeouts, body limit and cache backend come from the
config file; --addr overrides the address. The server shuts down gracefully
on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("verbose") {
				if level, err := log.ParseLevel(cfg.Log.Level); err == nil {
					c.SetLogLevel(level)
				}
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			srv := api.New(runner,
				api.WithLogger(c.Logger),
				api.WithViewportOptions(cfg.Viewport.Options()),
				api.WithLassoThreshold(cfg.Selection.LassoThreshold),
				api.WithMaxBodyBytes(cfg.Server.MaxBodyBytes),
			)
			printInfo("Serving on %s", addr)
			printDetail("cache: %s", cfg.Cache.Backend)
			return srv.ListenAndServe(ctx, addr, cfg.Server.ReadTimeout, cfg.Server.WriteTimeout)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: config server.addr)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
