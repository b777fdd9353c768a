package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/railfill/internal/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		opts cacheOptions
		cfg  = server.DefaultConfig()
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve infill generation over HTTP.

  GET  /healthz       build information
  POST /v1/generate   run file as JSON, returns the generation result
  POST /v1/holes      frame and rods, returns holes and quality scores`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, opts)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := server.New(runner, loggerFromContext(ctx), cfg)
			printInfo("Serving on %s", StyleHighlight.Render(srv.Config().Addr))
			return srv.ListenAndServe(ctx)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	cmd.Flags().DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "maximum generation time per request")
	cmd.Flags().IntVar(&cfg.MaxConcurrent, "max-concurrent", cfg.MaxConcurrent, "maximum simultaneous generations")
	return cmd
}
