package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/codeflow/internal/server"
	"github.com/matzehuels/codeflow/pkg/observability"
)

// serveCommand creates the serve command, which runs the HTTP API until
// interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the flowchart HTTP API",
		Example: `  codeflow serve --addr :9000
  curl --data-binary @script.py 'localhost:9000/v1/flowcharts?format=svg'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = c.config().Addr
			}
			runner := c.newRunner(cmd.Context(), noCache)
			defer runner.Close()

			observability.NewLogHooks(c.Logger).Register()
			return server.New(runner, c.Logger).ListenAndServe(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: CODEFLOW_ADDR or :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}
