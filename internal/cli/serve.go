package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/anchorage/pkg/server"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr    string // listen address
	backend backendFlags
}

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: ":8080", backend: backendFlags{longRunning: true}}
	if addr := os.Getenv("ANCHORAGE_ADDR"); addr != "" {
		opts.addr = addr
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve placements over HTTP",
		Long: `Run the placement API.

  POST   /v1/resolve           resolve a scenario, storing it when "id" is set
  GET    /v1/placements/{id}   read the latest placement for an overlay
  DELETE /v1/placements/{id}   forget an overlay
  GET    /healthz              liveness

Placements are stored in memory with --no-cache, in Redis with --redis, in
a SQLite file with --sqlite and in the local cache directory otherwise. Concurrent writes to one id are
not merged: the last write wins.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.newStore(ctx, opts.backend)
			if err != nil {
				return err
			}
			defer st.Close()

			return server.New(st, loggerFromContext(ctx)).ListenAndServe(ctx, opts.addr)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	opts.backend.register(cmd)

	return cmd
}
