package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lakeproc/agent-gcp/infrastructure/logging"
	"github.com/lakeproc/agent-gcp/infrastructure/mcp"
)

// serveOptions holds options for the serve command.
type serveOptions struct {
	configPath string
	memory     bool
	addr       string
}

// newServeCmd creates the serve command.
func (a *App) newServeCmd() *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tool packs over the Model Context Protocol",
		Long: `Serve the Dataplex, Dataproc and catalog tool packs over MCP.

By default the server speaks MCP over stdin/stdout, suitable for agent
clients that spawn the process. With --addr it serves HTTP with SSE.

Examples:
  # Serve over stdio with in-memory providers
  agent-gcp serve --memory

  # Serve over HTTP against real GCP services
  agent-gcp serve -c config.yaml --addr localhost:8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to configuration file")
	cmd.Flags().BoolVar(&opts.memory, "memory", false, "Use in-memory providers instead of GCP clients")
	cmd.Flags().StringVar(&opts.addr, "addr", "", "Serve MCP over HTTP on this address instead of stdio")

	return cmd
}

// serve runs the MCP server until the context is canceled.
func (a *App) serve(cmd *cobra.Command, opts *serveOptions) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	rt, err := buildRuntime(cmd.Context(), cfg, opts.memory)
	if err != nil {
		return err
	}
	defer rt.close()

	srv := mcp.NewAgentServer(mcp.AgentServerConfig{
		Name:         cfg.Server.Name,
		Version:      cfg.Server.Version,
		Registry:     rt.tools,
		Instructions: cfg.Server.Instructions,
	})

	if opts.addr != "" {
		logging.Info().
			Add(logging.Component("serve")).
			Add(logging.Str("addr", opts.addr)).
			Msg("serving MCP over HTTP")
		return srv.ServeHTTP(cmd.Context(), opts.addr)
	}

	logging.Info().
		Add(logging.Component("serve")).
		Msg("serving MCP over stdio")
	return srv.ServeStdio(cmd.Context())
}
