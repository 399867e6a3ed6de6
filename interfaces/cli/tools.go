package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

// toolsOptions holds options for the tools command.
type toolsOptions struct {
	configPath string
	memory     bool
	verbose    bool
}

// newToolsCmd creates the tools command.
func (a *App) newToolsCmd() *cobra.Command {
	opts := &toolsOptions{}

	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List available tools",
		Long: `List all tools installed from the Dataplex, Dataproc and catalog packs.

Examples:
  # List tools using in-memory providers
  agent-gcp tools --memory

  # Verbose output with annotations
  agent-gcp tools --memory -v`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.listTools(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to configuration file")
	cmd.Flags().BoolVar(&opts.memory, "memory", false, "Use in-memory providers instead of GCP clients")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Show detailed information")

	return cmd
}

// listTools prints the installed tools grouped by pack.
func (a *App) listTools(cmd *cobra.Command, opts *toolsOptions) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	rt, err := buildRuntime(cmd.Context(), cfg, opts.memory)
	if err != nil {
		return err
	}
	defer rt.close()

	packs := rt.packs.List()
	sort.Slice(packs, func(i, j int) bool { return packs[i].Name < packs[j].Name })

	for _, p := range packs {
		fmt.Fprintf(a.stdout, "%s (%d tools)\n", p.Name, len(p.Tools))

		names := p.ToolNames()
		sort.Strings(names)
		for _, name := range names {
			t, ok := p.GetTool(name)
			if !ok {
				continue
			}
			fmt.Fprintf(a.stdout, "  %s\n", name)
			if opts.verbose {
				fmt.Fprintf(a.stdout, "    %s\n", t.Description())
				ann := t.Annotations()
				fmt.Fprintf(a.stdout, "    read_only=%t destructive=%t idempotent=%t risk=%s\n",
					ann.ReadOnly, ann.Destructive, ann.Idempotent, ann.RiskLevel)
			}
		}
		fmt.Fprintln(a.stdout)
	}

	return nil
}
