package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// callOptions holds options for the call command.
type callOptions struct {
	configPath string
	memory     bool
	input      string
	inputFile  string
}

// newCallCmd creates the call command.
func (a *App) newCallCmd() *cobra.Command {
	opts := &callOptions{}

	cmd := &cobra.Command{
		Use:   "call <tool>",
		Short: "Invoke a single tool",
		Long: `Invoke a single tool and print its JSON outcome.

The input payload is read from --input, --input-file, or stdin.

Examples:
  # Get a lake
  agent-gcp call dataplex_get_lake --input '{"project_id":"p","location":"us-central1","lake_id":"raw"}'

  # Submit a Dataproc job from a file
  agent-gcp call dataproc_submit_job --input-file job.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.callTool(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to configuration file")
	cmd.Flags().BoolVar(&opts.memory, "memory", false, "Use in-memory providers instead of GCP clients")
	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "JSON input payload")
	cmd.Flags().StringVarP(&opts.inputFile, "input-file", "f", "", "Path to a JSON input file")

	return cmd
}

// readInput resolves the tool input from the flags or stdin.
func (o *callOptions) readInput() (json.RawMessage, error) {
	switch {
	case o.input != "":
		return json.RawMessage(o.input), nil
	case o.inputFile != "":
		data, err := os.ReadFile(o.inputFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read input file: %w", err)
		}
		return data, nil
	default:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		if len(data) == 0 {
			data = []byte("{}")
		}
		return data, nil
	}
}

// callTool executes a single tool and prints the outcome.
func (a *App) callTool(cmd *cobra.Command, name string, opts *callOptions) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	input, err := opts.readInput()
	if err != nil {
		return err
	}
	if !json.Valid(input) {
		return fmt.Errorf("input is not valid JSON")
	}

	rt, err := buildRuntime(cmd.Context(), cfg, opts.memory)
	if err != nil {
		return err
	}
	defer rt.close()

	t, ok := rt.tools.Get(name)
	if !ok {
		return fmt.Errorf("unknown tool %q, run 'agent-gcp tools' to list tools", name)
	}

	result, err := t.Execute(cmd.Context(), input)
	if err != nil {
		return fmt.Errorf("tool %s failed: %w", name, err)
	}

	var pretty map[string]any
	if err := json.Unmarshal(result.Output, &pretty); err != nil {
		fmt.Fprintln(a.stdout, string(result.Output))
		return nil
	}
	out, err := json.MarshalIndent(pretty, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, string(out))
	return nil
}
