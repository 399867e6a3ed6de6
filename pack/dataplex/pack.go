package dataplex

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lakeproc/agent-gcp/domain/agent"
	"github.com/lakeproc/agent-gcp/domain/pack"
	"github.com/lakeproc/agent-gcp/domain/tool"
	"github.com/lakeproc/agent-gcp/gcloud"
)

// Config configures the dataplex pack.
type Config struct {
	// Provider executes the resource operations (required).
	Provider Provider

	// Timeout for provider calls.
	Timeout time.Duration
}

// Option configures the dataplex pack.
type Option func(*Config)

// WithTimeout sets the provider call timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.Timeout = timeout
	}
}

var readTools = []string{
	"dataplex_get_lake", "dataplex_list_lakes",
	"dataplex_get_zone", "dataplex_list_zones",
	"dataplex_get_asset", "dataplex_list_assets",
	"dataplex_get_task", "dataplex_list_tasks",
	"dataplex_get_job", "dataplex_list_jobs",
}

var writeTools = []string{
	"dataplex_create_lake", "dataplex_update_lake", "dataplex_delete_lake",
	"dataplex_create_zone", "dataplex_update_zone", "dataplex_delete_zone",
	"dataplex_create_asset", "dataplex_update_asset", "dataplex_delete_asset",
	"dataplex_create_task", "dataplex_update_task", "dataplex_delete_task",
	"dataplex_run_task", "dataplex_cancel_job",
}

// New creates the dataplex pack.
func New(provider Provider, opts ...Option) (*pack.Pack, error) {
	if provider == nil {
		return nil, errors.New("dataplex provider is required")
	}

	cfg := Config{
		Provider: provider,
		Timeout:  60 * time.Second,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	builder := pack.NewBuilder("dataplex").
		WithDescription(fmt.Sprintf("Dataplex lake management (%s)", provider.Name())).
		WithVersion("1.0.0").
		AddTools(
			createLakeTool(&cfg), updateLakeTool(&cfg), deleteLakeTool(&cfg),
			getLakeTool(&cfg), listLakesTool(&cfg),
			createZoneTool(&cfg), updateZoneTool(&cfg), deleteZoneTool(&cfg),
			getZoneTool(&cfg), listZonesTool(&cfg),
			createAssetTool(&cfg), updateAssetTool(&cfg), deleteAssetTool(&cfg),
			getAssetTool(&cfg), listAssetsTool(&cfg),
			createTaskTool(&cfg), updateTaskTool(&cfg), deleteTaskTool(&cfg),
			getTaskTool(&cfg), listTasksTool(&cfg),
			runTaskTool(&cfg), getJobTool(&cfg), listJobsTool(&cfg), cancelJobTool(&cfg),
		).
		AllowInState(agent.StateExplore, readTools...).
		AllowInState(agent.StateValidate, readTools...).
		AllowInState(agent.StateAct, append(append([]string{}, readTools...), writeTools...)...)

	return builder.Build(), nil
}

// outcomeResult marshals an outcome into a tool result.
func outcomeResult(o *gcloud.Outcome) (tool.Result, error) {
	data, err := json.Marshal(o)
	if err != nil {
		return tool.Result{}, err
	}
	return tool.Result{Output: data}, nil
}

// failed folds a provider or validation error into a failed outcome.
// Context cancellation propagates as an error.
func failed(err error) (tool.Result, error) {
	o, cerr := gcloud.FromError(err)
	if cerr != nil {
		return tool.Result{}, cerr
	}
	return outcomeResult(o)
}

// listing is the shared output shape for list tools.
type listing struct {
	Items []map[string]any `json:"items"`
	Count int              `json:"count"`
}
