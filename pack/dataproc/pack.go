package dataproc

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

// Config configures the dataproc pack.
type Config struct {
	// Provider executes the cluster and job operations (required).
	Provider Provider

	// Timeout for provider calls.
	Timeout time.Duration

	// JobIDPrefix is the default prefix for generated job ids.
	JobIDPrefix string
}

// Option configures the dataproc pack.
type Option func(*Config)

// WithTimeout sets the provider call timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.Timeout = timeout
	}
}

// WithJobIDPrefix sets the default prefix for generated job ids.
func WithJobIDPrefix(prefix string) Option {
	return func(c *Config) {
		c.JobIDPrefix = prefix
	}
}

var readTools = []string{
	"dataproc_get_cluster", "dataproc_list_clusters",
	"dataproc_get_job", "dataproc_list_jobs",
}

var writeTools = []string{
	"dataproc_create_cluster", "dataproc_update_cluster", "dataproc_delete_cluster",
	"dataproc_submit_job", "dataproc_cancel_job",
}

// New creates the dataproc pack.
func New(provider Provider, opts ...Option) (*pack.Pack, error) {
	if provider == nil {
		return nil, errors.New("dataproc provider is required")
	}

	cfg := Config{
		Provider:    provider,
		Timeout:     60 * time.Second,
		JobIDPrefix: "job",
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	builder := pack.NewBuilder("dataproc").
		WithDescription(fmt.Sprintf("Dataproc cluster and job management (%s)", provider.Name())).
		WithVersion("1.0.0").
		AddTools(
			createClusterTool(&cfg), updateClusterTool(&cfg), deleteClusterTool(&cfg),
			getClusterTool(&cfg), listClustersTool(&cfg),
			submitJobTool(&cfg), getJobTool(&cfg), listJobsTool(&cfg), cancelJobTool(&cfg),
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

// regionScope carries the project/region pair every tool input starts with.
type regionScope struct {
	ProjectID string `json:"project_id"`
	Region    string `json:"region"`
}

func (s *regionScope) validate() error {
	_, err := gcloud.RegionScope(s.ProjectID, s.Region)
	return err
}
