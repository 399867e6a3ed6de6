package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lakeproc/agent-gcp/domain/agent"
	"github.com/lakeproc/agent-gcp/domain/pack"
	"github.com/lakeproc/agent-gcp/domain/tool"
	"github.com/lakeproc/agent-gcp/gcloud"
)

// Config configures the catalog pack.
type Config struct {
	// Provider executes the search operations (required).
	Provider Provider

	// Timeout for provider calls.
	Timeout time.Duration
}

// Option configures the catalog pack.
type Option func(*Config)

// WithTimeout sets the provider call timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.Timeout = timeout
	}
}

// New creates the catalog pack.
func New(provider Provider, opts ...Option) (*pack.Pack, error) {
	if provider == nil {
		return nil, errors.New("catalog provider is required")
	}

	cfg := Config{
		Provider: provider,
		Timeout:  30 * time.Second,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return pack.NewBuilder("catalog").
		WithDescription(fmt.Sprintf("Dataplex catalog search (%s)", provider.Name())).
		WithVersion("1.0.0").
		AddTool(searchTool(&cfg)).
		AllowInState(agent.StateExplore, "catalog_search").
		AllowInState(agent.StateValidate, "catalog_search").
		AllowInState(agent.StateAct, "catalog_search").
		Build(), nil
}

// searchInput is the input for the catalog_search tool.
type searchInput struct {
	ProjectID string `json:"project_id"`
	Location  string `json:"location"`
	Query     string `json:"query"`
	PageSize  int    `json:"page_size,omitempty"`
}

// searchOutput is the output for the catalog_search tool.
type searchOutput struct {
	Query   string           `json:"query"`
	Entries []map[string]any `json:"entries"`
	Count   int              `json:"count"`
}

func searchTool(cfg *Config) tool.Tool {
	return tool.NewBuilder("catalog_search").
		WithDescription("Search Dataplex catalog entries within a project").
		ReadOnly().
		WithHandler(func(ctx context.Context, input json.RawMessage) (tool.Result, error) {
			var in searchInput
			if err := json.Unmarshal(input, &in); err != nil {
				return tool.Result{}, err
			}
			scope, err := gcloud.LocationPath(in.ProjectID, in.Location)
			if err != nil {
				return failed(err)
			}
			if in.Query == "" {
				return failed(gcloud.InvalidArgumentf("query is required"))
			}

			ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
			defer cancel()

			entries, err := cfg.Provider.SearchEntries(ctx, scope, in.Query, in.PageSize)
			if err != nil {
				return failed(err)
			}
			return outcomeResult(gcloud.Complete(searchOutput{
				Query:   in.Query,
				Entries: entries,
				Count:   len(entries),
			}))
		}).
		MustBuild()
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
