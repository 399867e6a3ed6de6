package dataplex

import (
	"context"
	"encoding/json"

	"github.com/lakeproc/agent-gcp/domain/tool"
	"github.com/lakeproc/agent-gcp/gcloud"
)

// lakeInput identifies a single lake.
type lakeInput struct {
	ProjectID string `json:"project_id"`
	Location  string `json:"location"`
	LakeID    string `json:"lake_id"`
}

func (in *lakeInput) path() (string, error) {
	return gcloud.LakePath(in.ProjectID, in.Location, in.LakeID)
}

// createLakeInput is the input for the dataplex_create_lake tool.
type createLakeInput struct {
	lakeInput
	Config map[string]any `json:"config"`
}

func createLakeTool(cfg *Config) tool.Tool {
	return tool.NewBuilder("dataplex_create_lake").
		WithDescription("Create a Dataplex lake").
		WithHandler(func(ctx context.Context, input json.RawMessage) (tool.Result, error) {
			var in createLakeInput
			if err := json.Unmarshal(input, &in); err != nil {
				return tool.Result{}, err
			}
			parent, err := gcloud.LocationPath(in.ProjectID, in.Location)
			if err != nil {
				return failed(err)
			}
			if in.LakeID == "" {
				return failed(gcloud.InvalidArgumentf("lake_id is required"))
			}

			ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
			defer cancel()

			op, err := cfg.Provider.CreateLake(ctx, parent, in.LakeID, gcloud.SanitizeConfig(in.Config))
			if err != nil {
				return failed(err)
			}
			return outcomeResult(gcloud.Pending(op))
		}).
		MustBuild()
}

// updateLakeInput is the input for the dataplex_update_lake tool.
type updateLakeInput struct {
	lakeInput
	UpdateMask []string       `json:"update_mask"`
	Config     map[string]any `json:"config"`
}

func updateLakeTool(cfg *Config) tool.Tool {
	return tool.NewBuilder("dataplex_update_lake").
		WithDescription("Update fields of a Dataplex lake").
		Idempotent().
		WithHandler(func(ctx context.Context, input json.RawMessage) (tool.Result, error) {
			var in updateLakeInput
			if err := json.Unmarshal(input, &in); err != nil {
				return tool.Result{}, err
			}
			name, err := in.path()
			if err != nil {
				return failed(err)
			}
			spec, err := gcloud.BuildUpdate(name, in.UpdateMask, in.Config)
			if err != nil {
				return failed(err)
			}

			ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
			defer cancel()

			op, err := cfg.Provider.UpdateLake(ctx, spec)
			if err != nil {
				return failed(err)
			}
			return outcomeResult(gcloud.Pending(op))
		}).
		MustBuild()
}

func deleteLakeTool(cfg *Config) tool.Tool {
	return tool.NewBuilder("dataplex_delete_lake").
		WithDescription("Delete a Dataplex lake").
		Destructive().
		WithHandler(func(ctx context.Context, input json.RawMessage) (tool.Result, error) {
			var in lakeInput
			if err := json.Unmarshal(input, &in); err != nil {
				return tool.Result{}, err
			}
			name, err := in.path()
			if err != nil {
				return failed(err)
			}

			ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
			defer cancel()

			op, err := cfg.Provider.DeleteLake(ctx, name)
			if err != nil {
				return failed(err)
			}
			return outcomeResult(gcloud.Pending(op))
		}).
		MustBuild()
}

func getLakeTool(cfg *Config) tool.Tool {
	return tool.NewBuilder("dataplex_get_lake").
		WithDescription("Fetch a Dataplex lake").
		ReadOnly().
		Cacheable().
		WithHandler(func(ctx context.Context, input json.RawMessage) (tool.Result, error) {
			var in lakeInput
			if err := json.Unmarshal(input, &in); err != nil {
				return tool.Result{}, err
			}
			name, err := in.path()
			if err != nil {
				return failed(err)
			}

			ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
			defer cancel()

			lake, err := cfg.Provider.GetLake(ctx, name)
			if err != nil {
				return failed(err)
			}
			return outcomeResult(gcloud.Complete(lake))
		}).
		MustBuild()
}

// listLakesInput is the input for the dataplex_list_lakes tool.
type listLakesInput struct {
	ProjectID string `json:"project_id"`
	Location  string `json:"location"`
	PageSize  int    `json:"page_size,omitempty"`
	Filter    string `json:"filter,omitempty"`
}

func listLakesTool(cfg *Config) tool.Tool {
	return tool.NewBuilder("dataplex_list_lakes").
		WithDescription("List Dataplex lakes in a location").
		ReadOnly().
		WithHandler(func(ctx context.Context, input json.RawMessage) (tool.Result, error) {
			var in listLakesInput
			if err := json.Unmarshal(input, &in); err != nil {
				return tool.Result{}, err
			}
			parent, err := gcloud.LocationPath(in.ProjectID, in.Location)
			if err != nil {
				return failed(err)
			}

			ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
			defer cancel()

			lakes, err := cfg.Provider.ListLakes(ctx, parent, in.PageSize, in.Filter)
			if err != nil {
				return failed(err)
			}
			return outcomeResult(gcloud.Complete(listing{Items: lakes, Count: len(lakes)}))
		}).
		MustBuild()
}
