package dataplex

import (
	"context"
	"encoding/json"

	"github.com/lakeproc/agent-gcp/domain/tool"
	"github.com/lakeproc/agent-gcp/gcloud"
)

// assetInput identifies a single asset.
type assetInput struct {
	ProjectID string `json:"project_id"`
	Location  string `json:"location"`
	LakeID    string `json:"lake_id"`
	ZoneID    string `json:"zone_id"`
	AssetID   string `json:"asset_id"`
}

func (in *assetInput) path() (string, error) {
	return gcloud.AssetPath(in.ProjectID, in.Location, in.LakeID, in.ZoneID, in.AssetID)
}

// createAssetInput is the input for the dataplex_create_asset tool.
type createAssetInput struct {
	assetInput
	Config map[string]any `json:"config"`
}

func createAssetTool(cfg *Config) tool.Tool {
	return tool.NewBuilder("dataplex_create_asset").
		WithDescription("Attach a storage resource as an asset in a Dataplex zone").
		WithHandler(func(ctx context.Context, input json.RawMessage) (tool.Result, error) {
			var in createAssetInput
			if err := json.Unmarshal(input, &in); err != nil {
				return tool.Result{}, err
			}
			parent, err := gcloud.ZonePath(in.ProjectID, in.Location, in.LakeID, in.ZoneID)
			if err != nil {
				return failed(err)
			}
			if in.AssetID == "" {
				return failed(gcloud.InvalidArgumentf("asset_id is required"))
			}
			if err := gcloud.RequireSections(in.Config, "resource_spec"); err != nil {
				return failed(err)
			}

			ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
			defer cancel()

			op, err := cfg.Provider.CreateAsset(ctx, parent, in.AssetID, gcloud.SanitizeConfig(in.Config))
			if err != nil {
				return failed(err)
			}
			return outcomeResult(gcloud.Pending(op))
		}).
		MustBuild()
}

// updateAssetInput is the input for the dataplex_update_asset tool.
type updateAssetInput struct {
	assetInput
	UpdateMask []string       `json:"update_mask"`
	Config     map[string]any `json:"config"`
}

func updateAssetTool(cfg *Config) tool.Tool {
	return tool.NewBuilder("dataplex_update_asset").
		WithDescription("Update fields of a Dataplex asset").
		Idempotent().
		WithHandler(func(ctx context.Context, input json.RawMessage) (tool.Result, error) {
			var in updateAssetInput
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

			op, err := cfg.Provider.UpdateAsset(ctx, spec)
			if err != nil {
				return failed(err)
			}
			return outcomeResult(gcloud.Pending(op))
		}).
		MustBuild()
}

func deleteAssetTool(cfg *Config) tool.Tool {
	return tool.NewBuilder("dataplex_delete_asset").
		WithDescription("Detach an asset from a Dataplex zone").
		Destructive().
		WithHandler(func(ctx context.Context, input json.RawMessage) (tool.Result, error) {
			var in assetInput
			if err := json.Unmarshal(input, &in); err != nil {
				return tool.Result{}, err
			}
			name, err := in.path()
			if err != nil {
				return failed(err)
			}

			ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
			defer cancel()

			op, err := cfg.Provider.DeleteAsset(ctx, name)
			if err != nil {
				return failed(err)
			}
			return outcomeResult(gcloud.Pending(op))
		}).
		MustBuild()
}

func getAssetTool(cfg *Config) tool.Tool {
	return tool.NewBuilder("dataplex_get_asset").
		WithDescription("Fetch a Dataplex asset").
		ReadOnly().
		Cacheable().
		WithHandler(func(ctx context.Context, input json.RawMessage) (tool.Result, error) {
			var in assetInput
			if err := json.Unmarshal(input, &in); err != nil {
				return tool.Result{}, err
			}
			name, err := in.path()
			if err != nil {
				return failed(err)
			}

			ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
			defer cancel()

			asset, err := cfg.Provider.GetAsset(ctx, name)
			if err != nil {
				return failed(err)
			}
			return outcomeResult(gcloud.Complete(asset))
		}).
		MustBuild()
}

// listAssetsInput is the input for the dataplex_list_assets tool.
type listAssetsInput struct {
	ProjectID string `json:"project_id"`
	Location  string `json:"location"`
	LakeID    string `json:"lake_id"`
	ZoneID    string `json:"zone_id"`
	PageSize  int    `json:"page_size,omitempty"`
	Filter    string `json:"filter,omitempty"`
}

func listAssetsTool(cfg *Config) tool.Tool {
	return tool.NewBuilder("dataplex_list_assets").
		WithDescription("List assets within a Dataplex zone").
		ReadOnly().
		WithHandler(func(ctx context.Context, input json.RawMessage) (tool.Result, error) {
			var in listAssetsInput
			if err := json.Unmarshal(input, &in); err != nil {
				return tool.Result{}, err
			}
			parent, err := gcloud.ZonePath(in.ProjectID, in.Location, in.LakeID, in.ZoneID)
			if err != nil {
				return failed(err)
			}

			ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
			defer cancel()

			assets, err := cfg.Provider.ListAssets(ctx, parent, in.PageSize, in.Filter)
			if err != nil {
				return failed(err)
			}
			return outcomeResult(gcloud.Complete(listing{Items: assets, Count: len(assets)}))
		}).
		MustBuild()
}
