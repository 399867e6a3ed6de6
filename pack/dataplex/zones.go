package dataplex

import (
	"context"
	"encoding/json"

	"github.com/lakeproc/agent-gcp/domain/tool"
	"github.com/lakeproc/agent-gcp/gcloud"
)

// zoneInput identifies a single zone.
type zoneInput struct {
	ProjectID string `json:"project_id"`
	Location  string `json:"location"`
	LakeID    string `json:"lake_id"`
	ZoneID    string `json:"zone_id"`
}

func (in *zoneInput) path() (string, error) {
	return gcloud.ZonePath(in.ProjectID, in.Location, in.LakeID, in.ZoneID)
}

// createZoneInput is the input for the dataplex_create_zone tool.
type createZoneInput struct {
	zoneInput
	Config map[string]any `json:"config"`
}

func createZoneTool(cfg *Config) tool.Tool {
	return tool.NewBuilder("dataplex_create_zone").
		WithDescription("Create a zone within a Dataplex lake").
		WithHandler(func(ctx context.Context, input json.RawMessage) (tool.Result, error) {
			var in createZoneInput
			if err := json.Unmarshal(input, &in); err != nil {
				return tool.Result{}, err
			}
			parent, err := gcloud.LakePath(in.ProjectID, in.Location, in.LakeID)
			if err != nil {
				return failed(err)
			}
			if in.ZoneID == "" {
				return failed(gcloud.InvalidArgumentf("zone_id is required"))
			}

			ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
			defer cancel()

			op, err := cfg.Provider.CreateZone(ctx, parent, in.ZoneID, gcloud.SanitizeConfig(in.Config))
			if err != nil {
				return failed(err)
			}
			return outcomeResult(gcloud.Pending(op))
		}).
		MustBuild()
}

// updateZoneInput is the input for the dataplex_update_zone tool.
type updateZoneInput struct {
	zoneInput
	UpdateMask []string       `json:"update_mask"`
	Config     map[string]any `json:"config"`
}

func updateZoneTool(cfg *Config) tool.Tool {
	return tool.NewBuilder("dataplex_update_zone").
		WithDescription("Update fields of a Dataplex zone").
		Idempotent().
		WithHandler(func(ctx context.Context, input json.RawMessage) (tool.Result, error) {
			var in updateZoneInput
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

			op, err := cfg.Provider.UpdateZone(ctx, spec)
			if err != nil {
				return failed(err)
			}
			return outcomeResult(gcloud.Pending(op))
		}).
		MustBuild()
}

func deleteZoneTool(cfg *Config) tool.Tool {
	return tool.NewBuilder("dataplex_delete_zone").
		WithDescription("Delete a Dataplex zone").
		Destructive().
		WithHandler(func(ctx context.Context, input json.RawMessage) (tool.Result, error) {
			var in zoneInput
			if err := json.Unmarshal(input, &in); err != nil {
				return tool.Result{}, err
			}
			name, err := in.path()
			if err != nil {
				return failed(err)
			}

			ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
			defer cancel()

			op, err := cfg.Provider.DeleteZone(ctx, name)
			if err != nil {
				return failed(err)
			}
			return outcomeResult(gcloud.Pending(op))
		}).
		MustBuild()
}

func getZoneTool(cfg *Config) tool.Tool {
	return tool.NewBuilder("dataplex_get_zone").
		WithDescription("Fetch a Dataplex zone").
		ReadOnly().
		Cacheable().
		WithHandler(func(ctx context.Context, input json.RawMessage) (tool.Result, error) {
			var in zoneInput
			if err := json.Unmarshal(input, &in); err != nil {
				return tool.Result{}, err
			}
			name, err := in.path()
			if err != nil {
				return failed(err)
			}

			ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
			defer cancel()

			zone, err := cfg.Provider.GetZone(ctx, name)
			if err != nil {
				return failed(err)
			}
			return outcomeResult(gcloud.Complete(zone))
		}).
		MustBuild()
}

// listZonesInput is the input for the dataplex_list_zones tool.
type listZonesInput struct {
	ProjectID string `json:"project_id"`
	Location  string `json:"location"`
	LakeID    string `json:"lake_id"`
	PageSize  int    `json:"page_size,omitempty"`
	Filter    string `json:"filter,omitempty"`
}

func listZonesTool(cfg *Config) tool.Tool {
	return tool.NewBuilder("dataplex_list_zones").
		WithDescription("List zones within a Dataplex lake").
		ReadOnly().
		WithHandler(func(ctx context.Context, input json.RawMessage) (tool.Result, error) {
			var in listZonesInput
			if err := json.Unmarshal(input, &in); err != nil {
				return tool.Result{}, err
			}
			parent, err := gcloud.LakePath(in.ProjectID, in.Location, in.LakeID)
			if err != nil {
				return failed(err)
			}

			ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
			defer cancel()

			zones, err := cfg.Provider.ListZones(ctx, parent, in.PageSize, in.Filter)
			if err != nil {
				return failed(err)
			}
			return outcomeResult(gcloud.Complete(listing{Items: zones, Count: len(zones)}))
		}).
		MustBuild()
}
