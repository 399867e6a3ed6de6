package dataproc

import (
	"context"
	"encoding/json"

	"github.com/lakeproc/agent-gcp/domain/tool"
	"github.com/lakeproc/agent-gcp/gcloud"
)

// clusterInput identifies a single cluster.
type clusterInput struct {
	regionScope
	ClusterName string `json:"cluster_name"`
}

func (in *clusterInput) validate() error {
	if err := in.regionScope.validate(); err != nil {
		return err
	}
	if in.ClusterName == "" {
		return gcloud.InvalidArgumentf("cluster_name is required")
	}
	return nil
}

// createClusterInput is the input for the dataproc_create_cluster tool.
type createClusterInput struct {
	clusterInput
	Config map[string]any `json:"config"`
}

func createClusterTool(cfg *Config) tool.Tool {
	return tool.NewBuilder("dataproc_create_cluster").
		WithDescription("Create a Dataproc cluster").
		WithRiskLevel(tool.RiskMedium).
		WithHandler(func(ctx context.Context, input json.RawMessage) (tool.Result, error) {
			var in createClusterInput
			if err := json.Unmarshal(input, &in); err != nil {
				return tool.Result{}, err
			}
			if err := in.validate(); err != nil {
				return failed(err)
			}

			ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
			defer cancel()

			op, err := cfg.Provider.CreateCluster(ctx, in.ProjectID, in.Region, in.ClusterName,
				gcloud.SanitizeConfig(in.Config))
			if err != nil {
				return failed(err)
			}
			return outcomeResult(gcloud.Pending(op))
		}).
		MustBuild()
}

// updateClusterInput is the input for the dataproc_update_cluster tool.
type updateClusterInput struct {
	clusterInput
	UpdateMask []string       `json:"update_mask"`
	Config     map[string]any `json:"config"`
}

func updateClusterTool(cfg *Config) tool.Tool {
	return tool.NewBuilder("dataproc_update_cluster").
		WithDescription("Update fields of a Dataproc cluster, such as worker counts").
		Idempotent().
		WithHandler(func(ctx context.Context, input json.RawMessage) (tool.Result, error) {
			var in updateClusterInput
			if err := json.Unmarshal(input, &in); err != nil {
				return tool.Result{}, err
			}
			if err := in.validate(); err != nil {
				return failed(err)
			}
			spec, err := gcloud.BuildUpdate(in.ClusterName, in.UpdateMask, in.Config)
			if err != nil {
				return failed(err)
			}

			ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
			defer cancel()

			op, err := cfg.Provider.UpdateCluster(ctx, in.ProjectID, in.Region, spec)
			if err != nil {
				return failed(err)
			}
			return outcomeResult(gcloud.Pending(op))
		}).
		MustBuild()
}

func deleteClusterTool(cfg *Config) tool.Tool {
	return tool.NewBuilder("dataproc_delete_cluster").
		WithDescription("Delete a Dataproc cluster").
		Destructive().
		WithHandler(func(ctx context.Context, input json.RawMessage) (tool.Result, error) {
			var in clusterInput
			if err := json.Unmarshal(input, &in); err != nil {
				return tool.Result{}, err
			}
			if err := in.validate(); err != nil {
				return failed(err)
			}

			ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
			defer cancel()

			op, err := cfg.Provider.DeleteCluster(ctx, in.ProjectID, in.Region, in.ClusterName)
			if err != nil {
				return failed(err)
			}
			return outcomeResult(gcloud.Pending(op))
		}).
		MustBuild()
}

func getClusterTool(cfg *Config) tool.Tool {
	return tool.NewBuilder("dataproc_get_cluster").
		WithDescription("Fetch a Dataproc cluster").
		ReadOnly().
		Cacheable().
		WithHandler(func(ctx context.Context, input json.RawMessage) (tool.Result, error) {
			var in clusterInput
			if err := json.Unmarshal(input, &in); err != nil {
				return tool.Result{}, err
			}
			if err := in.validate(); err != nil {
				return failed(err)
			}

			ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
			defer cancel()

			cluster, err := cfg.Provider.GetCluster(ctx, in.ProjectID, in.Region, in.ClusterName)
			if err != nil {
				return failed(err)
			}
			return outcomeResult(gcloud.Complete(cluster))
		}).
		MustBuild()
}

// listClustersInput is the input for the dataproc_list_clusters tool.
type listClustersInput struct {
	regionScope
	Filter   string `json:"filter,omitempty"`
	PageSize int    `json:"page_size,omitempty"`
}

func listClustersTool(cfg *Config) tool.Tool {
	return tool.NewBuilder("dataproc_list_clusters").
		WithDescription("List Dataproc clusters in a region").
		ReadOnly().
		WithHandler(func(ctx context.Context, input json.RawMessage) (tool.Result, error) {
			var in listClustersInput
			if err := json.Unmarshal(input, &in); err != nil {
				return tool.Result{}, err
			}
			if err := in.validate(); err != nil {
				return failed(err)
			}

			ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
			defer cancel()

			clusters, err := cfg.Provider.ListClusters(ctx, in.ProjectID, in.Region, in.Filter, in.PageSize)
			if err != nil {
				return failed(err)
			}
			return outcomeResult(gcloud.Complete(listing{Items: clusters, Count: len(clusters)}))
		}).
		MustBuild()
}
