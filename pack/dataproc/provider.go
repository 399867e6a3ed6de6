// Package dataproc provides Dataproc cluster and job management tools.
package dataproc

import (
	"context"

	"github.com/lakeproc/agent-gcp/gcloud"
)

// Provider defines the interface for Dataproc operations. Clusters and jobs
// are scoped by project and region; cluster mutations start long-running
// operations while job submission returns the job resource directly.
type Provider interface {
	// Name returns the provider name (e.g., "gcp", "memory").
	Name() string

	// CreateCluster creates a cluster in the given region.
	CreateCluster(ctx context.Context, project, region, clusterName string, cfg map[string]any) (*gcloud.LRO, error)

	// UpdateCluster applies a masked update to a cluster. The spec name is
	// the bare cluster name, not a canonical path.
	UpdateCluster(ctx context.Context, project, region string, spec *gcloud.UpdateSpec) (*gcloud.LRO, error)

	// DeleteCluster deletes a cluster.
	DeleteCluster(ctx context.Context, project, region, clusterName string) (*gcloud.LRO, error)

	// GetCluster fetches a cluster.
	GetCluster(ctx context.Context, project, region, clusterName string) (map[string]any, error)

	// ListClusters lists clusters in a region.
	ListClusters(ctx context.Context, project, region, filter string, pageSize int) ([]map[string]any, error)

	// SubmitJob submits a job and returns the created job resource.
	SubmitJob(ctx context.Context, project, region string, job map[string]any) (map[string]any, error)

	// GetJob fetches a job by id.
	GetJob(ctx context.Context, project, region, jobID string) (map[string]any, error)

	// ListJobs lists jobs in a region, optionally filtered by cluster and
	// activity ("active" or "non_active").
	ListJobs(ctx context.Context, project, region, clusterName, stateMatcher string, pageSize int) ([]map[string]any, error)

	// CancelJob requests cancellation of a running job and returns the
	// job resource as reported after the request.
	CancelJob(ctx context.Context, project, region, jobID string) (map[string]any, error)
}
