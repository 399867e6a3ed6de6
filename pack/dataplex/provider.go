// Package dataplex provides Dataplex lake management tools.
package dataplex

import (
	"context"

	"github.com/lakeproc/agent-gcp/gcloud"
)

// Provider defines the interface for Dataplex resource operations.
// Resources are addressed by canonical names; mutations start long-running
// operations and return them without waiting.
type Provider interface {
	// Name returns the provider name (e.g., "gcp", "memory").
	Name() string

	// CreateLake creates a lake under the given parent location.
	CreateLake(ctx context.Context, parent, lakeID string, cfg map[string]any) (*gcloud.LRO, error)

	// UpdateLake applies a masked update to a lake.
	UpdateLake(ctx context.Context, spec *gcloud.UpdateSpec) (*gcloud.LRO, error)

	// DeleteLake deletes a lake by canonical name.
	DeleteLake(ctx context.Context, name string) (*gcloud.LRO, error)

	// GetLake fetches a lake by canonical name.
	GetLake(ctx context.Context, name string) (map[string]any, error)

	// ListLakes lists lakes under a location.
	ListLakes(ctx context.Context, parent string, pageSize int, filter string) ([]map[string]any, error)

	// CreateZone creates a zone under the given lake.
	CreateZone(ctx context.Context, parent, zoneID string, cfg map[string]any) (*gcloud.LRO, error)

	// UpdateZone applies a masked update to a zone.
	UpdateZone(ctx context.Context, spec *gcloud.UpdateSpec) (*gcloud.LRO, error)

	// DeleteZone deletes a zone by canonical name.
	DeleteZone(ctx context.Context, name string) (*gcloud.LRO, error)

	// GetZone fetches a zone by canonical name.
	GetZone(ctx context.Context, name string) (map[string]any, error)

	// ListZones lists zones under a lake.
	ListZones(ctx context.Context, parent string, pageSize int, filter string) ([]map[string]any, error)

	// CreateAsset creates an asset under the given zone.
	CreateAsset(ctx context.Context, parent, assetID string, cfg map[string]any) (*gcloud.LRO, error)

	// UpdateAsset applies a masked update to an asset.
	UpdateAsset(ctx context.Context, spec *gcloud.UpdateSpec) (*gcloud.LRO, error)

	// DeleteAsset deletes an asset by canonical name.
	DeleteAsset(ctx context.Context, name string) (*gcloud.LRO, error)

	// GetAsset fetches an asset by canonical name.
	GetAsset(ctx context.Context, name string) (map[string]any, error)

	// ListAssets lists assets under a zone.
	ListAssets(ctx context.Context, parent string, pageSize int, filter string) ([]map[string]any, error)

	// CreateTask creates a task under the given lake.
	CreateTask(ctx context.Context, parent, taskID string, cfg map[string]any) (*gcloud.LRO, error)

	// UpdateTask applies a masked update to a task.
	UpdateTask(ctx context.Context, spec *gcloud.UpdateSpec) (*gcloud.LRO, error)

	// DeleteTask deletes a task by canonical name.
	DeleteTask(ctx context.Context, name string) (*gcloud.LRO, error)

	// GetTask fetches a task by canonical name.
	GetTask(ctx context.Context, name string) (map[string]any, error)

	// ListTasks lists tasks under a lake.
	ListTasks(ctx context.Context, parent string, pageSize int, filter string) ([]map[string]any, error)

	// RunTask triggers an on-demand run of a task and returns the started job.
	RunTask(ctx context.Context, name string, labels map[string]string, args map[string]string) (map[string]any, error)

	// GetJob fetches a task job by canonical name.
	GetJob(ctx context.Context, name string) (map[string]any, error)

	// ListJobs lists jobs under a task.
	ListJobs(ctx context.Context, parent string, pageSize int) ([]map[string]any, error)

	// CancelJob cancels a running task job.
	CancelJob(ctx context.Context, name string) error
}
