package dataplex

import (
	"context"
	"fmt"

	dataplexapi "cloud.google.com/go/dataplex/apiv1"
	"cloud.google.com/go/dataplex/apiv1/dataplexpb"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/fieldmaskpb"

	"github.com/lakeproc/agent-gcp/gcloud"
)

// GCPProvider implements Provider against the Dataplex service.
type GCPProvider struct {
	client *dataplexapi.Client
}

// GCPConfig configures the GCP provider.
type GCPConfig struct {
	// CredentialsFile is an optional path to a service account JSON file.
	// When empty, Application Default Credentials are used.
	CredentialsFile string

	// Endpoint overrides the service endpoint, mainly for tests.
	Endpoint string
}

// NewGCPProvider creates a Dataplex provider backed by the real service.
func NewGCPProvider(ctx context.Context, cfg GCPConfig) (*GCPProvider, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	client, err := dataplexapi.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create dataplex client: %w", err)
	}
	return &GCPProvider{client: client}, nil
}

// Name returns the provider name.
func (p *GCPProvider) Name() string {
	return "gcp"
}

// Close releases the underlying client connection.
func (p *GCPProvider) Close() error {
	return p.client.Close()
}

// lroOperation is the subset of the generated operation wrappers the provider
// needs: the operation name and its typed metadata.
type lroOperation interface {
	Name() string
	Metadata() (*dataplexpb.OperationMetadata, error)
}

func describeOperation(op lroOperation) *gcloud.LRO {
	lro := &gcloud.LRO{Name: op.Name()}
	// Metadata may not be populated yet for a freshly started operation.
	if md, err := op.Metadata(); err == nil && md != nil {
		lro.Metadata = gcloud.MessageToMap(md)
	}
	return lro
}

// CreateLake creates a lake under the given parent location.
func (p *GCPProvider) CreateLake(ctx context.Context, parent, lakeID string, cfg map[string]any) (*gcloud.LRO, error) {
	var lake dataplexpb.Lake
	if err := gcloud.ConfigToProto(cfg, &lake); err != nil {
		return nil, err
	}
	op, err := p.client.CreateLake(ctx, &dataplexpb.CreateLakeRequest{
		Parent: parent,
		LakeId: lakeID,
		Lake:   &lake,
	})
	if err != nil {
		return nil, err
	}
	return describeOperation(op), nil
}

// UpdateLake applies a masked update to a lake.
func (p *GCPProvider) UpdateLake(ctx context.Context, spec *gcloud.UpdateSpec) (*gcloud.LRO, error) {
	var lake dataplexpb.Lake
	if err := gcloud.ConfigToProto(spec.Config, &lake); err != nil {
		return nil, err
	}
	lake.Name = spec.Name
	op, err := p.client.UpdateLake(ctx, &dataplexpb.UpdateLakeRequest{
		Lake:       &lake,
		UpdateMask: &fieldmaskpb.FieldMask{Paths: spec.Paths},
	})
	if err != nil {
		return nil, err
	}
	return describeOperation(op), nil
}

// DeleteLake deletes a lake by canonical name.
func (p *GCPProvider) DeleteLake(ctx context.Context, name string) (*gcloud.LRO, error) {
	op, err := p.client.DeleteLake(ctx, &dataplexpb.DeleteLakeRequest{Name: name})
	if err != nil {
		return nil, err
	}
	return describeOperation(op), nil
}

// GetLake fetches a lake by canonical name.
func (p *GCPProvider) GetLake(ctx context.Context, name string) (map[string]any, error) {
	lake, err := p.client.GetLake(ctx, &dataplexpb.GetLakeRequest{Name: name})
	if err != nil {
		return nil, err
	}
	return gcloud.MessageToMap(lake), nil
}

// ListLakes lists lakes under a location.
func (p *GCPProvider) ListLakes(ctx context.Context, parent string, pageSize int, filter string) ([]map[string]any, error) {
	it := p.client.ListLakes(ctx, &dataplexpb.ListLakesRequest{
		Parent:   parent,
		PageSize: int32(pageSize),
		Filter:   filter,
	})
	return collect(it.Next)
}

// CreateZone creates a zone under the given lake.
func (p *GCPProvider) CreateZone(ctx context.Context, parent, zoneID string, cfg map[string]any) (*gcloud.LRO, error) {
	var zone dataplexpb.Zone
	if err := gcloud.ConfigToProto(cfg, &zone); err != nil {
		return nil, err
	}
	op, err := p.client.CreateZone(ctx, &dataplexpb.CreateZoneRequest{
		Parent: parent,
		ZoneId: zoneID,
		Zone:   &zone,
	})
	if err != nil {
		return nil, err
	}
	return describeOperation(op), nil
}

// UpdateZone applies a masked update to a zone.
func (p *GCPProvider) UpdateZone(ctx context.Context, spec *gcloud.UpdateSpec) (*gcloud.LRO, error) {
	var zone dataplexpb.Zone
	if err := gcloud.ConfigToProto(spec.Config, &zone); err != nil {
		return nil, err
	}
	zone.Name = spec.Name
	op, err := p.client.UpdateZone(ctx, &dataplexpb.UpdateZoneRequest{
		Zone:       &zone,
		UpdateMask: &fieldmaskpb.FieldMask{Paths: spec.Paths},
	})
	if err != nil {
		return nil, err
	}
	return describeOperation(op), nil
}

// DeleteZone deletes a zone by canonical name.
func (p *GCPProvider) DeleteZone(ctx context.Context, name string) (*gcloud.LRO, error) {
	op, err := p.client.DeleteZone(ctx, &dataplexpb.DeleteZoneRequest{Name: name})
	if err != nil {
		return nil, err
	}
	return describeOperation(op), nil
}

// GetZone fetches a zone by canonical name.
func (p *GCPProvider) GetZone(ctx context.Context, name string) (map[string]any, error) {
	zone, err := p.client.GetZone(ctx, &dataplexpb.GetZoneRequest{Name: name})
	if err != nil {
		return nil, err
	}
	return gcloud.MessageToMap(zone), nil
}

// ListZones lists zones under a lake.
func (p *GCPProvider) ListZones(ctx context.Context, parent string, pageSize int, filter string) ([]map[string]any, error) {
	it := p.client.ListZones(ctx, &dataplexpb.ListZonesRequest{
		Parent:   parent,
		PageSize: int32(pageSize),
		Filter:   filter,
	})
	return collect(it.Next)
}

// CreateAsset creates an asset under the given zone.
func (p *GCPProvider) CreateAsset(ctx context.Context, parent, assetID string, cfg map[string]any) (*gcloud.LRO, error) {
	var asset dataplexpb.Asset
	if err := gcloud.ConfigToProto(cfg, &asset); err != nil {
		return nil, err
	}
	op, err := p.client.CreateAsset(ctx, &dataplexpb.CreateAssetRequest{
		Parent:  parent,
		AssetId: assetID,
		Asset:   &asset,
	})
	if err != nil {
		return nil, err
	}
	return describeOperation(op), nil
}

// UpdateAsset applies a masked update to an asset.
func (p *GCPProvider) UpdateAsset(ctx context.Context, spec *gcloud.UpdateSpec) (*gcloud.LRO, error) {
	var asset dataplexpb.Asset
	if err := gcloud.ConfigToProto(spec.Config, &asset); err != nil {
		return nil, err
	}
	asset.Name = spec.Name
	op, err := p.client.UpdateAsset(ctx, &dataplexpb.UpdateAssetRequest{
		Asset:      &asset,
		UpdateMask: &fieldmaskpb.FieldMask{Paths: spec.Paths},
	})
	if err != nil {
		return nil, err
	}
	return describeOperation(op), nil
}

// DeleteAsset deletes an asset by canonical name.
func (p *GCPProvider) DeleteAsset(ctx context.Context, name string) (*gcloud.LRO, error) {
	op, err := p.client.DeleteAsset(ctx, &dataplexpb.DeleteAssetRequest{Name: name})
	if err != nil {
		return nil, err
	}
	return describeOperation(op), nil
}

// GetAsset fetches an asset by canonical name.
func (p *GCPProvider) GetAsset(ctx context.Context, name string) (map[string]any, error) {
	asset, err := p.client.GetAsset(ctx, &dataplexpb.GetAssetRequest{Name: name})
	if err != nil {
		return nil, err
	}
	return gcloud.MessageToMap(asset), nil
}

// ListAssets lists assets under a zone.
func (p *GCPProvider) ListAssets(ctx context.Context, parent string, pageSize int, filter string) ([]map[string]any, error) {
	it := p.client.ListAssets(ctx, &dataplexpb.ListAssetsRequest{
		Parent:   parent,
		PageSize: int32(pageSize),
		Filter:   filter,
	})
	return collect(it.Next)
}

// CreateTask creates a task under the given lake.
func (p *GCPProvider) CreateTask(ctx context.Context, parent, taskID string, cfg map[string]any) (*gcloud.LRO, error) {
	var task dataplexpb.Task
	if err := gcloud.ConfigToProto(cfg, &task); err != nil {
		return nil, err
	}
	op, err := p.client.CreateTask(ctx, &dataplexpb.CreateTaskRequest{
		Parent: parent,
		TaskId: taskID,
		Task:   &task,
	})
	if err != nil {
		return nil, err
	}
	return describeOperation(op), nil
}

// UpdateTask applies a masked update to a task.
func (p *GCPProvider) UpdateTask(ctx context.Context, spec *gcloud.UpdateSpec) (*gcloud.LRO, error) {
	var task dataplexpb.Task
	if err := gcloud.ConfigToProto(spec.Config, &task); err != nil {
		return nil, err
	}
	task.Name = spec.Name
	op, err := p.client.UpdateTask(ctx, &dataplexpb.UpdateTaskRequest{
		Task:       &task,
		UpdateMask: &fieldmaskpb.FieldMask{Paths: spec.Paths},
	})
	if err != nil {
		return nil, err
	}
	return describeOperation(op), nil
}

// DeleteTask deletes a task by canonical name.
func (p *GCPProvider) DeleteTask(ctx context.Context, name string) (*gcloud.LRO, error) {
	op, err := p.client.DeleteTask(ctx, &dataplexpb.DeleteTaskRequest{Name: name})
	if err != nil {
		return nil, err
	}
	return describeOperation(op), nil
}

// GetTask fetches a task by canonical name.
func (p *GCPProvider) GetTask(ctx context.Context, name string) (map[string]any, error) {
	task, err := p.client.GetTask(ctx, &dataplexpb.GetTaskRequest{Name: name})
	if err != nil {
		return nil, err
	}
	return gcloud.MessageToMap(task), nil
}

// ListTasks lists tasks under a lake.
func (p *GCPProvider) ListTasks(ctx context.Context, parent string, pageSize int, filter string) ([]map[string]any, error) {
	it := p.client.ListTasks(ctx, &dataplexpb.ListTasksRequest{
		Parent:   parent,
		PageSize: int32(pageSize),
		Filter:   filter,
	})
	return collect(it.Next)
}

// RunTask triggers an on-demand run of a task and returns the started job.
func (p *GCPProvider) RunTask(ctx context.Context, name string, labels map[string]string, args map[string]string) (map[string]any, error) {
	resp, err := p.client.RunTask(ctx, &dataplexpb.RunTaskRequest{
		Name:   name,
		Labels: labels,
		Args:   args,
	})
	if err != nil {
		return nil, err
	}
	return gcloud.MessageToMap(resp.GetJob()), nil
}

// GetJob fetches a task job by canonical name.
func (p *GCPProvider) GetJob(ctx context.Context, name string) (map[string]any, error) {
	job, err := p.client.GetJob(ctx, &dataplexpb.GetJobRequest{Name: name})
	if err != nil {
		return nil, err
	}
	return gcloud.MessageToMap(job), nil
}

// ListJobs lists jobs under a task.
func (p *GCPProvider) ListJobs(ctx context.Context, parent string, pageSize int) ([]map[string]any, error) {
	it := p.client.ListJobs(ctx, &dataplexpb.ListJobsRequest{
		Parent:   parent,
		PageSize: int32(pageSize),
	})
	return collect(it.Next)
}

// CancelJob cancels a running task job.
func (p *GCPProvider) CancelJob(ctx context.Context, name string) error {
	return p.client.CancelJob(ctx, &dataplexpb.CancelJobRequest{Name: name})
}

// collect drains a resource iterator into plain maps.
func collect[M proto.Message](next func() (M, error)) ([]map[string]any, error) {
	var items []map[string]any
	for {
		item, err := next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		items = append(items, gcloud.MessageToMap(item))
	}
	return items, nil
}
