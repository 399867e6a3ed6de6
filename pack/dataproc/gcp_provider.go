package dataproc

import (
	"context"
	"fmt"
	"strings"
	"sync"

	dataprocapi "cloud.google.com/go/dataproc/v2/apiv1"
	"cloud.google.com/go/dataproc/v2/apiv1/dataprocpb"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/fieldmaskpb"

	"github.com/lakeproc/agent-gcp/gcloud"
)

// GCPProvider implements Provider against the Dataproc service. The service
// uses regional endpoints, so clients are created per region on first use
// and reused afterwards.
type GCPProvider struct {
	cfg     GCPConfig
	mu      sync.Mutex
	clients map[string]*regionClients
}

type regionClients struct {
	clusters *dataprocapi.ClusterControllerClient
	jobs     *dataprocapi.JobControllerClient
}

// GCPConfig configures the GCP provider.
type GCPConfig struct {
	// CredentialsFile is an optional path to a service account JSON file.
	// When empty, Application Default Credentials are used.
	CredentialsFile string

	// Endpoint overrides the regional endpoint, mainly for tests.
	Endpoint string
}

// NewGCPProvider creates a Dataproc provider backed by the real service.
func NewGCPProvider(cfg GCPConfig) *GCPProvider {
	return &GCPProvider{
		cfg:     cfg,
		clients: make(map[string]*regionClients),
	}
}

// Name returns the provider name.
func (p *GCPProvider) Name() string {
	return "gcp"
}

// Close releases all regional client connections.
func (p *GCPProvider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	for _, rc := range p.clients {
		if err := rc.clusters.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		if err := rc.jobs.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	p.clients = make(map[string]*regionClients)
	return firstErr
}

func (p *GCPProvider) clientsFor(ctx context.Context, region string) (*regionClients, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if rc, ok := p.clients[region]; ok {
		return rc, nil
	}

	endpoint := p.cfg.Endpoint
	if endpoint == "" {
		endpoint = fmt.Sprintf("%s-dataproc.googleapis.com:443", region)
	}
	opts := []option.ClientOption{option.WithEndpoint(endpoint)}
	if p.cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(p.cfg.CredentialsFile))
	}

	clusters, err := dataprocapi.NewClusterControllerClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create cluster controller client: %w", err)
	}
	jobs, err := dataprocapi.NewJobControllerClient(ctx, opts...)
	if err != nil {
		clusters.Close()
		return nil, fmt.Errorf("failed to create job controller client: %w", err)
	}

	rc := &regionClients{clusters: clusters, jobs: jobs}
	p.clients[region] = rc
	return rc, nil
}

// clusterOperation is the subset of the generated operation wrappers the
// provider needs.
type clusterOperation interface {
	Name() string
	Metadata() (*dataprocpb.ClusterOperationMetadata, error)
}

func describeOperation(op clusterOperation) *gcloud.LRO {
	lro := &gcloud.LRO{Name: op.Name()}
	if md, err := op.Metadata(); err == nil && md != nil {
		lro.Metadata = gcloud.MessageToMap(md)
	}
	return lro
}

// CreateCluster creates a cluster in the given region.
func (p *GCPProvider) CreateCluster(ctx context.Context, project, region, clusterName string, cfg map[string]any) (*gcloud.LRO, error) {
	rc, err := p.clientsFor(ctx, region)
	if err != nil {
		return nil, err
	}
	var clusterCfg dataprocpb.ClusterConfig
	if err := gcloud.ConfigToProto(cfg, &clusterCfg); err != nil {
		return nil, err
	}
	op, err := rc.clusters.CreateCluster(ctx, &dataprocpb.CreateClusterRequest{
		ProjectId: project,
		Region:    region,
		Cluster: &dataprocpb.Cluster{
			ProjectId:   project,
			ClusterName: clusterName,
			Config:      &clusterCfg,
		},
	})
	if err != nil {
		return nil, err
	}
	return describeOperation(op), nil
}

// updateClusterRequest translates a masked config update into the wire
// request. Mask paths in the update spec are relative to the cluster config,
// while the service reads update_mask relative to the Cluster resource, so
// every path except labels gets a config. prefix. Labels move onto the
// cluster itself since Cluster carries them, not ClusterConfig.
func updateClusterRequest(project, region string, spec *gcloud.UpdateSpec) (*dataprocpb.UpdateClusterRequest, error) {
	cluster := &dataprocpb.Cluster{
		ProjectId:   project,
		ClusterName: spec.Name,
	}

	cfg := spec.Config
	paths := make([]string, 0, len(spec.Paths))
	var hasLabels bool
	for _, path := range spec.Paths {
		if path == "labels" || strings.HasPrefix(path, "labels.") {
			paths = append(paths, path)
			hasLabels = true
			continue
		}
		paths = append(paths, "config."+path)
	}

	if hasLabels {
		labels, err := gcloud.LabelsFrom(cfg)
		if err != nil {
			return nil, err
		}
		cluster.Labels = labels

		trimmed := make(map[string]any, len(cfg))
		for k, v := range cfg {
			if k != "labels" {
				trimmed[k] = v
			}
		}
		cfg = trimmed
	}

	if len(cfg) > 0 {
		var clusterCfg dataprocpb.ClusterConfig
		if err := gcloud.ConfigToProto(cfg, &clusterCfg); err != nil {
			return nil, err
		}
		cluster.Config = &clusterCfg
	}

	return &dataprocpb.UpdateClusterRequest{
		ProjectId:   project,
		Region:      region,
		ClusterName: spec.Name,
		Cluster:     cluster,
		UpdateMask:  &fieldmaskpb.FieldMask{Paths: paths},
	}, nil
}

// UpdateCluster applies a masked update to a cluster.
func (p *GCPProvider) UpdateCluster(ctx context.Context, project, region string, spec *gcloud.UpdateSpec) (*gcloud.LRO, error) {
	rc, err := p.clientsFor(ctx, region)
	if err != nil {
		return nil, err
	}
	req, err := updateClusterRequest(project, region, spec)
	if err != nil {
		return nil, err
	}
	op, err := rc.clusters.UpdateCluster(ctx, req)
	if err != nil {
		return nil, err
	}
	return describeOperation(op), nil
}

// DeleteCluster deletes a cluster.
func (p *GCPProvider) DeleteCluster(ctx context.Context, project, region, clusterName string) (*gcloud.LRO, error) {
	rc, err := p.clientsFor(ctx, region)
	if err != nil {
		return nil, err
	}
	op, err := rc.clusters.DeleteCluster(ctx, &dataprocpb.DeleteClusterRequest{
		ProjectId:   project,
		Region:      region,
		ClusterName: clusterName,
	})
	if err != nil {
		return nil, err
	}
	return describeOperation(op), nil
}

// GetCluster fetches a cluster.
func (p *GCPProvider) GetCluster(ctx context.Context, project, region, clusterName string) (map[string]any, error) {
	rc, err := p.clientsFor(ctx, region)
	if err != nil {
		return nil, err
	}
	cluster, err := rc.clusters.GetCluster(ctx, &dataprocpb.GetClusterRequest{
		ProjectId:   project,
		Region:      region,
		ClusterName: clusterName,
	})
	if err != nil {
		return nil, err
	}
	return gcloud.MessageToMap(cluster), nil
}

// ListClusters lists clusters in a region with a single pass over the
// iterator.
func (p *GCPProvider) ListClusters(ctx context.Context, project, region, filter string, pageSize int) ([]map[string]any, error) {
	rc, err := p.clientsFor(ctx, region)
	if err != nil {
		return nil, err
	}
	it := rc.clusters.ListClusters(ctx, &dataprocpb.ListClustersRequest{
		ProjectId: project,
		Region:    region,
		Filter:    filter,
		PageSize:  int32(pageSize),
	})
	return collect(it.Next)
}

// SubmitJob submits a job and returns the created job resource.
func (p *GCPProvider) SubmitJob(ctx context.Context, project, region string, job map[string]any) (map[string]any, error) {
	rc, err := p.clientsFor(ctx, region)
	if err != nil {
		return nil, err
	}
	var jobPb dataprocpb.Job
	if err := gcloud.ConfigToProto(job, &jobPb); err != nil {
		return nil, err
	}
	created, err := rc.jobs.SubmitJob(ctx, &dataprocpb.SubmitJobRequest{
		ProjectId: project,
		Region:    region,
		Job:       &jobPb,
	})
	if err != nil {
		return nil, err
	}
	return gcloud.MessageToMap(created), nil
}

// GetJob fetches a job by id.
func (p *GCPProvider) GetJob(ctx context.Context, project, region, jobID string) (map[string]any, error) {
	rc, err := p.clientsFor(ctx, region)
	if err != nil {
		return nil, err
	}
	job, err := rc.jobs.GetJob(ctx, &dataprocpb.GetJobRequest{
		ProjectId: project,
		Region:    region,
		JobId:     jobID,
	})
	if err != nil {
		return nil, err
	}
	return gcloud.MessageToMap(job), nil
}

// ListJobs lists jobs in a region.
func (p *GCPProvider) ListJobs(ctx context.Context, project, region, clusterName, stateMatcher string, pageSize int) ([]map[string]any, error) {
	rc, err := p.clientsFor(ctx, region)
	if err != nil {
		return nil, err
	}
	matcher := dataprocpb.ListJobsRequest_ALL
	switch strings.ToLower(stateMatcher) {
	case "":
	case "active":
		matcher = dataprocpb.ListJobsRequest_ACTIVE
	case "non_active":
		matcher = dataprocpb.ListJobsRequest_NON_ACTIVE
	default:
		return nil, gcloud.InvalidArgumentf("state matcher must be active or non_active, got %q", stateMatcher)
	}
	it := rc.jobs.ListJobs(ctx, &dataprocpb.ListJobsRequest{
		ProjectId:       project,
		Region:          region,
		ClusterName:     clusterName,
		JobStateMatcher: matcher,
		PageSize:        int32(pageSize),
	})
	return collect(it.Next)
}

// CancelJob requests cancellation of a running job.
func (p *GCPProvider) CancelJob(ctx context.Context, project, region, jobID string) (map[string]any, error) {
	rc, err := p.clientsFor(ctx, region)
	if err != nil {
		return nil, err
	}
	job, err := rc.jobs.CancelJob(ctx, &dataprocpb.CancelJobRequest{
		ProjectId: project,
		Region:    region,
		JobId:     jobID,
	})
	if err != nil {
		return nil, err
	}
	return gcloud.MessageToMap(job), nil
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
