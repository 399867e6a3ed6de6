package dataproc

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/lakeproc/agent-gcp/gcloud"
)

// MemoryProvider is an in-memory implementation of the Provider interface.
// Useful for testing and development.
type MemoryProvider struct {
	mu        sync.RWMutex
	clusters  map[string]map[string]any
	jobs      map[string]*memoryJob
	opCounter int
}

type memoryJob struct {
	data  map[string]any
	state string
}

// NewMemoryProvider creates a new in-memory Dataproc provider.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{
		clusters: make(map[string]map[string]any),
		jobs:     make(map[string]*memoryJob),
	}
}

// Name returns the provider name.
func (p *MemoryProvider) Name() string {
	return "memory"
}

func scopeKey(project, region, id string) string {
	return project + "/" + region + "/" + id
}

func (p *MemoryProvider) nextOperation(target, verb string) *gcloud.LRO {
	p.opCounter++
	return &gcloud.LRO{
		Name: fmt.Sprintf("operations/op-%d", p.opCounter),
		Metadata: map[string]any{
			"target": target,
			"verb":   verb,
		},
	}
}

// CreateCluster creates a cluster in the given region.
func (p *MemoryProvider) CreateCluster(ctx context.Context, project, region, clusterName string, cfg map[string]any) (*gcloud.LRO, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := scopeKey(project, region, clusterName)
	if _, exists := p.clusters[key]; exists {
		return nil, gcloud.InvalidArgumentf("cluster %q already exists", clusterName)
	}
	p.clusters[key] = map[string]any{
		"project_id":   project,
		"cluster_name": clusterName,
		"config":       gcloud.SanitizeConfig(cfg),
		"status":       map[string]any{"state": "RUNNING"},
	}
	return p.nextOperation(clusterName, "create"), nil
}

// UpdateCluster applies a masked update to a cluster.
func (p *MemoryProvider) UpdateCluster(ctx context.Context, project, region string, spec *gcloud.UpdateSpec) (*gcloud.LRO, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := scopeKey(project, region, spec.Name)
	cluster, ok := p.clusters[key]
	if !ok {
		return nil, gcloud.NotFoundf("cluster %q not found", spec.Name)
	}
	cfg, _ := cluster["config"].(map[string]any)
	if cfg == nil {
		cfg = make(map[string]any)
	}
	for _, path := range spec.Paths {
		root := path
		if i := strings.IndexByte(path, '.'); i >= 0 {
			root = path[:i]
		}
		cfg[root] = spec.Config[root]
	}
	cluster["config"] = cfg
	return p.nextOperation(spec.Name, "update"), nil
}

// DeleteCluster deletes a cluster.
func (p *MemoryProvider) DeleteCluster(ctx context.Context, project, region, clusterName string) (*gcloud.LRO, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := scopeKey(project, region, clusterName)
	if _, ok := p.clusters[key]; !ok {
		return nil, gcloud.NotFoundf("cluster %q not found", clusterName)
	}
	delete(p.clusters, key)
	return p.nextOperation(clusterName, "delete"), nil
}

// GetCluster fetches a cluster.
func (p *MemoryProvider) GetCluster(ctx context.Context, project, region, clusterName string) (map[string]any, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	cluster, ok := p.clusters[scopeKey(project, region, clusterName)]
	if !ok {
		return nil, gcloud.NotFoundf("cluster %q not found", clusterName)
	}
	return cluster, nil
}

// ListClusters lists clusters in a region.
func (p *MemoryProvider) ListClusters(ctx context.Context, project, region, filter string, pageSize int) ([]map[string]any, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	prefix := project + "/" + region + "/"
	var items []map[string]any
	for key, cluster := range p.clusters {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		items = append(items, cluster)
		if pageSize > 0 && len(items) >= pageSize {
			break
		}
	}
	return items, nil
}

// SubmitJob submits a job and returns the created job resource.
func (p *MemoryProvider) SubmitJob(ctx context.Context, project, region string, job map[string]any) (map[string]any, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	ref, _ := job["reference"].(map[string]any)
	jobID, _ := ref["job_id"].(string)
	if jobID == "" {
		return nil, gcloud.InvalidArgumentf("job reference must carry a job id")
	}

	placement, _ := job["placement"].(map[string]any)
	clusterName, _ := placement["cluster_name"].(string)
	if _, ok := p.clusters[scopeKey(project, region, clusterName)]; !ok {
		return nil, gcloud.NotFoundf("cluster %q not found", clusterName)
	}

	stored := make(map[string]any, len(job)+1)
	for k, v := range job {
		stored[k] = v
	}
	stored["status"] = map[string]any{
		"state":            "PENDING",
		"state_start_time": time.Now().UTC().Format(time.RFC3339),
	}
	p.jobs[scopeKey(project, region, jobID)] = &memoryJob{data: stored, state: "PENDING"}
	return stored, nil
}

// GetJob fetches a job by id.
func (p *MemoryProvider) GetJob(ctx context.Context, project, region, jobID string) (map[string]any, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	job, ok := p.jobs[scopeKey(project, region, jobID)]
	if !ok {
		return nil, gcloud.NotFoundf("job %q not found", jobID)
	}
	return job.data, nil
}

// ListJobs lists jobs in a region.
func (p *MemoryProvider) ListJobs(ctx context.Context, project, region, clusterName, stateMatcher string, pageSize int) ([]map[string]any, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	prefix := project + "/" + region + "/"
	var items []map[string]any
	for key, job := range p.jobs {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		if clusterName != "" {
			placement, _ := job.data["placement"].(map[string]any)
			if placement["cluster_name"] != clusterName {
				continue
			}
		}
		switch strings.ToLower(stateMatcher) {
		case "active":
			if isTerminalJobState(job.state) {
				continue
			}
		case "non_active":
			if !isTerminalJobState(job.state) {
				continue
			}
		}
		items = append(items, job.data)
		if pageSize > 0 && len(items) >= pageSize {
			break
		}
	}
	return items, nil
}

// CancelJob requests cancellation of a running job.
func (p *MemoryProvider) CancelJob(ctx context.Context, project, region, jobID string) (map[string]any, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	job, ok := p.jobs[scopeKey(project, region, jobID)]
	if !ok {
		return nil, gcloud.NotFoundf("job %q not found", jobID)
	}
	if isTerminalJobState(job.state) {
		return nil, gcloud.NewError(gcloud.KindAlreadyTerminal,
			fmt.Sprintf("job %q is in terminal state %s", jobID, job.state))
	}
	job.state = "CANCELLED"
	job.data["status"] = map[string]any{"state": "CANCELLED"}
	return job.data, nil
}

func isTerminalJobState(state string) bool {
	switch state {
	case "DONE", "ERROR", "CANCELLED":
		return true
	}
	return false
}

// FinishJob marks a job as finished with the given terminal state.
// Test helper for exercising cancellation semantics.
func (p *MemoryProvider) FinishJob(project, region, jobID, state string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if job, ok := p.jobs[scopeKey(project, region, jobID)]; ok {
		job.state = state
		job.data["status"] = map[string]any{"state": state}
	}
}
