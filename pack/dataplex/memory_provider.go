package dataplex

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
	resources map[string]map[string]any
	jobs      map[string]*memoryJob
	opCounter int
}

type memoryJob struct {
	data  map[string]any
	state string
}

// NewMemoryProvider creates a new in-memory Dataplex provider.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{
		resources: make(map[string]map[string]any),
		jobs:      make(map[string]*memoryJob),
	}
}

// Name returns the provider name.
func (p *MemoryProvider) Name() string {
	return "memory"
}

func (p *MemoryProvider) nextOperation(name, verb string) *gcloud.LRO {
	p.opCounter++
	return &gcloud.LRO{
		Name: fmt.Sprintf("operations/op-%d", p.opCounter),
		Metadata: map[string]any{
			"target": name,
			"verb":   verb,
		},
	}
}

func (p *MemoryProvider) create(parent, collection, id string, cfg map[string]any) (*gcloud.LRO, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	name := parent + "/" + collection + "/" + id
	if _, exists := p.resources[name]; exists {
		return nil, gcloud.InvalidArgumentf("resource %q already exists", name)
	}

	stored := gcloud.SanitizeConfig(cfg)
	stored["name"] = name
	stored["state"] = "ACTIVE"
	stored["create_time"] = time.Now().UTC().Format(time.RFC3339)
	p.resources[name] = stored

	return p.nextOperation(name, "create"), nil
}

func (p *MemoryProvider) update(spec *gcloud.UpdateSpec) (*gcloud.LRO, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	existing, ok := p.resources[spec.Name]
	if !ok {
		return nil, gcloud.NotFoundf("resource %q not found", spec.Name)
	}
	for _, path := range spec.Paths {
		root := path
		if i := strings.IndexByte(path, '.'); i >= 0 {
			root = path[:i]
		}
		existing[root] = spec.Config[root]
	}

	return p.nextOperation(spec.Name, "update"), nil
}

func (p *MemoryProvider) delete(name string) (*gcloud.LRO, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.resources[name]; !ok {
		return nil, gcloud.NotFoundf("resource %q not found", name)
	}
	delete(p.resources, name)

	return p.nextOperation(name, "delete"), nil
}

func (p *MemoryProvider) get(name string) (map[string]any, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	res, ok := p.resources[name]
	if !ok {
		return nil, gcloud.NotFoundf("resource %q not found", name)
	}
	return res, nil
}

func (p *MemoryProvider) list(parent, collection string, pageSize int) ([]map[string]any, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	prefix := parent + "/" + collection + "/"
	var items []map[string]any
	for name, res := range p.resources {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		// Children of children carry extra path segments.
		if strings.ContainsRune(name[len(prefix):], '/') {
			continue
		}
		items = append(items, res)
		if pageSize > 0 && len(items) >= pageSize {
			break
		}
	}
	return items, nil
}

// CreateLake creates a lake under the given parent location.
func (p *MemoryProvider) CreateLake(ctx context.Context, parent, lakeID string, cfg map[string]any) (*gcloud.LRO, error) {
	return p.create(parent, "lakes", lakeID, cfg)
}

// UpdateLake applies a masked update to a lake.
func (p *MemoryProvider) UpdateLake(ctx context.Context, spec *gcloud.UpdateSpec) (*gcloud.LRO, error) {
	return p.update(spec)
}

// DeleteLake deletes a lake by canonical name.
func (p *MemoryProvider) DeleteLake(ctx context.Context, name string) (*gcloud.LRO, error) {
	return p.delete(name)
}

// GetLake fetches a lake by canonical name.
func (p *MemoryProvider) GetLake(ctx context.Context, name string) (map[string]any, error) {
	return p.get(name)
}

// ListLakes lists lakes under a location.
func (p *MemoryProvider) ListLakes(ctx context.Context, parent string, pageSize int, filter string) ([]map[string]any, error) {
	return p.list(parent, "lakes", pageSize)
}

// CreateZone creates a zone under the given lake.
func (p *MemoryProvider) CreateZone(ctx context.Context, parent, zoneID string, cfg map[string]any) (*gcloud.LRO, error) {
	return p.create(parent, "zones", zoneID, cfg)
}

// UpdateZone applies a masked update to a zone.
func (p *MemoryProvider) UpdateZone(ctx context.Context, spec *gcloud.UpdateSpec) (*gcloud.LRO, error) {
	return p.update(spec)
}

// DeleteZone deletes a zone by canonical name.
func (p *MemoryProvider) DeleteZone(ctx context.Context, name string) (*gcloud.LRO, error) {
	return p.delete(name)
}

// GetZone fetches a zone by canonical name.
func (p *MemoryProvider) GetZone(ctx context.Context, name string) (map[string]any, error) {
	return p.get(name)
}

// ListZones lists zones under a lake.
func (p *MemoryProvider) ListZones(ctx context.Context, parent string, pageSize int, filter string) ([]map[string]any, error) {
	return p.list(parent, "zones", pageSize)
}

// CreateAsset creates an asset under the given zone.
func (p *MemoryProvider) CreateAsset(ctx context.Context, parent, assetID string, cfg map[string]any) (*gcloud.LRO, error) {
	return p.create(parent, "assets", assetID, cfg)
}

// UpdateAsset applies a masked update to an asset.
func (p *MemoryProvider) UpdateAsset(ctx context.Context, spec *gcloud.UpdateSpec) (*gcloud.LRO, error) {
	return p.update(spec)
}

// DeleteAsset deletes an asset by canonical name.
func (p *MemoryProvider) DeleteAsset(ctx context.Context, name string) (*gcloud.LRO, error) {
	return p.delete(name)
}

// GetAsset fetches an asset by canonical name.
func (p *MemoryProvider) GetAsset(ctx context.Context, name string) (map[string]any, error) {
	return p.get(name)
}

// ListAssets lists assets under a zone.
func (p *MemoryProvider) ListAssets(ctx context.Context, parent string, pageSize int, filter string) ([]map[string]any, error) {
	return p.list(parent, "assets", pageSize)
}

// CreateTask creates a task under the given lake.
func (p *MemoryProvider) CreateTask(ctx context.Context, parent, taskID string, cfg map[string]any) (*gcloud.LRO, error) {
	return p.create(parent, "tasks", taskID, cfg)
}

// UpdateTask applies a masked update to a task.
func (p *MemoryProvider) UpdateTask(ctx context.Context, spec *gcloud.UpdateSpec) (*gcloud.LRO, error) {
	return p.update(spec)
}

// DeleteTask deletes a task by canonical name.
func (p *MemoryProvider) DeleteTask(ctx context.Context, name string) (*gcloud.LRO, error) {
	return p.delete(name)
}

// GetTask fetches a task by canonical name.
func (p *MemoryProvider) GetTask(ctx context.Context, name string) (map[string]any, error) {
	return p.get(name)
}

// ListTasks lists tasks under a lake.
func (p *MemoryProvider) ListTasks(ctx context.Context, parent string, pageSize int, filter string) ([]map[string]any, error) {
	return p.list(parent, "tasks", pageSize)
}

// RunTask triggers an on-demand run of a task and returns the started job.
func (p *MemoryProvider) RunTask(ctx context.Context, name string, labels map[string]string, args map[string]string) (map[string]any, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.resources[name]; !ok {
		return nil, gcloud.NotFoundf("task %q not found", name)
	}

	p.opCounter++
	jobName := fmt.Sprintf("%s/jobs/job-%d", name, p.opCounter)
	job := &memoryJob{
		state: "RUNNING",
		data: map[string]any{
			"name":       jobName,
			"state":      "RUNNING",
			"start_time": time.Now().UTC().Format(time.RFC3339),
		},
	}
	if len(labels) > 0 {
		job.data["labels"] = labels
	}
	p.jobs[jobName] = job

	return job.data, nil
}

// GetJob fetches a task job by canonical name.
func (p *MemoryProvider) GetJob(ctx context.Context, name string) (map[string]any, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	job, ok := p.jobs[name]
	if !ok {
		return nil, gcloud.NotFoundf("job %q not found", name)
	}
	return job.data, nil
}

// ListJobs lists jobs under a task.
func (p *MemoryProvider) ListJobs(ctx context.Context, parent string, pageSize int) ([]map[string]any, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	prefix := parent + "/jobs/"
	var items []map[string]any
	for name, job := range p.jobs {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		items = append(items, job.data)
		if pageSize > 0 && len(items) >= pageSize {
			break
		}
	}
	return items, nil
}

// CancelJob cancels a running task job.
func (p *MemoryProvider) CancelJob(ctx context.Context, name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	job, ok := p.jobs[name]
	if !ok {
		return gcloud.NotFoundf("job %q not found", name)
	}
	switch job.state {
	case "SUCCEEDED", "FAILED", "CANCELLED":
		return gcloud.NewError(gcloud.KindAlreadyTerminal,
			fmt.Sprintf("job %q is in terminal state %s", name, job.state))
	}
	job.state = "CANCELLED"
	job.data["state"] = "CANCELLED"
	return nil
}

// FinishJob marks a job as finished with the given terminal state.
// Test helper for exercising cancellation semantics.
func (p *MemoryProvider) FinishJob(name, state string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if job, ok := p.jobs[name]; ok {
		job.state = state
		job.data["state"] = state
	}
}
