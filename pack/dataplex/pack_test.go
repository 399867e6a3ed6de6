package dataplex

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/lakeproc/agent-gcp/domain/pack"
	"github.com/lakeproc/agent-gcp/domain/tool"
	"github.com/lakeproc/agent-gcp/gcloud"
)

func newTestPack(t *testing.T) (*pack.Pack, *MemoryProvider) {
	t.Helper()

	provider := NewMemoryProvider()
	p, err := New(provider)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return p, provider
}

func callTool(t *testing.T, p *pack.Pack, name, input string) *gcloud.Outcome {
	t.Helper()

	tl, ok := p.GetTool(name)
	if !ok {
		t.Fatalf("tool %s not found in pack", name)
	}
	res, err := tl.Execute(context.Background(), json.RawMessage(input))
	if err != nil {
		t.Fatalf("%s returned error instead of outcome: %v", name, err)
	}
	var out gcloud.Outcome
	if err := json.Unmarshal(res.Output, &out); err != nil {
		t.Fatalf("output is not an outcome: %v", err)
	}
	return &out
}

func TestNewRequiresProvider(t *testing.T) {
	t.Parallel()

	if _, err := New(nil); err == nil {
		t.Error("expected error for nil provider")
	}
}

func TestPackContainsAllTools(t *testing.T) {
	t.Parallel()

	p, _ := newTestPack(t)
	if len(p.Tools) != 24 {
		t.Errorf("len(Tools) = %d, want 24", len(p.Tools))
	}

	for _, name := range []string{
		"dataplex_create_lake", "dataplex_list_zones", "dataplex_update_asset",
		"dataplex_run_task", "dataplex_cancel_job",
	} {
		if _, ok := p.GetTool(name); !ok {
			t.Errorf("tool %s missing from pack", name)
		}
	}
}

func TestCreateLakePending(t *testing.T) {
	t.Parallel()

	p, _ := newTestPack(t)
	out := callTool(t, p, "dataplex_create_lake",
		`{"project_id":"p","location":"us-central1","lake_id":"lk","config":{"display_name":"Lake"}}`)

	if out.Status != gcloud.StatusPending {
		t.Fatalf("Status = %s, want pending", out.Status)
	}
	if out.OperationName == "" {
		t.Error("pending outcome must carry operation name")
	}
}

func TestCreateLakeMissingID(t *testing.T) {
	t.Parallel()

	p, provider := newTestPack(t)
	out := callTool(t, p, "dataplex_create_lake",
		`{"project_id":"p","location":"us-central1","config":{}}`)

	if out.Status != gcloud.StatusFailed {
		t.Fatalf("Status = %s, want failed", out.Status)
	}
	if out.ErrorKind != gcloud.KindInvalidArgument {
		t.Errorf("ErrorKind = %s, want invalid_argument", out.ErrorKind)
	}

	lakes, err := provider.ListLakes(context.Background(), "projects/p/locations/us-central1", 0, "")
	if err != nil {
		t.Fatalf("ListLakes: %v", err)
	}
	if len(lakes) != 0 {
		t.Error("no lake should have been created")
	}
}

func TestGetLakeNotFound(t *testing.T) {
	t.Parallel()

	p, _ := newTestPack(t)
	out := callTool(t, p, "dataplex_get_lake",
		`{"project_id":"p","location":"us-central1","lake_id":"missing"}`)

	if out.Status != gcloud.StatusFailed {
		t.Fatalf("Status = %s, want failed", out.Status)
	}
	if out.ErrorKind != gcloud.KindNotFound {
		t.Errorf("ErrorKind = %s, want not_found", out.ErrorKind)
	}
}

func TestCreateAndGetZoneSanitizesConfig(t *testing.T) {
	t.Parallel()

	p, _ := newTestPack(t)
	callTool(t, p, "dataplex_create_lake",
		`{"project_id":"p","location":"l","lake_id":"lk","config":{}}`)

	out := callTool(t, p, "dataplex_create_zone",
		`{"project_id":"p","location":"l","lake_id":"lk","zone_id":"raw","config":{"type":"RAW"}}`)
	if out.Status != gcloud.StatusPending {
		t.Fatalf("Status = %s, want pending", out.Status)
	}

	got := callTool(t, p, "dataplex_get_zone",
		`{"project_id":"p","location":"l","lake_id":"lk","zone_id":"raw"}`)
	if got.Status != gcloud.StatusCompleted {
		t.Fatalf("Status = %s, want completed", got.Status)
	}

	zone, ok := got.Data.(map[string]any)
	if !ok {
		t.Fatalf("Data = %T", got.Data)
	}
	if zone["type_"] != "RAW" {
		t.Errorf("type_ = %v, want RAW", zone["type_"])
	}
	if _, exists := zone["type"]; exists {
		t.Error("reserved key should have been renamed")
	}
}

func TestCreateAssetRequiresResourceSpec(t *testing.T) {
	t.Parallel()

	p, _ := newTestPack(t)
	out := callTool(t, p, "dataplex_create_asset",
		`{"project_id":"p","location":"l","lake_id":"lk","zone_id":"z","asset_id":"a","config":{}}`)

	if out.ErrorKind != gcloud.KindInvalidArgument {
		t.Errorf("ErrorKind = %s, want invalid_argument", out.ErrorKind)
	}
}

func TestCreateTaskRequiresWorkload(t *testing.T) {
	t.Parallel()

	p, _ := newTestPack(t)
	out := callTool(t, p, "dataplex_create_task",
		`{"project_id":"p","location":"l","lake_id":"lk","task_id":"t1","config":{"trigger_spec":{"type":"ON_DEMAND"},"execution_spec":{}}}`)

	if out.Status != gcloud.StatusFailed {
		t.Fatalf("Status = %s, want failed", out.Status)
	}
	if out.ErrorKind != gcloud.KindInvalidArgument {
		t.Errorf("ErrorKind = %s, want invalid_argument", out.ErrorKind)
	}
}

func TestUpdateLakeMaskValidation(t *testing.T) {
	t.Parallel()

	p, _ := newTestPack(t)
	callTool(t, p, "dataplex_create_lake",
		`{"project_id":"p","location":"l","lake_id":"lk","config":{"description":"old"}}`)

	out := callTool(t, p, "dataplex_update_lake",
		`{"project_id":"p","location":"l","lake_id":"lk","update_mask":["display_name"],"config":{"description":"new"}}`)
	if out.ErrorKind != gcloud.KindInvalidArgument {
		t.Errorf("mask path not in config: ErrorKind = %s, want invalid_argument", out.ErrorKind)
	}

	out = callTool(t, p, "dataplex_update_lake",
		`{"project_id":"p","location":"l","lake_id":"lk","update_mask":["description"],"config":{"description":"new"}}`)
	if out.Status != gcloud.StatusPending {
		t.Errorf("Status = %s, want pending", out.Status)
	}
}

func TestRunTaskAndCancelJob(t *testing.T) {
	t.Parallel()

	p, provider := newTestPack(t)
	callTool(t, p, "dataplex_create_lake",
		`{"project_id":"p","location":"l","lake_id":"lk","config":{}}`)
	callTool(t, p, "dataplex_create_task",
		`{"project_id":"p","location":"l","lake_id":"lk","task_id":"t1","config":{"trigger_spec":{"type":"ON_DEMAND"},"execution_spec":{"service_account":"sa"},"spark":{"python_script_file":"gs://bucket/job.py"}}}`)

	out := callTool(t, p, "dataplex_run_task",
		`{"project_id":"p","location":"l","lake_id":"lk","task_id":"t1"}`)
	if out.Status != gcloud.StatusCompleted {
		t.Fatalf("Status = %s, want completed", out.Status)
	}
	job := out.Data.(map[string]any)
	jobName, _ := job["name"].(string)
	if jobName == "" {
		t.Fatal("run task should return the started job")
	}

	// The job id is the last path segment.
	jobID := jobName[len("projects/p/locations/l/lakes/lk/tasks/t1/jobs/"):]

	cancelInput := `{"project_id":"p","location":"l","lake_id":"lk","task_id":"t1","job_id":"` + jobID + `"}`
	out = callTool(t, p, "dataplex_cancel_job", cancelInput)
	if out.Status != gcloud.StatusCompleted {
		t.Fatalf("cancel Status = %s, want completed", out.Status)
	}

	// A second cancel hits a job already in a terminal state.
	provider.FinishJob(jobName, "CANCELLED")
	out = callTool(t, p, "dataplex_cancel_job", cancelInput)
	if out.Status != gcloud.StatusFailed {
		t.Fatalf("second cancel Status = %s, want failed", out.Status)
	}
	if out.ErrorKind != gcloud.KindAlreadyTerminal {
		t.Errorf("ErrorKind = %s, want already_terminal", out.ErrorKind)
	}
}

func TestListJobs(t *testing.T) {
	t.Parallel()

	p, _ := newTestPack(t)
	callTool(t, p, "dataplex_create_lake",
		`{"project_id":"p","location":"l","lake_id":"lk","config":{}}`)
	callTool(t, p, "dataplex_create_task",
		`{"project_id":"p","location":"l","lake_id":"lk","task_id":"t1","config":{"trigger_spec":{"type":"ON_DEMAND"},"execution_spec":{},"spark":{"python_script_file":"gs://bucket/job.py"}}}`)
	callTool(t, p, "dataplex_run_task",
		`{"project_id":"p","location":"l","lake_id":"lk","task_id":"t1"}`)

	out := callTool(t, p, "dataplex_list_jobs",
		`{"project_id":"p","location":"l","lake_id":"lk","task_id":"t1"}`)
	if out.Status != gcloud.StatusCompleted {
		t.Fatalf("Status = %s, want completed", out.Status)
	}
	data := out.Data.(map[string]any)
	if data["count"].(float64) != 1 {
		t.Errorf("count = %v, want 1", data["count"])
	}
}

func TestReadToolsAreReadOnly(t *testing.T) {
	t.Parallel()

	p, _ := newTestPack(t)
	for _, name := range readTools {
		tl, ok := p.GetTool(name)
		if !ok {
			t.Fatalf("tool %s missing", name)
		}
		if !tl.Annotations().ReadOnly {
			t.Errorf("%s should be read-only", name)
		}
	}

	del, _ := p.GetTool("dataplex_delete_lake")
	if !del.Annotations().Destructive {
		t.Error("delete tool should be destructive")
	}
	if del.Annotations().RiskLevel < tool.RiskHigh {
		t.Error("delete tool should be high risk")
	}
}
