package dataproc

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/lakeproc/agent-gcp/domain/pack"
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

func TestPackContainsAllTools(t *testing.T) {
	t.Parallel()

	p, _ := newTestPack(t)
	if len(p.Tools) != 9 {
		t.Errorf("len(Tools) = %d, want 9", len(p.Tools))
	}
}

func TestCreateClusterPending(t *testing.T) {
	t.Parallel()

	p, _ := newTestPack(t)
	out := callTool(t, p, "dataproc_create_cluster",
		`{"project_id":"p","region":"us-central1","cluster_name":"c1","config":{"master_config":{"num_instances":1}}}`)

	if out.Status != gcloud.StatusPending {
		t.Fatalf("Status = %s, want pending", out.Status)
	}
	if out.OperationName == "" {
		t.Error("pending outcome must carry operation name")
	}
}

func TestCreateClusterMissingRegion(t *testing.T) {
	t.Parallel()

	p, _ := newTestPack(t)
	out := callTool(t, p, "dataproc_create_cluster",
		`{"project_id":"p","cluster_name":"c1","config":{}}`)

	if out.ErrorKind != gcloud.KindInvalidArgument {
		t.Errorf("ErrorKind = %s, want invalid_argument", out.ErrorKind)
	}
}

func TestGetClusterNotFound(t *testing.T) {
	t.Parallel()

	p, _ := newTestPack(t)
	out := callTool(t, p, "dataproc_get_cluster",
		`{"project_id":"p","region":"r","cluster_name":"missing"}`)

	if out.Status != gcloud.StatusFailed {
		t.Fatalf("Status = %s, want failed", out.Status)
	}
	if out.ErrorKind != gcloud.KindNotFound {
		t.Errorf("ErrorKind = %s, want not_found", out.ErrorKind)
	}
}

func TestListClusters(t *testing.T) {
	t.Parallel()

	p, _ := newTestPack(t)
	callTool(t, p, "dataproc_create_cluster",
		`{"project_id":"p","region":"r","cluster_name":"c1","config":{}}`)
	callTool(t, p, "dataproc_create_cluster",
		`{"project_id":"p","region":"r","cluster_name":"c2","config":{}}`)

	out := callTool(t, p, "dataproc_list_clusters", `{"project_id":"p","region":"r"}`)
	if out.Status != gcloud.StatusCompleted {
		t.Fatalf("Status = %s, want completed", out.Status)
	}
	data := out.Data.(map[string]any)
	if data["count"].(float64) != 2 {
		t.Errorf("count = %v, want 2", data["count"])
	}
}

func TestSubmitJobGeneratesID(t *testing.T) {
	t.Parallel()

	p, _ := newTestPack(t)
	callTool(t, p, "dataproc_create_cluster",
		`{"project_id":"p","region":"r","cluster_name":"c1","config":{}}`)

	out := callTool(t, p, "dataproc_submit_job",
		`{"project_id":"p","region":"r","cluster_name":"c1","job_type":"pyspark","job_config":{"main_python_file_uri":"gs://b/main.py"}}`)
	if out.Status != gcloud.StatusCompleted {
		t.Fatalf("Status = %s, want completed: %s", out.Status, out.Error)
	}

	data := out.Data.(map[string]any)
	jobID, _ := data["job_id"].(string)
	if !strings.HasPrefix(jobID, "job-pyspark-") {
		t.Errorf("job_id = %q, want job-pyspark-<suffix>", jobID)
	}
	suffix := strings.TrimPrefix(jobID, "job-pyspark-")
	if len(suffix) != 8 {
		t.Errorf("id suffix %q should be 8 characters", suffix)
	}
}

func TestSubmitJobValidation(t *testing.T) {
	t.Parallel()

	p, _ := newTestPack(t)
	callTool(t, p, "dataproc_create_cluster",
		`{"project_id":"p","region":"r","cluster_name":"c1","config":{}}`)

	tests := []struct {
		name  string
		input string
	}{
		{
			"unsupported type",
			`{"project_id":"p","region":"r","cluster_name":"c1","job_type":"flink","job_config":{}}`,
		},
		{
			"pyspark missing main file",
			`{"project_id":"p","region":"r","cluster_name":"c1","job_type":"pyspark","job_config":{}}`,
		},
		{
			"spark missing main class and jar",
			`{"project_id":"p","region":"r","cluster_name":"c1","job_type":"spark","job_config":{"args":["x"]}}`,
		},
		{
			"spark both main class and jar",
			`{"project_id":"p","region":"r","cluster_name":"c1","job_type":"spark","job_config":{"main_class":"com.example.Main","main_jar_file_uri":"gs://b/app.jar"}}`,
		},
		{
			"hive empty query list",
			`{"project_id":"p","region":"r","cluster_name":"c1","job_type":"hive","job_config":{"query_list":{"queries":[]}}}`,
		},
		{
			"hive both query sources",
			`{"project_id":"p","region":"r","cluster_name":"c1","job_type":"hive","job_config":{"query_file_uri":"gs://q","query_list":{"queries":["SELECT 1"]}}}`,
		},
		{
			"missing cluster name",
			`{"project_id":"p","region":"r","job_type":"pyspark","job_config":{"main_python_file_uri":"gs://b/m.py"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out := callTool(t, p, "dataproc_submit_job", tt.input)
			if out.ErrorKind != gcloud.KindInvalidArgument {
				t.Errorf("ErrorKind = %s, want invalid_argument", out.ErrorKind)
			}
		})
	}
}

func TestNormalizeJobType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"PySpark", "pyspark"},
		{" spark-sql ", "spark_sql"},
		{"SPARK_R", "spark_r"},
		{"trino", "trino"},
	}

	for _, tt := range tests {
		if got := NormalizeJobType(tt.in); got != tt.want {
			t.Errorf("NormalizeJobType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCancelJobAlreadyTerminal(t *testing.T) {
	t.Parallel()

	p, provider := newTestPack(t)
	callTool(t, p, "dataproc_create_cluster",
		`{"project_id":"p","region":"r","cluster_name":"c1","config":{}}`)

	out := callTool(t, p, "dataproc_submit_job",
		`{"project_id":"p","region":"r","cluster_name":"c1","job_type":"pyspark","job_config":{"main_python_file_uri":"gs://b/m.py"}}`)
	jobID := out.Data.(map[string]any)["job_id"].(string)

	cancelInput := `{"project_id":"p","region":"r","job_id":"` + jobID + `"}`
	out = callTool(t, p, "dataproc_cancel_job", cancelInput)
	if out.Status != gcloud.StatusCompleted {
		t.Fatalf("first cancel Status = %s, want completed", out.Status)
	}

	provider.FinishJob("p", "r", jobID, "DONE")
	out = callTool(t, p, "dataproc_cancel_job", cancelInput)
	if out.Status != gcloud.StatusFailed {
		t.Fatalf("second cancel Status = %s, want failed", out.Status)
	}
	if out.ErrorKind != gcloud.KindAlreadyTerminal {
		t.Errorf("ErrorKind = %s, want already_terminal", out.ErrorKind)
	}
}

func TestListJobsFilters(t *testing.T) {
	t.Parallel()

	p, provider := newTestPack(t)
	callTool(t, p, "dataproc_create_cluster",
		`{"project_id":"p","region":"r","cluster_name":"c1","config":{}}`)

	out := callTool(t, p, "dataproc_submit_job",
		`{"project_id":"p","region":"r","cluster_name":"c1","job_type":"pyspark","job_config":{"main_python_file_uri":"gs://b/a.py"}}`)
	doneID := out.Data.(map[string]any)["job_id"].(string)
	callTool(t, p, "dataproc_submit_job",
		`{"project_id":"p","region":"r","cluster_name":"c1","job_type":"pyspark","job_config":{"main_python_file_uri":"gs://b/b.py"}}`)

	provider.FinishJob("p", "r", doneID, "DONE")

	out = callTool(t, p, "dataproc_list_jobs",
		`{"project_id":"p","region":"r","state_matcher":"active"}`)
	if got := out.Data.(map[string]any)["count"].(float64); got != 1 {
		t.Errorf("active count = %v, want 1", got)
	}

	out = callTool(t, p, "dataproc_list_jobs",
		`{"project_id":"p","region":"r","state_matcher":"non_active"}`)
	if got := out.Data.(map[string]any)["count"].(float64); got != 1 {
		t.Errorf("non_active count = %v, want 1", got)
	}

	out = callTool(t, p, "dataproc_list_jobs", `{"project_id":"p","region":"r"}`)
	if got := out.Data.(map[string]any)["count"].(float64); got != 2 {
		t.Errorf("total count = %v, want 2", got)
	}
}

func TestUpdateClusterMaskValidation(t *testing.T) {
	t.Parallel()

	p, _ := newTestPack(t)
	callTool(t, p, "dataproc_create_cluster",
		`{"project_id":"p","region":"r","cluster_name":"c1","config":{}}`)

	out := callTool(t, p, "dataproc_update_cluster",
		`{"project_id":"p","region":"r","cluster_name":"c1","update_mask":["worker_config.num_instances"],"config":{"worker_config":{"num_instances":4}}}`)
	if out.Status != gcloud.StatusPending {
		t.Fatalf("Status = %s, want pending: %s", out.Status, out.Error)
	}

	out = callTool(t, p, "dataproc_update_cluster",
		`{"project_id":"p","region":"r","cluster_name":"c1","update_mask":[],"config":{}}`)
	if out.ErrorKind != gcloud.KindInvalidArgument {
		t.Errorf("empty mask ErrorKind = %s, want invalid_argument", out.ErrorKind)
	}
}
