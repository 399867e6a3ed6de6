package cli

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/lakeproc/agent-gcp/infrastructure/config"
)

func TestGCPClientConfigsCarryEndpoint(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.GCP.Endpoint = "localhost:8932"
	cfg.GCP.CredentialsFile = "/tmp/sa.json"

	dataplexCfg, dataprocCfg, catalogCfg := gcpClientConfigs(cfg)

	if dataplexCfg.Endpoint != "localhost:8932" {
		t.Errorf("dataplex endpoint = %q, want localhost:8932", dataplexCfg.Endpoint)
	}
	if dataprocCfg.Endpoint != "localhost:8932" {
		t.Errorf("dataproc endpoint = %q, want localhost:8932", dataprocCfg.Endpoint)
	}
	if catalogCfg.Endpoint != "localhost:8932" {
		t.Errorf("catalog endpoint = %q, want localhost:8932", catalogCfg.Endpoint)
	}
	for name, got := range map[string]string{
		"dataplex": dataplexCfg.CredentialsFile,
		"dataproc": dataprocCfg.CredentialsFile,
		"catalog":  catalogCfg.CredentialsFile,
	} {
		if got != "/tmp/sa.json" {
			t.Errorf("%s credentials file = %q, want /tmp/sa.json", name, got)
		}
	}
}

func TestBuildRuntimeInstallsWrappedTools(t *testing.T) {
	rt, err := buildRuntime(context.Background(), config.Default(), true)
	if err != nil {
		t.Fatalf("buildRuntime() error = %v", err)
	}
	defer rt.close()

	tl, ok := rt.tools.Get("dataplex_create_lake")
	if !ok {
		t.Fatal("dataplex_create_lake not registered")
	}

	// Registered tools run through the middleware chain, not bare.
	if !strings.Contains(fmt.Sprintf("%T", tl), "middleware.") {
		t.Errorf("registered tool type = %T, want middleware wrapper", tl)
	}

	result, err := tl.Execute(context.Background(),
		[]byte(`{"project_id":"p","location":"us-central1","lake_id":"raw"}`))
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(string(result.Output), `"pending"`) {
		t.Errorf("Output = %s, want pending outcome", result.Output)
	}
}
