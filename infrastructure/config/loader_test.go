package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadYAML(t *testing.T) {
	loader := NewLoader()

	cfg, err := loader.LoadString(`
server:
  name: lakeproc
  version: 2.0.0
gcp:
  project: demo-project
  location: us-central1
  region: us-central1
logging:
  level: debug
  format: json
tools:
  timeout: 30s
  job_id_prefix: etl
`, FormatYAML)
	if err != nil {
		t.Fatalf("LoadString() error = %v", err)
	}

	if cfg.Server.Name != "lakeproc" {
		t.Errorf("Server.Name = %q", cfg.Server.Name)
	}
	if cfg.GCP.Project != "demo-project" {
		t.Errorf("GCP.Project = %q", cfg.GCP.Project)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q", cfg.Logging.Level)
	}
	if cfg.Tools.Timeout.Duration() != 30*time.Second {
		t.Errorf("Tools.Timeout = %v", cfg.Tools.Timeout)
	}
	if cfg.Tools.JobIDPrefix != "etl" {
		t.Errorf("Tools.JobIDPrefix = %q", cfg.Tools.JobIDPrefix)
	}
}

func TestLoadJSON(t *testing.T) {
	loader := NewLoader()

	cfg, err := loader.LoadString(`{"gcp":{"project":"p1","region":"europe-west1"}}`, FormatJSON)
	if err != nil {
		t.Fatalf("LoadString() error = %v", err)
	}
	if cfg.GCP.Project != "p1" {
		t.Errorf("GCP.Project = %q", cfg.GCP.Project)
	}
	if cfg.GCP.Region != "europe-west1" {
		t.Errorf("GCP.Region = %q", cfg.GCP.Region)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	loader := NewLoader()

	cfg, err := loader.LoadString(`gcp: {project: p}`, FormatYAML)
	if err != nil {
		t.Fatalf("LoadString() error = %v", err)
	}
	if cfg.Server.Name != "agent-gcp" {
		t.Errorf("Server.Name = %q, want agent-gcp", cfg.Server.Name)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
	if cfg.Tools.Timeout.Duration() != 60*time.Second {
		t.Errorf("Tools.Timeout = %v, want 60s", cfg.Tools.Timeout)
	}
	if cfg.Tools.JobIDPrefix != "job" {
		t.Errorf("Tools.JobIDPrefix = %q, want job", cfg.Tools.JobIDPrefix)
	}
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("TEST_AGENT_PROJECT", "env-project")

	loader := NewLoader()
	cfg, err := loader.LoadString(`gcp: {project: "${TEST_AGENT_PROJECT}"}`, FormatYAML)
	if err != nil {
		t.Fatalf("LoadString() error = %v", err)
	}
	if cfg.GCP.Project != "env-project" {
		t.Errorf("GCP.Project = %q, want env-project", cfg.GCP.Project)
	}
}

func TestLoadEnvDefault(t *testing.T) {
	os.Unsetenv("TEST_AGENT_UNSET")

	loader := NewLoader()
	cfg, err := loader.LoadString(`gcp: {region: "${TEST_AGENT_UNSET:-us-east1}"}`, FormatYAML)
	if err != nil {
		t.Fatalf("LoadString() error = %v", err)
	}
	if cfg.GCP.Region != "us-east1" {
		t.Errorf("GCP.Region = %q, want us-east1", cfg.GCP.Region)
	}
}

func TestLoadRequiredEnvMissing(t *testing.T) {
	os.Unsetenv("TEST_AGENT_REQUIRED")

	loader := NewLoader()
	_, err := loader.LoadString(`gcp: {project: "${TEST_AGENT_REQUIRED:?project is required}"}`, FormatYAML)
	if !errors.Is(err, ErrMissingEnvVar) {
		t.Errorf("error = %v, want ErrMissingEnvVar", err)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	loader := NewLoader()
	if _, err := loader.LoadString("{not valid: [yaml", FormatYAML); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("error = %v, want ErrInvalidFormat", err)
	}
}

func TestLoadFileNotFound(t *testing.T) {
	loader := NewLoader()
	if _, err := loader.LoadFile("/nonexistent/agent.yaml"); !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("error = %v, want ErrConfigNotFound", err)
	}
}

func TestLoadFileUnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "agent.toml")
	if err := os.WriteFile(path, []byte("x = 1"), 0o600); err != nil {
		t.Fatal(err)
	}

	loader := NewLoader()
	if _, err := loader.LoadFile(path); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestLoadFileYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "agent.yaml")
	content := []byte("gcp:\n  project: file-project\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}

	loader := NewLoader()
	cfg, err := loader.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.GCP.Project != "file-project" {
		t.Errorf("GCP.Project = %q, want file-project", cfg.GCP.Project)
	}
}
