package gcloud

import (
	"reflect"
	"testing"
)

func TestSanitizeConfigRenamesNestedKeys(t *testing.T) {
	t.Parallel()

	cfg := map[string]any{
		"resource_spec": map[string]any{
			"type": "STORAGE_BUCKET",
			"name": "projects/p/buckets/b",
		},
		"discovery_spec": map[string]any{
			"enabled": true,
		},
	}

	got := SanitizeConfig(cfg)

	spec := got["resource_spec"].(map[string]any)
	if spec["type_"] != "STORAGE_BUCKET" {
		t.Errorf("type_ = %v, want STORAGE_BUCKET", spec["type_"])
	}
	if _, exists := spec["type"]; exists {
		t.Error("reserved key should be renamed away")
	}

	// The original config must not be mutated.
	if _, exists := cfg["resource_spec"].(map[string]any)["type"]; !exists {
		t.Error("input config was mutated")
	}
}

func TestSanitizeConfigIdempotent(t *testing.T) {
	t.Parallel()

	cfg := map[string]any{
		"zone": map[string]any{"type_": "RAW"},
	}

	once := SanitizeConfig(cfg)
	twice := SanitizeConfig(once)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("sanitize not idempotent: %v vs %v", once, twice)
	}
	if once["zone"].(map[string]any)["type_"] != "RAW" {
		t.Error("already sanitized key should be preserved")
	}
}

func TestSanitizeConfigInsideLists(t *testing.T) {
	t.Parallel()

	cfg := map[string]any{
		"rules": []any{
			map[string]any{"type": "ALLOW"},
			map[string]any{"type": "DENY"},
		},
	}

	got := SanitizeConfig(cfg)

	rules := got["rules"].([]any)
	for i, r := range rules {
		rule := r.(map[string]any)
		if _, exists := rule["type"]; exists {
			t.Errorf("rules[%d] still carries reserved key", i)
		}
		if rule["type_"] == nil {
			t.Errorf("rules[%d] missing renamed key", i)
		}
	}
}

func TestDesanitizeRoundTrip(t *testing.T) {
	t.Parallel()

	original := map[string]any{
		"resource_spec": map[string]any{"type": "BIGQUERY_DATASET"},
		"nested": map[string]any{
			"deeper": map[string]any{"type": "X"},
		},
	}

	back := Desanitize(SanitizeConfig(original))
	if !reflect.DeepEqual(back, original) {
		t.Errorf("round trip mismatch: %v vs %v", back, original)
	}
}

func TestBuildUpdate(t *testing.T) {
	t.Parallel()

	spec, err := BuildUpdate("projects/p/locations/l/lakes/lk",
		[]string{"description", "labels"},
		map[string]any{"description": "d", "labels": map[string]any{"env": "dev"}})
	if err != nil {
		t.Fatalf("BuildUpdate() error = %v", err)
	}
	if spec.Name != "projects/p/locations/l/lakes/lk" {
		t.Errorf("Name = %q", spec.Name)
	}
	if len(spec.Paths) != 2 {
		t.Errorf("Paths = %v", spec.Paths)
	}
}

func TestBuildUpdateValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		res  string
		mask []string
		cfg  map[string]any
	}{
		{"empty name", "", []string{"description"}, map[string]any{"description": "d"}},
		{"empty mask", "projects/p/locations/l/lakes/lk", nil, map[string]any{"description": "d"}},
		{"mask path missing from config", "projects/p/locations/l/lakes/lk",
			[]string{"display_name"}, map[string]any{"description": "d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := BuildUpdate(tt.res, tt.mask, tt.cfg)
			if Classify(err) != KindInvalidArgument {
				t.Errorf("Classify(err) = %s, want %s", Classify(err), KindInvalidArgument)
			}
		})
	}
}

func TestBuildUpdateDottedMaskPath(t *testing.T) {
	t.Parallel()

	_, err := BuildUpdate("projects/p/locations/l/lakes/lk/zones/z",
		[]string{"discovery_spec.enabled"},
		map[string]any{"discovery_spec": map[string]any{"enabled": false}})
	if err != nil {
		t.Errorf("dotted path rooted in config should pass, got %v", err)
	}
}

func TestRequireSections(t *testing.T) {
	t.Parallel()

	cfg := map[string]any{
		"gce_cluster_config": map[string]any{"zone_uri": "z"},
		"worker_count":       2,
	}

	if err := RequireSections(cfg, "gce_cluster_config"); err != nil {
		t.Errorf("present section should pass, got %v", err)
	}
	if err := RequireSections(cfg, "software_config"); Classify(err) != KindInvalidArgument {
		t.Error("missing section should be invalid_argument")
	}
	if err := RequireSections(cfg, "worker_count"); Classify(err) != KindInvalidArgument {
		t.Error("non-object section should be invalid_argument")
	}
}

func TestRequireOneOf(t *testing.T) {
	t.Parallel()

	key, err := RequireOneOf(map[string]any{"query_file_uri": "gs://q.sql"},
		"query_file_uri", "query_list")
	if err != nil {
		t.Fatalf("RequireOneOf() error = %v", err)
	}
	if key != "query_file_uri" {
		t.Errorf("key = %q", key)
	}

	if _, err := RequireOneOf(map[string]any{}, "a", "b"); Classify(err) != KindInvalidArgument {
		t.Error("none set should be invalid_argument")
	}
	if _, err := RequireOneOf(map[string]any{"a": 1, "b": 2}, "a", "b"); Classify(err) != KindInvalidArgument {
		t.Error("both set should be invalid_argument")
	}
}

func TestLabelsFrom(t *testing.T) {
	t.Parallel()

	labels, err := LabelsFrom(map[string]any{
		"labels": map[string]any{"team": "data", "env": "prod"},
	})
	if err != nil {
		t.Fatalf("LabelsFrom() error = %v", err)
	}
	if labels["team"] != "data" || labels["env"] != "prod" {
		t.Errorf("labels = %v", labels)
	}

	if got, err := LabelsFrom(map[string]any{}); err != nil || got != nil {
		t.Errorf("absent labels should be nil, got %v, %v", got, err)
	}
	if _, err := LabelsFrom(map[string]any{"labels": map[string]any{"n": 1}}); Classify(err) != KindInvalidArgument {
		t.Error("non-string label should be invalid_argument")
	}
}
