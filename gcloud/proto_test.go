package gcloud

import (
	"testing"
	"time"

	"cloud.google.com/go/dataplex/apiv1/dataplexpb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

func TestConfigToProto(t *testing.T) {
	t.Parallel()

	cfg := map[string]any{
		"type_": "RAW",
		"discovery_spec": map[string]any{
			"enabled": true,
		},
		"resource_spec": map[string]any{
			"location_type": "SINGLE_REGION",
		},
	}

	var zone dataplexpb.Zone
	if err := ConfigToProto(cfg, &zone); err != nil {
		t.Fatalf("ConfigToProto() error = %v", err)
	}

	if zone.GetType() != dataplexpb.Zone_RAW {
		t.Errorf("Type = %v, want RAW", zone.GetType())
	}
	if !zone.GetDiscoverySpec().GetEnabled() {
		t.Error("DiscoverySpec.Enabled should be true")
	}
	if zone.GetResourceSpec().GetLocationType() != dataplexpb.Zone_ResourceSpec_SINGLE_REGION {
		t.Errorf("LocationType = %v", zone.GetResourceSpec().GetLocationType())
	}
}

func TestConfigToProtoRejectsUnknownField(t *testing.T) {
	t.Parallel()

	cfg := map[string]any{"no_such_field": 1}

	var lake dataplexpb.Lake
	err := ConfigToProto(cfg, &lake)
	if Classify(err) != KindInvalidArgument {
		t.Errorf("Classify(err) = %s, want %s", Classify(err), KindInvalidArgument)
	}
}

func TestMessageToMap(t *testing.T) {
	t.Parallel()

	created := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	lake := &dataplexpb.Lake{
		Name:        "projects/p/locations/l/lakes/lk",
		DisplayName: "Raw Lake",
		State:       dataplexpb.State_ACTIVE,
		CreateTime:  timestamppb.New(created),
		Labels:      map[string]string{"env": "dev"},
	}

	got := MessageToMap(lake)

	if got["name"] != "projects/p/locations/l/lakes/lk" {
		t.Errorf("name = %v", got["name"])
	}
	if got["state"] != "ACTIVE" {
		t.Errorf("state = %v, want enum name", got["state"])
	}
	if got["create_time"] != "2026-03-14T09:30:00Z" {
		t.Errorf("create_time = %v", got["create_time"])
	}
	labels, ok := got["labels"].(map[string]any)
	if !ok || labels["env"] != "dev" {
		t.Errorf("labels = %v", got["labels"])
	}
}

func TestMessageToMapNil(t *testing.T) {
	t.Parallel()

	if got := MessageToMap(nil); got != nil {
		t.Errorf("MessageToMap(nil) = %v, want nil", got)
	}
}
