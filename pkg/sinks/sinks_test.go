package sinks

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRegistryEnabledFilter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sinks.yaml")
	raw := `
sinks:
  - id: hook1
    type: http
    enabled: false
    http:
      url: https://example.com
  - id: hook2
    type: http
    enabled: true
    http:
      url: https://example.com/2
  - id: console
    type: log
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	enabled := reg.Enabled()
	if len(enabled) != 2 {
		t.Fatalf("expected 2 enabled sinks, got %#v", enabled)
	}
	if enabled[0].ID != "hook2" || enabled[1].ID != "console" {
		t.Fatalf("unexpected enabled set: %#v", enabled)
	}
}

func TestLoadRegistryDefaultsHTTPFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sinks.yaml")
	raw := `
sinks:
  - id: hook
    type: http
    http:
      url: https://example.com
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	cfg, ok := reg.ByID("hook")
	if !ok {
		t.Fatalf("sink hook not loaded")
	}
	if cfg.HTTP.Method != "POST" {
		t.Fatalf("default method = %s, want POST", cfg.HTTP.Method)
	}
	if cfg.HTTP.TimeoutSeconds != 5 {
		t.Fatalf("default timeout = %d, want 5", cfg.HTTP.TimeoutSeconds)
	}
}

func TestValidateSinkConfigRejectsMissingHTTP(t *testing.T) {
	err := validateSinkConfig(SinkConfig{
		ID:   "h1",
		Type: TypeHTTP,
	})
	if err == nil {
		t.Fatalf("expected validation error for missing http block")
	}
}

func TestValidateSinkConfigRejectsIncompleteSQS(t *testing.T) {
	err := validateSinkConfig(SinkConfig{
		ID:   "q1",
		Type: TypeSQS,
		SQS:  &SQSSinkConfig{QueueURL: "https://example.com/queue"},
	})
	if err == nil {
		t.Fatalf("expected validation error for missing sqs region")
	}
}

func TestValidateSinkConfigRejectsIncompletePubSub(t *testing.T) {
	err := validateSinkConfig(SinkConfig{
		ID:     "g1",
		Type:   TypePubSub,
		PubSub: &PubSubSinkConfig{ProjectID: "p"},
	})
	if err == nil {
		t.Fatalf("expected validation error for missing pubsub topic")
	}
}
