package config

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleConfig = `
probe:
  nats_url: "nats://127.0.0.1:4222"
  subject: "sessions.intervals"

collector:
  snapshot_interval: "30s"
  max_bins: 1000000
  size_of_input_channel: 512
  writers:
    - type: "text"
      enabled: true
      text:
        root_path: "/tmp/snapshots"
    - type: "clickhouse"
      enabled: false
      clickhouse:
        host: "127.0.0.1"
        port: 9000
        database: "default"
        username: "default"
        password: ""

alerter:
  enabled: true
  rules:
    - name: "High concurrency"
      metric: "peak_concurrency"
      operator: ">"
      threshold: 1000

api:
  http_listen_addr: ":8080"
`

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(sampleConfig), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Probe.Subject != "sessions.intervals" {
		t.Errorf("unexpected probe subject: %q", cfg.Probe.Subject)
	}
	if cfg.Collector.SnapshotInterval != "30s" {
		t.Errorf("unexpected snapshot interval: %q", cfg.Collector.SnapshotInterval)
	}
	if cfg.Collector.MaxBins != 1000000 {
		t.Errorf("unexpected max_bins: %d", cfg.Collector.MaxBins)
	}
	if len(cfg.Collector.Writers) != 2 {
		t.Fatalf("expected 2 writer defs, got %d", len(cfg.Collector.Writers))
	}
	if !cfg.Collector.Writers[0].Enabled || cfg.Collector.Writers[0].Type != "text" {
		t.Errorf("unexpected first writer: %+v", cfg.Collector.Writers[0])
	}
	if cfg.Collector.Writers[0].Text.RootPath != "/tmp/snapshots" {
		t.Errorf("unexpected text root path: %q", cfg.Collector.Writers[0].Text.RootPath)
	}
	if !cfg.Alerter.Enabled || len(cfg.Alerter.Rules) != 1 {
		t.Errorf("unexpected alerter config: %+v", cfg.Alerter)
	}
	if cfg.API.HTTPListenAddr != ":8080" {
		t.Errorf("unexpected API listen addr: %q", cfg.API.HTTPListenAddr)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}
