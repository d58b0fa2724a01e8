package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "engine.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	yaml := `
instance:
  id: test-engine
input:
  mode: csv
  path: transactions.csv
output:
  path: accounts.csv
processing:
  shards: 4
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Instance.ID != "test-engine" {
		t.Errorf("Instance.ID = %q, want %q", cfg.Instance.ID, "test-engine")
	}
	if cfg.Input.Path != "transactions.csv" {
		t.Errorf("Input.Path = %q, want %q", cfg.Input.Path, "transactions.csv")
	}
	if cfg.Output.Path != "accounts.csv" {
		t.Errorf("Output.Path = %q, want %q", cfg.Output.Path, "accounts.csv")
	}
	if cfg.Processing.Shards != 4 {
		t.Errorf("Processing.Shards = %d, want 4", cfg.Processing.Shards)
	}
}

func TestLoadWithEnvSubstitution(t *testing.T) {
	t.Setenv("TEST_FEED_URL", "wss://feed.example.com/tx")

	yaml := `
input:
  mode: stream
  stream_url: ${TEST_FEED_URL}
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Input.StreamURL != "wss://feed.example.com/tx" {
		t.Errorf("Input.StreamURL = %q, want substituted value", cfg.Input.StreamURL)
	}
}

func TestLoadWithDefaults(t *testing.T) {
	yaml := `
input:
  mode: csv
  path: transactions.csv
`
	path := writeTempFile(t, yaml)

	cfg, err := LoadWithDefaults(path)
	if err != nil {
		t.Fatalf("LoadWithDefaults failed: %v", err)
	}

	if cfg.Processing.Shards != DefaultShards {
		t.Errorf("Processing.Shards = %d, want %d", cfg.Processing.Shards, DefaultShards)
	}
	if cfg.Processing.QueueSize != DefaultQueueSize {
		t.Errorf("Processing.QueueSize = %d, want %d", cfg.Processing.QueueSize, DefaultQueueSize)
	}
	if cfg.Input.ReadTimeout != DefaultReadTimeout {
		t.Errorf("Input.ReadTimeout = %v, want %v", cfg.Input.ReadTimeout, DefaultReadTimeout)
	}
	if cfg.Metrics.Port != DefaultMetricsPort {
		t.Errorf("Metrics.Port = %d, want %d", cfg.Metrics.Port, DefaultMetricsPort)
	}
	if cfg.Logging.Level != DefaultLogLevel {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, DefaultLogLevel)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Input.Mode != ModeCSV {
		t.Errorf("Input.Mode = %q, want %q", cfg.Input.Mode, ModeCSV)
	}
	if cfg.Processing.Shards != 1 {
		t.Errorf("Processing.Shards = %d, want 1", cfg.Processing.Shards)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *EngineConfig {
		cfg := Default()
		cfg.Input.Path = "transactions.csv"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*EngineConfig)
		wantErr bool
	}{
		{"valid csv config", func(c *EngineConfig) {}, false},
		{"missing csv path", func(c *EngineConfig) { c.Input.Path = "" }, true},
		{"unknown mode", func(c *EngineConfig) { c.Input.Mode = "kafka" }, true},
		{"stream without url", func(c *EngineConfig) { c.Input.Mode = ModeStream }, true},
		{"stream with url", func(c *EngineConfig) {
			c.Input.Mode = ModeStream
			c.Input.StreamURL = "wss://feed.example.com/tx"
		}, false},
		{"zero shards", func(c *EngineConfig) { c.Processing.Shards = 0 }, true},
		{"zero queue", func(c *EngineConfig) { c.Processing.QueueSize = 0 }, true},
		{"metrics bad port", func(c *EngineConfig) {
			c.Metrics.Enabled = true
			c.Metrics.Port = 70000
		}, true},
		{"bad log level", func(c *EngineConfig) { c.Logging.Level = "verbose" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("Validate should have failed")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate failed: %v", err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("Load should fail on a missing file")
	}
}
