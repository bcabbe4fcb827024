package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	yaml := `
datasets:
  - id: 1
    name: first
    path: data/one.json
  - id: 7
    path: data/seven.parquet
    agents_per_group: 100
default_dataset: 7
scene:
  agents_per_group: 100
playback:
  rate: 20
  window: 50
  line_ttl: 500ms
  hide_trade_lines: true
server:
  addr: 127.0.0.1:9000
log:
  level: debug
`
	path := writeTempFile(t, yaml)

	cfg, err := LoadAndValidate(path)
	if err != nil {
		t.Fatalf("LoadAndValidate failed: %v", err)
	}

	if len(cfg.Datasets) != 2 {
		t.Fatalf("len(Datasets) = %d, want 2", len(cfg.Datasets))
	}
	if cfg.Datasets[1].AgentsPerGroup != 100 {
		t.Errorf("Datasets[1].AgentsPerGroup = %d, want 100", cfg.Datasets[1].AgentsPerGroup)
	}
	if cfg.Datasets[0].AgentsPerGroup != 100 {
		t.Errorf("Datasets[0].AgentsPerGroup = %d, want the scene's 100", cfg.Datasets[0].AgentsPerGroup)
	}
	for i, g := range cfg.Scene.Groups {
		if g.Count != 100 {
			t.Errorf("Scene.Groups[%d].Count = %d, want 100", i, g.Count)
		}
	}
	if cfg.DefaultDataset != 7 {
		t.Errorf("DefaultDataset = %d, want 7", cfg.DefaultDataset)
	}
	if cfg.Playback.Rate != 20 || cfg.Playback.Window != 50 {
		t.Errorf("Playback = %+v, want rate 20 window 50", cfg.Playback)
	}
	if cfg.Playback.LineTTL != 500*time.Millisecond {
		t.Errorf("Playback.LineTTL = %v, want 500ms", cfg.Playback.LineTTL)
	}
	if !cfg.Playback.HideTradeLines {
		t.Error("Playback.HideTradeLines = false, want true")
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, "127.0.0.1:9000")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "debug")
	}
}

func TestLoadWithEnvSubstitution(t *testing.T) {
	t.Setenv("PAMS_DATA", "/srv/pams")

	yaml := `
datasets:
  - id: 1
    path: ${PAMS_DATA}/pams1.json
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Datasets[0].Path != "/srv/pams/pams1.json" {
		t.Errorf("Datasets[0].Path = %q, want %q", cfg.Datasets[0].Path, "/srv/pams/pams1.json")
	}
}

func TestLoadWithDefaults(t *testing.T) {
	path := writeTempFile(t, "log:\n  level: warn\n")

	cfg, err := LoadWithDefaults(path)
	if err != nil {
		t.Fatalf("LoadWithDefaults failed: %v", err)
	}

	if len(cfg.Datasets) != 2 || cfg.Datasets[1].Path != "res/pams2.json" {
		t.Errorf("Datasets = %+v, want bundled datasets", cfg.Datasets)
	}
	if cfg.DefaultDataset != DefaultDatasetID {
		t.Errorf("DefaultDataset = %d, want %d", cfg.DefaultDataset, DefaultDatasetID)
	}
	if cfg.Playback.Rate != DefaultRate {
		t.Errorf("Playback.Rate = %v, want %v", cfg.Playback.Rate, DefaultRate)
	}
	if cfg.Playback.Window != DefaultWindow {
		t.Errorf("Playback.Window = %d, want %d", cfg.Playback.Window, DefaultWindow)
	}
	if cfg.Playback.RefreshInterval != DefaultRefreshInterval {
		t.Errorf("Playback.RefreshInterval = %v, want %v", cfg.Playback.RefreshInterval, DefaultRefreshInterval)
	}
	if len(cfg.Scene.Markets) != 3 || len(cfg.Scene.Groups) != 4 {
		t.Errorf("Scene = %d markets, %d groups, want 3 and 4", len(cfg.Scene.Markets), len(cfg.Scene.Groups))
	}
	if cfg.Scene.Camera.FOV != 75 {
		t.Errorf("Scene.Camera.FOV = %v, want 75", cfg.Scene.Camera.FOV)
	}
	if cfg.Server.Addr != DefaultServerAddr {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, DefaultServerAddr)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "warn")
	}
}

func TestSceneWithoutArbitrators(t *testing.T) {
	yaml := `
scene:
  markets:
    - name: one
      position: [24, 0, 0]
    - name: two
      position: [-24, 0, 0]
  groups:
    - name: one
      market: 0
      radius: 10
      omega: 1
    - name: two
      market: 1
      radius: 10
      omega: 1
`
	path := writeTempFile(t, yaml)

	cfg, err := LoadAndValidate(path)
	if err != nil {
		t.Fatalf("LoadAndValidate failed: %v", err)
	}
	if len(cfg.Scene.Markets) != 2 || len(cfg.Scene.Groups) != 2 {
		t.Errorf("Scene = %d markets, %d groups, want 2 and 2", len(cfg.Scene.Markets), len(cfg.Scene.Groups))
	}
	if cfg.Scene.Groups[0].Mode != "sphere" || cfg.Scene.Groups[0].Count != 500 {
		t.Errorf("Scene.Groups[0] = %+v, want sphere with 500 agents", cfg.Scene.Groups[0])
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{
			name:    "no datasets",
			modify:  func(c *Config) { c.Datasets = nil },
			wantErr: "at least one dataset",
		},
		{
			name:    "missing path",
			modify:  func(c *Config) { c.Datasets[0].Path = "" },
			wantErr: "datasets[0].path is required",
		},
		{
			name:    "duplicate id",
			modify:  func(c *Config) { c.Datasets[1].ID = 1 },
			wantErr: "is duplicated",
		},
		{
			name:    "unknown default",
			modify:  func(c *Config) { c.DefaultDataset = 9 },
			wantErr: "default_dataset 9",
		},
		{
			name:    "zero rate",
			modify:  func(c *Config) { c.Playback.Rate = -1 },
			wantErr: "playback.rate",
		},
		{
			name:    "group market out of range",
			modify:  func(c *Config) { c.Scene.Groups[3].Market = 3 },
			wantErr: "scene.groups[3].market",
		},
		{
			name:    "group too large",
			modify:  func(c *Config) { c.Scene.Groups[0].Count = 501 },
			wantErr: "scene.groups[0].count",
		},
		{
			name:    "group size mismatch",
			modify:  func(c *Config) { c.Datasets[1].AgentsPerGroup = 100 },
			wantErr: "datasets[1].agents_per_group 100 does not match scene.agents_per_group 500",
		},
		{
			name:    "bad mode",
			modify:  func(c *Config) { c.Scene.Groups[1].Mode = "cube" },
			wantErr: "scene.groups[1].mode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}

	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v, want nil", err)
	}
}

func TestLoadRejectsGroupSizeMismatch(t *testing.T) {
	yaml := `
datasets:
  - id: 1
    path: data/one.json
    agents_per_group: 500
scene:
  agents_per_group: 100
`
	path := writeTempFile(t, yaml)

	_, err := LoadAndValidate(path)
	if err == nil {
		t.Fatal("LoadAndValidate() = nil, want error")
	}
	if !strings.Contains(err.Error(), "scene.agents_per_group 100") {
		t.Errorf("LoadAndValidate() = %q, want group size mismatch", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv(EnvPath, "")
	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv failed: %v", err)
	}
	if cfg.Server.Addr != DefaultServerAddr {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, DefaultServerAddr)
	}

	t.Setenv(EnvPath, writeTempFile(t, "server:\n  addr: :9999\n"))
	cfg, err = LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv failed: %v", err)
	}
	if cfg.Server.Addr != ":9999" {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, ":9999")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() = nil, want error")
	}
}

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}
