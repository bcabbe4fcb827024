package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/zappabad/pamsview/internal/config"
	"github.com/zappabad/pamsview/internal/dataset"
)

const sampleJSON = `{
  "duration": 2,
  "config": {"markets": ["A"], "minPrice": 1, "maxPrice": 3},
  "prices": [[1], [2]],
  "trades": []
}`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoadDatasets(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "one.json")
	if err := os.WriteFile(jsonPath, []byte(sampleJSON), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	pq := &dataset.Dataset{ID: 2, Duration: 2, Prices: dataset.Series{{5, 6}, {7, 8}}}
	base := filepath.Join(dir, "two")
	if err := dataset.WriteParquet(pq, base, 500); err != nil {
		t.Fatalf("write parquet: %v", err)
	}

	cfg := config.Default()
	cfg.Datasets = []config.DatasetConfig{
		{ID: 1, Name: "json", Path: jsonPath, AgentsPerGroup: 500},
		{ID: 2, Name: "parquet", Path: base + ".prices.parquet", AgentsPerGroup: 500},
	}

	store, err := LoadDatasets(context.Background(), cfg, discardLogger())
	if err != nil {
		t.Fatalf("LoadDatasets failed: %v", err)
	}
	if store.Len() != 2 {
		t.Fatalf("expected 2 datasets, got %d", store.Len())
	}
	d, err := store.Get(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Name != "parquet" || d.Channels() != 2 {
		t.Errorf("unexpected dataset %q with %d channels", d.Name, d.Channels())
	}
}

func TestLoadDatasetsMissingFile(t *testing.T) {
	cfg := config.Default()
	cfg.Datasets = []config.DatasetConfig{
		{ID: 1, Path: filepath.Join(t.TempDir(), "missing.json"), AgentsPerGroup: 500},
	}
	_, err := LoadDatasets(context.Background(), cfg, discardLogger())
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestProvideSceneIsDeterministicWithSeed(t *testing.T) {
	cfg := config.Default()
	cfg.Scene.Seed = 42

	a, err := ProvideScene(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, _ := ProvideScene(cfg)
	if a.AgentPositions(1.5)[3][17] != b.AgentPositions(1.5)[3][17] {
		t.Error("expected identical scenes for the same seed")
	}
}
