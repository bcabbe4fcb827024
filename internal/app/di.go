package app

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"github.com/zappabad/pamsview/internal/config"
	"github.com/zappabad/pamsview/internal/dataset"
	"github.com/zappabad/pamsview/internal/scene"
	"github.com/zappabad/pamsview/internal/slogx"
)

// ProvideConfig loads config from PAMSVIEW_CONFIG (for Wire).
func ProvideConfig() (*config.Config, error) {
	return config.LoadFromEnv()
}

// ProvideLogger creates the stderr logger at the configured level (for Wire).
func ProvideLogger(cfg *config.Config) *slog.Logger {
	logger := slogx.NewDefault(cfg.Log.Level)
	slog.SetDefault(logger)
	return logger
}

// ProvideStore loads all datasets (for Wire).
func ProvideStore(cfg *config.Config, logger *slog.Logger) (*dataset.Store, error) {
	return LoadDatasets(context.Background(), cfg, logger)
}

// ProvideScene builds the shared scene (for Wire). The scene is read-only
// once built, so every viewer can share it.
func ProvideScene(cfg *config.Config) (*scene.Scene, error) {
	seed := cfg.Scene.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return scene.New(cfg.Scene, rand.New(rand.NewSource(seed)))
}

// ProvideFrameConfig extracts frame sampling settings (for Wire).
func ProvideFrameConfig(cfg *config.Config) scene.FrameConfig {
	return cfg.Playback.FrameConfig
}
