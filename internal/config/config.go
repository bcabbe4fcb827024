package config

import (
	"time"

	"github.com/zappabad/pamsview/internal/scene"
)

// Config is the root configuration of pamsview and pamsserve.
type Config struct {
	Datasets       []DatasetConfig `yaml:"datasets"`
	DefaultDataset int             `yaml:"default_dataset"`
	Playback       PlaybackConfig  `yaml:"playback"`
	Scene          scene.Config    `yaml:"scene"`
	Server         ServerConfig    `yaml:"server"`
	Log            LogConfig       `yaml:"log"`
}

// DatasetConfig points at one dataset file. The format follows the extension
// (.json or .parquet).
type DatasetConfig struct {
	ID             int    `yaml:"id"`
	Name           string `yaml:"name"`
	Path           string `yaml:"path"`
	AgentsPerGroup int    `yaml:"agents_per_group"`
}

// PlaybackConfig controls frame sampling and refresh.
type PlaybackConfig struct {
	scene.FrameConfig `yaml:",inline"`
	RefreshInterval   time.Duration `yaml:"refresh_interval"`
}

// ServerConfig holds the HTTP host settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"` // debug|info|warn|error
}
