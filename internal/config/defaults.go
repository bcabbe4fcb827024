package config

import (
	"time"

	"github.com/zappabad/pamsview/internal/scene"
)

// Default values for optional configuration fields.
const (
	DefaultDatasetID       = 1
	DefaultRate            = 10
	DefaultWindow          = 200
	DefaultRefreshInterval = 100 * time.Millisecond
	DefaultServerAddr      = ":8080"
	DefaultShutdownTimeout = 5 * time.Second
	DefaultLogLevel        = "info"
)

// DefaultDatasets are the two bundled PAMS runs.
func DefaultDatasets() []DatasetConfig {
	return []DatasetConfig{
		{ID: 1, Name: "PAMS 1", Path: "res/pams1.json"},
		{ID: 2, Name: "PAMS 2", Path: "res/pams2.json"},
	}
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if len(c.Datasets) == 0 {
		c.Datasets = DefaultDatasets()
	}
	if c.DefaultDataset == 0 {
		c.DefaultDataset = DefaultDatasetID
	}

	// Playback defaults
	if c.Playback.Rate == 0 {
		c.Playback.Rate = DefaultRate
	}
	if c.Playback.Window == 0 {
		c.Playback.Window = DefaultWindow
	}
	if c.Playback.LineTTL == 0 {
		c.Playback.LineTTL = scene.DefaultFrameConfig().LineTTL
	}
	if c.Playback.RefreshInterval == 0 {
		c.Playback.RefreshInterval = DefaultRefreshInterval
	}

	applySceneDefaults(&c.Scene)

	// Trade pairs in the files are split with the scene's group size.
	for i := range c.Datasets {
		if c.Datasets[i].AgentsPerGroup == 0 {
			c.Datasets[i].AgentsPerGroup = c.Scene.AgentsPerGroup
		}
	}

	// Server defaults
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultServerAddr
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}

func applySceneDefaults(s *scene.Config) {
	def := scene.DefaultConfig()
	if len(s.Markets) == 0 {
		s.Markets = def.Markets
	}
	if len(s.Groups) == 0 {
		s.Groups = def.Groups
		for i := range s.Groups {
			s.Groups[i].Count = 0
		}
	}
	if s.Camera.Radius == 0 {
		s.Camera.Radius = def.Camera.Radius
	}
	if s.Camera.Omega == 0 {
		s.Camera.Omega = def.Camera.Omega
	}
	if s.Camera.Height == 0 {
		s.Camera.Height = def.Camera.Height
	}
	if s.Camera.FOV == 0 {
		s.Camera.FOV = def.Camera.FOV
	}
	if s.MarketOmega == 0 {
		s.MarketOmega = def.MarketOmega
	}
	if s.AgentsPerGroup == 0 {
		s.AgentsPerGroup = def.AgentsPerGroup
	}
	for i := range s.Groups {
		if s.Groups[i].Mode == "" {
			s.Groups[i].Mode = "sphere"
		}
		if s.Groups[i].Count == 0 {
			s.Groups[i].Count = s.AgentsPerGroup
		}
	}
}
