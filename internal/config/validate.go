package config

import (
	"errors"
	"fmt"

	"github.com/zappabad/pamsview/internal/orbit"
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	if len(c.Datasets) == 0 {
		return errors.New("at least one dataset is required")
	}
	seen := make(map[int]bool, len(c.Datasets))
	for i, d := range c.Datasets {
		prefix := fmt.Sprintf("datasets[%d]", i)
		if d.Path == "" {
			return fmt.Errorf("%s.path is required", prefix)
		}
		if d.AgentsPerGroup < 1 {
			return fmt.Errorf("%s.agents_per_group must be >= 1", prefix)
		}
		if d.AgentsPerGroup != c.Scene.AgentsPerGroup {
			return fmt.Errorf("%s.agents_per_group %d does not match scene.agents_per_group %d",
				prefix, d.AgentsPerGroup, c.Scene.AgentsPerGroup)
		}
		if seen[d.ID] {
			return fmt.Errorf("%s.id %d is duplicated", prefix, d.ID)
		}
		seen[d.ID] = true
	}
	if !seen[c.DefaultDataset] {
		return fmt.Errorf("default_dataset %d is not listed in datasets", c.DefaultDataset)
	}

	if c.Playback.Rate <= 0 {
		return fmt.Errorf("playback.rate must be > 0, got %v", c.Playback.Rate)
	}
	if c.Playback.Window < 1 {
		return errors.New("playback.window must be >= 1")
	}
	if c.Playback.RefreshInterval <= 0 {
		return errors.New("playback.refresh_interval must be > 0")
	}

	for i, g := range c.Scene.Groups {
		prefix := fmt.Sprintf("scene.groups[%d]", i)
		if g.Market < 0 || g.Market >= len(c.Scene.Markets) {
			return fmt.Errorf("%s.market %d out of range (%d markets)", prefix, g.Market, len(c.Scene.Markets))
		}
		if g.Count < 0 || g.Count > c.Scene.AgentsPerGroup {
			return fmt.Errorf("%s.count must be between 0 and %d, got %d", prefix, c.Scene.AgentsPerGroup, g.Count)
		}
		if g.Radius <= 0 {
			return fmt.Errorf("%s.radius must be > 0", prefix)
		}
		if _, err := orbit.ParseMode(g.Mode); err != nil {
			return fmt.Errorf("%s.mode: %w", prefix, err)
		}
	}

	if c.Server.Addr == "" {
		return errors.New("server.addr is required")
	}
	return nil
}
