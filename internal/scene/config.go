package scene

import (
	"time"

	"github.com/zappabad/pamsview/internal/dataset"
	"github.com/zappabad/pamsview/internal/trades"
)

// MarketSpec places one market. Markets are indexed in the order listed,
// which must match the market ids used by the datasets.
type MarketSpec struct {
	Name     string     `yaml:"name"`
	Label    string     `yaml:"label"`
	Position [3]float64 `yaml:"position"`
	SpinAxis [3]float64 `yaml:"spin_axis"`
}

// GroupSpec describes an agent group orbiting one market. Groups are indexed
// in the order listed, matching the dataset's group ids.
type GroupSpec struct {
	Name   string  `yaml:"name"`
	Market int     `yaml:"market"`
	Count  int     `yaml:"count"`
	Radius float64 `yaml:"radius"`
	Omega  float64 `yaml:"omega"`
	Mode   string  `yaml:"mode"`
}

// CameraSpec configures the orbiting camera.
type CameraSpec struct {
	Radius float64 `yaml:"radius"`
	Omega  float64 `yaml:"omega"`
	Height float64 `yaml:"height"`
	FOV    float64 `yaml:"fov"`
}

// Config describes the 3D scene. Optional parts of the view (an index market,
// an arbitrator group) exist exactly when they are listed here.
type Config struct {
	Markets        []MarketSpec `yaml:"markets"`
	Groups         []GroupSpec  `yaml:"groups"`
	Camera         CameraSpec   `yaml:"camera"`
	MarketOmega    float64      `yaml:"market_omega"`
	AgentsPerGroup int          `yaml:"agents_per_group"`
	// Seed fixes agent orientations; 0 draws a seed from the clock.
	Seed int64 `yaml:"seed"`
}

// DefaultConfig returns the two-spot-markets-plus-index layout with its
// arbitrator ring.
func DefaultConfig() Config {
	return Config{
		Markets: []MarketSpec{
			{Name: "one", Label: "Market 01", Position: [3]float64{24, 0, 0}, SpinAxis: [3]float64{-1, 0, 0}},
			{Name: "two", Label: "Market 02", Position: [3]float64{-24, 0, 0}, SpinAxis: [3]float64{-1, 0, 0}},
			{Name: "index", Label: "Index Market", Position: [3]float64{0, 0, 0}, SpinAxis: [3]float64{-1, 0, 0}},
		},
		Groups: []GroupSpec{
			{Name: "one", Market: 0, Count: dataset.DefaultAgentsPerGroup, Radius: 10, Omega: 1, Mode: "sphere"},
			{Name: "two", Market: 1, Count: dataset.DefaultAgentsPerGroup, Radius: 10, Omega: 1, Mode: "sphere"},
			{Name: "index", Market: 2, Count: dataset.DefaultAgentsPerGroup, Radius: 6, Omega: 1, Mode: "sphere"},
			{Name: "arbitrators", Market: 2, Count: dataset.DefaultAgentsPerGroup, Radius: 12, Omega: 1, Mode: "ring"},
		},
		Camera: CameraSpec{
			Radius: 20,
			Omega:  0.1,
			Height: 30,
			FOV:    75,
		},
		MarketOmega:    0.05,
		AgentsPerGroup: dataset.DefaultAgentsPerGroup,
	}
}

// FrameConfig controls how frames are sampled from a dataset.
type FrameConfig struct {
	// Rate is simulation ticks per second of playback.
	Rate float64 `yaml:"rate"`
	// Window is the number of ticks visible on the chart.
	Window int `yaml:"window"`
	// HideTradeLines turns off trade line resolution.
	HideTradeLines bool `yaml:"hide_trade_lines"`
	// LineTTL is how long a trade line stays visible.
	LineTTL time.Duration `yaml:"line_ttl"`
}

// DefaultFrameConfig returns 10 ticks per second and a 200 tick window.
func DefaultFrameConfig() FrameConfig {
	return FrameConfig{
		Rate:    10,
		Window:  200,
		LineTTL: trades.DefaultTTL,
	}
}
