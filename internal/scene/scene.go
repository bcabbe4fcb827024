// Package scene describes the 3D view and builds the per-tick frames that
// render hosts draw.
package scene

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/zappabad/pamsview/internal/orbit"
)

var ErrBadScene = errors.New("invalid scene")

// Market is a fixed market body.
type Market struct {
	Name     string
	Label    string
	Position orbit.Vec3
	axis     orbit.Vec3
}

// Scene holds the markets, agent groups and camera of the 3D view.
// It is built once; only positions derived from time change afterwards.
type Scene struct {
	cfg     Config
	markets []Market
	groups  []*orbit.Group
	camera  orbit.Camera
}

// New builds a scene from cfg, drawing agent orientations from rng.
func New(cfg Config, rng *rand.Rand) (*Scene, error) {
	s := &Scene{
		cfg: cfg,
		camera: orbit.Camera{
			Radius: cfg.Camera.Radius,
			Omega:  cfg.Camera.Omega,
			Height: cfg.Camera.Height,
			FOV:    cfg.Camera.FOV,
		},
	}

	for _, m := range cfg.Markets {
		s.markets = append(s.markets, Market{
			Name:     m.Name,
			Label:    m.Label,
			Position: orbit.V3(m.Position),
			axis:     orbit.V3(m.SpinAxis),
		})
	}

	for i, g := range cfg.Groups {
		if g.Market < 0 || g.Market >= len(s.markets) {
			return nil, fmt.Errorf("%w: group %d (%s) references market %d of %d", ErrBadScene, i, g.Name, g.Market, len(s.markets))
		}
		mode, err := orbit.ParseMode(g.Mode)
		if err != nil {
			return nil, fmt.Errorf("%w: group %d: %v", ErrBadScene, i, err)
		}
		s.groups = append(s.groups, orbit.NewGroup(orbit.GroupConfig{
			Name:   g.Name,
			Count:  g.Count,
			Radius: g.Radius,
			Omega:  g.Omega,
			Mode:   mode,
		}, s.markets[g.Market].Position, rng))
	}

	return s, nil
}

// Markets returns the market bodies.
func (s *Scene) Markets() []Market {
	return s.markets
}

// Groups returns the agent groups.
func (s *Scene) Groups() []*orbit.Group {
	return s.groups
}

// Camera returns the scene camera.
func (s *Scene) Camera() orbit.Camera {
	return s.camera
}

// MarketPositions returns the world position of each market.
func (s *Scene) MarketPositions() []orbit.Vec3 {
	out := make([]orbit.Vec3, len(s.markets))
	for i, m := range s.markets {
		out[i] = m.Position
	}
	return out
}

// MarketSpin returns the spin rotation of market i at time t.
func (s *Scene) MarketSpin(i int, t float64) orbit.Mat3 {
	return orbit.Spin(s.markets[i].axis, s.cfg.MarketOmega, t)
}

// AgentPositions returns the world position of every agent at time t,
// indexed [group][agent].
func (s *Scene) AgentPositions(t float64) [][]orbit.Vec3 {
	out := make([][]orbit.Vec3, len(s.groups))
	for i, g := range s.groups {
		out[i] = g.Positions(t)
	}
	return out
}

// AgentsPerGroup is the group size used to split flat agent ids.
func (s *Scene) AgentsPerGroup() int {
	return s.cfg.AgentsPerGroup
}
