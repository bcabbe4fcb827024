// Package orbit computes agent orbits, market spin and the orbiting camera.
//
// Every position is a pure function of time: agents carry a fixed orientation,
// radius and angular speed chosen when they are created.
package orbit

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"
)

var ErrUnknownMode = errors.New("unknown orientation mode")

// Mode selects how an agent's orbit plane is oriented.
type Mode int

const (
	// ModeSphere scatters orbit planes over the whole sphere shell.
	ModeSphere Mode = iota
	// ModeRing tilts orbit planes close to 90 degrees about Y, keeping agents in a narrow band.
	ModeRing
)

func (m Mode) String() string {
	switch m {
	case ModeSphere:
		return "sphere"
	case ModeRing:
		return "ring"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts "sphere" or "ring" to a Mode. Empty means sphere.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sphere":
		return ModeSphere, nil
	case "ring":
		return ModeRing, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// ringJitter scales the random tilt added to the 90 degree ring rotation.
const ringJitter = 0.05

// Orientation is the fixed rotation placing an orbit circle in 3D space.
type Orientation struct {
	m Mat3
}

// NewOrientation draws a random orientation for mode from rng.
func NewOrientation(mode Mode, rng *rand.Rand) Orientation {
	thetaX := rng.Float64() * 2 * math.Pi
	thetaY := rng.Float64() * 2 * math.Pi
	thetaZ := rng.Float64() * 2 * math.Pi

	if mode == ModeRing {
		return Orientation{m: RotY(math.Pi*0.5 + thetaY*ringJitter).Mul(RotZ(thetaZ))}
	}
	return Orientation{m: RotX(thetaX).Mul(RotZ(thetaZ))}
}

// OrientationFrom wraps an explicit rotation matrix.
func OrientationFrom(m Mat3) Orientation {
	return Orientation{m: m}
}

// Matrix returns the rotation matrix.
func (o Orientation) Matrix() Mat3 {
	return o.m
}

// PositionAt returns the point at time t on a circle of the given radius in
// the XY plane, angle omega*t, rotated by o. Periodic in t with period 2π/omega.
func PositionAt(t, omega, radius float64, o Orientation) Vec3 {
	angle := omega * t
	p := Vec3{radius * math.Cos(angle), radius * math.Sin(angle), 0}
	return o.m.Apply(p)
}

// Agent is one orbiting entity. Its orbit is fixed at construction.
type Agent struct {
	orientation Orientation
	radius      float64
	omega       float64
}

// NewAgent creates an agent with a fixed orbit.
func NewAgent(o Orientation, radius, omega float64) Agent {
	return Agent{orientation: o, radius: radius, omega: omega}
}

// Position returns the agent's position relative to its group center.
func (a Agent) Position(t float64) Vec3 {
	return PositionAt(t, a.omega, a.radius, a.orientation)
}

// GroupConfig describes an agent group.
type GroupConfig struct {
	Name   string
	Count  int
	Radius float64
	Omega  float64
	Mode   Mode
}

// Group is a set of agents orbiting a common center. Agents live and die
// with their group.
type Group struct {
	name   string
	center Vec3
	agents []Agent
}

// NewGroup builds cfg.Count agents around center, drawing orientations from rng.
func NewGroup(cfg GroupConfig, center Vec3, rng *rand.Rand) *Group {
	g := &Group{
		name:   cfg.Name,
		center: center,
		agents: make([]Agent, cfg.Count),
	}
	for i := range g.agents {
		g.agents[i] = NewAgent(NewOrientation(cfg.Mode, rng), cfg.Radius, cfg.Omega)
	}
	return g
}

func (g *Group) Name() string { return g.name }

func (g *Group) Center() Vec3 { return g.center }

func (g *Group) Len() int { return len(g.agents) }

// Agent returns agent i.
func (g *Group) Agent(i int) Agent { return g.agents[i] }

// Positions returns the world position of every agent at time t.
func (g *Group) Positions(t float64) []Vec3 {
	out := make([]Vec3, len(g.agents))
	for i, a := range g.agents {
		out[i] = g.center.Add(a.Position(t))
	}
	return out
}
