package orbit

import (
	"encoding/json"
	"errors"
	"math"
	"math/rand"
	"testing"
)

const eps = 1e-9

func near(a, b Vec3, tol float64) bool {
	return a.Sub(b).Len() <= tol
}

func TestPositionAtStaysOnCircle(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, mode := range []Mode{ModeSphere, ModeRing} {
		for i := 0; i < 50; i++ {
			o := NewOrientation(mode, rng)
			radius := 1 + rng.Float64()*20
			omega := 0.1 + rng.Float64()*3
			for _, tm := range []float64{0, 0.37, 1, 12.5, 1000} {
				p := PositionAt(tm, omega, radius, o)
				if math.Abs(p.Len()-radius) > 1e-9*radius {
					t.Fatalf("%v: |p| = %v, want %v", mode, p.Len(), radius)
				}
			}
		}
	}
}

func TestPositionAtIsPeriodic(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	o := NewOrientation(ModeSphere, rng)
	omega, radius := 1.3, 10.0
	period := 2 * math.Pi / omega

	for _, tm := range []float64{0, 0.5, 3.25, 40} {
		a := PositionAt(tm, omega, radius, o)
		b := PositionAt(tm+period, omega, radius, o)
		if !near(a, b, 1e-9) {
			t.Errorf("t=%v: %v != %v", tm, a, b)
		}
	}
}

func TestPositionAtIdentityOrientation(t *testing.T) {
	o := OrientationFrom(Identity())
	p := PositionAt(math.Pi/2, 1, 10, o)
	if !near(p, Vec3{0, 10, 0}, eps) {
		t.Errorf("expected (0, 10, 0), got %v", p)
	}
}

func TestRingModeStaysInBand(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	radius := 12.0
	limit := radius*math.Sin(2*math.Pi*ringJitter) + 1e-9

	for i := 0; i < 200; i++ {
		o := NewOrientation(ModeRing, rng)
		for _, tm := range []float64{0, 0.7, 2.1, 5.9} {
			p := PositionAt(tm, 1, radius, o)
			if math.Abs(p.X) > limit {
				t.Fatalf("ring agent left the band: x = %v, limit %v", p.X, limit)
			}
		}
	}
}

func TestOrientationsAreSeeded(t *testing.T) {
	a := NewOrientation(ModeSphere, rand.New(rand.NewSource(9)))
	b := NewOrientation(ModeSphere, rand.New(rand.NewSource(9)))
	if a.Matrix() != b.Matrix() {
		t.Error("expected identical orientations from identical seeds")
	}
}

func TestGroupPositions(t *testing.T) {
	center := Vec3{24, 0, 0}
	g := NewGroup(GroupConfig{Name: "one", Count: 5, Radius: 10, Omega: 1}, center, rand.New(rand.NewSource(4)))

	if g.Len() != 5 {
		t.Fatalf("expected 5 agents, got %d", g.Len())
	}
	ps := g.Positions(2.5)
	for i, p := range ps {
		if math.Abs(p.Sub(center).Len()-10) > 1e-9 {
			t.Errorf("agent %d at distance %v from center", i, p.Sub(center).Len())
		}
		if !near(p, center.Add(g.Agent(i).Position(2.5)), eps) {
			t.Errorf("agent %d world position mismatch", i)
		}
	}

	// Orientation is fixed: the same time gives the same positions.
	again := g.Positions(2.5)
	for i := range ps {
		if ps[i] != again[i] {
			t.Fatalf("agent %d moved between identical reads", i)
		}
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"": ModeSphere, "sphere": ModeSphere, " Ring ": ModeRing} {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseMode("torus"); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("expected ErrUnknownMode, got %v", err)
	}
}

func TestRotAxisMatchesBasicRotations(t *testing.T) {
	for _, theta := range []float64{0, 0.3, 1.7, -2.2} {
		if m, want := RotAxis(Vec3{1, 0, 0}, theta), RotX(theta); !matNear(m, want) {
			t.Errorf("RotAxis(X, %v) = %v, want %v", theta, m, want)
		}
		if m, want := RotAxis(Vec3{0, 2, 0}, theta), RotY(theta); !matNear(m, want) {
			t.Errorf("RotAxis(Y, %v) = %v, want %v", theta, m, want)
		}
		if m, want := RotAxis(Vec3{0, 0, 1}, theta), RotZ(theta); !matNear(m, want) {
			t.Errorf("RotAxis(Z, %v) = %v, want %v", theta, m, want)
		}
	}
	if RotAxis(Vec3{}, 1) != Identity() {
		t.Error("expected identity for zero axis")
	}
}

func matNear(a, b Mat3) bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(a[i][j]-b[i][j]) > 1e-12 {
				return false
			}
		}
	}
	return true
}

func TestCameraProjectsOriginToCenter(t *testing.T) {
	cam := Camera{Radius: 20, Omega: 0.1, Height: 30, FOV: 75}
	for _, tm := range []float64{0, 3, 17.5} {
		v := cam.At(tm)
		col, row, depth, ok := v.Project(Vec3{}, 80, 40)
		if !ok {
			t.Fatalf("t=%v: origin not visible", tm)
		}
		if col != 40 || row != 20 {
			t.Errorf("t=%v: expected (40, 20), got (%d, %d)", tm, col, row)
		}
		if math.Abs(depth-cam.Eye(tm).Len()) > 1e-9 {
			t.Errorf("t=%v: expected depth %v, got %v", tm, cam.Eye(tm).Len(), depth)
		}
	}
}

func TestCameraRejectsPointsBehind(t *testing.T) {
	v := Camera{Radius: 20, Height: 30}.At(0)
	behind := v.Eye.Scale(2)
	if _, _, _, ok := v.Project(behind, 80, 40); ok {
		t.Error("expected point behind camera to be rejected")
	}
	if _, _, _, ok := v.Project(Vec3{}, 0, 40); ok {
		t.Error("expected empty grid to reject")
	}
}

func TestVec3JSON(t *testing.T) {
	b, err := json.Marshal(Vec3{1, 2.5, -3})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "[1,2.5,-3]" {
		t.Errorf("unexpected encoding %s", b)
	}

	var v Vec3
	if err := json.Unmarshal(b, &v); err != nil {
		t.Fatal(err)
	}
	if v != (Vec3{1, 2.5, -3}) {
		t.Errorf("unexpected decoded vector %v", v)
	}
}

func TestSpinKeepsAxisFixed(t *testing.T) {
	axis := Vec3{-1, 0, 0}
	m := Spin(axis, 0.05, 12)
	if !near(m.Apply(axis), axis, 1e-12) {
		t.Errorf("spin moved its own axis: %v", m.Apply(axis))
	}
}
