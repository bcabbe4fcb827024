package orbit

import "math"

// Camera orbits the origin on a horizontal circle at a fixed height and always
// looks at the origin.
type Camera struct {
	Radius float64
	Omega  float64
	Height float64
	// FOV is the vertical field of view in degrees.
	FOV float64
}

// Eye returns the camera position at time t.
func (c Camera) Eye(t float64) Vec3 {
	return Vec3{
		c.Radius * math.Cos(c.Omega*t),
		c.Radius * math.Sin(c.Omega*t),
		c.Height,
	}
}

// View is the camera frame at one instant.
type View struct {
	Eye     Vec3
	forward Vec3
	right   Vec3
	up      Vec3
	tanHalf float64
}

// At returns the view at time t. The world up axis is +Y.
func (c Camera) At(t float64) View {
	eye := c.Eye(t)
	forward := eye.Scale(-1).Normalize()
	right := forward.Cross(Vec3{0, 1, 0}).Normalize()
	if right.Len() == 0 {
		right = Vec3{1, 0, 0}
	}
	up := right.Cross(forward)

	fov := c.FOV
	if fov <= 0 {
		fov = 75
	}
	return View{
		Eye:     eye,
		forward: forward,
		right:   right,
		up:      up,
		tanHalf: math.Tan(fov * math.Pi / 360),
	}
}

// nearPlane is the distance below which points are not projected.
const nearPlane = 0.1

// Project maps p to a cell of a width x height grid whose cells are twice as
// tall as they are wide. ok is false when p is behind the camera or off grid.
func (v View) Project(p Vec3, width, height int) (col, row int, depth float64, ok bool) {
	if width <= 0 || height <= 0 {
		return 0, 0, 0, false
	}
	d := p.Sub(v.Eye)
	depth = d.Dot(v.forward)
	if depth <= nearPlane {
		return 0, 0, depth, false
	}

	aspect := float64(width) / float64(2*height)
	ndcX := d.Dot(v.right) / (depth * v.tanHalf * aspect)
	ndcY := d.Dot(v.up) / (depth * v.tanHalf)

	col = int(math.Floor((ndcX + 1) / 2 * float64(width)))
	row = int(math.Floor((1 - ndcY) / 2 * float64(height)))
	if col < 0 || col >= width || row < 0 || row >= height {
		return col, row, depth, false
	}
	return col, row, depth, true
}

// Spin is the rotation of a body spinning about axis at omega rad/s, at time t.
func Spin(axis Vec3, omega, t float64) Mat3 {
	return RotAxis(axis, omega*t)
}
