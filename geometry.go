package sprig

import "github.com/go-gl/mathgl/mgl32"

// Mat4 is a column-major 4x4 float32 matrix.
type Mat4 = mgl32.Mat4

// Vec2 is a 2D vector.
type Vec2 = mgl32.Vec2

// Vec3 is a 3D vector.
type Vec3 = mgl32.Vec3

// Identity returns the 4x4 identity matrix.
func Identity() Mat4 {
	return mgl32.Ident4()
}

// Diagonal returns s times the identity, w component included.
func Diagonal(s float32) Mat4 {
	return mgl32.Ident4().Mul(s)
}

// Quad is a drawable quadrilateral attached to a SceneNode. Points are in the
// node's local space, clockwise starting from the top-left corner.
type Quad struct {
	Points [4]Vec3
}

// Quad2D is a quad in the z = 0 plane.
type Quad2D struct {
	Points [4]Vec2
}

// Quad lifts q into 3D with z = 0.
func (q Quad2D) Quad() Quad {
	var out Quad
	for i, p := range q.Points {
		out.Points[i] = p.Vec3(0)
	}
	return out
}

// NewRect returns an axis-aligned quad at (x, y) with the given size.
func NewRect(x, y, w, h float32) Quad {
	return Quad{Points: [4]Vec3{
		{x, y, 0},
		{x + w, y, 0},
		{x + w, y + h, 0},
		{x, y + h, 0},
	}}
}

// Transform returns q with every point multiplied by m.
func (q Quad) Transform(m Mat4) Quad {
	var out Quad
	for i, p := range q.Points {
		out.Points[i] = mgl32.TransformCoordinate(p, m)
	}
	return out
}

// matEpsilon is the absolute per-element tolerance used by matApproxEqual
// and vecApproxEqual.
const matEpsilon = 1e-5

// matApproxEqual reports whether a and b agree element-wise within matEpsilon.
// mgl32's ApproxEqualThreshold is relative and rejects float residue near zero.
func matApproxEqual(a, b Mat4) bool {
	for i := range a {
		if mgl32.Abs(a[i]-b[i]) > matEpsilon {
			return false
		}
	}
	return true
}

// vecApproxEqual is matApproxEqual for points.
func vecApproxEqual(a, b Vec3) bool {
	for i := range a {
		if mgl32.Abs(a[i]-b[i]) > matEpsilon {
			return false
		}
	}
	return true
}
