package sprig

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestDiagonal(t *testing.T) {
	d := Diagonal(2)
	if d.Diag() != (mgl32.Vec4{2, 2, 2, 2}) {
		t.Errorf("Diag() = %v, want all 2", d.Diag())
	}
	if d.At(0, 1) != 0 {
		t.Errorf("off-diagonal = %v, want 0", d.At(0, 1))
	}
}

func TestDiagonalProduct(t *testing.T) {
	assertDiag(t, "3I*2I", Diagonal(3).Mul4(Diagonal(2)), 6)
}

func TestNewRect(t *testing.T) {
	q := NewRect(10, 20, 30, 40)
	want := [4]Vec3{{10, 20, 0}, {40, 20, 0}, {40, 60, 0}, {10, 60, 0}}
	if q.Points != want {
		t.Errorf("Points = %v, want %v", q.Points, want)
	}
}

func TestQuad2DLift(t *testing.T) {
	q := Quad2D{Points: [4]Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}}.Quad()
	for i, p := range q.Points {
		if p[2] != 0 {
			t.Errorf("Points[%d].z = %v, want 0", i, p[2])
		}
	}
	if q.Points[2] != (Vec3{1, 1, 0}) {
		t.Errorf("Points[2] = %v, want (1, 1, 0)", q.Points[2])
	}
}

func TestQuadTransform(t *testing.T) {
	q := NewRect(0, 0, 1, 1).Transform(mgl32.Translate3D(5, 5, 0))
	if !vecApproxEqual(q.Points[2], Vec3{6, 6, 0}) {
		t.Errorf("Points[2] = %v, want (6, 6, 0)", q.Points[2])
	}
}

func TestApproxEqualNearZero(t *testing.T) {
	// sin(pi) in float32 leaves residue that a relative comparison rejects.
	rot := mgl32.HomogRotate3DZ(math.Pi)
	if !matApproxEqual(rot, mgl32.Diag4(mgl32.Vec4{-1, -1, 1, 1})) {
		t.Errorf("rot(pi) = %v, want diag(-1, -1, 1, 1)", rot)
	}
	p := mgl32.TransformCoordinate(Vec3{1, 0, 0}, rot)
	if !vecApproxEqual(p, Vec3{-1, 0, 0}) {
		t.Errorf("point = %v, want (-1, 0, 0)", p)
	}
	if matApproxEqual(Identity(), Diagonal(1.001)) {
		t.Error("matApproxEqual should reject a 1e-3 difference")
	}
}
