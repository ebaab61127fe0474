package sprig

import "github.com/go-gl/mathgl/mgl32"

// Pose describes a local transform by its components.
//
// Composition order:
//
//	Scale -> Rotate(Axis, Rotation) -> Translate
type Pose struct {
	Translation Vec3
	Scale       Vec3
	Rotation    float32 // radians around Axis
	Axis        Vec3    // rotation axis; zero means +Z
}

// IdentityPose returns a pose whose Matrix is the identity.
func IdentityPose() Pose {
	return Pose{Scale: Vec3{1, 1, 1}, Axis: Vec3{0, 0, 1}}
}

// Matrix composes the pose into a local transform.
func (p Pose) Matrix() Mat4 {
	axis := p.Axis
	if axis == (Vec3{}) {
		axis = Vec3{0, 0, 1}
	}
	t := mgl32.Translate3D(p.Translation[0], p.Translation[1], p.Translation[2])
	r := mgl32.HomogRotate3D(p.Rotation, axis.Normalize())
	s := mgl32.Scale3D(p.Scale[0], p.Scale[1], p.Scale[2])
	return t.Mul4(r).Mul4(s)
}

// --- Local transform setters ---
//
// These write through n.Transform and therefore mark it. They cannot mark the
// ancestors; reach n through the tree's mutable path before calling them.

// SetTransform replaces the local transform.
func (n *SceneNode) SetTransform(m Mat4) {
	n.Transform.Set(m)
}

// SetPose replaces the local transform with p.Matrix().
func (n *SceneNode) SetPose(p Pose) {
	n.Transform.Set(p.Matrix())
}

// Translate post-multiplies the local transform by a translation.
func (n *SceneNode) Translate(x, y, z float32) {
	m := n.Transform.Mut()
	*m = m.Mul4(mgl32.Translate3D(x, y, z))
}

// ScaleBy post-multiplies the local transform by a scale.
func (n *SceneNode) ScaleBy(x, y, z float32) {
	m := n.Transform.Mut()
	*m = m.Mul4(mgl32.Scale3D(x, y, z))
}

// RotateZ post-multiplies the local transform by a rotation around +Z.
func (n *SceneNode) RotateZ(rad float32) {
	m := n.Transform.Mut()
	*m = m.Mul4(mgl32.HomogRotate3DZ(rad))
}

// --- World transform recomputation ---

// computeCache brings n's cache and its subtree up to date. parent is the
// already resolved world transform of n's parent.
//
// When parent changed this pass, n's cache is rewritten and every child is
// visited unconditionally. Otherwise only modified children are visited,
// unless n's own local transform changed, which counts as a parent change
// for the subtree.
func computeCache(parent *Tracked[Mat4], n *SceneNode, st *recomputeStats) {
	st.visited++
	if parent.IsUnmodified() && n.Transform.IsUnmodified() {
		for i := range n.children {
			c := &n.children[i]
			if c.IsModified() {
				computeCache(&n.cache, c.Get(), st)
			}
		}
		return
	}

	n.cache.Set(parent.Get().Mul4(n.Transform.Get()))
	st.recomputed++
	for i := range n.children {
		computeCache(&n.cache, n.children[i].Get(), st)
	}
}

// recomputeStats counts work done by one RecomputeCaches pass.
type recomputeStats struct {
	visited    int
	recomputed int
}
