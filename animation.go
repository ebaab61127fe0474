package sprig

import (
	"slices"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float32 fields of a Pose and writes the result
// to a node's local transform. The node is addressed by its path in a tree and
// reached through NodeMut on every update, so the change propagates to the
// root. If the path stops resolving, the group stops.
//
// There is no global animation manager; users call Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float32
	pose   Pose
	tree   *SceneTree
	path   []int
	Done   bool
}

func newTweenGroup(tree *SceneTree, path []int, from Pose) *TweenGroup {
	return &TweenGroup{tree: tree, path: slices.Clone(path), pose: from}
}

func (g *TweenGroup) add(field *float32, to, duration float32, fn ease.TweenFunc) {
	g.tweens[g.count] = gween.New(*field, to, duration, fn)
	g.fields[g.count] = field
	g.count++
}

// Pose returns the pose most recently written.
func (g *TweenGroup) Pose() Pose {
	return g.pose
}

// Update advances all tweens by dt seconds and writes the pose to the node.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	n, ok := g.tree.NodeMut(g.path...)
	if !ok {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = val
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
	n.SetPose(g.pose)
}

// TweenTranslation animates the translation of from towards (toX, toY, toZ).
func TweenTranslation(tree *SceneTree, path []int, from Pose, toX, toY, toZ, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := newTweenGroup(tree, path, from)
	g.add(&g.pose.Translation[0], toX, duration, fn)
	g.add(&g.pose.Translation[1], toY, duration, fn)
	g.add(&g.pose.Translation[2], toZ, duration, fn)
	return g
}

// TweenScale animates the scale of from towards (toX, toY, toZ).
func TweenScale(tree *SceneTree, path []int, from Pose, toX, toY, toZ, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := newTweenGroup(tree, path, from)
	g.add(&g.pose.Scale[0], toX, duration, fn)
	g.add(&g.pose.Scale[1], toY, duration, fn)
	g.add(&g.pose.Scale[2], toZ, duration, fn)
	return g
}

// TweenRotation animates the rotation angle of from towards to.
func TweenRotation(tree *SceneTree, path []int, from Pose, to, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := newTweenGroup(tree, path, from)
	g.add(&g.pose.Rotation, to, duration, fn)
	return g
}
