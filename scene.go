package sprig

import "time"

// SceneTree owns the root node and runs the whole-tree passes. A frame is:
// mutate through RootMut/NodeMut, RecomputeCaches once, read the modified
// caches, UnsetModifications once. The phases must not overlap.
type SceneTree struct {
	root  Tracked[*SceneNode]
	debug bool

	// layoutChanged is set when positional indices were (re)assigned or a
	// quad count changed this epoch, so consumers must treat their flat
	// buffers as reallocated.
	layoutChanged bool

	lastStats recomputeStats
}

// NewSceneTree takes ownership of root. The root wrapper starts modified so
// the first RecomputeCaches resolves every cache. Positional indices are
// assigned in pre-order with the root at 0.
// Panics if root is nil or already attached to a parent.
func NewSceneTree(root *SceneNode) *SceneTree {
	if root == nil {
		panic("sprig: cannot build a tree from a nil root")
	}
	if root.attached {
		panic("sprig: root already has a parent")
	}
	next := 0
	assignPreorder(root, &next)
	root.attached = true
	return &SceneTree{
		root:          NewModified(root),
		layoutChanged: true,
	}
}

// Root returns the root wrapper for reading.
func (t *SceneTree) Root() *Tracked[*SceneNode] {
	return &t.root
}

// RootMut marks the root modified and returns it for writing.
func (t *SceneTree) RootMut() *SceneNode {
	t.root.MarkModified()
	return t.root.Get()
}

// Node returns the node addressed by path, a sequence of child indices from
// the root. The empty path is the root. The node MUST NOT be written to.
func (t *SceneTree) Node(path ...int) (*SceneNode, bool) {
	n := t.root.Get()
	for _, i := range path {
		if i < 0 || i >= len(n.children) {
			return nil, false
		}
		n = n.children[i].Get()
	}
	return n, true
}

// NodeMut returns the node addressed by path for writing. Every node wrapper
// from the root down to the target is marked modified, which is the upward
// propagation RecomputeCaches relies on. Nothing is marked if the path does
// not resolve.
func (t *SceneTree) NodeMut(path ...int) (*SceneNode, bool) {
	if _, ok := t.Node(path...); !ok {
		return nil, false
	}
	n := t.RootMut()
	for _, i := range path {
		n = n.ChildMut(i)
	}
	return n, true
}

// wrapperAt returns the wrapper of the node at path. The path must resolve.
func (t *SceneTree) wrapperAt(path []int) *Tracked[*SceneNode] {
	w := &t.root
	for _, i := range path {
		w = w.Get().ChildAt(i)
	}
	return w
}

// Walk visits every node in pre-order. The path slice is reused between
// calls and must be copied if retained. Returning false stops the walk.
func (t *SceneTree) Walk(fn func(path []int, n *SceneNode) bool) {
	path := make([]int, 0, 8)
	var walk func(n *SceneNode) bool
	walk = func(n *SceneNode) bool {
		if !fn(path, n) {
			return false
		}
		for i := range n.children {
			path = append(path, i)
			ok := walk(n.children[i].Get())
			path = path[:len(path)-1]
			if !ok {
				return false
			}
		}
		return true
	}
	walk(t.root.Get())
}

// Len returns the number of nodes in the tree.
func (t *SceneTree) Len() int {
	return t.root.Get().subtreeLen()
}

// LayoutChanged reports whether positional indices were assigned or moved,
// or quads were added, since the last UnsetModifications.
func (t *SceneTree) LayoutChanged() bool {
	return t.layoutChanged
}

// RecomputeCaches brings every cached world transform up to date. If the root
// wrapper is unmodified the pass does nothing. Otherwise the root is resolved
// against an implicit modified identity parent, which forces the root cache
// to equal the root transform and every cache below it to be rewritten.
func (t *SceneTree) RecomputeCaches() {
	t.lastStats = recomputeStats{}
	if t.root.IsUnmodified() {
		logger.Debug("sprig: root unmodified, skipping recompute")
		return
	}

	root := t.root.Get()
	if structureChanged(root) {
		next := 0
		assignPreorder(root, &next)
		t.layoutChanged = true
		if t.debug {
			debugCheckTree(root)
		}
	}

	parent := NewModified(Identity())
	computeCache(&parent, root, &t.lastStats)
	logger.Debug("sprig: recomputed caches",
		"visited", t.lastStats.visited, "recomputed", t.lastStats.recomputed)
}

// structureChanged reports whether a node reachable through modified
// wrappers had children or quads added or removed.
func structureChanged(n *SceneNode) bool {
	if n.childCountChanged || n.quadCountChanged {
		return true
	}
	for i := range n.children {
		c := &n.children[i]
		if c.IsModified() && structureChanged(c.Get()) {
			return true
		}
	}
	return false
}

// UnsetModifications ends the epoch: every wrapper in the tree is reset,
// children before their parent. Safe to call on an unmodified tree.
func (t *SceneTree) UnsetModifications() {
	var t0 time.Time
	if t.debug {
		t0 = time.Now()
	}
	cleared := unsetModifications(&t.root)
	t.layoutChanged = false
	if t.debug {
		logger.Debug("sprig: reset", "cleared", cleared, "elapsed", time.Since(t0))
	}
}

// unsetModifications resets w's subtree post-order and returns how many
// wrappers were cleared.
func unsetModifications(w *Tracked[*SceneNode]) int {
	n := w.Get()
	cleared := 0
	for i := range n.children {
		cleared += unsetModifications(&n.children[i])
	}
	for i := range n.quads {
		cleared += b2i(n.quads[i].Reset())
	}
	cleared += b2i(n.Transform.Reset())
	cleared += b2i(n.cache.Reset())
	cleared += b2i(n.index.Reset())
	n.childCountChanged = false
	n.quadCountChanged = false
	cleared += b2i(w.Reset())
	return cleared
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

// SetDebugMode enables or disables debug mode. When enabled, passes log
// timing and counts at debug level and tree shape warnings are emitted.
func (t *SceneTree) SetDebugMode(enabled bool) {
	t.debug = enabled
	globalDebug = enabled
	if enabled {
		debugCheckTree(t.root.Get())
	}
}

// globalDebug mirrors the most recently set tree debug flag so node
// operations, which lack a tree pointer, can check it cheaply.
var globalDebug bool
