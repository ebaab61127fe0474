package sprig

import "iter"

// SceneNode is one element of the transform hierarchy. It owns its children
// and quads; there are no parent pointers.
//
// Writes must reach a node through the tree's mutable path (SceneTree.RootMut,
// ChildMut, ChildrenMut, SceneTree.NodeMut). Each step on that path marks the
// wrapper it passes through, which is what lets RecomputeCaches skip an
// unmodified tree. Writing to a node reached through a read accessor leaves
// its ancestors unmarked and its cache stale.
type SceneNode struct {
	// Name is a free-form label used by DumpTree and scene files.
	Name string

	// Transform is the local transform relative to the parent.
	Transform Tracked[Mat4]

	cache Tracked[Mat4]
	index Tracked[int]

	children []Tracked[*SceneNode]
	quads    []Tracked[Quad]

	// Structural flags. Adding or removing elements may force the consumer
	// to reallocate its buffers, so they are tracked apart from the values.
	childCountChanged bool
	quadCountChanged  bool

	attached bool
}

// QuadSlot addresses a quad in the flat buffers of a consumer: the positional
// index of the owning node and the quad's position within that node.
type QuadSlot struct {
	Node int
	Quad int
}

// NewSceneNode creates a detached node whose local transform and cache are both m.
func NewSceneNode(m Mat4) *SceneNode {
	return &SceneNode{
		Transform: NewTracked(m),
		cache:     NewTracked(m),
	}
}

// NewNamedNode is NewSceneNode with a Name.
func NewNamedNode(name string, m Mat4) *SceneNode {
	n := NewSceneNode(m)
	n.Name = name
	return n
}

// --- Tree manipulation ---

// AddChild appends child to this node's children. The child wrapper and its
// local transform are marked so the next recompute resolves it, and its subtree receives
// pre-order positional indices following this node's existing subtree.
// Panics if child is nil, already attached, or would create a cycle.
func (n *SceneNode) AddChild(child *SceneNode) {
	if child == nil {
		panic("sprig: cannot add nil child")
	}
	if child.attached {
		panic("sprig: child already has a parent")
	}
	if child == n || child.contains(n) {
		panic("sprig: adding child would create a cycle")
	}
	next := n.index.Get() + n.subtreeLen()
	assignPreorder(child, &next)
	// The child's cache was never resolved against this parent.
	child.Transform.MarkModified()
	child.attached = true
	n.children = append(n.children, NewModified(child))
	n.childCountChanged = true
	if globalDebug {
		debugCheckChildCount(n)
	}
}

// RemoveChildAt detaches and returns the child at index i. The returned node
// keeps its state and can be attached again.
func (n *SceneNode) RemoveChildAt(i int) *SceneNode {
	if i < 0 || i >= len(n.children) {
		panic("sprig: child index out of range")
	}
	child := n.children[i].Get()
	copy(n.children[i:], n.children[i+1:])
	n.children[len(n.children)-1] = Tracked[*SceneNode]{}
	n.children = n.children[:len(n.children)-1]
	child.attached = false
	n.childCountChanged = true
	return child
}

// AddQuad appends q as a modified quad and returns its position.
func (n *SceneNode) AddQuad(q Quad) int {
	n.quads = append(n.quads, NewModified(q))
	n.quadCountChanged = true
	return len(n.quads) - 1
}

// --- Read access ---

// Children returns the child wrappers. The returned slice MUST NOT be mutated.
func (n *SceneNode) Children() []Tracked[*SceneNode] {
	return n.children
}

// NumChildren returns the number of children.
func (n *SceneNode) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the wrapper of the child at index i. The pointer is valid
// until the next structural change of n.
func (n *SceneNode) ChildAt(i int) *Tracked[*SceneNode] {
	return &n.children[i]
}

// AllChildren iterates the children in order without marking them.
func (n *SceneNode) AllChildren() iter.Seq2[int, *SceneNode] {
	return func(yield func(int, *SceneNode) bool) {
		for i := range n.children {
			if !yield(i, n.children[i].Get()) {
				return
			}
		}
	}
}

// Quads returns the quad wrappers. The returned slice MUST NOT be mutated.
func (n *SceneNode) Quads() []Tracked[Quad] {
	return n.quads
}

// NumQuads returns the number of quads.
func (n *SceneNode) NumQuads() int {
	return len(n.quads)
}

// AllQuads iterates the quads in order without marking them.
func (n *SceneNode) AllQuads() iter.Seq2[int, Quad] {
	return func(yield func(int, Quad) bool) {
		for i := range n.quads {
			if !yield(i, n.quads[i].Get()) {
				return
			}
		}
	}
}

// QuadSlots pairs every quad with its flat-buffer slot. Like Index, the
// node part is valid after RecomputeCaches.
func (n *SceneNode) QuadSlots() iter.Seq2[QuadSlot, Quad] {
	return func(yield func(QuadSlot, Quad) bool) {
		idx := n.index.Get()
		for i := range n.quads {
			if !yield(QuadSlot{Node: idx, Quad: i}, n.quads[i].Get()) {
				return
			}
		}
	}
}

// Cache returns a copy of the world-transform wrapper.
func (n *SceneNode) Cache() Tracked[Mat4] {
	return n.cache
}

// World returns the cached world transform.
func (n *SceneNode) World() Mat4 {
	return n.cache.Get()
}

// Index returns the node's positional index. Slots are dense and unique
// only after RecomputeCaches: AddChild numbers the new subtree inside the
// receiving node's range, so until the next recompute it may share slots
// with nodes that follow.
func (n *SceneNode) Index() int {
	return n.index.Get()
}

// IndexChanged reports whether the positional index moved this epoch.
func (n *SceneNode) IndexChanged() bool {
	return n.index.IsModified()
}

// ChildCountChanged reports whether children were added or removed this epoch.
func (n *SceneNode) ChildCountChanged() bool {
	return n.childCountChanged
}

// QuadCountChanged reports whether quads were added this epoch.
func (n *SceneNode) QuadCountChanged() bool {
	return n.quadCountChanged
}

// --- Write access ---

// ChildMut marks the child at index i modified and returns it for writing.
func (n *SceneNode) ChildMut(i int) *SceneNode {
	c := &n.children[i]
	c.MarkModified()
	return c.Get()
}

// ChildrenMut iterates the children in order, marking each visited wrapper.
func (n *SceneNode) ChildrenMut() iter.Seq2[int, *SceneNode] {
	return func(yield func(int, *SceneNode) bool) {
		for i := range n.children {
			if !yield(i, n.ChildMut(i)) {
				return
			}
		}
	}
}

// QuadMut marks the quad at index i modified and returns it for writing.
func (n *SceneNode) QuadMut(i int) *Quad {
	return n.quads[i].Mut()
}

// QuadsMut iterates the quads in order, marking each visited wrapper.
func (n *SceneNode) QuadsMut() iter.Seq2[int, *Quad] {
	return func(yield func(int, *Quad) bool) {
		for i := range n.quads {
			if !yield(i, n.quads[i].Mut()) {
				return
			}
		}
	}
}

// --- Helpers ---

// subtreeLen counts n and all of its descendants.
func (n *SceneNode) subtreeLen() int {
	size := 1
	for i := range n.children {
		size += n.children[i].Get().subtreeLen()
	}
	return size
}

// contains reports whether target is a strict descendant of n.
func (n *SceneNode) contains(target *SceneNode) bool {
	for i := range n.children {
		c := n.children[i].Get()
		if c == target || c.contains(target) {
			return true
		}
	}
	return false
}

// setIndex writes the positional index, marking it only when it moves.
func (n *SceneNode) setIndex(i int) {
	if n.index.Get() != i {
		n.index.Set(i)
	}
}

// assignPreorder numbers n and its descendants in pre-order starting at *next.
func assignPreorder(n *SceneNode, next *int) {
	n.setIndex(*next)
	*next++
	for i := range n.children {
		assignPreorder(n.children[i].Get(), next)
	}
}
