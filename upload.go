package sprig

import "time"

// TransformUpload is one world transform destined for a node slot.
type TransformUpload struct {
	Slot  int
	World Mat4
}

// QuadUpload is one quad destined for a quad slot.
type QuadUpload struct {
	Slot QuadSlot
	Quad Quad
}

// UploadSink receives the per-frame writes of a SceneTree. It stands for the
// rendering layer that owns the device buffers.
type UploadSink interface {
	// Reallocate is called before any upload when the slot layout changed.
	// The sink should drop everything it holds and size for nodes slots.
	Reallocate(nodes int)
	UploadTransform(u TransformUpload)
	UploadQuad(u QuadUpload)
}

// FrameStats summarizes one Frame call.
type FrameStats struct {
	Nodes       int
	Transforms  int
	Quads       int
	Reallocated bool
	FastPath    bool
}

// CollectTransforms appends, in pre-order, the slot and world transform of
// every node whose cache is modified.
func (t *SceneTree) CollectTransforms(dst []TransformUpload) []TransformUpload {
	t.Walk(func(_ []int, n *SceneNode) bool {
		if n.cache.IsModified() {
			dst = append(dst, TransformUpload{Slot: n.Index(), World: n.cache.Get()})
		}
		return true
	})
	return dst
}

// CollectQuads appends every modified quad, plus every quad of a node whose
// slot moved.
func (t *SceneTree) CollectQuads(dst []QuadUpload) []QuadUpload {
	t.Walk(func(_ []int, n *SceneNode) bool {
		all := n.index.IsModified()
		idx := n.Index()
		for i := range n.quads {
			if all || n.quads[i].IsModified() {
				dst = append(dst, QuadUpload{
					Slot: QuadSlot{Node: idx, Quad: i},
					Quad: n.quads[i].Get(),
				})
			}
		}
		return true
	})
	return dst
}

// collectAll appends every transform and quad regardless of state.
func (t *SceneTree) collectAll(ts []TransformUpload, qs []QuadUpload) ([]TransformUpload, []QuadUpload) {
	t.Walk(func(_ []int, n *SceneNode) bool {
		ts = append(ts, TransformUpload{Slot: n.Index(), World: n.cache.Get()})
		for slot, q := range n.QuadSlots() {
			qs = append(qs, QuadUpload{Slot: slot, Quad: q})
		}
		return true
	})
	return ts, qs
}

// Frame runs one consumer cycle: recompute the caches, push what changed to
// sink and end the epoch. When the layout changed the sink is reallocated and
// receives everything.
func (t *SceneTree) Frame(sink UploadSink) FrameStats {
	var stats debugStats
	var t0 time.Time
	if t.debug {
		t0 = time.Now()
	}

	fast := t.root.IsUnmodified()
	t.RecomputeCaches()

	if t.debug {
		stats.recomputeTime = time.Since(t0)
		stats.visited = t.lastStats.visited
		stats.recomputed = t.lastStats.recomputed
		t0 = time.Now()
	}

	fs := FrameStats{Nodes: t.Len(), FastPath: fast}
	var ts []TransformUpload
	var qs []QuadUpload
	if t.layoutChanged {
		fs.Reallocated = true
		sink.Reallocate(fs.Nodes)
		ts, qs = t.collectAll(ts, qs)
	} else if !fast {
		ts = t.CollectTransforms(ts)
		qs = t.CollectQuads(qs)
	}
	for _, u := range ts {
		sink.UploadTransform(u)
	}
	for _, u := range qs {
		sink.UploadQuad(u)
	}
	fs.Transforms = len(ts)
	fs.Quads = len(qs)

	if t.debug {
		stats.uploadTime = time.Since(t0)
		stats.transforms = fs.Transforms
		stats.quads = fs.Quads
		t0 = time.Now()
	}

	t.UnsetModifications()

	if t.debug {
		stats.resetTime = time.Since(t0)
		t.debugLog(stats)
	}
	return fs
}
