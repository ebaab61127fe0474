// Package sprig is an incremental, dirty-tracked scene-graph transform cache.
//
// A [SceneTree] owns a hierarchy of [SceneNode] values. Each node carries a
// local transform, a cached world transform and a list of [Quad] drawables,
// every one of them wrapped in a [Tracked] value that records whether it was
// written since the last checkpoint.
//
// # Frame protocol
//
// Every frame follows the same four steps:
//
//	n, _ := tree.NodeMut(1, 0) // mutate through the mutable path
//	n.Translate(10, 0, 0)
//	tree.RecomputeCaches()     // resolve world = parentWorld * local
//	uploads := tree.CollectTransforms(nil)
//	tree.UnsetModifications()  // end the epoch
//
// [SceneTree.Frame] runs the last three steps against an [UploadSink], such
// as the Ebitengine-backed [VertexBuffer].
//
// # Propagation
//
// RecomputeCaches does nothing when the root wrapper is unmodified. Writes
// must therefore reach a node through [SceneTree.RootMut],
// [SceneNode.ChildMut], [SceneNode.ChildrenMut] or [SceneTree.NodeMut], which
// mark every wrapper on the way down. Nodes obtained through read accessors
// must not be written to.
//
// # Slots
//
// Every node has a positional index: a dense pre-order number with the root
// at 0. Consumers use it to address flat device buffers. Adding or removing
// children renumbers the tree on the next recompute. That and adding quads
// set [SceneTree.LayoutChanged].
//
// # Other features
//
// Scene descriptions can be loaded from YAML ([LoadSceneYAML]), mutations can
// be replayed from JSON frame scripts ([LoadFrameScript]), node poses can be
// animated with tweens (via [gween]), and upload events can be bridged into a
// [Donburi] world with the adapter in sprig/ecs.
//
// sprig is single-threaded: mutation and the recompute/reset passes must be
// serialized by the caller.
//
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package sprig
