package sprig

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// debugStats holds per-pass timing and counts. Only populated when the tree
// is in debug mode.
type debugStats struct {
	recomputeTime time.Duration
	resetTime     time.Duration
	uploadTime    time.Duration
	visited       int
	recomputed    int
	transforms    int
	quads         int
}

// debugLog reports stats at debug level.
func (t *SceneTree) debugLog(stats debugStats) {
	if !t.debug {
		return
	}
	logger.Debug("sprig frame",
		"recompute", stats.recomputeTime,
		"upload", stats.uploadTime,
		"reset", stats.resetTime,
		"visited", stats.visited,
		"recomputed", stats.recomputed,
		"transforms", stats.transforms,
		"quads", stats.quads,
	)
}

// debugMaxTreeDepth is the depth above which debugCheckTree warns.
const debugMaxTreeDepth = 32

// debugMaxChildCount is the child count above which a node triggers a warning.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *SceneNode) {
	if len(n.children) > debugMaxChildCount {
		logger.Warn("sprig: node has too many children",
			"node", n.Name, "children", len(n.children), "threshold", debugMaxChildCount)
	}
}

// debugCheckTree warns when the tree is deeper than debugMaxTreeDepth.
func debugCheckTree(root *SceneNode) {
	var deepest int
	var walk func(n *SceneNode, depth int)
	walk = func(n *SceneNode, depth int) {
		deepest = max(deepest, depth)
		for i := range n.children {
			walk(n.children[i].Get(), depth+1)
		}
	}
	walk(root, 1)
	if deepest > debugMaxTreeDepth {
		logger.Warn("sprig: tree depth exceeds threshold",
			"depth", deepest, "threshold", debugMaxTreeDepth)
	}
}

// DumpTree writes an indented listing of the tree. Modified wrappers are
// prefixed with '*'. Each line shows the node, its slot, the diagonal of its
// local transform and the diagonal of its cached world transform.
func DumpTree(w io.Writer, t *SceneTree) error {
	var err error
	t.Walk(func(path []int, n *SceneNode) bool {
		label := n.Name
		if label == "" {
			label = "node"
		}
		wrapper := t.wrapperAt(path)
		_, err = fmt.Fprintf(w, "%s%s%s [%d]: %stransform %v, %scache %v\n",
			strings.Repeat("\t", len(path)),
			star(wrapper.IsModified()),
			label,
			n.Index(),
			star(n.Transform.IsModified()),
			n.Transform.Get().Diag(),
			star(n.cache.IsModified()),
			n.cache.Get().Diag(),
		)
		return err == nil
	})
	return err
}

func star(modified bool) string {
	if modified {
		return "*"
	}
	return ""
}
