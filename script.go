package sprig

import (
	"encoding/json"
	"fmt"
)

// scriptStep is a single action in a frame script.
type scriptStep struct {
	Action string    `json:"action"`
	Path   []int     `json:"path,omitempty"`
	Name   string    `json:"name,omitempty"`
	X      float32   `json:"x,omitempty"`
	Y      float32   `json:"y,omitempty"`
	Z      float32   `json:"z,omitempty"`
	Value  *float32  `json:"value,omitempty"`
	Rect   []float32 `json:"rect,omitempty"`
	Index  int       `json:"index,omitempty"`
	Frames int       `json:"frames,omitempty"`
}

// frameScript is the top-level JSON structure for a frame script.
type frameScript struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner replays scripted mutations against a tree, one frame per Step.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadFrameScript parses a JSON frame script.
//
//	{"steps": [
//		{"action": "translate", "path": [0], "x": 10},
//		{"action": "frame"},
//		{"action": "wait", "frames": 3}
//	]}
func LoadFrameScript(jsonData []byte) (*ScriptRunner, error) {
	var script frameScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse frame script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse frame script: no steps")
	}
	for i, st := range script.Steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("parse frame script: step %d: %w", i, err)
		}
	}
	return &ScriptRunner{steps: script.Steps}, nil
}

// Done reports whether all steps have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Step applies mutation steps up to the next "frame" or "wait" step (or the
// end of the script) and then runs one Frame against sink.
//
// A failing step stops the runner. Steps applied before it stay in the tree
// and are still flushed through Frame, so the tree ends the call with no
// pending modifications.
func (r *ScriptRunner) Step(t *SceneTree, sink UploadSink) (FrameStats, error) {
	if r.done {
		return FrameStats{}, nil
	}
	if r.waitCount > 0 {
		r.waitCount--
		r.checkDone()
		return t.Frame(sink), nil
	}

loop:
	for r.cursor < len(r.steps) {
		st := r.steps[r.cursor]
		r.cursor++
		switch st.Action {
		case "frame":
			break loop
		case "wait":
			if st.Frames > 0 {
				r.waitCount = st.Frames - 1 // this frame counts as one
			}
			break loop
		default:
			if err := st.apply(t); err != nil {
				r.done = true
				return t.Frame(sink), fmt.Errorf("frame script step %d: %w", r.cursor-1, err)
			}
		}
	}
	r.checkDone()
	return t.Frame(sink), nil
}

func (r *ScriptRunner) checkDone() {
	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
}

func (st scriptStep) validate() error {
	switch st.Action {
	case "frame", "wait", "translate", "scale", "add_child", "remove_child":
	case "set_diagonal", "rotate_z":
		if st.Value == nil {
			return fmt.Errorf("%s needs a value", st.Action)
		}
	case "add_quad":
		if len(st.Rect) != 4 {
			return fmt.Errorf("add_quad needs rect [x, y, w, h], got %d values", len(st.Rect))
		}
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
	return nil
}

// apply performs a mutation step through the tree's mutable path.
func (st scriptStep) apply(t *SceneTree) error {
	n, ok := t.NodeMut(st.Path...)
	if !ok {
		return fmt.Errorf("%s: no node at path %v", st.Action, st.Path)
	}
	switch st.Action {
	case "set_diagonal":
		n.SetTransform(Diagonal(*st.Value))
	case "translate":
		n.Translate(st.X, st.Y, st.Z)
	case "scale":
		n.ScaleBy(st.X, st.Y, st.Z)
	case "rotate_z":
		n.RotateZ(*st.Value)
	case "add_child":
		m := Identity()
		if st.Value != nil {
			m = Diagonal(*st.Value)
		}
		n.AddChild(NewNamedNode(st.Name, m))
	case "add_quad":
		n.AddQuad(NewRect(st.Rect[0], st.Rect[1], st.Rect[2], st.Rect[3]))
	case "remove_child":
		if st.Index < 0 || st.Index >= n.NumChildren() {
			return fmt.Errorf("remove_child: index %d out of range", st.Index)
		}
		n.RemoveChildAt(st.Index)
	}
	return nil
}
