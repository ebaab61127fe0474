package sprig

import "testing"

func TestLoadFrameScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "translate", "path": [1], "x": 10},
			{"action": "frame"},
			{"action": "wait", "frames": 3},
			{"action": "set_diagonal", "path": [1, 1], "value": 4}
		]
	}`)

	runner, err := LoadFrameScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(runner.steps))
	}
	if runner.steps[0].Action != "translate" || runner.steps[0].X != 10 {
		t.Error("step 0 mismatch")
	}
	if runner.steps[2].Action != "wait" || runner.steps[2].Frames != 3 {
		t.Error("step 2 mismatch")
	}
	if runner.steps[3].Value == nil || *runner.steps[3].Value != 4 {
		t.Error("step 3 mismatch")
	}
}

func TestLoadFrameScript_Invalid(t *testing.T) {
	for name, src := range map[string]string{
		"json":     `not json`,
		"empty":    `{"steps": []}`,
		"unknown":  `{"steps": [{"action": "explode"}]}`,
		"no value": `{"steps": [{"action": "rotate_z"}]}`,
		"rect":     `{"steps": [{"action": "add_quad", "rect": [1]}]}`,
	} {
		if _, err := LoadFrameScript([]byte(src)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestRunnerStep_FramesAndWait(t *testing.T) {
	tree := buildDemoTree()
	sink := &recordingSink{}
	runner, err := LoadFrameScript([]byte(`{"steps": [
		{"action": "set_diagonal", "path": [1, 1], "value": 5},
		{"action": "frame"},
		{"action": "wait", "frames": 2},
		{"action": "add_child", "path": [0], "name": "c11", "value": 4},
		{"action": "add_quad", "path": [0, 0], "rect": [0, 0, 1, 1]}
	]}`))
	if err != nil {
		t.Fatal(err)
	}

	// Frame 1: set_diagonal then frame.
	fs, err := runner.Step(tree, sink)
	if err != nil {
		t.Fatal(err)
	}
	if fs.FastPath {
		t.Error("first frame should recompute")
	}
	assertDiag(t, "c22", mustNode(t, tree, 1, 1).World(), 15)

	// Frames 2 and 3: wait.
	for i := range 2 {
		fs, err = runner.Step(tree, sink)
		if err != nil {
			t.Fatal(err)
		}
		if !fs.FastPath {
			t.Errorf("wait frame %d should take the fast path", i)
		}
	}
	if runner.Done() {
		t.Fatal("runner should not be done before the trailing steps")
	}

	// Frame 4: trailing mutations, then done.
	fs, err = runner.Step(tree, sink)
	if err != nil {
		t.Fatal(err)
	}
	if !fs.Reallocated || fs.Nodes != 6 || fs.Quads != 1 {
		t.Errorf("stats = %+v, want reallocated, 6 nodes, 1 quad", fs)
	}
	assertDiag(t, "c11", mustNode(t, tree, 0, 0).World(), 8)
	if !runner.Done() {
		t.Error("runner should be done")
	}

	fs, err = runner.Step(tree, sink)
	if err != nil || fs != (FrameStats{}) {
		t.Errorf("Step after Done = (%+v, %v), want zero", fs, err)
	}
}

func TestRunnerStep_BadPath(t *testing.T) {
	tree := buildDemoTree()
	runner, err := LoadFrameScript([]byte(`{"steps": [{"action": "translate", "path": [9]}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := runner.Step(tree, &recordingSink{}); err == nil {
		t.Error("expected error for missing node")
	}
	if !runner.Done() {
		t.Error("runner should stop after an error")
	}
	assertAllUnmodified(t, tree)
}

func TestRunnerStep_RemoveChild(t *testing.T) {
	tree := buildDemoTree()
	runner, err := LoadFrameScript([]byte(`{"steps": [
		{"action": "remove_child", "path": [1], "index": 0},
		{"action": "remove_child", "path": [1], "index": 5}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	sink := &recordingSink{}
	fs, err := runner.Step(tree, sink)
	if err == nil {
		t.Error("expected error for out-of-range removal")
	}
	if n := mustNode(t, tree, 1); n.NumChildren() != 1 {
		t.Errorf("c2 children = %d, want 1", n.NumChildren())
	}
	// The removal applied before the failing step is still flushed.
	if !fs.Reallocated || fs.Nodes != 4 || len(sink.reallocs) != 1 {
		t.Errorf("stats = %+v, want a reallocation to 4 nodes", fs)
	}
	assertAllUnmodified(t, tree)
}
