package sprig

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// NodeSpec is the YAML description of a node and its subtree.
type NodeSpec struct {
	Name      string        `yaml:"name"`
	Transform TransformSpec `yaml:"transform"`
	Quads     []QuadSpec    `yaml:"quads,omitempty"`
	Children  []NodeSpec    `yaml:"children,omitempty"`
}

// TransformSpec describes a local transform. At most one of Matrix, Diagonal
// or the pose fields may be set; an empty spec is the identity.
type TransformSpec struct {
	// Matrix holds 16 values in column-major order.
	Matrix   []float32 `yaml:"matrix,omitempty"`
	Diagonal *float32  `yaml:"diagonal,omitempty"`

	Translate []float32 `yaml:"translate,omitempty"`
	Scale     []float32 `yaml:"scale,omitempty"`
	Rotate    float32   `yaml:"rotate,omitempty"`
}

// QuadSpec describes a quad either as a rect [x, y, w, h] or as four points.
type QuadSpec struct {
	Rect   []float32   `yaml:"rect,omitempty"`
	Points [][]float32 `yaml:"points,omitempty"`
}

// LoadSceneYAML parses a YAML node description and builds a tree from it.
func LoadSceneYAML(data []byte) (*SceneTree, error) {
	root, err := ParseNodeYAML(data)
	if err != nil {
		return nil, err
	}
	return NewSceneTree(root), nil
}

// ParseNodeYAML parses a YAML node description into a detached node.
func ParseNodeYAML(data []byte) (*SceneNode, error) {
	var spec NodeSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	n, err := spec.Build()
	if err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	return n, nil
}

// Build creates the node described by s, children included.
func (s NodeSpec) Build() (*SceneNode, error) {
	m, err := s.Transform.Resolve()
	if err != nil {
		return nil, fmt.Errorf("node %q: %w", s.Name, err)
	}
	n := NewNamedNode(s.Name, m)
	for i, qs := range s.Quads {
		q, err := qs.Quad()
		if err != nil {
			return nil, fmt.Errorf("node %q quad %d: %w", s.Name, i, err)
		}
		n.AddQuad(q)
	}
	for _, cs := range s.Children {
		c, err := cs.Build()
		if err != nil {
			return nil, err
		}
		n.AddChild(c)
	}
	return n, nil
}

// Resolve turns the spec into a local transform.
func (s TransformSpec) Resolve() (Mat4, error) {
	hasPose := s.Translate != nil || s.Scale != nil || s.Rotate != 0
	set := 0
	for _, b := range []bool{s.Matrix != nil, s.Diagonal != nil, hasPose} {
		if b {
			set++
		}
	}
	if set > 1 {
		return Mat4{}, errors.New("transform: matrix, diagonal and pose fields are exclusive")
	}

	switch {
	case s.Matrix != nil:
		if len(s.Matrix) != 16 {
			return Mat4{}, fmt.Errorf("transform: matrix needs 16 values, got %d", len(s.Matrix))
		}
		var m Mat4
		copy(m[:], s.Matrix)
		return m, nil
	case s.Diagonal != nil:
		return Diagonal(*s.Diagonal), nil
	case hasPose:
		p := IdentityPose()
		if s.Translate != nil {
			v, err := vec3(s.Translate, 0)
			if err != nil {
				return Mat4{}, fmt.Errorf("transform: translate: %w", err)
			}
			p.Translation = v
		}
		if s.Scale != nil {
			v, err := vec3(s.Scale, 1)
			if err != nil {
				return Mat4{}, fmt.Errorf("transform: scale: %w", err)
			}
			p.Scale = v
		}
		p.Rotation = s.Rotate
		return p.Matrix(), nil
	}
	return Identity(), nil
}

// Quad resolves the spec into a Quad.
func (s QuadSpec) Quad() (Quad, error) {
	switch {
	case s.Rect != nil && s.Points != nil:
		return Quad{}, errors.New("rect and points are exclusive")
	case s.Rect != nil:
		if len(s.Rect) != 4 {
			return Quad{}, fmt.Errorf("rect needs 4 values, got %d", len(s.Rect))
		}
		return NewRect(s.Rect[0], s.Rect[1], s.Rect[2], s.Rect[3]), nil
	case s.Points != nil:
		if len(s.Points) != 4 {
			return Quad{}, fmt.Errorf("quad needs 4 points, got %d", len(s.Points))
		}
		var q Quad
		for i, p := range s.Points {
			v, err := vec3(p, 0)
			if err != nil {
				return Quad{}, fmt.Errorf("point %d: %w", i, err)
			}
			q.Points[i] = v
		}
		return q, nil
	}
	return Quad{}, errors.New("quad needs rect or points")
}

// vec3 accepts 2 or 3 components; a missing z takes fill.
func vec3(vals []float32, fill float32) (Vec3, error) {
	switch len(vals) {
	case 2:
		return Vec3{vals[0], vals[1], fill}, nil
	case 3:
		return Vec3{vals[0], vals[1], vals[2]}, nil
	}
	return Vec3{}, fmt.Errorf("want 2 or 3 components, got %d", len(vals))
}
