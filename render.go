package sprig

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// maxBatchQuads is the largest number of quads addressable by uint16 indices
// in a single DrawTriangles call.
const maxBatchQuads = 65536 / 4

// VertexBuffer is an UploadSink that mirrors the tree into flat per-slot
// arrays and turns them into Ebitengine triangles. World transforms map local
// quad coordinates straight to screen pixels.
type VertexBuffer struct {
	// Color tints every quad without a slot color.
	Color Color

	transforms []Mat4
	quads      [][]Quad
	slotColors map[int]Color

	dirty    bool
	vertices []ebiten.Vertex
	indices  []uint16
	white    *ebiten.Image
}

// NewVertexBuffer creates an empty buffer tinted white.
func NewVertexBuffer() *VertexBuffer {
	return &VertexBuffer{Color: ColorWhite}
}

// Reallocate drops all uploaded data and slot colors and sizes the buffer for
// nodes slots. Slots may now address different nodes, so callers re-apply
// SetSlotColor after a frame that reports Reallocated.
func (b *VertexBuffer) Reallocate(nodes int) {
	b.transforms = b.transforms[:0]
	b.quads = make([][]Quad, 0, nodes)
	clear(b.slotColors)
	b.growSlots(nodes)
	b.dirty = true
}

// UploadTransform stores the world transform of a node slot.
func (b *VertexBuffer) UploadTransform(u TransformUpload) {
	b.growSlots(u.Slot + 1)
	b.transforms[u.Slot] = u.World
	b.dirty = true
}

// UploadQuad stores a quad in its slot.
func (b *VertexBuffer) UploadQuad(u QuadUpload) {
	b.growSlots(u.Slot.Node + 1)
	qs := b.quads[u.Slot.Node]
	for len(qs) <= u.Slot.Quad {
		qs = append(qs, Quad{})
	}
	qs[u.Slot.Quad] = u.Quad
	b.quads[u.Slot.Node] = qs
	b.dirty = true
}

// growSlots extends the slot arrays to hold at least n slots.
func (b *VertexBuffer) growSlots(n int) {
	for len(b.transforms) < n {
		b.transforms = append(b.transforms, Identity())
	}
	for len(b.quads) < n {
		b.quads = append(b.quads, nil)
	}
}

// SetSlotColor tints all quads of the given node slot.
func (b *VertexBuffer) SetSlotColor(node int, c Color) {
	if b.slotColors == nil {
		b.slotColors = make(map[int]Color)
	}
	b.slotColors[node] = c
	b.dirty = true
}

// Transform returns the world transform held for a slot.
func (b *VertexBuffer) Transform(slot int) (Mat4, bool) {
	if slot < 0 || slot >= len(b.transforms) {
		return Mat4{}, false
	}
	return b.transforms[slot], true
}

// NumQuads returns the total number of quads held.
func (b *VertexBuffer) NumQuads() int {
	n := 0
	for _, qs := range b.quads {
		n += len(qs)
	}
	return n
}

// Vertices returns four vertices per quad, slots in order. The slice is
// rebuilt only after an upload and MUST NOT be mutated.
func (b *VertexBuffer) Vertices() []ebiten.Vertex {
	if !b.dirty {
		return b.vertices
	}
	b.vertices = b.vertices[:0]
	for slot, qs := range b.quads {
		world := b.transforms[slot]
		c, ok := b.slotColors[slot]
		if !ok {
			c = b.Color
		}
		for _, q := range qs {
			b.vertices = appendQuadVertices(b.vertices, q.Transform(world), c)
		}
	}
	b.dirty = false
	return b.vertices
}

// Draw renders all quads onto dst.
func (b *VertexBuffer) Draw(dst *ebiten.Image) {
	verts := b.Vertices()
	if len(verts) == 0 {
		return
	}
	if b.white == nil {
		b.white = ebiten.NewImage(1, 1)
		b.white.Fill(color.White)
	}
	for start := 0; start < len(verts); start += maxBatchQuads * 4 {
		end := min(start+maxBatchQuads*4, len(verts))
		nq := (end - start) / 4
		dst.DrawTriangles(verts[start:end], b.quadIndices(nq), b.white, nil)
	}
}

// quadIndices returns two triangles per quad for n quads.
func (b *VertexBuffer) quadIndices(n int) []uint16 {
	for q := len(b.indices) / 6; q < n; q++ {
		base := uint16(q * 4)
		b.indices = append(b.indices, base, base+1, base+2, base, base+2, base+3)
	}
	return b.indices[:n*6]
}

// appendQuadVertices appends the screen-space corners of q.
func appendQuadVertices(dst []ebiten.Vertex, q Quad, c Color) []ebiten.Vertex {
	src := [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	for i, p := range q.Points {
		dst = append(dst, ebiten.Vertex{
			DstX:   p[0],
			DstY:   p[1],
			SrcX:   src[i][0],
			SrcY:   src[i][1],
			ColorR: float32(c.R),
			ColorG: float32(c.G),
			ColorB: float32(c.B),
			ColorA: float32(c.A),
		})
	}
	return dst
}
