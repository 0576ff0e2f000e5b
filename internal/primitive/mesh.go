package primitive

import (
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// VertexStride is number of float32 per vertex (pos.xyz + uv + face)
const VertexStride = 6

// Vertex is one corner of a quad as uploaded to the GPU.
type Vertex struct {
	Position mgl32.Vec3
	TexCoord mgl32.Vec2
	Face     uint32
}

// Mesh holds flattened geometry: 4 vertices and 6 indices per quad.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// Empty reports whether the mesh has nothing to draw.
func (m Mesh) Empty() bool {
	return len(m.Indices) == 0
}

// QuadCount returns how many quads were flattened into the mesh.
func (m Mesh) QuadCount() int {
	return len(m.Vertices) / 4
}

// Interleave packs the vertices into a float slice laid out as
// x, y, z, u, v, face for each vertex.
func (m Mesh) Interleave() []float32 {
	out := make([]float32, 0, len(m.Vertices)*VertexStride)
	for _, v := range m.Vertices {
		out = append(out,
			v.Position.X(), v.Position.Y(), v.Position.Z(),
			v.TexCoord.X(), v.TexCoord.Y(),
			float32(v.Face),
		)
	}
	return out
}

// Bounds returns the axis-aligned box enclosing every vertex.
// An empty mesh yields a zero box.
func (m Mesh) Bounds() cube.BBox {
	if len(m.Vertices) == 0 {
		return cube.Box(0, 0, 0, 0, 0, 0)
	}
	lo := m.Vertices[0].Position
	hi := lo
	for _, v := range m.Vertices[1:] {
		p := v.Position
		for i := 0; i < 3; i++ {
			lo[i] = min(lo[i], p[i])
			hi[i] = max(hi[i], p[i])
		}
	}
	return cube.Box(lo[0], lo[1], lo[2], hi[0], hi[1], hi[2])
}
