package graphics

import (
	"mini-voxel/internal/primitive"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Vertex attribute locations used by ChunkBuffers.
const (
	AttribPosition = 0
	AttribTexCoord = 1
	AttribFace     = 2
)

// ChunkBuffers owns the VAO, VBO and EBO of one chunk mesh.
type ChunkBuffers struct {
	vao, vbo, ebo uint32
	count         int32
}

// NewChunkBuffers allocates the GL objects and sets up the vertex layout.
func NewChunkBuffers() *ChunkBuffers {
	b := &ChunkBuffers{}
	gl.GenVertexArrays(1, &b.vao)
	gl.GenBuffers(1, &b.vbo)
	gl.GenBuffers(1, &b.ebo)

	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)

	stride := int32(primitive.VertexStride * 4)
	gl.EnableVertexAttribArray(AttribPosition)
	gl.VertexAttribPointerWithOffset(AttribPosition, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(AttribTexCoord)
	gl.VertexAttribPointerWithOffset(AttribTexCoord, 2, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(AttribFace)
	gl.VertexAttribPointerWithOffset(AttribFace, 1, gl.FLOAT, false, stride, 5*4)

	gl.BindVertexArray(0)
	return b
}

// Upload replaces the buffer contents with m.
func (b *ChunkBuffers) Upload(m primitive.Mesh) {
	b.count = int32(len(m.Indices))
	if b.count == 0 {
		return
	}
	data := m.Interleave()

	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)
	gl.BindVertexArray(0)
}

// Draw issues one indexed draw for the uploaded mesh.
func (b *ChunkBuffers) Draw() {
	if b.count == 0 {
		return
	}
	gl.BindVertexArray(b.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, b.count, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
}

// Release deletes the GL objects. Calling it again does nothing.
func (b *ChunkBuffers) Release() {
	if b.vao == 0 {
		return
	}
	gl.DeleteBuffers(1, &b.ebo)
	gl.DeleteBuffers(1, &b.vbo)
	gl.DeleteVertexArrays(1, &b.vao)
	b.vao, b.vbo, b.ebo, b.count = 0, 0, 0, 0
}
