package world

import (
	"errors"

	"mini-voxel/internal/primitive"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/willf/bitset"
)

const (
	// Default chunk dimensions
	Size   = 16
	Height = 128
)

// ErrNoData is returned when a mesh is requested before the chunk data was built.
var ErrNoData = errors.New("world: chunk data not built")

// ChunkState tracks how far a chunk got through its build steps.
type ChunkState uint8

const (
	StateEmpty ChunkState = iota
	StateDataBuilt
	StateMeshBuilt
)

func (s ChunkState) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateDataBuilt:
		return "data"
	case StateMeshBuilt:
		return "mesh"
	default:
		return "unknown"
	}
}

// Dims are the block extents of a chunk along x, y and z.
type Dims struct {
	X, Y, Z int
}

// DefaultDims is a Size×Height×Size chunk.
var DefaultDims = Dims{X: Size, Y: Height, Z: Size}

// Volume returns the number of cells.
func (d Dims) Volume() int {
	return d.X * d.Y * d.Z
}

// Chunk is a dense grid of blocks plus the mesh derived from it.
// X and Z are chunk coordinates; the chunk's first block sits at
// world (X*dims.X, 0, Z*dims.Z).
type Chunk struct {
	X, Z   int
	dims   Dims
	blocks []BlockType
	solid  *bitset.BitSet
	state  ChunkState
	mesh   primitive.Mesh
	dirty  bool
}

// NewChunk creates an empty chunk of the default size at the specified chunk coordinates
func NewChunk(x, z int) *Chunk {
	return NewChunkWithDims(x, z, DefaultDims)
}

// NewChunkWithDims creates an empty chunk with custom extents. Extents below 1 are raised to 1.
func NewChunkWithDims(x, z int, d Dims) *Chunk {
	d.X, d.Y, d.Z = max(d.X, 1), max(d.Y, 1), max(d.Z, 1)
	return &Chunk{
		X:      x,
		Z:      z,
		dims:   d,
		blocks: make([]BlockType, d.Volume()),
		solid:  bitset.New(uint(d.Volume())),
	}
}

// Dims returns the chunk extents.
func (c *Chunk) Dims() Dims {
	return c.dims
}

// Index converts local coordinates (x, y, z) → flat index in row-major order.
func (c *Chunk) Index(x, y, z int) int {
	return (x*c.dims.Y+y)*c.dims.Z + z
}

// Position is the inverse of Index.
func (c *Chunk) Position(i int) (x, y, z int) {
	z = i % c.dims.Z
	i /= c.dims.Z
	y = i % c.dims.Y
	x = i / c.dims.Y
	return x, y, z
}

// InBounds reports whether the local coordinates lie inside the chunk.
func (c *Chunk) InBounds(x, y, z int) bool {
	return x >= 0 && x < c.dims.X && y >= 0 && y < c.dims.Y && z >= 0 && z < c.dims.Z
}

// Block returns the block at the local coordinates. A coordinate outside the
// chunk is stepped back inside one unit at a time, so a query one cell past
// an edge reads the edge cell itself.
func (c *Chunk) Block(x, y, z int) BlockType {
	x = stepInto(x, c.dims.X)
	y = stepInto(y, c.dims.Y)
	z = stepInto(z, c.dims.Z)
	return c.blocks[c.Index(x, y, z)]
}

func stepInto(v, n int) int {
	for v < 0 {
		v++
	}
	for v > n-1 {
		v--
	}
	return v
}

// Neighbor returns the block one step from (x, y, z) along axis, with delta
// being +1 or -1. The lookup is chunk-local: a neighbor outside this chunk
// reports air and false.
func (c *Chunk) Neighbor(x, y, z int, axis Axis, delta int) (BlockType, bool) {
	switch axis {
	case AxisX:
		x += delta
	case AxisY:
		y += delta
	case AxisZ:
		z += delta
	}
	if !c.InBounds(x, y, z) {
		return BlockTypeAir, false
	}
	return c.blocks[c.Index(x, y, z)], true
}

// Solid reports whether the cell holds a solid block. Cells outside the chunk are not solid.
func (c *Chunk) Solid(x, y, z int) bool {
	if !c.InBounds(x, y, z) {
		return false
	}
	return c.solid.Test(uint(c.Index(x, y, z)))
}

// SolidCount returns the number of solid cells.
func (c *Chunk) SolidCount() int {
	return int(c.solid.Count())
}

// SetBlock sets the block type at the specified local coordinates.
// Out-of-range writes are ignored. The mesh is not rebuilt.
func (c *Chunk) SetBlock(x, y, z int, blockType BlockType) {
	if !c.InBounds(x, y, z) {
		return
	}
	idx := c.Index(x, y, z)
	if c.blocks[idx] == blockType {
		return
	}
	c.blocks[idx] = blockType
	if blockType.Solid() {
		c.solid.Set(uint(idx))
	} else {
		c.solid.Clear(uint(idx))
	}
	c.dirty = true
}

// BuildData fills every cell from gen. A nil generator fills the chunk with test blocks.
func (c *Chunk) BuildData(gen Generator) {
	if gen == nil {
		gen = Fill(BlockTypeTest)
	}
	ox, oz := c.X*c.dims.X, c.Z*c.dims.Z
	c.solid.ClearAll()
	for i := range c.blocks {
		x, y, z := c.Position(i)
		bt := gen.BlockAt(ox+x, y, oz+z)
		c.blocks[i] = bt
		if bt.Solid() {
			c.solid.Set(uint(i))
		}
	}
	c.mesh = primitive.Mesh{}
	c.state = StateDataBuilt
	c.dirty = true
}

// State returns the chunk's build state.
func (c *Chunk) State() ChunkState {
	return c.state
}

// IsDirty returns whether the blocks changed since the mesh was last set
func (c *Chunk) IsDirty() bool {
	return c.dirty
}

// Mesh returns the last mesh set on the chunk.
func (c *Chunk) Mesh() primitive.Mesh {
	return c.mesh
}

// SetMesh replaces the cached mesh and marks the chunk clean.
func (c *Chunk) SetMesh(m primitive.Mesh) {
	c.mesh = m
	c.state = StateMeshBuilt
	c.dirty = false
}

// ClearMesh drops the cached mesh and steps the chunk back to StateDataBuilt.
func (c *Chunk) ClearMesh() {
	c.mesh = primitive.Mesh{}
	if c.state == StateMeshBuilt {
		c.state = StateDataBuilt
	}
}

// WorldOrigin returns the world-space position of local cell (0, 0, 0).
func (c *Chunk) WorldOrigin() mgl32.Vec3 {
	return mgl32.Vec3{float32(c.X * c.dims.X), 0, float32(c.Z * c.dims.Z)}
}

// Bounds returns the world-space box covered by the chunk.
func (c *Chunk) Bounds() cube.BBox {
	return cube.Box(0, 0, 0, float32(c.dims.X), float32(c.dims.Y), float32(c.dims.Z)).Translate(c.WorldOrigin())
}
