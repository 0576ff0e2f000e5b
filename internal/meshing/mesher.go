package meshing

import (
	"errors"

	"mini-voxel/internal/primitive"
	"mini-voxel/internal/profiling"
	"mini-voxel/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
)

// ErrEmptyMesh is returned when a chunk has no visible faces.
var ErrEmptyMesh = errors.New("meshing: chunk produced no faces")

// RegionSource resolves the atlas region for one face of a block.
type RegionSource interface {
	FaceRegion(bt world.BlockType, d primitive.Direction) (primitive.Region, bool)
}

// face pairs the two directions a boundary along one axis can face.
type face struct {
	axis world.Axis
	// away is used when the current cell is solid and its lower neighbor is not.
	away primitive.Direction
	// toward is used when the lower neighbor is solid and the current cell is not.
	toward primitive.Direction
}

var faces = [3]face{
	{axis: world.AxisX, away: primitive.Left, toward: primitive.Right},
	{axis: world.AxisY, away: primitive.Down, toward: primitive.Up},
	{axis: world.AxisZ, away: primitive.Back, toward: primitive.Front},
}

// Quads returns every visible face of the chunk in world space.
//
// Each cell is compared with its lower neighbor on every axis, and the scan
// runs one cell past the upper end of each axis, so every boundary between
// two cells (including the chunk's outer walls, where the outside is air) is
// visited exactly once. A nil regions maps every quad to the full texture.
func Quads(c *world.Chunk, regions RegionSource) []primitive.Quad {
	d := c.Dims()
	origin := c.WorldOrigin()
	quads := make([]primitive.Quad, 0, 64)

	for x := 0; x <= d.X; x++ {
		for y := 0; y <= d.Y; y++ {
			for z := 0; z <= d.Z; z++ {
				solid := c.Solid(x, y, z)
				pos := origin.Add(mgl32.Vec3{float32(x), float32(y), float32(z)})
				for _, f := range faces {
					nb, _ := c.Neighbor(x, y, z, f.axis, -1)
					switch {
					case solid && !nb.Solid():
						bt := c.Block(x, y, z)
						quads = append(quads, primitive.NewQuad(f.away, pos, lookup(regions, bt, f.away)))
					case !solid && nb.Solid():
						quads = append(quads, primitive.NewQuad(f.toward, pos, lookup(regions, nb, f.toward)))
					}
				}
			}
		}
	}
	return quads
}

func lookup(regions RegionSource, bt world.BlockType, d primitive.Direction) primitive.Region {
	if regions == nil {
		return primitive.FullRegion
	}
	if r, ok := regions.FaceRegion(bt, d); ok {
		return r
	}
	return primitive.FullRegion
}

// Flatten turns quads into indexed geometry: 4 vertices and 2 triangles
// (0,1,2 and 0,2,3) per quad.
func Flatten(quads []primitive.Quad) primitive.Mesh {
	m := primitive.Mesh{
		Vertices: make([]primitive.Vertex, 0, len(quads)*4),
		Indices:  make([]uint32, 0, len(quads)*6),
	}
	for _, q := range quads {
		base := uint32(len(m.Vertices))
		for i, p := range q.Vertices {
			m.Vertices = append(m.Vertices, primitive.Vertex{
				Position: p,
				TexCoord: q.TexCoord(i),
				Face:     q.Direction.ID(),
			})
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return m
}

// Build regenerates the chunk's mesh from its current blocks.
// A chunk without data returns world.ErrNoData. A chunk without visible
// faces loses its previous mesh and returns ErrEmptyMesh.
// A nil log uses the logrus standard logger.
func Build(c *world.Chunk, regions RegionSource, log *logrus.Logger) error {
	if c.State() == world.StateEmpty {
		return world.ErrNoData
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	defer profiling.Track("meshing.Build")()

	quads := Quads(c, regions)
	if len(quads) == 0 {
		c.ClearMesh()
		return ErrEmptyMesh
	}

	m := Flatten(quads)
	c.SetMesh(m)
	log.WithFields(logrus.Fields{
		"chunk_x":  c.X,
		"chunk_z":  c.Z,
		"quads":    len(quads),
		"vertices": len(m.Vertices),
	}).Debug("built chunk mesh")
	return nil
}
