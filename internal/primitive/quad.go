package primitive

import "github.com/go-gl/mathgl/mgl32"

// faceTexCoords are the per-corner texture coordinates of a quad before they
// are mapped into an atlas region, indexed by direction. On side faces v grows
// with y and u runs left to right as seen from outside the block.
var faceTexCoords = [6][4]mgl32.Vec2{
	Front: {{1, 0}, {1, 1}, {0, 1}, {0, 0}},
	Back:  {{1, 0}, {1, 1}, {0, 1}, {0, 0}},
	Left:  {{0, 0}, {1, 0}, {1, 1}, {0, 1}},
	Right: {{1, 1}, {0, 1}, {0, 0}, {1, 0}},
	Up:    {{0, 0}, {1, 0}, {1, 1}, {0, 1}},
	Down:  {{0, 0}, {1, 0}, {1, 1}, {0, 1}},
}

// Quad is one visible face of a voxel. It only exists while a mesh is built.
type Quad struct {
	Direction Direction
	Vertices  [4]mgl32.Vec3
	Region    Region
}

// NewQuad builds the face of the unit cell at pos that points in d.
// Every quad lies on the cell's minimum plane along its axis and is wound
// counter-clockwise when seen from the side its normal points to, so the
// triangles (0,1,2) and (0,2,3) are front-facing.
func NewQuad(d Direction, pos mgl32.Vec3, region Region) Quad {
	x, y, z := pos.X(), pos.Y(), pos.Z()
	q := Quad{Direction: d, Region: region}

	switch d {
	case Front:
		q.Vertices = [4]mgl32.Vec3{
			{x + 1, y, z},
			{x + 1, y + 1, z},
			{x, y + 1, z},
			{x, y, z},
		}
	case Back:
		q.Vertices = [4]mgl32.Vec3{
			{x, y, z},
			{x, y + 1, z},
			{x + 1, y + 1, z},
			{x + 1, y, z},
		}
	case Left:
		q.Vertices = [4]mgl32.Vec3{
			{x, y, z},
			{x, y, z + 1},
			{x, y + 1, z + 1},
			{x, y + 1, z},
		}
	case Right:
		q.Vertices = [4]mgl32.Vec3{
			{x, y + 1, z},
			{x, y + 1, z + 1},
			{x, y, z + 1},
			{x, y, z},
		}
	case Up:
		q.Vertices = [4]mgl32.Vec3{
			{x, y, z + 1},
			{x + 1, y, z + 1},
			{x + 1, y, z},
			{x, y, z},
		}
	case Down:
		q.Vertices = [4]mgl32.Vec3{
			{x, y, z},
			{x + 1, y, z},
			{x + 1, y, z + 1},
			{x, y, z + 1},
		}
	}
	return q
}

// Normal computes the face normal from the winding of the first triangle.
func (q Quad) Normal() mgl32.Vec3 {
	e1 := q.Vertices[1].Sub(q.Vertices[0])
	e2 := q.Vertices[2].Sub(q.Vertices[0])
	return e1.Cross(e2).Normalize()
}

// TexCoord returns the atlas texture coordinate of corner i.
func (q Quad) TexCoord(i int) mgl32.Vec2 {
	return q.Region.Map(faceTexCoords[q.Direction][i])
}
