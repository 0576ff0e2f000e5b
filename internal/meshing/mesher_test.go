package meshing

import (
	"errors"
	"testing"

	"mini-voxel/internal/primitive"
	"mini-voxel/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

func filledChunk(d world.Dims, bt world.BlockType) *world.Chunk {
	c := world.NewChunkWithDims(0, 0, d)
	c.BuildData(world.Fill(bt))
	return c
}

// exposedFaces counts solid cell faces that touch a non-solid cell or the outside.
func exposedFaces(c *world.Chunk) int {
	d := c.Dims()
	n := 0
	for x := 0; x < d.X; x++ {
		for y := 0; y < d.Y; y++ {
			for z := 0; z < d.Z; z++ {
				if !c.Solid(x, y, z) {
					continue
				}
				for _, off := range [6][3]int{{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1}} {
					if !c.Solid(x+off[0], y+off[1], z+off[2]) {
						n++
					}
				}
			}
		}
	}
	return n
}

func TestFilledChunkQuadCount(t *testing.T) {
	tests := []struct {
		dims world.Dims
		want int
	}{
		{world.Dims{X: 1, Y: 1, Z: 1}, 6},
		{world.Dims{X: 2, Y: 1, Z: 1}, 10},
		{world.Dims{X: 4, Y: 8, Z: 4}, 2*4*4 + 2*4*8 + 2*4*8},
		{world.DefaultDims, 2*16*16 + 2*16*128 + 2*16*128},
	}
	for _, tt := range tests {
		c := filledChunk(tt.dims, world.BlockTypeStone)
		if got := len(Quads(c, nil)); got != tt.want {
			t.Fatalf("%v: got %d quads, want %d", tt.dims, got, tt.want)
		}
	}
}

func TestSingleBlockFacesEveryDirection(t *testing.T) {
	c := filledChunk(world.Dims{X: 1, Y: 1, Z: 1}, world.BlockTypeTest)
	quads := Quads(c, nil)
	seen := map[primitive.Direction]int{}
	center := mgl32.Vec3{0.5, 0.5, 0.5}
	for _, q := range quads {
		seen[q.Direction]++
		n := q.Normal()
		if !n.ApproxEqual(q.Direction.Normal()) {
			t.Fatalf("%v: winding normal %v, want %v", q.Direction, n, q.Direction.Normal())
		}
		var mid mgl32.Vec3
		for _, v := range q.Vertices {
			mid = mid.Add(v.Mul(0.25))
		}
		if mid.Sub(center).Dot(n) <= 0 {
			t.Fatalf("%v: face at %v does not point away from the block", q.Direction, mid)
		}
	}
	for _, d := range primitive.Directions {
		if seen[d] != 1 {
			t.Fatalf("%v: got %d quads, want 1", d, seen[d])
		}
	}
}

func TestQuadsMatchExposedFaces(t *testing.T) {
	c := world.NewChunkWithDims(3, -2, world.Dims{X: 8, Y: 48, Z: 8})
	c.BuildData(world.NewHills(99))
	c.SetBlock(4, 10, 4, world.BlockTypeAir)
	c.SetBlock(2, 47, 2, world.BlockTypeStone)
	if got, want := len(Quads(c, nil)), exposedFaces(c); got != want {
		t.Fatalf("got %d quads, want %d exposed faces", got, want)
	}
}

func TestQuadsInWorldSpace(t *testing.T) {
	c := world.NewChunkWithDims(2, 1, world.Dims{X: 1, Y: 1, Z: 1})
	c.BuildData(world.Fill(world.BlockTypeStone))
	for _, q := range Quads(c, nil) {
		for _, v := range q.Vertices {
			if v.X() < 2 || v.X() > 3 || v.Y() < 0 || v.Y() > 1 || v.Z() < 1 || v.Z() > 2 {
				t.Fatalf("%v vertex %v outside the block at (2,0,1)", q.Direction, v)
			}
		}
	}
}

type recordingSource struct {
	calls  map[primitive.Direction]world.BlockType
	region primitive.Region
}

func (r *recordingSource) FaceRegion(bt world.BlockType, d primitive.Direction) (primitive.Region, bool) {
	r.calls[d] = bt
	if bt == world.BlockTypeDirt {
		return primitive.Region{}, false
	}
	return r.region, true
}

func TestFacesTexturedFromSolidBlock(t *testing.T) {
	c := world.NewChunkWithDims(0, 0, world.Dims{X: 1, Y: 2, Z: 1})
	c.BuildData(world.Fill(world.BlockTypeAir))
	c.SetBlock(0, 0, 0, world.BlockTypeGrass)

	src := &recordingSource{
		calls:  map[primitive.Direction]world.BlockType{},
		region: primitive.Region{TopLeft: mgl32.Vec2{0.5, 0}, BottomRight: mgl32.Vec2{1, 0.5}},
	}
	quads := Quads(c, src)
	if len(quads) != 6 {
		t.Fatalf("got %d quads, want 6", len(quads))
	}
	for _, d := range primitive.Directions {
		if src.calls[d] != world.BlockTypeGrass {
			t.Fatalf("%v face textured from %v, want grass", d, src.calls[d])
		}
	}
	for _, q := range quads {
		if q.Region != src.region {
			t.Fatalf("%v: region %v, want %v", q.Direction, q.Region, src.region)
		}
	}
}

func TestMissingRegionFallsBackToFullTexture(t *testing.T) {
	c := filledChunk(world.Dims{X: 1, Y: 1, Z: 1}, world.BlockTypeDirt)
	src := &recordingSource{calls: map[primitive.Direction]world.BlockType{}}
	for _, q := range Quads(c, src) {
		if q.Region != primitive.FullRegion {
			t.Fatalf("%v: region %v, want full texture", q.Direction, q.Region)
		}
	}
}

func TestFlatten(t *testing.T) {
	region := primitive.Region{TopLeft: mgl32.Vec2{0.25, 0.5}, BottomRight: mgl32.Vec2{0.5, 1}}
	quads := []primitive.Quad{
		primitive.NewQuad(primitive.Up, mgl32.Vec3{0, 1, 0}, region),
		primitive.NewQuad(primitive.Left, mgl32.Vec3{0, 0, 0}, region),
	}
	m := Flatten(quads)
	if len(m.Vertices) != 8 || len(m.Indices) != 12 {
		t.Fatalf("got %d vertices and %d indices, want 8 and 12", len(m.Vertices), len(m.Indices))
	}
	want := []uint32{0, 1, 2, 0, 2, 3, 4, 5, 6, 4, 6, 7}
	for i := range want {
		if m.Indices[i] != want[i] {
			t.Fatalf("index %d: got %d, want %d", i, m.Indices[i], want[i])
		}
	}

	corners := []mgl32.Vec2{{0.25, 0.5}, {0.5, 0.5}, {0.5, 1}, {0.25, 1}}
	for i, v := range m.Vertices[:4] {
		if !v.TexCoord.ApproxEqual(corners[i]) {
			t.Fatalf("texcoord %d: got %v, want %v", i, v.TexCoord, corners[i])
		}
		if v.Face != primitive.Up.ID() {
			t.Fatalf("face id %d: got %d, want %d", i, v.Face, primitive.Up.ID())
		}
	}
	if m.Vertices[4].Face != primitive.Left.ID() {
		t.Fatalf("second quad face: got %d, want %d", m.Vertices[4].Face, primitive.Left.ID())
	}
	if m.QuadCount() != 2 {
		t.Fatalf("quad count: got %d, want 2", m.QuadCount())
	}
}

func TestBuildStates(t *testing.T) {
	c := world.NewChunkWithDims(0, 0, world.Dims{X: 2, Y: 2, Z: 2})
	if err := Build(c, nil, nil); !errors.Is(err, world.ErrNoData) {
		t.Fatalf("empty chunk: got %v, want ErrNoData", err)
	}

	c.BuildData(nil)
	if err := Build(c, nil, nil); err != nil {
		t.Fatalf("build: %v", err)
	}
	if c.State() != world.StateMeshBuilt {
		t.Fatalf("state: got %v, want mesh", c.State())
	}
	if got := c.Mesh().QuadCount(); got != 24 {
		t.Fatalf("quads: got %d, want 24", got)
	}

	c.SetBlock(0, 0, 0, world.BlockTypeAir)
	if !c.IsDirty() {
		t.Fatal("chunk should be dirty after an edit")
	}
	if got := c.Mesh().QuadCount(); got != 24 {
		t.Fatalf("mesh changed without a rebuild: %d quads", got)
	}
	if err := Build(c, nil, nil); err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if got := c.Mesh().QuadCount(); got != 24 {
		t.Fatalf("quads after carving a corner: got %d, want 24", got)
	}
}

func TestBuildEmptyChunk(t *testing.T) {
	c := filledChunk(world.Dims{X: 2, Y: 2, Z: 2}, world.BlockTypeStone)
	if err := Build(c, nil, nil); err != nil {
		t.Fatal(err)
	}
	c.BuildData(world.Fill(world.BlockTypeAir))
	c.SetMesh(primitive.Mesh{Vertices: make([]primitive.Vertex, 4), Indices: []uint32{0, 1, 2, 0, 2, 3}})

	if err := Build(c, nil, nil); !errors.Is(err, ErrEmptyMesh) {
		t.Fatalf("got %v, want ErrEmptyMesh", err)
	}
	if !c.Mesh().Empty() {
		t.Fatal("stale mesh kept after an empty build")
	}
	if c.State() != world.StateDataBuilt {
		t.Fatalf("state: got %v, want data", c.State())
	}
}

func TestBuildLogsToGivenLogger(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	c := filledChunk(world.Dims{X: 1, Y: 1, Z: 1}, world.BlockTypeStone)
	if err := Build(c, nil, log); err != nil {
		t.Fatal(err)
	}
	entry := hook.LastEntry()
	if entry == nil || entry.Message != "built chunk mesh" {
		t.Fatalf("last log entry: got %v, want built chunk mesh", entry)
	}
	if entry.Data["quads"] != 6 {
		t.Fatalf("quads field: got %v, want 6", entry.Data["quads"])
	}
}

func BenchmarkBuildHills(b *testing.B) {
	c := world.NewChunk(0, 0)
	c.BuildData(world.NewHills(1))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := Build(c, nil, nil); err != nil {
			b.Fatal(err)
		}
	}
}
