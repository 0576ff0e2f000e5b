package primitive

import "github.com/go-gl/mathgl/mgl32"

// Region is a named sub-rectangle of a texture atlas.
// TopLeft and BottomRight are normalized to [0,1] over the atlas size;
// Width and Height are the source texture's pixel dimensions.
type Region struct {
	Width       int
	Height      int
	TopLeft     mgl32.Vec2
	BottomRight mgl32.Vec2
}

// FullRegion covers the whole texture. Quads built without an atlas use it.
var FullRegion = Region{TopLeft: mgl32.Vec2{0, 0}, BottomRight: mgl32.Vec2{1, 1}}

// Position returns the texture offset uniform for this region.
func (r Region) Position() mgl32.Vec2 {
	return r.TopLeft
}

// Scale returns the texture scale uniform for this region.
func (r Region) Scale() mgl32.Vec2 {
	return r.BottomRight.Sub(r.TopLeft)
}

// Map converts a unit-square texture coordinate into atlas space.
func (r Region) Map(uv mgl32.Vec2) mgl32.Vec2 {
	s := r.Scale()
	return mgl32.Vec2{r.TopLeft.X() + uv.X()*s.X(), r.TopLeft.Y() + uv.Y()*s.Y()}
}

// Valid reports whether the region spans a non-empty rectangle inside [0,1]².
func (r Region) Valid() bool {
	return r.TopLeft.X() >= 0 && r.TopLeft.Y() >= 0 &&
		r.BottomRight.X() <= 1 && r.BottomRight.Y() <= 1 &&
		r.TopLeft.X() < r.BottomRight.X() && r.TopLeft.Y() < r.BottomRight.Y()
}
