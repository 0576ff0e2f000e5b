package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Camera orbits a fixed target at a constant distance and height.
type Camera struct {
	AspectRatio float32
	FOV         float32
	NearPlane   float32
	FarPlane    float32

	Target   mgl32.Vec3
	Distance float32
	Height   float32
	// Speed is the orbit rate in radians per second.
	Speed float32
}

func NewCamera(width, height int) *Camera {
	if height <= 0 {
		height = 1
	}
	return &Camera{
		AspectRatio: float32(width) / float32(height),
		FOV:         60.0,
		NearPlane:   0.1,
		FarPlane:    1000.0,
		Distance:    32,
		Height:      16,
		Speed:       0.3,
	}
}

// Frame points the orbit at the centre of a box and backs off far enough to see all of it.
func (c *Camera) Frame(min, max mgl32.Vec3) {
	c.Target = min.Add(max).Mul(0.5)
	size := max.Sub(min).Len()
	c.Distance = size
	c.Height = size * 0.5
}

// Eye returns the camera position t seconds into the orbit.
func (c *Camera) Eye(t float32) mgl32.Vec3 {
	angle := t * c.Speed
	return c.Target.Add(mgl32.Vec3{
		math32.Cos(angle) * c.Distance,
		c.Height,
		math32.Sin(angle) * c.Distance,
	})
}

func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.AspectRatio, c.NearPlane, c.FarPlane)
}

// ViewMatrix looks from Eye(t) at the target.
func (c *Camera) ViewMatrix(t float32) mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye(t), c.Target, mgl32.Vec3{0, 1, 0})
}
