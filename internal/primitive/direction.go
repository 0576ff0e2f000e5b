package primitive

import "github.com/go-gl/mathgl/mgl32"

// Direction identifies one of the six axis-aligned faces of a voxel
type Direction uint8

const (
	Front Direction = iota // +Z
	Back                   // -Z
	Left                   // -X
	Right                  // +X
	Up                     // +Y
	Down                   // -Y
)

// Directions lists every face direction in id order.
var Directions = [6]Direction{Front, Back, Left, Right, Up, Down}

// ID returns the numeric face id written into vertex data.
func (d Direction) ID() uint32 {
	return uint32(d)
}

// Normal returns the outward unit normal of a face pointing in d.
func (d Direction) Normal() mgl32.Vec3 {
	switch d {
	case Front:
		return mgl32.Vec3{0, 0, 1}
	case Back:
		return mgl32.Vec3{0, 0, -1}
	case Left:
		return mgl32.Vec3{-1, 0, 0}
	case Right:
		return mgl32.Vec3{1, 0, 0}
	case Up:
		return mgl32.Vec3{0, 1, 0}
	case Down:
		return mgl32.Vec3{0, -1, 0}
	default:
		return mgl32.Vec3{}
	}
}

// Opposite returns the direction facing the other way along the same axis.
func (d Direction) Opposite() Direction {
	switch d {
	case Front:
		return Back
	case Back:
		return Front
	case Left:
		return Right
	case Right:
		return Left
	case Up:
		return Down
	default:
		return Up
	}
}

func (d Direction) String() string {
	switch d {
	case Front:
		return "front"
	case Back:
		return "back"
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}
