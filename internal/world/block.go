package world

type BlockType uint16

const (
	BlockTypeAir BlockType = iota
	BlockTypeStone
	BlockTypeDirt
	BlockTypeGrass
	BlockTypeTest
)

// Solid reports whether the block occupies its cell.
func (b BlockType) Solid() bool {
	return b != BlockTypeAir
}

func (b BlockType) String() string {
	switch b {
	case BlockTypeAir:
		return "air"
	case BlockTypeStone:
		return "stone"
	case BlockTypeDirt:
		return "dirt"
	case BlockTypeGrass:
		return "grass"
	case BlockTypeTest:
		return "test"
	default:
		return "unknown"
	}
}

// Axis selects one of the three grid axes
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)
