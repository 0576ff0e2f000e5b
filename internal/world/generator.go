package world

import (
	"math"
)

// Generator decides the block at a cell. x and z are world block
// coordinates, y is the height inside the chunk.
type Generator interface {
	BlockAt(x, y, z int) BlockType
}

// GeneratorFunc adapts a plain function to Generator.
type GeneratorFunc func(x, y, z int) BlockType

func (f GeneratorFunc) BlockAt(x, y, z int) BlockType {
	return f(x, y, z)
}

// Fill sets every cell to bt.
func Fill(bt BlockType) Generator {
	return GeneratorFunc(func(int, int, int) BlockType { return bt })
}

// Flat builds a level surface: grass at y == surface, three dirt layers below it, stone under that.
func Flat(surface int) Generator {
	return GeneratorFunc(func(_, y, _ int) BlockType {
		return column(y, surface)
	})
}

func column(y, surface int) BlockType {
	switch {
	case y > surface:
		return BlockTypeAir
	case y == surface:
		return BlockTypeGrass
	case y >= surface-3:
		return BlockTypeDirt
	default:
		return BlockTypeStone
	}
}

// Hills is a noise heightmap terrain.
type Hills struct {
	seed        int64
	scale       float64
	baseHeight  int
	amp         float64
	octaves     int
	persistence float64
	lacunarity  float64
}

// NewHills creates a heightmap generator with default settings.
func NewHills(seed int64) *Hills {
	return &Hills{
		seed:        seed,
		scale:       1.0 / 64.0,
		baseHeight:  32,
		amp:         32,
		octaves:     4,
		persistence: 0.5,
		lacunarity:  2.0,
	}
}

// HeightAt computes the surface height (block Y) at world X,Z.
func (g *Hills) HeightAt(worldX, worldZ int) int {
	x := float64(worldX) * g.scale
	z := float64(worldZ) * g.scale
	n := octaveNoise2D(x, z, g.seed, g.octaves, g.persistence, g.lacunarity)
	height := float64(g.baseHeight) + n*g.amp
	if height < 0 {
		height = 0
	}
	return int(math.Floor(height))
}

func (g *Hills) BlockAt(x, y, z int) BlockType {
	return column(y, g.HeightAt(x, z))
}

// GeneratorByName maps a terrain name to a generator. Unknown names return false.
func GeneratorByName(name string, seed int64, surface int) (Generator, bool) {
	switch name {
	case "solid", "":
		return Fill(BlockTypeTest), true
	case "flat":
		return Flat(surface), true
	case "hills":
		return NewHills(seed), true
	case "air":
		return Fill(BlockTypeAir), true
	default:
		return nil, false
	}
}
