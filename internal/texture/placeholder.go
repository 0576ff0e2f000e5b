package texture

import (
	"image"
	"image/color"

	"github.com/zeebo/xxh3"
)

// Placeholder returns an opaque size×size checkerboard whose colour is derived
// from name, for textures that failed to load.
func Placeholder(name string, size int) *Source {
	if size < 2 {
		size = 2
	}
	h := xxh3.HashString(name)
	light := color.NRGBA{R: uint8(h), G: uint8(h >> 8), B: uint8(h >> 16), A: 255}
	dark := color.NRGBA{R: light.R / 2, G: light.G / 2, B: light.B / 2, A: 255}

	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	half := size / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := light
			if (x < half) != (y < half) {
				c = dark
			}
			img.SetNRGBA(x, y, c)
		}
	}
	src := FromImage(img)
	src.Path = "placeholder:" + name
	return src
}
