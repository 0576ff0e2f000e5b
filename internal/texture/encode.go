package texture

import (
	"fmt"
	"image"
	"image/png"
	"os"
)

// Unflip converts a bottom-up RGBA buffer back into a top-down image.
func Unflip(pix []byte, width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	rowBytes := width * 4
	for row := 0; row < height; row++ {
		src := pix[(height-1-row)*rowBytes : (height-row)*rowBytes]
		copy(img.Pix[row*img.Stride:row*img.Stride+rowBytes], src)
	}
	return img
}

// SavePNG writes img to path as a PNG file.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("could not encode png %s: %w", path, err)
	}
	return f.Close()
}
