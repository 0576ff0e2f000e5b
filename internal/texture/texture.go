package texture

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrDecode is returned when a source image is missing or cannot be decoded.
var ErrDecode = errors.New("texture: decode failed")

// Source is a decoded image waiting to be packed into an atlas.
// Pix holds Width*Height*Channels bytes with rows stored bottom-up, so row 0
// is the last row of the image file.
type Source struct {
	Width    int
	Height   int
	Channels int
	Pix      []byte
	Path     string
}

// Load decodes the image at path into a vertically flipped Source.
// Opaque images come back with 3 channels, everything else with 4.
func Load(path string) (*Source, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrDecode, path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, path, err)
	}

	src := FromImage(img)
	src.Path = path
	return src, nil
}

// FromImage converts any image into a flipped Source.
func FromImage(img image.Image) *Source {
	b := img.Bounds()
	nrgba := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)

	channels := 4
	if nrgba.Opaque() {
		channels = 3
	}

	w, h := b.Dx(), b.Dy()
	pix := make([]byte, 0, w*h*channels)
	for row := h - 1; row >= 0; row-- {
		line := nrgba.Pix[row*nrgba.Stride : row*nrgba.Stride+w*4]
		if channels == 4 {
			pix = append(pix, line...)
			continue
		}
		for x := 0; x < w; x++ {
			pix = append(pix, line[x*4], line[x*4+1], line[x*4+2])
		}
	}

	return &Source{Width: w, Height: h, Channels: channels, Pix: pix}
}

// At returns the RGBA value of the pixel at (x, y) in flipped row order,
// padding alpha to 255 for 3-channel sources.
func (s *Source) At(x, y int) (r, g, b, a byte) {
	i := (y*s.Width + x) * s.Channels
	if s.Channels == 4 {
		return s.Pix[i], s.Pix[i+1], s.Pix[i+2], s.Pix[i+3]
	}
	return s.Pix[i], s.Pix[i+1], s.Pix[i+2], 255
}

// Area returns the number of pixels in the source.
func (s *Source) Area() int {
	return s.Width * s.Height
}
