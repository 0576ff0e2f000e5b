package atlas

import (
	"fmt"

	"mini-voxel/internal/primitive"

	"github.com/go-gl/mathgl/mgl32"
)

// shelfPack places entries left to right in rows, starting a new row when the
// current one is full. It returns a w×h RGBA buffer and one region per entry.
func shelfPack(entries []entry, w, h int) ([]byte, map[string]primitive.Region, error) {
	pixels := make([]byte, w*h*4)
	regions := make(map[string]primitive.Region, len(entries))

	x, y, rowHeight := 0, 0, 0
	for _, e := range entries {
		src := e.src
		if x+src.Width > w {
			x = 0
			y += rowHeight
			rowHeight = 0
		}
		if y+src.Height > h {
			return nil, nil, fmt.Errorf("%w: %q (%dx%d) at (%d,%d) in %dx%d",
				ErrPack, e.name, src.Width, src.Height, x, y, w, h)
		}

		blit(pixels, w, x, y, src.Pix, src.Width, src.Height, src.Channels)

		regions[e.name] = primitive.Region{
			Width:       src.Width,
			Height:      src.Height,
			TopLeft:     mgl32.Vec2{float32(x) / float32(w), float32(y) / float32(h)},
			BottomRight: mgl32.Vec2{float32(x+src.Width) / float32(w), float32(y+src.Height) / float32(h)},
		}

		x += src.Width
		rowHeight = max(rowHeight, src.Height)
	}
	return pixels, regions, nil
}

// blit copies a srcW×srcH image with the given channel count into the RGBA
// buffer dst of width dstW at (px, py). 3-channel sources get alpha 255.
func blit(dst []byte, dstW, px, py int, src []byte, srcW, srcH, channels int) {
	for y := 0; y < srcH; y++ {
		row := ((py+y)*dstW + px) * 4
		if channels == 4 {
			copy(dst[row:row+srcW*4], src[y*srcW*4:(y+1)*srcW*4])
			continue
		}
		for x := 0; x < srcW; x++ {
			s := (y*srcW + x) * channels
			d := row + x*4
			dst[d] = src[s]
			dst[d+1] = src[s+1]
			dst[d+2] = src[s+2]
			dst[d+3] = 255
		}
	}
}
