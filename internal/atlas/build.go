package atlas

import (
	"fmt"
	"sort"

	"mini-voxel/internal/profiling"
	"mini-voxel/internal/texture"

	"github.com/sirupsen/logrus"
)

type entry struct {
	name string
	src  *texture.Source
}

// Build repacks every registered texture into a new buffer.
// It does nothing when no texture was queued since the last successful build.
// On failure the previous buffer, regions and GPU texture stay in place and
// lazy builds stop retrying until the next registration; call Build again to retry.
func (a *Atlas) Build() error {
	if len(a.pending) == 0 {
		a.dirty = false
		return nil
	}
	defer profiling.Track("atlas.Build")()

	// Lazy lookups must not retry a failed build on every call.
	a.dirty = false

	entries := a.packOrder()
	w, h, err := a.sizeFor(entries)
	if err != nil {
		a.log.WithError(err).WithFields(logrus.Fields{
			"textures": len(entries),
			"max_size": a.maxSize,
		}).Error("atlas size too large")
		return err
	}

	pixels, regions, err := shelfPack(entries, w, h)
	if err != nil {
		a.log.WithError(err).WithField("size", fmt.Sprintf("%dx%d", w, h)).Error("atlas packing failed")
		return err
	}

	if a.uploader != nil {
		if a.handle != 0 {
			a.uploader.DeleteTexture(a.handle)
		}
		a.handle = a.uploader.UploadTexture(pixels, w, h)
	}

	a.width, a.height = w, h
	a.pixels = pixels
	a.regions = regions
	a.pending = a.pending[:0]

	a.log.WithFields(logrus.Fields{
		"size":        fmt.Sprintf("%dx%d", w, h),
		"textures":    len(regions),
		"fingerprint": fmt.Sprintf("%016x", a.Fingerprint()),
	}).Info("built texture atlas")
	return nil
}

// packOrder returns every cached texture, tallest first. Equal heights keep
// registration order.
func (a *Atlas) packOrder() []entry {
	entries := make([]entry, 0, a.cache.Len())
	for el := a.cache.Front(); el != nil; el = el.Next() {
		entries = append(entries, entry{name: el.Key, src: el.Value})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].src.Height > entries[j].src.Height
	})
	return entries
}

func (a *Atlas) sizeFor(entries []entry) (int, int, error) {
	area, maxW, maxH := 0, 0, 0
	for _, e := range entries {
		area += e.src.Area()
		maxW = max(maxW, e.src.Width)
		maxH = max(maxH, e.src.Height)
	}
	return atlasSize(area, maxW, maxH, a.minSize, a.maxSize)
}

// atlasSize grows a minSize square by doubling its smaller side until it holds
// area pixels and the largest texture in each dimension.
func atlasSize(area, maxW, maxH, minSize, maxSize int) (int, int, error) {
	w, h := minSize, minSize
	for w*h < area || w < maxW || h < maxH {
		if w < h {
			w *= 2
		} else {
			h *= 2
		}
		if w > maxSize || h > maxSize {
			return 0, 0, fmt.Errorf("%w: need more than %dx%d for %d pixels (largest %dx%d)",
				ErrOversize, maxSize, maxSize, area, maxW, maxH)
		}
	}
	return w, h, nil
}

func ceilPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
