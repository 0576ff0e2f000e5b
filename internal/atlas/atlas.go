package atlas

import (
	"errors"
	"fmt"
	"image"

	"mini-voxel/internal/primitive"
	"mini-voxel/internal/texture"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/sirupsen/logrus"
	"github.com/zeebo/xxh3"
)

const (
	DefaultMinSize = 32
	DefaultMaxSize = DefaultMinSize * 4
)

var (
	// ErrOversize is returned when the textures need an atlas larger than the maximum size.
	ErrOversize = errors.New("atlas: required size exceeds maximum")
	// ErrPack is returned when shelf placement overflows the computed atlas size.
	ErrPack = errors.New("atlas: textures do not fit")
	// ErrNotBuilt is returned by Save before any successful build.
	ErrNotBuilt = errors.New("atlas: not built")
)

// TextureUploader creates and deletes GPU textures from packed RGBA pixels.
type TextureUploader interface {
	UploadTexture(pix []byte, width, height int) uint32
	DeleteTexture(handle uint32)
}

// Loader decodes the image at path.
type Loader func(path string) (*texture.Source, error)

// Options configures an Atlas. The zero value packs headless between the default sizes.
type Options struct {
	MinSize  int
	MaxSize  int
	Uploader TextureUploader
	Loader   Loader
	Logger   *logrus.Logger
}

// Atlas packs named textures into one power-of-two RGBA buffer.
// It is not safe for concurrent use.
type Atlas struct {
	log      *logrus.Logger
	uploader TextureUploader
	load     Loader
	minSize  int
	maxSize  int

	cache   *orderedmap.OrderedMap[string, *texture.Source]
	pending []string
	regions map[string]primitive.Region

	width  int
	height int
	pixels []byte
	handle uint32
	dirty  bool
}

// New creates an empty atlas.
func New(opts Options) *Atlas {
	a := &Atlas{
		log:      opts.Logger,
		uploader: opts.Uploader,
		load:     opts.Loader,
		minSize:  ceilPowerOfTwo(opts.MinSize),
		maxSize:  ceilPowerOfTwo(opts.MaxSize),
		cache:    orderedmap.NewOrderedMap[string, *texture.Source](),
		regions:  make(map[string]primitive.Region),
	}
	if a.log == nil {
		a.log = logrus.StandardLogger()
	}
	if a.load == nil {
		a.load = texture.Load
	}
	if opts.MinSize <= 0 {
		a.minSize = DefaultMinSize
	}
	if opts.MaxSize <= 0 {
		a.maxSize = DefaultMaxSize
	}
	if a.maxSize < a.minSize {
		a.maxSize = a.minSize
	}
	return a
}

// Register decodes the image at path and queues it under name.
// Registering a name that is already known is a no-op.
func (a *Atlas) Register(name, path string) error {
	if a.known(name) {
		return nil
	}
	src, err := a.load(path)
	if err != nil {
		a.log.WithError(err).WithField("texture", name).Error("failed to load texture for atlas")
		return err
	}
	return a.Add(name, src)
}

// Add queues an already decoded source under name.
func (a *Atlas) Add(name string, src *texture.Source) error {
	if a.known(name) {
		return nil
	}
	if src == nil || src.Width <= 0 || src.Height <= 0 {
		return fmt.Errorf("%w: texture %q is empty", texture.ErrDecode, name)
	}
	if src.Channels != 3 && src.Channels != 4 {
		return fmt.Errorf("%w: texture %q has %d channels", texture.ErrDecode, name, src.Channels)
	}
	if len(src.Pix) < src.Area()*src.Channels {
		return fmt.Errorf("%w: texture %q pixel buffer is short", texture.ErrDecode, name)
	}

	a.cache.Set(name, src)
	a.pending = append(a.pending, name)
	a.dirty = true
	return nil
}

func (a *Atlas) known(name string) bool {
	if _, ok := a.regions[name]; ok {
		return true
	}
	_, ok := a.cache.Get(name)
	return ok
}

// Region returns the region packed for name, building first if needed.
func (a *Atlas) Region(name string) (primitive.Region, bool) {
	a.buildIfDirty()
	r, ok := a.regions[name]
	return r, ok
}

// TextureHandle returns the GPU texture of the last successful build,
// building first if needed.
func (a *Atlas) TextureHandle() uint32 {
	a.buildIfDirty()
	return a.handle
}

func (a *Atlas) buildIfDirty() {
	if !a.dirty {
		return
	}
	// Build logs its own failures.
	_ = a.Build()
}

// Unregister drops name from the atlas. The packed pixels stay until the next build.
func (a *Atlas) Unregister(name string) {
	delete(a.regions, name)
	a.cache.Delete(name)
	for i, p := range a.pending {
		if p == name {
			a.pending = append(a.pending[:i], a.pending[i+1:]...)
			break
		}
	}
}

// UnloadAll releases the GPU texture and forgets every texture and region.
func (a *Atlas) UnloadAll() {
	if a.handle != 0 && a.uploader != nil {
		a.uploader.DeleteTexture(a.handle)
	}
	a.handle = 0
	a.cache = orderedmap.NewOrderedMap[string, *texture.Source]()
	a.pending = nil
	a.regions = make(map[string]primitive.Region)
	a.pixels = nil
	a.width, a.height = 0, 0
	a.dirty = false
}

// Dirty reports whether a lazy build is pending.
func (a *Atlas) Dirty() bool {
	return a.dirty
}

// Size returns the pixel size of the last successful build.
func (a *Atlas) Size() (int, int) {
	return a.width, a.height
}

// Pixels returns the packed RGBA buffer, bottom row first.
func (a *Atlas) Pixels() []byte {
	return a.pixels
}

// Names returns the registered texture names in registration order.
func (a *Atlas) Names() []string {
	names := make([]string, 0, a.cache.Len())
	for el := a.cache.Front(); el != nil; el = el.Next() {
		names = append(names, el.Key)
	}
	return names
}

// Regions returns a copy of the current name→region map.
func (a *Atlas) Regions() map[string]primitive.Region {
	out := make(map[string]primitive.Region, len(a.regions))
	for k, v := range a.regions {
		out[k] = v
	}
	return out
}

// Fingerprint hashes the packed pixels. It is 0 before the first build.
func (a *Atlas) Fingerprint() uint64 {
	if a.pixels == nil {
		return 0
	}
	return xxh3.Hash(a.pixels)
}

// Image returns the packed atlas as a top-down image.
func (a *Atlas) Image() *image.NRGBA {
	if a.pixels == nil {
		return nil
	}
	return texture.Unflip(a.pixels, a.width, a.height)
}

// Save writes the packed atlas to path as an upright PNG.
func (a *Atlas) Save(path string) error {
	a.buildIfDirty()
	img := a.Image()
	if img == nil {
		return ErrNotBuilt
	}
	if err := texture.SavePNG(path, img); err != nil {
		a.log.WithError(err).WithField("path", path).Warn("failed to save texture atlas")
		return err
	}
	return nil
}
