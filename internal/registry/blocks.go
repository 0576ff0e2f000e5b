package registry

import (
	"errors"
	"fmt"
	"path/filepath"

	"mini-voxel/internal/primitive"
	"mini-voxel/internal/world"
	"mini-voxel/pkg/blockmodel"

	"github.com/sirupsen/logrus"
)

// BlockDefinition binds a block type to the atlas texture names of its faces.
type BlockDefinition struct {
	ID          world.BlockType
	Name        string
	TextureTop  string
	TextureSide string
	TextureBot  string
}

// Registry maps block types to their definitions and keeps every texture
// name they use in first-seen order.
type Registry struct {
	log          *logrus.Logger
	blocks       map[world.BlockType]*BlockDefinition
	order        []world.BlockType
	blockNames   map[string]world.BlockType
	textureNames []string
	textureMap   map[string]int
}

// New creates an empty registry. A nil logger uses the logrus standard logger.
func New(log *logrus.Logger) *Registry {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Registry{
		log:        log,
		blocks:     make(map[world.BlockType]*BlockDefinition),
		blockNames: make(map[string]world.BlockType),
		textureMap: make(map[string]int),
	}
}

// Default returns a registry holding every built-in solid block.
func Default(log *logrus.Logger) *Registry {
	r := New(log)
	r.RegisterBlock(&BlockDefinition{
		ID:          world.BlockTypeStone,
		Name:        "stone",
		TextureTop:  "stone",
		TextureSide: "stone",
		TextureBot:  "stone",
	})
	r.RegisterBlock(&BlockDefinition{
		ID:          world.BlockTypeDirt,
		Name:        "dirt",
		TextureTop:  "dirt",
		TextureSide: "dirt",
		TextureBot:  "dirt",
	})
	r.RegisterBlock(&BlockDefinition{
		ID:          world.BlockTypeGrass,
		Name:        "grass",
		TextureTop:  "grass_top",
		TextureSide: "grass_side",
		TextureBot:  "dirt",
	})
	r.RegisterBlock(&BlockDefinition{
		ID:          world.BlockTypeTest,
		Name:        "test",
		TextureTop:  "test",
		TextureSide: "test",
		TextureBot:  "test",
	})
	return r
}

// RegisterBlock adds or replaces a definition. Air is never registered.
// Texture names only the replaced definition used are dropped.
func (r *Registry) RegisterBlock(def *BlockDefinition) {
	if def == nil || def.ID == world.BlockTypeAir {
		return
	}
	if _, ok := r.blocks[def.ID]; !ok {
		r.order = append(r.order, def.ID)
	}
	r.blocks[def.ID] = def
	r.blockNames[def.Name] = def.ID
	r.rebuildTextures()
}

func (r *Registry) registerTexture(name string) {
	if name == "" {
		return
	}
	if _, exists := r.textureMap[name]; !exists {
		r.textureMap[name] = len(r.textureNames)
		r.textureNames = append(r.textureNames, name)
	}
}

// Definition returns the definition for bt.
func (r *Registry) Definition(bt world.BlockType) (*BlockDefinition, bool) {
	def, ok := r.blocks[bt]
	return def, ok
}

// Lookup returns the block type registered under name.
func (r *Registry) Lookup(name string) (world.BlockType, bool) {
	bt, ok := r.blockNames[name]
	return bt, ok
}

// TextureFor returns the texture name for one face of a block, or "" when the block is unknown.
func (r *Registry) TextureFor(bt world.BlockType, d primitive.Direction) string {
	def, ok := r.blocks[bt]
	if !ok {
		return ""
	}
	switch d {
	case primitive.Up:
		return def.TextureTop
	case primitive.Down:
		return def.TextureBot
	default:
		return def.TextureSide
	}
}

// TextureNames returns every referenced texture name in first-seen order.
func (r *Registry) TextureNames() []string {
	return append([]string(nil), r.textureNames...)
}

// LoadModels overrides face textures from block model files named after each
// block. Blocks without a model file keep their built-in textures.
func (r *Registry) LoadModels(dir string) error {
	loader := blockmodel.NewLoader(dir)
	var errs []error
	for _, id := range r.order {
		def := r.blocks[id]
		model, err := loader.LoadModel(def.Name)
		if errors.Is(err, blockmodel.ErrNotFound) {
			continue
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("block %s: %w", def.Name, err))
			continue
		}
		if !fullCube(model) {
			r.log.WithField("block", def.Name).Warn("block model is not a full cube, keeping built-in textures")
			continue
		}
		applyModel(def, model)
		r.log.WithFields(logrus.Fields{
			"block": def.Name,
			"top":   def.TextureTop,
			"side":  def.TextureSide,
			"bot":   def.TextureBot,
		}).Debug("applied block model")
	}
	r.rebuildTextures()
	return errors.Join(errs...)
}

// rebuildTextures recomputes the texture list from the current definitions,
// dropping names no face uses anymore.
func (r *Registry) rebuildTextures() {
	r.textureNames = r.textureNames[:0]
	clear(r.textureMap)
	for _, id := range r.order {
		def := r.blocks[id]
		r.registerTexture(def.TextureTop)
		r.registerTexture(def.TextureSide)
		r.registerTexture(def.TextureBot)
	}
}

func fullCube(model *blockmodel.Model) bool {
	for _, e := range model.Elements {
		if !e.FullCube() {
			return false
		}
	}
	return true
}

func applyModel(def *BlockDefinition, model *blockmodel.Model) {
	faces := model.FaceTextures()
	if tex, ok := faces[blockmodel.FaceUp]; ok {
		def.TextureTop = tex
	}
	if tex, ok := faces[blockmodel.FaceDown]; ok {
		def.TextureBot = tex
	}
	for _, side := range []string{blockmodel.FaceNorth, blockmodel.FaceSouth, blockmodel.FaceEast, blockmodel.FaceWest} {
		if tex, ok := faces[side]; ok {
			def.TextureSide = tex
			break
		}
	}
}

// TextureRegistrar is the part of the atlas the registry feeds.
type TextureRegistrar interface {
	Register(name, path string) error
}

// RegisterTextures registers <dir>/<name>.png for every texture name.
// It keeps going past failures and returns how many textures were registered
// along with every error joined together.
func (r *Registry) RegisterTextures(a TextureRegistrar, dir string) (int, error) {
	var errs []error
	n := 0
	for _, name := range r.textureNames {
		path := filepath.Join(dir, name+".png")
		if err := a.Register(name, path); err != nil {
			r.log.WithError(err).WithField("texture", name).Warn("failed to register texture")
			errs = append(errs, err)
			continue
		}
		n++
	}
	r.log.WithFields(logrus.Fields{"loaded": n, "total": len(r.textureNames), "dir": dir}).Info("registered block textures")
	return n, errors.Join(errs...)
}

// RegionLookup finds an atlas region by texture name.
type RegionLookup interface {
	Region(name string) (primitive.Region, bool)
}

// AtlasRegions resolves block faces to atlas regions by texture name, so
// lookups stay valid across atlas rebuilds.
type AtlasRegions struct {
	reg   *Registry
	atlas RegionLookup
}

// Regions binds the registry to an atlas.
func (r *Registry) Regions(a RegionLookup) AtlasRegions {
	return AtlasRegions{reg: r, atlas: a}
}

func (ar AtlasRegions) FaceRegion(bt world.BlockType, d primitive.Direction) (primitive.Region, bool) {
	name := ar.reg.TextureFor(bt, d)
	if name == "" || ar.atlas == nil {
		return primitive.Region{}, false
	}
	return ar.atlas.Region(name)
}
