package blockmodel

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/muhammadmuzzammil1998/jsonc"
)

// ErrNotFound is returned when a model file does not exist.
var ErrNotFound = errors.New("blockmodel: model not found")

const maxParentDepth = 16

// Loader reads model files from <dir>/<name>.json and caches them by name.
// Files may contain comments.
type Loader struct {
	dir        string
	modelCache map[string]*Model
}

func NewLoader(dir string) *Loader {
	return &Loader{
		dir:        dir,
		modelCache: make(map[string]*Model),
	}
}

func (l *Loader) LoadModel(name string) (*Model, error) {
	return l.load(name, 0)
}

func (l *Loader) load(name string, depth int) (*Model, error) {
	if model, ok := l.modelCache[name]; ok {
		return model, nil
	}
	if depth > maxParentDepth {
		return nil, fmt.Errorf("model %q: parent chain deeper than %d", name, maxParentDepth)
	}

	path := filepath.Join(l.dir, filepath.FromSlash(name)+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("could not read model file: %w", err)
	}

	var model Model
	if err := jsonc.Unmarshal(data, &model); err != nil {
		return nil, fmt.Errorf("could not unmarshal model %q: %w", name, err)
	}
	if model.Textures == nil {
		model.Textures = make(map[string]string)
	}

	if model.Parent != "" {
		parent, err := l.load(model.Parent, depth+1)
		if err != nil {
			return nil, fmt.Errorf("could not load parent model '%s': %w", model.Parent, err)
		}
		if len(model.Elements) == 0 {
			model.Elements = parent.Elements
		}
		for key, val := range parent.Textures {
			if _, ok := model.Textures[key]; !ok {
				model.Textures[key] = val
			}
		}
	}

	model.Elements = resolveElements(model.Elements, &model)
	l.modelCache[name] = &model
	return &model, nil
}

// resolveElements copies the elements with every face texture variable
// resolved, so a parent's cached elements are never rewritten by a child.
func resolveElements(elems []Element, m *Model) []Element {
	out := make([]Element, len(elems))
	for i, e := range elems {
		faces := make(map[string]Face, len(e.Faces))
		for name, f := range e.Faces {
			f.Texture = ResolveTexture(f.Texture, m)
			faces[name] = f
		}
		e.Faces = faces
		out[i] = e
	}
	return out
}

// ResolveTexture follows "#variable" references through the model's texture table.
func ResolveTexture(textureName string, m *Model) string {
	for i := 0; i < 10 && strings.HasPrefix(textureName, "#"); i++ {
		resolved, ok := m.Textures[strings.TrimPrefix(textureName, "#")]
		if !ok {
			break
		}
		textureName = resolved
	}
	return textureName
}
