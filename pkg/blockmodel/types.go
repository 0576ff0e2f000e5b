package blockmodel

// Model is a block model file: named textures plus the cuboid elements that use them.
type Model struct {
	Parent   string            `json:"parent"`
	Textures map[string]string `json:"textures"`
	Elements []Element         `json:"elements"`
}

type Element struct {
	From  [3]float32      `json:"from"`
	To    [3]float32      `json:"to"`
	Faces map[string]Face `json:"faces"`
}

type Face struct {
	Texture string `json:"texture"`
}

// Face names used by model files
const (
	FaceUp    = "up"
	FaceDown  = "down"
	FaceNorth = "north"
	FaceSouth = "south"
	FaceEast  = "east"
	FaceWest  = "west"
)

// FullCube reports whether the element spans the whole 16×16×16 block.
func (e Element) FullCube() bool {
	const epsilon = float32(0.001)
	for i := 0; i < 3; i++ {
		if e.From[i] < -epsilon || e.From[i] > epsilon {
			return false
		}
		if e.To[i] < 16-epsilon || e.To[i] > 16+epsilon {
			return false
		}
	}
	return true
}

// FaceTextures returns the resolved texture for every face named by any
// element. The first element naming a face wins.
func (m *Model) FaceTextures() map[string]string {
	out := make(map[string]string, 6)
	for _, e := range m.Elements {
		for name, f := range e.Faces {
			if _, ok := out[name]; ok || f.Texture == "" || f.Texture[0] == '#' {
				continue
			}
			out[name] = f.Texture
		}
	}
	return out
}
