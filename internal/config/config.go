package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml"
	"github.com/sirupsen/logrus"
)

// Config is the on-disk configuration shared by the binaries.
type Config struct {
	Window WindowConfig `toml:"window"`
	Atlas  AtlasConfig  `toml:"atlas"`
	Assets AssetsConfig `toml:"assets"`
	Chunk  ChunkConfig  `toml:"chunk"`
	Log    LogConfig    `toml:"log"`
}

type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

type AtlasConfig struct {
	MinSize int `toml:"min_size"`
	MaxSize int `toml:"max_size"`
	// SavePath, when set, receives a PNG of every successful build.
	SavePath string `toml:"save_path"`
}

type AssetsConfig struct {
	TextureDir string `toml:"texture_dir"`
	// ModelDir holds optional block model files overriding face textures.
	ModelDir string `toml:"model_dir"`
}

type ChunkConfig struct {
	OriginX int    `toml:"origin_x"`
	OriginZ int    `toml:"origin_z"`
	Size    int    `toml:"size"`
	Height  int    `toml:"height"`
	Terrain string `toml:"terrain"`
	Surface int    `toml:"surface"`
	Seed    int64  `toml:"seed"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

const (
	minWindowSize = 64
	maxWindowSize = 8192
	maxChunkSize  = 256
	maxAtlasSize  = 16384
)

var terrains = map[string]bool{"solid": true, "flat": true, "hills": true, "air": true}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Window: WindowConfig{Width: 1280, Height: 720, Title: "mini-voxel"},
		Atlas:  AtlasConfig{MinSize: 32, MaxSize: 128},
		Assets: AssetsConfig{TextureDir: "assets/textures", ModelDir: "assets/models"},
		Chunk:  ChunkConfig{Size: 16, Height: 128, Terrain: "hills", Surface: 32, Seed: 1},
		Log:    LogConfig{Level: "info"},
	}
}

// Load reads path over the defaults. A missing file yields Default().
// The result is always validated.
func Load(path string) (Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return c, fmt.Errorf("error reading config: %w", err)
	}
	if err := toml.Unmarshal(data, &c); err != nil {
		return Default(), fmt.Errorf("error decoding config %s: %w", path, err)
	}
	c.Validate()
	return c, nil
}

// SaveDefault writes the default configuration to path unless a file already exists there.
func SaveDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return errors.New("config file already exists")
	}
	data, err := toml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("failed encoding default config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed creating config file: %w", err)
	}
	return nil
}

// Validate clamps every value into its usable range.
func (c *Config) Validate() {
	c.Window.Width = clamp(c.Window.Width, minWindowSize, maxWindowSize)
	c.Window.Height = clamp(c.Window.Height, minWindowSize, maxWindowSize)
	if c.Window.Title == "" {
		c.Window.Title = "mini-voxel"
	}

	c.Atlas.MinSize = clamp(c.Atlas.MinSize, 1, maxAtlasSize)
	c.Atlas.MaxSize = clamp(c.Atlas.MaxSize, c.Atlas.MinSize, maxAtlasSize)

	c.Chunk.Size = clamp(c.Chunk.Size, 1, maxChunkSize)
	c.Chunk.Height = clamp(c.Chunk.Height, 1, maxChunkSize)
	c.Chunk.Surface = clamp(c.Chunk.Surface, 0, c.Chunk.Height-1)
	if !terrains[c.Chunk.Terrain] {
		c.Chunk.Terrain = "solid"
	}

	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		c.Log.Level = "info"
	}
}

// LogLevel returns the configured logrus level.
func (c Config) LogLevel() logrus.Level {
	lvl, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

// NewLogger returns a text logger at the configured level.
func (c Config) NewLogger() *logrus.Logger {
	log := logrus.New()
	log.Formatter = &logrus.TextFormatter{ForceColors: true, FullTimestamp: true}
	log.Level = c.LogLevel()
	return log
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
