package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"mini-voxel/internal/atlas"
	"mini-voxel/internal/config"
	"mini-voxel/internal/meshing"
	"mini-voxel/internal/profiling"
	"mini-voxel/internal/world"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func packCommand() *cli.Command {
	return &cli.Command{
		Name:      "pack",
		Usage:     "pack NAME=PATH textures into one atlas",
		ArgsUsage: "NAME=PATH...",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "write the atlas PNG here"},
			&cli.IntFlag{Name: "min", Usage: "minimum atlas size (default from config)"},
			&cli.IntFlag{Name: "max", Usage: "maximum atlas size (default from config)"},
		},
		Action: func(c *cli.Context) error {
			cfg, log, err := setup(c)
			if err != nil {
				return err
			}
			if c.NArg() == 0 {
				return errors.New("need at least one NAME=PATH texture")
			}
			if c.IsSet("min") {
				cfg.Atlas.MinSize = c.Int("min")
			}
			if c.IsSet("max") {
				cfg.Atlas.MaxSize = c.Int("max")
			}
			cfg.Validate()
			out := c.String("out")
			if out == "" {
				out = cfg.Atlas.SavePath
			}
			return runPack(c.App.Writer, log, cfg.Atlas, c.Args().Slice(), out)
		},
	}
}

// parseTextureArg splits NAME=PATH.
func parseTextureArg(arg string) (name, path string, err error) {
	name, path, ok := strings.Cut(arg, "=")
	if !ok || name == "" || path == "" {
		return "", "", fmt.Errorf("bad texture argument %q, want NAME=PATH", arg)
	}
	return name, path, nil
}

func runPack(w io.Writer, log *logrus.Logger, opts config.AtlasConfig, args []string, out string) error {
	a := atlas.New(atlas.Options{MinSize: opts.MinSize, MaxSize: opts.MaxSize, Logger: log})
	defer a.UnloadAll()

	for _, arg := range args {
		name, path, err := parseTextureArg(arg)
		if err != nil {
			return err
		}
		if err := a.Register(name, path); err != nil {
			return err
		}
	}
	if err := a.Build(); err != nil {
		return err
	}

	width, height := a.Size()
	fmt.Fprintf(w, "atlas %dx%d, %d textures, fingerprint %016x\n", width, height, len(a.Names()), a.Fingerprint())
	regions := a.Regions()
	for _, name := range a.Names() {
		r := regions[name]
		fmt.Fprintf(w, "%-24s %3dx%-3d  (%.4f, %.4f) - (%.4f, %.4f)\n",
			name, r.Width, r.Height, r.TopLeft.X(), r.TopLeft.Y(), r.BottomRight.X(), r.BottomRight.Y())
	}

	if out != "" {
		if err := a.Save(out); err != nil {
			return err
		}
		log.WithField("path", out).Info("saved atlas")
	}
	return nil
}

func meshCommand() *cli.Command {
	return &cli.Command{
		Name:  "mesh",
		Usage: "generate one chunk and report its mesh",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "size", Usage: "chunk width and depth"},
			&cli.IntFlag{Name: "height", Usage: "chunk height"},
			&cli.StringFlag{Name: "terrain", Usage: "solid, flat, hills or air"},
			&cli.Int64Flag{Name: "seed", Usage: "hills seed"},
		},
		Action: func(c *cli.Context) error {
			cfg, log, err := setup(c)
			if err != nil {
				return err
			}
			if c.IsSet("size") {
				cfg.Chunk.Size = c.Int("size")
			}
			if c.IsSet("height") {
				cfg.Chunk.Height = c.Int("height")
			}
			if c.IsSet("terrain") {
				cfg.Chunk.Terrain = c.String("terrain")
			}
			if c.IsSet("seed") {
				cfg.Chunk.Seed = c.Int64("seed")
			}
			cfg.Validate()
			return runMesh(c.App.Writer, log, cfg.Chunk)
		},
	}
}

func runMesh(w io.Writer, log *logrus.Logger, opts config.ChunkConfig) error {
	gen, ok := world.GeneratorByName(opts.Terrain, opts.Seed, opts.Surface)
	if !ok {
		return fmt.Errorf("unknown terrain %q", opts.Terrain)
	}

	c := world.NewChunkWithDims(opts.OriginX, opts.OriginZ, world.Dims{X: opts.Size, Y: opts.Height, Z: opts.Size})
	done := profiling.Track("world.BuildData")
	c.BuildData(gen)
	done()

	err := meshing.Build(c, nil, log)
	switch {
	case errors.Is(err, meshing.ErrEmptyMesh):
		fmt.Fprintf(w, "chunk (%d,%d) %s: no visible faces\n", c.X, c.Z, opts.Terrain)
		return nil
	case err != nil:
		return err
	}

	m := c.Mesh()
	b := m.Bounds()
	fmt.Fprintf(w, "chunk (%d,%d) %s: %d solid blocks, %d quads, %d vertices, %d indices\n",
		c.X, c.Z, opts.Terrain, c.SolidCount(), m.QuadCount(), len(m.Vertices), len(m.Indices))
	fmt.Fprintf(w, "bounds %v - %v\n", b.Min(), b.Max())
	log.WithFields(profiling.Fields(4)).Debug("timings (ms)")
	return nil
}

func initCommand() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "write the default config file",
		Action: func(c *cli.Context) error {
			path := c.String("config")
			if err := config.SaveDefault(path); err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "wrote %s\n", path)
			return nil
		},
	}
}
