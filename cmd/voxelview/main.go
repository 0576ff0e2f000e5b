package main

import (
	"os"
	"runtime"
	"sync/atomic"

	"mini-voxel/internal/atlas"
	"mini-voxel/internal/config"
	"mini-voxel/internal/graphics"
	"mini-voxel/internal/graphics/camera"
	"mini-voxel/internal/input"
	"mini-voxel/internal/meshing"
	"mini-voxel/internal/primitive"
	"mini-voxel/internal/profiling"
	"mini-voxel/internal/registry"
	"mini-voxel/internal/texture"
	"mini-voxel/internal/world"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"github.com/xlab/closer"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	app := &cli.App{
		Name:  "voxelview",
		Usage: "renders one generated chunk with its texture atlas",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Value: "config.toml", Usage: "TOML config file"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.Load(c.String("config"))
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}
	if err := app.Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
	closer.Close()
}

func setupWindow(cfg config.WindowConfig) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return nil, err
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return nil, err
	}
	glfw.SwapInterval(1)
	return window, nil
}

// scene is everything the render loop draws. It is built and released on the GL thread.
type scene struct {
	log      *logrus.Logger
	cfg      config.Config
	atlas    *atlas.Atlas
	registry *registry.Registry
	chunk    *world.Chunk
	buffers  *graphics.ChunkBuffers
	shader   *graphics.Shader
	camera   *camera.Camera

	wireframe bool
	paused    bool
	// orbit is the animation clock; it stops while paused.
	orbit float32
}

func run(cfg config.Config) error {
	log := cfg.NewLogger()

	// The closer goroutine must not touch GL; it asks the loop to stop and
	// waits until the GL thread has released everything.
	var quit atomic.Bool
	released := make(chan struct{})
	closer.Bind(func() {
		quit.Store(true)
		<-released
	})
	defer close(released)

	if err := glfw.Init(); err != nil {
		return err
	}
	defer glfw.Terminate()

	window, err := setupWindow(cfg.Window)
	if err != nil {
		return err
	}

	s, err := newScene(cfg, log)
	if err != nil {
		return err
	}
	defer s.release()

	fbw, fbh := window.GetFramebufferSize()
	gl.Viewport(0, 0, int32(fbw), int32(fbh))
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		gl.Viewport(0, 0, int32(w), int32(h))
		if h > 0 {
			s.camera.AspectRatio = float32(w) / float32(h)
		}
	})

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.ClearColor(0.53, 0.81, 0.92, 1.0)

	in := newInput(window)
	last := glfw.GetTime()
	for !window.ShouldClose() && !quit.Load() {
		now := glfw.GetTime()
		if !s.paused {
			s.orbit += float32(now - last)
		}
		last = now

		s.draw()
		window.SwapBuffers()
		glfw.PollEvents()
		s.handle(window, in)
		in.PostUpdate()
	}
	log.WithFields(profiling.Fields(4)).Info("timings (ms)")
	return nil
}

func newScene(cfg config.Config, log *logrus.Logger) (*scene, error) {
	shader, err := graphics.NewShader(chunkVertexShader, chunkFragmentShader)
	if err != nil {
		return nil, err
	}

	a := atlas.New(atlas.Options{
		MinSize:  cfg.Atlas.MinSize,
		MaxSize:  cfg.Atlas.MaxSize,
		Uploader: graphics.GLTextures{},
		Logger:   log,
	})
	reg := registry.Default(log)
	if cfg.Assets.ModelDir != "" {
		if err := reg.LoadModels(cfg.Assets.ModelDir); err != nil {
			log.WithError(err).Warn("some block models failed to load")
		}
	}
	if _, err := reg.RegisterTextures(a, cfg.Assets.TextureDir); err != nil {
		addPlaceholders(a, reg, log)
	}
	if err := a.Build(); err != nil {
		log.WithError(err).Error("atlas build failed, drawing without textures")
	}
	if cfg.Atlas.SavePath != "" {
		if err := a.Save(cfg.Atlas.SavePath); err != nil {
			log.WithError(err).Warn("could not save atlas")
		}
	}

	s := &scene{
		log:      log,
		cfg:      cfg,
		atlas:    a,
		registry: reg,
		chunk: world.NewChunkWithDims(cfg.Chunk.OriginX, cfg.Chunk.OriginZ,
			world.Dims{X: cfg.Chunk.Size, Y: cfg.Chunk.Height, Z: cfg.Chunk.Size}),
		buffers: graphics.NewChunkBuffers(),
		shader:  shader,
		camera:  camera.NewCamera(cfg.Window.Width, cfg.Window.Height),
	}
	s.regenerate()
	bounds := s.chunk.Bounds()
	s.camera.Frame(bounds.Min(), bounds.Max())
	return s, nil
}

// regenerate rebuilds the chunk's blocks from the configured terrain and
// seed, then remeshes and uploads it.
func (s *scene) regenerate() {
	// Unknown terrain names fall back to a chunk full of test blocks.
	gen, _ := world.GeneratorByName(s.cfg.Chunk.Terrain, s.cfg.Chunk.Seed, s.cfg.Chunk.Surface)
	s.chunk.BuildData(gen)

	if err := meshing.Build(s.chunk, s.registry.Regions(s.atlas), s.log); err != nil {
		s.log.WithError(err).Warn("chunk has nothing to draw")
	}
	s.buffers.Upload(s.chunk.Mesh())

	s.log.WithFields(logrus.Fields{
		"chunk_x": s.chunk.X,
		"chunk_z": s.chunk.Z,
		"terrain": s.cfg.Chunk.Terrain,
		"seed":    s.cfg.Chunk.Seed,
		"quads":   s.chunk.Mesh().QuadCount(),
	}).Info("chunk ready")
}

// handle applies the actions pressed this frame.
func (s *scene) handle(window *glfw.Window, in *input.Manager) {
	if in.JustPressed(input.ActionQuit) {
		window.SetShouldClose(true)
	}
	if in.JustPressed(input.ActionRegenerate) {
		s.cfg.Chunk.Seed++
		s.regenerate()
	}
	if in.JustPressed(input.ActionToggleWireframe) {
		s.wireframe = !s.wireframe
		if s.wireframe {
			gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		} else {
			gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
		}
	}
	if in.JustPressed(input.ActionPauseOrbit) {
		s.paused = !s.paused
	}
	if in.JustPressed(input.ActionSaveAtlas) {
		path := s.cfg.Atlas.SavePath
		if path == "" {
			path = "atlas.png"
		}
		if err := s.atlas.Save(path); err != nil {
			s.log.WithError(err).Warn("could not save atlas")
		} else {
			s.log.WithField("path", path).Info("saved atlas")
		}
	}
}

func newInput(window *glfw.Window) *input.Manager {
	in := input.NewManager()
	in.BindKey(input.Key(glfw.KeyEscape), input.ActionQuit)
	in.BindKey(input.Key(glfw.KeyQ), input.ActionQuit)
	in.BindKey(input.Key(glfw.KeyR), input.ActionRegenerate)
	in.BindKey(input.Key(glfw.KeyF), input.ActionToggleWireframe)
	in.BindKey(input.Key(glfw.KeySpace), input.ActionPauseOrbit)
	in.BindKey(input.Key(glfw.KeyP), input.ActionSaveAtlas)
	window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		in.HandleKey(input.Key(key), action != glfw.Release)
	})
	return in
}

// addPlaceholders fills every texture name the registry could not load with a generated checkerboard.
func addPlaceholders(a *atlas.Atlas, reg *registry.Registry, log *logrus.Logger) {
	known := make(map[string]bool)
	for _, name := range a.Names() {
		known[name] = true
	}
	for _, name := range reg.TextureNames() {
		if known[name] {
			continue
		}
		if err := a.Add(name, texture.Placeholder(name, 16)); err != nil {
			log.WithError(err).WithField("texture", name).Warn("placeholder rejected")
		}
	}
}

func (s *scene) draw() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	s.shader.Use()
	s.shader.SetMatrix4("proj", s.camera.ProjectionMatrix())
	s.shader.SetMatrix4("view", s.camera.ViewMatrix(s.orbit))
	s.shader.SetInt("atlas", 0)
	s.shader.SetRegion("texOffset", "texScale", primitive.FullRegion)
	graphics.BindTexture(0, s.atlas.TextureHandle())
	s.buffers.Draw()
}

func (s *scene) release() {
	s.buffers.Release()
	s.shader.Delete()
	s.atlas.UnloadAll()
}
