// Package viewer runs the interactive track viewer: it builds the ribbon,
// hands the meshes to the scene and drives the frame loop.
package viewer

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/trackribbon/internal/config"
	"github.com/Faultbox/trackribbon/internal/engine/camera"
	"github.com/Faultbox/trackribbon/internal/engine/debug"
	"github.com/Faultbox/trackribbon/internal/engine/gpu"
	"github.com/Faultbox/trackribbon/internal/engine/input"
	"github.com/Faultbox/trackribbon/internal/engine/material"
	"github.com/Faultbox/trackribbon/internal/engine/renderer"
	"github.com/Faultbox/trackribbon/internal/engine/scene"
	"github.com/Faultbox/trackribbon/internal/engine/window"
	"github.com/Faultbox/trackribbon/internal/ribbon"
	"github.com/Faultbox/trackribbon/internal/track"
	"github.com/Faultbox/trackribbon/pkg/math"
)

// Viewer is the running application.
type Viewer struct {
	cfg *config.Config
	log *zap.Logger

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.FlyCamera
	scene    *scene.Scene
	material *material.VertexColor
	builder  *ribbon.Builder
	shots    *debug.Screenshots

	bounds     scene.Handle
	showBounds bool
	running    bool
}

// New opens the window, initializes GL and builds the configured track.
func New(cfg *config.Config, log *zap.Logger) (*Viewer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	v := &Viewer{
		cfg:        cfg,
		log:        log,
		builder:    NewBuilder(cfg.Track, log.Named("ribbon")),
		shots:      debug.NewScreenshots(cfg.Render.ScreenshotDir, "trackview"),
		showBounds: cfg.Render.ShowBounds,
	}

	var err error
	v.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
		Logger:     log.Named("window"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer after window: the GL context must exist.
	width, height := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		ClearColor: cfg.Render.ClearColor,
		Logger:     log.Named("renderer"),
	})
	if err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.material, err = material.NewVertexColor()
	if err != nil {
		v.Close()
		return nil, err
	}

	v.scene = scene.New(gpu.Backend{}, log.Named("scene"))
	v.input = input.New()
	v.camera = NewCamera(cfg.Camera)
	v.camera.SetViewport(width, height)

	if err := v.Rebuild(); err != nil {
		v.Close()
		return nil, err
	}

	log.Info("viewer initialized")
	return v, nil
}

// NewBuilder returns a ribbon builder configured from the track settings.
func NewBuilder(cfg config.TrackConfig, log *zap.Logger) *ribbon.Builder {
	b := ribbon.New()
	b.Samples = cfg.Samples
	b.HalfWidth = cfg.HalfWidth
	b.SkipDegenerate = cfg.SkipDegenerate
	b.DebugLines = cfg.DebugLines
	b.Logger = log
	return b
}

// NewCamera returns a fly camera configured from the camera settings.
func NewCamera(cfg config.CameraConfig) *camera.FlyCamera {
	c := camera.NewFlyCamera()
	c.FOV = cfg.FOV
	c.Near = cfg.Near
	c.Far = cfg.Far
	c.ZoomRate = cfg.ZoomRate
	c.RotateRate = cfg.RotateRate
	c.Position = math.Vec3{X: cfg.Position[0], Y: cfg.Position[1], Z: cfg.Position[2]}
	c.Rotation = math.Quat{X: cfg.Rotation[0], Y: cfg.Rotation[1], Z: cfg.Rotation[2], W: cfg.Rotation[3]}.Normalize()
	c.SetHome()
	return c
}

// LoadTrack reads the track file, or returns the built-in loop for an
// empty path.
func LoadTrack(path string) (track.Track, error) {
	if path == "" {
		return track.TestTrack(), nil
	}
	return track.Load(path)
}

// Rebuild reloads the track source and replaces every mesh in the scene.
// On failure the previous meshes stay in place.
func (v *Viewer) Rebuild() error {
	start := time.Now()

	t, err := LoadTrack(v.cfg.Track.File)
	if err != nil {
		return err
	}
	res, err := v.builder.Build(t)
	if err != nil {
		return fmt.Errorf("building %q: %w", t.Name, err)
	}

	meshes := res.Meshes()
	items := make([]scene.Item, 0, len(meshes)+1)
	for _, m := range meshes {
		items = append(items, scene.Item{Mesh: m, Material: v.material})
	}
	if len(res.Segments) > 0 {
		box := debug.BBoxMesh(res.Bounds(), debug.DefaultBBoxPadding, math.V3(1, 1, 0))
		items = append(items, scene.Item{Mesh: box, Material: v.material})
	}

	handles, err := v.scene.Replace(items)
	if err != nil {
		return fmt.Errorf("uploading %q: %w", t.Name, err)
	}
	v.bounds = 0
	if len(res.Segments) > 0 {
		v.bounds = handles[len(handles)-1]
		v.scene.SetVisible(v.bounds, v.showBounds)
	}

	v.log.Info("track built",
		zap.String("track", t.Name),
		zap.Int("points", t.Len()),
		zap.Int("segments", len(res.Segments)),
		zap.Ints("skipped", res.Skipped),
		zap.Int("meshes", v.scene.Len()),
		zap.Int("triangles", res.Triangles()),
		zap.Duration("took", time.Since(start)),
	)
	return nil
}

// Run starts the frame loop and returns when the window is closed.
func (v *Viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	v.log.Info("starting frame loop")

	for v.running {
		now := time.Now()
		elapsed := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		if v.input.Update() {
			v.running = false
			break
		}
		v.handleEvents()

		v.camera.Update(v.input, elapsed)

		v.renderer.Begin()
		v.scene.Draw(v.camera.ViewMatrix(), v.camera.ProjectionMatrix())
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.window.SetTitle(fmt.Sprintf("%s - %d fps", v.cfg.Window.Title, frameCount))
			v.log.Debug("fps", zap.Int("count", frameCount), zap.Float32("elapsed_ms", elapsed*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (v *Viewer) handleEvents() {
	for _, event := range v.input.Events() {
		if event.Type == input.EventWindowResize {
			w, h := v.window.DrawableSize()
			v.renderer.Resize(w, h)
			v.camera.SetViewport(w, h)
		}
	}

	for _, a := range []struct {
		key sdl.Keycode
		fn  func()
	}{
		{sdl.K_ESCAPE, func() { v.running = false }},
		{sdl.K_r, v.rebuild},
		{sdl.K_l, v.toggleLines},
		{sdl.K_b, v.toggleBounds},
		{sdl.K_f, v.fit},
		{sdl.K_HOME, v.camera.Reset},
		{sdl.K_F12, v.screenshot},
	} {
		if v.input.Pressed(a.key) {
			a.fn()
		}
	}
}

func (v *Viewer) rebuild() {
	if err := v.Rebuild(); err != nil {
		v.log.Error("rebuild failed, keeping previous meshes", zap.Error(err))
	}
}

func (v *Viewer) toggleLines() {
	v.builder.DebugLines = !v.builder.DebugLines
	if err := v.Rebuild(); err != nil {
		v.builder.DebugLines = !v.builder.DebugLines
		v.log.Error("rebuild failed, keeping previous meshes", zap.Error(err))
	}
}

func (v *Viewer) toggleBounds() {
	v.showBounds = !v.showBounds
	if v.scene.Contains(v.bounds) {
		v.scene.SetVisible(v.bounds, v.showBounds)
	}
}

func (v *Viewer) fit() {
	if b, ok := v.scene.Bounds(); ok {
		v.camera.FitToBounds(b)
	}
}

func (v *Viewer) screenshot() {
	pixels, w, h := v.renderer.ReadPixels()
	path, err := v.shots.SavePixels(pixels, w, h)
	if err != nil {
		v.log.Error("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases GPU resources and the window.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.scene != nil {
		v.scene.Clear()
	}
	if v.material != nil {
		v.material.Delete()
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
