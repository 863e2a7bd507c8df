// Package renderer provides OpenGL frame setup.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	ClearColor [3]float32
	Logger     *zap.Logger
}

// Renderer owns global GL state: viewport, clear color, depth testing.
type Renderer struct {
	config Config
	log    *zap.Logger
}

// New initializes OpenGL. Must be called after the GL context is created.
func New(cfg Config) (*Renderer, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	r := &Renderer{config: cfg, log: log}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	// The ribbon carries explicit back faces.
	gl.Disable(gl.CULL_FACE)
	r.SetClearColor(cfg.ClearColor)
	r.Resize(cfg.Width, cfg.Height)

	return r, nil
}

// SetClearColor sets the background color.
func (r *Renderer) SetClearColor(c [3]float32) {
	r.config.ClearColor = c
	gl.ClearColor(c[0], c[1], c[2], 1.0)
}

// Resize handles framebuffer size changes.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Size returns the current viewport size.
func (r *Renderer) Size() (width, height int) {
	return r.config.Width, r.config.Height
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// ReadPixels returns the current framebuffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, w, h
}

// Close releases renderer state.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
}
