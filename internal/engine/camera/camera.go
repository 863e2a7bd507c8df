// Package camera provides the free-fly camera used by the viewer.
package camera

import (
	gomath "math"

	"github.com/Faultbox/trackribbon/internal/engine/mesh"
	"github.com/Faultbox/trackribbon/pkg/math"
)

// ButtonRight is the SDL number of the right mouse button.
const ButtonRight = 3

// pitchClamp keeps pitch at least 10 degrees away from straight up or down.
const pitchClamp = 10 * gomath.Pi / 180

// Controls is the input state the camera polls every frame.
type Controls interface {
	MousePosition() (x, y int)
	MouseDown(button int) bool
	KeyDown(key rune) bool
}

// FlyCamera moves freely through the scene. Dragging with LookButton held
// turns it; w/s move along its view axis, a/d strafe and q/e move down/up.
type FlyCamera struct {
	Position math.Vec3
	Rotation math.Quat

	FOV    float32 // vertical, degrees
	Near   float32
	Far    float32
	Aspect float32

	ZoomRate   float32 // units per second
	RotateRate float32 // radians per pixel per second
	LookButton int

	home     math.Vec3
	homeRot  math.Quat
	prevX    int
	prevY    int
	tracking bool
}

// NewFlyCamera creates a camera looking down at the origin from (10, 10, 20).
func NewFlyCamera() *FlyCamera {
	c := &FlyCamera{
		Position:   math.V3(10, 10, 20),
		Rotation:   math.Quat{X: -0.232, Y: 0.24, Z: 0.06, W: 0.94}.Normalize(),
		FOV:        45,
		Near:       0.1,
		Far:        10000,
		Aspect:     16.0 / 9.0,
		ZoomRate:   16,
		RotateRate: 0.1 * gomath.Pi,
		LookButton: ButtonRight,
	}
	c.SetHome()
	return c
}

// SetHome records the current pose as the one Reset returns to.
func (c *FlyCamera) SetHome() {
	c.home = c.Position
	c.homeRot = c.Rotation
}

// Reset returns the camera to its home pose.
func (c *FlyCamera) Reset() {
	c.Position = c.home
	c.Rotation = c.homeRot
}

// MaxRotatePerFrame is the largest turn applied in one Update, in radians.
func (c *FlyCamera) MaxRotatePerFrame() float32 {
	return 0.2 * c.RotateRate
}

// Axes returns the camera's local x, y and z axes in world space. Rotation
// is normalized first, as ViewMatrix does.
func (c *FlyCamera) Axes() (x, y, z math.Vec3) {
	q := c.Rotation.Normalize()
	return q.Apply(math.UnitX), q.Apply(math.UnitY), q.Apply(math.UnitZ)
}

// Update applies one frame of input. elapsed is in seconds.
func (c *FlyCamera) Update(in Controls, elapsed float32) {
	mx, my := in.MousePosition()
	if !c.tracking {
		c.prevX, c.prevY = mx, my
		c.tracking = true
	}
	dx, dy := float32(mx-c.prevX), float32(my-c.prevY)
	c.prevX, c.prevY = mx, my

	if in.MouseDown(c.LookButton) {
		c.look(dx, dy, elapsed)
	}

	localX, localY, localZ := c.Axes()
	step := c.ZoomRate * elapsed
	moves := []struct {
		key  rune
		axis math.Vec3
		sign float32
	}{
		{'w', localZ, -1},
		{'s', localZ, 1},
		{'a', localX, -1},
		{'d', localX, 1},
		{'q', localY, -1},
		{'e', localY, 1},
	}
	for _, m := range moves {
		if in.KeyDown(m.key) {
			c.Position = c.Position.ScaleAdd(m.axis, m.sign*step)
		}
	}
}

func (c *FlyCamera) look(dx, dy, elapsed float32) {
	limit := c.MaxRotatePerFrame()
	yaw := clamp(dx*c.RotateRate*elapsed, limit)
	pitch := clamp(dy*c.RotateRate*elapsed, limit)

	c.Rotation = c.Rotation.RotateWorld(math.UnitY, -yaw)

	// Pitching back towards level is always allowed.
	roll := c.Rotation.Roll()
	if sign(roll) == sign(pitch) || abs(roll-pitch) < gomath.Pi/2-pitchClamp {
		c.Rotation = c.Rotation.RotateLocalX(-pitch)
	}
	c.Rotation = c.Rotation.Normalize()
}

// ViewMatrix returns the world-to-camera matrix.
func (c *FlyCamera) ViewMatrix() math.Mat4 {
	return math.View(c.Position, c.Rotation)
}

// ProjectionMatrix returns the perspective projection.
func (c *FlyCamera) ProjectionMatrix() math.Mat4 {
	return math.Perspective(c.FOV*gomath.Pi/180, c.Aspect, c.Near, c.Far)
}

// SetViewport updates the aspect ratio for a framebuffer size.
func (c *FlyCamera) SetViewport(width, height int) {
	if width > 0 && height > 0 {
		c.Aspect = float32(width) / float32(height)
	}
}

// FitToBounds backs the camera away from the box center along its current
// view axis until the whole box fits in the vertical field of view.
func (c *FlyCamera) FitToBounds(b mesh.Bounds) {
	radius := b.Max.Sub(b.Min).Length() / 2
	if radius == 0 {
		radius = 1
	}
	half := float64(c.FOV) * gomath.Pi / 360
	dist := radius / float32(gomath.Sin(half))

	_, _, localZ := c.Axes()
	c.Position = b.Center().ScaleAdd(localZ, dist)
}

func clamp(v, limit float32) float32 {
	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}
	return v
}

func sign(v float32) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
