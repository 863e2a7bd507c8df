package camera

import (
	gomath "math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/Faultbox/trackribbon/internal/engine/mesh"
	"github.com/Faultbox/trackribbon/pkg/math"
)

var approx = cmpopts.EquateApprox(0, 1e-4)

type fakeControls struct {
	x, y    int
	buttons map[int]bool
	keys    map[rune]bool
}

func (f *fakeControls) MousePosition() (int, int) { return f.x, f.y }
func (f *fakeControls) MouseDown(b int) bool      { return f.buttons[b] }
func (f *fakeControls) KeyDown(k rune) bool       { return f.keys[k] }

func newControls() *fakeControls {
	return &fakeControls{buttons: map[int]bool{}, keys: map[rune]bool{}}
}

func levelCamera() *FlyCamera {
	c := NewFlyCamera()
	c.Position = math.Zero
	c.Rotation = math.QuatIdentity()
	return c
}

func TestDefaults(t *testing.T) {
	c := NewFlyCamera()
	if c.Position != math.V3(10, 10, 20) {
		t.Errorf("Position = %v", c.Position)
	}
	if c.FOV != 45 || c.Near != 0.1 || c.Far != 10000 {
		t.Errorf("lens = %v/%v/%v", c.FOV, c.Near, c.Far)
	}
	want := float32(0.2 * 0.1 * gomath.Pi)
	if got := c.MaxRotatePerFrame(); !cmp.Equal(got, want, approx) {
		t.Errorf("MaxRotatePerFrame = %v, want %v", got, want)
	}
}

func TestMovementKeys(t *testing.T) {
	tests := []struct {
		key  rune
		want math.Vec3
	}{
		{'w', math.V3(0, 0, -8)},
		{'s', math.V3(0, 0, 8)},
		{'a', math.V3(-8, 0, 0)},
		{'d', math.V3(8, 0, 0)},
		{'q', math.V3(0, -8, 0)},
		{'e', math.V3(0, 8, 0)},
	}
	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			c := levelCamera()
			in := newControls()
			in.keys[tt.key] = true
			c.Update(in, 0.5)
			if d := cmp.Diff(tt.want, c.Position, approx); d != "" {
				t.Errorf("position (-want +got):\n%s", d)
			}
		})
	}
}

func TestMovementFollowsOrientation(t *testing.T) {
	c := levelCamera()
	c.Rotation = math.QuatFromAxisAngle(math.UnitY, gomath.Pi/2)
	in := newControls()
	in.keys['w'] = true
	c.Update(in, 1)

	// Turned left a quarter: forward is now -X.
	if d := cmp.Diff(math.V3(-16, 0, 0), c.Position, approx); d != "" {
		t.Errorf("position (-want +got):\n%s", d)
	}
}

func TestLookRequiresButton(t *testing.T) {
	c := levelCamera()
	in := newControls()
	c.Update(in, 0.1)
	in.x, in.y = 50, 50
	c.Update(in, 0.1)

	if c.Rotation != math.QuatIdentity() {
		t.Errorf("rotation changed without button: %v", c.Rotation)
	}
}

func TestFirstUpdateDoesNotJump(t *testing.T) {
	c := levelCamera()
	in := newControls()
	in.buttons[ButtonRight] = true
	in.x, in.y = 400, 300
	c.Update(in, 0.1)

	if d := cmp.Diff(math.QuatIdentity(), c.Rotation, approx); d != "" {
		t.Errorf("rotation (-want +got):\n%s", d)
	}
}

func TestRotationClampedPerFrame(t *testing.T) {
	c := levelCamera()
	in := newControls()
	in.buttons[ButtonRight] = true
	c.Update(in, 0.1)

	in.x = 10000
	c.Update(in, 1)

	want := math.QuatFromAxisAngle(math.UnitY, -c.MaxRotatePerFrame())
	if d := cmp.Diff(want, c.Rotation, approx); d != "" {
		t.Errorf("rotation (-want +got):\n%s", d)
	}
}

func TestSmallLookNotClamped(t *testing.T) {
	c := levelCamera()
	in := newControls()
	in.buttons[ButtonRight] = true
	c.Update(in, 0.1)

	in.y = -1
	c.Update(in, 0.1)

	pitch := float32(-1 * 0.1 * gomath.Pi * 0.1)
	want := math.QuatFromAxisAngle(math.UnitX, -pitch)
	if d := cmp.Diff(want, c.Rotation, approx); d != "" {
		t.Errorf("rotation (-want +got):\n%s", d)
	}
}

func TestPitchGuard(t *testing.T) {
	steep := math.QuatFromAxisAngle(math.UnitX, 1.45)

	tests := []struct {
		name    string
		dy      int
		changed bool
	}{
		{"further up refused", -1, false},
		{"back towards level allowed", 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := levelCamera()
			c.Rotation = steep
			in := newControls()
			in.buttons[ButtonRight] = true
			c.Update(in, 0.1)

			in.y = tt.dy
			c.Update(in, 0.1)

			same := cmp.Equal(steep, c.Rotation, approx)
			if same == tt.changed {
				t.Errorf("rotation %v, changed = %v, want %v", c.Rotation, !same, tt.changed)
			}
		})
	}
}

func TestReset(t *testing.T) {
	c := NewFlyCamera()
	in := newControls()
	in.keys['d'] = true
	c.Update(in, 1)
	c.Reset()

	if c.Position != math.V3(10, 10, 20) {
		t.Errorf("Position after Reset = %v", c.Position)
	}
}

func TestViewMatrix(t *testing.T) {
	c := NewFlyCamera()
	eye := c.ViewMatrix().TransformVec3(c.Position)
	if d := cmp.Diff(math.Zero, eye, approx); d != "" {
		t.Errorf("eye in view space (-want +got):\n%s", d)
	}

	_, _, z := c.Axes()
	ahead := c.Position.ScaleAdd(z, -5)
	if d := cmp.Diff(math.V3(0, 0, -5), c.ViewMatrix().TransformVec3(ahead), approx); d != "" {
		t.Errorf("point ahead (-want +got):\n%s", d)
	}
}

func TestDefaultRotationIsUnit(t *testing.T) {
	q := NewFlyCamera().Rotation
	norm := float32(gomath.Sqrt(float64(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)))
	if !cmp.Equal(norm, float32(1), approx) {
		t.Errorf("|Rotation| = %v, want 1", norm)
	}
}

func TestAxesFollowViewForUnnormalizedRotation(t *testing.T) {
	c := NewFlyCamera()
	c.Rotation = math.Quat{X: -0.232, Y: 0.24, Z: 0.06, W: 0.94}

	x, y, z := c.Axes()
	view := c.ViewMatrix()
	for _, tt := range []struct {
		name string
		axis math.Vec3
		want math.Vec3
	}{
		{"x", x, math.V3(3, 0, 0)},
		{"y", y, math.V3(0, 3, 0)},
		{"z", z, math.V3(0, 0, 3)},
	} {
		got := view.TransformVec3(c.Position.ScaleAdd(tt.axis, 3))
		if d := cmp.Diff(tt.want, got, approx); d != "" {
			t.Errorf("local %s axis in view space (-want +got):\n%s", tt.name, d)
		}
	}
}

func TestSetViewport(t *testing.T) {
	c := NewFlyCamera()
	c.SetViewport(800, 400)
	if c.Aspect != 2 {
		t.Errorf("Aspect = %v, want 2", c.Aspect)
	}
	c.SetViewport(0, 0)
	if c.Aspect != 2 {
		t.Errorf("Aspect changed for empty viewport: %v", c.Aspect)
	}
	p := c.ProjectionMatrix()
	if p[0]*2 != p[5] {
		t.Errorf("projection x scale %v, y scale %v", p[0], p[5])
	}
}

func TestFitToBounds(t *testing.T) {
	c := levelCamera()
	b := mesh.Bounds{Min: math.V3(-10, -10, -10), Max: math.V3(10, 10, 10)}
	c.FitToBounds(b)

	if c.Position.X != 0 || c.Position.Y != 0 || c.Position.Z <= 10 {
		t.Errorf("Position = %v, want on +Z outside the box", c.Position)
	}
	view := c.ViewMatrix().TransformVec3(b.Center())
	if view.Z >= 0 {
		t.Errorf("box center behind camera: %v", view)
	}
}
