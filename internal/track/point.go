// Package track models a closed loop of authoring control points and derives
// the Bézier control points between neighbors.
package track

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/Faultbox/trackribbon/pkg/math"
)

// ErrDegenerateGeometry is returned when a point's forward and up vectors
// are parallel or zero, leaving its lateral direction undefined.
var ErrDegenerateGeometry = errors.New("degenerate geometry: forward and up are parallel or zero")

// ErrNonFinite is returned for points with a NaN or infinite component.
var ErrNonFinite = errors.New("non-finite point")

// lateralEpsilon is the smallest |forward x up| accepted as a direction.
const lateralEpsilon = 1e-6

// WorldUp is the up vector used when a point does not specify one.
var WorldUp = math.UnitY

// Point is one authoring node of a track. Points are values; nothing mutates
// them once created.
type Point struct {
	Position math.Vec3
	Forward  math.Vec3
	Up       math.Vec3
	Color    math.Vec3
}

// Check reports a NaN or infinite position, forward or up.
func (p Point) Check() error {
	for _, f := range []struct {
		name string
		v    math.Vec3
	}{{"position", p.Position}, {"forward", p.Forward}, {"up", p.Up}} {
		if !f.v.IsFinite() {
			return fmt.Errorf("%w: %s %v", ErrNonFinite, f.name, f.v)
		}
	}
	return nil
}

// Lateral returns the unit vector pointing to the right of the point,
// normalize(forward x up).
func (p Point) Lateral() (math.Vec3, error) {
	c := p.Forward.Cross(p.Up)
	l := c.Length()
	if !(l >= lateralEpsilon) || !c.IsFinite() || gomath.IsInf(float64(l), 0) {
		return math.Vec3{}, fmt.Errorf("%w: forward %v, up %v", ErrDegenerateGeometry, p.Forward, p.Up)
	}
	return c.Scale(1 / l), nil
}

// Control1 returns the first Bézier control point of the segment leaving
// self towards next: self.Position + self.Forward.
//
// The full forward magnitude is used on both ends to keep curvature
// consistent across segments.
func Control1(self, next Point) math.Vec3 {
	return self.Position.Add(self.Forward)
}

// Control2 returns the second Bézier control point of the segment from self
// to next: next.Position - next.Forward.
func Control2(self, next Point) math.Vec3 {
	return next.Position.Sub(next.Forward)
}
