package bezier

import "github.com/Faultbox/trackribbon/pkg/math"

// Curve is a cubic Bézier curve given by its four control points.
type Curve struct {
	P0, P1, P2, P3 math.Vec3
}

// Eval returns the point at t.
func (c Curve) Eval(t float32) math.Vec3 {
	return Cubic(c.P0, c.P1, c.P2, c.P3, t)
}

// Derivative returns the first derivative at t.
func (c Curve) Derivative(t float32) math.Vec3 {
	return CubicFirst(c.P0, c.P1, c.P2, c.P3, t)
}

// SecondDerivative returns the second derivative at t.
func (c Curve) SecondDerivative(t float32) math.Vec3 {
	return CubicSecond(c.P0, c.P1, c.P2, c.P3, t)
}

// Offset translates P0 and P1 by start and P2 and P3 by end.
// With start == end this is a rigid translation of the whole curve.
func (c Curve) Offset(start, end math.Vec3) Curve {
	return Curve{
		P0: c.P0.Add(start),
		P1: c.P1.Add(start),
		P2: c.P2.Add(end),
		P3: c.P3.Add(end),
	}
}

// Sample evaluates the curve at n points. See Sample.
func (c Curve) Sample(colorStart, colorEnd math.Vec3, n int) (Samples, error) {
	return Sample(c.P0, c.P1, c.P2, c.P3, colorStart, colorEnd, n)
}
