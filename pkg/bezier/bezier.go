// Package bezier evaluates quadratic and cubic Bézier curves in 3D and samples
// them at a fixed resolution.
//
// All evaluation functions are pure. The parameter t is expected in [0, 1] but
// is never clamped: the Bernstein polynomials are defined for every real t, so
// values outside the range extrapolate the curve.
package bezier

import "github.com/Faultbox/trackribbon/pkg/math"

// Quadratic evaluates (1-t)²p0 + 2(1-t)t·p1 + t²p2.
func Quadratic(p0, p1, p2 math.Vec3, t float32) math.Vec3 {
	mt := 1 - t
	b0 := mt * mt
	b1 := 2 * mt * t
	b2 := t * t
	return math.Vec3{
		X: b0*p0.X + b1*p1.X + b2*p2.X,
		Y: b0*p0.Y + b1*p1.Y + b2*p2.Y,
		Z: b0*p0.Z + b1*p1.Z + b2*p2.Z,
	}
}

// QuadraticFirst is the first derivative of Quadratic with respect to t.
func QuadraticFirst(p0, p1, p2 math.Vec3, t float32) math.Vec3 {
	mt := 1 - t
	return p1.Sub(p0).Scale(2 * mt).Add(p2.Sub(p1).Scale(2 * t))
}

// Cubic evaluates (1-t)³p0 + 3(1-t)²t·p1 + 3(1-t)t²·p2 + t³p3.
//
// The weights are computed once and applied per component, so Cubic(…, 0) is
// exactly p0 and Cubic(…, 1) is exactly p3.
func Cubic(p0, p1, p2, p3 math.Vec3, t float32) math.Vec3 {
	mt := 1 - t
	b0 := mt * mt * mt
	b1 := 3 * mt * mt * t
	b2 := 3 * mt * t * t
	b3 := t * t * t
	return math.Vec3{
		X: b0*p0.X + b1*p1.X + b2*p2.X + b3*p3.X,
		Y: b0*p0.Y + b1*p1.Y + b2*p2.Y + b3*p3.Y,
		Z: b0*p0.Z + b1*p1.Z + b2*p2.Z + b3*p3.Z,
	}
}

// CubicFirst is the first derivative of Cubic:
// 3(1-t)²(p1-p0) + 6(1-t)t(p2-p1) + 3t²(p3-p2).
func CubicFirst(p0, p1, p2, p3 math.Vec3, t float32) math.Vec3 {
	mt := 1 - t
	return p1.Sub(p0).Scale(3 * mt * mt).
		Add(p2.Sub(p1).Scale(6 * mt * t)).
		Add(p3.Sub(p2).Scale(3 * t * t))
}

// CubicSecond is the second derivative of Cubic:
// 6(1-t)(p2-2p1+p0) + 6t(p3-2p2+p1).
func CubicSecond(p0, p1, p2, p3 math.Vec3, t float32) math.Vec3 {
	mt := 1 - t
	a := p2.Sub(p1.Scale(2)).Add(p0)
	b := p3.Sub(p2.Scale(2)).Add(p1)
	return a.Scale(6 * mt).Add(b.Scale(6 * t))
}

// CubicTangent returns the normalized first derivative, or the zero vector
// where the derivative vanishes.
func CubicTangent(p0, p1, p2, p3 math.Vec3, t float32) math.Vec3 {
	return CubicFirst(p0, p1, p2, p3, t).Normalize()
}
