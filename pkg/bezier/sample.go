package bezier

import (
	"errors"
	"fmt"

	"github.com/Faultbox/trackribbon/pkg/math"
)

// ErrInvalidSampleCount is returned when fewer than two samples are requested.
var ErrInvalidSampleCount = errors.New("sample count must be at least 2")

// Samples is an ordered run of curve positions with one color per position.
type Samples struct {
	Points []math.Vec3
	Colors []math.Vec3
}

// Len returns the number of samples.
func (s Samples) Len() int {
	return len(s.Points)
}

// First returns the first sampled position.
func (s Samples) First() math.Vec3 {
	return s.Points[0]
}

// Last returns the last sampled position.
func (s Samples) Last() math.Vec3 {
	return s.Points[len(s.Points)-1]
}

// CheckSampleCount returns ErrInvalidSampleCount (wrapped with n) when n < 2.
func CheckSampleCount(n int) error {
	if n < 2 {
		return fmt.Errorf("%w: got %d", ErrInvalidSampleCount, n)
	}
	return nil
}

// Sample evaluates the cubic curve p0..p3 at n evenly spaced parameters
// covering [0, 1], interpolating colorStart to colorEnd alongside.
//
// The last sample is set to p3 and colorEnd directly rather than evaluated at
// (n-1)/(n-1), so adjacent segments meet without a floating-point gap.
func Sample(p0, p1, p2, p3, colorStart, colorEnd math.Vec3, n int) (Samples, error) {
	if err := CheckSampleCount(n); err != nil {
		return Samples{}, err
	}

	s := Samples{
		Points: make([]math.Vec3, n),
		Colors: make([]math.Vec3, n),
	}
	step := 1 / float32(n-1)
	for i := 0; i < n-1; i++ {
		t := float32(i) * step
		s.Points[i] = Cubic(p0, p1, p2, p3, t)
		s.Colors[i] = colorStart.Lerp(colorEnd, t)
	}
	s.Points[n-1] = p3
	s.Colors[n-1] = colorEnd

	return s, nil
}
