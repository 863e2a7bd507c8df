package track

import "github.com/Faultbox/trackribbon/pkg/math"

// TestTrack returns the built-in 9-point reference loop.
func TestTrack() Track {
	b := NewBuilder()

	b.Add(math.V3(0, 0, 0), math.V3(0, 0, 10))
	b.AddWithUp(math.V3(-10, 20, 20), math.V3(-10, 0, 0), math.V3(0, 1, -0.5))
	b.AddWithUp(math.V3(-20, 10, 10), math.V3(0, 0, -10), math.V3(-0.5, 1, 0))
	b.AddWithUp(math.V3(-30, 0, 10), math.V3(-5, 0, 5), math.V3(0.25, 1, 0))
	b.AddWithUp(math.V3(-40, 0, 20), math.V3(-10, 0, 0), math.V3(0, 1, -0.5))
	b.AddWithUp(math.V3(-50, 0, 0), math.V3(5, 0, -5), math.V3(0.5, 1, 0))
	b.Add(math.V3(-40, -10, -10), math.V3(10, 0, 0))
	b.Add(math.V3(-25, -5, -5), math.V3(5, 0, 0))
	b.Add(math.V3(-10, 0, -10), math.V3(10, 0, 0))

	t := b.Track()
	t.Name = "test loop"
	return t
}
