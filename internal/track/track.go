package track

import (
	"errors"
	"fmt"
)

// MinPoints is the fewest points that form a segment.
const MinPoints = 2

// ErrEmptyTrack is returned for tracks with fewer than MinPoints points.
var ErrEmptyTrack = errors.New("track needs at least 2 points")

// Track is a closed loop of points: the last point connects back to the first.
type Track struct {
	Name   string
	Points []Point
}

// Len returns the number of points, which is also the number of segments.
func (t Track) Len() int {
	return len(t.Points)
}

// Successor returns the index following i around the loop.
func (t Track) Successor(i int) int {
	return (i + 1) % len(t.Points)
}

// Segment returns the endpoints of segment i.
func (t Track) Segment(i int) (current, next Point) {
	return t.Points[i], t.Points[t.Successor(i)]
}

// Validate checks the point count and that every point is finite with a
// defined lateral direction. The first problem found is returned.
func (t Track) Validate() error {
	if len(t.Points) < MinPoints {
		return fmt.Errorf("%w: got %d", ErrEmptyTrack, len(t.Points))
	}
	for i, p := range t.Points {
		if err := p.Check(); err != nil {
			return fmt.Errorf("point %d: %w", i, err)
		}
		if _, err := p.Lateral(); err != nil {
			return fmt.Errorf("point %d: %w", i, err)
		}
	}
	return nil
}
