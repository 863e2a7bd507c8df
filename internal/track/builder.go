package track

import "github.com/Faultbox/trackribbon/pkg/math"

// Palette is the set of colors handed out to points in round-robin order.
type Palette []math.Vec3

// DefaultPalette is red, blue, green.
var DefaultPalette = Palette{
	{X: 1, Y: 0, Z: 0},
	{X: 0, Y: 0, Z: 1},
	{X: 0, Y: 1, Z: 0},
}

// Builder creates points in order, assigning palette colors round-robin.
// The color counter lives on the builder, so separate tracks never share it.
type Builder struct {
	palette Palette
	next    int
	points  []Point
}

// NewBuilder returns a builder using DefaultPalette.
func NewBuilder() *Builder {
	return NewBuilderWithPalette(DefaultPalette)
}

// NewBuilderWithPalette returns a builder using p. An empty palette colors
// every point white.
func NewBuilderWithPalette(p Palette) *Builder {
	if len(p) == 0 {
		p = Palette{{X: 1, Y: 1, Z: 1}}
	}
	return &Builder{palette: p}
}

// Add appends a point with the world up vector and returns it.
func (b *Builder) Add(position, forward math.Vec3) Point {
	return b.AddWithUp(position, forward, WorldUp)
}

// AddWithUp appends a point with an explicit up vector and returns it.
func (b *Builder) AddWithUp(position, forward, up math.Vec3) Point {
	p := Point{
		Position: position,
		Forward:  forward,
		Up:       up,
		Color:    b.palette[b.next],
	}
	b.next = (b.next + 1) % len(b.palette)
	b.points = append(b.points, p)
	return p
}

// Track returns the points added so far as a track.
func (b *Builder) Track() Track {
	points := make([]Point, len(b.points))
	copy(points, b.points)
	return Track{Points: points}
}

// Reset drops all points and restarts the color sequence.
func (b *Builder) Reset() {
	b.next = 0
	b.points = b.points[:0]
}
