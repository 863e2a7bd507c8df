// Package debug provides debug visualization meshes and screenshot capture.
package debug

import (
	"errors"
	"fmt"

	"github.com/Faultbox/trackribbon/internal/engine/mesh"
	"github.com/Faultbox/trackribbon/pkg/math"
)

// ErrMismatchedColors is returned when points and colors differ in length.
var ErrMismatchedColors = errors.New("points and colors differ in length")

// LineMesh builds a line-list mesh through points, one vertex and one color
// per point. Consecutive points are joined; closed also joins the last point
// back to the first.
func LineMesh(points, colors []math.Vec3, closed bool) (mesh.Mesh, error) {
	n := len(points)
	if len(colors) != n {
		return mesh.Mesh{}, fmt.Errorf("%w: %d points, %d colors", ErrMismatchedColors, n, len(colors))
	}

	pairs := n - 1
	if closed {
		pairs = n
	}
	if pairs < 0 {
		pairs = 0
	}

	m := mesh.New(mesh.Lines, n, 2*pairs)
	for i := range points {
		m.SetVertex(i, points[i], colors[i])
	}
	for i := 0; i < pairs; i++ {
		m.Indices[2*i] = uint32(i)
		m.Indices[2*i+1] = uint32((i + 1) % n)
	}
	return m, nil
}
