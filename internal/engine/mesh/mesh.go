// Package mesh holds CPU-side indexed meshes ready for GPU upload.
package mesh

import (
	"errors"
	"fmt"

	"github.com/Faultbox/trackribbon/pkg/math"
)

// Mode selects how indices are assembled into primitives.
type Mode int

const (
	// Triangles draws every three indices as one triangle.
	Triangles Mode = iota
	// Lines draws every two indices as one line segment.
	Lines
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Triangles:
		return "triangles"
	case Lines:
		return "lines"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// IndicesPerPrimitive returns 3 for triangles and 2 for lines.
func (m Mode) IndicesPerPrimitive() int {
	if m == Lines {
		return 2
	}
	return 3
}

// ErrInvalidMesh is returned by Validate.
var ErrInvalidMesh = errors.New("invalid mesh")

// Mesh is a flat vertex/color/index triple.
// Positions and Colors hold three floats per vertex.
type Mesh struct {
	Positions []float32
	Colors    []float32
	Indices   []uint32
	Mode      Mode
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Center returns the middle of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Union returns the smallest box holding both.
func (b Bounds) Union(other Bounds) Bounds {
	return Bounds{Min: b.Min.Min(other.Min), Max: b.Max.Max(other.Max)}
}

// New allocates a mesh for vertexCount vertices and indexCount indices.
// Vertices are filled with SetVertex; Indices are filled by the caller.
func New(mode Mode, vertexCount, indexCount int) Mesh {
	return Mesh{
		Positions: make([]float32, 3*vertexCount),
		Colors:    make([]float32, 3*vertexCount),
		Indices:   make([]uint32, indexCount),
		Mode:      mode,
	}
}

// SetVertex writes position and color of vertex i.
func (m *Mesh) SetVertex(i int, position, color math.Vec3) {
	o := 3 * i
	m.Positions[o], m.Positions[o+1], m.Positions[o+2] = position.X, position.Y, position.Z
	m.Colors[o], m.Colors[o+1], m.Colors[o+2] = color.X, color.Y, color.Z
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// PrimitiveCount returns the number of triangles or line segments.
func (m *Mesh) PrimitiveCount() int {
	return len(m.Indices) / m.Mode.IndicesPerPrimitive()
}

// Position returns vertex i.
func (m *Mesh) Position(i int) math.Vec3 {
	o := 3 * i
	return math.Vec3{X: m.Positions[o], Y: m.Positions[o+1], Z: m.Positions[o+2]}
}

// Color returns the color of vertex i.
func (m *Mesh) Color(i int) math.Vec3 {
	o := 3 * i
	return math.Vec3{X: m.Colors[o], Y: m.Colors[o+1], Z: m.Colors[o+2]}
}

// Bounds returns the box around all vertices. An empty mesh has zero bounds.
func (m *Mesh) Bounds() Bounds {
	n := m.VertexCount()
	if n == 0 {
		return Bounds{}
	}
	b := Bounds{Min: m.Position(0), Max: m.Position(0)}
	for i := 1; i < n; i++ {
		p := m.Position(i)
		b.Min = b.Min.Min(p)
		b.Max = b.Max.Max(p)
	}
	return b
}

// Validate checks buffer shapes, index range and that every position and
// color is finite.
func (m *Mesh) Validate() error {
	if len(m.Positions)%3 != 0 {
		return fmt.Errorf("%w: %d position floats is not a multiple of 3", ErrInvalidMesh, len(m.Positions))
	}
	if len(m.Colors) != len(m.Positions) {
		return fmt.Errorf("%w: %d color floats for %d position floats", ErrInvalidMesh, len(m.Colors), len(m.Positions))
	}
	if per := m.Mode.IndicesPerPrimitive(); len(m.Indices)%per != 0 {
		return fmt.Errorf("%w: %d indices is not a multiple of %d for %s", ErrInvalidMesh, len(m.Indices), per, m.Mode)
	}

	n := m.VertexCount()
	for i, idx := range m.Indices {
		if int(idx) >= n {
			return fmt.Errorf("%w: index %d at %d out of range for %d vertices", ErrInvalidMesh, idx, i, n)
		}
	}
	for i := 0; i < n; i++ {
		if p := m.Position(i); !p.IsFinite() {
			return fmt.Errorf("%w: vertex %d position %v", ErrInvalidMesh, i, p)
		}
		if c := m.Color(i); !c.IsFinite() {
			return fmt.Errorf("%w: vertex %d color %v", ErrInvalidMesh, i, c)
		}
	}
	return nil
}
