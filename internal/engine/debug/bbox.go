package debug

import (
	"github.com/Faultbox/trackribbon/internal/engine/mesh"
	"github.com/Faultbox/trackribbon/pkg/math"
)

// BBoxEdgeCount is the number of edges in a box wireframe.
const BBoxEdgeCount = 12

// DefaultBBoxPadding is the default padding around the track bounds.
const DefaultBBoxPadding = 1.0

// bboxEdges lists corner index pairs. Corner bit 0 selects max X,
// bit 1 max Y, bit 2 max Z.
var bboxEdges = [BBoxEdgeCount][2]uint32{
	// Bottom face
	{0, 1}, {1, 5}, {5, 4}, {4, 0},
	// Top face
	{2, 3}, {3, 7}, {7, 6}, {6, 2},
	// Vertical edges
	{0, 2}, {1, 3}, {5, 7}, {4, 6},
}

// BBoxMesh builds a line-list wireframe around b, expanded by padding on
// every side. All 8 corners share one color.
func BBoxMesh(b mesh.Bounds, padding float32, color math.Vec3) mesh.Mesh {
	pad := math.Vec3{X: padding, Y: padding, Z: padding}
	lo := b.Min.Sub(pad)
	hi := b.Max.Add(pad)

	m := mesh.New(mesh.Lines, 8, 2*BBoxEdgeCount)
	for i := 0; i < 8; i++ {
		c := lo
		if i&1 != 0 {
			c.X = hi.X
		}
		if i&2 != 0 {
			c.Y = hi.Y
		}
		if i&4 != 0 {
			c.Z = hi.Z
		}
		m.SetVertex(i, c, color)
	}
	for e, edge := range bboxEdges {
		m.Indices[2*e] = edge[0]
		m.Indices[2*e+1] = edge[1]
	}
	return m
}
