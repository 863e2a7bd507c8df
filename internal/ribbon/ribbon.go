// Package ribbon turns a closed track into double-sided strip meshes, one
// per segment, by sampling a centerline curve and two laterally offset edge
// curves.
package ribbon

import (
	"errors"
	"fmt"
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/trackribbon/internal/engine/debug"
	"github.com/Faultbox/trackribbon/internal/engine/mesh"
	"github.com/Faultbox/trackribbon/internal/track"
	"github.com/Faultbox/trackribbon/pkg/bezier"
	"github.com/Faultbox/trackribbon/pkg/math"
)

const (
	// DefaultSamples is the per-segment curve resolution.
	DefaultSamples = 30
	// DefaultHalfWidth is the distance from centerline to either edge.
	DefaultHalfWidth = 1
)

// ErrInvalidHalfWidth is returned for a negative, NaN or infinite half width.
var ErrInvalidHalfWidth = errors.New("half width must be positive and finite")

// TrianglesPerStep is the number of triangles between two sample rows:
// two quads, each drawn as two triangles on the top and two on the bottom.
const TrianglesPerStep = 8

// Builder holds the settings used to build ribbon meshes.
// The zero value is usable and builds with the defaults.
type Builder struct {
	Samples   int
	HalfWidth float32

	// EdgeColor colors the left and right edge curves. Zero means white.
	EdgeColor math.Vec3

	// SkipDegenerate drops segments with an undefined lateral direction
	// instead of failing the whole build.
	SkipDegenerate bool

	// DebugLines adds left and right edge line meshes to Result.Meshes.
	DebugLines bool

	Logger *zap.Logger
}

// New returns a builder with default settings.
func New() *Builder {
	return &Builder{
		Samples:   DefaultSamples,
		HalfWidth: DefaultHalfWidth,
		EdgeColor: math.V3(1, 1, 1),
	}
}

func (b *Builder) samples() int {
	if b.Samples == 0 {
		return DefaultSamples
	}
	return b.Samples
}

func (b *Builder) halfWidth() float32 {
	if b.HalfWidth == 0 {
		return DefaultHalfWidth
	}
	return b.HalfWidth
}

// checkHalfWidth rejects widths that would flip or poison the edges. Zero
// is allowed and means DefaultHalfWidth.
func (b *Builder) checkHalfWidth() error {
	w := float64(b.HalfWidth)
	if !(w >= 0) || gomath.IsInf(w, 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidHalfWidth, b.HalfWidth)
	}
	return nil
}

func (b *Builder) edgeColor() math.Vec3 {
	if b.EdgeColor == math.Zero {
		return math.V3(1, 1, 1)
	}
	return b.EdgeColor
}

func (b *Builder) logger() *zap.Logger {
	if b.Logger == nil {
		return zap.NewNop()
	}
	return b.Logger
}

// Segment is the geometry generated between two consecutive track points.
type Segment struct {
	Index  int
	Left   bezier.Samples
	Center bezier.Samples
	Right  bezier.Samples
	Ribbon mesh.Mesh

	// Edges holds the open left and right edge line meshes when the
	// builder has DebugLines set.
	Edges []mesh.Mesh
}

// Lines returns line meshes for the left, center and right curves.
func (s Segment) Lines(closed bool) ([]mesh.Mesh, error) {
	out := make([]mesh.Mesh, 0, 3)
	for _, c := range []bezier.Samples{s.Left, s.Center, s.Right} {
		m, err := debug.LineMesh(c.Points, c.Colors, closed)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// Result is the output of Build.
type Result struct {
	Segments []Segment

	// Skipped lists the indices of degenerate segments left out.
	Skipped []int
}

// Meshes returns every ribbon mesh in segment order, each followed by its
// edge lines when they were built.
func (r *Result) Meshes() []mesh.Mesh {
	out := make([]mesh.Mesh, 0, len(r.Segments)*3)
	for _, s := range r.Segments {
		out = append(out, s.Ribbon)
		out = append(out, s.Edges...)
	}
	return out
}

// Bounds returns the box around every ribbon.
func (r *Result) Bounds() mesh.Bounds {
	if len(r.Segments) == 0 {
		return mesh.Bounds{}
	}
	b := r.Segments[0].Ribbon.Bounds()
	for _, s := range r.Segments[1:] {
		b = b.Union(s.Ribbon.Bounds())
	}
	return b
}

// Triangles returns the total triangle count over all ribbons.
func (r *Result) Triangles() int {
	var n int
	for _, s := range r.Segments {
		n += s.Ribbon.PrimitiveCount()
	}
	return n
}

// Build generates one segment per track point, each joining the point to
// its successor around the loop.
func (b *Builder) Build(t track.Track) (*Result, error) {
	if t.Len() < track.MinPoints {
		return nil, fmt.Errorf("%w: got %d", track.ErrEmptyTrack, t.Len())
	}
	if err := bezier.CheckSampleCount(b.samples()); err != nil {
		return nil, err
	}
	if err := b.checkHalfWidth(); err != nil {
		return nil, err
	}

	log := b.logger()
	res := &Result{Segments: make([]Segment, 0, t.Len())}

	for i := 0; i < t.Len(); i++ {
		cur, next := t.Segment(i)
		seg, err := b.BuildSegment(cur, next)
		if errors.Is(err, track.ErrDegenerateGeometry) && b.SkipDegenerate {
			log.Warn("skipping degenerate segment",
				zap.Int("segment", i),
				zap.Int("next", t.Successor(i)),
				zap.Error(err))
			res.Skipped = append(res.Skipped, i)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
		if b.DebugLines {
			if seg.Edges, err = edgeLines(seg); err != nil {
				return nil, fmt.Errorf("segment %d: %w", i, err)
			}
		}
		seg.Index = i
		res.Segments = append(res.Segments, seg)
	}

	log.Debug("ribbon built",
		zap.String("track", t.Name),
		zap.Int("segments", len(res.Segments)),
		zap.Int("skipped", len(res.Skipped)),
		zap.Int("triangles", res.Triangles()))

	return res, nil
}

func edgeLines(s Segment) ([]mesh.Mesh, error) {
	out := make([]mesh.Mesh, 0, 2)
	for _, c := range []bezier.Samples{s.Left, s.Right} {
		m, err := debug.LineMesh(c.Points, c.Colors, false)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// BuildSegment generates the curves and strip mesh between cur and next.
// Non-finite points fail with track.ErrNonFinite; a ribbon that overflows
// float32 fails with mesh.ErrInvalidMesh.
func (b *Builder) BuildSegment(cur, next track.Point) (Segment, error) {
	n := b.samples()
	if err := bezier.CheckSampleCount(n); err != nil {
		return Segment{}, err
	}
	if err := b.checkHalfWidth(); err != nil {
		return Segment{}, err
	}
	if err := cur.Check(); err != nil {
		return Segment{}, err
	}
	if err := next.Check(); err != nil {
		return Segment{}, err
	}

	clat, err := cur.Lateral()
	if err != nil {
		return Segment{}, err
	}
	nlat, err := next.Lateral()
	if err != nil {
		return Segment{}, err
	}
	w := b.halfWidth()
	coffset, noffset := clat.Scale(w), nlat.Scale(w)

	center := bezier.Curve{
		P0: cur.Position,
		P1: track.Control1(cur, next),
		P2: track.Control2(cur, next),
		P3: next.Position,
	}
	left := center.Offset(coffset.Negate(), noffset.Negate())
	right := center.Offset(coffset, noffset)

	edge := b.edgeColor()
	var seg Segment
	if seg.Center, err = center.Sample(cur.Color, next.Color, n); err != nil {
		return Segment{}, err
	}
	if seg.Left, err = left.Sample(edge, edge, n); err != nil {
		return Segment{}, err
	}
	if seg.Right, err = right.Sample(edge, edge, n); err != nil {
		return Segment{}, err
	}

	seg.Ribbon = Strip(seg.Left.Points, seg.Center.Points, seg.Right.Points, seg.Center.Colors)
	if err := seg.Ribbon.Validate(); err != nil {
		return Segment{}, err
	}
	return seg, nil
}

// Strip stitches three parallel point rows into a double-sided triangle
// mesh. Vertices are interleaved left, center, right per row and every
// vertex of row j takes colors[j]. All slices must have the same length.
func Strip(left, center, right, colors []math.Vec3) mesh.Mesh {
	n := len(center)
	steps := 0
	if n > 1 {
		steps = n - 1
	}

	m := mesh.New(mesh.Triangles, 3*n, 3*TrianglesPerStep*steps)
	for j := 0; j < n; j++ {
		c := colors[j]
		m.SetVertex(3*j, left[j], c)
		m.SetVertex(3*j+1, center[j], c)
		m.SetVertex(3*j+2, right[j], c)
	}

	k := 0
	for j := 1; j < n; j++ {
		bl := uint32(3 * (j - 1))
		bc, br := bl+1, bl+2
		fl := uint32(3 * j)
		fc, fr := fl+1, fl+2

		k += copy(m.Indices[k:], []uint32{
			// top
			bl, fl, fc,
			bl, fc, bc,
			bc, fc, fr,
			bc, fr, br,
			// bottom
			bl, fc, fl,
			bl, bc, fc,
			bc, fr, fc,
			bc, br, fr,
		})
	}
	return m
}
