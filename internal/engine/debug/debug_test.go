package debug

import (
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/Faultbox/trackribbon/internal/engine/mesh"
	"github.com/Faultbox/trackribbon/pkg/math"
)

func linePoints(n int) ([]math.Vec3, []math.Vec3) {
	points := make([]math.Vec3, n)
	colors := make([]math.Vec3, n)
	for i := range points {
		points[i] = math.Vec3{X: float32(i)}
		colors[i] = math.Vec3{X: 1, Y: 1, Z: 1}
	}
	return points, colors
}

func TestLineMeshOpen(t *testing.T) {
	points, colors := linePoints(4)
	m, err := LineMesh(points, colors, false)
	if err != nil {
		t.Fatal(err)
	}
	if m.Mode != mesh.Lines {
		t.Errorf("Mode = %v, want lines", m.Mode)
	}
	if m.VertexCount() != 4 {
		t.Errorf("VertexCount = %d, want 4", m.VertexCount())
	}
	if d := cmp.Diff([]uint32{0, 1, 1, 2, 2, 3}, m.Indices); d != "" {
		t.Error(d)
	}
}

func TestLineMeshClosed(t *testing.T) {
	points, colors := linePoints(4)
	m, err := LineMesh(points, colors, true)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]uint32{0, 1, 1, 2, 2, 3, 3, 0}, m.Indices); d != "" {
		t.Error(d)
	}
	if m.PrimitiveCount() != 4 {
		t.Errorf("PrimitiveCount = %d, want 4", m.PrimitiveCount())
	}
	if err := m.Validate(); err != nil {
		t.Error(err)
	}
}

func TestLineMeshSmall(t *testing.T) {
	tests := []struct {
		n      int
		closed bool
		pairs  int
	}{
		{0, false, 0},
		{0, true, 0},
		{1, false, 0},
		{1, true, 1},
		{2, false, 1},
		{2, true, 2},
	}
	for _, tt := range tests {
		points, colors := linePoints(tt.n)
		m, err := LineMesh(points, colors, tt.closed)
		if err != nil {
			t.Fatalf("n=%d closed=%v: %v", tt.n, tt.closed, err)
		}
		if m.PrimitiveCount() != tt.pairs {
			t.Errorf("n=%d closed=%v: %d pairs, want %d", tt.n, tt.closed, m.PrimitiveCount(), tt.pairs)
		}
	}
}

func TestLineMeshMismatch(t *testing.T) {
	points, colors := linePoints(3)
	_, err := LineMesh(points, colors[:2], true)
	if !errors.Is(err, ErrMismatchedColors) {
		t.Errorf("err = %v, want ErrMismatchedColors", err)
	}
}

func TestBBoxMesh(t *testing.T) {
	b := mesh.Bounds{Min: math.Vec3{X: -1, Y: -2, Z: -3}, Max: math.Vec3{X: 1, Y: 2, Z: 3}}
	m := BBoxMesh(b, DefaultBBoxPadding, math.Vec3{Y: 1})

	if m.VertexCount() != 8 {
		t.Fatalf("VertexCount = %d, want 8", m.VertexCount())
	}
	if m.PrimitiveCount() != BBoxEdgeCount {
		t.Errorf("PrimitiveCount = %d, want %d", m.PrimitiveCount(), BBoxEdgeCount)
	}
	want := mesh.Bounds{Min: math.Vec3{X: -2, Y: -3, Z: -4}, Max: math.Vec3{X: 2, Y: 3, Z: 4}}
	if got := m.Bounds(); got != want {
		t.Errorf("Bounds = %v, want %v", got, want)
	}

	// every edge is axis aligned: exactly one coordinate differs
	for e := 0; e < BBoxEdgeCount; e++ {
		a := m.Position(int(m.Indices[2*e]))
		c := m.Position(int(m.Indices[2*e+1]))
		differ := 0
		if a.X != c.X {
			differ++
		}
		if a.Y != c.Y {
			differ++
		}
		if a.Z != c.Z {
			differ++
		}
		if differ != 1 {
			t.Errorf("edge %d from %v to %v is not axis aligned", e, a, c)
		}
	}
}

func TestScreenshotsSavePixels(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	s := NewScreenshots(dir, "track")
	s.now = func() time.Time { return time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC) }

	// 2x2: bottom row red, top row blue (OpenGL order)
	pixels := []byte{
		255, 0, 0, 255, 255, 0, 0, 255,
		0, 0, 255, 255, 0, 0, 255, 255,
	}
	path, err := s.SavePixels(pixels, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "track_2024-05-01_12-30-00.png"); path != want {
		t.Errorf("path = %s, want %s", path, want)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	r, _, b, _ := img.At(0, 0).RGBA()
	if r != 0 || b == 0 {
		t.Errorf("top-left pixel should be blue after flip, got r=%d b=%d", r, b)
	}
}

func TestScreenshotsSizeMismatch(t *testing.T) {
	s := NewScreenshots(t.TempDir(), "x")
	if _, err := s.SavePixels(make([]byte, 3), 1, 1); err == nil {
		t.Error("expected size mismatch error")
	}
}
