package track

import (
	"errors"
	gomath "math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/Faultbox/trackribbon/pkg/math"
)

func TestBuilderColorRoundRobin(t *testing.T) {
	b := NewBuilder()
	var got []math.Vec3
	for i := 0; i < 4; i++ {
		got = append(got, b.Add(math.V3(float32(i), 0, 0), math.UnitZ).Color)
	}

	want := []math.Vec3{DefaultPalette[0], DefaultPalette[1], DefaultPalette[2], DefaultPalette[0]}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("colors (-want +got):\n%s", d)
	}
}

func TestBuildersDoNotShareCounter(t *testing.T) {
	a := NewBuilder()
	a.Add(math.Zero, math.UnitZ)
	a.Add(math.Zero, math.UnitZ)

	b := NewBuilder()
	if got := b.Add(math.Zero, math.UnitZ).Color; got != DefaultPalette[0] {
		t.Errorf("fresh builder color = %v, want %v", got, DefaultPalette[0])
	}
}

func TestBuilderReset(t *testing.T) {
	b := NewBuilder()
	b.Add(math.Zero, math.UnitZ)
	b.Add(math.UnitX, math.UnitZ)
	b.Reset()

	p := b.Add(math.UnitY, math.UnitZ)
	if p.Color != DefaultPalette[0] {
		t.Errorf("color after Reset = %v, want %v", p.Color, DefaultPalette[0])
	}
	if n := b.Track().Len(); n != 1 {
		t.Errorf("Len after Reset = %d, want 1", n)
	}
}

func TestBuilderPalette(t *testing.T) {
	gray := math.V3(0.5, 0.5, 0.5)
	b := NewBuilderWithPalette(Palette{gray})
	for i := 0; i < 3; i++ {
		if got := b.Add(math.Zero, math.UnitZ).Color; got != gray {
			t.Errorf("point %d color = %v, want %v", i, got, gray)
		}
	}

	empty := NewBuilderWithPalette(nil)
	if got := empty.Add(math.Zero, math.UnitZ).Color; got != math.V3(1, 1, 1) {
		t.Errorf("empty palette color = %v, want white", got)
	}
}

func TestBuilderTrackIsCopy(t *testing.T) {
	b := NewBuilder()
	b.Add(math.Zero, math.UnitZ)
	tr := b.Track()
	b.Reset()
	b.Add(math.UnitX, math.UnitZ)

	if tr.Points[0].Position != math.Zero {
		t.Errorf("track changed after builder reuse: %v", tr.Points[0].Position)
	}
}

func TestAddDefaultsUp(t *testing.T) {
	p := NewBuilder().Add(math.Zero, math.UnitZ)
	if p.Up != WorldUp {
		t.Errorf("Up = %v, want %v", p.Up, WorldUp)
	}
}

func TestControlPoints(t *testing.T) {
	b := NewBuilder()
	cur := b.Add(math.V3(0, 0, 0), math.V3(0, 0, 10))
	next := b.AddWithUp(math.V3(-10, 20, 20), math.V3(-10, 0, 0), math.V3(0, 1, -0.5))

	if got, want := Control1(cur, next), math.V3(0, 0, 10); got != want {
		t.Errorf("Control1 = %v, want %v", got, want)
	}
	if got, want := Control2(cur, next), math.V3(0, 20, 20); got != want {
		t.Errorf("Control2 = %v, want %v", got, want)
	}
}

func TestLateral(t *testing.T) {
	p := Point{Forward: math.V3(0, 0, 10), Up: math.UnitY}
	got, err := p.Lateral()
	if err != nil {
		t.Fatal(err)
	}
	if !got.ApproxEqual(math.V3(-1, 0, 0), 1e-6) {
		t.Errorf("Lateral = %v, want (-1,0,0)", got)
	}

	tilted := Point{Forward: math.V3(-10, 0, 0), Up: math.V3(0, 1, -0.5)}
	got, err = tilted.Lateral()
	if err != nil {
		t.Fatal(err)
	}
	if l := got.Length(); l < 0.9999 || l > 1.0001 {
		t.Errorf("|Lateral| = %v, want 1", l)
	}
	if d := got.Dot(tilted.Forward); d > 1e-5 || d < -1e-5 {
		t.Errorf("Lateral not perpendicular to forward: dot = %v", d)
	}
}

func TestLateralDegenerate(t *testing.T) {
	tests := []struct {
		name    string
		forward math.Vec3
		up      math.Vec3
	}{
		{"parallel", math.V3(0, 1, 0), math.V3(0, 1, 0)},
		{"antiparallel", math.V3(0, -5, 0), math.V3(0, 1, 0)},
		{"zero forward", math.Zero, math.UnitY},
		{"zero up", math.UnitZ, math.Zero},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Point{Forward: tt.forward, Up: tt.up}.Lateral()
			if !errors.Is(err, ErrDegenerateGeometry) {
				t.Errorf("err = %v, want ErrDegenerateGeometry", err)
			}
		})
	}
}

func TestLateralLargeForward(t *testing.T) {
	p := Point{Forward: math.V3(1e20, 0, 0), Up: math.UnitY}
	got, err := p.Lateral()
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(math.UnitZ, got, cmpopts.EquateApprox(0, 1e-6)); d != "" {
		t.Errorf("Lateral (-want +got):\n%s", d)
	}
}

func TestPointCheck(t *testing.T) {
	nan := float32(gomath.NaN())
	inf := float32(gomath.Inf(1))

	tests := []struct {
		name  string
		point Point
		field string
	}{
		{"nan position", Point{Position: math.V3(nan, 0, 0), Forward: math.UnitZ, Up: WorldUp}, "position"},
		{"inf forward", Point{Forward: math.V3(0, 0, inf), Up: WorldUp}, "forward"},
		{"nan up", Point{Forward: math.UnitZ, Up: math.V3(0, nan, 0)}, "up"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.point.Check()
			if !errors.Is(err, ErrNonFinite) {
				t.Fatalf("err = %v, want ErrNonFinite", err)
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error %q does not name %s", err, tt.field)
			}
		})
	}

	if err := (Point{Forward: math.UnitZ, Up: WorldUp}).Check(); err != nil {
		t.Errorf("finite point: %v", err)
	}
}

func TestValidateNonFinite(t *testing.T) {
	tr := TestTrack()
	tr.Points[4].Position.Y = float32(gomath.Inf(-1))
	err := tr.Validate()
	if !errors.Is(err, ErrNonFinite) || !strings.Contains(err.Error(), "point 4") {
		t.Errorf("err = %v, want ErrNonFinite at point 4", err)
	}
}

func TestSuccessorWraps(t *testing.T) {
	tr := TestTrack()
	if got := tr.Successor(0); got != 1 {
		t.Errorf("Successor(0) = %d, want 1", got)
	}
	if got := tr.Successor(tr.Len() - 1); got != 0 {
		t.Errorf("Successor(last) = %d, want 0", got)
	}

	cur, next := tr.Segment(tr.Len() - 1)
	if cur != tr.Points[tr.Len()-1] || next != tr.Points[0] {
		t.Error("last segment should close the loop")
	}
}

func TestValidate(t *testing.T) {
	if err := TestTrack().Validate(); err != nil {
		t.Errorf("TestTrack().Validate() = %v", err)
	}

	b := NewBuilder()
	b.Add(math.Zero, math.UnitZ)
	if err := b.Track().Validate(); !errors.Is(err, ErrEmptyTrack) {
		t.Errorf("one point: err = %v, want ErrEmptyTrack", err)
	}
	if err := (Track{}).Validate(); !errors.Is(err, ErrEmptyTrack) {
		t.Errorf("no points: err = %v, want ErrEmptyTrack", err)
	}

	b.Add(math.UnitX, math.UnitZ)
	b.Add(math.UnitY, math.UnitY)
	err := b.Track().Validate()
	if !errors.Is(err, ErrDegenerateGeometry) {
		t.Fatalf("err = %v, want ErrDegenerateGeometry", err)
	}
	if !strings.Contains(err.Error(), "point 2") {
		t.Errorf("error should name the point: %v", err)
	}
}

func TestTestTrack(t *testing.T) {
	tr := TestTrack()
	if tr.Len() != 9 {
		t.Fatalf("Len = %d, want 9", tr.Len())
	}
	for i, p := range tr.Points {
		if want := DefaultPalette[i%len(DefaultPalette)]; p.Color != want {
			t.Errorf("point %d color = %v, want %v", i, p.Color, want)
		}
	}
	if got := tr.Points[6].Up; got != WorldUp {
		t.Errorf("point 6 up = %v, want world up", got)
	}
}

const twoPointYAML = `
name: two point loop
points:
  - position: [0, 0, 0]
    forward: [0, 0, 10]
  - position: [-10, 20, 20]
    forward: [-10, 0, 0]
    up: [0, 1, -0.5]
`

func TestParse(t *testing.T) {
	tr, err := Parse([]byte(twoPointYAML))
	if err != nil {
		t.Fatal(err)
	}

	b := NewBuilder()
	b.Add(math.V3(0, 0, 0), math.V3(0, 0, 10))
	b.AddWithUp(math.V3(-10, 20, 20), math.V3(-10, 0, 0), math.V3(0, 1, -0.5))
	want := b.Track()
	want.Name = "two point loop"

	if d := cmp.Diff(want, tr); d != "" {
		t.Errorf("Parse (-want +got):\n%s", d)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"short vector", "points:\n  - position: [0, 0]\n    forward: [0, 0, 1]\n"},
		{"not yaml", "points: [\n"},
		{"wrong type", "points:\n  - position: [a, b, c]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.yaml)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestParseRejectsNonFinite(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"nan position", "points:\n  - position: [.nan, 0, 0]\n    forward: [0, 0, 10]\n  - position: [-10, 20, 20]\n    forward: [-10, 0, 0]\n", "point 0"},
		{"inf forward", "points:\n  - position: [0, 0, 0]\n    forward: [0, 0, 10]\n  - position: [-10, 20, 20]\n    forward: [-.inf, 0, 0]\n", "point 1"},
		{"nan up", "points:\n  - position: [0, 0, 0]\n    forward: [0, 0, 10]\n    up: [0, .NaN, 0]\n", "point 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if !errors.Is(err, ErrNonFinite) {
				t.Fatalf("err = %v, want ErrNonFinite", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not name %s", err, tt.want)
			}
		})
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	want := TestTrack()
	data, err := want.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	got, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse(Marshal()): %v\n%s", err, data)
	}
	if d := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-6)); d != "" {
		t.Errorf("round trip (-want +got):\n%s", d)
	}
	if strings.Count(string(data), "up:") != 5 {
		t.Errorf("expected 5 explicit up vectors in:\n%s", data)
	}
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loop.yaml")
	if err := os.WriteFile(path, []byte(twoPointYAML), 0644); err != nil {
		t.Fatal(err)
	}
	tr, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if tr.Len() != 2 || tr.Name != "two point loop" {
		t.Errorf("Load: %d points, name %q", tr.Len(), tr.Name)
	}

	out := filepath.Join(t.TempDir(), "saved.yaml")
	if err := tr.Save(out); err != nil {
		t.Fatal(err)
	}
	again, err := Load(out)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(tr, again); d != "" {
		t.Errorf("Save/Load (-want +got):\n%s", d)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file err = %v", err)
	}
}
