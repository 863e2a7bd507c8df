package math

import (
	"math"
	"testing"
)

func TestVec3Cross(t *testing.T) {
	got := UnitX.Cross(UnitY)
	if got != UnitZ {
		t.Errorf("Vec3.Cross() = %v, want %v", got, UnitZ)
	}
}

func TestVec3CrossParallel(t *testing.T) {
	got := Vec3{0, 3, 0}.Cross(UnitY)
	if got != Zero {
		t.Errorf("parallel cross = %v, want zero", got)
	}
}

func TestVec3Normalize(t *testing.T) {
	n := Vec3{3, 0, 4}.Normalize()
	if l := n.Length(); l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}
	if got := Zero.Normalize(); got != Zero {
		t.Errorf("zero normalize = %v, want zero", got)
	}
}

func TestVec3Lerp(t *testing.T) {
	a := Vec3{0, 0, 0}
	b := Vec3{10, 20, 30}

	tests := []struct {
		t    float32
		want Vec3
	}{
		{0, a},
		{1, b},
		{0.5, Vec3{5, 10, 15}},
		{2, Vec3{20, 40, 60}},
	}
	for _, tt := range tests {
		if got := a.Lerp(b, tt.t); !got.ApproxEqual(tt.want, 1e-5) {
			t.Errorf("Lerp(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestVec3ScaleAdd(t *testing.T) {
	got := Vec3{1, 1, 1}.ScaleAdd(UnitZ, -16)
	want := Vec3{1, 1, -15}
	if got != want {
		t.Errorf("ScaleAdd() = %v, want %v", got, want)
	}
}

func TestVec3IsFinite(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))

	if !(Vec3{1, 2, 3}).IsFinite() {
		t.Error("finite vector reported as non-finite")
	}
	if (Vec3{nan, 0, 0}).IsFinite() {
		t.Error("NaN vector reported as finite")
	}
	if (Vec3{0, 0, inf}).IsFinite() {
		t.Error("Inf vector reported as finite")
	}
}

func TestVec3LengthLargeComponents(t *testing.T) {
	v := Vec3{0, 0, 1e20}
	if got := v.Length(); got != 1e20 {
		t.Errorf("Length = %v, want 1e20", got)
	}
	if got := v.Normalize(); got != (Vec3{0, 0, 1}) {
		t.Errorf("Normalize = %v, want unit Z", got)
	}
}

func TestVec3MinMax(t *testing.T) {
	a := Vec3{1, -2, 3}
	b := Vec3{-1, 2, 0}
	if got, want := a.Min(b), (Vec3{-1, -2, 0}); got != want {
		t.Errorf("Min() = %v, want %v", got, want)
	}
	if got, want := a.Max(b), (Vec3{1, 2, 3}); got != want {
		t.Errorf("Max() = %v, want %v", got, want)
	}
}
