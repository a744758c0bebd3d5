package vmath

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func approxOpt() cmp.Option {
	return cmpopts.EquateApprox(0, 1e-9)
}

func TestV3Reflection(t *testing.T) {
	// A ray straight down onto a flat upward normal reflects straight up.
	d := V3{0, 0, -1}
	n := V3{0, 0, 1}
	got := d.Reflection(n)
	want := V3{0, 0, 1}
	if diff := cmp.Diff(want, got, approxOpt()); diff != "" {
		t.Errorf("Reflection mismatch (-want +got):\n%s", diff)
	}
}

func TestV3ReflectionIsSelfInverseUnderDoubleApplication(t *testing.T) {
	// reflect(reflect(d, n), n) = d for any unit d, n with d.n < 0
	// (the incoming ray actually strikes the front face).
	d := V3{X: 0.6, Y: 0, Z: -0.8}
	n := V3{X: 0, Y: 0, Z: 1}
	once := d.Reflection(n)
	twice := once.Reflection(n)
	if diff := cmp.Diff(d, twice, approxOpt()); diff != "" {
		t.Errorf("double reflection mismatch (-want +got):\n%s", diff)
	}
}

func TestV3Normalize(t *testing.T) {
	v := V3{3, 4, 0}
	got := v.Normalize()
	if math.Abs(got.Length()-1) > 1e-9 {
		t.Errorf("Normalize length = %v, want 1", got.Length())
	}
	want := V3{0.6, 0.8, 0}
	if diff := cmp.Diff(want, got, approxOpt()); diff != "" {
		t.Errorf("Normalize mismatch (-want +got):\n%s", diff)
	}
}

func TestOrthonormalFromViewTop(t *testing.T) {
	frame := OrthonormalFromViewTop(V3{0, 0, 1}, V3{0, 1, 0})
	for i, r := range frame.Rows {
		if math.Abs(r.Length()-1) > 1e-9 {
			t.Errorf("row %d not unit length: %v", i, r.Length())
		}
	}
	if dot := frame.Rows[0].Dot(frame.Rows[1]); math.Abs(dot) > 1e-9 {
		t.Errorf("right,up not orthogonal: dot=%v", dot)
	}
	if dot := frame.Rows[1].Dot(frame.Rows[2]); math.Abs(dot) > 1e-9 {
		t.Errorf("up,forward not orthogonal: dot=%v", dot)
	}
}

func TestColorSat(t *testing.T) {
	c := Color{1.5, -0.2, 0.25}
	got := c.Sat(1.0)
	want := Color{1, 0, 0.25}
	if diff := cmp.Diff(want, got, approxOpt()); diff != "" {
		t.Errorf("Sat mismatch (-want +got):\n%s", diff)
	}
}

func TestRNGDeterministic(t *testing.T) {
	seed := SeedFromPoint(V3{1, 2, 3})
	a := NewRNG(seed)
	b := NewRNG(seed)
	for i := 0; i < 10; i++ {
		if a.Float0() != b.Float0() {
			t.Fatalf("same seed produced divergent sequences at step %d", i)
		}
	}
}

func TestRandomSphereCapWithinBounds(t *testing.T) {
	r := NewRNG(42)
	axis := V3{0, 0, 1}
	cosHalf := 0.5
	for i := 0; i < 200; i++ {
		d := r.RandomSphereCap(axis, cosHalf)
		if math.Abs(d.Length()-1) > 1e-6 {
			t.Fatalf("sample %d not unit length: %v", i, d.Length())
		}
		if d.Dot(axis) < cosHalf-1e-9 {
			t.Fatalf("sample %d outside cap: cos=%v want>=%v", i, d.Dot(axis), cosHalf)
		}
	}
}

func TestRotZPreservesLength(t *testing.T) {
	m := RotZ(math.Pi / 3)
	v := V3{1, 0, 0}
	got := m.MulV(v)
	if math.Abs(got.Length()-1) > 1e-9 {
		t.Errorf("rotation changed length: %v", got.Length())
	}
}
