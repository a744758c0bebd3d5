package csg

import (
	"math"
	"testing"

	"github.com/elastician/csgtracer/vmath"
)

func TestScaleNonUniformStretchesSphereIntoEllipsoid(t *testing.T) {
	s := NewSphere(vmath.V3{}, 1)
	e := NewScaleNonUniform(s, vmath.V3{X: 2, Y: 1, Z: 1})

	ray := vmath.Ray{Origin: vmath.V3{X: -5}, Direction: vmath.V3{X: 1}}
	tHit, ok := e.RayHit(ray, 0)
	if !ok {
		t.Fatal("expected a hit along the stretched x-axis")
	}
	if math.Abs(tHit-3) > 1e-9 {
		t.Errorf("t = %v, want 3 (hit at x=-2, twice the unit sphere's radius)", tHit)
	}

	// Along an unscaled axis the surface stays at the original radius.
	rayY := vmath.Ray{Origin: vmath.V3{Y: -5}, Direction: vmath.V3{Y: 1}}
	tHitY, ok := e.RayHit(rayY, 0)
	if !ok {
		t.Fatal("expected a hit along y")
	}
	if math.Abs(tHitY-4) > 1e-9 {
		t.Errorf("t = %v, want 4 (hit at y=-1, unchanged radius)", tHitY)
	}
}

func TestScaleNonUniformSide(t *testing.T) {
	s := NewSphere(vmath.V3{}, 1)
	e := NewScaleNonUniform(s, vmath.V3{X: 2, Y: 1, Z: 1})

	if e.Side(vmath.V3{X: 1.5}) != Inside {
		t.Errorf("expected a point within the stretched ellipsoid to be inside")
	}
	if e.Side(vmath.V3{X: 2.5}) != Outside {
		t.Errorf("expected a point beyond the stretched ellipsoid to be outside")
	}
}

func TestScaleNonUniformMoveIsNoOpOnChild(t *testing.T) {
	s := NewSphere(vmath.V3{}, 1)
	e := NewScaleNonUniform(s, vmath.V3{X: 2, Y: 1, Z: 1})
	e.Move(vmath.V3{X: 10})
	if s.Center != (vmath.V3{}) {
		t.Errorf("Move must not reposition the wrapped child, got center %v", s.Center)
	}
}
