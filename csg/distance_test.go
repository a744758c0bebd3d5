package csg

import (
	"math"
	"testing"

	"github.com/elastician/csgtracer/vmath"
)

func TestDistanceSphereAgreesWithClosedForm(t *testing.T) {
	center := vmath.V3{}
	radius := 1.5
	d := NewDistance(func(p vmath.V3) float64 {
		return p.Sub(center).Length() - radius
	})
	d.Envelope = &Envelope{Center: center, Radius: radius + 1e-3}

	s := NewSphere(center, radius)

	ray := vmath.Ray{Origin: vmath.V3{X: -5}, Direction: vmath.V3{X: 1}}
	dt, ok1 := d.RayHit(ray, 0)
	st, ok2 := s.RayHit(ray, 0)
	if !ok1 || !ok2 {
		t.Fatalf("expected both to hit: distance=%v sphere=%v", ok1, ok2)
	}
	if math.Abs(dt-st) > 1e-3 {
		t.Errorf("sphere-traced t = %v, closed-form t = %v", dt, st)
	}
}

func TestTorusHasHoleAlongAxis(t *testing.T) {
	torus := NewTorus(vmath.V3{}, 2, 0.5)
	// Straight down the z axis through the donut hole should miss.
	ray := vmath.Ray{Origin: vmath.V3{Z: -10}, Direction: vmath.V3{Z: 1}}
	if _, ok := torus.RayHit(ray, 0); ok {
		t.Error("expected ray through the torus hole to miss")
	}
}

func TestTorusHitsThroughTube(t *testing.T) {
	torus := NewTorus(vmath.V3{}, 2, 0.5)
	// A ray through x=2 (the tube's center circle) along z should hit.
	ray := vmath.Ray{Origin: vmath.V3{X: 2, Z: -10}, Direction: vmath.V3{Z: 1}}
	if _, ok := torus.RayHit(ray, 0); !ok {
		t.Error("expected ray through the torus tube to hit")
	}
}
