package csg

import (
	"testing"

	"github.com/elastician/csgtracer/vmath"
)

func TestEnvelopeRayHitsCullsFarRay(t *testing.T) {
	e := &Envelope{Center: vmath.V3{}, Radius: 1}
	missRay := vmath.Ray{Origin: vmath.V3{Y: 10}, Direction: vmath.V3{X: 1}}
	if e.RayHits(missRay, 0) {
		t.Error("expected a ray well outside the envelope to miss")
	}
	hitRay := vmath.Ray{Origin: vmath.V3{X: -5}, Direction: vmath.V3{X: 1}}
	if !e.RayHits(hitRay, 0) {
		t.Error("expected a ray through the envelope to hit")
	}
}

func TestEnvelopeIsInFovApexInside(t *testing.T) {
	e := &Envelope{Center: vmath.V3{}, Radius: 1}
	cone := vmath.RayCone{Apex: vmath.V3{}, Axis: vmath.V3{Z: 1}, CosHalfAngle: 0.999}
	if !e.IsInFov(cone) {
		t.Error("apex inside the envelope must always be in fov")
	}
}

func TestEnvelopeIsInFovNarrowConeMisses(t *testing.T) {
	e := &Envelope{Center: vmath.V3{X: 100}, Radius: 1}
	cone := vmath.RayCone{Apex: vmath.V3{}, Axis: vmath.V3{Z: 1}, CosHalfAngle: 0.9999}
	if e.IsInFov(cone) {
		t.Error("a narrow cone pointing away from the envelope should not see it")
	}
}

func TestAutoEnvelopeFuncBoundsASphere(t *testing.T) {
	s := NewSphere(vmath.V3{X: 1, Y: 1, Z: 1}, 2)
	env := AutoEnvelopeFunc(vmath.V3{X: 1, Y: 1, Z: 1}, 400, 7, 1.05, func(r vmath.Ray) (float64, bool) {
		return s.RayHit(r, 0)
	})
	if env.Radius < 1.8 || env.Radius > 2.5 {
		t.Errorf("estimated radius %v far from true radius 2", env.Radius)
	}
	if d := env.Center.Sub(s.Center).Length(); d > 0.5 {
		t.Errorf("estimated center %v far from true center %v", env.Center, s.Center)
	}
}
