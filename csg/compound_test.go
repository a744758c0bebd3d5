package csg

import (
	"testing"

	"github.com/elastician/csgtracer/vmath"
)

func TestCompoundHitReturnsNearest(t *testing.T) {
	near := NewSphere(vmath.V3{X: 5}, 1)
	far := NewSphere(vmath.V3{X: 10}, 1)
	c := NewCompound(far, near)

	ray := vmath.Ray{Origin: vmath.V3{}, Direction: vmath.V3{X: 1}}
	hit, ok := c.Hit(ray, 0)
	if !ok {
		t.Fatal("expected a hit")
	}
	if hit.Object != near {
		t.Errorf("expected nearest sphere to win, got %#v", hit.Object)
	}
}

func TestCompoundInFovIndicesExcludesOutOfView(t *testing.T) {
	inView := NewSphere(vmath.V3{X: 10}, 1)
	behind := NewSphere(vmath.V3{X: -10}, 1)
	c := NewCompound(inView, behind)

	cone := vmath.RayCone{Apex: vmath.V3{}, Axis: vmath.V3{X: 1}, CosHalfAngle: 0.99}
	idx := c.InFovIndices(cone)
	if len(idx) != 1 || c.Objects[idx[0]] != inView {
		t.Errorf("InFovIndices = %v, expected only the in-view sphere's index", idx)
	}
}

func TestCompoundEmptyMisses(t *testing.T) {
	c := NewCompound()
	ray := vmath.Ray{Origin: vmath.V3{}, Direction: vmath.V3{X: 1}}
	if _, ok := c.Hit(ray, 0); ok {
		t.Error("expected empty compound to never hit")
	}
}

// countingSphere wraps Sphere to record how many times RayHit is
// actually invoked on it, so a test can confirm a coarse envelope
// cull short-circuits before ever reaching a child's exact geometry
// test.
type countingSphere struct {
	*Sphere
	rayHits *int
}

func (c countingSphere) RayHit(ray vmath.Ray, tMin float64) (float64, bool) {
	*c.rayHits++
	return c.Sphere.RayHit(ray, tMin)
}

func TestCompoundEnvelopeCullsChildRayHitCalls(t *testing.T) {
	var calls int
	child := countingSphere{Sphere: NewSphere(vmath.V3{X: 100}, 1), rayHits: &calls}
	c := NewCompound(child)
	c.Envelope = &Envelope{Center: vmath.V3{X: 100}, Radius: 2}

	// A ray aimed nowhere near the envelope should never reach the
	// child's RayHit at all.
	ray := vmath.Ray{Origin: vmath.V3{}, Direction: vmath.V3{Y: 1}}
	if _, ok := c.Hit(ray, 0); ok {
		t.Fatal("expected the envelope to cull this ray entirely")
	}
	if calls != 0 {
		t.Fatalf("child RayHit was called %d times, want 0 (envelope should have culled it)", calls)
	}

	// A ray toward the envelope does reach the child.
	ray = vmath.Ray{Origin: vmath.V3{}, Direction: vmath.V3{X: 1}}
	if _, ok := c.Hit(ray, 0); !ok {
		t.Fatal("expected a hit once the ray is aimed at the envelope")
	}
	if calls != 1 {
		t.Fatalf("child RayHit was called %d times, want 1", calls)
	}
}
