package csg

import (
	"math"

	"github.com/elastician/csgtracer/vmath"
)

// Envelope is a bounding sphere used to cheaply cull ray/object and
// field-of-view tests before falling through to an object's exact
// (and usually more expensive) geometry test. Grounded on
// original_source/src/objects.c's envelope_s.
type Envelope struct {
	Center vmath.V3
	Radius float64
}

// RayHits reports whether ray passes within Radius of Center at some
// t >= tMin — i.e. whether the exact object test is even worth
// running. Grounded on envelope_s_ray_hits.
func (e *Envelope) RayHits(ray vmath.Ray, tMin float64) bool {
	oc := ray.Origin.Sub(e.Center)
	dl2 := ray.Direction.SqLength()
	if dl2 < vmath.Epsilon {
		return oc.Length() <= e.Radius
	}
	b := oc.Dot(ray.Direction)
	c := oc.SqLength() - e.Radius*e.Radius
	disc := b*b - dl2*c
	if disc < 0 {
		return false
	}
	sq := math.Sqrt(disc)
	t1 := (-b + sq) / dl2
	return t1 >= tMin
}

// IsInFov reports whether the envelope intersects cone, via the
// closed-form angular comparison: the half-angle subtended by the
// envelope as seen from the cone's apex must overlap the cone's own
// half-angle around its axis. Grounded on envelope_s_is_in_fov.
func (e *Envelope) IsInFov(cone vmath.RayCone) bool {
	toCenter := e.Center.Sub(cone.Apex)
	dist := toCenter.Length()
	if dist < vmath.Epsilon {
		return true // apex inside envelope
	}
	if dist <= e.Radius {
		return true
	}
	cosToCenter := toCenter.Dot(cone.Axis) / dist
	cosToCenter = vmath.Clamp(cosToCenter, -1, 1)
	angleToCenter := math.Acos(cosToCenter)
	angleEnvelope := math.Asin(vmath.Clamp(e.Radius/dist, -1, 1))
	angleCone := math.Acos(vmath.Clamp(cone.CosHalfAngle, -1, 1))
	return angleToCenter-angleEnvelope < angleCone
}

// IsReachable is the test used to prune shadow-ray candidate lists:
// it rejects an envelope whose nearest point lies farther than maxDist
// from the cone's apex, and otherwise returns the result of the
// angular comparison IsInFov performs.
// Grounded on objects.c's obj_is_reachable / envelope half-sphere
// intersection test.
func (e *Envelope) IsReachable(cone vmath.RayCone, maxDist float64) bool {
	toCenter := e.Center.Sub(cone.Apex)
	dist := toCenter.Length()
	if dist-e.Radius > maxDist {
		return false
	}
	return e.IsInFov(cone)
}

// AutoEnvelopeFunc estimates a bounding sphere for an arbitrary
// object by firing n rays from random directions around a rough
// centroid guess, recording the farthest surface point each one
// finds, and fitting a sphere around the sample mean. Grounded on
// obj_estimate_envelope's Monte-Carlo approach. seed is supplied by
// the caller so results are reproducible; factor inflates the fitted
// radius to guard against the sampling undershooting the true extent
// (the source calls this radius_factor).
func AutoEnvelopeFunc(centroidGuess vmath.V3, n int, seed uint32, factor float64, rayHit func(vmath.Ray) (float64, bool)) Envelope {
	rng := vmath.NewRNG(seed)
	samples := make([]vmath.V3, 0, n)
	for i := 0; i < n; i++ {
		dir := rng.RandomSphere()
		ray := vmath.Ray{Origin: centroidGuess.Sub(dir.Scale(1e6)), Direction: dir}
		if t, ok := rayHit(ray); ok {
			samples = append(samples, ray.At(t))
		}
	}
	if len(samples) == 0 {
		return Envelope{Center: centroidGuess, Radius: vmath.Epsilon}
	}
	var sum vmath.V3
	for _, s := range samples {
		sum = sum.Add(s)
	}
	center := sum.Scale(1 / float64(len(samples)))
	maxDist := 0.0
	for _, s := range samples {
		if d := s.Sub(center).Length(); d > maxDist {
			maxDist = d
		}
	}
	return Envelope{Center: center, Radius: maxDist * factor}
}
