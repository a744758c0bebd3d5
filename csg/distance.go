package csg

import (
	"math"

	"github.com/elastician/csgtracer/vmath"
)

// DistanceFunc returns the signed distance from p to the surface:
// negative inside, positive outside, zero on the boundary. Distance
// objects exist for shapes with no closed-form ray intersection
// (a torus is the canonical example).
type DistanceFunc func(p vmath.V3) float64

// Distance is an implicit surface resolved by sphere tracing:
// repeatedly stepping along the ray by the signed distance to the
// surface until that distance falls below a tolerance (a hit) or the
// accumulated distance exceeds a bailout (a miss). Grounded on
// original_source/src/objects.c's obj_distance_s.
type Distance struct {
	ObjectProperties
	Fn         DistanceFunc
	MaxSteps   int
	BailoutDist float64
}

func NewDistance(fn DistanceFunc) *Distance {
	return &Distance{
		ObjectProperties: NewObjectProperties(),
		Fn:               fn,
		MaxSteps:         200,
		BailoutDist:      1e4,
	}
}

// NewTorus builds a distance-field torus centered at center, its axis
// along z, with major radius majorR and tube radius minorR, per the
// closed-form torus distance function (the standard
// length(vec2(length(p.xy)-R, p.z)) - r).
func NewTorus(center vmath.V3, majorR, minorR float64) *Distance {
	d := NewDistance(func(p vmath.V3) float64 {
		l := p.Sub(center)
		q := vmath.V2{X: hyp(l.X, l.Y) - majorR, Y: l.Z}
		return hyp(q.X, q.Y) - minorR
	})
	d.Envelope = &Envelope{Center: center, Radius: majorR + minorR + 2*vmath.Epsilon}
	d.Position = center
	return d
}

func hyp(a, b float64) float64 {
	return vmath.V3{X: a, Y: b}.Length()
}

func (d *Distance) RayHit(ray vmath.Ray, tMin float64) (float64, bool) {
	dirLen := ray.Direction.Length()
	if dirLen < vmath.Epsilon {
		return 0, false
	}
	unit := ray.Direction.Scale(1 / dirLen)

	t := tMin
	if d.Envelope != nil {
		// Pre-advance to the envelope's near intersection so sphere
		// tracing doesn't waste steps in empty space far outside the
		// object's bound.
		tEnter, ok := envelopeNearT(*d.Envelope, vmath.Ray{Origin: ray.Origin, Direction: unit}, tMin)
		if !ok {
			return 0, false
		}
		if tEnter > t {
			t = tEnter
		}
	}

	for i := 0; i < d.MaxSteps; i++ {
		p := ray.Origin.Add(unit.Scale(t))
		dist := d.Fn(p)
		if dist < 0 {
			dist = -dist
		}
		if dist < vmath.Epsilon {
			return t / dirLen, true
		}
		t += dist + vmath.Epsilon
		if t-tMin > d.BailoutDist {
			return 0, false
		}
		if d.Envelope != nil && !d.Envelope.RayHits(vmath.Ray{Origin: ray.Origin, Direction: unit}, t) {
			return 0, false
		}
	}
	return 0, false
}

// envelopeNearT returns the ray parameter at which ray first enters
// the envelope's bounding sphere, or false if it never does.
func envelopeNearT(e Envelope, ray vmath.Ray, tMin float64) (float64, bool) {
	oc := ray.Origin.Sub(e.Center)
	b := oc.Dot(ray.Direction)
	c := oc.SqLength() - e.Radius*e.Radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t0 := -b - sq
	t1 := -b + sq
	if t1 < tMin {
		return 0, false
	}
	if t0 > tMin {
		return t0, true
	}
	return tMin, true
}

func (d *Distance) Side(p vmath.V3) Side {
	if d.Fn(p) <= 0 {
		return Inside
	}
	return Outside
}

// Normal estimates the gradient of the distance field at p via
// central finite differences, grounded on the source's numerical
// normal estimation for distance objects.
func (d *Distance) Normal(p vmath.V3) vmath.V3 {
	const h = 1e-4
	dx := d.Fn(p.Add(vmath.V3{X: h})) - d.Fn(p.Sub(vmath.V3{X: h}))
	dy := d.Fn(p.Add(vmath.V3{Y: h})) - d.Fn(p.Sub(vmath.V3{Y: h}))
	dz := d.Fn(p.Add(vmath.V3{Z: h})) - d.Fn(p.Sub(vmath.V3{Z: h}))
	return vmath.V3{X: dx, Y: dy, Z: dz}.Normalize()
}

func (d *Distance) Fov(apex vmath.V3) vmath.RayCone {
	if d.Envelope != nil {
		e := d.Envelope
		toCenter := e.Center.Sub(apex)
		dist := toCenter.Length()
		if dist <= e.Radius {
			return vmath.RayCone{Apex: apex, Axis: vmath.V3{Z: 1}, CosHalfAngle: -1}
		}
		sinHalf := vmath.Clamp(e.Radius/dist, 0, 1)
		return vmath.RayCone{Apex: apex, Axis: toCenter.Scale(1 / dist), CosHalfAngle: math.Sqrt(1 - sinHalf*sinHalf)}
	}
	return vmath.RayCone{Apex: apex, Axis: vmath.V3{Z: 1}, CosHalfAngle: -1}
}

func (d *Distance) IsInFov(cone vmath.RayCone) bool {
	if d.Envelope != nil {
		return d.Envelope.IsInFov(cone)
	}
	return true
}

func (d *Distance) IsReachable(cone vmath.RayCone, maxDist float64) bool {
	if d.Envelope != nil {
		return d.Envelope.IsReachable(cone, maxDist)
	}
	return true
}

func (d *Distance) Move(delta vmath.V3) {
	fn := d.Fn
	d.Fn = func(p vmath.V3) float64 { return fn(p.Sub(delta)) }
	d.Position = d.Position.Add(delta)
	if d.Envelope != nil {
		d.Envelope.Center = d.Envelope.Center.Add(delta)
	}
}

func (d *Distance) Rotate(m vmath.M3) {
	fn := d.Fn
	mt := m.Transposed()
	d.Fn = func(p vmath.V3) float64 { return fn(mt.MulV(p)) }
	d.Position = m.MulV(d.Position)
	if d.Envelope != nil {
		d.Envelope.Center = m.MulV(d.Envelope.Center)
	}
}

func (d *Distance) ScaleUniform(fac float64) {
	fn := d.Fn
	d.Fn = func(p vmath.V3) float64 { return fn(p.Scale(1/fac)) * fac }
	d.Position = d.Position.Scale(fac)
	if d.Envelope != nil {
		d.Envelope.Center = d.Envelope.Center.Scale(fac)
		d.Envelope.Radius *= fac
	}
}
