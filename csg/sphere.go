package csg

import (
	"math"

	"github.com/elastician/csgtracer/vmath"
)

// Sphere is the set of points at distance Radius from Center.
// Grounded on original_source/src/objects.c's obj_sphere_s.
type Sphere struct {
	ObjectProperties
	Center vmath.V3
	Radius float64
}

func NewSphere(center vmath.V3, radius float64) *Sphere {
	props := NewObjectProperties()
	props.Position = center
	return &Sphere{
		ObjectProperties: props,
		Center:           center,
		Radius:           radius,
	}
}

func (s *Sphere) RayHit(ray vmath.Ray, tMin float64) (float64, bool) {
	oc := ray.Origin.Sub(s.Center)
	a := ray.Direction.SqLength()
	b := 2 * oc.Dot(ray.Direction)
	c := oc.SqLength() - s.Radius*s.Radius
	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t0 := (-b - sq) / (2 * a)
	t1 := (-b + sq) / (2 * a)
	if t0 >= tMin {
		return t0, true
	}
	if t1 >= tMin {
		return t1, true
	}
	return 0, false
}

func (s *Sphere) Side(p vmath.V3) Side {
	if p.Sub(s.Center).SqLength() <= s.Radius*s.Radius {
		return Inside
	}
	return Outside
}

func (s *Sphere) Normal(p vmath.V3) vmath.V3 {
	return p.Sub(s.Center).Normalize()
}

func (s *Sphere) Fov(apex vmath.V3) vmath.RayCone {
	toCenter := s.Center.Sub(apex)
	dist := toCenter.Length()
	if dist <= s.Radius {
		axis := toCenter.Normalize()
		if axis.IsZero() {
			axis = vmath.V3{X: 0, Y: 0, Z: 1}
		}
		return vmath.RayCone{Apex: apex, Axis: axis, CosHalfAngle: -1}
	}
	sinHalf := vmath.Clamp(s.Radius/dist, 0, 1)
	cosHalf := math.Sqrt(1 - sinHalf*sinHalf)
	return vmath.RayCone{Apex: apex, Axis: toCenter.Scale(1 / dist), CosHalfAngle: cosHalf}
}

func (s *Sphere) IsInFov(cone vmath.RayCone) bool {
	env := s.Envelope
	if env == nil {
		e := Envelope{Center: s.Center, Radius: s.Radius}
		env = &e
	}
	return env.IsInFov(cone)
}

func (s *Sphere) IsReachable(cone vmath.RayCone, maxDist float64) bool {
	env := s.Envelope
	if env == nil {
		e := Envelope{Center: s.Center, Radius: s.Radius}
		env = &e
	}
	return env.IsReachable(cone, maxDist)
}

func (s *Sphere) Move(delta vmath.V3) {
	s.Center = s.Center.Add(delta)
	s.Position = s.Position.Add(delta)
}

func (s *Sphere) Rotate(m vmath.M3) {
	s.Center = m.MulV(s.Center)
	s.Position = m.MulV(s.Position)
}

func (s *Sphere) ScaleUniform(fac float64) {
	s.Center = s.Center.Scale(fac)
	s.Position = s.Position.Scale(fac)
	s.Radius *= fac
	if s.Envelope != nil {
		s.Envelope.Center = s.Envelope.Center.Scale(fac)
		s.Envelope.Radius *= fac
	}
}
