package csg

import "github.com/elastician/csgtracer/vmath"

// ScaleNonUniform wraps a child object with an independent per-axis
// scale, letting e.g. a unit sphere become an ellipsoid without a
// dedicated primitive. Grounded on original_source/src/objects.c's
// obj_scale_s. Move and Rotate are deliberately no-ops on the wrapped
// child (see DESIGN.md Open Question 5): they only affect the
// wrapper's own properties (e.g. an envelope attached directly to the
// wrapper), since a non-uniform scale wrapper is meant to be built
// once, as a leaf of a transform stack, not repositioned afterward.
type ScaleNonUniform struct {
	ObjectProperties
	Child Object
	Scale vmath.V3
}

func NewScaleNonUniform(child Object, scale vmath.V3) *ScaleNonUniform {
	return &ScaleNonUniform{ObjectProperties: NewObjectProperties(), Child: child, Scale: scale}
}

func (s *ScaleNonUniform) invScale() vmath.V3 {
	return vmath.V3{X: 1 / s.Scale.X, Y: 1 / s.Scale.Y, Z: 1 / s.Scale.Z}
}

func toLocalPoint(p, inv vmath.V3) vmath.V3 {
	return vmath.V3{X: p.X * inv.X, Y: p.Y * inv.Y, Z: p.Z * inv.Z}
}

func (s *ScaleNonUniform) RayHit(ray vmath.Ray, tMin float64) (float64, bool) {
	inv := s.invScale()
	local := vmath.Ray{
		Origin:    toLocalPoint(ray.Origin, inv),
		Direction: toLocalPoint(ray.Direction, inv),
	}
	return s.Child.RayHit(local, tMin)
}

func (s *ScaleNonUniform) Side(p vmath.V3) Side {
	return s.Child.Side(toLocalPoint(p, s.invScale()))
}

func (s *ScaleNonUniform) Normal(p vmath.V3) vmath.V3 {
	local := toLocalPoint(p, s.invScale())
	n := s.Child.Normal(local)
	inv := s.invScale()
	return toLocalPoint(n, inv).Normalize()
}

func (s *ScaleNonUniform) Fov(apex vmath.V3) vmath.RayCone {
	if s.Envelope != nil {
		return envelopeFov(s.Envelope, apex)
	}
	return s.Child.Fov(toLocalPoint(apex, s.invScale()))
}

func (s *ScaleNonUniform) IsInFov(cone vmath.RayCone) bool {
	if s.Envelope != nil {
		return s.Envelope.IsInFov(cone)
	}
	return s.Child.IsInFov(cone)
}

func (s *ScaleNonUniform) IsReachable(cone vmath.RayCone, maxDist float64) bool {
	if s.Envelope != nil {
		return s.Envelope.IsReachable(cone, maxDist)
	}
	return s.Child.IsReachable(cone, maxDist)
}

// Move only translates the wrapper's own envelope, matching
// obj_scale_s_move being a documented no-op on the child.
func (s *ScaleNonUniform) Move(delta vmath.V3) {
	if s.Envelope != nil {
		s.Envelope.Center = s.Envelope.Center.Add(delta)
	}
}

// Rotate only rotates the wrapper's own envelope, matching
// obj_scale_s_rotate.
func (s *ScaleNonUniform) Rotate(m vmath.M3) {
	if s.Envelope != nil {
		s.Envelope.Center = m.MulV(s.Envelope.Center)
	}
}

func (s *ScaleNonUniform) ScaleUniform(fac float64) {
	s.Scale = s.Scale.Scale(fac)
	if s.Envelope != nil {
		s.Envelope.Center = s.Envelope.Center.Scale(fac)
		s.Envelope.Radius *= fac
	}
}
