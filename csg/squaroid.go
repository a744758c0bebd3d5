package csg

import (
	"math"

	"github.com/elastician/csgtracer/vmath"
)

// Squaroid is the general axis-aligned quadric surface
// a*x^2 + b*y^2 + c*z^2 + r = 0, generalizing ellipsoids, cylinders,
// cones and both sheets of hyperboloids through the sign and
// magnitude of its coefficients. Grounded on original_source/src/
// objects.c's obj_squaroid_s and its six named constructors.
type Squaroid struct {
	ObjectProperties
	Center     vmath.V3
	Rotation   vmath.M3 // world-to-local rotation; identity if axis-aligned
	A, B, C, R float64
}

func newSquaroidAt(center vmath.V3, a, b, c, r float64) *Squaroid {
	props := NewObjectProperties()
	props.Position = center
	return &Squaroid{
		ObjectProperties: props,
		Center:           center,
		Rotation:         vmath.Ident3(),
		A:                a, B: b, C: c, R: r,
	}
}

// NewSquaroid constructs the general form directly.
func NewSquaroid(center vmath.V3, a, b, c, r float64) *Squaroid {
	return newSquaroidAt(center, a, b, c, r)
}

// NewEllipsoid builds a solid ellipsoid with the given semi-axes and
// installs an auto-sized bounding envelope, matching the source's
// ellipsoid constructor being the one specialization that sets one.
func NewEllipsoid(center vmath.V3, rx, ry, rz float64) *Squaroid {
	s := newSquaroidAt(center, 1/(rx*rx), 1/(ry*ry), 1/(rz*rz), -1)
	rmax := math.Max(rx, math.Max(ry, rz))
	s.Envelope = &Envelope{Center: center, Radius: rmax + 2*vmath.Epsilon}
	return s
}

// NewCylinder builds an infinite elliptical cylinder along z.
func NewCylinder(center vmath.V3, rx, ry float64) *Squaroid {
	return newSquaroidAt(center, 1/(rx*rx), 1/(ry*ry), 0, -1)
}

// NewCone builds a double-napped elliptical cone along z.
func NewCone(center vmath.V3, rx, ry, rz float64) *Squaroid {
	return newSquaroidAt(center, 1/(rx*rx), 1/(ry*ry), -1/(rz*rz), 0)
}

// NewHyperboloid1 builds a one-sheet hyperboloid along z.
func NewHyperboloid1(center vmath.V3, rx, ry, rz float64) *Squaroid {
	return newSquaroidAt(center, 1/(rx*rx), 1/(ry*ry), -1/(rz*rz), -1)
}

// NewHyperboloid2 builds a two-sheet hyperboloid along z.
func NewHyperboloid2(center vmath.V3, rx, ry, rz float64) *Squaroid {
	return newSquaroidAt(center, -1/(rx*rx), -1/(ry*ry), 1/(rz*rz), -1)
}

func (s *Squaroid) toLocal(p vmath.V3) vmath.V3 {
	return s.Rotation.MulV(p.Sub(s.Center))
}

func (s *Squaroid) fromLocalDir(d vmath.V3) vmath.V3 {
	return s.Rotation.TMulV(d)
}

func (s *Squaroid) RayHit(ray vmath.Ray, tMin float64) (float64, bool) {
	o := s.toLocal(ray.Origin)
	d := s.Rotation.MulV(ray.Direction)

	a := s.A*d.X*d.X + s.B*d.Y*d.Y + s.C*d.Z*d.Z
	b := 2 * (s.A*o.X*d.X + s.B*o.Y*d.Y + s.C*o.Z*d.Z)
	c := s.A*o.X*o.X + s.B*o.Y*o.Y + s.C*o.Z*o.Z + s.R

	if math.Abs(a) < vmath.Epsilon {
		if math.Abs(b) < vmath.Epsilon {
			return 0, false
		}
		t := -c / b
		if t >= tMin {
			return t, true
		}
		return 0, false
	}

	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t0 := (-b - sq) / (2 * a)
	t1 := (-b + sq) / (2 * a)
	if t0 > t1 {
		t0, t1 = t1, t0
	}
	if t0 >= tMin {
		return t0, true
	}
	if t1 >= tMin {
		return t1, true
	}
	return 0, false
}

func (s *Squaroid) implicit(p vmath.V3) float64 {
	l := s.toLocal(p)
	return s.A*l.X*l.X + s.B*l.Y*l.Y + s.C*l.Z*l.Z + s.R
}

func (s *Squaroid) Side(p vmath.V3) Side {
	if s.implicit(p) <= 0 {
		return Inside
	}
	return Outside
}

func (s *Squaroid) Normal(p vmath.V3) vmath.V3 {
	l := s.toLocal(p)
	grad := vmath.V3{X: 2 * s.A * l.X, Y: 2 * s.B * l.Y, Z: 2 * s.C * l.Z}
	return s.fromLocalDir(grad).Normalize()
}

func (s *Squaroid) Fov(apex vmath.V3) vmath.RayCone {
	if s.Envelope != nil {
		env := s.Envelope
		toCenter := env.Center.Sub(apex)
		dist := toCenter.Length()
		if dist <= env.Radius {
			return vmath.RayCone{Apex: apex, Axis: vmath.V3{Z: 1}, CosHalfAngle: -1}
		}
		sinHalf := vmath.Clamp(env.Radius/dist, 0, 1)
		return vmath.RayCone{Apex: apex, Axis: toCenter.Scale(1 / dist), CosHalfAngle: math.Sqrt(1 - sinHalf*sinHalf)}
	}
	// Unbounded quadric (cylinder, cone, hyperboloid): conservatively
	// claims the whole sphere of directions.
	return vmath.RayCone{Apex: apex, Axis: vmath.V3{Z: 1}, CosHalfAngle: -1}
}

func (s *Squaroid) IsInFov(cone vmath.RayCone) bool {
	if s.Envelope != nil {
		return s.Envelope.IsInFov(cone)
	}
	return true
}

func (s *Squaroid) IsReachable(cone vmath.RayCone, maxDist float64) bool {
	if s.Envelope != nil {
		return s.Envelope.IsReachable(cone, maxDist)
	}
	return true
}

func (s *Squaroid) Move(delta vmath.V3) {
	s.Center = s.Center.Add(delta)
	s.Position = s.Position.Add(delta)
	if s.Envelope != nil {
		s.Envelope.Center = s.Envelope.Center.Add(delta)
	}
}

func (s *Squaroid) Rotate(m vmath.M3) {
	s.Center = m.MulV(s.Center)
	s.Position = m.MulV(s.Position)
	// World-to-local rotation composes with the inverse (transpose)
	// of m applied on the right.
	s.Rotation = s.Rotation.Mul(m.Transposed())
	if s.Envelope != nil {
		s.Envelope.Center = m.MulV(s.Envelope.Center)
	}
}

// ScaleUniform scales r by fac^2 (matching obj_squaroid_s_scale: the
// quadric coefficients are inverse-square in length, so the constant
// term must absorb fac^2 for the surface to scale uniformly) while
// the envelope, if any, scales its radius by fac alone — these are
// deliberately not unified, see DESIGN.md Open Question 4.
func (s *Squaroid) ScaleUniform(fac float64) {
	s.Center = s.Center.Scale(fac)
	s.Position = s.Position.Scale(fac)
	s.R *= fac * fac
	if s.Envelope != nil {
		s.Envelope.Center = s.Envelope.Center.Scale(fac)
		s.Envelope.Radius *= fac
	}
}
