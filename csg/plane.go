package csg

import (
	"math"

	"github.com/elastician/csgtracer/vmath"
)

// Plane is the half-space Normal.(p - Point) <= 0 is inside.
// Grounded on original_source/src/objects.c's obj_plane_s.
type Plane struct {
	ObjectProperties
	Point  vmath.V3
	Normal_ vmath.V3 // unit outward normal
}

func NewPlane(point, normal vmath.V3) *Plane {
	props := NewObjectProperties()
	props.Position = point
	return &Plane{
		ObjectProperties: props,
		Point:            point,
		Normal_:          normal.Normalize(),
	}
}

func (p *Plane) RayHit(ray vmath.Ray, tMin float64) (float64, bool) {
	denom := ray.Direction.Dot(p.Normal_)
	if denom == 0 {
		return 0, false
	}
	t := p.Point.Sub(ray.Origin).Dot(p.Normal_) / denom
	if t < tMin {
		return 0, false
	}
	return t, true
}

func (p *Plane) Side(point vmath.V3) Side {
	if point.Sub(p.Point).Dot(p.Normal_) <= 0 {
		return Inside
	}
	return Outside
}

func (p *Plane) Normal(point vmath.V3) vmath.V3 { return p.Normal_ }

func (p *Plane) Fov(apex vmath.V3) vmath.RayCone {
	if p.Envelope != nil {
		toCenter := p.Envelope.Center.Sub(apex)
		dist := toCenter.Length()
		if dist < vmath.Epsilon {
			return vmath.RayCone{Apex: apex, Axis: p.Normal_.Neg(), CosHalfAngle: -1}
		}
		sinHalf := vmath.Clamp(p.Envelope.Radius/dist, 0, 1)
		cosHalf := -math.Sqrt(math.Max(0, 1-sinHalf*sinHalf))
		return vmath.RayCone{Apex: apex, Axis: toCenter.Normalize(), CosHalfAngle: cosHalf}
	}
	// An unbounded plane conservatively claims the whole sphere of
	// directions.
	return vmath.RayCone{Apex: apex, Axis: p.Normal_.Neg(), CosHalfAngle: -1}
}

func (p *Plane) IsInFov(cone vmath.RayCone) bool {
	if p.Envelope != nil {
		return p.Envelope.IsInFov(cone)
	}
	return true
}

func (p *Plane) IsReachable(cone vmath.RayCone, maxDist float64) bool {
	if p.Envelope != nil {
		return p.Envelope.IsReachable(cone, maxDist)
	}
	return true
}

func (p *Plane) Move(delta vmath.V3) {
	p.Point = p.Point.Add(delta)
	p.Position = p.Position.Add(delta)
}

func (p *Plane) Rotate(m vmath.M3) {
	p.Point = m.MulV(p.Point)
	p.Normal_ = m.MulV(p.Normal_).Normalize()
	p.Position = m.MulV(p.Position)
}

func (p *Plane) ScaleUniform(fac float64) {
	p.Point = p.Point.Scale(fac)
	p.Position = p.Position.Scale(fac)
}
