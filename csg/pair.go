package csg

import (
	"math"

	"github.com/elastician/csgtracer/vmath"
)

// pairMarch is the alternating ray-marching algorithm shared by
// PairInside and PairOutside, grounded on original_source/src/
// objects.c's obj_pair_inside_s_ray_hit / obj_pair_outside_s_ray_hit.
// accept is the Side a boundary crossing must see on the *other* child
// to count as a true crossing of the composite (Inside for
// intersection, Outside for union).
//
// It first checks each child's own nearest boundary against the
// other's side test. If neither resolves the composite's boundary —
// the case a convex intersection/union never reaches, but a concave
// composite (e.g. a non-convex union, or an object intersected with
// one) does — it marches forward from the second child's candidate,
// probing only ONE child per step and alternating which child is
// probed, so each step re-tests the boundary it hasn't just crossed.
func pairMarch(o1, o2 Object, ray vmath.Ray, tMin float64, accept Side) (float64, bool) {
	t1, ok1 := o1.RayHit(ray, tMin)
	t2, ok2 := o2.RayHit(ray, tMin)

	if ok1 && (!ok2 || t1 < t2) && o2.Side(ray.At(t1)) == accept {
		return t1, true
	}
	if !ok2 {
		return 0, false
	}
	if o1.Side(ray.At(t2)) == accept {
		return t2, true
	}

	offs := t2
	probe, other := o1, o2
	const maxIter = 64
	for i := 0; i < maxIter; i++ {
		local := vmath.Ray{Origin: ray.At(offs), Direction: ray.Direction}
		a, ok := probe.RayHit(local, vmath.Epsilon)
		if !ok {
			return 0, false
		}
		if other.Side(local.At(a)) == accept {
			return offs + a, true
		}
		offs += a + 2*vmath.Epsilon
		probe, other = other, probe
	}
	return 0, false
}

// PairInside is the CSG intersection of two objects: a point is
// inside the pair iff it is inside both children. Grounded on
// obj_pair_inside_s.
type PairInside struct {
	ObjectProperties
	A, B Object
}

func NewPairInside(a, b Object) *PairInside {
	return &PairInside{ObjectProperties: NewObjectProperties(), A: a, B: b}
}

func (p *PairInside) RayHit(ray vmath.Ray, tMin float64) (float64, bool) {
	// A boundary crossing counts only where the other child already
	// contains the point: the standard "surface crossing accepted iff
	// inside the other solid" intersection rule.
	return pairMarch(p.A, p.B, ray, tMin, Inside)
}

func (p *PairInside) Side(point vmath.V3) Side {
	if p.A.Side(point) == Inside && p.B.Side(point) == Inside {
		return Inside
	}
	return Outside
}

func (p *PairInside) Normal(point vmath.V3) vmath.V3 {
	if p.A.Side(point) == Inside {
		return p.B.Normal(point)
	}
	return p.A.Normal(point)
}

func (p *PairInside) Fov(apex vmath.V3) vmath.RayCone {
	if p.Envelope != nil {
		return envelopeFov(p.Envelope, apex)
	}
	return narrowerCone(p.A.Fov(apex), p.B.Fov(apex))
}

func (p *PairInside) IsInFov(cone vmath.RayCone) bool {
	if p.Envelope != nil {
		return p.Envelope.IsInFov(cone)
	}
	return p.A.IsInFov(cone) && p.B.IsInFov(cone)
}

func (p *PairInside) IsReachable(cone vmath.RayCone, maxDist float64) bool {
	if p.Envelope != nil {
		return p.Envelope.IsReachable(cone, maxDist)
	}
	return p.A.IsReachable(cone, maxDist) && p.B.IsReachable(cone, maxDist)
}

func (p *PairInside) Move(delta vmath.V3) {
	p.A.Move(delta)
	p.B.Move(delta)
	if p.Envelope != nil {
		p.Envelope.Center = p.Envelope.Center.Add(delta)
	}
}

func (p *PairInside) Rotate(m vmath.M3) {
	p.A.Rotate(m)
	p.B.Rotate(m)
	if p.Envelope != nil {
		p.Envelope.Center = m.MulV(p.Envelope.Center)
	}
}

func (p *PairInside) ScaleUniform(fac float64) {
	p.A.ScaleUniform(fac)
	p.B.ScaleUniform(fac)
	if p.Envelope != nil {
		p.Envelope.Center = p.Envelope.Center.Scale(fac)
		p.Envelope.Radius *= fac
	}
}

// PairOutside is the CSG union of two objects: a point is inside the
// pair iff it is inside either child. Grounded on obj_pair_outside_s.
// Its constructor discards any envelope inherited from its
// properties struct — see NewPairOutside — since a union's extent
// exceeds either child's envelope and no bound can be assumed without
// one being explicitly set afterward.
type PairOutside struct {
	ObjectProperties
	A, B Object
}

func NewPairOutside(a, b Object) *PairOutside {
	po := &PairOutside{ObjectProperties: NewObjectProperties(), A: a, B: b}
	po.Envelope = nil
	return po
}

func (p *PairOutside) RayHit(ray vmath.Ray, tMin float64) (float64, bool) {
	// A boundary counts as long as the other solid doesn't also claim
	// the point (it would be interior to the union then).
	return pairMarch(p.A, p.B, ray, tMin, Outside)
}

func (p *PairOutside) Side(point vmath.V3) Side {
	if p.A.Side(point) == Inside || p.B.Side(point) == Inside {
		return Inside
	}
	return Outside
}

func (p *PairOutside) Normal(point vmath.V3) vmath.V3 {
	if p.A.Side(point) == Outside {
		return p.A.Normal(point)
	}
	return p.B.Normal(point)
}

func (p *PairOutside) Fov(apex vmath.V3) vmath.RayCone {
	if p.Envelope != nil {
		return envelopeFov(p.Envelope, apex)
	}
	return widerCone(p.A.Fov(apex), p.B.Fov(apex))
}

// IsInFov treats the envelope, when present, as the primary test —
// see DESIGN.md Open Question 2: the original C source's equivalent
// function has an unreachable envelope check after an unconditional
// "either child in fov" return, which we do not reproduce. Here the
// envelope (if the caller has set one explicitly) is checked first
// and is authoritative; only lacking one do we fall back to the union
// of the children's tests.
func (p *PairOutside) IsInFov(cone vmath.RayCone) bool {
	if p.Envelope != nil {
		return p.Envelope.IsInFov(cone)
	}
	return p.A.IsInFov(cone) || p.B.IsInFov(cone)
}

func (p *PairOutside) IsReachable(cone vmath.RayCone, maxDist float64) bool {
	if p.Envelope != nil {
		return p.Envelope.IsReachable(cone, maxDist)
	}
	return p.A.IsReachable(cone, maxDist) || p.B.IsReachable(cone, maxDist)
}

func (p *PairOutside) Move(delta vmath.V3) {
	p.A.Move(delta)
	p.B.Move(delta)
	if p.Envelope != nil {
		p.Envelope.Center = p.Envelope.Center.Add(delta)
	}
}

func (p *PairOutside) Rotate(m vmath.M3) {
	p.A.Rotate(m)
	p.B.Rotate(m)
	if p.Envelope != nil {
		p.Envelope.Center = m.MulV(p.Envelope.Center)
	}
}

func (p *PairOutside) ScaleUniform(fac float64) {
	p.A.ScaleUniform(fac)
	p.B.ScaleUniform(fac)
	if p.Envelope != nil {
		p.Envelope.Center = p.Envelope.Center.Scale(fac)
		p.Envelope.Radius *= fac
	}
}

func envelopeFov(e *Envelope, apex vmath.V3) vmath.RayCone {
	toCenter := e.Center.Sub(apex)
	dist := toCenter.Length()
	if dist <= e.Radius {
		return vmath.RayCone{Apex: apex, Axis: vmath.V3{Z: 1}, CosHalfAngle: -1}
	}
	sinHalf := vmath.Clamp(e.Radius/dist, 0, 1)
	cosHalf := math.Sqrt(1 - sinHalf*sinHalf)
	return vmath.RayCone{Apex: apex, Axis: toCenter.Scale(1 / dist), CosHalfAngle: cosHalf}
}

func narrowerCone(a, b vmath.RayCone) vmath.RayCone {
	if a.CosHalfAngle > b.CosHalfAngle {
		return a
	}
	return b
}

func widerCone(a, b vmath.RayCone) vmath.RayCone {
	if a.CosHalfAngle < b.CosHalfAngle {
		return a
	}
	return b
}
