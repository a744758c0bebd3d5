package csg

import (
	"math"

	"github.com/elastician/csgtracer/vmath"
)

// Compound is an ordered collection of objects treated as a single
// scene container (the "matter" or "light" list of a scene), with an
// optional envelope of its own for a coarse whole-scene cull.
// Grounded on original_source/src/compound.c and container.c.
type Compound struct {
	ObjectProperties
	Objects []Object
}

func NewCompound(objects ...Object) *Compound {
	return &Compound{ObjectProperties: NewObjectProperties(), Objects: objects}
}

func (c *Compound) Add(o Object) { c.Objects = append(c.Objects, o) }

// Hit returns the nearest object any member strikes.
func (c *Compound) Hit(ray vmath.Ray, tMin float64) (Hit, bool) {
	if c.Envelope != nil && !c.Envelope.RayHits(ray, tMin) {
		return Hit{}, false
	}
	best := Hit{}
	found := false
	bestT := 0.0
	for _, o := range c.Objects {
		t, ok := o.RayHit(ray, tMin)
		if !ok {
			continue
		}
		if !found || t < bestT {
			found = true
			bestT = t
			p := ray.At(t)
			best = Hit{Object: o, T: t, Point: p, Normal: o.Normal(p)}
		}
	}
	return best, found
}

// Transition reports which child of a Compound a boundary crossing
// enters or exits, plus the boundary normal oriented along the ray's
// direction of travel. Exactly one of EnterObject/ExitObject is set,
// except when two children's boundaries coincide within epsilon, in
// which case both are. Grounded on original_source/src/compound.c's
// trans_data_s.
type Transition struct {
	Normal      vmath.V3
	EnterObject Object
	ExitObject  Object
}

// TransHit finds the nearest member boundary crossing and reports
// whether the ray is entering or exiting the child it struck there —
// the light-transport kernel uses this to pick the correct
// refractive-index ratio at a surface instead of always assuming the
// ray arrives from outside. Grounded on compound_s_ray_trans_hit.
func (c *Compound) TransHit(ray vmath.Ray, tMin float64) (float64, Transition, bool) {
	if c.Envelope != nil && !c.Envelope.RayHits(ray, tMin) {
		return 0, Transition{}, false
	}
	minA := math.Inf(1)
	var trans Transition
	found := false
	for _, o := range c.Objects {
		a, ok := o.RayHit(ray, tMin)
		if !ok {
			continue
		}
		switch {
		case a < minA-vmath.Epsilon:
			minA = a
			found = true
			nor := o.Normal(ray.At(a))
			if nor.Dot(ray.Direction) > 0 {
				trans = Transition{Normal: nor, ExitObject: o}
			} else {
				trans = Transition{Normal: nor.Neg(), EnterObject: o}
			}
		case found && math.Abs(a-minA) < vmath.Epsilon:
			if a < minA {
				minA = a
			}
			nor := o.Normal(ray.At(a))
			if nor.Dot(ray.Direction) > 0 {
				trans.ExitObject = o
			} else {
				trans.EnterObject = o
			}
		}
	}
	if !found {
		return 0, Transition{}, false
	}
	return minA, trans, true
}

// InFovIndices returns the indices of members whose field of view
// overlaps cone, the shadow-test short-list used by direct-light
// sampling so a scene's full object list isn't probed for every
// sample. Grounded on compound_s_in_fov_arr.
func (c *Compound) InFovIndices(cone vmath.RayCone) []int {
	idx := make([]int, 0, len(c.Objects))
	for i, o := range c.Objects {
		if o.IsInFov(cone) {
			idx = append(idx, i)
		}
	}
	return idx
}

// IdxHit tests only the given subset of members (by index), the
// pruned shadow-ray test.
func (c *Compound) IdxHit(ray vmath.Ray, tMin float64, indices []int) (Hit, bool) {
	best := Hit{}
	found := false
	bestT := 0.0
	for _, i := range indices {
		o := c.Objects[i]
		t, ok := o.RayHit(ray, tMin)
		if !ok {
			continue
		}
		if !found || t < bestT {
			found = true
			bestT = t
			p := ray.At(t)
			best = Hit{Object: o, T: t, Point: p, Normal: o.Normal(p)}
		}
	}
	return best, found
}

func (c *Compound) RayHit(ray vmath.Ray, tMin float64) (float64, bool) {
	h, ok := c.Hit(ray, tMin)
	if !ok {
		return 0, false
	}
	return h.T, true
}

func (c *Compound) Side(p vmath.V3) Side {
	for _, o := range c.Objects {
		if o.Side(p) == Inside {
			return Inside
		}
	}
	return Outside
}

func (c *Compound) Normal(p vmath.V3) vmath.V3 {
	var best Object
	bestD := 0.0
	for _, o := range c.Objects {
		d := distToSurfaceApprox(o, p)
		if best == nil || d < bestD {
			best, bestD = o, d
		}
	}
	if best == nil {
		return vmath.V3{Z: 1}
	}
	return best.Normal(p)
}

func distToSurfaceApprox(o Object, p vmath.V3) float64 {
	// A cheap proxy: distance to the object's envelope center if it
	// has one, otherwise treat it as equally near. Compound.Normal is
	// only ever called as a fallback (real hits carry their own
	// object+normal via Hit), so this need not be exact.
	if props := o.Properties(); props.Envelope != nil {
		return p.Sub(props.Envelope.Center).Length()
	}
	return 0
}

func (c *Compound) Fov(apex vmath.V3) vmath.RayCone {
	if c.Envelope != nil {
		return envelopeFov(c.Envelope, apex)
	}
	cone := vmath.RayCone{Apex: apex, Axis: vmath.V3{Z: 1}, CosHalfAngle: 1}
	for i, o := range c.Objects {
		f := o.Fov(apex)
		if i == 0 {
			cone = f
			continue
		}
		cone = widerCone(cone, f)
	}
	return cone
}

func (c *Compound) IsInFov(cone vmath.RayCone) bool {
	if c.Envelope != nil {
		return c.Envelope.IsInFov(cone)
	}
	for _, o := range c.Objects {
		if o.IsInFov(cone) {
			return true
		}
	}
	return false
}

func (c *Compound) IsReachable(cone vmath.RayCone, maxDist float64) bool {
	if c.Envelope != nil {
		return c.Envelope.IsReachable(cone, maxDist)
	}
	for _, o := range c.Objects {
		if o.IsReachable(cone, maxDist) {
			return true
		}
	}
	return false
}

func (c *Compound) Move(delta vmath.V3) {
	for _, o := range c.Objects {
		o.Move(delta)
	}
	if c.Envelope != nil {
		c.Envelope.Center = c.Envelope.Center.Add(delta)
	}
}

func (c *Compound) Rotate(m vmath.M3) {
	for _, o := range c.Objects {
		o.Rotate(m)
	}
	if c.Envelope != nil {
		c.Envelope.Center = m.MulV(c.Envelope.Center)
	}
}

func (c *Compound) ScaleUniform(fac float64) {
	for _, o := range c.Objects {
		o.ScaleUniform(fac)
	}
	if c.Envelope != nil {
		c.Envelope.Center = c.Envelope.Center.Scale(fac)
		c.Envelope.Radius *= fac
	}
}
