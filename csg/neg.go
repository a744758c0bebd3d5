package csg

import "github.com/elastician/csgtracer/vmath"

// Neg inverts an object's sidedness and surface normal, turning a
// solid into a hole and vice versa — the building block CSG
// subtraction is expressed with (A subtract B == A intersect Neg(B)).
// Grounded on original_source/src/objects.c's obj_neg_s.
type Neg struct {
	ObjectProperties
	Child Object
}

func NewNeg(child Object) *Neg {
	return &Neg{ObjectProperties: NewObjectProperties(), Child: child}
}

func (n *Neg) RayHit(ray vmath.Ray, tMin float64) (float64, bool) {
	return n.Child.RayHit(ray, tMin)
}

func (n *Neg) Side(p vmath.V3) Side {
	if n.Child.Side(p) == Inside {
		return Outside
	}
	return Inside
}

func (n *Neg) Normal(p vmath.V3) vmath.V3 { return n.Child.Normal(p).Neg() }

func (n *Neg) Fov(apex vmath.V3) vmath.RayCone { return n.Child.Fov(apex) }

func (n *Neg) IsInFov(cone vmath.RayCone) bool { return n.Child.IsInFov(cone) }

func (n *Neg) IsReachable(cone vmath.RayCone, maxDist float64) bool {
	return n.Child.IsReachable(cone, maxDist)
}

func (n *Neg) Move(delta vmath.V3)     { n.Child.Move(delta) }
func (n *Neg) Rotate(m vmath.M3)       { n.Child.Rotate(m) }
func (n *Neg) ScaleUniform(fac float64) { n.Child.ScaleUniform(fac) }
