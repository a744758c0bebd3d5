// Package csg implements the constructive-solid-geometry kernel:
// geometry primitives, the CSG composers (intersection, union,
// negation, non-uniform scale), bounding-sphere envelopes used to
// cull ray/object tests, and the surface texture model.
package csg

import "github.com/elastician/csgtracer/vmath"

// Side classifies a point relative to an object's boundary.
type Side int

const (
	Outside Side = 1
	Inside  Side = -1
)

// Object is the closed interface every primitive and composer
// implements. There is intentionally no other way to add a CSG node:
// new shapes are new structs satisfying this interface, not a new
// tag in a runtime type enum.
type Object interface {
	// Properties returns the mutable surface/material state
	// (color, texture, transparency, refractive index, envelope...)
	// attached to this node.
	Properties() *ObjectProperties

	// RayHit returns the parametric distance to the nearest
	// intersection with ray at t >= tMin, and whether one exists.
	RayHit(ray vmath.Ray, tMin float64) (t float64, ok bool)

	// Side reports whether p is inside or outside the object's
	// boundary. p is assumed to lie on or very near a surface of
	// the object (the caller is responsible for that); callers
	// unsure a point belongs to the object should not rely on this.
	Side(p vmath.V3) Side

	// Normal returns the outward unit surface normal at p.
	Normal(p vmath.V3) vmath.V3

	// Fov returns a cone with its apex at apex that contains the
	// object, derived from the object's envelope or its own geometry;
	// an object with no bound returns the full sphere of directions
	// (CosHalfAngle -1).
	Fov(apex vmath.V3) vmath.RayCone

	// IsInFov reports whether the object can intersect any ray
	// within cone.
	IsInFov(cone vmath.RayCone) bool

	// IsReachable reports whether any ray within cone, up to
	// maxDist, could reach the object at all — IsInFov plus a
	// distance bound, used to prune shadow-ray candidate lists.
	IsReachable(cone vmath.RayCone, maxDist float64) bool

	// Move translates the object (and, for composers, does or does
	// not propagate to children — see each composer's doc comment).
	Move(delta vmath.V3)

	// Rotate applies m about the origin.
	Rotate(m vmath.M3)

	// ScaleUniform scales the object by fac about the origin.
	ScaleUniform(fac float64)
}

// Hit is the result of resolving the nearest object a ray strikes.
type Hit struct {
	Object Object
	T      float64
	Point  vmath.V3
	Normal vmath.V3
}
