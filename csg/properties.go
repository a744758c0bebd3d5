package csg

import "github.com/elastician/csgtracer/vmath"

// Texture modulates an object's surface color as a function of
// surface parameterization, grounded on original_source/src/
// textures.c's spect_txm_s dispatch (txm_plain_s, txm_chess_s).
type Texture interface {
	Color(u, v float64) vmath.Color
}

// PlainTexture is a texture with no spatial variation at all — the
// degenerate case used when an object has a flat Color and no
// procedural pattern.
type PlainTexture struct {
	Color_ vmath.Color
}

func (t PlainTexture) Color(u, v float64) vmath.Color { return t.Color_ }

// CheckerTexture alternates between two colors on a uv grid of the
// given scale, grounded on txm_chess_s_clr.
type CheckerTexture struct {
	A, B  vmath.Color
	Scale float64
}

func (t CheckerTexture) Color(u, v float64) vmath.Color {
	s := t.Scale
	if s == 0 {
		s = 1
	}
	fu := floorInt(u * s)
	fv := floorInt(v * s)
	if (fu+fv)%2 == 0 {
		return t.A
	}
	return t.B
}

func floorInt(x float64) int {
	i := int(x)
	if x < 0 && float64(i) != x {
		i--
	}
	return i
}

// ObjectProperties holds the material and bookkeeping state shared by
// every CSG node: surface appearance, optical properties, an optional
// bounding envelope, and an optional emissive radiance. Every
// primitive and composer embeds one by value, so no two nodes ever
// alias the same properties.
type ObjectProperties struct {
	Color              vmath.Color
	Texture            Texture // nil: use Color directly
	DiffuseReflectivity float64
	SpecularReflectivity float64
	FresnelReflectivity float64
	Transparency       float64
	RefractiveIndex    float64
	Radiance           float64 // > 0: object is a light emitter
	// Position is the point used for inverse-square attenuation when
	// this object is a light source (radiance/distance^2), and as the
	// emission origin when pre-baking the photon map. Every
	// constructor keeps it in sync with the primitive's own notion of
	// "where it is"; composers leave it at the zero value, since they
	// are never used directly as point-like light sources.
	Position vmath.V3
	Envelope *Envelope
}

// NewObjectProperties returns properties for an ordinary, fully
// diffuse, opaque gray surface — a sane default before a script or
// builder customizes it.
func NewObjectProperties() ObjectProperties {
	return ObjectProperties{
		Color:               vmath.RGB(0.8, 0.8, 0.8),
		DiffuseReflectivity: 1.0,
		RefractiveIndex:     1.0,
	}
}

// SurfaceColor resolves the color at a surface point, preferring the
// texture (if any) over the flat Color.
func (p *ObjectProperties) SurfaceColor(u, v float64) vmath.Color {
	if p.Texture != nil {
		return p.Texture.Color(u, v)
	}
	return p.Color
}

func (p *ObjectProperties) Properties() *ObjectProperties { return p }
