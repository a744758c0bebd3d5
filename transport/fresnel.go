// Package transport implements the light-transport kernel: emissive
// shortcut, specular reflection via Fresnel, direct-light area
// sampling, mutually-exclusive path tracing / photon-map gathering,
// and the photon-map pre-bake pass. Grounded on original_source/src/
// scene.c's scene_s_lum / scene_s_send_photon / get_reflectance and
// src/gmath.c's compute_refraction.
package transport

import (
	"math"

	"github.com/elastician/csgtracer/vmath"
)

// Reflectance computes the Fresnel reflectance for unpolarized light
// at incidence angle with cosine cosAi (already folded to [0,1]) and
// refractive index ratio n (the transmitting medium's ior over the
// incident medium's), by averaging the perpendicular and parallel
// polarization terms. Grounded on get_reflectance in scene.c.
func Reflectance(cosAi, n float64) float64 {
	cosAi = math.Min(cosAi, 1.0)
	sinAi := math.Sqrt(math.Max(0, 1-cosAi*cosAi))
	sinAt := sinAi / n
	if sinAt >= 1 {
		return 1.0 // total internal reflection
	}
	cosAt := math.Sqrt(1 - sinAt*sinAt)
	rs := sqr((cosAi - n*cosAt) / (cosAi + n*cosAt))
	rp := sqr((cosAt - n*cosAi) / (cosAt + n*cosAi))
	return (rs + rp) * 0.5
}

func sqr(x float64) float64 { return x * x }

// ComputeRefraction computes the full Fresnel split (reflectance,
// reflected direction, transmittance, transmitted direction) for a
// ray with direction dirI hitting a surface with unit normal nor and
// a transition refractive-index ratio rix (index of the medium being
// entered over the one being left, so rix < 1 when the ray leaves a
// denser medium); nor may face either way. Returns
// transmittance 0 and a copy of dirI as the transmitted direction
// under total internal reflection. Grounded on gmath.c's
// compute_refraction — this is provided as a general-purpose utility
// for any caller that needs an actual refracted ray (e.g. a CSG
// trans_hit traversal through a transparent solid); the bundled
// shading kernel in Shade uses only Reflectance, matching how
// scene_s_lum itself folds transmittance into the diffuse term
// without spawning a transmitted ray.
func ComputeRefraction(dirI, nor vmath.V3, rix float64) (reflectance float64, dirR vmath.V3, transmittance float64, dirT vmath.V3) {
	c := dirI.Dot(nor)
	f := 1.0 / rix

	cosAi := math.Abs(c)
	if cosAi > 1 {
		cosAi = 1
	}
	sinAi := math.Sqrt(1 - cosAi*cosAi)
	sinAt := sinAi * f

	reflectance = 1.0
	transmittance = 0.0

	if sinAt < 1 {
		cosAt := math.Sqrt(1 - sinAt*sinAt)
		rs := sqr((f*cosAi - cosAt) / (f*cosAi + cosAt))
		rp := sqr((f*cosAt - cosAi) / (f*cosAt + cosAi))
		reflectance = (rs + rp) * 0.5
		transmittance = 1.0 - reflectance
	}

	dirR = dirI.Sub(nor.Scale(2 * dirI.Dot(nor))).Normalize()

	a := f
	q := f * f * (1 - c*c)
	if q < 1.0 && transmittance > 0 {
		b := -f * c
		if c > 0 {
			b += math.Sqrt(1 - q)
		} else {
			b -= math.Sqrt(1 - q)
		}
		dirT = dirI.Scale(a).Add(nor.Scale(b))
	} else {
		dirT = dirI
	}
	return
}
