package transport

import (
	"math"

	"github.com/elastician/csgtracer/csg"
	"github.com/elastician/csgtracer/scenegraph"
	"github.com/elastician/csgtracer/vmath"
)

// shadowBias is the offset applied when spawning secondary rays from
// a surface point so they don't immediately re-intersect the surface
// they originated from.
const shadowBias = 1e-6

// Shade computes the outgoing radiance along -ray.Direction at the
// point ray.At(t) on obj, the L() kernel of the light-transport
// model. Grounded on scene_s_lum.
func Shade(scene *scenegraph.Scene, obj csg.Object, ray vmath.Ray, t float64, depth int) vmath.Color {
	if depth <= 0 {
		return vmath.Black
	}

	pos := ray.At(t)
	props := obj.Properties()

	if props.Radiance > 0 {
		diffSqr := pos.Sub(props.Position).SqLength()
		var intensity float64
		if diffSqr > 0 {
			intensity = props.Radiance / diffSqr
		} else {
			intensity = math.MaxFloat64
		}
		return props.SurfaceColor(0, 0).Scale(intensity)
	}

	normal := obj.Normal(pos)

	reflectance := 0.0
	lum := vmath.Black

	if props.RefractiveIndex > 1.0 {
		reflDir := ray.Direction.Sub(normal.Scale(2 * ray.Direction.Dot(normal))).Normalize()
		ratio := refractiveRatio(scene, ray, t, props.RefractiveIndex)
		reflectance = Reflectance(abs(ray.Direction.Dot(normal)), ratio)
		reflRay := vmath.Ray{Origin: pos.Add(reflDir.Scale(shadowBias)), Direction: reflDir}
		if hit, ok, _ := scene.Hit(reflRay, 0); ok {
			lum = lum.Add(Shade(scene, hit.Object, reflRay, hit.T, depth-1).Scale(reflectance))
		}
	}

	transmittance := 1.0 - reflectance

	if scene.Params.DirectSamples > 0 {
		perLight := directAndIndirectLight(scene, obj, pos, normal, depth)
		texture := props.SurfaceColor(0, 0).Scale(transmittance)
		lum = lum.Add(perLight.Mul(texture))
	}

	return lum
}

// refractiveRatio resolves the index ratio across the boundary at t
// along ray via Compound.TransHit: a ray leaving glass back into air
// uses 1/n, not the naive always-entering ratio n a bare RefractiveIndex
// lookup would give. Falls back to fallback (treating the hit as an
// entry) when the transition can't be classified.
func refractiveRatio(scene *scenegraph.Scene, ray vmath.Ray, t, fallback float64) float64 {
	_, trans, ok := scene.Matter.TransHit(ray, t-vmath.Epsilon)
	if !ok {
		return fallback
	}
	if trans.ExitObject != nil {
		if n := trans.ExitObject.Properties().RefractiveIndex; n > 0 {
			return 1.0 / n
		}
	}
	if trans.EnterObject != nil {
		return trans.EnterObject.Properties().RefractiveIndex
	}
	return fallback
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
