package transport

import (
	"github.com/elastician/csgtracer/csg"
	"github.com/elastician/csgtracer/scenegraph"
	"github.com/elastician/csgtracer/vmath"
)

// directAndIndirectLight computes the area-sampled direct
// illumination from every light source plus at most one of path
// tracing or photon-map gathering (never both), scaled but not yet
// multiplied by the surface texture — that last step is Shade's.
// Grounded on the direct-light and indirect-light sections of
// scene_s_lum.
func directAndIndirectLight(scene *scenegraph.Scene, obj csg.Object, pos, normal vmath.V3, depth int) vmath.Color {
	rng := vmath.NewRNG(vmath.SeedFromPoint(pos))
	sum := vmath.Black

	for _, light := range scene.Light.Objects {
		sum = sum.Add(sampleLight(scene, light, pos, normal, rng))
	}

	params := scene.Params
	switch {
	case params.PathSamples > 0 && depth > params.PathDepthThreshold:
		sum = sum.Add(pathTrace(scene, pos, normal, depth, rng))
	case scene.Photons != nil && len(scene.Photons.Photons) > 0:
		sum = sum.Add(gatherPhotons(scene, obj, pos, normal))
	}

	return sum
}

// sampleLight estimates one light source's contribution via
// DirectSamples area samples over its field-of-view cone as seen
// from pos, shadow-tested against only the subset of matter objects
// that could plausibly occlude it. The division by DirectSamples
// happens once, after the sampling loop — matching the source's
// arithmetic and deliberately counting occluded/back-facing samples
// against the denominator rather than only successful ones. See
// DESIGN.md Open Question 1.
func sampleLight(scene *scenegraph.Scene, light csg.Object, pos, normal vmath.V3, rng *vmath.RNG) vmath.Color {
	samples := scene.Params.DirectSamples
	if samples <= 0 {
		return vmath.Black
	}

	cone := light.Fov(pos)
	cylHgt := cone.ArealCoverage()
	lightColor := light.Properties().Color.Scale(light.Properties().Radiance)
	lightPos := light.Properties().Position

	candidates := scene.Matter.InFovIndices(cone)

	sum := vmath.Black
	for i := 0; i < samples; i++ {
		dir := rng.RandomSphereCap(cone.Axis, cone.CosHalfAngle)
		weight := dir.Dot(normal)
		if weight <= 0 {
			continue
		}
		out := vmath.Ray{Origin: pos.Add(normal.Scale(shadowBias)), Direction: dir}

		a, ok := light.RayHit(out, 0)
		if !ok {
			continue
		}

		occluder, occluded := scene.Matter.IdxHit(out, 0, candidates)
		if occluded && occluder.T <= a {
			continue
		}

		hitPos := out.At(a)
		diffSqr := hitPos.Sub(lightPos).SqLength()
		intensity := 0.0
		if diffSqr > 0 {
			intensity = light.Properties().Radiance / diffSqr
		}
		sum = sum.Add(lightColor.Scale(intensity * weight))
	}

	return sum.Scale(2.0 * cylHgt / float64(samples))
}

// pathTrace estimates indirect light via unbiased Monte-Carlo
// sampling of the full hemisphere above normal, recursing into Shade
// with the depth consumed in the same fixed increment the reference
// implementation uses (10, not 1). Path samples are taken only while
// depth is above PathDepthThreshold; at or below it the photon map is
// gathered instead.
func pathTrace(scene *scenegraph.Scene, pos, normal vmath.V3, depth int, rng *vmath.RNG) vmath.Color {
	samples := scene.Params.PathSamples
	sum := vmath.Black
	for i := 0; i < samples; i++ {
		dir := rng.RandomSphereCap(normal, 0.0)
		weight := dir.Dot(normal)
		if weight <= 0 {
			continue
		}
		out := vmath.Ray{Origin: pos.Add(normal.Scale(shadowBias)), Direction: dir}
		hit, ok := scene.Matter.Hit(out, 0)
		if !ok {
			continue
		}
		sum = sum.Add(Shade(scene, hit.Object, out, hit.T, depth-10).Scale(weight))
	}
	return sum.Scale(2.0 / float64(samples))
}

// gatherPhotons estimates indirect light from the pre-baked photon
// map by summing the contribution of every deposited photon at least
// the map's MinDistance away from pos (nearer photons are skipped),
// weighted by the cosine between the normal and the direction from the
// photon to pos and attenuated by squared distance. It normalizes by
// PhotonSamples — the number of photons emitted per light during the
// pre-bake pass — not by the number of photons found nearby or the
// map's total size. See DESIGN.md Open Question 3.
func gatherPhotons(scene *scenegraph.Scene, obj csg.Object, pos, normal vmath.V3) vmath.Color {
	pm := scene.Photons
	minSqrDist := pm.MinDistance * pm.MinDistance
	sum := vmath.Black

	for _, ph := range pm.Photons {
		diff := pos.Sub(ph.Position)
		diffSqr := diff.SqLength()
		if diffSqr < minSqrDist {
			continue
		}
		dir := diff.Normalize()
		weight := -dir.Dot(normal) / diffSqr
		if weight <= 0 {
			continue
		}
		out := vmath.Ray{Origin: ph.Position, Direction: dir}
		hit, ok := scene.Matter.Hit(out, shadowBias)
		if !ok || hit.Object == obj {
			sum = sum.Add(ph.Power.Scale(weight))
		}
	}

	if scene.Params.PhotonSamples > 0 {
		sum = sum.Scale(1.0 / float64(scene.Params.PhotonSamples))
	}
	return sum
}
