package transport

import (
	"github.com/elastician/csgtracer/scenegraph"
	"github.com/elastician/csgtracer/vmath"
)

// photonEmissionSeed is the fixed seed every light's photon emission
// is drawn from, matching scene_s_create_photon_map's hardcoded
// rv = 1234 — determinism here matters more than decorrelation
// between lights, since the gather step gives every photon equal
// standing regardless of which light emitted it.
const photonEmissionSeed = 1234

// BuildPhotonMap runs the pre-bake pass: for every light, emit
// PhotonSamples photons in uniformly random directions over the full
// sphere and trace each one recursively through the matter compound,
// depositing a photon at every diffuse, textured hit. Grounded on
// scene_s_create_photon_map / scene_s_send_photon.
func BuildPhotonMap(scene *scenegraph.Scene) *scenegraph.PhotonMap {
	pm := &scenegraph.PhotonMap{MinDistance: scene.Params.PhotonMinDistance}
	if scene.Params.PhotonSamples <= 0 {
		return pm
	}

	for _, light := range scene.Light.Objects {
		props := light.Properties()
		color := props.Color.Scale(props.Radiance)
		rng := vmath.NewRNG(photonEmissionSeed)
		for i := 0; i < scene.Params.PhotonSamples; i++ {
			dir := rng.RandomSphere()
			ray := vmath.Ray{Origin: props.Position, Direction: dir}
			sendPhoton(scene, pm, ray, color, scene.Params.TraceDepth)
		}
	}
	return pm
}

// sendPhoton traces a single photon through the matter compound,
// recursing through specular reflections and depositing a diffuse
// photon at the first (and every) textured hit it survives to.
// Grounded on scene_s_send_photon.
func sendPhoton(scene *scenegraph.Scene, pm *scenegraph.PhotonMap, ray vmath.Ray, color vmath.Color, depth int) {
	if depth == 0 {
		return
	}
	hit, ok := scene.Matter.Hit(ray, 0)
	if !ok {
		return
	}
	props := hit.Object.Properties()
	pos := hit.Point

	reflectance := 0.0
	if props.RefractiveIndex > 1.0 {
		normal := hit.Object.Normal(pos)
		reflDir := ray.Direction.Sub(normal.Scale(2 * ray.Direction.Dot(normal))).Normalize()
		reflectance = Reflectance(abs(ray.Direction.Dot(normal)), props.RefractiveIndex)
		out := vmath.Ray{Origin: pos.Add(reflDir.Scale(shadowBias)), Direction: reflDir}
		sendPhoton(scene, pm, out, color.Scale(reflectance), depth-1)
	}

	transmittance := 1.0 - reflectance
	color = color.Scale(transmittance)

	if props.Texture != nil && color.V3().SqLength() > 0 {
		texture := props.SurfaceColor(0, 0)
		deposited := color.Mul(texture)
		pm.Photons = append(pm.Photons, scenegraph.Photon{
			Position:  pos,
			Direction: ray.Direction,
			Power:     deposited,
		})
	}
}
