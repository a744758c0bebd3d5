// Package scenegraph ties the CSG object graph to camera, lighting
// and render configuration, and holds the in-progress image a render
// writes into. Grounded on original_source/src/scene.c's scene_s and
// image_creator_s, and on the teacher's Scene struct.
package scenegraph

import (
	"github.com/elastician/csgtracer/csg"
	"github.com/elastician/csgtracer/vmath"
)

// DefaultPathDepthThreshold is the recursion depth above which the
// light-transport kernel uses unbiased path tracing for indirect
// light; at or below it, indirect light comes from photon-map
// gathering. Matches the reference implementation's hardcoded
// threshold of 10.
const DefaultPathDepthThreshold = 10

// Camera describes the eye position and viewing frame a render is
// taken from.
type Camera struct {
	Position    vmath.V3
	ViewDir     vmath.V3
	TopDir      vmath.V3
	FovDegrees  float64
}

// RenderParams carries every scene-script-settable rendering
// parameter named in SPEC_FULL.md §4.G / §6.
type RenderParams struct {
	ImageWidth         int
	ImageHeight        int
	Threads            int
	Gamma              float64
	BackgroundColor    vmath.Color
	TraceDepth         int
	DirectSamples      int
	PathSamples        int
	PhotonSamples      int
	PhotonMinDistance  float64
	PathDepthThreshold int
}

// DefaultRenderParams returns sane defaults so a minimal script only
// needs to override what it actually cares about.
func DefaultRenderParams() RenderParams {
	return RenderParams{
		ImageWidth:         800,
		ImageHeight:        600,
		Threads:            4,
		Gamma:              1 / 2.2,
		BackgroundColor:    vmath.RGB(0, 0, 0),
		TraceDepth:         6,
		DirectSamples:      16,
		PathSamples:        0,
		PhotonSamples:      0,
		PhotonMinDistance:  0.05,
		PathDepthThreshold: DefaultPathDepthThreshold,
	}
}

// Photon is a single deposited photon from the pre-bake pass:
// position, incoming direction and carried (attenuated) color.
type Photon struct {
	Position  vmath.V3
	Direction vmath.V3
	Power     vmath.Color
}

// PhotonMap is the flat collection of deposited photons plus the
// minimum distance used when gathering at a shading point: photons
// nearer than MinDistance to the point are skipped. It is built
// once per render by transport.BuildPhotonMap and is read-only
// thereafter, so concurrent shading goroutines can share it without
// locking.
type PhotonMap struct {
	Photons     []Photon
	MinDistance float64
}

// Scene is the complete, immutable-after-construction description a
// render operates on: the light and matter object graphs, the camera,
// render parameters, and (after a pre-bake pass) the photon map.
// Grounded on scene_s.
type Scene struct {
	Light   *csg.Compound
	Matter  *csg.Compound
	Camera  Camera
	Params  RenderParams
	Photons *PhotonMap
}

func NewScene() *Scene {
	return &Scene{
		Light:  csg.NewCompound(),
		Matter: csg.NewCompound(),
		Camera: Camera{Position: vmath.V3{}, ViewDir: vmath.V3{Z: 1}, TopDir: vmath.V3{Y: 1}, FovDegrees: 60},
		Params: DefaultRenderParams(),
	}
}

// Hit resolves the nearest surface ray strikes across both the light
// and matter compounds, reporting whether the winner is a light
// emitter. Grounded on scene_s_hit.
func (s *Scene) Hit(ray vmath.Ray, tMin float64) (csg.Hit, bool, bool) {
	lh, lok := s.Light.Hit(ray, tMin)
	mh, mok := s.Matter.Hit(ray, tMin)
	switch {
	case lok && mok:
		if lh.T <= mh.T {
			return lh, true, true
		}
		return mh, true, false
	case lok:
		return lh, true, true
	case mok:
		return mh, true, false
	default:
		return csg.Hit{}, false, false
	}
}
