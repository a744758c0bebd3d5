package transport

import (
	"math"
	"testing"

	"github.com/elastician/csgtracer/csg"
	"github.com/elastician/csgtracer/scenegraph"
	"github.com/elastician/csgtracer/vmath"
)

func TestReflectanceTotalInternalReflection(t *testing.T) {
	// A ray leaving a dense medium for a thinner one (n = 1/1.5, the
	// transmitting medium's index over the incident one's) at a
	// grazing angle must reflect entirely: reflectance 1, no
	// transmitted component possible.
	cosAi := 0.1
	n := 1.0 / 1.5
	got := Reflectance(cosAi, n)
	if got != 1.0 {
		t.Fatalf("Reflectance(%v,%v) = %v, want 1.0 (TIR)", cosAi, n, got)
	}
}

func TestReflectanceNormalIncidence(t *testing.T) {
	// At normal incidence, reflectance reduces to the classic
	// ((n-1)/(n+1))^2 formula regardless of polarization split.
	n := 1.5
	got := Reflectance(1.0, n)
	want := math.Pow((n-1)/(n+1), 2)
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("Reflectance(1,%v) = %v, want %v", n, got, want)
	}
}

func TestComputeRefractionUnderTIRReturnsZeroTransmittance(t *testing.T) {
	nor := vmath.V3{X: 0, Y: 0, Z: 1}
	// A steep grazing ray from inside a dense medium exiting into a
	// thinner one triggers total internal reflection.
	dirI := vmath.V3{X: 0.999, Y: 0, Z: 0.0447}.Normalize()
	reflectance, _, transmittance, _ := ComputeRefraction(dirI, nor, 1.0/1.5)
	if transmittance != 0 {
		t.Fatalf("transmittance = %v, want 0 under TIR", transmittance)
	}
	if reflectance != 1.0 {
		t.Fatalf("reflectance = %v, want 1 under TIR", reflectance)
	}
}

func newTestScene() *scenegraph.Scene {
	scene := scenegraph.NewScene()
	scene.Params.DirectSamples = 8
	scene.Params.TraceDepth = 4

	floor := csg.NewSphere(vmath.V3{X: 0, Y: -1000, Z: 0}, 999)
	floor.Color = vmath.RGB(0.6, 0.6, 0.6)
	scene.Matter.Add(floor)

	light := csg.NewSphere(vmath.V3{X: 0, Y: 10, Z: 0}, 1)
	light.Radiance = 50
	light.Color = vmath.RGB(1, 1, 1)
	scene.Light.Add(light)

	return scene
}

func TestShadeZeroDepthReturnsBlack(t *testing.T) {
	scene := newTestScene()
	obj := scene.Matter.Objects[0]
	ray := vmath.Ray{Origin: vmath.V3{Y: 5}, Direction: vmath.V3{Y: -1}}
	got := Shade(scene, obj, ray, 1.0, 0)
	if got != vmath.Black {
		t.Fatalf("Shade at depth 0 = %v, want black", got)
	}
}

func TestShadeEmissiveObjectIgnoresTextureTransmittance(t *testing.T) {
	scene := newTestScene()
	light := scene.Light.Objects[0]
	ray := vmath.Ray{Origin: vmath.V3{X: 0, Y: 20, Z: 0}, Direction: vmath.V3{Y: -1}}
	hitT, ok := light.RayHit(ray, 0)
	if !ok {
		t.Fatal("expected ray to hit light sphere")
	}
	got := Shade(scene, light, ray, hitT, 4)
	if got.R <= 0 || got.G <= 0 || got.B <= 0 {
		t.Fatalf("Shade on emissive object = %v, want strictly positive radiance", got)
	}
}

func TestShadeDiffuseSurfaceIsNonNegative(t *testing.T) {
	scene := newTestScene()
	obj := scene.Matter.Objects[0]
	ray := vmath.Ray{Origin: vmath.V3{X: 0, Y: 5, Z: 0}, Direction: vmath.V3{Y: -1}}
	hitT, ok := obj.RayHit(ray, 0)
	if !ok {
		t.Fatal("expected ray to hit floor sphere")
	}
	got := Shade(scene, obj, ray, hitT, 4)
	if got.R < 0 || got.G < 0 || got.B < 0 {
		t.Fatalf("Shade on lit diffuse surface = %v, want non-negative", got)
	}
}

func TestSampleLightZeroSamplesReturnsBlack(t *testing.T) {
	scene := newTestScene()
	scene.Params.DirectSamples = 0
	light := scene.Light.Objects[0]
	rng := vmath.NewRNG(1)
	got := sampleLight(scene, light, vmath.V3{Y: 0}, vmath.V3{Y: 1}, rng)
	if got != vmath.Black {
		t.Fatalf("sampleLight with 0 samples = %v, want black", got)
	}
}

func TestSampleLightPointFacingAwayGetsNoContribution(t *testing.T) {
	scene := newTestScene()
	light := scene.Light.Objects[0]
	rng := vmath.NewRNG(7)
	// A normal pointing straight down, away from the light above,
	// should receive no direct contribution (dir.Dot(normal) <= 0 for
	// every sample toward the light).
	got := sampleLight(scene, light, vmath.V3{Y: 0}, vmath.V3{Y: -1}, rng)
	if got.R != 0 || got.G != 0 || got.B != 0 {
		t.Fatalf("sampleLight facing away = %v, want black", got)
	}
}

func TestGatherPhotonsEmptyMapReturnsBlack(t *testing.T) {
	scene := newTestScene()
	scene.Photons = &scenegraph.PhotonMap{MinDistance: 0.1}
	scene.Params.PhotonSamples = 100
	obj := scene.Matter.Objects[0]
	got := gatherPhotons(scene, obj, vmath.V3{Y: 1}, vmath.V3{Y: 1})
	if got != vmath.Black {
		t.Fatalf("gatherPhotons on empty map = %v, want black", got)
	}
}

func TestGatherPhotonsAccumulatesNearbyPhoton(t *testing.T) {
	scene := newTestScene()
	pos := vmath.V3{X: 0, Y: 1, Z: 0}
	normal := vmath.V3{Y: 1}
	photonPos := pos.Add(vmath.V3{Y: 2})
	scene.Photons = &scenegraph.PhotonMap{
		MinDistance: 1.0,
		Photons: []scenegraph.Photon{
			{Position: photonPos, Direction: vmath.V3{Y: -1}, Power: vmath.RGB(1, 1, 1)},
		},
	}
	scene.Params.PhotonSamples = 10
	obj := scene.Matter.Objects[0]
	got := gatherPhotons(scene, obj, pos, normal)
	if got.R <= 0 {
		t.Fatalf("gatherPhotons with a nearby arriving photon = %v, want positive", got)
	}
}

func TestBuildPhotonMapDepositsWhenSamplesPositive(t *testing.T) {
	scene := newTestScene()
	scene.Params.PhotonSamples = 64
	scene.Matter.Objects[0].Properties().Texture = csg.PlainTexture{Color_: vmath.RGB(0.6, 0.6, 0.6)}
	pm := BuildPhotonMap(scene)
	if len(pm.Photons) == 0 {
		t.Fatal("expected BuildPhotonMap to deposit at least one photon against the floor sphere")
	}
	for _, ph := range pm.Photons {
		if ph.Power.R < 0 || ph.Power.G < 0 || ph.Power.B < 0 {
			t.Fatalf("photon power %v has a negative channel", ph.Power)
		}
	}
}

func TestBuildPhotonMapZeroSamplesProducesEmptyMap(t *testing.T) {
	scene := newTestScene()
	scene.Params.PhotonSamples = 0
	pm := BuildPhotonMap(scene)
	if len(pm.Photons) != 0 {
		t.Fatalf("expected no photons when PhotonSamples is 0, got %d", len(pm.Photons))
	}
}
