package sceneyaml

import (
	"testing"

	"github.com/elastician/csgtracer/csg"
)

func TestParseMinimalScene(t *testing.T) {
	scene, err := Parse([]byte(`
image_width: 320
image_height: 240
camera:
  position: [0, 0, -10]
  view_direction: [0, 0, 1]
  top_direction: [0, 1, 0]
  fov_degrees: 45
matter:
  - type: sphere
    center: [0, 0, 0]
    radius: 1
    color: [1, 0, 0]
light:
  - type: sphere
    center: [0, 10, 0]
    radius: 1
    radiance: 5
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if scene.Params.ImageWidth != 320 || scene.Params.ImageHeight != 240 {
		t.Fatalf("got dimensions %dx%d", scene.Params.ImageWidth, scene.Params.ImageHeight)
	}
	if scene.Camera.FovDegrees != 45 {
		t.Fatalf("got fov %v, want 45", scene.Camera.FovDegrees)
	}
	if len(scene.Matter.Objects) != 1 || len(scene.Light.Objects) != 1 {
		t.Fatalf("got %d matter, %d light objects", len(scene.Matter.Objects), len(scene.Light.Objects))
	}
	if scene.Matter.Objects[0].Properties().Color.R != 1 {
		t.Fatalf("got sphere color %v", scene.Matter.Objects[0].Properties().Color)
	}
}

func TestParseDefaultsUnsetRenderParams(t *testing.T) {
	scene, err := Parse([]byte("matter: []\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if scene.Params.ImageWidth == 0 {
		t.Fatal("expected DefaultRenderParams' image width to survive when unset in YAML")
	}
}

func TestParseCompositionTree(t *testing.T) {
	scene, err := Parse([]byte(`
matter:
  - operation: union
    children:
      - type: sphere
        center: [0, 0, 0]
        radius: 1
      - type: sphere
        center: [1, 0, 0]
        radius: 1
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(scene.Matter.Objects) != 1 {
		t.Fatalf("got %d matter objects, want 1 composed union", len(scene.Matter.Objects))
	}
}

func TestParseCylinderUsesRadiusXY(t *testing.T) {
	scene, err := Parse([]byte(`
matter:
  - type: cylinder
    center: [0, 0, 0]
    radius_x: 2
    radius_y: 3
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	sq, ok := scene.Matter.Objects[0].(*csg.Squaroid)
	if !ok {
		t.Fatalf("got %T, want *csg.Squaroid", scene.Matter.Objects[0])
	}
	if got, want := sq.A, 1/(2.0*2.0); got != want {
		t.Fatalf("A = %v, want %v (from radius_x)", got, want)
	}
	if got, want := sq.B, 1/(3.0*3.0); got != want {
		t.Fatalf("B = %v, want %v (from radius_y, not radius_z)", got, want)
	}
}

func TestParseRejectsUnknownObjectType(t *testing.T) {
	_, err := Parse([]byte(`
matter:
  - type: dodecahedron
    center: [0, 0, 0]
`))
	if err == nil {
		t.Fatal("expected an error for an unknown object type")
	}
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("matter: [this is not: valid: yaml"))
	if err == nil {
		t.Fatal("expected a YAML syntax error")
	}
}
