package scenegraph

import (
	"testing"

	"github.com/elastician/csgtracer/csg"
	"github.com/elastician/csgtracer/vmath"
)

func TestSceneHitPrefersLightWhenCloser(t *testing.T) {
	s := NewScene()
	light := csg.NewSphere(vmath.V3{X: 5}, 1)
	light.Radiance = 10
	matter := csg.NewSphere(vmath.V3{X: 10}, 1)
	s.Light.Add(light)
	s.Matter.Add(matter)

	ray := vmath.Ray{Origin: vmath.V3{}, Direction: vmath.V3{X: 1}}
	hit, ok, isLight := s.Hit(ray, 0)
	if !ok {
		t.Fatal("expected a hit")
	}
	if !isLight {
		t.Error("expected the nearer light to win")
	}
	if hit.Object != csg.Object(light) {
		t.Errorf("hit object = %#v, want the light sphere", hit.Object)
	}
}

func TestSceneHitFallsBackToMatter(t *testing.T) {
	s := NewScene()
	matter := csg.NewSphere(vmath.V3{X: 5}, 1)
	s.Matter.Add(matter)

	ray := vmath.Ray{Origin: vmath.V3{}, Direction: vmath.V3{X: 1}}
	_, ok, isLight := s.Hit(ray, 0)
	if !ok {
		t.Fatal("expected a hit")
	}
	if isLight {
		t.Error("no lights in scene, should not report isLight")
	}
}

func TestImageClSetRowWritesExpectedPixels(t *testing.T) {
	img := NewImageCl(3, 2)
	row := []vmath.Color{{R: 1}, {G: 1}, {B: 1}}
	img.SetRow(1, row)
	if img.At(0, 1) != (vmath.Color{R: 1}) {
		t.Errorf("At(0,1) = %v, want {R:1}", img.At(0, 1))
	}
	if img.At(2, 1) != (vmath.Color{B: 1}) {
		t.Errorf("At(2,1) = %v, want {B:1}", img.At(2, 1))
	}
	if img.At(0, 0) != (vmath.Color{}) {
		t.Errorf("untouched row 0 should remain black, got %v", img.At(0, 0))
	}
}
