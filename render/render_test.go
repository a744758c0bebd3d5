package render

import (
	"context"
	"testing"

	"github.com/elastician/csgtracer/csg"
	"github.com/elastician/csgtracer/scenegraph"
	"github.com/elastician/csgtracer/vmath"
)

func newTestScene(w, h int) *scenegraph.Scene {
	scene := scenegraph.NewScene()
	scene.Params.ImageWidth = w
	scene.Params.ImageHeight = h
	scene.Params.Threads = 2
	scene.Params.DirectSamples = 4
	scene.Params.BackgroundColor = vmath.RGB(0.1, 0.2, 0.3)
	scene.Camera = scenegraph.Camera{
		Position:   vmath.V3{X: 0, Y: 0, Z: -5},
		ViewDir:    vmath.V3{Z: 1},
		TopDir:     vmath.V3{Y: 1},
		FovDegrees: 60,
	}

	sphere := csg.NewSphere(vmath.V3{}, 1)
	sphere.Color = vmath.RGB(0.8, 0.2, 0.2)
	scene.Matter.Add(sphere)

	light := csg.NewSphere(vmath.V3{X: 3, Y: 3, Z: -3}, 0.5)
	light.Radiance = 20
	light.Color = vmath.RGB(1, 1, 1)
	scene.Light.Add(light)

	return scene
}

func TestRenderProducesFullImage(t *testing.T) {
	scene := newTestScene(16, 12)
	img, err := Render(context.Background(), scene, nil)
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if img.Width != 16 || img.Height != 12 {
		t.Fatalf("image dims = %dx%d, want 16x12", img.Width, img.Height)
	}
	if len(img.Pixels) != 16*12 {
		t.Fatalf("pixel count = %d, want %d", len(img.Pixels), 16*12)
	}
}

func TestRenderBackgroundWhereNothingIsHit(t *testing.T) {
	scene := newTestScene(8, 8)
	img, err := Render(context.Background(), scene, nil)
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	// The top-left corner ray should miss the centered unit sphere
	// entirely and land on background.
	corner := img.At(0, 0)
	if corner.R == 0 && corner.G == 0 && corner.B == 0 {
		t.Fatalf("corner pixel = %v, expected nonzero background color", corner)
	}
}

func TestRenderReportsProgressForEveryRow(t *testing.T) {
	scene := newTestScene(10, 6)
	var mu struct{ n int }
	_, err := Render(context.Background(), scene, func(rowsDone, totalRows int) {
		if totalRows != 6 {
			t.Errorf("totalRows = %d, want 6", totalRows)
		}
		mu.n++
	})
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if mu.n != 6 {
		t.Fatalf("progress called %d times, want 6", mu.n)
	}
}

func TestRenderRespectsCancellation(t *testing.T) {
	scene := newTestScene(64, 64)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Render(ctx, scene, nil)
	if err == nil {
		t.Fatal("expected Render to return an error for an already-cancelled context")
	}
}

func TestRenderRejectsInvalidDimensions(t *testing.T) {
	scene := newTestScene(0, 10)
	_, err := Render(context.Background(), scene, nil)
	if err == nil {
		t.Fatal("expected Render to reject a zero-width image")
	}
}
