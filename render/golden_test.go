package render

import (
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/elastician/csgtracer/internal/prim"
	"github.com/elastician/csgtracer/pnm"
	"github.com/elastician/csgtracer/scenegraph"
)

// toImage adapts a quantized scenegraph.ImageRgb8 to the stdlib
// image.Image interface prim.SSIM expects.
func toImage(quantized *scenegraph.ImageRgb8) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, quantized.Width, quantized.Height))
	for y := 0; y < quantized.Height; y++ {
		for x := 0; x < quantized.Width; x++ {
			i := (y*quantized.Width + x) * 3
			img.Set(x, y, color.RGBA{
				R: quantized.Pixels[i],
				G: quantized.Pixels[i+1],
				B: quantized.Pixels[i+2],
				A: 255,
			})
		}
	}
	return img
}

// TestRenderIsDeterministicAcrossWorkerCounts guards the scheduler's
// claim that which goroutine renders a row never affects its pixels:
// per-pixel antialiasing jitter is seeded from the pixel's own
// coordinates (vmath.SeedFromPoint), not from goroutine-local state.
// Grounded on the teacher's internal/prim.SSIM, originally written for
// comparing rendered output against a reference image; here it
// compares two renders of the same scene taken with different worker
// pool sizes and requires them to be visually identical.
func TestRenderIsDeterministicAcrossWorkerCounts(t *testing.T) {
	scene1 := newTestScene(24, 24)
	scene1.Params.Threads = 1
	img1, err := Render(context.Background(), scene1, nil)
	if err != nil {
		t.Fatalf("Render (1 worker): %v", err)
	}

	scene2 := newTestScene(24, 24)
	scene2.Params.Threads = 8
	img2, err := Render(context.Background(), scene2, nil)
	if err != nil {
		t.Fatalf("Render (8 workers): %v", err)
	}

	q1 := pnm.Quantize(img1, scene1.Params.Gamma)
	q2 := pnm.Quantize(img2, scene2.Params.Gamma)

	score, err := prim.SSIM(toImage(q1), toImage(q2))
	if err != nil {
		t.Fatalf("SSIM: %v", err)
	}
	if score < 0.999 {
		t.Fatalf("SSIM between 1-worker and 8-worker renders = %v, want >= 0.999 (should be bit-identical)", score)
	}
}
