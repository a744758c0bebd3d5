package pnm

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/elastician/csgtracer/scenegraph"
	"github.com/elastician/csgtracer/vmath"
)

func TestQuantizeClampsAndGammaCorrects(t *testing.T) {
	img := scenegraph.NewImageCl(2, 1)
	img.SetRow(0, []vmath.Color{
		{R: 2.0, G: -1.0, B: 0.5},
		{R: 0, G: 0, B: 0},
	})
	out := Quantize(img, 1.0)
	if out.Pixels[0] != 255 {
		t.Fatalf("overbright red channel = %d, want clamped to 255", out.Pixels[0])
	}
	if out.Pixels[1] != 0 {
		t.Fatalf("negative green channel = %d, want clamped to 0", out.Pixels[1])
	}
}

func TestWritePPMHeaderAndSize(t *testing.T) {
	img := scenegraph.NewImageRgb8(4, 3)
	var buf bytes.Buffer
	if err := WritePPM(&buf, img); err != nil {
		t.Fatalf("WritePPM: %v", err)
	}
	want := "P6\n4 3\n255\n"
	got := buf.String()
	if len(got) < len(want) || got[:len(want)] != want {
		t.Fatalf("header = %q, want prefix %q", got[:min(len(got), len(want))], want)
	}
	if len(got)-len(want) != 4*3*3 {
		t.Fatalf("pixel byte count = %d, want %d", len(got)-len(want), 4*3*3)
	}
}

func TestWritePNGRoundTrips(t *testing.T) {
	img := scenegraph.NewImageRgb8(2, 2)
	for i := range img.Pixels {
		img.Pixels[i] = byte(i * 17)
	}
	var buf bytes.Buffer
	if err := WritePNG(&buf, img); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if decoded.Bounds().Dx() != 2 || decoded.Bounds().Dy() != 2 {
		t.Fatalf("decoded size = %v, want 2x2", decoded.Bounds())
	}
}
