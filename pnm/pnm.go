// Package pnm quantizes a rendered linear-color image to 8 bits per
// channel and writes it out, either as a raw PPM (P6) for the CLI's
// primary output or as a PNG preview. Grounded on the P6 writer in the tracer family of
// other_examples/ (WritePPM) and on the teacher's use of image/png
// for its golden test fixtures in raytracer_test.go.
package pnm

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/elastician/csgtracer/scenegraph"
)

// Quantize gamma-corrects and clamps every pixel of img via
// vmath.Color.Sat and packs it into an 8-bit-per-channel image ready
// for output.
func Quantize(img *scenegraph.ImageCl, gamma float64) *scenegraph.ImageRgb8 {
	out := scenegraph.NewImageRgb8(img.Width, img.Height)
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			c := img.At(x, y).Sat(gamma)
			i := (y*img.Width + x) * 3
			out.Pixels[i+0] = byte(c.R*255 + 0.5)
			out.Pixels[i+1] = byte(c.G*255 + 0.5)
			out.Pixels[i+2] = byte(c.B*255 + 0.5)
		}
	}
	return out
}

// WritePPM writes img as a binary PPM (P6): a short ASCII header
// followed by raw row-major RGB triples.
func WritePPM(w io.Writer, img *scenegraph.ImageRgb8) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n255\n", img.Width, img.Height); err != nil {
		return fmt.Errorf("pnm: write header: %w", err)
	}
	if _, err := bw.Write(img.Pixels); err != nil {
		return fmt.Errorf("pnm: write pixels: %w", err)
	}
	return bw.Flush()
}

// WritePNG writes img as a PNG, used for the CLI's -preview output;
// the standard image/png decoder can read it back.
func WritePNG(w io.Writer, img *scenegraph.ImageRgb8) error {
	rgba := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			i := (y*img.Width + x) * 3
			rgba.Set(x, y, color.RGBA{
				R: img.Pixels[i+0],
				G: img.Pixels[i+1],
				B: img.Pixels[i+2],
				A: 255,
			})
		}
	}
	return png.Encode(w, rgba)
}
