package scenegraph

import (
	"sync"

	"github.com/elastician/csgtracer/vmath"
)

// ImageCl is a linear-color floating point image, the render target
// a Scheduler writes into. Grounded on original_source/src/scene.c's
// row_cl_s / image_creator_s row storage, generalized from rows-of-
// rows to a flat buffer.
type ImageCl struct {
	Width, Height int
	Pixels        []vmath.Color

	mu sync.Mutex
}

func NewImageCl(width, height int) *ImageCl {
	return &ImageCl{Width: width, Height: height, Pixels: make([]vmath.Color, width*height)}
}

// SetRow writes an entire row under the image's mutex, the single
// piece of shared mutable state a render's worker goroutines contend
// on. Grounded on image_creator_s_set_row.
func (img *ImageCl) SetRow(y int, row []vmath.Color) {
	img.mu.Lock()
	defer img.mu.Unlock()
	copy(img.Pixels[y*img.Width:(y+1)*img.Width], row)
}

func (img *ImageCl) At(x, y int) vmath.Color {
	return img.Pixels[y*img.Width+x]
}

// ImageRgb8 is the quantized, gamma-corrected 8-bit-per-channel image
// the pnm package writes out.
type ImageRgb8 struct {
	Width, Height int
	Pixels        []byte // RGB triples, row-major
}

func NewImageRgb8(width, height int) *ImageRgb8 {
	return &ImageRgb8{Width: width, Height: height, Pixels: make([]byte, width*height*3)}
}
