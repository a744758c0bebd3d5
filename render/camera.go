package render

import (
	"math"

	"github.com/elastician/csgtracer/scenegraph"
	"github.com/elastician/csgtracer/vmath"
)

// frame is a camera's orthonormal basis plus the image-plane extents
// derived from its field of view, precomputed once per render.
type frame struct {
	position                vmath.V3
	right, up, forward      vmath.V3
	halfWidth, halfHeight   float64
}

// buildFrame constructs the camera frame a render's primary rays are
// cast from, grounded on the teacher's viewport-from-fov computation
// in Render, generalized to an arbitrary view/top pair via
// vmath.OrthonormalFromViewTop instead of a fixed eye-looking-down-Z
// axis.
func buildFrame(cam scenegraph.Camera, aspectRatio float64) frame {
	basis := vmath.OrthonormalFromViewTop(cam.ViewDir, cam.TopDir)
	fovRadians := cam.FovDegrees * math.Pi / 180.0
	halfWidth := math.Tan(fovRadians / 2.0)
	halfHeight := halfWidth / aspectRatio

	return frame{
		position:   cam.Position,
		right:      basis.Rows[0],
		up:         basis.Rows[1],
		forward:    basis.Rows[2],
		halfWidth:  halfWidth,
		halfHeight: halfHeight,
	}
}

// primaryRay maps a pixel coordinate (plus a subpixel jitter in
// [-0.5,0.5) for antialiasing) to a world-space ray from the camera.
func (f frame) primaryRay(px, py float64, width, height int) vmath.Ray {
	u := (2*px/float64(width) - 1) * f.halfWidth
	v := (1 - 2*py/float64(height)) * f.halfHeight

	dir := f.forward.Add(f.right.Scale(u)).Add(f.up.Scale(v)).Normalize()
	return vmath.Ray{Origin: f.position, Direction: dir}
}
