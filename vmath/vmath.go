// Package vmath implements the vector, matrix and ray algebra the CSG
// kernel and light-transport code are built on.
package vmath

import (
	"fmt"
	"math"
)

// Epsilon is the ray-marching and surface-offset tolerance used
// throughout the geometry kernel to avoid self-intersection.
const Epsilon = 1e-7

// V3 is a three-component vector, used for points, directions and
// colors alike.
type V3 struct {
	X, Y, Z float64
}

func NewV3(x, y, z float64) V3 { return V3{x, y, z} }

func (v V3) String() string {
	return fmt.Sprintf("(%.4f, %.4f, %.4f)", v.X, v.Y, v.Z)
}

func (v V3) Add(o V3) V3 { return V3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v V3) Sub(o V3) V3 { return V3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v V3) Mul(o V3) V3 { return V3{v.X * o.X, v.Y * o.Y, v.Z * o.Z} }
func (v V3) Scale(f float64) V3 { return V3{v.X * f, v.Y * f, v.Z * f} }
func (v V3) Neg() V3 { return V3{-v.X, -v.Y, -v.Z} }

func (v V3) Dot(o V3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

func (v V3) Cross(o V3) V3 {
	return V3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

func (v V3) SqLength() float64 { return v.Dot(v) }
func (v V3) Length() float64   { return math.Sqrt(v.SqLength()) }

func (v V3) IsZero() bool { return v.X == 0 && v.Y == 0 && v.Z == 0 }

// OfLength returns v scaled to the given length. Returns the zero
// vector if v itself is (near) zero.
func (v V3) OfLength(length float64) V3 {
	l := v.Length()
	if l < Epsilon {
		return V3{}
	}
	return v.Scale(length / l)
}

// Normalize returns v scaled to unit length.
func (v V3) Normalize() V3 { return v.OfLength(1.0) }

// Reflection reflects direction d off a surface with the given
// (unit) normal, following the standard incident-ray convention:
// d points toward the surface, the result points away from it.
func (d V3) Reflection(normal V3) V3 {
	return d.Sub(normal.Scale(2 * d.Dot(normal)))
}

// OrthogonalProjection returns the component of v orthogonal to the
// given (unit) axis.
func (v V3) OrthogonalProjection(axis V3) V3 {
	return v.Sub(axis.Scale(v.Dot(axis)))
}

func (v V3) CosineSimilarity(o V3) float64 {
	return v.Dot(o) / (v.Length() * o.Length())
}

func (v V3) Lerp(o V3, t float64) V3 {
	return V3{
		v.X + (o.X-v.X)*t,
		v.Y + (o.Y-v.Y)*t,
		v.Z + (o.Z-v.Z)*t,
	}
}

// Clamp limits each component to [lo, hi].
func (v V3) Clamp(lo, hi float64) V3 {
	return V3{Clamp(v.X, lo, hi), Clamp(v.Y, lo, hi), Clamp(v.Z, lo, hi)}
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	return math.Min(math.Max(x, lo), hi)
}

// Con returns a canonical orthonormal vector, perpendicular to v:
// the unit vector most orthogonal to v among the coordinate axes,
// projected and re-normalized. Used to seed Gram-Schmidt bases when
// no preferred "up" direction is given.
func (v V3) Con() V3 {
	ax, ay, az := math.Abs(v.X), math.Abs(v.Y), math.Abs(v.Z)
	var seed V3
	switch {
	case ax <= ay && ax <= az:
		seed = V3{1, 0, 0}
	case ay <= ax && ay <= az:
		seed = V3{0, 1, 0}
	default:
		seed = V3{0, 0, 1}
	}
	return seed.OrthogonalProjection(v.Normalize()).Normalize()
}

// Color is a linear RGB triple. It shares V3's shape but not its
// identity, so vector algebra and color algebra can't be confused at
// the type level.
type Color struct {
	R, G, B float64
}

func RGB(r, g, b float64) Color { return Color{r, g, b} }

var Black = Color{}

func (c Color) Add(o Color) Color   { return Color{c.R + o.R, c.G + o.G, c.B + o.B} }
func (c Color) Sub(o Color) Color   { return Color{c.R - o.R, c.G - o.G, c.B - o.B} }
func (c Color) Mul(o Color) Color   { return Color{c.R * o.R, c.G * o.G, c.B * o.B} }
func (c Color) Scale(f float64) Color { return Color{c.R * f, c.G * f, c.B * f} }

func (c Color) V3() V3    { return V3{c.R, c.G, c.B} }
func FromV3(v V3) Color   { return Color{v.X, v.Y, v.Z} }

// Sat gamma-corrects and clamps c to [0,1] on every channel, the last
// step before quantization to 8-bit output.
func (c Color) Sat(gamma float64) Color {
	f := func(x float64) float64 {
		if x <= 0 {
			return 0
		}
		return Clamp(math.Pow(x, gamma), 0, 1)
	}
	return Color{f(c.R), f(c.G), f(c.B)}
}

// M3 is a row-major 3x3 matrix, used for rotations and camera frames.
type M3 struct {
	Rows [3]V3
}

func Ident3() M3 {
	return M3{[3]V3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}}
}

// MulV multiplies m by the column vector v: m*v.
func (m M3) MulV(v V3) V3 {
	return V3{m.Rows[0].Dot(v), m.Rows[1].Dot(v), m.Rows[2].Dot(v)}
}

// TMulV multiplies the transpose of m by v: m^T*v.
func (m M3) TMulV(v V3) V3 {
	return V3{
		m.Rows[0].X*v.X + m.Rows[1].X*v.Y + m.Rows[2].X*v.Z,
		m.Rows[0].Y*v.X + m.Rows[1].Y*v.Y + m.Rows[2].Y*v.Z,
		m.Rows[0].Z*v.X + m.Rows[1].Z*v.Y + m.Rows[2].Z*v.Z,
	}
}

func (m M3) Transposed() M3 {
	return M3{[3]V3{
		{m.Rows[0].X, m.Rows[1].X, m.Rows[2].X},
		{m.Rows[0].Y, m.Rows[1].Y, m.Rows[2].Y},
		{m.Rows[0].Z, m.Rows[1].Z, m.Rows[2].Z},
	}}
}

func (m M3) Mul(o M3) M3 {
	ot := o.Transposed()
	var r M3
	for i := 0; i < 3; i++ {
		r.Rows[i] = V3{m.Rows[i].Dot(ot.Rows[0]), m.Rows[i].Dot(ot.Rows[1]), m.Rows[i].Dot(ot.Rows[2])}
	}
	return r
}

func RotX(a float64) M3 {
	s, c := math.Sincos(a)
	return M3{[3]V3{{1, 0, 0}, {0, c, -s}, {0, s, c}}}
}

func RotY(a float64) M3 {
	s, c := math.Sincos(a)
	return M3{[3]V3{{c, 0, s}, {0, 1, 0}, {-s, 0, c}}}
}

func RotZ(a float64) M3 {
	s, c := math.Sincos(a)
	return M3{[3]V3{{c, -s, 0}, {s, c, 0}, {0, 0, 1}}}
}

// OrthonormalFromViewTop builds a right-handed camera frame (rows:
// right, up, forward) from a view direction and an approximate "top"
// (up) direction via Gram-Schmidt. forward is view, normalized; right
// is forward x top, re-normalized; up completes the frame.
func OrthonormalFromViewTop(view, top V3) M3 {
	forward := view.Normalize()
	right := forward.Cross(top).Normalize()
	if right.IsZero() {
		right = forward.Con()
	}
	up := right.Cross(forward).Normalize()
	return M3{[3]V3{right, up, forward}}
}

// Ray is a parametric ray p(t) = Origin + t*Direction. Direction is
// conventionally, but not necessarily, unit length.
type Ray struct {
	Origin    V3
	Direction V3
}

func (r Ray) At(t float64) V3 { return r.Origin.Add(r.Direction.Scale(t)) }

func RayFromTo(from, to V3) Ray {
	return Ray{Origin: from, Direction: to.Sub(from)}
}

// RayCone is a cone of rays from Apex toward Axis (unit), with
// half-angle such that CosHalfAngle = cos(half-angle). It models both
// a light source's footprint as seen from a point (areal coverage)
// and a bounding envelope's field of view.
type RayCone struct {
	Apex          V3
	Axis          V3
	CosHalfAngle  float64
}

// ArealCoverage returns the solid-angle fraction 1 - cos(half-angle)
// the cone occupies, used to weight area-light sampling.
func (c RayCone) ArealCoverage() float64 {
	return 1.0 - c.CosHalfAngle
}

// V2 is a two-component vector, used for surface UV coordinates and
// image-plane offsets.
type V2 struct {
	X, Y float64
}

func (v V2) Add(o V2) V2        { return V2{v.X + o.X, v.Y + o.Y} }
func (v V2) Scale(f float64) V2 { return V2{v.X * f, v.Y * f} }
