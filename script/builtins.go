package script

import (
	"math"

	"github.com/elastician/csgtracer/csg"
	"github.com/elastician/csgtracer/vmath"
)

// BuiltinFunc is the signature every builtin and user-visible
// function value shares, mirroring the teacher's Builtin.Func shape
// generalized from a stack-machine side effect to an argument list
// and return value.
type BuiltinFunc func(it *Interpreter, args []Value) (Value, error)

// VBuiltinRef lets a builtin be passed around as a first-class value
// (e.g. stored via def and called later), without this language
// having user-defined function literals of its own.
type VBuiltinRef struct {
	Name string
	Fn   BuiltinFunc
}

func (VBuiltinRef) value()          {}
func (v VBuiltinRef) String() string { return "builtin:" + v.Name }

func atanDeg(x float64) float64 { return math.Atan(x) * 180 / math.Pi }

func wantNumber(args []Value, i int) (float64, error) {
	if i >= len(args) {
		return 0, evalErrf("missing argument %d", i)
	}
	n, ok := asNumber(args[i])
	if !ok {
		return 0, evalErrf("argument %d: expected a number, got %v", i, args[i])
	}
	return n, nil
}

func wantVector(args []Value, i int) (vmath.V3, error) {
	if i >= len(args) {
		return vmath.V3{}, evalErrf("missing argument %d", i)
	}
	v, ok := asVector(args[i])
	if !ok {
		return vmath.V3{}, evalErrf("argument %d: expected a vector, got %v", i, args[i])
	}
	return v, nil
}

func wantObject(args []Value, i int) (csg.Object, error) {
	if i >= len(args) {
		return nil, evalErrf("missing argument %d", i)
	}
	o, ok := asObject(args[i])
	if !ok {
		return nil, evalErrf("argument %d: expected an object, got %v", i, args[i])
	}
	return o, nil
}

func wantObjectProps(o csg.Object) *csg.ObjectProperties { return o.Properties() }

var builtins map[string]BuiltinFunc

func init() {
	builtins = map[string]BuiltinFunc{
		// Vector / color / rotation builders
		"vector":    biVector,
		"point":     biVector,
		"color":     biColor,
		"rotate_x":  biRotateX,
		"rotate_y":  biRotateY,
		"rotate_z":  biRotateZ,

		// Small math library
		"sin":   biMath1(math.Sin),
		"cos":   biMath1(math.Cos),
		"tan":   biMath1(math.Tan),
		"sqrt":  biMath1(math.Sqrt),
		"abs":   biMath1(math.Abs),
		"floor": biMath1(math.Floor),
		"ceil":  biMath1(math.Ceil),
		"pow":   biPow,
		"min":   biMin,
		"max":   biMax,

		// Primitive construction
		"create_plane":        biCreatePlane,
		"create_sphere":       biCreateSphere,
		"create_cylinder":     biCreateCylinder,
		"create_cone":         biCreateCone,
		"create_torus":        biCreateTorus,
		"create_ellipsoid":    biCreateEllipsoid,
		"create_hyperboloid1": biCreateHyperboloid1,
		"create_hyperboloid2": biCreateHyperboloid2,

		// CSG composition
		"union":        biUnion,
		"intersection": biIntersection,
		"negate":       biNegate,
		"translate":    biTranslate,
		"rotate":       biRotate,
		"scale":        biScale,

		// Object mutators, grounded on objects.c's obj_meval_key table
		"set_color":                  biSetColor,
		"set_transparency":           biSetTransparency,
		"set_refractive_index":       biSetRefractiveIndex,
		"set_radiance":               biSetRadiance,
		"set_texture_field":          biSetTextureField,
		"set_envelope":               biSetEnvelope,
		"set_auto_envelope":          biSetAutoEnvelope,
		"set_fresnel_reflectivity":   biSetFresnelReflectivity,
		"set_chromatic_reflectivity": biSetChromaticReflectivity,
		"set_diffuse_reflectivity":   biSetDiffuseReflectivity,
	}
}

func biVector(it *Interpreter, args []Value) (Value, error) {
	x, err := wantNumber(args, 0)
	if err != nil {
		return nil, err
	}
	y, err := wantNumber(args, 1)
	if err != nil {
		return nil, err
	}
	z, err := wantNumber(args, 2)
	if err != nil {
		return nil, err
	}
	return VVector{V: vmath.V3{X: x, Y: y, Z: z}}, nil
}

func biColor(it *Interpreter, args []Value) (Value, error) {
	r, err := wantNumber(args, 0)
	if err != nil {
		return nil, err
	}
	g, err := wantNumber(args, 1)
	if err != nil {
		return nil, err
	}
	b, err := wantNumber(args, 2)
	if err != nil {
		return nil, err
	}
	return VColor{C: vmath.RGB(r, g, b)}, nil
}

func degToRad(deg float64) float64 { return deg * math.Pi / 180 }

func biRotateX(it *Interpreter, args []Value) (Value, error) {
	deg, err := wantNumber(args, 0)
	if err != nil {
		return nil, err
	}
	return VMatrix{M: vmath.RotX(degToRad(deg))}, nil
}

func biRotateY(it *Interpreter, args []Value) (Value, error) {
	deg, err := wantNumber(args, 0)
	if err != nil {
		return nil, err
	}
	return VMatrix{M: vmath.RotY(degToRad(deg))}, nil
}

func biRotateZ(it *Interpreter, args []Value) (Value, error) {
	deg, err := wantNumber(args, 0)
	if err != nil {
		return nil, err
	}
	return VMatrix{M: vmath.RotZ(degToRad(deg))}, nil
}

func biMath1(f func(float64) float64) BuiltinFunc {
	return func(it *Interpreter, args []Value) (Value, error) {
		x, err := wantNumber(args, 0)
		if err != nil {
			return nil, err
		}
		return VNumber(f(x)), nil
	}
}

func biPow(it *Interpreter, args []Value) (Value, error) {
	x, err := wantNumber(args, 0)
	if err != nil {
		return nil, err
	}
	y, err := wantNumber(args, 1)
	if err != nil {
		return nil, err
	}
	return VNumber(math.Pow(x, y)), nil
}

func biMin(it *Interpreter, args []Value) (Value, error) {
	x, err := wantNumber(args, 0)
	if err != nil {
		return nil, err
	}
	y, err := wantNumber(args, 1)
	if err != nil {
		return nil, err
	}
	return VNumber(math.Min(x, y)), nil
}

func biMax(it *Interpreter, args []Value) (Value, error) {
	x, err := wantNumber(args, 0)
	if err != nil {
		return nil, err
	}
	y, err := wantNumber(args, 1)
	if err != nil {
		return nil, err
	}
	return VNumber(math.Max(x, y)), nil
}

func biCreatePlane(it *Interpreter, args []Value) (Value, error) {
	point, err := wantVector(args, 0)
	if err != nil {
		return nil, err
	}
	normal, err := wantVector(args, 1)
	if err != nil {
		return nil, err
	}
	return VObject{Obj: csg.NewPlane(point, normal)}, nil
}

func biCreateSphere(it *Interpreter, args []Value) (Value, error) {
	center, err := wantVector(args, 0)
	if err != nil {
		return nil, err
	}
	radius, err := wantNumber(args, 1)
	if err != nil {
		return nil, err
	}
	if radius <= 0 {
		return nil, evalErrf("create_sphere: radius must be positive, got %v", radius)
	}
	return VObject{Obj: csg.NewSphere(center, radius)}, nil
}

func biCreateCylinder(it *Interpreter, args []Value) (Value, error) {
	center, err := wantVector(args, 0)
	if err != nil {
		return nil, err
	}
	rx, err := wantNumber(args, 1)
	if err != nil {
		return nil, err
	}
	ry, err := wantNumber(args, 2)
	if err != nil {
		return nil, err
	}
	return VObject{Obj: csg.NewCylinder(center, rx, ry)}, nil
}

func biCreateCone(it *Interpreter, args []Value) (Value, error) {
	center, err := wantVector(args, 0)
	if err != nil {
		return nil, err
	}
	rx, err := wantNumber(args, 1)
	if err != nil {
		return nil, err
	}
	ry, err := wantNumber(args, 2)
	if err != nil {
		return nil, err
	}
	rz, err := wantNumber(args, 3)
	if err != nil {
		return nil, err
	}
	return VObject{Obj: csg.NewCone(center, rx, ry, rz)}, nil
}

func biCreateTorus(it *Interpreter, args []Value) (Value, error) {
	center, err := wantVector(args, 0)
	if err != nil {
		return nil, err
	}
	majorR, err := wantNumber(args, 1)
	if err != nil {
		return nil, err
	}
	minorR, err := wantNumber(args, 2)
	if err != nil {
		return nil, err
	}
	if majorR <= 0 || minorR <= 0 {
		return nil, evalErrf("create_torus: radii must be positive")
	}
	return VObject{Obj: csg.NewTorus(center, majorR, minorR)}, nil
}

func biCreateEllipsoid(it *Interpreter, args []Value) (Value, error) {
	center, err := wantVector(args, 0)
	if err != nil {
		return nil, err
	}
	rx, err := wantNumber(args, 1)
	if err != nil {
		return nil, err
	}
	ry, err := wantNumber(args, 2)
	if err != nil {
		return nil, err
	}
	rz, err := wantNumber(args, 3)
	if err != nil {
		return nil, err
	}
	return VObject{Obj: csg.NewEllipsoid(center, rx, ry, rz)}, nil
}

func biCreateHyperboloid1(it *Interpreter, args []Value) (Value, error) {
	center, err := wantVector(args, 0)
	if err != nil {
		return nil, err
	}
	rx, err := wantNumber(args, 1)
	if err != nil {
		return nil, err
	}
	ry, err := wantNumber(args, 2)
	if err != nil {
		return nil, err
	}
	rz, err := wantNumber(args, 3)
	if err != nil {
		return nil, err
	}
	return VObject{Obj: csg.NewHyperboloid1(center, rx, ry, rz)}, nil
}

func biCreateHyperboloid2(it *Interpreter, args []Value) (Value, error) {
	center, err := wantVector(args, 0)
	if err != nil {
		return nil, err
	}
	rx, err := wantNumber(args, 1)
	if err != nil {
		return nil, err
	}
	ry, err := wantNumber(args, 2)
	if err != nil {
		return nil, err
	}
	rz, err := wantNumber(args, 3)
	if err != nil {
		return nil, err
	}
	return VObject{Obj: csg.NewHyperboloid2(center, rx, ry, rz)}, nil
}

func biUnion(it *Interpreter, args []Value) (Value, error) {
	a, err := wantObject(args, 0)
	if err != nil {
		return nil, err
	}
	b, err := wantObject(args, 1)
	if err != nil {
		return nil, err
	}
	return VObject{Obj: csg.NewPairOutside(a, b)}, nil
}

func biIntersection(it *Interpreter, args []Value) (Value, error) {
	a, err := wantObject(args, 0)
	if err != nil {
		return nil, err
	}
	b, err := wantObject(args, 1)
	if err != nil {
		return nil, err
	}
	return VObject{Obj: csg.NewPairInside(a, b)}, nil
}

func biNegate(it *Interpreter, args []Value) (Value, error) {
	a, err := wantObject(args, 0)
	if err != nil {
		return nil, err
	}
	return VObject{Obj: csg.NewNeg(a)}, nil
}

func biTranslate(it *Interpreter, args []Value) (Value, error) {
	o, err := wantObject(args, 0)
	if err != nil {
		return nil, err
	}
	delta, err := wantVector(args, 1)
	if err != nil {
		return nil, err
	}
	o.Move(delta)
	return VObject{Obj: o}, nil
}

func biRotate(it *Interpreter, args []Value) (Value, error) {
	o, err := wantObject(args, 0)
	if err != nil {
		return nil, err
	}
	if len(args) < 2 {
		return nil, evalErrf("rotate: missing rotation matrix argument")
	}
	m, ok := args[1].(VMatrix)
	if !ok {
		return nil, evalErrf("rotate: second argument must be a rotation matrix (rotate_x/y/z(...))")
	}
	o.Rotate(m.M)
	return VObject{Obj: o}, nil
}

func biScale(it *Interpreter, args []Value) (Value, error) {
	o, err := wantObject(args, 0)
	if err != nil {
		return nil, err
	}
	if len(args) < 2 {
		return nil, evalErrf("scale: missing scale factor argument")
	}
	if n, ok := asNumber(args[1]); ok {
		o.ScaleUniform(n)
		return VObject{Obj: o}, nil
	}
	if v, ok := asVector(args[1]); ok {
		return VObject{Obj: csg.NewScaleNonUniform(o, v)}, nil
	}
	return nil, evalErrf("scale: second argument must be a number or a vector")
}

func biSetColor(it *Interpreter, args []Value) (Value, error) {
	o, err := wantObject(args, 0)
	if err != nil {
		return nil, err
	}
	col, ok := args[1].(VColor)
	if !ok {
		return nil, evalErrf("set_color: second argument must be a color")
	}
	wantObjectProps(o).Color = col.C
	return VObject{Obj: o}, nil
}

func biSetTransparency(it *Interpreter, args []Value) (Value, error) {
	o, err := wantObject(args, 0)
	if err != nil {
		return nil, err
	}
	t, err := wantNumber(args, 1)
	if err != nil {
		return nil, err
	}
	wantObjectProps(o).Transparency = t
	return VObject{Obj: o}, nil
}

func biSetRefractiveIndex(it *Interpreter, args []Value) (Value, error) {
	o, err := wantObject(args, 0)
	if err != nil {
		return nil, err
	}
	n, err := wantNumber(args, 1)
	if err != nil {
		return nil, err
	}
	if n < 1.0 {
		return nil, evalErrf("set_refractive_index: must be >= 1, got %v", n)
	}
	wantObjectProps(o).RefractiveIndex = n
	return VObject{Obj: o}, nil
}

func biSetRadiance(it *Interpreter, args []Value) (Value, error) {
	o, err := wantObject(args, 0)
	if err != nil {
		return nil, err
	}
	r, err := wantNumber(args, 1)
	if err != nil {
		return nil, err
	}
	wantObjectProps(o).Radiance = r
	return VObject{Obj: o}, nil
}

func biSetTextureField(it *Interpreter, args []Value) (Value, error) {
	o, err := wantObject(args, 0)
	if err != nil {
		return nil, err
	}
	if len(args) < 2 {
		return nil, evalErrf("set_texture_field: missing texture kind")
	}
	kind, ok := args[1].(VString)
	if !ok {
		return nil, evalErrf("set_texture_field: first argument after object must be a texture kind string")
	}
	switch string(kind) {
	case "plain":
		if len(args) < 3 {
			return nil, evalErrf("set_texture_field(plain, color): missing color argument")
		}
		col, ok := args[2].(VColor)
		if !ok {
			return nil, evalErrf("set_texture_field(plain, color): expected a color")
		}
		wantObjectProps(o).Texture = csg.PlainTexture{Color_: col.C}
	case "checker":
		if len(args) < 4 {
			return nil, evalErrf("set_texture_field(checker, colorA, colorB, scale): missing arguments")
		}
		a, ok1 := args[2].(VColor)
		b, ok2 := args[3].(VColor)
		scale, err := wantNumber(args, 4)
		if !ok1 || !ok2 || err != nil {
			return nil, evalErrf("set_texture_field(checker, colorA, colorB, scale): bad arguments")
		}
		wantObjectProps(o).Texture = csg.CheckerTexture{A: a.C, B: b.C, Scale: scale}
	default:
		return nil, evalErrf("set_texture_field: unknown texture kind %q", kind)
	}
	return VObject{Obj: o}, nil
}

func biSetEnvelope(it *Interpreter, args []Value) (Value, error) {
	o, err := wantObject(args, 0)
	if err != nil {
		return nil, err
	}
	center, err := wantVector(args, 1)
	if err != nil {
		return nil, err
	}
	radius, err := wantNumber(args, 2)
	if err != nil {
		return nil, err
	}
	wantObjectProps(o).Envelope = &csg.Envelope{Center: center, Radius: radius}
	return VObject{Obj: o}, nil
}

func biSetAutoEnvelope(it *Interpreter, args []Value) (Value, error) {
	o, err := wantObject(args, 0)
	if err != nil {
		return nil, err
	}
	centroidGuess := wantObjectProps(o).Position
	n := 1000
	factor := 1.1
	if len(args) > 1 {
		if v, ok := asNumber(args[1]); ok {
			n = int(v)
		}
	}
	if len(args) > 2 {
		if v, ok := asNumber(args[2]); ok {
			factor = v
		}
	}
	env := csg.AutoEnvelopeFunc(centroidGuess, n, 1234, factor, func(r vmath.Ray) (float64, bool) { return o.RayHit(r, 0) })
	wantObjectProps(o).Envelope = &env
	return VObject{Obj: o}, nil
}

func biSetFresnelReflectivity(it *Interpreter, args []Value) (Value, error) {
	o, err := wantObject(args, 0)
	if err != nil {
		return nil, err
	}
	n, err := wantNumber(args, 1)
	if err != nil {
		return nil, err
	}
	wantObjectProps(o).FresnelReflectivity = n
	return VObject{Obj: o}, nil
}

func biSetChromaticReflectivity(it *Interpreter, args []Value) (Value, error) {
	o, err := wantObject(args, 0)
	if err != nil {
		return nil, err
	}
	r, err := wantNumber(args, 1)
	if err != nil {
		return nil, err
	}
	wantObjectProps(o).SpecularReflectivity = r
	return VObject{Obj: o}, nil
}

func biSetDiffuseReflectivity(it *Interpreter, args []Value) (Value, error) {
	o, err := wantObject(args, 0)
	if err != nil {
		return nil, err
	}
	r, err := wantNumber(args, 1)
	if err != nil {
		return nil, err
	}
	wantObjectProps(o).DiffuseReflectivity = r
	return VObject{Obj: o}, nil
}
