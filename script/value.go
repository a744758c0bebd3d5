package script

import (
	"fmt"

	"github.com/elastician/csgtracer/csg"
	"github.com/elastician/csgtracer/vmath"
)

// Value is the evaluator's runtime value sum-type, generalizing the
// teacher's gml.Value (VInt/VReal/VBool/VString/VArray/VClosure) to
// this language's value space: numbers are always float64 (the
// language has no separate integer type), plus vector, color, matrix
// and object values the scene-construction builtins produce and
// consume.
type Value interface {
	fmt.Stringer
	value()
}

type VNumber float64

func (VNumber) value()          {}
func (v VNumber) String() string { return fmt.Sprintf("%g", float64(v)) }

type VString string

func (VString) value()          {}
func (v VString) String() string { return string(v) }

type VBool bool

func (VBool) value()          {}
func (v VBool) String() string { return fmt.Sprintf("%t", bool(v)) }

type VVector struct{ V vmath.V3 }

func (VVector) value()          {}
func (v VVector) String() string { return v.V.String() }

type VColor struct{ C vmath.Color }

func (VColor) value()          {}
func (v VColor) String() string { return fmt.Sprintf("Color%v", v.C) }

type VMatrix struct{ M vmath.M3 }

func (VMatrix) value()          {}
func (v VMatrix) String() string { return "Matrix3" }

// VObject wraps a CSG object under construction, the scripting
// language's handle onto the geometry kernel.
type VObject struct{ Obj csg.Object }

func (VObject) value()          {}
func (v VObject) String() string { return fmt.Sprintf("Object(%T)", v.Obj) }

type VArray struct{ Elements []Value }

func (VArray) value() {}
func (v VArray) String() string {
	s := "["
	for i, e := range v.Elements {
		if i > 0 {
			s += ", "
		}
		s += e.String()
	}
	return s + "]"
}

// VNil is the result of a field read that doesn't exist, making ??
// meaningful.
type VNil struct{}

func (VNil) value()          {}
func (VNil) String() string { return "nil" }

func truthy(v Value) bool {
	switch v := v.(type) {
	case VBool:
		return bool(v)
	case VNil:
		return false
	case VNumber:
		return v != 0
	default:
		return true
	}
}

func asNumber(v Value) (float64, bool) {
	n, ok := v.(VNumber)
	return float64(n), ok
}

func asVector(v Value) (vmath.V3, bool) {
	vec, ok := v.(VVector)
	return vec.V, ok
}

func asObject(v Value) (csg.Object, bool) {
	o, ok := v.(VObject)
	return o.Obj, ok
}
