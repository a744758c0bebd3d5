package script

import (
	"fmt"

	"github.com/elastician/csgtracer/csg"
	"github.com/elastician/csgtracer/scenegraph"
	"github.com/elastician/csgtracer/vmath"
)

// EvalError reports a runtime failure during script evaluation:
// type mismatches, unbound identifiers, or a construction error
// raised by a builtin (e.g. a non-positive radius).
type EvalError struct{ Msg string }

func (e *EvalError) Error() string { return "script: eval error: " + e.Msg }

func evalErrf(format string, args ...any) error {
	return &EvalError{Msg: fmt.Sprintf(format, args...)}
}

// Interpreter is the tree-walking evaluator, generalizing the
// teacher's stack-machine EvalState to an environment-passing
// recursive evaluator over the expression AST. It owns the
// scenegraph.Scene being built; assignments to scene fields and to
// scene.light/scene.matter mutate it directly via Interpreter.Scene.
type Interpreter struct {
	Scene *scenegraph.Scene
	root  *env
}

func NewInterpreter() *Interpreter {
	return &Interpreter{Scene: scenegraph.NewScene(), root: newEnv(nil)}
}

// Run evaluates a parsed program's statements in order against the
// interpreter's root scope.
func (it *Interpreter) Run(program []Node) error {
	for _, stmt := range program {
		if _, err := it.eval(stmt, it.root); err != nil {
			return err
		}
	}
	return nil
}

func (it *Interpreter) eval(node Node, e *env) (Value, error) {
	switch n := node.(type) {
	case NumberLit:
		return VNumber(n.Value), nil
	case StringLit:
		return VString(n.Value), nil
	case BoolLit:
		return VBool(n.Value), nil
	case Ident:
		if v, ok := e.get(n.Name); ok {
			return v, nil
		}
		if b, ok := builtins[n.Name]; ok {
			return VBuiltinRef{Name: n.Name, Fn: b}, nil
		}
		return nil, evalErrf("unbound identifier %q", n.Name)
	case ArrayLit:
		elems := make([]Value, len(n.Elements))
		for i, el := range n.Elements {
			v, err := it.eval(el, e)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return VArray{Elements: elems}, nil
	case Unary:
		return it.evalUnary(n, e)
	case Binary:
		return it.evalBinary(n, e)
	case Ternary:
		cond, err := it.eval(n.Cond, e)
		if err != nil {
			return nil, err
		}
		if truthy(cond) {
			return it.eval(n.Then, e)
		}
		return it.eval(n.Else, e)
	case Coalesce:
		left, err := it.eval(n.Left, e)
		if err != nil {
			return nil, err
		}
		if _, isNil := left.(VNil); isNil {
			return it.eval(n.Right, e)
		}
		return left, nil
	case Member:
		return it.evalMemberRead(n, e)
	case Index:
		return it.evalIndex(n, e)
	case Call:
		return it.evalCall(n, e)
	case Assign:
		return it.evalAssign(n, e)
	case VarDecl:
		v, err := it.eval(n.Value, e)
		if err != nil {
			return nil, err
		}
		e.define(n.Name, v)
		return VNil{}, nil
	case If:
		cond, err := it.eval(n.Cond, e)
		if err != nil {
			return nil, err
		}
		body := n.Else
		if truthy(cond) {
			body = n.Then
		}
		return VNil{}, it.runBlock(body, e)
	case While:
		for {
			cond, err := it.eval(n.Cond, e)
			if err != nil {
				return nil, err
			}
			if !truthy(cond) {
				return VNil{}, nil
			}
			if err := it.runBlock(n.Body, e); err != nil {
				return nil, err
			}
		}
	case ExprStmt:
		_, err := it.eval(n.Expr, e)
		return VNil{}, err
	default:
		return nil, evalErrf("unhandled node type %T", node)
	}
}

func (it *Interpreter) runBlock(stmts []Node, parent *env) error {
	child := newEnv(parent)
	for _, s := range stmts {
		if _, err := it.eval(s, child); err != nil {
			return err
		}
	}
	return nil
}

func (it *Interpreter) evalUnary(n Unary, e *env) (Value, error) {
	v, err := it.eval(n.Operand, e)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case TMinus:
		num, ok := asNumber(v)
		if !ok {
			return nil, evalErrf("unary '-' expects a number, got %v", v)
		}
		return VNumber(-num), nil
	case TBang, TNot:
		return VBool(!truthy(v)), nil
	default:
		return nil, evalErrf("unsupported unary operator")
	}
}

func (it *Interpreter) evalBinary(n Binary, e *env) (Value, error) {
	left, err := it.eval(n.Left, e)
	if err != nil {
		return nil, err
	}

	// Short-circuit logical operators evaluate the right side lazily.
	switch n.Op {
	case TAnd:
		if !truthy(left) {
			return VBool(false), nil
		}
		right, err := it.eval(n.Right, e)
		if err != nil {
			return nil, err
		}
		return VBool(truthy(right)), nil
	case TOr:
		if truthy(left) {
			return VBool(true), nil
		}
		right, err := it.eval(n.Right, e)
		if err != nil {
			return nil, err
		}
		return VBool(truthy(right)), nil
	}

	right, err := it.eval(n.Right, e)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case TCat:
		return VString(left.String() + right.String()), nil
	case TXor:
		return VBool(truthy(left) != truthy(right)), nil
	case TEq:
		return VBool(valuesEqual(left, right)), nil
	case TNe:
		return VBool(!valuesEqual(left, right)), nil
	}

	// Vector arithmetic: +, -, and scalar * / apply componentwise when
	// the left operand is a vector or color. A number on the left with a
	// vector or color on the right is rejected as non-numeric below.
	if vl, ok := left.(VVector); ok {
		return vectorBinary(n.Op, vl.V, right)
	}
	if cl, ok := left.(VColor); ok {
		return colorBinary(n.Op, cl.C, right)
	}

	ln, lok := asNumber(left)
	rn, rok := asNumber(right)
	if !lok || !rok {
		return nil, evalErrf("operator %v requires numeric operands, got %v and %v", n.Op, left, right)
	}
	switch n.Op {
	case TPlus:
		return VNumber(ln + rn), nil
	case TMinus:
		return VNumber(ln - rn), nil
	case TStar:
		return VNumber(ln * rn), nil
	case TSlash:
		if rn == 0 {
			return VNumber(0), nil
		}
		return VNumber(ln / rn), nil
	case TPercent:
		if rn == 0 {
			return VNumber(0), nil
		}
		return VNumber(float64(int64(ln) % int64(rn))), nil
	case TLt:
		return VBool(ln < rn), nil
	case TGt:
		return VBool(ln > rn), nil
	case TLe:
		return VBool(ln <= rn), nil
	case TGe:
		return VBool(ln >= rn), nil
	case TAmp:
		return VBool(truthy(left) && truthy(right)), nil
	case TPipe:
		return VBool(truthy(left) || truthy(right)), nil
	case TCaret:
		return VBool(truthy(left) != truthy(right)), nil
	default:
		return nil, evalErrf("unsupported binary operator")
	}
}

func vectorBinary(op TokenType, v vmath.V3, right Value) (Value, error) {
	if rv, ok := asVector(right); ok {
		switch op {
		case TPlus:
			return VVector{V: v.Add(rv)}, nil
		case TMinus:
			return VVector{V: v.Sub(rv)}, nil
		case TStar:
			return VVector{V: v.Mul(rv)}, nil
		}
	}
	if rn, ok := asNumber(right); ok {
		switch op {
		case TStar:
			return VVector{V: v.Scale(rn)}, nil
		case TSlash:
			if rn == 0 {
				return VVector{}, nil
			}
			return VVector{V: v.Scale(1 / rn)}, nil
		}
	}
	return nil, evalErrf("unsupported vector operator/operand combination")
}

func colorBinary(op TokenType, c vmath.Color, right Value) (Value, error) {
	if rc, ok := right.(VColor); ok {
		switch op {
		case TPlus:
			return VColor{C: c.Add(rc.C)}, nil
		case TMinus:
			return VColor{C: c.Sub(rc.C)}, nil
		case TStar:
			return VColor{C: c.Mul(rc.C)}, nil
		}
	}
	if rn, ok := asNumber(right); ok && op == TStar {
		return VColor{C: c.Scale(rn)}, nil
	}
	return nil, evalErrf("unsupported color operator/operand combination")
}

func valuesEqual(a, b Value) bool {
	switch a := a.(type) {
	case VNumber:
		bn, ok := b.(VNumber)
		return ok && a == bn
	case VString:
		bs, ok := b.(VString)
		return ok && a == bs
	case VBool:
		bb, ok := b.(VBool)
		return ok && a == bb
	case VNil:
		_, ok := b.(VNil)
		return ok
	default:
		return false
	}
}

func (it *Interpreter) evalMemberRead(n Member, e *env) (Value, error) {
	if base, ok := n.Base.(Ident); ok && base.Name == "scene" {
		switch n.Field {
		case "light":
			return VObject{Obj: it.Scene.Light}, nil
		case "matter":
			return VObject{Obj: it.Scene.Matter}, nil
		}
	}
	base, err := it.eval(n.Base, e)
	if err != nil {
		return nil, err
	}
	switch b := base.(type) {
	case VVector:
		switch n.Field {
		case "x":
			return VNumber(b.V.X), nil
		case "y":
			return VNumber(b.V.Y), nil
		case "z":
			return VNumber(b.V.Z), nil
		}
	case VColor:
		switch n.Field {
		case "r":
			return VNumber(b.C.R), nil
		case "g":
			return VNumber(b.C.G), nil
		case "b":
			return VNumber(b.C.B), nil
		}
	}
	return VNil{}, nil
}

func (it *Interpreter) evalIndex(n Index, e *env) (Value, error) {
	base, err := it.eval(n.Base, e)
	if err != nil {
		return nil, err
	}
	idxVal, err := it.eval(n.Index, e)
	if err != nil {
		return nil, err
	}
	idx, ok := asNumber(idxVal)
	if !ok {
		return nil, evalErrf("index must be a number")
	}
	arr, ok := base.(VArray)
	if !ok {
		return nil, evalErrf("cannot index non-array value %v", base)
	}
	i := int(idx)
	if i < 0 || i >= len(arr.Elements) {
		return nil, evalErrf("index %d out of bounds (length %d)", i, len(arr.Elements))
	}
	return arr.Elements[i], nil
}

func (it *Interpreter) evalCall(n Call, e *env) (Value, error) {
	args := make([]Value, len(n.Args))
	for i, a := range n.Args {
		v, err := it.eval(a, e)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	if ident, ok := n.Callee.(Ident); ok {
		if b, ok := builtins[ident.Name]; ok {
			return b(it, args)
		}
	}

	calleeVal, err := it.eval(n.Callee, e)
	if err != nil {
		return nil, err
	}
	ref, ok := calleeVal.(VBuiltinRef)
	if !ok {
		return nil, evalErrf("cannot call non-function value %v", calleeVal)
	}
	return ref.Fn(it, args)
}

func (it *Interpreter) evalAssign(n Assign, e *env) (Value, error) {
	value, err := it.eval(n.Value, e)
	if err != nil {
		return nil, err
	}

	switch target := n.Target.(type) {
	case Ident:
		if err := it.assignSceneField(target.Name, value); err == nil {
			return VNil{}, nil
		} else if _, isMismatch := err.(notASceneField); !isMismatch {
			return nil, err
		}
		e.set(target.Name, value)
		return VNil{}, nil
	case Member:
		base, ok := target.Base.(Ident)
		if !ok || base.Name != "scene" {
			return nil, evalErrf("assignment to a member of a non-scene value is not supported")
		}
		return VNil{}, it.assignSceneCompound(target.Field, value)
	default:
		return nil, evalErrf("invalid assignment target")
	}
}

type notASceneField struct{}

func (notASceneField) Error() string { return "not a scene field" }

func (it *Interpreter) assignSceneField(name string, value Value) error {
	p := &it.Scene.Params
	c := &it.Scene.Camera
	switch name {
	case "image_width":
		n, ok := asNumber(value)
		if !ok {
			return evalErrf("image_width expects a number")
		}
		p.ImageWidth = int(n)
	case "image_height":
		n, ok := asNumber(value)
		if !ok {
			return evalErrf("image_height expects a number")
		}
		p.ImageHeight = int(n)
	case "threads":
		n, ok := asNumber(value)
		if !ok {
			return evalErrf("threads expects a number")
		}
		p.Threads = int(n)
	case "gamma":
		n, ok := asNumber(value)
		if !ok {
			return evalErrf("gamma expects a number")
		}
		p.Gamma = n
	case "background_color":
		col, ok := value.(VColor)
		if !ok {
			return evalErrf("background_color expects a color")
		}
		p.BackgroundColor = col.C
	case "camera_position":
		v, ok := asVector(value)
		if !ok {
			return evalErrf("camera_position expects a vector")
		}
		c.Position = v
	case "camera_view_direction":
		v, ok := asVector(value)
		if !ok {
			return evalErrf("camera_view_direction expects a vector")
		}
		c.ViewDir = v
	case "camera_top_direction":
		v, ok := asVector(value)
		if !ok {
			return evalErrf("camera_top_direction expects a vector")
		}
		c.TopDir = v
	case "camera_focal_length":
		n, ok := asNumber(value)
		if !ok || n <= 0 {
			return evalErrf("camera_focal_length expects a positive number")
		}
		// A focal length in units of the image plane's height
		// translates to a vertical field of view the way a physical
		// camera's focal length and sensor height do.
		c.FovDegrees = 2 * vmath.Clamp(atanDeg(0.5/n), -89, 89)
	case "trace_depth":
		n, ok := asNumber(value)
		if !ok {
			return evalErrf("trace_depth expects a number")
		}
		p.TraceDepth = int(n)
	case "direct_samples":
		n, ok := asNumber(value)
		if !ok {
			return evalErrf("direct_samples expects a number")
		}
		p.DirectSamples = int(n)
	case "path_samples":
		n, ok := asNumber(value)
		if !ok {
			return evalErrf("path_samples expects a number")
		}
		p.PathSamples = int(n)
	case "photon_samples":
		n, ok := asNumber(value)
		if !ok {
			return evalErrf("photon_samples expects a number")
		}
		p.PhotonSamples = int(n)
	case "photon_min_distance":
		n, ok := asNumber(value)
		if !ok {
			return evalErrf("photon_min_distance expects a number")
		}
		p.PhotonMinDistance = n
	default:
		return notASceneField{}
	}
	return nil
}

func (it *Interpreter) assignSceneCompound(field string, value Value) error {
	var compound *csg.Compound
	switch field {
	case "light":
		compound = it.Scene.Light
	case "matter":
		compound = it.Scene.Matter
	default:
		return evalErrf("scene has no field %q", field)
	}
	switch v := value.(type) {
	case VObject:
		compound.Add(v.Obj)
	case VArray:
		for _, el := range v.Elements {
			o, ok := asObject(el)
			if !ok {
				return evalErrf("scene.%s array must contain only objects", field)
			}
			compound.Add(o)
		}
	default:
		return evalErrf("scene.%s expects an object or an array of objects", field)
	}
	return nil
}
