// Package sceneyaml is the declarative alternative to package script:
// it parses a YAML scene description straight into a
// scenegraph.Scene, for fixtures and embedders that don't need the
// scripting language's procedural surface. Grounded on
// _examples/gazed-vu/load/shd.go's yaml.v3 loader shape — an
// unexported, yaml-tagged "config" struct that Unmarshal fills, then
// a conversion pass that validates names against lookup tables and
// builds the real domain types.
package sceneyaml

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/elastician/csgtracer/csg"
	"github.com/elastician/csgtracer/scenegraph"
	"github.com/elastician/csgtracer/vmath"
)

// sceneConfig mirrors the YAML document shape; every field is
// optional so a minimal fixture only needs to set what it cares
// about; DefaultRenderParams fills the rest.
type sceneConfig struct {
	ImageWidth         int          `yaml:"image_width"`
	ImageHeight        int          `yaml:"image_height"`
	Threads            int          `yaml:"threads"`
	Gamma              float64      `yaml:"gamma"`
	BackgroundColor    []float64    `yaml:"background_color"`
	TraceDepth         int          `yaml:"trace_depth"`
	DirectSamples      int          `yaml:"direct_samples"`
	PathSamples        int          `yaml:"path_samples"`
	PhotonSamples      int          `yaml:"photon_samples"`
	PhotonMinDistance  float64      `yaml:"photon_min_distance"`
	PathDepthThreshold int          `yaml:"path_depth_threshold"`
	Camera             cameraConfig `yaml:"camera"`
	Matter             []objectSpec `yaml:"matter"`
	Light              []objectSpec `yaml:"light"`
}

type cameraConfig struct {
	Position       []float64 `yaml:"position"`
	ViewDirection  []float64 `yaml:"view_direction"`
	TopDirection   []float64 `yaml:"top_direction"`
	FovDegrees     float64   `yaml:"fov_degrees"`
}

// objectSpec describes one node of a CSG tree: either a primitive
// (Type set) or a composition (Operation set, with Children holding
// its operands). Exactly one of the two must be set; Load reports a
// descriptive error otherwise.
type objectSpec struct {
	Type      string       `yaml:"type"`
	Operation string       `yaml:"operation"`
	Children  []objectSpec `yaml:"children"`

	Point  []float64 `yaml:"point"`
	Normal []float64 `yaml:"normal"`
	Center []float64 `yaml:"center"`
	Delta  []float64 `yaml:"delta"`
	Factor []float64 `yaml:"factor"`

	Radius      float64 `yaml:"radius"`
	RadiusX     float64 `yaml:"radius_x"`
	RadiusY     float64 `yaml:"radius_y"`
	RadiusZ     float64 `yaml:"radius_z"`
	MajorRadius float64 `yaml:"major_radius"`
	MinorRadius float64 `yaml:"minor_radius"`

	Color                []float64    `yaml:"color"`
	Transparency         float64      `yaml:"transparency"`
	RefractiveIndex      float64      `yaml:"refractive_index"`
	Radiance             float64      `yaml:"radiance"`
	DiffuseReflectivity  float64      `yaml:"diffuse_reflectivity"`
	SpecularReflectivity float64      `yaml:"specular_reflectivity"`
	Texture              *textureSpec `yaml:"texture"`
}

type textureSpec struct {
	Kind   string    `yaml:"kind"` // "plain" or "checker"
	Color  []float64 `yaml:"color"`
	ColorA []float64 `yaml:"color_a"`
	ColorB []float64 `yaml:"color_b"`
	Scale  float64   `yaml:"scale"`
}

// Load reads and parses a YAML scene description from path into a
// scenegraph.Scene, the declarative counterpart of script.Load.
func Load(path string) (*scenegraph.Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("sceneyaml: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse builds a scenegraph.Scene from raw YAML bytes already in
// memory, the counterpart of script.Eval.
func Parse(data []byte) (*scenegraph.Scene, error) {
	var cfg sceneConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("sceneyaml: %w", err)
	}
	scene := scenegraph.NewScene()
	applyRenderParams(&cfg, scene)
	applyCamera(&cfg.Camera, scene)

	for i, spec := range cfg.Matter {
		obj, err := buildObject(spec)
		if err != nil {
			return nil, fmt.Errorf("sceneyaml: matter[%d]: %w", i, err)
		}
		scene.Matter.Add(obj)
	}
	for i, spec := range cfg.Light {
		obj, err := buildObject(spec)
		if err != nil {
			return nil, fmt.Errorf("sceneyaml: light[%d]: %w", i, err)
		}
		scene.Light.Add(obj)
	}
	return scene, nil
}

func applyRenderParams(cfg *sceneConfig, scene *scenegraph.Scene) {
	if cfg.ImageWidth > 0 {
		scene.Params.ImageWidth = cfg.ImageWidth
	}
	if cfg.ImageHeight > 0 {
		scene.Params.ImageHeight = cfg.ImageHeight
	}
	if cfg.Threads > 0 {
		scene.Params.Threads = cfg.Threads
	}
	if cfg.Gamma > 0 {
		scene.Params.Gamma = cfg.Gamma
	}
	if len(cfg.BackgroundColor) == 3 {
		scene.Params.BackgroundColor = colorFrom(cfg.BackgroundColor)
	}
	if cfg.TraceDepth > 0 {
		scene.Params.TraceDepth = cfg.TraceDepth
	}
	if cfg.DirectSamples > 0 {
		scene.Params.DirectSamples = cfg.DirectSamples
	}
	if cfg.PathSamples > 0 {
		scene.Params.PathSamples = cfg.PathSamples
	}
	if cfg.PhotonSamples > 0 {
		scene.Params.PhotonSamples = cfg.PhotonSamples
	}
	if cfg.PhotonMinDistance > 0 {
		scene.Params.PhotonMinDistance = cfg.PhotonMinDistance
	}
	if cfg.PathDepthThreshold > 0 {
		scene.Params.PathDepthThreshold = cfg.PathDepthThreshold
	}
}

func applyCamera(cfg *cameraConfig, scene *scenegraph.Scene) {
	if len(cfg.Position) == 3 {
		scene.Camera.Position = vectorFrom(cfg.Position)
	}
	if len(cfg.ViewDirection) == 3 {
		scene.Camera.ViewDir = vectorFrom(cfg.ViewDirection)
	}
	if len(cfg.TopDirection) == 3 {
		scene.Camera.TopDir = vectorFrom(cfg.TopDirection)
	}
	if cfg.FovDegrees > 0 {
		scene.Camera.FovDegrees = cfg.FovDegrees
	}
}

func vectorFrom(xs []float64) vmath.V3 { return vmath.V3{X: xs[0], Y: xs[1], Z: xs[2]} }
func colorFrom(xs []float64) vmath.Color { return vmath.RGB(xs[0], xs[1], xs[2]) }

// buildObject recursively converts one objectSpec node into a
// csg.Object, dispatching on Type for primitives and on Operation for
// compositions. It is the sceneyaml counterpart of script's
// create_*/union/intersection/negate builtins — both paths end at the
// same csg.New* constructors.
func buildObject(spec objectSpec) (csg.Object, error) {
	if spec.Operation != "" && spec.Type != "" {
		return nil, fmt.Errorf("object sets both type %q and operation %q", spec.Type, spec.Operation)
	}
	if spec.Operation != "" {
		return buildComposition(spec)
	}
	obj, err := buildPrimitive(spec)
	if err != nil {
		return nil, err
	}
	applyMaterial(obj, spec)
	return obj, nil
}

func buildComposition(spec objectSpec) (csg.Object, error) {
	switch spec.Operation {
	case "union", "intersection":
		if len(spec.Children) != 2 {
			return nil, fmt.Errorf("%s requires exactly 2 children, got %d", spec.Operation, len(spec.Children))
		}
		a, err := buildObject(spec.Children[0])
		if err != nil {
			return nil, err
		}
		b, err := buildObject(spec.Children[1])
		if err != nil {
			return nil, err
		}
		if spec.Operation == "union" {
			return csg.NewPairOutside(a, b), nil
		}
		return csg.NewPairInside(a, b), nil
	case "negate":
		if len(spec.Children) != 1 {
			return nil, fmt.Errorf("negate requires exactly 1 child, got %d", len(spec.Children))
		}
		child, err := buildObject(spec.Children[0])
		if err != nil {
			return nil, err
		}
		return csg.NewNeg(child), nil
	case "translate":
		if len(spec.Children) != 1 || len(spec.Delta) != 3 {
			return nil, fmt.Errorf("translate requires 1 child and a 3-vector delta")
		}
		child, err := buildObject(spec.Children[0])
		if err != nil {
			return nil, err
		}
		child.Move(vectorFrom(spec.Delta))
		return child, nil
	case "scale":
		if len(spec.Children) != 1 || len(spec.Factor) != 3 {
			return nil, fmt.Errorf("scale requires 1 child and a 3-vector factor")
		}
		child, err := buildObject(spec.Children[0])
		if err != nil {
			return nil, err
		}
		return csg.NewScaleNonUniform(child, vectorFrom(spec.Factor)), nil
	default:
		return nil, fmt.Errorf("unknown operation %q", spec.Operation)
	}
}

func buildPrimitive(spec objectSpec) (csg.Object, error) {
	switch spec.Type {
	case "plane":
		if len(spec.Point) != 3 || len(spec.Normal) != 3 {
			return nil, fmt.Errorf("plane requires point and normal")
		}
		return csg.NewPlane(vectorFrom(spec.Point), vectorFrom(spec.Normal)), nil
	case "sphere":
		if len(spec.Center) != 3 {
			return nil, fmt.Errorf("sphere requires center")
		}
		if spec.Radius <= 0 {
			return nil, fmt.Errorf("sphere radius must be positive")
		}
		return csg.NewSphere(vectorFrom(spec.Center), spec.Radius), nil
	case "cylinder":
		if len(spec.Center) != 3 {
			return nil, fmt.Errorf("cylinder requires center")
		}
		return csg.NewCylinder(vectorFrom(spec.Center), spec.RadiusX, spec.RadiusY), nil
	case "cone":
		if len(spec.Center) != 3 {
			return nil, fmt.Errorf("cone requires center")
		}
		return csg.NewCone(vectorFrom(spec.Center), spec.RadiusX, spec.RadiusY, spec.RadiusZ), nil
	case "ellipsoid":
		if len(spec.Center) != 3 {
			return nil, fmt.Errorf("ellipsoid requires center")
		}
		return csg.NewEllipsoid(vectorFrom(spec.Center), spec.RadiusX, spec.RadiusY, spec.RadiusZ), nil
	case "hyperboloid1":
		if len(spec.Center) != 3 {
			return nil, fmt.Errorf("hyperboloid1 requires center")
		}
		return csg.NewHyperboloid1(vectorFrom(spec.Center), spec.RadiusX, spec.RadiusY, spec.RadiusZ), nil
	case "hyperboloid2":
		if len(spec.Center) != 3 {
			return nil, fmt.Errorf("hyperboloid2 requires center")
		}
		return csg.NewHyperboloid2(vectorFrom(spec.Center), spec.RadiusX, spec.RadiusY, spec.RadiusZ), nil
	case "torus":
		if len(spec.Center) != 3 {
			return nil, fmt.Errorf("torus requires center")
		}
		return csg.NewTorus(vectorFrom(spec.Center), spec.MajorRadius, spec.MinorRadius), nil
	default:
		return nil, fmt.Errorf("unknown object type %q", spec.Type)
	}
}

func applyMaterial(obj csg.Object, spec objectSpec) {
	props := obj.Properties()
	if len(spec.Color) == 3 {
		props.Color = colorFrom(spec.Color)
	}
	if spec.Transparency > 0 {
		props.Transparency = spec.Transparency
	}
	if spec.RefractiveIndex > 0 {
		props.RefractiveIndex = spec.RefractiveIndex
	}
	if spec.Radiance > 0 {
		props.Radiance = spec.Radiance
	}
	if spec.DiffuseReflectivity > 0 {
		props.DiffuseReflectivity = spec.DiffuseReflectivity
	}
	if spec.SpecularReflectivity > 0 {
		props.SpecularReflectivity = spec.SpecularReflectivity
	}
	if spec.Texture != nil {
		props.Texture = buildTexture(*spec.Texture)
	}
}

func buildTexture(spec textureSpec) csg.Texture {
	switch spec.Kind {
	case "checker":
		return csg.CheckerTexture{A: colorFrom(spec.ColorA), B: colorFrom(spec.ColorB), Scale: spec.Scale}
	default:
		return csg.PlainTexture{Color_: colorFrom(spec.Color)}
	}
}
