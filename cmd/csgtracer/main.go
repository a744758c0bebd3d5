// The csgtracer command renders a scene description to a PPM image.
// It accepts either the embedded scripting language (package script)
// or a declarative YAML scene (package sceneyaml), sniffed by file
// extension. Generalized from the teacher's cmd/example, which took
// a single --gml_file flag and wrote one hardcoded PNG; this instead
// takes a positional scene-file argument and follows spec.md §6/§7's
// exit-code contract.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/elastician/csgtracer/pnm"
	"github.com/elastician/csgtracer/render"
	"github.com/elastician/csgtracer/scenegraph"
	"github.com/elastician/csgtracer/sceneyaml"
	"github.com/elastician/csgtracer/script"
	"github.com/elastician/csgtracer/transport"
)

const (
	exitOK          = 0
	exitArgError    = 1
	exitParseError  = 2
	exitRenderError = 3
	exitIOError     = 4
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("csgtracer", flag.ContinueOnError)
	threads := fs.Int("threads", 0, "override scene.threads (0: use the scene's own setting)")
	preview := fs.Bool("preview", false, "also write a .png preview beside the .pnm output")
	format := fs.String("format", "", "scene-description front end: gml or yaml (default: sniff by extension)")
	output := fs.String("o", "", "output path (default: <scene-file>.pnm)")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return exitArgError
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: csgtracer [-threads N] [-preview] [-format {gml,yaml}] [-o out.pnm] <scene-file>")
		return exitArgError
	}
	scenePath := fs.Arg(0)

	scene, err := loadScene(scenePath, *format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "csgtracer: %v\n", err)
		return exitParseError
	}
	if *threads > 0 {
		scene.Params.Threads = *threads
	}

	if scene.Params.PhotonSamples > 0 {
		scene.Photons = transport.BuildPhotonMap(scene)
	}

	img, err := render.Render(context.Background(), scene, progressReporter())
	if err != nil {
		fmt.Fprintf(os.Stderr, "csgtracer: render: %v\n", err)
		return exitRenderError
	}

	outPath := *output
	if outPath == "" {
		outPath = scenePath + ".pnm"
	}
	quantized := pnm.Quantize(img, scene.Params.Gamma)
	if err := writePPMFile(outPath, quantized); err != nil {
		fmt.Fprintf(os.Stderr, "csgtracer: %v\n", err)
		return exitIOError
	}
	if *preview {
		if err := writePNGFile(strings.TrimSuffix(outPath, filepath.Ext(outPath))+".png", quantized); err != nil {
			fmt.Fprintf(os.Stderr, "csgtracer: %v\n", err)
			return exitIOError
		}
	}
	return exitOK
}

// progressReporter returns a render.Progress that prints a
// single-line, overwriting row counter when stderr is an interactive
// terminal, and nil (no reporting overhead) when it's redirected to a
// file or pipe. Grounded on esimov-caire/exec.go's use of
// term.IsTerminal to decide whether a progress bar is worth drawing.
func progressReporter() render.Progress {
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return nil
	}
	return func(rowsDone, totalRows int) {
		fmt.Fprintf(os.Stderr, "\rrendering: %d/%d rows", rowsDone, totalRows)
		if rowsDone == totalRows {
			fmt.Fprintln(os.Stderr)
		}
	}
}

// loadScene sniffs the scene-description front end by the -format
// flag if given, else by the scene file's extension: .yaml/.yml goes
// through sceneyaml, everything else through the scripting language.
func loadScene(path, format string) (*scenegraph.Scene, error) {
	switch format {
	case "yaml":
		return sceneyaml.Load(path)
	case "gml":
		return script.Load(path)
	case "":
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			return sceneyaml.Load(path)
		default:
			return script.Load(path)
		}
	default:
		return nil, fmt.Errorf("unknown -format %q (want gml or yaml)", format)
	}
}

func writePPMFile(path string, img *scenegraph.ImageRgb8) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return pnm.WritePPM(f, img)
}

func writePNGFile(path string, img *scenegraph.ImageRgb8) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return pnm.WritePNG(f, img)
}
