// The csgshell command is an interactive shell for the scene
// scripting language, generalized from the teacher's cmd/gml: the
// same readline-driven REPL with a colon-command table, rebuilt
// around script.Interpreter instead of gml.EvalState.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ergochat/readline"

	"github.com/elastician/csgtracer/script"
)

type shellCommand struct {
	Symbol       string
	Aliases      []string
	ExpectedArgs []string
	HelpText     string
	Run          func(st *shellState) error
}

type shellState struct {
	args   []string
	interp *script.Interpreter
	cmds   []*shellCommand
}

var errQuit = errors.New("quit")

func main() {
	rl, err := readline.NewFromConfig(&readline.Config{
		Prompt:       "csg> ",
		HistoryFile:  readlineHistoryFilePath(),
		HistoryLimit: 10000,
	})
	if err != nil {
		log.Fatalf("readline init error: %v", err)
	}

	interp := script.NewInterpreter()

	var commands []*shellCommand
	lookup := make(map[string]*shellCommand)
	register := func(c *shellCommand) {
		commands = append(commands, c)
		for _, sym := range append([]string{c.Symbol}, c.Aliases...) {
			if lookup[sym] != nil {
				log.Fatalf("duplicate command: %v vs %v", c, lookup[sym])
			}
			lookup[sym] = c
		}
	}

	register(&shellCommand{
		Symbol:       ":load",
		Aliases:      []string{":l"},
		ExpectedArgs: []string{"<filename>"},
		HelpText:     "Load and evaluate a scene script",
		Run: func(st *shellState) error {
			if len(st.args) < 1 {
				return errors.New("usage: :load <filename>")
			}
			src, err := os.ReadFile(st.args[0])
			if err != nil {
				return err
			}
			return evalLine(string(src), st.interp)
		},
	})
	register(&shellCommand{
		Symbol:   ":scene",
		Aliases:  []string{":s"},
		HelpText: "Print a summary of the scene built so far",
		Run: func(st *shellState) error {
			s := st.interp.Scene
			fmt.Printf("image: %dx%d, threads=%d, gamma=%.4g\n", s.Params.ImageWidth, s.Params.ImageHeight, s.Params.Threads, s.Params.Gamma)
			fmt.Printf("camera: pos=%v view=%v top=%v fov=%.1f\n", s.Camera.Position, s.Camera.ViewDir, s.Camera.TopDir, s.Camera.FovDegrees)
			fmt.Printf("matter: %d objects, light: %d objects\n", len(s.Matter.Objects), len(s.Light.Objects))
			return nil
		},
	})
	register(&shellCommand{
		Symbol:   ":help",
		Aliases:  []string{":h"},
		HelpText: "Prints this help text",
		Run:      showHelp,
	})
	register(&shellCommand{
		Symbol:   ":quit",
		Aliases:  []string{":q"},
		HelpText: "Exit the shell",
		Run:      func(st *shellState) error { return errQuit },
	})

	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
				return
			}
			log.Fatalf("readline error: %v", err)
		}
		line = strings.TrimSpace(line)
		switch {
		case len(line) == 0:
			continue
		case line[0] == ':':
			args := parseCommandArgs(line)
			if len(args) == 0 {
				continue
			}
			cmd := lookup[args[0]]
			if cmd == nil {
				fmt.Printf("Unknown command: %v\n", args[0])
				continue
			}
			err := cmd.Run(&shellState{args: args[1:], interp: interp, cmds: commands})
			if errors.Is(err, errQuit) {
				return
			}
			if err != nil {
				fmt.Printf("command error: %v\n", err)
			}
		default:
			if err := evalLine(line, interp); err != nil {
				fmt.Printf("script error: %v\n", err)
			}
		}
	}
}

func showHelp(st *shellState) error {
	maxLen := 0
	usage := make([]string, len(st.cmds))
	for i, c := range st.cmds {
		parts := append([]string{c.Symbol}, c.Aliases...)
		parts = append(parts, c.ExpectedArgs...)
		usage[i] = strings.Join(parts, " ")
		maxLen = max(maxLen, len(usage[i]))
	}
	fmt.Printf("Commands:\n")
	for i, c := range st.cmds {
		fmt.Printf("  %-*s : %s\n", maxLen, usage[i], c.HelpText)
	}
	return nil
}

func readlineHistoryFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Printf("user home dir error: %v\n", err)
		return ""
	}
	return filepath.Join(home, ".csgshell_history")
}

// evalLine parses text as a standalone statement list and evaluates
// it against interp's running scene, so the REPL builds up one scene
// across multiple lines rather than starting fresh each time.
func evalLine(text string, interp *script.Interpreter) error {
	p, err := script.NewParser(text)
	if err != nil {
		return err
	}
	program, err := p.ParseProgram()
	if err != nil {
		return err
	}
	return interp.Run(program)
}

func parseCommandArgs(line string) []string {
	var args []string
	start := 0
	for i := range line {
		if strings.IndexByte(" \t\n\r", line[i]) != -1 {
			if start < i {
				args = append(args, line[start:i])
			}
			start = i + 1
		}
	}
	if start < len(line) {
		args = append(args, line[start:])
	}
	return args
}
