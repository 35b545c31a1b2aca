// Command gcodeline is a small demonstration driver for the rs274
// package: it reads G-code from a file or stdin, interprets it line by
// line, and reports what it saw. It owns the line-reading and motion
// sink that the rs274 package deliberately leaves external.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/beevik/cmd"
	"github.com/golang/glog"
	"github.com/urfave/cli/v2"

	"github.com/holtzmann/rs274"
)

// logSink is a MotionSink that just prints what it was asked to do,
// standing in for a real motion backend.
type logSink struct{ w io.Writer }

func (s logSink) Move(axes map[byte]float32, rapid bool, feedrate float32) {
	kind := "feed"
	if rapid {
		kind = "rapid"
	}
	fmt.Fprintf(s.w, "move (%s) %v feedrate=%g\n", kind, axes, feedrate)
}

func (s logSink) SpindleCommand(on bool, clockwise bool) {
	fmt.Fprintf(s.w, "spindle on=%v clockwise=%v\n", on, clockwise)
}

func (s logSink) ToolChange(tool uint64)  { fmt.Fprintf(s.w, "tool change -> %d\n", tool) }
func (s logSink) CoolantCommand(c rs274.Coolant) {
	fmt.Fprintf(s.w, "coolant -> %v\n", c)
}
func (s logSink) SpeedCommand(rpm float32)  { fmt.Fprintf(s.w, "speed -> %g\n", rpm) }
func (s logSink) ToolSelect(tool float32)   { fmt.Fprintf(s.w, "tool select -> %g\n", tool) }

func openInput(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

// runLines interprets every line from r, reporting parse/interpret
// errors through glog rather than aborting the whole file, and returns
// the interpreter so callers can inspect final state. startInch selects
// inch as the starting unit for programs that never issue a leading
// G20/G21.
func runLines(r io.Reader, sink rs274.MotionSink, startInch bool) *rs274.Interpreter {
	interp := rs274.NewInterpreter(sink)
	if startInch {
		interp.SetUnit(rs274.UnitInch)
	}
	lr := rs274.NewLineReader(r, 0)
	for {
		line, err := lr.NextLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			glog.Fatalf("gcodeline: read failed: %v", err)
		}
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		cmd, err := rs274.ParseCommand(line)
		if err != nil {
			glog.Infof("gcodeline: %v", err)
			continue
		}
		if _, err := interp.Interpret(cmd); err != nil {
			glog.Infof("gcodeline: %v", err)
		}
	}
	return interp
}

func runAction(c *cli.Context) error {
	in, err := openInput(c.Args().First())
	if err != nil {
		return cli.Exit(fmt.Sprintf("gcodeline: %v", err), 1)
	}
	defer in.Close()
	runLines(in, logSink{w: os.Stdout}, c.Bool("inch"))
	return nil
}

func varsAction(c *cli.Context) error {
	in, err := openInput(c.Args().First())
	if err != nil {
		return cli.Exit(fmt.Sprintf("gcodeline: %v", err), 1)
	}
	defer in.Close()
	interp := runLines(in, nil, c.Bool("inch"))
	unit, ws, positioning, feedrate := interp.Modal()
	fmt.Printf("unit=%s workspace=%v positioning=%v feedrate=%g\n", unit, ws, positioning, feedrate)
	return nil
}

// replCommands builds the beevik/cmd dispatch tree for the interactive
// mode's ':'-prefixed meta-commands, the same shape beevik-go6502's host
// package builds for its own interactive commands.
func replCommands(quit *bool) *cmd.Tree {
	tree := cmd.NewTree("gcodeline")
	tree.AddCommand(cmd.Command{
		Name:        "vars",
		Description: "Print the current modal state.",
		Usage:       "vars",
		Data: func(interp *rs274.Interpreter) {
			unit, ws, positioning, feedrate := interp.Modal()
			fmt.Printf("unit=%s workspace=%v positioning=%v feedrate=%g\n", unit, ws, positioning, feedrate)
		},
	})
	tree.AddCommand(cmd.Command{
		Name:        "quit",
		Description: "Exit the interactive session.",
		Usage:       "quit",
		Data:        func(*rs274.Interpreter) { *quit = true },
	})
	return tree
}

func replAction(c *cli.Context) error {
	var quit bool
	tree := replCommands(&quit)
	interp := rs274.NewInterpreter(logSink{w: os.Stdout})
	if c.Bool("inch") {
		interp.SetUnit(rs274.UnitInch)
	}
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for !quit && scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, ":") {
			sel, err := tree.Lookup(strings.TrimPrefix(line, ":"))
			if err != nil {
				fmt.Printf("unknown meta-command: %v\n", err)
			} else if sel.Command != nil && sel.Command.Data != nil {
				sel.Command.Data.(func(*rs274.Interpreter))(interp)
			}
			fmt.Print("> ")
			continue
		}
		parsed, err := rs274.ParseCommand([]byte(line))
		if err != nil {
			fmt.Printf("parse error: %v\n", err)
		} else if _, err := interp.Interpret(parsed); err != nil {
			fmt.Printf("interpret error: %v\n", err)
		}
		fmt.Print("> ")
	}
	return nil
}

func main() {
	flag.Parse()
	defer glog.Flush()

	inchFlag := &cli.BoolFlag{
		Name:  "inch",
		Usage: "start in inch units instead of the default mm (as if a leading G20 were present)",
	}
	app := &cli.App{
		Name:  "gcodeline",
		Usage: "parse and interpret a dialect of RS-274 G-code",
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "interpret a file (or stdin) and print forwarded motion commands",
				ArgsUsage: "[file]",
				Flags:     []cli.Flag{inchFlag},
				Action:    runAction,
			},
			{
				Name:      "vars",
				Usage:     "interpret a file (or stdin) and print the final modal state",
				ArgsUsage: "[file]",
				Flags:     []cli.Flag{inchFlag},
				Action:    varsAction,
			},
			{
				Name:   "repl",
				Usage:  "interactive mode: G-code lines plus ':'-prefixed meta-commands",
				Flags:  []cli.Flag{inchFlag},
				Action: replAction,
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		glog.Fatalf("gcodeline: %v", err)
	}
}
