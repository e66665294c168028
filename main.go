package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jessevdk/go-flags"
)

// can be interpolated with -ldflags at build time.
var Version = "dev"

type options struct {
	Output  string `short:"o" long:"output" choice:"text" choice:"yaml" choice:"json" default:"text" description:"Output encoding"`
	Verbose bool   `short:"v" long:"verbose" description:"Log debug messages to stderr"`
	Version bool   `long:"version" description:"Print the version and exit"`
}

type app struct {
	opts   options
	stdout io.Writer
	log    *slog.Logger
	sensor tempSensor
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, vcgencmd{}))
}

// run parses args, executes at most one measurement and returns the exit code.
func run(args []string, stdout, stderr io.Writer, sensor tempSensor) int {
	a := &app{stdout: stdout, sensor: sensor}

	parser := flags.NewParser(&a.opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = "socfan"
	parser.ShortDescription = "SoC temperature to fan duty-cycle"
	parser.LongDescription = "Reads the SoC temperature with `vcgencmd measure_temp` once " +
		"and maps it to a 0-255 fan duty-cycle. Run it from a timer to poll."
	parser.SubcommandsOptional = true
	parser.CommandHandler = func(cmd flags.Commander, args []string) error {
		a.log = newLogger(stderr, a.opts.Verbose)
		if a.opts.Version {
			_, err := fmt.Fprintln(a.stdout, Version)
			return err
		}
		if cmd == nil {
			cmd = &reportCommand{app: a, Fallback: noFallback}
		}
		return cmd.Execute(args)
	}

	mustAddCommand(parser, "measure", "Print the SoC temperature",
		"Runs vcgencmd once and prints the temperature in °C. "+
			"Unparsable output prints 0 and logs a warning.",
		&measureCommand{app: a})
	mustAddCommand(parser, "duty", "Map a temperature to a duty-cycle",
		"Prints the 0-255 duty-cycle for the given temperature in °C, "+
			"0 up to 40°C, 255 from 60°C, linear in between.",
		&dutyCommand{app: a})
	mustAddCommand(parser, "report", "Measure and map (default)",
		"Measures the SoC temperature once and prints it with its duty-cycle.",
		&reportCommand{app: a})

	if _, err := parser.ParseArgs(args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			fmt.Fprintln(stdout, err)
			return 0
		}
		if a.log == nil {
			a.log = newLogger(stderr, a.opts.Verbose)
		}
		a.log.Error("socfan failed", "err", err)
		return 1
	}

	return 0
}

func mustAddCommand(parser *flags.Parser, name, short, long string, data interface{}) {
	if _, err := parser.AddCommand(name, short, long, data); err != nil {
		panic(err)
	}
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
