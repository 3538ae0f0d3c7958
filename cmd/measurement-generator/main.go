// Package main provides the CLI entrypoint for measurement-generator.
//
// measurement-generator turns annotated Go structs into InfluxDB line
// protocol writers:
//   - check: resolve the annotations of every candidate struct and report
//     problems
//   - gen: emit MeasurementName/AppendLine methods next to the types
//   - write: post line protocol read from files or stdin to a server
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"measurement-generator/internal/match"
)

const appName = "measurement-generator"

// errFailed marks a command that already reported its problems.
var errFailed = errors.New("failed")

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// env is what every command gets to work with.
type env struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

type command struct {
	summary string
	run     func(e env, args []string) error
}

var commands = map[string]command{
	"check": {summary: "resolve annotated structs and report diagnostics", run: runCheck},
	"gen":   {summary: "generate MeasurementName/AppendLine methods", run: runGen},
	"write": {summary: "post line protocol to a server", run: runWrite},
}

var commandNames = []string{"check", "gen", "write"}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	e := env{stdin: stdin, stdout: stdout, stderr: stderr}

	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		usage(stderr)
		return 0
	}

	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q%s\n\n", args[0], match.Hint(args[0], commandNames))
		usage(stderr)

		return 2
	}

	err := cmd.run(e, args[1:])
	switch {
	case err == nil:
		return 0
	case errors.Is(err, pflag.ErrHelp):
		return 0
	case errors.Is(err, errFailed):
		return 1
	default:
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "%s - annotation-driven InfluxDB line protocol writers\n\n", appName)
	fmt.Fprintf(w, "Usage:\n  %s <command> [flags] [packages|files]\n\nCommands:\n", appName)

	for _, name := range commandNames {
		fmt.Fprintf(w, "  %-6s %s\n", name, commands[name].summary)
	}

	fmt.Fprintf(w, "\nRun '%s <command> --help' for the flags of a command.\n", appName)
}

func newFlagSet(name string, e env) *pflag.FlagSet {
	fs := pflag.NewFlagSet(appName+" "+name, pflag.ContinueOnError)
	fs.SetOutput(e.stderr)

	return fs
}
