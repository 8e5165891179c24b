package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/blogsmith/cmd/blogsmith/commands"
	ferrors "git.home.luguber.info/inful/blogsmith/internal/foundation/errors"
	"git.home.luguber.info/inful/blogsmith/internal/version"
	"github.com/alecthomas/kong"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run parses args, executes the selected command and returns the exit code.
func run(args []string, stdout, stderr io.Writer) int {
	cli := &commands.CLI{}
	global := &commands.Global{Stdout: stdout, Stderr: stderr}

	parser, err := kong.New(cli,
		kong.Name("blogsmith"),
		kong.Description("Static blog generator: markdown posts and HTML fragments in, a linked site out."),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
		kong.Vars{"version": version.String()},
		kong.Bind(global),
	)
	if err != nil {
		fmt.Fprintf(stderr, "blogsmith: %v\n", err)
		return 1
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		parser.Errorf("%s", err)
		return 2
	}
	if err := kctx.Run(cli); err != nil {
		return ferrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).WithOutput(stderr).Report(err)
	}
	return 0
}
