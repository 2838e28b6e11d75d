package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

// Context represents the global context for commands
type Context struct {
	Config  string
	Verbose bool
	Quiet   bool

	// Stdin, Stdout and Stderr default to the process streams when nil.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func (c *Context) stdin() io.Reader {
	if c.Stdin != nil {
		return c.Stdin
	}
	return os.Stdin
}

func (c *Context) stdout() io.Writer {
	if c.Stdout != nil {
		return c.Stdout
	}
	return os.Stdout
}

func (c *Context) stderr() io.Writer {
	if c.Stderr != nil {
		return c.Stderr
	}
	return os.Stderr
}

// CLI represents the command-line interface
var CLI struct {
	Config    string       `help:"Configuration file path" default:"setpath.yaml"`
	Verbose   bool         `help:"Enable verbose output" short:"v"`
	Quiet     bool         `help:"Suppress output" short:"q"`
	Transform TransformCmd `cmd:"" help:"Rewrite set accessors into literal paths"`
	Check     CheckCmd     `cmd:"" help:"Validate set accessors without rewriting"`
	Inspect   InspectCmd   `cmd:"" help:"Dump the parsed tree of a JavaScript file"`
	Version   VersionCmd   `cmd:"" help:"Show version information"`
}

// VersionCmd represents the version command
type VersionCmd struct{}

// Run executes the version command
func (cmd *VersionCmd) Run(ctx *Context) error {
	fmt.Fprintf(ctx.stdout(), "setpath %s\n", version)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("setpath"),
		kong.Description("Rewrite accessor functions passed to set into literal property paths."),
		kong.UsageOnError(),
	)

	appCtx := &Context{
		Config:  CLI.Config,
		Verbose: CLI.Verbose,
		Quiet:   CLI.Quiet,
	}

	err := ctx.Run(appCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
