package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/monolite/setpath"
	"github.com/monolite/setpath/report"
)

// TransformCmd represents the transform command
type TransformCmd struct {
	Paths         []string `arg:"" optional:"" help:"Input files or directories (default: stdin)" type:"path"`
	Output        string   `short:"o" help:"Output file (single input only)"`
	Write         bool     `short:"w" help:"Write result to input files instead of stdout"`
	Check         bool     `short:"c" help:"Check if files would be rewritten (exit 1 if so)"`
	Diff          bool     `short:"d" help:"Show diff instead of rewriting files"`
	Lenient       bool     `help:"Leave invalid accessors in place and report them as warnings"`
	Report        string   `help:"Report format: text, json or checkstyle (default from config)"`
	StdinFilename string   `help:"File name used for stdin input" default:"<stdin>"`

	// validateOnly runs the pipeline without emitting any code.
	validateOnly bool
}

// Run executes the transform command
func (cmd *TransformCmd) Run(ctx *Context) error {
	if err := cmd.validateModes(); err != nil {
		return err
	}

	config, err := loadConfig(ctx, cmd.Lenient, cmd.Report)
	if err != nil {
		return err
	}

	outcomes, fromStdin, err := cmd.process(ctx, config)
	if err != nil {
		return err
	}

	rep := report.New()
	for _, o := range outcomes {
		rep.Add(fileResult(o))
		if o.Err != nil || cmd.validateOnly {
			continue
		}

		err := cmd.emit(ctx, o, fromStdin)
		if err != nil {
			return err
		}
	}

	err = writeReport(ctx, rep, config.Output.Report, cmd.printsCode())
	if err != nil {
		return err
	}

	if rep.HasErrors() {
		return ErrTransformFailed
	}

	if cmd.Check && rep.Summary().Changed > 0 {
		return ErrFilesWouldChange
	}

	return nil
}

func (cmd *TransformCmd) validateModes() error {
	modes := 0
	for _, on := range []bool{cmd.Write, cmd.Check, cmd.Diff, cmd.Output != ""} {
		if on {
			modes++
		}
	}
	if modes > 1 {
		return ErrConflictingModes
	}

	switch cmd.Report {
	case "", setpath.ReportText, setpath.ReportJSON, setpath.ReportCheckstyle:
		return nil
	default:
		return fmt.Errorf("%w: %s", report.ErrUnknownFormat, cmd.Report)
	}
}

// printsCode reports whether rewritten code goes to stdout.
func (cmd *TransformCmd) printsCode() bool {
	return !cmd.validateOnly && !cmd.Write && !cmd.Check && !cmd.Diff && cmd.Output == ""
}

func (cmd *TransformCmd) process(ctx *Context, config *setpath.Config) ([]fileOutcome, bool, error) {
	if len(cmd.Paths) == 0 {
		outcome, err := readStdin(ctx.stdin(), cmd.StdinFilename, config)
		if err != nil {
			return nil, false, err
		}
		return []fileOutcome{outcome}, true, nil
	}

	files, err := setpath.CollectFiles(cmd.Paths, config)
	if err != nil {
		return nil, false, err
	}

	if cmd.Output != "" && len(files) != 1 {
		return nil, false, ErrOutputNeedsSingleInput
	}
	if cmd.printsCode() && len(files) > 1 {
		return nil, false, ErrMultipleInputs
	}

	workers := config.WorkerCount()
	if ctx.Verbose {
		color.New(color.FgBlue).Fprintf(ctx.stderr(), "Processing %d files with %d workers\n", len(files), workers)
	}

	outcomes, err := processFiles(context.Background(), files, config, workers)
	if err != nil {
		return nil, false, err
	}
	return outcomes, false, nil
}

// emit writes the rewritten code of one file where the flags ask for it.
func (cmd *TransformCmd) emit(ctx *Context, o fileOutcome, fromStdin bool) error {
	code := o.Result.Code

	switch {
	case cmd.Check:
		if o.Result.Changed && ctx.Verbose {
			color.New(color.FgYellow).Fprintf(ctx.stderr(), "Would rewrite: %s\n", o.Path)
		}
		return nil

	case cmd.Diff:
		return writeDiff(ctx.stdout(), o.Path, string(o.Source), code)

	case cmd.Output != "":
		err := os.WriteFile(cmd.Output, []byte(code), 0644)
		if err != nil {
			return fmt.Errorf("failed to write output file %s: %w", cmd.Output, err)
		}
		return nil

	case cmd.Write && !fromStdin:
		if !o.Result.Changed {
			return nil
		}
		return writeInPlace(o.Path, code)

	default:
		_, err := io.WriteString(ctx.stdout(), code)
		return err
	}
}

// writeInPlace replaces the content of path and keeps its permissions.
func writeInPlace(path, code string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	err = os.WriteFile(path, []byte(code), info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// loadConfig loads the configuration file and applies command line overrides.
func loadConfig(ctx *Context, lenient bool, reportFormat string) (*setpath.Config, error) {
	config, err := setpath.LoadConfig(ctx.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if lenient {
		strict := false
		config.Validation.Strict = &strict
	}

	if reportFormat != "" {
		config.Output.Report = reportFormat
	}

	return config, nil
}

// writeReport renders the report. Text goes to stderr and is silenced by
// --quiet; machine readable formats go to stdout unless code is printed there.
func writeReport(ctx *Context, rep *report.Report, format string, codeOnStdout bool) error {
	if format == "" || format == setpath.ReportText {
		if ctx.Quiet {
			return nil
		}
		return report.WriteText(ctx.stderr(), rep)
	}

	w := ctx.stdout()
	if codeOnStdout {
		w = ctx.stderr()
	}
	return report.Render(w, rep, format)
}

// Help returns help text for the transform command
func (cmd *TransformCmd) Help() string {
	return `Rewrite accessor functions passed to set into literal property paths.

  set(state, _ => _.a.b.c, v)     becomes  set(state, ['a', 'b', 'c'], v)
  set(state).set(_ => _.a, 1)     becomes  set(state).set(['a'], 1)

Only calls whose callee is the imported set binding are rewritten. Directories
are walked for the configured extensions; Markdown files have their js code
blocks rewritten.

Examples:
  # Rewrite a file and print the result
  setpath transform src/store.js

  # Rewrite a project in place
  setpath transform -w ./src

  # Fail in CI when a file still contains accessor functions
  setpath transform -c --report checkstyle ./src`
}
