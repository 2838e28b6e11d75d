package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/monolite/setpath"
	"github.com/monolite/setpath/parser"
	"github.com/monolite/setpath/report"
	"github.com/monolite/setpath/transform"
)

// fileOutcome is the result of running the pipeline on one input.
type fileOutcome struct {
	Path   string
	Source []byte
	Result *setpath.Result
	Err    error
}

// processFiles runs the pipeline on files with at most workers files in
// flight. Outcomes are returned in input order.
func processFiles(ctx context.Context, files []string, config *setpath.Config, workers int) ([]fileOutcome, error) {
	outcomes := make([]fileOutcome, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = processFile(path, config)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

func processFile(path string, config *setpath.Config) fileOutcome {
	src, err := os.ReadFile(path)
	if err != nil {
		return fileOutcome{Path: path, Err: fmt.Errorf("failed to read %s: %w", path, err)}
	}
	return processSource(path, src, config)
}

func processSource(path string, src []byte, config *setpath.Config) fileOutcome {
	result, err := setpath.TransformFile(path, src, config)
	return fileOutcome{Path: path, Source: src, Result: result, Err: err}
}

// readStdin processes standard input as a file named name.
func readStdin(r io.Reader, name string, config *setpath.Config) (fileOutcome, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return fileOutcome{}, fmt.Errorf("failed to read stdin: %w", err)
	}
	if !setpath.IsMarkdown(name) {
		// stdin is treated as a script whatever the configured extensions
		result, err := setpath.Transform(string(src), config.Options(name))
		return fileOutcome{Path: name, Source: src, Result: result, Err: err}, nil
	}
	return processSource(name, src, config), nil
}

// fileResult converts an outcome into its report entry.
func fileResult(o fileOutcome) report.FileResult {
	fr := report.FileResult{Path: o.Path}

	if o.Err != nil {
		fr.Diagnostics = append(fr.Diagnostics, errorDiagnostic(o.Err))
		return fr
	}

	fr.Changed = o.Result.Changed
	for _, event := range o.Result.Events {
		fr.Rewrites = append(fr.Rewrites, report.Rewrite{
			Line:   event.Position.Line,
			Column: event.Position.Column,
			Shape:  event.Shape.String(),
			Path:   event.Path,
		})
	}
	for _, warning := range o.Result.Warnings {
		d := validationDiagnostic(warning)
		d.Severity = report.SeverityWarning
		fr.Diagnostics = append(fr.Diagnostics, d)
	}
	return fr
}

func validationDiagnostic(verr *transform.ValidationError) report.Diagnostic {
	return report.Diagnostic{
		Severity: report.SeverityError,
		Line:     verr.Position.Line,
		Column:   verr.Position.Column,
		Rule:     verr.Kind.String(),
		Message:  verr.Message,
		Frame:    verr.Frame,
	}
}

func errorDiagnostic(err error) report.Diagnostic {
	if verr, ok := transform.AsValidationError(err); ok {
		return validationDiagnostic(verr)
	}
	if perr, ok := parser.AsParseError(err); ok {
		return report.Diagnostic{
			Severity: report.SeverityError,
			Line:     perr.Position.Line,
			Column:   perr.Position.Column,
			Rule:     "ParseError",
			Message:  perr.Message,
		}
	}
	return report.Diagnostic{
		Severity: report.SeverityError,
		Rule:     "Error",
		Message:  err.Error(),
	}
}
