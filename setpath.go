// Package setpath rewrites accessor functions passed to the set helper into
// literal property paths, for JavaScript sources and the JavaScript code
// blocks of Markdown documents.
package setpath

import (
	"fmt"

	"github.com/monolite/setpath/formatter"
	"github.com/monolite/setpath/jsast"
	"github.com/monolite/setpath/markdownparser"
	"github.com/monolite/setpath/parser"
	"github.com/monolite/setpath/transform"
	"github.com/monolite/setpath/traverse"
)

// Options controls one run of the pipeline.
type Options struct {
	// Filename is reported in parse errors.
	Filename  string
	Transform transform.Options
	// Quote is used for synthesized string literals.
	Quote byte
	// Reprint regenerates the whole file instead of splicing into the source.
	Reprint bool
	Indent  string
}

// DefaultOptions runs the default pass and keeps the source layout.
var DefaultOptions = Options{
	Transform: transform.DefaultOptions,
	Quote:     '\'',
	Indent:    formatter.DefaultOptions.Indent,
}

// Result is the outcome of transforming one source.
type Result struct {
	Code     string
	Changed  bool
	Events   []transform.Event
	Warnings []*transform.ValidationError
}

// Transform parses src, rewrites its set calls and prints the result. A file
// without rewrites is returned unchanged, even in reprint mode.
func Transform(src string, opts Options) (*Result, error) {
	tree, err := parser.Parse(src, parser.Options{Filename: opts.Filename, AllowHashbang: true})
	if err != nil {
		return nil, err
	}

	quote := opts.Quote
	if quote == 0 {
		quote = DefaultOptions.Quote
	}
	pass := transform.Plugin(jsast.NewToolkit(tree, quote), opts.Transform)

	err = traverse.Traverse(tree, jsast.AnalyzeScopes(tree), pass.Visitor())
	if err != nil {
		return nil, err
	}

	result := &Result{
		Code:     src,
		Events:   pass.Events(),
		Warnings: pass.Warnings(),
	}
	if len(result.Events) == 0 {
		return result, nil
	}

	printOptions := formatter.DefaultOptions
	if opts.Indent != "" {
		printOptions.Indent = opts.Indent
	}
	if opts.Reprint {
		result.Code = formatter.Generate(tree, printOptions)
	} else {
		result.Code = formatter.Print(tree, printOptions)
	}
	result.Changed = result.Code != src

	return result, nil
}

// TransformMarkdown rewrites every JavaScript code block of a Markdown
// document. Positions in events and warnings refer to document lines.
func TransformMarkdown(src string, opts Options) (*Result, error) {
	doc, err := markdownparser.Parse([]byte(src))
	if err != nil {
		return nil, err
	}

	result := &Result{Code: src}
	if doc.Disabled() || len(doc.Blocks) == 0 {
		return result, nil
	}

	replacements := make([]string, len(doc.Blocks))
	for i, block := range doc.Blocks {
		blockResult, err := Transform(block.Content, opts)
		if err != nil {
			return nil, fmt.Errorf("code block at line %d: %w", block.Line, shiftError(err, block, src))
		}

		replacements[i] = blockResult.Code
		for _, event := range blockResult.Events {
			event.Position = shift(event.Position, block)
			result.Events = append(result.Events, event)
		}
		for _, warning := range blockResult.Warnings {
			result.Warnings = append(result.Warnings, shiftValidationError(warning, block, src))
		}
	}

	if len(result.Events) == 0 {
		return result, nil
	}

	out, err := doc.Replace(replacements)
	if err != nil {
		return nil, err
	}
	result.Code = string(out)
	result.Changed = result.Code != src

	return result, nil
}

func shift(pos jsast.Position, block markdownparser.CodeBlock) jsast.Position {
	return jsast.Position{
		Line:   pos.Line + block.Line - 1,
		Column: pos.Column,
		Offset: pos.Offset + block.Start,
	}
}

func shiftValidationError(verr *transform.ValidationError, block markdownparser.CodeBlock, src string) *transform.ValidationError {
	shifted := *verr
	shifted.Position = shift(verr.Position, block)
	shifted.Frame = transform.CodeFrame(src, shifted.Position)
	return &shifted
}

// shiftError moves the position of positioned errors from block to document coordinates.
func shiftError(err error, block markdownparser.CodeBlock, src string) error {
	if verr, ok := transform.AsValidationError(err); ok {
		return shiftValidationError(verr, block, src)
	}
	if perr, ok := parser.AsParseError(err); ok {
		shifted := *perr
		shifted.Position = shift(perr.Position, block)
		return &shifted
	}
	return err
}
