// Package report aggregates per-file outcomes of a run and renders them as
// text, JSON or checkstyle XML.
package report

import (
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
)

// Sentinel errors
var (
	ErrUnknownFormat = errors.New("unknown report format")
)

// Severity of a diagnostic
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Diagnostic is one problem found in a file.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	Line     int      `json:"line"`
	Column   int      `json:"column"`
	Rule     string   `json:"rule"`
	Message  string   `json:"message"`
	Frame    string   `json:"frame,omitempty"`
}

// Rewrite is one accessor replaced by a path.
type Rewrite struct {
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Shape  string `json:"shape"`
	Path   string `json:"path"`
}

// FileResult is the outcome for one input file.
type FileResult struct {
	Path        string       `json:"path"`
	Changed     bool         `json:"changed"`
	Rewrites    []Rewrite    `json:"rewrites"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// Summary counts the results of a run.
type Summary struct {
	Files    int `json:"files"`
	Changed  int `json:"changed"`
	Rewrites int `json:"rewrites"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
}

// Report collects file results in input order.
type Report struct {
	RunID string       `json:"run_id"`
	Files []FileResult `json:"files"`
}

// New creates an empty report with a fresh run identifier.
func New() *Report {
	return &Report{RunID: uuid.NewString()}
}

// Add appends the result of one file.
func (r *Report) Add(result FileResult) {
	r.Files = append(r.Files, result)
}

// Summary counts files, rewrites and diagnostics.
func (r *Report) Summary() Summary {
	s := Summary{Files: len(r.Files)}
	for _, file := range r.Files {
		if file.Changed {
			s.Changed++
		}
		s.Rewrites += len(file.Rewrites)
		for _, d := range file.Diagnostics {
			if d.Severity == SeverityError {
				s.Errors++
			} else {
				s.Warnings++
			}
		}
	}
	return s
}

// HasErrors reports whether any file has an error diagnostic.
func (r *Report) HasErrors() bool {
	return r.Summary().Errors > 0
}

// Render writes the report in the given format: text, json or checkstyle.
func Render(w io.Writer, r *Report, format string) error {
	switch format {
	case "", "text":
		return WriteText(w, r)
	case "json":
		return WriteJSON(w, r)
	case "checkstyle":
		return WriteCheckstyle(w, r)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}
