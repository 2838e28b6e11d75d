package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// WriteText writes a human readable report. Colors follow color.NoColor.
func WriteText(w io.Writer, r *Report) error {
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()

	var sb strings.Builder
	for _, file := range r.Files {
		for _, d := range file.Diagnostics {
			label := yellow(string(d.Severity))
			if d.Severity == SeverityError {
				label = red(string(d.Severity))
			}
			fmt.Fprintf(&sb, "%s:%d:%d: %s: %s %s\n", file.Path, d.Line, d.Column, label, d.Message, faint("["+d.Rule+"]"))
			if d.Frame != "" {
				sb.WriteString(d.Frame)
				sb.WriteString("\n")
			}
		}
		if file.Changed {
			fmt.Fprintf(&sb, "%s %s (%d rewrites)\n", green("rewritten:"), file.Path, len(file.Rewrites))
		}
	}

	s := r.Summary()
	status := green("ok")
	if s.Errors > 0 {
		status = red("failed")
	}
	fmt.Fprintf(&sb, "%s: %d files, %d changed, %d rewrites, %d errors, %d warnings\n",
		status, s.Files, s.Changed, s.Rewrites, s.Errors, s.Warnings)

	_, err := io.WriteString(w, sb.String())
	return err
}
