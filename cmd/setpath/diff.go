package main

import (
	"fmt"
	"io"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

// writeDiff writes a unified diff between the original and rewritten source.
func writeDiff(w io.Writer, filename, original, rewritten string) error {
	if original == rewritten {
		return nil
	}

	edits := myers.ComputeEdits(span.URIFromPath(filename), original, rewritten)
	unified := gotextdiff.ToUnified(filename+" (original)", filename+" (rewritten)", original, edits)

	_, err := fmt.Fprint(w, unified)
	return err
}
