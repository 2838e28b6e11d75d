package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/beevik/etree"
)

// checkstyleVersion is the format version written to the root element.
const checkstyleVersion = "4.3"

// WriteCheckstyle writes the diagnostics as a checkstyle XML document, the
// format understood by most CI annotation tools.
func WriteCheckstyle(w io.Writer, r *Report) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("checkstyle")
	root.CreateAttr("version", checkstyleVersion)
	root.CreateAttr("run", r.RunID)

	for _, file := range r.Files {
		elem := root.CreateElement("file")
		elem.CreateAttr("name", file.Path)

		for _, d := range file.Diagnostics {
			e := elem.CreateElement("error")
			e.CreateAttr("line", strconv.Itoa(d.Line))
			e.CreateAttr("column", strconv.Itoa(d.Column))
			e.CreateAttr("severity", string(d.Severity))
			e.CreateAttr("message", d.Message)
			e.CreateAttr("source", "setpath."+d.Rule)
		}
	}

	doc.Indent(2)

	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write checkstyle report: %w", err)
	}
	return nil
}
