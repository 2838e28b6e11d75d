package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/beevik/etree"
	"github.com/fatih/color"
	"github.com/google/uuid"
)

func sampleReport() *Report {
	r := New()
	r.Add(FileResult{
		Path:    "src/a.js",
		Changed: true,
		Rewrites: []Rewrite{
			{Line: 2, Column: 1, Shape: "classical", Path: "a.b"},
			{Line: 3, Column: 1, Shape: "fluent-link", Path: "c"},
		},
	})
	r.Add(FileResult{
		Path: "src/b.js",
		Diagnostics: []Diagnostic{
			{Severity: SeverityError, Line: 4, Column: 12, Rule: "InvalidAccessorArity", Message: "accessor should take exactly one root argument"},
			{Severity: SeverityWarning, Line: 5, Column: 1, Rule: "AccessorNotSubpropertyOfRoot", Message: `a "quoted" <message>`},
		},
	})
	return r
}

func TestSummary(t *testing.T) {
	r := sampleReport()
	_, err := uuid.Parse(r.RunID)
	assert.NoError(t, err)

	assert.Equal(t, Summary{Files: 2, Changed: 1, Rewrites: 2, Errors: 1, Warnings: 1}, r.Summary())
	assert.True(t, r.HasErrors())
	assert.False(t, New().HasErrors())
}

func TestWriteText(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	assert.NoError(t, Render(&buf, sampleReport(), "text"))

	expected := strings.Join([]string{
		"rewritten: src/a.js (2 rewrites)",
		"src/b.js:4:12: error: accessor should take exactly one root argument [InvalidAccessorArity]",
		`src/b.js:5:1: warning: a "quoted" <message> [AccessorNotSubpropertyOfRoot]`,
		"failed: 2 files, 1 changed, 2 rewrites, 1 errors, 1 warnings",
		"",
	}, "\n")
	assert.Equal(t, expected, buf.String())
}

func TestWriteJSON(t *testing.T) {
	r := sampleReport()

	var buf bytes.Buffer
	assert.NoError(t, Render(&buf, r, "json"))

	var decoded struct {
		RunID   string       `json:"run_id"`
		Files   []FileResult `json:"files"`
		Summary Summary      `json:"summary"`
	}
	assert.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, r.RunID, decoded.RunID)
	assert.Equal(t, r.Files, decoded.Files)
	assert.Equal(t, r.Summary(), decoded.Summary)

	buf.Reset()
	assert.NoError(t, WriteJSON(&buf, New()))
	assert.Contains(t, buf.String(), `"files": []`)
}

func TestWriteCheckstyle(t *testing.T) {
	r := sampleReport()

	var buf bytes.Buffer
	assert.NoError(t, Render(&buf, r, "checkstyle"))

	doc := etree.NewDocument()
	assert.NoError(t, doc.ReadFromBytes(buf.Bytes()))

	root := doc.SelectElement("checkstyle")
	assert.True(t, root != nil)
	assert.Equal(t, r.RunID, root.SelectAttrValue("run", ""))

	files := root.SelectElements("file")
	assert.Equal(t, 2, len(files))
	assert.Equal(t, "src/a.js", files[0].SelectAttrValue("name", ""))
	assert.Equal(t, 0, len(files[0].SelectElements("error")))

	errs := files[1].SelectElements("error")
	assert.Equal(t, 2, len(errs))
	assert.Equal(t, "4", errs[0].SelectAttrValue("line", ""))
	assert.Equal(t, "12", errs[0].SelectAttrValue("column", ""))
	assert.Equal(t, "error", errs[0].SelectAttrValue("severity", ""))
	assert.Equal(t, "setpath.InvalidAccessorArity", errs[0].SelectAttrValue("source", ""))
	assert.Equal(t, `a "quoted" <message>`, errs[1].SelectAttrValue("message", ""))
}

func TestRenderUnknownFormat(t *testing.T) {
	err := Render(&bytes.Buffer{}, New(), "sarif")
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}
