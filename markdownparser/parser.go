// Package markdownparser locates JavaScript code blocks in Markdown documents
// so they can be rewritten without touching the rest of the document.
package markdownparser

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Sentinel errors
var (
	ErrInvalidFrontMatter = errors.New("invalid front matter")
	ErrReplacementCount   = errors.New("replacement count does not match code blocks")
)

// Languages lists the fence info strings treated as JavaScript.
var Languages = []string{"js", "javascript", "mjs", "cjs"}

// CodeBlock is the content of one fenced code block.
type CodeBlock struct {
	Language string
	Content  string
	Start    int // byte offset of the first content byte in the document
	End      int // byte offset just past the last content byte
	Line     int // 1-based line of the first content line
}

// Document is a parsed Markdown file.
type Document struct {
	Source      []byte
	FrontMatter map[string]any
	Blocks      []CodeBlock
	// Skipped counts JavaScript blocks nested in containers whose line prefixes
	// are interleaved with the code, such as block quotes.
	Skipped int
}

// Parse finds the JavaScript fenced code blocks of a Markdown document.
func Parse(content []byte) (*Document, error) {
	frontMatter, offset, err := parseFrontMatter(content)
	if err != nil {
		return nil, err
	}

	doc := &Document{Source: content, FrontMatter: frontMatter}
	body := content[offset:]

	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	root := md.Parser().Parse(text.NewReader(body))

	err = ast.Walk(root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		codeBlock, ok := node.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		language := strings.ToLower(string(codeBlock.Language(body)))
		if !slices.Contains(Languages, language) {
			return ast.WalkSkipChildren, nil
		}

		block, ok := extractBlock(codeBlock, body, offset)
		if !ok {
			doc.Skipped++
			return ast.WalkSkipChildren, nil
		}
		block.Language = language
		block.Line = bytes.Count(content[:block.Start], []byte("\n")) + 1
		doc.Blocks = append(doc.Blocks, block)
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk markdown: %w", err)
	}

	return doc, nil
}

// extractBlock maps the lines of a code block back to one contiguous range of
// the document. Blocks whose lines are not contiguous in the source are
// rejected since writing them back would drop the container prefixes.
func extractBlock(codeBlock *ast.FencedCodeBlock, body []byte, offset int) (CodeBlock, bool) {
	lines := codeBlock.Lines()
	if lines.Len() == 0 {
		return CodeBlock{}, false
	}

	var content strings.Builder
	prev := -1
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		if line.Padding != 0 || (prev >= 0 && line.Start != prev) {
			return CodeBlock{}, false
		}
		content.Write(line.Value(body))
		prev = line.Stop
	}

	return CodeBlock{
		Content: content.String(),
		Start:   offset + lines.At(0).Start,
		End:     offset + prev,
	}, true
}

// Disabled reports whether the front matter opts the document out with "setpath: false".
func (d *Document) Disabled() bool {
	enabled, ok := d.FrontMatter["setpath"].(bool)
	return ok && !enabled
}

// Replace returns the document with each code block's content replaced by the
// string at the same index. Everything outside the blocks is kept as is.
func (d *Document) Replace(replacements []string) ([]byte, error) {
	if len(replacements) != len(d.Blocks) {
		return nil, fmt.Errorf("%w: %d blocks, %d replacements", ErrReplacementCount, len(d.Blocks), len(replacements))
	}

	var out bytes.Buffer
	last := 0
	for i, block := range d.Blocks {
		out.Write(d.Source[last:block.Start])
		out.WriteString(replacements[i])
		last = block.End
	}
	out.Write(d.Source[last:])

	return out.Bytes(), nil
}
