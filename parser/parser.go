// Package parser builds a jsast.Tree from JavaScript module source.
//
// Source is parsed with the tree-sitter JavaScript grammar and the concrete
// syntax tree is folded into jsast nodes that keep the byte spans of the
// source. Syntax the tree does not model, such as JSX, is kept as Opaque
// nodes so the expressions inside it are still visited.
package parser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"

	"github.com/monolite/setpath/jsast"
)

// ParseError represents parse error
type ParseError struct {
	Filename string
	Message  string
	Position jsast.Position
	Token    string
	Severity ErrorSeverity
	Err      error
}

func (e *ParseError) Error() string {
	var sb strings.Builder
	if e.Filename != "" {
		sb.WriteString(e.Filename)
		sb.WriteString(": ")
	}
	fmt.Fprintf(&sb, "[%s] %s at line %d, column %d", e.Severity, e.Message, e.Position.Line, e.Position.Column)
	if e.Token != "" {
		fmt.Fprintf(&sb, " (token: %s)", e.Token)
	}
	return sb.String()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// AsParseError is a helper to extract *ParseError from error using errors.As.
func AsParseError(err error) (*ParseError, bool) {
	var perr *ParseError
	if errors.As(err, &perr) {
		return perr, true
	}
	return nil, false
}

// ErrorSeverity represents error severity level
type ErrorSeverity int

const (
	WARNING ErrorSeverity = iota
	ERROR
	FATAL
)

func (s ErrorSeverity) String() string {
	switch s {
	case WARNING:
		return "WARNING"
	case ERROR:
		return "ERROR"
	case FATAL:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// Parse parses a JavaScript module and returns its tree.
func Parse(src string, options ...Options) (*jsast.Tree, error) {
	return ParseContext(context.Background(), src, options...)
}

// ParseContext is Parse with a context that can cancel a long parse.
func ParseContext(ctx context.Context, src string, options ...Options) (*jsast.Tree, error) {
	opts := DefaultOptions
	if len(options) > 0 {
		opts = options[0]
	}

	sp := sitter.NewParser()
	defer sp.Close()
	sp.SetLanguage(javascript.GetLanguage())

	source := []byte(src)
	st, err := sp.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, &ParseError{
			Filename: opts.Filename,
			Message:  err.Error(),
			Severity: FATAL,
			Err:      err,
		}
	}
	defer st.Close()

	c := newConverter(src, source, opts)
	root := st.RootNode()
	if bad := firstSyntaxError(root); bad != nil {
		return nil, c.syntaxError(bad)
	}

	c.tree.Root = c.program(root)
	if c.err != nil {
		return nil, c.err
	}
	return c.tree, nil
}

// firstSyntaxError returns the first ERROR or MISSING node in source order.
func firstSyntaxError(n *sitter.Node) *sitter.Node {
	if n.IsMissing() || n.Type() == "ERROR" {
		return n
	}
	if !n.HasError() {
		return nil
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if bad := firstSyntaxError(n.Child(i)); bad != nil {
			return bad
		}
	}
	return nil
}

func (c *converter) syntaxError(bad *sitter.Node) error {
	offset := int(bad.StartByte())
	end := len(strings.TrimRightFunc(c.tree.Source, unicode.IsSpace))

	if bad.IsMissing() {
		sentinel := ErrMissingToken
		if offset >= end {
			sentinel = ErrUnexpectedEOF
		}
		return c.errorAt(offset, "", sentinel, "expected '%s'", bad.Type())
	}

	token := firstLeaf(bad).Content(c.source)
	if offset >= end || (token == "" && int(bad.EndByte()) >= end) {
		return c.errorAt(offset, "", ErrUnexpectedEOF, "input ended early")
	}
	return c.errorAt(offset, token, ErrUnexpectedToken, "'%s'", token)
}

func firstLeaf(n *sitter.Node) *sitter.Node {
	for n.ChildCount() > 0 {
		n = n.Child(0)
	}
	return n
}

// errorAt records a parse error at offset. Only the first error is kept.
func (c *converter) errorAt(offset int, token string, sentinel error, format string, args ...any) error {
	err := &ParseError{
		Filename: c.options.Filename,
		Message:  fmt.Sprintf("%s: %s", sentinel.Error(), fmt.Sprintf(format, args...)),
		Position: c.tree.Position(offset),
		Token:    token,
		Severity: ERROR,
		Err:      sentinel,
	}
	if c.err == nil {
		c.err = err
	}
	return err
}
