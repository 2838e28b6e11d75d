package transform

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/width"

	"github.com/monolite/setpath/jsast"
)

// Sentinel errors
var (
	ErrInvalidAccessorArity         = errors.New("accessor should take exactly one root argument")
	ErrInvalidAccessorRoot          = errors.New("invalid accessor root argument")
	ErrAccessorNotSubpropertyOfRoot = errors.New("accessor function should return a subproperty of root")
)

// ErrorKind classifies accessor validation failures.
type ErrorKind int

const (
	InvalidAccessorArity ErrorKind = iota + 1
	InvalidAccessorRoot
	AccessorNotSubpropertyOfRoot
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidAccessorArity:
		return "InvalidAccessorArity"
	case InvalidAccessorRoot:
		return "InvalidAccessorRoot"
	case AccessorNotSubpropertyOfRoot:
		return "AccessorNotSubpropertyOfRoot"
	default:
		return "Unknown"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case InvalidAccessorArity:
		return ErrInvalidAccessorArity
	case InvalidAccessorRoot:
		return ErrInvalidAccessorRoot
	default:
		return ErrAccessorNotSubpropertyOfRoot
	}
}

// ValidationError is an invalid accessor, anchored at the offending node.
type ValidationError struct {
	Kind     ErrorKind
	Message  string
	Node     jsast.NodeID
	Position jsast.Position
	// Frame shows the source lines around Position with a caret under it.
	Frame string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Position)
}

func (e *ValidationError) Unwrap() error {
	return e.Kind.sentinel()
}

// AsValidationError is a helper to extract *ValidationError from error using errors.As.
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

func newValidationError(tree *jsast.Tree, kind ErrorKind, node jsast.NodeID, detail string) *ValidationError {
	pos := tree.Position(tree.Node(node).Start)
	message := kind.sentinel().Error()
	if detail != "" {
		message += ": " + detail
	}
	return &ValidationError{
		Kind:     kind,
		Message:  message,
		Node:     node,
		Position: pos,
		Frame:    CodeFrame(tree.Source, pos),
	}
}

// frameContext is the number of lines shown above and below the marked line.
const frameContext = 1

// CodeFrame renders the lines around pos with a gutter and a caret under
// the marked column:
//
//	  1 | import { set } from 'monolite'
//	> 2 | set(state, (a, b) => a.x)
//	    |            ^
func CodeFrame(src string, pos jsast.Position) string {
	lines := strings.Split(src, "\n")
	if pos.Line < 1 || pos.Line > len(lines) {
		return ""
	}

	first := max(1, pos.Line-frameContext)
	last := min(len(lines), pos.Line+frameContext)
	width := len(fmt.Sprint(last))

	var sb strings.Builder
	for n := first; n <= last; n++ {
		line := strings.TrimRight(lines[n-1], "\r")
		marker := "  "
		if n == pos.Line {
			marker = "> "
		}
		fmt.Fprintf(&sb, "%s%*d | %s\n", marker, width, n, line)

		if n == pos.Line {
			var pad strings.Builder
			for i, r := range []rune(line) {
				if i >= pos.Column-1 {
					break
				}
				switch {
				case r == '\t':
					pad.WriteRune('\t')
				case isWide(r):
					pad.WriteString("  ")
				default:
					pad.WriteByte(' ')
				}
			}
			fmt.Fprintf(&sb, "  %s | %s^\n", strings.Repeat(" ", width), pad.String())
		}
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// isWide reports whether r takes two terminal cells.
func isWide(r rune) bool {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return true
	}
	return false
}
