package transform

import (
	"strings"

	"github.com/monolite/setpath/jsast"
)

// ExtractChain turns a validated accessor body into path segments, root
// first. A non-computed property becomes a new string literal of its name,
// a computed literal is kept as is and any other computed expression is
// passed through as the original node. The parameter itself contributes
// nothing, so a bare parameter body yields no segments.
func ExtractChain(kit *jsast.Toolkit, body jsast.NodeID) []jsast.NodeID {
	tree := kit.Tree()
	n := tree.Node(body)
	if n.Kind != jsast.MemberExpression {
		return nil
	}

	segments := ExtractChain(kit, n.A)
	if n.Computed {
		return append(segments, n.B)
	}
	return append(segments, kit.StringLiteral(tree.Node(n.B).Name))
}

// FormatPath renders segments as a readable property path such as
// a.b[c]['d'], used in rewrite reports.
func FormatPath(tree *jsast.Tree, segments []jsast.NodeID) string {
	var sb strings.Builder
	for _, seg := range segments {
		n := tree.Node(seg)
		if n.Synthetic && n.Kind == jsast.StringLiteral {
			if sb.Len() > 0 {
				sb.WriteByte('.')
			}
			sb.WriteString(n.Value)
			continue
		}
		sb.WriteByte('[')
		sb.WriteString(tree.Text(seg))
		sb.WriteByte(']')
	}
	return sb.String()
}
