package jsast

import "strings"

// Sexpr renders the subtree at id as a compact s-expression:
// identifiers and literals print as their text, templates with
// substitutions and every other node as
// (Kind[flags] operator children...). Array holes print as <hole>.
func Sexpr(t *Tree, id NodeID) string {
	var sb strings.Builder
	writeSexpr(&sb, t, id)
	return sb.String()
}

func writeSexpr(sb *strings.Builder, t *Tree, id NodeID) {
	if id == NoNode {
		sb.WriteString("<hole>")
		return
	}
	n := t.Node(id)

	switch n.Kind {
	case Identifier:
		sb.WriteString(n.Name)
		return
	case StringLiteral, NumericLiteral, BooleanLiteral, NullLiteral, RegExpLiteral:
		sb.WriteString(n.Raw)
		return
	case TemplateLiteral:
		if len(n.List) == 0 {
			sb.WriteString(n.Raw)
			return
		}
	case ThisExpression:
		sb.WriteString("this")
		return
	case Super:
		sb.WriteString("super")
		return
	case MetaProperty:
		sb.WriteString(n.Name)
		return
	}

	sb.WriteByte('(')
	sb.WriteString(n.Kind.String())
	if flags := Flags(n); len(flags) > 0 {
		sb.WriteByte('[')
		sb.WriteString(strings.Join(flags, ","))
		sb.WriteByte(']')
	}
	if n.Name != "" {
		sb.WriteByte(' ')
		sb.WriteString(n.Name)
	}

	children := t.Children(id)
	if n.Kind == ArrayExpression || n.Kind == ArrayPattern {
		children = n.List
	}
	for _, c := range children {
		sb.WriteByte(' ')
		writeSexpr(sb, t, c)
	}
	sb.WriteByte(')')
}

// Flags lists the boolean attributes set on n.
func Flags(n Node) []string {
	var flags []string
	if n.Computed {
		flags = append(flags, "computed")
	}
	if n.Optional {
		flags = append(flags, "optional")
	}
	if n.Prefix && n.Kind == UpdateExpression {
		flags = append(flags, "prefix")
	}
	if n.Shorthand {
		flags = append(flags, "shorthand")
	}
	if n.Method {
		flags = append(flags, "method")
	}
	if n.Async {
		flags = append(flags, "async")
	}
	if n.Generator {
		flags = append(flags, "generator")
	}
	if n.Static {
		flags = append(flags, "static")
	}
	if n.Synthetic {
		flags = append(flags, "synthetic")
	}
	return flags
}
