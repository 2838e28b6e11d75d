package parser

import (
	"slices"

	sitter "github.com/smacker/go-tree-sitter"

	pc "github.com/shibukawa/parsercombinator"

	"github.com/monolite/setpath/jsast"
)

// importToken is one leaf of an import statement. String literals stay whole.
type importToken struct {
	Type       string // syntax node type; keywords and punctuation are their own text
	Text       string
	Start, End int
}

// Import declarations have a small closed grammar, so they are matched with
// combinators over the leaves of the statement and then folded into nodes by tag.
var (
	identifierToken = primitiveType("identifier", "identifier")
	stringToken     = primitiveType("string", "string")
	nameToken       = primitiveType("name", "identifier", "string", "default")

	importSpecifier = pc.Or(
		pc.Seq(tag("imported", nameToken), pc.Drop(keyword("as")), tag("local", identifierToken)),
		tag("specifier", identifierToken),
	)
	namedImports = pc.Seq(
		pc.Drop(keyword("{")),
		pc.Optional(pc.Seq(
			importSpecifier,
			pc.ZeroOrMore("import specifiers", pc.Seq(pc.Drop(keyword(",")), importSpecifier)),
			pc.Optional(pc.Drop(keyword(","))),
		)),
		pc.Drop(keyword("}")),
	)
	namespaceImport = pc.Seq(tag("star", keyword("*")), pc.Drop(keyword("as")), tag("namespace", identifierToken))
	defaultImport   = tag("default", identifierToken)

	importClause = pc.Or(
		pc.Seq(defaultImport, pc.Optional(pc.Seq(pc.Drop(keyword(",")), pc.Or(namespaceImport, namedImports)))),
		namespaceImport,
		namedImports,
	)

	importDeclaration = pc.Seq(
		pc.Drop(keyword("import")),
		pc.Or(
			pc.Seq(importClause, pc.Drop(keyword("from")), tag("source", stringToken)),
			tag("source", stringToken),
		),
	)
)

func primitiveType(typeName string, types ...string) pc.Parser[importToken] {
	return func(pctx *pc.ParseContext[importToken], tokens []pc.Token[importToken]) (int, []pc.Token[importToken], error) {
		if len(tokens) > 0 && slices.Contains(types, tokens[0].Val.Type) {
			return 1, tokens[:1], nil
		}
		return 0, nil, pc.ErrNotMatch
	}
}

// keyword matches a keyword, a contextual word such as "from" or a punctuator.
func keyword(value string) pc.Parser[importToken] {
	return func(pctx *pc.ParseContext[importToken], tokens []pc.Token[importToken]) (int, []pc.Token[importToken], error) {
		if len(tokens) > 0 && tokens[0].Val.Type == value {
			return 1, tokens[:1], nil
		}
		return 0, nil, pc.ErrNotMatch
	}
}

// tag labels the tokens matched by p without touching the shared input.
func tag(label string, p pc.Parser[importToken]) pc.Parser[importToken] {
	return pc.Trans(p, func(pctx *pc.ParseContext[importToken], src []pc.Token[importToken]) ([]pc.Token[importToken], error) {
		converted := slices.Clone(src)
		for i := range converted {
			converted[i].Type = label
		}
		return converted, nil
	})
}

// importTokens flattens the leaves under n in source order.
func (c *converter) importTokens(n *sitter.Node, out []pc.Token[importToken]) []pc.Token[importToken] {
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		switch {
		case child.Type() == "comment":
		case child.Type() == "string" || child.ChildCount() == 0:
			point := child.StartPoint()
			out = append(out, pc.Token[importToken]{
				Type: "raw",
				Pos: &pc.Pos{
					Line:  int(point.Row) + 1,
					Col:   int(point.Column) + 1,
					Index: int(child.StartByte()),
				},
				Val: importToken{
					Type:  child.Type(),
					Text:  c.text(child),
					Start: int(child.StartByte()),
					End:   int(child.EndByte()),
				},
				Raw: c.text(child),
			})
		default:
			out = c.importTokens(child, out)
		}
	}
	return out
}

func (c *converter) importDeclaration(n *sitter.Node) jsast.NodeID {
	tokens := c.importTokens(n, nil)
	consumed, match, err := importDeclaration(c.pctx, tokens)
	if err != nil || consumed == 0 {
		c.errorAt(int(n.StartByte()), "import", ErrUnsupportedSyntax, "malformed import declaration")
		return c.opaque(n)
	}

	decl := c.newNode(jsast.ImportDeclaration, n)
	imported := jsast.NoNode
	starOffset := -1

	for _, m := range match {
		t := m.Val
		switch m.Type {
		case "default":
			local := c.tokenNode(t)
			spec := jsast.NewNode(jsast.ImportDefaultSpecifier, t.Start, t.End)
			spec.A = local
			decl.List = append(decl.List, c.tree.Add(spec))
		case "star":
			starOffset = t.Start
		case "namespace":
			local := c.tokenNode(t)
			spec := jsast.NewNode(jsast.ImportNamespaceSpecifier, starOffset, t.End)
			spec.A = local
			decl.List = append(decl.List, c.tree.Add(spec))
		case "specifier":
			local := c.tokenNode(t)
			spec := jsast.NewNode(jsast.ImportSpecifier, t.Start, t.End)
			spec.A, spec.B = local, local
			decl.List = append(decl.List, c.tree.Add(spec))
		case "imported":
			imported = c.tokenNode(t)
		case "local":
			local := c.tokenNode(t)
			spec := jsast.NewNode(jsast.ImportSpecifier, c.tree.Node(imported).Start, t.End)
			spec.A, spec.B = local, imported
			decl.List = append(decl.List, c.tree.Add(spec))
		case "source":
			decl.A = c.tokenNode(t)
		}
	}
	return c.tree.Add(decl)
}

// tokenNode turns a single matched name or string token into a node.
func (c *converter) tokenNode(t importToken) jsast.NodeID {
	if t.Type == "string" {
		n := jsast.NewNode(jsast.StringLiteral, t.Start, t.End)
		n.Raw = t.Text
		value, err := jsast.UnquoteString(t.Text)
		if err != nil {
			c.errorAt(t.Start, t.Text, ErrInvalidString, "%v", err)
		}
		n.Value = value
		return c.tree.Add(n)
	}
	n := jsast.NewNode(jsast.Identifier, t.Start, t.End)
	n.Name = t.Text
	return c.tree.Add(n)
}

func (c *converter) exportDeclaration(n *sitter.Node) jsast.NodeID {
	if hasToken(n, "default") {
		node := c.newNode(jsast.ExportDefaultDeclaration, n)
		node.A = c.field(n, "declaration")
		if node.A == jsast.NoNode {
			node.A = c.field(n, "value")
		}
		return c.tree.Add(node)
	}

	source := c.field(n, "source")
	if decl := n.ChildByFieldName("declaration"); decl != nil {
		node := c.newNode(jsast.ExportNamedDeclaration, n)
		node.A = c.convert(decl)
		return c.tree.Add(node)
	}

	for _, child := range named(n) {
		switch child.Type() {
		case "export_clause":
			node := c.newNode(jsast.ExportNamedDeclaration, n)
			for _, spec := range named(child) {
				node.List = append(node.List, c.exportSpecifier(spec))
			}
			node.B = source
			return c.tree.Add(node)
		case "namespace_export":
			node := c.newNode(jsast.ExportAllDeclaration, n)
			if inner := named(child); len(inner) > 0 {
				node.A = c.convert(inner[0])
			}
			node.B = source
			return c.tree.Add(node)
		}
	}

	node := c.newNode(jsast.ExportAllDeclaration, n)
	node.B = source
	return c.tree.Add(node)
}

func (c *converter) exportSpecifier(n *sitter.Node) jsast.NodeID {
	spec := c.newNode(jsast.ExportSpecifier, n)
	spec.A = c.field(n, "name")
	spec.B = c.field(n, "alias")
	if spec.B == jsast.NoNode {
		spec.B = spec.A
	}
	return c.tree.Add(spec)
}
