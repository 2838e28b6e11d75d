package parser

import (
	sitter "github.com/smacker/go-tree-sitter"

	pc "github.com/shibukawa/parsercombinator"

	"github.com/monolite/setpath/jsast"
)

// converter folds a tree-sitter syntax tree into a jsast.Tree. Children are
// converted before their parent is added, so parent links are set by Add.
type converter struct {
	tree    *jsast.Tree
	source  []byte
	options Options
	pctx    *pc.ParseContext[importToken]
	err     error
}

func newConverter(src string, source []byte, opts Options) *converter {
	return &converter{
		tree:    jsast.NewTree(src),
		source:  source,
		options: opts,
		pctx:    pc.NewParseContext[importToken](),
	}
}

func (c *converter) newNode(kind jsast.Kind, n *sitter.Node) jsast.Node {
	return jsast.NewNode(kind, int(n.StartByte()), int(n.EndByte()))
}

func (c *converter) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(c.source)
}

// field converts the child stored under name, or returns NoNode.
func (c *converter) field(n *sitter.Node, name string) jsast.NodeID {
	return c.convert(n.ChildByFieldName(name))
}

// named returns the named children of n that carry syntax.
func named(n *sitter.Node) []*sitter.Node {
	var out []*sitter.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		switch child.Type() {
		case "comment", "html_comment", "optional_chain", "decorator":
			continue
		}
		out = append(out, child)
	}
	return out
}

func (c *converter) convertAll(nodes []*sitter.Node) []jsast.NodeID {
	out := make([]jsast.NodeID, 0, len(nodes))
	for _, n := range nodes {
		if id := c.convert(n); id != jsast.NoNode {
			out = append(out, id)
		}
	}
	return out
}

// hasToken reports whether n has an anonymous child spelled token.
func hasToken(n *sitter.Node, token string) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if !child.IsNamed() && child.Type() == token {
			return true
		}
	}
	return false
}

func sameNode(a, b *sitter.Node) bool {
	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Type() == b.Type()
}

func hasChild(n *sitter.Node, typ string) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		if n.Child(i).Type() == typ {
			return true
		}
	}
	return false
}

// unwrap converts the expression inside a parenthesized condition without
// marking it, since the parentheses belong to the statement.
func (c *converter) unwrap(n *sitter.Node) jsast.NodeID {
	if n != nil && n.Type() == "parenthesized_expression" {
		if inner := named(n); len(inner) > 0 {
			return c.convert(inner[0])
		}
	}
	return c.convert(n)
}

func (c *converter) program(n *sitter.Node) jsast.NodeID {
	program := jsast.NewNode(jsast.Program, 0, len(c.source))
	for _, child := range named(n) {
		if child.Type() == "hash_bang_line" {
			if !c.options.AllowHashbang {
				c.errorAt(int(child.StartByte()), "#!", ErrUnexpectedToken, "hashbang line")
			}
			continue
		}
		if id := c.convert(child); id != jsast.NoNode {
			program.List = append(program.List, id)
		}
	}
	return c.tree.Add(program)
}

// convert maps one syntax node. Unknown syntax becomes an Opaque node.
func (c *converter) convert(n *sitter.Node) jsast.NodeID {
	if n == nil || !n.IsNamed() {
		return jsast.NoNode
	}

	switch n.Type() {
	case "comment", "html_comment", "hash_bang_line":
		return jsast.NoNode
	}
	if id, ok := c.statement(n); ok {
		return id
	}
	if id, ok := c.expression(n); ok {
		return id
	}
	if id, ok := c.pattern(n); ok {
		return id
	}
	return c.opaque(n)
}

func (c *converter) opaque(n *sitter.Node) jsast.NodeID {
	node := c.newNode(jsast.Opaque, n)
	node.Name = n.Type()
	node.List = c.convertAll(named(n))
	return c.tree.Add(node)
}

func (c *converter) statement(n *sitter.Node) (jsast.NodeID, bool) {
	switch n.Type() {
	case "expression_statement":
		node := c.newNode(jsast.ExpressionStatement, n)
		if inner := named(n); len(inner) > 0 {
			node.A = c.convert(inner[0])
		}
		return c.tree.Add(node), true

	case "empty_statement":
		return c.tree.Add(c.newNode(jsast.EmptyStatement, n)), true

	case "debugger_statement":
		return c.tree.Add(c.newNode(jsast.DebuggerStatement, n)), true

	case "statement_block":
		node := c.newNode(jsast.BlockStatement, n)
		node.List = c.convertAll(named(n))
		return c.tree.Add(node), true

	case "variable_declaration", "lexical_declaration":
		node := c.newNode(jsast.VariableDeclaration, n)
		node.Name = "var"
		if kind := n.ChildByFieldName("kind"); kind != nil {
			node.Name = c.text(kind)
		}
		for _, child := range named(n) {
			if child.Type() == "variable_declarator" {
				node.List = append(node.List, c.convert(child))
			}
		}
		return c.tree.Add(node), true

	case "variable_declarator":
		node := c.newNode(jsast.VariableDeclarator, n)
		node.A = c.field(n, "name")
		node.B = c.field(n, "value")
		return c.tree.Add(node), true

	case "function_declaration", "generator_function_declaration":
		return c.function(jsast.FunctionDeclaration, n), true

	case "return_statement", "throw_statement":
		kind := jsast.ReturnStatement
		if n.Type() == "throw_statement" {
			kind = jsast.ThrowStatement
		}
		node := c.newNode(kind, n)
		if inner := named(n); len(inner) > 0 {
			node.A = c.convert(inner[0])
		}
		return c.tree.Add(node), true

	case "if_statement":
		node := c.newNode(jsast.IfStatement, n)
		node.A = c.unwrap(n.ChildByFieldName("condition"))
		node.B = c.field(n, "consequence")
		if alt := n.ChildByFieldName("alternative"); alt != nil {
			if inner := named(alt); alt.Type() == "else_clause" && len(inner) > 0 {
				node.C = c.convert(inner[0])
			} else {
				node.C = c.convert(alt)
			}
		}
		return c.tree.Add(node), true

	case "while_statement":
		node := c.newNode(jsast.WhileStatement, n)
		node.A = c.unwrap(n.ChildByFieldName("condition"))
		node.B = c.field(n, "body")
		return c.tree.Add(node), true

	case "do_statement":
		node := c.newNode(jsast.DoWhileStatement, n)
		node.A = c.field(n, "body")
		node.B = c.unwrap(n.ChildByFieldName("condition"))
		return c.tree.Add(node), true

	case "for_statement":
		node := c.newNode(jsast.ForStatement, n)
		node.A = c.forClause(n.ChildByFieldName("initializer"))
		node.B = c.forClause(n.ChildByFieldName("condition"))
		node.C = c.field(n, "increment")
		node.D = c.field(n, "body")
		return c.tree.Add(node), true

	case "for_in_statement":
		return c.forIn(n), true

	case "try_statement":
		node := c.newNode(jsast.TryStatement, n)
		node.A = c.field(n, "body")
		node.B = c.field(n, "handler")
		if finalizer := n.ChildByFieldName("finalizer"); finalizer != nil {
			node.C = c.field(finalizer, "body")
		}
		return c.tree.Add(node), true

	case "catch_clause":
		node := c.newNode(jsast.CatchClause, n)
		node.A = c.field(n, "parameter")
		node.B = c.field(n, "body")
		return c.tree.Add(node), true

	case "break_statement", "continue_statement":
		kind := jsast.BreakStatement
		if n.Type() == "continue_statement" {
			kind = jsast.ContinueStatement
		}
		node := c.newNode(kind, n)
		node.A = c.field(n, "label")
		return c.tree.Add(node), true

	case "labeled_statement":
		node := c.newNode(jsast.LabeledStatement, n)
		node.A = c.field(n, "label")
		node.B = c.field(n, "body")
		return c.tree.Add(node), true

	case "with_statement":
		node := c.newNode(jsast.WithStatement, n)
		node.A = c.unwrap(n.ChildByFieldName("object"))
		node.B = c.field(n, "body")
		return c.tree.Add(node), true

	case "switch_statement":
		node := c.newNode(jsast.SwitchStatement, n)
		node.A = c.unwrap(n.ChildByFieldName("value"))
		if body := n.ChildByFieldName("body"); body != nil {
			node.List = c.convertAll(named(body))
		}
		return c.tree.Add(node), true

	case "switch_case", "switch_default":
		node := c.newNode(jsast.SwitchCase, n)
		value := n.ChildByFieldName("value")
		node.A = c.convert(value)
		for _, child := range named(n) {
			if value != nil && sameNode(child, value) {
				continue
			}
			if id := c.convert(child); id != jsast.NoNode {
				node.List = append(node.List, id)
			}
		}
		return c.tree.Add(node), true

	case "class_declaration":
		return c.class(jsast.ClassDeclaration, n), true

	case "import_statement":
		return c.importDeclaration(n), true

	case "export_statement":
		return c.exportDeclaration(n), true
	}
	return jsast.NoNode, false
}

// forClause converts the init or test clause of a for statement. Older
// grammars wrap them in statements that carry the semicolon.
func (c *converter) forClause(n *sitter.Node) jsast.NodeID {
	if n == nil || !n.IsNamed() {
		return jsast.NoNode
	}
	switch n.Type() {
	case "empty_statement":
		return jsast.NoNode
	case "expression_statement":
		if inner := named(n); len(inner) > 0 {
			return c.convert(inner[0])
		}
		return jsast.NoNode
	}
	return c.convert(n)
}

func (c *converter) forIn(n *sitter.Node) jsast.NodeID {
	kind := jsast.ForInStatement
	if op := n.ChildByFieldName("operator"); op != nil && op.Type() == "of" {
		kind = jsast.ForOfStatement
	}
	node := c.newNode(kind, n)
	node.Async = hasToken(n, "await")

	left := n.ChildByFieldName("left")
	target := c.convert(left)
	if declKind := n.ChildByFieldName("kind"); declKind != nil && left != nil {
		// for (const x of xs) declares x in the loop head
		declarator := jsast.NewNode(jsast.VariableDeclarator, int(left.StartByte()), int(left.EndByte()))
		declarator.A = target
		if value := n.ChildByFieldName("value"); value != nil {
			declarator.B = c.convert(value)
			declarator.End = int(value.EndByte())
		}
		decl := jsast.NewNode(jsast.VariableDeclaration, int(declKind.StartByte()), declarator.End)
		decl.Name = c.text(declKind)
		decl.List = []jsast.NodeID{c.tree.Add(declarator)}
		target = c.tree.Add(decl)
	}
	node.A = target
	node.B = c.field(n, "right")
	node.C = c.field(n, "body")
	return c.tree.Add(node)
}

// function converts declarations, expressions, generators and methods.
func (c *converter) function(kind jsast.Kind, n *sitter.Node) jsast.NodeID {
	node := c.newNode(kind, n)
	node.A = c.field(n, "name")
	node.List = c.params(n.ChildByFieldName("parameters"))
	node.B = c.field(n, "body")
	node.Async = hasToken(n, "async")
	node.Generator = hasToken(n, "*")
	return c.tree.Add(node)
}

func (c *converter) params(n *sitter.Node) []jsast.NodeID {
	if n == nil {
		return nil
	}
	return c.convertAll(named(n))
}

func (c *converter) class(kind jsast.Kind, n *sitter.Node) jsast.NodeID {
	node := c.newNode(kind, n)
	node.A = c.field(n, "name")
	for _, child := range named(n) {
		if child.Type() == "class_heritage" {
			if inner := named(child); len(inner) > 0 {
				node.B = c.convert(inner[0])
			}
		}
	}

	if body := n.ChildByFieldName("body"); body != nil {
		members := c.newNode(jsast.ClassBody, body)
		for _, member := range named(body) {
			if id := c.classMember(member); id != jsast.NoNode {
				members.List = append(members.List, id)
			}
		}
		node.C = c.tree.Add(members)
	}
	return c.tree.Add(node)
}

func (c *converter) classMember(n *sitter.Node) jsast.NodeID {
	switch n.Type() {
	case "method_definition":
		return c.method(jsast.MethodDefinition, n)

	case "field_definition":
		node := c.newNode(jsast.PropertyDefinition, n)
		node.Static = hasToken(n, "static")
		node.A, node.Computed = c.propertyKey(n.ChildByFieldName("property"))
		node.B = c.field(n, "value")
		return c.tree.Add(node)

	case "class_static_block":
		node := c.newNode(jsast.StaticBlock, n)
		node.Static = true
		node.A = c.field(n, "body")
		return c.tree.Add(node)
	}
	return c.convert(n)
}

// method converts a method of a class or an object literal. The function
// value spans from the parameter list to the end of the body.
func (c *converter) method(kind jsast.Kind, n *sitter.Node) jsast.NodeID {
	node := c.newNode(kind, n)
	if kind == jsast.ObjectProperty {
		node.Method = true
	}

	fn := jsast.NewNode(jsast.FunctionExpression, int(n.StartByte()), int(n.EndByte()))
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child.IsNamed() {
			break
		}
		switch child.Type() {
		case "static":
			node.Static = true
		case "async":
			fn.Async = true
		case "*":
			fn.Generator = true
		case "get", "set":
			node.Name = child.Type()
		}
	}

	node.A, node.Computed = c.propertyKey(n.ChildByFieldName("name"))
	if params := n.ChildByFieldName("parameters"); params != nil {
		fn.Start = int(params.StartByte())
		fn.List = c.params(params)
	}
	fn.B = c.field(n, "body")
	node.B = c.tree.Add(fn)
	return c.tree.Add(node)
}

// propertyKey converts an object or class key; [expr] keys are computed.
func (c *converter) propertyKey(n *sitter.Node) (jsast.NodeID, bool) {
	if n != nil && n.Type() == "computed_property_name" {
		if inner := named(n); len(inner) > 0 {
			return c.convert(inner[0]), true
		}
	}
	return c.convert(n), false
}
