package formatter

import (
	"strings"

	"github.com/monolite/setpath/jsast"
)

// Options controls generated output.
type Options struct {
	// Indent is the unit of indentation for generated statements.
	Indent string
}

// DefaultOptions indents generated code with two spaces.
var DefaultOptions = Options{Indent: "  "}

// Print renders the tree keeping the original source wherever possible.
// Subtrees without synthetic nodes are copied byte for byte, including
// comments and whitespace. Modified subtrees are spliced: the source text
// between their children is kept and only synthetic nodes are generated.
func Print(tree *jsast.Tree, opts Options) string {
	p := newJSPrinter(tree, opts)
	p.splice(tree.Root)
	return p.sb.String()
}

// Generate reprints the whole tree from its nodes. Comments and original
// layout are lost; parentheses are added where precedence needs them and
// wherever the source had them.
func Generate(tree *jsast.Tree, opts Options) string {
	p := newJSPrinter(tree, opts)
	p.reprint = true
	p.program(tree.Root)
	return p.sb.String()
}

// binding power of expressions, loosest first; binary operators sit at
// precBinary plus jsast.BinaryPrecedence
const (
	precLowest = iota
	precSequence
	precAssign
	precConditional
	precBinary
	precUnary   = precBinary + jsast.MaxBinaryPrecedence + 1
	precUpdate  = precUnary + 1
	precLHS     = precUpdate + 1
	precPrimary = precLHS + 1
)

// JSPrinter writes JavaScript for a jsast.Tree.
type JSPrinter struct {
	tree    *jsast.Tree
	options Options
	reprint bool
	depth   int
	sb      strings.Builder
}

func newJSPrinter(tree *jsast.Tree, opts Options) *JSPrinter {
	if opts.Indent == "" {
		opts.Indent = DefaultOptions.Indent
	}
	return &JSPrinter{tree: tree, options: opts}
}

func (p *JSPrinter) write(s ...string) {
	for _, v := range s {
		p.sb.WriteString(v)
	}
}

func (p *JSPrinter) newline() {
	p.sb.WriteByte('\n')
	p.sb.WriteString(strings.Repeat(p.options.Indent, p.depth))
}

// splice copies clean subtrees from the source and descends into dirty ones.
func (p *JSPrinter) splice(id jsast.NodeID) {
	n := p.tree.Node(id)
	switch {
	case n.Synthetic || n.Start < 0:
		p.node(id)
	case !p.tree.Dirty(id):
		p.write(p.tree.Text(id))
	default:
		src := p.tree.Source
		cursor := n.Start
		for _, c := range p.tree.Children(id) {
			cn := p.tree.Node(c)
			if cn.Start < cursor || cn.End > n.End {
				continue
			}
			p.write(src[cursor:cn.Start])
			p.splice(c)
			cursor = cn.End
		}
		p.write(src[cursor:n.End])
	}
}

// verbatim reprints the children of a node the printer does not model and
// copies the source text around them.
func (p *JSPrinter) verbatim(id jsast.NodeID) {
	n := p.tree.Node(id)
	src := p.tree.Source
	cursor := n.Start
	for _, c := range p.tree.Children(id) {
		cn := p.tree.Node(c)
		if cn.Start < cursor || cn.End > n.End {
			continue
		}
		p.write(src[cursor:cn.Start])
		p.node(c)
		cursor = cn.End
	}
	p.write(src[cursor:n.End])
}

// expr writes an expression in a context that needs at least minPrec.
func (p *JSPrinter) expr(id jsast.NodeID, minPrec int) {
	n := p.tree.Node(id)
	parens := (n.Parenthesized && !n.Synthetic) || precedence(n) < minPrec
	if parens {
		p.write("(")
	}
	switch {
	case p.reprint || n.Synthetic:
		p.node(id)
	default:
		p.splice(id)
	}
	if parens {
		p.write(")")
	}
}

func precedence(n jsast.Node) int {
	switch n.Kind {
	case jsast.SequenceExpression:
		return precSequence
	case jsast.AssignmentExpression, jsast.ArrowFunctionExpression, jsast.SpreadElement, jsast.YieldExpression:
		return precAssign
	case jsast.ConditionalExpression:
		return precConditional
	case jsast.BinaryExpression, jsast.LogicalExpression:
		return precBinary + jsast.BinaryPrecedence(n.Name)
	case jsast.UnaryExpression, jsast.AwaitExpression:
		return precUnary
	case jsast.UpdateExpression:
		return precUpdate
	case jsast.CallExpression, jsast.NewExpression, jsast.MemberExpression, jsast.TaggedTemplateExpression:
		return precLHS
	default:
		return precPrimary
	}
}

func (p *JSPrinter) list(ids []jsast.NodeID, sep string, minPrec int) {
	for i, id := range ids {
		if i > 0 {
			p.write(sep)
		}
		p.expr(id, minPrec)
	}
}

// node generates n from its fields; children go through expr or statement.
func (p *JSPrinter) node(id jsast.NodeID) {
	n := p.tree.Node(id)
	switch n.Kind {
	case jsast.Identifier:
		p.write(n.Name)
	case jsast.StringLiteral, jsast.NumericLiteral, jsast.BooleanLiteral, jsast.NullLiteral, jsast.RegExpLiteral:
		p.write(n.Raw)
	case jsast.TemplateLiteral:
		if len(n.List) == 0 {
			p.write(n.Raw)
			return
		}
		p.verbatim(id)
	case jsast.Opaque:
		p.verbatim(id)
	case jsast.ThisExpression:
		p.write("this")
	case jsast.Super:
		p.write("super")
	case jsast.MetaProperty:
		p.write(n.Name)

	case jsast.ArrayExpression, jsast.ArrayPattern:
		p.write("[")
		for i, el := range n.List {
			if i > 0 {
				p.write(", ")
			}
			if el != jsast.NoNode {
				p.expr(el, precAssign)
			}
		}
		if len(n.List) > 0 && n.List[len(n.List)-1] == jsast.NoNode {
			p.write(",")
		}
		p.write("]")

	case jsast.ObjectExpression, jsast.ObjectPattern:
		if len(n.List) == 0 {
			p.write("{}")
			return
		}
		p.write("{ ")
		p.list(n.List, ", ", precAssign)
		p.write(" }")

	case jsast.ObjectProperty:
		p.property(n)

	case jsast.SpreadElement, jsast.RestElement:
		p.write("...")
		p.expr(n.A, precAssign)

	case jsast.AssignmentPattern:
		p.expr(n.A, precLHS)
		p.write(" = ")
		p.expr(n.B, precAssign)

	case jsast.ArrowFunctionExpression:
		p.arrow(n)

	case jsast.FunctionExpression, jsast.FunctionDeclaration:
		p.function(n)

	case jsast.ClassExpression, jsast.ClassDeclaration:
		p.class(n)

	case jsast.CallExpression:
		p.callee(n.A)
		if n.Optional {
			p.write("?.")
		}
		p.write("(")
		p.list(n.List, ", ", precAssign)
		p.write(")")

	case jsast.NewExpression:
		p.write("new ")
		if p.tree.Kind(n.A) == jsast.CallExpression {
			p.write("(")
			p.expr(n.A, precLowest)
			p.write(")")
		} else {
			p.expr(n.A, precLHS)
		}
		p.write("(")
		p.list(n.List, ", ", precAssign)
		p.write(")")

	case jsast.MemberExpression:
		p.member(n)

	case jsast.TaggedTemplateExpression:
		p.callee(n.A)
		p.expr(n.B, precPrimary)

	case jsast.UnaryExpression:
		p.write(n.Name)
		arg := p.tree.Node(n.A)
		switch {
		case len(n.Name) > 1:
			p.write(" ")
		case (arg.Kind == jsast.UnaryExpression || arg.Kind == jsast.UpdateExpression) &&
			arg.Prefix && !arg.Parenthesized && strings.HasPrefix(arg.Name, n.Name):
			p.write(" ")
		}
		p.expr(n.A, precUnary)

	case jsast.AwaitExpression:
		p.write("await ")
		p.expr(n.A, precUnary)

	case jsast.YieldExpression:
		p.write(n.Name)
		if n.A != jsast.NoNode {
			p.write(" ")
			p.expr(n.A, precAssign)
		}

	case jsast.UpdateExpression:
		if n.Prefix {
			p.write(n.Name)
			p.expr(n.A, precUnary)
		} else {
			p.expr(n.A, precLHS)
			p.write(n.Name)
		}

	case jsast.BinaryExpression, jsast.LogicalExpression:
		p.binary(n)

	case jsast.ConditionalExpression:
		p.expr(n.A, precConditional+1)
		p.write(" ? ")
		p.expr(n.B, precAssign)
		p.write(" : ")
		p.expr(n.C, precAssign)

	case jsast.AssignmentExpression:
		p.expr(n.A, precLHS)
		p.write(" ", n.Name, " ")
		p.expr(n.B, precAssign)

	case jsast.SequenceExpression:
		p.list(n.List, ", ", precAssign)

	case jsast.Program:
		p.program(id)

	case jsast.Invalid:

	default:
		p.statement(id)
	}
}

func (p *JSPrinter) callee(id jsast.NodeID) {
	if p.tree.Kind(id) == jsast.NewExpression {
		// new a()() must not read as new (a()())
		p.expr(id, precPrimary)
		return
	}
	p.expr(id, precLHS)
}

func (p *JSPrinter) member(n jsast.Node) {
	object := p.tree.Node(n.A)
	if !n.Computed && object.Kind == jsast.NumericLiteral && !object.Parenthesized &&
		!strings.ContainsAny(object.Raw, ".eExXoObBn") {
		p.write("(")
		p.expr(n.A, precLowest)
		p.write(")")
	} else {
		p.callee(n.A)
	}

	switch {
	case n.Computed && n.Optional:
		p.write("?.[")
	case n.Computed:
		p.write("[")
	case n.Optional:
		p.write("?.")
	default:
		p.write(".")
	}
	if n.Computed {
		p.expr(n.B, precLowest)
		p.write("]")
		return
	}
	p.write(p.tree.Node(n.B).Name)
}

func (p *JSPrinter) binary(n jsast.Node) {
	prec := precedence(n)
	left, right := prec, prec+1
	if n.Name == "**" {
		left, right = prec+1, prec
	}

	p.operand(n.A, n.Name, left)
	p.write(" ", n.Name, " ")
	p.operand(n.B, n.Name, right)
}

// operand parenthesizes ?? mixed with && or ||, which has no precedence of its own.
func (p *JSPrinter) operand(id jsast.NodeID, op string, minPrec int) {
	child := p.tree.Node(id)
	mixed := child.Kind == jsast.LogicalExpression && !child.Parenthesized &&
		(op == "??") != (child.Name == "??") && (op == "??" || op == "&&" || op == "||")
	if mixed {
		p.write("(")
		p.expr(id, precLowest)
		p.write(")")
		return
	}
	p.expr(id, minPrec)
}

func (p *JSPrinter) property(n jsast.Node) {
	value := p.tree.Node(n.B)
	if n.Method && value.Kind == jsast.FunctionExpression {
		if value.Async {
			p.write("async ")
		}
		if n.Name != "" {
			p.write(n.Name, " ")
		}
		if value.Generator {
			p.write("*")
		}
		p.key(n)
		p.params(value.List)
		p.write(" ")
		p.statement(value.B)
		return
	}

	if n.Shorthand {
		p.expr(n.B, precAssign)
		return
	}
	p.key(n)
	p.write(": ")
	p.expr(n.B, precAssign)
}

func (p *JSPrinter) key(n jsast.Node) {
	if n.Computed {
		p.write("[")
		p.expr(n.A, precAssign)
		p.write("]")
		return
	}
	p.expr(n.A, precPrimary)
}

func (p *JSPrinter) params(params []jsast.NodeID) {
	p.write("(")
	p.list(params, ", ", precAssign)
	p.write(")")
}

func (p *JSPrinter) arrow(n jsast.Node) {
	if n.Async {
		p.write("async ")
	}
	if len(n.List) == 1 && p.tree.Kind(n.List[0]) == jsast.Identifier {
		p.expr(n.List[0], precAssign)
	} else {
		p.params(n.List)
	}
	p.write(" => ")

	if !n.Expression {
		p.statement(n.B)
		return
	}
	body := p.tree.Node(n.B)
	if body.Kind == jsast.ObjectExpression && (body.Synthetic || !body.Parenthesized) {
		p.write("(")
		p.expr(n.B, precLowest)
		p.write(")")
		return
	}
	p.expr(n.B, precAssign)
}

func (p *JSPrinter) function(n jsast.Node) {
	if n.Async {
		p.write("async ")
	}
	p.write("function")
	if n.Generator {
		p.write("*")
	}
	p.write(" ")
	if n.A != jsast.NoNode {
		p.expr(n.A, precPrimary)
	}
	p.params(n.List)
	p.write(" ")
	p.statement(n.B)
}

func (p *JSPrinter) class(n jsast.Node) {
	p.write("class ")
	if n.A != jsast.NoNode {
		p.expr(n.A, precPrimary)
		p.write(" ")
	}
	if n.B != jsast.NoNode {
		p.write("extends ")
		p.expr(n.B, precLHS)
		p.write(" ")
	}
	p.statement(n.C)
}

// classMember writes a method, field or static block.
func (p *JSPrinter) classMember(n jsast.Node) {
	if n.Static && n.Kind != jsast.StaticBlock {
		p.write("static ")
	}
	switch n.Kind {
	case jsast.StaticBlock:
		p.write("static ")
		p.statement(n.A)
	case jsast.PropertyDefinition:
		p.key(n)
		if n.B != jsast.NoNode {
			p.write(" = ")
			p.expr(n.B, precAssign)
		}
		p.write(";")
	default:
		value := p.tree.Node(n.B)
		if value.Async {
			p.write("async ")
		}
		if n.Name != "" {
			p.write(n.Name, " ")
		}
		if value.Generator {
			p.write("*")
		}
		p.key(n)
		p.params(value.List)
		p.write(" ")
		p.statement(value.B)
	}
}

func (p *JSPrinter) program(id jsast.NodeID) {
	n := p.tree.Node(id)
	for _, stmt := range n.List {
		p.statement(stmt)
		p.write("\n")
	}
}

func (p *JSPrinter) block(list []jsast.NodeID) {
	if len(list) == 0 {
		p.write("{}")
		return
	}
	p.write("{")
	p.depth++
	for _, stmt := range list {
		p.newline()
		p.statement(stmt)
	}
	p.depth--
	p.newline()
	p.write("}")
}

// statement writes a statement; outside reprint mode clean statements are copied.
func (p *JSPrinter) statement(id jsast.NodeID) {
	n := p.tree.Node(id)
	if !p.reprint && !n.Synthetic && n.Start >= 0 {
		p.splice(id)
		return
	}

	switch n.Kind {
	case jsast.BlockStatement:
		p.block(n.List)

	case jsast.EmptyStatement:
		p.write(";")

	case jsast.ExpressionStatement:
		expr := p.tree.Node(n.A)
		if !expr.Parenthesized && (expr.Kind == jsast.ObjectExpression || expr.Kind == jsast.FunctionExpression ||
			expr.Kind == jsast.ClassExpression) {
			p.write("(")
			p.expr(n.A, precLowest)
			p.write(")")
		} else {
			p.expr(n.A, precLowest)
		}
		p.write(";")

	case jsast.VariableDeclaration:
		p.declaration(n)
		p.write(";")

	case jsast.VariableDeclarator:
		p.expr(n.A, precLHS)
		if n.B != jsast.NoNode {
			p.write(" = ")
			p.expr(n.B, precAssign)
		}

	case jsast.FunctionDeclaration:
		p.function(n)

	case jsast.ClassDeclaration:
		p.class(n)

	case jsast.ClassBody:
		p.block(n.List)

	case jsast.MethodDefinition, jsast.PropertyDefinition, jsast.StaticBlock:
		p.classMember(n)

	case jsast.ReturnStatement, jsast.ThrowStatement:
		if n.Kind == jsast.ReturnStatement {
			p.write("return")
		} else {
			p.write("throw")
		}
		if n.A != jsast.NoNode {
			p.write(" ")
			p.expr(n.A, precLowest)
		}
		p.write(";")

	case jsast.IfStatement:
		p.write("if (")
		p.expr(n.A, precLowest)
		p.write(") ")
		p.statement(n.B)
		if n.C != jsast.NoNode {
			p.write(" else ")
			p.statement(n.C)
		}

	case jsast.WhileStatement:
		p.write("while (")
		p.expr(n.A, precLowest)
		p.write(") ")
		p.statement(n.B)

	case jsast.DoWhileStatement:
		p.write("do ")
		p.statement(n.A)
		p.write(" while (")
		p.expr(n.B, precLowest)
		p.write(");")

	case jsast.WithStatement:
		p.write("with (")
		p.expr(n.A, precLowest)
		p.write(") ")
		p.statement(n.B)

	case jsast.LabeledStatement:
		p.expr(n.A, precPrimary)
		p.write(": ")
		p.statement(n.B)

	case jsast.DebuggerStatement:
		p.write("debugger;")

	case jsast.SwitchStatement:
		p.write("switch (")
		p.expr(n.A, precLowest)
		p.write(") {")
		p.depth++
		for _, c := range n.List {
			p.newline()
			p.statement(c)
		}
		p.depth--
		p.newline()
		p.write("}")

	case jsast.SwitchCase:
		if n.A == jsast.NoNode {
			p.write("default:")
		} else {
			p.write("case ")
			p.expr(n.A, precLowest)
			p.write(":")
		}
		p.depth++
		for _, c := range n.List {
			p.newline()
			p.statement(c)
		}
		p.depth--

	case jsast.ForStatement:
		p.write("for (")
		p.forHead(n.A)
		p.write(";")
		if n.B != jsast.NoNode {
			p.write(" ")
			p.expr(n.B, precLowest)
		}
		p.write(";")
		if n.C != jsast.NoNode {
			p.write(" ")
			p.expr(n.C, precLowest)
		}
		p.write(") ")
		p.statement(n.D)

	case jsast.ForInStatement, jsast.ForOfStatement:
		p.write("for ")
		if n.Async {
			p.write("await ")
		}
		p.write("(")
		p.forHead(n.A)
		if n.Kind == jsast.ForInStatement {
			p.write(" in ")
		} else {
			p.write(" of ")
		}
		p.expr(n.B, precAssign)
		p.write(") ")
		p.statement(n.C)

	case jsast.BreakStatement, jsast.ContinueStatement:
		if n.Kind == jsast.BreakStatement {
			p.write("break")
		} else {
			p.write("continue")
		}
		if n.A != jsast.NoNode {
			p.write(" ")
			p.expr(n.A, precPrimary)
		}
		p.write(";")

	case jsast.TryStatement:
		p.write("try ")
		p.statement(n.A)
		if n.B != jsast.NoNode {
			p.write(" ")
			p.statement(n.B)
		}
		if n.C != jsast.NoNode {
			p.write(" finally ")
			p.statement(n.C)
		}

	case jsast.CatchClause:
		p.write("catch ")
		if n.A != jsast.NoNode {
			p.write("(")
			p.expr(n.A, precLowest)
			p.write(") ")
		}
		p.statement(n.B)

	case jsast.ImportDeclaration:
		p.importDeclaration(n)

	case jsast.ExportNamedDeclaration:
		p.write("export ")
		if n.A != jsast.NoNode {
			p.statement(n.A)
			return
		}
		p.specifiers(n.List)
		if n.B != jsast.NoNode {
			p.write(" from ")
			p.expr(n.B, precPrimary)
		}
		p.write(";")

	case jsast.ExportDefaultDeclaration:
		p.write("export default ")
		if k := p.tree.Kind(n.A); k == jsast.FunctionDeclaration || k == jsast.ClassDeclaration {
			p.statement(n.A)
			return
		}
		p.expr(n.A, precAssign)
		p.write(";")

	case jsast.ExportAllDeclaration:
		p.write("export *")
		if n.A != jsast.NoNode {
			p.write(" as ")
			p.expr(n.A, precPrimary)
		}
		p.write(" from ")
		p.expr(n.B, precPrimary)
		p.write(";")

	case jsast.ImportSpecifier:
		p.expr(n.B, precPrimary)
		if n.A != n.B {
			p.write(" as ")
			p.expr(n.A, precPrimary)
		}
	case jsast.ExportSpecifier:
		p.expr(n.A, precPrimary)
		if n.A != n.B {
			p.write(" as ")
			p.expr(n.B, precPrimary)
		}
	case jsast.ImportDefaultSpecifier:
		p.expr(n.A, precPrimary)
	case jsast.ImportNamespaceSpecifier:
		p.write("* as ")
		p.expr(n.A, precPrimary)

	default:
		p.expr(id, precLowest)
	}
}

func (p *JSPrinter) declaration(n jsast.Node) {
	p.write(n.Name, " ")
	for i, d := range n.List {
		if i > 0 {
			p.write(", ")
		}
		p.statement(d)
	}
}

func (p *JSPrinter) forHead(id jsast.NodeID) {
	switch n := p.tree.Node(id); {
	case id == jsast.NoNode:
	case n.Kind == jsast.VariableDeclaration && (p.reprint || n.Synthetic):
		p.declaration(n)
	case n.Kind == jsast.VariableDeclaration:
		p.splice(id)
	default:
		p.expr(id, precLowest)
	}
}

func (p *JSPrinter) importDeclaration(n jsast.Node) {
	p.write("import ")
	var named []jsast.NodeID
	first := true
	for _, spec := range n.List {
		if p.tree.Kind(spec) == jsast.ImportSpecifier {
			named = append(named, spec)
			continue
		}
		if !first {
			p.write(", ")
		}
		p.statement(spec)
		first = false
	}
	if len(named) > 0 {
		if !first {
			p.write(", ")
		}
		p.specifiers(named)
		first = false
	}
	if !first {
		p.write(" from ")
	}
	p.expr(n.A, precPrimary)
	p.write(";")
}

func (p *JSPrinter) specifiers(specs []jsast.NodeID) {
	if len(specs) == 0 {
		p.write("{}")
		return
	}
	p.write("{ ")
	for i, spec := range specs {
		if i > 0 {
			p.write(", ")
		}
		p.statement(spec)
	}
	p.write(" }")
}
