package parser

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/monolite/setpath/jsast"
)

// firstStatement parses src and renders its first statement.
func firstStatement(t *testing.T, src string) string {
	t.Helper()

	tree, err := Parse(src)
	assert.NoError(t, err)

	body := tree.Node(tree.Root).List
	assert.True(t, len(body) > 0)
	return jsast.Sexpr(tree, body[0])
}

func TestExpressionParsing(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected string
	}{
		{
			name:     "classical set call",
			src:      "set(state, _ => _.a.b.c)(42);",
			expected: "(ExpressionStatement (CallExpression (CallExpression set state (ArrowFunctionExpression _ (MemberExpression (MemberExpression (MemberExpression _ a) b) c))) 42))",
		},
		{
			name:     "fluent set chain",
			src:      "set(state).set(_ => _.a, 1);",
			expected: "(ExpressionStatement (CallExpression (MemberExpression (CallExpression set state) set) (ArrowFunctionExpression _ (MemberExpression _ a)) 1))",
		},
		{
			name:     "computed members",
			src:      "_['a'].b[c]",
			expected: "(ExpressionStatement (MemberExpression[computed] (MemberExpression (MemberExpression[computed] _ 'a') b) c))",
		},
		{
			name:     "optional chaining",
			src:      "a?.b?.[c]?.(d)",
			expected: "(ExpressionStatement (CallExpression[optional] (MemberExpression[computed,optional] (MemberExpression[optional] a b) c) d))",
		},
		{
			name:     "right associative assignment",
			src:      "x = y += 1",
			expected: "(ExpressionStatement (AssignmentExpression = x (AssignmentExpression += y 1)))",
		},
		{
			name:     "binary precedence",
			src:      "a + b * c - d",
			expected: "(ExpressionStatement (BinaryExpression - (BinaryExpression + a (BinaryExpression * b c)) d))",
		},
		{
			name:     "logical precedence",
			src:      "a || b && c",
			expected: "(ExpressionStatement (LogicalExpression || a (LogicalExpression && b c)))",
		},
		{
			name:     "exponent is right associative",
			src:      "2 ** 3 ** 2",
			expected: "(ExpressionStatement (BinaryExpression ** 2 (BinaryExpression ** 3 2)))",
		},
		{
			name:     "destructuring assignment",
			src:      "({a, b: [c, , d]} = obj)",
			expected: "(ExpressionStatement (AssignmentExpression = (ObjectPattern (ObjectProperty[shorthand] a) (ObjectProperty b (ArrayPattern c <hole> d))) obj))",
		},
		{
			name:     "new with member callee",
			src:      "new Foo.Bar(1)",
			expected: "(ExpressionStatement (NewExpression (MemberExpression Foo Bar) 1))",
		},
		{
			name:     "async arrow with await",
			src:      "async (x) => await x",
			expected: "(ExpressionStatement (ArrowFunctionExpression[async] x (AwaitExpression x)))",
		},
		{
			name:     "arrow with default and rest",
			src:      "(a = 1, ...rest) => rest",
			expected: "(ExpressionStatement (ArrowFunctionExpression (AssignmentPattern a 1) (RestElement rest) rest))",
		},
		{
			name:     "arrow returning object",
			src:      "_ => ({a: 1})",
			expected: "(ExpressionStatement (ArrowFunctionExpression _ (ObjectExpression (ObjectProperty a 1))))",
		},
		{
			name:     "conditional and unary",
			src:      "!a ? -b : typeof c",
			expected: "(ExpressionStatement (ConditionalExpression (UnaryExpression ! a) (UnaryExpression - b) (UnaryExpression typeof c)))",
		},
		{
			name:     "update expressions",
			src:      "i++ + --j",
			expected: "(ExpressionStatement (BinaryExpression + (UpdateExpression ++ i) (UpdateExpression[prefix] -- j)))",
		},
		{
			name:     "tagged template",
			src:      "tag`x${y}`",
			expected: "(ExpressionStatement (TaggedTemplateExpression tag (TemplateLiteral y)))",
		},
		{
			name:     "object methods and spread",
			src:      "({...rest, get x() { return 1 }, async y() {}})",
			expected: "(ExpressionStatement (ObjectExpression (SpreadElement rest) (ObjectProperty[method] get x (FunctionExpression (BlockStatement (ReturnStatement 1)))) (ObjectProperty[method] y (FunctionExpression[async] (BlockStatement)))))",
		},
		{
			name:     "sequence",
			src:      "a, b",
			expected: "(ExpressionStatement (SequenceExpression a b))",
		},
		{
			name:     "template substitutions",
			src:      "`${set(s, _ => _.a, 1)} and ${b}`",
			expected: "(ExpressionStatement (TemplateLiteral (CallExpression set s (ArrowFunctionExpression _ (MemberExpression _ a)) 1) b))",
		},
		{
			name:     "regular expression",
			src:      "x = /a[/]b/gi",
			expected: "(ExpressionStatement (AssignmentExpression = x /a[/]b/gi))",
		},
		{
			name:     "optional call",
			src:      "set?.(s, _ => _.a)",
			expected: "(ExpressionStatement (CallExpression[optional] set s (ArrowFunctionExpression _ (MemberExpression _ a))))",
		},
		{
			name:     "class expression with super",
			src:      "(class extends Base { constructor() { super(); } })",
			expected: "(ExpressionStatement (ClassExpression Base (ClassBody (MethodDefinition constructor (FunctionExpression (BlockStatement (ExpressionStatement (CallExpression super))))))))",
		},
		{
			name:     "generator with yield",
			src:      "(function* g() { yield* other(); })",
			expected: "(ExpressionStatement (FunctionExpression[generator] g (BlockStatement (ExpressionStatement (YieldExpression yield* (CallExpression other))))))",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, firstStatement(t, test.src))
		})
	}
}

func TestStatementParsing(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected string
	}{
		{
			name:     "const with destructuring",
			src:      "const {a, b: [c]} = obj;",
			expected: "(VariableDeclaration const (VariableDeclarator (ObjectPattern (ObjectProperty[shorthand] a) (ObjectProperty b (ArrayPattern c))) obj))",
		},
		{
			name:     "function declaration",
			src:      "function f(a, {b}) { return a }",
			expected: "(FunctionDeclaration f a (ObjectPattern (ObjectProperty[shorthand] b)) (BlockStatement (ReturnStatement a)))",
		},
		{
			name:     "if else",
			src:      "if (a) b(); else { c() }",
			expected: "(IfStatement a (ExpressionStatement (CallExpression b)) (BlockStatement (ExpressionStatement (CallExpression c))))",
		},
		{
			name:     "for of",
			src:      "for (const x of xs) f(x)",
			expected: "(ForOfStatement (VariableDeclaration const (VariableDeclarator x)) xs (ExpressionStatement (CallExpression f x)))",
		},
		{
			name:     "for in",
			src:      "for (k in o) {}",
			expected: "(ForInStatement k o (BlockStatement))",
		},
		{
			name:     "classic for",
			src:      "for (let i = 0; i < n; i++) {}",
			expected: "(ForStatement (VariableDeclaration let (VariableDeclarator i 0)) (BinaryExpression < i n) (UpdateExpression ++ i) (BlockStatement))",
		},
		{
			name:     "try catch finally",
			src:      "try { a() } catch (e) { b(e) } finally { c() }",
			expected: "(TryStatement (BlockStatement (ExpressionStatement (CallExpression a))) (CatchClause e (BlockStatement (ExpressionStatement (CallExpression b e)))) (BlockStatement (ExpressionStatement (CallExpression c))))",
		},
		{
			name:     "return without argument before newline",
			src:      "function f() { return\n1 }",
			expected: "(FunctionDeclaration f (BlockStatement (ReturnStatement) (ExpressionStatement 1)))",
		},
		{
			name:     "export default arrow",
			src:      "export default (s) => set(s, _ => _.a)(1);",
			expected: "(ExportDefaultDeclaration (ArrowFunctionExpression s (CallExpression (CallExpression set s (ArrowFunctionExpression _ (MemberExpression _ a))) 1)))",
		},
		{
			name:     "export list",
			src:      "export { a, b as c } from './x';",
			expected: "(ExportNamedDeclaration (ExportSpecifier a) (ExportSpecifier b c) './x')",
		},
		{
			name:     "export all",
			src:      "export * as ns from './x';",
			expected: "(ExportAllDeclaration ns './x')",
		},
		{
			name:     "switch",
			src:      "switch (action.type) { case 'a': set(s, _ => _.a, 1); break; default: return s; }",
			expected: "(SwitchStatement (MemberExpression action type) (SwitchCase 'a' (ExpressionStatement (CallExpression set s (ArrowFunctionExpression _ (MemberExpression _ a)) 1)) (BreakStatement)) (SwitchCase (ReturnStatement s)))",
		},
		{
			name:     "class declaration",
			src:      "class Store extends Base { static #count = 0; get size() { return 1 } }",
			expected: "(ClassDeclaration Store Base (ClassBody (PropertyDefinition[static] #count 0) (MethodDefinition get size (FunctionExpression (BlockStatement (ReturnStatement 1))))))",
		},
		{
			name:     "generator declaration",
			src:      "async function* stream() {}",
			expected: "(FunctionDeclaration[async,generator] stream (BlockStatement))",
		},
		{
			name:     "labels and do while",
			src:      "outer: do { continue outer } while (x)",
			expected: "(LabeledStatement outer (DoWhileStatement (BlockStatement (ContinueStatement outer)) x))",
		},
		{
			name:     "for await",
			src:      "for await (const x of xs) {}",
			expected: "(ForOfStatement[async] (VariableDeclaration const (VariableDeclarator x)) xs (BlockStatement))",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, firstStatement(t, test.src))
		})
	}
}

func TestImportDeclaration(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected string
	}{
		{
			name:     "named imports",
			src:      "import { set } from 'monolite';",
			expected: "(ImportDeclaration (ImportSpecifier set) 'monolite')",
		},
		{
			name:     "default, aliases and string names",
			src:      "import def, { set, other as o, 'str' as s, } from \"monolite\"",
			expected: "(ImportDeclaration (ImportDefaultSpecifier def) (ImportSpecifier set) (ImportSpecifier other o) (ImportSpecifier 'str' s) \"monolite\")",
		},
		{
			name:     "namespace import",
			src:      "import * as m from 'monolite';",
			expected: "(ImportDeclaration (ImportNamespaceSpecifier m) 'monolite')",
		},
		{
			name:     "side effect import",
			src:      "import './setup';",
			expected: "(ImportDeclaration './setup')",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, firstStatement(t, test.src))
		})
	}
}

func TestImportDeclarationSpans(t *testing.T) {
	tree, err := Parse("import a, * as ns from 'x';\nimport { b as c } from 'y'")
	assert.NoError(t, err)

	body := tree.Node(tree.Root).List
	assert.Equal(t, 2, len(body))
	assert.Equal(t, "import a, * as ns from 'x';", tree.Text(body[0]))
	assert.Equal(t, "import { b as c } from 'y'", tree.Text(body[1]))

	specs := tree.Node(body[0]).List
	assert.Equal(t, "a", tree.Text(specs[0]))
	assert.Equal(t, "* as ns", tree.Text(specs[1]))
	assert.Equal(t, "b as c", tree.Text(tree.Node(body[1]).List[0]))
}

func TestStatementSpans(t *testing.T) {
	src := "const a = 1;\nfoo(a)\n  // trailing\nbar()"
	tree, err := Parse(src)
	assert.NoError(t, err)

	body := tree.Node(tree.Root).List
	assert.Equal(t, 3, len(body))
	assert.Equal(t, "const a = 1;", tree.Text(body[0]))
	assert.Equal(t, "foo(a)", tree.Text(body[1]))
	assert.Equal(t, "bar()", tree.Text(body[2]))
	assert.Equal(t, 0, tree.Node(tree.Root).Start)
	assert.Equal(t, len(src), tree.Node(tree.Root).End)
}

func TestParentLinks(t *testing.T) {
	tree, err := Parse("set(state, _ => _.a)")
	assert.NoError(t, err)

	stmt := tree.Node(tree.Root).List[0]
	call := tree.Node(stmt).A
	assert.Equal(t, jsast.CallExpression, tree.Kind(call))
	assert.Equal(t, stmt, tree.Parent(call))
	for _, arg := range tree.Arguments(call) {
		assert.Equal(t, call, tree.Parent(arg))
	}
	assert.Equal(t, jsast.NoNode, tree.Parent(tree.Root))
}

func TestAutomaticSemicolonInsertion(t *testing.T) {
	tree, err := Parse("a\n++b\nc")
	assert.NoError(t, err)
	body := tree.Node(tree.Root).List
	assert.Equal(t, 3, len(body))
	assert.Equal(t, "(ExpressionStatement (UpdateExpression[prefix] ++ b))", jsast.Sexpr(tree, body[1]))
}

func TestNumericLiteralValues(t *testing.T) {
	tests := []struct {
		src      string
		expected string
	}{
		{src: "42", expected: "42"},
		{src: "0x1F", expected: "31"},
		{src: "0b101", expected: "5"},
		{src: "0o17", expected: "15"},
		{src: "1_000n", expected: "1000"},
		{src: "1e3", expected: "1000"},
		{src: ".5", expected: "0.5"},
		{src: "12345678901234567890n", expected: "12345678901234567890"},
	}

	for _, test := range tests {
		t.Run(test.src, func(t *testing.T) {
			tree, err := Parse(test.src)
			assert.NoError(t, err)
			stmt := tree.Node(tree.Root).List[0]
			literal := tree.Node(tree.Node(stmt).A)
			assert.Equal(t, jsast.NumericLiteral, literal.Kind)
			assert.Equal(t, test.src, literal.Raw)
			assert.Equal(t, test.expected, literal.Value)
		})
	}
}

func TestStringLiteralValues(t *testing.T) {
	tree, err := Parse(`'a\'b\nA\x42'`)
	assert.NoError(t, err)
	stmt := tree.Node(tree.Root).List[0]
	literal := tree.Node(tree.Node(stmt).A)
	assert.Equal(t, "a'b\nAB", literal.Value)
}

func TestHashbang(t *testing.T) {
	tree, err := Parse("#!/usr/bin/env node\nfoo()")
	assert.NoError(t, err)
	body := tree.Node(tree.Root).List
	assert.Equal(t, 1, len(body))
	assert.Equal(t, "foo()", tree.Text(body[0]))
}

// isSyntaxError reports whether err is one of the errors raised for input
// the grammar rejects.
func isSyntaxError(err error) bool {
	return errors.Is(err, ErrUnexpectedToken) || errors.Is(err, ErrUnexpectedEOF) || errors.Is(err, ErrMissingToken)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "unterminated call", src: "set(a"},
		{name: "two expressions", src: "a b"},
		{name: "literal assignment", src: "1 = 2"},
		{name: "malformed import", src: "import { a b } from 'x'"},
		{name: "unterminated string", src: "'abc"},
		{name: "missing property name", src: "a.)"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Parse(test.src)
			assert.Error(t, err)
			assert.True(t, isSyntaxError(err), "got %v", err)

			perr, ok := AsParseError(err)
			assert.True(t, ok)
			assert.Equal(t, ERROR, perr.Severity)
		})
	}
}

func TestHashbangNotAllowed(t *testing.T) {
	_, err := Parse("#!/usr/bin/env node\nfoo()", Options{})
	assert.True(t, errors.Is(err, ErrUnexpectedToken), "got %v", err)
}

func TestParseErrorPosition(t *testing.T) {
	_, err := Parse("a = 1;\nlet = = 2;", Options{Filename: "state.js"})
	assert.Error(t, err)

	perr, ok := AsParseError(err)
	assert.True(t, ok)
	assert.Equal(t, 2, perr.Position.Line)
	assert.Equal(t, ERROR, perr.Severity)
	assert.Contains(t, perr.Error(), "state.js: [ERROR]")
}

func TestOpaqueSyntaxKeepsNestedExpressions(t *testing.T) {
	src := "const view = <Item onClick={() => set(s, _ => _.open, true)} />;"
	tree, err := Parse(src)
	assert.NoError(t, err)

	var opaque, calls int
	tree.Walk(tree.Root, func(id jsast.NodeID) bool {
		switch tree.Kind(id) {
		case jsast.Opaque:
			opaque++
		case jsast.CallExpression:
			calls++
		}
		return true
	})
	assert.True(t, opaque > 0)
	assert.Equal(t, 1, calls)
}
