package jsast_test

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/monolite/setpath/jsast"
	"github.com/monolite/setpath/parser"
)

// firstCall returns the first call expression of src in source order.
func firstCall(t *testing.T, tree *jsast.Tree) jsast.NodeID {
	t.Helper()

	found := jsast.NoNode
	tree.Walk(tree.Root, func(id jsast.NodeID) bool {
		if found == jsast.NoNode && tree.Kind(id) == jsast.CallExpression {
			found = id
		}
		return found == jsast.NoNode
	})
	assert.NotEqual(t, jsast.NoNode, found)
	return found
}

func TestReplaceArgument(t *testing.T) {
	tree, err := parser.Parse("set(state, _ => _.a, 1)")
	assert.NoError(t, err)

	call := firstCall(t, tree)
	arrow := tree.Arguments(call)[1]
	kit := jsast.NewToolkit(tree, '\'')
	array := kit.ArrayExpression([]jsast.NodeID{kit.StringLiteral("a")})

	version := tree.Version()
	assert.False(t, tree.Dirty(call))
	assert.NoError(t, tree.ReplaceArgument(call, 1, array))

	assert.NotEqual(t, version, tree.Version())
	assert.Equal(t, array, tree.Arguments(call)[1])
	assert.Equal(t, call, tree.Parent(array))
	assert.Equal(t, jsast.NoNode, tree.Parent(arrow))
	assert.True(t, tree.Dirty(call))
	assert.True(t, tree.Dirty(tree.Root))
	assert.False(t, tree.Dirty(tree.Arguments(call)[0]))

	// the replacement takes over the span of the arrow
	assert.Equal(t, tree.Node(arrow).Start, tree.Node(array).Start)
	assert.Equal(t, tree.Node(arrow).End, tree.Node(array).End)
	assert.Equal(t, "", tree.Text(array))
	assert.Equal(t, "(CallExpression set state (ArrayExpression[synthetic] 'a') 1)", jsast.Sexpr(tree, call))
}

func TestReplaceArgumentErrors(t *testing.T) {
	tree, err := parser.Parse("f(a); x.y")
	assert.NoError(t, err)

	call := firstCall(t, tree)
	id := jsast.NewToolkit(tree, '\'').Identifier("b")

	err = tree.ReplaceArgument(call, 1, id)
	assert.True(t, errors.Is(err, jsast.ErrArgumentOutOfRange))

	err = tree.ReplaceArgument(call, -1, id)
	assert.True(t, errors.Is(err, jsast.ErrArgumentOutOfRange))

	member := tree.Node(tree.Node(tree.Root).List[1]).A
	err = tree.ReplaceArgument(member, 0, id)
	assert.True(t, errors.Is(err, jsast.ErrNotACall))

	err = tree.ReplaceArgument(jsast.NodeID(10_000), 0, id)
	assert.True(t, errors.Is(err, jsast.ErrNodeOutOfRange))
}

func TestReplaceChild(t *testing.T) {
	tree, err := parser.Parse("a.b")
	assert.NoError(t, err)

	member := tree.Node(tree.Node(tree.Root).List[0]).A
	object := tree.Node(member).A
	c := jsast.NewToolkit(tree, '\'').Identifier("c")

	assert.NoError(t, tree.ReplaceChild(member, object, c))
	assert.Equal(t, "(MemberExpression c b)", jsast.Sexpr(tree, member))
	assert.Equal(t, member, tree.Parent(c))

	err = tree.ReplaceChild(member, object, c)
	assert.True(t, errors.Is(err, jsast.ErrNotAChild))
}

func TestPosition(t *testing.T) {
	tree := jsast.NewTree("ab\nçd\n\nx")

	tests := []struct {
		offset int
		line   int
		column int
	}{
		{offset: 0, line: 1, column: 1},
		{offset: 2, line: 1, column: 3},
		{offset: 3, line: 2, column: 1},
		{offset: 5, line: 2, column: 2}, // ç is two bytes
		{offset: 7, line: 3, column: 1},
		{offset: 8, line: 4, column: 1},
		{offset: 100, line: 4, column: 2},
	}
	for _, tt := range tests {
		pos := tree.Position(tt.offset)
		assert.Equal(t, tt.line, pos.Line, "offset %d", tt.offset)
		assert.Equal(t, tt.column, pos.Column, "offset %d", tt.offset)
	}
}

func TestChildrenOfSpecifiers(t *testing.T) {
	tree, err := parser.Parse("import { a, b as c } from 'm'; export { d, e as f };")
	assert.NoError(t, err)

	body := tree.Node(tree.Root).List
	imports := tree.Node(body[0]).List
	exports := tree.Node(body[1]).List

	assert.Equal(t, 1, len(tree.Children(imports[0])))
	assert.Equal(t, 2, len(tree.Children(imports[1])))
	assert.Equal(t, "(ImportSpecifier b c)", jsast.Sexpr(tree, imports[1]))
	assert.Equal(t, 1, len(tree.Children(exports[0])))
	assert.Equal(t, "(ExportSpecifier e f)", jsast.Sexpr(tree, exports[1]))
}

func TestAncestors(t *testing.T) {
	tree, err := parser.Parse("f(g(x))")
	assert.NoError(t, err)

	var x jsast.NodeID
	tree.Walk(tree.Root, func(id jsast.NodeID) bool {
		if n := tree.Node(id); n.Kind == jsast.Identifier && n.Name == "x" {
			x = id
		}
		return true
	})

	kinds := []jsast.Kind{}
	for _, id := range tree.Ancestors(x) {
		kinds = append(kinds, tree.Kind(id))
	}
	assert.Equal(t, []jsast.Kind{jsast.CallExpression, jsast.CallExpression, jsast.ExpressionStatement, jsast.Program}, kinds)
}

func TestInvalidNodes(t *testing.T) {
	tree := jsast.NewTree("")
	assert.Equal(t, jsast.Invalid, tree.Kind(jsast.NoNode))
	assert.Equal(t, jsast.NoNode, tree.Parent(jsast.NodeID(3)))
	assert.Equal(t, 0, len(tree.Children(jsast.NoNode)))
	assert.False(t, tree.Dirty(jsast.NoNode))
	assert.Equal(t, "", tree.Text(jsast.NodeID(1)))
}

func TestKindByName(t *testing.T) {
	kind, ok := jsast.KindByName("ArrowFunctionExpression")
	assert.True(t, ok)
	assert.Equal(t, jsast.ArrowFunctionExpression, kind)
	assert.True(t, jsast.ArrowFunctionExpression.IsFunction())
	assert.True(t, jsast.TemplateLiteral.IsLiteral())

	_, ok = jsast.KindByName("ClassDeclaration")
	assert.False(t, ok)
}

func TestToolkitPredicates(t *testing.T) {
	tree, err := parser.Parse("set(s, _ => _.a, 'x')")
	assert.NoError(t, err)

	kit := jsast.NewToolkit(tree, '\'')
	call := firstCall(t, tree)
	args := tree.Arguments(call)

	assert.True(t, kit.IsCallExpression(call))
	assert.True(t, kit.IsIdentifier(tree.Node(call).A, "set"))
	assert.False(t, kit.IsIdentifier(tree.Node(call).A, "get"))
	assert.True(t, kit.IsIdentifier(args[0]))
	assert.True(t, kit.IsArrowFunction(args[1]))
	assert.True(t, kit.IsMemberExpression(tree.Node(args[1]).B))
	assert.True(t, kit.IsLiteral(args[2]))

	wrapped := kit.CallExpression(kit.Identifier("wrap"), []jsast.NodeID{kit.StringLiteral("v")})
	assert.Equal(t, "(CallExpression[synthetic] wrap 'v')", jsast.Sexpr(tree, wrapped))
}
