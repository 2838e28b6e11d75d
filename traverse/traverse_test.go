package traverse_test

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/monolite/setpath/jsast"
	"github.com/monolite/setpath/parser"
	"github.com/monolite/setpath/traverse"
)

func TestTraverseOrder(t *testing.T) {
	tree, err := parser.Parse("f(g(a), h(b)); k()")
	assert.NoError(t, err)

	var order []string
	visitor := traverse.Visitor{
		jsast.CallExpression: func(path *traverse.Path) error {
			order = append(order, tree.Node(tree.Node(path.Node).A).Name)
			return nil
		},
	}
	assert.NoError(t, traverse.Traverse(tree, nil, visitor))
	assert.Equal(t, []string{"f", "g", "h", "k"}, order)
}

func TestTraverseSeesReplacedArguments(t *testing.T) {
	tree, err := parser.Parse("outer(x => x, inner(1))")
	assert.NoError(t, err)

	kit := jsast.NewToolkit(tree, '\'')
	var visited []string
	visitor := traverse.Visitor{
		jsast.CallExpression: func(path *traverse.Path) error {
			callee := tree.Node(tree.Node(path.Node).A).Name
			visited = append(visited, callee)
			if callee == "outer" {
				// swap the arrow for a call that the walk must still enter
				replacement := kit.CallExpression(kit.Identifier("added"), nil)
				return tree.ReplaceArgument(path.Node, 0, replacement)
			}
			return nil
		},
		jsast.ArrowFunctionExpression: func(path *traverse.Path) error {
			visited = append(visited, "arrow")
			return nil
		},
	}
	assert.NoError(t, traverse.Traverse(tree, nil, visitor))
	assert.Equal(t, []string{"outer", "added", "inner"}, visited)
}

func TestTraverseSeesReplacementsOfAncestors(t *testing.T) {
	tree, err := parser.Parse("wrap(first(), x => x)")
	assert.NoError(t, err)

	kit := jsast.NewToolkit(tree, '\'')
	var visited []jsast.Kind
	visitor := traverse.Visitor{
		jsast.CallExpression: func(path *traverse.Path) error {
			if tree.Node(tree.Node(path.Node).A).Name != "first" {
				return nil
			}
			// replace a later sibling through the parent call, like a fluent link rewrite
			parent := path.ParentPath()
			assert.Equal(t, jsast.CallExpression, parent.Kind())
			return tree.ReplaceArgument(parent.Node, 1, kit.ArrayExpression(nil))
		},
		jsast.ArrowFunctionExpression: func(path *traverse.Path) error {
			visited = append(visited, path.Kind())
			return nil
		},
		jsast.ArrayExpression: func(path *traverse.Path) error {
			visited = append(visited, path.Kind())
			return nil
		},
	}
	assert.NoError(t, traverse.Traverse(tree, nil, visitor))
	assert.Equal(t, []jsast.Kind{jsast.ArrayExpression}, visited)
}

func TestTraverseStopsOnError(t *testing.T) {
	tree, err := parser.Parse("a(); b(); c()")
	assert.NoError(t, err)

	stop := errors.New("stop")
	count := 0
	visitor := traverse.Visitor{
		jsast.CallExpression: func(path *traverse.Path) error {
			count++
			if count == 2 {
				return stop
			}
			return nil
		},
	}
	err = traverse.Traverse(tree, nil, visitor)
	assert.True(t, errors.Is(err, stop))
	assert.Equal(t, 2, count)
}

func TestPathScope(t *testing.T) {
	tree, err := parser.Parse("import { set } from 'm';\nconst f = (set) => set(1);\nset(2);")
	assert.NoError(t, err)
	scopes := jsast.AnalyzeScopes(tree)

	var kinds []jsast.BindingKind
	visitor := traverse.Visitor{
		jsast.CallExpression: func(path *traverse.Path) error {
			binding, ok := path.Resolver().ResolveBinding("set", path.Scope())
			assert.True(t, ok)
			kinds = append(kinds, binding.Kind)
			return nil
		},
	}
	assert.NoError(t, traverse.Traverse(tree, scopes, visitor))
	assert.Equal(t, []jsast.BindingKind{jsast.BindingParam, jsast.BindingModule}, kinds)
}

func TestPathWithoutResolver(t *testing.T) {
	tree, err := parser.Parse("x")
	assert.NoError(t, err)

	path := traverse.NewPath(tree, nil, tree.Root)
	assert.Zero(t, path.Scope())
	assert.Zero(t, path.ParentPath())
	assert.Equal(t, jsast.Program, path.Kind())
}

func TestMerge(t *testing.T) {
	tree, err := parser.Parse("a(b)")
	assert.NoError(t, err)

	var log []string
	first := traverse.Visitor{
		jsast.CallExpression: func(*traverse.Path) error { log = append(log, "first call"); return nil },
	}
	second := traverse.Visitor{
		jsast.CallExpression: func(*traverse.Path) error { log = append(log, "second call"); return nil },
		jsast.Identifier:     func(*traverse.Path) error { log = append(log, "identifier"); return nil },
	}
	assert.NoError(t, traverse.Traverse(tree, nil, traverse.Merge(first, second)))
	assert.Equal(t, []string{"first call", "second call", "identifier", "identifier"}, log)
}
