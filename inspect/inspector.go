// Package inspect converts a parsed module into a serializable tree for
// debugging accessor rewrites.
package inspect

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/monolite/setpath/jsast"
	"github.com/monolite/setpath/parser"
	"github.com/monolite/setpath/transform"
	"github.com/monolite/setpath/traverse"
)

// Inspect parses JavaScript source and returns its tree.
func Inspect(r io.Reader, opt InspectOptions) (InspectResult, error) {
	var res InspectResult

	b, err := io.ReadAll(r)
	if err != nil {
		return res, fmt.Errorf("read input: %w", err)
	}

	tree, err := parser.Parse(string(b), parser.Options{Filename: opt.Filename, AllowHashbang: true})
	if err != nil {
		return res, err
	}
	scopes := jsast.AnalyzeScopes(tree)

	if opt.Rewrite {
		pass := transform.Plugin(jsast.NewToolkit(tree, '\''), opt.Transform)
		if err := traverse.Traverse(tree, scopes, pass.Visitor()); err != nil {
			return res, fmt.Errorf("rewrite: %w", err)
		}
		for _, event := range pass.Events() {
			res.Rewrites = append(res.Rewrites, RewriteInfo{
				Shape: event.Shape.String(),
				Line:  event.Position.Line,
				Path:  event.Path,
			})
		}
	}

	res.Root = convertNode(tree, tree.Root)
	if opt.Scopes {
		res.Scopes = convertScopes(tree, scopes)
	}

	return res, nil
}

func convertNode(tree *jsast.Tree, id jsast.NodeID) *NodeInfo {
	n := tree.Node(id)
	info := &NodeInfo{
		Kind:  n.Kind.String(),
		Start: n.Start,
		End:   n.End,
		Name:  n.Name,
		Flags: jsast.Flags(n),
	}
	if n.Start >= 0 {
		pos := tree.Position(n.Start)
		info.Line = pos.Line
		info.Column = pos.Column
	}

	switch {
	case n.Kind == jsast.NumericLiteral:
		info.Raw = n.Raw
		if d, err := decimal.NewFromString(n.Value); err == nil {
			info.Number = &d
		}
	case n.Kind.IsLiteral():
		info.Raw = n.Raw
		info.Value = n.Value
	}

	for _, child := range tree.Children(id) {
		info.Children = append(info.Children, convertNode(tree, child))
	}
	return info
}

func convertScopes(tree *jsast.Tree, scopes *jsast.Scopes) []ScopeInfo {
	all := scopes.All()
	index := make(map[*jsast.Scope]int, len(all))
	for i, scope := range all {
		index[scope] = i
	}

	out := make([]ScopeInfo, 0, len(all))
	for _, scope := range all {
		info := ScopeInfo{
			Kind:     scope.Kind.String(),
			Parent:   -1,
			Bindings: []BindingInfo{},
		}
		if scope.Parent != nil {
			info.Parent = index[scope.Parent]
		}
		if start := tree.Node(scope.Node).Start; start >= 0 {
			info.Line = tree.Position(start).Line
		}
		for _, name := range scope.Names() {
			binding := scope.Bindings[name]
			info.Bindings = append(info.Bindings, BindingInfo{
				Name:     binding.Name,
				Kind:     binding.Kind.String(),
				Source:   binding.Source,
				Imported: binding.Imported,
			})
		}
		out = append(out, info)
	}
	return out
}
