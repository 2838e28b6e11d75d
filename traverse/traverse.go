// Package traverse walks a jsast.Tree depth first and dispatches nodes to
// visitor functions keyed by node kind.
package traverse

import (
	"github.com/monolite/setpath/jsast"
)

// VisitFunc is called when the walk enters a node of the registered kind.
type VisitFunc func(path *Path) error

// Visitor maps node kinds to the function called on entering them.
type Visitor map[jsast.Kind]VisitFunc

// Merge combines visitors. Functions registered for the same kind run in order.
func Merge(visitors ...Visitor) Visitor {
	merged := Visitor{}
	for _, v := range visitors {
		for kind, fn := range v {
			prev, ok := merged[kind]
			if !ok {
				merged[kind] = fn
				continue
			}
			merged[kind] = func(path *Path) error {
				if err := prev(path); err != nil {
					return err
				}
				return fn(path)
			}
		}
	}
	return merged
}

// Path is the handle a visitor receives for the node being entered.
type Path struct {
	Tree   *jsast.Tree
	Node   jsast.NodeID
	Parent jsast.NodeID

	resolver jsast.BindingResolver
}

// NewPath builds a path for node, reading its parent from the tree.
func NewPath(tree *jsast.Tree, resolver jsast.BindingResolver, node jsast.NodeID) *Path {
	return &Path{
		Tree:     tree,
		Node:     node,
		Parent:   tree.Parent(node),
		resolver: resolver,
	}
}

// Kind returns the kind of the node.
func (p *Path) Kind() jsast.Kind {
	return p.Tree.Kind(p.Node)
}

// ParentPath returns the path of the parent node, or nil at the root.
func (p *Path) ParentPath() *Path {
	if p.Parent == jsast.NoNode {
		return nil
	}
	return NewPath(p.Tree, p.resolver, p.Parent)
}

// Scope returns the innermost scope containing the node.
func (p *Path) Scope() *jsast.Scope {
	if p.resolver == nil {
		return nil
	}
	return p.resolver.ScopeOf(p.Node)
}

// Resolver returns the binding resolver of the walk.
func (p *Path) Resolver() jsast.BindingResolver {
	return p.resolver
}

// Traverse walks the tree from its root in forward depth-first order,
// entering each node before its children. Child lists are read live, so a
// visitor may replace arguments of the node it is visiting, or of an ancestor,
// and the walk continues through the replacement. The first visitor error
// stops the walk and is returned.
func Traverse(tree *jsast.Tree, resolver jsast.BindingResolver, visitor Visitor) error {
	w := &walker{tree: tree, resolver: resolver, visitor: visitor}
	return w.walk(tree.Root)
}

type walker struct {
	tree     *jsast.Tree
	resolver jsast.BindingResolver
	visitor  Visitor
}

func (w *walker) walk(id jsast.NodeID) error {
	if fn, ok := w.visitor[w.tree.Kind(id)]; ok {
		if err := fn(NewPath(w.tree, w.resolver, id)); err != nil {
			return err
		}
	}

	children := w.tree.Children(id)
	version := w.tree.Version()
	for i := 0; i < len(children); i++ {
		if v := w.tree.Version(); v != version {
			children, version = w.tree.Children(id), v
			if i >= len(children) {
				break
			}
		}
		if err := w.walk(children[i]); err != nil {
			return err
		}
	}
	return nil
}
