package transform

import "github.com/monolite/setpath/jsast"

// FluentMethod is the method name that links the fluent form: set(root).set(...).
const FluentMethod = "set"

// Shape is the state of call-shape classification.
type Shape int

const (
	Unmatched Shape = iota
	// ClassicalMatch is set(root, accessor, ...).
	ClassicalMatch
	// FluentRootPending is set(root); the accessor lives on an enclosing .set call.
	FluentRootPending
	// FluentLinkMatch is the .set(accessor, ...) call wrapping a fluent root or link.
	FluentLinkMatch
)

func (s Shape) String() string {
	switch s {
	case ClassicalMatch:
		return "classical"
	case FluentRootPending:
		return "fluent-root"
	case FluentLinkMatch:
		return "fluent-link"
	default:
		return "unmatched"
	}
}

// CallMatch describes a recognized call and where its accessor sits.
type CallMatch struct {
	Call          jsast.NodeID
	Shape         Shape
	Accessor      jsast.NodeID // NoNode when there is nothing to rewrite
	AccessorIndex int
	Root          jsast.NodeID // the state argument, NoNode for fluent links
}

// IsAccessorCandidate reports whether id has the outline of an accessor: a
// synchronous arrow whose expression body is a member access or a bare
// identifier. Other arrows are ordinary callbacks and are left alone; the
// parameters and the chain inside the body are checked by ValidateAccessor.
func IsAccessorCandidate(tree *jsast.Tree, id jsast.NodeID) bool {
	fn := tree.Node(id)
	if fn.Kind != jsast.ArrowFunctionExpression || fn.Async || !fn.Expression {
		return false
	}
	switch tree.Kind(fn.B) {
	case jsast.MemberExpression, jsast.Identifier:
		return true
	default:
		return false
	}
}

// Classify decides the shape of a call to the update function. The callee
// binding is not looked at here.
func Classify(tree *jsast.Tree, call jsast.NodeID) CallMatch {
	unmatched := CallMatch{Call: call, Shape: Unmatched, Accessor: jsast.NoNode, Root: jsast.NoNode}
	if tree.Kind(call) != jsast.CallExpression {
		return unmatched
	}

	args := tree.Arguments(call)
	switch {
	case len(args) >= 2 && IsAccessorCandidate(tree, args[1]):
		return CallMatch{Call: call, Shape: ClassicalMatch, Accessor: args[1], AccessorIndex: 1, Root: args[0]}
	case len(args) == 1:
		return CallMatch{Call: call, Shape: FluentRootPending, Accessor: jsast.NoNode, Root: args[0]}
	}
	return unmatched
}

// NextLink looks one step outward from a fluent root or link: call must be
// the object of a plain .set member that is itself the callee of a call.
// Computed and optional members or calls do not link. It returns that
// outer call as a FluentLinkMatch, with Accessor set only when its first
// argument is an accessor candidate. Anything else ends the chain and
// yields Unmatched.
func NextLink(tree *jsast.Tree, call jsast.NodeID) CallMatch {
	end := CallMatch{Call: call, Shape: Unmatched, Accessor: jsast.NoNode, Root: jsast.NoNode}

	member := tree.Parent(call)
	m := tree.Node(member)
	if m.Kind != jsast.MemberExpression || m.Computed || m.Optional || m.A != call {
		return end
	}
	if prop := tree.Node(m.B); prop.Kind != jsast.Identifier || prop.Name != FluentMethod {
		return end
	}

	outer := tree.Parent(member)
	if o := tree.Node(outer); o.Kind != jsast.CallExpression || o.Optional || o.A != member {
		return end
	}

	link := CallMatch{Call: outer, Shape: FluentLinkMatch, Accessor: jsast.NoNode, Root: jsast.NoNode}
	if args := tree.Arguments(outer); len(args) > 0 && IsAccessorCandidate(tree, args[0]) {
		link.Accessor = args[0]
	}
	return link
}
