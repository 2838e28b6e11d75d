// Package jsast holds the syntax tree of a JavaScript module as an arena of
// nodes addressed by NodeID, together with scope analysis and node builders.
package jsast

import (
	"errors"
	"fmt"
	"sort"
	"unicode/utf8"
)

// Sentinel errors
var (
	ErrNodeOutOfRange     = errors.New("node id out of range")
	ErrArgumentOutOfRange = errors.New("argument index out of range")
	ErrNotAChild          = errors.New("node is not a child of parent")
	ErrNotACall           = errors.New("node is not a call expression")
)

// NodeID addresses a node inside a Tree.
type NodeID int32

// NoNode marks an absent optional child, such as a missing else branch
// or an array hole.
const NoNode NodeID = -1

// Node is one syntax tree node. The meaning of the child slots depends on Kind:
//
//	Program, BlockStatement              List=body
//	ExpressionStatement                  A=expression
//	VariableDeclaration                  Name=kind, List=declarators
//	VariableDeclarator                   A=id, B=init
//	FunctionDeclaration/Expression       A=id, List=params, B=body
//	ArrowFunctionExpression              List=params, B=body
//	ReturnStatement, ThrowStatement      A=argument
//	IfStatement, ConditionalExpression   A=test, B=consequent, C=alternate
//	ForStatement                         A=init, B=test, C=update, D=body
//	ForIn/ForOfStatement                 A=left, B=right, C=body
//	WhileStatement                       A=test, B=body
//	DoWhileStatement                     A=body, B=test
//	TryStatement                         A=block, B=handler, C=finalizer
//	CatchClause                          A=param, B=body
//	Break/ContinueStatement              A=label
//	LabeledStatement                     A=label, B=body
//	WithStatement                        A=object, B=body
//	SwitchStatement                      A=discriminant, List=cases
//	SwitchCase                           A=test (NoNode for default), List=consequent
//	ClassDeclaration/Expression          A=id, B=superClass, C=body
//	ClassBody                            List=members
//	MethodDefinition                     Name=kind, A=key, B=value
//	PropertyDefinition                   A=key, B=value
//	StaticBlock                          A=body
//	ImportDeclaration                    List=specifiers, A=source
//	ImportSpecifier                      A=local, B=imported
//	ImportDefault/NamespaceSpecifier     A=local
//	ExportNamedDeclaration               A=declaration, List=specifiers, B=source
//	ExportSpecifier                      A=local, B=exported
//	ExportDefaultDeclaration             A=declaration
//	ExportAllDeclaration                 A=exported, B=source
//	ArrayExpression, ArrayPattern        List=elements (NoNode for holes)
//	ObjectExpression, ObjectPattern      List=properties
//	ObjectProperty                       A=key, B=value
//	SpreadElement, RestElement           A=argument
//	CallExpression, NewExpression        A=callee, List=arguments
//	MemberExpression                     A=object, B=property
//	Unary/Update/AwaitExpression         Name=operator, A=argument
//	YieldExpression                      Name="yield" or "yield*", A=argument
//	Binary/Logical/AssignmentExpression  Name=operator, A=left, B=right
//	AssignmentPattern                    A=left, B=right
//	SequenceExpression                   List=expressions
//	TaggedTemplateExpression             A=tag, B=quasi
//	TemplateLiteral                      Raw, List=substitutions
//	Identifier                           Name
//	MetaProperty                         Name=new.target or import.meta
//	RegExpLiteral                        Raw, Value=pattern, Name=flags
//	literals                             Raw=source text, Value=cooked value
//	Opaque                               Name=syntax type, List=nested expressions
type Node struct {
	Kind   Kind
	Start  int // byte offset, -1 when the node never had source text
	End    int
	Parent NodeID

	Name  string
	Value string
	Raw   string

	Computed  bool // member access a[b], computed property keys
	Optional  bool // a?.b, a?.(b)
	Prefix    bool // ++a
	Shorthand bool // {a}
	Method    bool // {a() {}}, Name holds "get" or "set" for accessors
	Async     bool // async functions, for await
	Generator bool
	Static    bool // static class members
	// Parenthesized is set on expressions written inside parentheses.
	Parenthesized bool
	// Expression is set on arrows whose body is an expression.
	Expression bool

	A, B, C, D NodeID
	List       []NodeID

	// Synthetic nodes were built after parsing and have no source text of their own.
	Synthetic bool
}

// Tree is an arena of nodes. Nodes are never freed; a replaced node simply
// becomes unreachable from Root.
type Tree struct {
	Source string
	Root   NodeID
	nodes  []Node

	lineStarts []int
	version    uint64
}

// NewTree creates an empty tree over source.
func NewTree(source string) *Tree {
	return &Tree{
		Source: source,
		Root:   NoNode,
		nodes:  make([]Node, 0, len(source)/4+8),
	}
}

// NewNode returns a node of kind spanning [start, end) with every child slot empty.
func NewNode(kind Kind, start, end int) Node {
	return Node{Kind: kind, Start: start, End: end, Parent: NoNode, A: NoNode, B: NoNode, C: NoNode, D: NoNode}
}

// Add appends a node and returns its id. Children already present in the
// node's slots get their Parent set to the new node.
func (t *Tree) Add(n Node) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, n)
	for _, child := range t.Children(id) {
		t.nodes[child].Parent = id
	}
	return id
}

// Update lets fn edit the node in place. Child slots must not be changed
// through Update; use ReplaceChild for that.
func (t *Tree) Update(id NodeID, fn func(n *Node)) {
	if t.Valid(id) {
		fn(&t.nodes[id])
	}
}

// Position converts a byte offset in Source into a line and column.
func (t *Tree) Position(offset int) Position {
	if t.lineStarts == nil {
		t.lineStarts = []int{0}
		for i := 0; i < len(t.Source); i++ {
			if t.Source[i] == '\n' {
				t.lineStarts = append(t.lineStarts, i+1)
			}
		}
	}
	offset = max(0, min(offset, len(t.Source)))

	line := sort.Search(len(t.lineStarts), func(i int) bool { return t.lineStarts[i] > offset }) - 1
	column := utf8.RuneCountInString(t.Source[t.lineStarts[line]:offset]) + 1
	return Position{Line: line + 1, Column: column, Offset: offset}
}

// Version changes every time a child is replaced.
func (t *Tree) Version() uint64 {
	return t.version
}

// Len returns the number of nodes ever allocated.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Valid reports whether id addresses a node in this tree.
func (t *Tree) Valid(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}

// Node returns a copy of the node. The List slice is shared with the tree.
func (t *Tree) Node(id NodeID) Node {
	if !t.Valid(id) {
		return NewNode(Invalid, -1, -1)
	}
	return t.nodes[id]
}

// Kind returns the kind of id, or Invalid.
func (t *Tree) Kind(id NodeID) Kind {
	if !t.Valid(id) {
		return Invalid
	}
	return t.nodes[id].Kind
}

// Parent returns the parent of id, or NoNode for the root and detached nodes.
func (t *Tree) Parent(id NodeID) NodeID {
	if !t.Valid(id) {
		return NoNode
	}
	return t.nodes[id].Parent
}

// Text returns the original source text of a node, or "" for synthetic nodes.
func (t *Tree) Text(id NodeID) string {
	n := t.Node(id)
	if n.Synthetic || n.Start < 0 || n.End > len(t.Source) || n.Start > n.End {
		return ""
	}
	return t.Source[n.Start:n.End]
}

// Arguments returns the argument list of a call or new expression.
func (t *Tree) Arguments(id NodeID) []NodeID {
	switch t.Kind(id) {
	case CallExpression, NewExpression:
		return t.nodes[id].List
	default:
		return nil
	}
}

// Children returns the present children of id in source order.
func (t *Tree) Children(id NodeID) []NodeID {
	if !t.Valid(id) {
		return nil
	}
	n := &t.nodes[id]

	var out []NodeID
	add := func(ids ...NodeID) {
		for _, c := range ids {
			if c != NoNode {
				out = append(out, c)
			}
		}
	}

	switch n.Kind {
	case Program, BlockStatement, VariableDeclaration, ArrayExpression, ArrayPattern,
		ObjectExpression, ObjectPattern, SequenceExpression, TemplateLiteral, ClassBody, Opaque:
		add(n.List...)
	case SwitchStatement, SwitchCase:
		add(n.A)
		add(n.List...)
	case FunctionDeclaration, FunctionExpression:
		add(n.A)
		add(n.List...)
		add(n.B)
	case ArrowFunctionExpression:
		add(n.List...)
		add(n.B)
	case ImportDeclaration:
		add(n.List...)
		add(n.A)
	case ImportSpecifier:
		// import { imported as local }; one shared node when there is no alias
		if n.A == n.B {
			add(n.A)
		} else {
			add(n.B, n.A)
		}
	case ExportNamedDeclaration:
		add(n.A)
		add(n.List...)
		add(n.B)
	case ExportSpecifier:
		if n.A == n.B {
			add(n.A)
		} else {
			add(n.A, n.B)
		}
	case ObjectProperty:
		if n.Shorthand {
			add(n.B)
		} else {
			add(n.A, n.B)
		}
	case CallExpression, NewExpression:
		add(n.A)
		add(n.List...)
	case ForStatement:
		add(n.A, n.B, n.C, n.D)
	default:
		add(n.A, n.B, n.C)
	}
	return out
}

// ReplaceChild swaps oldChild for newChild wherever it sits in parent.
func (t *Tree) ReplaceChild(parent, oldChild, newChild NodeID) error {
	if !t.Valid(parent) || !t.Valid(oldChild) || !t.Valid(newChild) {
		return fmt.Errorf("%w: replace %d in %d", ErrNodeOutOfRange, oldChild, parent)
	}

	n := &t.nodes[parent]
	for _, slot := range []*NodeID{&n.A, &n.B, &n.C, &n.D} {
		if *slot == oldChild {
			*slot = newChild
			t.adopt(parent, oldChild, newChild)
			return nil
		}
	}
	for i, c := range n.List {
		if c == oldChild {
			n.List[i] = newChild
			t.adopt(parent, oldChild, newChild)
			return nil
		}
	}
	return fmt.Errorf("%w: %s %d in %s %d", ErrNotAChild, t.Kind(oldChild), oldChild, n.Kind, parent)
}

// ReplaceArgument overwrites argument index of a call in place. The call keeps
// its identity, so paths pointing at it stay valid.
func (t *Tree) ReplaceArgument(call NodeID, index int, replacement NodeID) error {
	if !t.Valid(call) || !t.Valid(replacement) {
		return fmt.Errorf("%w: call %d", ErrNodeOutOfRange, call)
	}
	n := &t.nodes[call]
	if n.Kind != CallExpression && n.Kind != NewExpression {
		return fmt.Errorf("%w: %s", ErrNotACall, n.Kind)
	}
	if index < 0 || index >= len(n.List) {
		return fmt.Errorf("%w: %d of %d", ErrArgumentOutOfRange, index, len(n.List))
	}

	old := n.List[index]
	n.List[index] = replacement
	t.adopt(call, old, replacement)
	return nil
}

// adopt reparents the replacement and lets a synthetic replacement take over
// the source span of the node it replaced.
func (t *Tree) adopt(parent, oldChild, newChild NodeID) {
	t.version++
	replacement := &t.nodes[newChild]
	replacement.Parent = parent
	if replacement.Start < 0 {
		replacement.Start = t.nodes[oldChild].Start
		replacement.End = t.nodes[oldChild].End
	}
	if oldChild != newChild && t.nodes[oldChild].Parent == parent {
		t.nodes[oldChild].Parent = NoNode
	}
}

// Dirty reports whether the subtree rooted at id contains synthetic nodes and
// can no longer be printed by copying its source span.
func (t *Tree) Dirty(id NodeID) bool {
	if !t.Valid(id) {
		return false
	}
	if t.nodes[id].Synthetic {
		return true
	}
	for _, c := range t.Children(id) {
		if t.Dirty(c) {
			return true
		}
	}
	return false
}

// Walk calls fn for id and its descendants in depth-first source order.
// Returning false from fn skips the node's children.
func (t *Tree) Walk(id NodeID, fn func(id NodeID) bool) {
	if !t.Valid(id) {
		return
	}
	if !fn(id) {
		return
	}
	for _, c := range t.Children(id) {
		t.Walk(c, fn)
	}
}

// Ancestors returns the parents of id, innermost first.
func (t *Tree) Ancestors(id NodeID) []NodeID {
	var out []NodeID
	for p := t.Parent(id); p != NoNode; p = t.Parent(p) {
		out = append(out, p)
	}
	return out
}
