package jsast

// Toolkit builds synthetic nodes in a tree and answers shape questions
// about existing ones.
type Toolkit struct {
	tree  *Tree
	quote byte
}

// NewToolkit returns a toolkit bound to tree. quote selects the delimiter of
// string literals it builds; anything but '"' means single quotes.
func NewToolkit(tree *Tree, quote byte) *Toolkit {
	if quote != '"' {
		quote = '\''
	}
	return &Toolkit{tree: tree, quote: quote}
}

// Tree returns the tree the toolkit builds into.
func (k *Toolkit) Tree() *Tree {
	return k.tree
}

func (k *Toolkit) synthetic(kind Kind) Node {
	n := NewNode(kind, -1, -1)
	n.Synthetic = true
	return n
}

// StringLiteral builds a string literal holding value.
func (k *Toolkit) StringLiteral(value string) NodeID {
	n := k.synthetic(StringLiteral)
	n.Value = value
	n.Raw = QuoteString(value, k.quote)
	return k.tree.Add(n)
}

// Identifier builds a reference to name.
func (k *Toolkit) Identifier(name string) NodeID {
	n := k.synthetic(Identifier)
	n.Name = name
	return k.tree.Add(n)
}

// ArrayExpression builds an array literal. The elements are reparented.
func (k *Toolkit) ArrayExpression(elements []NodeID) NodeID {
	n := k.synthetic(ArrayExpression)
	n.List = append([]NodeID(nil), elements...)
	return k.tree.Add(n)
}

// CallExpression builds callee(args...). The callee and arguments are reparented.
func (k *Toolkit) CallExpression(callee NodeID, args []NodeID) NodeID {
	n := k.synthetic(CallExpression)
	n.A = callee
	n.List = append([]NodeID(nil), args...)
	return k.tree.Add(n)
}

// IsIdentifier reports whether id is an identifier, optionally named name.
func (k *Toolkit) IsIdentifier(id NodeID, name ...string) bool {
	n := k.tree.Node(id)
	if n.Kind != Identifier {
		return false
	}
	return len(name) == 0 || n.Name == name[0]
}

// IsMemberExpression reports whether id is a member access.
func (k *Toolkit) IsMemberExpression(id NodeID) bool {
	return k.tree.Kind(id) == MemberExpression
}

// IsArrowFunction reports whether id is an arrow function.
func (k *Toolkit) IsArrowFunction(id NodeID) bool {
	return k.tree.Kind(id) == ArrowFunctionExpression
}

// IsCallExpression reports whether id is a call.
func (k *Toolkit) IsCallExpression(id NodeID) bool {
	return k.tree.Kind(id) == CallExpression
}

// IsLiteral reports whether id is any literal.
func (k *Toolkit) IsLiteral(id NodeID) bool {
	return k.tree.Kind(id).IsLiteral()
}
