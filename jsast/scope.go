package jsast

import "sort"

// BindingKind describes how a name was declared.
type BindingKind int

const (
	BindingModule  BindingKind = iota // import
	BindingVar                        // var
	BindingLet                        // let, catch parameter
	BindingConst                      // const
	BindingHoisted                    // function declaration
	BindingParam                      // function parameter
	BindingLocal                      // name of a function or class expression, visible only inside it
	BindingClass                      // class declaration
)

func (k BindingKind) String() string {
	switch k {
	case BindingModule:
		return "module"
	case BindingVar:
		return "var"
	case BindingLet:
		return "let"
	case BindingConst:
		return "const"
	case BindingHoisted:
		return "hoisted"
	case BindingParam:
		return "param"
	case BindingLocal:
		return "local"
	case BindingClass:
		return "class"
	default:
		return "unknown"
	}
}

// Binding is a declared name.
type Binding struct {
	Name string
	Kind BindingKind
	// Node is the identifier that declares the name.
	Node NodeID
	// Source and Imported are set for module bindings: the import source
	// string and the exported name ("default" and "*" for default and
	// namespace imports).
	Source   string
	Imported string
}

// ScopeKind distinguishes the scope-creating constructs.
type ScopeKind int

const (
	ProgramScope ScopeKind = iota
	FunctionScope
	BlockScope
)

func (k ScopeKind) String() string {
	switch k {
	case ProgramScope:
		return "program"
	case FunctionScope:
		return "function"
	default:
		return "block"
	}
}

// Scope is one lexical scope.
type Scope struct {
	Kind     ScopeKind
	Node     NodeID
	Parent   *Scope
	Bindings map[string]*Binding
}

// Lookup resolves name in s and its enclosing scopes.
func (s *Scope) Lookup(name string) (*Binding, bool) {
	for scope := s; scope != nil; scope = scope.Parent {
		if b, ok := scope.Bindings[name]; ok {
			return b, true
		}
	}
	return nil, false
}

// Names returns the names declared directly in s, sorted.
func (s *Scope) Names() []string {
	names := make([]string, 0, len(s.Bindings))
	for name := range s.Bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Scope) declare(b *Binding) {
	// the first declaration wins, matching how redeclared var and
	// function names still resolve to one binding
	if _, exists := s.Bindings[b.Name]; !exists {
		s.Bindings[b.Name] = b
	}
}

// BindingResolver answers which declaration a name refers to from inside a scope.
type BindingResolver interface {
	ResolveBinding(name string, scope *Scope) (*Binding, bool)
	ScopeOf(id NodeID) *Scope
}

// Scopes is the result of scope analysis over one tree.
type Scopes struct {
	tree   *Tree
	root   *Scope
	byNode map[NodeID]*Scope
	all    []*Scope
}

var _ BindingResolver = (*Scopes)(nil)

// Root returns the program scope.
func (s *Scopes) Root() *Scope {
	return s.root
}

// All returns every scope in creation order, program first.
func (s *Scopes) All() []*Scope {
	return s.all
}

// ScopeOf returns the innermost scope containing id.
func (s *Scopes) ScopeOf(id NodeID) *Scope {
	for n := id; n != NoNode; n = s.tree.Parent(n) {
		if scope, ok := s.byNode[n]; ok {
			return scope
		}
	}
	return s.root
}

// ResolveBinding looks name up starting at scope.
func (s *Scopes) ResolveBinding(name string, scope *Scope) (*Binding, bool) {
	if scope == nil {
		scope = s.root
	}
	return scope.Lookup(name)
}

// AnalyzeScopes builds the scope chain of the tree and records every declaration.
// It must run after any edits that add declarations; rewriting call arguments
// does not invalidate it.
func AnalyzeScopes(t *Tree) *Scopes {
	a := &scopeAnalyzer{
		tree: t,
		scopes: &Scopes{
			tree:   t,
			byNode: map[NodeID]*Scope{},
		},
	}
	root := a.open(ProgramScope, t.Root, nil)
	a.scopes.root = root
	a.visit(t.Root, root)
	return a.scopes
}

type scopeAnalyzer struct {
	tree   *Tree
	scopes *Scopes
}

func (a *scopeAnalyzer) open(kind ScopeKind, node NodeID, parent *Scope) *Scope {
	scope := &Scope{Kind: kind, Node: node, Parent: parent, Bindings: map[string]*Binding{}}
	if node != NoNode {
		a.scopes.byNode[node] = scope
	}
	a.scopes.all = append(a.scopes.all, scope)
	return scope
}

// functionScope returns the closest scope that var declarations hoist to.
func functionScope(s *Scope) *Scope {
	for s.Kind == BlockScope && s.Parent != nil {
		s = s.Parent
	}
	return s
}

func (a *scopeAnalyzer) visit(id NodeID, scope *Scope) {
	if !a.tree.Valid(id) {
		return
	}
	n := a.tree.Node(id)

	switch n.Kind {
	case ImportDeclaration:
		source := a.tree.Node(n.A).Value
		for _, spec := range n.List {
			s := a.tree.Node(spec)
			b := &Binding{Kind: BindingModule, Node: s.A, Source: source, Name: a.tree.Node(s.A).Name}
			switch s.Kind {
			case ImportDefaultSpecifier:
				b.Imported = "default"
			case ImportNamespaceSpecifier:
				b.Imported = "*"
			default:
				imported := a.tree.Node(s.B)
				b.Imported = imported.Name
				if imported.Kind == StringLiteral {
					b.Imported = imported.Value
				}
			}
			scope.declare(b)
		}
		return

	case VariableDeclaration:
		kind := BindingVar
		target := functionScope(scope)
		switch n.Name {
		case "let":
			kind, target = BindingLet, scope
		case "const":
			kind, target = BindingConst, scope
		}
		for _, decl := range n.List {
			d := a.tree.Node(decl)
			a.declarePattern(d.A, kind, target)
			a.visit(d.B, scope)
			a.visitPatternDefaults(d.A, scope)
		}
		return

	case FunctionDeclaration:
		if n.A != NoNode {
			scope.declare(&Binding{Name: a.tree.Node(n.A).Name, Kind: BindingHoisted, Node: n.A})
		}
		a.visitFunction(id, n, scope)
		return

	case FunctionExpression, ArrowFunctionExpression:
		a.visitFunction(id, n, scope)
		return

	case ClassDeclaration:
		if n.A != NoNode {
			scope.declare(&Binding{Name: a.tree.Node(n.A).Name, Kind: BindingClass, Node: n.A})
		}

	case ClassExpression:
		if n.A != NoNode {
			scope = a.open(BlockScope, id, scope)
			scope.declare(&Binding{Name: a.tree.Node(n.A).Name, Kind: BindingLocal, Node: n.A})
		}

	case StaticBlock:
		scope = a.open(FunctionScope, id, scope)

	case SwitchStatement:
		a.visit(n.A, scope)
		scope = a.open(BlockScope, id, scope)
		for _, c := range n.List {
			a.visit(c, scope)
		}
		return

	case BlockStatement:
		// a function body shares the scope of its function
		if p := a.tree.Parent(id); p != NoNode && a.tree.Kind(p).IsFunction() && a.tree.Node(p).B == id {
			break
		}
		scope = a.open(BlockScope, id, scope)

	case ForStatement, ForInStatement, ForOfStatement:
		scope = a.open(BlockScope, id, scope)

	case CatchClause:
		scope = a.open(BlockScope, id, scope)
		a.declarePattern(n.A, BindingLet, scope)
		a.visitPatternDefaults(n.A, scope)
		a.visit(n.B, scope)
		return
	}

	for _, c := range a.tree.Children(id) {
		a.visit(c, scope)
	}
}

func (a *scopeAnalyzer) visitFunction(id NodeID, n Node, scope *Scope) {
	inner := a.open(FunctionScope, id, scope)
	if n.Kind == FunctionExpression && n.A != NoNode {
		inner.declare(&Binding{Name: a.tree.Node(n.A).Name, Kind: BindingLocal, Node: n.A})
	}
	for _, param := range n.List {
		a.declarePattern(param, BindingParam, inner)
	}
	for _, param := range n.List {
		a.visitPatternDefaults(param, inner)
	}
	a.visit(n.B, inner)
}

// declarePattern declares every identifier bound by a binding pattern.
func (a *scopeAnalyzer) declarePattern(id NodeID, kind BindingKind, scope *Scope) {
	n := a.tree.Node(id)
	switch n.Kind {
	case Identifier:
		scope.declare(&Binding{Name: n.Name, Kind: kind, Node: id})
	case ObjectPattern, ArrayPattern:
		for _, el := range n.List {
			a.declarePattern(el, kind, scope)
		}
	case ObjectProperty:
		a.declarePattern(n.B, kind, scope)
	case AssignmentPattern:
		a.declarePattern(n.A, kind, scope)
	case RestElement:
		a.declarePattern(n.A, kind, scope)
	}
}

// visitPatternDefaults visits the expressions embedded in a pattern:
// default values and computed keys.
func (a *scopeAnalyzer) visitPatternDefaults(id NodeID, scope *Scope) {
	n := a.tree.Node(id)
	switch n.Kind {
	case ObjectPattern, ArrayPattern:
		for _, el := range n.List {
			a.visitPatternDefaults(el, scope)
		}
	case ObjectProperty:
		if n.Computed {
			a.visit(n.A, scope)
		}
		a.visitPatternDefaults(n.B, scope)
	case AssignmentPattern:
		a.visitPatternDefaults(n.A, scope)
		a.visit(n.B, scope)
	case RestElement:
		a.visitPatternDefaults(n.A, scope)
	}
}
