// Package transform rewrites accessor arguments of the imported set helper
// into literal property paths:
//
//	set(state, _ => _.a.b.c, v)        becomes  set(state, ['a', 'b', 'c'], v)
//	set(state).set(_ => _.a, 1)        becomes  set(state).set(['a'], 1)
package transform

import (
	"github.com/monolite/setpath/jsast"
	"github.com/monolite/setpath/traverse"
)

// Options controls which calls are rewritten and how invalid accessors are handled.
type Options struct {
	// Callee is the local name the update function is imported under.
	Callee string
	// ImportSources restricts the import the callee must come from. Empty accepts any module.
	ImportSources []string
	// Strict aborts on the first invalid accessor. Otherwise the call is left
	// untouched and the problem is recorded as a warning.
	Strict bool
}

// DefaultOptions rewrites calls to an imported set and rejects invalid accessors.
var DefaultOptions = Options{
	Callee: "set",
	Strict: true,
}

// Outcome is what happened to one visited call.
type Outcome int

const (
	Skipped Outcome = iota
	Rewritten
)

func (o Outcome) String() string {
	if o == Rewritten {
		return "rewritten"
	}
	return "skipped"
}

// Event records one accessor that was replaced by a path.
type Event struct {
	Shape    Shape
	Position jsast.Position
	Path     string
	Segments int
}

// Pass holds the state of one transform run over a tree.
type Pass struct {
	kit      *jsast.Toolkit
	options  Options
	events   []Event
	warnings []*ValidationError
}

// Plugin prepares a rewrite pass over the toolkit's tree. Hand its Visitor
// to traverse.Traverse together with the tree's scopes.
func Plugin(kit *jsast.Toolkit, opts Options) *Pass {
	if opts.Callee == "" {
		opts.Callee = DefaultOptions.Callee
	}
	return &Pass{kit: kit, options: opts}
}

// Visitor returns the visitor table of the pass.
func (p *Pass) Visitor() traverse.Visitor {
	return traverse.Visitor{
		jsast.CallExpression: func(path *traverse.Path) error {
			_, err := p.VisitCall(path)
			return err
		},
	}
}

// Events returns the rewrites performed so far, in traversal order.
func (p *Pass) Events() []Event {
	return p.events
}

// Warnings returns the invalid accessors left in place in lenient mode.
func (p *Pass) Warnings() []*ValidationError {
	return p.warnings
}

// VisitCall handles one call expression. Calls whose callee is not the
// imported update function are skipped without being looked at further,
// and so are optional calls such as set?.(state, _ => _.a).
func (p *Pass) VisitCall(path *traverse.Path) (Outcome, error) {
	tree := p.kit.Tree()
	call := tree.Node(path.Node)
	if call.Optional || !p.kit.IsIdentifier(call.A, p.options.Callee) {
		return Skipped, nil
	}
	if !ResolveBinding(path.Resolver(), p.options.Callee, path.Scope(), p.options.ImportSources...) {
		return Skipped, nil
	}

	match := Classify(tree, path.Node)
	switch match.Shape {
	case ClassicalMatch:
		return p.apply(match)
	case FluentRootPending:
		return p.followChain(match.Call)
	}
	return Skipped, nil
}

// followChain walks outward from a fluent root, rewriting each link whose
// first argument is an accessor candidate.
func (p *Pass) followChain(root jsast.NodeID) (Outcome, error) {
	tree := p.kit.Tree()
	outcome := Skipped
	for link := NextLink(tree, root); link.Shape == FluentLinkMatch; link = NextLink(tree, link.Call) {
		if link.Accessor == jsast.NoNode {
			continue
		}
		o, err := p.apply(link)
		if err != nil {
			return outcome, err
		}
		if o == Rewritten {
			outcome = Rewritten
		}
	}
	return outcome, nil
}

func (p *Pass) apply(match CallMatch) (Outcome, error) {
	tree := p.kit.Tree()
	if err := ValidateAccessor(tree, match.Accessor); err != nil {
		verr, ok := AsValidationError(err)
		if p.options.Strict || !ok {
			return Skipped, err
		}
		p.warnings = append(p.warnings, verr)
		return Skipped, nil
	}

	segments := ExtractChain(p.kit, tree.Node(match.Accessor).B)
	if _, err := Rewrite(p.kit, match, segments); err != nil {
		return Skipped, err
	}

	p.events = append(p.events, Event{
		Shape:    match.Shape,
		Position: tree.Position(tree.Node(match.Call).Start),
		Path:     FormatPath(tree, segments),
		Segments: len(segments),
	})
	return Rewritten, nil
}
