package inspect

import (
	"github.com/shopspring/decimal"

	"github.com/monolite/setpath/transform"
)

// InspectOptions controls Inspect.
type InspectOptions struct {
	Filename string // reported in parse errors
	Scopes   bool   // include the scope table
	Rewrite  bool   // run the set rewrite before dumping the tree
	// Transform configures the rewrite. The zero value rewrites calls to an
	// imported set and skips invalid accessors.
	Transform transform.Options
}

// NodeInfo is the serializable form of one tree node.
type NodeInfo struct {
	Kind   string `json:"kind" yaml:"kind"`
	Start  int    `json:"start" yaml:"start"`
	End    int    `json:"end" yaml:"end"`
	Line   int    `json:"line" yaml:"line"`
	Column int    `json:"column" yaml:"column"`

	Name   string           `json:"name,omitempty" yaml:"name,omitempty"`
	Value  string           `json:"value,omitempty" yaml:"value,omitempty"`
	Raw    string           `json:"raw,omitempty" yaml:"raw,omitempty"`
	Number *decimal.Decimal `json:"number,omitempty" yaml:"number,omitempty"`

	Flags    []string    `json:"flags,omitempty" yaml:"flags,omitempty"`
	Children []*NodeInfo `json:"children,omitempty" yaml:"children,omitempty"`
}

// BindingInfo describes one declared name.
type BindingInfo struct {
	Name     string `json:"name" yaml:"name"`
	Kind     string `json:"kind" yaml:"kind"`
	Source   string `json:"source,omitempty" yaml:"source,omitempty"`
	Imported string `json:"imported,omitempty" yaml:"imported,omitempty"`
}

// ScopeInfo describes one lexical scope. Parent is the index of the
// enclosing scope in InspectResult.Scopes, -1 for the program scope.
type ScopeInfo struct {
	Kind     string        `json:"kind" yaml:"kind"`
	Line     int           `json:"line" yaml:"line"`
	Parent   int           `json:"parent" yaml:"parent"`
	Bindings []BindingInfo `json:"bindings" yaml:"bindings"`
}

// RewriteInfo is one accessor replaced when InspectOptions.Rewrite is set.
type RewriteInfo struct {
	Shape string `json:"shape" yaml:"shape"`
	Line  int    `json:"line" yaml:"line"`
	Path  string `json:"path" yaml:"path"`
}

// InspectResult is the serializable output model.
type InspectResult struct {
	Root     *NodeInfo     `json:"root" yaml:"root"`
	Scopes   []ScopeInfo   `json:"scopes,omitempty" yaml:"scopes,omitempty"`
	Rewrites []RewriteInfo `json:"rewrites,omitempty" yaml:"rewrites,omitempty"`
}
