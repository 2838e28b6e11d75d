package parser

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/monolite/setpath/jsast"
)

// pattern converts array and object literals and binding patterns.
func (c *converter) pattern(n *sitter.Node) (jsast.NodeID, bool) {
	switch n.Type() {
	case "array", "array_pattern":
		kind := jsast.ArrayExpression
		if n.Type() == "array_pattern" {
			kind = jsast.ArrayPattern
		}
		node := c.newNode(kind, n)
		node.List = c.elements(n)
		return c.tree.Add(node), true

	case "object", "object_pattern":
		kind := jsast.ObjectExpression
		if n.Type() == "object_pattern" {
			kind = jsast.ObjectPattern
		}
		node := c.newNode(kind, n)
		for _, member := range named(n) {
			node.List = append(node.List, c.objectMember(member))
		}
		return c.tree.Add(node), true

	case "pair", "pair_pattern":
		node := c.newNode(jsast.ObjectProperty, n)
		node.A, node.Computed = c.propertyKey(n.ChildByFieldName("key"))
		node.B = c.field(n, "value")
		return c.tree.Add(node), true

	case "assignment_pattern":
		node := c.newNode(jsast.AssignmentPattern, n)
		node.A = c.field(n, "left")
		node.B = c.field(n, "right")
		return c.tree.Add(node), true

	case "rest_pattern", "rest_parameter":
		node := c.newNode(jsast.RestElement, n)
		if inner := named(n); len(inner) > 0 {
			node.A = c.convert(inner[0])
		}
		return c.tree.Add(node), true
	}
	return jsast.NoNode, false
}

// elements converts array items, recording a hole for every comma that
// follows another comma or the opening bracket.
func (c *converter) elements(n *sitter.Node) []jsast.NodeID {
	var list []jsast.NodeID
	expectElement := true
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		switch child.Type() {
		case "[", "]", "comment":
			continue
		case ",":
			if expectElement {
				list = append(list, jsast.NoNode)
			}
			expectElement = true
			continue
		}
		if id := c.convert(child); id != jsast.NoNode {
			list = append(list, id)
			expectElement = false
		}
	}
	return list
}

func (c *converter) objectMember(n *sitter.Node) jsast.NodeID {
	switch n.Type() {
	case "shorthand_property_identifier", "shorthand_property_identifier_pattern":
		key := c.convert(n)
		prop := c.newNode(jsast.ObjectProperty, n)
		prop.Shorthand = true
		prop.A, prop.B = key, key
		return c.tree.Add(prop)

	case "object_assignment_pattern":
		// {a = 1} binds a with a default
		key := c.field(n, "left")
		def := c.newNode(jsast.AssignmentPattern, n)
		def.A = key
		def.B = c.field(n, "right")
		prop := c.newNode(jsast.ObjectProperty, n)
		prop.Shorthand = true
		prop.A, prop.B = key, c.tree.Add(def)
		return c.tree.Add(prop)

	case "method_definition":
		return c.method(jsast.ObjectProperty, n)
	}
	return c.convert(n)
}
