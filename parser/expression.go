package parser

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/monolite/setpath/jsast"
)

func (c *converter) expression(n *sitter.Node) (jsast.NodeID, bool) {
	switch n.Type() {
	case "identifier", "undefined", "property_identifier", "shorthand_property_identifier",
		"shorthand_property_identifier_pattern", "statement_identifier", "private_property_identifier",
		"import":
		node := c.newNode(jsast.Identifier, n)
		node.Name = c.text(n)
		return c.tree.Add(node), true

	case "this":
		return c.tree.Add(c.newNode(jsast.ThisExpression, n)), true
	case "super":
		return c.tree.Add(c.newNode(jsast.Super, n)), true
	case "meta_property":
		node := c.newNode(jsast.MetaProperty, n)
		node.Name = c.text(n)
		return c.tree.Add(node), true

	case "true", "false":
		node := c.newNode(jsast.BooleanLiteral, n)
		node.Raw = c.text(n)
		node.Value = node.Raw
		return c.tree.Add(node), true
	case "null":
		node := c.newNode(jsast.NullLiteral, n)
		node.Raw, node.Value = "null", "null"
		return c.tree.Add(node), true
	case "number":
		return c.numericLiteral(n), true
	case "string":
		return c.stringLiteral(n), true
	case "template_string":
		return c.templateLiteral(n), true
	case "regex":
		node := c.newNode(jsast.RegExpLiteral, n)
		node.Raw = c.text(n)
		if pattern := n.ChildByFieldName("pattern"); pattern != nil {
			node.Value = c.text(pattern)
		}
		if flags := n.ChildByFieldName("flags"); flags != nil {
			node.Name = c.text(flags)
		}
		return c.tree.Add(node), true

	case "parenthesized_expression":
		inner := named(n)
		if len(inner) == 0 {
			return c.opaque(n), true
		}
		id := c.convert(inner[0])
		c.tree.Update(id, func(node *jsast.Node) { node.Parenthesized = true })
		return id, true

	case "arrow_function":
		return c.arrow(n), true
	case "function", "function_expression", "generator_function":
		return c.function(jsast.FunctionExpression, n), true
	case "class":
		return c.class(jsast.ClassExpression, n), true

	case "call_expression":
		return c.call(n), true

	case "new_expression":
		node := c.newNode(jsast.NewExpression, n)
		node.A = c.field(n, "constructor")
		if args := n.ChildByFieldName("arguments"); args != nil {
			node.List = c.convertAll(named(args))
		}
		return c.tree.Add(node), true

	case "member_expression":
		node := c.newNode(jsast.MemberExpression, n)
		node.A = c.field(n, "object")
		node.B = c.field(n, "property")
		node.Optional = optionalChain(n)
		return c.tree.Add(node), true

	case "subscript_expression":
		node := c.newNode(jsast.MemberExpression, n)
		node.A = c.field(n, "object")
		node.B = c.field(n, "index")
		node.Computed = true
		node.Optional = optionalChain(n)
		return c.tree.Add(node), true

	case "sequence_expression":
		node := c.newNode(jsast.SequenceExpression, n)
		node.List = c.sequence(n, nil)
		return c.tree.Add(node), true

	case "assignment_expression", "augmented_assignment_expression":
		node := c.newNode(jsast.AssignmentExpression, n)
		node.Name = "="
		if op := n.ChildByFieldName("operator"); op != nil {
			node.Name = c.text(op)
		}
		node.A = c.field(n, "left")
		node.B = c.field(n, "right")
		return c.tree.Add(node), true

	case "binary_expression":
		op := c.text(n.ChildByFieldName("operator"))
		kind := jsast.BinaryExpression
		switch op {
		case "&&", "||", "??":
			kind = jsast.LogicalExpression
		}
		node := c.newNode(kind, n)
		node.Name = op
		node.A = c.field(n, "left")
		node.B = c.field(n, "right")
		return c.tree.Add(node), true

	case "unary_expression":
		node := c.newNode(jsast.UnaryExpression, n)
		node.Name = c.text(n.ChildByFieldName("operator"))
		node.A = c.field(n, "argument")
		node.Prefix = true
		return c.tree.Add(node), true

	case "update_expression":
		node := c.newNode(jsast.UpdateExpression, n)
		node.Name = c.text(n.ChildByFieldName("operator"))
		node.A = c.field(n, "argument")
		node.Prefix = n.ChildCount() > 0 && !n.Child(0).IsNamed()
		return c.tree.Add(node), true

	case "ternary_expression":
		node := c.newNode(jsast.ConditionalExpression, n)
		node.A = c.field(n, "condition")
		node.B = c.field(n, "consequence")
		node.C = c.field(n, "alternative")
		return c.tree.Add(node), true

	case "await_expression", "spread_element":
		kind := jsast.AwaitExpression
		if n.Type() == "spread_element" {
			kind = jsast.SpreadElement
		}
		node := c.newNode(kind, n)
		if inner := named(n); len(inner) > 0 {
			node.A = c.convert(inner[0])
		}
		return c.tree.Add(node), true

	case "yield_expression":
		node := c.newNode(jsast.YieldExpression, n)
		node.Name = "yield"
		if hasToken(n, "*") {
			node.Name = "yield*"
		}
		if inner := named(n); len(inner) > 0 {
			node.A = c.convert(inner[0])
		}
		return c.tree.Add(node), true
	}
	return jsast.NoNode, false
}

// optionalChain reports a ?. between the object or callee and what follows.
func optionalChain(n *sitter.Node) bool {
	return hasChild(n, "optional_chain") || hasToken(n, "?.")
}

func (c *converter) call(n *sitter.Node) jsast.NodeID {
	args := n.ChildByFieldName("arguments")
	if args != nil && args.Type() == "template_string" {
		node := c.newNode(jsast.TaggedTemplateExpression, n)
		node.A = c.field(n, "function")
		node.B = c.convert(args)
		return c.tree.Add(node)
	}

	node := c.newNode(jsast.CallExpression, n)
	node.A = c.field(n, "function")
	node.Optional = optionalChain(n)
	if args != nil {
		node.List = c.convertAll(named(args))
	}
	return c.tree.Add(node)
}

func (c *converter) arrow(n *sitter.Node) jsast.NodeID {
	node := c.newNode(jsast.ArrowFunctionExpression, n)
	node.Async = hasToken(n, "async")
	if param := n.ChildByFieldName("parameter"); param != nil {
		node.List = []jsast.NodeID{c.convert(param)}
	} else {
		node.List = c.params(n.ChildByFieldName("parameters"))
	}

	body := n.ChildByFieldName("body")
	node.B = c.convert(body)
	node.Expression = body != nil && body.Type() != "statement_block"
	return c.tree.Add(node)
}

// sequence flattens nested comma expressions into one list.
func (c *converter) sequence(n *sitter.Node, list []jsast.NodeID) []jsast.NodeID {
	for _, child := range named(n) {
		if child.Type() == "sequence_expression" {
			list = c.sequence(child, list)
			continue
		}
		list = append(list, c.convert(child))
	}
	return list
}

func (c *converter) numericLiteral(n *sitter.Node) jsast.NodeID {
	node := c.newNode(jsast.NumericLiteral, n)
	node.Raw = c.text(n)
	value, err := numericValue(node.Raw)
	if err != nil {
		c.errorAt(node.Start, node.Raw, ErrInvalidNumber, "%s", node.Raw)
	}
	node.Value = value.String()
	return c.tree.Add(node)
}

func (c *converter) stringLiteral(n *sitter.Node) jsast.NodeID {
	node := c.newNode(jsast.StringLiteral, n)
	node.Raw = c.text(n)
	value, err := jsast.UnquoteString(node.Raw)
	if err != nil {
		c.errorAt(node.Start, node.Raw, ErrInvalidString, "%v", err)
	}
	node.Value = value
	return c.tree.Add(node)
}

// templateLiteral keeps the template text and converts each ${} substitution.
func (c *converter) templateLiteral(n *sitter.Node) jsast.NodeID {
	node := c.newNode(jsast.TemplateLiteral, n)
	node.Raw = c.text(n)
	if len(node.Raw) >= 2 {
		node.Value = node.Raw[1 : len(node.Raw)-1]
	}
	for _, child := range named(n) {
		if child.Type() != "template_substitution" {
			continue
		}
		if inner := named(child); len(inner) > 0 {
			node.List = append(node.List, c.convert(inner[0]))
		}
	}
	return c.tree.Add(node)
}
