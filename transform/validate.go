package transform

import (
	"fmt"

	"github.com/monolite/setpath/jsast"
)

// ValidateAccessor checks that arrow is a pure accessor: exactly one plain
// identifier parameter, and a body made only of member accesses ending at
// that parameter. Optional chaining, calls, block bodies and any other node
// in the chain are rejected at the offending node.
func ValidateAccessor(tree *jsast.Tree, arrow jsast.NodeID) error {
	fn := tree.Node(arrow)
	if fn.Kind != jsast.ArrowFunctionExpression {
		return newValidationError(tree, AccessorNotSubpropertyOfRoot, arrow, "accessor is not an arrow function")
	}

	if len(fn.List) != 1 {
		return newValidationError(tree, InvalidAccessorArity, arrow, fmt.Sprintf("got %d parameters", len(fn.List)))
	}

	param := tree.Node(fn.List[0])
	if param.Kind != jsast.Identifier {
		return newValidationError(tree, InvalidAccessorRoot, fn.List[0], fmt.Sprintf("%s is not a plain identifier", param.Kind))
	}

	cur := fn.B
	for {
		n := tree.Node(cur)
		switch n.Kind {
		case jsast.MemberExpression:
			if n.Optional {
				return newValidationError(tree, AccessorNotSubpropertyOfRoot, cur, "optional chaining is not a path")
			}
			cur = n.A
			continue
		case jsast.Identifier:
			if n.Name == param.Name {
				return nil
			}
			return newValidationError(tree, AccessorNotSubpropertyOfRoot, cur, fmt.Sprintf("'%s' is not the accessor parameter '%s'", n.Name, param.Name))
		}
		return newValidationError(tree, AccessorNotSubpropertyOfRoot, cur, fmt.Sprintf("unexpected %s", n.Kind))
	}
}
