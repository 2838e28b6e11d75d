package transform

import (
	"fmt"

	"github.com/monolite/setpath/jsast"
)

// Rewrite builds an array literal of segments and puts it in place of the
// accessor argument of match.Call. The call node, its callee and its other
// arguments are left as they are.
func Rewrite(kit *jsast.Toolkit, match CallMatch, segments []jsast.NodeID) (jsast.NodeID, error) {
	if match.Shape != ClassicalMatch && match.Shape != FluentLinkMatch {
		return jsast.NoNode, fmt.Errorf("cannot rewrite a %s call", match.Shape)
	}

	array := kit.ArrayExpression(segments)
	if err := kit.Tree().ReplaceArgument(match.Call, match.AccessorIndex, array); err != nil {
		return jsast.NoNode, fmt.Errorf("rewrite %s call: %w", match.Shape, err)
	}
	return array, nil
}
