package inspect

import (
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestNodesCSV(t *testing.T) {
	res, err := Inspect(strings.NewReader("a?.b(1)"), InspectOptions{})
	assert.NoError(t, err)

	csvb, err := NodesCSV(res, true)
	assert.NoError(t, err)

	expected := strings.Join([]string{
		"depth,kind,line,column,name,value,flags",
		"0,Program,1,1,,,",
		"1,ExpressionStatement,1,1,,,",
		"2,CallExpression,1,1,,,",
		"3,MemberExpression,1,1,,,optional",
		"4,Identifier,1,1,a,,",
		"4,Identifier,1,4,b,,",
		"3,NumericLiteral,1,6,,1,",
		"",
	}, "\n")
	assert.Equal(t, expected, string(csvb))

	csvb, err = NodesCSV(InspectResult{}, false)
	assert.NoError(t, err)
	assert.Equal(t, "", string(csvb))
}
