package inspect

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"
)

// NodesCSV renders the tree as one row per node in depth-first order.
func NodesCSV(res InspectResult, withHeader bool) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	if withHeader {
		_ = w.Write([]string{"depth", "kind", "line", "column", "name", "value", "flags"})
	}

	var walk func(n *NodeInfo, depth int)
	walk = func(n *NodeInfo, depth int) {
		value := n.Value
		if n.Number != nil {
			value = n.Number.String()
		}
		_ = w.Write([]string{
			strconv.Itoa(depth), n.Kind, strconv.Itoa(n.Line), strconv.Itoa(n.Column),
			n.Name, value, strings.Join(n.Flags, " "),
		})
		for _, child := range n.Children {
			walk(child, depth+1)
		}
	}
	if res.Root != nil {
		walk(res.Root, 0)
	}

	w.Flush()

	return buf.Bytes(), w.Error()
}
