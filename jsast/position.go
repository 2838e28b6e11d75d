package jsast

import "fmt"

// Position represents a position in the source code.
// Line and Column are 1-based (Column counts runes), Offset is a 0-based byte offset.
type Position struct {
	Line   int
	Column int
	Offset int
}

func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}
