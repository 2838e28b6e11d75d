package jsast

var assignmentOperators = map[string]bool{
	"=": true, "+=": true, "-=": true, "*=": true, "/=": true, "%=": true, "**=": true,
	"<<=": true, ">>=": true, ">>>=": true, "&=": true, "|=": true, "^=": true,
	"&&=": true, "||=": true, "??=": true,
}

var binaryPrecedence = map[string]int{
	"??": 1,
	"||": 2,
	"&&": 3,
	"|":  4,
	"^":  5,
	"&":  6,
	"==": 7, "!=": 7, "===": 7, "!==": 7,
	"<": 8, ">": 8, "<=": 8, ">=": 8, "instanceof": 8, "in": 8,
	"<<": 9, ">>": 9, ">>>": 9,
	"+": 10, "-": 10,
	"*": 11, "/": 11, "%": 11,
	"**": 12,
}

// MaxBinaryPrecedence is the precedence of **, the tightest binary operator.
const MaxBinaryPrecedence = 12

// IsAssignmentOperator reports whether op is = or a compound assignment.
func IsAssignmentOperator(op string) bool {
	return assignmentOperators[op]
}

// BinaryPrecedence returns the binding power of a binary or logical
// operator, from 1 for ?? to 12 for **, or 0 when op is not one.
func BinaryPrecedence(op string) int {
	return binaryPrecedence[op]
}
