package jsast

// Kind is the closed set of node shapes the tree can hold.
type Kind uint8

const (
	Invalid Kind = iota
	Program

	// Statements
	ExpressionStatement
	VariableDeclaration
	VariableDeclarator
	FunctionDeclaration
	ReturnStatement
	IfStatement
	BlockStatement
	EmptyStatement
	ForStatement
	ForInStatement
	ForOfStatement
	WhileStatement
	ThrowStatement
	TryStatement
	CatchClause
	BreakStatement
	ContinueStatement
	SwitchStatement
	SwitchCase
	DoWhileStatement
	LabeledStatement
	DebuggerStatement
	WithStatement

	// Classes
	ClassDeclaration
	ClassExpression
	ClassBody
	MethodDefinition
	PropertyDefinition
	StaticBlock

	// Modules
	ImportDeclaration
	ImportSpecifier
	ImportDefaultSpecifier
	ImportNamespaceSpecifier
	ExportNamedDeclaration
	ExportSpecifier
	ExportDefaultDeclaration
	ExportAllDeclaration

	// Expressions
	Identifier
	StringLiteral
	NumericLiteral
	BooleanLiteral
	NullLiteral
	RegExpLiteral
	TemplateLiteral
	TaggedTemplateExpression
	ThisExpression
	Super
	MetaProperty
	ArrayExpression
	ObjectExpression
	ObjectProperty
	SpreadElement
	ArrowFunctionExpression
	FunctionExpression
	CallExpression
	NewExpression
	MemberExpression
	UnaryExpression
	UpdateExpression
	AwaitExpression
	YieldExpression
	BinaryExpression
	LogicalExpression
	ConditionalExpression
	AssignmentExpression
	SequenceExpression

	// Patterns
	ObjectPattern
	ArrayPattern
	AssignmentPattern
	RestElement

	// Opaque holds syntax the tree does not model, such as JSX. Its source
	// text is kept as is and List holds the expressions found inside it.
	Opaque

	kindCount
)

var kindNames = [...]string{
	Invalid:                  "Invalid",
	Program:                  "Program",
	ExpressionStatement:      "ExpressionStatement",
	VariableDeclaration:      "VariableDeclaration",
	VariableDeclarator:       "VariableDeclarator",
	FunctionDeclaration:      "FunctionDeclaration",
	ReturnStatement:          "ReturnStatement",
	IfStatement:              "IfStatement",
	BlockStatement:           "BlockStatement",
	EmptyStatement:           "EmptyStatement",
	ForStatement:             "ForStatement",
	ForInStatement:           "ForInStatement",
	ForOfStatement:           "ForOfStatement",
	WhileStatement:           "WhileStatement",
	ThrowStatement:           "ThrowStatement",
	TryStatement:             "TryStatement",
	CatchClause:              "CatchClause",
	BreakStatement:           "BreakStatement",
	ContinueStatement:        "ContinueStatement",
	SwitchStatement:          "SwitchStatement",
	SwitchCase:               "SwitchCase",
	DoWhileStatement:         "DoWhileStatement",
	LabeledStatement:         "LabeledStatement",
	DebuggerStatement:        "DebuggerStatement",
	WithStatement:            "WithStatement",
	ClassDeclaration:         "ClassDeclaration",
	ClassExpression:          "ClassExpression",
	ClassBody:                "ClassBody",
	MethodDefinition:         "MethodDefinition",
	PropertyDefinition:       "PropertyDefinition",
	StaticBlock:              "StaticBlock",
	ImportDeclaration:        "ImportDeclaration",
	ImportSpecifier:          "ImportSpecifier",
	ImportDefaultSpecifier:   "ImportDefaultSpecifier",
	ImportNamespaceSpecifier: "ImportNamespaceSpecifier",
	ExportNamedDeclaration:   "ExportNamedDeclaration",
	ExportSpecifier:          "ExportSpecifier",
	ExportDefaultDeclaration: "ExportDefaultDeclaration",
	ExportAllDeclaration:     "ExportAllDeclaration",
	Identifier:               "Identifier",
	StringLiteral:            "StringLiteral",
	NumericLiteral:           "NumericLiteral",
	BooleanLiteral:           "BooleanLiteral",
	NullLiteral:              "NullLiteral",
	RegExpLiteral:            "RegExpLiteral",
	TemplateLiteral:          "TemplateLiteral",
	TaggedTemplateExpression: "TaggedTemplateExpression",
	ThisExpression:           "ThisExpression",
	Super:                    "Super",
	MetaProperty:             "MetaProperty",
	ArrayExpression:          "ArrayExpression",
	ObjectExpression:         "ObjectExpression",
	ObjectProperty:           "ObjectProperty",
	SpreadElement:            "SpreadElement",
	ArrowFunctionExpression:  "ArrowFunctionExpression",
	FunctionExpression:       "FunctionExpression",
	CallExpression:           "CallExpression",
	NewExpression:            "NewExpression",
	MemberExpression:         "MemberExpression",
	UnaryExpression:          "UnaryExpression",
	UpdateExpression:         "UpdateExpression",
	AwaitExpression:          "AwaitExpression",
	YieldExpression:          "YieldExpression",
	BinaryExpression:         "BinaryExpression",
	LogicalExpression:        "LogicalExpression",
	ConditionalExpression:    "ConditionalExpression",
	AssignmentExpression:     "AssignmentExpression",
	SequenceExpression:       "SequenceExpression",
	ObjectPattern:            "ObjectPattern",
	ArrayPattern:             "ArrayPattern",
	AssignmentPattern:        "AssignmentPattern",
	RestElement:              "RestElement",
	Opaque:                   "Opaque",
}

// String returns the ESTree-style type name of the kind.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Unknown"
}

// KindByName looks a kind up by its type name.
func KindByName(name string) (Kind, bool) {
	for k := Invalid + 1; k < kindCount; k++ {
		if kindNames[k] == name {
			return k, true
		}
	}
	return Invalid, false
}

// IsLiteral reports whether the kind is one of the literal node kinds.
func (k Kind) IsLiteral() bool {
	switch k {
	case StringLiteral, NumericLiteral, BooleanLiteral, NullLiteral, RegExpLiteral, TemplateLiteral:
		return true
	default:
		return false
	}
}

// IsFunction reports whether the kind introduces a function scope.
func (k Kind) IsFunction() bool {
	switch k {
	case FunctionDeclaration, FunctionExpression, ArrowFunctionExpression:
		return true
	default:
		return false
	}
}
