package ast

// Kind tags the concrete type of a Node.
type Kind uint8

//go:generate go tool stringer -type Kind -trimprefix Kind
const (
	KindInvalid Kind = iota
	KindProgram

	KindImportDeclaration
	KindImportDefaultSpecifier
	KindImportNamespaceSpecifier
	KindImportSpecifier
	KindExportAllDeclaration
	KindExportNamedDeclaration
	KindExportDefaultDeclaration

	KindVariableDeclaration
	KindVariableDeclarator
	KindFunctionDeclaration
	KindClassDeclaration
	KindClassExpression
	KindClassBody
	KindMethodDefinition
	KindPropertyDefinition
	KindDecorator

	KindBlockStatement
	KindExpressionStatement
	KindReturnStatement
	KindIfStatement
	KindForStatement
	KindForInStatement
	KindForOfStatement
	KindWhileStatement
	KindDoWhileStatement

	KindIdentifier
	KindThisExpression
	KindStringLiteral
	KindNumericLiteral
	KindBooleanLiteral
	KindNullLiteral
	KindRegExpLiteral
	KindTemplateLiteral
	KindTaggedTemplateExpression
	KindArrayExpression
	KindObjectExpression
	KindProperty
	KindSpreadElement
	KindFunctionExpression
	KindArrowFunctionExpression
	KindMemberExpression
	KindCallExpression
	KindNewExpression
	KindImportExpression
	KindUnaryExpression
	KindBinaryExpression
	KindAssignmentExpression
	KindConditionalExpression
	KindAwaitExpression

	KindJSXElement
	KindJSXOpeningElement
	KindJSXClosingElement
	KindJSXAttribute
	KindJSXSpreadAttribute
	KindJSXIdentifier
	KindJSXExpressionContainer
	KindJSXText

	// KindOther covers grammar constructs without a dedicated node type.
	KindOther

	kindCount
)

// Kinds returns every valid kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount-1)
	for k := KindProgram; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// ParseKind resolves a kind from its String form.
func ParseKind(name string) (Kind, bool) {
	for k := KindProgram; k < kindCount; k++ {
		if k.String() == name {
			return k, true
		}
	}
	return KindInvalid, false
}

// IsLoop reports whether k is one of the loop constructs.
func (k Kind) IsLoop() bool {
	switch k {
	case KindForStatement, KindForInStatement, KindForOfStatement, KindWhileStatement, KindDoWhileStatement:
		return true
	}
	return false
}

// IsFunction reports whether k is a function-like construct.
func (k Kind) IsFunction() bool {
	switch k {
	case KindFunctionDeclaration, KindFunctionExpression, KindArrowFunctionExpression:
		return true
	}
	return false
}
