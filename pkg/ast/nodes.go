package ast

// Program is the root of every file.
type Program struct {
	Loc
	Body []Node
}

// Modules.

type ImportDeclaration struct {
	Loc
	Specifiers []Node
	Source     *StringLiteral
}

type ImportDefaultSpecifier struct {
	Loc
	Local *Identifier
}

type ImportNamespaceSpecifier struct {
	Loc
	Local *Identifier
}

type ImportSpecifier struct {
	Loc
	Imported *Identifier
	Local    *Identifier
}

type ExportAllDeclaration struct {
	Loc
	Exported *Identifier
	Source   *StringLiteral
}

type ExportNamedDeclaration struct {
	Loc
	Declaration Node
	Specifiers  []Node
	Source      *StringLiteral
}

type ExportDefaultDeclaration struct {
	Loc
	Declaration Node
}

// Declarations.

type VariableDeclaration struct {
	Loc
	DeclKind     string // var, let or const
	Declarations []*VariableDeclarator
}

type VariableDeclarator struct {
	Loc
	ID   Node
	Init Node
}

type FunctionDeclaration struct {
	Loc
	ID        *Identifier
	Params    []Node
	Body      *BlockStatement
	Async     bool
	Generator bool
}

type ClassDeclaration struct {
	Loc
	ID         *Identifier
	SuperClass Node
	Body       *ClassBody
	Decorators []*Decorator
}

type ClassExpression struct {
	Loc
	ID         *Identifier
	SuperClass Node
	Body       *ClassBody
	Decorators []*Decorator
}

type ClassBody struct {
	Loc
	Body []Node
}

// MethodDefinition is a class method. Value holds the function; Key is the
// method name.
type MethodDefinition struct {
	Loc
	Key        Node
	Value      *FunctionExpression
	MethodKind string // method, get, set or constructor
	Static     bool
	Computed   bool
	Decorators []*Decorator
}

// PropertyDefinition is a class field.
type PropertyDefinition struct {
	Loc
	Key        Node
	Value      Node
	Static     bool
	Computed   bool
	Decorators []*Decorator
}

type Decorator struct {
	Loc
	Expression Node
}

// Statements.

type BlockStatement struct {
	Loc
	Body []Node
}

type ExpressionStatement struct {
	Loc
	Expression Node
}

type ReturnStatement struct {
	Loc
	Argument Node
}

type IfStatement struct {
	Loc
	Test       Node
	Consequent Node
	Alternate  Node
}

type ForStatement struct {
	Loc
	Init   Node
	Test   Node
	Update Node
	Body   Node
}

type ForInStatement struct {
	Loc
	Left  Node
	Right Node
	Body  Node
}

type ForOfStatement struct {
	Loc
	Left  Node
	Right Node
	Body  Node
	Await bool
}

type WhileStatement struct {
	Loc
	Test Node
	Body Node
}

type DoWhileStatement struct {
	Loc
	Body Node
	Test Node
}

// Expressions.

type Identifier struct {
	Loc
	Name string
}

type ThisExpression struct {
	Loc
}

// StringLiteral holds the unquoted Value and the Raw source including quotes.
type StringLiteral struct {
	Loc
	Value string
	Raw   string
}

type NumericLiteral struct {
	Loc
	Value float64
	Raw   string
}

type BooleanLiteral struct {
	Loc
	Value bool
}

type NullLiteral struct {
	Loc
}

type RegExpLiteral struct {
	Loc
	Pattern string
	Flags   string
}

// TemplateLiteral is a backtick string. Quasis are the static chunks between
// substitutions; Raw is the full text between the backticks, substitutions
// included.
type TemplateLiteral struct {
	Loc
	Quasis      []string
	Expressions []Node
	Raw         string
}

type TaggedTemplateExpression struct {
	Loc
	Tag   Node
	Quasi *TemplateLiteral
}

type ArrayExpression struct {
	Loc
	Elements []Node
}

type ObjectExpression struct {
	Loc
	Properties []Node
}

// Property is a member of an object literal. Method is set for shorthand
// methods such as `render() {}`, whose Value is a *FunctionExpression.
type Property struct {
	Loc
	Key       Node
	Value     Node
	Method    bool
	Shorthand bool
	Computed  bool
}

type SpreadElement struct {
	Loc
	Argument Node
}

type FunctionExpression struct {
	Loc
	ID        *Identifier
	Params    []Node
	Body      *BlockStatement
	Async     bool
	Generator bool
}

// ArrowFunctionExpression has either a *BlockStatement or an expression body.
type ArrowFunctionExpression struct {
	Loc
	Params []Node
	Body   Node
	Async  bool
}

// MemberExpression is `Object.Property` or, when Computed, `Object[Property]`.
type MemberExpression struct {
	Loc
	Object   Node
	Property Node
	Computed bool
	Optional bool
}

type CallExpression struct {
	Loc
	Callee    Node
	Arguments []Node
	Optional  bool
}

type NewExpression struct {
	Loc
	Callee    Node
	Arguments []Node
}

// ImportExpression is a dynamic `import(source)`.
type ImportExpression struct {
	Loc
	Source Node
}

type UnaryExpression struct {
	Loc
	Operator string
	Argument Node
}

// BinaryExpression also represents logical operators.
type BinaryExpression struct {
	Loc
	Operator string
	Left     Node
	Right    Node
}

type AssignmentExpression struct {
	Loc
	Operator string
	Left     Node
	Right    Node
}

type ConditionalExpression struct {
	Loc
	Test       Node
	Consequent Node
	Alternate  Node
}

type AwaitExpression struct {
	Loc
	Argument Node
}

// JSX.

type JSXElement struct {
	Loc
	OpeningElement *JSXOpeningElement
	Children       []Node
	ClosingElement *JSXClosingElement
}

type JSXOpeningElement struct {
	Loc
	Name        *JSXIdentifier
	Attributes  []Node
	SelfClosing bool
}

type JSXClosingElement struct {
	Loc
	Name *JSXIdentifier
}

// JSXAttribute is `Name=Value`. Value is a *StringLiteral, a
// *JSXExpressionContainer or nil for bare attributes. Raw is the value as
// written in the source.
type JSXAttribute struct {
	Loc
	Name  *JSXIdentifier
	Value Node
	Raw   string
}

type JSXSpreadAttribute struct {
	Loc
	Argument Node
}

// JSXIdentifier names an element or attribute. Member and namespaced names
// are kept verbatim, e.g. "Foo.Bar" or "xlink:href".
type JSXIdentifier struct {
	Loc
	Name string
}

type JSXExpressionContainer struct {
	Loc
	Expression Node
}

type JSXText struct {
	Loc
	Value string
}

// Other is a construct without a dedicated node type. Its children are still
// traversed.
type Other struct {
	Loc
	Type     string
	Children []Node
}

func (*Program) Kind() Kind                  { return KindProgram }
func (*ImportDeclaration) Kind() Kind        { return KindImportDeclaration }
func (*ImportDefaultSpecifier) Kind() Kind   { return KindImportDefaultSpecifier }
func (*ImportNamespaceSpecifier) Kind() Kind { return KindImportNamespaceSpecifier }
func (*ImportSpecifier) Kind() Kind          { return KindImportSpecifier }
func (*ExportAllDeclaration) Kind() Kind     { return KindExportAllDeclaration }
func (*ExportNamedDeclaration) Kind() Kind   { return KindExportNamedDeclaration }
func (*ExportDefaultDeclaration) Kind() Kind { return KindExportDefaultDeclaration }
func (*VariableDeclaration) Kind() Kind      { return KindVariableDeclaration }
func (*VariableDeclarator) Kind() Kind       { return KindVariableDeclarator }
func (*FunctionDeclaration) Kind() Kind      { return KindFunctionDeclaration }
func (*ClassDeclaration) Kind() Kind         { return KindClassDeclaration }
func (*ClassExpression) Kind() Kind          { return KindClassExpression }
func (*ClassBody) Kind() Kind                { return KindClassBody }
func (*MethodDefinition) Kind() Kind         { return KindMethodDefinition }
func (*PropertyDefinition) Kind() Kind       { return KindPropertyDefinition }
func (*Decorator) Kind() Kind                { return KindDecorator }
func (*BlockStatement) Kind() Kind           { return KindBlockStatement }
func (*ExpressionStatement) Kind() Kind      { return KindExpressionStatement }
func (*ReturnStatement) Kind() Kind          { return KindReturnStatement }
func (*IfStatement) Kind() Kind              { return KindIfStatement }
func (*ForStatement) Kind() Kind             { return KindForStatement }
func (*ForInStatement) Kind() Kind           { return KindForInStatement }
func (*ForOfStatement) Kind() Kind           { return KindForOfStatement }
func (*WhileStatement) Kind() Kind           { return KindWhileStatement }
func (*DoWhileStatement) Kind() Kind         { return KindDoWhileStatement }
func (*Identifier) Kind() Kind               { return KindIdentifier }
func (*ThisExpression) Kind() Kind           { return KindThisExpression }
func (*StringLiteral) Kind() Kind            { return KindStringLiteral }
func (*NumericLiteral) Kind() Kind           { return KindNumericLiteral }
func (*BooleanLiteral) Kind() Kind           { return KindBooleanLiteral }
func (*NullLiteral) Kind() Kind              { return KindNullLiteral }
func (*RegExpLiteral) Kind() Kind            { return KindRegExpLiteral }
func (*TemplateLiteral) Kind() Kind          { return KindTemplateLiteral }
func (*TaggedTemplateExpression) Kind() Kind { return KindTaggedTemplateExpression }
func (*ArrayExpression) Kind() Kind          { return KindArrayExpression }
func (*ObjectExpression) Kind() Kind         { return KindObjectExpression }
func (*Property) Kind() Kind                 { return KindProperty }
func (*SpreadElement) Kind() Kind            { return KindSpreadElement }
func (*FunctionExpression) Kind() Kind       { return KindFunctionExpression }
func (*ArrowFunctionExpression) Kind() Kind  { return KindArrowFunctionExpression }
func (*MemberExpression) Kind() Kind         { return KindMemberExpression }
func (*CallExpression) Kind() Kind           { return KindCallExpression }
func (*NewExpression) Kind() Kind            { return KindNewExpression }
func (*ImportExpression) Kind() Kind         { return KindImportExpression }
func (*UnaryExpression) Kind() Kind          { return KindUnaryExpression }
func (*BinaryExpression) Kind() Kind         { return KindBinaryExpression }
func (*AssignmentExpression) Kind() Kind     { return KindAssignmentExpression }
func (*ConditionalExpression) Kind() Kind    { return KindConditionalExpression }
func (*AwaitExpression) Kind() Kind          { return KindAwaitExpression }
func (*JSXElement) Kind() Kind               { return KindJSXElement }
func (*JSXOpeningElement) Kind() Kind        { return KindJSXOpeningElement }
func (*JSXClosingElement) Kind() Kind        { return KindJSXClosingElement }
func (*JSXAttribute) Kind() Kind             { return KindJSXAttribute }
func (*JSXSpreadAttribute) Kind() Kind       { return KindJSXSpreadAttribute }
func (*JSXIdentifier) Kind() Kind            { return KindJSXIdentifier }
func (*JSXExpressionContainer) Kind() Kind   { return KindJSXExpressionContainer }
func (*JSXText) Kind() Kind                  { return KindJSXText }
func (*Other) Kind() Kind                    { return KindOther }
