// Package asttest builds syntax trees by hand for tests.
package asttest

import (
	"strconv"
	"strings"

	"github.com/curiousdev-oss/web-perf-toolkit/pkg/ast"
)

// File wraps statements into a parsed file named test.js.
func File(body ...ast.Node) *ast.File {
	return &ast.File{Name: "test.js", Program: Program(body...)}
}

func Program(body ...ast.Node) *ast.Program {
	return &ast.Program{Body: body}
}

func Ident(name string) *ast.Identifier {
	return &ast.Identifier{Name: name}
}

func Str(v string) *ast.StringLiteral {
	return &ast.StringLiteral{Value: v, Raw: strconv.Quote(v)}
}

func Num(v float64) *ast.NumericLiteral {
	return &ast.NumericLiteral{Value: v, Raw: strconv.FormatFloat(v, 'f', -1, 64)}
}

func Neg(v float64) *ast.UnaryExpression {
	return &ast.UnaryExpression{Operator: "-", Argument: Num(v)}
}

func Bool(v bool) *ast.BooleanLiteral {
	return &ast.BooleanLiteral{Value: v}
}

func This() *ast.ThisExpression {
	return &ast.ThisExpression{}
}

// Template builds a template literal without substitutions.
func Template(raw string) *ast.TemplateLiteral {
	return &ast.TemplateLiteral{Quasis: []string{raw}, Raw: raw}
}

// Path builds a member chain from a dotted path: "a.b.c" is (a.b).c.
// A single segment yields an identifier. A leading "this" segment becomes a
// this expression.
func Path(dotted string) ast.Node {
	parts := strings.Split(dotted, ".")
	var n ast.Node
	if parts[0] == "this" {
		n = This()
	} else {
		n = Ident(parts[0])
	}
	for _, p := range parts[1:] {
		n = Member(n, p)
	}
	return n
}

func Member(obj ast.Node, prop string) *ast.MemberExpression {
	return &ast.MemberExpression{Object: obj, Property: Ident(prop)}
}

func Index(obj, prop ast.Node) *ast.MemberExpression {
	return &ast.MemberExpression{Object: obj, Property: prop, Computed: true}
}

func Call(callee ast.Node, args ...ast.Node) *ast.CallExpression {
	return &ast.CallExpression{Callee: callee, Arguments: args}
}

// CallPath calls the member chain named by dotted.
func CallPath(dotted string, args ...ast.Node) *ast.CallExpression {
	return Call(Path(dotted), args...)
}

func New(callee ast.Node, args ...ast.Node) *ast.NewExpression {
	return &ast.NewExpression{Callee: callee, Arguments: args}
}

func ImportCall(source string) *ast.ImportExpression {
	return &ast.ImportExpression{Source: Str(source)}
}

func Bin(op string, left, right ast.Node) *ast.BinaryExpression {
	return &ast.BinaryExpression{Operator: op, Left: left, Right: right}
}

func Unary(op string, arg ast.Node) *ast.UnaryExpression {
	return &ast.UnaryExpression{Operator: op, Argument: arg}
}

func Assign(left, right ast.Node) *ast.AssignmentExpression {
	return &ast.AssignmentExpression{Operator: "=", Left: left, Right: right}
}

func Expr(e ast.Node) *ast.ExpressionStatement {
	return &ast.ExpressionStatement{Expression: e}
}

func Return(e ast.Node) *ast.ReturnStatement {
	return &ast.ReturnStatement{Argument: e}
}

// Const declares `const name = init`.
func Const(name string, init ast.Node) *ast.VariableDeclaration {
	return &ast.VariableDeclaration{
		DeclKind:     "const",
		Declarations: []*ast.VariableDeclarator{{ID: Ident(name), Init: init}},
	}
}

func Block(body ...ast.Node) *ast.BlockStatement {
	return &ast.BlockStatement{Body: body}
}

func For(body ...ast.Node) *ast.ForStatement {
	return &ast.ForStatement{
		Init:   Const("i", Num(0)),
		Test:   Bin("<", Ident("i"), Num(10)),
		Update: &ast.Other{Type: "update_expression", Children: []ast.Node{Ident("i")}},
		Body:   Block(body...),
	}
}

func ForIn(left string, right ast.Node, body ...ast.Node) *ast.ForInStatement {
	return &ast.ForInStatement{Left: Const(left, nil), Right: right, Body: Block(body...)}
}

func ForOf(left string, right ast.Node, body ...ast.Node) *ast.ForOfStatement {
	return &ast.ForOfStatement{Left: Const(left, nil), Right: right, Body: Block(body...)}
}

func While(body ...ast.Node) *ast.WhileStatement {
	return &ast.WhileStatement{Test: Bool(true), Body: Block(body...)}
}

func DoWhile(body ...ast.Node) *ast.DoWhileStatement {
	return &ast.DoWhileStatement{Body: Block(body...), Test: Bool(false)}
}

// Func declares a named function.
func Func(name string, body ...ast.Node) *ast.FunctionDeclaration {
	return &ast.FunctionDeclaration{ID: Ident(name), Body: Block(body...)}
}

// FuncExpr is a function expression; name may be empty.
func FuncExpr(name string, body ...ast.Node) *ast.FunctionExpression {
	f := &ast.FunctionExpression{Body: Block(body...)}
	if name != "" {
		f.ID = Ident(name)
	}
	return f
}

// Arrow is an arrow function with a block body.
func Arrow(body ...ast.Node) *ast.ArrowFunctionExpression {
	return &ast.ArrowFunctionExpression{Body: Block(body...)}
}

// ArrowExpr is a concise arrow function `x => expr`.
func ArrowExpr(params []string, expr ast.Node) *ast.ArrowFunctionExpression {
	a := &ast.ArrowFunctionExpression{Body: expr}
	for _, p := range params {
		a.Params = append(a.Params, Ident(p))
	}
	return a
}

func Obj(props ...ast.Node) *ast.ObjectExpression {
	return &ast.ObjectExpression{Properties: props}
}

func Prop(key string, value ast.Node) *ast.Property {
	return &ast.Property{Key: Ident(key), Value: value}
}

// ObjMethod is a shorthand object method `name() { ... }`.
func ObjMethod(name string, body ...ast.Node) *ast.Property {
	return &ast.Property{Key: Ident(name), Value: FuncExpr("", body...), Method: true}
}

func Array(elems ...ast.Node) *ast.ArrayExpression {
	return &ast.ArrayExpression{Elements: elems}
}

// Class declares a class. Members are method or property definitions.
func Class(name string, decorators []*ast.Decorator, members ...ast.Node) *ast.ClassDeclaration {
	return &ast.ClassDeclaration{ID: Ident(name), Decorators: decorators, Body: &ast.ClassBody{Body: members}}
}

func Decorator(expr ast.Node) *ast.Decorator {
	return &ast.Decorator{Expression: expr}
}

func Method(name string, body ...ast.Node) *ast.MethodDefinition {
	return &ast.MethodDefinition{Key: Ident(name), Value: FuncExpr("", body...), MethodKind: "method"}
}

func Field(name string, value ast.Node) *ast.PropertyDefinition {
	return &ast.PropertyDefinition{Key: Ident(name), Value: value}
}

// Import builds `import <specifiers> from "source"`.
func Import(source string, specifiers ...ast.Node) *ast.ImportDeclaration {
	return &ast.ImportDeclaration{Source: Str(source), Specifiers: specifiers}
}

func Default(local string) *ast.ImportDefaultSpecifier {
	return &ast.ImportDefaultSpecifier{Local: Ident(local)}
}

func Namespace(local string) *ast.ImportNamespaceSpecifier {
	return &ast.ImportNamespaceSpecifier{Local: Ident(local)}
}

func Named(name string) *ast.ImportSpecifier {
	id := Ident(name)
	return &ast.ImportSpecifier{Imported: id, Local: id}
}

func ExportAll(source string) *ast.ExportAllDeclaration {
	return &ast.ExportAllDeclaration{Source: Str(source)}
}

// JSX builds a self-closing element such as <img src="a.png" />.
func JSX(tag string, attrs ...ast.Node) *ast.JSXElement {
	return &ast.JSXElement{OpeningElement: &ast.JSXOpeningElement{
		Name:        &ast.JSXIdentifier{Name: tag},
		Attributes:  attrs,
		SelfClosing: true,
	}}
}

// Attr is a string-valued JSX attribute.
func Attr(name, value string) *ast.JSXAttribute {
	return &ast.JSXAttribute{Name: &ast.JSXIdentifier{Name: name}, Value: Str(value), Raw: strconv.Quote(value)}
}

// AttrExpr is an attribute with an expression container; raw is the source
// text of the braces' content.
func AttrExpr(name string, expr ast.Node, raw string) *ast.JSXAttribute {
	return &ast.JSXAttribute{
		Name:  &ast.JSXIdentifier{Name: name},
		Value: &ast.JSXExpressionContainer{Expression: expr},
		Raw:   "{" + raw + "}",
	}
}

// BareAttr is an attribute without a value, e.g. `async`.
func BareAttr(name string) *ast.JSXAttribute {
	return &ast.JSXAttribute{Name: &ast.JSXIdentifier{Name: name}}
}
