package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/curiousdev-oss/web-perf-toolkit/pkg/ast"
	. "github.com/curiousdev-oss/web-perf-toolkit/pkg/ast/asttest"
)

func TestMemberNames(t *testing.T) {
	obj, prop, ok := ast.MemberNames(Path("document.querySelector"))
	assert.True(t, ok)
	assert.Equal(t, "document", obj)
	assert.Equal(t, "querySelector", prop)

	obj, prop, ok = ast.MemberNames(Path("this.sub"))
	assert.True(t, ok)
	assert.Equal(t, "this", obj)
	assert.Equal(t, "sub", prop)

	_, _, ok = ast.MemberNames(Path("a.b.c"))
	assert.False(t, ok, "object is itself a member expression")

	_, prop, ok = ast.MemberNames(Index(Ident("localStorage"), Str("token")))
	assert.True(t, ok)
	assert.Equal(t, "token", prop)

	_, _, ok = ast.MemberNames(Index(Ident("obj"), Ident("key")))
	assert.False(t, ok, "computed identifier keys are not static")

	_, _, ok = ast.MemberNames(&ast.MemberExpression{})
	assert.False(t, ok)
}

func TestCalleeHelpers(t *testing.T) {
	call := Call(Ident("setInterval"), Ident("tick"), Num(100))
	assert.Equal(t, "setInterval", ast.CalleeName(call))
	assert.Equal(t, "XMLHttpRequest", ast.CalleeName(New(Ident("XMLHttpRequest"))))
	assert.Empty(t, ast.CalleeName(CallPath("a.b")))
	assert.Empty(t, ast.CalleeName(&ast.CallExpression{}))

	m, ok := ast.CalleeMember(CallPath("obs.subscribe"))
	assert.True(t, ok)
	assert.Equal(t, "subscribe", ast.PropertyName(m))

	assert.Equal(t, Num(100).Value, ast.Arg(call, 1).(*ast.NumericLiteral).Value)
	assert.Nil(t, ast.Arg(call, 5))
	assert.Nil(t, ast.Arg(call, -1))
}

func TestLiteralValues(t *testing.T) {
	v, ok := ast.NumberValue(Neg(1))
	assert.True(t, ok)
	assert.Equal(t, -1.0, v)

	_, ok = ast.NumberValue(Str("1"))
	assert.False(t, ok)

	s, ok := ast.StringValue(Template("plain"))
	assert.True(t, ok)
	assert.Equal(t, "plain", s)

	_, ok = ast.StringValue(&ast.TemplateLiteral{Quasis: []string{"a", "b"}, Expressions: []ast.Node{Ident("x")}})
	assert.False(t, ok)
}

func TestJSXHelpers(t *testing.T) {
	el := JSX("img", Attr("src", "a.png"), BareAttr("async"), AttrExpr("alt", Str("logo"), `"logo"`))
	open := el.OpeningElement

	assert.Equal(t, "img", ast.JSXElementName(open))
	assert.Equal(t, map[string]bool{"src": true, "async": true, "alt": true}, ast.JSXAttrNames(open))

	attr, ok := ast.JSXAttr(open, "alt")
	assert.True(t, ok)
	v, ok := ast.JSXAttrString(attr)
	assert.True(t, ok)
	assert.Equal(t, "logo", v)

	_, ok = ast.JSXAttr(open, "width")
	assert.False(t, ok)
	assert.Empty(t, ast.JSXElementName(nil))
	assert.Empty(t, ast.JSXAttrNames(&ast.JSXOpeningElement{}))
}

func TestObjectHelpers(t *testing.T) {
	obj := Obj(Prop("selector", Str("app")), Prop("changeDetection", Path("ChangeDetectionStrategy.OnPush")))
	assert.Equal(t, []string{"selector", "changeDetection"}, ast.ObjectKeys(obj))

	p, ok := ast.FindProperty(obj, "changeDetection")
	assert.True(t, ok)
	assert.Equal(t, ast.KindMemberExpression, p.Value.Kind())

	_, ok = ast.FindProperty(nil, "x")
	assert.False(t, ok)
}

func TestFileText(t *testing.T) {
	src := []byte("let a = 1;")
	id := &ast.Identifier{Name: "a"}
	id.SetSpan(ast.Span{Start: ast.Pos{Offset: 4, Line: 1, Column: 5}, End: ast.Pos{Offset: 5, Line: 1, Column: 6}})
	f := &ast.File{Source: src}

	assert.Equal(t, "a", f.Text(id))
	assert.Empty(t, f.Text(Ident("zero span")))
	assert.Empty(t, (*ast.File)(nil).Text(id))
}
