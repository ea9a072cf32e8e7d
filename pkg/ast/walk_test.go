package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curiousdev-oss/web-perf-toolkit/pkg/ast"
	. "github.com/curiousdev-oss/web-perf-toolkit/pkg/ast/asttest"
)

func TestWalkEnterExitOrder(t *testing.T) {
	prog := Program(
		For(Expr(CallPath("console.log", Ident("i")))),
	)

	var events []string
	ast.Walk(prog,
		func(n ast.Node) bool {
			events = append(events, "+"+n.Kind().String())
			return true
		},
		func(n ast.Node) {
			events = append(events, "-"+n.Kind().String())
		},
	)

	require.NotEmpty(t, events)
	assert.Equal(t, "+Program", events[0])
	assert.Equal(t, "-Program", events[len(events)-1])

	depth := 0
	for _, e := range events {
		if e[0] == '+' {
			depth++
		} else {
			depth--
		}
		require.GreaterOrEqual(t, depth, 0)
	}
	assert.Zero(t, depth, "every entered node must be exited")
}

func TestWalkSkipsChildrenButStillExits(t *testing.T) {
	prog := Program(Expr(Call(Ident("f"), Ident("x"))))

	var entered, exited []ast.Kind
	ast.Walk(prog,
		func(n ast.Node) bool {
			entered = append(entered, n.Kind())
			return n.Kind() != ast.KindCallExpression
		},
		func(n ast.Node) { exited = append(exited, n.Kind()) },
	)

	assert.Equal(t, []ast.Kind{ast.KindProgram, ast.KindExpressionStatement, ast.KindCallExpression}, entered)
	assert.Equal(t, []ast.Kind{ast.KindCallExpression, ast.KindExpressionStatement, ast.KindProgram}, exited)
}

func TestChildrenOmitsAbsentFields(t *testing.T) {
	tests := []struct {
		name string
		node ast.Node
		want int
	}{
		{"call without callee", &ast.CallExpression{}, 0},
		{"member without object", &ast.MemberExpression{Property: Ident("x")}, 1},
		{"for with nil parts", &ast.ForStatement{}, 0},
		{"typed nil child", &ast.ExpressionStatement{Expression: (*ast.CallExpression)(nil)}, 0},
		{"jsx element without opening", &ast.JSXElement{}, 0},
		{"method without value", &ast.MethodDefinition{Key: Ident("render")}, 1},
		{"arrow with expression body", ArrowExpr([]string{"x"}, Ident("x")), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, ast.Children(tt.node), tt.want)
		})
	}
}

func TestWalkNil(t *testing.T) {
	called := false
	ast.Walk(nil, func(ast.Node) bool { called = true; return true }, nil)
	ast.Walk((*ast.Program)(nil), func(ast.Node) bool { called = true; return true }, nil)
	assert.False(t, called)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "CallExpression", ast.KindCallExpression.String())
	assert.Equal(t, "JSXOpeningElement", ast.KindJSXOpeningElement.String())

	k, ok := ast.ParseKind("ForOfStatement")
	require.True(t, ok)
	assert.Equal(t, ast.KindForOfStatement, k)

	_, ok = ast.ParseKind("NotAKind")
	assert.False(t, ok)

	for _, k := range ast.Kinds() {
		assert.NotContains(t, k.String(), "Kind(", "kind %d has no name", k)
	}
}

func TestKindPredicates(t *testing.T) {
	for _, k := range []ast.Kind{ast.KindForStatement, ast.KindForInStatement, ast.KindForOfStatement, ast.KindWhileStatement, ast.KindDoWhileStatement} {
		assert.True(t, k.IsLoop(), k.String())
	}
	assert.False(t, ast.KindBlockStatement.IsLoop())
	assert.True(t, ast.KindArrowFunctionExpression.IsFunction())
	assert.False(t, ast.KindMethodDefinition.IsFunction())
}
