package all_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curiousdev-oss/web-perf-toolkit/pkg/ast"
	. "github.com/curiousdev-oss/web-perf-toolkit/pkg/ast/asttest"
	"github.com/curiousdev-oss/web-perf-toolkit/pkg/rule"
	"github.com/curiousdev-oss/web-perf-toolkit/pkg/rule/ruletest"
	_ "github.com/curiousdev-oss/web-perf-toolkit/pkg/rules/all"
)

// zeroNodes holds an empty node for every kind. Listeners receive these
// directly, so a nil field dereference surfaces as a panic instead of being
// swallowed by the walker.
var zeroNodes = map[ast.Kind]func() ast.Node{
	ast.KindProgram:                  func() ast.Node { return &ast.Program{} },
	ast.KindImportDeclaration:        func() ast.Node { return &ast.ImportDeclaration{} },
	ast.KindImportDefaultSpecifier:   func() ast.Node { return &ast.ImportDefaultSpecifier{} },
	ast.KindImportNamespaceSpecifier: func() ast.Node { return &ast.ImportNamespaceSpecifier{} },
	ast.KindImportSpecifier:          func() ast.Node { return &ast.ImportSpecifier{} },
	ast.KindExportAllDeclaration:     func() ast.Node { return &ast.ExportAllDeclaration{} },
	ast.KindExportNamedDeclaration:   func() ast.Node { return &ast.ExportNamedDeclaration{} },
	ast.KindExportDefaultDeclaration: func() ast.Node { return &ast.ExportDefaultDeclaration{} },
	ast.KindVariableDeclaration:      func() ast.Node { return &ast.VariableDeclaration{} },
	ast.KindVariableDeclarator:       func() ast.Node { return &ast.VariableDeclarator{} },
	ast.KindFunctionDeclaration:      func() ast.Node { return &ast.FunctionDeclaration{} },
	ast.KindClassDeclaration:         func() ast.Node { return &ast.ClassDeclaration{} },
	ast.KindClassExpression:          func() ast.Node { return &ast.ClassExpression{} },
	ast.KindClassBody:                func() ast.Node { return &ast.ClassBody{} },
	ast.KindMethodDefinition:         func() ast.Node { return &ast.MethodDefinition{} },
	ast.KindPropertyDefinition:       func() ast.Node { return &ast.PropertyDefinition{} },
	ast.KindDecorator:                func() ast.Node { return &ast.Decorator{} },
	ast.KindBlockStatement:           func() ast.Node { return &ast.BlockStatement{} },
	ast.KindExpressionStatement:      func() ast.Node { return &ast.ExpressionStatement{} },
	ast.KindReturnStatement:          func() ast.Node { return &ast.ReturnStatement{} },
	ast.KindIfStatement:              func() ast.Node { return &ast.IfStatement{} },
	ast.KindForStatement:             func() ast.Node { return &ast.ForStatement{} },
	ast.KindForInStatement:           func() ast.Node { return &ast.ForInStatement{} },
	ast.KindForOfStatement:           func() ast.Node { return &ast.ForOfStatement{} },
	ast.KindWhileStatement:           func() ast.Node { return &ast.WhileStatement{} },
	ast.KindDoWhileStatement:         func() ast.Node { return &ast.DoWhileStatement{} },
	ast.KindIdentifier:               func() ast.Node { return &ast.Identifier{} },
	ast.KindThisExpression:           func() ast.Node { return &ast.ThisExpression{} },
	ast.KindStringLiteral:            func() ast.Node { return &ast.StringLiteral{} },
	ast.KindNumericLiteral:           func() ast.Node { return &ast.NumericLiteral{} },
	ast.KindBooleanLiteral:           func() ast.Node { return &ast.BooleanLiteral{} },
	ast.KindNullLiteral:              func() ast.Node { return &ast.NullLiteral{} },
	ast.KindRegExpLiteral:            func() ast.Node { return &ast.RegExpLiteral{} },
	ast.KindTemplateLiteral:          func() ast.Node { return &ast.TemplateLiteral{} },
	ast.KindTaggedTemplateExpression: func() ast.Node { return &ast.TaggedTemplateExpression{} },
	ast.KindArrayExpression:          func() ast.Node { return &ast.ArrayExpression{} },
	ast.KindObjectExpression:         func() ast.Node { return &ast.ObjectExpression{} },
	ast.KindProperty:                 func() ast.Node { return &ast.Property{} },
	ast.KindSpreadElement:            func() ast.Node { return &ast.SpreadElement{} },
	ast.KindFunctionExpression:       func() ast.Node { return &ast.FunctionExpression{} },
	ast.KindArrowFunctionExpression:  func() ast.Node { return &ast.ArrowFunctionExpression{} },
	ast.KindMemberExpression:         func() ast.Node { return &ast.MemberExpression{} },
	ast.KindCallExpression:           func() ast.Node { return &ast.CallExpression{} },
	ast.KindNewExpression:            func() ast.Node { return &ast.NewExpression{} },
	ast.KindImportExpression:         func() ast.Node { return &ast.ImportExpression{} },
	ast.KindUnaryExpression:          func() ast.Node { return &ast.UnaryExpression{} },
	ast.KindBinaryExpression:         func() ast.Node { return &ast.BinaryExpression{} },
	ast.KindAssignmentExpression:     func() ast.Node { return &ast.AssignmentExpression{} },
	ast.KindConditionalExpression:    func() ast.Node { return &ast.ConditionalExpression{} },
	ast.KindAwaitExpression:          func() ast.Node { return &ast.AwaitExpression{} },
	ast.KindJSXElement:               func() ast.Node { return &ast.JSXElement{} },
	ast.KindJSXOpeningElement:        func() ast.Node { return &ast.JSXOpeningElement{} },
	ast.KindJSXClosingElement:        func() ast.Node { return &ast.JSXClosingElement{} },
	ast.KindJSXAttribute:             func() ast.Node { return &ast.JSXAttribute{} },
	ast.KindJSXSpreadAttribute:       func() ast.Node { return &ast.JSXSpreadAttribute{} },
	ast.KindJSXIdentifier:            func() ast.Node { return &ast.JSXIdentifier{} },
	ast.KindJSXExpressionContainer:   func() ast.Node { return &ast.JSXExpressionContainer{} },
	ast.KindJSXText:                  func() ast.Node { return &ast.JSXText{} },
	ast.KindOther:                    func() ast.Node { return &ast.Other{} },
}

// partialNodes are half-built nodes of the shapes rules inspect most.
func partialNodes() []ast.Node {
	return []ast.Node{
		&ast.CallExpression{Callee: Ident(""), Arguments: []ast.Node{}},
		&ast.CallExpression{Callee: &ast.MemberExpression{}},
		&ast.CallExpression{Callee: Member(&ast.CallExpression{}, "then")},
		&ast.CallExpression{Callee: Path("window.addEventListener"), Arguments: []ast.Node{Str("scroll")}},
		&ast.CallExpression{Callee: Path("document.createElement")},
		&ast.NewExpression{Callee: Ident("Date")},
		&ast.MemberExpression{Object: &ast.MemberExpression{}},
		&ast.MemberExpression{Property: Ident("innerHTML")},
		&ast.TemplateLiteral{Expressions: []ast.Node{Ident("x")}},
		Template("<img"),
		Template("<div *ngFor"),
		Str("<link rel=stylesheet"),
		&ast.ImportDeclaration{Specifiers: []ast.Node{&ast.ImportNamespaceSpecifier{}, &ast.ImportDefaultSpecifier{}, &ast.ImportSpecifier{}}},
		&ast.ImportDeclaration{Source: Str("")},
		&ast.ImportExpression{Source: &ast.TemplateLiteral{}},
		&ast.ExportAllDeclaration{Source: Str("lodash")},
		&ast.JSXOpeningElement{Name: &ast.JSXIdentifier{Name: "img"}, Attributes: []ast.Node{&ast.JSXAttribute{}, &ast.JSXSpreadAttribute{}}},
		&ast.JSXOpeningElement{Name: &ast.JSXIdentifier{Name: "script"}},
		&ast.ClassDeclaration{Decorators: []*ast.Decorator{{}}},
		&ast.ClassDeclaration{Decorators: []*ast.Decorator{Decorator(&ast.CallExpression{Callee: Ident("Component")})}},
		&ast.ForInStatement{Right: Ident("obj")},
		&ast.ArrowFunctionExpression{Body: &ast.BlockStatement{}},
		&ast.BinaryExpression{Operator: "+"},
		&ast.BinaryExpression{Operator: "===", Left: &ast.UnaryExpression{Operator: "typeof"}},
		&ast.Property{Value: &ast.ObjectExpression{}},
	}
}

func TestZeroNodesCoverEveryKind(t *testing.T) {
	for _, k := range ast.Kinds() {
		build, ok := zeroNodes[k]
		require.True(t, ok, "no zero node for %s", k)
		assert.Equal(t, k, build().Kind())
	}
}

// TestListenersTolerateIncompleteNodes calls every listener of every
// registered rule straight from its hook, bypassing the walker's recover.
func TestListenersTolerateIncompleteNodes(t *testing.T) {
	rules := rule.GlobalRegistry().All()
	require.NotEmpty(t, rules)

	byKind := make(map[ast.Kind][]ast.Node)
	for k, build := range zeroNodes {
		byKind[k] = append(byKind[k], build())
	}
	for _, n := range partialNodes() {
		byKind[n.Kind()] = append(byKind[n.Kind()], n)
	}

	for _, r := range rules {
		t.Run(r.Name(), func(t *testing.T) {
			var diags []rule.Diagnostic
			ctx := rule.NewContext(File(), r, r.Severity(), nil, nil, func(d rule.Diagnostic) {
				diags = append(diags, d)
			})
			var hooks rule.Listeners
			require.NotPanics(t, func() { hooks = r.Create(ctx) })
			require.NotEmpty(t, hooks)

			for _, k := range ast.Kinds() {
				enter, exit := hooks[rule.Hook{Kind: k}], hooks[rule.Hook{Kind: k, Exit: true}]
				for i, n := range byKind[k] {
					assert.NotPanics(t, func() {
						if enter != nil {
							enter(n)
						}
						if exit != nil {
							exit(n)
						}
					}, "%s node #%d", k, i)
				}
			}
			for _, d := range diags {
				assert.Equal(t, r.Name(), d.Rule)
				assert.NotEmpty(t, d.Message)
			}
		})
	}
}

func TestListenersTolerateMissingFile(t *testing.T) {
	for _, r := range rule.GlobalRegistry().All() {
		ctx := rule.NewContext(nil, r, r.Severity(), nil, nil, nil)
		hooks := r.Create(ctx)
		for h, fn := range hooks {
			build, ok := zeroNodes[h.Kind]
			require.True(t, ok, "%s listens on %s", r.Name(), h)
			assert.NotPanics(t, func() { fn(build()) }, "%s on %s", r.Name(), h)
		}
	}
}

// sampleBody touches every configurable rule with its defaults.
func sampleBody() []ast.Node {
	return []ast.Node{
		Import("lodash", Namespace("_")),
		Import("moment", Default("moment")),
		Import("rxjs", Named("map")),
		ExportAll("lodash"),
		Expr(ImportCall("chart.js")),
		Expr(Call(Path("_.map"), Ident("xs"))),
	}
}

// wrongValues returns values of the wrong type for an option of type typ.
func wrongValues(typ rule.OptionType) []any {
	switch typ {
	case rule.TypeNumber:
		return []any{"100", true, []any{1}, math.NaN(), math.Inf(1), nil}
	case rule.TypeStringList:
		return []any{"lodash", 3, []any{1, "x"}, map[string]any{"a": "b"}, nil}
	case rule.TypeBool:
		return []any{"true", 1, []any{true}, nil}
	}
	return []any{struct{}{}}
}

func TestInvalidOptionsFallBackToDefaults(t *testing.T) {
	var checked int
	for _, r := range rule.GlobalRegistry().All() {
		c, ok := r.(rule.Configurable)
		if !ok {
			continue
		}
		checked++
		t.Run(r.Name(), func(t *testing.T) {
			want := ruletest.RunBody(r, nil, sampleBody()...)
			require.NotEmpty(t, want, "sample should trigger %s", r.Name())

			assert.Equal(t, want, ruletest.RunBody(r, rule.Options{}, sampleBody()...), "empty options")
			assert.Equal(t, want, ruletest.RunBody(r, c.Schema().Defaults(), sampleBody()...), "schema defaults")
			assert.Equal(t, want, ruletest.RunBody(r, rule.Options{"noSuchOption": 1}, sampleBody()...), "unknown key")

			for _, opt := range c.Schema() {
				for _, v := range wrongValues(opt.Type) {
					opts := rule.Options{opt.Key: v}
					got := ruletest.RunBody(r, opts, sampleBody()...)
					assert.Equal(t, want, got, fmt.Sprintf("%s=%#v", opt.Key, v))
				}
			}
		})
	}
	assert.Positive(t, checked)
}
