package engine

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curiousdev-oss/web-perf-toolkit/pkg/ast"
	"github.com/curiousdev-oss/web-perf-toolkit/pkg/ast/asttest"
	"github.com/curiousdev-oss/web-perf-toolkit/pkg/rule"
)

type funcRule struct {
	name   string
	create func(ctx *rule.Context) rule.Listeners
}

func (p funcRule) Name() string                            { return p.name }
func (funcRule) Category() rule.Category                   { return rule.CategoryRuntime }
func (funcRule) Severity() rule.Severity                   { return rule.SeverityWarning }
func (funcRule) Description() string                       { return "test rule" }
func (p funcRule) Create(ctx *rule.Context) rule.Listeners { return p.create(ctx) }

func active(rules ...rule.Rule) []ActiveRule {
	out := make([]ActiveRule, 0, len(rules))
	for _, r := range rules {
		out = append(out, ActiveRule{Rule: r, Severity: r.Severity()})
	}
	return out
}

func TestWalkerEnterExitOrder(t *testing.T) {
	var trace []string
	p := funcRule{name: "trace", create: func(ctx *rule.Context) rule.Listeners {
		return rule.Listeners{}.Track(
			func(n ast.Node) { trace = append(trace, "enter "+n.Kind().String()) },
			func(n ast.Node) { trace = append(trace, "exit "+n.Kind().String()) },
			ast.KindProgram, ast.KindCallExpression, ast.KindIdentifier,
		)
	}}

	NewWalker(active(p), nil).Walk(asttest.File(asttest.Expr(asttest.Call(asttest.Ident("f"), asttest.Ident("x")))))
	assert.Equal(t, []string{
		"enter Program",
		"enter CallExpression",
		"enter Identifier", "exit Identifier",
		"enter Identifier", "exit Identifier",
		"exit CallExpression",
		"exit Program",
	}, trace)
}

func TestWalkerAncestors(t *testing.T) {
	var parents, depths []string
	p := funcRule{name: "parents", create: func(ctx *rule.Context) rule.Listeners {
		return rule.Listeners{}.On(func(n ast.Node) {
			parents = append(parents, ctx.Parent().Kind().String())
			depths = append(depths, ctx.Ancestors()[len(ctx.Ancestors())-1].Kind().String())
		}, ast.KindIdentifier)
	}}

	NewWalker(active(p), nil).Walk(asttest.File(asttest.Expr(asttest.Call(asttest.Ident("f")))))
	assert.Equal(t, []string{"CallExpression"}, parents)
	assert.Equal(t, []string{"Program"}, depths)
}

func TestWalkerIsolatesPanickingRule(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	exits := 0
	broken := funcRule{name: "broken", create: func(ctx *rule.Context) rule.Listeners {
		return rule.Listeners{}.
			On(func(n ast.Node) { panic("boom") }, ast.KindCallExpression).
			OnExit(func(n ast.Node) { exits++ }, ast.KindProgram)
	}}
	healthy := funcRule{name: "healthy", create: func(ctx *rule.Context) rule.Listeners {
		return rule.Listeners{}.On(func(n ast.Node) { ctx.Report(n, "call") }, ast.KindCallExpression)
	}}
	failing := funcRule{name: "failing", create: func(ctx *rule.Context) rule.Listeners {
		panic("setup")
	}}

	diags := NewWalker(active(broken, failing, healthy), logger).Walk(asttest.File(
		asttest.Expr(asttest.Call(asttest.Ident("a"))),
		asttest.Expr(asttest.Call(asttest.Ident("b"))),
	))

	require.Len(t, diags, 2)
	for _, d := range diags {
		assert.Equal(t, "healthy", d.Rule)
	}
	assert.Zero(t, exits)
	assert.Contains(t, logs.String(), "rule panicked")
	assert.Contains(t, logs.String(), "rule setup failed")
}

func TestWalkerFreshStatePerFile(t *testing.T) {
	p := funcRule{name: "count", create: func(ctx *rule.Context) rule.Listeners {
		calls := 0
		return rule.Listeners{}.
			On(func(ast.Node) { calls++ }, ast.KindCallExpression).
			OnExit(func(n ast.Node) { ctx.Reportf(n, "%d calls", calls) }, ast.KindProgram)
	}}
	w := NewWalker(active(p), nil)

	first := w.Walk(asttest.File(asttest.Expr(asttest.Call(asttest.Ident("a"))), asttest.Expr(asttest.Call(asttest.Ident("b")))))
	second := w.Walk(asttest.File(asttest.Expr(asttest.Call(asttest.Ident("c")))))
	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, "2 calls", first[0].Message)
	assert.Equal(t, "1 calls", second[0].Message)
}

func TestWalkerNilFile(t *testing.T) {
	w := NewWalker(nil, nil)
	assert.Nil(t, w.Walk(nil))
	assert.Nil(t, w.Walk(&ast.File{}))
}
