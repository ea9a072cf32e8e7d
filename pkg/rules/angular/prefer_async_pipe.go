package angular

import (
	"github.com/curiousdev-oss/web-perf-toolkit/pkg/ast"
	"github.com/curiousdev-oss/web-perf-toolkit/pkg/rule"
)

type PreferAsyncPipe struct{}

func (PreferAsyncPipe) Name() string            { return "angular-prefer-async-pipe" }
func (PreferAsyncPipe) Category() rule.Category { return rule.CategoryAngular }
func (PreferAsyncPipe) Severity() rule.Severity { return rule.SeverityWarning }
func (PreferAsyncPipe) Description() string {
	return "Prefer Angular async pipe over manual subscribe() in components to avoid " +
		"leaks and extra change detection"
}

func (PreferAsyncPipe) Create(ctx *rule.Context) rule.Listeners {
	// One entry per enclosing class; a nested plain class does not inherit
	// the component's status.
	var classes []bool
	l := rule.Listeners{}

	l.Track(func(n ast.Node) {
		classes = append(classes, isAngularClass(n))
	}, func(ast.Node) {
		if len(classes) > 0 {
			classes = classes[:len(classes)-1]
		}
	}, ast.KindClassDeclaration, ast.KindClassExpression)

	l.On(func(n ast.Node) {
		if len(classes) == 0 || !classes[len(classes)-1] {
			return
		}
		m, ok := n.(*ast.MemberExpression)
		if !ok || ast.PropertyName(m) != "subscribe" {
			return
		}
		if call, ok := ctx.Parent().(*ast.CallExpression); ok && call.Callee == ast.Node(m) {
			ctx.Report(call, "Prefer using the Angular async pipe in templates instead of subscribe() in components")
		}
	}, ast.KindMemberExpression)

	return l
}

func init() {
	rule.Register(PreferAsyncPipe{})
}
