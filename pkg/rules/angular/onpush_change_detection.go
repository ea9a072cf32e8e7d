package angular

import (
	"github.com/curiousdev-oss/web-perf-toolkit/pkg/ast"
	"github.com/curiousdev-oss/web-perf-toolkit/pkg/rule"
)

type OnPushChangeDetection struct{}

func (OnPushChangeDetection) Name() string            { return "angular-onpush-change-detection" }
func (OnPushChangeDetection) Category() rule.Category { return rule.CategoryAngular }
func (OnPushChangeDetection) Severity() rule.Severity { return rule.SeverityWarning }
func (OnPushChangeDetection) Description() string {
	return "Enforce ChangeDetectionStrategy.OnPush for Angular components to reduce " +
		"change detection work"
}

func (OnPushChangeDetection) Create(ctx *rule.Context) rule.Listeners {
	return rule.Listeners{}.On(func(n ast.Node) {
		decorators, _ := classParts(n)
		call, ok := componentCall(decorators)
		if !ok {
			return
		}
		// Metadata passed by reference cannot be inspected.
		meta, ok := ast.Arg(call, 0).(*ast.ObjectExpression)
		if !ok || meta == nil {
			return
		}
		prop, ok := ast.FindProperty(meta, "changeDetection")
		if !ok {
			ctx.Report(n, "Angular component should set changeDetection: ChangeDetectionStrategy.OnPush for better performance")
			return
		}
		if !isOnPush(prop.Value) {
			ctx.Report(prop, "Use ChangeDetectionStrategy.OnPush to minimize change detection cycles")
		}
	}, ast.KindClassDeclaration, ast.KindClassExpression)
}

// isOnPush accepts ChangeDetectionStrategy.OnPush and a bare OnPush import.
func isOnPush(n ast.Node) bool {
	if obj, prop, ok := ast.MemberNames(n); ok {
		return obj == "ChangeDetectionStrategy" && prop == "OnPush"
	}
	return ast.IdentName(n) == "OnPush"
}

func init() {
	rule.Register(OnPushChangeDetection{})
}
