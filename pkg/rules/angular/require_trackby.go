package angular

import (
	"strings"

	"github.com/curiousdev-oss/web-perf-toolkit/pkg/ast"
	"github.com/curiousdev-oss/web-perf-toolkit/pkg/markup"
	"github.com/curiousdev-oss/web-perf-toolkit/pkg/rule"
)

type RequireTrackBy struct{}

func (RequireTrackBy) Name() string            { return "angular-require-trackby" }
func (RequireTrackBy) Category() rule.Category { return rule.CategoryAngular }
func (RequireTrackBy) Severity() rule.Severity { return rule.SeverityWarning }
func (RequireTrackBy) Description() string {
	return "Require trackBy in Angular *ngFor to avoid excessive DOM re-renders"
}

func (RequireTrackBy) Create(ctx *rule.Context) rule.Listeners {
	scan := func(n ast.Node, text string) {
		for _, loop := range markup.NgFors(text) {
			if !loop.TrackBy {
				ctx.Report(n, "Angular *ngFor should specify trackBy to reduce DOM churn and improve performance")
				return
			}
		}
	}

	l := rule.Listeners{}
	l.On(func(n ast.Node) {
		if tpl, ok := n.(*ast.TemplateLiteral); ok {
			scan(tpl, tpl.Raw)
		}
	}, ast.KindTemplateLiteral)
	l.On(func(n ast.Node) {
		if s, ok := n.(*ast.StringLiteral); ok && strings.Contains(s.Value, "*ngFor") {
			scan(s, s.Value)
		}
	}, ast.KindStringLiteral)
	return l
}

func init() {
	rule.Register(RequireTrackBy{})
}
