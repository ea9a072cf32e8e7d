package runtime

import (
	"github.com/curiousdev-oss/web-perf-toolkit/pkg/ast"
	"github.com/curiousdev-oss/web-perf-toolkit/pkg/rule"
	"github.com/curiousdev-oss/web-perf-toolkit/pkg/scope"
)

// renderFunctions are the component render and lifecycle hooks of React and
// Angular that run on every update.
var renderFunctions = []string{
	"render",
	"componentDidMount",
	"componentDidUpdate",
	"componentWillMount",
	"componentWillUpdate",
	"getSnapshotBeforeUpdate",
	"ngOnInit",
	"ngAfterViewInit",
	"ngAfterContentInit",
	"ngAfterViewChecked",
	"ngAfterContentChecked",
}

// renderBlockingMembers are the object.property accesses flagged inside a
// render function. An empty property set matches every property.
var renderBlockingMembers = map[string]map[string]bool{
	"localStorage":   nil,
	"sessionStorage": nil,
	"JSON":           nil,
	"document":       {"cookie": true},
	"Date":           {"now": true},
	"performance":    {"now": true},
	"Math":           {"random": true},
}

type NoSyncAPIsInRender struct{}

func (NoSyncAPIsInRender) Name() string            { return "no-sync-apis-in-render" }
func (NoSyncAPIsInRender) Category() rule.Category { return rule.CategoryRuntime }
func (NoSyncAPIsInRender) Severity() rule.Severity { return rule.SeverityError }
func (NoSyncAPIsInRender) Description() string {
	return "Prevents synchronous APIs in render and lifecycle functions that block the main thread"
}

func (NoSyncAPIsInRender) Create(ctx *rule.Context) rule.Listeners {
	render := scope.NewRenderScope(renderFunctions...)

	report := func(n ast.Node, api string) {
		fn, _ := render.Current()
		ctx.Reportf(n, "Avoid synchronous '%s' in render function '%s'. This blocks the main thread and hurts performance. Use async alternatives or move to lifecycle methods.", api, fn)
	}

	l := rule.Listeners{}
	l.Track(render.Enter, render.Exit, scope.FunctionKinds...)

	l.On(func(n ast.Node) {
		if !render.Inside() {
			return
		}
		obj, prop, ok := ast.MemberNames(n)
		if !ok {
			return
		}
		props, known := renderBlockingMembers[obj]
		if known && (props == nil || props[prop]) {
			report(n, obj+"."+prop)
		}
	}, ast.KindMemberExpression)

	l.On(func(n ast.Node) {
		if !render.Inside() {
			return
		}
		call, ok := n.(*ast.CallExpression)
		if !ok {
			return
		}
		switch name := ast.CalleeName(call); name {
		case "btoa", "atob":
			report(call, name)
			return
		}
		if m, ok := ast.CalleeMember(call); ok && ast.PropertyName(m) == "open" {
			if async, ok := ast.Arg(call, 2).(*ast.BooleanLiteral); ok && async != nil && !async.Value {
				report(call, "XMLHttpRequest.open (synchronous)")
			}
		}
	}, ast.KindCallExpression)

	return l
}

func init() {
	rule.Register(NoSyncAPIsInRender{})
}
