package runtime

import (
	"github.com/curiousdev-oss/web-perf-toolkit/pkg/ast"
	"github.com/curiousdev-oss/web-perf-toolkit/pkg/rule"
	"github.com/curiousdev-oss/web-perf-toolkit/pkg/scope"
)

const cacheQueries = "Cache DOM queries outside loops"

var loopHostileAPIs = map[string]string{
	"document.querySelectorAll":       cacheQueries,
	"document.querySelector":          cacheQueries,
	"document.getElementById":         cacheQueries,
	"document.getElementsByClassName": cacheQueries,
	"document.getElementsByTagName":   cacheQueries,
	"JSON.parse":                      "Cache parsed objects outside loops",
	"JSON.stringify":                  "Cache serialized strings outside loops",
}

// allocatingMethods return a new array on every call.
var allocatingMethods = map[string]bool{
	"map":    true,
	"filter": true,
	"reduce": true,
	"sort":   true,
	"slice":  true,
}

type NoInefficientLoops struct{}

func (NoInefficientLoops) Name() string            { return "no-inefficient-loops" }
func (NoInefficientLoops) Category() rule.Category { return rule.CategoryRuntime }
func (NoInefficientLoops) Severity() rule.Severity { return rule.SeverityError }
func (NoInefficientLoops) Description() string {
	return "Prevents performance-damaging patterns inside loops"
}

func (NoInefficientLoops) Create(ctx *rule.Context) rule.Listeners {
	var loops scope.LoopDepth

	l := rule.Listeners{}
	l.Track(loops.Enter, loops.Exit, scope.LoopKinds...)

	l.On(func(n ast.Node) {
		if !loops.InLoop() {
			return
		}
		obj, prop, ok := ast.MemberNames(n)
		if !ok {
			return
		}
		api := obj + "." + prop
		if advice, ok := loopHostileAPIs[api]; ok {
			ctx.Reportf(n, "Avoid '%s' inside loops. %s", api, advice)
			return
		}
		if api == "console.log" {
			ctx.Report(n, "Avoid console.log inside loops. Remove or use conditional logging")
		}
	}, ast.KindMemberExpression)

	l.On(func(n ast.Node) {
		if !loops.InLoop() {
			return
		}
		m, ok := ast.CalleeMember(n)
		if !ok {
			return
		}
		if method := ast.PropertyName(m); allocatingMethods[method] {
			ctx.Reportf(n, "Avoid array.%s() inside loops. Cache the result or move outside the loop", method)
		}
	}, ast.KindCallExpression)

	return l
}

func init() {
	rule.Register(NoInefficientLoops{})
}
