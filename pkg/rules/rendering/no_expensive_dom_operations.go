package rendering

import (
	"fmt"

	"github.com/curiousdev-oss/web-perf-toolkit/pkg/ast"
	"github.com/curiousdev-oss/web-perf-toolkit/pkg/rule"
	"github.com/curiousdev-oss/web-perf-toolkit/pkg/scope"
)

type domOperation struct {
	advice string
	reflow bool
}

const cacheLayout = "Cache layout values when possible - triggers reflow"

var expensiveDOMOperations = map[string]domOperation{
	"innerHTML":             {"Use textContent for text or DocumentFragment for HTML", false},
	"outerHTML":             {"Use more specific DOM methods for better performance", false},
	"appendChild":           {"Consider DocumentFragment for multiple operations", false},
	"insertBefore":          {"Consider DocumentFragment for multiple operations", false},
	"removeChild":           {"Use remove() method or batch operations", false},
	"cloneNode":             {"Cache cloned nodes when possible", false},
	"getBoundingClientRect": {cacheLayout, true},
	"offsetWidth":           {cacheLayout, true},
	"offsetHeight":          {cacheLayout, true},
	"offsetTop":             {cacheLayout, true},
	"offsetLeft":            {cacheLayout, true},
	"scrollWidth":           {cacheLayout, true},
	"scrollHeight":          {cacheLayout, true},
	"clientWidth":           {cacheLayout, true},
	"clientHeight":          {cacheLayout, true},
	"getComputedStyle":      {"Cache computed styles when possible - triggers reflow", true},
}

var documentQueries = map[string]bool{
	"querySelector":    true,
	"querySelectorAll": true,
	"getElementById":   true,
}

type NoExpensiveDOMOperations struct{}

func (NoExpensiveDOMOperations) Name() string            { return "no-expensive-dom-operations" }
func (NoExpensiveDOMOperations) Category() rule.Category { return rule.CategoryRendering }
func (NoExpensiveDOMOperations) Severity() rule.Severity { return rule.SeverityWarning }
func (NoExpensiveDOMOperations) Description() string {
	return "Prevents DOM operations that cause layout thrashing and reflows, with stricter reporting inside loops"
}

func (NoExpensiveDOMOperations) Create(ctx *rule.Context) rule.Listeners {
	var loops scope.LoopDepth

	// loopContext returns the message prefix and the " inside a loop" infix.
	loopContext := func() (level, where string) {
		if loops.InLoop() {
			return "CRITICAL", " inside a loop"
		}
		return "WARNING", ""
	}
	report := func(n ast.Node, msg string) {
		ctx.ReportFinding(rule.Finding{Node: n, Message: msg, Escalate: loops.InLoop()})
	}

	checkOperation := func(n ast.Node, name string) {
		op, ok := expensiveDOMOperations[name]
		if !ok {
			return
		}
		level, where := loopContext()
		if op.reflow {
			report(n, fmt.Sprintf("%s: '%s' triggers layout reflow%s. %s", level, name, where, op.advice))
			return
		}
		report(n, fmt.Sprintf("%s: '%s' is expensive%s. %s", level, name, where, op.advice))
	}

	l := rule.Listeners{}
	l.Track(loops.Enter, loops.Exit, scope.LoopKinds...)

	l.On(func(n ast.Node) {
		m, ok := n.(*ast.MemberExpression)
		if !ok {
			return
		}
		checkOperation(m, ast.PropertyName(m))

		if style, ok := m.Object.(*ast.MemberExpression); ok && ast.PropertyName(style) == "style" {
			level, where := loopContext()
			report(m, fmt.Sprintf("%s: Direct style access%s can cause layout thrashing. Use CSS classes or batch style changes", level, where))
		}
	}, ast.KindMemberExpression)

	l.On(func(n ast.Node) {
		call, ok := n.(*ast.CallExpression)
		if !ok {
			return
		}
		if name := ast.CalleeName(call); name == "getComputedStyle" {
			checkOperation(call, name)
			return
		}
		obj, prop, ok := ast.MemberNames(call.Callee)
		if !ok || obj != "document" {
			return
		}
		switch {
		case documentQueries[prop]:
			level, where := loopContext()
			report(call, fmt.Sprintf("%s: DOM query '%s'%s is expensive. Cache the result", level, prop, where))
		case prop == "write":
			ctx.ReportFinding(rule.Finding{
				Node:     call,
				Message:  "CRITICAL: document.write() blocks HTML parsing. Use modern DOM methods",
				Escalate: true,
			})
		}
	}, ast.KindCallExpression)

	l.On(func(n ast.Node) {
		if ast.CalleeName(n) == "XMLHttpRequest" {
			ctx.Report(n, "Consider using fetch() API instead of XMLHttpRequest for better performance and modern standards")
		}
	}, ast.KindNewExpression)

	return l
}

func init() {
	rule.Register(NoExpensiveDOMOperations{})
}
