package runtime

import (
	"github.com/curiousdev-oss/web-perf-toolkit/pkg/ast"
	"github.com/curiousdev-oss/web-perf-toolkit/pkg/rule"
)

// longTimeoutMS is the delay above which a pending timeout is treated as a
// retained reference.
const longTimeoutMS = 30000

var storedQueries = map[string]bool{
	"querySelector":    true,
	"querySelectorAll": true,
	"getElementById":   true,
}

type NoMemoryLeaks struct{}

func (NoMemoryLeaks) Name() string            { return "no-memory-leaks" }
func (NoMemoryLeaks) Category() rule.Category { return rule.CategoryRuntime }
func (NoMemoryLeaks) Severity() rule.Severity { return rule.SeverityError }
func (NoMemoryLeaks) Description() string {
	return "Prevents common memory leak patterns: uncleared timers, dangling listeners, retained DOM references and unmanaged subscriptions"
}

type listenerCall struct {
	node  ast.Node
	event string
}

func (NoMemoryLeaks) Create(ctx *rule.Context) rule.Listeners {
	var (
		intervals      []ast.Node
		cleared        bool
		added          []listenerCall
		removed        = make(map[string]bool)
		removedDynamic bool
	)

	l := rule.Listeners{}

	l.On(func(n ast.Node) {
		call, ok := n.(*ast.CallExpression)
		if !ok {
			return
		}

		switch ast.CalleeName(call) {
		case "setInterval":
			intervals = append(intervals, call)
		case "clearInterval":
			cleared = true
		case "setTimeout":
			if delay, ok := ast.NumberValue(ast.Arg(call, 1)); ok && delay > longTimeoutMS {
				ctx.Reportf(call, "setTimeout with %gms delay may cause memory leaks. Consider using intervals or shorter delays", delay)
			}
		}

		method := ast.CalleeName(call)
		m, isMember := ast.CalleeMember(call)
		if isMember {
			method = ast.PropertyName(m)
		}
		switch method {
		case "addEventListener":
			event, _ := ast.StringValue(ast.Arg(call, 0))
			added = append(added, listenerCall{node: call, event: event})
		case "removeEventListener":
			if event, ok := ast.StringValue(ast.Arg(call, 0)); ok {
				removed[event] = true
			} else {
				removedDynamic = true
			}
		}

		if isMember && ast.ObjectName(m) == "document" && storedQueries[ast.PropertyName(m)] {
			switch ctx.Parent().(type) {
			case *ast.VariableDeclarator, *ast.AssignmentExpression:
				ctx.Report(call, "Storing DOM element references can cause memory leaks. Consider using weak references or clearing references when done")
			}
		}
	}, ast.KindCallExpression)

	l.On(func(n ast.Node) {
		if retainsReferences(ast.FunctionBody(n)) {
			ctx.Report(n, "Function may create memory leaks through closure references. Review captured variables and DOM references")
		}
	}, ast.KindFunctionExpression, ast.KindArrowFunctionExpression)

	l.On(func(n ast.Node) {
		var key ast.Node
		var fn ast.Node
		switch n := n.(type) {
		case *ast.Property:
			key, fn = n.Key, n.Value
		case *ast.MethodDefinition:
			key, fn = n.Key, n.Value
		}
		if ast.KeyName(key) != "ngOnDestroy" || !ast.IsFunction(fn) {
			return
		}
		if body, ok := ast.FunctionBody(fn).(*ast.BlockStatement); ok && body != nil && len(body.Body) == 0 {
			ctx.Report(n, "Empty ngOnDestroy() method. Consider implementing cleanup for subscriptions, timers, and event listeners")
		}
	}, ast.KindProperty, ast.KindMethodDefinition)

	l.On(func(n ast.Node) {
		m, ok := n.(*ast.MemberExpression)
		if !ok || ast.PropertyName(m) != "subscribe" {
			return
		}
		if call, ok := ctx.Parent().(*ast.CallExpression); ok && call.Callee == ast.Node(m) {
			ctx.Report(call, "Observable subscriptions can cause memory leaks. Store subscription reference and unsubscribe in ngOnDestroy()")
		}
	}, ast.KindMemberExpression)

	l.OnExit(func(ast.Node) {
		if !cleared {
			for _, n := range intervals {
				ctx.Report(n, "setInterval() can cause memory leaks. Ensure clearInterval() is called when component/module is destroyed")
			}
		}
		if removedDynamic {
			return
		}
		for _, a := range added {
			if a.event != "" && removed[a.event] {
				continue
			}
			ctx.Report(a.node, "addEventListener() can cause memory leaks. Ensure removeEventListener() is called when component/module is destroyed")
		}
	}, ast.KindProgram)

	return l
}

// retainsReferences looks for assignments in a function body that pin
// objects to long-lived places: DOM nodes stored on `this`, new globals on
// window, and freshly allocated arrays. Nested functions are checked on
// their own.
func retainsReferences(body ast.Node) bool {
	if ast.IsNil(body) {
		return false
	}
	found := false
	ast.Inspect(body, func(n ast.Node) bool {
		if found || (n != body && ast.IsFunction(n)) {
			return false
		}
		switch n := n.(type) {
		case *ast.AssignmentExpression:
			obj, _, isMember := ast.MemberNames(n.Left)
			switch {
			case isMember && obj == "this" && mentionsObject(n.Right, "document"):
				found = true
			case isMember && obj == "window":
				found = true
			case allocatesArray(n.Right):
				found = true
			}
		case *ast.VariableDeclarator:
			found = allocatesArray(n.Init)
		}
		return !found
	})
	return found
}

// mentionsObject reports whether n contains a member access on the named
// identifier.
func mentionsObject(n ast.Node, name string) bool {
	found := false
	ast.Inspect(n, func(c ast.Node) bool {
		if m, ok := c.(*ast.MemberExpression); ok && ast.ObjectName(m) == name {
			found = true
		}
		return !found
	})
	return found
}

func allocatesArray(n ast.Node) bool {
	_, isNew := n.(*ast.NewExpression)
	return isNew && ast.CalleeName(n) == "Array"
}

func init() {
	rule.Register(NoMemoryLeaks{})
}
