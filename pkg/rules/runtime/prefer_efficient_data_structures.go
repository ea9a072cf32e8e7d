package runtime

import (
	"strings"

	"github.com/curiousdev-oss/web-perf-toolkit/pkg/ast"
	"github.com/curiousdev-oss/web-perf-toolkit/pkg/rule"
	"github.com/curiousdev-oss/web-perf-toolkit/pkg/scope"
)

const (
	largeArrayLength   = 1000
	lookupTableSize    = 10
	concatChainMinimum = 3
)

var (
	equalityOperators = map[string]bool{"===": true, "==": true, "!==": true, "!=": true}
	chainingMethods   = map[string]bool{"map": true, "filter": true, "reduce": true}
	innerArrayMethods = map[string]bool{"map": true, "filter": true, "reduce": true, "find": true, "some": true, "every": true}
	objectIterators   = map[string]bool{"keys": true, "values": true, "entries": true}
)

type PreferEfficientDataStructures struct{}

func (PreferEfficientDataStructures) Name() string            { return "prefer-efficient-data-structures" }
func (PreferEfficientDataStructures) Category() rule.Category { return rule.CategoryRuntime }
func (PreferEfficientDataStructures) Severity() rule.Severity { return rule.SeverityWarning }
func (PreferEfficientDataStructures) Description() string {
	return "Encourages efficient data structures and algorithms over linear scans and intermediate allocations"
}

func (PreferEfficientDataStructures) Create(ctx *rule.Context) rule.Listeners {
	var loops scope.LoopDepth

	l := rule.Listeners{}
	l.Track(loops.Enter, loops.Exit, scope.LoopKinds...)

	l.On(func(n ast.Node) {
		call, ok := n.(*ast.CallExpression)
		if !ok {
			return
		}
		m, ok := ast.CalleeMember(call)
		if !ok {
			return
		}
		method := ast.PropertyName(m)
		parent := ctx.Parent()

		switch method {
		case "indexOf":
			if bin, ok := parent.(*ast.BinaryExpression); ok && equalityOperators[bin.Operator] && comparesWith(bin, call, -1) {
				ctx.Reportf(call, "Use Set.has() or Array.includes() instead of indexOf() %s -1 for better performance and readability", bin.Operator)
			}
		case "find":
			if bin, ok := parent.(*ast.BinaryExpression); ok && equalityOperators[bin.Operator] {
				ctx.Report(call, "Use Array.some() instead of Array.find() for existence checking - it's more efficient")
			}
		case "filter":
			if pm, ok := parent.(*ast.MemberExpression); ok && pm.Object == ast.Node(call) && ast.PropertyName(pm) == "length" {
				ctx.Report(call, "Use Array.some() instead of Array.filter().length for existence checking - avoids creating intermediate array")
			}
		}

		if chainingMethods[method] {
			if inner := nestedArrayMethod(ast.Arg(call, 0)); inner != "" {
				ctx.Reportf(call, "Nested array method %s().%s() creates performance overhead. Consider optimizing with a single loop or different data structure", method, inner)
			}
		}

		switch ast.ObjectName(m) {
		case "Object":
			if objectIterators[method] && loops.InLoop() {
				ctx.Reportf(call, "Object.%s() inside loops is inefficient. Cache the result or use Map/Set for frequent lookups", method)
			}
		case "JSON":
			if method != "parse" {
				break
			}
			if obj, prop, ok := ast.MemberNames(calleeOf(ast.Arg(call, 0))); ok && obj == "JSON" && prop == "stringify" {
				ctx.Report(call, "JSON.parse(JSON.stringify()) for cloning is inefficient. Use structured cloning algorithm or dedicated libraries")
			}
		}
	}, ast.KindCallExpression)

	l.On(func(n ast.Node) {
		switch ast.CalleeName(n) {
		case "Array":
			if args := ast.Args(n); len(args) == 1 {
				if size, ok := ast.NumberValue(args[0]); ok && size > largeArrayLength {
					ctx.Reportf(n, "Creating large Array(%g) may cause performance issues. Consider using typed arrays or lazy initialization", size)
				}
			}
		case "RegExp":
			if loops.InLoop() {
				ctx.Report(n, "Creating RegExp inside loops is inefficient. Move regex creation outside the loop")
			}
		}
	}, ast.KindNewExpression)

	l.On(func(n ast.Node) {
		bin, ok := n.(*ast.BinaryExpression)
		if !ok || bin.Operator != "+" {
			return
		}
		// Only the outermost + of a chain is measured.
		if parent, ok := ctx.Parent().(*ast.BinaryExpression); ok && parent.Operator == "+" && parent.Left == ast.Node(bin) {
			return
		}
		count := 1
		for cur := bin; ; count++ {
			left, ok := cur.Left.(*ast.BinaryExpression)
			if !ok || left == nil || left.Operator != "+" {
				break
			}
			cur = left
		}
		if count >= concatChainMinimum {
			ctx.Reportf(bin, "Multiple string concatenations (%d) detected. Use template literals or Array.join() for better performance", count)
		}
	}, ast.KindBinaryExpression)

	l.On(func(n ast.Node) {
		loop, ok := n.(*ast.ForInStatement)
		if !ok {
			return
		}
		name := strings.ToLower(ast.IdentName(loop.Right))
		if strings.Contains(name, "array") || strings.Contains(name, "list") || strings.Contains(name, "items") {
			ctx.Report(loop, "for-in loop on arrays is inefficient. Use for-of or traditional for loop for better performance")
		}
	}, ast.KindForInStatement)

	l.On(func(n ast.Node) {
		if obj, ok := n.(*ast.ObjectExpression); ok && len(obj.Properties) > lookupTableSize {
			ctx.Report(obj, "Large object literals used for lookups are inefficient. Consider using Map for better performance with frequent operations")
		}
	}, ast.KindObjectExpression)

	return l
}

// comparesWith reports whether bin compares operand against the number v.
func comparesWith(bin *ast.BinaryExpression, operand ast.Node, v float64) bool {
	other := bin.Right
	if bin.Right == operand {
		other = bin.Left
	}
	got, ok := ast.NumberValue(other)
	return ok && got == v
}

// nestedArrayMethod returns the array method a callback immediately calls,
// for concise arrows and single-return function bodies.
func nestedArrayMethod(callback ast.Node) string {
	if !ast.IsFunction(callback) {
		return ""
	}
	body := ast.FunctionBody(callback)
	if block, ok := body.(*ast.BlockStatement); ok {
		if block == nil || len(block.Body) != 1 {
			return ""
		}
		ret, ok := block.Body[0].(*ast.ReturnStatement)
		if !ok || ret == nil {
			return ""
		}
		body = ret.Argument
	}
	m, ok := ast.CalleeMember(body)
	if !ok {
		return ""
	}
	if method := ast.PropertyName(m); innerArrayMethods[method] {
		return method
	}
	return ""
}

func calleeOf(n ast.Node) ast.Node {
	if call, ok := n.(*ast.CallExpression); ok && call != nil {
		return call.Callee
	}
	return nil
}

func init() {
	rule.Register(PreferEfficientDataStructures{})
}
