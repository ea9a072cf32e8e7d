package runtime

import (
	"strings"

	"github.com/curiousdev-oss/web-perf-toolkit/pkg/ast"
	"github.com/curiousdev-oss/web-perf-toolkit/pkg/rule"
)

const queryAllAdvice = "document.querySelectorAll"

var legacyAPIs = map[string]string{
	"document.getElementById":         "document.querySelector with better caching",
	"document.getElementsByClassName": queryAllAdvice,
	"document.getElementsByTagName":   queryAllAdvice,
	"document.createElement":          "Use modern DOM manipulation or frameworks",
	"document.cookie":                 "Use modern storage APIs or libraries",
	"XMLHttpRequest":                  "fetch() API",
	"new Date().getTime()":            "Date.now()",
	"String.prototype.substr":         "String.prototype.substring or slice",
	"attachEvent":                     "addEventListener",
	"detachEvent":                     "removeEventListener",
	"element.style.cssText":           "element.style property assignment or CSS classes",
}

var polyfills = []string{
	"core-js",
	"babel-polyfill",
	"es6-promise",
	"whatwg-fetch",
	"intersection-observer",
}

// animationDelayMS is the longest setTimeout delay treated as an animation
// frame.
const animationDelayMS = 50

type PreferModernAPIs struct{}

func (PreferModernAPIs) Name() string            { return "prefer-modern-apis" }
func (PreferModernAPIs) Category() rule.Category { return rule.CategoryRuntime }
func (PreferModernAPIs) Severity() rule.Severity { return rule.SeverityWarning }
func (PreferModernAPIs) Description() string {
	return "Encourages modern web APIs over legacy ones for better performance and compatibility"
}

func (PreferModernAPIs) Create(ctx *rule.Context) rule.Listeners {
	legacy := func(n ast.Node, api string) {
		if advice, ok := legacyAPIs[api]; ok {
			ctx.Reportf(n, "Legacy API '%s' detected. %s for better performance.", api, advice)
		}
	}

	l := rule.Listeners{}

	l.On(func(n ast.Node) {
		m, ok := n.(*ast.MemberExpression)
		if !ok {
			return
		}
		prop := ast.PropertyName(m)
		if prop == "" || ast.IsNil(m.Object) {
			return
		}

		switch ast.ObjectName(m) {
		case "document":
			legacy(m, "document."+prop)
		case "XMLHttpRequest":
			legacy(m, "XMLHttpRequest")
		}
		if prop == "substr" {
			legacy(m, "String.prototype.substr")
		}

		switch obj := m.Object.(type) {
		case *ast.MemberExpression:
			if prop == "cssText" && ast.PropertyName(obj) == "style" {
				legacy(m, "element.style.cssText")
			}
		case *ast.NewExpression:
			if prop != "getTime" || ast.CalleeName(obj) != "Date" {
				return
			}
			f := rule.Finding{Node: m, Message: "Legacy API 'new Date().getTime()' detected. Date.now() for better performance."}
			if call, ok := ctx.Parent().(*ast.CallExpression); ok && call.Callee == ast.Node(m) && len(call.Arguments) == 0 {
				f.Fix = &rule.Fix{
					Description: "Replace with Date.now()",
					Edits:       []rule.TextEdit{rule.Replace(call, "Date.now()")},
				}
			}
			ctx.ReportFinding(f)
		}
	}, ast.KindMemberExpression)

	l.On(func(n ast.Node) {
		call, ok := n.(*ast.CallExpression)
		if !ok {
			return
		}
		switch ast.CalleeName(call) {
		case "setTimeout":
			if delay, ok := ast.NumberValue(ast.Arg(call, 1)); ok && delay <= animationDelayMS {
				ctx.Report(call, "Consider modern alternative: Use requestAnimationFrame for animations")
			}
		case "setInterval":
			ctx.Report(call, "Consider modern alternative: Use requestAnimationFrame for smooth animations")
		}
		if m, ok := ast.CalleeMember(call); ok {
			switch method := ast.PropertyName(m); method {
			case "attachEvent", "detachEvent":
				legacy(call, method)
			}
		}
	}, ast.KindCallExpression)

	l.On(func(n ast.Node) {
		nw, ok := n.(*ast.NewExpression)
		if !ok {
			return
		}
		switch ast.CalleeName(nw) {
		case "XMLHttpRequest":
			legacy(nw, "XMLHttpRequest")
		case "Date":
			if len(nw.Arguments) > 0 {
				return
			}
			// new Date().getTime() is reported, with a fix, on the member.
			if m, ok := ctx.Parent().(*ast.MemberExpression); ok && m.Object == ast.Node(nw) && ast.PropertyName(m) == "getTime" {
				return
			}
			ctx.ReportFinding(rule.Finding{
				Node:    nw,
				Message: "Use Date.now() instead of new Date() for timestamps - it's faster",
				Suggestions: []rule.Fix{{
					Description: "Replace with Date.now()",
					Edits:       []rule.TextEdit{rule.Replace(nw, "Date.now()")},
				}},
			})
		}
	}, ast.KindNewExpression)

	l.On(func(n ast.Node) {
		bin, ok := n.(*ast.BinaryExpression)
		if !ok {
			return
		}
		typeOf, ok := bin.Left.(*ast.UnaryExpression)
		if !ok || typeOf == nil || typeOf.Operator != "typeof" {
			return
		}
		right, _ := ast.StringValue(bin.Right)
		switch name := ast.IdentName(typeOf.Argument); {
		case name == "XMLHttpRequest" && bin.Operator == "!==":
			ctx.Report(bin, "XMLHttpRequest feature detection suggests legacy code. Consider using fetch() with polyfills.")
		case name == "fetch" && bin.Operator == "===" && right == "undefined":
			ctx.Report(bin, "Fetch feature detection found. Ensure you're using modern bundling with polyfills.")
		}
	}, ast.KindBinaryExpression)

	l.On(func(n ast.Node) {
		imp, ok := n.(*ast.ImportDeclaration)
		if !ok || imp.Source == nil {
			return
		}
		for _, p := range polyfills {
			if strings.Contains(imp.Source.Value, p) {
				ctx.Reportf(imp, "Polyfill '%s' detected. Verify it's still needed for your target browsers to avoid unnecessary bundle bloat.", imp.Source.Value)
				return
			}
		}
	}, ast.KindImportDeclaration)

	return l
}

func init() {
	rule.Register(PreferModernAPIs{})
}
