// Package loading holds rules about how and when resources reach the page.
package loading

import (
	"regexp"
	"slices"
	"strings"

	"github.com/curiousdev-oss/web-perf-toolkit/pkg/ast"
	"github.com/curiousdev-oss/web-perf-toolkit/pkg/markup"
	"github.com/curiousdev-oss/web-perf-toolkit/pkg/rule"
)

const (
	inlineScriptLimit = 500
	styleObjectLimit  = 20
)

var (
	cssImportStatementRE = regexp.MustCompile(`(?:^|[^@\w])import\b[^;\n]*\.css\b`)

	// blockingScriptPatterns are the parser-blocking calls looked for in
	// embedded scripts, keyed by the name used in the message.
	blockingScriptPatterns = []struct {
		name string
		re   *regexp.Regexp
	}{
		{"document.write", regexp.MustCompile(`document\.write\s*\(`)},
		{"document.writeln", regexp.MustCompile(`document\.writeln\s*\(`)},
		{"eval(", regexp.MustCompile(`\beval\s*\(`)},
		{"new Function(", regexp.MustCompile(`\bnew\s+Function\s*\(`)},
		{"setTimeout(eval", regexp.MustCompile(`\bsetTimeout\(\s*eval\b`)},
		{"setInterval(eval", regexp.MustCompile(`\bsetInterval\(\s*eval\b`)},
	}

	blockingLibraries = []string{"three", "chart.js", "d3", "monaco-editor", "pdf-lib", "fabric"}
)

type NoRenderBlockingResources struct{}

func (NoRenderBlockingResources) Name() string            { return "no-render-blocking-resources" }
func (NoRenderBlockingResources) Category() rule.Category { return rule.CategoryLoading }
func (NoRenderBlockingResources) Severity() rule.Severity { return rule.SeverityError }
func (NoRenderBlockingResources) Description() string {
	return "Prevents render-blocking resources that hurt First Contentful Paint and Largest Contentful Paint"
}

func (NoRenderBlockingResources) Create(ctx *rule.Context) rule.Listeners {
	scan := func(n ast.Node, text string) {
		checkBlockingCSS(ctx, n, text)
		checkBlockingFonts(ctx, n, text)
		checkBlockingScripts(ctx, n, text)
	}

	l := rule.Listeners{}

	l.On(func(n ast.Node) {
		imp, ok := n.(*ast.ImportDeclaration)
		if !ok || imp.Source == nil || imp.Source.Value == "" {
			return
		}
		src := imp.Source.Value
		if strings.HasSuffix(src, ".css") || strings.Contains(src, "/styles/") ||
			strings.Contains(src, ".scss") || strings.Contains(src, ".less") {
			ctx.Reportf(imp, "CSS import '%s' may block rendering. Consider code-splitting CSS or using CSS-in-JS for critical styles", src)
		}
		for _, lib := range blockingLibraries {
			if strings.Contains(src, lib) {
				ctx.Reportf(imp, "Heavy library '%s' may block rendering. Consider dynamic import() to load on-demand", src)
				break
			}
		}
	}, ast.KindImportDeclaration)

	l.On(func(n ast.Node) {
		if tpl, ok := n.(*ast.TemplateLiteral); ok {
			scan(tpl, tpl.Raw)
		}
	}, ast.KindTemplateLiteral)

	l.On(func(n ast.Node) {
		s, ok := n.(*ast.StringLiteral)
		if !ok {
			return
		}
		// Module specifiers are covered by the import check.
		if imp, ok := ctx.Parent().(*ast.ImportDeclaration); ok && imp.Source == s {
			return
		}
		scan(s, s.Value)
	}, ast.KindStringLiteral)

	l.On(func(n ast.Node) {
		call, ok := n.(*ast.CallExpression)
		if !ok {
			return
		}
		if obj, prop, ok := ast.MemberNames(call.Callee); ok && obj == "document" && (prop == "write" || prop == "writeln") {
			ctx.Reportf(call, "document.%s() blocks HTML parsing. Use modern DOM manipulation methods", prop)
		}
		switch ast.CalleeName(call) {
		case "eval":
			ctx.Report(call, "eval() blocks JavaScript parsing and execution. Avoid or use JSON.parse for safe parsing")
		case "Function":
			if len(call.Arguments) > 0 {
				ctx.Report(call, "Function constructor blocks execution. Use regular functions or arrow functions")
			}
		}
		if m, ok := ast.CalleeMember(call); ok && ast.PropertyName(m) == "open" {
			if async, ok := ast.Arg(call, 2).(*ast.BooleanLiteral); ok && async != nil && !async.Value {
				ctx.Report(call, "Synchronous XMLHttpRequest blocks the main thread. Use async requests or fetch()")
			}
		}
	}, ast.KindCallExpression)

	l.On(func(n ast.Node) {
		if ast.CalleeName(n) == "Function" && len(ast.Args(n)) > 0 {
			ctx.Report(n, "Function constructor blocks execution. Use regular functions or arrow functions")
		}
	}, ast.KindNewExpression)

	l.On(func(n ast.Node) {
		el, ok := n.(*ast.JSXOpeningElement)
		if !ok {
			return
		}
		names := ast.JSXAttrNames(el)
		switch ast.JSXElementName(el) {
		case "link":
			rel, _ := ast.JSXAttr(el, "rel")
			if v, _ := ast.JSXAttrString(rel); v == "stylesheet" && !names["media"] {
				ctx.Report(el, "Stylesheet <link> without media attribute blocks rendering. Add media='all' or specific media query")
			}
		case "script":
			if names["src"] && !names["async"] && !names["defer"] {
				ctx.Report(el, "External <script> without async/defer blocks rendering. Add async or defer attribute")
			}
		}
	}, ast.KindJSXOpeningElement)

	l.On(func(n ast.Node) {
		p, ok := n.(*ast.Property)
		if !ok || ast.KeyName(p.Key) != "style" {
			return
		}
		if obj, ok := p.Value.(*ast.ObjectExpression); ok && obj != nil && len(obj.Properties) > styleObjectLimit {
			ctx.Report(p, "Large inline style objects can hurt performance. Consider CSS classes or styled-components")
		}
	}, ast.KindProperty)

	return l
}

func checkBlockingCSS(ctx *rule.Context, n ast.Node, text string) {
	if cssImportStatementRE.MatchString(text) {
		ctx.Report(n, "CSS imports can block rendering. Consider using CSS-in-JS, dynamic imports, or ensuring critical CSS is inlined")
	}
	for _, h := range markup.Links(text) {
		if hasRel(h.Rel, "stylesheet") && !h.Media && !h.Disabled {
			ctx.Report(n, "Stylesheet links without media queries block rendering. Consider using media='print' onload pattern or critical CSS")
			break
		}
	}
	if len(markup.CSSImports(text)) > 0 {
		ctx.Report(n, "@import statements block rendering. Use bundler imports or <link> tags instead")
	}
}

func checkBlockingFonts(ctx *rule.Context, n ast.Node, text string) {
	if markup.UsesGoogleFonts(text) {
		if !markup.HasDisplaySwap(text) {
			ctx.Report(n, "Google Fonts without display=swap block rendering. Add &display=swap to the URL or font-display: swap to CSS")
		}
		if !hasPreconnect(text, markup.GoogleFontsHost) {
			ctx.Report(n, "Add <link rel='preconnect' href='https://fonts.googleapis.com'> to reduce font loading delays")
		}
	}
	for _, face := range markup.FontFaces(text) {
		if !face.FontDisplay {
			ctx.Report(n, "Add font-display: swap to @font-face to prevent invisible text during font swap")
			break
		}
	}
}

func checkBlockingScripts(ctx *rule.Context, n ast.Node, text string) {
	for _, p := range blockingScriptPatterns {
		if p.re.MatchString(text) {
			ctx.Reportf(n, "'%s' blocks rendering and parsing. Avoid or defer this operation", p.name)
		}
	}

	var blocking, large bool
	for _, s := range markup.Scripts(text) {
		switch {
		case s.External():
			blocking = blocking || !s.Deferred()
		case len(s.Body) > inlineScriptLimit:
			large = true
		}
	}
	if blocking {
		ctx.Report(n, "External scripts without async/defer block rendering. Add async for third-party scripts or defer for your scripts")
	}
	if large {
		ctx.Report(n, "Large inline scripts block rendering. Consider moving to external files with async/defer")
	}
}

// hasPreconnect reports whether text declares a preconnect link to host.
func hasPreconnect(text, host string) bool {
	for _, h := range markup.Links(text) {
		if hasRel(h.Rel, "preconnect") && strings.Contains(h.Href, host) {
			return true
		}
	}
	return false
}

// hasRel reports whether a space-separated rel list contains want.
func hasRel(rel, want string) bool {
	return slices.Contains(strings.Fields(strings.ToLower(rel)), want)
}

func init() {
	rule.Register(NoRenderBlockingResources{})
}
