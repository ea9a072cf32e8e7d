package rendering

import (
	"regexp"
	"strings"

	"github.com/curiousdev-oss/web-perf-toolkit/pkg/ast"
	"github.com/curiousdev-oss/web-perf-toolkit/pkg/markup"
	"github.com/curiousdev-oss/web-perf-toolkit/pkg/rule"
)

// passiveEvents are the events whose listeners block scrolling unless
// registered as passive.
var passiveEvents = map[string]bool{
	"scroll":     true,
	"touchstart": true,
	"touchmove":  true,
	"wheel":      true,
}

var heroImageRE = regexp.MustCompile(`(?i)src\s*=\s*["'][^"']*(hero|banner)[^"']*\.(jpe?g|png|webp|avif)`)

type PreferWebVitalsOptimizations struct{}

func (PreferWebVitalsOptimizations) Name() string            { return "prefer-web-vitals-optimizations" }
func (PreferWebVitalsOptimizations) Category() rule.Category { return rule.CategoryRendering }
func (PreferWebVitalsOptimizations) Severity() rule.Severity { return rule.SeverityWarning }
func (PreferWebVitalsOptimizations) Description() string {
	return "Enforces Core Web Vitals optimizations (LCP, INP/FID, CLS) for better Lighthouse scores"
}

func (PreferWebVitalsOptimizations) Create(ctx *rule.Context) rule.Listeners {
	checkFonts := func(n ast.Node, text string) {
		for _, face := range markup.FontFaces(text) {
			if !face.FontDisplay {
				ctx.Report(n, "Add font-display: swap to @font-face to improve CLS and LCP")
				break
			}
		}
		if (markup.UsesGoogleFonts(text) || len(markup.CSSImports(text)) > 0) && !markup.HasDisplaySwap(text) {
			ctx.Report(n, "Add &display=swap to Google Fonts URLs to optimize font loading")
		}
	}

	checkPreloads := func(n ast.Node, text string) {
		if !markup.ContainsTag(text, "link") {
			return
		}
		preloaded := false
		for _, h := range markup.Links(text) {
			if h.Rel == "preload" {
				preloaded = true
				break
			}
		}
		if preloaded {
			return
		}
		for _, u := range markup.URLs(text) {
			if strings.Contains(u, ".woff") {
				ctx.Report(n, "Preload critical fonts with <link rel='preload'> to improve LCP")
				break
			}
		}
		if heroImageRE.MatchString(text) {
			ctx.Report(n, "Preload hero/banner images with <link rel='preload'> to improve LCP")
		}
	}

	l := rule.Listeners{}

	l.On(func(n ast.Node) {
		el, ok := n.(*ast.JSXOpeningElement)
		if !ok {
			return
		}
		switch ast.JSXElementName(el) {
		case "img":
			names := ast.JSXAttrNames(el)
			if !names["src"] {
				return
			}
			if !names["loading"] {
				ctx.Report(el, "Add loading attribute (loading='lazy' for below-the-fold, loading='eager' for above-the-fold) to optimize LCP")
			}
			if !names["width"] || !names["height"] {
				ctx.Report(el, "Set width and height attributes to prevent Cumulative Layout Shift (CLS)")
			}
			if !names["srcSet"] && !names["srcset"] {
				ctx.Report(el, "Consider using srcset for responsive images to improve LCP on different device sizes")
			}
			if !names["alt"] {
				ctx.Report(el, "Add alt attribute for accessibility and better Lighthouse score")
			}
		case "div":
			if style, ok := ast.JSXAttr(el, "style"); ok &&
				(strings.Contains(style.Raw, "background-image") || strings.Contains(style.Raw, "backgroundImage")) {
				ctx.Report(el, "Background images on divs can hurt LCP. Consider using <img> with object-fit for better optimization")
			}
		}
	}, ast.KindJSXOpeningElement)

	l.On(func(n ast.Node) {
		tpl, ok := n.(*ast.TemplateLiteral)
		if !ok {
			return
		}
		checkFonts(tpl, tpl.Raw)
		checkPreloads(tpl, tpl.Raw)

		var missingLoading, missingSize bool
		for _, img := range markup.Tags(tpl.Raw, "img") {
			missingLoading = missingLoading || !img.Has("loading")
			missingSize = missingSize || !img.Has("width") || !img.Has("height")
		}
		if missingLoading {
			ctx.Report(tpl, "Add loading attribute to images in templates for LCP optimization")
		}
		if missingSize {
			ctx.Report(tpl, "Set image dimensions in templates to prevent CLS")
		}
	}, ast.KindTemplateLiteral)

	l.On(func(n ast.Node) {
		if s, ok := n.(*ast.StringLiteral); ok && strings.Contains(s.Value, "@font-face") {
			checkFonts(s, s.Value)
		}
	}, ast.KindStringLiteral)

	l.On(func(n ast.Node) {
		call, ok := n.(*ast.CallExpression)
		if !ok {
			return
		}

		if m, ok := call.Callee.(*ast.MemberExpression); ok {
			if ast.PropertyName(m) == "addEventListener" {
				checkPassive(ctx, call)
			}
			if obj := ast.ObjectName(m); obj == "localStorage" || obj == "sessionStorage" {
				ctx.Reportf(call, "Synchronous %s operations can hurt FID. Consider async alternatives or caching", obj)
			}
			return
		}

		switch name := ast.CalleeName(call); name {
		case "setTimeout", "setInterval":
			if delay, ok := ast.NumberValue(ast.Arg(call, 1)); ok && delay < 16 {
				ctx.Reportf(call, "%s with %gms delay can hurt performance. Use requestAnimationFrame for smooth animations", name, delay)
			}
		}
	}, ast.KindCallExpression)

	l.On(func(n ast.Node) {
		imp, ok := n.(*ast.ImportDeclaration)
		if !ok || imp.Source == nil {
			return
		}
		if src := imp.Source.Value; strings.Contains(src, "performance") || strings.Contains(src, "analytics") {
			ctx.Report(imp, "Consider importing 'web-vitals' library to monitor Core Web Vitals in production")
		}
	}, ast.KindImportDeclaration)

	return l
}

// checkPassive reports scroll-blocking listeners registered without
// { passive: true }.
func checkPassive(ctx *rule.Context, call *ast.CallExpression) {
	if len(call.Arguments) < 2 {
		return
	}
	event, ok := ast.StringValue(call.Arguments[0])
	if !ok || !passiveEvents[event] {
		return
	}
	if opts, ok := ast.Arg(call, 2).(*ast.ObjectExpression); ok {
		if p, ok := ast.FindProperty(opts, "passive"); ok {
			if b, ok := p.Value.(*ast.BooleanLiteral); ok && b != nil && b.Value {
				return
			}
		}
	}
	ctx.Reportf(call, "Add { passive: true } to '%s' event listener to improve FID performance", event)
}

func init() {
	rule.Register(PreferWebVitalsOptimizations{})
}
