package rendering

import (
	"strings"

	"github.com/curiousdev-oss/web-perf-toolkit/pkg/ast"
	"github.com/curiousdev-oss/web-perf-toolkit/pkg/markup"
	"github.com/curiousdev-oss/web-perf-toolkit/pkg/rule"
)

// lazyCandidates are libraries worth loading on demand with import().
var lazyCandidates = []string{
	"chart.js", "chartjs", "d3", "three", "monaco-editor",
	"pdf-lib", "pdfjs", "moment", "luxon", "lodash",
}

type PreferLazyLoading struct{}

func (PreferLazyLoading) Name() string            { return "prefer-lazy-loading" }
func (PreferLazyLoading) Category() rule.Category { return rule.CategoryRendering }
func (PreferLazyLoading) Severity() rule.Severity { return rule.SeverityWarning }
func (PreferLazyLoading) Description() string {
	return "Encourages lazy loading for images and heavy modules to improve initial page load"
}

func (PreferLazyLoading) Create(ctx *rule.Context) rule.Listeners {
	l := rule.Listeners{}

	l.On(func(n ast.Node) {
		el, ok := n.(*ast.JSXOpeningElement)
		if !ok || ast.JSXElementName(el) != "img" {
			return
		}
		names := ast.JSXAttrNames(el)
		if !names["src"] || names["loading"] {
			return
		}
		ctx.ReportFinding(rule.Finding{
			Node:    el,
			Message: `Consider adding loading="lazy" to images for better performance`,
			Suggestions: []rule.Fix{{
				Description: `Add loading="lazy" attribute`,
				Edits:       []rule.TextEdit{rule.InsertAfter(el.Name, ` loading="lazy"`)},
			}},
		})
	}, ast.KindJSXOpeningElement)

	l.On(func(n ast.Node) {
		tpl, ok := n.(*ast.TemplateLiteral)
		if !ok {
			return
		}
		for _, img := range markup.Tags(tpl.Raw, "img") {
			if img.Has("src") && !img.Has("loading") {
				ctx.Report(tpl, `Consider adding loading="lazy" to images in templates for better performance`)
				return
			}
		}
	}, ast.KindTemplateLiteral)

	l.On(func(n ast.Node) {
		imp, ok := n.(*ast.ImportDeclaration)
		if !ok || imp.Source == nil || !isLazyCandidate(imp.Source.Value) {
			return
		}
		for _, spec := range imp.Specifiers {
			switch spec.(type) {
			case *ast.ImportDefaultSpecifier, *ast.ImportNamespaceSpecifier:
				ctx.Reportf(imp, "Consider dynamic import() for heavy library '%s' to improve initial bundle size", imp.Source.Value)
				return
			}
		}
	}, ast.KindImportDeclaration)

	return l
}

func isLazyCandidate(source string) bool {
	for _, lib := range lazyCandidates {
		if strings.Contains(source, lib) {
			return true
		}
	}
	return false
}

func init() {
	rule.Register(PreferLazyLoading{})
}
