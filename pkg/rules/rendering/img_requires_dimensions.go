// Package rendering holds rules about layout stability and paint cost.
package rendering

import (
	"regexp"

	"github.com/curiousdev-oss/web-perf-toolkit/pkg/ast"
	"github.com/curiousdev-oss/web-perf-toolkit/pkg/markup"
	"github.com/curiousdev-oss/web-perf-toolkit/pkg/rule"
)

var jsxStyleDimensionRE = regexp.MustCompile(`aspectRatio|aspect-ratio|width.*height|height.*width`)

type ImgRequiresDimensions struct{}

func (ImgRequiresDimensions) Name() string            { return "img-requires-dimensions" }
func (ImgRequiresDimensions) Category() rule.Category { return rule.CategoryRendering }
func (ImgRequiresDimensions) Severity() rule.Severity { return rule.SeverityError }
func (ImgRequiresDimensions) Description() string {
	return "Images must declare dimensions to avoid Cumulative Layout Shift (CLS)"
}

func (ImgRequiresDimensions) Create(ctx *rule.Context) rule.Listeners {
	l := rule.Listeners{}

	l.On(func(n ast.Node) {
		el, ok := n.(*ast.JSXOpeningElement)
		if !ok || ast.JSXElementName(el) != "img" {
			return
		}
		names := ast.JSXAttrNames(el)
		if names["width"] && names["height"] {
			return
		}
		if style, ok := ast.JSXAttr(el, "style"); ok && jsxStyleDimensionRE.MatchString(style.Raw) {
			return
		}
		ctx.Report(el, "<img> must declare width/height attributes or CSS dimensions to prevent layout shifts")
	}, ast.KindJSXOpeningElement)

	l.On(func(n ast.Node) {
		tpl, ok := n.(*ast.TemplateLiteral)
		if !ok {
			return
		}
		for _, img := range markup.Tags(tpl.Raw, "img") {
			if img.Has("width") && img.Has("height") || img.HasStyleDimensions() {
				continue
			}
			ctx.Report(tpl, "Images in templates must declare dimensions to prevent layout shifts")
			return
		}
	}, ast.KindTemplateLiteral)

	return l
}

func init() {
	rule.Register(ImgRequiresDimensions{})
}
