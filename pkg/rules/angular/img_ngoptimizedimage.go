package angular

import (
	"strings"

	"github.com/curiousdev-oss/web-perf-toolkit/pkg/ast"
	"github.com/curiousdev-oss/web-perf-toolkit/pkg/markup"
	"github.com/curiousdev-oss/web-perf-toolkit/pkg/rule"
)

const (
	useNgSrcMessage      = "Use NgOptimizedImage: replace src with ngSrc and import provideImg from @angular/common"
	imgDimensionsMessage = "Add explicit width and height to <img> to prevent layout shift (CLS)"
)

type ImgNgOptimizedImage struct{}

type imgAttrs struct {
	src, ngSrc, width, height bool
}

func (ImgNgOptimizedImage) Name() string            { return "angular-img-ngoptimizedimage" }
func (ImgNgOptimizedImage) Category() rule.Category { return rule.CategoryAngular }
func (ImgNgOptimizedImage) Severity() rule.Severity { return rule.SeverityWarning }
func (ImgNgOptimizedImage) Description() string {
	return "Suggest using Angular NgOptimizedImage (ngSrc) and enforce width/height " +
		"in inline templates"
}

func (ImgNgOptimizedImage) Create(ctx *rule.Context) rule.Listeners {
	// Each condition is reported once per node, however many tags in a
	// template trigger it.
	check := func(n ast.Node, imgs []imgAttrs) {
		var legacySrc, noDims bool
		for _, img := range imgs {
			legacySrc = legacySrc || img.src && !img.ngSrc
			noDims = noDims || !img.width || !img.height
		}
		if legacySrc {
			ctx.Report(n, useNgSrcMessage)
		}
		if noDims {
			ctx.Report(n, imgDimensionsMessage)
		}
	}

	scan := func(n ast.Node, text string) {
		var imgs []imgAttrs
		for _, img := range markup.Tags(text, "img") {
			imgs = append(imgs, imgAttrs{img.Has("src"), img.Has("ngSrc"), img.Has("width"), img.Has("height")})
		}
		check(n, imgs)
	}

	l := rule.Listeners{}

	l.On(func(n ast.Node) {
		if tpl, ok := n.(*ast.TemplateLiteral); ok {
			scan(tpl, tpl.Raw)
		}
	}, ast.KindTemplateLiteral)

	l.On(func(n ast.Node) {
		if s, ok := n.(*ast.StringLiteral); ok && strings.Contains(s.Value, "<img") {
			scan(s, s.Value)
		}
	}, ast.KindStringLiteral)

	l.On(func(n ast.Node) {
		el, ok := n.(*ast.JSXOpeningElement)
		if !ok || ast.JSXElementName(el) != "img" {
			return
		}
		names := ast.JSXAttrNames(el)
		check(el, []imgAttrs{{names["src"], names["ngSrc"], names["width"], names["height"]}})
	}, ast.KindJSXOpeningElement)

	return l
}

func init() {
	rule.Register(ImgNgOptimizedImage{})
}
