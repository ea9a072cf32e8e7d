package loading

import (
	"net/url"
	"path"
	"slices"
	"strings"

	"github.com/curiousdev-oss/web-perf-toolkit/pkg/ast"
	"github.com/curiousdev-oss/web-perf-toolkit/pkg/markup"
	"github.com/curiousdev-oss/web-perf-toolkit/pkg/rule"
)

// resourceTypes maps file extensions to the `as` value of a preload hint.
var resourceTypes = map[string]string{
	".woff2": "font",
	".woff":  "font",
	".ttf":   "font",
	".otf":   "font",
	".jpg":   "image",
	".jpeg":  "image",
	".png":   "image",
	".webp":  "image",
	".avif":  "image",
	".js":    "script",
	".mjs":   "script",
	".ts":    "script",
	".css":   "style",
	".mp4":   "video",
	".webm":  "video",
	".ogg":   "video",
}

var externalHosts = []string{
	"fonts.googleapis.com",
	"fonts.gstatic.com",
	"cdn.jsdelivr.net",
	"unpkg.com",
	"cdnjs.cloudflare.com",
	"ajax.googleapis.com",
	"maxcdn.bootstrapcdn.com",
}

var criticalMarkers = []string{"hero", "banner", "above-fold", "critical", "main"}

// resourceType classifies a URL by the extension of its path.
func resourceType(raw string) string {
	p := raw
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	return resourceTypes[strings.ToLower(path.Ext(p))]
}

func isCritical(raw string) bool {
	lower := strings.ToLower(raw)
	for _, m := range criticalMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return resourceType(raw) == "font"
}

func isExternal(raw string) bool {
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return true
	}
	for _, h := range externalHosts {
		if strings.Contains(raw, h) {
			return true
		}
	}
	return false
}

// origin returns scheme://host for absolute URLs.
func origin(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", false
	}
	return u.Scheme + "://" + u.Host, true
}

// resource is a URL referenced by the file, remembered with the node that
// first referenced it.
type resource struct {
	node ast.Node
	url  string
	img  bool
}

// moduleRef is a module specifier that could be declared with modulepreload.
type moduleRef struct {
	node    ast.Node
	source  string
	dynamic bool
}

// hintSet records declared hints as "rel:href". Connection hints are keyed
// by origin so that trailing paths do not matter.
type hintSet map[string]bool

func (h hintSet) add(rel, href string) {
	for _, r := range strings.Fields(strings.ToLower(rel)) {
		h[r+":"+href] = true
		if r == "preconnect" || r == "dns-prefetch" {
			if o, ok := origin(href); ok {
				h[r+":"+o] = true
			}
		}
	}
}

func (h hintSet) has(rel, href string) bool { return h[rel+":"+href] }

type PreferResourceHints struct{}

func (PreferResourceHints) Name() string            { return "prefer-resource-hints" }
func (PreferResourceHints) Category() rule.Category { return rule.CategoryLoading }
func (PreferResourceHints) Severity() rule.Severity { return rule.SeverityWarning }
func (PreferResourceHints) Description() string {
	return "Encourages resource hints (preload, preconnect, modulepreload) for critical and cross-origin resources"
}

func (PreferResourceHints) Create(ctx *rule.Context) rule.Listeners {
	var (
		resources []resource
		seen      = make(map[string]bool)
		modules   []moduleRef
		hints     = make(hintSet)
	)

	addResource := func(n ast.Node, u string, img bool) {
		if seen[u] {
			return
		}
		seen[u] = true
		resources = append(resources, resource{node: n, url: u, img: img})
	}

	// scan records the hints and resources of embedded markup and validates
	// hint declarations on the spot.
	scan := func(n ast.Node, text string) {
		for _, h := range markup.Links(text) {
			if h.Href == "" {
				continue
			}
			hints.add(h.Rel, h.Href)
			rels := strings.Fields(h.Rel)
			if slices.Contains(rels, "preload") {
				if !h.HasAs {
					ctx.Reportf(n, `Preload hint for '%s' missing 'as' attribute. Add as="font|image|script|style|video"`, h.Href)
				}
				if strings.Contains(h.Href, ".woff") && !h.CrossOrigin {
					ctx.Reportf(n, "Font preload for '%s' should include crossorigin attribute", h.Href)
				}
			}
			if slices.Contains(rels, "prefetch") && isCritical(h.Href) {
				ctx.Reportf(n, "Critical resource '%s' uses prefetch but should use preload for immediate loading", h.Href)
			}
		}
		for _, u := range markup.URLs(text) {
			addResource(n, u, false)
		}
	}

	l := rule.Listeners{}

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
		if imp, ok := ctx.Parent().(*ast.ImportDeclaration); ok && imp.Source == s {
			return
		}
		scan(s, s.Value)
	}, ast.KindStringLiteral)

	l.On(func(n ast.Node) {
		el, ok := n.(*ast.JSXOpeningElement)
		if !ok {
			return
		}
		switch ast.JSXElementName(el) {
		case "link":
			relAttr, _ := ast.JSXAttr(el, "rel")
			hrefAttr, _ := ast.JSXAttr(el, "href")
			rel, okRel := ast.JSXAttrString(relAttr)
			href, okHref := ast.JSXAttrString(hrefAttr)
			if !okRel || !okHref || rel == "" || href == "" {
				return
			}
			hints.add(rel, href)
			if _, hasAs := ast.JSXAttr(el, "as"); slices.Contains(strings.Fields(rel), "preload") && !hasAs {
				ctx.Reportf(el, "Preload link for '%s' missing 'as' attribute", href)
			}
		case "img":
			srcAttr, _ := ast.JSXAttr(el, "src")
			if src, ok := ast.JSXAttrString(srcAttr); ok && src != "" {
				addResource(el, src, true)
			}
		}
	}, ast.KindJSXOpeningElement)

	l.On(func(n ast.Node) {
		imp, ok := n.(*ast.ImportDeclaration)
		if !ok || imp.Source == nil || imp.Source.Value == "" {
			return
		}
		src := imp.Source.Value
		if isExternal(src) || strings.Contains(src, "/chunks/") || strings.Contains(src, ".chunk.") {
			modules = append(modules, moduleRef{node: imp, source: src})
		}
	}, ast.KindImportDeclaration)

	l.On(func(n ast.Node) {
		imp, ok := n.(*ast.ImportExpression)
		if !ok {
			return
		}
		if src, ok := ast.StringValue(imp.Source); ok && src != "" {
			modules = append(modules, moduleRef{node: imp, source: src, dynamic: true})
		}
	}, ast.KindImportExpression)

	l.OnExit(func(program ast.Node) {
		preconnected := make(map[string]bool)
		googleFonts := false

		for _, r := range resources {
			googleFonts = googleFonts || strings.Contains(r.url, markup.GoogleFontsHost)

			if isCritical(r.url) && !hints.has("preload", r.url) {
				switch typ := resourceType(r.url); {
				case r.img:
					ctx.Reportf(r.node, "Critical image '%s' should be preloaded for better LCP", r.url)
				case typ != "":
					ctx.Reportf(r.node, `Critical %s '%s' should be preloaded with <link rel="preload" as="%s" href="%s">`, typ, r.url, typ, r.url)
				}
			}

			if !isExternal(r.url) {
				continue
			}
			o, ok := origin(r.url)
			if !ok || preconnected[o] || hints.has("preconnect", o) {
				continue
			}
			preconnected[o] = true
			ctx.Reportf(r.node, `External resource from '%s' should have preconnect hint: <link rel="preconnect" href="%s">`, o, o)
		}

		for _, m := range modules {
			if hints.has("modulepreload", m.source) {
				continue
			}
			if m.dynamic {
				ctx.Reportf(m.node, "Dynamic import '%s' could benefit from modulepreload hint for faster loading", m.source)
				continue
			}
			ctx.Reportf(m.node, `Consider modulepreload for '%s' to optimize loading: <link rel="modulepreload" href="%s">`, m.source, m.source)
		}

		if googleFonts && !hints.has("preconnect", "https://"+markup.GoogleFontsHost) {
			ctx.Report(program, "Google Fonts detected but missing preconnect hints. Add <link rel='preconnect' href='https://fonts.googleapis.com'> and <link rel='preconnect' href='https://fonts.gstatic.com' crossorigin>")
		}
	}, ast.KindProgram)

	return l
}

func init() {
	rule.Register(PreferResourceHints{})
}
