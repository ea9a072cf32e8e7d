package markup

import (
	"regexp"
	"strings"
)

// Hint is a <link> element carrying a rel attribute.
type Hint struct {
	Rel         string
	Href        string
	As          string
	HasAs       bool
	CrossOrigin bool
	Media       bool
	Disabled    bool
	Raw         string
}

// Key identifies the hint as "rel:href".
func (h Hint) Key() string { return h.Rel + ":" + h.Href }

// Links returns the <link> tags of text that declare a rel.
func Links(text string) []Hint {
	var hints []Hint
	for _, t := range Tags(text, "link") {
		rel, ok := t.Get("rel")
		if !ok {
			continue
		}
		h := Hint{Rel: strings.ToLower(strings.TrimSpace(rel)), Raw: t.Raw}
		h.Href, _ = t.Get("href")
		h.As, h.HasAs = t.Get("as")
		h.CrossOrigin = t.Has("crossorigin")
		h.Media = t.Has("media")
		h.Disabled = t.Has("disabled")
		hints = append(hints, h)
	}
	return hints
}

var urlPatterns = []*regexp.Regexp{
	regexp.MustCompile(`src\s*=\s*["']([^"']+)["']`),
	regexp.MustCompile(`href\s*=\s*["']([^"']+)["']`),
	regexp.MustCompile(`url\(\s*["']?([^"')]+)["']?\s*\)`),
	regexp.MustCompile(`import\s*\(\s*["']([^"']+)["']\s*\)`),
	regexp.MustCompile(`from\s*["']([^"']+)["']`),
}

// URLs extracts resource references from src=, href=, url(), import() and
// `from` clauses. Each URL appears once, in order of first appearance per
// pattern family.
func URLs(text string) []string {
	seen := make(map[string]bool)
	var urls []string
	for _, re := range urlPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			u := strings.TrimSpace(m[1])
			if u == "" || seen[u] {
				continue
			}
			seen[u] = true
			urls = append(urls, u)
		}
	}
	return urls
}

var dynamicImportRE = regexp.MustCompile(`import\s*\(\s*["']([^"']+)["']\s*\)`)

// DynamicImports returns the module specifiers of import("...") calls found
// in text.
func DynamicImports(text string) []string {
	var out []string
	for _, m := range dynamicImportRE.FindAllStringSubmatch(text, -1) {
		out = append(out, m[1])
	}
	return out
}

// Script is a <script> element.
type Script struct {
	Tag
	Body string
}

// External reports whether the script loads a src.
func (s Script) External() bool { return s.Has("src") }

// Deferred reports whether the script carries async or defer, or is a
// module script, which defers by default.
func (s Script) Deferred() bool {
	if s.Has("async") || s.Has("defer") {
		return true
	}
	typ, _ := s.Get("type")
	return strings.EqualFold(typ, "module")
}

var scriptRE = regexp.MustCompile(`(?is)(<script(?:[\s/][^>]*)?>)(.*?)</script\s*>`)

// Scripts returns the <script> elements of text. Opening tags without a
// matching close tag are returned with an empty body.
func Scripts(text string) []Script {
	var out []Script
	closed := make(map[int]bool)
	for _, m := range scriptRE.FindAllStringSubmatchIndex(text, -1) {
		open := text[m[2]:m[3]]
		out = append(out, Script{
			Tag:  Tag{Name: "script", Raw: open, Offset: m[2], Attrs: ParseAttrs(tagBody(open, "script"))},
			Body: text[m[4]:m[5]],
		})
		closed[m[2]] = true
	}
	for _, t := range Tags(text, "script") {
		if !closed[t.Offset] {
			out = append(out, Script{Tag: t})
		}
	}
	return out
}

// FontFace is one @font-face block.
type FontFace struct {
	Raw         string
	FontDisplay bool
}

var fontFaceRE = regexp.MustCompile(`(?is)@font-face\s*\{[^}]*\}?`)

// FontFaces returns the @font-face blocks of a stylesheet fragment.
func FontFaces(text string) []FontFace {
	var out []FontFace
	for _, raw := range fontFaceRE.FindAllString(text, -1) {
		out = append(out, FontFace{Raw: raw, FontDisplay: strings.Contains(raw, "font-display")})
	}
	return out
}

var cssImportRE = regexp.MustCompile(`@import\s+(?:url\()?\s*["']?([^"');\s]+)`)

// CSSImports returns the targets of @import rules.
func CSSImports(text string) []string {
	var out []string
	for _, m := range cssImportRE.FindAllStringSubmatch(text, -1) {
		out = append(out, m[1])
	}
	return out
}

// GoogleFontsHost is the stylesheet origin of Google Fonts.
const GoogleFontsHost = "fonts.googleapis.com"

// UsesGoogleFonts reports whether text references Google Fonts.
func UsesGoogleFonts(text string) bool {
	return strings.Contains(text, GoogleFontsHost)
}

// HasDisplaySwap reports whether a font reference asks for swap display,
// either as the display=swap URL parameter or the font-display descriptor.
func HasDisplaySwap(text string) bool {
	return strings.Contains(text, "display=swap") || strings.Contains(text, "font-display: swap") ||
		strings.Contains(text, "font-display:swap")
}

// NgFor is one *ngFor directive.
type NgFor struct {
	Raw     string
	TrackBy bool
}

var (
	ngForRE   = regexp.MustCompile(`\*ngFor\s*=\s*"[^"]*let\s+\w+\s+of\s+[^"]*"`)
	trackByRE = regexp.MustCompile(`trackBy\s*:\s*\w+`)
)

// NgFors returns the *ngFor directives of an Angular template.
func NgFors(text string) []NgFor {
	var out []NgFor
	for _, raw := range ngForRE.FindAllString(text, -1) {
		out = append(out, NgFor{Raw: raw, TrackBy: trackByRE.MatchString(raw)})
	}
	return out
}
