// Package markup extracts structure from HTML and CSS embedded in string and
// template literals.
//
// Extraction is regular-expression based and deliberately approximate: tags
// are matched up to the first '>', attributes are split without entity
// decoding and nothing is validated. Nested or malformed markup yields
// partial results rather than errors.
package markup

import (
	"regexp"
	"strings"
)

// Attr is one attribute of a tag. Value is empty when the attribute has no
// value (HasValue false) or an empty one.
type Attr struct {
	Name     string
	Value    string
	HasValue bool
}

// Tag is one opening tag found in a text.
type Tag struct {
	Name   string
	Raw    string
	Offset int
	Attrs  []Attr
}

var (
	attrRE = regexp.MustCompile(`([^\s=/>"']+)(?:\s*=\s*(?:"([^"]*)"|'([^']*)'|([^\s"'>]+)))?`)

	tagCache = map[string]*regexp.Regexp{}
)

func tagRE(name string) *regexp.Regexp {
	if re, ok := tagCache[name]; ok {
		return re
	}
	// The name must end at whitespace, '/' or '>' so custom elements such
	// as <img-viewer> are not taken for <img>.
	return regexp.MustCompile(`(?is)<` + regexp.QuoteMeta(name) + `(?:[\s/][^>]*)?>`)
}

func init() {
	for _, name := range []string{"img", "link", "script", "div"} {
		tagCache[name] = tagRE(name)
	}
}

// Tags returns every opening tag called name in text, in order.
func Tags(text, name string) []Tag {
	re := tagRE(name)
	var tags []Tag
	for _, loc := range re.FindAllStringIndex(text, -1) {
		raw := text[loc[0]:loc[1]]
		tags = append(tags, Tag{
			Name:   name,
			Raw:    raw,
			Offset: loc[0],
			Attrs:  ParseAttrs(tagBody(raw, name)),
		})
	}
	return tags
}

// tagBody strips "<name" and the closing '>' or '/>'.
func tagBody(raw, name string) string {
	body := raw[1+len(name):]
	body = strings.TrimSuffix(body, ">")
	return strings.TrimSuffix(body, "/")
}

// ParseAttrs splits the inside of a tag into attributes.
func ParseAttrs(body string) []Attr {
	var attrs []Attr
	for _, m := range attrRE.FindAllStringSubmatchIndex(body, -1) {
		a := Attr{Name: body[m[2]:m[3]]}
		for g := 2; g <= 4; g++ {
			if m[2*g] >= 0 {
				a.Value = body[m[2*g]:m[2*g+1]]
				a.HasValue = true
				break
			}
		}
		attrs = append(attrs, a)
	}
	return attrs
}

// Get returns the value of the attribute called name. Angular bindings such
// as [name], [attr.name] and bind-name, and Vue's :name, are treated as the
// same attribute. Matching is case-insensitive.
func (t Tag) Get(name string) (string, bool) {
	for _, a := range t.Attrs {
		if normalizeAttr(a.Name) == strings.ToLower(name) {
			return a.Value, true
		}
	}
	return "", false
}

// Has reports whether the tag declares the attribute in any binding form.
func (t Tag) Has(name string) bool {
	_, ok := t.Get(name)
	return ok
}

func normalizeAttr(name string) string {
	n := strings.ToLower(name)
	switch {
	case strings.HasPrefix(n, "[") && strings.HasSuffix(n, "]"):
		n = strings.TrimPrefix(n[1:len(n)-1], "attr.")
	case strings.HasPrefix(n, "bind-"):
		n = strings.TrimPrefix(n, "bind-")
	case strings.HasPrefix(n, ":"):
		n = n[1:]
	case strings.HasPrefix(n, "v-bind:"):
		n = strings.TrimPrefix(n, "v-bind:")
	}
	return n
}

var styleDimensionRE = regexp.MustCompile(`(?i)width|height|aspect-ratio`)

// HasStyleDimensions reports whether the inline style mentions a width,
// height or aspect ratio.
func (t Tag) HasStyleDimensions() bool {
	style, ok := t.Get("style")
	return ok && styleDimensionRE.MatchString(style)
}

// ContainsTag reports whether text holds at least one opening tag called
// name.
func ContainsTag(text, name string) bool {
	return tagRE(name).MatchString(text)
}
