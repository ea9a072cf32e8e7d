package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTags(t *testing.T) {
	text := `<div><img src="a.png" width="10" height=20 alt='x' loading><IMG src="b.png"/><imgx src="no"></div>`

	tags := Tags(text, "img")
	require.Len(t, tags, 2)

	first := tags[0]
	assert.True(t, first.Has("width"))
	assert.True(t, first.Has("loading"))
	h, ok := first.Get("height")
	assert.True(t, ok)
	assert.Equal(t, "20", h)
	alt, _ := first.Get("alt")
	assert.Equal(t, "x", alt)

	src, ok := tags[1].Get("src")
	assert.True(t, ok)
	assert.Equal(t, "b.png", src)
	assert.False(t, tags[1].Has("width"))
}

func TestTagsSkipCustomElements(t *testing.T) {
	text := `<img-viewer src="a"></img-viewer><img:x><img/><img>`
	tags := Tags(text, "img")
	require.Len(t, tags, 2)
	assert.Equal(t, "<img/>", tags[0].Raw)
	assert.Equal(t, "<img>", tags[1].Raw)
	assert.Empty(t, tags[1].Attrs)

	assert.False(t, ContainsTag(`<link-card href="x">`, "link"))
	assert.Empty(t, Scripts(`<script-loader src="x.js"></script-loader>`))
}

func TestTagBindings(t *testing.T) {
	tags := Tags(`<img [ngSrc]="url" [attr.width]="w" bind-height="h" :alt="a">`, "img")
	require.Len(t, tags, 1)
	tag := tags[0]

	assert.True(t, tag.Has("ngsrc"))
	assert.True(t, tag.Has("width"))
	assert.True(t, tag.Has("height"))
	assert.True(t, tag.Has("alt"))
	assert.False(t, tag.Has("src"))
}

func TestHasStyleDimensions(t *testing.T) {
	tests := []struct {
		tag  string
		want bool
	}{
		{`<img src="a" style="width: 10px">`, true},
		{`<img src="a" style='aspect-ratio: 16/9'>`, true},
		{`<img src="a" style="border: 0">`, false},
		{`<img src="a">`, false},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			tags := Tags(tt.tag, "img")
			require.Len(t, tags, 1)
			assert.Equal(t, tt.want, tags[0].HasStyleDimensions())
		})
	}
}

func TestTagsMalformedMarkupIsApproximate(t *testing.T) {
	// The tag ends at the first '>', so attributes after it are lost.
	tags := Tags(`<img (load)="n > 1" width="10" height="10">`, "img")
	require.Len(t, tags, 1)
	assert.False(t, tags[0].Has("width"))

	assert.Empty(t, Tags(`<img src="unterminated`, "img"))
}

func TestLinks(t *testing.T) {
	text := `
	<link rel="preload" href="/fonts/inter.woff2" as="font" crossorigin>
	<link rel="stylesheet" href="/app.css" media="print">
	<link href="/no-rel.css">`

	hints := Links(text)
	require.Len(t, hints, 2)

	assert.Equal(t, "preload:/fonts/inter.woff2", hints[0].Key())
	assert.True(t, hints[0].HasAs)
	assert.Equal(t, "font", hints[0].As)
	assert.True(t, hints[0].CrossOrigin)

	assert.Equal(t, "stylesheet", hints[1].Rel)
	assert.True(t, hints[1].Media)
	assert.False(t, hints[1].CrossOrigin)
}

func TestURLs(t *testing.T) {
	text := `<img src="/hero.png"><a href='https://cdn.jsdelivr.net/x.js'></a>
	.bg { background: url(/banner.webp) }
	import("./chunks/chart.js"); import x from "lodash"; <img src="/hero.png">`

	assert.Equal(t, []string{
		"/hero.png",
		"https://cdn.jsdelivr.net/x.js",
		"/banner.webp",
		"./chunks/chart.js",
		"lodash",
	}, URLs(text))
	assert.Empty(t, URLs("plain text"))
}

func TestScripts(t *testing.T) {
	text := `<script src="a.js"></script><script async src="b.js"></script><script type="module" src="c.js"></script><script>var x = 1;</script><script src="d.js">`

	scripts := Scripts(text)
	require.Len(t, scripts, 5)

	assert.True(t, scripts[0].External())
	assert.False(t, scripts[0].Deferred())
	assert.True(t, scripts[1].Deferred())
	assert.True(t, scripts[2].Deferred())
	assert.False(t, scripts[3].External())
	assert.Equal(t, "var x = 1;", scripts[3].Body)
	assert.True(t, scripts[4].External())
	assert.Empty(t, scripts[4].Body)
}

func TestFontFacesAndImports(t *testing.T) {
	css := `@font-face { font-family: A; src: url(a.woff2); }
	@font-face { font-family: B; font-display: swap; }
	@import url("https://fonts.googleapis.com/css2?family=Inter");
	@import './theme.css';`

	faces := FontFaces(css)
	require.Len(t, faces, 2)
	assert.False(t, faces[0].FontDisplay)
	assert.True(t, faces[1].FontDisplay)

	assert.Equal(t, []string{"https://fonts.googleapis.com/css2?family=Inter", "./theme.css"}, CSSImports(css))
	assert.True(t, UsesGoogleFonts(css))
	assert.False(t, HasDisplaySwap(`https://fonts.googleapis.com/css2?family=Inter`))
	assert.True(t, HasDisplaySwap(`https://fonts.googleapis.com/css2?family=Inter&display=swap`))
}

func TestNgFors(t *testing.T) {
	text := `<li *ngFor="let item of items">{{item}}</li>
	<li *ngFor="let row of rows; trackBy: trackById">{{row}}</li>`

	loops := NgFors(text)
	require.Len(t, loops, 2)
	assert.False(t, loops[0].TrackBy)
	assert.True(t, loops[1].TrackBy)
}

func TestDynamicImports(t *testing.T) {
	assert.Equal(t, []string{"three", "./x.js"}, DynamicImports(`await import('three'); import( "./x.js" )`))
}
