package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curiousdev-oss/web-perf-toolkit/pkg/ast"
	. "github.com/curiousdev-oss/web-perf-toolkit/pkg/ast/asttest"
	"github.com/curiousdev-oss/web-perf-toolkit/pkg/rule"
	"github.com/curiousdev-oss/web-perf-toolkit/pkg/rule/ruletest"
)

func TestNoBlockingAPIs(t *testing.T) {
	tests := []struct {
		name string
		node ast.Node
		want []string
	}{
		{"window storage", Expr(Path("window.localStorage")),
			[]string{"Avoid synchronous 'localStorage' which blocks the main thread. Use async storage or cache the value"}},
		{"storage method", Expr(CallPath("sessionStorage.setItem", Str("k"), Str("v"))),
			[]string{"Avoid synchronous 'sessionStorage' which blocks the main thread. Use async storage or cache the value"}},
		{"chained storage", Expr(CallPath("window.localStorage.getItem", Str("k"))),
			[]string{"Avoid synchronous 'localStorage' which blocks the main thread. Use async storage or cache the value"}},
		{"cookie", Expr(Path("document.cookie")),
			[]string{"Avoid synchronous 'document.cookie' which blocks the main thread. Use async cookie libraries or cache cookies"}},
		{"json", Expr(CallPath("JSON.parse", Ident("s"))),
			[]string{"Avoid synchronous 'JSON.parse' which blocks the main thread. Consider streaming JSON parsers for large data"}},
		{"alert", Expr(Call(Ident("alert"), Str("hi"))),
			[]string{"Avoid synchronous 'alert' which blocks the main thread. Use toast notifications or modal dialogs"}},
		{"window alert", Expr(CallPath("window.confirm", Str("sure?"))),
			[]string{"Avoid synchronous 'confirm' which blocks the main thread. Use async modal confirmations"}},
		{"fs", Expr(CallPath("fs.readFileSync", Str("a.txt"))),
			[]string{"Avoid synchronous 'readFileSync' which blocks the main thread. Use fs.promises.readFile or streams"}},
		{"bare sync call", Expr(Call(Ident("execSync"), Str("ls"))),
			[]string{"Avoid synchronous 'execSync' which blocks the main thread. Use exec or spawn with callbacks or promises"}},
		{"console", Expr(CallPath("console.log", Str("x"))), []string{}},
		{"custom", Expr(CallPath("myObject.property")), []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ruletest.Messages(ruletest.RunBody(NoBlockingAPIs{}, nil, tt.node)))
		})
	}
}

func TestNoBlockingAPIsDegenerate(t *testing.T) {
	assert.NotPanics(t, func() {
		diags := ruletest.RunBody(NoBlockingAPIs{}, nil,
			Expr(&ast.MemberExpression{}),
			Expr(&ast.MemberExpression{Property: Ident("localStorage")}),
			Expr(&ast.CallExpression{}),
		)
		assert.Empty(t, diags)
	})
}

func TestNoInefficientLoops(t *testing.T) {
	query := func() ast.Node { return Expr(CallPath("document.querySelector", Str(".a"))) }

	msgs := ruletest.Messages(ruletest.RunBody(NoInefficientLoops{}, nil, For(query())))
	assert.Equal(t, []string{"Avoid 'document.querySelector' inside loops. Cache DOM queries outside loops"}, msgs)
	assert.Empty(t, ruletest.RunBody(NoInefficientLoops{}, nil, query()))

	msgs = ruletest.Messages(ruletest.RunBody(NoInefficientLoops{}, nil,
		ForOf("x", Ident("xs"),
			Expr(CallPath("console.log", Ident("x"))),
			Expr(CallPath("items.map", Arrow())),
		),
	))
	assert.Equal(t, []string{
		"Avoid console.log inside loops. Remove or use conditional logging",
		"Avoid array.map() inside loops. Cache the result or move outside the loop",
	}, msgs)
}

func TestNoInefficientLoopsNestedExit(t *testing.T) {
	diags := ruletest.RunBody(NoInefficientLoops{}, nil,
		While(
			DoWhile(),
			Expr(CallPath("JSON.stringify", Ident("o"))),
		),
		Expr(CallPath("JSON.stringify", Ident("o"))),
	)
	msgs := ruletest.Messages(diags)
	assert.Equal(t, []string{"Avoid 'JSON.stringify' inside loops. Cache serialized strings outside loops"}, msgs)
	assert.Equal(t, rule.SeverityError, diags[0].Severity)
}

func TestNoMemoryLeaksIntervals(t *testing.T) {
	interval := Expr(Call(Ident("setInterval"), Arrow(), Num(1000)))

	msgs := ruletest.Messages(ruletest.RunBody(NoMemoryLeaks{}, nil, interval))
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "setInterval() can cause memory leaks")

	// The clear may come before or after the interval.
	assert.Empty(t, ruletest.RunBody(NoMemoryLeaks{}, nil, Expr(Call(Ident("clearInterval"), Ident("id"))), interval))
	assert.Empty(t, ruletest.RunBody(NoMemoryLeaks{}, nil, interval, Expr(Call(Ident("clearInterval"), Ident("id")))))
}

func TestNoMemoryLeaksEventListeners(t *testing.T) {
	add := Expr(CallPath("window.addEventListener", Str("resize"), Ident("onResize")))

	assert.Empty(t, ruletest.RunBody(NoMemoryLeaks{}, nil,
		add, Expr(CallPath("window.removeEventListener", Str("resize"), Ident("onResize")))))

	msgs := ruletest.Messages(ruletest.RunBody(NoMemoryLeaks{}, nil,
		add, Expr(CallPath("window.removeEventListener", Str("scroll"), Ident("onScroll")))))
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "addEventListener() can cause memory leaks")
}

func TestNoMemoryLeaksImmediateChecks(t *testing.T) {
	tests := []struct {
		name string
		node ast.Node
		want []string
	}{
		{"long timeout", Expr(Call(Ident("setTimeout"), Arrow(), Num(60000))),
			[]string{"setTimeout with 60000ms delay may cause memory leaks. Consider using intervals or shorter delays"}},
		{"short timeout", Expr(Call(Ident("setTimeout"), Arrow(), Num(100))), nil},
		{"stored query", Const("el", CallPath("document.querySelector", Str(".a"))),
			[]string{"Storing DOM element references can cause memory leaks. Consider using weak references or clearing references when done"}},
		{"unstored query", Expr(CallPath("document.querySelector", Str(".a"))), nil},
		{"subscribe", Expr(CallPath("data$.subscribe", Arrow())),
			[]string{"Observable subscriptions can cause memory leaks. Store subscription reference and unsubscribe in ngOnDestroy()"}},
		{"subscribe reference", Expr(Path("data$.subscribe")), nil},
		{"empty ngOnDestroy", Class("C", nil, Method("ngOnDestroy")),
			[]string{"Empty ngOnDestroy() method. Consider implementing cleanup for subscriptions, timers, and event listeners"}},
		{"empty object ngOnDestroy", Expr(Obj(ObjMethod("ngOnDestroy"))),
			[]string{"Empty ngOnDestroy() method. Consider implementing cleanup for subscriptions, timers, and event listeners"}},
		{"implemented ngOnDestroy", Class("C", nil, Method("ngOnDestroy", Expr(CallPath("this.sub.unsubscribe")))), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msgs := ruletest.Messages(ruletest.RunBody(NoMemoryLeaks{}, nil, tt.node))
			if tt.want == nil {
				assert.Empty(t, msgs)
				return
			}
			assert.Equal(t, tt.want, msgs)
		})
	}
}

func TestNoMemoryLeaksClosures(t *testing.T) {
	const closure = "Function may create memory leaks through closure references. Review captured variables and DOM references"

	msgs := ruletest.Messages(ruletest.RunBody(NoMemoryLeaks{}, nil,
		Expr(Arrow(
			Expr(Assign(Path("window.cache"), Obj())),
			Expr(Assign(Path("window.other"), Obj())),
		)),
	))
	assert.Equal(t, []string{closure}, msgs)

	msgs = ruletest.Messages(ruletest.RunBody(NoMemoryLeaks{}, nil,
		Expr(FuncExpr("", Expr(Assign(Path("this.el"), CallPath("document.getElementById", Str("a")))))),
	))
	assert.Contains(t, msgs, closure)
	assert.Len(t, msgs, 2)

	msgs = ruletest.Messages(ruletest.RunBody(NoMemoryLeaks{}, nil,
		Expr(Arrow(Const("buf", New(Ident("Array"), Num(10))))),
	))
	assert.Equal(t, []string{closure}, msgs)

	// The inner function is reported once, not again for the outer one.
	msgs = ruletest.Messages(ruletest.RunBody(NoMemoryLeaks{}, nil,
		Expr(Arrow(Expr(Arrow(Expr(Assign(Path("window.x"), Num(1))))))),
	))
	assert.Equal(t, []string{closure}, msgs)

	assert.Empty(t, ruletest.RunBody(NoMemoryLeaks{}, nil, Expr(Arrow(Expr(Assign(Path("this.count"), Num(1)))))))
}

func TestPreferEfficientDataStructures(t *testing.T) {
	tests := []struct {
		name string
		node ast.Node
		want string
	}{
		{"indexOf", Expr(Bin("!==", CallPath("arr.indexOf", Ident("x")), Neg(1))),
			"Use Set.has() or Array.includes() instead of indexOf() !== -1 for better performance and readability"},
		{"indexOf equality", Expr(Bin("===", CallPath("arr.indexOf", Ident("x")), Neg(1))),
			"Use Set.has() or Array.includes() instead of indexOf() === -1 for better performance and readability"},
		{"find", Expr(Bin("!==", CallPath("arr.find", Arrow()), Ident("undefined"))),
			"Use Array.some() instead of Array.find() for existence checking - it's more efficient"},
		{"filter length", Expr(Member(CallPath("arr.filter", Arrow()), "length")),
			"Use Array.some() instead of Array.filter().length for existence checking - avoids creating intermediate array"},
		{"nested methods", Expr(CallPath("rows.map", ArrowExpr([]string{"r"}, CallPath("r.filter", Ident("ok"))))),
			"Nested array method map().filter() creates performance overhead. Consider optimizing with a single loop or different data structure"},
		{"object keys in loop", For(Expr(CallPath("Object.keys", Ident("o")))),
			"Object.keys() inside loops is inefficient. Cache the result or use Map/Set for frequent lookups"},
		{"json clone", Expr(CallPath("JSON.parse", CallPath("JSON.stringify", Ident("o")))),
			"JSON.parse(JSON.stringify()) for cloning is inefficient. Use structured cloning algorithm or dedicated libraries"},
		{"large array", Expr(New(Ident("Array"), Num(5000))),
			"Creating large Array(5000) may cause performance issues. Consider using typed arrays or lazy initialization"},
		{"regexp in loop", While(Expr(New(Ident("RegExp"), Str("a+")))),
			"Creating RegExp inside loops is inefficient. Move regex creation outside the loop"},
		{"concatenation", Expr(Bin("+", Bin("+", Bin("+", Str("a"), Ident("b")), Str("c")), Ident("d"))),
			"Multiple string concatenations (3) detected. Use template literals or Array.join() for better performance"},
		{"for-in over array", ForIn("k", Ident("itemList")),
			"for-in loop on arrays is inefficient. Use for-of or traditional for loop for better performance"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msgs := ruletest.Messages(ruletest.RunBody(PreferEfficientDataStructures{}, nil, tt.node))
			assert.Equal(t, []string{tt.want}, msgs)
		})
	}
}

func TestPreferEfficientDataStructuresNegatives(t *testing.T) {
	assert.Empty(t, ruletest.RunBody(PreferEfficientDataStructures{}, nil,
		Expr(CallPath("Object.keys", Ident("o"))),
		Expr(New(Ident("RegExp"), Str("a+"))),
		Expr(Bin(">", CallPath("arr.indexOf", Ident("x")), Num(0))),
		Expr(Bin("+", Bin("+", Str("a"), Ident("b")), Str("c"))),
		Expr(New(Ident("Array"), Num(10))),
		ForIn("k", Ident("config")),
	))
}

func TestPreferEfficientDataStructuresLookupTable(t *testing.T) {
	var props []ast.Node
	for _, k := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"} {
		props = append(props, Prop(k, Num(1)))
	}
	diags := ruletest.RunBody(PreferEfficientDataStructures{}, nil, Const("table", Obj(props...)))
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "Consider using Map")

	assert.Empty(t, ruletest.RunBody(PreferEfficientDataStructures{}, nil, Const("small", Obj(props[:10]...))))
}

func TestNoSyncAPIsInRenderNestedScopes(t *testing.T) {
	file := File(
		Class("Widget", nil,
			Method("render",
				Expr(Call(Path("items.forEach"), Arrow(
					Expr(CallPath("localStorage.getItem", Str("k"))),
				))),
				Expr(CallPath("Math.random")),
			),
			Method("helper", Expr(CallPath("JSON.parse", Str("{}")))),
		),
		Func("standalone", Expr(CallPath("Date.now"))),
	)
	msgs := ruletest.Messages(ruletest.Run(NoSyncAPIsInRender{}, nil, file))
	assert.Equal(t, []string{
		"Avoid synchronous 'localStorage.getItem' in render function 'render'. This blocks the main thread and hurts performance. Use async alternatives or move to lifecycle methods.",
		"Avoid synchronous 'Math.random' in render function 'render'. This blocks the main thread and hurts performance. Use async alternatives or move to lifecycle methods.",
	}, msgs)
}

func TestNoSyncAPIsInRenderCalls(t *testing.T) {
	msgs := ruletest.Messages(ruletest.RunBody(NoSyncAPIsInRender{}, nil,
		Expr(Obj(ObjMethod("ngOnInit",
			Expr(Call(Ident("btoa"), Str("x"))),
			Expr(CallPath("xhr.open", Str("GET"), Str("/a"), Bool(false))),
			Expr(CallPath("xhr.open", Str("GET"), Str("/b"), Bool(true))),
		))),
		Expr(Obj(Prop("render", Num(1)))),
		Expr(Call(Ident("atob"), Str("x"))),
	))
	require.Len(t, msgs, 2)
	assert.Contains(t, msgs[0], "'btoa' in render function 'ngOnInit'")
	assert.Contains(t, msgs[1], "'XMLHttpRequest.open (synchronous)'")
}

func TestPreferModernAPIsDateFix(t *testing.T) {
	diags := ruletest.RunBody(PreferModernAPIs{}, nil, Expr(Call(Member(New(Ident("Date")), "getTime"))))
	require.Len(t, diags, 1)
	require.NotNil(t, diags[0].Fix)
	assert.Equal(t, "Date.now()", diags[0].Fix.Edits[0].NewText)

	diags = ruletest.RunBody(PreferModernAPIs{}, nil, Const("d", New(Ident("Date"))))
	require.Len(t, diags, 1)
	assert.Nil(t, diags[0].Fix)
	require.Len(t, diags[0].Suggestions, 1)

	assert.Empty(t, ruletest.RunBody(PreferModernAPIs{}, nil, Const("d", New(Ident("Date"), Str("2020-01-01")))))
}

func TestPreferModernAPIs(t *testing.T) {
	msgs := ruletest.Messages(ruletest.RunBody(PreferModernAPIs{}, nil,
		Expr(CallPath("document.getElementById", Str("a"))),
		Expr(CallPath("s.substr", Num(1))),
		Expr(Assign(Path("el.style.cssText"), Str(""))),
		Expr(CallPath("el.attachEvent", Str("onclick"), Ident("f"))),
		Expr(New(Ident("XMLHttpRequest"))),
		Expr(Call(Ident("setTimeout"), Arrow(), Num(16))),
		Expr(Call(Ident("setTimeout"), Arrow(), Num(1000))),
		Expr(Call(Ident("setInterval"), Arrow(), Num(1000))),
		Expr(Bin("===", Unary("typeof", Ident("fetch")), Str("undefined"))),
		Import("core-js/stable"),
	))
	assert.Equal(t, []string{
		"Legacy API 'document.getElementById' detected. document.querySelector with better caching for better performance.",
		"Legacy API 'String.prototype.substr' detected. String.prototype.substring or slice for better performance.",
		"Legacy API 'element.style.cssText' detected. element.style property assignment or CSS classes for better performance.",
		"Legacy API 'attachEvent' detected. addEventListener for better performance.",
		"Legacy API 'XMLHttpRequest' detected. fetch() API for better performance.",
		"Consider modern alternative: Use requestAnimationFrame for animations",
		"Consider modern alternative: Use requestAnimationFrame for smooth animations",
		"Fetch feature detection found. Ensure you're using modern bundling with polyfills.",
		"Polyfill 'core-js/stable' detected. Verify it's still needed for your target browsers to avoid unnecessary bundle bloat.",
	}, msgs)
}

func TestRuntimeRulesIgnoreOptions(t *testing.T) {
	body := []ast.Node{
		For(Expr(CallPath("document.querySelector", Str(".a")))),
		Expr(Call(Ident("alert"), Str("x"))),
	}
	for _, r := range []rule.Rule{NoBlockingAPIs{}, NoInefficientLoops{}, NoMemoryLeaks{}, PreferEfficientDataStructures{}, NoSyncAPIsInRender{}, PreferModernAPIs{}} {
		t.Run(r.Name(), func(t *testing.T) {
			assert.Equal(t,
				ruletest.RunBody(r, nil, body...),
				ruletest.RunBody(r, rule.Options{}, body...))
		})
	}
}
