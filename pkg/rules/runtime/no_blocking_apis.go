// Package runtime holds rules about work done on the main thread while the
// page is running.
package runtime

import (
	"github.com/curiousdev-oss/web-perf-toolkit/pkg/ast"
	"github.com/curiousdev-oss/web-perf-toolkit/pkg/rule"
)

const storageAdvice = "Use async storage or cache the value"

// blockingAPIs maps a synchronous API to its asynchronous replacement.
var blockingAPIs = map[string]string{
	"localStorage":    storageAdvice,
	"sessionStorage":  storageAdvice,
	"document.cookie": "Use async cookie libraries or cache cookies",
	"alert":           "Use toast notifications or modal dialogs",
	"confirm":         "Use async modal confirmations",
	"prompt":          "Use form inputs or async modal prompts",
	"execSync":        "Use exec or spawn with callbacks or promises",
	"readFileSync":    "Use fs.promises.readFile or streams",
	"writeFileSync":   "Use fs.promises.writeFile or streams",
	"mkdirSync":       "Use fs.promises.mkdir",
	"rmSync":          "Use fs.promises.rm",
	"statSync":        "Use fs.promises.stat",
	"JSON.parse":      "Consider streaming JSON parsers for large data",
	"JSON.stringify":  "Consider streaming JSON serializers for large data",
}

// globalObjects expose browser globals as properties.
var globalObjects = map[string]bool{
	"window":     true,
	"globalThis": true,
	"self":       true,
}

type NoBlockingAPIs struct{}

func (NoBlockingAPIs) Name() string            { return "no-blocking-apis" }
func (NoBlockingAPIs) Category() rule.Category { return rule.CategoryRuntime }
func (NoBlockingAPIs) Severity() rule.Severity { return rule.SeverityWarning }
func (NoBlockingAPIs) Description() string {
	return "Disallows synchronous/blocking APIs that stall the main thread"
}

func (NoBlockingAPIs) Create(ctx *rule.Context) rule.Listeners {
	report := func(n ast.Node, api string) {
		ctx.Reportf(n, "Avoid synchronous '%s' which blocks the main thread. %s", api, blockingAPIs[api])
	}

	l := rule.Listeners{}

	l.On(func(n ast.Node) {
		m, ok := n.(*ast.MemberExpression)
		if !ok {
			return
		}
		obj, prop := ast.ObjectName(m), ast.PropertyName(m)
		if prop == "" {
			return
		}
		switch {
		case globalObjects[obj] && isBlocking(prop):
			report(m, prop)
		case obj == "localStorage" || obj == "sessionStorage":
			report(m, obj)
		case obj != "" && isBlocking(obj+"."+prop):
			report(m, obj+"."+prop)
		case isSyncFS(prop):
			report(m, prop)
		}
	}, ast.KindMemberExpression)

	l.On(func(n ast.Node) {
		if name := ast.CalleeName(n); name != "" && isBlocking(name) {
			report(n, name)
		}
	}, ast.KindCallExpression)

	return l
}

func isBlocking(api string) bool {
	_, ok := blockingAPIs[api]
	return ok
}

// isSyncFS reports whether api is one of the Node.js synchronous calls,
// which are blocking whatever object they are reached through.
func isSyncFS(api string) bool {
	switch api {
	case "execSync", "readFileSync", "writeFileSync", "mkdirSync", "rmSync", "statSync":
		return true
	}
	return false
}

func init() {
	rule.Register(NoBlockingAPIs{})
}
