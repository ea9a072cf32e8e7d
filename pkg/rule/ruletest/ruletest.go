// Package ruletest runs a single rule over a tree through the real
// dispatcher.
package ruletest

import (
	"github.com/curiousdev-oss/web-perf-toolkit/pkg/ast"
	"github.com/curiousdev-oss/web-perf-toolkit/pkg/ast/asttest"
	"github.com/curiousdev-oss/web-perf-toolkit/pkg/engine"
	"github.com/curiousdev-oss/web-perf-toolkit/pkg/rule"
)

// Run checks file with r at its default severity.
func Run(r rule.Rule, opts rule.Options, file *ast.File) []rule.Diagnostic {
	w := engine.NewWalker([]engine.ActiveRule{{Rule: r, Severity: r.Severity(), Options: opts}}, nil)
	return w.Walk(file)
}

// RunBody wraps statements into a file and checks it.
func RunBody(r rule.Rule, opts rule.Options, body ...ast.Node) []rule.Diagnostic {
	return Run(r, opts, asttest.File(body...))
}

// Messages extracts the diagnostic messages.
func Messages(diags []rule.Diagnostic) []string {
	out := make([]string, 0, len(diags))
	for _, d := range diags {
		out = append(out, d.Message)
	}
	return out
}
