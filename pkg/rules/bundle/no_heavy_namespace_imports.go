package bundle

import (
	"github.com/curiousdev-oss/web-perf-toolkit/pkg/ast"
	"github.com/curiousdev-oss/web-perf-toolkit/pkg/rule"
)

var defaultDeny = []string{"lodash", "moment"}

type NoHeavyNamespaceImports struct{}

func (NoHeavyNamespaceImports) Name() string            { return "no-heavy-namespace-imports" }
func (NoHeavyNamespaceImports) Category() rule.Category { return rule.CategoryBundle }
func (NoHeavyNamespaceImports) Severity() rule.Severity { return rule.SeverityError }
func (NoHeavyNamespaceImports) Description() string {
	return "Disallows namespace imports from heavy libraries"
}

func (NoHeavyNamespaceImports) Schema() rule.Schema {
	return rule.Schema{
		{Key: "deny", Type: rule.TypeStringList, Default: defaultDeny, Description: "module names that must not be namespace-imported"},
	}
}

func (NoHeavyNamespaceImports) Create(ctx *rule.Context) rule.Listeners {
	deny := make(map[string]bool)
	for _, name := range ctx.Options.Strings("deny", defaultDeny) {
		deny[name] = true
	}

	return rule.Listeners{}.On(func(n ast.Node) {
		imp, ok := n.(*ast.ImportDeclaration)
		if !ok || imp.Source == nil || !deny[imp.Source.Value] {
			return
		}
		for _, spec := range imp.Specifiers {
			if !ast.IsNil(spec) && spec.Kind() == ast.KindImportNamespaceSpecifier {
				ctx.Reportf(imp, "Avoid namespace import from '%s'. Import specific modules or use lighter alternatives.", imp.Source.Value)
				return
			}
		}
	}, ast.KindImportDeclaration)
}

func init() {
	rule.Register(NoHeavyNamespaceImports{})
}
