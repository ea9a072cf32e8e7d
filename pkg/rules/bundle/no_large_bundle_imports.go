package bundle

import (
	"github.com/curiousdev-oss/web-perf-toolkit/pkg/ast"
	"github.com/curiousdev-oss/web-perf-toolkit/pkg/markup"
	"github.com/curiousdev-oss/web-perf-toolkit/pkg/rule"
)

const defaultMaxSizeKB = 50

type NoLargeBundleImports struct{}

func (NoLargeBundleImports) Name() string            { return "no-large-bundle-imports" }
func (NoLargeBundleImports) Category() rule.Category { return rule.CategoryBundle }
func (NoLargeBundleImports) Severity() rule.Severity { return rule.SeverityWarning }
func (NoLargeBundleImports) Description() string {
	return "Flags imports of large libraries and import shapes that defeat tree-shaking"
}

func (NoLargeBundleImports) Schema() rule.Schema {
	return rule.Schema{
		{Key: "maxSize", Type: rule.TypeNumber, Default: defaultMaxSizeKB, Description: "size in KB from which a library counts as large"},
		{Key: "allowedLarge", Type: rule.TypeStringList, Default: []string{}, Description: "libraries exempt from size checks"},
	}
}

func (NoLargeBundleImports) Create(ctx *rule.Context) rule.Listeners {
	maxSize := ctx.Options.Number("maxSize", defaultMaxSizeKB)
	allowed := make(map[string]bool)
	for _, name := range ctx.Options.Strings("allowedLarge", nil) {
		allowed[name] = true
	}

	checkSize := func(n ast.Node, source string) {
		lib, ok := lookupLibrary(source)
		if !ok || allowed[lib.name] || allowed[source] {
			return
		}
		if float64(lib.sizeKB) >= maxSize {
			ctx.Reportf(n, "Large library '%s' (%dKB) detected. Consider: %s", lib.name, lib.sizeKB, lib.suggestion)
			return
		}
		ctx.Reportf(n, "Medium-sized library '%s' (%dKB). Ensure tree-shaking: %s", lib.name, lib.sizeKB, lib.suggestion)
	}

	l := rule.Listeners{}

	l.On(func(n ast.Node) {
		imp, ok := n.(*ast.ImportDeclaration)
		if !ok || imp.Source == nil {
			return
		}
		source := imp.Source.Value
		checkSize(imp, source)

		for _, spec := range imp.Specifiers {
			switch spec.(type) {
			case *ast.ImportNamespaceSpecifier:
				ctx.Reportf(spec, "Namespace import from '%s' imports the entire library. Use specific imports to enable tree-shaking.", source)
			case *ast.ImportDefaultSpecifier:
				if wholeLibraryDefault[source] {
					ctx.Reportf(spec, "Default import from '%s' may import the entire library. Use specific named imports for better tree-shaking.", source)
				}
			}
		}
	}, ast.KindImportDeclaration)

	l.On(func(n ast.Node) {
		call, ok := n.(*ast.CallExpression)
		if !ok || ast.CalleeName(call) != "require" {
			return
		}
		if source, ok := ast.StringValue(ast.Arg(call, 0)); ok {
			checkSize(call, source)
		}
	}, ast.KindCallExpression)

	l.On(func(n ast.Node) {
		imp, ok := n.(*ast.ImportExpression)
		if !ok {
			return
		}
		source, ok := ast.StringValue(imp.Source)
		if !ok {
			return
		}
		if _, known := lookupLibrary(source); known {
			ctx.ReportFinding(rule.Finding{
				Node:          imp,
				Message:       "Good! Dynamic import of '" + source + "' helps keep initial bundle size small.",
				Informational: true,
			})
		}
	}, ast.KindImportExpression)

	l.On(func(n ast.Node) {
		exp, ok := n.(*ast.ExportAllDeclaration)
		if !ok || exp.Source == nil {
			return
		}
		if _, known := lookupLibrary(exp.Source.Value); known {
			ctx.Reportf(exp, "Re-exporting all from '%s' prevents tree-shaking. Export specific items instead.", exp.Source.Value)
		}
	}, ast.KindExportAllDeclaration)

	l.On(func(n ast.Node) {
		tpl, ok := n.(*ast.TemplateLiteral)
		if !ok {
			return
		}
		seen := make(map[string]bool)
		for _, source := range markup.DynamicImports(tpl.Raw) {
			if _, known := lookupLibrary(source); known && !seen[source] {
				seen[source] = true
				ctx.ReportFinding(rule.Finding{
					Node:          tpl,
					Message:       "Good practice: Dynamic import of '" + source + "' in template helps performance.",
					Informational: true,
				})
			}
		}
	}, ast.KindTemplateLiteral)

	return l
}

func init() {
	rule.Register(NoLargeBundleImports{})
}
