// Package bundle holds rules about what ends up in the JavaScript bundle.
package bundle

import "strings"

type library struct {
	name       string
	sizeKB     int
	suggestion string
}

// knownLibraries are approximate minified sizes of commonly imported
// packages.
var knownLibraries = []library{
	{"moment", 300, "date-fns or native Intl"},
	{"lodash", 100, "tree-shake specific functions or native methods"},
	{"jquery", 85, "native DOM APIs or modern frameworks"},
	{"three", 600, "dynamic import for 3D features"},
	{"axios", 50, "native fetch() API"},
	{"chart.js", 200, "lighter charting libraries or dynamic import"},
	{"d3", 250, "import specific d3 modules such as d3-scale or d3-shape"},
	{"monaco-editor", 2000, "dynamic import when the editor opens"},
	{"@angular/material", 200, "tree-shake specific components"},
	{"@angular/animations", 50, "CSS animations for simple cases"},
	{"@angular/core", 120, "keep it shared across lazy-loaded routes"},
	{"@angular/common", 60, "keep it shared across lazy-loaded routes"},
}

// lookupLibrary matches a module specifier against the table. Deep imports
// such as "lodash/debounce" match their package.
func lookupLibrary(source string) (library, bool) {
	for _, lib := range knownLibraries {
		if source == lib.name || strings.HasPrefix(source, lib.name+"/") {
			return lib, true
		}
	}
	return library{}, false
}

// wholeLibraryDefault lists packages whose default export is the entire
// library.
var wholeLibraryDefault = map[string]bool{
	"lodash": true,
	"moment": true,
}
