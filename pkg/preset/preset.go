// Package preset defines the named rule sets a configuration can extend.
package preset

import (
	"maps"
	"slices"

	"github.com/curiousdev-oss/web-perf-toolkit/pkg/rule"
)

// Setting is how a preset configures one rule. Rules not listed in a preset
// are disabled by it.
type Setting struct {
	Severity rule.Severity
	Options  rule.Options
}

type Preset struct {
	Name        string
	Description string
	Rules       map[string]Setting
}

// Each call builds fresh maps so callers may modify the result.
var presets = map[string]func() Preset{
	"recommended": recommended,
	"strict":      strict,
	"angular":     angular,
}

// Get returns the preset called name.
func Get(name string) (Preset, bool) {
	build, ok := presets[name]
	if !ok {
		return Preset{}, false
	}
	return build(), true
}

// Names returns the preset names, sorted.
func Names() []string {
	return slices.Sorted(maps.Keys(presets))
}

// All returns every preset sorted by name.
func All() []Preset {
	out := make([]Preset, 0, len(presets))
	for _, name := range Names() {
		out = append(out, presets[name]())
	}
	return out
}

const (
	warn = rule.SeverityWarning
	fail = rule.SeverityError
)

func recommended() Preset {
	return Preset{
		Name:        "recommended",
		Description: "Every general web rule; layout, leak and blocking checks fail the run",
		Rules: map[string]Setting{
			"img-requires-dimensions": {Severity: fail},
			"no-heavy-namespace-imports": {Severity: fail, Options: rule.Options{
				"deny": []any{"lodash", "moment", "rxjs", "date-fns"},
			}},
			"no-blocking-apis":                 {Severity: warn},
			"no-inefficient-loops":             {Severity: fail},
			"prefer-lazy-loading":              {Severity: warn},
			"no-memory-leaks":                  {Severity: fail},
			"no-expensive-dom-operations":      {Severity: warn},
			"prefer-efficient-data-structures": {Severity: warn},
			"no-sync-apis-in-render":           {Severity: fail},
			"prefer-modern-apis":               {Severity: warn},
			"no-large-bundle-imports":          {Severity: warn},
			"prefer-web-vitals-optimizations":  {Severity: warn},
			"no-render-blocking-resources":     {Severity: fail},
			"prefer-resource-hints":            {Severity: warn},
		},
	}
}

func strict() Preset {
	p := recommended()
	p.Name = "strict"
	p.Description = "Every general web rule at error with a wider import denylist"
	for name, s := range p.Rules {
		s.Severity = fail
		p.Rules[name] = s
	}
	p.Rules["no-heavy-namespace-imports"] = Setting{Severity: fail, Options: rule.Options{
		"deny": []any{"lodash", "moment", "rxjs", "date-fns", "chart.js", "d3"},
	}}
	return p
}

func angular() Preset {
	p := recommended()
	p.Name = "angular"
	p.Description = "Recommended tuned for Angular applications, plus the Angular rules"
	p.Rules["no-heavy-namespace-imports"] = Setting{Severity: fail, Options: rule.Options{
		"deny": []any{"lodash", "moment", "rxjs"},
	}}
	p.Rules["no-large-bundle-imports"] = Setting{Severity: warn, Options: rule.Options{
		"maxSize":      75,
		"allowedLarge": []any{"@angular/core", "@angular/common"},
	}}
	p.Rules["prefer-web-vitals-optimizations"] = Setting{Severity: fail}
	p.Rules["no-render-blocking-resources"] = Setting{Severity: warn}
	for _, name := range []string{
		"angular-img-ngoptimizedimage",
		"angular-onpush-change-detection",
		"angular-prefer-async-pipe",
		"angular-require-trackby",
	} {
		p.Rules[name] = Setting{Severity: warn}
	}
	return p
}
