package rule

import (
	"fmt"
	"math"
	"sort"
)

// Options are the raw per-rule options from configuration. Getters never
// fail: a missing key or a value of the wrong type yields the default.
type Options map[string]any

// Strings returns a list of strings. Lists holding anything but strings are
// treated as invalid.
func (o Options) Strings(key string, def []string) []string {
	v, ok := o[key]
	if !ok {
		return def
	}
	switch list := v.(type) {
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return def
			}
			out = append(out, s)
		}
		return out
	}
	return def
}

// Number returns a numeric option.
func (o Options) Number(key string, def float64) float64 {
	v, ok := o[key]
	if !ok {
		return def
	}
	if f, ok := toFloat(v); ok {
		return f
	}
	return def
}

// Bool returns a boolean option.
func (o Options) Bool(key string, def bool) bool {
	if b, ok := o[key].(bool); ok {
		return b
	}
	return def
}

// toFloat accepts finite numbers only; NaN and infinities count as invalid.
func toFloat(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint64:
		f = float64(n)
	case float64:
		f = n
	case float32:
		f = float64(n)
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

type OptionType int

const (
	TypeStringList OptionType = iota
	TypeNumber
	TypeBool
)

func (t OptionType) String() string {
	switch t {
	case TypeStringList:
		return "string list"
	case TypeNumber:
		return "number"
	case TypeBool:
		return "bool"
	default:
		return "unknown"
	}
}

// OptionSpec declares one option key and its default.
type OptionSpec struct {
	Key         string
	Type        OptionType
	Default     any
	Description string
}

// Schema lists the options a rule understands.
type Schema []OptionSpec

// Defaults returns the schema defaults as an Options value.
func (s Schema) Defaults() Options {
	out := make(Options, len(s))
	for _, spec := range s {
		out[spec.Key] = spec.Default
	}
	return out
}

// Validate reports unknown keys and values of the wrong type. The problems
// are advisory: getters already fall back to defaults.
func (s Schema) Validate(o Options) []string {
	specs := make(map[string]OptionSpec, len(s))
	for _, spec := range s {
		specs[spec.Key] = spec
	}
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var problems []string
	for _, k := range keys {
		spec, ok := specs[k]
		if !ok {
			problems = append(problems, fmt.Sprintf("unknown option %q", k))
			continue
		}
		if !spec.Type.accepts(o[k]) {
			problems = append(problems, fmt.Sprintf("option %q should be a %s, using default %v", k, spec.Type, spec.Default))
		}
	}
	return problems
}

func (t OptionType) accepts(v any) bool {
	switch t {
	case TypeStringList:
		single := Options{"v": v}
		return single.Strings("v", nil) != nil
	case TypeNumber:
		_, ok := toFloat(v)
		return ok
	case TypeBool:
		_, ok := v.(bool)
		return ok
	}
	return false
}
