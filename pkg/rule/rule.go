package rule

import (
	"fmt"
	"go/token"
	"strings"
)

type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Escalate returns the next stronger severity, capped at error.
func (s Severity) Escalate() Severity {
	if s >= SeverityError {
		return SeverityError
	}
	return s + 1
}

// ParseSeverity accepts info, warning (or warn) and error, case-insensitively.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "info":
		return SeverityInfo, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "error":
		return SeverityError, nil
	}
	return SeverityInfo, fmt.Errorf("unknown severity %q", s)
}

type Category int

const (
	CategoryRendering Category = iota
	CategoryRuntime
	CategoryBundle
	CategoryLoading
	CategoryAngular
)

func (c Category) String() string {
	switch c {
	case CategoryRendering:
		return "rendering"
	case CategoryRuntime:
		return "runtime"
	case CategoryBundle:
		return "bundle"
	case CategoryLoading:
		return "loading"
	case CategoryAngular:
		return "angular"
	default:
		return "unknown"
	}
}

// TextEdit replaces the byte range [Start, End) of a file with NewText.
// Start == End inserts.
type TextEdit struct {
	Start   int
	End     int
	NewText string
}

// Fix is a set of edits that resolves one diagnostic.
type Fix struct {
	Description string
	Edits       []TextEdit
}

type Diagnostic struct {
	Rule     string
	Category Category
	Severity Severity
	Pos      token.Position
	End      token.Position
	Message  string
	// Fix is applied by --fix. Suggestions are shown but never applied
	// automatically.
	Fix         *Fix
	Suggestions []Fix
}

// Rule is the interface that all lint rules must implement.
type Rule interface {
	Name() string
	Category() Category
	Severity() Severity
	Description() string
	// Create returns the callbacks for one file. Any traversal state the
	// rule needs lives in the closure and is dropped with it.
	Create(ctx *Context) Listeners
}

// Configurable is implemented by rules that accept options.
type Configurable interface {
	Rule
	Schema() Schema
}
