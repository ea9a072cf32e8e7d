// Package report renders diagnostics for people and for tools.
package report

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/curiousdev-oss/web-perf-toolkit/pkg/rule"
)

var ErrUnknownFormat = errors.New("unknown output format")

type Reporter interface {
	Report(w io.Writer, diagnostics []rule.Diagnostic) error
}

type Options struct {
	Color bool
	// Version is the tool version recorded in SARIF output.
	Version string
	// Registry supplies rule descriptions. Nil leaves them out.
	Registry *rule.Registry
}

var formats = []string{"text", "json", "sarif", "github"}

// Formats lists the accepted format names.
func Formats() []string { return formats }

func New(format string, opts Options) (Reporter, error) {
	switch format {
	case "", "text":
		return &TextReporter{Color: opts.Color}, nil
	case "json":
		return &JSONReporter{}, nil
	case "sarif":
		return &SARIFReporter{Version: opts.Version, Registry: opts.Registry}, nil
	case "github":
		return &GitHubReporter{}, nil
	}
	return nil, fmt.Errorf("%q: %w", format, ErrUnknownFormat)
}

// ColorEnabled reports whether colored output should be written to w: want
// must be set, NO_COLOR unset and w a terminal.
func ColorEnabled(w io.Writer, want bool) bool {
	if !want || os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Summary counts diagnostics by severity.
type Summary struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Infos    int `json:"infos"`
	Fixable  int `json:"fixable"`
}

func Summarize(diagnostics []rule.Diagnostic) Summary {
	var s Summary
	for _, d := range diagnostics {
		switch d.Severity {
		case rule.SeverityError:
			s.Errors++
		case rule.SeverityWarning:
			s.Warnings++
		default:
			s.Infos++
		}
		if d.Fix != nil {
			s.Fixable++
		}
	}
	return s
}

func (s Summary) Total() int { return s.Errors + s.Warnings + s.Infos }
