package report

import (
	"fmt"
	"io"

	"github.com/curiousdev-oss/web-perf-toolkit/pkg/rule"
)

const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
)

// TextReporter groups diagnostics under their file, one per line.
type TextReporter struct {
	Color bool
}

func (r *TextReporter) Report(w io.Writer, diagnostics []rule.Diagnostic) error {
	paint := func(color, s string) string {
		if !r.Color {
			return s
		}
		return color + s + colorReset
	}

	file := ""
	for i, d := range diagnostics {
		if i == 0 || d.Pos.Filename != file {
			file = d.Pos.Filename
			if i > 0 {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintln(w, paint(colorBold, file)); err != nil {
				return err
			}
		}
		loc := fmt.Sprintf("%d:%d", d.Pos.Line, d.Pos.Column)
		sev := fmt.Sprintf("%-7s", d.Severity)
		_, err := fmt.Fprintf(w, "  %s  %s  %s  %s\n",
			paint(colorGray, fmt.Sprintf("%-8s", loc)),
			paint(colorSeverity(d.Severity), sev),
			d.Message,
			paint(colorCyan, d.Rule),
		)
		if err != nil {
			return err
		}
		for _, s := range d.Suggestions {
			if _, err := fmt.Fprintf(w, "            %s %s\n", paint(colorGray, "suggestion:"), s.Description); err != nil {
				return err
			}
		}
	}

	s := Summarize(diagnostics)
	if s.Total() == 0 {
		return nil
	}
	line := fmt.Sprintf("\n%s (%s, %s, %s)\n",
		plural(s.Total(), "problem"),
		plural(s.Errors, "error"),
		plural(s.Warnings, "warning"),
		plural(s.Infos, "info"))
	if s.Errors > 0 {
		line = paint(colorRed, line)
	}
	if _, err := io.WriteString(w, line); err != nil {
		return err
	}
	if s.Fixable > 0 {
		_, err := fmt.Fprintf(w, "%s fixable with --fix\n", plural(s.Fixable, "problem"))
		return err
	}
	return nil
}

func plural(n int, word string) string {
	if n != 1 && word != "info" {
		word += "s"
	}
	return fmt.Sprintf("%d %s", n, word)
}

func colorSeverity(s rule.Severity) string {
	switch s {
	case rule.SeverityError:
		return colorRed
	case rule.SeverityWarning:
		return colorYellow
	case rule.SeverityInfo:
		return colorCyan
	default:
		return colorReset
	}
}
