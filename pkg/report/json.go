package report

import (
	"encoding/json"
	"io"

	"github.com/curiousdev-oss/web-perf-toolkit/pkg/rule"
)

type JSONReporter struct{}

type jsonOutput struct {
	Diagnostics []jsonDiagnostic `json:"diagnostics"`
	Summary     Summary          `json:"summary"`
}

type jsonDiagnostic struct {
	Rule        string    `json:"rule"`
	Category    string    `json:"category"`
	Severity    string    `json:"severity"`
	File        string    `json:"file"`
	Line        int       `json:"line"`
	Column      int       `json:"column"`
	EndLine     int       `json:"endLine,omitempty"`
	EndColumn   int       `json:"endColumn,omitempty"`
	Message     string    `json:"message"`
	Fix         *jsonFix  `json:"fix,omitempty"`
	Suggestions []jsonFix `json:"suggestions,omitempty"`
}

type jsonFix struct {
	Description string     `json:"description"`
	Edits       []jsonEdit `json:"edits"`
}

// jsonEdit offsets are bytes into the original file.
type jsonEdit struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text"`
}

func toJSONFix(f rule.Fix) jsonFix {
	out := jsonFix{Description: f.Description, Edits: make([]jsonEdit, 0, len(f.Edits))}
	for _, e := range f.Edits {
		out.Edits = append(out.Edits, jsonEdit{Start: e.Start, End: e.End, Text: e.NewText})
	}
	return out
}

func (r *JSONReporter) Report(w io.Writer, diagnostics []rule.Diagnostic) error {
	out := jsonOutput{
		Diagnostics: make([]jsonDiagnostic, 0, len(diagnostics)),
		Summary:     Summarize(diagnostics),
	}
	for _, d := range diagnostics {
		jd := jsonDiagnostic{
			Rule:      d.Rule,
			Category:  d.Category.String(),
			Severity:  d.Severity.String(),
			File:      d.Pos.Filename,
			Line:      d.Pos.Line,
			Column:    d.Pos.Column,
			EndLine:   d.End.Line,
			EndColumn: d.End.Column,
			Message:   d.Message,
		}
		if d.Fix != nil {
			f := toJSONFix(*d.Fix)
			jd.Fix = &f
		}
		for _, s := range d.Suggestions {
			jd.Suggestions = append(jd.Suggestions, toJSONFix(s))
		}
		out.Diagnostics = append(out.Diagnostics, jd)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
