package report

import (
	"encoding/json"
	"io"

	"github.com/curiousdev-oss/web-perf-toolkit/pkg/rule"
)

const sarifSchema = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/main/sarif-2.1/schema/sarif-schema-2.1.0.json"

// SARIFReporter writes a SARIF 2.1.0 log with one run.
type SARIFReporter struct {
	Version  string
	Registry *rule.Registry
}

type sarifLog struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version,omitempty"`
	InformationURI string      `json:"informationUri"`
	Rules          []sarifRule `json:"rules,omitempty"`
}

type sarifRule struct {
	ID                   string             `json:"id"`
	ShortDescription     sarifMessage       `json:"shortDescription"`
	DefaultConfiguration sarifConfiguration `json:"defaultConfiguration"`
	Properties           sarifProperties    `json:"properties"`
}

type sarifConfiguration struct {
	Level string `json:"level"`
}

type sarifProperties struct {
	Tags []string `json:"tags"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	RuleIndex int             `json:"ruleIndex"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations"`
	Fixes     []sarifFix      `json:"fixes,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           sarifRegion           `json:"region"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   int `json:"startLine,omitempty"`
	StartColumn int `json:"startColumn,omitempty"`
	EndLine     int `json:"endLine,omitempty"`
	EndColumn   int `json:"endColumn,omitempty"`
}

type sarifByteRegion struct {
	CharOffset int `json:"charOffset"`
	CharLength int `json:"charLength"`
}

type sarifFix struct {
	Description     sarifMessage          `json:"description"`
	ArtifactChanges []sarifArtifactChange `json:"artifactChanges"`
}

type sarifArtifactChange struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Replacements     []sarifReplacement    `json:"replacements"`
}

type sarifReplacement struct {
	DeletedRegion   sarifByteRegion `json:"deletedRegion"`
	InsertedContent *sarifMessage   `json:"insertedContent,omitempty"`
}

func (r *SARIFReporter) Report(w io.Writer, diagnostics []rule.Diagnostic) error {
	index := make(map[string]int)
	var rules []sarifRule
	results := make([]sarifResult, 0, len(diagnostics))

	for _, d := range diagnostics {
		idx, seen := index[d.Rule]
		if !seen {
			idx = len(rules)
			index[d.Rule] = idx
			rules = append(rules, r.describe(d))
		}

		res := sarifResult{
			RuleID:    d.Rule,
			RuleIndex: idx,
			Level:     sarifLevel(d.Severity),
			Message:   sarifMessage{Text: d.Message},
			Locations: []sarifLocation{{
				PhysicalLocation: sarifPhysicalLocation{
					ArtifactLocation: sarifArtifactLocation{URI: d.Pos.Filename},
					Region: sarifRegion{
						StartLine:   d.Pos.Line,
						StartColumn: d.Pos.Column,
						EndLine:     d.End.Line,
						EndColumn:   d.End.Column,
					},
				},
			}},
		}
		if d.Fix != nil {
			res.Fixes = append(res.Fixes, sarifFixFor(d.Pos.Filename, *d.Fix))
		}
		results = append(results, res)
	}

	log := sarifLog{
		Version: "2.1.0",
		Schema:  sarifSchema,
		Runs: []sarifRun{{
			Tool: sarifTool{
				Driver: sarifDriver{
					Name:           "perflint",
					Version:        r.Version,
					InformationURI: "https://github.com/curiousdev-oss/web-perf-toolkit",
					Rules:          rules,
				},
			},
			Results: results,
		}},
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(log)
}

func (r *SARIFReporter) describe(d rule.Diagnostic) sarifRule {
	sr := sarifRule{
		ID:                   d.Rule,
		ShortDescription:     sarifMessage{Text: d.Rule},
		DefaultConfiguration: sarifConfiguration{Level: sarifLevel(d.Severity)},
		Properties:           sarifProperties{Tags: []string{"performance", d.Category.String()}},
	}
	if r.Registry == nil {
		return sr
	}
	if rr, ok := r.Registry.Get(d.Rule); ok {
		sr.ShortDescription.Text = rr.Description()
		sr.DefaultConfiguration.Level = sarifLevel(rr.Severity())
	}
	return sr
}

func sarifFixFor(uri string, f rule.Fix) sarifFix {
	replacements := make([]sarifReplacement, 0, len(f.Edits))
	for _, e := range f.Edits {
		rep := sarifReplacement{DeletedRegion: sarifByteRegion{CharOffset: e.Start, CharLength: e.End - e.Start}}
		if e.NewText != "" {
			rep.InsertedContent = &sarifMessage{Text: e.NewText}
		}
		replacements = append(replacements, rep)
	}
	return sarifFix{
		Description: sarifMessage{Text: f.Description},
		ArtifactChanges: []sarifArtifactChange{{
			ArtifactLocation: sarifArtifactLocation{URI: uri},
			Replacements:     replacements,
		}},
	}
}

func sarifLevel(s rule.Severity) string {
	switch s {
	case rule.SeverityError:
		return "error"
	case rule.SeverityWarning:
		return "warning"
	default:
		return "note"
	}
}
