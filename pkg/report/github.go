package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/curiousdev-oss/web-perf-toolkit/pkg/rule"
)

// GitHubReporter writes GitHub Actions workflow commands, which show up as
// annotations on the pull request diff.
type GitHubReporter struct{}

var (
	dataEscaper     = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A")
	propertyEscaper = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A", ":", "%3A", ",", "%2C")
)

func (r *GitHubReporter) Report(w io.Writer, diagnostics []rule.Diagnostic) error {
	for _, d := range diagnostics {
		props := []string{
			"file=" + propertyEscaper.Replace(d.Pos.Filename),
			fmt.Sprintf("line=%d", d.Pos.Line),
			fmt.Sprintf("col=%d", d.Pos.Column),
		}
		if d.End.Line > 0 {
			props = append(props, fmt.Sprintf("endLine=%d", d.End.Line))
		}
		props = append(props, "title="+propertyEscaper.Replace(d.Rule))

		_, err := fmt.Fprintf(w, "::%s %s::%s\n", githubLevel(d.Severity), strings.Join(props, ","), dataEscaper.Replace(d.Message))
		if err != nil {
			return err
		}
	}
	return nil
}

func githubLevel(s rule.Severity) string {
	switch s {
	case rule.SeverityError:
		return "error"
	case rule.SeverityWarning:
		return "warning"
	default:
		return "notice"
	}
}
