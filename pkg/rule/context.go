package rule

import (
	"fmt"
	"go/token"

	"github.com/curiousdev-oss/web-perf-toolkit/pkg/ast"
)

// Path exposes the nodes enclosing the one being visited.
type Path interface {
	// Ancestors returns the enclosing nodes, innermost first. The node
	// currently being visited is not included.
	Ancestors() []ast.Node
}

// Finding is what a rule reports; the context turns it into a Diagnostic.
type Finding struct {
	Node        ast.Node
	Message     string
	Fix         *Fix
	Suggestions []Fix
	// Escalate raises the configured severity by one level.
	Escalate bool
	// Informational reports at info severity regardless of configuration.
	Informational bool
}

// Context is handed to a rule's Create for one file.
type Context struct {
	File     *ast.File
	FilePath string
	Options  Options

	rule     string
	category Category
	severity Severity
	path     Path
	report   func(Diagnostic)
}

// NewContext binds a rule to a file. severity is the configured severity,
// path tracks the traversal and report receives every diagnostic.
func NewContext(file *ast.File, r Rule, severity Severity, opts Options, path Path, report func(Diagnostic)) *Context {
	if opts == nil {
		opts = Options{}
	}
	ctx := &Context{
		File:     file,
		Options:  opts,
		rule:     r.Name(),
		category: r.Category(),
		severity: severity,
		path:     path,
		report:   report,
	}
	if file != nil {
		ctx.FilePath = file.Name
	}
	return ctx
}

// RuleName returns the name of the rule the context belongs to.
func (c *Context) RuleName() string { return c.rule }

// Parent returns the node enclosing the one being visited, or nil.
func (c *Context) Parent() ast.Node {
	if anc := c.Ancestors(); len(anc) > 0 {
		return anc[0]
	}
	return nil
}

// Ancestors returns the enclosing nodes, innermost first.
func (c *Context) Ancestors() []ast.Node {
	if c.path == nil {
		return nil
	}
	return c.path.Ancestors()
}

// Text returns the source text of n.
func (c *Context) Text(n ast.Node) string {
	return c.File.Text(n)
}

// Report records a finding on n at the configured severity.
func (c *Context) Report(n ast.Node, msg string) {
	c.ReportFinding(Finding{Node: n, Message: msg})
}

func (c *Context) Reportf(n ast.Node, format string, args ...any) {
	c.Report(n, fmt.Sprintf(format, args...))
}

func (c *Context) ReportFinding(f Finding) {
	if c.report == nil {
		return
	}
	sev := c.severity
	switch {
	case f.Informational:
		sev = SeverityInfo
	case f.Escalate:
		sev = sev.Escalate()
	}
	d := Diagnostic{
		Rule:        c.rule,
		Category:    c.category,
		Severity:    sev,
		Message:     f.Message,
		Fix:         f.Fix,
		Suggestions: f.Suggestions,
	}
	if !ast.IsNil(f.Node) {
		span := f.Node.Span()
		d.Pos = c.position(span.Start)
		d.End = c.position(span.End)
	} else {
		d.Pos = token.Position{Filename: c.FilePath}
	}
	c.report(d)
}

func (c *Context) position(p ast.Pos) token.Position {
	return token.Position{Filename: c.FilePath, Offset: p.Offset, Line: p.Line, Column: p.Column}
}

// InsertAfter is an edit inserting text right after n.
func InsertAfter(n ast.Node, text string) TextEdit {
	end := n.Span().End.Offset
	return TextEdit{Start: end, End: end, NewText: text}
}

// Replace is an edit replacing n with text.
func Replace(n ast.Node, text string) TextEdit {
	s := n.Span()
	return TextEdit{Start: s.Start.Offset, End: s.End.Offset, NewText: text}
}
