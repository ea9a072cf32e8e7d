// Package ast defines the syntax tree analysed by perflint rules.
//
// The tree follows the ESTree shape used by JavaScript tooling, expressed as
// one Go struct per node kind. Optional children are nil when absent; rules
// must treat every child field as possibly missing.
package ast

import "fmt"

// Pos is a location in a source file. Line and Column are 1-based,
// Offset is a 0-based byte offset.
type Pos struct {
	Offset int
	Line   int
	Column int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid reports whether the position carries line information.
func (p Pos) IsValid() bool { return p.Line > 0 }

// Span is the half-open byte range [Start, End) covered by a node.
type Span struct {
	Start Pos
	End   Pos
}

// Node is implemented by every syntax tree node.
type Node interface {
	Kind() Kind
	Span() Span
}

// Loc carries the source span of a node. It is embedded in every node type.
type Loc struct {
	Range Span
}

// Span returns the source range of the node.
func (l *Loc) Span() Span { return l.Range }

// SetSpan records the source range of the node.
func (l *Loc) SetSpan(s Span) { l.Range = s }

// File is one parsed source file.
type File struct {
	Name    string
	Source  []byte
	Program *Program
	// Errors counts syntax errors the parser recovered from.
	Errors int
}

// Text returns the source text covered by n, or "" when the span does not
// fit the file.
func (f *File) Text(n Node) string {
	if f == nil || IsNil(n) {
		return ""
	}
	s := n.Span()
	if s.Start.Offset < 0 || s.End.Offset > len(f.Source) || s.Start.Offset >= s.End.Offset {
		return ""
	}
	return string(f.Source[s.Start.Offset:s.End.Offset])
}
