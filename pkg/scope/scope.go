// Package scope tracks lexical context during a single traversal: how many
// loops enclose the current node and which render or lifecycle function it
// runs in.
//
// Both trackers are meant to be owned by one rule instance for one file and
// driven by enter/exit hooks registered for the same node kinds.
package scope

import (
	"github.com/curiousdev-oss/web-perf-toolkit/pkg/ast"
)

// LoopKinds are the constructs that open a loop.
var LoopKinds = []ast.Kind{
	ast.KindForStatement,
	ast.KindForInStatement,
	ast.KindForOfStatement,
	ast.KindWhileStatement,
	ast.KindDoWhileStatement,
}

// LoopDepth counts enclosing loops. The zero value is ready to use.
type LoopDepth struct {
	depth int
}

// Enter records entry into a loop.
func (d *LoopDepth) Enter(ast.Node) { d.depth++ }

// Exit records leaving a loop. The depth never drops below zero.
func (d *LoopDepth) Exit(ast.Node) {
	if d.depth > 0 {
		d.depth--
	}
}

// Depth returns the number of open loops.
func (d *LoopDepth) Depth() int { return d.depth }

// InLoop reports whether at least one loop is open.
func (d *LoopDepth) InLoop() bool { return d.depth > 0 }

// FunctionKinds are the constructs that may open a render scope.
var FunctionKinds = []ast.Kind{
	ast.KindFunctionDeclaration,
	ast.KindFunctionExpression,
	ast.KindArrowFunctionExpression,
	ast.KindMethodDefinition,
	ast.KindProperty,
}

type frame struct {
	name   string
	render bool
}

// RenderScope is a stack of function-like frames. A frame is a render frame
// when its bound name is one of the configured names. Nodes stay inside a
// render scope through any number of nested unrelated functions until the
// render frame itself is exited.
type RenderScope struct {
	names  map[string]bool
	frames []frame
	render int
}

// NewRenderScope tracks functions named after any of names.
func NewRenderScope(names ...string) *RenderScope {
	s := &RenderScope{names: make(map[string]bool, len(names))}
	for _, n := range names {
		s.names[n] = true
	}
	return s
}

// Enter pushes a frame for n. Every call must be paired with Exit for the
// same node, so a frame is pushed even for nodes that are not functions.
func (s *RenderScope) Enter(n ast.Node) {
	name := BoundName(n)
	f := frame{name: name, render: name != "" && s.names[name] && opensFunction(n)}
	if f.render {
		s.render++
	}
	s.frames = append(s.frames, f)
}

// Exit pops the innermost frame.
func (s *RenderScope) Exit(ast.Node) {
	if len(s.frames) == 0 {
		return
	}
	top := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	if top.render {
		s.render--
	}
}

// Inside reports whether some enclosing frame is a render frame.
func (s *RenderScope) Inside() bool { return s.render > 0 }

// Current returns the name of the innermost enclosing render frame.
func (s *RenderScope) Current() (string, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if s.frames[i].render {
			return s.frames[i].name, true
		}
	}
	return "", false
}

// Depth returns the number of open frames.
func (s *RenderScope) Depth() int { return len(s.frames) }

// BoundName returns the name a function-like construct is bound to: the
// function identifier, the method name or the object property key.
func BoundName(n ast.Node) string {
	switch n := n.(type) {
	case *ast.FunctionDeclaration:
		if n != nil && n.ID != nil {
			return n.ID.Name
		}
	case *ast.FunctionExpression:
		if n != nil && n.ID != nil {
			return n.ID.Name
		}
	case *ast.MethodDefinition:
		if n != nil && !n.Computed {
			return ast.KeyName(n.Key)
		}
	case *ast.Property:
		if n != nil && !n.Computed {
			return ast.KeyName(n.Key)
		}
	}
	return ""
}

// opensFunction filters out object properties whose value is not a function.
func opensFunction(n ast.Node) bool {
	if p, ok := n.(*ast.Property); ok {
		return p != nil && ast.IsFunction(p.Value)
	}
	return true
}
