package engine

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/curiousdev-oss/web-perf-toolkit/pkg/ast"
	"github.com/curiousdev-oss/web-perf-toolkit/pkg/rule"
)

// ActiveRule is a rule together with its resolved configuration.
type ActiveRule struct {
	Rule     rule.Rule
	Severity rule.Severity
	Options  rule.Options
}

// Walker performs a single-pass traversal of a file, dispatching each node
// to the listeners the active rules registered for its kind.
type Walker struct {
	rules    []ActiveRule
	logger   *slog.Logger
	diagPool sync.Pool
}

func NewWalker(rules []ActiveRule, logger *slog.Logger) *Walker {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Walker{
		rules:  rules,
		logger: logger,
		diagPool: sync.Pool{
			New: func() any {
				s := make([]rule.Diagnostic, 0, 8)
				return &s
			},
		},
	}
}

type binding struct {
	rule int
	fn   rule.Listener
}

// session holds everything one traversal needs. It is created per file and
// dropped when the walk ends, taking the rules' listener state with it.
type session struct {
	walker   *Walker
	file     *ast.File
	stack    []ast.Node
	enter    map[ast.Kind][]binding
	exit     map[ast.Kind][]binding
	disabled []bool
}

// Ancestors implements rule.Path.
func (s *session) Ancestors() []ast.Node {
	if len(s.stack) < 2 {
		return nil
	}
	out := make([]ast.Node, 0, len(s.stack)-1)
	for i := len(s.stack) - 2; i >= 0; i-- {
		out = append(out, s.stack[i])
	}
	return out
}

// Walk traverses file once and returns all diagnostics produced by the
// active rules, in the order they were reported.
func (w *Walker) Walk(file *ast.File) []rule.Diagnostic {
	if file == nil || file.Program == nil {
		return nil
	}

	poolVal, _ := w.diagPool.Get().(*[]rule.Diagnostic)
	if poolVal == nil {
		s := make([]rule.Diagnostic, 0, 8)
		poolVal = &s
	}
	buf := poolVal
	*buf = (*buf)[:0]
	defer w.diagPool.Put(buf)

	s := &session{
		walker:   w,
		file:     file,
		enter:    make(map[ast.Kind][]binding),
		exit:     make(map[ast.Kind][]binding),
		disabled: make([]bool, len(w.rules)),
	}
	report := func(d rule.Diagnostic) { *buf = append(*buf, d) }

	for i, ar := range w.rules {
		ctx := rule.NewContext(file, ar.Rule, ar.Severity, ar.Options, s, report)
		listeners, err := s.create(ar.Rule, ctx)
		if err != nil {
			w.logger.Warn("rule setup failed", "rule", ar.Rule.Name(), "file", file.Name, "error", err)
			s.disabled[i] = true
			continue
		}
		for hook, fn := range listeners {
			b := binding{rule: i, fn: fn}
			if hook.Exit {
				s.exit[hook.Kind] = append(s.exit[hook.Kind], b)
			} else {
				s.enter[hook.Kind] = append(s.enter[hook.Kind], b)
			}
		}
	}

	ast.Walk(file.Program, s.visit, s.leave)

	out := make([]rule.Diagnostic, len(*buf))
	copy(out, *buf)
	return out
}

func (s *session) create(r rule.Rule, ctx *rule.Context) (l rule.Listeners, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return r.Create(ctx), nil
}

func (s *session) visit(n ast.Node) bool {
	s.stack = append(s.stack, n)
	s.dispatch(s.enter[n.Kind()], n)
	return true
}

func (s *session) leave(n ast.Node) {
	s.dispatch(s.exit[n.Kind()], n)
	s.stack = s.stack[:len(s.stack)-1]
}

func (s *session) dispatch(bindings []binding, n ast.Node) {
	for _, b := range bindings {
		if s.disabled[b.rule] {
			continue
		}
		s.call(b, n)
	}
}

// call isolates a rule: a panicking listener disables its rule for the rest
// of the file and the other rules carry on.
func (s *session) call(b binding, n ast.Node) {
	defer func() {
		if p := recover(); p != nil {
			s.disabled[b.rule] = true
			s.walker.logger.Warn("rule panicked, skipping it for this file",
				"rule", s.walker.rules[b.rule].Rule.Name(),
				"file", s.file.Name,
				"node", n.Kind().String(),
				"panic", p)
		}
	}()
	b.fn(n)
}
