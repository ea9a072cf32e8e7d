package rule

import "github.com/curiousdev-oss/web-perf-toolkit/pkg/ast"

// Hook selects when a listener runs: on entering a node of Kind, or on
// leaving it when Exit is set.
type Hook struct {
	Kind ast.Kind
	Exit bool
}

func (h Hook) String() string {
	if h.Exit {
		return h.Kind.String() + ":exit"
	}
	return h.Kind.String()
}

// Listener is called with a node of the hook's kind.
type Listener func(n ast.Node)

// Listeners maps hooks to callbacks. Registering twice for the same hook
// chains the callbacks in registration order.
type Listeners map[Hook]Listener

func (l Listeners) add(h Hook, fn Listener) {
	if fn == nil {
		return
	}
	if prev, ok := l[h]; ok {
		l[h] = func(n ast.Node) {
			prev(n)
			fn(n)
		}
		return
	}
	l[h] = fn
}

// On registers fn for entering each of kinds.
func (l Listeners) On(fn Listener, kinds ...ast.Kind) Listeners {
	for _, k := range kinds {
		l.add(Hook{Kind: k}, fn)
	}
	return l
}

// OnExit registers fn for leaving each of kinds.
func (l Listeners) OnExit(fn Listener, kinds ...ast.Kind) Listeners {
	for _, k := range kinds {
		l.add(Hook{Kind: k, Exit: true}, fn)
	}
	return l
}

// Track registers a paired enter/exit for kinds, the shape used by depth
// counters and scope stacks.
func (l Listeners) Track(enter, exit Listener, kinds ...ast.Kind) Listeners {
	return l.On(enter, kinds...).OnExit(exit, kinds...)
}
