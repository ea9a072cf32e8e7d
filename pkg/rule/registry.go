package rule

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

// Registry maps rule names to rules. The rule packages fill the global
// registry from init; tests and the engine can also build their own with
// NewRegistry.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]Rule
}

var global = NewRegistry()

func NewRegistry() *Registry {
	return &Registry{rules: make(map[string]Rule)}
}

// GlobalRegistry holds every rule linked into the binary, which for perflint
// means everything imported by pkg/rules/all.
func GlobalRegistry() *Registry { return global }

// Register adds r to the global registry.
func Register(r Rule) { global.Register(r) }

// Register panics when r has no name or its name is already taken. Both are
// programming errors caught the first time the binary starts.
func (reg *Registry) Register(r Rule) {
	name := r.Name()
	if strings.TrimSpace(name) == "" {
		panic(fmt.Sprintf("rule %T has an empty name", r))
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()
	if prev, ok := reg.rules[name]; ok {
		panic(fmt.Sprintf("rule %q registered twice (%T and %T)", name, prev, r))
	}
	reg.rules[name] = r
}

// Get looks a rule up by the name used in .perflint.yml.
func (reg *Registry) Get(name string) (Rule, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	r, ok := reg.rules[name]
	return r, ok
}

// All returns the registered rules sorted by name.
func (reg *Registry) All() []Rule {
	names := reg.Names()
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	out := make([]Rule, 0, len(names))
	for _, name := range names {
		if r, ok := reg.rules[name]; ok {
			out = append(out, r)
		}
	}
	return out
}

func (reg *Registry) Names() []string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return slices.Sorted(maps.Keys(reg.rules))
}
