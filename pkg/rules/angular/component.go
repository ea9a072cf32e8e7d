// Package angular holds rules for Angular components and their inline
// templates.
package angular

import "github.com/curiousdev-oss/web-perf-toolkit/pkg/ast"

// componentCall returns the `@Component(...)` call among decorators. Both
// `Component(...)` and `core.Component(...)` count.
func componentCall(decorators []*ast.Decorator) (*ast.CallExpression, bool) {
	for _, d := range decorators {
		if d == nil {
			continue
		}
		call, ok := d.Expression.(*ast.CallExpression)
		if !ok || call == nil {
			continue
		}
		if ast.IdentName(call.Callee) == "Component" {
			return call, true
		}
		if m, ok := ast.CalleeMember(call); ok && ast.PropertyName(m) == "Component" {
			return call, true
		}
	}
	return nil, false
}

// classParts returns the decorators and members of a class declaration or
// expression.
func classParts(n ast.Node) (decorators []*ast.Decorator, members []ast.Node) {
	switch c := n.(type) {
	case *ast.ClassDeclaration:
		if c == nil {
			return nil, nil
		}
		decorators = c.Decorators
		if c.Body != nil {
			members = c.Body.Body
		}
	case *ast.ClassExpression:
		if c == nil {
			return nil, nil
		}
		decorators = c.Decorators
		if c.Body != nil {
			members = c.Body.Body
		}
	}
	return decorators, members
}

var lifecycleHooks = map[string]bool{
	"ngOnInit":           true,
	"ngOnDestroy":        true,
	"ngAfterViewInit":    true,
	"ngAfterContentInit": true,
}

// isAngularClass reports whether a class looks like an Angular component:
// it is decorated with @Component or implements a lifecycle hook.
func isAngularClass(n ast.Node) bool {
	decorators, members := classParts(n)
	if _, ok := componentCall(decorators); ok {
		return true
	}
	for _, m := range members {
		var key ast.Node
		switch m := m.(type) {
		case *ast.MethodDefinition:
			if m != nil {
				key = m.Key
			}
		case *ast.PropertyDefinition:
			if m != nil {
				key = m.Key
			}
		}
		if lifecycleHooks[ast.KeyName(key)] {
			return true
		}
	}
	return false
}
