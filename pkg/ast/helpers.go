package ast

import "strings"

// IdentName returns the name of an *Identifier, or "" for anything else.
func IdentName(n Node) string {
	if id, ok := n.(*Identifier); ok && id != nil {
		return id.Name
	}
	return ""
}

// PropertyName returns the static property name of a member expression:
// the identifier for `a.b`, the string for `a["b"]`, and "" otherwise.
func PropertyName(m *MemberExpression) string {
	if m == nil {
		return ""
	}
	if !m.Computed {
		return IdentName(m.Property)
	}
	if s, ok := m.Property.(*StringLiteral); ok && s != nil {
		return s.Value
	}
	return ""
}

// ObjectName returns the identifier name of the member's object. `this` is
// reported as "this".
func ObjectName(m *MemberExpression) string {
	if m == nil {
		return ""
	}
	if t, ok := m.Object.(*ThisExpression); ok && t != nil {
		return "this"
	}
	return IdentName(m.Object)
}

// MemberNames splits `object.property` when n is a member expression whose
// object is a plain identifier (or `this`) and whose property is static.
func MemberNames(n Node) (object, property string, ok bool) {
	m, isMember := n.(*MemberExpression)
	if !isMember || m == nil {
		return "", "", false
	}
	object, property = ObjectName(m), PropertyName(m)
	return object, property, object != "" && property != ""
}

// CalleeMember returns the callee of a call or new expression when it is a
// member expression.
func CalleeMember(n Node) (*MemberExpression, bool) {
	var callee Node
	switch n := n.(type) {
	case *CallExpression:
		if n == nil {
			return nil, false
		}
		callee = n.Callee
	case *NewExpression:
		if n == nil {
			return nil, false
		}
		callee = n.Callee
	}
	m, ok := callee.(*MemberExpression)
	return m, ok && m != nil
}

// CalleeName returns the identifier a call or new expression invokes
// directly, or "" when the callee is anything else.
func CalleeName(n Node) string {
	switch n := n.(type) {
	case *CallExpression:
		if n != nil {
			return IdentName(n.Callee)
		}
	case *NewExpression:
		if n != nil {
			return IdentName(n.Callee)
		}
	}
	return ""
}

// Args returns the arguments of a call or new expression.
func Args(n Node) []Node {
	switch n := n.(type) {
	case *CallExpression:
		if n != nil {
			return n.Arguments
		}
	case *NewExpression:
		if n != nil {
			return n.Arguments
		}
	}
	return nil
}

// Arg returns the i-th argument, or nil.
func Arg(n Node, i int) Node {
	args := Args(n)
	if i < 0 || i >= len(args) {
		return nil
	}
	return args[i]
}

// StringValue returns the value of a string literal or of a template
// literal without substitutions.
func StringValue(n Node) (string, bool) {
	switch n := n.(type) {
	case *StringLiteral:
		if n != nil {
			return n.Value, true
		}
	case *TemplateLiteral:
		if n != nil && len(n.Expressions) == 0 {
			return strings.Join(n.Quasis, ""), true
		}
	}
	return "", false
}

// NumberValue returns the value of a numeric literal, including a negated
// one such as `-1`.
func NumberValue(n Node) (float64, bool) {
	switch n := n.(type) {
	case *NumericLiteral:
		if n != nil {
			return n.Value, true
		}
	case *UnaryExpression:
		if n != nil && (n.Operator == "-" || n.Operator == "+") {
			if v, ok := NumberValue(n.Argument); ok {
				if n.Operator == "-" {
					return -v, true
				}
				return v, true
			}
		}
	}
	return 0, false
}

// KeyName returns the static name of a property or method key.
func KeyName(key Node) string {
	switch k := key.(type) {
	case *Identifier:
		if k != nil {
			return k.Name
		}
	case *StringLiteral:
		if k != nil {
			return k.Value
		}
	case *NumericLiteral:
		if k != nil {
			return k.Raw
		}
	}
	return ""
}

// FunctionBody returns the body of a function-like node: a *BlockStatement
// or, for concise arrows, an expression.
func FunctionBody(n Node) Node {
	switch n := n.(type) {
	case *FunctionDeclaration:
		if n != nil && n.Body != nil {
			return n.Body
		}
	case *FunctionExpression:
		if n != nil && n.Body != nil {
			return n.Body
		}
	case *ArrowFunctionExpression:
		if n != nil {
			return n.Body
		}
	}
	return nil
}

// IsFunction reports whether n is a function-like node.
func IsFunction(n Node) bool {
	return !IsNil(n) && n.Kind().IsFunction()
}

// JSXElementName returns the tag name of an opening element.
func JSXElementName(el *JSXOpeningElement) string {
	if el == nil || el.Name == nil {
		return ""
	}
	return el.Name.Name
}

// JSXAttr finds the attribute called name on an opening element.
func JSXAttr(el *JSXOpeningElement, name string) (*JSXAttribute, bool) {
	if el == nil {
		return nil, false
	}
	for _, a := range el.Attributes {
		attr, ok := a.(*JSXAttribute)
		if ok && attr != nil && attr.Name != nil && attr.Name.Name == name {
			return attr, true
		}
	}
	return nil, false
}

// JSXAttrNames collects the attribute names of an opening element.
func JSXAttrNames(el *JSXOpeningElement) map[string]bool {
	names := make(map[string]bool)
	if el == nil {
		return names
	}
	for _, a := range el.Attributes {
		if attr, ok := a.(*JSXAttribute); ok && attr != nil && attr.Name != nil {
			names[attr.Name.Name] = true
		}
	}
	return names
}

// JSXAttrString returns the static string value of an attribute, either
// `a="x"` or `a={"x"}`.
func JSXAttrString(attr *JSXAttribute) (string, bool) {
	if attr == nil {
		return "", false
	}
	if c, ok := attr.Value.(*JSXExpressionContainer); ok && c != nil {
		return StringValue(c.Expression)
	}
	return StringValue(attr.Value)
}

// ObjectKeys returns the static key names of an object literal in order.
// Computed keys are left out.
func ObjectKeys(obj *ObjectExpression) []string {
	if obj == nil {
		return nil
	}
	var keys []string
	for _, p := range obj.Properties {
		if prop, ok := p.(*Property); ok && prop != nil && !prop.Computed {
			if k := KeyName(prop.Key); k != "" {
				keys = append(keys, k)
			}
		}
	}
	return keys
}

// FindProperty returns the property of obj with the given static key.
func FindProperty(obj *ObjectExpression, key string) (*Property, bool) {
	if obj == nil {
		return nil, false
	}
	for _, p := range obj.Properties {
		if prop, ok := p.(*Property); ok && prop != nil && !prop.Computed && KeyName(prop.Key) == key {
			return prop, true
		}
	}
	return nil, false
}
