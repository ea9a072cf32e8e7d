package ast

import "reflect"

// IsNil reports whether n is nil or a typed nil pointer.
func IsNil(n Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

type childList []Node

func (c *childList) add(nodes ...Node) {
	for _, n := range nodes {
		if !IsNil(n) {
			*c = append(*c, n)
		}
	}
}

func decorators(c *childList, ds []*Decorator) {
	for _, d := range ds {
		if d != nil {
			c.add(d)
		}
	}
}

// Children returns the direct children of n in source order. Absent
// optional children are omitted.
func Children(n Node) []Node {
	var c childList
	switch n := n.(type) {
	case *Program:
		c.add(n.Body...)
	case *ImportDeclaration:
		c.add(n.Specifiers...)
		if n.Source != nil {
			c.add(n.Source)
		}
	case *ImportDefaultSpecifier:
		if n.Local != nil {
			c.add(n.Local)
		}
	case *ImportNamespaceSpecifier:
		if n.Local != nil {
			c.add(n.Local)
		}
	case *ImportSpecifier:
		if n.Imported != nil {
			c.add(n.Imported)
		}
		if n.Local != nil && n.Local != n.Imported {
			c.add(n.Local)
		}
	case *ExportAllDeclaration:
		if n.Exported != nil {
			c.add(n.Exported)
		}
		if n.Source != nil {
			c.add(n.Source)
		}
	case *ExportNamedDeclaration:
		c.add(n.Declaration)
		c.add(n.Specifiers...)
		if n.Source != nil {
			c.add(n.Source)
		}
	case *ExportDefaultDeclaration:
		c.add(n.Declaration)
	case *VariableDeclaration:
		for _, d := range n.Declarations {
			if d != nil {
				c.add(d)
			}
		}
	case *VariableDeclarator:
		c.add(n.ID, n.Init)
	case *FunctionDeclaration:
		if n.ID != nil {
			c.add(n.ID)
		}
		c.add(n.Params...)
		if n.Body != nil {
			c.add(n.Body)
		}
	case *ClassDeclaration:
		decorators(&c, n.Decorators)
		if n.ID != nil {
			c.add(n.ID)
		}
		c.add(n.SuperClass)
		if n.Body != nil {
			c.add(n.Body)
		}
	case *ClassExpression:
		decorators(&c, n.Decorators)
		if n.ID != nil {
			c.add(n.ID)
		}
		c.add(n.SuperClass)
		if n.Body != nil {
			c.add(n.Body)
		}
	case *ClassBody:
		c.add(n.Body...)
	case *MethodDefinition:
		decorators(&c, n.Decorators)
		c.add(n.Key)
		if n.Value != nil {
			c.add(n.Value)
		}
	case *PropertyDefinition:
		decorators(&c, n.Decorators)
		c.add(n.Key, n.Value)
	case *Decorator:
		c.add(n.Expression)
	case *BlockStatement:
		c.add(n.Body...)
	case *ExpressionStatement:
		c.add(n.Expression)
	case *ReturnStatement:
		c.add(n.Argument)
	case *IfStatement:
		c.add(n.Test, n.Consequent, n.Alternate)
	case *ForStatement:
		c.add(n.Init, n.Test, n.Update, n.Body)
	case *ForInStatement:
		c.add(n.Left, n.Right, n.Body)
	case *ForOfStatement:
		c.add(n.Left, n.Right, n.Body)
	case *WhileStatement:
		c.add(n.Test, n.Body)
	case *DoWhileStatement:
		c.add(n.Body, n.Test)
	case *TemplateLiteral:
		c.add(n.Expressions...)
	case *TaggedTemplateExpression:
		c.add(n.Tag)
		if n.Quasi != nil {
			c.add(n.Quasi)
		}
	case *ArrayExpression:
		c.add(n.Elements...)
	case *ObjectExpression:
		c.add(n.Properties...)
	case *Property:
		if n.Shorthand {
			c.add(n.Value)
		} else {
			c.add(n.Key, n.Value)
		}
	case *SpreadElement:
		c.add(n.Argument)
	case *FunctionExpression:
		if n.ID != nil {
			c.add(n.ID)
		}
		c.add(n.Params...)
		if n.Body != nil {
			c.add(n.Body)
		}
	case *ArrowFunctionExpression:
		c.add(n.Params...)
		c.add(n.Body)
	case *MemberExpression:
		c.add(n.Object, n.Property)
	case *CallExpression:
		c.add(n.Callee)
		c.add(n.Arguments...)
	case *NewExpression:
		c.add(n.Callee)
		c.add(n.Arguments...)
	case *ImportExpression:
		c.add(n.Source)
	case *UnaryExpression:
		c.add(n.Argument)
	case *BinaryExpression:
		c.add(n.Left, n.Right)
	case *AssignmentExpression:
		c.add(n.Left, n.Right)
	case *ConditionalExpression:
		c.add(n.Test, n.Consequent, n.Alternate)
	case *AwaitExpression:
		c.add(n.Argument)
	case *JSXElement:
		if n.OpeningElement != nil {
			c.add(n.OpeningElement)
		}
		c.add(n.Children...)
		if n.ClosingElement != nil {
			c.add(n.ClosingElement)
		}
	case *JSXOpeningElement:
		if n.Name != nil {
			c.add(n.Name)
		}
		c.add(n.Attributes...)
	case *JSXClosingElement:
		if n.Name != nil {
			c.add(n.Name)
		}
	case *JSXAttribute:
		if n.Name != nil {
			c.add(n.Name)
		}
		c.add(n.Value)
	case *JSXSpreadAttribute:
		c.add(n.Argument)
	case *JSXExpressionContainer:
		c.add(n.Expression)
	case *Other:
		c.add(n.Children...)
	}
	return c
}

// Walk traverses the tree rooted at n depth-first. enter is called before a
// node's children and exit after them. When enter returns false the children
// are skipped; exit is still called for every node that was entered.
// Either callback may be nil.
func Walk(n Node, enter func(Node) bool, exit func(Node)) {
	if IsNil(n) {
		return
	}
	descend := true
	if enter != nil {
		descend = enter(n)
	}
	if descend {
		for _, child := range Children(n) {
			Walk(child, enter, exit)
		}
	}
	if exit != nil {
		exit(n)
	}
}

// Inspect calls f for each node in pre-order, like go/ast.Inspect. Children
// are skipped when f returns false.
func Inspect(n Node, f func(Node) bool) {
	Walk(n, f, nil)
}
