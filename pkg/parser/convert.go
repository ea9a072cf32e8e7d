package parser

import (
	"html"
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/curiousdev-oss/web-perf-toolkit/pkg/ast"
)

// converter maps a tree-sitter concrete tree onto ast nodes. Grammar nodes
// without a dedicated ast type become *ast.Other so that their children are
// still visited.
type converter struct {
	src []byte
}

type spanner interface {
	SetSpan(ast.Span)
}

// skipped node types carry no runtime behavior.
var skipped = map[string]bool{
	"comment":                   true,
	"html_comment":              true,
	"hash_bang_line":            true,
	"empty_statement":           true,
	"type_annotation":           true,
	"type_parameters":           true,
	"type_arguments":            true,
	"type_identifier":           true,
	"interface_declaration":     true,
	"type_alias_declaration":    true,
	"ambient_declaration":       true,
	"implements_clause":         true,
	"accessibility_modifier":    true,
	"override_modifier":         true,
	"method_signature":          true,
	"abstract_method_signature": true,
	"index_signature":           true,
	"function_signature":        true,
}

func isSkipped(t string) bool {
	return skipped[t] || strings.HasSuffix(t, "_type")
}

func (c *converter) text(s *sitter.Node) string {
	if s == nil {
		return ""
	}
	return s.Content(c.src)
}

func position(offset uint32, p sitter.Point) ast.Pos {
	return ast.Pos{Offset: int(offset), Line: int(p.Row) + 1, Column: int(p.Column) + 1}
}

func (c *converter) locate(n ast.Node, s *sitter.Node) {
	if sp, ok := n.(spanner); ok && s != nil {
		sp.SetSpan(ast.Span{
			Start: position(s.StartByte(), s.StartPoint()),
			End:   position(s.EndByte(), s.EndPoint()),
		})
	}
}

func hasChild(s *sitter.Node, typ string) bool {
	for i := 0; i < int(s.ChildCount()); i++ {
		if s.Child(i).Type() == typ {
			return true
		}
	}
	return false
}

// list converts the named children of s, dropping skipped ones.
func (c *converter) list(s *sitter.Node) []ast.Node {
	if s == nil {
		return nil
	}
	var out []ast.Node
	for i := 0; i < int(s.NamedChildCount()); i++ {
		if n := c.convert(s.NamedChild(i)); n != nil {
			out = append(out, n)
		}
	}
	return out
}

// first converts the first named child that yields a node.
func (c *converter) first(s *sitter.Node) ast.Node {
	if s == nil {
		return nil
	}
	for i := 0; i < int(s.NamedChildCount()); i++ {
		if n := c.convert(s.NamedChild(i)); n != nil {
			return n
		}
	}
	return nil
}

func (c *converter) field(s *sitter.Node, name string) ast.Node {
	return c.convert(s.ChildByFieldName(name))
}

// convert returns nil for absent and skipped nodes.
func (c *converter) convert(s *sitter.Node) ast.Node {
	if s == nil || !s.IsNamed() || isSkipped(s.Type()) {
		return nil
	}
	// Wrappers keep the span of what they wrap.
	switch s.Type() {
	case "parenthesized_expression", "else_clause", "template_substitution":
		return c.first(s)
	case "as_expression", "satisfies_expression", "non_null_expression":
		if s.NamedChildCount() == 0 {
			return nil
		}
		return c.convert(s.NamedChild(0))
	case "type_assertion":
		if s.NamedChildCount() == 0 {
			return nil
		}
		return c.convert(s.NamedChild(int(s.NamedChildCount()) - 1))
	}
	n := c.node(s)
	if n == nil {
		return nil
	}
	c.locate(n, s)
	return n
}

func (c *converter) node(s *sitter.Node) ast.Node {
	switch t := s.Type(); t {
	// Modules.
	case "import_statement":
		return c.importDecl(s)
	case "export_statement":
		return c.exportDecl(s)

	// Declarations.
	case "lexical_declaration":
		kind := c.text(s.ChildByFieldName("kind"))
		if kind == "" {
			kind = c.text(s.Child(0))
		}
		return c.varDecl(s, kind)
	case "variable_declaration":
		return c.varDecl(s, "var")
	case "function_declaration", "generator_function_declaration":
		return &ast.FunctionDeclaration{
			ID:        c.ident(s.ChildByFieldName("name")),
			Params:    c.params(s.ChildByFieldName("parameters")),
			Body:      c.block(s.ChildByFieldName("body")),
			Async:     hasChild(s, "async"),
			Generator: strings.HasPrefix(t, "generator"),
		}
	case "class_declaration", "abstract_class_declaration":
		return &ast.ClassDeclaration{
			ID:         c.ident(s.ChildByFieldName("name")),
			SuperClass: c.heritage(s),
			Body:       c.classBody(s.ChildByFieldName("body")),
			Decorators: c.decorators(s),
		}
	case "class":
		return &ast.ClassExpression{
			ID:         c.ident(s.ChildByFieldName("name")),
			SuperClass: c.heritage(s),
			Body:       c.classBody(s.ChildByFieldName("body")),
			Decorators: c.decorators(s),
		}
	case "decorator":
		return &ast.Decorator{Expression: c.first(s)}

	// Statements.
	case "statement_block":
		return &ast.BlockStatement{Body: c.list(s)}
	case "expression_statement":
		return &ast.ExpressionStatement{Expression: c.first(s)}
	case "return_statement":
		return &ast.ReturnStatement{Argument: c.first(s)}
	case "if_statement":
		return &ast.IfStatement{
			Test:       c.field(s, "condition"),
			Consequent: c.field(s, "consequence"),
			Alternate:  c.field(s, "alternative"),
		}
	case "for_statement":
		return &ast.ForStatement{
			Init:   c.header(s.ChildByFieldName("initializer")),
			Test:   c.header(s.ChildByFieldName("condition")),
			Update: c.field(s, "increment"),
			Body:   c.field(s, "body"),
		}
	case "for_in_statement":
		return c.forIn(s)
	case "while_statement":
		return &ast.WhileStatement{Test: c.field(s, "condition"), Body: c.field(s, "body")}
	case "do_statement":
		return &ast.DoWhileStatement{Body: c.field(s, "body"), Test: c.field(s, "condition")}

	// Expressions.
	case "identifier", "property_identifier", "shorthand_property_identifier",
		"shorthand_property_identifier_pattern", "private_property_identifier",
		"statement_identifier", "undefined", "super":
		return &ast.Identifier{Name: c.text(s)}
	case "this":
		return &ast.ThisExpression{}
	case "string":
		return &ast.StringLiteral{Value: c.stringValue(s), Raw: c.text(s)}
	case "number":
		raw := c.text(s)
		return &ast.NumericLiteral{Value: parseNumber(raw), Raw: raw}
	case "true", "false":
		return &ast.BooleanLiteral{Value: t == "true"}
	case "null":
		return &ast.NullLiteral{}
	case "regex":
		return &ast.RegExpLiteral{
			Pattern: c.text(s.ChildByFieldName("pattern")),
			Flags:   c.text(s.ChildByFieldName("flags")),
		}
	case "template_string":
		return c.template(s)
	case "array":
		return &ast.ArrayExpression{Elements: c.list(s)}
	case "object":
		return &ast.ObjectExpression{Properties: c.properties(s)}
	case "spread_element":
		return &ast.SpreadElement{Argument: c.first(s)}
	case "function_expression", "function", "generator_function":
		return c.function(s)
	case "arrow_function":
		return c.arrow(s)
	case "member_expression":
		return &ast.MemberExpression{
			Object:   c.field(s, "object"),
			Property: c.field(s, "property"),
			Optional: hasChild(s, "optional_chain"),
		}
	case "subscript_expression":
		return &ast.MemberExpression{
			Object:   c.field(s, "object"),
			Property: c.field(s, "index"),
			Computed: true,
			Optional: hasChild(s, "optional_chain"),
		}
	case "call_expression":
		return c.call(s)
	case "new_expression":
		return &ast.NewExpression{
			Callee:    c.field(s, "constructor"),
			Arguments: c.list(s.ChildByFieldName("arguments")),
		}
	case "unary_expression":
		return &ast.UnaryExpression{
			Operator: c.text(s.ChildByFieldName("operator")),
			Argument: c.field(s, "argument"),
		}
	case "binary_expression":
		return &ast.BinaryExpression{
			Operator: c.text(s.ChildByFieldName("operator")),
			Left:     c.field(s, "left"),
			Right:    c.field(s, "right"),
		}
	case "assignment_expression", "augmented_assignment_expression":
		op := "="
		if t == "augmented_assignment_expression" {
			op = c.text(s.ChildByFieldName("operator"))
		}
		return &ast.AssignmentExpression{Operator: op, Left: c.field(s, "left"), Right: c.field(s, "right")}
	case "ternary_expression":
		return &ast.ConditionalExpression{
			Test:       c.field(s, "condition"),
			Consequent: c.field(s, "consequence"),
			Alternate:  c.field(s, "alternative"),
		}
	case "await_expression":
		return &ast.AwaitExpression{Argument: c.first(s)}

	// JSX.
	case "jsx_element":
		return c.jsxElement(s)
	case "jsx_self_closing_element":
		return &ast.JSXElement{OpeningElement: c.jsxOpening(s, true)}
	case "jsx_expression":
		return &ast.JSXExpressionContainer{Expression: c.first(s)}
	case "jsx_text", "html_character_reference":
		return &ast.JSXText{Value: c.text(s)}
	}

	return &ast.Other{Type: s.Type(), Children: c.list(s)}
}

func (c *converter) ident(s *sitter.Node) *ast.Identifier {
	if s == nil {
		return nil
	}
	id := &ast.Identifier{Name: c.text(s)}
	c.locate(id, s)
	return id
}

func (c *converter) str(s *sitter.Node) *ast.StringLiteral {
	if s == nil || s.Type() != "string" {
		return nil
	}
	lit := &ast.StringLiteral{Value: c.stringValue(s), Raw: c.text(s)}
	c.locate(lit, s)
	return lit
}

func (c *converter) block(s *sitter.Node) *ast.BlockStatement {
	if s == nil {
		return nil
	}
	b := &ast.BlockStatement{Body: c.list(s)}
	c.locate(b, s)
	return b
}

// header converts a for-statement clause, which the grammar wraps in an
// expression statement.
func (c *converter) header(s *sitter.Node) ast.Node {
	n := c.convert(s)
	if stmt, ok := n.(*ast.ExpressionStatement); ok {
		return stmt.Expression
	}
	return n
}

func (c *converter) varDecl(s *sitter.Node, kind string) *ast.VariableDeclaration {
	decl := &ast.VariableDeclaration{DeclKind: kind}
	for i := 0; i < int(s.NamedChildCount()); i++ {
		d := s.NamedChild(i)
		if d.Type() != "variable_declarator" {
			continue
		}
		v := &ast.VariableDeclarator{ID: c.field(d, "name"), Init: c.field(d, "value")}
		c.locate(v, d)
		decl.Declarations = append(decl.Declarations, v)
	}
	return decl
}

func (c *converter) forIn(s *sitter.Node) ast.Node {
	left := c.field(s, "left")
	if kind := s.ChildByFieldName("kind"); kind != nil {
		d := &ast.VariableDeclarator{ID: left}
		c.locate(d, s.ChildByFieldName("left"))
		decl := &ast.VariableDeclaration{DeclKind: c.text(kind), Declarations: []*ast.VariableDeclarator{d}}
		c.locate(decl, s.ChildByFieldName("left"))
		left = decl
	}
	right, body := c.field(s, "right"), c.field(s, "body")
	if c.text(s.ChildByFieldName("operator")) == "of" {
		return &ast.ForOfStatement{Left: left, Right: right, Body: body, Await: hasChild(s, "await")}
	}
	return &ast.ForInStatement{Left: left, Right: right, Body: body}
}

func (c *converter) importDecl(s *sitter.Node) ast.Node {
	imp := &ast.ImportDeclaration{Source: c.str(s.ChildByFieldName("source"))}
	for i := 0; i < int(s.NamedChildCount()); i++ {
		clause := s.NamedChild(i)
		if clause.Type() != "import_clause" {
			continue
		}
		for j := 0; j < int(clause.NamedChildCount()); j++ {
			imp.Specifiers = append(imp.Specifiers, c.importSpecifiers(clause.NamedChild(j))...)
		}
	}
	return imp
}

func (c *converter) importSpecifiers(s *sitter.Node) []ast.Node {
	var out []ast.Node
	add := func(n ast.Node, at *sitter.Node) {
		c.locate(n, at)
		out = append(out, n)
	}
	switch s.Type() {
	case "identifier":
		add(&ast.ImportDefaultSpecifier{Local: c.ident(s)}, s)
	case "namespace_import":
		ns := &ast.ImportNamespaceSpecifier{}
		if s.NamedChildCount() > 0 {
			ns.Local = c.ident(s.NamedChild(0))
		}
		add(ns, s)
	case "named_imports":
		for i := 0; i < int(s.NamedChildCount()); i++ {
			spec := s.NamedChild(i)
			if spec.Type() != "import_specifier" {
				continue
			}
			imported := c.ident(spec.ChildByFieldName("name"))
			local := imported
			if alias := spec.ChildByFieldName("alias"); alias != nil {
				local = c.ident(alias)
			}
			add(&ast.ImportSpecifier{Imported: imported, Local: local}, spec)
		}
	}
	return out
}

func (c *converter) exportDecl(s *sitter.Node) ast.Node {
	decorators := c.decorators(s)
	isDefault := hasChild(s, "default")

	if decl := s.ChildByFieldName("declaration"); decl != nil {
		d := c.convert(decl)
		if cls, ok := d.(*ast.ClassDeclaration); ok {
			cls.Decorators = append(decorators, cls.Decorators...)
		}
		if isDefault {
			return &ast.ExportDefaultDeclaration{Declaration: d}
		}
		return &ast.ExportNamedDeclaration{Declaration: d}
	}
	if value := s.ChildByFieldName("value"); value != nil {
		return &ast.ExportDefaultDeclaration{Declaration: c.convert(value)}
	}

	source := c.str(s.ChildByFieldName("source"))
	var specifiers []ast.Node
	all := false
	var exported *ast.Identifier
	for i := 0; i < int(s.ChildCount()); i++ {
		child := s.Child(i)
		switch child.Type() {
		case "*":
			all = true
		case "namespace_export":
			all = true
			if child.NamedChildCount() > 0 {
				exported = c.ident(child.NamedChild(0))
			}
		case "export_clause":
			specifiers = c.list(child)
		}
	}
	if all {
		return &ast.ExportAllDeclaration{Exported: exported, Source: source}
	}
	return &ast.ExportNamedDeclaration{Specifiers: specifiers, Source: source}
}

func (c *converter) decorators(s *sitter.Node) []*ast.Decorator {
	var out []*ast.Decorator
	for i := 0; i < int(s.ChildCount()); i++ {
		child := s.Child(i)
		if child.Type() != "decorator" {
			continue
		}
		d := &ast.Decorator{Expression: c.first(child)}
		c.locate(d, child)
		out = append(out, d)
	}
	return out
}

func (c *converter) heritage(s *sitter.Node) ast.Node {
	for i := 0; i < int(s.NamedChildCount()); i++ {
		h := s.NamedChild(i)
		if h.Type() != "class_heritage" {
			continue
		}
		for j := 0; j < int(h.NamedChildCount()); j++ {
			clause := h.NamedChild(j)
			switch clause.Type() {
			case "extends_clause":
				if v := clause.ChildByFieldName("value"); v != nil {
					return c.convert(v)
				}
				return c.first(clause)
			case "implements_clause":
			default:
				return c.convert(clause)
			}
		}
	}
	return nil
}

func (c *converter) classBody(s *sitter.Node) *ast.ClassBody {
	if s == nil {
		return nil
	}
	body := &ast.ClassBody{}
	var pending []*ast.Decorator
	for i := 0; i < int(s.NamedChildCount()); i++ {
		m := s.NamedChild(i)
		var member ast.Node
		switch m.Type() {
		case "decorator":
			d := &ast.Decorator{Expression: c.first(m)}
			c.locate(d, m)
			pending = append(pending, d)
			continue
		case "method_definition":
			md := c.method(m)
			md.Decorators = append(pending, md.Decorators...)
			member = md
		case "field_definition", "public_field_definition":
			name := m.ChildByFieldName("name")
			if name == nil {
				name = m.ChildByFieldName("property")
			}
			pd := &ast.PropertyDefinition{
				Key:        c.key(name),
				Value:      c.field(m, "value"),
				Static:     hasChild(m, "static"),
				Computed:   name != nil && name.Type() == "computed_property_name",
				Decorators: append(pending, c.decorators(m)...),
			}
			c.locate(pd, m)
			member = pd
		default:
			member = c.convert(m)
		}
		pending = nil
		if member != nil {
			body.Body = append(body.Body, member)
		}
	}
	c.locate(body, s)
	return body
}

func (c *converter) method(s *sitter.Node) *ast.MethodDefinition {
	name := s.ChildByFieldName("name")
	kind := "method"
	switch {
	case hasChild(s, "get"):
		kind = "get"
	case hasChild(s, "set"):
		kind = "set"
	case c.text(name) == "constructor":
		kind = "constructor"
	}
	md := &ast.MethodDefinition{
		Key:        c.key(name),
		Value:      c.methodFunction(s),
		MethodKind: kind,
		Static:     hasChild(s, "static"),
		Computed:   name != nil && name.Type() == "computed_property_name",
		Decorators: c.decorators(s),
	}
	c.locate(md, s)
	return md
}

func (c *converter) methodFunction(s *sitter.Node) *ast.FunctionExpression {
	fn := &ast.FunctionExpression{
		Params:    c.params(s.ChildByFieldName("parameters")),
		Body:      c.block(s.ChildByFieldName("body")),
		Async:     hasChild(s, "async"),
		Generator: hasChild(s, "*"),
	}
	c.locate(fn, s)
	return fn
}

func (c *converter) key(s *sitter.Node) ast.Node {
	if s != nil && s.Type() == "computed_property_name" {
		return c.first(s)
	}
	return c.convert(s)
}

func (c *converter) properties(s *sitter.Node) []ast.Node {
	var out []ast.Node
	for i := 0; i < int(s.NamedChildCount()); i++ {
		p := s.NamedChild(i)
		var prop *ast.Property
		switch p.Type() {
		case "pair":
			key := p.ChildByFieldName("key")
			prop = &ast.Property{
				Key:      c.key(key),
				Value:    c.field(p, "value"),
				Computed: key != nil && key.Type() == "computed_property_name",
			}
		case "shorthand_property_identifier":
			id := c.ident(p)
			prop = &ast.Property{Key: id, Value: id, Shorthand: true}
		case "method_definition":
			name := p.ChildByFieldName("name")
			prop = &ast.Property{
				Key:      c.key(name),
				Value:    c.methodFunction(p),
				Method:   true,
				Computed: name != nil && name.Type() == "computed_property_name",
			}
		default:
			if n := c.convert(p); n != nil {
				out = append(out, n)
			}
			continue
		}
		c.locate(prop, p)
		out = append(out, prop)
	}
	return out
}

func (c *converter) params(s *sitter.Node) []ast.Node {
	if s == nil {
		return nil
	}
	var out []ast.Node
	for i := 0; i < int(s.NamedChildCount()); i++ {
		p := s.NamedChild(i)
		var n ast.Node
		switch p.Type() {
		case "required_parameter", "optional_parameter":
			n = c.field(p, "pattern")
			if value := c.field(p, "value"); value != nil && n != nil {
				def := &ast.Other{Type: "assignment_pattern", Children: []ast.Node{n, value}}
				c.locate(def, p)
				n = def
			}
		default:
			n = c.convert(p)
		}
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

func (c *converter) function(s *sitter.Node) *ast.FunctionExpression {
	return &ast.FunctionExpression{
		ID:        c.ident(s.ChildByFieldName("name")),
		Params:    c.params(s.ChildByFieldName("parameters")),
		Body:      c.block(s.ChildByFieldName("body")),
		Async:     hasChild(s, "async"),
		Generator: s.Type() == "generator_function" || hasChild(s, "*"),
	}
}

func (c *converter) arrow(s *sitter.Node) *ast.ArrowFunctionExpression {
	fn := &ast.ArrowFunctionExpression{Body: c.field(s, "body"), Async: hasChild(s, "async")}
	if p := s.ChildByFieldName("parameters"); p != nil {
		fn.Params = c.params(p)
	} else if p := c.field(s, "parameter"); p != nil {
		fn.Params = []ast.Node{p}
	}
	return fn
}

func (c *converter) call(s *sitter.Node) ast.Node {
	callee := s.ChildByFieldName("function")
	args := s.ChildByFieldName("arguments")
	if callee != nil && callee.Type() == "import" {
		return &ast.ImportExpression{Source: c.first(args)}
	}
	if args != nil && args.Type() == "template_string" {
		return &ast.TaggedTemplateExpression{Tag: c.convert(callee), Quasi: c.template(args)}
	}
	return &ast.CallExpression{
		Callee:    c.convert(callee),
		Arguments: c.list(args),
		Optional:  hasChild(s, "optional_chain"),
	}
}

// template splits a template string at its substitutions. Raw keeps the
// full text between the backticks.
func (c *converter) template(s *sitter.Node) *ast.TemplateLiteral {
	start, end := int(s.StartByte())+1, int(s.EndByte())-1
	if end < start {
		end = start
	}
	t := &ast.TemplateLiteral{Raw: string(c.src[start:end])}
	pos := start
	for i := 0; i < int(s.NamedChildCount()); i++ {
		sub := s.NamedChild(i)
		if sub.Type() != "template_substitution" {
			continue
		}
		if at := int(sub.StartByte()); at >= pos {
			t.Quasis = append(t.Quasis, string(c.src[pos:at]))
		}
		if x := c.first(sub); x != nil {
			t.Expressions = append(t.Expressions, x)
		}
		pos = int(sub.EndByte())
	}
	if pos <= end {
		t.Quasis = append(t.Quasis, string(c.src[pos:end]))
	}
	c.locate(t, s)
	return t
}

func (c *converter) jsxElement(s *sitter.Node) *ast.JSXElement {
	open, closing := s.ChildByFieldName("open_tag"), s.ChildByFieldName("close_tag")
	el := &ast.JSXElement{OpeningElement: c.jsxOpening(open, false)}
	for i := 0; i < int(s.NamedChildCount()); i++ {
		child := s.NamedChild(i)
		if sameNode(child, open) || sameNode(child, closing) {
			continue
		}
		if n := c.convert(child); n != nil {
			el.Children = append(el.Children, n)
		}
	}
	if closing != nil {
		cl := &ast.JSXClosingElement{Name: c.jsxName(closing.ChildByFieldName("name"))}
		c.locate(cl, closing)
		el.ClosingElement = cl
	}
	return el
}

func sameNode(a, b *sitter.Node) bool {
	return a != nil && b != nil && a.Type() == b.Type() &&
		a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte()
}

func (c *converter) jsxOpening(s *sitter.Node, selfClosing bool) *ast.JSXOpeningElement {
	if s == nil {
		return nil
	}
	el := &ast.JSXOpeningElement{Name: c.jsxName(s.ChildByFieldName("name")), SelfClosing: selfClosing}
	for i := 0; i < int(s.NamedChildCount()); i++ {
		a := s.NamedChild(i)
		switch a.Type() {
		case "jsx_attribute":
			el.Attributes = append(el.Attributes, c.jsxAttribute(a))
		case "jsx_expression":
			spread := &ast.JSXSpreadAttribute{Argument: c.first(a)}
			if arg, ok := spread.Argument.(*ast.SpreadElement); ok {
				spread.Argument = arg.Argument
			}
			c.locate(spread, a)
			el.Attributes = append(el.Attributes, spread)
		}
	}
	c.locate(el, s)
	return el
}

func (c *converter) jsxName(s *sitter.Node) *ast.JSXIdentifier {
	if s == nil {
		return nil
	}
	id := &ast.JSXIdentifier{Name: c.text(s)}
	c.locate(id, s)
	return id
}

func (c *converter) jsxAttribute(s *sitter.Node) *ast.JSXAttribute {
	attr := &ast.JSXAttribute{Name: c.jsxName(s.NamedChild(0))}
	if s.NamedChildCount() > 1 {
		value := s.NamedChild(1)
		attr.Raw = c.text(value)
		attr.Value = c.convert(value)
	}
	c.locate(attr, s)
	return attr
}

func (c *converter) stringValue(s *sitter.Node) string {
	if s.NamedChildCount() == 0 {
		raw := c.text(s)
		if len(raw) >= 2 {
			return raw[1 : len(raw)-1]
		}
		return ""
	}
	var b strings.Builder
	for i := 0; i < int(s.NamedChildCount()); i++ {
		part := s.NamedChild(i)
		switch part.Type() {
		case "string_fragment":
			b.WriteString(c.text(part))
		case "escape_sequence":
			b.WriteString(unescape(c.text(part)))
		case "html_character_reference":
			b.WriteString(html.UnescapeString(c.text(part)))
		}
	}
	return b.String()
}

func unescape(seq string) string {
	if len(seq) < 2 || seq[0] != '\\' {
		return seq
	}
	switch seq[1] {
	case 'n':
		return "\n"
	case 't':
		return "\t"
	case 'r':
		return "\r"
	case 'b':
		return "\b"
	case 'f':
		return "\f"
	case 'v':
		return "\v"
	case '0':
		if len(seq) == 2 {
			return "\x00"
		}
	case 'x', 'u':
		hex := strings.Trim(seq[2:], "{}")
		if v, err := strconv.ParseUint(hex, 16, 32); err == nil {
			return string(rune(v))
		}
	case '\n', '\r':
		return ""
	}
	return seq[1:]
}

func parseNumber(raw string) float64 {
	s := strings.ReplaceAll(strings.TrimSuffix(raw, "n"), "_", "")
	if len(s) > 1 && s[0] == '0' && strings.ContainsAny(s[1:2], "xXoObB") {
		if v, err := strconv.ParseInt(s, 0, 64); err == nil {
			return float64(v)
		}
		return 0
	}
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
