// Package parser turns JavaScript and TypeScript sources into the syntax
// tree the rules inspect. It uses the tree-sitter grammars, so files with
// syntax errors still produce a tree.
package parser

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/curiousdev-oss/web-perf-toolkit/pkg/ast"
)

// ErrUnsupported is returned for files whose extension maps to no grammar.
var ErrUnsupported = errors.New("unsupported file type")

// Language is a source grammar.
type Language int

const (
	JavaScript Language = iota
	TypeScript
	TSX
)

func (l Language) String() string {
	switch l {
	case JavaScript:
		return "javascript"
	case TypeScript:
		return "typescript"
	case TSX:
		return "tsx"
	}
	return fmt.Sprintf("Language(%d)", int(l))
}

func (l Language) grammar() *sitter.Language {
	switch l {
	case TypeScript:
		return typescript.GetLanguage()
	case TSX:
		return tsx.GetLanguage()
	default:
		return javascript.GetLanguage()
	}
}

var extensions = map[string]Language{
	".js":  JavaScript,
	".mjs": JavaScript,
	".cjs": JavaScript,
	".jsx": JavaScript,
	".ts":  TypeScript,
	".mts": TypeScript,
	".cts": TypeScript,
	".tsx": TSX,
}

// LanguageFor picks the grammar from the file extension.
func LanguageFor(path string) (Language, bool) {
	l, ok := extensions[strings.ToLower(filepath.Ext(path))]
	return l, ok
}

// Supported reports whether path has a parseable extension. Declaration
// files are skipped.
func Supported(path string) bool {
	if strings.HasSuffix(strings.ToLower(path), ".d.ts") {
		return false
	}
	_, ok := LanguageFor(path)
	return ok
}

// Extensions lists the handled file extensions.
func Extensions() []string {
	out := make([]string, 0, len(extensions))
	for ext := range extensions {
		out = append(out, ext)
	}
	return out
}

// Parse parses src with the grammar chosen by path.
func Parse(ctx context.Context, path string, src []byte) (*ast.File, error) {
	lang, ok := LanguageFor(path)
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupported)
	}
	return ParseLanguage(ctx, lang, path, src)
}

// ParseLanguage parses src with an explicit grammar.
func ParseLanguage(ctx context.Context, lang Language, path string, src []byte) (*ast.File, error) {
	// Parsers are not safe for concurrent use; one per call.
	p := sitter.NewParser()
	defer p.Close()
	p.SetLanguage(lang.grammar())

	tree, err := p.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	c := &converter{src: src}
	prog := &ast.Program{Body: c.list(root)}
	c.locate(prog, root)

	return &ast.File{
		Name:    path,
		Source:  src,
		Program: prog,
		Errors:  countErrors(root),
	}, nil
}

func countErrors(n *sitter.Node) int {
	if n == nil || !n.HasError() && !n.IsMissing() {
		return 0
	}
	if n.IsMissing() || n.Type() == "ERROR" {
		return 1
	}
	count := 0
	for i := 0; i < int(n.ChildCount()); i++ {
		count += countErrors(n.Child(i))
	}
	return count
}
