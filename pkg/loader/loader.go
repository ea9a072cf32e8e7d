// Package loader resolves command line arguments into the source files to
// lint.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	ignore "github.com/sabhiram/go-gitignore"

	"github.com/curiousdev-oss/web-perf-toolkit/pkg/parser"
)

// IgnoredDirs are never descended into.
var IgnoredDirs = map[string]bool{
	".git":             true,
	"node_modules":     true,
	"bower_components": true,
	"dist":             true,
	"build":            true,
	"coverage":         true,
	".next":            true,
	".nuxt":            true,
	".angular":         true,
	".svelte-kit":      true,
	".cache":           true,
	".turbo":           true,
	"vendor":           true,
}

type Options struct {
	// Ignore holds extra gitignore-style patterns, relative to the root.
	Ignore []string
	// NoGitignore skips reading the root .gitignore.
	NoGitignore bool
}

type Result struct {
	Root  string
	Files []string
}

// Load expands patterns into files. A pattern is a file, a directory, or a
// directory followed by "/..."; directories are walked recursively. Files
// named explicitly are kept even when an ignore rule matches them.
func Load(fsys billy.Filesystem, root string, patterns []string, opts Options) (*Result, error) {
	root = path.Clean(filepath.ToSlash(root))
	if len(patterns) == 0 {
		patterns = []string{root}
	}
	matcher, err := compileIgnore(fsys, root, opts)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	res := &Result{Root: root}
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			res.Files = append(res.Files, p)
		}
	}

	for _, pat := range patterns {
		p := path.Clean(filepath.ToSlash(strings.TrimSuffix(pat, "...")))
		if !path.IsAbs(p) && !strings.HasPrefix(p, root+"/") && p != root {
			p = path.Join(root, p)
		}
		info, err := fsys.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", pat, err)
		}
		if !info.IsDir() {
			if !parser.Supported(p) {
				return nil, fmt.Errorf("%s: %w", pat, parser.ErrUnsupported)
			}
			add(p)
			continue
		}
		if err := walk(fsys, root, p, matcher, add); err != nil {
			return nil, err
		}
	}

	slices.Sort(res.Files)
	return res, nil
}

func walk(fsys billy.Filesystem, root, dir string, matcher *ignore.GitIgnore, add func(string)) error {
	return util.Walk(fsys, dir, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrPermission) {
				return nil
			}
			return err
		}
		p = filepath.ToSlash(p)
		if info.IsDir() {
			if p != dir && IgnoredDirs[info.Name()] {
				return filepath.SkipDir
			}
		}
		if rel := relative(root, p); rel != "" && matcher != nil && matcher.MatchesPath(rel) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() || !parser.Supported(p) {
			return nil
		}
		add(p)
		return nil
	})
}

func relative(root, p string) string {
	if root == "." {
		return strings.TrimPrefix(p, "./")
	}
	rel := strings.TrimPrefix(p, root)
	if rel == p {
		return p
	}
	return strings.TrimPrefix(rel, "/")
}

func compileIgnore(fsys billy.Filesystem, root string, opts Options) (*ignore.GitIgnore, error) {
	var lines []string
	if !opts.NoGitignore {
		data, err := util.ReadFile(fsys, path.Join(root, ".gitignore"))
		switch {
		case err == nil:
			lines = append(lines, strings.Split(string(data), "\n")...)
		case !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("reading .gitignore: %w", err)
		}
	}
	lines = append(lines, opts.Ignore...)
	if len(lines) == 0 {
		return nil, nil
	}
	return ignore.CompileIgnoreLines(lines...), nil
}
