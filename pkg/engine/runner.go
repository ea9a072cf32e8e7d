package engine

import (
	"cmp"
	"context"
	"go/token"
	"log/slog"
	"runtime"
	"slices"
	"sync"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"golang.org/x/sync/errgroup"

	"github.com/curiousdev-oss/web-perf-toolkit/pkg/parser"
	"github.com/curiousdev-oss/web-perf-toolkit/pkg/rule"
)

type Runner struct {
	walker      *Walker
	fs          billy.Filesystem
	cache       *Cache
	concurrency int
	ruleSetKey  string
	logger      *slog.Logger
}

func NewRunner(walker *Walker, fs billy.Filesystem, cache *Cache, concurrency int, ruleSetKey string, logger *slog.Logger) *Runner {
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{
		walker:      walker,
		fs:          fs,
		cache:       cache,
		concurrency: concurrency,
		ruleSetKey:  ruleSetKey,
		logger:      logger,
	}
}

// Run analyzes files in parallel and returns the diagnostics sorted by
// position. Files that cannot be read or parsed are skipped and logged.
func (r *Runner) Run(ctx context.Context, files []string) (*Result, error) {
	var (
		mu  sync.Mutex
		res = &Result{Files: files}
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for _, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			src, err := util.ReadFile(r.fs, path)
			if err != nil {
				r.logger.Warn("skipping unreadable file", "file", path, "error", err)
				mu.Lock()
				res.Skipped = append(res.Skipped, path)
				mu.Unlock()
				return nil
			}
			fileHash := HashFile(src)

			if cached, ok := r.cache.Lookup(path, fileHash, r.ruleSetKey); ok {
				r.logger.Debug("cache hit", "file", path)
				mu.Lock()
				res.Diagnostics = append(res.Diagnostics, cached...)
				mu.Unlock()
				return nil
			}

			diags, err := r.lint(gctx, path, src)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				r.logger.Warn("skipping file", "file", path, "error", err)
				mu.Lock()
				res.Skipped = append(res.Skipped, path)
				mu.Unlock()
				return nil
			}

			r.cache.Store(path, fileHash, r.ruleSetKey, diags)

			mu.Lock()
			res.Diagnostics = append(res.Diagnostics, diags...)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return res, err
	}

	slices.Sort(res.Skipped)
	sortDiagnostics(res.Diagnostics)
	return res, nil
}

func (r *Runner) lint(ctx context.Context, path string, src []byte) ([]rule.Diagnostic, error) {
	file, err := parser.Parse(ctx, path, src)
	if err != nil {
		return nil, err
	}
	if file.Errors > 0 {
		r.logger.Debug("file has syntax errors, linting the recovered tree", "file", path, "errors", file.Errors)
	}
	return r.walker.Walk(file), nil
}

// sortDiagnostics orders by position, then rule name. The sort is stable so
// one rule's reports on the same node keep their order.
func sortDiagnostics(diags []rule.Diagnostic) {
	slices.SortStableFunc(diags, func(a, b rule.Diagnostic) int {
		if c := comparePosition(a.Pos, b.Pos); c != 0 {
			return c
		}
		return cmp.Compare(a.Rule, b.Rule)
	})
}

func comparePosition(a, b token.Position) int {
	return cmp.Or(
		cmp.Compare(a.Filename, b.Filename),
		cmp.Compare(a.Line, b.Line),
		cmp.Compare(a.Column, b.Column),
	)
}
