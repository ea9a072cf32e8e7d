package engine

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/curiousdev-oss/web-perf-toolkit/pkg/config"
	"github.com/curiousdev-oss/web-perf-toolkit/pkg/loader"
	"github.com/curiousdev-oss/web-perf-toolkit/pkg/rule"
)

// ErrNoRules is returned by New when the configuration enables nothing.
var ErrNoRules = errors.New("no rules enabled")

type Engine struct {
	cfg    *config.Config
	fs     billy.Filesystem
	root   string
	logger *slog.Logger
	rules  []ActiveRule
	cache  *Cache
	runner *Runner
}

type Option func(*Engine)

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithFS sets the filesystem sources and the cache are read from. The
// default is the host filesystem.
func WithFS(fs billy.Filesystem) Option {
	return func(e *Engine) { e.fs = fs }
}

// WithRoot sets the directory relative patterns and ignore rules are
// resolved against.
func WithRoot(dir string) Option {
	return func(e *Engine) { e.root = dir }
}

func New(cfg *config.Config, registry *rule.Registry, opts ...Option) (*Engine, error) {
	e := &Engine{cfg: cfg, root: "."}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.New(slog.DiscardHandler)
	}
	if e.fs == nil {
		e.fs = osfs.New("/")
	}

	active, err := resolveRules(cfg, registry, e.logger)
	if err != nil {
		return nil, err
	}
	if len(active) == 0 {
		return nil, fmt.Errorf("%w; enable rules in .perflint.yml or use --enable-all", ErrNoRules)
	}
	e.rules = active

	cache, err := NewCache(e.fs, cfg.Cache.Dir, cfg.Cache.Enabled, e.logger)
	if err != nil {
		return nil, fmt.Errorf("initializing cache: %w", err)
	}
	e.cache = cache

	walker := NewWalker(active, e.logger)
	e.runner = NewRunner(walker, e.fs, cache, cfg.Concurrency, computeRuleSetKey(active), e.logger)
	return e, nil
}

func resolveRules(cfg *config.Config, registry *rule.Registry, logger *slog.Logger) ([]ActiveRule, error) {
	settings, err := cfg.Effective()
	if err != nil {
		return nil, err
	}
	for name := range settings {
		if _, ok := registry.Get(name); !ok {
			logger.Warn("unknown rule in configuration", "rule", name)
		}
	}

	var active []ActiveRule
	for _, r := range registry.All() {
		rc, exists := settings[r.Name()]
		if exists && !rc.IsEnabled() {
			continue
		}
		if !exists && !cfg.EnableAll {
			continue
		}

		severity := r.Severity()
		if rc.Severity != "" {
			if severity, err = rule.ParseSeverity(rc.Severity); err != nil {
				return nil, fmt.Errorf("rule %s: %w", r.Name(), err)
			}
		}

		opts := rule.Options(rc.Options)
		if c, ok := r.(rule.Configurable); ok {
			for _, problem := range c.Schema().Validate(opts) {
				logger.Warn("rule option ignored", "rule", r.Name(), "problem", problem)
			}
		} else if len(opts) > 0 {
			logger.Warn("rule takes no options", "rule", r.Name())
		}

		active = append(active, ActiveRule{Rule: r, Severity: severity, Options: opts})
	}
	return active, nil
}

// Result is the outcome of one run.
type Result struct {
	Files       []string
	Skipped     []string
	Diagnostics []rule.Diagnostic
}

// Run lints the files matched by patterns.
func (e *Engine) Run(ctx context.Context, patterns []string) (*Result, error) {
	files, err := loader.Load(e.fs, e.root, patterns, loader.Options{Ignore: e.cfg.Ignore})
	if err != nil {
		return nil, fmt.Errorf("loading sources: %w", err)
	}
	e.logger.Debug("sources loaded", "files", len(files.Files), "rules", len(e.rules))
	return e.runner.Run(ctx, files.Files)
}

// Lint checks a single in-memory source. The cache is not consulted.
func (e *Engine) Lint(ctx context.Context, path string, src []byte) ([]rule.Diagnostic, error) {
	return e.runner.lint(ctx, path, src)
}

func (e *Engine) ActiveRules() []ActiveRule {
	return e.rules
}

func (e *Engine) ClearCache() error {
	return e.cache.Clear()
}

// computeRuleSetKey identifies the active rules with their settings, so a
// configuration change invalidates cached results.
func computeRuleSetKey(rules []ActiveRule) string {
	parts := make([]string, 0, len(rules))
	for _, ar := range rules {
		opts, _ := json.Marshal(ar.Options)
		parts = append(parts, fmt.Sprintf("%s:%s:%s", ar.Rule.Name(), ar.Severity, opts))
	}
	h := sha256.Sum256([]byte(strings.Join(parts, ",")))
	return hex.EncodeToString(h[:8])
}
