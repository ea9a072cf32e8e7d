package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/curiousdev-oss/web-perf-toolkit/pkg/config"
	"github.com/curiousdev-oss/web-perf-toolkit/pkg/engine"
	"github.com/curiousdev-oss/web-perf-toolkit/pkg/fix"
	"github.com/curiousdev-oss/web-perf-toolkit/pkg/preset"
	"github.com/curiousdev-oss/web-perf-toolkit/pkg/report"
	"github.com/curiousdev-oss/web-perf-toolkit/pkg/rule"
)

// errFindings makes the process exit with status 1 without printing.
var errFindings = errors.New("error-severity diagnostics found")

type runOptions struct {
	configPath  string
	preset      string
	format      string
	enableAll   bool
	noCache     bool
	noColor     bool
	concurrency int
	fix         bool
	fixDryRun   bool
	verbose     bool
}

func runCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run [paths...]",
		Short: "Lint JavaScript and TypeScript sources",
		Long: "Lint the given files and directories, or the current directory when none\n" +
			"are given. Directories are walked recursively, honoring .gitignore.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return run(ctx, cmd, args, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "path to config file")
	f.StringVarP(&opts.preset, "preset", "p", "", "preset to extend, overriding the config file")
	f.StringVarP(&opts.format, "format", "f", "", "output format: text, json, sarif, github")
	f.BoolVar(&opts.enableAll, "enable-all", false, "enable all rules regardless of config")
	f.BoolVar(&opts.noCache, "no-cache", false, "disable result caching")
	f.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	f.IntVarP(&opts.concurrency, "concurrency", "j", 0, "number of concurrent workers (0 = GOMAXPROCS)")
	f.BoolVar(&opts.fix, "fix", false, "apply available fixes to the sources")
	f.BoolVar(&opts.fixDryRun, "fix-dry-run", false, "print available fixes as a diff without writing")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug information to stderr")
	cmd.MarkFlagsMutuallyExclusive("fix", "fix-dry-run")

	return cmd
}

func run(ctx context.Context, cmd *cobra.Command, args []string, opts runOptions) error {
	start := time.Now()

	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	fs := osfs.New("/")

	cfg, err := loadConfig(fs, wd, opts)
	if err != nil {
		return err
	}
	root := wd
	if cfg.Path != "" {
		root = filepath.Dir(cfg.Path)
	}
	if cfg.Cache.Dir != "" && !filepath.IsAbs(cfg.Cache.Dir) {
		cfg.Cache.Dir = filepath.Join(root, cfg.Cache.Dir)
	}
	logger.Debug("configuration loaded", "path", cfg.Path, "extends", cfg.Extends)

	eng, err := engine.New(cfg, rule.GlobalRegistry(),
		engine.WithFS(fs), engine.WithRoot(root), engine.WithLogger(logger))
	if err != nil {
		return err
	}

	patterns := make([]string, 0, len(args))
	for _, a := range args {
		if !filepath.IsAbs(a) {
			a = filepath.Join(wd, a)
		}
		patterns = append(patterns, a)
	}
	if len(patterns) == 0 {
		patterns = append(patterns, wd)
	}

	res, err := eng.Run(ctx, patterns)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if opts.fix || opts.fixDryRun {
		results, err := fix.Files(fs, res.Diagnostics, opts.fixDryRun)
		if err != nil {
			return fmt.Errorf("applying fixes: %w", err)
		}
		for _, r := range results {
			if opts.fixDryRun {
				fmt.Fprint(cmd.OutOrStdout(), r.Diff)
				continue
			}
			logger.Info("fixed", "file", r.Path, "applied", r.Applied, "skipped", r.Skipped)
		}
		if opts.fixDryRun {
			return nil
		}
		if len(results) > 0 {
			// Report what is left after the rewrite.
			if res, err = eng.Run(ctx, patterns); err != nil {
				return fmt.Errorf("analysis failed: %w", err)
			}
		}
	}

	diags := res.Diagnostics
	for i := range diags {
		diags[i].Pos.Filename = relative(wd, diags[i].Pos.Filename)
		diags[i].End.Filename = relative(wd, diags[i].End.Filename)
	}

	out := cmd.OutOrStdout()
	reporter, err := report.New(cfg.Output.Format, report.Options{
		Color:    report.ColorEnabled(out, cfg.Output.Color),
		Version:  version,
		Registry: rule.GlobalRegistry(),
	})
	if err != nil {
		return err
	}
	if err := reporter.Report(out, diags); err != nil {
		return fmt.Errorf("reporting: %w", err)
	}

	logger.Info("done",
		"files", len(res.Files),
		"skipped", len(res.Skipped),
		"rules", len(eng.ActiveRules()),
		"elapsed", time.Since(start).Round(time.Millisecond))

	if report.Summarize(diags).Errors > 0 {
		return errFindings
	}
	return nil
}

func loadConfig(fs billy.Filesystem, wd string, opts runOptions) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		p := opts.configPath
		if !filepath.IsAbs(p) {
			p = filepath.Join(wd, p)
		}
		cfg, err = config.LoadFile(fs, p)
	} else {
		cfg, err = config.Load(fs, wd)
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if opts.preset != "" {
		if _, ok := preset.Get(opts.preset); !ok {
			return nil, fmt.Errorf("--preset %q: %w", opts.preset, config.ErrUnknownPreset)
		}
		cfg.Extends = opts.preset
	}
	if opts.format != "" {
		cfg.Output.Format = opts.format
	}
	if opts.enableAll {
		cfg.EnableAll = true
	}
	if opts.noCache {
		cfg.Cache.Enabled = false
	}
	if opts.noColor {
		cfg.Output.Color = false
	}
	if opts.concurrency > 0 {
		cfg.Concurrency = opts.concurrency
	}
	return cfg, nil
}

func relative(wd, p string) string {
	if p == "" || !filepath.IsAbs(p) {
		return p
	}
	rel, err := filepath.Rel(wd, p)
	if err != nil || strings.HasPrefix(rel, "..") {
		return p
	}
	return rel
}
