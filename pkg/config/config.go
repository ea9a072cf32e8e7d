package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path"
	"path/filepath"

	"dario.cat/mergo"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"gopkg.in/yaml.v3"

	"github.com/curiousdev-oss/web-perf-toolkit/pkg/preset"
	"github.com/curiousdev-oss/web-perf-toolkit/pkg/rule"
)

// ErrUnknownPreset is returned when extends names no known preset.
var ErrUnknownPreset = errors.New("unknown preset")

type Config struct {
	Extends     string                `yaml:"extends,omitempty"`
	EnableAll   bool                  `yaml:"enable_all"`
	Concurrency int                   `yaml:"concurrency"`
	Ignore      []string              `yaml:"ignore,omitempty"`
	Rules       map[string]RuleConfig `yaml:"rules"`
	Cache       CacheConfig           `yaml:"cache"`
	Output      OutputConfig          `yaml:"output"`

	// Path is the file the configuration came from, empty for defaults.
	Path string `yaml:"-"`
}

// RuleConfig overrides one rule. Zero fields inherit from the preset.
type RuleConfig struct {
	Enabled  *bool          `yaml:"enabled,omitempty"`
	Severity string         `yaml:"severity,omitempty"`
	Options  map[string]any `yaml:"options,omitempty"`
}

// IsEnabled treats an unset Enabled as enabled.
func (rc RuleConfig) IsEnabled() bool {
	return rc.Enabled == nil || *rc.Enabled
}

type CacheConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

type OutputConfig struct {
	Format string `yaml:"format"`
	Color  bool   `yaml:"color"`
}

func DefaultConfig() *Config {
	return &Config{
		Extends: "recommended",
		Rules:   make(map[string]RuleConfig),
		Cache:   CacheConfig{Enabled: true, Dir: defaultCacheDir()},
		Output:  OutputConfig{Format: "text", Color: true},
	}
}

func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ".perflint-cache"
	}
	return filepath.Join(dir, "perflint")
}

var configNames = []string{".perflint.yml", ".perflint.yaml"}

// Find looks for a config file in dir and its parents. It returns "" when
// there is none.
func Find(fs billy.Filesystem, dir string) string {
	dir = path.Clean(filepath.ToSlash(dir))
	for {
		for _, name := range configNames {
			p := path.Join(dir, name)
			if info, err := fs.Stat(p); err == nil && !info.IsDir() {
				return p
			}
		}
		parent := path.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Load reads the config file found from dir upwards, or returns the
// defaults when there is none.
func Load(fs billy.Filesystem, dir string) (*Config, error) {
	p := Find(fs, dir)
	if p == "" {
		return DefaultConfig(), nil
	}
	return LoadFile(fs, p)
}

func LoadFile(fs billy.Filesystem, p string) (*Config, error) {
	data, err := util.ReadFile(fs, p)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}
	cfg.Path = p
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Rules == nil {
		cfg.Rules = make(map[string]RuleConfig)
	}
	if cfg.Cache.Dir == "" {
		cfg.Cache.Dir = defaultCacheDir()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the preset name and rule severities. Rule names and
// options are checked by the engine, which knows the registry.
func (c *Config) Validate() error {
	if c.Extends != "" {
		if _, ok := preset.Get(c.Extends); !ok {
			return fmt.Errorf("extends %q: %w", c.Extends, ErrUnknownPreset)
		}
	}
	for name, rc := range c.Rules {
		if rc.Severity == "" {
			continue
		}
		if _, err := rule.ParseSeverity(rc.Severity); err != nil {
			return fmt.Errorf("rule %s: %w", name, err)
		}
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative, got %d", c.Concurrency)
	}
	return nil
}

// Effective returns the rule settings after layering the user's rules over
// the extended preset. The user wins per field; option maps are merged key
// by key.
func (c *Config) Effective() (map[string]RuleConfig, error) {
	out := make(map[string]RuleConfig, len(c.Rules))
	for name, rc := range c.Rules {
		rc.Options = maps.Clone(rc.Options)
		out[name] = rc
	}
	if c.Extends == "" {
		return out, nil
	}
	p, ok := preset.Get(c.Extends)
	if !ok {
		return nil, fmt.Errorf("extends %q: %w", c.Extends, ErrUnknownPreset)
	}
	enabled := true
	for name, s := range p.Rules {
		base := RuleConfig{
			Enabled:  &enabled,
			Severity: s.Severity.String(),
			Options:  map[string]any(s.Options),
		}
		user := out[name]
		// Without dereferencing, an explicit enabled: false is not mistaken
		// for an empty value.
		if err := mergo.Merge(&user, base, mergo.WithoutDereference); err != nil {
			return nil, fmt.Errorf("merging preset %s into rule %s: %w", p.Name, name, err)
		}
		out[name] = user
	}
	return out, nil
}

// WriteDefault writes a starter configuration extending recommended. It
// refuses to overwrite an existing file.
func WriteDefault(fs billy.Filesystem, p string) error {
	if _, err := fs.Stat(p); err == nil {
		return fmt.Errorf("%s: %w", p, os.ErrExist)
	}
	cfg := DefaultConfig()
	cfg.Cache.Dir = ".perflint-cache"
	cfg.Ignore = []string{"node_modules/", "dist/", "*.min.js"}
	cfg.Rules = map[string]RuleConfig{
		"no-heavy-namespace-imports": {
			Options: map[string]any{"deny": []string{"lodash", "moment", "rxjs", "date-fns"}},
		},
		"no-large-bundle-imports": {
			Severity: rule.SeverityWarning.String(),
			Options:  map[string]any{"maxSize": 50},
		},
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return util.WriteFile(fs, p, data, 0o644)
}
