package engine

import (
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path"
	"sync"

	"github.com/go-git/go-billy/v5"

	"github.com/curiousdev-oss/web-perf-toolkit/pkg/rule"
)

// Cache stores the diagnostics of a file keyed by its path and the active
// rule set, and validated against the content hash.
type Cache struct {
	mu      sync.RWMutex
	fs      billy.Filesystem
	dir     string
	enabled bool
	logger  *slog.Logger
}

type cachedResult struct {
	FileHash    string
	Diagnostics []rule.Diagnostic
}

func NewCache(fs billy.Filesystem, dir string, enabled bool, logger *slog.Logger) (*Cache, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if dir == "" {
		enabled = false
	}
	if enabled {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating cache dir: %w", err)
		}
	}
	return &Cache{fs: fs, dir: dir, enabled: enabled, logger: logger}, nil
}

func HashFile(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

func (c *Cache) entry(filePath, ruleSet string) string {
	h := sha256.Sum256([]byte(filePath + "\x00" + ruleSet))
	return path.Join(c.dir, hex.EncodeToString(h[:16])+".gob")
}

func (c *Cache) Lookup(filePath, fileHash, ruleSet string) ([]rule.Diagnostic, bool) {
	if !c.enabled {
		return nil, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := c.fs.Open(c.entry(filePath, ruleSet))
	if err != nil {
		return nil, false
	}
	defer f.Close()

	var cr cachedResult
	if err := gob.NewDecoder(f).Decode(&cr); err != nil {
		return nil, false
	}
	if cr.FileHash != fileHash {
		return nil, false
	}
	return cr.Diagnostics, true
}

// Store is best effort; a failed write is logged and only costs a re-lint.
func (c *Cache) Store(filePath, fileHash, ruleSet string, diags []rule.Diagnostic) {
	if !c.enabled {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry := c.entry(filePath, ruleSet)
	f, err := c.fs.OpenFile(entry, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		c.logger.Debug("cache write failed", "file", filePath, "entry", entry, "error", err)
		return
	}

	err = gob.NewEncoder(f).Encode(cachedResult{
		FileHash:    fileHash,
		Diagnostics: diags,
	})
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		c.logger.Debug("cache write failed", "file", filePath, "entry", entry, "error", err)
		// A partial entry would fail to decode anyway.
		_ = c.fs.Remove(entry)
	}
}

func (c *Cache) Clear() error {
	if c.dir == "" {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	entries, err := c.fs.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, e := range entries {
		if path.Ext(e.Name()) == ".gob" {
			if err := c.fs.Remove(path.Join(c.dir, e.Name())); err != nil {
				return err
			}
		}
	}
	return nil
}
