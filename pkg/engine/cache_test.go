package engine

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curiousdev-oss/web-perf-toolkit/pkg/rule"
)

var errDiskFull = errors.New("disk full")

// fullFS accepts opens but fails every write.
type fullFS struct {
	billy.Filesystem
}

func (fs fullFS) OpenFile(name string, flag int, perm os.FileMode) (billy.File, error) {
	f, err := fs.Filesystem.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	return fullFile{f}, nil
}

// lockedFS refuses to open anything for writing.
type lockedFS struct {
	billy.Filesystem
}

func (lockedFS) OpenFile(name string, _ int, _ os.FileMode) (billy.File, error) {
	return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrPermission}
}

type fullFile struct {
	billy.File
}

func (fullFile) Write([]byte) (int, error) { return 0, errDiskFull }

func debugLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestCacheRoundTrip(t *testing.T) {
	c, err := NewCache(memfs.New(), "/cache", true, nil)
	require.NoError(t, err)

	diags := []rule.Diagnostic{{Rule: "no-sync-apis", Message: "sync"}}
	c.Store("/a.ts", "h1", "rs", diags)

	got, ok := c.Lookup("/a.ts", "h1", "rs")
	require.True(t, ok)
	assert.Equal(t, diags, got)

	_, ok = c.Lookup("/a.ts", "h2", "rs")
	assert.False(t, ok, "stale hash")
	_, ok = c.Lookup("/a.ts", "h1", "other")
	assert.False(t, ok, "other rule set")
}

func TestCacheStoreLogsWriteFailure(t *testing.T) {
	var buf bytes.Buffer
	fs := fullFS{memfs.New()}
	c, err := NewCache(fs, "/cache", true, debugLogger(&buf))
	require.NoError(t, err)

	c.Store("/a.ts", "h1", "rs", []rule.Diagnostic{{Rule: "x"}})

	assert.Contains(t, buf.String(), "cache write failed")
	assert.Contains(t, buf.String(), "disk full")
	assert.Contains(t, buf.String(), "file=/a.ts")

	_, ok := c.Lookup("/a.ts", "h1", "rs")
	assert.False(t, ok)
	entries, err := fs.ReadDir("/cache")
	require.NoError(t, err)
	assert.Empty(t, entries, "partial entry removed")
}

func TestCacheStoreLogsOpenFailure(t *testing.T) {
	var buf bytes.Buffer
	c, err := NewCache(lockedFS{memfs.New()}, "/cache", true, debugLogger(&buf))
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		c.Store("/a.ts", "h1", "rs", nil)
	})
	assert.Contains(t, buf.String(), "cache write failed")
	assert.Contains(t, buf.String(), "permission denied")
}

func TestCacheDisabled(t *testing.T) {
	var buf bytes.Buffer
	c, err := NewCache(memfs.New(), "", true, debugLogger(&buf))
	require.NoError(t, err)

	c.Store("/a.ts", "h1", "rs", nil)
	_, ok := c.Lookup("/a.ts", "h1", "rs")
	assert.False(t, ok)
	assert.Empty(t, buf.String())
}
