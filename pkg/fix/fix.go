// Package fix applies the edits attached to diagnostics.
package fix

import (
	"cmp"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/curiousdev-oss/web-perf-toolkit/pkg/rule"
)

// ErrOverlap is returned when two edits touch the same bytes.
var ErrOverlap = errors.New("overlapping edits")

// Apply returns src with edits applied. Edits are given in original
// offsets and may come in any order.
func Apply(src []byte, edits []rule.TextEdit) ([]byte, error) {
	sorted := slices.Clone(edits)
	slices.SortStableFunc(sorted, compareEdits)

	out := make([]byte, 0, len(src))
	last := 0
	for _, e := range sorted {
		if e.Start < 0 || e.End < e.Start || e.End > len(src) {
			return nil, fmt.Errorf("edit [%d,%d) outside source of %d bytes", e.Start, e.End, len(src))
		}
		if e.Start < last {
			return nil, fmt.Errorf("edit at %d: %w", e.Start, ErrOverlap)
		}
		out = append(out, src[last:e.Start]...)
		out = append(out, e.NewText...)
		last = e.End
	}
	return append(out, src[last:]...), nil
}

func compareEdits(a, b rule.TextEdit) int {
	return cmp.Or(cmp.Compare(a.Start, b.Start), cmp.Compare(a.End, b.End))
}

// overlaps matches the check in Apply: touching edits are fine, and an
// insertion may sit at either end of a replacement.
func overlaps(a, b rule.TextEdit) bool {
	if compareEdits(b, a) < 0 {
		a, b = b, a
	}
	return b.Start < a.End
}

// Select picks the fixes that can be applied together, in order. A fix that
// overlaps an earlier pick is skipped whole.
func Select(fixes []rule.Fix) (picked, skipped []rule.Fix) {
	var taken []rule.TextEdit
next:
	for _, f := range fixes {
		for _, e := range f.Edits {
			for _, t := range taken {
				if overlaps(e, t) {
					skipped = append(skipped, f)
					continue next
				}
			}
		}
		taken = append(taken, f.Edits...)
		picked = append(picked, f)
	}
	return picked, skipped
}

// FileResult describes the fixes for one file.
type FileResult struct {
	Path    string
	Applied int
	Skipped int
	Diff    string
}

// Files applies the fixes carried by diags. With dryRun set nothing is
// written and each result holds a unified diff instead.
func Files(fs billy.Filesystem, diags []rule.Diagnostic, dryRun bool) ([]FileResult, error) {
	byFile := make(map[string][]rule.Fix)
	for _, d := range diags {
		if d.Fix != nil && len(d.Fix.Edits) > 0 {
			byFile[d.Pos.Filename] = append(byFile[d.Pos.Filename], *d.Fix)
		}
	}

	var results []FileResult
	for _, path := range slices.Sorted(maps.Keys(byFile)) {
		res, err := file(fs, path, byFile[path], dryRun)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

func file(fs billy.Filesystem, path string, fixes []rule.Fix, dryRun bool) (FileResult, error) {
	res := FileResult{Path: path}
	src, err := util.ReadFile(fs, path)
	if err != nil {
		return res, fmt.Errorf("reading %s: %w", path, err)
	}

	picked, skipped := Select(fixes)
	res.Applied, res.Skipped = len(picked), len(skipped)

	var edits []rule.TextEdit
	for _, f := range picked {
		edits = append(edits, f.Edits...)
	}
	out, err := Apply(src, edits)
	if err != nil {
		return res, fmt.Errorf("fixing %s: %w", path, err)
	}

	if dryRun {
		res.Diff, err = Diff(path, src, out)
		return res, err
	}
	info, err := fs.Stat(path)
	if err != nil {
		return res, fmt.Errorf("fixing %s: %w", path, err)
	}
	if err := util.WriteFile(fs, path, out, info.Mode().Perm()); err != nil {
		return res, fmt.Errorf("writing %s: %w", path, err)
	}
	return res, nil
}

// Diff renders a unified diff between two versions of path.
func Diff(path string, before, after []byte) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(before)),
		B:        difflib.SplitLines(string(after)),
		FromFile: "a/" + strings.TrimLeft(path, "/"),
		ToFile:   "b/" + strings.TrimLeft(path, "/"),
		Context:  3,
	})
}
