// Package fixtures discovers and runs golden CSS fixtures: an input
// stylesheet, the stylesheet it must produce, and an optional config.
package fixtures

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-logr/logr"
	ignore "github.com/sabhiram/go-gitignore"

	"github.com/yacobolo/twtest/internal/cssnorm"
	"github.com/yacobolo/twtest/internal/engine"
	"github.com/yacobolo/twtest/internal/warnlog"
)

// DefaultPattern matches fixture inputs anywhere under the root.
const DefaultPattern = "**/*" + InputSuffix

// File name suffixes that make up a fixture.
const (
	InputSuffix  = ".input.css"
	OutputSuffix = ".output.css"
	ConfigSuffix = ".config.yaml"
)

// Fixture is one golden test case. Paths are relative to the discovery root.
type Fixture struct {
	Name   string // stem shared by the fixture files, e.g. "plugins/skew"
	Input  string
	Output string
	Config string // empty when the fixture has no config file
}

// Stats tracks discovery statistics.
type Stats struct {
	Discovered int // inputs matched by the pattern
	Skipped    int // inputs ignored by .gitignore
}

// Set is a discovered group of fixtures sharing a root directory.
type Set struct {
	Root     string
	Fixtures []Fixture
	Stats    Stats
}

// Discover finds fixtures under root matching pattern. Files matched by
// root/.gitignore are skipped. Every input must have an output file.
func Discover(root, pattern string) (*Set, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid fixture pattern %q", pattern)
	}

	fsys := os.DirFS(root)
	matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}
	sort.Strings(matches)

	gi := loadGitIgnore(root)
	set := &Set{Root: root}
	for _, match := range matches {
		if !strings.HasSuffix(match, InputSuffix) {
			continue
		}
		set.Stats.Discovered++
		if gi != nil && gi.MatchesPath(match) {
			set.Stats.Skipped++
			continue
		}

		stem := strings.TrimSuffix(match, InputSuffix)
		fx := Fixture{Name: stem, Input: match, Output: stem + OutputSuffix}
		if _, err := fs.Stat(fsys, fx.Output); err != nil {
			return nil, fmt.Errorf("fixture %s: missing %s", stem, path.Base(fx.Output))
		}
		if _, err := fs.Stat(fsys, stem+ConfigSuffix); err == nil {
			fx.Config = stem + ConfigSuffix
		}
		set.Fixtures = append(set.Fixtures, fx)
	}
	return set, nil
}

// loadGitIgnore compiles root/.gitignore. A missing file yields nil.
func loadGitIgnore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}

// Result is the outcome of running one fixture.
type Result struct {
	Fixture  Fixture
	Actual   string
	Warnings []warnlog.Warning
	Err      error                  // engine or I/O failure
	Mismatch *cssnorm.MismatchError // output differs from the golden file
}

// Passed reports whether the fixture produced its expected output.
func (r Result) Passed() bool {
	return r.Err == nil && r.Mismatch == nil
}

// Run processes every fixture in set. The fixture config, if any, is merged
// over base. Warnings are captured per fixture and verbose engine output
// goes to log. Failures are recorded per fixture; the returned error is only
// set when ctx is canceled.
func Run(ctx context.Context, set *Set, base engine.Config, log logr.Logger, opts ...engine.Option) ([]Result, error) {
	results := make([]Result, 0, len(set.Fixtures))
	for _, fx := range set.Fixtures {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		results = append(results, runOne(ctx, set.Root, fx, base, log, opts))
	}
	return results, nil
}

func runOne(ctx context.Context, root string, fx Fixture, base engine.Config, log logr.Logger, opts []engine.Option) Result {
	res := Result{Fixture: fx}

	input, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(fx.Input)))
	if err != nil {
		res.Err = err
		return res
	}
	expected, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(fx.Output)))
	if err != nil {
		res.Err = err
		return res
	}

	cfg := base
	if fx.Config != "" {
		override, err := engine.LoadConfigFile(filepath.Join(root, filepath.FromSlash(fx.Config)))
		if err != nil {
			res.Err = fmt.Errorf("load %s: %w", fx.Config, err)
			return res
		}
		cfg = engine.Merge(base, override)
	}

	rec := warnlog.NewRecorder()
	rec.Forward = log.WithValues("fixture", fx.Name)
	runOpts := append(append([]engine.Option(nil), opts...), engine.WithLogger(rec.Logger()))
	out, err := engine.Process(ctx, cfg, string(input), runOpts...)
	res.Warnings = rec.Warnings()
	if err != nil {
		res.Err = err
		return res
	}
	res.Actual = out.CSS

	var mismatch *cssnorm.MismatchError
	if err := cssnorm.Equal(res.Actual, string(expected)); errors.As(err, &mismatch) {
		res.Mismatch = mismatch
	}
	return res
}

// Update rewrites the golden output of every mismatched fixture and returns
// how many files were written.
func Update(root string, results []Result) (int, error) {
	n := 0
	for _, r := range results {
		if r.Err != nil || r.Mismatch == nil {
			continue
		}
		dst := filepath.Join(root, filepath.FromSlash(r.Fixture.Output))
		if err := os.WriteFile(dst, []byte(r.Actual), 0644); err != nil {
			return n, fmt.Errorf("update %s: %w", r.Fixture.Output, err)
		}
		n++
	}
	return n, nil
}
