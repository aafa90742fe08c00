// Package report prints fixture results, CSS mismatches and warnings for
// terminals and CI logs.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/yacobolo/twtest/internal/cssnorm"
	"github.com/yacobolo/twtest/internal/fixtures"
	"github.com/yacobolo/twtest/internal/warnlog"
)

// Options configures a Reporter.
type Options struct {
	UseColors bool // force colors on
	ShowDiff  bool // print a full diff for mismatches
}

// Reporter writes results to w.
type Reporter struct {
	w         io.Writer
	useColors bool
	showDiff  bool
}

// NewReporter creates a reporter. Colors are enabled by the option, by
// FORCE_COLOR or GITHUB_ACTIONS, or when stdout is a terminal.
func NewReporter(w io.Writer, opts Options) *Reporter {
	return &Reporter{
		w:         w,
		useColors: shouldUseColors(opts),
		showDiff:  opts.ShowDiff,
	}
}

func shouldUseColors(opts Options) bool {
	if opts.UseColors {
		return true
	}
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}
	if fileInfo, err := os.Stdout.Stat(); err == nil && (fileInfo.Mode()&os.ModeCharDevice) != 0 {
		return true
	}
	return false
}

// UseColors returns whether colors are enabled.
func (r *Reporter) UseColors() bool {
	return r.useColors
}

// PrintResults prints one line per fixture followed by failure details.
func (r *Reporter) PrintResults(results []fixtures.Result) {
	for _, res := range results {
		r.printResult(res)
	}
}

func (r *Reporter) printResult(res fixtures.Result) {
	name := RenderStyle(StyleCyan, res.Fixture.Name, r.useColors)
	switch {
	case res.Err != nil:
		fmt.Fprintf(r.w, "%s %s: %v\n", RenderStyle(StyleRed, "ERROR", r.useColors), name, res.Err)
	case res.Mismatch != nil:
		fmt.Fprintf(r.w, "%s %s %s\n", RenderStyle(StyleRed, "FAIL ", r.useColors), name,
			RenderStyle(StyleGray, "("+res.Fixture.Output+")", r.useColors))
		r.PrintMismatch(res.Mismatch)
	default:
		fmt.Fprintf(r.w, "%s %s\n", RenderStyle(StyleGreen, "ok   ", r.useColors), name)
	}
	r.PrintWarnings(res.Warnings)
}

// PrintMismatch shows the first differing line of a comparison with a
// caret under the first differing column, then the full diff if enabled.
func (r *Reporter) PrintMismatch(m *cssnorm.MismatchError) {
	want := strings.Split(m.Expected, "\n")
	got := strings.Split(m.Actual, "\n")

	line, col := firstDifference(want, got)
	fmt.Fprintf(r.w, "\tline %d:\n", line+1)
	fmt.Fprintf(r.w, "\t- %s\n", RenderStyle(StyleRed, lineAt(want, line), r.useColors))
	fmt.Fprintf(r.w, "\t+ %s\n", RenderStyle(StyleGreen, lineAt(got, line), r.useColors))
	caret := r.buildCaretIndicator(lineAt(got, line), col)
	fmt.Fprintf(r.w, "\t  %s\n", RenderStyle(StyleYellow, caret, r.useColors))

	if r.showDiff {
		for _, l := range strings.Split(strings.TrimRight(m.Diff(), "\n"), "\n") {
			fmt.Fprintf(r.w, "\t%s\n", l)
		}
	}
}

// PrintWarnings lists captured warnings, one bullet per record.
func (r *Reporter) PrintWarnings(warnings []warnlog.Warning) {
	for _, w := range warnings {
		if len(w.Args) == 0 {
			continue
		}
		fmt.Fprintf(r.w, "\t%s %s\n", RenderStyle(StyleYellow, "warn", r.useColors), w.Args[0])
		for _, extra := range w.Args[1:] {
			fmt.Fprintf(r.w, "\t     %s\n", RenderStyle(StyleGray, extra, r.useColors))
		}
	}
}

// PrintSummary outputs the pass/fail counts.
func (r *Reporter) PrintSummary(results []fixtures.Result) {
	var failed, errored, warned int
	for _, res := range results {
		switch {
		case res.Err != nil:
			errored++
		case res.Mismatch != nil:
			failed++
		}
		if len(res.Warnings) > 0 {
			warned++
		}
	}

	fmt.Fprintln(r.w, "")
	summary := fmt.Sprintf("%s (%d passed, %d failed, %d errored)",
		pluralizeCount(len(results), "fixture", "fixtures"),
		len(results)-failed-errored, failed, errored)
	style := StyleGreen
	if failed+errored > 0 {
		style = StyleRed
	}
	fmt.Fprintln(r.w, RenderStyle(style, summary, r.useColors))
	if warned > 0 {
		fmt.Fprintln(r.w, RenderStyle(StyleYellow, pluralizeCount(warned, "fixture", "fixtures")+" logged warnings", r.useColors))
	}

	if failed > 0 && !r.showDiff {
		fmt.Fprintln(r.w, "")
		fmt.Fprintln(r.w, RenderStyle(StyleGray, "Hint: Run with --diff to see full diffs or --update to rewrite golden files", r.useColors))
	}
}

// buildCaretIndicator creates the "^" indicator aligned with a 1-based
// column, keeping tabs so the caret lines up.
func (r *Reporter) buildCaretIndicator(sourceLine string, column int) string {
	if column <= 0 {
		return "^"
	}

	prefixLen := column - 1
	if prefixLen > len(sourceLine) {
		prefixLen = len(sourceLine)
	}

	var padding strings.Builder
	for _, ch := range sourceLine[:prefixLen] {
		if ch == '\t' {
			padding.WriteRune('\t')
		} else {
			padding.WriteRune(' ')
		}
	}
	return padding.String() + "^"
}

// firstDifference returns the 0-based line and 1-based column where two
// line lists first differ.
func firstDifference(want, got []string) (int, int) {
	for i := 0; i < len(want) || i < len(got); i++ {
		a, b := lineAt(want, i), lineAt(got, i)
		if a == b {
			continue
		}
		col := 0
		for col < len(a) && col < len(b) && a[col] == b[col] {
			col++
		}
		return i, col + 1
	}
	return 0, 0
}

func lineAt(lines []string, i int) string {
	if i < len(lines) {
		return lines[i]
	}
	return ""
}

// pluralizeCount returns a formatted string with count and singular/plural form
func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}
