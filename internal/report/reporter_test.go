package report

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/twtest/internal/cssnorm"
	"github.com/yacobolo/twtest/internal/fixtures"
	"github.com/yacobolo/twtest/internal/warnlog"
)

func TestBuildCaretIndicator(t *testing.T) {
	reporter := &Reporter{}

	tests := []struct {
		name       string
		sourceLine string
		column     int
		want       string
	}{
		{
			name:       "spaces only",
			sourceLine: "color:red",
			column:     7,
			want:       "      ^",
		},
		{
			name:       "tabs and spaces",
			sourceLine: "\t\tmargin:0",
			column:     4,
			want:       "\t\t ^",
		},
		{
			name:       "column 0 fallback",
			sourceLine: "some line",
			column:     0,
			want:       "^",
		},
		{
			name:       "column beyond line length",
			sourceLine: "short",
			column:     100,
			want:       "     ^",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := reporter.buildCaretIndicator(tt.sourceLine, tt.column)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestFirstDifference(t *testing.T) {
	line, col := firstDifference([]string{".a{", "color:red", "}"}, []string{".a{", "color:blue", "}"})
	assert.Equal(t, 1, line)
	assert.Equal(t, 7, col)

	line, col = firstDifference([]string{"x"}, []string{"x", "y"})
	assert.Equal(t, 1, line)
	assert.Equal(t, 1, col)
}

func sampleResults() []fixtures.Result {
	mismatch := cssnorm.Equal(".a { color: blue }", ".a { color: red }").(*cssnorm.MismatchError)
	return []fixtures.Result{
		{Fixture: fixtures.Fixture{Name: "pass", Output: "pass.output.css"}},
		{
			Fixture:  fixtures.Fixture{Name: "fail", Output: "fail.output.css"},
			Actual:   ".a {\n  color: blue;\n}\n",
			Mismatch: mismatch,
			Warnings: []warnlog.Warning{{Args: []string{"careful", "details here"}}},
		},
		{Fixture: fixtures.Fixture{Name: "broken"}, Err: errors.New("line 1: boom")},
	}
}

func TestPrintResults(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, Options{})
	r.useColors = false

	r.PrintResults(sampleResults())
	out := buf.String()

	assert.Contains(t, out, "ok    pass\n")
	assert.Contains(t, out, "FAIL  fail (fail.output.css)\n")
	assert.Contains(t, out, "\tline 2:\n\t- color:red\n\t+ color:blue\n\t        ^\n")
	assert.Contains(t, out, "\twarn careful\n\t     details here\n")
	assert.Contains(t, out, "ERROR broken: line 1: boom\n")
	assert.NotContains(t, out, "-expected")
}

func TestPrintMismatchDiff(t *testing.T) {
	var buf bytes.Buffer
	r := &Reporter{w: &buf, showDiff: true}

	r.PrintMismatch(sampleResults()[1].Mismatch)
	assert.Contains(t, buf.String(), `"color:red"`)
	assert.Contains(t, buf.String(), `"color:blue"`)
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	r := &Reporter{w: &buf}

	r.PrintSummary(sampleResults())
	out := buf.String()
	assert.Contains(t, out, "3 fixtures (1 passed, 1 failed, 1 errored)")
	assert.Contains(t, out, "1 fixture logged warnings")
	assert.Contains(t, out, "Hint: Run with --diff")
}

func TestPrintStatistics(t *testing.T) {
	var buf bytes.Buffer
	set := &fixtures.Set{Root: "testdata", Stats: fixtures.Stats{Discovered: 4, Skipped: 1}}

	NewVerboseReporter(&buf, false).PrintStatistics(set, sampleResults())
	out := buf.String()
	assert.Contains(t, out, "Inputs Discovered: 4\n")
	assert.Contains(t, out, "Passed:            1 (33.3%)\n")
	assert.Contains(t, out, "Warnings:          1\n")
}

func TestShouldUseColors(t *testing.T) {
	t.Setenv("FORCE_COLOR", "")
	t.Setenv("GITHUB_ACTIONS", "")
	assert.True(t, shouldUseColors(Options{UseColors: true}))

	t.Setenv("GITHUB_ACTIONS", "true")
	assert.True(t, shouldUseColors(Options{}))
}

func TestPluralizeCount(t *testing.T) {
	assert.Equal(t, "1 fixture", pluralizeCount(1, "fixture", "fixtures"))
	assert.Equal(t, "0 fixtures", pluralizeCount(0, "fixture", "fixtures"))
}
