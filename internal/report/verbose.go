package report

import (
	"fmt"
	"io"

	"github.com/yacobolo/twtest/internal/fixtures"
)

// VerboseReporter prints discovery statistics.
type VerboseReporter struct {
	w         io.Writer
	useColors bool
}

// NewVerboseReporter creates a verbose reporter
func NewVerboseReporter(w io.Writer, useColors bool) *VerboseReporter {
	return &VerboseReporter{
		w:         w,
		useColors: useColors,
	}
}

// PrintStatistics outputs fixture discovery and run statistics.
func (r *VerboseReporter) PrintStatistics(set *fixtures.Set, results []fixtures.Result) {
	var passed, warnings int
	for _, res := range results {
		if res.Passed() {
			passed++
		}
		warnings += len(res.Warnings)
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Fixture Statistics", r.useColors))
	fmt.Fprintln(r.w, "------------------")
	fmt.Fprintf(r.w, "Root:              %s\n", set.Root)
	fmt.Fprintf(r.w, "Inputs Discovered: %d\n", set.Stats.Discovered)
	fmt.Fprintf(r.w, "Ignored:           %d\n", set.Stats.Skipped)
	fmt.Fprintf(r.w, "Run:               %d\n", len(results))
	fmt.Fprintf(r.w, "Passed:            %d (%.1f%%)\n", passed, percent(passed, len(results)))
	fmt.Fprintf(r.w, "Warnings:          %d\n", warnings)
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) * 100 / float64(total)
}
