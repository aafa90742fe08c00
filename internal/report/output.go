package report

import (
	"io"

	"github.com/yacobolo/twtest/internal/fixtures"
)

// OutputFormat selects how verify results are written.
type OutputFormat string

// Output formats.
const (
	OutputText    OutputFormat = "text"    // per-fixture lines and summary
	OutputSummary OutputFormat = "summary" // summary and statistics only
	OutputJSON    OutputFormat = "json"    // machine-readable
)

// DetermineOutputFormat maps a flag value to a format. Unknown or empty
// values fall back to text.
func DetermineOutputFormat(formatFlag string) OutputFormat {
	switch formatFlag {
	case "summary":
		return OutputSummary
	case "json":
		return OutputJSON
	}
	return OutputText
}

// WriteOutput writes verify results in the given format.
func WriteOutput(w io.Writer, set *fixtures.Set, results []fixtures.Result, format OutputFormat, opts Options, verbose bool) error {
	switch format {
	case OutputJSON:
		return WriteJSON(w, set, results)
	case OutputSummary:
		reporter := NewReporter(w, opts)
		reporter.PrintSummary(results)
		NewVerboseReporter(w, reporter.UseColors()).PrintStatistics(set, results)
	default:
		reporter := NewReporter(w, opts)
		reporter.PrintResults(results)
		reporter.PrintSummary(results)
		if verbose {
			NewVerboseReporter(w, reporter.UseColors()).PrintStatistics(set, results)
		}
	}
	return nil
}
