package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/yacobolo/twtest/internal/cssnorm"
	"github.com/yacobolo/twtest/internal/report"
)

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare ACTUAL EXPECTED...",
		Short: "Compare stylesheets modulo formatting",
		Long: `Compare two CSS files after normalizing whitespace and semicolons.
With --contains, every EXPECTED file is a fragment that must appear in ACTUAL.`,
		Args: cobra.MinimumNArgs(2),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return loadConfig(cmd)
		},
		RunE: runCompare,
	}

	f := cmd.Flags()
	f.Bool("contains", false, "Treat EXPECTED files as fragments of ACTUAL")
	f.Bool("diff", false, "Print a full diff on mismatch")
	return cmd
}

func runCompare(cmd *cobra.Command, args []string) error {
	contains := getBoolWithFallback("contains", "compare.contains", false)
	if !contains && len(args) != 2 {
		return fmt.Errorf("compare takes exactly 2 files without --contains, got %d", len(args))
	}

	files := make([]string, len(args))
	for i, path := range args {
		// #nosec G304 - CLI tool reads user-specified files
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		files[i] = string(data)
	}

	out := cmd.OutOrStdout()
	reporter := newReporter(out, report.Options{ShowDiff: getBoolWithFallback("diff", "compare.diff", false)})

	if !contains {
		err := cssnorm.Equal(files[0], files[1])
		var mismatch *cssnorm.MismatchError
		if errors.As(err, &mismatch) {
			reporter.PrintMismatch(mismatch)
			return fmt.Errorf("%s does not match %s", args[0], args[1])
		}
		if !isQuiet() {
			fmt.Fprintln(out, "match")
		}
		return nil
	}

	err := cssnorm.Contains(files[0], files[1:]...)
	var merr *multierror.Error
	if errors.As(err, &merr) {
		if !isQuiet() {
			for _, e := range merr.Errors {
				var missing *cssnorm.MissingFragmentError
				if errors.As(e, &missing) {
					fmt.Fprintf(out, "missing fragment:\n%s\n", missing.Fragment)
				}
			}
		}
		return fmt.Errorf("%s is missing %d of %d fragments", args[0], len(merr.Errors), len(files)-1)
	}
	if !isQuiet() {
		fmt.Fprintln(out, "match")
	}
	return nil
}
