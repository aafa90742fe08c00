package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yacobolo/twtest/csstest"
	"github.com/yacobolo/twtest/internal/engine"
	"github.com/yacobolo/twtest/internal/fixtures"
	"github.com/yacobolo/twtest/internal/report"
)

func newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Run golden CSS fixtures",
		Long: `Discover <name>.input.css files, process each one with the styling
config (plus <name>.config.yaml when present) and compare the result with
<name>.output.css.`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return loadConfig(cmd)
		},
		RunE: runVerify,
	}
	addVerifyFlags(cmd)
	return cmd
}

func addVerifyFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("root", "testdata", "Fixture root directory")
	f.String("pattern", fixtures.DefaultPattern, "Glob pattern for fixture inputs, relative to root")
	f.String("tw-config", "", "YAML styling config merged onto the base config")
	f.Bool("update", false, "Rewrite golden outputs that do not match")
	f.Bool("diff", false, "Print full diffs for mismatches")
	f.Bool("strict", false, "Fail when any fixture logs a warning")
	f.String("output-format", "text", "Output format: text|summary|json")
}

func runVerify(cmd *cobra.Command, _ []string) error {
	opts := buildVerifyOptions()

	cfg, err := loadEngineConfig(opts.EngineConfig)
	if err != nil {
		return err
	}

	set, err := fixtures.Discover(opts.Root, opts.Pattern)
	if err != nil {
		return fmt.Errorf("discovering fixtures: %w", err)
	}
	if len(set.Fixtures) == 0 {
		return fmt.Errorf("no fixtures matching %q under %s", opts.Pattern, opts.Root)
	}

	log := newLogger(cmd.ErrOrStderr())
	results, err := fixtures.Run(cmd.Context(), set, engine.Merge(csstest.BaseConfig(), cfg), log)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !isQuiet() {
		format := report.DetermineOutputFormat(opts.Format)
		ropts := report.Options{ShowDiff: opts.Diff, UseColors: useColors()}
		if err := report.WriteOutput(out, set, results, format, ropts, isVerbose()); err != nil {
			return fmt.Errorf("writing results: %w", err)
		}
	}

	var failed, errored, warned int
	for _, r := range results {
		switch {
		case r.Err != nil:
			errored++
		case r.Mismatch != nil:
			failed++
		}
		if len(r.Warnings) > 0 {
			warned++
		}
	}

	if opts.Update && failed > 0 {
		n, err := fixtures.Update(set.Root, results)
		if err != nil {
			return err
		}
		if !isQuiet() {
			fmt.Fprintf(cmd.ErrOrStderr(), "Updated %d golden files\n", n)
		}
		failed = 0
	}

	switch {
	case failed+errored > 0:
		return fmt.Errorf("%d of %d fixtures failed", failed+errored, len(results))
	case opts.Strict && warned > 0:
		return fmt.Errorf("strict mode: %d fixtures logged warnings", warned)
	}
	return nil
}
