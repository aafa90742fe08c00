package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yacobolo/twtest/csstest"
	"github.com/yacobolo/twtest/internal/report"
)

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [input.css]",
		Short: "Generate CSS from a styling config",
		Long: `Merge a YAML styling config onto the base test config and run the
input stylesheet through the pipeline. Without an input, every utility is
generated ("@tailwind utilities").`,
		Args: cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return loadConfig(cmd)
		},
		RunE: runBuild,
	}

	f := cmd.Flags()
	f.String("tw-config", "", "YAML styling config merged onto the base config")
	f.StringP("output", "o", "", "Write CSS to this file instead of stdout")
	f.Bool("minify", false, "Minify the generated CSS")
	return cmd
}

func runBuild(cmd *cobra.Command, args []string) error {
	opts := buildBuildOptions()
	if len(args) == 1 {
		opts.Input = args[0]
	}

	cfg, err := loadEngineConfig(opts.EngineConfig)
	if err != nil {
		return err
	}

	src := csstest.DefaultCSS
	if opts.Input != "" {
		// #nosec G304 - CLI tool reads user-specified files
		data, err := os.ReadFile(opts.Input)
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		src = string(data)
	}

	rec := csstest.NewRecorder()
	rec.Forward = newLogger(cmd.ErrOrStderr())
	gen := csstest.Generator{Logger: rec.Logger(), Minify: opts.Minify}

	css, err := gen.Generate(cmd.Context(), cfg, src)
	newReporter(cmd.ErrOrStderr(), report.Options{}).PrintWarnings(rec.Warnings())
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	if opts.Output == "" {
		if !isQuiet() {
			fmt.Fprint(cmd.OutOrStdout(), css)
		}
		return nil
	}
	if err := os.WriteFile(opts.Output, []byte(css), 0644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
