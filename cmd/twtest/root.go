package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "twtest",
		Short: "Test kit for utility CSS plugins",
		Long: `Generate CSS from a styling config, compare stylesheets modulo
formatting, and run golden fixtures (<name>.input.css -> <name>.output.css).`,
		// Default behavior: verify fixtures when no subcommand is given.
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			return runVerify(cmd, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global persistent flags (inherited by all subcommands)
	pf := rootCmd.PersistentFlags()
	pf.BoolP("verbose", "v", false, "Enable verbose logging")
	pf.Bool("quiet", false, "Suppress all output (exit code only)")
	pf.Bool("color", false, "Force color output")
	pf.String("config", ".twtest.yaml", "Config file path")
	addVerifyFlags(rootCmd)

	rootCmd.AddCommand(newBuildCmd())
	rootCmd.AddCommand(newCompareCmd())
	rootCmd.AddCommand(newVerifyCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newCompletionCmd(rootCmd))
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}
