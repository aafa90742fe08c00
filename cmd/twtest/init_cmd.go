package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a default .twtest.yaml config file",
		Long: `Create a .twtest.yaml configuration file in the current directory with
sensible defaults. With --example, also scaffold a sample fixture under testdata/.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			force, _ := cmd.Flags().GetBool("force")
			example, _ := cmd.Flags().GetBool("example")

			if _, err := os.Stat(".twtest.yaml"); err == nil && !force {
				return fmt.Errorf(".twtest.yaml already exists (use --force to overwrite)")
			}

			if err := os.WriteFile(".twtest.yaml", []byte(defaultConfig), 0644); err != nil {
				return fmt.Errorf("writing config file: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Created .twtest.yaml")

			if example {
				if err := writeExampleFixture("testdata"); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Created testdata/example fixture")
			}
			return nil
		},
	}

	cmd.Flags().Bool("force", false, "Overwrite existing config file")
	cmd.Flags().Bool("example", false, "Scaffold an example fixture in testdata/")
	return cmd
}

const defaultConfig = `# twtest configuration

# Shared settings
verbose: false
color: false

# Styling config merged onto the base test config
engine:
  config: ""               # path to a YAML styling config

# build settings
build:
  input: ""                # empty = "@tailwind utilities"
  output: ""               # empty = stdout
  minify: false

# compare settings
compare:
  contains: false
  diff: false

# verify settings
verify:
  root: testdata
  pattern: "**/*.input.css"
  update: false
  diff: false
  strict: false            # fail on warnings
  output-format: text      # text | summary | json
`

var exampleFixture = map[string]string{
	"example.input.css": "@tailwind components;\n",
	"example.config.yaml": `plugins:
  - components:
      .btn:
        padding: 0.5rem 1rem
        border-radius: 0.25rem
`,
	"example.output.css": ".btn {\n  border-radius: 0.25rem;\n  padding: 0.5rem 1rem;\n}\n",
}

func writeExampleFixture(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	for name, content := range exampleFixture {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
	}
	return nil
}
