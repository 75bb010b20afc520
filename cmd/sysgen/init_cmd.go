package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .sysgen.yaml config file",
	Long:  `Create a .sysgen.yaml configuration file in the current directory with sensible defaults and a starter theme.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(defaultConfigFile); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", defaultConfigFile)
		}

		if err := os.WriteFile(defaultConfigFile, []byte(defaultConfig), 0o644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		console.Success("created %s", defaultConfigFile)
		return nil
	},
}

const defaultConfig = `# sysgen configuration

# Shared settings
verbose: false
log-format: text # text | json

# Generation settings
generate:
  components-path: src/lib/system
  stylesheet-path: src/lib/system/system.css
  # types-path: src/lib/system/system.d.ts
  project-path: src
  optimize: false
  array-values: positional # positional | all
  debounce: 200ms          # watch mode quiet period

# Linting settings
lint:
  strict: false
  output-format: issues # issues | summary | full | json
  max-same-issues: 0    # 0 = unlimited
  print-lines: true
  print-linter-name: true

# Theme; scales left out fall back to the built-in ones.
# Use theme-file to keep it in its own .yaml, .json or .toml file.
theme:
  breakpoints:
    sm: 40em
    md: 52em
    lg: 64em
  space: [0, 4, 8, 16, 32, 64]
  colors:
    text: "#111"
    background: "#fff"
    primary: "#0074D9"
  components:
    Stack:
      extends: Flex
      flexDirection: column
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
