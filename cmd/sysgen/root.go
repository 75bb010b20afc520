package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sysgen",
	Short: "Svelte system component and stylesheet generator",
	Long: `Generate style-prop Svelte components, the utility stylesheet they toggle
and TypeScript declarations from a design-token theme.
Optimize mode keeps only the props and values the project's templates use.`,
	// Default behavior: run generate when no subcommand is given.
	// PreRunE of generateCmd is not triggered when delegating via rootCmd.RunE.
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		return runGeneration(cmd, generateAll)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	pf := rootCmd.PersistentFlags()
	pf.StringP("config", "c", defaultConfigFile, "Config file path (.yaml, .yml, .json or .toml)")
	pf.String("theme", "", "Theme file path; overrides the config's theme")
	pf.BoolP("verbose", "v", false, "Print statistics and the generated file table, log at debug level")
	pf.Bool("quiet", false, "Suppress all output (exit code only)")
	pf.Bool("color", false, "Force color output")
	pf.String("log-format", "text", "Library log format: text|json")

	addGenerateFlags(rootCmd)
	addOutputPathFlags(rootCmd)

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(generateComponentsCmd)
	rootCmd.AddCommand(generateStylesheetCmd)
	rootCmd.AddCommand(generateTypesCmd)
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}
